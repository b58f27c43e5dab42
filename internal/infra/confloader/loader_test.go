package confloader

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

type testConfig struct {
	Storage struct {
		Dir       string `koanf:"dir"`
		Ephemeral bool   `koanf:"ephemeral"`
	} `koanf:"storage"`
	Log struct {
		Level string `koanf:"level"`
	} `koanf:"log"`
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cli.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}
	return path
}

func TestNewLoader_WithOptions(t *testing.T) {
	l := NewLoader(
		WithEnvPrefix("TEST_"),
		WithConfigFile("/path/to/cli.yaml"),
	)

	if l.envPrefix != "TEST_" {
		t.Errorf("envPrefix = %q, want %q", l.envPrefix, "TEST_")
	}
	if l.FilePath() != "/path/to/cli.yaml" {
		t.Errorf("FilePath() = %q, want %q", l.FilePath(), "/path/to/cli.yaml")
	}
	if NewLoader().envPrefix != DefaultEnvPrefix {
		t.Errorf("default envPrefix = %q, want %q", NewLoader().envPrefix, DefaultEnvPrefix)
	}
}

func TestLoader_LoadFile(t *testing.T) {
	path := writeConfig(t, `
storage:
  dir: /tmp/connectus
  ephemeral: true
`)

	l := NewLoader()
	if err := l.LoadFile(path); err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}

	if dir := l.GetString("storage.dir"); dir != "/tmp/connectus" {
		t.Errorf("storage.dir = %q, want %q", dir, "/tmp/connectus")
	}
	if !l.GetBool("storage.ephemeral") {
		t.Error("storage.ephemeral should be true")
	}
}

func TestLoader_LoadFile_NotFound(t *testing.T) {
	err := NewLoader().LoadFile("/nonexistent/cli.yaml")
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("LoadFile() err = %v, want fs.ErrNotExist", err)
	}

	if err := NewLoader().LoadFile(""); err != nil {
		t.Errorf("LoadFile(\"\") should not error, got: %v", err)
	}
}

func TestLoader_Load_OptionalFile(t *testing.T) {
	var cfg testConfig
	l := NewLoader(WithConfigFile("/nonexistent/cli.yaml"))
	if err := l.Load(&cfg); err == nil {
		t.Error("Load() should fail for a missing required file")
	}

	l = NewLoader(WithConfigFile("/nonexistent/cli.yaml"), WithOptionalFile())
	if err := l.Load(&cfg); err != nil {
		t.Errorf("Load() error = %v", err)
	}
	if !l.IsLoaded() {
		t.Error("IsLoaded() should be true after Load()")
	}
}

func TestLoader_LoadEnv(t *testing.T) {
	t.Setenv("CONNECTUS_LOG_LEVEL", "debug")

	l := NewLoader()
	if err := l.LoadEnv(); err != nil {
		t.Fatalf("LoadEnv() error = %v", err)
	}

	if level := l.GetString("log.level"); level != "debug" {
		t.Errorf("log.level = %q, want %q", level, "debug")
	}
}

func TestLoader_LoadMap(t *testing.T) {
	l := NewLoader()
	if err := l.LoadMap(map[string]any{"storage.dir": "/data", "storage.ephemeral": true}); err != nil {
		t.Fatalf("LoadMap() error = %v", err)
	}

	var cfg testConfig
	if err := l.Unmarshal(&cfg); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if cfg.Storage.Dir != "/data" || !cfg.Storage.Ephemeral {
		t.Errorf("storage = %+v", cfg.Storage)
	}
	if len(l.All()) != 2 {
		t.Errorf("All() = %v, want 2 keys", l.All())
	}
}

func TestLoader_Load_Priority(t *testing.T) {
	path := writeConfig(t, `
storage:
  dir: from-file
log:
  level: info
`)
	t.Setenv("CONNECTUS_LOG_LEVEL", "error")
	t.Setenv("CONNECTUS_STORAGE_DIR", "from-env")

	l := NewLoader(
		WithConfigFile(path),
		WithDefaults(map[string]any{"storage.dir": "default", "storage.ephemeral": true, "log.level": "warn"}),
		WithOverrides(map[string]any{"storage.dir": "from-flag"}),
	)

	var cfg testConfig
	if err := l.Load(&cfg); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Storage.Dir != "from-flag" {
		t.Errorf("storage.dir = %q, want from-flag", cfg.Storage.Dir)
	}
	if cfg.Log.Level != "error" {
		t.Errorf("log.level = %q, want error (env overrides file)", cfg.Log.Level)
	}
	if !cfg.Storage.Ephemeral {
		t.Error("storage.ephemeral default was lost")
	}
}

func TestLoader_Load_Reload(t *testing.T) {
	path := writeConfig(t, "log:\n  level: info\n")
	l := NewLoader(WithConfigFile(path))

	var cfg testConfig
	if err := l.Load(&cfg); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if err := os.WriteFile(path, []byte("log:\n  level: debug\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	cfg = testConfig{}
	if err := l.Load(&cfg); err != nil {
		t.Fatalf("second Load() error = %v", err)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("log.level after reload = %q, want debug", cfg.Log.Level)
	}
}
