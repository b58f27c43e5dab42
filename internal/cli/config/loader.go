package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/yndnr/connectus-go/internal/infra/confloader"
	"github.com/yndnr/connectus-go/internal/telemetry/logger"
)

// OutputFormats lists the accepted output.format values.
var OutputFormats = []string{"table", "json", "yaml"}

// DefaultConfigPath returns the default CLI config file path.
func DefaultConfigPath() string {
	return filepath.Join(HomeDir(), "cli.yaml")
}

// Load reads the configuration file at path (which may be missing),
// applies CONNECTUS_* environment variables, then overrides, which are
// keyed by dotted path such as "log.level".
func Load(path string, overrides map[string]any) (*CLIConfig, error) {
	if path == "" {
		path = DefaultConfigPath()
	}

	l := confloader.NewLoader(
		confloader.WithConfigFile(path),
		confloader.WithOptionalFile(),
		confloader.WithDefaults(defaults()),
		confloader.WithOverrides(overrides),
	)

	cfg := &CLIConfig{}
	if err := l.Load(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration values.
func (c *CLIConfig) Validate() error {
	if !slices.Contains(OutputFormats, c.Output.Format) {
		return fmt.Errorf("invalid output.format %q: must be one of %v", c.Output.Format, OutputFormats)
	}
	if !logger.ValidLevel(c.Log.Level) {
		return fmt.Errorf("invalid log.level %q", c.Log.Level)
	}
	if c.Log.MaxSize < 0 || c.Log.MaxBackups < 0 || c.Log.MaxAge < 0 {
		return fmt.Errorf("invalid log rotation: log.maxsize, log.maxbackups and log.maxage must not be negative")
	}
	if c.History.Size < 0 {
		return fmt.Errorf("invalid history.size %d: must not be negative", c.History.Size)
	}
	if !c.Storage.Ephemeral && c.Storage.Dir == "" {
		return fmt.Errorf("storage.dir is required unless storage.ephemeral is set")
	}
	if c.Storage.GCInterval != "" {
		if _, err := time.ParseDuration(c.Storage.GCInterval); err != nil {
			return fmt.Errorf("invalid storage.gcinterval %q: %w", c.Storage.GCInterval, err)
		}
	}
	return nil
}

// Save writes cfg as YAML to path with owner-only permissions.
func Save(cfg *CLIConfig, path string) error {
	if path == "" {
		path = DefaultConfigPath()
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
