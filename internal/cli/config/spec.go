package config

import (
	"os"
	"path/filepath"
)

// CLIConfig is the configuration of the connectus CLI.
// Keys avoid underscores so CONNECTUS_SECTION_KEY maps onto section.key.
type CLIConfig struct {
	Storage StorageConfig `koanf:"storage" yaml:"storage"`
	Output  OutputConfig  `koanf:"output" yaml:"output"`
	Log     LogConfig     `koanf:"log" yaml:"log"`
	History HistoryConfig `koanf:"history" yaml:"history"`
	Metrics MetricsConfig `koanf:"metrics" yaml:"metrics"`
}

// StorageConfig locates and tunes the address book store.
type StorageConfig struct {
	// Dir holds the Badger database.
	Dir string `koanf:"dir" yaml:"dir"`

	// Ephemeral keeps the address book in memory only.
	Ephemeral bool `koanf:"ephemeral" yaml:"ephemeral"`

	// Sync fsyncs every write.
	Sync bool `koanf:"sync" yaml:"sync"`

	// GCInterval is the value log GC period, e.g. "10m".
	GCInterval string `koanf:"gcinterval" yaml:"gcinterval"`
}

// OutputConfig selects how listings are printed.
type OutputConfig struct {
	Format string `koanf:"format" yaml:"format"` // table, json, yaml
}

// LogConfig configures the logger.
type LogConfig struct {
	Level  string `koanf:"level" yaml:"level"`
	Format string `koanf:"format" yaml:"format"`

	// File receives the log; empty means stderr.
	File string `koanf:"file" yaml:"file"`

	// Rotation of File.
	MaxSize    int  `koanf:"maxsize" yaml:"maxsize"` // megabytes
	MaxBackups int  `koanf:"maxbackups" yaml:"maxbackups"`
	MaxAge     int  `koanf:"maxage" yaml:"maxage"` // days
	Compress   bool `koanf:"compress" yaml:"compress"`
}

// HistoryConfig configures the REPL history.
type HistoryConfig struct {
	File string `koanf:"file" yaml:"file"`
	Size int    `koanf:"size" yaml:"size"`
}

// MetricsConfig configures the metrics dump.
type MetricsConfig struct {
	// Textfile, when set, receives the metrics in the Prometheus text
	// format when the CLI exits.
	Textfile string `koanf:"textfile" yaml:"textfile"`
}

// HomeDir returns the directory holding the CLI state, ~/.connectus.
func HomeDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = os.TempDir()
	}
	return filepath.Join(homeDir, ".connectus")
}

// Default returns the default CLI configuration.
func Default() *CLIConfig {
	home := HomeDir()
	return &CLIConfig{
		Storage: StorageConfig{
			Dir:        filepath.Join(home, "data"),
			Sync:       true,
			GCInterval: "10m",
		},
		Output: OutputConfig{Format: "table"},
		Log: LogConfig{
			Level:      "warn",
			Format:     "text",
			MaxSize:    10,
			MaxBackups: 3,
			MaxAge:     28,
		},
		History: HistoryConfig{
			File: filepath.Join(home, "history"),
			Size: 1000,
		},
	}
}

// defaults flattens Default for the loader.
func defaults() map[string]any {
	d := Default()
	return map[string]any{
		"storage.dir":        d.Storage.Dir,
		"storage.ephemeral":  d.Storage.Ephemeral,
		"storage.sync":       d.Storage.Sync,
		"storage.gcinterval": d.Storage.GCInterval,
		"output.format":      d.Output.Format,
		"log.level":          d.Log.Level,
		"log.format":         d.Log.Format,
		"log.file":           d.Log.File,
		"log.maxsize":        d.Log.MaxSize,
		"log.maxbackups":     d.Log.MaxBackups,
		"log.maxage":         d.Log.MaxAge,
		"log.compress":       d.Log.Compress,
		"history.file":       d.History.File,
		"history.size":       d.History.Size,
		"metrics.textfile":   d.Metrics.Textfile,
	}
}
