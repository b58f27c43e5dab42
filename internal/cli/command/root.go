package command

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/connectus-go/internal/cli/config"
	"github.com/yndnr/connectus-go/internal/cli/output"
	"github.com/yndnr/connectus-go/internal/infra/buildinfo"
	"github.com/yndnr/connectus-go/internal/telemetry/logger"
)

const (
	metaConfig    = "config"
	metaOverrides = "overrides"
)

// flagKeys maps global flags onto the config keys they override.
var flagKeys = map[string]string{
	"data-dir":  "storage.dir",
	"ephemeral": "storage.ephemeral",
	"output":    "output.format",
	"log-level": "log.level",
}

// App creates the CLI application. Without a subcommand it starts the
// interactive session.
func App() *cli.App {
	app := &cli.App{
		Name:    "connectus",
		Usage:   "Contact manager for NUS students",
		Version: buildinfo.Version,
		Flags:   globalFlags(),
		Commands: []*cli.Command{
			ReplCommand(),
			ExecCommand(),
			ListCommand(),
			StoreCommand(),
			ConfigCommand(),
			VersionCommand(),
		},
		Before: loadConfig,
		Action: runREPL,
	}

	return app
}

// globalFlags returns the global CLI flags.
func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "Config file path",
			Value:   config.DefaultConfigPath(),
		},
		&cli.StringFlag{
			Name:    "data-dir",
			Aliases: []string{"d"},
			Usage:   "Directory holding the address book",
		},
		&cli.BoolFlag{
			Name:  "ephemeral",
			Usage: "Keep the address book in memory only",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Output format: table, json, yaml",
		},
		&cli.BoolFlag{
			Name:    "wide",
			Aliases: []string{"w"},
			Usage:   "Show wide output (social media and IDs)",
		},
		&cli.StringFlag{
			Name:  "log-level",
			Usage: "Log level: debug, info, warn, error",
		},
	}
}

// flagOverrides collects the global flags set on the command line.
func flagOverrides(c *cli.Context) map[string]any {
	overrides := make(map[string]any)
	for flag, key := range flagKeys {
		if c.IsSet(flag) {
			overrides[key] = c.Value(flag)
		}
	}
	return overrides
}

// loadConfig resolves the configuration and installs the default logger.
func loadConfig(c *cli.Context) error {
	overrides := flagOverrides(c)
	cfg, err := config.Load(c.String("config"), overrides)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		File:   cfg.Log.File,
		Rotation: logger.Rotation{
			MaxSizeMB:  cfg.Log.MaxSize,
			MaxBackups: cfg.Log.MaxBackups,
			MaxAgeDays: cfg.Log.MaxAge,
			Compress:   cfg.Log.Compress,
		},
		Output: c.App.ErrWriter,
	})
	if err != nil {
		return err
	}
	logger.SetDefault(log)

	c.App.Metadata[metaConfig] = cfg
	c.App.Metadata[metaOverrides] = overrides
	return nil
}

// getConfig returns the configuration resolved by loadConfig.
func getConfig(c *cli.Context) *config.CLIConfig {
	if cfg, ok := c.App.Metadata[metaConfig].(*config.CLIConfig); ok {
		return cfg
	}
	return config.Default()
}

func getOverrides(c *cli.Context) map[string]any {
	overrides, _ := c.App.Metadata[metaOverrides].(map[string]any)
	return overrides
}

// formatter returns the formatter selected by the config and --wide.
func formatter(c *cli.Context) output.Formatter {
	return output.NewFormatter(output.Format(getConfig(c).Output.Format), c.Bool("wide"))
}

// PrintError prints an error message to the app's error writer.
func PrintError(c *cli.Context, format string, args ...any) {
	fmt.Fprintf(c.App.ErrWriter, "error: "+format+"\n", args...)
}
