package command

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/connectus-go/internal/cli/config"
)

// ConfigCommand returns the config subcommand group.
func ConfigCommand() *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Configuration management",
		Subcommands: []*cli.Command{
			{
				Name:   "show",
				Usage:  "Show the effective configuration",
				Action: configShow,
			},
			{
				Name:   "path",
				Usage:  "Print the config file path",
				Action: configPath,
			},
			{
				Name:  "init",
				Usage: "Write the default configuration file",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "force",
						Usage: "Overwrite an existing file",
					},
				},
				Action: configInit,
			},
			{
				Name:      "validate",
				Usage:     "Validate a configuration file",
				ArgsUsage: "[FILE]",
				Action:    configValidate,
			},
		},
	}
}

func configShow(c *cli.Context) error {
	return formatter(c).Format(c.App.Writer, getConfig(c))
}

func configPath(c *cli.Context) error {
	path := c.String("config")
	state := "exists"
	if _, err := os.Stat(path); err != nil {
		state = "not found, using defaults"
	}
	fmt.Fprintf(c.App.Writer, "%s (%s)\n", path, state)
	return nil
}

func configInit(c *cli.Context) error {
	path := c.String("config")
	if _, err := os.Stat(path); err == nil && !c.Bool("force") {
		return cli.Exit(fmt.Sprintf("config init: %s already exists (use --force to overwrite)", path), 1)
	}

	if err := config.Save(config.Default(), path); err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "✓ Configuration written to %s\n", path)
	return nil
}

func configValidate(c *cli.Context) error {
	path := c.Args().First()
	if path == "" {
		path = c.String("config")
	}
	if _, err := os.Stat(path); err != nil {
		return cli.Exit(fmt.Sprintf("config validate: %v", err), 1)
	}

	if _, err := config.Load(path, nil); err != nil {
		fmt.Fprintf(c.App.Writer, "✗ %s: %v\n", path, err)
		return cli.Exit("", 1)
	}
	fmt.Fprintf(c.App.Writer, "✓ Configuration file is valid: %s\n", path)
	return nil
}
