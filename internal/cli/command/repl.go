package command

import (
	"context"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/connectus-go/internal/cli/config"
	"github.com/yndnr/connectus-go/internal/cli/repl"
	"github.com/yndnr/connectus-go/internal/infra/confloader"
	"github.com/yndnr/connectus-go/internal/telemetry/logger"
)

// exitInterrupted is the conventional exit status after SIGINT.
const exitInterrupted = 130

// ReplCommand returns the interactive session command.
func ReplCommand() *cli.Command {
	return &cli.Command{
		Name:   "repl",
		Usage:  "Start an interactive session (default)",
		Action: runREPL,
	}
}

func runREPL(c *cli.Context) error {
	cfg := getConfig(c)

	rt, err := openRuntime(c.Context, cfg)
	if err != nil {
		return err
	}
	defer rt.Close()

	history := repl.NewHistory(cfg.History.File, cfg.History.Size)
	if err := history.Load(); err != nil {
		logger.Warn("load history failed", "error", err)
	}
	rt.closer.OnShutdown("history", func(context.Context) error {
		return history.Save()
	})

	if w := watchConfig(c.String("config"), getOverrides(c)); w != nil {
		rt.closer.OnShutdown("watcher", func(context.Context) error {
			return w.Stop()
		})
	}

	session := repl.New(
		repl.NewEngine(rt.book, repl.WithMetrics(rt.metrics), repl.WithEngineLogger(logger.Default())),
		repl.WithIO(c.App.Reader, c.App.Writer),
		repl.WithFormatter(formatter(c)),
		repl.WithHistory(history),
	)

	ctx, cancel := context.WithCancel(c.Context)
	defer cancel()

	// The session blocks on stdin, so a signal ends the process once the
	// hooks have run.
	go func() {
		sig, err := rt.closer.Wait(ctx)
		if sig == nil {
			return
		}
		if err != nil {
			PrintError(c, "shutdown: %v", err)
		}
		os.Exit(exitInterrupted)
	}()

	if err := session.Run(ctx); err != nil {
		return err
	}
	cancel()
	return rt.Close()
}

// watchConfig follows the config file and applies log level changes
// while the session runs. It returns nil when the file does not exist.
func watchConfig(path string, overrides map[string]any) *confloader.Watcher {
	if _, err := os.Stat(path); err != nil {
		return nil
	}

	w, err := confloader.NewWatcher(confloader.WithWatcherLogger(logger.Slog(logger.Default())))
	if err != nil {
		logger.Warn("config watcher unavailable", "error", err)
		return nil
	}
	if err := w.Watch(path); err != nil {
		logger.Warn("watch config failed", "path", path, "error", err)
		_ = w.Stop()
		return nil
	}

	w.OnChange(func(string) {
		cfg, err := config.Load(path, overrides)
		if err != nil {
			logger.Warn("reload config failed", "error", err)
			return
		}
		logger.SetLevel(cfg.Log.Level)
		logger.Info("config reloaded", "log_level", cfg.Log.Level)
	})
	w.StartAsync()
	return w
}
