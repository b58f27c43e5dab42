package command

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v2"

	"github.com/yndnr/connectus-go/internal/cli/output"
	"github.com/yndnr/connectus-go/internal/core/domain"
	"github.com/yndnr/connectus-go/internal/storage/backup"
	"github.com/yndnr/connectus-go/internal/telemetry/logger"
)

// errEphemeral is returned by maintenance commands that need a store on disk.
var errEphemeral = cli.Exit("the address book is ephemeral", 1)

var passphraseFlag = &cli.StringFlag{
	Name:    "passphrase",
	Usage:   "Encrypt or decrypt backups with `PASSPHRASE`",
	EnvVars: []string{"CONNECTUS_BACKUP_PASSPHRASE"},
}

// StoreCommand returns the storage maintenance subcommand group.
func StoreCommand() *cli.Command {
	return &cli.Command{
		Name:  "store",
		Usage: "Address book storage maintenance",
		Subcommands: []*cli.Command{
			{
				Name:   "stats",
				Usage:  "Show address book and storage statistics",
				Action: storeStats,
			},
			{
				Name:  "gc",
				Usage: "Reclaim value log space",
				Flags: []cli.Flag{
					&cli.DurationFlag{
						Name:  "timeout",
						Usage: "Give up after `DURATION`",
						Value: time.Minute,
					},
				},
				Action: storeGC,
			},
			{
				Name:  "backup",
				Usage: "Write a backup of the address book",
				Flags: []cli.Flag{
					passphraseFlag,
					&cli.StringFlag{
						Name:  "cipher",
						Usage: "Encryption cipher (aes-gcm, chacha20-poly1305)",
						Value: backup.CipherAESGCM,
					},
				},
				Action: storeBackup,
			},
			{
				Name:   "backups",
				Usage:  "List backups",
				Action: storeBackups,
			},
			{
				Name:      "restore",
				Usage:     "Replace the address book with a backup (default: latest)",
				ArgsUsage: "[BACKUP-ID]",
				Flags:     []cli.Flag{passphraseFlag},
				Action:    storeRestore,
			},
		},
	}
}

type storageStats struct {
	Persons int            `json:"persons" yaml:"persons"`
	Tags    map[string]int `json:"tags" yaml:"tags"`
	Storage struct {
		Dir          string `json:"dir" yaml:"dir"`
		TotalSize    string `json:"total_size,omitempty" yaml:"total_size,omitempty"`
		LSMSize      string `json:"lsm_size,omitempty" yaml:"lsm_size,omitempty"`
		ValueLogSize string `json:"value_log_size,omitempty" yaml:"value_log_size,omitempty"`
		LastGC       string `json:"last_gc,omitempty" yaml:"last_gc,omitempty"`
		Reclaimed    string `json:"reclaimed,omitempty" yaml:"reclaimed,omitempty"`
	} `json:"storage" yaml:"storage"`
}

func storeStats(c *cli.Context) error {
	rt, err := openRuntime(c.Context, getConfig(c))
	if err != nil {
		return err
	}
	defer rt.Close()

	stats := storageStats{
		Persons: rt.book.Count(),
		Tags:    rt.book.TagCounts(),
	}
	stats.Storage.Dir = "(memory)"

	if rt.engine != nil {
		kv, err := rt.engine.Stats(c.Context)
		if err != nil {
			return err
		}
		stats.Storage.Dir = rt.cfg.Storage.Dir
		stats.Storage.TotalSize = humanize.Bytes(kv.TotalSize)
		stats.Storage.LSMSize = humanize.Bytes(kv.LSMSize)
		stats.Storage.ValueLogSize = humanize.Bytes(kv.ValueLogSize)
		stats.Storage.Reclaimed = humanize.Bytes(kv.GCBytesReclaimed)
		stats.Storage.LastGC = "never"
		if kv.LastGCTime > 0 {
			stats.Storage.LastGC = humanize.Time(time.UnixMilli(kv.LastGCTime))
		}
	}

	if err := formatter(c).Format(c.App.Writer, stats); err != nil {
		return err
	}
	return rt.Close()
}

func storeGC(c *cli.Context) error {
	rt, err := openRuntime(c.Context, getConfig(c))
	if err != nil {
		return err
	}
	defer rt.Close()

	if rt.engine == nil {
		return errEphemeral
	}

	ctx, cancel := context.WithTimeout(c.Context, c.Duration("timeout"))
	defer cancel()

	spinner := output.NewSpinner(c.App.ErrWriter, "Collecting value log garbage...")
	spinner.Start()
	reclaimed, err := rt.engine.GC(ctx)
	if err != nil {
		spinner.Fail("Garbage collection failed")
		return fmt.Errorf("store gc: %w", err)
	}
	spinner.Success(fmt.Sprintf("Reclaimed %s", humanize.Bytes(reclaimed)))

	return rt.Close()
}

// backups opens the backup manager next to the store.
func backups(c *cli.Context) (*backup.Manager, error) {
	cfg := getConfig(c)
	if cfg.Storage.Ephemeral {
		return nil, errEphemeral
	}

	bc := backup.DefaultConfig(filepath.Join(cfg.Storage.Dir, "backups"))
	if pass := c.String("passphrase"); pass != "" {
		bc.Passphrase = []byte(pass)
		bc.Cipher = c.String("cipher")
	}
	mgr, err := backup.NewManager(bc)
	if err != nil {
		return nil, cli.Exit(err.Error(), 1)
	}
	return mgr, nil
}

func storeBackup(c *cli.Context) error {
	cfg := getConfig(c)
	mgr, err := backups(c)
	if err != nil {
		return err
	}
	rt, err := openRuntime(c.Context, cfg)
	if err != nil {
		return err
	}
	defer rt.Close()

	info, err := mgr.Create(rt.book.Persons())
	if err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "✓ Backup %s written (%d persons, %s)\n",
		info.ID, info.PersonCount, humanize.Bytes(uint64(info.Size)))
	if info.Encrypted {
		fmt.Fprintf(c.App.Writer, "  encrypted with %s\n", c.String("cipher"))
	}

	if removed, err := mgr.Prune(); err != nil {
		logger.Warn("prune backups failed", "error", err)
	} else if removed > 0 {
		fmt.Fprintf(c.App.Writer, "  %d old backup(s) removed\n", removed)
	}
	return rt.Close()
}

func storeBackups(c *cli.Context) error {
	mgr, err := backups(c)
	if err != nil {
		return err
	}
	infos, err := mgr.List()
	if err != nil {
		return err
	}

	if output.Format(getConfig(c).Output.Format) != output.FormatTable {
		return formatter(c).Format(c.App.Writer, infos)
	}
	t := &output.Table{Headers: []string{"ID", "CREATED", "SIZE"}}
	for _, info := range infos {
		t.AddRow(info.ID, humanize.Time(time.UnixMilli(info.CreatedAt)), humanize.Bytes(uint64(info.Size)))
	}
	return formatter(c).Format(c.App.Writer, t)
}

func storeRestore(c *cli.Context) error {
	cfg := getConfig(c)
	mgr, err := backups(c)
	if err != nil {
		return err
	}

	var (
		persons []*domain.Person
		info    *backup.Info
	)
	if id := c.Args().First(); id != "" {
		persons, info, err = mgr.Load(id)
	} else {
		persons, info, err = mgr.Latest()
	}
	if errors.Is(err, backup.ErrPassphraseRequired) || errors.Is(err, backup.ErrDecryptionFailed) {
		return cli.Exit(err.Error(), 1)
	}
	if err != nil {
		return err
	}

	rt, err := openRuntime(c.Context, cfg)
	if err != nil {
		return err
	}
	defer rt.Close()

	// Keep the current content restorable.
	current, err := mgr.Create(rt.book.Persons())
	if err != nil {
		return err
	}
	if err := rt.book.Restore(c.Context, persons); err != nil {
		return fmt.Errorf("restore %s: %s", info.ID, domain.UserMessage(err))
	}

	fmt.Fprintf(c.App.Writer, "✓ Restored %d persons from %s (previous content saved as %s)\n",
		len(persons), info.ID, current.ID)
	return rt.Close()
}
