package command

import (
	"context"
	"time"

	"github.com/yndnr/connectus-go/internal/cli/config"
	"github.com/yndnr/connectus-go/internal/core/service"
	"github.com/yndnr/connectus-go/internal/infra/shutdown"
	"github.com/yndnr/connectus-go/internal/storage"
	"github.com/yndnr/connectus-go/internal/storage/memory"
	"github.com/yndnr/connectus-go/internal/telemetry/logger"
	"github.com/yndnr/connectus-go/internal/telemetry/metric"
)

const shutdownTimeout = 10 * time.Second

// runtime is the opened address book and everything that must be
// released with it.
type runtime struct {
	cfg     *config.CLIConfig
	book    *service.AddressBook
	metrics *metric.Registry

	// engine is nil when the address book is ephemeral.
	engine *storage.BadgerEngine

	closer *shutdown.Handler
}

// openRuntime opens the store named by cfg and loads the address book.
// Close flushes the book, closes the store and writes the metrics textfile.
func openRuntime(ctx context.Context, cfg *config.CLIConfig) (*runtime, error) {
	log := logger.Default()
	rt := &runtime{
		cfg:     cfg,
		metrics: metric.NewRegistry(),
		closer:  shutdown.NewHandler(shutdownTimeout),
	}

	if path := cfg.Metrics.Textfile; path != "" {
		rt.closer.OnShutdown("metrics", func(context.Context) error {
			return rt.metrics.WriteTextfile(path)
		})
	}

	var repo storage.Repository = storage.NewEphemeralRepository()
	if !cfg.Storage.Ephemeral {
		badgerCfg := storage.DefaultBadgerConfig()
		badgerCfg.SyncWrites = cfg.Storage.Sync
		if cfg.Storage.GCInterval != "" {
			badgerCfg.GCInterval = cfg.Storage.GCInterval
		}

		br, err := storage.OpenBadgerRepository(cfg.Storage.Dir, badgerCfg, logger.Slog(log))
		if err != nil {
			return nil, err
		}
		if engine, ok := br.Engine().(*storage.BadgerEngine); ok {
			rt.engine = engine.RegisterMetrics(rt.metrics.Registerer())
		}
		repo = br
	}
	rt.closer.OnShutdown("store", func(context.Context) error {
		return repo.Close()
	})

	rt.book = service.NewAddressBook(memory.New(), repo,
		service.WithLogger(log),
		service.WithSaveObserver(rt.metrics.ObserveSave),
	)
	rt.metrics.Registerer().MustRegister(metric.NewCollector(func() metric.Stats {
		return metric.Stats{Persons: rt.book.Count(), Tags: rt.book.TagCounts()}
	}))

	if err := rt.book.Load(ctx); err != nil {
		_ = rt.closer.Shutdown()
		return nil, err
	}
	rt.closer.OnShutdown("flush", rt.book.Flush)

	log.Debug("address book opened",
		"ephemeral", cfg.Storage.Ephemeral,
		"persons", rt.book.Count())
	return rt, nil
}

// Close runs the shutdown hooks. It is safe to call more than once.
func (rt *runtime) Close() error {
	return rt.closer.Shutdown()
}
