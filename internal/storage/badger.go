package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/dgraph-io/badger/v3"
	"github.com/prometheus/client_golang/prometheus"
)

// Common errors
var (
	ErrKeyNotFound = errors.New("key not found")
	ErrClosed      = errors.New("kv engine closed")
)

// BadgerEngine implements KVEngine using Badger v3.
type BadgerEngine struct {
	db     *badger.DB
	cfg    BadgerConfig
	logger *slog.Logger

	lastGCTime       atomic.Int64  // Unix milliseconds
	gcBytesReclaimed atomic.Uint64 // Total bytes reclaimed by GC
	closed           atomic.Bool

	metricsTotalSize  prometheus.Gauge
	metricsLastGCTime prometheus.Gauge

	stopCh chan struct{}
	doneCh chan struct{}
}

// NewBadgerEngine creates a new Badger-based KV engine.
func NewBadgerEngine(cfg KVConfig, logger *slog.Logger) (*BadgerEngine, error) {
	if cfg.Dir == "" {
		return nil, fmt.Errorf("badger: dir is required")
	}
	if logger == nil {
		logger = slog.Default()
	}

	opts := badger.DefaultOptions(cfg.Dir)
	opts.Logger = &badgerLogger{logger: logger}

	badgerCfg := cfg.Badger
	if badgerCfg.CacheSize > 0 {
		opts.BlockCacheSize = badgerCfg.CacheSize
	}
	if badgerCfg.ValueLogFileSize > 0 {
		opts.ValueLogFileSize = badgerCfg.ValueLogFileSize
	}
	opts.SyncWrites = badgerCfg.SyncWrites

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("badger: open db: %w", err)
	}

	engine := &BadgerEngine{
		db:     db,
		cfg:    badgerCfg,
		logger: logger,
		stopCh: make(chan struct{}),
		doneCh: make(chan struct{}),
	}

	go engine.gcLoop()

	logger.Debug("badger engine started",
		"dir", cfg.Dir,
		"gc_interval", badgerCfg.GCInterval)

	return engine, nil
}

// Get retrieves a value by key.
func (e *BadgerEngine) Get(ctx context.Context, key []byte) ([]byte, error) {
	if e.closed.Load() {
		return nil, ErrClosed
	}

	var value []byte
	err := e.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return ErrKeyNotFound
			}
			return err
		}

		value, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		return nil, err
	}

	return value, nil
}

// Set stores a key-value pair.
func (e *BadgerEngine) Set(ctx context.Context, key, value []byte) error {
	if e.closed.Load() {
		return ErrClosed
	}
	return e.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key, value)
	})
}

// Scan iterates over keys with a given prefix.
func (e *BadgerEngine) Scan(ctx context.Context, prefix []byte, fn func(key, value []byte) bool) error {
	if e.closed.Load() {
		return ErrClosed
	}
	return e.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}

			item := it.Item()
			value, err := item.ValueCopy(nil)
			if err != nil {
				return err
			}

			if !fn(item.KeyCopy(nil), value) {
				break
			}
		}

		return nil
	})
}

// ReplacePrefix deletes every key under prefix and writes entries,
// all in one transaction.
func (e *BadgerEngine) ReplacePrefix(ctx context.Context, prefix []byte, entries []KV) error {
	if e.closed.Load() {
		return ErrClosed
	}
	for _, kv := range entries {
		if !bytes.HasPrefix(kv.Key, prefix) {
			return fmt.Errorf("badger: key %q outside prefix %q", kv.Key, prefix)
		}
	}

	return e.db.Update(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)

		var stale [][]byte
		for it.Rewind(); it.Valid(); it.Next() {
			stale = append(stale, it.Item().KeyCopy(nil))
		}
		it.Close()

		for _, key := range stale {
			if err := txn.Delete(key); err != nil {
				return err
			}
		}
		for _, kv := range entries {
			if err := txn.Set(kv.Key, kv.Value); err != nil {
				return err
			}
		}
		return nil
	})
}

// GC triggers garbage collection.
//
// Badger uses a value log that needs periodic GC to reclaim space.
// Returns bytes reclaimed (approximate).
func (e *BadgerEngine) GC(ctx context.Context) (uint64, error) {
	if e.closed.Load() {
		return 0, ErrClosed
	}
	startTime := time.Now()

	var totalReclaimed uint64
	for {
		if err := ctx.Err(); err != nil {
			return totalReclaimed, err
		}
		err := e.db.RunValueLogGC(e.cfg.GCThreshold)
		if err != nil {
			if errors.Is(err, badger.ErrNoRewrite) {
				break
			}
			return totalReclaimed, fmt.Errorf("gc: %w", err)
		}

		// Badger doesn't report the exact count.
		totalReclaimed += 1 << 20
	}

	e.lastGCTime.Store(time.Now().UnixMilli())
	e.gcBytesReclaimed.Add(totalReclaimed)

	e.logger.Debug("gc completed",
		"bytes_reclaimed", totalReclaimed,
		"elapsed", time.Since(startTime))

	return totalReclaimed, nil
}

// Stats returns storage statistics.
func (e *BadgerEngine) Stats(ctx context.Context) (*KVStats, error) {
	if e.closed.Load() {
		return nil, ErrClosed
	}
	lsm, vlog := e.db.Size()

	return &KVStats{
		TotalSize:        uint64(lsm + vlog),
		LSMSize:          uint64(lsm),
		ValueLogSize:     uint64(vlog),
		LastGCTime:       e.lastGCTime.Load(),
		GCBytesReclaimed: e.gcBytesReclaimed.Load(),
	}, nil
}

// Close gracefully shuts down the Badger engine.
func (e *BadgerEngine) Close() error {
	if !e.closed.CompareAndSwap(false, true) {
		return nil
	}

	close(e.stopCh)
	<-e.doneCh

	e.updateMetrics()

	if err := e.db.Close(); err != nil {
		return fmt.Errorf("close db: %w", err)
	}

	e.logger.Debug("badger engine shutdown complete")
	return nil
}

// RegisterMetrics registers Badger size gauges with registry.
// The gauges are refreshed after each GC run and on Close.
func (e *BadgerEngine) RegisterMetrics(registry prometheus.Registerer) *BadgerEngine {
	e.metricsTotalSize = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "connectus",
		Subsystem: "badger",
		Name:      "total_size_bytes",
		Help:      "Badger total storage size in bytes (LSM + value log)",
	})

	e.metricsLastGCTime = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "connectus",
		Subsystem: "badger",
		Name:      "last_gc_timestamp_seconds",
		Help:      "Unix timestamp of the last Badger GC run",
	})

	registry.MustRegister(e.metricsTotalSize, e.metricsLastGCTime)
	e.updateMetrics()

	return e
}

func (e *BadgerEngine) updateMetrics() {
	if e.metricsTotalSize == nil {
		return
	}

	lsm, vlog := e.db.Size()
	e.metricsTotalSize.Set(float64(lsm + vlog))
	if t := e.lastGCTime.Load(); t > 0 {
		e.metricsLastGCTime.Set(float64(t) / 1000.0)
	}
}

// gcLoop runs periodic garbage collection.
func (e *BadgerEngine) gcLoop() {
	defer close(e.doneCh)

	interval, err := time.ParseDuration(e.cfg.GCInterval)
	if err != nil || interval <= 0 {
		e.logger.Warn("invalid gc_interval, using default 10m", "value", e.cfg.GCInterval)
		interval = 10 * time.Minute
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
			if _, err := e.GC(ctx); err != nil {
				e.logger.Error("auto gc failed", "error", err)
			}
			cancel()
			e.updateMetrics()

		case <-e.stopCh:
			return
		}
	}
}

// badgerLogger adapts slog.Logger to Badger's Logger interface.
// Badger's info chatter is demoted to debug.
type badgerLogger struct {
	logger *slog.Logger
}

func (l *badgerLogger) Errorf(format string, args ...interface{}) {
	l.logger.Error(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Warningf(format string, args ...interface{}) {
	l.logger.Warn(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Infof(format string, args ...interface{}) {
	l.logger.Debug(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Debugf(format string, args ...interface{}) {
	l.logger.Debug(fmt.Sprintf(format, args...))
}
