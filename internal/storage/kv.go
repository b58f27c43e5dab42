package storage

import (
	"context"
)

// KVEngine defines the interface for embedded key-value storage.
//
// Implementation requirements:
// - Thread-safe: concurrent reads/writes must be safe
// - Durable: data must survive process restarts
type KVEngine interface {
	// Get retrieves a value by key.
	// Returns ErrKeyNotFound if key doesn't exist.
	Get(ctx context.Context, key []byte) ([]byte, error)

	// Set stores a key-value pair.
	Set(ctx context.Context, key, value []byte) error

	// Scan iterates over keys with a given prefix in key order.
	// Callback returns false to stop iteration.
	Scan(ctx context.Context, prefix []byte, fn func(key, value []byte) bool) error

	// ReplacePrefix atomically deletes every key under prefix and
	// writes entries in its place.
	ReplacePrefix(ctx context.Context, prefix []byte, entries []KV) error

	// GC triggers garbage collection.
	// Returns bytes reclaimed.
	GC(ctx context.Context) (uint64, error)

	// Stats returns storage statistics.
	Stats(ctx context.Context) (*KVStats, error)

	// Close gracefully shuts down the KV engine.
	Close() error
}

// KV is a single key-value pair.
type KV struct {
	Key   []byte
	Value []byte
}

// KVStats contains storage engine statistics.
type KVStats struct {
	// TotalSize is the total disk usage in bytes.
	TotalSize uint64

	// LSMSize is the LSM tree size.
	LSMSize uint64

	// ValueLogSize is the value log size.
	ValueLogSize uint64

	// LastGCTime is the last GC run timestamp (Unix milliseconds).
	LastGCTime int64

	// GCBytesReclaimed is the total bytes reclaimed by GC.
	GCBytesReclaimed uint64
}

// KVConfig configures an embedded KV engine.
type KVConfig struct {
	// Dir is the storage directory.
	Dir string

	// Badger-specific configuration
	Badger BadgerConfig
}

// BadgerConfig contains Badger-specific tuning parameters.
type BadgerConfig struct {
	// GCInterval is the interval between automatic GC runs.
	// Default: 10m
	GCInterval string

	// GCThreshold is the GC discard ratio threshold (0.0-1.0).
	// Default: 0.5
	GCThreshold float64

	// CacheSize is the block cache size in bytes.
	// Default: 8MB
	CacheSize int64

	// ValueLogFileSize is the max value log file size in bytes.
	// Default: 64MB
	ValueLogFileSize int64

	// SyncWrites enables sync writes (fsync after each write).
	// Default: true, an address book is small and every edit matters.
	SyncWrites bool
}

// DefaultKVConfig returns the default KV configuration.
func DefaultKVConfig(dir string) KVConfig {
	return KVConfig{
		Dir:    dir,
		Badger: DefaultBadgerConfig(),
	}
}

// DefaultBadgerConfig returns the default Badger configuration.
func DefaultBadgerConfig() BadgerConfig {
	return BadgerConfig{
		GCInterval:       "10m",
		GCThreshold:      0.5,
		CacheSize:        8 << 20,  // 8MB
		ValueLogFileSize: 64 << 20, // 64MB
		SyncWrites:       true,
	}
}
