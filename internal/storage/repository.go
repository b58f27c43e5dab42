package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/yndnr/connectus-go/internal/core/domain"
)

// personKeyPrefix namespaces person records. Keys carry the
// zero-padded display position so a prefix scan yields display order.
const personKeyPrefix = "person/"

// schemaKey records the record layout version written by Save.
const (
	schemaKey     = "meta/schema"
	schemaVersion = "1"
)

// Repository loads and saves the whole address book.
type Repository interface {
	// Load returns the persisted persons in display order.
	// An empty repository yields an empty slice.
	Load(ctx context.Context) ([]*domain.Person, error)

	// Save replaces the persisted persons with persons.
	Save(ctx context.Context, persons []*domain.Person) error

	// Close releases the underlying resources.
	Close() error
}

// BadgerRepository persists persons in a KVEngine.
type BadgerRepository struct {
	kv     KVEngine
	logger *slog.Logger
}

// NewBadgerRepository creates a repository over kv.
func NewBadgerRepository(kv KVEngine, logger *slog.Logger) *BadgerRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &BadgerRepository{kv: kv, logger: logger}
}

// OpenBadgerRepository opens (creating if needed) a Badger database in
// dataDir and wraps it in a repository.
func OpenBadgerRepository(dataDir string, badgerCfg BadgerConfig, logger *slog.Logger) (*BadgerRepository, error) {
	dir := filepath.Join(dataDir, "addressbook")
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, domain.ErrStorageError.WithCause(err)
	}

	engine, err := NewBadgerEngine(KVConfig{Dir: dir, Badger: badgerCfg}, logger)
	if err != nil {
		return nil, domain.ErrStorageError.WithCause(err)
	}
	return NewBadgerRepository(engine, logger), nil
}

// Engine returns the underlying KV engine.
func (r *BadgerRepository) Engine() KVEngine {
	return r.kv
}

// Load implements Repository.
func (r *BadgerRepository) Load(ctx context.Context) ([]*domain.Person, error) {
	if err := r.checkSchema(ctx); err != nil {
		return nil, err
	}

	persons := []*domain.Person{}
	var decodeErr error

	err := r.kv.Scan(ctx, []byte(personKeyPrefix), func(key, value []byte) bool {
		var p domain.Person
		if err := json.Unmarshal(value, &p); err != nil {
			decodeErr = fmt.Errorf("decode %s: %w", key, err)
			return false
		}
		if err := p.Validate(); err != nil {
			decodeErr = fmt.Errorf("invalid record %s: %w", key, err)
			return false
		}
		persons = append(persons, &p)
		return true
	})
	if err == nil {
		err = decodeErr
	}
	if err != nil {
		return nil, domain.ErrStorageError.WithCause(err)
	}

	r.logger.Debug("address book loaded", "persons", len(persons))
	return persons, nil
}

// Save implements Repository.
func (r *BadgerRepository) Save(ctx context.Context, persons []*domain.Person) error {
	entries := make([]KV, 0, len(persons))
	for i, p := range persons {
		value, err := json.Marshal(p)
		if err != nil {
			return domain.ErrStorageError.WithCause(err)
		}
		entries = append(entries, KV{Key: personKey(i), Value: value})
	}

	if err := r.kv.ReplacePrefix(ctx, []byte(personKeyPrefix), entries); err != nil {
		return domain.ErrStorageError.WithCause(err)
	}
	if err := r.kv.Set(ctx, []byte(schemaKey), []byte(schemaVersion)); err != nil {
		return domain.ErrStorageError.WithCause(err)
	}

	r.logger.Debug("address book saved", "persons", len(persons))
	return nil
}

// checkSchema rejects stores written with an unknown record layout.
// A store that was never saved has no marker.
func (r *BadgerRepository) checkSchema(ctx context.Context) error {
	v, err := r.kv.Get(ctx, []byte(schemaKey))
	if errors.Is(err, ErrKeyNotFound) {
		return nil
	}
	if err != nil {
		return domain.ErrStorageError.WithCause(err)
	}
	if string(v) != schemaVersion {
		return domain.ErrStorageError.WithDetails(fmt.Sprintf("unsupported schema version %q", v))
	}
	return nil
}

// Close implements Repository.
func (r *BadgerRepository) Close() error {
	return r.kv.Close()
}

func personKey(position int) []byte {
	return []byte(fmt.Sprintf("%s%08d", personKeyPrefix, position))
}

// EphemeralRepository keeps nothing between runs.
type EphemeralRepository struct{}

// NewEphemeralRepository creates an EphemeralRepository.
func NewEphemeralRepository() EphemeralRepository {
	return EphemeralRepository{}
}

// Load implements Repository.
func (EphemeralRepository) Load(context.Context) ([]*domain.Person, error) {
	return []*domain.Person{}, nil
}

// Save implements Repository.
func (EphemeralRepository) Save(context.Context, []*domain.Person) error {
	return nil
}

// Close implements Repository.
func (EphemeralRepository) Close() error {
	return nil
}
