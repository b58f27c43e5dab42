package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/yndnr/connectus-go/internal/core/command"
	"github.com/yndnr/connectus-go/internal/core/domain"
	"github.com/yndnr/connectus-go/internal/telemetry/logger"
)

// PersonStore is the in-memory working copy of the address book.
type PersonStore interface {
	Has(name domain.Name) bool
	Add(ctx context.Context, p *domain.Person) error
	Set(ctx context.Context, id string, edited *domain.Person) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) []*domain.Person
	Replace(ctx context.Context, persons []*domain.Person) error
	Clear()
	Count() int
}

// Repository persists the whole address book.
type Repository interface {
	Load(ctx context.Context) ([]*domain.Person, error)
	Save(ctx context.Context, persons []*domain.Person) error
}

// SaveObserver is told about every persistence attempt.
type SaveObserver func(elapsed time.Duration, err error)

// Option configures an AddressBook.
type Option func(*AddressBook)

// WithLogger sets the logger.
func WithLogger(l logger.Logger) Option {
	return func(b *AddressBook) { b.logger = l }
}

// WithSaveObserver registers fn to observe saves.
func WithSaveObserver(fn SaveObserver) Option {
	return func(b *AddressBook) { b.onSave = fn }
}

// AddressBook implements command.Model.
type AddressBook struct {
	store  PersonStore
	repo   Repository
	logger logger.Logger
	onSave SaveObserver

	mu     sync.RWMutex
	filter func(*domain.Person) bool
}

var _ command.Model = (*AddressBook)(nil)

// NewAddressBook creates an AddressBook over store, persisted by repo.
func NewAddressBook(store PersonStore, repo Repository, opts ...Option) *AddressBook {
	b := &AddressBook{
		store:  store,
		repo:   repo,
		logger: logger.Default(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Load replaces the working copy with the persisted address book.
func (b *AddressBook) Load(ctx context.Context) error {
	persons, err := b.repo.Load(ctx)
	if err != nil {
		return err
	}
	if err := b.store.Replace(ctx, persons); err != nil {
		return domain.ErrStorageError.WithCause(err)
	}
	b.UpdateFilter(nil)
	b.logger.Info("address book loaded", "persons", len(persons))
	return nil
}

// HasPerson implements command.Model.
func (b *AddressBook) HasPerson(p *domain.Person) bool {
	return b.store.Has(p.Name)
}

// AddPerson implements command.Model.
func (b *AddressBook) AddPerson(ctx context.Context, p *domain.Person) error {
	if err := b.store.Add(ctx, p); err != nil {
		return err
	}
	logger.L(ctx).Debug("person added", "id", p.ID)
	return b.save(ctx)
}

// SetPerson implements command.Model.
func (b *AddressBook) SetPerson(ctx context.Context, target, edited *domain.Person) error {
	if err := b.store.Set(ctx, target.ID, edited); err != nil {
		return err
	}
	logger.L(ctx).Debug("person updated", "id", target.ID)
	return b.save(ctx)
}

// DeletePerson implements command.Model.
func (b *AddressBook) DeletePerson(ctx context.Context, p *domain.Person) error {
	if err := b.store.Delete(ctx, p.ID); err != nil {
		return err
	}
	logger.L(ctx).Debug("person deleted", "id", p.ID)
	return b.save(ctx)
}

// ClearPersons implements command.Model.
func (b *AddressBook) ClearPersons(ctx context.Context) error {
	b.store.Clear()
	logger.L(ctx).Debug("address book cleared")
	return b.save(ctx)
}

// FilteredPersons implements command.Model.
func (b *AddressBook) FilteredPersons() []*domain.Person {
	b.mu.RLock()
	filter := b.filter
	b.mu.RUnlock()

	all := b.store.List(context.Background())
	if filter == nil {
		return all
	}

	shown := make([]*domain.Person, 0, len(all))
	for _, p := range all {
		if filter(p) {
			shown = append(shown, p)
		}
	}
	return shown
}

// UpdateFilter implements command.Model.
func (b *AddressBook) UpdateFilter(pred func(*domain.Person) bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.filter = pred
}

// Persons returns every person regardless of the filter.
func (b *AddressBook) Persons() []*domain.Person {
	return b.store.List(context.Background())
}

// Count returns the number of persons.
func (b *AddressBook) Count() int {
	return b.store.Count()
}

// TagCounts returns the number of tag assignments per category name.
func (b *AddressBook) TagCounts() map[string]int {
	counts := make(map[string]int, len(domain.TagKinds))
	for _, kind := range domain.TagKinds {
		counts[kind.String()] = 0
	}
	for _, p := range b.Persons() {
		for _, kind := range domain.TagKinds {
			counts[kind.String()] += len(p.Tags.Get(kind))
		}
	}
	return counts
}

// Restore replaces every person with persons and persists the result.
// Empty entries, invalid fields and duplicate names are rejected and
// leave the book unchanged.
func (b *AddressBook) Restore(ctx context.Context, persons []*domain.Person) error {
	for i, p := range persons {
		if p == nil {
			return domain.ErrStorageError.WithDetails(fmt.Sprintf("restored entry %d is empty", i+1))
		}
		if err := p.Validate(); err != nil {
			return domain.ErrStorageError.
				WithDetails(fmt.Sprintf("restored entry %d (%s) is invalid", i+1, p.Name)).
				WithCause(err)
		}
	}
	if err := b.store.Replace(ctx, persons); err != nil {
		return err
	}
	b.UpdateFilter(nil)
	logger.L(ctx).Info("address book restored", "persons", len(persons))
	return b.save(ctx)
}

// Flush writes the working copy through the repository.
func (b *AddressBook) Flush(ctx context.Context) error {
	return b.save(ctx)
}

func (b *AddressBook) save(ctx context.Context) error {
	start := time.Now()
	err := b.repo.Save(ctx, b.store.List(ctx))
	if b.onSave != nil {
		b.onSave(time.Since(start), err)
	}
	if err != nil {
		logger.L(ctx).Error("save address book failed", "error", err)
		if !domain.IsDomainError(err, domain.ErrStorageError.Code) {
			err = domain.ErrStorageError.WithCause(err)
		}
		return err
	}
	return nil
}
