package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/tidwall/btree"

	"github.com/yndnr/connectus-go/internal/core/domain"
)

// Store provides in-memory person storage with a name index.
type Store struct {
	// Primary storage, in display order.
	persons []*domain.Person

	// Secondary index: NameKey -> PersonID
	names *btree.Map[string, string]

	mu sync.RWMutex
}

// New creates a new in-memory store.
func New() *Store {
	return &Store{
		names: btree.NewMap[string, string](0),
	}
}

// Has reports whether a person with the given name exists.
func (s *Store) Has(name domain.Name) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.names.Get(domain.NameKey(name))
	return ok
}

// Add appends a person.
func (s *Store) Add(_ context.Context, p *domain.Person) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := domain.NameKey(p.Name)
	if _, ok := s.names.Get(key); ok {
		return domain.ErrDuplicatePerson
	}

	s.persons = append(s.persons, p.Clone())
	s.names.Set(key, p.ID)
	return nil
}

// Set replaces the person with ID id, keeping its position.
func (s *Store) Set(_ context.Context, id string, edited *domain.Person) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return domain.ErrPersonNotFound
	}

	oldKey := domain.NameKey(s.persons[i].Name)
	newKey := domain.NameKey(edited.Name)
	if newKey != oldKey {
		if _, ok := s.names.Get(newKey); ok {
			return domain.ErrDuplicatePerson
		}
		s.names.Delete(oldKey)
	}

	clone := edited.Clone()
	clone.ID = id
	s.persons[i] = clone
	s.names.Set(newKey, id)
	return nil
}

// Delete removes the person with ID id.
func (s *Store) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return domain.ErrPersonNotFound
	}

	s.names.Delete(domain.NameKey(s.persons[i].Name))
	s.persons = slices.Delete(s.persons, i, i+1)
	return nil
}

// List returns copies of all persons in display order.
func (s *Store) List(_ context.Context) []*domain.Person {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*domain.Person, len(s.persons))
	for i, p := range s.persons {
		out[i] = p.Clone()
	}
	return out
}

// Replace swaps the whole content for persons.
// Duplicates are rejected and leave the store unchanged.
func (s *Store) Replace(_ context.Context, persons []*domain.Person) error {
	names := btree.NewMap[string, string](0)
	list := make([]*domain.Person, 0, len(persons))
	for _, p := range persons {
		key := domain.NameKey(p.Name)
		if _, ok := names.Get(key); ok {
			return domain.ErrDuplicatePerson.WithDetails(string(p.Name))
		}
		names.Set(key, p.ID)
		list = append(list, p.Clone())
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.persons = list
	s.names = names
	return nil
}

// Clear removes every person.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.persons = nil
	s.names.Clear()
}

// Count returns the number of persons.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.persons)
}

func (s *Store) indexOf(id string) int {
	return slices.IndexFunc(s.persons, func(p *domain.Person) bool {
		return p.ID == id
	})
}
