package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/yndnr/connectus-go/internal/core/domain"
	"github.com/yndnr/connectus-go/internal/storage/memory"
)

// mockRepo is an in-memory Repository for testing.
type mockRepo struct {
	persons []*domain.Person
	saves   int
	loadErr error
	saveErr error
}

func (m *mockRepo) Load(ctx context.Context) ([]*domain.Person, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	return m.persons, nil
}

func (m *mockRepo) Save(ctx context.Context, persons []*domain.Person) error {
	m.saves++
	if m.saveErr != nil {
		return m.saveErr
	}
	m.persons = persons
	return nil
}

func person(id, name string) *domain.Person {
	return &domain.Person{ID: id, Name: domain.Name(name)}
}

func names(persons []*domain.Person) []string {
	out := make([]string, len(persons))
	for i, p := range persons {
		out[i] = string(p.Name)
	}
	return out
}

func newTestBook(t *testing.T, initial ...*domain.Person) (*AddressBook, *mockRepo) {
	t.Helper()

	repo := &mockRepo{persons: initial}
	book := NewAddressBook(memory.New(), repo)
	if err := book.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	return book, repo
}

func TestAddressBook_Load(t *testing.T) {
	book, _ := newTestBook(t, person("cu-1", "Alice"), person("cu-2", "Bob"))

	if book.Count() != 2 {
		t.Fatalf("Count = %d, want 2", book.Count())
	}
	if diff := cmp.Diff([]string{"Alice", "Bob"}, names(book.FilteredPersons())); diff != "" {
		t.Errorf("FilteredPersons mismatch (-want +got):\n%s", diff)
	}
}

func TestAddressBook_LoadErrors(t *testing.T) {
	t.Run("repository error", func(t *testing.T) {
		repo := &mockRepo{loadErr: domain.ErrStorageError}
		book := NewAddressBook(memory.New(), repo)
		if err := book.Load(context.Background()); !errors.Is(err, domain.ErrStorageError) {
			t.Errorf("Load err = %v, want %v", err, domain.ErrStorageError)
		}
	})

	t.Run("duplicate records", func(t *testing.T) {
		repo := &mockRepo{persons: []*domain.Person{person("cu-1", "Alice"), person("cu-2", "ALICE")}}
		book := NewAddressBook(memory.New(), repo)
		if err := book.Load(context.Background()); !errors.Is(err, domain.ErrStorageError) {
			t.Errorf("Load err = %v, want %v", err, domain.ErrStorageError)
		}
	})
}

func TestAddressBook_MutationsPersist(t *testing.T) {
	book, repo := newTestBook(t, person("cu-1", "Alice"))
	ctx := context.Background()

	if err := book.AddPerson(ctx, person("cu-2", "Bob")); err != nil {
		t.Fatalf("AddPerson: %v", err)
	}
	if diff := cmp.Diff([]string{"Alice", "Bob"}, names(repo.persons)); diff != "" {
		t.Errorf("saved after add mismatch (-want +got):\n%s", diff)
	}

	target := book.FilteredPersons()[0]
	edited := target.Clone()
	edited.Phone = "91234567"
	if err := book.SetPerson(ctx, target, edited); err != nil {
		t.Fatalf("SetPerson: %v", err)
	}
	if repo.persons[0].Phone != "91234567" {
		t.Errorf("saved phone = %q, want 91234567", repo.persons[0].Phone)
	}

	if err := book.DeletePerson(ctx, book.FilteredPersons()[1]); err != nil {
		t.Fatalf("DeletePerson: %v", err)
	}
	if diff := cmp.Diff([]string{"Alice"}, names(repo.persons)); diff != "" {
		t.Errorf("saved after delete mismatch (-want +got):\n%s", diff)
	}

	if err := book.ClearPersons(ctx); err != nil {
		t.Fatalf("ClearPersons: %v", err)
	}
	if len(repo.persons) != 0 {
		t.Errorf("saved after clear = %v, want empty", names(repo.persons))
	}
	if repo.saves != 4 {
		t.Errorf("saves = %d, want 4", repo.saves)
	}
}

func TestAddressBook_HasPerson(t *testing.T) {
	book, _ := newTestBook(t, person("cu-1", "Alice Yeoh"))

	if !book.HasPerson(person("", "alice yeoh")) {
		t.Error("HasPerson should ignore case")
	}
	if book.HasPerson(person("", "Alice")) {
		t.Error("HasPerson(Alice) = true, want false")
	}
}

func TestAddressBook_AddDuplicate(t *testing.T) {
	book, repo := newTestBook(t, person("cu-1", "Alice"))

	err := book.AddPerson(context.Background(), person("cu-2", "ALICE"))
	if !errors.Is(err, domain.ErrDuplicatePerson) {
		t.Fatalf("AddPerson err = %v, want %v", err, domain.ErrDuplicatePerson)
	}
	if repo.saves != 0 {
		t.Errorf("saves = %d, want 0", repo.saves)
	}
}

func TestAddressBook_Filter(t *testing.T) {
	book, _ := newTestBook(t, person("cu-1", "Alice"), person("cu-2", "Bob"), person("cu-3", "Alicia"))

	book.UpdateFilter(func(p *domain.Person) bool {
		return p.Name[0] == 'A'
	})
	if diff := cmp.Diff([]string{"Alice", "Alicia"}, names(book.FilteredPersons())); diff != "" {
		t.Errorf("filtered mismatch (-want +got):\n%s", diff)
	}
	if len(book.Persons()) != 3 {
		t.Errorf("Persons = %d, want 3", len(book.Persons()))
	}

	book.UpdateFilter(nil)
	if len(book.FilteredPersons()) != 3 {
		t.Errorf("unfiltered = %d, want 3", len(book.FilteredPersons()))
	}
}

func TestAddressBook_SaveFailure(t *testing.T) {
	var observed []error
	repo := &mockRepo{saveErr: errors.New("disk full")}
	book := NewAddressBook(memory.New(), repo, WithSaveObserver(func(_ time.Duration, err error) {
		observed = append(observed, err)
	}))

	err := book.AddPerson(context.Background(), person("cu-1", "Alice"))
	if !errors.Is(err, domain.ErrStorageError) {
		t.Fatalf("AddPerson err = %v, want %v", err, domain.ErrStorageError)
	}
	if len(observed) != 1 || observed[0] == nil {
		t.Errorf("observer saw %v, want one error", observed)
	}

	// The working copy keeps the change; the next save writes it.
	if book.Count() != 1 {
		t.Errorf("Count = %d, want 1", book.Count())
	}
	repo.saveErr = nil
	if err := book.Flush(context.Background()); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	if diff := cmp.Diff([]string{"Alice"}, names(repo.persons)); diff != "" {
		t.Errorf("saved after flush mismatch (-want +got):\n%s", diff)
	}
}

func TestAddressBook_TagCounts(t *testing.T) {
	alice := person("cu-1", "Alice")
	alice.Tags = domain.Tags{
		Modules: domain.NewTagSet("CS2103T", "CS2101"),
		Ccas:    domain.NewTagSet("NUS Hackers"),
	}
	bob := person("cu-2", "Bob")
	bob.Tags = domain.Tags{Modules: domain.NewTagSet("CS2103T")}

	book, _ := newTestBook(t, alice, bob)

	want := map[string]int{
		"remark":       0,
		"module":       3,
		"cca":          1,
		"cca position": 0,
		"major":        0,
	}
	if diff := cmp.Diff(want, book.TagCounts()); diff != "" {
		t.Errorf("TagCounts mismatch (-want +got):\n%s", diff)
	}
}

func TestAddressBook_Restore(t *testing.T) {
	book, repo := newTestBook(t, person("cu-1", "Alice Pauline"))
	book.UpdateFilter(func(p *domain.Person) bool { return false })
	ctx := context.Background()

	restored := []*domain.Person{person("cu-2", "Benson Meier"), person("cu-3", "Carl Kurz")}
	if err := book.Restore(ctx, restored); err != nil {
		t.Fatalf("Restore: %v", err)
	}

	if diff := cmp.Diff([]string{"Benson Meier", "Carl Kurz"}, names(book.FilteredPersons())); diff != "" {
		t.Errorf("filtered persons mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"Benson Meier", "Carl Kurz"}, names(repo.persons)); diff != "" {
		t.Errorf("persisted persons mismatch (-want +got):\n%s", diff)
	}

	dup := []*domain.Person{person("cu-4", "Dan"), person("cu-5", "dan")}
	if err := book.Restore(ctx, dup); !errors.Is(err, domain.ErrDuplicatePerson) {
		t.Errorf("Restore(duplicates) error = %v, want %v", err, domain.ErrDuplicatePerson)
	}
	if book.Count() != 2 {
		t.Errorf("Count() = %d, want 2 after rejected restore", book.Count())
	}
}

func TestAddressBook_RestoreRejectsInvalid(t *testing.T) {
	tests := []struct {
		name    string
		persons []*domain.Person
		wantErr error
	}{
		{"nil entry", []*domain.Person{person("cu-2", "Benson Meier"), nil}, domain.ErrStorageError},
		{"bad phone", []*domain.Person{{ID: "cu-2", Name: "Bad", Phone: "not-a-phone"}}, domain.ErrPhoneConstraints},
		{"bad name", []*domain.Person{person("cu-2", "R@chel")}, domain.ErrNameConstraints},
		{"bad tag", []*domain.Person{{ID: "cu-2", Name: "Carl", Tags: domain.Tags{Modules: domain.TagSet{"CS 21$"}}}}, domain.ErrModuleConstraints},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			book, repo := newTestBook(t, person("cu-1", "Alice Pauline"))
			saves := repo.saves

			err := book.Restore(context.Background(), tt.persons)
			if !errors.Is(err, tt.wantErr) || !errors.Is(err, domain.ErrStorageError) {
				t.Fatalf("Restore() error = %v, want %v", err, tt.wantErr)
			}
			if diff := cmp.Diff([]string{"Alice Pauline"}, names(book.Persons())); diff != "" {
				t.Errorf("book changed by rejected restore (-want +got):\n%s", diff)
			}
			if repo.saves != saves {
				t.Errorf("rejected restore saved %d times", repo.saves-saves)
			}
		})
	}
}
