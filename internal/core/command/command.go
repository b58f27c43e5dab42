// Package command defines the executable ConnectUS commands.
//
// Commands are produced by the parser and run against a Model. Each
// command type carries its keyword (Word) and usage text (Usage); the
// usage texts back the help lookup.
package command

import (
	"context"

	"github.com/yndnr/connectus-go/internal/core/domain"
)

// Model is the address book a command operates on.
type Model interface {
	// HasPerson reports whether a person with the same identity exists.
	HasPerson(p *domain.Person) bool

	// AddPerson appends p to the address book.
	AddPerson(ctx context.Context, p *domain.Person) error

	// SetPerson replaces target with edited.
	SetPerson(ctx context.Context, target, edited *domain.Person) error

	// DeletePerson removes p from the address book.
	DeletePerson(ctx context.Context, p *domain.Person) error

	// ClearPersons removes every person.
	ClearPersons(ctx context.Context) error

	// FilteredPersons returns the persons currently displayed.
	FilteredPersons() []*domain.Person

	// UpdateFilter sets the display filter; nil shows everyone.
	UpdateFilter(pred func(*domain.Person) bool)
}

// Command is an executable command.
type Command interface {
	// Word returns the keyword that invokes the command.
	Word() string

	// Execute runs the command against m.
	Execute(ctx context.Context, m Model) (*Result, error)
}

// Result is the outcome of a command.
type Result struct {
	// Feedback is shown to the user.
	Feedback string

	// ShowHelp asks the front end to show general help.
	ShowHelp bool

	// Exit asks the front end to terminate.
	Exit bool
}

// NewResult creates a Result with only feedback set.
func NewResult(feedback string) *Result {
	return &Result{Feedback: feedback}
}

// personAt returns the displayed person at index.
func personAt(m Model, index domain.Index) (*domain.Person, error) {
	list := m.FilteredPersons()
	i := index.ZeroBased()
	if i < 0 || i >= len(list) {
		return nil, domain.ErrInvalidPersonIndex
	}
	return list[i], nil
}
