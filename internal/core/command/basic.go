package command

import (
	"context"
	"fmt"

	"github.com/yndnr/connectus-go/internal/core/domain"
)

// Keywords of the simple commands.
const (
	DeleteWord = "delete"
	ListWord   = "list"
	ClearWord  = "clear"
	ExitWord   = "exit"
)

// Usage texts of the simple commands.
const (
	DeleteUsage = DeleteWord + ": Deletes the person identified by the index number used in the displayed person list.\n" +
		"Parameters: INDEX (must be a positive integer)\n" +
		"Example: " + DeleteWord + " 1"

	ListUsage = ListWord + ": Lists all persons in the address book.\n" +
		"Example: " + ListWord

	ClearUsage = ClearWord + ": Clears all persons from the address book.\n" +
		"Example: " + ClearWord

	ExitUsage = ExitWord + ": Exits the application.\n" +
		"Example: " + ExitWord
)

const (
	msgDeleteSuccess = "Deleted Person: %s"
	msgListSuccess   = "Listed all persons"
	msgClearSuccess  = "Address book has been cleared!"
	msgExit          = "Exiting Address Book as requested ..."
)

// DeleteCommand deletes the person at Index.
type DeleteCommand struct {
	Index domain.Index
}

// NewDeleteCommand creates a DeleteCommand.
func NewDeleteCommand(index domain.Index) *DeleteCommand {
	return &DeleteCommand{Index: index}
}

func (c *DeleteCommand) Word() string { return DeleteWord }

func (c *DeleteCommand) Execute(ctx context.Context, m Model) (*Result, error) {
	target, err := personAt(m, c.Index)
	if err != nil {
		return nil, err
	}
	if err := m.DeletePerson(ctx, target); err != nil {
		return nil, err
	}
	return NewResult(fmt.Sprintf(msgDeleteSuccess, target)), nil
}

// ListCommand shows every person.
type ListCommand struct{}

func (ListCommand) Word() string { return ListWord }

func (ListCommand) Execute(_ context.Context, m Model) (*Result, error) {
	m.UpdateFilter(nil)
	return NewResult(msgListSuccess), nil
}

// ClearCommand removes every person.
type ClearCommand struct{}

func (ClearCommand) Word() string { return ClearWord }

func (ClearCommand) Execute(ctx context.Context, m Model) (*Result, error) {
	if err := m.ClearPersons(ctx); err != nil {
		return nil, err
	}
	return NewResult(msgClearSuccess), nil
}

// ExitCommand ends the session.
type ExitCommand struct{}

func (ExitCommand) Word() string { return ExitWord }

func (ExitCommand) Execute(context.Context, Model) (*Result, error) {
	return &Result{Feedback: msgExit, Exit: true}, nil
}
