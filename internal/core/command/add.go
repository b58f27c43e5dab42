package command

import (
	"context"
	"fmt"

	"github.com/yndnr/connectus-go/internal/core/domain"
)

// AddWord is the keyword of AddCommand.
const AddWord = "add"

// AddUsage describes the add command.
const AddUsage = AddWord + ": Adds a person to the address book.\n" +
	"Parameters: n/NAME [p/PHONE] [e/EMAIL] [a/ADDRESS] [b/BIRTHDAY] " +
	"[ig/INSTAGRAM] [tg/TELEGRAM] [wa/WHATSAPP] " +
	"[r/REMARK]... [mod/MODULE]... [cca/CCA]... [ccapos/CCA_POSITION]... [maj/MAJOR]...\n" +
	"Example: " + AddWord + " n/John Doe p/98765432 e/johnd@example.com " +
	"a/311, Clementi Ave 2, #02-25 b/14/02/2000 tg/johndoe mod/CS2103T cca/NUS Hackers"

const msgAddSuccess = "New person added: %s"

// AddCommand adds a person to the address book.
type AddCommand struct {
	Person *domain.Person
}

// NewAddCommand creates an AddCommand for p.
func NewAddCommand(p *domain.Person) *AddCommand {
	return &AddCommand{Person: p}
}

func (c *AddCommand) Word() string { return AddWord }

// Execute adds the person, assigning an ID if it has none.
func (c *AddCommand) Execute(ctx context.Context, m Model) (*Result, error) {
	if m.HasPerson(c.Person) {
		return nil, domain.ErrDuplicatePerson
	}

	p := c.Person.Clone()
	if p.ID == "" {
		id, err := domain.GeneratePersonID()
		if err != nil {
			return nil, err
		}
		p.ID = id
	}

	if err := m.AddPerson(ctx, p); err != nil {
		return nil, err
	}
	return NewResult(fmt.Sprintf(msgAddSuccess, p)), nil
}
