package command

import (
	"context"
	"fmt"

	"github.com/yndnr/connectus-go/internal/core/domain"
)

// EditWord is the keyword of EditCommand.
const EditWord = "edit"

// EditUsage describes the edit command.
const EditUsage = EditWord + ": Edits the details of the person identified " +
	"by the index number used in the displayed person list. " +
	"Existing values will be overwritten by the input values.\n" +
	"An empty optional field or tag prefix clears it.\n" +
	"Parameters: INDEX (must be a positive integer) [n/NAME] [p/PHONE] [e/EMAIL] [a/ADDRESS] [b/BIRTHDAY] " +
	"[ig/INSTAGRAM] [tg/TELEGRAM] [wa/WHATSAPP] " +
	"[r/REMARK]... [mod/MODULE]... [cca/CCA]... [ccapos/CCA_POSITION]... [maj/MAJOR]...\n" +
	"Example: " + EditWord + " 1 p/91234567 e/johndoe@example.com"

const msgEditSuccess = "Edited Person: %s"

// EditDescriptor holds the fields to change. A nil pointer leaves the field
// untouched; a pointer to an empty value clears an optional field.
type EditDescriptor struct {
	Name     *domain.Name
	Phone    *domain.Phone
	Email    *domain.Email
	Address  *domain.Address
	Birthday *domain.Birthday

	Instagram *domain.Instagram
	Telegram  *domain.Telegram
	WhatsApp  *domain.WhatsApp

	// Tags replaces whole categories; an empty set clears the category.
	Tags map[domain.TagKind]domain.TagSet
}

// IsAnyFieldEdited reports whether the descriptor changes anything.
func (d *EditDescriptor) IsAnyFieldEdited() bool {
	return d.Name != nil || d.Phone != nil || d.Email != nil || d.Address != nil || d.Birthday != nil ||
		d.Instagram != nil || d.Telegram != nil || d.WhatsApp != nil || len(d.Tags) > 0
}

// Apply returns a copy of p with the descriptor's changes.
func (d *EditDescriptor) Apply(p *domain.Person) *domain.Person {
	edited := p.Clone()
	setIf(&edited.Name, d.Name)
	setIf(&edited.Phone, d.Phone)
	setIf(&edited.Email, d.Email)
	setIf(&edited.Address, d.Address)
	setIf(&edited.Birthday, d.Birthday)
	setIf(&edited.SocialMedia.Instagram, d.Instagram)
	setIf(&edited.SocialMedia.Telegram, d.Telegram)
	setIf(&edited.SocialMedia.WhatsApp, d.WhatsApp)
	for kind, set := range d.Tags {
		edited.Tags = edited.Tags.With(kind, set)
	}
	return edited
}

func setIf[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}

// EditCommand edits the person at Index.
type EditCommand struct {
	Index      domain.Index
	Descriptor *EditDescriptor
}

// NewEditCommand creates an EditCommand.
func NewEditCommand(index domain.Index, d *EditDescriptor) *EditCommand {
	return &EditCommand{Index: index, Descriptor: d}
}

func (c *EditCommand) Word() string { return EditWord }

// Execute replaces the person at Index with its edited copy.
func (c *EditCommand) Execute(ctx context.Context, m Model) (*Result, error) {
	target, err := personAt(m, c.Index)
	if err != nil {
		return nil, err
	}

	edited := c.Descriptor.Apply(target)
	if !target.IsSamePerson(edited) && m.HasPerson(edited) {
		return nil, domain.ErrDuplicatePerson
	}

	if err := m.SetPerson(ctx, target, edited); err != nil {
		return nil, err
	}
	m.UpdateFilter(nil)
	return NewResult(fmt.Sprintf(msgEditSuccess, edited)), nil
}
