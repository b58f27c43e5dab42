package command

import (
	"context"
	"fmt"

	"github.com/yndnr/connectus-go/internal/core/domain"
)

// Keywords of the tag commands.
const (
	AddTagWord    = "add-t"
	DeleteTagWord = "delete-t"
)

// AddTagUsage describes the add-t command.
const AddTagUsage = AddTagWord + ": Adds tags to the person identified by the index number " +
	"used in the displayed person list. Existing tags are kept.\n" +
	"Parameters: INDEX (must be a positive integer) " +
	"[r/REMARK]... [mod/MODULE]... [cca/CCA]... [ccapos/CCA_POSITION]... [maj/MAJOR]...\n" +
	"Example: " + AddTagWord + " 1 mod/CS2101 cca/NUS Hackers"

// DeleteTagUsage describes the delete-t command.
const DeleteTagUsage = DeleteTagWord + ": Deletes one tag from the person identified by the index number " +
	"used in the displayed person list. The tag is chosen by its index within its category.\n" +
	"Parameters: INDEX (must be a positive integer) " +
	"[r/REMARK_INDEX] | [mod/MODULE_INDEX] | [cca/CCA_INDEX] | [ccapos/CCA_POSITION_INDEX] | [maj/MAJOR_INDEX]\n" +
	"Example: " + DeleteTagWord + " 1 mod/2"

const (
	msgAddTagSuccess    = "Added tags to Person: %s"
	msgDeleteTagSuccess = "Deleted %s tag from Person: %s"
)

// AddTagCommand merges tags into the person at Index.
type AddTagCommand struct {
	Index domain.Index
	Tags  domain.Tags
}

// NewAddTagCommand creates an AddTagCommand.
func NewAddTagCommand(index domain.Index, tags domain.Tags) *AddTagCommand {
	return &AddTagCommand{Index: index, Tags: tags}
}

func (c *AddTagCommand) Word() string { return AddTagWord }

func (c *AddTagCommand) Execute(ctx context.Context, m Model) (*Result, error) {
	target, err := personAt(m, c.Index)
	if err != nil {
		return nil, err
	}

	edited := target.Clone()
	edited.Tags = edited.Tags.Union(c.Tags)
	if err := m.SetPerson(ctx, target, edited); err != nil {
		return nil, err
	}
	return NewResult(fmt.Sprintf(msgAddTagSuccess, edited)), nil
}

// DeleteTagCommand removes the tag at TagIndex of category Kind from the
// person at Index.
type DeleteTagCommand struct {
	Index    domain.Index
	Kind     domain.TagKind
	TagIndex domain.Index
}

// NewDeleteTagCommand creates a DeleteTagCommand.
func NewDeleteTagCommand(index domain.Index, kind domain.TagKind, tagIndex domain.Index) *DeleteTagCommand {
	return &DeleteTagCommand{Index: index, Kind: kind, TagIndex: tagIndex}
}

func (c *DeleteTagCommand) Word() string { return DeleteTagWord }

func (c *DeleteTagCommand) Execute(ctx context.Context, m Model) (*Result, error) {
	target, err := personAt(m, c.Index)
	if err != nil {
		return nil, err
	}

	set, ok := target.Tags.Get(c.Kind).RemoveAt(c.TagIndex.ZeroBased())
	if !ok {
		return nil, domain.ErrInvalidTagIndex
	}

	edited := target.Clone()
	edited.Tags = edited.Tags.With(c.Kind, set)
	if err := m.SetPerson(ctx, target, edited); err != nil {
		return nil, err
	}
	return NewResult(fmt.Sprintf(msgDeleteTagSuccess, c.Kind, edited)), nil
}
