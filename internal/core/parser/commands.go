package parser

import (
	"strings"

	"github.com/yndnr/connectus-go/internal/core/command"
	"github.com/yndnr/connectus-go/internal/core/domain"
	"github.com/yndnr/connectus-go/internal/core/syntax"
)

// ParseAdd parses the arguments of the add command.
func ParseAdd(args string) (command.Command, error) {
	m := Tokenize(args, syntax.All...)

	if !m.Has(syntax.Name) || m.Preamble() != "" {
		return nil, domain.InvalidCommandFormat(command.AddUsage)
	}

	nameValue, _ := m.Value(syntax.Name)
	name, err := ParseName(nameValue)
	if err != nil {
		return nil, err
	}
	p := &domain.Person{Name: name}

	if v, ok := m.Value(syntax.Phone); ok {
		if p.Phone, err = ParsePhone(v); err != nil {
			return nil, err
		}
	}
	if v, ok := m.Value(syntax.Email); ok {
		if p.Email, err = ParseEmail(v); err != nil {
			return nil, err
		}
	}
	if v, ok := m.Value(syntax.Address); ok {
		if p.Address, err = ParseAddress(v); err != nil {
			return nil, err
		}
	}
	if v, ok := m.Value(syntax.Birthday); ok {
		if p.Birthday, err = ParseBirthday(v); err != nil {
			return nil, err
		}
	}
	if p.SocialMedia, err = ParseSocialMedia(m); err != nil {
		return nil, err
	}
	if p.Tags, err = ParseAllTags(m); err != nil {
		return nil, err
	}

	return command.NewAddCommand(p), nil
}

// ParseEdit parses the arguments of the edit command.
func ParseEdit(args string) (command.Command, error) {
	m := Tokenize(args, syntax.All...)

	index, err := ParseIndex(m.Preamble())
	if err != nil {
		return nil, domain.InvalidCommandFormat(command.EditUsage).WithCause(err)
	}

	d := &command.EditDescriptor{}
	if v, ok := m.Value(syntax.Name); ok {
		name, err := ParseName(v)
		if err != nil {
			return nil, err
		}
		d.Name = &name
	}
	if d.Phone, err = parseOptional(m, syntax.Phone, ParsePhone); err != nil {
		return nil, err
	}
	if d.Email, err = parseOptional(m, syntax.Email, ParseEmail); err != nil {
		return nil, err
	}
	if d.Address, err = parseOptional(m, syntax.Address, ParseAddress); err != nil {
		return nil, err
	}
	if d.Birthday, err = parseOptional(m, syntax.Birthday, ParseBirthday); err != nil {
		return nil, err
	}
	if d.Instagram, err = parseOptional(m, syntax.Instagram, ParseInstagram); err != nil {
		return nil, err
	}
	if d.Telegram, err = parseOptional(m, syntax.Telegram, ParseTelegram); err != nil {
		return nil, err
	}
	if d.WhatsApp, err = parseOptional(m, syntax.WhatsApp, ParseWhatsApp); err != nil {
		return nil, err
	}

	for _, kind := range domain.TagKinds {
		set, ok, err := ParseTagsOptional(kind, m.AllValues(syntax.TagPrefix(kind)))
		if err != nil {
			return nil, err
		}
		if ok {
			if d.Tags == nil {
				d.Tags = make(map[domain.TagKind]domain.TagSet)
			}
			d.Tags[kind] = set
		}
	}

	if !d.IsAnyFieldEdited() {
		return nil, domain.ErrNotEdited
	}
	return command.NewEditCommand(index, d), nil
}

// ParseDelete parses the arguments of the delete command.
func ParseDelete(args string) (command.Command, error) {
	index, err := ParseIndex(args)
	if err != nil {
		return nil, domain.InvalidCommandFormat(command.DeleteUsage).WithCause(err)
	}
	return command.NewDeleteCommand(index), nil
}

// ParseSearch parses the arguments of the search command.
func ParseSearch(args string) (command.Command, error) {
	m := Tokenize(args, syntax.All...)

	pred := &command.SearchPredicate{
		Keywords:      ParseKeywords(m.Preamble()),
		FieldKeywords: make(map[syntax.Prefix][]string),
	}
	for _, p := range syntax.All {
		var kws []string
		for _, v := range m.AllValues(p) {
			kws = append(kws, ParseKeywords(v)...)
		}
		if len(kws) > 0 {
			pred.FieldKeywords[p] = kws
		}
	}

	if pred.IsEmpty() {
		return nil, domain.InvalidCommandFormat(command.SearchUsage)
	}
	return command.NewSearchCommand(pred), nil
}

// ParseHelp parses the arguments of the help command.
func ParseHelp(args string) (command.Command, error) {
	word := strings.TrimSpace(args)
	if word == "" {
		return command.NewHelpCommand(""), nil
	}

	usage, ok := command.Usages[word]
	if !ok {
		return nil, domain.InvalidCommandFormat(command.HelpUsage)
	}
	return command.NewHelpCommand(usage), nil
}

// ParseAddTag parses the arguments of the add-t command.
func ParseAddTag(args string) (command.Command, error) {
	m := Tokenize(args, syntax.Tags...)

	index, err := ParseIndex(m.Preamble())
	if err != nil {
		return nil, domain.InvalidCommandFormat(command.AddTagUsage).WithCause(err)
	}

	if len(m.Present(syntax.Tags...)) == 0 {
		return nil, domain.ErrNoTagGiven
	}

	tags, err := ParseAllTags(m)
	if err != nil {
		return nil, err
	}
	return command.NewAddTagCommand(index, tags), nil
}

// ParseDeleteTag parses the arguments of the delete-t command.
func ParseDeleteTag(args string) (command.Command, error) {
	m := Tokenize(args, syntax.Tags...)

	index, err := ParseIndex(m.Preamble())
	if err != nil {
		return nil, domain.InvalidCommandFormat(command.DeleteTagUsage).WithCause(err)
	}

	present := m.Present(syntax.Tags...)
	if len(present) != 1 || len(m.AllValues(present[0])) != 1 {
		return nil, domain.InvalidCommandFormat(command.DeleteTagUsage)
	}

	prefix := present[0]
	kind, _ := syntax.TagKind(prefix)
	v, _ := m.Value(prefix)
	tagIndex, err := ParseIndex(v)
	if err != nil {
		return nil, domain.InvalidCommandFormat(command.DeleteTagUsage).WithCause(err)
	}
	return command.NewDeleteTagCommand(index, kind, tagIndex), nil
}

func parseList(string) (command.Command, error)  { return command.ListCommand{}, nil }
func parseClear(string) (command.Command, error) { return command.ClearCommand{}, nil }
func parseExit(string) (command.Command, error)  { return command.ExitCommand{}, nil }
