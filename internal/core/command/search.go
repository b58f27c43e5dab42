package command

import (
	"context"
	"fmt"
	"strings"

	"github.com/yndnr/connectus-go/internal/core/domain"
	"github.com/yndnr/connectus-go/internal/core/syntax"
)

// SearchWord is the keyword of SearchCommand.
const SearchWord = "search"

// SearchUsage describes the search command.
const SearchUsage = SearchWord + ": Searches for persons whose fields contain the keywords " +
	"(case-insensitive) and displays them as a list with index numbers.\n" +
	"Keywords without a prefix match any field; prefixed keywords match only that field. " +
	"A person is listed only if every keyword matches.\n" +
	"Parameters: [KEYWORD]... [n/NAME]... [p/PHONE]... [e/EMAIL]... [a/ADDRESS]... [b/BIRTHDAY]... " +
	"[ig/INSTAGRAM]... [tg/TELEGRAM]... [wa/WHATSAPP]... " +
	"[r/REMARK]... [mod/MODULE]... [cca/CCA]... [ccapos/CCA_POSITION]... [maj/MAJOR]...\n" +
	"Example: " + SearchWord + " alice mod/CS2103T"

const msgPersonsListed = "%d persons listed!"

// SearchPredicate matches persons against keywords.
type SearchPredicate struct {
	// Keywords match against every field.
	Keywords []string

	// FieldKeywords match against the field introduced by the prefix.
	FieldKeywords map[syntax.Prefix][]string
}

// IsEmpty reports whether the predicate has no keyword at all.
func (sp *SearchPredicate) IsEmpty() bool {
	if len(sp.Keywords) > 0 {
		return false
	}
	for _, kws := range sp.FieldKeywords {
		if len(kws) > 0 {
			return false
		}
	}
	return true
}

// Test reports whether p matches every keyword.
func (sp *SearchPredicate) Test(p *domain.Person) bool {
	for _, kw := range sp.Keywords {
		if !anyFieldContains(p, kw) {
			return false
		}
	}
	for prefix, kws := range sp.FieldKeywords {
		values := fieldValues(p, prefix)
		for _, kw := range kws {
			if !containsFold(values, kw) {
				return false
			}
		}
	}
	return true
}

func anyFieldContains(p *domain.Person, kw string) bool {
	for _, prefix := range syntax.All {
		if containsFold(fieldValues(p, prefix), kw) {
			return true
		}
	}
	return false
}

func containsFold(values []string, kw string) bool {
	kw = strings.ToLower(kw)
	for _, v := range values {
		if strings.Contains(strings.ToLower(v), kw) {
			return true
		}
	}
	return false
}

// fieldValues returns the searchable values of the field behind prefix.
func fieldValues(p *domain.Person, prefix syntax.Prefix) []string {
	if kind, ok := syntax.TagKind(prefix); ok {
		return p.Tags.Get(kind)
	}
	var v string
	switch prefix {
	case syntax.Name:
		v = string(p.Name)
	case syntax.Phone:
		v = string(p.Phone)
	case syntax.Email:
		v = string(p.Email)
	case syntax.Address:
		v = string(p.Address)
	case syntax.Birthday:
		v = string(p.Birthday)
	case syntax.Instagram:
		v = string(p.SocialMedia.Instagram)
	case syntax.Telegram:
		v = string(p.SocialMedia.Telegram)
	case syntax.WhatsApp:
		v = string(p.SocialMedia.WhatsApp)
	}
	if v == "" {
		return nil
	}
	return []string{v}
}

// SearchCommand filters the displayed list.
type SearchCommand struct {
	Predicate *SearchPredicate
}

// NewSearchCommand creates a SearchCommand.
func NewSearchCommand(pred *SearchPredicate) *SearchCommand {
	return &SearchCommand{Predicate: pred}
}

func (c *SearchCommand) Word() string { return SearchWord }

func (c *SearchCommand) Execute(_ context.Context, m Model) (*Result, error) {
	m.UpdateFilter(c.Predicate.Test)
	return NewResult(fmt.Sprintf(msgPersonsListed, len(m.FilteredPersons()))), nil
}
