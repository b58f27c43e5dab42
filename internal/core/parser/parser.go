// Package parser turns ConnectUS command lines into commands.
//
// A line is split into a command word and its arguments. The arguments
// are tokenized by prefix markers (see package syntax), each value is
// validated by a field parser, and the result is assembled into a
// command.Command. Every failure is a *domain.DomainError whose Message is
// the text to show the user.
package parser

import (
	"regexp"
	"strings"

	"github.com/yndnr/connectus-go/internal/core/command"
	"github.com/yndnr/connectus-go/internal/core/domain"
)

// ParseFunc parses the arguments that follow a command word.
type ParseFunc func(args string) (command.Command, error)

var parsers = map[string]ParseFunc{
	command.AddWord:       ParseAdd,
	command.AddTagWord:    ParseAddTag,
	command.ClearWord:     parseClear,
	command.DeleteWord:    ParseDelete,
	command.DeleteTagWord: ParseDeleteTag,
	command.EditWord:      ParseEdit,
	command.ExitWord:      parseExit,
	command.HelpWord:      ParseHelp,
	command.ListWord:      parseList,
	command.SearchWord:    ParseSearch,
}

var basicCommandFormat = regexp.MustCompile(`^(\S+)(.*)$`)

// SplitCommand separates the command word from its arguments.
// The arguments keep their leading whitespace. ok is false for blank input.
func SplitCommand(input string) (word, args string, ok bool) {
	match := basicCommandFormat.FindStringSubmatch(strings.TrimSpace(input))
	if match == nil {
		return "", "", false
	}
	return match[1], match[2], true
}

// IsCommandWord reports whether word names a command.
func IsCommandWord(word string) bool {
	_, ok := parsers[word]
	return ok
}

// Parse parses a full command line.
func Parse(input string) (command.Command, error) {
	word, args, ok := SplitCommand(input)
	if !ok {
		return nil, domain.InvalidCommandFormat(command.HelpUsage)
	}

	parse, ok := parsers[word]
	if !ok {
		return nil, domain.ErrUnknownCommand.WithDetails(word)
	}
	return parse(args)
}
