package repl

import (
	"strings"

	"github.com/yndnr/connectus-go/internal/core/command"
	"github.com/yndnr/connectus-go/internal/core/syntax"
)

// Completer suggests command words and argument prefixes.
type Completer struct {
	commands []string
	prefixes []string
}

// NewCompleter creates a Completer over every command keyword.
func NewCompleter() *Completer {
	c := &Completer{commands: append(command.Words(), quitWord)}
	for _, p := range syntax.All {
		c.prefixes = append(c.prefixes, p.String())
	}
	return c
}

// Complete returns suggestions for the last word of line. The first word
// completes to command keywords, later words to field prefixes.
func (c *Completer) Complete(line string) []string {
	fields := strings.Fields(line)
	trailingSpace := strings.HasSuffix(line, " ") || strings.HasSuffix(line, "\t")

	if len(fields) == 0 || (len(fields) == 1 && !trailingSpace) {
		prefix := ""
		if len(fields) == 1 {
			prefix = fields[0]
		}
		return matching(c.commands, prefix)
	}

	last := ""
	if !trailingSpace {
		last = fields[len(fields)-1]
	}
	return matching(c.prefixes, last)
}

func matching(candidates []string, prefix string) []string {
	var out []string
	for _, s := range candidates {
		if strings.HasPrefix(s, prefix) {
			out = append(out, s)
		}
	}
	return out
}
