package command

import (
	"context"
	"sort"
	"strings"
)

// HelpWord is the keyword of HelpCommand.
const HelpWord = "help"

// HelpUsage describes the help command.
const HelpUsage = HelpWord + ": Shows the general help, or the usage of the given command.\n" +
	"Parameters: [COMMAND]\n" +
	"Example: " + HelpWord + " add"

const (
	msgShowingHelp    = "Showing general help."
	msgUsageRetrieved = "Command usage retrieved!\n"
)

// Usages maps every command keyword to its usage text.
var Usages = map[string]string{
	AddWord:       AddUsage,
	AddTagWord:    AddTagUsage,
	ClearWord:     ClearUsage,
	DeleteWord:    DeleteUsage,
	DeleteTagWord: DeleteTagUsage,
	EditWord:      EditUsage,
	ExitWord:      ExitUsage,
	HelpWord:      HelpUsage,
	ListWord:      ListUsage,
	SearchWord:    SearchUsage,
}

// Words returns every command keyword in sorted order.
func Words() []string {
	words := make([]string, 0, len(Usages))
	for w := range Usages {
		words = append(words, w)
	}
	sort.Strings(words)
	return words
}

// GeneralHelp returns the overview shown by a bare "help".
func GeneralHelp() string {
	var b strings.Builder
	b.WriteString("Available commands:\n")
	for _, w := range Words() {
		summary, _, _ := strings.Cut(Usages[w], "\n")
		b.WriteString("  " + summary + "\n")
	}
	b.WriteString("Type \"help COMMAND\" for the usage of a command.")
	return b.String()
}

// HelpCommand shows general help, or the usage of one command.
type HelpCommand struct {
	// Usage is the usage text to show; empty means general help.
	Usage string
}

// NewHelpCommand creates a HelpCommand.
func NewHelpCommand(usage string) *HelpCommand {
	return &HelpCommand{Usage: usage}
}

func (c *HelpCommand) Word() string { return HelpWord }

func (c *HelpCommand) Execute(context.Context, Model) (*Result, error) {
	if c.Usage == "" {
		return &Result{Feedback: msgShowingHelp, ShowHelp: true}, nil
	}
	return NewResult(msgUsageRetrieved + c.Usage), nil
}
