package repl

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/oklog/ulid/v2"

	"github.com/yndnr/connectus-go/internal/cli/output"
	"github.com/yndnr/connectus-go/internal/core/command"
	"github.com/yndnr/connectus-go/internal/core/domain"
	"github.com/yndnr/connectus-go/internal/telemetry/logger"
)

const (
	prompt   = "connectus> "
	quitWord = "quit"
)

// REPL represents the Read-Eval-Print Loop.
type REPL struct {
	input     io.Reader
	output    io.Writer
	engine    *Engine
	formatter output.Formatter
	completer *Completer
	history   *History
	sessionID string
}

// Option configures a REPL.
type Option func(*REPL)

// WithIO replaces stdin and stdout.
func WithIO(in io.Reader, out io.Writer) Option {
	return func(r *REPL) {
		r.input = in
		r.output = out
	}
}

// WithFormatter sets how person lists are printed.
func WithFormatter(f output.Formatter) Option {
	return func(r *REPL) { r.formatter = f }
}

// WithHistory sets the command history.
func WithHistory(h *History) Option {
	return func(r *REPL) { r.history = h }
}

// New creates a new REPL instance evaluating lines with engine.
func New(engine *Engine, opts ...Option) *REPL {
	r := &REPL{
		input:     os.Stdin,
		output:    os.Stdout,
		engine:    engine,
		formatter: &output.TableFormatter{},
		completer: NewCompleter(),
		history:   NewHistory("", DefaultHistorySize),
		sessionID: ulid.Make().String(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// SessionID identifies this session in logs.
func (r *REPL) SessionID() string {
	return r.sessionID
}

// Run starts the REPL loop. It returns when the user exits, input ends
// or ctx is cancelled.
func (r *REPL) Run(ctx context.Context) error {
	ctx = logger.WithSessionID(ctx, r.sessionID)
	logger.L(ctx).Debug("session started")

	scanner := bufio.NewScanner(r.input)
	for {
		if err := ctx.Err(); err != nil {
			return nil
		}

		fmt.Fprint(r.output, prompt)
		if !scanner.Scan() {
			fmt.Fprintln(r.output)
			break
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		r.history.Add(line)

		if line == quitWord {
			line = command.ExitWord
		}
		exit, err := r.Execute(ctx, line)
		if err != nil {
			r.printError(line, err)
			continue
		}
		if exit {
			break
		}
	}

	logger.L(ctx).Debug("session ended")
	return scanner.Err()
}

// Execute evaluates a single line and prints its feedback. A failed
// command prints nothing; its error is returned. exit reports whether the
// command asked to end the session.
func (r *REPL) Execute(ctx context.Context, line string) (exit bool, err error) {
	cmd, res, err := r.engine.Eval(ctx, line)
	if err != nil {
		return false, err
	}

	if res.Feedback != "" {
		fmt.Fprintln(r.output, res.Feedback)
	}
	if res.ShowHelp {
		fmt.Fprintln(r.output, command.GeneralHelp())
	}

	switch cmd.Word() {
	case command.ListWord, command.SearchWord:
		if persons := r.engine.Model().FilteredPersons(); len(persons) > 0 {
			if err := r.formatter.Format(r.output, persons); err != nil {
				return false, err
			}
		}
	}

	return res.Exit, nil
}

func (r *REPL) printError(line string, err error) {
	fmt.Fprintln(r.output, domain.UserMessage(err))

	if !errors.Is(err, domain.ErrUnknownCommand) {
		return
	}
	word, _, _ := strings.Cut(line, " ")
	if word == "" {
		return
	}
	if suggestions := r.completer.Complete(word[:1]); len(suggestions) > 0 {
		fmt.Fprintf(r.output, "Did you mean: %s\n", strings.Join(suggestions, ", "))
	}
}
