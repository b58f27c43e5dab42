package command

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/connectus-go/internal/cli/repl"
	"github.com/yndnr/connectus-go/internal/core/command"
	"github.com/yndnr/connectus-go/internal/core/domain"
	"github.com/yndnr/connectus-go/internal/telemetry/logger"
)

// ExecCommand returns the one-shot command runner.
func ExecCommand() *cli.Command {
	return &cli.Command{
		Name:      "exec",
		Aliases:   []string{"x"},
		Usage:     "Run a command line, or every line of a file",
		ArgsUsage: "[COMMAND LINE]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "file",
				Aliases: []string{"f"},
				Usage:   "Read command lines from `FILE` (- for stdin)",
			},
			&cli.BoolFlag{
				Name:  "keep-going",
				Usage: "Continue after a failed line",
			},
		},
		Action: execLines,
	}
}

// ListCommand returns a shortcut for exec list, or exec search when
// keywords are given.
func ListCommand() *cli.Command {
	return &cli.Command{
		Name:      "list",
		Aliases:   []string{"ls"},
		Usage:     "List persons, optionally filtered by search keywords",
		ArgsUsage: "[n/NAME] [mod/MODULE]...",
		Action: func(c *cli.Context) error {
			line := command.ListWord
			if c.Args().Present() {
				line = command.SearchWord + " " + strings.Join(c.Args().Slice(), " ")
			}
			return runLines(c, []string{line}, false)
		},
	}
}

func execLines(c *cli.Context) error {
	var lines []string
	switch file := c.String("file"); {
	case file != "":
		var err error
		if lines, err = readLines(c, file); err != nil {
			return err
		}
	case c.Args().Present():
		lines = []string{strings.Join(c.Args().Slice(), " ")}
	default:
		return cli.Exit("exec: a command line or --file is required", 2)
	}
	return runLines(c, lines, c.Bool("keep-going"))
}

// runLines evaluates lines in order against the configured address book.
// Blank lines and lines starting with # are skipped.
func runLines(c *cli.Context, lines []string, keepGoing bool) error {
	rt, err := openRuntime(c.Context, getConfig(c))
	if err != nil {
		return err
	}
	defer rt.Close()

	session := repl.New(
		repl.NewEngine(rt.book, repl.WithMetrics(rt.metrics), repl.WithEngineLogger(logger.Default())),
		repl.WithIO(strings.NewReader(""), c.App.Writer),
		repl.WithFormatter(formatter(c)),
	)

	failed := 0
	for n, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		exit, err := session.Execute(c.Context, line)
		if err != nil {
			failed++
			PrintError(c, "line %d: %s", n+1, domain.UserMessage(err))
			if !keepGoing {
				break
			}
			continue
		}
		if exit {
			break
		}
	}

	if err := rt.Close(); err != nil {
		return err
	}
	if failed > 0 {
		return cli.Exit("", 1)
	}
	return nil
}

func readLines(c *cli.Context, file string) ([]string, error) {
	var r io.Reader = c.App.Reader
	if file != "-" {
		f, err := os.Open(file)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}

	var lines []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	return lines, scanner.Err()
}
