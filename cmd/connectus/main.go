// Package main provides the entry point for connectus.
//
// connectus is a contact manager for NUS students. Without arguments it
// starts an interactive session; subcommands run single command lines
// and maintain the local store.
package main

import (
	"fmt"
	"os"

	"github.com/yndnr/connectus-go/internal/cli/command"
)

func main() {
	app := command.App()

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
