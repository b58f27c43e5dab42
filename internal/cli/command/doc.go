// Package command provides the connectus command-line interface.
//
// It uses urfave/cli/v2. Without a subcommand the binary starts an
// interactive session:
//
//   - repl.go: interactive session, config watching, signal handling
//   - exec.go: one-shot and batch execution, list shortcut
//   - store.go: storage statistics and value log GC
//   - config.go: config show, path, init and validate
//   - version.go: build information
//
// Global flags override the config file, which overrides the defaults.
// CONNECTUS_* environment variables sit between the file and the flags.
package command
