// Package repl provides the interactive connectus session.
//
// Each line is handed to an Engine, which parses it into a command,
// executes it against the address book and records metrics. The REPL
// prints the feedback, the person list after list and search, and the
// general help when asked. History is kept in ~/.connectus/history.
package repl
