// Package logger provides structured logging for ConnectUS.
//
//   - logger.go: slog-based logger construction and level control
//   - context.go: context-aware logging with session and command IDs
//   - redact.go: masking of contact details
//
// Contact details are personal data. Attributes whose key names a
// contact field are masked before they reach the output.
package logger
