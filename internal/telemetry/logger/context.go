package logger

import "context"

// contextKey is a type for context keys to avoid collisions.
type contextKey string

const (
	loggerKey    contextKey = "connectus.logger"
	sessionIDKey contextKey = "connectus.session_id"
	commandIDKey contextKey = "connectus.command_id"
)

// WithLogger adds a logger to the context.
func WithLogger(ctx context.Context, l Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// FromContext extracts the logger from context.
// Returns the default logger if none is set.
func FromContext(ctx context.Context) Logger {
	if l, ok := ctx.Value(loggerKey).(Logger); ok {
		return l
	}
	return Default()
}

// WithSessionID tags the context with the ID of the interactive session.
func WithSessionID(ctx context.Context, sessionID string) context.Context {
	return context.WithValue(ctx, sessionIDKey, sessionID)
}

// SessionIDFromContext extracts the session ID from context.
func SessionIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(sessionIDKey).(string); ok {
		return id
	}
	return ""
}

// WithCommandID tags the context with the sequence number of the
// command being executed.
func WithCommandID(ctx context.Context, commandID uint64) context.Context {
	return context.WithValue(ctx, commandIDKey, commandID)
}

// CommandIDFromContext extracts the command ID from context.
func CommandIDFromContext(ctx context.Context) (uint64, bool) {
	id, ok := ctx.Value(commandIDKey).(uint64)
	return id, ok
}

// L is a shorthand for FromContext that also enriches the logger
// with the session and command IDs from the context.
func L(ctx context.Context) Logger {
	l := FromContext(ctx)

	if sid := SessionIDFromContext(ctx); sid != "" {
		l = l.With("session_id", sid)
	}
	if cid, ok := CommandIDFromContext(ctx); ok {
		l = l.With("command_id", cid)
	}

	return l
}
