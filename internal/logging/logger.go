// Package logging is the structured logger every Learnify component takes.
package logging

import "context"

// Logger takes alternating key/value args after the message:
//
//	log.Warn(ctx, "malformed slot replaced", "slot", key, "error", err)
type Logger interface {
	Debug(ctx context.Context, msg string, args ...any)
	Info(ctx context.Context, msg string, args ...any)
	Warn(ctx context.Context, msg string, args ...any)
	Error(ctx context.Context, msg string, args ...any)

	// With returns a child logger carrying args on every record.
	With(args ...any) Logger
}
