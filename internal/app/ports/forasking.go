package ports

import "context"

// ForAsking confirms outward actions such as publishing the feed.
type ForAsking interface {
	// Ask formats a yes/no question and returns true for yes.
	// Implementations may answer without prompting (dry-run, force or
	// no terminal). The logger is taken from ctx.
	Ask(ctx context.Context, format string, a ...any) bool
}
