package ports

import "context"

// ForProbing extracts audio metadata from a file.
type ForProbing interface {
	// Duration returns the stream duration of the file at path in
	// seconds. Implementations should honour ctx cancellation and
	// deadlines.
	Duration(ctx context.Context, path string) (float64, error)
}
