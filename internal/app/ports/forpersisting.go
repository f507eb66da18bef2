package ports

import "context"

type ForPersisting interface {
	// Persist replaces the file at path with data. On error the
	// previous content of path (if any) is left untouched.
	Persist(ctx context.Context, path string, data []byte) error
}
