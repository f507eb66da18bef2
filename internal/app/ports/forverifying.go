package ports

import "context"

type ForVerifying interface {
	// Verify checks that document is a well-formed feed a podcast
	// client can read and returns the number of items found.
	Verify(ctx context.Context, document []byte) (items int, err error)
}
