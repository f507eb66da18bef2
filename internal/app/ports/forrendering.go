package ports

import (
	"context"
	"io"

	"github.com/sa6mwa/chapterpod/internal/app/model"
)

// ForRendering should produce a podcast RSS feed from the model.
type ForRendering interface {
	WriteRSSTo(ctx context.Context, w io.Writer, feed *model.Feed) error
}
