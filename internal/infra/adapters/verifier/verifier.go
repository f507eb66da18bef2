// verifier checks a rendered feed before it is persisted or
// published. It implements the ports.ForVerifying interface. A
// document passes if encoding/xml can decode it into model.Rss, it is
// RSS 2.0 and github.com/mmcdole/gofeed finds the same items.
package verifier

import (
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"

	"github.com/mmcdole/gofeed"
	"github.com/sa6mwa/chapterpod/internal/app/model"
	"github.com/sa6mwa/chapterpod/internal/app/ports"
	"github.com/sa6mwa/chapterpod/internal/infra/adapters/logger"
)

var (
	ErrMalformed    error = errors.New("feed is not well-formed")
	ErrNotRSS       error = errors.New("feed is not RSS 2.0")
	ErrUnreadable   error = errors.New("feed could not be read by a feed parser")
	ErrInconsistent error = errors.New("feed parsers disagree on the number of items")
	ErrIncomplete   error = errors.New("item is missing a required element")
)

type forVerifying struct{}

func New() ports.ForVerifying {
	return &forVerifying{}
}

func (v *forVerifying) Verify(ctx context.Context, document []byte) (int, error) {
	l := logger.FromContext(ctx)
	var rss model.Rss
	if err := xml.Unmarshal(document, &rss); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	if rss.Version != "2.0" {
		return 0, fmt.Errorf("%w: version %q", ErrNotRSS, rss.Version)
	}
	for i, item := range rss.Channel.Items {
		if err := checkItem(item); err != nil {
			return 0, fmt.Errorf("item %d: %w", i+1, err)
		}
	}

	feed, err := gofeed.NewParser().Parse(bytes.NewReader(document))
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrUnreadable, err)
	}
	if len(feed.Items) != len(rss.Channel.Items) {
		return 0, fmt.Errorf("%w: %d != %d", ErrInconsistent, len(feed.Items), len(rss.Channel.Items))
	}
	l.Debug("Verified feed", "title", feed.Title, "type", feed.FeedType, "version", feed.FeedVersion, "items", len(feed.Items))
	return len(feed.Items), nil
}

func checkItem(item model.RssItem) error {
	switch {
	case item.Title == "":
		return fmt.Errorf("%w: title", ErrIncomplete)
	case item.Enclosure.URL == "":
		return fmt.Errorf("%w: enclosure url", ErrIncomplete)
	case item.Enclosure.Type == "":
		return fmt.Errorf("%w: enclosure type", ErrIncomplete)
	case item.Guid.Text == "":
		return fmt.Errorf("%w: guid", ErrIncomplete)
	}
	return nil
}
