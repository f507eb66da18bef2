package ports

import (
	"context"

	"github.com/sa6mwa/chapterpod/internal/app/model"
)

type ForConfiguring interface {
	// Load reads, defaults and validates the podcast configuration.
	// Any error is fatal to a run.
	Load(ctx context.Context) (*model.Config, error)
	// LoadSummaries reads the optional summary list configured in
	// config. A missing summary file is not an error and returns a nil
	// list.
	LoadSummaries(ctx context.Context, config *model.Config) (model.SummaryList, error)
}
