package asker

import (
	"context"
	"errors"
	"testing"

	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/sa6mwa/chapterpod/internal/infra/adapters/logger"
)

func TestAsk(t *testing.T) {
	ctx := logger.WithLogger(context.Background(), logger.Discard())
	tables := []struct {
		name     string
		dryrun   bool
		force    bool
		terminal bool
		answer   string
		err      error
		want     bool
	}{
		{"dry-run wins over force", true, true, true, answerYes, nil, false},
		{"force", false, true, false, "", nil, true},
		{"no terminal", false, false, false, answerYes, nil, false},
		{"yes", false, false, true, answerYes, nil, true},
		{"no", false, false, true, answerNo, nil, false},
		{"interrupted", false, false, true, "", terminal.InterruptErr, false},
		{"prompt error", false, false, true, answerYes, errors.New("boom"), false},
	}
	for _, table := range tables {
		prompted := false
		a := &forAsking{
			dryrun:     table.dryrun,
			force:      table.force,
			isTerminal: func() bool { return table.terminal },
			prompt: func(string) (string, error) {
				prompted = true
				return table.answer, table.err
			},
		}
		if got := a.Ask(ctx, "Upload %s?", "podcast.xml"); got != table.want {
			t.Errorf("%s: got %v, want %v", table.name, got, table.want)
		}
		if prompted && (table.dryrun || table.force || !table.terminal) {
			t.Errorf("%s: should not have prompted", table.name)
		}
	}
}
