package prober

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sa6mwa/chapterpod/internal/infra/adapters/logger"
)

func TestClassify(t *testing.T) {
	tables := []struct {
		contentType string
		want        container
	}{
		{"audio/mpeg", mp3},
		{"AUDIO/MPEG", mp3},
		{"audio/x-m4a", mp4},
		{"video/mp4", mp4},
		{"audio/mp4; codecs=mp4a", mp4},
		{"audio/flac", unknown},
		{"application/octet-stream", unknown},
		{"text/plain; charset=utf-8", unknown},
	}
	for _, table := range tables {
		if got := classify(table.contentType); got != table.want {
			t.Errorf("classify(%q) was incorrect, got: %d, want: %d", table.contentType, got, table.want)
		}
	}
}

func TestParseFFprobeDuration(t *testing.T) {
	if d, err := parseFFprobeDuration(" 3661.250000 "); err != nil || d != 3661.25 {
		t.Errorf("got: %v, %v", d, err)
	}
	for _, s := range []string{"", "N/A", "abc"} {
		if _, err := parseFFprobeDuration(s); err == nil {
			t.Errorf("parseFFprobeDuration(%q) should fail", s)
		}
	}
}

func TestWithContext(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	release := make(chan struct{})
	defer close(release)
	_, err := withContext(ctx, func() (float64, error) {
		<-release
		return 1, nil
	})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected deadline exceeded, got: %v", err)
	}

	s, err := withContext(context.Background(), func() (float64, error) { return 42, nil })
	if err != nil || s != 42 {
		t.Errorf("got: %v, %v", s, err)
	}
}

func TestDurationUnreadableFile(t *testing.T) {
	ctx := logger.WithLogger(context.Background(), logger.Discard())
	dir := t.TempDir()
	p := filepath.Join(dir, "Chapter_1_Text.mp3")
	if err := os.WriteFile(p, []byte("this is plain text, not audio\n"), 0644); err != nil {
		t.Fatal(err)
	}
	// No ffprobe fallback.
	if _, err := New("").Duration(ctx, p); !errors.Is(err, ErrUnsupported) {
		t.Errorf("expected ErrUnsupported, got: %v", err)
	}
	if _, err := New("").Duration(ctx, filepath.Join(dir, "missing.mp3")); err == nil {
		t.Error("expected error for missing file")
	}
}
