package persister

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gofrs/flock"
	"github.com/sa6mwa/chapterpod/internal/infra/adapters/logger"
)

func testContext() context.Context {
	return logger.WithLogger(context.Background(), logger.Discard())
}

func TestPersist(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "podcast.xml")
	p := New()
	for _, content := range []string{"first", "second, longer than the first"} {
		if err := p.Persist(testContext(), path, []byte(content)); err != nil {
			t.Fatal(err)
		}
		b, err := os.ReadFile(path)
		if err != nil {
			t.Fatal(err)
		}
		if string(b) != content {
			t.Errorf("content was incorrect, got: %q, want: %q", b, content)
		}
	}
	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatal(err)
	}
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	if len(names) != 2 || names[0] != "podcast.xml" || names[1] != "podcast.xml"+LockSuffix {
		t.Errorf("expected podcast.xml and its lock file only, got: %v", names)
	}
}

func TestPersistEmptyPath(t *testing.T) {
	if err := New().Persist(testContext(), "", []byte("x")); !errors.Is(err, ErrEmptyPath) {
		t.Errorf("expected ErrEmptyPath, got: %v", err)
	}
}

func TestPersistLocked(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "podcast.xml")
	if err := os.WriteFile(path, []byte("previous"), 0644); err != nil {
		t.Fatal(err)
	}
	held := flock.New(path + LockSuffix)
	if err := held.Lock(); err != nil {
		t.Fatal(err)
	}
	defer held.Unlock()

	ctx, cancel := context.WithTimeout(testContext(), 300*time.Millisecond)
	defer cancel()
	if err := New().Persist(ctx, path, []byte("new")); !errors.Is(err, ErrLocked) {
		t.Errorf("expected ErrLocked, got: %v", err)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != "previous" {
		t.Errorf("locked file was modified, got: %q", b)
	}
}
