// persister writes the rendered feed to disk. It implements the
// ports.ForPersisting interface. The output file is replaced by
// renaming a temporary file in the same directory while an advisory
// lock (path + ".lock") is held.
package persister

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"github.com/sa6mwa/chapterpod/internal/app/ports"
	"github.com/sa6mwa/chapterpod/internal/infra/adapters/logger"
)

var (
	ErrEmptyPath error = errors.New("empty output path")
	ErrLocked    error = errors.New("output file is locked by another process")
)

const (
	LockSuffix        = ".lock"
	DefaultPermission = 0644
	lockRetryDelay    = 100 * time.Millisecond
)

type forPersisting struct {
	perm os.FileMode
}

func New() ports.ForPersisting {
	return &forPersisting{perm: DefaultPermission}
}

func (p *forPersisting) Persist(ctx context.Context, path string, data []byte) error {
	l := logger.FromContext(ctx)
	if path == "" {
		return ErrEmptyPath
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	lock := flock.New(path + LockSuffix)
	locked, err := lock.TryLockContext(ctx, lockRetryDelay)
	if err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("%w: %s: %w", ErrLocked, path, err)
		}
		return err
	}
	if !locked {
		return fmt.Errorf("%w: %s", ErrLocked, path)
	}
	defer func() {
		if err := lock.Unlock(); err != nil {
			l.Warn("Unable to release lock", "lock", lock.Path(), "error", err)
		}
	}()

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	cleanup := func() {
		tmp.Close()
		os.Remove(tmpName)
	}
	if _, err := tmp.Write(data); err != nil {
		cleanup()
		return err
	}
	if err := tmp.Sync(); err != nil {
		cleanup()
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Chmod(tmpName, p.perm); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return err
	}
	l.Debug("Wrote file", "path", path, "bytes", len(data))
	return nil
}
