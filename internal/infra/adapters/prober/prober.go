// prober reads the stream duration of audio files. It implements the
// ports.ForProbing interface. The container is sniffed from the file
// content, mp3 is read with github.com/sa6mwa/mp3duration and
// mp4/m4a with github.com/alfg/mp4. Anything else, or a file the
// native readers fail on, is handed to ffprobe if it is installed.
package prober

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/sa6mwa/chapterpod/internal/app/ports"
	"github.com/sa6mwa/chapterpod/internal/infra/adapters/logger"
)

var (
	ErrUnsupported error = errors.New("unsupported audio container")
)

const shell = "/bin/sh"
const shellCommandOption = "-c"

type container int

const (
	unknown container = iota
	mp3
	mp4
)

type forProbing struct {
	ffprobe string
}

// New returns a prober. ffprobe is the name or path of the ffprobe
// executable used as fallback, it is disabled if empty or not found.
func New(ffprobe string) ports.ForProbing {
	p := &forProbing{}
	if strings.TrimSpace(ffprobe) != "" {
		if path, err := exec.LookPath(ffprobe); err == nil {
			p.ffprobe = path
		}
	}
	return p
}

func (p *forProbing) Duration(ctx context.Context, path string) (float64, error) {
	l := logger.FromContext(ctx)
	contentType, err := GetFileContentType(path)
	if err != nil {
		return 0, err
	}

	var seconds float64
	switch classify(contentType) {
	case mp3:
		seconds, err = withContext(ctx, func() (float64, error) { return Mp3Duration(path) })
	case mp4:
		seconds, err = withContext(ctx, func() (float64, error) { return Mp4Duration(path) })
	default:
		err = fmt.Errorf("%w: %s", ErrUnsupported, contentType)
	}
	if err == nil {
		return seconds, nil
	}
	if ctx.Err() != nil || p.ffprobe == "" {
		return 0, err
	}
	l.Debug("Native duration reader failed, trying ffprobe", "file", path, "contentType", contentType, "error", err)
	seconds, ffErr := FFprobeDuration(ctx, p.ffprobe, path)
	if ffErr != nil {
		return 0, fmt.Errorf("%v (ffprobe: %w)", err, ffErr)
	}
	return seconds, nil
}

func classify(contentType string) container {
	ct := strings.ToLower(contentType)
	if i := strings.IndexByte(ct, ';'); i >= 0 {
		ct = ct[:i]
	}
	switch ct {
	case "audio/mpeg", "audio/mp3", "audio/x-mpeg":
		return mp3
	case "audio/mp4", "audio/x-m4a", "audio/x-m4b", "video/mp4", "video/quicktime", "video/x-m4v", "video/3gpp":
		return mp4
	}
	return unknown
}

// withContext runs fn and returns early with ctx.Err() if ctx is done
// before fn returns. fn is left to finish in the background.
func withContext(ctx context.Context, fn func() (float64, error)) (float64, error) {
	type result struct {
		seconds float64
		err     error
	}
	ch := make(chan result, 1)
	go func() {
		s, err := fn()
		ch <- result{s, err}
	}()
	select {
	case <-ctx.Done():
		return 0, ctx.Err()
	case r := <-ch:
		return r.seconds, r.err
	}
}
