package logger

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestFromContext(t *testing.T) {
	if FromContext(context.Background()) == nil {
		t.Fatal("FromContext without a logger returned nil")
	}
	buf := &bytes.Buffer{}
	ctx := WithLogger(context.Background(), New(buf, false))
	l := FromContext(ctx)
	l.Debug("hidden")
	l.Info("Found chapter files", "count", 3)
	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("debug record logged at info level: %q", out)
	}
	if !strings.Contains(out, "Found chapter files") || !strings.Contains(out, "count=3") {
		t.Errorf("info record missing, got: %q", out)
	}
}

func TestVerbose(t *testing.T) {
	buf := &bytes.Buffer{}
	New(buf, true).Debug("Episode", "chapter", 1)
	if !strings.Contains(buf.String(), "Episode") {
		t.Errorf("debug record missing with verbose, got: %q", buf.String())
	}
}
