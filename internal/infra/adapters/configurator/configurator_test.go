package configurator

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/sa6mwa/chapterpod/internal/app/model"
	"github.com/sa6mwa/chapterpod/internal/infra/adapters/logger"
)

const jsonConfig = `{
  "chaptersDirectory": "./chapters",
  "fileExtension": ".MP3",
  "audioBaseURL": "https://example.com/audio/",
  "podcastTitle": "Principles of AI",
  "podcastLink": "https://example.com",
  "author": "Jane Doe",
  "podcastDescription": "A book, read aloud.",
  "coverArtURL": "https://example.com/cover.jpg",
  "outputFile": "podcast.xml",
  "someUnknownField": true
}`

const yamlConfig = `chaptersDirectory: ./chapters
fileExtension: m4a
audioBaseURL: https://example.com/audio/
podcastTitle: Principles of AI
podcastSubtitle: Knowledge of AI
podcastLink: https://example.com
author: Jane Doe
podcastDescription: A book, read aloud.
coverArtURL: https://example.com/cover.jpg
outputFile: podcast.xml
summaryFile: summaries.yaml
probeTimeout: 30s
publish:
  bucket: my-bucket
  region: eu-north-1
`

const tomlConfig = `chaptersDirectory = "./chapters"
fileExtension = ".mp3"
audioBaseURL = "https://example.com/audio/"
podcastTitle = "Principles of AI"
podcastLink = "https://example.com"
author = "Jane Doe"
podcastDescription = "A book, read aloud."
coverArtURL = "https://example.com/cover.jpg"
outputFile = "podcast.xml"
markdown = true

[publish]
bucket = "my-bucket"
key = "feeds/podcast.xml"
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return p
}

func testContext() context.Context {
	return logger.WithLogger(context.Background(), logger.Discard())
}

func TestLoadJSON(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "config.json", jsonConfig)
	c, err := New(p, "").Load(testContext())
	if err != nil {
		t.Fatal(err)
	}
	if c.FileExtension != ".mp3" {
		t.Errorf("FileExtension was incorrect, got: %s, want: .mp3", c.FileExtension)
	}
	if c.PodcastSubtitle != "Principles of AI" {
		t.Errorf("PodcastSubtitle was incorrect, got: %s", c.PodcastSubtitle)
	}
	if want := filepath.Join(dir, model.DefaultSummaryFile); c.SummaryFile != want {
		t.Errorf("SummaryFile was incorrect, got: %s, want: %s", c.SummaryFile, want)
	}
}

func TestLoadYAML(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "config.yaml", yamlConfig)
	c, err := New(p, "").Load(testContext())
	if err != nil {
		t.Fatal(err)
	}
	if c.FileExtension != ".m4a" || c.PodcastSubtitle != "Knowledge of AI" || c.ProbeTimeout != "30s" {
		t.Errorf("unexpected configuration: %+v", c)
	}
	if !c.Publish.Enabled() || c.Publish.Region != "eu-north-1" {
		t.Errorf("unexpected publish configuration: %+v", c.Publish)
	}
	if want := filepath.Join(dir, "summaries.yaml"); c.SummaryFile != want {
		t.Errorf("SummaryFile was incorrect, got: %s, want: %s", c.SummaryFile, want)
	}
}

func TestLoadTOML(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "config.toml", tomlConfig)
	c, err := New(p, "/elsewhere/summary.json").Load(testContext())
	if err != nil {
		t.Fatal(err)
	}
	if !c.Markdown || c.Publish.GetKey(c.OutputFile) != "feeds/podcast.xml" {
		t.Errorf("unexpected configuration: %+v", c)
	}
	if c.SummaryFile != "/elsewhere/summary.json" {
		t.Errorf("summary override was not applied, got: %s", c.SummaryFile)
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()
	tables := []struct {
		name    string
		file    string
		content string
	}{
		{"malformed", "config.json", `{"chaptersDirectory": `},
		{"missing fields", "config.json", `{"chaptersDirectory": "x"}`},
		{"unsupported", "config.ini", `a=b`},
	}
	for _, table := range tables {
		p := writeFile(t, dir, table.file, table.content)
		if _, err := New(p, "").Load(testContext()); err == nil {
			t.Errorf("%s: expected error", table.name)
		}
	}

	p := writeFile(t, dir, "partial.json", `{"chaptersDirectory": "x"}`)
	if _, err := New(p, "").Load(testContext()); !errors.Is(err, model.ErrMissingField) {
		t.Errorf("expected ErrMissingField, got: %v", err)
	}
	if _, err := New(filepath.Join(dir, "nope.json"), "").Load(testContext()); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected not exist error, got: %v", err)
	}
}

func TestLoadSummaries(t *testing.T) {
	dir := t.TempDir()
	c := New("", "")
	ctx := testContext()

	missing := &model.Config{SummaryFile: filepath.Join(dir, "summary.json")}
	s, err := c.LoadSummaries(ctx, missing)
	if err != nil || s != nil {
		t.Errorf("missing summary file should give nil, nil, got: %v, %v", s, err)
	}

	p := writeFile(t, dir, "summary.json", `["A", "B & <C>", null, 42, ""]`)
	s, err = c.LoadSummaries(ctx, &model.Config{SummaryFile: p})
	if err != nil {
		t.Fatal(err)
	}
	want := model.SummaryList{"A", "B & <C>", "", "", ""}
	if len(s) != len(want) {
		t.Fatalf("got %d summaries, want %d", len(s), len(want))
	}
	for i := range want {
		if s[i] != want[i] {
			t.Errorf("summary %d was incorrect, got: %q, want: %q", i, s[i], want[i])
		}
	}

	p = writeFile(t, dir, "summary.yaml", "- First\n- Second\n")
	s, err = c.LoadSummaries(ctx, &model.Config{SummaryFile: p})
	if err != nil || len(s) != 2 || s[1] != "Second" {
		t.Errorf("unexpected yaml summaries: %v, %v", s, err)
	}

	p = writeFile(t, dir, "broken.json", `["A",`)
	if _, err := c.LoadSummaries(ctx, &model.Config{SummaryFile: p}); err == nil {
		t.Error("expected error for malformed summary file")
	}
}
