// pipeline sequences a feed run: load configuration and summaries,
// list chapter files, build one episode per file, sort by chapter,
// merge summaries, render and persist. Problems with a single file
// are logged and skipped, everything else aborts the run before
// any output is written.
package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sa6mwa/chapterpod/internal/app/episodes"
	"github.com/sa6mwa/chapterpod/internal/app/humanreadable"
	"github.com/sa6mwa/chapterpod/internal/app/model"
	"github.com/sa6mwa/chapterpod/internal/app/naming"
	"github.com/sa6mwa/chapterpod/internal/app/ports"
	"github.com/sa6mwa/chapterpod/internal/infra/adapters/logger"
)

var (
	ErrNoMatchingFiles error = errors.New("no files found")
	ErrNilPointer      error = errors.New("received nil pointer")
	ErrItemCount       error = errors.New("rendered feed has the wrong number of items")
)

type Stage string

const (
	StageLoadConfig    Stage = "load configuration"
	StageLoadSummaries Stage = "load summaries"
	StageListFiles     Stage = "list files"
	StageBuildEpisodes Stage = "build episodes"
	StageSerialize     Stage = "serialize"
	StagePersist       Stage = "persist"
)

// StageError is a fatal error, Stage is where the run stopped.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

func fail(stage Stage, err error) error {
	return &StageError{Stage: stage, Err: err}
}

// Failure is a file that was skipped.
type Failure struct {
	Filename string
	Err      error
}

type Result struct {
	Config *model.Config
	Feed   *model.Feed
	// Candidates is the number of files matching the extension filter.
	Candidates int
	// Skipped files in directory listing order.
	Skipped []Failure
}

// ProberFunc returns the prober to use for a loaded configuration.
type ProberFunc func(config *model.Config) ports.ForProbing

type Pipeline struct {
	configurator ports.ForConfiguring
	newProber    ProberFunc
	renderer     ports.ForRendering
	persister    ports.ForPersisting
	verifier     ports.ForVerifying
	convention   naming.Convention
}

// New returns a pipeline using the default naming convention and no
// verification of the rendered document.
func New(configurator ports.ForConfiguring, newProber ProberFunc, renderer ports.ForRendering, persister ports.ForPersisting) *Pipeline {
	return &Pipeline{
		configurator: configurator,
		newProber:    newProber,
		renderer:     renderer,
		persister:    persister,
		convention:   naming.Default(),
	}
}

// WithVerifier makes Render check the document with v before it is
// returned.
func (p *Pipeline) WithVerifier(v ports.ForVerifying) *Pipeline {
	p.verifier = v
	return p
}

func (p *Pipeline) WithConvention(c naming.Convention) *Pipeline {
	if c != nil {
		p.convention = c
	}
	return p
}

// Run collects, renders and persists the feed to the configured
// output file.
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	l := logger.FromContext(ctx)
	res, err := p.Collect(ctx)
	if err != nil {
		return nil, err
	}
	document, err := p.Render(ctx, res)
	if err != nil {
		return nil, err
	}
	output := res.Config.OutputFileExpanded()
	if err := p.persister.Persist(ctx, output, document); err != nil {
		return nil, fail(StagePersist, err)
	}
	l.Debug("Wrote feed", "output", output, "episodes", len(res.Feed.Episodes), "size", humanreadable.IEC(int64(len(document))))
	return res, nil
}

// Render serializes res.Feed and verifies it if a verifier is set.
func (p *Pipeline) Render(ctx context.Context, res *Result) ([]byte, error) {
	if res == nil || res.Feed == nil {
		return nil, fail(StageSerialize, ErrNilPointer)
	}
	buf := &bytes.Buffer{}
	if err := p.renderer.WriteRSSTo(ctx, buf, res.Feed); err != nil {
		return nil, fail(StageSerialize, err)
	}
	if p.verifier != nil {
		items, err := p.verifier.Verify(ctx, buf.Bytes())
		if err != nil {
			return nil, fail(StageSerialize, err)
		}
		if items != len(res.Feed.Episodes) {
			return nil, fail(StageSerialize, fmt.Errorf("%w: %d, expected %d", ErrItemCount, items, len(res.Feed.Episodes)))
		}
	}
	return buf.Bytes(), nil
}

// Collect runs every stage up to and including the summary merge.
func (p *Pipeline) Collect(ctx context.Context) (*Result, error) {
	l := logger.FromContext(ctx)

	cfg, err := p.configurator.Load(ctx)
	if err != nil {
		return nil, fail(StageLoadConfig, err)
	}

	summaries, err := p.configurator.LoadSummaries(ctx, cfg)
	if err != nil {
		return nil, fail(StageLoadSummaries, err)
	}
	if summaries == nil {
		l.Warn("Summary file not found, episodes will have generic summaries", "summaryFile", cfg.SummaryFile)
	} else {
		l.Info(fmt.Sprintf("Loaded %d summaries", len(summaries)), "summaryFile", cfg.SummaryFile)
	}

	dir := cfg.ChaptersDirectoryExpanded()
	files, err := ListFiles(dir, cfg.FileExtension)
	if err != nil {
		return nil, fail(StageListFiles, err)
	}
	if len(files) == 0 {
		return nil, fail(StageListFiles, fmt.Errorf("%w: no files with extension %q in %q", ErrNoMatchingFiles, cfg.FileExtension, dir))
	}
	l.Info(fmt.Sprintf("Found %d chapter file(s), processing metadata", len(files)), "directory", dir)

	built, skipped := p.buildAll(ctx, cfg, dir, files)
	if len(built) == 0 {
		return nil, fail(StageBuildEpisodes, fmt.Errorf("%w: none of the %d file(s) in %q could be used (expected %s)", ErrNoMatchingFiles, len(files), dir, p.convention.Expected()))
	}
	if len(skipped) > 0 {
		l.Warn(fmt.Sprintf("Skipped %d of %d file(s)", len(skipped), len(files)))
	}
	if n := len(summaries); n > 0 && n != len(built) {
		l.Warn("Number of summaries does not match number of episodes, summaries are assigned by position", "summaries", n, "episodes", len(built))
	}

	merged := episodes.Merge(episodes.Sort(built), summaries)
	return &Result{
		Config:     cfg,
		Feed:       model.NewFeed(cfg, merged),
		Candidates: len(files),
		Skipped:    skipped,
	}, nil
}

// buildAll processes files one at a time in listing order.
func (p *Pipeline) buildAll(ctx context.Context, cfg *model.Config, dir string, files []string) ([]model.Episode, []Failure) {
	l := logger.FromContext(ctx)
	prober := p.newProber(cfg)
	timeout, err := cfg.ProbeTimeoutDuration()
	if err != nil {
		timeout = model.DefaultProbeTimeout
	}

	var built []model.Episode
	var skipped []Failure
	for _, name := range files {
		e, err := p.build(ctx, prober, cfg, dir, name, timeout)
		if err != nil {
			if errors.Is(err, naming.ErrUnparseable) {
				l.Warn("Skipping file with incorrect format", "file", name, "expected", p.convention.Expected())
			} else {
				l.Warn("Skipping file", "file", name, "error", err)
			}
			skipped = append(skipped, Failure{Filename: name, Err: err})
			continue
		}
		l.Debug("Episode", "chapter", e.ChapterNumber, "file", name, "duration", e.Duration, "size", humanreadable.IEC(e.Length))
		built = append(built, e)
	}
	return built, skipped
}

func (p *Pipeline) build(ctx context.Context, prober ports.ForProbing, cfg *model.Config, dir, name string, timeout time.Duration) (model.Episode, error) {
	parsed, err := p.convention.Parse(name)
	if err != nil {
		return model.Episode{}, err
	}
	path := filepath.Join(dir, name)
	pctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	seconds, err := prober.Duration(pctx, path)
	if err != nil {
		return model.Episode{}, fmt.Errorf("unable to read audio metadata: %w", err)
	}
	return episodes.BuildFile(path, parsed, cfg.AudioBaseURL, seconds)
}

// ListFiles returns the names of regular files in dir whose extension
// equals ext (compared case-insensitively), sorted by name.
func ListFiles(dir, ext string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	ext = strings.ToLower(ext)
	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.ToLower(filepath.Ext(entry.Name())) == ext {
			files = append(files, entry.Name())
		}
	}
	return files, nil
}
