package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/sa6mwa/chapterpod/internal/app/humanreadable"
	"github.com/sa6mwa/chapterpod/internal/app/model"
	"github.com/sa6mwa/chapterpod/internal/app/pipeline"
	"github.com/sa6mwa/chapterpod/internal/app/ports"
	"github.com/sa6mwa/chapterpod/internal/app/xmltext"
	"github.com/sa6mwa/chapterpod/internal/infra/adapters/asker"
	"github.com/sa6mwa/chapterpod/internal/infra/adapters/configurator"
	"github.com/sa6mwa/chapterpod/internal/infra/adapters/logger"
	"github.com/sa6mwa/chapterpod/internal/infra/adapters/persister"
	"github.com/sa6mwa/chapterpod/internal/infra/adapters/prober"
	"github.com/sa6mwa/chapterpod/internal/infra/adapters/renderer"
	"github.com/sa6mwa/chapterpod/internal/infra/adapters/uploader"
	"github.com/sa6mwa/chapterpod/internal/infra/adapters/verifier"
	"github.com/urfave/cli/v2"
)

var (
	ErrPublishNotConfigured error = errors.New("no publish bucket in configuration")
)

func newContext(c *cli.Context) context.Context {
	return logger.WithLogger(c.Context, logger.New(os.Stderr, c.Bool("verbose")))
}

func newProber(config *model.Config) ports.ForProbing {
	return prober.New(config.FFprobe)
}

func newConfigurator(c *cli.Context) ports.ForConfiguring {
	return configurator.New(c.String("config"), c.String("summaries"))
}

func newPipeline(c *cli.Context) *pipeline.Pipeline {
	p := pipeline.New(
		newConfigurator(c),
		newProber,
		renderer.New(),
		persister.New(),
	)
	if !c.Bool("no-verify") {
		p.WithVerifier(verifier.New())
	}
	return p
}

func generate(c *cli.Context) error {
	ctx := newContext(c)
	l := logger.FromContext(ctx)
	dryRun := c.Bool("dry-run")
	if c.Bool("upload") {
		if err := checkPublish(ctx, newConfigurator(c)); err != nil {
			return err
		}
	}
	p := newPipeline(c)

	var res *pipeline.Result
	if dryRun {
		var err error
		if res, err = p.Collect(ctx); err != nil {
			return err
		}
		document, err := p.Render(ctx, res)
		if err != nil {
			return err
		}
		if _, err := os.Stdout.Write(document); err != nil {
			return err
		}
		l.Info("Dry-run, feed written to stdout", "episodes", len(res.Feed.Episodes), "outputFile", res.Config.OutputFileExpanded())
	} else {
		var err error
		if res, err = p.Run(ctx); err != nil {
			return err
		}
		l.Info(fmt.Sprintf("Successfully generated %s", res.Config.OutputFileExpanded()))
	}

	if !c.Bool("upload") {
		return nil
	}
	return publish(ctx, res.Config, dryRun, c.Bool("force"))
}

// checkPublish fails if the configuration has nowhere to publish to,
// before anything is generated.
func checkPublish(ctx context.Context, c ports.ForConfiguring) error {
	config, err := c.Load(ctx)
	if err != nil {
		return err
	}
	if !config.Publish.Enabled() {
		return ErrPublishNotConfigured
	}
	return nil
}

func publish(ctx context.Context, config *model.Config, dryRun, force bool) error {
	pc := config.Publish
	if !pc.Enabled() {
		return ErrPublishNotConfigured
	}
	output := config.OutputFileExpanded()
	key := pc.GetKey(output)
	a := asker.New(dryRun, force)
	u := uploader.New(pc)
	if !dryRun {
		if err := u.Diff(ctx, pc.Bucket, key, output); err != nil {
			return err
		}
	}
	if !a.Ask(ctx, "Upload %s to s3://%s/%s?", output, pc.Bucket, key) {
		return nil
	}
	return u.Upload(ctx, &ports.ForUploadingRequest{
		Store:        pc.Bucket,
		To:           key,
		From:         output,
		ContentType:  uploader.RSSContentType,
		StorageClass: pc.GetStorageClass(),
	})
}

func list(c *cli.Context) error {
	ctx := newContext(c)
	res, err := newPipeline(c).Collect(ctx)
	if err != nil {
		return err
	}
	writeEpisodeTable(os.Stdout, res.Feed)
	return nil
}

// writeEpisodeTable prints episodes in feed order with unescaped
// titles and a footer with totals.
func writeEpisodeTable(w io.Writer, feed *model.Feed) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	style := table.StyleLight
	style.Format.Footer = text.FormatDefault
	t.SetStyle(style)
	t.AppendHeader(table.Row{"#", "Title", "Duration", "Size", "Type", "File"})
	var total int64
	for _, e := range feed.Episodes {
		total += e.Length
		t.AppendRow(table.Row{e.ChapterNumber, xmltext.Unescape(e.Title), e.Duration, humanreadable.IEC(e.Length), e.MimeType, e.Filename})
	}
	t.AppendFooter(table.Row{"", fmt.Sprintf("%d episode(s)", len(feed.Episodes)), "", humanreadable.IEC(total), "", ""})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight},
		{Number: 4, Align: text.AlignRight, AlignFooter: text.AlignRight},
	})
	t.Render()
}

func verify(c *cli.Context) error {
	ctx := newContext(c)
	l := logger.FromContext(ctx)
	files := c.Args().Slice()
	if len(files) == 0 {
		config, err := newConfigurator(c).Load(ctx)
		if err != nil {
			return err
		}
		files = []string{config.OutputFileExpanded()}
	}
	v := verifier.New()
	for _, f := range files {
		document, err := os.ReadFile(f)
		if err != nil {
			return err
		}
		items, err := v.Verify(ctx, document)
		if err != nil {
			return fmt.Errorf("%s: %w", f, err)
		}
		l.Info("Feed is valid", "file", f, "items", items, "size", humanreadable.IEC(int64(len(document))))
	}
	return nil
}
