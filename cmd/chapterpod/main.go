package main

import (
	"fmt"
	"log"
	"os"

	"github.com/sa6mwa/chapterpod/internal/infra/adapters/configurator"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "chapterpod",
		Usage: "Render a podcast RSS feed from a directory of chaptered audio files (Chapter_<N>_<Title>.<ext>) and optionally publish it to Amazon S3.",
		Commands: []*cli.Command{
			{
				Name:    "generate",
				Aliases: []string{"g"},
				Usage:   "Generate the feed and write it to the outputFile of the configuration",
				Action:  generate,
				Flags: append(commonFlags(),
					&cli.BoolFlag{
						Name:    "dry-run",
						Aliases: []string{"n"},
						Value:   false,
						Usage:   "Write the feed to stdout instead of the output file, answer no to every question",
					},
					&cli.BoolFlag{
						Name:    "upload",
						Aliases: []string{"u"},
						Value:   false,
						Usage:   "Upload the feed to the S3 bucket in the publish section of the configuration",
					},
					&cli.BoolFlag{
						Name:    "force",
						Aliases: []string{"f"},
						Value:   false,
						Usage:   "Do not ask whether to proceed with an action, just do it",
					},
					&cli.BoolFlag{
						Name:  "no-verify",
						Value: false,
						Usage: "Do not parse the rendered feed back before writing it",
					},
				),
			},
			{
				Name:    "list",
				Aliases: []string{"l"},
				Usage:   "List the episodes that would be in the feed, in feed order",
				Action:  list,
				Flags:   commonFlags(),
			},
			{
				Name:      "verify",
				Aliases:   []string{"v"},
				Usage:     "Verify existing feed file(s), or the outputFile of the configuration if none are given",
				ArgsUsage: "[feed.xml ...]",
				Action:    verify,
				Flags:     commonFlags(),
			},
		},
	}
	if err := app.Run(os.Args); err != nil {
		log.Fatalf("ERROR: %v", err)
	}
}

func commonFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Value:   configurator.DefaultConfigFile,
			Usage:   "Configuration file (.json, .yaml, .yml or .toml)",
		},
		&cli.StringFlag{
			Name:    "summaries",
			Aliases: []string{"s"},
			Usage:   fmt.Sprintf("Summary file overriding summaryFile in the configuration (default %q next to the configuration)", "summary.json"),
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Value:   false,
			Usage:   "Log at debug level",
		},
	}
}
