// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/poiesic/studygen/ai"
	"github.com/poiesic/studygen/ai/openai"
	"github.com/poiesic/studygen/cache"
	"github.com/poiesic/studygen/document"
	"github.com/poiesic/studygen/pipeline"
	"github.com/poiesic/studygen/store/rest"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "studygen",
		Usage: "Generate and seed study material from documents",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "seed",
				Usage:  "Process a document and seed the study store",
				Action: seedCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "doc",
						Aliases:  []string{"d"},
						Usage:    "Path to the document text file",
						EnvVars:  []string{"DOC_PATH"},
						Required: true,
					},
					&cli.StringFlag{
						Name:     "store-url",
						Usage:    "Base URL of the study store",
						EnvVars:  []string{"STORE_URL"},
						Required: true,
					},
					&cli.StringFlag{
						Name:    "store-key",
						Usage:   "Service key for the study store",
						EnvVars: []string{"STORE_SERVICE_KEY"},
					},
					&cli.StringFlag{
						Name:    "gen-host",
						Usage:   "Generation service host URL",
						EnvVars: []string{"GEN_HOST"},
						Value:   "http://localhost:11434/v1",
					},
					&cli.StringFlag{
						Name:    "gen-token",
						Usage:   "Generation service API token",
						EnvVars: []string{"OPENAI_API_KEY"},
						Value:   "none",
					},
					&cli.StringFlag{
						Name:    "gen-model",
						Usage:   "Generation model name",
						EnvVars: []string{"GEN_MODEL"},
						Value:   "qwen2.5:3b",
					},
					&cli.StringFlag{
						Name:    "subject",
						Usage:   "Subject the material prepares the student for",
						EnvVars: []string{"SUBJECT"},
						Value:   "this material",
					},
					&cli.BoolFlag{
						Name:  "pattern-only",
						Usage: "Skip the generation service and extract by pattern matching",
					},
					&cli.StringFlag{
						Name:    "cache-dir",
						Usage:   "Directory for the response cache (empty disables caching)",
						EnvVars: []string{"CACHE_DIR"},
					},
					&cli.DurationFlag{
						Name:  "pacing",
						Usage: "Minimum interval between generation calls",
						Value: 1 * time.Second,
					},
					&cli.IntFlag{
						Name:  "workers",
						Usage: "Number of topics to process concurrently",
						Value: 1,
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func seedCommand(c *cli.Context) error {
	ctx := context.Background()

	docPath := c.String("doc")
	if _, err := os.Stat(docPath); err != nil {
		return fmt.Errorf("document not readable: %w", err)
	}

	if c.String("store-key") == "" {
		return fmt.Errorf("store-key is required (set STORE_SERVICE_KEY)")
	}

	st, err := rest.NewClient(c.String("store-url"), c.String("store-key"))
	if err != nil {
		return fmt.Errorf("failed to create store client: %w", err)
	}

	var generator ai.Generator
	if !c.Bool("pattern-only") {
		genConfig := ai.NewConfig(
			ai.WithHost(c.String("gen-host")),
			ai.WithToken(c.String("gen-token")),
			ai.WithModel(c.String("gen-model")),
			ai.WithSubject(c.String("subject")),
		)

		var genOpts []openai.Option
		if dir := c.String("cache-dir"); dir != "" {
			responseCache, err := cache.Open(dir)
			if err != nil {
				return fmt.Errorf("failed to open response cache: %w", err)
			}
			defer responseCache.Close()
			genOpts = append(genOpts, openai.WithCache(responseCache))
		}

		generator, err = openai.NewGenerator(genConfig, genOpts...)
		if err != nil {
			return fmt.Errorf("failed to create generator: %w", err)
		}
	}

	p, err := pipeline.NewPipeline(st, generator,
		pipeline.WithPacing(c.Duration("pacing")),
		pipeline.WithPoolSize(c.Int("workers")))
	if err != nil {
		return fmt.Errorf("failed to create pipeline: %w", err)
	}
	defer p.Release()

	report, err := p.Run(ctx, document.FileSource{Path: docPath})
	if err != nil {
		return fmt.Errorf("run failed: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Chapters:   %d\n", report.Chapters)
	fmt.Fprintf(os.Stderr, "Topics:     %d\n", report.Topics)
	fmt.Fprintf(os.Stderr, "Links:      %d\n", report.Links)
	fmt.Fprintf(os.Stderr, "Concepts:   %d\n", report.Concepts)
	fmt.Fprintf(os.Stderr, "Flashcards: %d\n", report.Flashcards)
	fmt.Fprintf(os.Stderr, "Questions:  %d\n", report.Questions)
	if report.PatternMode {
		fmt.Fprintln(os.Stderr, "Outline derived by pattern extraction")
	}
	for _, skipped := range report.Skipped {
		fmt.Fprintf(os.Stderr, "Skipped: %s\n", skipped)
	}
	for _, title := range report.Unresolved {
		fmt.Fprintf(os.Stderr, "Unresolved title: %s\n", title)
	}
	for _, failure := range report.Failures {
		fmt.Fprintf(os.Stderr, "Write failure: %s\n", failure)
	}
	if len(report.Failures) > 0 {
		return fmt.Errorf("%d collection(s) failed to write", len(report.Failures))
	}
	return nil
}

func setupLogger(c *cli.Context) error {
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)
	return nil
}
