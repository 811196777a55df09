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
	"io"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/poiesic/hyperfind"
	"github.com/poiesic/hyperfind/core"
	"github.com/poiesic/hyperfind/fuzzy"
	"github.com/poiesic/hyperfind/ingest"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "hyperfind",
		Usage: "Fuzzy pattern matching over a hypergraph corpus",
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
				Usage:  "Load s-expression atoms into a corpus",
				Action: seedCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to BadgerDB database directory",
						Required: true,
					},
					&cli.StringFlag{
						Name:    "file",
						Aliases: []string{"f"},
						Usage:   "Input file of s-expression atoms ('-' for stdin)",
						Value:   "-",
					},
					&cli.IntFlag{
						Name:  "pool-size",
						Usage: "Worker pool size for concurrent interning",
					},
					&cli.IntFlag{
						Name:  "batch-size",
						Usage: "Number of atoms interned per batch",
						Value: ingest.DefaultBatchSize,
					},
				},
			},
			{
				Name:   "query",
				Usage:  "Find the corpus atoms most similar to a pattern",
				Action: queryCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to BadgerDB database directory",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "pattern",
						Aliases:  []string{"p"},
						Usage:    "Pattern clauses as s-expressions, e.g. '(Link (Node \"Likes\") (Variable \"$x\"))'",
						Required: true,
					},
					&cli.StringSliceFlag{
						Name:  "reject",
						Usage: "Atoms (as s-expressions) that must not occur in a solution",
					},
					&cli.IntFlag{
						Name:  "max-searches",
						Usage: "Maximum number of starters to explore",
						Value: fuzzy.DefaultMaxSearches,
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

	db, err := hyperfind.NewDatabase(c.String("db"))
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	var opts []ingest.Option
	if c.IsSet("pool-size") {
		opts = append(opts, ingest.WithPoolSize(c.Int("pool-size")))
	}
	opts = append(opts, ingest.WithBatchSize(c.Int("batch-size")))

	loader, err := db.NewLoader(opts...)
	if err != nil {
		return fmt.Errorf("failed to create loader: %w", err)
	}
	defer loader.Release()

	var src io.Reader = os.Stdin
	filePath := c.String("file")
	if filePath != "-" {
		f, err := os.Open(filePath)
		if err != nil {
			return fmt.Errorf("failed to open input: %w", err)
		}
		defer f.Close()
		src = f
	}

	parsed, err := loader.LoadReader(ctx, src)
	if err != nil {
		return fmt.Errorf("load failed after %d atoms: %w", parsed, err)
	}
	loader.Wait()

	fmt.Fprintf(os.Stderr, "Loaded %d atoms\n", parsed)
	return nil
}

func queryCommand(c *cli.Context) error {
	ctx := context.Background()

	db, err := hyperfind.NewDatabase(c.String("db"))
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	clauses, err := parseClauses(c.String("pattern"))
	if err != nil {
		return fmt.Errorf("invalid pattern: %w", err)
	}
	if len(clauses) == 0 {
		return fmt.Errorf("pattern contains no clauses")
	}

	var reject []*core.Atom
	for _, expr := range c.StringSlice("reject") {
		atom, err := ingest.ParseAtom(expr)
		if err != nil {
			return fmt.Errorf("invalid reject atom: %w", err)
		}
		reject = append(reject, atom)
	}

	matcher, err := db.NewMatcher(fuzzy.BasicExplorer{},
		fuzzy.WithMaxSearches(c.Int("max-searches")))
	if err != nil {
		return fmt.Errorf("failed to create matcher: %w", err)
	}

	result, err := matcher.FindApproximate(ctx, fuzzy.NewPattern(clauses...), reject)
	if err != nil {
		return fmt.Errorf("query failed: %w", err)
	}

	if !result.Found {
		fmt.Fprintln(os.Stderr, "No matches found")
		return nil
	}

	fmt.Fprintf(os.Stderr, "Best score: %g\n", result.BestScore)
	for _, solution := range result.Solutions {
		fmt.Println(solution.String())
	}
	return nil
}

// parseClauses reads every s-expression in the pattern string.
func parseClauses(pattern string) ([]*core.Atom, error) {
	reader := ingest.NewReader(strings.NewReader(pattern))

	var clauses []*core.Atom
	for {
		clause, err := reader.Next()
		if err == io.EOF {
			return clauses, nil
		}
		if err != nil {
			return nil, err
		}
		clauses = append(clauses, clause)
	}
}

func setupLogger(c *cli.Context) error {
	// Get log level from flag and normalize to lowercase
	levelStr := strings.ToLower(c.String("log-level"))

	// Map string to slog.Level
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

	// Configure slog with the specified level
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
