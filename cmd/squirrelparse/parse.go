// Copyright 2023 Google LLC.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      https://www.apache.org/licenses/LICENSE-2.0
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
	"os"

	"github.com/urfave/cli/v3"

	"github.com/gorecursive/squirrel"
)

func parseCommand() *cli.Command {
	return &cli.Command{
		Name:      "parse",
		Usage:     "Parse an input file against a grammar file",
		ArgsUsage: "<grammar-file> <top-rule> [input-file]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "enable debug logging",
			},
			&cli.BoolFlag{
				Name:  "stats",
				Usage: "print parser work statistics after parsing",
			},
			&cli.BoolFlag{
				Name:  "errors-only",
				Usage: "print only the syntax errors, not the full parse tree",
			},
		},
		Action: runParse,
	}
}

func runParse(_ context.Context, cmd *cli.Command) error {
	args := cmd.Args().Slice()
	if len(args) < 2 {
		return cli.Exit("usage: squirrelparse parse <grammar-file> <top-rule> [input-file]", 1)
	}
	grammarPath, topRule := args[0], args[1]

	grammarBytes, err := os.ReadFile(grammarPath) //#nosec G304 -- path comes from user args
	if err != nil {
		return fmt.Errorf("reading grammar file: %w", err)
	}

	rules, err := squirrel.ParseGrammar(string(grammarBytes))
	if err != nil {
		return fmt.Errorf("parsing grammar: %w", err)
	}

	var inputBytes []byte
	if len(args) >= 3 {
		inputBytes, err = os.ReadFile(args[2]) //#nosec G304 -- path comes from user args
		if err != nil {
			return fmt.Errorf("reading input file: %w", err)
		}
	} else {
		inputBytes, err = io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("reading stdin: %w", err)
		}
	}

	logger := newLogger(cmd.Bool("verbose"))
	defer logger.Sync() //nolint:errcheck

	stats := squirrel.NewStats()
	parser, err := squirrel.NewParser(rules, topRule, string(inputBytes),
		squirrel.WithLogger(logger),
		squirrel.WithStats(stats),
	)
	if err != nil {
		return fmt.Errorf("building parser: %w", err)
	}
	result := parser.Parse()

	if result.HasSyntaxErrors {
		for _, e := range result.GetSyntaxErrors() {
			fmt.Fprintf(os.Stderr, "%s: %s", squirrel.Locate("", string(inputBytes), e.Pos), e.PrettyString(string(inputBytes), 0))
		}
	}

	if !cmd.Bool("errors-only") {
		fmt.Println(squirrel.BuildAST(result).PrettyString(string(inputBytes)))
	}

	if cmd.Bool("stats") {
		fmt.Fprintf(os.Stderr, "clause matches: %d, cache hits: %d, LR expansions: %d, recoveries: %d\n",
			stats.ClauseMatches(), stats.CacheHits(), stats.LRExpansions(), stats.RecoveryAttempts())
	}

	if result.HasSyntaxErrors {
		return cli.Exit("", 1)
	}
	return nil
}

