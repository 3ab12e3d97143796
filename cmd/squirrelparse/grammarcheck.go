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
	"os"
	"sort"

	"github.com/urfave/cli/v3"

	"github.com/gorecursive/squirrel"
)

func grammarCheckCommand() *cli.Command {
	return &cli.Command{
		Name:      "grammar-check",
		Usage:     "Parse a grammar file and report its rule names, or any grammar errors",
		ArgsUsage: "<grammar-file>",
		Action:    runGrammarCheck,
	}
}

func runGrammarCheck(_ context.Context, cmd *cli.Command) error {
	args := cmd.Args().Slice()
	if len(args) != 1 {
		return cli.Exit("usage: squirrelparse grammar-check <grammar-file>", 1)
	}

	grammarBytes, err := os.ReadFile(args[0]) //#nosec G304 -- path comes from user args
	if err != nil {
		return fmt.Errorf("reading grammar file: %w", err)
	}

	rules, err := squirrel.ParseGrammar(string(grammarBytes))
	if err != nil {
		return fmt.Errorf("grammar error: %w", err)
	}

	names := make([]string, 0, len(rules))
	for name := range rules {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		fmt.Println(name)
	}
	return nil
}
