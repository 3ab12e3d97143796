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

package squirrel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countErrors walks a parse tree counting SyntaxError nodes, mirroring
// get_syntax_errors but without building the flat list.
func countErrors(r MatchResult) int {
	if r.IsSyntaxError() {
		return 1
	}
	total := 0
	for _, c := range r.Children {
		total += countErrors(c)
	}
	return total
}

func skippedRegions(input string, errs []MatchResult) []string {
	var regions []string
	for _, e := range errs {
		if e.Len > 0 {
			regions = append(regions, input[e.Pos:e.Pos+e.Len])
		}
	}
	return regions
}

func parseWith(t *testing.T, grammar, topRule, input string) *ParseResult {
	t.Helper()
	rules, err := ParseGrammar(grammar)
	require.NoError(t, err)
	p, err := NewParser(rules, topRule, input)
	require.NoError(t, err)
	return p.Parse()
}

// Table-driven end-to-end scenarios, one row per spec scenario #1-#8.
func TestEndToEndScenarios(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		grammar       string
		topRule       string
		input         string
		wantSuccess   bool
		wantErrors    int
		wantSkipped   []string
		wantLen       int
		checkLen      bool
	}{
		{
			name:        "skipped input mid-sequence",
			grammar:     `S <- "a" "b" "c" ;`,
			topRule:     "S",
			input:       "aXbc",
			wantSuccess: true,
			wantErrors:  1,
			wantSkipped: []string{"X"},
		},
		{
			name:        "grammar deletion at EOF",
			grammar:     `S <- "a" "b" "c" ;`,
			topRule:     "S",
			input:       "ab",
			wantSuccess: true,
			wantErrors:  1,
			wantSkipped: nil,
		},
		{
			name:        "mid-parse deletion forbidden -> total failure",
			grammar:     `S <- "a" "b" "c" ;`,
			topRule:     "S",
			input:       "ac",
			wantSuccess: false,
		},
		{
			name:        "left recursion with recovery",
			grammar:     `E <- E "+" "n" / "n" ;`,
			topRule:     "E",
			input:       "n+Xn+n",
			wantSuccess: true,
			wantErrors:  1,
			wantSkipped: []string{"X"},
			wantLen:     6,
			checkLen:    true,
		},
		{
			name:        "repetition recovery, multiple skips",
			grammar:     `S <- "ab"+ ;`,
			topRule:     "S",
			input:       "abXabYabZab",
			wantSuccess: true,
			wantErrors:  3,
			wantSkipped: []string{"X", "Y", "Z"},
		},
		{
			name:        "zero or more then literal, clean parse",
			grammar:     `S <- "x"* "y" ;`,
			topRule:     "S",
			input:       "xxxy",
			wantSuccess: true,
			wantErrors:  0,
		},
		{
			name:        "nested repetition recovery",
			grammar:     `S <- ("(" "x"+ ")")+ ;`,
			topRule:     "S",
			input:       "(xAx)(xBx)(xCx)",
			wantSuccess: true,
			wantErrors:  3,
		},
		{
			name:        "interwoven left recursion",
			grammar:     `L <- P ".x" / "x"; P <- P "(n)" / L ;`,
			topRule:     "L",
			input:       "x(n)(n).x",
			wantSuccess: true,
			wantErrors:  0,
			wantLen:     9,
			checkLen:    true,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			pr := parseWith(t, tc.grammar, tc.topRule, tc.input)

			if !tc.wantSuccess {
				assert.True(t, pr.HasSyntaxErrors)
				assert.Equal(t, len(tc.input), pr.Root.Len,
					"total failure normalizes to a root-spanning SyntaxError")
				return
			}

			require.False(t, pr.Root.IsMismatch())
			errs := pr.GetSyntaxErrors()
			assert.Len(t, errs, tc.wantErrors)
			if tc.wantSkipped != nil {
				assert.Equal(t, tc.wantSkipped, skippedRegions(tc.input, errs))
			}
			if tc.checkLen {
				assert.Equal(t, tc.wantLen, pr.Root.Len+lenOf(pr.UnmatchedInput))
			}
			assert.Equal(t, len(tc.input), pr.Root.Len+lenOf(pr.UnmatchedInput),
				"spanning invariant: the parse covers the whole input")
		})
	}
}

func lenOf(m *MatchResult) int {
	if m == nil {
		return 0
	}
	return m.Len
}

func TestBoundaryBehaviors(t *testing.T) {
	t.Parallel()

	t.Run("zero or more on empty input", func(t *testing.T) {
		t.Parallel()
		p, err := NewParser(map[string]Clause{"S": NewZeroOrMore(NewLiteral("x"))}, "S", "")
		require.NoError(t, err)
		r := p.MatchRule("S", 0)
		require.False(t, r.IsMismatch())
		assert.Equal(t, 0, r.Len)
	})

	t.Run("one or more on empty input mismatches", func(t *testing.T) {
		t.Parallel()
		p, err := NewParser(map[string]Clause{"S": NewOneOrMore(NewLiteral("x"))}, "S", "")
		require.NoError(t, err)
		r := p.MatchRule("S", 0)
		assert.True(t, r.IsMismatch())
	})

	t.Run("optional on empty input", func(t *testing.T) {
		t.Parallel()
		p, err := NewParser(map[string]Clause{"S": NewOptional(NewLiteral("x"))}, "S", "")
		require.NoError(t, err)
		r := p.MatchRule("S", 0)
		require.False(t, r.IsMismatch())
		assert.Equal(t, 0, r.Len)
	})

	t.Run("negative lookahead", func(t *testing.T) {
		t.Parallel()
		rules := map[string]Clause{
			"S": NewSeq([]Clause{NewNotFollowedBy(NewLiteral("x")), NewLiteral("y")}),
		}
		p, err := NewParser(rules, "S", "y")
		require.NoError(t, err)
		r := p.MatchRule("S", 0)
		require.False(t, r.IsMismatch())
		assert.Equal(t, 1, r.Len)
	})
}

func TestRecoveryIsConservativeExtension(t *testing.T) {
	t.Parallel()
	grammar := `S <- "a" "b" "c" ;`
	input := "abc"

	rules, err := ParseGrammar(grammar)
	require.NoError(t, err)

	discovery, err := NewParser(rules, "S", input)
	require.NoError(t, err)
	discoveryResult := discovery.MatchRule("S", 0)

	pr := parseWith(t, grammar, "S", input)
	assert.False(t, pr.HasSyntaxErrors)
	assert.Equal(t, discoveryResult.Len, pr.Root.Len)
}

func TestNewParserRejectsUnresolvedRuleRef(t *testing.T) {
	t.Parallel()
	_, err := NewParser(map[string]Clause{"S": NewRuleRef("Missing")}, "S", "x")
	require.Error(t, err)
}

func TestNewParserRejectsConflictingTransparency(t *testing.T) {
	t.Parallel()
	rules := map[string]Clause{
		"S":  NewLiteral("a"),
		"~S": NewLiteral("b"),
	}
	_, err := NewParser(rules, "S", "a")
	require.Error(t, err)
}

func TestNewParserAcceptsValidRules(t *testing.T) {
	t.Parallel()
	rules := map[string]Clause{
		"S":   NewSeq([]Clause{NewRuleRef("A"), NewRuleRef("WS")}),
		"A":   NewLiteral("a"),
		"~WS": NewZeroOrMore(NewCharSingle(' ')),
	}
	p, err := NewParser(rules, "S", "a ")
	require.NoError(t, err)
	r := p.MatchRule("S", 0)
	require.False(t, r.IsMismatch())
	assert.True(t, p.transparentRules["WS"])
}

func TestCanMatchNonzeroAt(t *testing.T) {
	t.Parallel()
	p, err := NewParser(map[string]Clause{"S": NewLiteral("ab")}, "S", "xxab")
	require.NoError(t, err)
	assert.False(t, p.CanMatchNonzeroAt(NewLiteral("ab"), 0))
	assert.True(t, p.CanMatchNonzeroAt(NewLiteral("ab"), 2))
}
