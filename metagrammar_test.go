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

func TestParseGrammarBasicSequence(t *testing.T) {
	t.Parallel()
	rules, err := ParseGrammar(`S <- "a" "b" "c" ;`)
	require.NoError(t, err)
	require.Contains(t, rules, "S")

	p, err := NewParser(rules, "S", "abc")
	require.NoError(t, err)
	r := p.MatchRule("S", 0)
	require.False(t, r.IsMismatch())
	assert.Equal(t, 3, r.Len)
}

func TestParseGrammarCharClassAndRepetition(t *testing.T) {
	t.Parallel()
	rules, err := ParseGrammar(`Word <- [a-zA-Z]+ ;`)
	require.NoError(t, err)
	p, err := NewParser(rules, "Word", "Hello")
	require.NoError(t, err)
	r := p.MatchRule("Word", 0)
	require.False(t, r.IsMismatch())
	assert.Equal(t, 5, r.Len)
}

func TestParseGrammarLeftRecursion(t *testing.T) {
	t.Parallel()
	rules, err := ParseGrammar(`E <- E "+" "n" / "n" ;`)
	require.NoError(t, err)
	p, err := NewParser(rules, "E", "n+n+n")
	require.NoError(t, err)
	r := p.MatchRule("E", 0)
	require.False(t, r.IsMismatch())
	assert.Equal(t, 5, r.Len)
	assert.Equal(t, 0, r.TotDescendantErrors)
}

func TestParseGrammarTransparentRule(t *testing.T) {
	t.Parallel()
	rules, err := ParseGrammar(`
S <- ~WS "a" ~WS "b" ;
~WS <- " "* ;
`)
	require.NoError(t, err)
	_, transparent := rules["~S"]
	assert.False(t, transparent, "S itself should not be transparent")

	p, err := NewParser(rules, "S", " a b")
	require.NoError(t, err)
	r := p.MatchRule("S", 0)
	require.False(t, r.IsMismatch())
	assert.Equal(t, 4, r.Len)
	assert.True(t, p.transparentRules["WS"])
}

func TestParseGrammarEscapedCharLiteral(t *testing.T) {
	t.Parallel()
	rules, err := ParseGrammar(`Tab <- '\t' ;`)
	require.NoError(t, err)
	p, err := NewParser(rules, "Tab", "\t")
	require.NoError(t, err)
	r := p.MatchRule("Tab", 0)
	require.False(t, r.IsMismatch())
	assert.Equal(t, 1, r.Len)
}

func TestParseGrammarRejectsUnknownRuleRef(t *testing.T) {
	t.Parallel()
	_, err := ParseGrammar(`S <- Unknown ;`)
	require.Error(t, err)
}

func TestParseGrammarRejectsConflictingTransparency(t *testing.T) {
	t.Parallel()
	_, err := ParseGrammar(`
S <- "a" ;
~S <- "b" ;
`)
	require.Error(t, err)
}

func TestParseGrammarRejectsSyntaxErrors(t *testing.T) {
	t.Parallel()
	_, err := ParseGrammar(`S <- "a" "b" ;;;`)
	require.Error(t, err)
}
