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
	"strings"

	"go.uber.org/zap"
)

// Parser runs a grammar (a set of named rules built from Clause values)
// against one input string. A Parser is built for a single Parse call; it
// is not safe for concurrent use from multiple goroutines, since the memo
// table and recovery-phase flag are mutated in place as matching proceeds.
type Parser struct {
	rules            map[string]Clause
	transparentRules map[string]bool
	topRuleName      string
	input            string

	memoTable map[Clause]map[int]*memoEntry
	memoVersion []int

	inRecoveryPhase bool

	stats  *Stats
	logger *zap.Logger
}

// ParserOption configures optional Parser behavior.
type ParserOption func(*Parser)

// WithStats attaches a Stats counter to the parser, so callers can inspect
// clause-match/cache-hit/LR-expansion/recovery-attempt counts after Parse.
func WithStats(s *Stats) ParserOption {
	return func(p *Parser) { p.stats = s }
}

// WithLogger attaches a zap logger used for debug tracing of recovery and
// left-recursion expansion decisions. The default is zap.NewNop(), so
// logging is silent unless a logger is supplied.
func WithLogger(logger *zap.Logger) ParserOption {
	return func(p *Parser) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// NewParser builds a Parser over rules, rooted at topRuleName, for input.
// A rule name prefixed with "~" in rules is registered without the prefix
// and marked transparent (its own node is elided from the AST, per
// BuildAST). It returns a *GrammarError, not a panic, if any RuleRef
// reachable from rules names a rule absent from rules, or if the same
// rule name is declared both transparent and non-transparent.
func NewParser(rules map[string]Clause, topRuleName, input string, opts ...ParserOption) (*Parser, error) {
	plain, transparent, err := normalizeRules(rules)
	if err != nil {
		return nil, err
	}

	p := &Parser{
		rules:            plain,
		transparentRules: transparent,
		topRuleName:      topRuleName,
		input:            input,
		memoTable:        make(map[Clause]map[int]*memoEntry),
		memoVersion:      make([]int, len(input)+1),
		logger:           zap.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// normalizeRules strips the "~" transparency prefix from rules' keys,
// returning the plain rule map and the set of rule names it marks
// transparent. It returns a *GrammarError if a name is declared both
// transparent and non-transparent, or if any RuleRef reachable from the
// rule set names a rule not present in it.
func normalizeRules(rules map[string]Clause) (map[string]Clause, map[string]bool, error) {
	for name := range rules {
		bare := strings.TrimPrefix(name, "~")
		counterpart := "~" + bare
		if strings.HasPrefix(name, "~") {
			counterpart = bare
		}
		if _, clash := rules[counterpart]; clash {
			return nil, nil, grammarErrorf(bare, "rule cannot be both transparent and non-transparent")
		}
	}

	plain := make(map[string]Clause, len(rules))
	transparent := make(map[string]bool)
	for name, clause := range rules {
		if strings.HasPrefix(name, "~") {
			bare := name[1:]
			plain[bare] = clause
			transparent[bare] = true
		} else {
			plain[name] = clause
		}
	}

	for _, clause := range plain {
		if err := clause.CheckRefs(plain); err != nil {
			return nil, nil, err
		}
	}

	return plain, transparent, nil
}

// Match resolves clause at pos via the memo table, using bound (if
// non-nil) as the next grammar element a repetition combinator should
// stop before. RuleRef is deliberately never memoized on its own; see
// RuleRef's doc comment.
func (p *Parser) Match(clause Clause, pos int, bound Clause) MatchResult {
	if pos > len(p.input) {
		return Mismatch
	}

	if ref, ok := clause.(*RuleRef); ok {
		return ref.Match(p, pos, bound)
	}

	clauseMap, ok := p.memoTable[clause]
	if !ok {
		clauseMap = make(map[int]*memoEntry)
		p.memoTable[clause] = clauseMap
	}

	entry, ok := clauseMap[pos]
	if !ok {
		entry = &memoEntry{}
		clauseMap[pos] = entry
	}

	return entry.match(p, clause, pos, bound)
}

// MatchRule resolves the named rule at pos.
func (p *Parser) MatchRule(ruleName string, pos int) MatchResult {
	clause, ok := p.rules[ruleName]
	if !ok {
		panic("squirrel: rule not found: " + ruleName)
	}
	return p.Match(clause, pos, nil)
}

// Probe matches clause at pos with recovery temporarily disabled, so
// recovery logic can test "could this succeed cleanly here" without
// triggering nested recovery.
func (p *Parser) Probe(clause Clause, pos int) MatchResult {
	saved := p.inRecoveryPhase
	p.inRecoveryPhase = false
	result := p.Match(clause, pos, nil)
	p.inRecoveryPhase = saved
	return result
}

// CanMatchNonzeroAt reports whether clause can match a non-empty prefix
// at pos, probed outside of recovery mode. Repeat uses this to stop a
// repetition before it would consume characters belonging to the next
// sequence element.
func (p *Parser) CanMatchNonzeroAt(clause Clause, pos int) bool {
	result := p.Probe(clause, pos)
	return !result.IsMismatch() && result.Len > 0
}

// enableRecovery switches the parser into Phase 2.
func (p *Parser) enableRecovery() { p.inRecoveryPhase = true }

// ParseResult is the outcome of a complete two-phase parse.
type ParseResult struct {
	Input            string
	Root             MatchResult
	TopRuleName      string
	TransparentRules map[string]bool
	HasSyntaxErrors  bool
	UnmatchedInput   *MatchResult
}

// Parse runs the grammar against the parser's input with two-phase
// recovery: Phase 1 (discovery) tries to match without any recovery
// logic; if that result is a mismatch or does not span the whole input
// (the spanning invariant), Phase 2 re-runs the same rule with recovery
// enabled.
func (p *Parser) Parse() *ParseResult {
	result := p.MatchRule(p.topRuleName, 0)
	hasSyntaxErrors := result.IsMismatch() || result.Pos != 0 || result.Len != len(p.input)

	if hasSyntaxErrors {
		p.enableRecovery()
		result = p.MatchRule(p.topRuleName, 0)
	}

	root := result
	if result.IsMismatch() {
		root = newSyntaxError(0, len(p.input), nil)
	}

	var unmatched *MatchResult
	if hasSyntaxErrors && !result.IsMismatch() && result.Len < len(p.input) {
		u := newSyntaxError(result.Len, len(p.input)-result.Len, nil)
		unmatched = &u
	}

	return &ParseResult{
		Input:            p.input,
		Root:             root,
		TopRuleName:      p.topRuleName,
		TransparentRules: p.transparentRules,
		HasSyntaxErrors:  hasSyntaxErrors,
		UnmatchedInput:   unmatched,
	}
}

// GetSyntaxErrors walks the parse tree, collecting every SyntaxError node
// in left-to-right order, including any trailing UnmatchedInput.
func (pr *ParseResult) GetSyntaxErrors() []MatchResult {
	if !pr.HasSyntaxErrors {
		return nil
	}
	var errs []MatchResult
	var walk func(r MatchResult)
	walk = func(r MatchResult) {
		if r.IsSyntaxError() {
			errs = append(errs, r)
			return
		}
		for _, c := range r.Children {
			walk(c)
		}
	}
	walk(pr.Root)
	if pr.UnmatchedInput != nil {
		errs = append(errs, *pr.UnmatchedInput)
	}
	return errs
}
