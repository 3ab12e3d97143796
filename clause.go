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

// Package squirrel implements a PEG-style packrat parser with transparent
// left-recursion support and bounded, visibility-preserving error recovery.
package squirrel

import "fmt"

// Clause is an immutable grammar node. Identity is by address, not
// structure: the memo table keys on the Clause interface value itself, so
// two structurally identical Literal("x") clauses are distinct cache keys
// unless they are the same pointer.
type Clause interface {
	// Match attempts to match this clause at pos. bound, when non-nil, is
	// the next grammar element a repetition should stop short of so it
	// doesn't consume input the caller's sequence still needs.
	Match(p *Parser, pos int, bound Clause) MatchResult

	// CheckRefs validates that every RuleRef reachable from this clause
	// resolves in rules. Called once per clause at construction time.
	CheckRefs(rules map[string]Clause) error
}

// GrammarError reports a problem discovered while building or validating a
// grammar, as opposed to a SyntaxError discovered while parsing input.
type GrammarError struct {
	RuleName string // empty if not specific to one rule
	Msg      string
}

func (e *GrammarError) Error() string {
	if e.RuleName == "" {
		return e.Msg
	}
	return fmt.Sprintf("rule %q: %s", e.RuleName, e.Msg)
}

func grammarErrorf(rule, format string, args ...interface{}) *GrammarError {
	return &GrammarError{RuleName: rule, Msg: fmt.Sprintf(format, args...)}
}

// clauseTypeName renders a clause for diagnostics. Every concrete clause
// type implements fmt.Stringer (mirroring __repr__ on the Python clause
// classes); this falls back to a generic label if one doesn't.
func clauseTypeName(c Clause) string {
	if c == nil {
		return "<nil>"
	}
	if s, ok := c.(fmt.Stringer); ok {
		return s.String()
	}
	return "<clause>"
}
