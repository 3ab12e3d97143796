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

import "strings"

// MatchResult unifies the three outcomes a clause match can have: a
// successful Match (terminals have no children, combinators have one or
// more), the singleton Mismatch sentinel, and the singleton LrPending
// sentinel used during left-recursion cycle detection. SyntaxError results
// are Matches with one accumulated error and, for deletions, the deleted
// clause recorded for diagnostics.
type MatchResult struct {
	Clause              Clause
	Pos                 int
	Len                 int
	Children            []MatchResult
	IsComplete          bool
	IsFromLRContext     bool
	TotDescendantErrors int

	isMismatch  bool
	isLRPending bool

	// Set only for SyntaxError results. DeletedClause is non-nil only when
	// Len == 0 (a missing grammar element); for a skipped-input error
	// (Len > 0) DeletedClause is nil.
	isSyntaxError bool
	DeletedClause Clause
}

// Mismatch is the singleton "this clause cannot match here" sentinel.
var Mismatch = MatchResult{Pos: -1, Len: -1, isMismatch: true}

// LrPending is the singleton sentinel returned when a left-recursion cycle
// is detected before any seed exists. It must never be confused with
// Mismatch: Mismatch means "no match possible," LrPending means "this call
// is part of an in-progress left-recursive expansion." Use IsLRPending to
// distinguish them; MatchResult is not comparable with == because Match
// results carry a Children slice.
var LrPending = MatchResult{Pos: -1, Len: -1, isMismatch: true, isLRPending: true, IsFromLRContext: true}

// IsMismatch reports whether r represents a failed match (Mismatch and
// LrPending both report true here; use IsLRPending to tell them apart).
func (r MatchResult) IsMismatch() bool { return r.isMismatch }

// IsLRPending reports whether r is the LrPending sentinel specifically,
// as opposed to an ordinary Mismatch.
func (r MatchResult) IsLRPending() bool { return r.isLRPending }

// IsSyntaxError reports whether r is a SyntaxError node.
func (r MatchResult) IsSyntaxError() bool { return r.isSyntaxError }

func totalChildLength(children []MatchResult) int {
	if len(children) == 0 {
		return 0
	}
	last := children[len(children)-1]
	return last.Pos + last.Len - children[0].Pos
}

func anyFromLRContext(children []MatchResult) bool {
	for _, c := range children {
		if c.IsFromLRContext {
			return true
		}
	}
	return false
}

// matchOpts configures newMatch. Pos, Len and the LR-context flag are
// derived from children unless overridden; isComplete is taken as given,
// and children's error counts are added only when addSubClauseErrors is
// set (or when there are no children and no numSyntaxErrors).
type matchOpts struct {
	children           []MatchResult
	isComplete         bool
	numSyntaxErrors    int
	addSubClauseErrors bool
	forceLRContext     *bool
}

// newMatch builds a successful Match. When children is non-empty, Pos and
// Len are derived from the first/last child (the clause's own pos/length
// arguments are ignored, mirroring the Python Match constructor).
func newMatch(clause Clause, pos, length int, o matchOpts) MatchResult {
	children := o.children
	computedPos := pos
	computedLen := length
	if len(children) > 0 {
		computedPos = children[0].Pos
		computedLen = totalChildLength(children)
	}

	lrContext := false
	if o.forceLRContext != nil {
		lrContext = *o.forceLRContext
	} else if len(children) > 0 {
		lrContext = anyFromLRContext(children)
	}

	addErrs := o.addSubClauseErrors
	if len(children) == 0 && o.numSyntaxErrors == 0 {
		addErrs = true
	}
	totErrs := o.numSyntaxErrors
	if addErrs {
		for _, c := range children {
			totErrs += c.TotDescendantErrors
		}
	}

	isComplete := o.isComplete

	return MatchResult{
		Clause:              clause,
		Pos:                 computedPos,
		Len:                 computedLen,
		Children:            children,
		IsComplete:          isComplete,
		IsFromLRContext:     lrContext,
		TotDescendantErrors: totErrs,
	}
}

// match is a convenience constructor for a plain terminal/combinator match
// with default options (complete, no errors, LR context derived from
// children).
func match(clause Clause, pos, length int, children ...MatchResult) MatchResult {
	return newMatch(clause, pos, length, matchOpts{
		children:           children,
		isComplete:         true,
		addSubClauseErrors: true,
	})
}

// incompleteMatch is like match but marks the result incomplete (used by
// Optional/Repeat in discovery phase when a sub-match failed short of EOF).
func incompleteMatch(clause Clause, pos, length int, children ...MatchResult) MatchResult {
	return newMatch(clause, pos, length, matchOpts{
		children:           children,
		isComplete:         false,
		addSubClauseErrors: true,
	})
}

// newSyntaxError builds a SyntaxError node. If length == 0, this records a
// missing (deleted) grammar element and deletedClause should be the clause
// that was skipped; if length > 0, it records a run of skipped input
// characters and deletedClause must be nil.
func newSyntaxError(pos, length int, deletedClause Clause) MatchResult {
	r := newMatch(deletedClause, pos, length, matchOpts{
		isComplete:         true,
		numSyntaxErrors:    1,
		addSubClauseErrors: false,
	})
	r.isSyntaxError = true
	r.DeletedClause = deletedClause
	return r
}

// WithLRContext returns a copy of r marked as produced by a completed
// left-recursion seed-growing cycle. Mismatch results become LrPending
// (there is no seed to mark); SyntaxError results and results already
// marked are returned unchanged.
func (r MatchResult) WithLRContext() MatchResult {
	if r.isSyntaxError {
		return r
	}
	if r.isMismatch {
		return LrPending
	}
	if r.IsFromLRContext {
		return r
	}
	lr := true
	return newMatch(r.Clause, r.Pos, r.Len, matchOpts{
		children:        r.Children,
		isComplete:      r.IsComplete,
		numSyntaxErrors: r.TotDescendantErrors,
		forceLRContext:  &lr,
	})
}

// PrettyString renders r as an indented tree against input, for debugging.
func (r MatchResult) PrettyString(input string, indent int) string {
	var b strings.Builder
	pad := strings.Repeat("  ", indent)
	b.WriteString(pad)
	switch {
	case r.isMismatch:
		b.WriteString("MISMATCH\n")
		return b.String()
	case r.isSyntaxError:
		b.WriteString("<SyntaxError>: ")
		b.WriteString(r.syntaxErrorText())
		b.WriteString("\n")
		return b.String()
	}
	if ref, ok := r.Clause.(*RuleRef); ok {
		b.WriteString(ref.Name)
	} else if r.Clause != nil {
		b.WriteString(clauseTypeName(r.Clause))
	} else {
		b.WriteString("?")
	}
	if len(r.Children) == 0 {
		end := r.Pos + r.Len
		if end > len(input) {
			end = len(input)
		}
		b.WriteString(": \"")
		b.WriteString(input[r.Pos:end])
		b.WriteString("\"")
	}
	b.WriteString("\n")
	for _, c := range r.Children {
		b.WriteString(c.PrettyString(input, indent+1))
	}
	return b.String()
}

func (r MatchResult) syntaxErrorText() string {
	if r.Len == 0 {
		name := "unknown"
		if r.DeletedClause != nil {
			name = clauseTypeName(r.DeletedClause)
		}
		return "missing " + name
	}
	return "skipped input"
}
