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

import "go.uber.org/zap"

// Repeat matches its sub-clause zero-or-more (RequireOne == false) or
// one-or-more (RequireOne == true) times, stopping at the first
// zero-length match to avoid looping forever on a nullable sub-clause.
type Repeat struct {
	Sub        Clause
	RequireOne bool
}

// NewOneOrMore builds a Repeat clause requiring at least one match.
func NewOneOrMore(sub Clause) *Repeat { return &Repeat{Sub: sub, RequireOne: true} }

// NewZeroOrMore builds a Repeat clause accepting zero matches.
func NewZeroOrMore(sub Clause) *Repeat { return &Repeat{Sub: sub, RequireOne: false} }

func (r *Repeat) Match(p *Parser, pos int, bound Clause) MatchResult {
	var children []MatchResult
	curr := pos
	incomplete := false
	hasRecovered := false

	for curr <= len(p.input) {
		if p.inRecoveryPhase && bound != nil {
			if p.CanMatchNonzeroAt(bound, curr) {
				break
			}
		}

		result := p.Match(r.Sub, curr, nil)
		if result.IsMismatch() {
			if !p.inRecoveryPhase && curr < len(p.input) {
				incomplete = true
			}

			if p.inRecoveryPhase {
				if skip, probe, ok := r.recover(p, curr, hasRecovered); ok {
					p.stats.recordRecovery()
					p.logger.Debug("repetition recovery",
						zap.Int("pos", curr),
						zap.Int("skip", skip),
					)
					children = append(children, newSyntaxError(curr, skip, nil))
					hasRecovered = true
					if !probe.IsMismatch() {
						children = append(children, probe)
						curr += skip + probe.Len
						continue
					}
					curr += skip
					break
				}
			}
			break
		}
		if result.Len == 0 {
			break
		}
		children = append(children, result)
		curr += result.Len
	}

	if r.RequireOne && len(children) == 0 {
		return Mismatch
	}
	if len(children) == 0 {
		return newMatch(r, pos, 0, matchOpts{isComplete: !incomplete})
	}
	return newMatch(r, 0, 0, matchOpts{
		children:           children,
		isComplete:         !incomplete && allComplete(children),
		addSubClauseErrors: true,
	})
}

// recover scans forward for the nearest position at which Sub can match
// again, skipping the intervening input as a single SyntaxError. If no
// such position exists and at least one repetition has already recovered,
// the rest of the input up to EOF is skipped with no further probe,
// ending the repetition.
func (r *Repeat) recover(p *Parser, curr int, hasRecovered bool) (skip int, probe MatchResult, ok bool) {
	for skip = 1; skip <= len(p.input)-curr; skip++ {
		probe = p.Probe(r.Sub, curr+skip)
		if !probe.IsMismatch() {
			return skip, probe, true
		}
	}
	if hasRecovered && curr < len(p.input) {
		return len(p.input) - curr, Mismatch, true
	}
	return 0, Mismatch, false
}

func (r *Repeat) CheckRefs(rules map[string]Clause) error { return r.Sub.CheckRefs(rules) }

func (r *Repeat) String() string {
	if r.RequireOne {
		return clauseTypeName(r.Sub) + "+"
	}
	return clauseTypeName(r.Sub) + "*"
}
