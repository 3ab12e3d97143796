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

// Seq matches its children in order. When the parser is in recovery phase,
// a mismatching child may be patched over by skipping input and/or
// deleting grammar elements; see recover below.
type Seq struct {
	Children []Clause
}

// NewSeq builds a Seq clause over children, matched left to right.
func NewSeq(children []Clause) *Seq { return &Seq{Children: children} }

func (s *Seq) Match(p *Parser, pos int, bound Clause) MatchResult {
	var children []MatchResult
	curr := pos
	i := 0

	for i < len(s.Children) {
		clause := s.Children[i]
		var effectiveBound Clause
		if p.inRecoveryPhase && i+1 < len(s.Children) {
			effectiveBound = s.Children[i+1]
		} else {
			effectiveBound = bound
		}

		result := p.Match(clause, curr, effectiveBound)

		if result.IsMismatch() {
			if p.inRecoveryPhase && !result.IsLRPending() {
				if skip, deletes, probe, ok := s.recover(p, curr, i); ok {
					p.stats.recordRecovery()
					p.logger.Debug("sequence recovery",
						zap.Int("pos", curr),
						zap.Int("inputSkip", skip),
						zap.Int("grammarDeletes", deletes),
					)
					if skip > 0 {
						children = append(children, newSyntaxError(curr, skip, nil))
					}
					for j := 0; j < deletes; j++ {
						children = append(children, newSyntaxError(curr+skip, 0, s.Children[i+j]))
					}
					if !probe.IsMismatch() {
						children = append(children, probe)
						curr += skip + probe.Len
						i += deletes + 1
						continue
					}
					curr += skip
					break
				}
			}
			return Mismatch
		}

		children = append(children, result)
		curr += result.Len
		i++
	}

	if len(children) == 0 {
		return match(s, pos, 0)
	}
	return newMatch(s, 0, 0, matchOpts{
		children:           children,
		isComplete:         allComplete(children),
		addSubClauseErrors: true,
	})
}

// recover searches for the smallest (inputSkip, grammarSkip) such that the
// grammar element at i+grammarSkip matches under probe at pos+inputSkip,
// returning the probe's result too. grammarSkip > 0 (a grammar deletion)
// is only ever accepted at EOF: deleting mid-parse would make the parse
// tree's yield diverge from the visible input, which the engine never
// does. ok is false if no recovery point was found.
func (s *Seq) recover(p *Parser, curr, i int) (inputSkip, grammarSkip int, probe MatchResult, ok bool) {
	maxScan := len(p.input) - curr + 1
	maxGrammar := len(s.Children) - i

	for inputSkip = 0; inputSkip < maxScan; inputSkip++ {
		probePos := curr + inputSkip

		if probePos >= len(p.input) {
			if inputSkip == 0 {
				// EOF completion: delete every remaining grammar element.
				return inputSkip, maxGrammar, Mismatch, true
			}
			continue
		}

		// Grammar deletion is allowed only at EOF (see doc comment), so
		// mid-parse recovery only ever tries grammarSkip == 0.
		for grammarSkip = 0; grammarSkip < maxGrammar; grammarSkip++ {
			if grammarSkip == 0 && inputSkip == 0 {
				continue
			}
			if grammarSkip > 0 {
				continue
			}

			clauseIdx := i + grammarSkip
			clause := s.Children[clauseIdx]

			if failed, isLit := s.Children[i].(*Literal); isLit && len(failed.Text) == 1 && inputSkip > 1 {
				if clauseIdx+1 < len(s.Children) {
					if next, ok := s.Children[clauseIdx+1].(*Literal); ok {
						skipped := p.input[curr : curr+inputSkip]
						if strings.Contains(skipped, next.Text) {
							continue
						}
					}
				}
			}

			probeResult := p.Probe(clause, probePos)
			if !probeResult.IsMismatch() {
				if lit, isLit := clause.(*Literal); isLit && inputSkip > len(lit.Text) {
					if len(lit.Text) > 1 {
						continue
					}
					skipped := p.input[curr : curr+inputSkip]
					if strings.Contains(skipped, lit.Text) {
						continue
					}
				}
				return inputSkip, grammarSkip, probeResult, true
			}
		}
	}

	return 0, 0, Mismatch, false
}

func allComplete(children []MatchResult) bool {
	for _, c := range children {
		if !c.IsMismatch() && !c.IsComplete {
			return false
		}
	}
	return true
}

func (s *Seq) CheckRefs(rules map[string]Clause) error {
	for _, c := range s.Children {
		if err := c.CheckRefs(rules); err != nil {
			return err
		}
	}
	return nil
}

func (s *Seq) String() string {
	parts := make([]string, len(s.Children))
	for i, c := range s.Children {
		parts[i] = clauseTypeName(c)
	}
	return "(" + strings.Join(parts, " ") + ")"
}
