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

// errorRateThreshold is the break point used to decide whether a
// recovered alternative's errors are "too dense" to prefer over a longer,
// cleaner one. See Choice.Match.
const errorRateThreshold = 0.5

// Choice tries each child in order (ordered choice / "first match wins").
// During recovery, if the winning first alternative carries syntax
// errors, the remaining alternatives are scanned for a better one.
type Choice struct {
	Children []Clause
}

// NewChoice builds a Choice clause trying children in order.
func NewChoice(children []Clause) *Choice { return &Choice{Children: children} }

func (c *Choice) Match(p *Parser, pos int, bound Clause) MatchResult {
	for i, sub := range c.Children {
		result := p.Match(sub, pos, bound)
		if result.IsMismatch() {
			continue
		}

		if p.inRecoveryPhase && i == 0 && result.TotDescendantErrors > 0 {
			result = c.bestAlternative(p, pos, bound, result)
		}

		return newMatch(c, 0, 0, matchOpts{
			children:           []MatchResult{result},
			isComplete:         result.IsComplete,
			addSubClauseErrors: true,
		})
	}
	return Mismatch
}

// bestAlternative implements the recovery-phase tie-break: prefer a lower
// error rate when the current best is mostly errors, then prefer greater
// length, then prefer fewer errors. It stops early once it finds an
// alternative at least as long as the current best with zero errors.
func (c *Choice) bestAlternative(p *Parser, pos int, bound Clause, first MatchResult) MatchResult {
	best := first
	bestLen := first.Len
	bestErrors := first.TotDescendantErrors

	for j := 1; j < len(c.Children); j++ {
		alt := p.Match(c.Children[j], pos, bound)
		if alt.IsMismatch() {
			continue
		}
		altLen := alt.Len
		altErrors := alt.TotDescendantErrors

		bestRate := 0.0
		if bestLen > 0 {
			bestRate = float64(bestErrors) / float64(bestLen)
		}
		altRate := 0.0
		if altLen > 0 {
			altRate = float64(altErrors) / float64(altLen)
		}

		if (bestRate >= errorRateThreshold && altRate < errorRateThreshold) ||
			altLen > bestLen ||
			(altLen == bestLen && altErrors < bestErrors) {
			best = alt
			bestLen = altLen
			bestErrors = altErrors
		}
		if altErrors == 0 && altLen >= bestLen {
			break
		}
	}
	return best
}

func (c *Choice) CheckRefs(rules map[string]Clause) error {
	for _, ch := range c.Children {
		if err := ch.CheckRefs(rules); err != nil {
			return err
		}
	}
	return nil
}

func (c *Choice) String() string {
	parts := make([]string, len(c.Children))
	for i, ch := range c.Children {
		parts[i] = clauseTypeName(ch)
	}
	return "(" + strings.Join(parts, " / ") + ")"
}
