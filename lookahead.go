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

// Lookahead implements zero-width lookahead assertions. With Negate
// false it is a positive lookahead (&e): succeeds, consuming nothing, iff
// Sub matches. With Negate true it is a negative lookahead (!e): succeeds,
// consuming nothing, iff Sub fails to match.
type Lookahead struct {
	Sub    Clause
	Negate bool
}

// NewFollowedBy builds a positive lookahead clause.
func NewFollowedBy(sub Clause) *Lookahead { return &Lookahead{Sub: sub} }

// NewNotFollowedBy builds a negative lookahead clause.
func NewNotFollowedBy(sub Clause) *Lookahead { return &Lookahead{Sub: sub, Negate: true} }

func (l *Lookahead) Match(p *Parser, pos int, bound Clause) MatchResult {
	result := p.Match(l.Sub, pos, bound)
	if l.Negate {
		if result.IsMismatch() {
			return match(l, pos, 0)
		}
		return Mismatch
	}
	if result.IsMismatch() {
		return Mismatch
	}
	return match(l, pos, 0)
}

func (l *Lookahead) CheckRefs(rules map[string]Clause) error { return l.Sub.CheckRefs(rules) }

func (l *Lookahead) String() string {
	if l.Negate {
		return "!" + clauseTypeName(l.Sub)
	}
	return "&" + clauseTypeName(l.Sub)
}
