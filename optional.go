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

// Optional matches its sub-clause zero or one times; it never itself
// mismatches.
type Optional struct {
	Sub Clause
}

// NewOptional builds an Optional clause wrapping sub.
func NewOptional(sub Clause) *Optional { return &Optional{Sub: sub} }

func (o *Optional) Match(p *Parser, pos int, bound Clause) MatchResult {
	result := p.Match(o.Sub, pos, bound)
	if result.IsMismatch() {
		incomplete := !p.inRecoveryPhase && pos < len(p.input)
		return newMatch(o, pos, 0, matchOpts{isComplete: !incomplete})
	}
	return newMatch(o, 0, 0, matchOpts{
		children:           []MatchResult{result},
		isComplete:         result.IsComplete,
		addSubClauseErrors: true,
	})
}

func (o *Optional) CheckRefs(rules map[string]Clause) error { return o.Sub.CheckRefs(rules) }

func (o *Optional) String() string { return clauseTypeName(o.Sub) + "?" }
