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

// RuleRef names another rule by name rather than holding a direct pointer
// to it, so construction order doesn't matter and mutually recursive rules
// (including left-recursive cycles) are trivial to build. Resolution
// happens at match time against the parser's rules map.
//
// RuleRef is never memoized on its own (see Parser.Match): caching Ref
// separately from its target would create a second cache that can go
// stale relative to the target during LR seed expansion and phase
// transitions.
type RuleRef struct {
	Name string
}

// NewRuleRef builds a reference to the rule named name.
func NewRuleRef(name string) *RuleRef { return &RuleRef{Name: name} }

func (r *RuleRef) Match(p *Parser, pos int, bound Clause) MatchResult {
	target, ok := p.rules[r.Name]
	if !ok {
		// CheckRefs should have caught this at construction time.
		panic("squirrel: unresolved rule reference " + r.Name)
	}
	result := p.Match(target, pos, bound)
	if result.IsMismatch() {
		return result
	}
	return newMatch(r, 0, 0, matchOpts{
		children:           []MatchResult{result},
		isComplete:         result.IsComplete,
		addSubClauseErrors: true,
	})
}

func (r *RuleRef) CheckRefs(rules map[string]Clause) error {
	if _, ok := rules[r.Name]; !ok {
		return grammarErrorf(r.Name, "referenced rule not found")
	}
	return nil
}

func (r *RuleRef) String() string { return r.Name }
