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

// memoEntry is the memo table slot for one (clause, position) pair. It
// doubles as the left-recursion cycle detector: a re-entrant call to
// match while inRecPath is set means clause is left-recursive at pos, and
// foundLeftRec switches the entry into seed-growing mode.
type memoEntry struct {
	result                MatchResult
	hasResult             bool
	inRecPath             bool
	foundLeftRec          bool
	memoVersion           int
	cachedInRecoveryPhase bool
}

// match resolves clause at pos, either by returning a cached result,
// detecting a left-recursive cycle, or running clause.Match and, if left
// recursion was found along the way, re-running it repeatedly to grow the
// seed until a fixed point (no further length growth) is reached.
func (e *memoEntry) match(p *Parser, clause Clause, pos int, bound Clause) MatchResult {
	if e.hasResult && e.memoVersion == p.memoVersion[pos] {
		phaseMatches := e.cachedInRecoveryPhase == p.inRecoveryPhase

		reachedEOFCheck := !e.result.IsMismatch() && e.result.IsComplete && pos == 0 &&
			e.result.Pos+e.result.Len < len(p.input) && !phaseMatches

		if reachedEOFCheck {
			// Phase 1 result didn't reach EOF; retry in Phase 2.
		} else if (!e.result.IsMismatch() && e.result.IsComplete && !e.foundLeftRec) || phaseMatches {
			p.stats.recordCacheHit()
			return e.result
		}
	}

	if e.inRecPath {
		if !e.hasResult {
			e.foundLeftRec = true
			e.result = Mismatch
			e.hasResult = true
		}
		if e.result.IsMismatch() {
			return LrPending
		}
		return e.result
	}

	e.inRecPath = true

	if e.hasResult && (e.memoVersion != p.memoVersion[pos] ||
		(e.foundLeftRec && e.cachedInRecoveryPhase != p.inRecoveryPhase)) {
		e.hasResult = false
	}

	for {
		p.stats.recordMatch()
		newResult := clause.Match(p, pos, bound)

		if e.hasResult && newResult.Len <= e.result.Len {
			break
		}
		e.result = newResult
		e.hasResult = true

		if !e.foundLeftRec {
			break
		}

		p.stats.recordLRExpansion()
		p.memoVersion[pos]++
		e.memoVersion = p.memoVersion[pos]
		p.logger.Debug("left-recursion seed expansion",
			zap.Int("pos", pos),
			zap.Int("version", e.memoVersion),
			zap.Int("seedLen", newResult.Len),
		)
	}

	e.inRecPath = false
	e.memoVersion = p.memoVersion[pos]
	e.cachedInRecoveryPhase = p.inRecoveryPhase

	if e.foundLeftRec && !e.result.IsMismatch() && !e.result.IsFromLRContext {
		e.result = e.result.WithLRContext()
	}
	return e.result
}
