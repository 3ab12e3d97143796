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

// Stats counts parser work, letting callers validate that a grammar parses
// in time roughly linear in input length times grammar size. A *Parser and
// its Stats are meant for single-goroutine use (see Parser's doc
// comment), so these are plain counters, not atomics. A nil
// *Stats is valid and simply discards every record, so Parser can always
// record against p.stats without a nil check at each call site.
type Stats struct {
	clauseMatches    int64
	cacheHits        int64
	lrExpansions     int64
	recoveryAttempts int64
}

// NewStats returns a fresh, zeroed Stats.
func NewStats() *Stats { return &Stats{} }

func (s *Stats) recordMatch() {
	if s != nil {
		s.clauseMatches++
	}
}

func (s *Stats) recordCacheHit() {
	if s != nil {
		s.cacheHits++
	}
}

func (s *Stats) recordLRExpansion() {
	if s != nil {
		s.lrExpansions++
	}
}

func (s *Stats) recordRecovery() {
	if s != nil {
		s.recoveryAttempts++
	}
}

// ClauseMatches returns the total number of clause match attempts, not
// counting cache hits.
func (s *Stats) ClauseMatches() int64 {
	if s == nil {
		return 0
	}
	return s.clauseMatches
}

// CacheHits returns the number of memo table hits.
func (s *Stats) CacheHits() int64 {
	if s == nil {
		return 0
	}
	return s.cacheHits
}

// LRExpansions returns the number of left-recursion seed-growing
// iterations performed.
func (s *Stats) LRExpansions() int64 {
	if s == nil {
		return 0
	}
	return s.lrExpansions
}

// RecoveryAttempts returns the number of successful recovery steps taken
// during Phase 2.
func (s *Stats) RecoveryAttempts() int64 {
	if s == nil {
		return 0
	}
	return s.recoveryAttempts
}

// Reset zeroes all counters.
func (s *Stats) Reset() {
	if s == nil {
		return
	}
	s.clauseMatches = 0
	s.cacheHits = 0
	s.lrExpansions = 0
	s.recoveryAttempts = 0
}
