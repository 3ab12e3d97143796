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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMismatchAndLrPendingAreDistinct(t *testing.T) {
	t.Parallel()
	assert.True(t, Mismatch.IsMismatch())
	assert.False(t, Mismatch.IsLRPending())

	assert.True(t, LrPending.IsMismatch())
	assert.True(t, LrPending.IsLRPending())
}

func TestWithLRContextOnMismatchYieldsLrPending(t *testing.T) {
	t.Parallel()
	result := Mismatch.WithLRContext()
	assert.True(t, result.IsLRPending())
}

func TestWithLRContextOnSyntaxErrorIsNoop(t *testing.T) {
	t.Parallel()
	se := newSyntaxError(0, 1, nil)
	result := se.WithLRContext()
	assert.True(t, result.IsSyntaxError())
	assert.Equal(t, se.Pos, result.Pos)
	assert.Equal(t, se.Len, result.Len)
}

func TestNewSyntaxErrorShapes(t *testing.T) {
	t.Parallel()

	skipped := newSyntaxError(3, 2, nil)
	assert.Equal(t, 2, skipped.Len)
	assert.Nil(t, skipped.DeletedClause)
	assert.Equal(t, 1, skipped.TotDescendantErrors)

	deleted := newSyntaxError(5, 0, NewLiteral("c"))
	assert.Equal(t, 0, deleted.Len)
	assert.NotNil(t, deleted.DeletedClause)
}
