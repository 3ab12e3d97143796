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

func TestLocate(t *testing.T) {
	t.Parallel()
	input := "line one\nline two\nline three"

	tests := []struct {
		pos  int
		line int
		col  int
	}{
		{0, 1, 1},
		{4, 1, 5},
		{9, 2, 1},
		{14, 2, 6},
	}
	for _, tc := range tests {
		loc := Locate("grammar.peg", input, tc.pos)
		assert.Equal(t, tc.line, loc.Line)
		assert.Equal(t, tc.col, loc.Col)
	}
}

func TestLocationString(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "grammar.peg:2:1", Locate("grammar.peg", "a\nb", 2).String())
	assert.Equal(t, "1:1", Locate("", "a", 0).String())
}
