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

func TestGrammarErrorMessage(t *testing.T) {
	t.Parallel()
	withRule := grammarErrorf("S", "undefined rule %q", "X")
	assert.Equal(t, `rule "S": undefined rule "X"`, withRule.Error())

	bare := &GrammarError{Msg: "no top rule given"}
	assert.Equal(t, "no top rule given", bare.Error())
}

func TestClauseTypeName(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "<nil>", clauseTypeName(nil))
	assert.Contains(t, clauseTypeName(NewLiteral("a")), "a")
}
