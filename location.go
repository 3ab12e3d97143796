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

import "fmt"

// Location is a human-readable line/column position derived from a byte
// offset into some named input. It carries no parsing semantics of its own;
// it exists purely to render diagnostics for SyntaxError nodes.
type Location struct {
	Name string // input name, e.g. a filename; empty for anonymous input
	Pos  int    // byte offset into the input
	Line int    // 1-indexed line number
	Col  int    // 1-indexed column number (in bytes)
}

// Locate computes the Location of a byte offset within input, given an
// optional name for diagnostics. pos may equal len(input) (EOF).
func Locate(name, input string, pos int) Location {
	line, col := 1, 1
	limit := pos
	if limit > len(input) {
		limit = len(input)
	}
	for i := 0; i < limit; i++ {
		if input[i] == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}
	return Location{Name: name, Pos: pos, Line: line, Col: col}
}

func (l Location) String() string {
	if l.Name == "" {
		return fmt.Sprintf("%d:%d", l.Line, l.Col)
	}
	return fmt.Sprintf("%s:%d:%d", l.Name, l.Line, l.Col)
}
