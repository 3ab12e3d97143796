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

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

// labelTree flattens an ASTNode to just its label shape, for structural
// comparison that ignores position bookkeeping.
type labelTree struct {
	Label    string
	Children []labelTree
}

func flatten(n ASTNode) labelTree {
	children := make([]labelTree, len(n.Children))
	for i, c := range n.Children {
		children[i] = flatten(c)
	}
	return labelTree{Label: n.Label, Children: children}
}

func TestBuildASTElidesTransparentRules(t *testing.T) {
	t.Parallel()
	rules := map[string]Clause{
		"S":    NewSeq([]Clause{NewRuleRef("WS"), NewLiteral("a"), NewRuleRef("WS"), NewLiteral("b")}),
		"~WS":  NewZeroOrMore(NewCharSingle(' ')),
	}
	p, err := NewParser(rules, "S", "a b")
	require.NoError(t, err)
	pr := p.Parse()
	require.False(t, pr.HasSyntaxErrors)

	ast := BuildAST(pr)
	got := flatten(ast)
	want := labelTree{
		Label: "S",
		Children: []labelTree{
			{Label: TerminalLabel},
			{Label: TerminalLabel},
			{Label: TerminalLabel},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("AST shape mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildASTNestsNamedRules(t *testing.T) {
	t.Parallel()
	rules := map[string]Clause{
		"S": NewSeq([]Clause{NewRuleRef("A"), NewRuleRef("B")}),
		"A": NewLiteral("a"),
		"B": NewLiteral("b"),
	}
	p, err := NewParser(rules, "S", "ab")
	require.NoError(t, err)
	pr := p.Parse()
	require.False(t, pr.HasSyntaxErrors)

	ast := BuildAST(pr)
	got := flatten(ast)
	want := labelTree{
		Label: "S",
		Children: []labelTree{
			{Label: "A", Children: []labelTree{{Label: TerminalLabel}}},
			{Label: "B", Children: []labelTree{{Label: TerminalLabel}}},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("AST shape mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildCSTAppliesFactories(t *testing.T) {
	t.Parallel()
	rules := map[string]Clause{
		"S": NewSeq([]Clause{NewRuleRef("A"), NewRuleRef("B")}),
		"A": NewLiteral("a"),
		"B": NewLiteral("b"),
	}
	p, err := NewParser(rules, "S", "ab")
	require.NoError(t, err)
	pr := p.Parse()
	require.False(t, pr.HasSyntaxErrors)
	ast := BuildAST(pr)

	factories := map[string]CSTFactory{
		"S": func(n ASTNode, children []CSTNode) CSTNode {
			return CSTNode{Label: n.Label, Children: children}
		},
		"A": func(n ASTNode, children []CSTNode) CSTNode {
			return CSTNode{Label: n.Label, Value: "A-node"}
		},
		"B": func(n ASTNode, children []CSTNode) CSTNode {
			return CSTNode{Label: n.Label, Value: "B-node"}
		},
		TerminalLabel: func(n ASTNode, children []CSTNode) CSTNode {
			return CSTNode{Label: TerminalLabel}
		},
	}

	cst, err := BuildCST(ast, factories, false)
	require.NoError(t, err)
	require.Len(t, cst.Children, 2)
	require.Equal(t, "A-node", cst.Children[0].Value)
	require.Equal(t, "B-node", cst.Children[1].Value)
}

func TestBuildCSTRejectsSyntaxErrorsUnlessAllowed(t *testing.T) {
	t.Parallel()
	rules := map[string]Clause{"S": NewLiteral("abc")}
	p, err := NewParser(rules, "S", "abX")
	require.NoError(t, err)
	pr := p.Parse()
	require.True(t, pr.HasSyntaxErrors)
	ast := BuildAST(pr)

	factories := map[string]CSTFactory{
		"S": func(n ASTNode, children []CSTNode) CSTNode {
			return CSTNode{Label: n.Label, Children: children}
		},
	}
	_, err = BuildCST(ast, factories, false)
	require.Error(t, err)
}
