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
	"fmt"
	"strings"
)

// TerminalLabel is the AST/CST node label used for every terminal match
// (Literal, CharSingle, CharSet, AnyCharClause, Nothing), regardless of
// which concrete clause produced it.
const TerminalLabel = "<Terminal>"

// SyntaxErrorLabel is the AST/CST node label used for SyntaxError nodes.
const SyntaxErrorLabel = "<SyntaxError>"

// ASTNode is a node in the abstract syntax tree built from a parse: one
// node per named rule match (Ref) plus one per terminal or syntax error,
// with transparent rules (registered with a "~" prefix) spliced out so
// their children attach directly to the parent rule node.
type ASTNode struct {
	Label       string
	Pos, Len    int
	SyntaxError *MatchResult
	Children    []ASTNode
}

// InputSpan returns the slice of input this node was matched against.
func (n ASTNode) InputSpan(input string) string {
	end := n.Pos + n.Len
	if end > len(input) {
		end = len(input)
	}
	return input[n.Pos:end]
}

// PrettyString renders the AST as an ASCII tree, one line per node, with
// each leaf followed by the quoted input it spans.
func (n ASTNode) PrettyString(input string) string {
	var b strings.Builder
	n.buildTree(input, "", &b, true)
	return b.String()
}

func (n ASTNode) buildTree(input, prefix string, b *strings.Builder, isRoot bool) {
	if !isRoot {
		b.WriteByte('\n')
	}
	b.WriteString(prefix)
	b.WriteString(n.Label)
	if len(n.Children) == 0 {
		fmt.Fprintf(b, ": %q", n.InputSpan(input))
	}
	for i, child := range n.Children {
		isLast := i == len(n.Children)-1
		childPrefix := prefix
		if !isRoot {
			if isLast {
				childPrefix += "    "
			} else {
				childPrefix += "|   "
			}
		}
		connector := "|---"
		if isLast {
			connector = "`---"
		}
		b.WriteByte('\n')
		b.WriteString(prefix)
		if !isRoot {
			b.WriteString(connector)
		}
		child.buildTree(input, childPrefix, b, false)
	}
}

func terminalNode(m MatchResult) ASTNode {
	return ASTNode{Label: TerminalLabel, Pos: m.Pos, Len: m.Len}
}

func syntaxErrorNode(m MatchResult) ASTNode {
	return ASTNode{Label: SyntaxErrorLabel, Pos: m.Pos, Len: m.Len, SyntaxError: &m}
}

// BuildAST collapses a raw parse tree (ParseResult.Root, plus any trailing
// UnmatchedInput) into an ASTNode tree: one node per named rule, with
// transparent rules spliced away and every non-named combinator
// (Seq/Choice/Repeat/Optional/Lookahead) flattened into its enclosing
// rule's children.
func BuildAST(pr *ParseResult) ASTNode {
	var extra *ASTNode
	if pr.UnmatchedInput != nil {
		n := syntaxErrorNode(*pr.UnmatchedInput)
		extra = &n
	}
	return newASTNode(pr.TopRuleName, pr.Root, pr.TransparentRules, extra)
}

func newASTNode(label string, result MatchResult, transparent map[string]bool, extra *ASTNode) ASTNode {
	var children []ASTNode
	collectChildASTNodes(result, &children, transparent)
	if extra != nil {
		children = append(children, *extra)
	}
	return ASTNode{Label: label, Pos: result.Pos, Len: result.Len, Children: children}
}

func collectChildASTNodes(result MatchResult, out *[]ASTNode, transparent map[string]bool) {
	if result.IsMismatch() {
		return
	}
	if result.IsSyntaxError() {
		*out = append(*out, syntaxErrorNode(result))
		return
	}
	switch clause := result.Clause.(type) {
	case isTerminalClause:
		*out = append(*out, terminalNode(result))
	case *RuleRef:
		// A transparent rule (registered with a "~" prefix) contributes no
		// AST node of its own; its children are spliced into the parent.
		if transparent[clause.Name] {
			collectChildASTNodes(result.Children[0], out, transparent)
		} else {
			*out = append(*out, newASTNode(clause.Name, result.Children[0], transparent, nil))
		}
	default:
		for _, child := range result.Children {
			collectChildASTNodes(child, out, transparent)
		}
	}
}

// CSTNode is a concrete, caller-defined syntax tree node built from an
// ASTNode by a CSTFactory. It carries the label and span of its node;
// factories attach their own data through Value.
type CSTNode struct {
	Label       string
	Pos, Len    int
	SyntaxError *MatchResult
	Children    []CSTNode
	Value       interface{}
}

// CSTFactory builds one CST node from an ASTNode and its already-built
// CST children. The factories map passed to BuildCST must have one entry
// per grammar rule name, plus TerminalLabel and (if allowSyntaxErrors)
// SyntaxErrorLabel.
type CSTFactory func(node ASTNode, children []CSTNode) CSTNode

// BuildCST walks ast, calling the matching factory (by rule label,
// TerminalLabel, or SyntaxErrorLabel) bottom-up to build a caller-defined
// concrete syntax tree. It returns an error if ast contains a syntax
// error node and allowSyntaxErrors is false, or if no factory is
// registered for some label encountered.
func BuildCST(ast ASTNode, factories map[string]CSTFactory, allowSyntaxErrors bool) (CSTNode, error) {
	if ast.SyntaxError != nil {
		if !allowSyntaxErrors {
			return CSTNode{}, fmt.Errorf("squirrel: syntax error at pos %d, len %d", ast.Pos, ast.Len)
		}
		factory, ok := factories[SyntaxErrorLabel]
		if !ok {
			return CSTNode{}, fmt.Errorf("squirrel: no CST factory for %s", SyntaxErrorLabel)
		}
		return factory(ast, nil), nil
	}

	factory, ok := factories[ast.Label]
	if !ok && ast.Label == TerminalLabel {
		factory, ok = factories[TerminalLabel]
	}
	if !ok {
		return CSTNode{}, fmt.Errorf("squirrel: no CST factory for rule %q", ast.Label)
	}

	children := make([]CSTNode, len(ast.Children))
	for i, c := range ast.Children {
		child, err := BuildCST(c, factories, allowSyntaxErrors)
		if err != nil {
			return CSTNode{}, err
		}
		children[i] = child
	}
	return factory(ast, children), nil
}
