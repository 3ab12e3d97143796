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

// MetaGrammarRules returns the grammar of PEG grammars itself: a rule set
// built from this package's own Clause constructors that recognizes the
// textual grammar syntax ParseGrammar accepts (identifiers, string/char
// literals, character classes, sequences, ordered choice, prefix/suffix
// operators, and parenthesized groups).
func MetaGrammarRules() map[string]Clause {
	seq := NewSeq
	first := func(cs ...Clause) Clause { return NewChoice(cs) }
	lit := NewLiteral
	ch := NewCharSingle
	ref := NewRuleRef
	opt := NewOptional
	oneOrMore := NewOneOrMore
	zeroOrMore := NewZeroOrMore
	anyChar := NewAnyChar
	notFollowedBy := NewNotFollowedBy

	return map[string]Clause{
		"Grammar": seq([]Clause{ref("WS"), oneOrMore(seq([]Clause{ref("Rule"), ref("WS")}))}),
		"Rule": seq([]Clause{
			opt(lit("~")),
			ref("Identifier"),
			ref("WS"),
			lit("<-"),
			ref("WS"),
			ref("Expression"),
			ref("WS"),
			lit(";"),
			ref("WS"),
		}),
		"Expression": ref("Choice"),
		"Choice": seq([]Clause{
			ref("Sequence"),
			zeroOrMore(seq([]Clause{ref("WS"), lit("/"), ref("WS"), ref("Sequence")})),
		}),
		"Sequence": seq([]Clause{ref("Prefix"), zeroOrMore(seq([]Clause{ref("WS"), ref("Prefix")}))}),
		"Prefix": first(
			seq([]Clause{lit("&"), ref("WS"), ref("Prefix")}),
			seq([]Clause{lit("!"), ref("WS"), ref("Prefix")}),
			seq([]Clause{lit("~"), ref("WS"), ref("Prefix")}),
			ref("Suffix"),
		),
		"Suffix": first(
			seq([]Clause{ref("Suffix"), ref("WS"), lit("*")}),
			seq([]Clause{ref("Suffix"), ref("WS"), lit("+")}),
			seq([]Clause{ref("Suffix"), ref("WS"), lit("?")}),
			ref("Primary"),
		),
		"Primary": first(
			ref("Identifier"),
			ref("StringLiteral"),
			ref("CharLiteral"),
			ref("CharClass"),
			ref("AnyChar"),
			ref("Parens"),
		),
		"Parens": seq([]Clause{lit("("), ref("WS"), opt(ref("Expression")), ref("WS"), lit(")")}),
		"Identifier": seq([]Clause{
			first(CharSetRange('a', 'z'), CharSetRange('A', 'Z'), ch('_')),
			zeroOrMore(first(
				CharSetRange('a', 'z'),
				CharSetRange('A', 'Z'),
				CharSetRange('0', '9'),
				ch('_'),
			)),
		}),
		"StringLiteral": seq([]Clause{
			lit(`"`),
			zeroOrMore(first(
				ref("EscapeSequence"),
				seq([]Clause{notFollowedBy(first(lit(`"`), lit(`\`))), anyChar()}),
			)),
			lit(`"`),
		}),
		"CharLiteral": seq([]Clause{
			lit("'"),
			first(
				ref("EscapeSequence"),
				seq([]Clause{notFollowedBy(first(lit("'"), lit(`\`))), anyChar()}),
			),
			lit("'"),
		}),
		"EscapeSequence": seq([]Clause{
			lit(`\`),
			first(ch('n'), ch('r'), ch('t'), ch('\\'), ch('"'), ch('\''), ch('['), ch(']'), ch('-')),
		}),
		"CharClass": seq([]Clause{
			lit("["),
			opt(lit("^")),
			oneOrMore(first(ref("CharRange"), ref("CharClassChar"))),
			lit("]"),
		}),
		"CharRange":     seq([]Clause{ref("CharClassChar"), lit("-"), ref("CharClassChar")}),
		"CharClassChar": first(ref("EscapeSequence"), seq([]Clause{notFollowedBy(first(lit("]"), lit(`\`), lit("-"))), anyChar()})),
		"AnyChar":       lit("."),
		"~WS": zeroOrMore(first(
			ch(' '), ch('\t'), ch('\n'), ch('\r'), ref("Comment"),
		)),
		"Comment": seq([]Clause{
			lit("#"),
			zeroOrMore(seq([]Clause{notFollowedBy(ch('\n')), anyChar()})),
			opt(ch('\n')),
		}),
	}
}

const terminalASTLabel = "<Terminal>"

// ParseGrammar parses a textual PEG grammar specification (the syntax
// MetaGrammarRules recognizes) and returns the corresponding rule set,
// ready to pass to NewParser. Rule names prefixed with "~" in the source
// are transparent, matching NewParser's own convention.
func ParseGrammar(grammarSpec string) (map[string]Clause, error) {
	p, err := NewParser(MetaGrammarRules(), "Grammar", grammarSpec)
	if err != nil {
		return nil, err
	}
	result := p.Parse()
	if result.HasSyntaxErrors {
		var msgs []string
		for _, e := range result.GetSyntaxErrors() {
			msgs = append(msgs, e.syntaxErrorText())
		}
		return nil, grammarErrorf("", "squirrel: failed to parse grammar:\n%s", strings.Join(msgs, "\n"))
	}

	ast := BuildAST(result)
	grammarMap := make(map[string]Clause)

	for _, ruleNode := range ast.Children {
		if ruleNode.Label != "Rule" {
			continue
		}

		var identNode, exprNode *ASTNode
		isTransparent := false
		for i := range ruleNode.Children {
			child := ruleNode.Children[i]
			if child.Label == terminalASTLabel && identNode == nil {
				if child.InputSpan(grammarSpec) == "~" {
					isTransparent = true
				}
				continue
			}
			if child.Label == "Identifier" && identNode == nil {
				identNode = &ruleNode.Children[i]
			}
			if child.Label == "Expression" {
				exprNode = &ruleNode.Children[i]
			}
		}
		if identNode == nil {
			return nil, fmt.Errorf("squirrel: rule has no Identifier child")
		}
		if exprNode == nil {
			return nil, fmt.Errorf("squirrel: rule has no Expression child")
		}
		ruleName := identNode.InputSpan(grammarSpec)

		clause, err := buildClause(*exprNode, grammarSpec)
		if err != nil {
			return nil, err
		}

		if isTransparent {
			grammarMap["~"+ruleName] = clause
		} else {
			grammarMap[ruleName] = clause
		}
	}

	// normalizeRules both rejects a rule declared both transparent and
	// non-transparent and runs CheckRefs against the unprefixed rule
	// names RuleRef.Name actually holds (grammarMap's own keys still
	// carry "~" prefixes at this point, which CheckRefs does not strip).
	if _, _, err := normalizeRules(grammarMap); err != nil {
		return nil, err
	}

	return grammarMap, nil
}

func buildClause(node ASTNode, input string) (Clause, error) {
	switch node.Label {
	case "Expression":
		if len(node.Children) != 1 {
			return nil, fmt.Errorf("squirrel: Expression should have exactly one child, got %d", len(node.Children))
		}
		return buildClause(node.Children[0], input)

	case "Choice":
		var sequences []Clause
		for _, c := range node.Children {
			if c.Label == "Sequence" {
				sc, err := buildClause(c, input)
				if err != nil {
					return nil, err
				}
				sequences = append(sequences, sc)
			}
		}
		if len(sequences) == 0 {
			return nil, fmt.Errorf("squirrel: Choice has no Sequence children")
		}
		if len(sequences) == 1 {
			return sequences[0], nil
		}
		return NewChoice(sequences), nil

	case "Sequence":
		var prefixes []Clause
		for _, c := range node.Children {
			if c.Label == "Prefix" {
				pc, err := buildClause(c, input)
				if err != nil {
					return nil, err
				}
				prefixes = append(prefixes, pc)
			}
		}
		if len(prefixes) == 0 {
			return nil, fmt.Errorf("squirrel: Sequence has no Prefix children")
		}
		if len(prefixes) == 1 {
			return prefixes[0], nil
		}
		return NewSeq(prefixes), nil

	case "Prefix":
		var prefixOp string
		for _, c := range node.Children {
			if c.Label == terminalASTLabel {
				text := c.InputSpan(input)
				if text == "&" || text == "!" || text == "~" {
					prefixOp = text
					break
				}
			}
		}
		var operand *ASTNode
		for i := range node.Children {
			if node.Children[i].Label == "Prefix" || node.Children[i].Label == "Suffix" {
				operand = &node.Children[i]
				break
			}
		}
		if operand == nil {
			return nil, fmt.Errorf("squirrel: Prefix has no Prefix/Suffix child")
		}
		operandClause, err := buildClause(*operand, input)
		if err != nil {
			return nil, err
		}
		switch prefixOp {
		case "&":
			return NewFollowedBy(operandClause), nil
		case "!":
			return NewNotFollowedBy(operandClause), nil
		default:
			return operandClause, nil
		}

	case "Suffix":
		var suffixOp string
		for _, c := range node.Children {
			if c.Label == terminalASTLabel {
				text := c.InputSpan(input)
				if text == "*" || text == "+" || text == "?" {
					suffixOp = text
					break
				}
			}
		}
		var operand *ASTNode
		for i := range node.Children {
			if node.Children[i].Label == "Suffix" || node.Children[i].Label == "Primary" {
				operand = &node.Children[i]
				break
			}
		}
		if operand == nil {
			return nil, fmt.Errorf("squirrel: Suffix has no Suffix/Primary child")
		}
		operandClause, err := buildClause(*operand, input)
		if err != nil {
			return nil, err
		}
		switch suffixOp {
		case "*":
			return NewZeroOrMore(operandClause), nil
		case "+":
			return NewOneOrMore(operandClause), nil
		case "?":
			return NewOptional(operandClause), nil
		default:
			return operandClause, nil
		}

	case "Primary":
		for _, c := range node.Children {
			if c.Label != terminalASTLabel {
				return buildClause(c, input)
			}
		}
		return nil, fmt.Errorf("squirrel: Primary has no semantic child")

	case "Parens":
		for _, c := range node.Children {
			if c.Label == "Expression" {
				return buildClause(c, input)
			}
		}
		return NewNothing(), nil

	case "Identifier":
		return NewRuleRef(node.InputSpan(input)), nil

	case "StringLiteral":
		text := node.InputSpan(input)
		return NewLiteral(UnescapeString(text[1 : len(text)-1])), nil

	case "CharLiteral":
		text := node.InputSpan(input)
		return NewCharSingle(firstRune(UnescapeChar(text[1 : len(text)-1]))), nil

	case "CharClass":
		return buildCharClass(node, input)

	case "AnyChar":
		return NewAnyChar(), nil

	default:
		return nil, fmt.Errorf("squirrel: unknown AST node label %q", node.Label)
	}
}

func buildCharClass(node ASTNode, input string) (Clause, error) {
	negated := false
	for _, c := range node.Children {
		if c.Label == terminalASTLabel && c.InputSpan(input) == "^" {
			negated = true
			break
		}
	}

	var ranges []CharRange
	for _, c := range node.Children {
		switch c.Label {
		case "CharRange":
			var chars []ASTNode
			for _, cc := range c.Children {
				if cc.Label == "CharClassChar" {
					chars = append(chars, cc)
				}
			}
			if len(chars) != 2 {
				return nil, fmt.Errorf("squirrel: CharRange must have exactly 2 CharClassChar children")
			}
			lo, err := extractCharClassCharValue(chars[0], input)
			if err != nil {
				return nil, err
			}
			hi, err := extractCharClassCharValue(chars[1], input)
			if err != nil {
				return nil, err
			}
			ranges = append(ranges, CharRange{Lo: lo, Hi: hi})
		case "CharClassChar":
			cp, err := extractCharClassCharValue(c, input)
			if err != nil {
				return nil, err
			}
			ranges = append(ranges, CharRange{Lo: cp, Hi: cp})
		}
	}
	if len(ranges) == 0 {
		return nil, fmt.Errorf("squirrel: CharClass has no character items")
	}
	return NewCharSet(ranges, negated), nil
}

func extractCharClassCharValue(node ASTNode, input string) (rune, error) {
	for _, c := range node.Children {
		if c.Label == "EscapeSequence" {
			return firstRune(UnescapeChar(c.InputSpan(input))), nil
		}
	}
	return firstRune(UnescapeChar(node.InputSpan(input))), nil
}

func firstRune(s string) rune {
	for _, r := range s {
		return r
	}
	return 0
}
