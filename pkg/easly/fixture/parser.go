// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package fixture

import (
	"fmt"
	"slices"
	"strings"

	"github.com/dlebansais/Easly-Compiler-sub002/pkg/easly/ast"
	"github.com/dlebansais/Easly-Compiler-sub002/pkg/util/source"
	"gopkg.in/yaml.v3"
)

// SyntaxError is a problem found in a fixture file.
type SyntaxError = source.SyntaxError

// ===================================================================
// Public
// ===================================================================

// ParseSourceFiles parses zero or more fixture files into a single program,
// whose classes appear in file order.
func ParseSourceFiles(files []*source.File) (*ast.Program, *source.Maps[ast.Node], []SyntaxError) {
	var (
		classes []*ast.Class
		errors  []SyntaxError
		srcmaps = source.NewSourceMaps[ast.Node]()
	)
	//
	for _, file := range files {
		program, srcmap, errs := ParseSourceFile(file)
		// Handle errors
		if len(errs) > 0 {
			errors = append(errors, errs...)
		} else {
			srcmaps.Join(srcmap)
			classes = append(classes, program.Classes...)
		}
	}
	//
	if len(errors) > 0 {
		return nil, srcmaps, errors
	}
	//
	return ast.NewProgram(classes...), srcmaps, nil
}

// ParseSourceFile parses the contents of a single fixture file into a program,
// along with a mapping from every node to its position in the file.
func ParseSourceFile(srcfile *source.File) (*ast.Program, *source.Map[ast.Node], []SyntaxError) {
	var root yaml.Node
	//
	if err := yaml.Unmarshal([]byte(string(srcfile.Contents())), &root); err != nil {
		return nil, nil, []SyntaxError{*srcfile.SyntaxError(source.NewSpan(0, 0), err.Error())}
	}
	//
	p := NewParser(srcfile)
	program := p.parseDocument(&root)
	//
	if len(p.errors) > 0 {
		return nil, nil, p.errors
	}
	//
	return program, p.NodeMap(), nil
}

// Parser translates a YAML tree into a program.  Each node constructed is
// mapped to the position of the YAML node it was constructed from.
type Parser struct {
	srcfile *source.File
	// Mapping from constructed nodes to their spans in the original text.
	nodemap *source.Map[ast.Node]
	// Errors encountered so far.
	errors []SyntaxError
}

// NewParser constructs a new parser for a given file.
func NewParser(srcfile *source.File) *Parser {
	return &Parser{srcfile, source.NewSourceMap[ast.Node](*srcfile), nil}
}

// NodeMap returns the source map being constructed by this parser.
func (p *Parser) NodeMap() *source.Map[ast.Node] {
	return p.nodemap
}

// ===================================================================
// Declarations
// ===================================================================

func (p *Parser) parseDocument(root *yaml.Node) *ast.Program {
	if root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
		root = root.Content[0]
	} else if root.Kind == 0 {
		// Empty file
		return ast.NewProgram()
	}
	//
	fields, ok := p.fields(root, "classes")
	if !ok {
		return nil
	}
	//
	var classes []*ast.Class
	//
	for _, n := range p.sequence(fields["classes"]) {
		if c := p.parseClass(n); c != nil {
			classes = append(classes, c)
		}
	}
	//
	return ast.NewProgram(classes...)
}

func (p *Parser) parseClass(node *yaml.Node) *ast.Class {
	var (
		fields, ok  = p.fields(node, "name", "inherits", "features", "invariants")
		inheritance *ast.Inheritance
		features    []ast.Feature
	)
	//
	if !ok {
		return nil
	}
	//
	name, ok := p.required(node, fields, "name")
	if !ok {
		return nil
	}
	//
	if n := fields["inherits"]; n != nil {
		if parent, ok := p.scalar(n); ok {
			inheritance = ast.NewInheritance(parent)
			p.mapNode(n, inheritance)
		}
	}
	//
	for _, n := range p.sequence(fields["features"]) {
		if f := p.parseFeature(n); f != nil {
			features = append(features, f)
		}
	}
	//
	class := ast.NewClass(name.Value, inheritance, features, p.parseAssertions(fields["invariants"]))
	p.mapNode(name, class)
	//
	return class
}

// Feature kinds, along with the other keys permitted for each.
var featureKeys = map[string][]string{
	"constant":  {"type", "value", "redefine"},
	"attribute": {"type", "redefine"},
	"function":  {"parameters", "result", "require", "ensure", "body", "redefine"},
	"procedure": {"parameters", "require", "ensure", "body", "redefine"},
}

func (p *Parser) parseFeature(node *yaml.Node) ast.Feature {
	kind, name, fields, ok := p.variant(node, featureKeys)
	if !ok {
		return nil
	}
	//
	var feature ast.Feature
	//
	switch kind {
	case "constant":
		value := p.parseExpr(p.expect(node, fields, "value"))
		if value == nil {
			return nil
		}
		//
		feature = ast.NewConstantFeature(name.Value, p.optional(fields["type"]), value)
	case "attribute":
		feature = ast.NewAttributeFeature(name.Value, p.optional(fields["type"]))
	case "function":
		feature = ast.NewFunctionFeature(name.Value, p.parseEntities(fields["parameters"]),
			p.optional(fields["result"]), p.parseAssertions(fields["require"]),
			p.parseAssertions(fields["ensure"]), p.parseBody(fields["body"]))
	default:
		feature = ast.NewProcedureFeature(name.Value, p.parseEntities(fields["parameters"]),
			p.parseAssertions(fields["require"]), p.parseAssertions(fields["ensure"]),
			p.parseBody(fields["body"]))
	}
	//
	if n := fields["redefine"]; n != nil {
		var redefine bool
		//
		if err := n.Decode(&redefine); err != nil {
			p.error(n, "expected boolean")
		} else if redefine {
			feature.Header().MarkRedefinition()
		}
	}
	//
	p.mapNode(name, feature)
	//
	return feature
}

func (p *Parser) parseBody(node *yaml.Node) *ast.Body {
	if node == nil {
		return nil
	}
	//
	fields, ok := p.fields(node, "locals", "instructions")
	if !ok {
		return nil
	}
	//
	body := ast.NewBody(p.parseEntities(fields["locals"]), p.parseInstructions(fields["instructions"]))
	p.mapNode(node, body)
	//
	return body
}

func (p *Parser) parseEntities(node *yaml.Node) []*ast.Entity {
	var entities []*ast.Entity
	//
	for _, n := range p.sequence(node) {
		fields, ok := p.fields(n, "name", "type")
		if !ok {
			continue
		}
		//
		name, ok1 := p.required(n, fields, "name")
		typename, ok2 := p.required(n, fields, "type")
		//
		if ok1 && ok2 {
			entity := ast.NewEntity(name.Value, typename.Value)
			p.mapNode(name, entity)
			entities = append(entities, entity)
		}
	}
	//
	return entities
}

func (p *Parser) parseAssertions(node *yaml.Node) []*ast.Assertion {
	var assertions []*ast.Assertion
	//
	for _, n := range p.sequence(node) {
		fields, ok := p.fields(n, "tag", "expr")
		if !ok {
			continue
		}
		//
		if expr := p.parseExpr(p.expect(n, fields, "expr")); expr != nil {
			assertion := ast.NewAssertion(p.optional(fields["tag"]), expr)
			p.mapNode(n, assertion)
			assertions = append(assertions, assertion)
		}
	}
	//
	return assertions
}

// ===================================================================
// Instructions
// ===================================================================

var instructionKeys = map[string][]string{
	"assign": {"value"},
	"if":     {"then", "else"},
	"throw":  {},
	"call":   {"args"},
}

func (p *Parser) parseInstructions(node *yaml.Node) []ast.Instruction {
	var instructions []ast.Instruction
	//
	for _, n := range p.sequence(node) {
		if i := p.parseInstruction(n); i != nil {
			instructions = append(instructions, i)
		}
	}
	//
	return instructions
}

func (p *Parser) parseInstruction(node *yaml.Node) ast.Instruction {
	var (
		instruction       ast.Instruction
		kind, head, field = p.anyVariant(node, instructionKeys)
	)
	//
	switch kind {
	case "assign":
		target, ok := p.scalar(head)
		value := p.parseExpr(p.expect(node, field, "value"))
		//
		if !ok || value == nil {
			return nil
		}
		//
		instruction = ast.NewAssignmentInstruction(target, value)
	case "if":
		condition := p.parseExpr(head)
		if condition == nil {
			return nil
		}
		// An empty else clause is distinct from no else clause.
		var otherwise []ast.Instruction
		//
		if n := field["else"]; n != nil {
			otherwise = append([]ast.Instruction{}, p.parseInstructions(n)...)
		}
		//
		instruction = ast.NewConditionalInstruction(condition, p.parseInstructions(field["then"]), otherwise)
	case "throw":
		name, ok := p.scalar(head)
		if !ok {
			return nil
		}
		//
		instruction = ast.NewThrowInstruction(name)
	case "call":
		name, ok := p.scalar(head)
		if !ok {
			return nil
		}
		//
		instruction = ast.NewCommandInstruction(name, p.parseExprs(field["args"])...)
	default:
		return nil
	}
	//
	p.mapNode(head, instruction)
	//
	return instruction
}

// ===================================================================
// Expressions
// ===================================================================

var expressionKeys = map[string][]string{
	"number":    {},
	"string":    {},
	"keyword":   {},
	"query":     {"args"},
	"binary":    {"left", "right"},
	"unary":     {"operand"},
	"equal":     {},
	"different": {},
	"precursor": {},
}

var keywords = map[string]ast.Keyword{
	ast.TrueKeyword.String():    ast.TrueKeyword,
	ast.FalseKeyword.String():   ast.FalseKeyword,
	ast.CurrentKeyword.String(): ast.CurrentKeyword,
	ast.ResultKeyword.String():  ast.ResultKeyword,
}

func (p *Parser) parseExprs(node *yaml.Node) []ast.Expression {
	var exprs []ast.Expression
	//
	for _, n := range p.sequence(node) {
		if e := p.parseExpr(n); e != nil {
			exprs = append(exprs, e)
		}
	}
	//
	return exprs
}

// Parse an expression, returning nil if an error was reported.
func (p *Parser) parseExpr(node *yaml.Node) ast.Expression {
	if node == nil {
		return nil
	}
	//
	var (
		expr              ast.Expression
		kind, head, field = p.anyVariant(node, expressionKeys)
	)
	//
	switch kind {
	case "number", "string", "query", "binary", "unary", "keyword":
		text, ok := p.scalar(head)
		if !ok {
			return nil
		}
		//
		expr = p.parseScalarExpr(kind, head, text, field)
	case "equal", "different":
		operands := p.parseExprs(head)
		if len(operands) != 2 {
			p.error(head, "expected two operands")
			return nil
		}
		//
		expr = ast.NewEqualityExpression(operands[0], kind == "equal", operands[1])
	case "precursor":
		expr = ast.NewPrecursorExpression(p.parseExprs(head)...)
	}
	//
	if expr != nil {
		p.mapNode(head, expr)
	}
	//
	return expr
}

func (p *Parser) parseScalarExpr(kind string, head *yaml.Node, text string,
	field map[string]*yaml.Node) ast.Expression {
	switch kind {
	case "number":
		return ast.NewNumberExpression(text)
	case "string":
		return ast.NewStringExpression(text)
	case "keyword":
		if k, ok := keywords[text]; ok {
			return ast.NewKeywordExpression(k)
		}
		//
		p.error(head, "unknown keyword %q", text)
	case "query":
		return ast.NewQueryExpression(text, p.parseExprs(field["args"])...)
	case "binary":
		left := p.parseExpr(p.expect(head, field, "left"))
		right := p.parseExpr(p.expect(head, field, "right"))
		//
		if left != nil && right != nil {
			return ast.NewBinaryExpression(left, text, right)
		}
	case "unary":
		if operand := p.parseExpr(p.expect(head, field, "operand")); operand != nil {
			return ast.NewUnaryExpression(text, operand)
		}
	}
	//
	return nil
}

// ===================================================================
// Helpers
// ===================================================================

// Determine the kind of a mapping which is identified by exactly one of a
// given set of keys, returning the kind, the value of the identifying key
// (which must be a scalar) and all fields.
func (p *Parser) variant(node *yaml.Node, kinds map[string][]string) (string, *yaml.Node,
	map[string]*yaml.Node, bool) {
	kind, head, fields := p.anyVariant(node, kinds)
	if kind == "" {
		return "", nil, nil, false
	} else if _, ok := p.scalar(head); !ok {
		return "", nil, nil, false
	}
	//
	return kind, head, fields, true
}

// As for variant, except the value of the identifying key can be any node.
// An empty kind is returned if an error was reported.
func (p *Parser) anyVariant(node *yaml.Node, kinds map[string][]string) (string, *yaml.Node,
	map[string]*yaml.Node) {
	if node.Kind != yaml.MappingNode {
		p.error(node, "expected mapping")
		return "", nil, nil
	}
	//
	var kind string
	//
	for i := 0; i < len(node.Content); i += 2 {
		key := node.Content[i].Value
		//
		if _, ok := kinds[key]; !ok {
			continue
		} else if kind != "" {
			p.error(node.Content[i], "conflicting keys %q and %q", kind, key)
			return "", nil, nil
		}
		//
		kind = key
	}
	//
	if kind == "" {
		p.error(node, "expected one of %s", strings.Join(sortedKeys(kinds), ", "))
		return "", nil, nil
	}
	//
	fields, ok := p.fields(node, append([]string{kind}, kinds[kind]...)...)
	if !ok {
		return "", nil, nil
	}
	//
	return kind, fields[kind], fields
}

// Extract the fields of a mapping, checking that every key is permitted.
func (p *Parser) fields(node *yaml.Node, allowed ...string) (map[string]*yaml.Node, bool) {
	if node.Kind != yaml.MappingNode {
		p.error(node, "expected mapping")
		return nil, false
	}
	//
	fields := make(map[string]*yaml.Node)
	//
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := node.Content[i], node.Content[i+1]
		//
		if !slices.Contains(allowed, key.Value) {
			p.error(key, "unknown key %q", key.Value)
			return nil, false
		} else if _, ok := fields[key.Value]; ok {
			p.error(key, "duplicate key %q", key.Value)
			return nil, false
		}
		//
		fields[key.Value] = value
	}
	//
	return fields, true
}

// Extract the elements of a sequence, where a missing or null node is
// considered an empty sequence.
func (p *Parser) sequence(node *yaml.Node) []*yaml.Node {
	if node == nil || node.Tag == "!!null" {
		return nil
	} else if node.Kind != yaml.SequenceNode {
		p.error(node, "expected sequence")
		return nil
	}
	//
	return node.Content
}

func (p *Parser) scalar(node *yaml.Node) (string, bool) {
	if node.Kind != yaml.ScalarNode || node.Tag == "!!null" {
		p.error(node, "expected scalar")
		return "", false
	}
	//
	return node.Value, true
}

// Extract the value of an optional scalar field, where an empty string
// indicates it was not given (or was invalid).
func (p *Parser) optional(node *yaml.Node) string {
	if node == nil {
		return ""
	}
	//
	value, _ := p.scalar(node)
	//
	return value
}

// Extract a field which must be present.
func (p *Parser) expect(node *yaml.Node, fields map[string]*yaml.Node, key string) *yaml.Node {
	if n := fields[key]; n != nil {
		return n
	}
	//
	p.error(node, "missing %q", key)
	//
	return nil
}

// Extract a scalar field which must be present.
func (p *Parser) required(node *yaml.Node, fields map[string]*yaml.Node, key string) (*yaml.Node, bool) {
	n := p.expect(node, fields, key)
	if n == nil {
		return nil, false
	} else if _, ok := p.scalar(n); !ok {
		return nil, false
	}
	//
	return n, true
}

func (p *Parser) mapNode(from *yaml.Node, to ast.Node) {
	length := len(from.Value)
	if from.Kind != yaml.ScalarNode {
		length = 1
	}
	//
	p.nodemap.Put(to, p.srcfile.SpanAt(from.Line, from.Column, length))
}

func (p *Parser) error(node *yaml.Node, format string, args ...any) {
	span := p.srcfile.SpanAt(node.Line, node.Column, max(1, len(node.Value)))
	p.errors = append(p.errors, *p.srcfile.SyntaxError(span, fmt.Sprintf(format, args...)))
}

func sortedKeys(kinds map[string][]string) []string {
	keys := make([]string, 0, len(kinds))
	//
	for k := range kinds {
		keys = append(keys, k)
	}
	//
	slices.Sort(keys)
	//
	return keys
}
