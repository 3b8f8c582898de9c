package cpp

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"cstamp/internal/ast"
)

// node is the materialized ast.Node produced from a tree-sitter node.
type node struct {
	kind     ast.Kind
	spelling string
	extent   ast.Range
	children []ast.Node
}

func (n *node) Kind() ast.Kind       { return n.kind }
func (n *node) Spelling() string     { return n.spelling }
func (n *node) Extent() ast.Range    { return n.extent }
func (n *node) Children() []ast.Node { return n.children }

func extentOf(n *sitter.Node) ast.Range {
	return ast.Range{Start: n.StartByte(), End: n.EndByte()}
}

// convert maps a tree-sitter node onto the closed kind set of ast.Node.
func convert(n *sitter.Node, content []byte) *node {
	switch n.Type() {
	case "namespace_definition":
		out := &node{kind: ast.KindNamespace, extent: extentOf(n)}
		if name := n.ChildByFieldName("name"); name != nil {
			out.spelling = name.Content(content)
		}
		if body := n.ChildByFieldName("body"); body != nil {
			out.children = convertChildren(body, content)
		}
		return out

	case "declaration":
		return convertDeclaration(n, content)

	case "number_literal":
		return &node{kind: classifyNumber(n.Content(content)), extent: extentOf(n)}

	case "string_literal", "raw_string_literal":
		return &node{kind: ast.KindStringLiteral, extent: extentOf(n)}

	case "initializer_list", "parenthesized_expression":
		// Wrappers the resolver may look through, one level at a time.
		return &node{kind: ast.KindUnexposedExpr, extent: extentOf(n), children: convertChildren(n, content)}

	default:
		return &node{kind: ast.KindOther, extent: extentOf(n), children: convertChildren(n, content)}
	}
}

func convertChildren(n *sitter.Node, content []byte) []ast.Node {
	count := int(n.NamedChildCount())
	if count == 0 {
		return nil
	}
	children := make([]ast.Node, 0, count)
	for i := 0; i < count; i++ {
		children = append(children, convert(n.NamedChild(i), content))
	}
	return children
}

// convertDeclaration emits one VarDecl per initialized declarator. The
// declaration extent spans the whole statement, matching what callers see
// when they ask for a variable's full declaration range.
func convertDeclaration(decl *sitter.Node, content []byte) *node {
	var vars []ast.Node
	for i := 0; i < int(decl.NamedChildCount()); i++ {
		child := decl.NamedChild(i)
		if child.Type() != "init_declarator" {
			continue
		}
		if v := convertDeclarator(decl, child, content); v != nil {
			vars = append(vars, v)
		}
	}

	if len(vars) == 1 {
		return vars[0].(*node)
	}
	return &node{kind: ast.KindOther, extent: extentOf(decl), children: vars}
}

func convertDeclarator(decl, init *sitter.Node, content []byte) *node {
	name := declaratorName(init.ChildByFieldName("declarator"), content)
	if name == "" {
		return nil
	}
	out := &node{kind: ast.KindVarDecl, spelling: name, extent: extentOf(decl)}
	if value := init.ChildByFieldName("value"); value != nil {
		out.children = []ast.Node{convert(value, content)}
	}
	return out
}

// declaratorName digs the identifier out of pointer, reference and array
// declarators.
func declaratorName(n *sitter.Node, content []byte) string {
	for n != nil {
		switch n.Type() {
		case "identifier", "field_identifier", "qualified_identifier":
			return n.Content(content)
		case "pointer_declarator", "reference_declarator", "array_declarator":
			n = n.ChildByFieldName("declarator")
		default:
			return ""
		}
	}
	return ""
}

// classifyNumber splits the grammar's single number_literal kind into
// integer and float variants based on the token text.
func classifyNumber(text string) ast.Kind {
	lower := strings.ToLower(text)
	if strings.HasPrefix(lower, "0x") || strings.HasPrefix(lower, "0b") {
		// Hex floats carry a dot or a binary exponent.
		if strings.ContainsAny(lower[2:], ".p") {
			return ast.KindFloatLiteral
		}
		return ast.KindIntegerLiteral
	}
	if strings.ContainsAny(lower, ".e") {
		return ast.KindFloatLiteral
	}
	// A trailing f marks a float even without a dot, as in "1e3f".
	if strings.HasSuffix(strings.TrimRight(lower, "l"), "f") {
		return ast.KindFloatLiteral
	}
	return ast.KindIntegerLiteral
}
