// Package ast defines the minimal node surface the rewrite engine needs
// from a C++ frontend: a kind, a spelling, a byte extent and children.
// Keeping the surface this small lets the resolution and patching logic run
// against hand-built trees in tests without a real parser.
package ast

import "fmt"

// Kind discriminates the node shapes the rewrite engine cares about.
// Anything a frontend cannot map onto one of these is KindOther.
type Kind int

const (
	KindOther Kind = iota
	KindNamespace
	KindVarDecl
	KindIntegerLiteral
	KindFloatLiteral
	KindStringLiteral
	KindUnexposedExpr
)

func (k Kind) String() string {
	switch k {
	case KindNamespace:
		return "namespace"
	case KindVarDecl:
		return "variable declaration"
	case KindIntegerLiteral:
		return "integer literal"
	case KindFloatLiteral:
		return "float literal"
	case KindStringLiteral:
		return "string literal"
	case KindUnexposedExpr:
		return "unexposed expression"
	}
	return "other"
}

// Range is a half-open byte range into the file content.
type Range struct {
	Start uint32
	End   uint32
}

// NewRange builds a Range, rejecting inverted offsets.
func NewRange(start, end uint32) (Range, error) {
	if start > end {
		return Range{}, fmt.Errorf("invalid range: start offset %d exceeds end offset %d", start, end)
	}
	return Range{Start: start, End: end}, nil
}

// Len returns the number of bytes the range spans.
func (r Range) Len() int {
	return int(r.End) - int(r.Start)
}

// Node is one node of a parsed translation unit.
type Node interface {
	Kind() Kind
	// Spelling is the node's name, empty when it has none.
	Spelling() string
	Extent() Range
	Children() []Node
}
