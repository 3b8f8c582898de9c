package rewrite

import "cstamp/internal/ast"

// LiteralKind enumerates the literal forms the modifier can rewrite.
type LiteralKind int

const (
	LiteralInteger LiteralKind = iota
	LiteralFloat
	LiteralString
)

func (k LiteralKind) String() string {
	switch k {
	case LiteralInteger:
		return "integer"
	case LiteralFloat:
		return "float"
	case LiteralString:
		return "string"
	}
	return "unknown"
}

// ClassifyKind maps a node kind to a supported literal kind. Everything
// outside the three literal kinds reports false.
func ClassifyKind(kind ast.Kind) (LiteralKind, bool) {
	switch kind {
	case ast.KindIntegerLiteral:
		return LiteralInteger, true
	case ast.KindFloatLiteral:
		return LiteralFloat, true
	case ast.KindStringLiteral:
		return LiteralString, true
	}
	return 0, false
}
