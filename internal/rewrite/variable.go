package rewrite

import "cstamp/internal/ast"

// Variable describes a declaration whose initializer is a single literal.
// Instances are rebuilt on every resolution pass and never persisted.
type Variable struct {
	Name string
	// DeclRange spans the whole declaration statement.
	DeclRange ast.Range
	// InitRange spans only the literal token supplying the initial value.
	InitRange ast.Range
	Kind      LiteralKind
}

// Modification is one requested change. An empty Namespace means the
// variable is searched in every scope.
type Modification struct {
	Namespace string
	Variable  string
	NewValue  string
}
