package rewrite

import "cstamp/internal/ast"

// resolveVariables locates declarations for the requested names. With an
// empty namespace every scope is searched transitively; otherwise only
// subtrees below a namespace node with the given spelling are considered,
// nested namespaces included. For duplicate declarations the first match in
// pre-order wins.
func resolveVariables(root ast.Node, namespace string, names []string) map[string]Variable {
	found := make(map[string]Variable, len(names))
	outstanding := make(map[string]struct{}, len(names))
	for _, name := range names {
		outstanding[name] = struct{}{}
	}
	walkScope(root, namespace, namespace == "", outstanding, found)
	return found
}

func walkScope(n ast.Node, namespace string, inScope bool, outstanding map[string]struct{}, found map[string]Variable) {
	for _, child := range n.Children() {
		if len(outstanding) == 0 {
			return
		}
		if child.Kind() == ast.KindVarDecl && inScope {
			if _, wanted := outstanding[child.Spelling()]; wanted {
				if v, ok := variableFromDecl(child); ok {
					found[v.Name] = v
					delete(outstanding, v.Name)
					continue
				}
			}
		}
		switch {
		case namespace == "":
			walkScope(child, namespace, true, outstanding, found)
		case child.Kind() == ast.KindNamespace && child.Spelling() == namespace:
			walkScope(child, namespace, true, outstanding, found)
		default:
			walkScope(child, namespace, inScope, outstanding, found)
		}
	}
}

// collectVariables gathers every literal-initialized declaration visible in
// the given scope, in pre-order.
func collectVariables(root ast.Node, namespace string) []Variable {
	var out []Variable
	var walk func(n ast.Node, inScope bool)
	walk = func(n ast.Node, inScope bool) {
		for _, child := range n.Children() {
			if child.Kind() == ast.KindVarDecl && inScope {
				if v, ok := variableFromDecl(child); ok {
					out = append(out, v)
					continue
				}
			}
			switch {
			case namespace == "":
				walk(child, true)
			case child.Kind() == ast.KindNamespace && child.Spelling() == namespace:
				walk(child, true)
			default:
				walk(child, inScope)
			}
		}
	}
	walk(root, namespace == "")
	return out
}

// variableFromDecl reduces a declaration to a Variable when its initializer
// is a supported literal. Direct literal children are checked first, then
// unexposed wrappers are descended for implicit conversions and brace
// initialization.
func variableFromDecl(decl ast.Node) (Variable, bool) {
	for _, child := range decl.Children() {
		if kind, ok := ClassifyKind(child.Kind()); ok {
			return Variable{
				Name:      decl.Spelling(),
				DeclRange: decl.Extent(),
				InitRange: child.Extent(),
				Kind:      kind,
			}, true
		}
		if child.Kind() == ast.KindUnexposedExpr {
			if initRange, kind, ok := extractLiteral(child); ok {
				return Variable{
					Name:      decl.Spelling(),
					DeclRange: decl.Extent(),
					InitRange: initRange,
					Kind:      kind,
				}, true
			}
		}
	}
	return Variable{}, false
}

func extractLiteral(expr ast.Node) (ast.Range, LiteralKind, bool) {
	for _, child := range expr.Children() {
		if kind, ok := ClassifyKind(child.Kind()); ok {
			return child.Extent(), kind, true
		}
		if child.Kind() == ast.KindUnexposedExpr {
			if initRange, kind, ok := extractLiteral(child); ok {
				return initRange, kind, true
			}
		}
	}
	return ast.Range{}, 0, false
}
