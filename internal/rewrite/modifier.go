// Package rewrite locates literal-initialized variables in a C++ file and
// rewrites their initializer tokens in place, leaving every other byte of
// the file untouched.
package rewrite

import (
	"context"
	"fmt"
	"os"

	"github.com/tliron/commonlog"

	"cstamp/internal/ast"
	"cstamp/internal/placeholder"
)

var log = commonlog.GetLogger("rewrite")

// Provider yields the AST for one translation unit.
type Provider interface {
	Parse(ctx context.Context, content []byte) (ast.Node, error)
}

// Modifier drives resolution, formatting and patching for one file. The
// file is read and parsed once at construction; nothing is cached across
// instances.
type Modifier struct {
	path     string
	content  []byte
	root     ast.Node
	expander *placeholder.Expander
}

// AppliedChange records one committed modification.
type AppliedChange struct {
	Namespace string
	Variable  string
	OldValue  string
	NewValue  string
	Range     ast.Range
}

// Constant pairs a resolved variable with its current initializer text.
type Constant struct {
	Variable
	Current string
}

// NewModifier reads and parses the file. The expander may be nil, in which
// case requested values are used verbatim.
func NewModifier(ctx context.Context, path string, provider Provider, expander *placeholder.Expander) (*Modifier, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	root, err := provider.Parse(ctx, content)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return &Modifier{path: path, content: content, root: root, expander: expander}, nil
}

// Apply resolves, formats and commits every requested modification. The
// operation is all-or-nothing: the file is rewritten, atomically, only
// after every single modification has produced a pending change.
func (m *Modifier) Apply(mods []Modification) ([]AppliedChange, error) {
	groups, order := groupByNamespace(mods)

	var changes []Change
	var applied []AppliedChange
	for _, namespace := range order {
		group := groups[namespace]
		names := make([]string, len(group))
		for i, mod := range group {
			names[i] = mod.Variable
		}
		found := resolveVariables(m.root, namespace, names)

		for _, mod := range group {
			variable, ok := found[mod.Variable]
			if !ok {
				return nil, fmt.Errorf("variable %q not found in %s", mod.Variable, scopeName(namespace))
			}

			current := m.textAt(variable.InitRange)
			text, err := formatValue(m.expander, mod.NewValue, variable.Kind, current)
			if err != nil {
				return nil, fmt.Errorf("failed to format new value for %q: %w", mod.Variable, err)
			}

			log.Debugf("rewriting %s at [%d,%d): %s -> %s",
				mod.Variable, variable.InitRange.Start, variable.InitRange.End, current, text)
			changes = append(changes, Change{Range: variable.InitRange, Text: text})
			applied = append(applied, AppliedChange{
				Namespace: namespace,
				Variable:  mod.Variable,
				OldValue:  current,
				NewValue:  text,
				Range:     variable.InitRange,
			})
		}
	}

	patched, err := applyChanges(m.content, changes)
	if err != nil {
		return nil, err
	}
	if err := writeFileAtomic(m.path, patched); err != nil {
		return nil, err
	}
	m.content = patched

	log.Infof("applied %d modifications to %s", len(changes), m.path)
	return applied, nil
}

// Constants lists every literal-initialized variable in the given scope,
// in the order they appear in the file.
func (m *Modifier) Constants(namespace string) []Constant {
	vars := collectVariables(m.root, namespace)
	out := make([]Constant, 0, len(vars))
	for _, v := range vars {
		out = append(out, Constant{Variable: v, Current: m.textAt(v.InitRange)})
	}
	return out
}

func (m *Modifier) textAt(r ast.Range) string {
	return string(m.content[r.Start:r.End])
}

// groupByNamespace buckets modifications per namespace, keeping the order
// in which namespaces were first encountered.
func groupByNamespace(mods []Modification) (map[string][]Modification, []string) {
	groups := make(map[string][]Modification)
	var order []string
	for _, mod := range mods {
		if _, seen := groups[mod.Namespace]; !seen {
			order = append(order, mod.Namespace)
		}
		groups[mod.Namespace] = append(groups[mod.Namespace], mod)
	}
	return groups, order
}

func scopeName(namespace string) string {
	if namespace == "" {
		return "global scope"
	}
	return fmt.Sprintf("namespace %q", namespace)
}
