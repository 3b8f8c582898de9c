// Package cpp binds the tree-sitter C++ grammar to the ast.Node surface
// consumed by the rewrite engine.
package cpp

import (
	"context"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
	tscpp "github.com/smacker/go-tree-sitter/cpp"

	"cstamp/internal/ast"
)

// Parser parses one C++ translation unit at a time.
type Parser struct {
	parser *sitter.Parser
	lang   *sitter.Language
	flags  []string
}

// NewParser creates a Parser. Compiler flags are accepted for parity with
// clang-style frontends; the tree-sitter grammar does not consume any.
func NewParser(flags ...string) *Parser {
	parser := sitter.NewParser()
	lang := tscpp.GetLanguage()
	parser.SetLanguage(lang)
	return &Parser{parser: parser, lang: lang, flags: flags}
}

// Parse builds the ast.Node tree for content. The returned tree is fully
// materialized, so it stays valid after the parser is closed.
func (p *Parser) Parse(ctx context.Context, content []byte) (ast.Node, error) {
	tree, err := p.parser.ParseCtx(ctx, nil, content)
	if err != nil {
		return nil, fmt.Errorf("failed to parse source: %w", err)
	}
	defer tree.Close()

	return convert(tree.RootNode(), content), nil
}

// Close releases the underlying tree-sitter parser.
func (p *Parser) Close() {
	if p.parser != nil {
		p.parser.Close()
	}
}
