// Package parser implements Strada's participle-based parser: the same
// parser-combinator technique the teacher uses for its own language,
// generalized from the teacher's single-state lexer and flat expression
// grammar to Strada's full token set and sixteen-level precedence chain.
package parser

import (
	"fmt"
	"io"

	"github.com/alecthomas/participle/v2"

	"github.com/gaarutyunov/strada/internal/diag"
	"github.com/gaarutyunov/strada/internal/lexer"
	"github.com/gaarutyunov/strada/pkg/ast"
)

// Parser is the Strada parser: participle.Build[File] wrapped with the
// CST-to-AST lowering pass from build.go.
type Parser struct {
	parser *participle.Parser[File]
}

// New builds a Strada parser. Like the teacher's own parser, lookahead is
// raised above participle's default to resolve the grammar's several
// same-leading-token alternatives (use/use-lib, the postfix-suffix
// alternation, Primary's call-vs-bare-name case).
func New() (*Parser, error) {
	p, err := participle.Build[File](
		participle.Lexer(lexer.MustDefinition()),
		participle.Elide("BlockComment", "LineComment", "Whitespace"),
		participle.UseLookahead(10),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to build parser: %w", err)
	}
	return &Parser{parser: p}, nil
}

// Parse parses Strada source from r, attributing diagnostics to filename.
func (p *Parser) Parse(filename string, r io.Reader) (*ast.Program, error) {
	f, err := p.parser.Parse(filename, r)
	if err != nil {
		return nil, wrapParseError(filename, err)
	}
	return buildProgram(filename, f), nil
}

// ParseString parses a Strada source string.
func (p *Parser) ParseString(filename, source string) (*ast.Program, error) {
	f, err := p.parser.ParseString(filename, source)
	if err != nil {
		return nil, wrapParseError(filename, err)
	}
	return buildProgram(filename, f), nil
}

// ParseBytes parses Strada source bytes.
func (p *Parser) ParseBytes(filename string, source []byte) (*ast.Program, error) {
	f, err := p.parser.ParseBytes(filename, source)
	if err != nil {
		return nil, wrapParseError(filename, err)
	}
	return buildProgram(filename, f), nil
}

// wrapParseError normalizes a participle error into a *diag.Diagnostic so
// callers get the "file:line:col: parse error: message" form (§7)
// regardless of whether participle attached position information.
func wrapParseError(filename string, err error) error {
	if perr, ok := err.(participle.Error); ok {
		pos := perr.Position()
		return diag.New(diag.Parse, diag.Position{File: filename, Line: pos.Line, Column: pos.Column}, "%s", perr.Message())
	}
	return diag.New(diag.Parse, diag.Position{File: filename}, "%s", err.Error())
}
