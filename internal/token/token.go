// Package token defines the lexical tokens produced by the Strada lexer.
package token

import (
	"fmt"

	"github.com/gaarutyunov/strada/internal/diag"
)

// Position is a location in a single source file.
type Position struct {
	File   string
	Line   int
	Column int
	Offset int
}

// String renders a position as "file:line:col".
func (p Position) String() string {
	if p.File == "" {
		return fmt.Sprintf("%d:%d", p.Line, p.Column)
	}
	return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column)
}

// IsValid reports whether p was ever assigned a line.
func (p Position) IsValid() bool {
	return p.Line > 0
}

// Diag converts a Position to the shape internal/diag formats diagnostics
// against, keeping diag free of a dependency on this package.
func (p Position) Diag() diag.Position {
	return diag.Position{File: p.File, Line: p.Line, Column: p.Column}
}

// Kind enumerates the lexical categories a Token can carry. It mirrors the
// lexer rule names of internal/lexer so that a Token.Kind can be compared
// directly against participle's EOF/rule tokens once mapped.
type Kind int

const (
	Invalid Kind = iota
	EOF

	Ident   // bare identifier, possibly package-qualified with ::
	Sigil   // one of $ @ %
	Keyword // reserved word, see Keywords
	Int
	Num
	Str       // single- or double-quoted string (interpolation markers retained)
	Backtick  // command literal
	Regex     // /pattern/flags or s/pat/repl/flags
	QwWord    // a whole qw(...) word list, as one token (pkg/parser splits it)
	Operator  // longest-match operator lexeme, ':' included
	Punct     // single-character punctuation: ( ) [ ] { } , ;
	LabelColl // "LABEL:" label definition marker (distinguished from ternary ':')
)

func (k Kind) String() string {
	switch k {
	case EOF:
		return "EOF"
	case Ident:
		return "identifier"
	case Sigil:
		return "sigil"
	case Keyword:
		return "keyword"
	case Int:
		return "integer literal"
	case Num:
		return "numeric literal"
	case Str:
		return "string literal"
	case Backtick:
		return "command literal"
	case Regex:
		return "regex literal"
	case QwWord:
		return "qw word"
	case Operator:
		return "operator"
	case Punct:
		return "punctuation"
	case LabelColl:
		return "label"
	default:
		return "invalid"
	}
}

// Token is one lexeme: its kind, the owned source text, its position, and a
// kind-specific parsed value for numeric and string literals.
type Token struct {
	Kind    Kind
	Lexeme  string
	Pos     Position
	IntVal  int64
	NumVal  float64
	StrVal  string // unescaped value for Str/Backtick; pattern for Regex
}

func (t Token) String() string {
	if t.Kind == EOF {
		return fmt.Sprintf("EOF at %s", t.Pos)
	}
	return fmt.Sprintf("%s(%q) at %s", t.Kind, t.Lexeme, t.Pos)
}

// Keywords is the closed set of reserved words recognized by the lexer (§4.1).
var Keywords = map[string]bool{
	// control flow
	"if": true, "elsif": true, "else": true, "unless": true,
	"while": true, "until": true, "for": true, "foreach": true,
	"last": true, "next": true, "return": true,
	"try": true, "catch": true, "throw": true, "goto": true,
	// declarations
	"my": true, "func": true, "extern": true, "package": true,
	"use": true, "lib": true, "version": true, "import_lib": true, "struct": true,
	// types
	"void": true, "int": true, "num": true, "str": true, "scalar": true,
	"array": true, "hash": true,
	"int8": true, "int16": true, "int32": true, "int64": true,
	"uint8": true, "uint16": true, "uint32": true, "uint64": true,
	"float": true, "bool": true, "size": true, "ptr": true,
	"char": true, "short": true, "long": true,
	// word operators / builtins recognized lexically
	"and": true, "or": true, "not": true,
	"eq": true, "ne": true, "lt": true, "gt": true, "le": true, "ge": true,
	"qw": true,
}
