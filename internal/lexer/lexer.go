// Package lexer defines the Strada lexical grammar as a participle stateful
// lexer. Rules are tried in order and, within the Root state's operator
// alternation, listed longest-match-first (mirroring how the teacher's own
// guixLexer orders its "Op" rule).
package lexer

import (
	"bytes"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2/lexer"

	"github.com/gaarutyunov/strada/internal/token"
)

// keywordPattern joins internal/token's reserved-word set into a single
// word-boundary regex alternation, longest names first so e.g. "int8"
// matches before "int" would otherwise shadow it.
func keywordPattern() string {
	words := make([]string, 0, len(token.Keywords))
	for w := range token.Keywords {
		words = append(words, w)
	}
	sort.Slice(words, func(i, j int) bool { return len(words[i]) > len(words[j]) })
	return `\b(` + strings.Join(words, "|") + `)\b`
}

// Rules is the Strada lexical grammar. There is a single "Root" state:
// Strada's double-quoted strings keep their interpolation markers as raw
// text (§4.4 splits them at codegen time, not lex time), so unlike the
// teacher's template literals no Push/Pop into a nested state is needed.
var Rules = lexer.Rules{
	"Root": {
		{"BlockComment", `/\*([^*]|\*+[^*/])*\*+/`, nil},
		{"LineComment", `#[^\n]*`, nil},
		{"Whitespace", `[ \t\r\n]+`, nil},

		// s/pattern/replacement/flags must precede Ident so a bare
		// variable named "s" isn't swallowed; it only matches when an
		// immediate '/' follows the 's'.
		{"RegexSubst", `s/(?:\\.|[^/\n])*/(?:\\.|[^/\n])*/[imsg]*`, nil},
		// /pattern/flags. Heuristic: only recognized when non-empty and
		// terminated on the same line. This cannot be fully disambiguated
		// from division by a lexer with no parser context: two '/' on one
		// line, as in `$a / $b / $c`, lex the span between them as a regex.
		{"Regex", `/(?:\\.|[^/\n])+/[imsg]*`, nil},

		{"Qw", `qw\s*\([^)]*\)`, nil},

		{"Hex", `0[xX][0-9a-fA-F]+`, nil},
		{"Bin", `0[bB][01]+`, nil},
		{"Oct", `0[0-7]+`, nil},
		{"Float", `[0-9]+\.[0-9]+([eE][+-]?[0-9]+)?|[0-9]+[eE][+-]?[0-9]+`, nil},
		{"Int", `[0-9]+`, nil},

		{"String", `'(?:\\.|[^'\\])*'|"(?:\\.|[^"\\])*"`, nil},
		{"Backtick", "`(?:\\\\.|[^`\\\\])*`", nil},

		// Keyword must precede Ident so reserved words tokenize distinctly
		// (mirrors the teacher's lexer, which also tries Keyword before
		// Ident); the grammar then accepts @Ident or @Keyword wherever a
		// bare word may legitimately be either a type name and a reserved
		// word (e.g. "int", "array" used as a struct field's type).
		{"Keyword", keywordPattern(), nil},
		{"Ident", `[A-Za-z_][A-Za-z0-9_]*`, nil},
		{"Sigil", `[$@%]`, nil},

		// Longest-match-first operator alternation (§4.1).
		{"Op", `(\.\.\.|->|=>|::|==|!=|<=|>=|&&|\|\||\.=|\+=|-=|\*\*|<<|>>|\+\+|--|\.\.|[-+*/%.!~=<>&|^\\?]|:)`, nil},
		{"Punct", `[{}()\[\],;]`, nil},
	},
}

// Definition builds the participle stateful lexer.Definition for Strada.
func Definition() (lexer.Definition, error) {
	return lexer.Stateful(Rules)
}

// MustDefinition is Definition but panics on error; used at package init by
// the parser, which cannot recover from a malformed grammar definition.
func MustDefinition() lexer.Definition {
	return lexer.MustStateful(Rules)
}

// elidedRules are dropped from Tokenize's output, mirroring the
// participle.Elide list pkg/parser.New passes around this same
// Definition when it builds the real grammar.
var elidedRules = map[string]bool{
	"BlockComment": true,
	"LineComment":  true,
	"Whitespace":   true,
}

// ruleKinds maps a Rules entry name to the internal/token.Kind it
// produces. Rule names absent here (the elided ones) never reach it.
var ruleKinds = map[string]token.Kind{
	"RegexSubst": token.Regex,
	"Regex":      token.Regex,
	"Qw":         token.QwWord,
	"Hex":        token.Int,
	"Bin":        token.Int,
	"Oct":        token.Int,
	"Int":        token.Int,
	"Float":      token.Num,
	"String":     token.Str,
	"Backtick":   token.Backtick,
	"Keyword":    token.Keyword,
	"Ident":      token.Ident,
	"Sigil":      token.Sigil,
	"Op":         token.Operator,
	"Punct":      token.Punct,
}

// Tokenize runs the Strada lexical grammar standalone, without the parser
// built atop it, and returns the token.Token stream. It exists for
// debug/dump tooling (stradac's --dump-tokens) where callers want to
// inspect lexemes directly instead of a parsed ast.Program.
func Tokenize(filename string, src []byte) ([]token.Token, error) {
	def, err := Definition()
	if err != nil {
		return nil, err
	}
	names := make(map[rune]string, len(def.Symbols()))
	for name, r := range def.Symbols() {
		names[r] = name
	}

	lx, err := def.Lex(filename, bytes.NewReader(src))
	if err != nil {
		return nil, err
	}

	var out []token.Token
	for {
		tok, err := lx.Next()
		if err != nil {
			return nil, err
		}
		if tok.EOF() {
			break
		}
		name := names[tok.Type]
		if elidedRules[name] {
			continue
		}
		out = append(out, toToken(name, tok))
	}
	return out, nil
}

func toToken(rule string, tok lexer.Token) token.Token {
	kind := ruleKinds[rule]
	t := token.Token{
		Kind:   kind,
		Lexeme: tok.Value,
		Pos: token.Position{
			File:   tok.Pos.Filename,
			Line:   tok.Pos.Line,
			Column: tok.Pos.Column,
			Offset: tok.Pos.Offset,
		},
	}
	switch kind {
	case token.Int:
		t.IntVal = parseIntLiteral(tok.Value)
	case token.Num:
		t.NumVal, _ = strconv.ParseFloat(tok.Value, 64)
	case token.Str:
		t.StrVal = unquoteDump(tok.Value)
	case token.Backtick:
		t.StrVal = strings.Trim(tok.Value, "`")
	}
	return t
}

// parseIntLiteral parses any of the Hex/Bin/Oct/Int rule's lexemes; the
// rule name alone doesn't disambiguate here since all four share the
// token.Int kind, so it dispatches on the literal's own prefix instead.
func parseIntLiteral(lexeme string) int64 {
	switch {
	case strings.HasPrefix(lexeme, "0x") || strings.HasPrefix(lexeme, "0X"):
		v, _ := strconv.ParseInt(lexeme[2:], 16, 64)
		return v
	case strings.HasPrefix(lexeme, "0b") || strings.HasPrefix(lexeme, "0B"):
		v, _ := strconv.ParseInt(lexeme[2:], 2, 64)
		return v
	case len(lexeme) > 1 && lexeme[0] == '0':
		v, _ := strconv.ParseInt(lexeme[1:], 8, 64)
		return v
	default:
		v, _ := strconv.ParseInt(lexeme, 10, 64)
		return v
	}
}

// unquoteDump strips the surrounding quote and unescapes the handful of
// escapes the lexical grammar allows inside a string lexeme. It is a
// dump-path convenience, not the parser's literal lowering.
func unquoteDump(lexeme string) string {
	if len(lexeme) < 2 {
		return lexeme
	}
	raw := lexeme[1 : len(lexeme)-1]
	var out strings.Builder
	for i := 0; i < len(raw); i++ {
		if raw[i] == '\\' && i+1 < len(raw) {
			i++
			switch raw[i] {
			case 'n':
				out.WriteByte('\n')
			case 't':
				out.WriteByte('\t')
			case '\\', '\'', '"':
				out.WriteByte(raw[i])
			default:
				out.WriteByte('\\')
				out.WriteByte(raw[i])
			}
			continue
		}
		out.WriteByte(raw[i])
	}
	return out.String()
}

// DumpTokens renders a token stream one-per-line as "kind(lexeme) at pos",
// the format Token.String already defines.
func DumpTokens(toks []token.Token) string {
	var b strings.Builder
	for _, t := range toks {
		fmt.Fprintln(&b, t.String())
	}
	return b.String()
}
