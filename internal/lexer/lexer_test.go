package lexer_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gaarutyunov/strada/internal/lexer"
	"github.com/gaarutyunov/strada/internal/token"
)

func TestTokenizeKeywordAndIdent(t *testing.T) {
	toks, err := lexer.Tokenize("t.strada", []byte(`func f(int $a) { return $a; }`))
	require.NoError(t, err)
	require.NotEmpty(t, toks)

	require.Equal(t, token.Keyword, toks[0].Kind)
	require.Equal(t, "func", toks[0].Lexeme)
	require.Equal(t, token.Ident, toks[1].Kind)
	require.Equal(t, "f", toks[1].Lexeme)
}

func TestTokenizeElidesCommentsAndWhitespace(t *testing.T) {
	toks, err := lexer.Tokenize("t.strada", []byte("# a comment\nmy $x = 1;"))
	require.NoError(t, err)

	for _, tk := range toks {
		require.NotEqual(t, "", tk.Lexeme)
		require.NotContains(t, tk.Lexeme, "#")
	}
	require.Equal(t, token.Keyword, toks[0].Kind)
	require.Equal(t, "my", toks[0].Lexeme)
}

func TestTokenizeIntegerLiterals(t *testing.T) {
	toks, err := lexer.Tokenize("t.strada", []byte(`0x1F 0b101 017 42`))
	require.NoError(t, err)
	require.Len(t, toks, 4)

	require.Equal(t, int64(31), toks[0].IntVal)
	require.Equal(t, int64(5), toks[1].IntVal)
	require.Equal(t, int64(15), toks[2].IntVal)
	require.Equal(t, int64(42), toks[3].IntVal)
	for _, tk := range toks {
		require.Equal(t, token.Int, tk.Kind)
	}
}

func TestTokenizeStringEscapes(t *testing.T) {
	toks, err := lexer.Tokenize("t.strada", []byte(`"a\nb"`))
	require.NoError(t, err)
	require.Len(t, toks, 1)
	require.Equal(t, token.Str, toks[0].Kind)
	require.Equal(t, "a\nb", toks[0].StrVal)
}

func TestDumpTokensRendersPositions(t *testing.T) {
	toks, err := lexer.Tokenize("t.strada", []byte(`my $x`))
	require.NoError(t, err)
	dump := lexer.DumpTokens(toks)
	require.Contains(t, dump, "t.strada:1:1")
}
