package parser_test

import (
	"testing"

	"github.com/go-test/deep"
	"github.com/stretchr/testify/require"

	"github.com/gaarutyunov/strada/internal/token"
	"github.com/gaarutyunov/strada/pkg/ast"
	"github.com/gaarutyunov/strada/pkg/parser"
)

func mustParse(t *testing.T, src string) *ast.Program {
	t.Helper()
	p, err := parser.New()
	require.NoError(t, err)
	prog, err := p.ParseString("test.strada", src)
	require.NoError(t, err)
	return prog
}

func TestParseFuncWithBinaryReturn(t *testing.T) {
	prog := mustParse(t, `func add(int $a, int $b) int { return $a + $b; }`)

	require.Len(t, prog.Funcs, 1)
	f := prog.Funcs[0]
	require.Equal(t, "add", f.Name)
	require.Len(t, f.Params, 2)
	require.Len(t, f.Body.Stmts, 1)

	ret := f.Body.Stmts[0].Return
	require.NotNil(t, ret)

	want := &ast.BinaryExpr{
		Op: "+",
		Left: &ast.Expr{Var: &ast.VarExpr{
			Pos:   token.Position{File: "test.strada", Line: 1, Column: 39, Offset: 38},
			Sigil: "$", Name: "a",
		}},
		Right: &ast.Expr{Var: &ast.VarExpr{
			Pos:   token.Position{File: "test.strada", Line: 1, Column: 44, Offset: 43},
			Sigil: "$", Name: "b",
		}},
	}
	got := ret.Value.Binary
	require.NotNil(t, got)
	if diff := deep.Equal(want.Op, got.Op); diff != nil {
		t.Errorf("operator mismatch: %v", diff)
	}
	if diff := deep.Equal(want.Left.Var, got.Left.Var); diff != nil {
		t.Errorf("left operand mismatch: %v", diff)
	}
	if diff := deep.Equal(want.Right.Var, got.Right.Var); diff != nil {
		t.Errorf("right operand mismatch: %v", diff)
	}
}

func TestParseParenSingleIsPlainExpr(t *testing.T) {
	prog := mustParse(t, `func main() int { my int $x = (1 + 2); return 0; }`)
	decl := prog.Funcs[0].Body.Stmts[0].VarDecl
	require.NotNil(t, decl)
	require.NotNil(t, decl.Init.Binary)
	require.Nil(t, decl.Init.ArrayLit)
}

func TestParseParenListIsArrayLit(t *testing.T) {
	prog := mustParse(t, `func main() int { my array @xs = (1, 2, 3); return 0; }`)
	decl := prog.Funcs[0].Body.Stmts[0].VarDecl
	require.NotNil(t, decl)
	require.NotNil(t, decl.Init.ArrayLit)
	require.Len(t, decl.Init.ArrayLit.Elements, 3)

	want := []int64{1, 2, 3}
	for i, el := range decl.Init.ArrayLit.Elements {
		require.NotNil(t, el.Int)
		if diff := deep.Equal(want[i], el.Int.Value); diff != nil {
			t.Errorf("element %d mismatch: %v", i, diff)
		}
	}
}

func TestParsePackageQualifiedCall(t *testing.T) {
	prog := mustParse(t, `package M; func f(int $x) int { return $x; } func main() int { say(M::f(21)); return 0; }`)
	require.Len(t, prog.Packages, 1)
	require.Equal(t, "M", prog.Packages[0].Name)

	mainFn := prog.Funcs[1]
	call := mainFn.Body.Stmts[0].ExprStmt.Expr.Call
	require.NotNil(t, call)
	require.Equal(t, "say", call.Name)

	inner := call.Args[0].Call
	require.NotNil(t, inner)
	require.Equal(t, "M", inner.Package)
	require.Equal(t, "f", inner.Name)
}
