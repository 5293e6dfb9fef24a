package visitors

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gaarutyunov/strada/pkg/ast"
)

func TestDebugPrinterWalksFuncBody(t *testing.T) {
	prog := &ast.Program{
		Funcs: []*ast.FuncDef{
			{
				Name:        "add",
				EmittedName: "add",
				Return:      &ast.Type{Name: "int"},
				Params: []*ast.Param{
					{Sigil: "$", Name: "a", Type: &ast.Type{Name: "int"}},
					{Sigil: "$", Name: "b", Type: &ast.Type{Name: "int"}},
				},
				Body: &ast.Block{
					Stmts: []*ast.Stmt{
						{
							Return: &ast.ReturnStmt{
								Value: &ast.Expr{
									Binary: &ast.BinaryExpr{
										Op:    "+",
										Left:  &ast.Expr{Var: &ast.VarExpr{Sigil: "$", Name: "a"}},
										Right: &ast.Expr{Var: &ast.VarExpr{Sigil: "$", Name: "b"}},
									},
								},
							},
						},
					},
				},
			},
		},
	}

	p := NewDebugPrinter()
	prog.Accept(p)
	out := p.String()

	require.Contains(t, out, "FuncDef add")
	require.Contains(t, out, "Param $a")
	require.Contains(t, out, "Return ($a + $b)")
}
