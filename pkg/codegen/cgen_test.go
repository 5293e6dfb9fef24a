package codegen

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gaarutyunov/strada/internal/symtab"
	"github.com/gaarutyunov/strada/pkg/ast"
)

func newGen() *Generator {
	return New(symtab.New(), Options{})
}

func TestCTypePrimitives(t *testing.T) {
	g := newGen()
	cases := map[string]string{
		"int8": "int8_t", "uint8": "uint8_t", "char": "uint8_t",
		"int16": "int16_t", "uint16": "uint16_t",
		"int32": "int32_t", "uint32": "uint32_t", "bool": "uint32_t",
		"int64": "int64_t", "int": "int64_t", "long": "int64_t",
		"uint64": "uint64_t", "size": "uint64_t",
		"float": "float", "num": "double",
		"str": "char*", "ptr": "void*", "scalar": "strada_value_t",
	}
	for name, want := range cases {
		got := g.cType(&ast.Type{Name: name})
		require.Equal(t, want, got, "type %s", name)
	}
}

func TestCTypeStructName(t *testing.T) {
	g := newGen()
	require.Equal(t, "Point", g.cType(&ast.Type{Name: "Point"}))
}

func TestCTypeArrayAndHash(t *testing.T) {
	g := newGen()
	require.Equal(t, "strada_array_t*", g.cType(&ast.Type{IsArray: true}))
	require.Equal(t, "strada_hash_t*", g.cType(&ast.Type{IsHash: true}))
}

func TestCTypeNilIsVoid(t *testing.T) {
	g := newGen()
	require.Equal(t, "void", g.cType(nil))
}

func TestBinaryConcatAndArithmetic(t *testing.T) {
	g := newGen()
	left := &ast.Expr{Str: &ast.StrLit{Value: "a"}}
	right := &ast.Expr{Str: &ast.StrLit{Value: "b"}}
	require.Equal(t, `strada_concat("a", "b")`, g.binary(&ast.BinaryExpr{Op: ".", Left: left, Right: right}))

	one := &ast.Expr{Int: &ast.IntLit{Value: 1}}
	two := &ast.Expr{Int: &ast.IntLit{Value: 2}}
	require.Equal(t, "(1 + 2)", g.binary(&ast.BinaryExpr{Op: "+", Left: one, Right: two}))
	require.Equal(t, "pow(1, 2)", g.binary(&ast.BinaryExpr{Op: "**", Left: one, Right: two}))
	require.Equal(t, "(1 && 2)", g.binary(&ast.BinaryExpr{Op: "and", Left: one, Right: two}))
	require.Equal(t, "strada_eq(1, 2)", g.binary(&ast.BinaryExpr{Op: "eq", Left: one, Right: two}))
}

func TestUnaryNotAndRef(t *testing.T) {
	g := newGen()
	v := &ast.Expr{Var: &ast.VarExpr{Name: "x"}}
	require.Equal(t, "(!x)", g.unary(&ast.UnaryExpr{Op: "not", Operand: v}))
	require.Equal(t, "(&x)", g.unary(&ast.UnaryExpr{Op: "\\", Operand: v}))
	require.Equal(t, "(-x)", g.unary(&ast.UnaryExpr{Op: "-", Operand: v}))
}

func TestCallBuiltinFallback(t *testing.T) {
	g := newGen()
	out := g.call(&ast.CallExpr{Name: "say", Args: []*ast.Expr{{Str: &ast.StrLit{Value: "hi"}}}})
	require.Equal(t, `strada_say("hi")`, out)
}

func TestCallUnknownNamePassesThrough(t *testing.T) {
	g := newGen()
	out := g.call(&ast.CallExpr{Name: "future_extern_fn"})
	require.Equal(t, "future_extern_fn()", out)
}

func TestCallPackageQualifiedWithoutTableEntry(t *testing.T) {
	g := newGen()
	out := g.call(&ast.CallExpr{Package: "M::N", Name: "f", Args: []*ast.Expr{{Int: &ast.IntLit{Value: 1}}}})
	require.Equal(t, "M_N_f(1)", out)
}

func TestInterpolateSplitsVarMarkers(t *testing.T) {
	g := newGen()
	out := g.interpolate("hi $name, ${greeting}!")
	require.Contains(t, out, "strada_str_build(")
	require.Contains(t, out, `"hi "`)
	require.Contains(t, out, "strada_to_str(name)")
	require.Contains(t, out, "strada_to_str(greeting)")
}

func TestCStringLiteralEscapes(t *testing.T) {
	require.Equal(t, `"a\nb\tc\"d\\e"`, cStringLiteral("a\nb\tc\"d\\e"))
}

func TestValueUnionField(t *testing.T) {
	require.Equal(t, "as_array", valueUnionField(&ast.Type{IsArray: true}))
	require.Equal(t, "as_hash", valueUnionField(&ast.Type{IsHash: true}))
	require.Equal(t, "as_str", valueUnionField(&ast.Type{Name: "str"}))
	require.Equal(t, "as_num", valueUnionField(&ast.Type{Name: "num"}))
	require.Equal(t, "as_int", valueUnionField(&ast.Type{Name: "int"}))
	require.Equal(t, "as_scalar", valueUnionField(nil))
}
