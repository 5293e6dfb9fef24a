package codegen_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gaarutyunov/strada/pkg/codegen"
	"github.com/gaarutyunov/strada/pkg/parser"
	"github.com/gaarutyunov/strada/pkg/semantic"
)

// compile runs one .strada source through the full parser -> semantic ->
// codegen pipeline and returns the emitted C source, matching the way
// cmd/stradac/main.go wires the three stages together.
func compile(t *testing.T, path string) string {
	t.Helper()

	src, err := os.ReadFile(path)
	require.NoError(t, err)

	p, err := parser.New()
	require.NoError(t, err)

	prog, err := p.ParseBytes(path, src)
	require.NoError(t, err)

	an := semantic.New(false)
	require.NoError(t, an.Run(prog))

	gen := codegen.New(an.Table, codegen.Options{})
	out, err := gen.Generate(prog)
	require.NoError(t, err)

	return string(out)
}

// These assert on stable emitted-C fragments (§A.4), not full-file diffs,
// so the generator's exact whitespace/ordering choices stay free to change.

func TestHelloWorld(t *testing.T) {
	c := compile(t, filepath.Join("..", "..", "testdata", "01_hello.strada"))
	require.Contains(t, c, `strada_say("hello")`)
	require.Contains(t, c, "return 0;")
}

func TestAddFunctionCall(t *testing.T) {
	c := compile(t, filepath.Join("..", "..", "testdata", "02_add.strada"))
	require.Contains(t, c, "return (a + b);")
	require.Contains(t, c, "strada_say(add(")
}

func TestArrayPushSize(t *testing.T) {
	c := compile(t, filepath.Join("..", "..", "testdata", "03_array_push.strada"))
	require.Contains(t, c, "strada_array_push(")
	require.Contains(t, c, "strada_size(")
}

func TestPackageQualifiedCall(t *testing.T) {
	c := compile(t, filepath.Join("..", "..", "testdata", "04_package_call.strada"))
	require.Contains(t, c, "M_f(")
	require.NotContains(t, c, "::f(")
}

func TestTryCatchUnwinding(t *testing.T) {
	c := compile(t, filepath.Join("..", "..", "testdata", "05_try_catch.strada"))
	require.Contains(t, c, "setjmp(")
	require.Contains(t, c, "strada_push_handler(")
	require.Contains(t, c, "strada_caught_value(")
	require.Contains(t, c, "strada_throw(")
}

func TestStructFieldAccess(t *testing.T) {
	c := compile(t, filepath.Join("..", "..", "testdata", "06_struct_field.strada"))
	require.Contains(t, c, "typedef struct P {")
	require.Contains(t, c, "P p = {0};")
	require.Contains(t, c, "p.name =")
	require.Contains(t, c, "p.age =")
	require.Contains(t, c, "strada_concat(")
}
