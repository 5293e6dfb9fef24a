package semantic_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gaarutyunov/strada/pkg/parser"
	"github.com/gaarutyunov/strada/pkg/semantic"
)

func run(t *testing.T, src string) *semantic.Analyzer {
	t.Helper()
	p, err := parser.New()
	require.NoError(t, err)
	prog, err := p.ParseString("test.strada", src)
	require.NoError(t, err)
	a := semantic.New(false)
	require.NoError(t, a.Run(prog))
	return a
}

func TestPackageNameLowering(t *testing.T) {
	a := run(t, `package A::B; func f(int $x) int { return $x; }`)
	f, ok := a.Table.LookupFunc("A_B_f")
	require.True(t, ok)
	require.Equal(t, "A_B_f", f.EmittedName)
}

func TestMainNeverPackagePrefixed(t *testing.T) {
	a := run(t, `package M; func main() int { return 0; }`)
	_, ok := a.Table.LookupFunc("main")
	require.True(t, ok, "main must keep its bare C entry-point name even under a package")
	_, prefixed := a.Table.LookupFunc("M_main")
	require.False(t, prefixed)
}

func TestStructLayoutPointerPlusInt(t *testing.T) {
	a := run(t, `struct P { str name; int age; }
func main() int { return 0; }`)
	s, ok := a.Table.LookupStruct("P")
	require.True(t, ok)
	require.Equal(t, 16, s.TotalSize)
	require.Equal(t, 0, s.Fields[0].Offset)
	require.Equal(t, 8, s.Fields[0].Size)
	require.Equal(t, 8, s.Fields[1].Offset)
	require.Equal(t, 8, s.Fields[1].Size)
}

func TestArityMismatchIsRejected(t *testing.T) {
	p, err := parser.New()
	require.NoError(t, err)
	prog, err := p.ParseString("test.strada", `func f(int $a, int $b) int { return $a; }
func main() int { f(1); return 0; }`)
	require.NoError(t, err)

	a := semantic.New(false)
	err = a.Run(prog)
	require.Error(t, err)
}
