// Package symtab holds the symbol tables semantic analysis builds and
// codegen consults: the struct registry and the function table (keyed by
// emitted C name, with a second index by package-qualified source name)
// (§5). Table.CurPkg is not set by any pass; semantic keeps the active
// package context on its Analyzer instead. It is filled once during semantic
// analysis and is read-only for every pass that runs after it.
package symtab

import (
	"strings"

	"github.com/google/uuid"

	"github.com/gaarutyunov/strada/pkg/ast"
)

// Table is the compiler's single symbol table, shared by semantic and
// codegen for the duration of one compilation.
type Table struct {
	Structs  map[string]*ast.StructDef
	Funcs    map[string]*ast.FuncDef // keyed by EmittedName
	bySource map[string]*ast.FuncDef // keyed by "package::Name" source spelling
	CurPkg   string

	runID string
}

// New returns an empty Table. runID is stamped once per compilation from a
// fresh uuid so codegen can derive collision-free identifiers — the
// --shared module-init hook name in particular, which must not collide
// with another Strada module's init hook when several are statically
// linked into the same host binary.
func New() *Table {
	return &Table{
		Structs:  make(map[string]*ast.StructDef),
		Funcs:    make(map[string]*ast.FuncDef),
		bySource: make(map[string]*ast.FuncDef),
		runID:    strings.ReplaceAll(uuid.NewString(), "-", ""),
	}
}

// InitHookName returns the name codegen should give this compilation's
// --shared module-init function, e.g. "strada_init_3fa85f6457174562".
func (t *Table) InitHookName() string {
	return "strada_init_" + t.runID[:16]
}

// AddStruct registers a struct definition by name. Redefinition is a
// semantic error the caller is expected to check for via LookupStruct
// before calling AddStruct.
func (t *Table) AddStruct(s *ast.StructDef) {
	t.Structs[s.Name] = s
}

// LookupStruct finds a struct definition by its source name.
func (t *Table) LookupStruct(name string) (*ast.StructDef, bool) {
	s, ok := t.Structs[name]
	return s, ok
}

// AddFunc registers a function under both its emitted (lowered) name and
// its source "package::name" spelling, the two lookup keys codegen and
// call resolution need respectively (§4.3 step 1, step 2).
func (t *Table) AddFunc(f *ast.FuncDef) {
	t.Funcs[f.EmittedName] = f
	t.bySource[sourceKey(f.Package, f.Name)] = f
}

// LookupFunc finds a function by its emitted C name.
func (t *Table) LookupFunc(emittedName string) (*ast.FuncDef, bool) {
	f, ok := t.Funcs[emittedName]
	return f, ok
}

// LookupBySource finds a function by its source-level package and name,
// as used to resolve a call site's `Pkg::f(...)` or bare `f(...)` spelling
// against the current package context.
func (t *Table) LookupBySource(pkg, name string) (*ast.FuncDef, bool) {
	f, ok := t.bySource[sourceKey(pkg, name)]
	return f, ok
}

func sourceKey(pkg, name string) string {
	if pkg == "" {
		return name
	}
	return pkg + "::" + name
}
