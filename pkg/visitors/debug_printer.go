// Package visitors holds auxiliary AST passes that sit outside the main
// lexer/parser/semantic/codegen pipeline — currently just the debug
// printer, an indented AST dump for inspection. stradac does not call it;
// its `-g` flag only turns on #line directives in the emitted C.
package visitors

import (
	"fmt"
	"strings"

	"github.com/gaarutyunov/strada/pkg/ast"
)

// DebugPrinter renders an indented tree dump of a Program, grounded on the
// teacher's own pkg/visitors/debug_printer.go (same print/indent pattern),
// generalized from guix's component/channel node kinds to Strada's.
type DebugPrinter struct {
	ast.BaseVisitor

	output strings.Builder
	indent int
}

// NewDebugPrinter returns an empty DebugPrinter.
func NewDebugPrinter() *DebugPrinter {
	return &DebugPrinter{}
}

// String returns the accumulated dump.
func (d *DebugPrinter) String() string {
	return d.output.String()
}

func (d *DebugPrinter) print(format string, args ...interface{}) {
	d.output.WriteString(strings.Repeat("  ", d.indent))
	d.output.WriteString(fmt.Sprintf(format, args...))
	d.output.WriteString("\n")
}

func (d *DebugPrinter) nested(f func()) {
	d.indent++
	f()
	d.indent--
}

func (d *DebugPrinter) VisitProgram(p *ast.Program) interface{} {
	d.print("Program")
	d.nested(func() {
		for _, pkg := range p.Packages {
			pkg.Accept(d)
		}
		for _, u := range p.Uses {
			u.Accept(d)
		}
		for _, s := range p.Structs {
			s.Accept(d)
		}
		for _, f := range p.Funcs {
			f.Accept(d)
		}
		for _, st := range p.TopStmts {
			st.Accept(d)
		}
	})
	return nil
}

func (d *DebugPrinter) VisitPackageDecl(n *ast.PackageDecl) interface{} {
	d.print("Package %s", n.Name)
	return nil
}

func (d *DebugPrinter) VisitUseStmt(n *ast.UseStmt) interface{} {
	d.print("Use %s %v", n.Name, n.Funcs)
	return nil
}

func (d *DebugPrinter) VisitStructDef(n *ast.StructDef) interface{} {
	d.print("StructDef %s (size=%d)", n.Name, n.TotalSize)
	d.nested(func() {
		for _, f := range n.Fields {
			f.Accept(d)
		}
	})
	return nil
}

func (d *DebugPrinter) VisitStructField(n *ast.StructField) interface{} {
	if n.IsFunc {
		d.print("Field %s func(...) %s (offset=%d size=%d)", n.Name, n.FuncRet, n.Offset, n.Size)
		return nil
	}
	d.print("Field %s %s (offset=%d size=%d)", n.Name, n.Type, n.Offset, n.Size)
	return nil
}

func (d *DebugPrinter) VisitFuncDef(n *ast.FuncDef) interface{} {
	d.print("FuncDef %s -> %s (emitted=%s extern=%v)", n.Name, n.Return, n.EmittedName, n.Extern)
	d.nested(func() {
		for _, p := range n.Params {
			p.Accept(d)
		}
		if n.Body != nil {
			n.Body.Accept(d)
		}
	})
	return nil
}

func (d *DebugPrinter) VisitParam(n *ast.Param) interface{} {
	d.print("Param %s%s %s (optional=%v variadic=%v)", n.Sigil, n.Name, n.Type, n.Optional, n.Variadic)
	return nil
}

func (d *DebugPrinter) VisitBlock(n *ast.Block) interface{} {
	d.print("Block")
	d.nested(func() {
		for _, s := range n.Stmts {
			s.Accept(d)
		}
	})
	return nil
}

func (d *DebugPrinter) VisitStmt(n *ast.Stmt) interface{} {
	switch {
	case n.VarDecl != nil:
		return n.VarDecl.Accept(d)
	case n.If != nil:
		return n.If.Accept(d)
	case n.Unless != nil:
		return n.Unless.Accept(d)
	case n.While != nil:
		return n.While.Accept(d)
	case n.Until != nil:
		return n.Until.Accept(d)
	case n.For != nil:
		return n.For.Accept(d)
	case n.Foreach != nil:
		return n.Foreach.Accept(d)
	case n.Return != nil:
		return n.Return.Accept(d)
	case n.Try != nil:
		return n.Try.Accept(d)
	case n.Throw != nil:
		return n.Throw.Accept(d)
	case n.Label != nil:
		return n.Label.Accept(d)
	case n.Goto != nil:
		return n.Goto.Accept(d)
	case n.Last != nil:
		return n.Last.Accept(d)
	case n.Next != nil:
		return n.Next.Accept(d)
	case n.Block != nil:
		return n.Block.Accept(d)
	case n.ExprStmt != nil:
		return n.ExprStmt.Accept(d)
	}
	return nil
}

func (d *DebugPrinter) VisitVarDecl(n *ast.VarDecl) interface{} {
	d.print("VarDecl %s%s %s", n.Sigil, n.Name, n.Type)
	return nil
}

func (d *DebugPrinter) VisitExprStmt(n *ast.ExprStmt) interface{} {
	d.print("ExprStmt %s", d.exprString(n.Expr))
	return nil
}

func (d *DebugPrinter) VisitIfStmt(n *ast.IfStmt) interface{} {
	d.print("If %s", d.exprString(n.Cond))
	d.nested(func() { n.Then.Accept(d) })
	for _, e := range n.ElsIfs {
		d.print("ElsIf %s", d.exprString(e.Cond))
		d.nested(func() { e.Then.Accept(d) })
	}
	if n.Else != nil {
		d.print("Else")
		d.nested(func() { n.Else.Accept(d) })
	}
	return nil
}

func (d *DebugPrinter) VisitUnlessStmt(n *ast.UnlessStmt) interface{} {
	d.print("Unless %s", d.exprString(n.Cond))
	d.nested(func() { n.Then.Accept(d) })
	return nil
}

func (d *DebugPrinter) VisitWhileStmt(n *ast.WhileStmt) interface{} {
	d.print("While %s", d.exprString(n.Cond))
	d.nested(func() { n.Body.Accept(d) })
	return nil
}

func (d *DebugPrinter) VisitUntilStmt(n *ast.UntilStmt) interface{} {
	d.print("Until %s", d.exprString(n.Cond))
	d.nested(func() { n.Body.Accept(d) })
	return nil
}

func (d *DebugPrinter) VisitForStmt(n *ast.ForStmt) interface{} {
	d.print("For")
	d.nested(func() { n.Body.Accept(d) })
	return nil
}

func (d *DebugPrinter) VisitForeachStmt(n *ast.ForeachStmt) interface{} {
	d.print("Foreach %s%s in %s", n.Sigil, n.Var, d.exprString(n.Array))
	d.nested(func() { n.Body.Accept(d) })
	return nil
}

func (d *DebugPrinter) VisitReturnStmt(n *ast.ReturnStmt) interface{} {
	d.print("Return %s", d.exprString(n.Value))
	return nil
}

func (d *DebugPrinter) VisitTryStmt(n *ast.TryStmt) interface{} {
	d.print("Try")
	d.nested(func() { n.Body.Accept(d) })
	d.print("Catch $%s", n.CatchVar)
	d.nested(func() { n.CatchBody.Accept(d) })
	return nil
}

func (d *DebugPrinter) VisitThrowStmt(n *ast.ThrowStmt) interface{} {
	d.print("Throw %s", d.exprString(n.Value))
	return nil
}

func (d *DebugPrinter) VisitLabelStmt(n *ast.LabelStmt) interface{} {
	d.print("Label %s", n.Name)
	return nil
}

func (d *DebugPrinter) VisitGotoStmt(n *ast.GotoStmt) interface{} {
	d.print("Goto %s", n.Label)
	return nil
}

func (d *DebugPrinter) VisitLastStmt(n *ast.LastStmt) interface{} {
	d.print("Last %s", n.Label)
	return nil
}

func (d *DebugPrinter) VisitNextStmt(n *ast.NextStmt) interface{} {
	d.print("Next %s", n.Label)
	return nil
}

// exprString renders an expression compactly for inline use in a
// statement's dump line rather than as its own indented subtree — debug
// output for a compiler pass reads better flat at the expression level.
func (d *DebugPrinter) exprString(e *ast.Expr) string {
	if e == nil {
		return "<nil>"
	}
	switch {
	case e.Binary != nil:
		return fmt.Sprintf("(%s %s %s)", d.exprString(e.Binary.Left), e.Binary.Op, d.exprString(e.Binary.Right))
	case e.Unary != nil:
		return fmt.Sprintf("(%s%s)", e.Unary.Op, d.exprString(e.Unary.Operand))
	case e.Assign != nil:
		return fmt.Sprintf("(%s %s %s)", d.exprString(e.Assign.Left), e.Assign.Op, d.exprString(e.Assign.Right))
	case e.Call != nil:
		return fmt.Sprintf("%s(...)", e.Call.Name)
	case e.Var != nil:
		return e.Var.Sigil + e.Var.Name
	case e.Int != nil:
		return fmt.Sprintf("%d", e.Int.Value)
	case e.Num != nil:
		return fmt.Sprintf("%g", e.Num.Value)
	case e.Str != nil:
		return fmt.Sprintf("%q", e.Str.Value)
	case e.Member != nil:
		return fmt.Sprintf("%s->%s", d.exprString(e.Member.Target), e.Member.Field)
	default:
		return "<expr>"
	}
}
