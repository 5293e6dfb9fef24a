package parser

import (
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2/lexer"

	"github.com/gaarutyunov/strada/internal/token"
	"github.com/gaarutyunov/strada/pkg/ast"
)

// build lowers a parsed File CST into the flat pkg/ast.Program shape.
// Each precedence level's left+rest chain folds into a left-associative
// BinaryExpr tree; Assignment/Ternary/Power's right-recursion folds the
// opposite way, right-associatively, by construction.
type builder struct {
	file string
}

func buildProgram(file string, f *File) *ast.Program {
	b := &builder{file: file}
	prog := &ast.Program{Pos: b.pos(f.Pos)}

	var implicitMain []*ast.Stmt
	for _, item := range f.Items {
		switch {
		case item.Package != nil:
			prog.Packages = append(prog.Packages, b.packageDecl(item.Package))
		case item.UseLib != nil:
			prog.UseLibs = append(prog.UseLibs, &ast.UseLib{Pos: b.pos(item.UseLib.Pos), Path: unquote(item.UseLib.Path)})
		case item.Use != nil:
			prog.Uses = append(prog.Uses, b.useDecl(item.Use))
		case item.Struct != nil:
			prog.Structs = append(prog.Structs, b.structDecl(item.Struct))
		case item.Func != nil:
			prog.Funcs = append(prog.Funcs, b.funcDecl(item.Func))
		case item.Stmt != nil:
			implicitMain = append(implicitMain, b.stmt(item.Stmt))
		}
	}
	prog.TopStmts = implicitMain
	prog.Index()
	return prog
}

func (b *builder) pos(p lexer.Position) token.Position {
	return token.Position{File: b.file, Line: p.Line, Column: p.Column, Offset: p.Offset}
}

func (b *builder) packageDecl(p *PackageDecl) *ast.PackageDecl {
	return &ast.PackageDecl{Pos: b.pos(p.Pos), Name: strings.Join(p.Name, "::")}
}

func (b *builder) useDecl(u *UseDecl) *ast.UseStmt {
	return &ast.UseStmt{Pos: b.pos(u.Pos), Name: u.Name, Funcs: splitQw(u.Funcs)}
}

func (b *builder) structDecl(s *StructDecl) *ast.StructDef {
	def := &ast.StructDef{Pos: b.pos(s.Pos), Name: s.Name}
	for _, f := range s.Fields {
		def.Fields = append(def.Fields, b.structField(f))
	}
	return def
}

func (b *builder) structField(f *StructField) *ast.StructField {
	if f.IsFunc {
		sf := &ast.StructField{Pos: b.pos(f.Pos), Name: f.FuncName, IsFunc: true, FuncRet: b.typeSpec(f.FuncRet)}
		for _, p := range f.FuncParams {
			sf.FuncParams = append(sf.FuncParams, b.typeSpec(p))
		}
		return sf
	}
	return &ast.StructField{Pos: b.pos(f.Pos), Name: f.PlainName, Type: b.typeSpec(f.PlainType)}
}

func (b *builder) typeSpec(t *TypeSpec) *ast.Type {
	if t == nil {
		return nil
	}
	if len(t.FuncParams) > 0 || t.FuncRet != nil {
		ty := &ast.Type{Pos: b.pos(t.Pos), Name: "func", FuncReturn: b.typeSpec(t.FuncRet)}
		for _, p := range t.FuncParams {
			ty.FuncParams = append(ty.FuncParams, b.typeSpec(p))
		}
		return ty
	}
	return &ast.Type{Pos: b.pos(t.Pos), Name: t.Name, IsArray: t.Name == "array", IsHash: t.Name == "hash"}
}

func (b *builder) funcDecl(f *FuncDecl) *ast.FuncDef {
	def := &ast.FuncDef{Pos: b.pos(f.Pos), Extern: f.Extern, Name: f.Name, Return: b.typeSpec(f.Ret)}
	minArgs := 0
	counting := true
	for _, p := range f.Params {
		param := b.param(p)
		if param.Variadic {
			def.Variadic = true
			counting = false
		} else if !param.Optional && counting {
			minArgs++
		} else {
			counting = false
		}
		def.Params = append(def.Params, param)
	}
	def.MinArgs = minArgs
	if f.Body != nil {
		def.Body = b.block(f.Body)
	}
	return def
}

func (b *builder) param(p *Param) *ast.Param {
	param := &ast.Param{Pos: b.pos(p.Pos), Type: b.typeSpec(p.Type), Sigil: p.Sigil, Name: p.Name, Variadic: p.Variadic}
	if p.Default != nil {
		param.Optional = true
		param.Default = b.exprAssign(p.Default)
	}
	return param
}

func (b *builder) block(blk *Block) *ast.Block {
	out := &ast.Block{Pos: b.pos(blk.Pos)}
	var pendingLabel string
	var pendingPos token.Position
	flushPending := func() {
		if pendingLabel != "" {
			out.Stmts = append(out.Stmts, &ast.Stmt{Pos: pendingPos, Label: &ast.LabelStmt{Pos: pendingPos, Name: pendingLabel}})
			pendingLabel = ""
		}
	}
	for _, s := range blk.Stmts {
		if s.Label != nil {
			flushPending()
			pendingLabel = s.Label.Name
			pendingPos = b.pos(s.Label.Pos)
			continue
		}
		st := b.stmt(s)
		if pendingLabel == "" {
			// A label written directly before a loop keyword is parsed as
			// part of the loop; it gets the same standalone label below.
			switch {
			case st.While != nil:
				pendingLabel = st.While.Label
			case st.Until != nil:
				pendingLabel = st.Until.Label
			case st.For != nil:
				pendingLabel = st.For.Label
			case st.Foreach != nil:
				pendingLabel = st.Foreach.Label
			}
			pendingPos = st.Pos
		}
		if pendingLabel != "" {
			// Every label emits its own standalone C label (§4.4 "label
			// definitions emit C labels"), in addition to being recorded on
			// the loop it precedes so last/next can still target it by name.
			out.Stmts = append(out.Stmts, &ast.Stmt{Pos: pendingPos, Label: &ast.LabelStmt{Pos: pendingPos, Name: pendingLabel}})
			attachLabel(st, pendingLabel)
			pendingLabel = ""
		}
		out.Stmts = append(out.Stmts, st)
	}
	flushPending()
	return out
}

// attachLabel additionally records a preceding "LABEL:" onto the loop
// statement it prefixes, so last/next can resolve it by name. The label
// itself is always also emitted as its own ast.Stmt by block above; this
// is bookkeeping for loop-targeted last/next, not a substitute for that.
func attachLabel(st *ast.Stmt, label string) {
	switch {
	case st.While != nil:
		st.While.Label = label
	case st.Until != nil:
		st.Until.Label = label
	case st.For != nil:
		st.For.Label = label
	case st.Foreach != nil:
		st.Foreach.Label = label
	}
}

func (b *builder) stmt(s *Stmt) *ast.Stmt {
	out := &ast.Stmt{Pos: b.pos(s.Pos)}
	switch {
	case s.VarDecl != nil:
		v := s.VarDecl
		vd := &ast.VarDecl{Pos: b.pos(v.Pos), Type: b.typeSpec(v.Type), Sigil: v.Sigil, Name: v.Name}
		if v.Init != nil {
			vd.Init = b.exprAssign(v.Init)
		}
		if v.Capacity != nil {
			vd.Capacity = b.exprAssign(v.Capacity)
		}
		out.VarDecl = vd
	case s.If != nil:
		i := s.If
		ifs := &ast.IfStmt{Pos: b.pos(i.Pos), Cond: b.exprAssign(i.Cond), Then: b.block(i.Then)}
		for _, e := range i.ElsIfs {
			ifs.ElsIfs = append(ifs.ElsIfs, &ast.ElsIf{Pos: b.pos(e.Pos), Cond: b.exprAssign(e.Cond), Then: b.block(e.Then)})
		}
		if i.Else != nil {
			ifs.Else = b.block(i.Else)
		}
		out.If = ifs
	case s.Unless != nil:
		u := s.Unless
		us := &ast.UnlessStmt{Pos: b.pos(u.Pos), Cond: b.exprAssign(u.Cond), Then: b.block(u.Then)}
		if u.Else != nil {
			us.Else = b.block(u.Else)
		}
		out.Unless = us
	case s.While != nil:
		w := s.While
		out.While = &ast.WhileStmt{Pos: b.pos(w.Pos), Label: w.Label, Cond: b.exprAssign(w.Cond), Body: b.block(w.Body)}
	case s.Until != nil:
		u := s.Until
		out.Until = &ast.UntilStmt{Pos: b.pos(u.Pos), Label: u.Label, Cond: b.exprAssign(u.Cond), Body: b.block(u.Body)}
	case s.For != nil:
		f := s.For
		out.For = &ast.ForStmt{
			Pos: b.pos(f.Pos), Label: f.Label,
			Init: b.stmt(f.Init), Cond: b.exprAssign(f.Cond), Post: b.exprAssign(f.Post),
			Body: b.block(f.Body),
		}
	case s.Foreach != nil:
		f := s.Foreach
		out.Foreach = &ast.ForeachStmt{
			Pos: b.pos(f.Pos), Label: f.Label, Type: b.typeSpec(f.Type),
			Sigil: f.Sigil, Var: f.Var, Array: b.exprAssign(f.Array), Body: b.block(f.Body),
		}
	case s.Return != nil:
		r := s.Return
		ret := &ast.ReturnStmt{Pos: b.pos(r.Pos)}
		if r.Value != nil {
			ret.Value = b.exprAssign(r.Value)
		}
		out.Return = ret
	case s.Try != nil:
		t := s.Try
		out.Try = &ast.TryStmt{Pos: b.pos(t.Pos), Body: b.block(t.Body), CatchVar: t.CatchVar, CatchBody: b.block(t.CatchBody)}
	case s.Throw != nil:
		t := s.Throw
		out.Throw = &ast.ThrowStmt{Pos: b.pos(t.Pos), Value: b.exprAssign(t.Value)}
	case s.Goto != nil:
		out.Goto = &ast.GotoStmt{Pos: b.pos(s.Goto.Pos), Label: s.Goto.Label}
	case s.Last != nil:
		out.Last = &ast.LastStmt{Pos: b.pos(s.Last.Pos), Label: s.Last.Label}
	case s.Next != nil:
		out.Next = &ast.NextStmt{Pos: b.pos(s.Next.Pos), Label: s.Next.Label}
	case s.Label != nil:
		out.Label = &ast.LabelStmt{Pos: b.pos(s.Label.Pos), Name: s.Label.Name}
	case s.Block != nil:
		out.Block = b.block(s.Block)
	case s.Expr != nil:
		out.ExprStmt = &ast.ExprStmt{Pos: b.pos(s.Expr.Pos), Expr: b.exprAssign(s.Expr.Expr)}
	}
	return out
}

// --- expression lowering: one function per precedence level ---

func (b *builder) exprAssign(e *ExprAssign) *ast.Expr {
	left := b.exprTernary(e.Left)
	if e.Right == nil {
		return left
	}
	right := b.exprAssign(e.Right)
	return &ast.Expr{Pos: left.Pos, Assign: &ast.AssignExpr{Pos: left.Pos, Op: e.Op, Left: left, Right: right}}
}

func (b *builder) exprTernary(e *ExprTernary) *ast.Expr {
	cond := b.exprLogicalOr(e.Cond)
	if e.Then == nil {
		return cond
	}
	then := b.exprAssign(e.Then)
	var els *ast.Expr
	if e.Else != nil {
		els = b.exprTernary(e.Else)
	}
	return &ast.Expr{Pos: cond.Pos, Ternary: &ast.TernaryExpr{Pos: cond.Pos, Cond: cond, Then: then, Else: els}}
}

func (b *builder) exprLogicalOr(e *ExprLogicalOr) *ast.Expr {
	left := b.exprLogicalAnd(e.Left)
	for _, r := range e.Rest {
		right := b.exprLogicalAnd(r.Right)
		left = &ast.Expr{Pos: left.Pos, Binary: &ast.BinaryExpr{Pos: left.Pos, Op: r.Op, Left: left, Right: right}}
	}
	return left
}

func (b *builder) exprLogicalAnd(e *ExprLogicalAnd) *ast.Expr {
	left := b.exprBitOr(e.Left)
	for _, r := range e.Rest {
		right := b.exprBitOr(r.Right)
		left = &ast.Expr{Pos: left.Pos, Binary: &ast.BinaryExpr{Pos: left.Pos, Op: r.Op, Left: left, Right: right}}
	}
	return left
}

func (b *builder) exprBitOr(e *ExprBitOr) *ast.Expr {
	left := b.exprBitXor(e.Left)
	for _, r := range e.Rest {
		right := b.exprBitXor(r.Right)
		left = &ast.Expr{Pos: left.Pos, Binary: &ast.BinaryExpr{Pos: left.Pos, Op: r.Op, Left: left, Right: right}}
	}
	return left
}

func (b *builder) exprBitXor(e *ExprBitXor) *ast.Expr {
	left := b.exprBitAnd(e.Left)
	for _, r := range e.Rest {
		right := b.exprBitAnd(r.Right)
		left = &ast.Expr{Pos: left.Pos, Binary: &ast.BinaryExpr{Pos: left.Pos, Op: r.Op, Left: left, Right: right}}
	}
	return left
}

func (b *builder) exprBitAnd(e *ExprBitAnd) *ast.Expr {
	left := b.exprEquality(e.Left)
	for _, r := range e.Rest {
		right := b.exprEquality(r.Right)
		left = &ast.Expr{Pos: left.Pos, Binary: &ast.BinaryExpr{Pos: left.Pos, Op: r.Op, Left: left, Right: right}}
	}
	return left
}

func (b *builder) exprEquality(e *ExprEquality) *ast.Expr {
	left := b.exprRelational(e.Left)
	for _, r := range e.Rest {
		right := b.exprRelational(r.Right)
		left = &ast.Expr{Pos: left.Pos, Binary: &ast.BinaryExpr{Pos: left.Pos, Op: r.Op, Left: left, Right: right}}
	}
	return left
}

func (b *builder) exprRelational(e *ExprRelational) *ast.Expr {
	left := b.exprShift(e.Left)
	for _, r := range e.Rest {
		right := b.exprShift(r.Right)
		left = &ast.Expr{Pos: left.Pos, Binary: &ast.BinaryExpr{Pos: left.Pos, Op: r.Op, Left: left, Right: right}}
	}
	return left
}

func (b *builder) exprShift(e *ExprShift) *ast.Expr {
	left := b.exprRange(e.Left)
	for _, r := range e.Rest {
		right := b.exprRange(r.Right)
		left = &ast.Expr{Pos: left.Pos, Binary: &ast.BinaryExpr{Pos: left.Pos, Op: r.Op, Left: left, Right: right}}
	}
	return left
}

func (b *builder) exprRange(e *ExprRange) *ast.Expr {
	low := b.exprAdditive(e.Low)
	if e.High == nil {
		return low
	}
	high := b.exprAdditive(e.High)
	return &ast.Expr{Pos: low.Pos, Range: &ast.RangeExpr{Pos: low.Pos, Low: low, High: high}}
}

func (b *builder) exprAdditive(e *ExprAdditive) *ast.Expr {
	left := b.exprMultiplicative(e.Left)
	for _, r := range e.Rest {
		right := b.exprMultiplicative(r.Right)
		left = &ast.Expr{Pos: left.Pos, Binary: &ast.BinaryExpr{Pos: left.Pos, Op: r.Op, Left: left, Right: right}}
	}
	return left
}

func (b *builder) exprMultiplicative(e *ExprMultiplicative) *ast.Expr {
	left := b.exprPower(e.Left)
	for _, r := range e.Rest {
		right := b.exprPower(r.Right)
		left = &ast.Expr{Pos: left.Pos, Binary: &ast.BinaryExpr{Pos: left.Pos, Op: r.Op, Left: left, Right: right}}
	}
	return left
}

func (b *builder) exprPower(e *ExprPower) *ast.Expr {
	base := b.exprUnary(e.Base)
	if e.Exp == nil {
		return base
	}
	exp := b.exprPower(e.Exp)
	return &ast.Expr{Pos: base.Pos, Binary: &ast.BinaryExpr{Pos: base.Pos, Op: "**", Left: base, Right: exp}}
}

func (b *builder) exprUnary(e *ExprUnary) *ast.Expr {
	if e.Postfix != nil {
		return b.exprPostfix(e.Postfix)
	}
	operand := b.exprUnary(e.Operand)
	if e.Op == "++" || e.Op == "--" {
		return &ast.Expr{Pos: operand.Pos, Unary: &ast.UnaryExpr{Pos: operand.Pos, Op: e.Op, Operand: operand}}
	}
	return &ast.Expr{Pos: operand.Pos, Unary: &ast.UnaryExpr{Pos: operand.Pos, Op: e.Op, Operand: operand}}
}

// exprPostfix applies a chain of suffixes onto a primary expression,
// choosing SubscriptExpr/HashAccessExpr/MemberExpr by the suffix kind
// alone, per the §3 invariant that dereference spelling picks the node
// kind; the base expression's sigil does not affect the choice.
func (b *builder) exprPostfix(e *ExprPostfix) *ast.Expr {
	cur, baseVar := b.primary(e.Primary)
	for _, suf := range e.Suffixes {
		switch {
		case suf.ArrowCall != nil:
			s := suf.ArrowCall
			var args []*ast.Expr
			for _, a := range s.Args {
				args = append(args, b.exprAssign(a))
			}
			cur = &ast.Expr{Pos: cur.Pos, Member: &ast.MemberExpr{Pos: cur.Pos, Target: cur, Field: s.Field, IsCall: true, Args: args}}
		case suf.ArrowIndex != nil:
			idx := b.exprAssign(suf.ArrowIndex.Index)
			cur = &ast.Expr{Pos: cur.Pos, DerefToArray: &ast.DerefToArrayExpr{Pos: cur.Pos, Ref: cur}}
			cur = &ast.Expr{Pos: cur.Pos, Subscript: &ast.SubscriptExpr{Pos: cur.Pos, Array: cur, Index: idx, Arrow: true}}
		case suf.ArrowKey != nil:
			key := b.exprAssign(suf.ArrowKey.Key)
			cur = &ast.Expr{Pos: cur.Pos, DerefToHash: &ast.DerefToHashExpr{Pos: cur.Pos, Ref: cur}}
			cur = &ast.Expr{Pos: cur.Pos, HashIdx: &ast.HashAccessExpr{Pos: cur.Pos, Hash: cur, Key: key, Arrow: true}}
		case suf.ArrowField != nil:
			cur = &ast.Expr{Pos: cur.Pos, Member: &ast.MemberExpr{Pos: cur.Pos, Target: cur, Field: suf.ArrowField.Field}}
		case suf.DotField != nil:
			s := suf.DotField
			m := &ast.MemberExpr{Pos: cur.Pos, Target: cur, Field: s.Field, IsCall: s.Called}
			for _, a := range s.Args {
				m.Args = append(m.Args, b.exprAssign(a))
			}
			cur = &ast.Expr{Pos: cur.Pos, Member: m}
		case suf.Index != nil:
			idx := b.exprAssign(suf.Index.Index)
			cur = &ast.Expr{Pos: cur.Pos, Subscript: &ast.SubscriptExpr{Pos: cur.Pos, Array: cur, Index: idx}}
		case suf.Key != nil:
			key := b.exprAssign(suf.Key.Key)
			cur = &ast.Expr{Pos: cur.Pos, HashIdx: &ast.HashAccessExpr{Pos: cur.Pos, Hash: cur, Key: key}}
		case suf.Inc != nil:
			cur = &ast.Expr{Pos: cur.Pos, Postfix: &ast.PostfixExpr{Pos: cur.Pos, Op: suf.Inc.Op, Operand: cur}}
		}
	}
	_ = baseVar
	return cur
}

// primary lowers one Primary alternative. It also returns the VarLit sigil
// seen (if any); exprPostfix receives it but does not use it.
func (b *builder) primary(p *Primary) (*ast.Expr, string) {
	pos := b.pos(p.Pos)
	switch {
	case p.Paren != nil:
		if len(p.Paren.Elements) == 1 {
			return b.exprAssign(p.Paren.Elements[0]), ""
		}
		lit := &ast.ArrayLit{Pos: pos}
		for _, el := range p.Paren.Elements {
			lit.Elements = append(lit.Elements, b.exprAssign(el))
		}
		return &ast.Expr{Pos: pos, ArrayLit: lit}, ""
	case p.Clone != nil:
		return &ast.Expr{Pos: pos, Clone: &ast.CloneExpr{Pos: pos, Value: b.exprAssign(p.Clone.Value)}}, ""
	case p.FuncLit != nil:
		fl := p.FuncLit
		lit := &ast.FuncLitExpr{Pos: pos, Return: b.typeSpec(fl.Ret), Body: b.block(fl.Body)}
		for _, param := range fl.Params {
			lit.Params = append(lit.Params, b.param(param))
		}
		return &ast.Expr{Pos: pos, FuncLit: lit}, ""
	case p.Call != nil:
		c := p.Call
		pkg := strings.Join(c.Package, "::")
		if !c.Called {
			return &ast.Expr{Pos: pos, FuncRef: &ast.FuncRefExpr{Pos: pos, Package: pkg, Name: c.Name}}, ""
		}
		call := &ast.CallExpr{Pos: pos, Package: pkg, Name: c.Name}
		for _, a := range c.Args {
			call.Args = append(call.Args, b.exprAssign(a))
		}
		return &ast.Expr{Pos: pos, Call: call}, ""
	case p.AnonArray != nil:
		lit := &ast.AnonArrayExpr{Pos: pos}
		for _, el := range p.AnonArray.Elements {
			lit.Elements = append(lit.Elements, b.exprAssign(el))
		}
		return &ast.Expr{Pos: pos, AnonArray: lit}, ""
	case p.AnonHash != nil:
		lit := &ast.AnonHashExpr{Pos: pos}
		for _, k := range p.AnonHash.Keys {
			lit.Keys = append(lit.Keys, b.exprAssign(k))
		}
		for _, v := range p.AnonHash.Values {
			lit.Values = append(lit.Values, b.exprAssign(v))
		}
		return &ast.Expr{Pos: pos, AnonHash: lit}, ""
	case p.DerefHash != nil:
		return &ast.Expr{Pos: pos, DerefHash: &ast.DerefHashExpr{Pos: pos, Ref: b.exprAssign(p.DerefHash.Ref)}}, ""
	case p.DerefArr != nil:
		return &ast.Expr{Pos: pos, DerefArray: &ast.DerefArrayExpr{Pos: pos, Ref: b.exprAssign(p.DerefArr.Ref)}}, ""
	case p.DerefScal != nil:
		ref := &ast.Expr{Pos: pos, Var: &ast.VarExpr{Pos: pos, Sigil: "$", Name: p.DerefScal.Ref}}
		return &ast.Expr{Pos: pos, DerefScalar: &ast.DerefScalarExpr{Pos: pos, Ref: ref}}, ""
	case p.Ref != nil:
		target := &ast.Expr{Pos: pos, Var: &ast.VarExpr{Pos: pos, Sigil: p.Ref.Sigil, Name: p.Ref.Name}}
		return &ast.Expr{Pos: pos, Ref: &ast.RefExpr{Pos: pos, ReferentSigil: p.Ref.Sigil, Target: target}}, ""
	case p.Spread != nil:
		arr := &ast.Expr{Pos: pos, Var: &ast.VarExpr{Pos: pos, Sigil: "@", Name: p.Spread.Name}}
		return &ast.Expr{Pos: pos, Spread: &ast.SpreadExpr{Pos: pos, Array: arr}}, ""
	case p.Var != nil:
		return &ast.Expr{Pos: pos, Var: &ast.VarExpr{Pos: pos, Sigil: p.Var.Sigil, Name: p.Var.Name}}, p.Var.Sigil
	case p.Float != "":
		v, _ := strconv.ParseFloat(p.Float, 64)
		return &ast.Expr{Pos: pos, Num: &ast.NumLit{Pos: pos, Value: v}}, ""
	case p.Hex != "":
		v, _ := strconv.ParseInt(p.Hex[2:], 16, 64)
		return &ast.Expr{Pos: pos, Int: &ast.IntLit{Pos: pos, Value: v}}, ""
	case p.Bin != "":
		v, _ := strconv.ParseInt(p.Bin[2:], 2, 64)
		return &ast.Expr{Pos: pos, Int: &ast.IntLit{Pos: pos, Value: v}}, ""
	case p.Oct != "":
		v, _ := strconv.ParseInt(p.Oct[1:], 8, 64)
		return &ast.Expr{Pos: pos, Int: &ast.IntLit{Pos: pos, Value: v}}, ""
	case p.Int != "":
		v, _ := strconv.ParseInt(p.Int, 10, 64)
		return &ast.Expr{Pos: pos, Int: &ast.IntLit{Pos: pos, Value: v}}, ""
	case p.Str != "":
		quote := p.Str[0]
		raw := p.Str[1 : len(p.Str)-1]
		if quote == '"' {
			return &ast.Expr{Pos: pos, Str: &ast.StrLit{Pos: pos, Value: raw, Interpolated: true}}, ""
		}
		return &ast.Expr{Pos: pos, Str: &ast.StrLit{Pos: pos, Value: unescapeSingle(raw)}}, ""
	case p.Backtick != "":
		return &ast.Expr{Pos: pos, Backtick: &ast.BacktickLit{Pos: pos, Command: p.Backtick[1 : len(p.Backtick)-1]}}, ""
	case p.RegexSub != "":
		pat, repl, flags := splitRegexSubst(p.RegexSub)
		return &ast.Expr{Pos: pos, RegexSubst: &ast.RegexSubstExpr{Pos: pos, Pattern: pat, Replacement: repl, Flags: flags}}, ""
	case p.Regex != "":
		pat, flags := splitRegex(p.Regex)
		return &ast.Expr{Pos: pos, Regex: &ast.RegexExpr{Pos: pos, Pattern: pat, Flags: flags}}, ""
	case p.Qw != "":
		words := splitQw(p.Qw)
		lit := &ast.ArrayLit{Pos: pos}
		for _, w := range words {
			lit.Elements = append(lit.Elements, &ast.Expr{Pos: pos, Str: &ast.StrLit{Pos: pos, Value: w}})
		}
		return &ast.Expr{Pos: pos, ArrayLit: lit}, ""
	}
	return &ast.Expr{Pos: pos}, ""
}

// --- literal helpers ---

func unquote(s string) string {
	if len(s) >= 2 {
		return unescapeSingle(s[1 : len(s)-1])
	}
	return s
}

func unescapeSingle(s string) string {
	var out strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) {
			i++
			switch s[i] {
			case 'n':
				out.WriteByte('\n')
			case 't':
				out.WriteByte('\t')
			case 'r':
				out.WriteByte('\r')
			case '\\', '\'', '"':
				out.WriteByte(s[i])
			default:
				out.WriteByte('\\')
				out.WriteByte(s[i])
			}
			continue
		}
		out.WriteByte(s[i])
	}
	return out.String()
}

// splitQw splits a "qw(a b c)" lexeme into its bare words. An empty
// lexeme (no qw() present, e.g. a "use Pkg;" with no function list) yields
// a nil slice.
func splitQw(raw string) []string {
	if raw == "" {
		return nil
	}
	open := strings.IndexByte(raw, '(')
	close := strings.LastIndexByte(raw, ')')
	if open < 0 || close < 0 || close <= open {
		return nil
	}
	return strings.Fields(raw[open+1 : close])
}

// splitRegex splits a "/pattern/flags" lexeme, honoring backslash-escaped
// slashes inside the pattern.
func splitRegex(raw string) (pattern, flags string) {
	end := findUnescapedSlash(raw, 1)
	return raw[1:end], raw[end+1:]
}

// splitRegexSubst splits a "s/pattern/replacement/flags" lexeme.
func splitRegexSubst(raw string) (pattern, replacement, flags string) {
	body := raw[1:] // drop leading 's'
	firstSlash := 0
	mid := findUnescapedSlash(body, firstSlash+1)
	end := findUnescapedSlash(body, mid+1)
	return body[firstSlash+1 : mid], body[mid+1 : end], body[end+1:]
}

func findUnescapedSlash(s string, from int) int {
	for i := from; i < len(s); i++ {
		if s[i] == '\\' {
			i++
			continue
		}
		if s[i] == '/' {
			return i
		}
	}
	return len(s)
}
