package ast

// BaseVisitor implements Visitor with "traverse every child, return nil"
// default bodies. Passes embed it and override only the node kinds they
// care about (grounded on the teacher's pkg/ast/base_visitor.go).
type BaseVisitor struct{}

func (b BaseVisitor) VisitProgram(n *Program) interface{} {
	for _, p := range n.Packages {
		p.Accept(b)
	}
	for _, u := range n.Uses {
		u.Accept(b)
	}
	for _, u := range n.UseLibs {
		u.Accept(b)
	}
	for _, s := range n.Structs {
		s.Accept(b)
	}
	for _, f := range n.Funcs {
		f.Accept(b)
	}
	for _, s := range n.TopStmts {
		s.Accept(b)
	}
	return nil
}

func (b BaseVisitor) VisitPackageDecl(n *PackageDecl) interface{} { return nil }
func (b BaseVisitor) VisitUseStmt(n *UseStmt) interface{}         { return nil }
func (b BaseVisitor) VisitUseLib(n *UseLib) interface{}           { return nil }

func (b BaseVisitor) VisitStructDef(n *StructDef) interface{} {
	for _, f := range n.Fields {
		f.Accept(b)
	}
	return nil
}

func (b BaseVisitor) VisitStructField(n *StructField) interface{} { return nil }

func (b BaseVisitor) VisitFuncDef(n *FuncDef) interface{} {
	for _, p := range n.Params {
		p.Accept(b)
	}
	if n.Body != nil {
		n.Body.Accept(b)
	}
	return nil
}

func (b BaseVisitor) VisitParam(n *Param) interface{} {
	if n.Default != nil {
		n.Default.Accept(b)
	}
	return nil
}

func (b BaseVisitor) VisitType(n *Type) interface{} { return nil }

func (b BaseVisitor) VisitBlock(n *Block) interface{} {
	for _, s := range n.Stmts {
		s.Accept(b)
	}
	return nil
}

func (b BaseVisitor) VisitStmt(n *Stmt) interface{} {
	switch {
	case n.VarDecl != nil:
		return n.VarDecl.Accept(b)
	case n.If != nil:
		return n.If.Accept(b)
	case n.Unless != nil:
		return n.Unless.Accept(b)
	case n.While != nil:
		return n.While.Accept(b)
	case n.Until != nil:
		return n.Until.Accept(b)
	case n.For != nil:
		return n.For.Accept(b)
	case n.Foreach != nil:
		return n.Foreach.Accept(b)
	case n.Return != nil:
		return n.Return.Accept(b)
	case n.Try != nil:
		return n.Try.Accept(b)
	case n.Throw != nil:
		return n.Throw.Accept(b)
	case n.Label != nil:
		return n.Label.Accept(b)
	case n.Goto != nil:
		return n.Goto.Accept(b)
	case n.Last != nil:
		return n.Last.Accept(b)
	case n.Next != nil:
		return n.Next.Accept(b)
	case n.Block != nil:
		return n.Block.Accept(b)
	case n.ExprStmt != nil:
		return n.ExprStmt.Accept(b)
	}
	return nil
}

func (b BaseVisitor) VisitVarDecl(n *VarDecl) interface{} {
	if n.Init != nil {
		n.Init.Accept(b)
	}
	if n.Capacity != nil {
		n.Capacity.Accept(b)
	}
	return nil
}

func (b BaseVisitor) VisitExprStmt(n *ExprStmt) interface{} {
	if n.Expr != nil {
		n.Expr.Accept(b)
	}
	return nil
}

func (b BaseVisitor) VisitIfStmt(n *IfStmt) interface{} {
	if n.Cond != nil {
		n.Cond.Accept(b)
	}
	if n.Then != nil {
		n.Then.Accept(b)
	}
	for _, e := range n.ElsIfs {
		if e.Cond != nil {
			e.Cond.Accept(b)
		}
		if e.Then != nil {
			e.Then.Accept(b)
		}
	}
	if n.Else != nil {
		n.Else.Accept(b)
	}
	return nil
}

func (b BaseVisitor) VisitUnlessStmt(n *UnlessStmt) interface{} {
	if n.Cond != nil {
		n.Cond.Accept(b)
	}
	if n.Then != nil {
		n.Then.Accept(b)
	}
	if n.Else != nil {
		n.Else.Accept(b)
	}
	return nil
}

func (b BaseVisitor) VisitWhileStmt(n *WhileStmt) interface{} {
	if n.Cond != nil {
		n.Cond.Accept(b)
	}
	if n.Body != nil {
		n.Body.Accept(b)
	}
	return nil
}

func (b BaseVisitor) VisitUntilStmt(n *UntilStmt) interface{} {
	if n.Cond != nil {
		n.Cond.Accept(b)
	}
	if n.Body != nil {
		n.Body.Accept(b)
	}
	return nil
}

func (b BaseVisitor) VisitForStmt(n *ForStmt) interface{} {
	if n.Init != nil {
		n.Init.Accept(b)
	}
	if n.Cond != nil {
		n.Cond.Accept(b)
	}
	if n.Post != nil {
		n.Post.Accept(b)
	}
	if n.Body != nil {
		n.Body.Accept(b)
	}
	return nil
}

func (b BaseVisitor) VisitForeachStmt(n *ForeachStmt) interface{} {
	if n.Array != nil {
		n.Array.Accept(b)
	}
	if n.Body != nil {
		n.Body.Accept(b)
	}
	return nil
}

func (b BaseVisitor) VisitReturnStmt(n *ReturnStmt) interface{} {
	if n.Value != nil {
		n.Value.Accept(b)
	}
	return nil
}

func (b BaseVisitor) VisitTryStmt(n *TryStmt) interface{} {
	if n.Body != nil {
		n.Body.Accept(b)
	}
	if n.CatchBody != nil {
		n.CatchBody.Accept(b)
	}
	return nil
}

func (b BaseVisitor) VisitThrowStmt(n *ThrowStmt) interface{} {
	if n.Value != nil {
		n.Value.Accept(b)
	}
	return nil
}

func (b BaseVisitor) VisitLabelStmt(n *LabelStmt) interface{} { return nil }
func (b BaseVisitor) VisitGotoStmt(n *GotoStmt) interface{}   { return nil }
func (b BaseVisitor) VisitLastStmt(n *LastStmt) interface{}   { return nil }
func (b BaseVisitor) VisitNextStmt(n *NextStmt) interface{}   { return nil }

func (b BaseVisitor) VisitExpr(n *Expr) interface{} {
	switch {
	case n.Binary != nil:
		return n.Binary.Accept(b)
	case n.Unary != nil:
		return n.Unary.Accept(b)
	case n.Assign != nil:
		return n.Assign.Accept(b)
	case n.Ternary != nil:
		return n.Ternary.Accept(b)
	case n.Postfix != nil:
		return n.Postfix.Accept(b)
	case n.Call != nil:
		return n.Call.Accept(b)
	case n.Indirect != nil:
		return n.Indirect.Accept(b)
	case n.Subscript != nil:
		return n.Subscript.Accept(b)
	case n.HashIdx != nil:
		return n.HashIdx.Accept(b)
	case n.Member != nil:
		return n.Member.Accept(b)
	case n.Clone != nil:
		return n.Clone.Accept(b)
	case n.FuncRef != nil:
		return n.FuncRef.Accept(b)
	case n.Var != nil:
		return n.Var.Accept(b)
	case n.Int != nil:
		return n.Int.Accept(b)
	case n.Num != nil:
		return n.Num.Accept(b)
	case n.Str != nil:
		return n.Str.Accept(b)
	case n.Backtick != nil:
		return n.Backtick.Accept(b)
	case n.ArrayLit != nil:
		return n.ArrayLit.Accept(b)
	case n.HashLit != nil:
		return n.HashLit.Accept(b)
	case n.Ref != nil:
		return n.Ref.Accept(b)
	case n.AnonHash != nil:
		return n.AnonHash.Accept(b)
	case n.AnonArray != nil:
		return n.AnonArray.Accept(b)
	case n.DerefHash != nil:
		return n.DerefHash.Accept(b)
	case n.DerefArray != nil:
		return n.DerefArray.Accept(b)
	case n.DerefScalar != nil:
		return n.DerefScalar.Accept(b)
	case n.DerefToArray != nil:
		return n.DerefToArray.Accept(b)
	case n.DerefToHash != nil:
		return n.DerefToHash.Accept(b)
	case n.Spread != nil:
		return n.Spread.Accept(b)
	case n.FuncLit != nil:
		return n.FuncLit.Accept(b)
	case n.Range != nil:
		return n.Range.Accept(b)
	case n.Regex != nil:
		return n.Regex.Accept(b)
	case n.RegexSubst != nil:
		return n.RegexSubst.Accept(b)
	}
	return nil
}

func (b BaseVisitor) VisitBinaryExpr(n *BinaryExpr) interface{} {
	if n.Left != nil {
		n.Left.Accept(b)
	}
	if n.Right != nil {
		n.Right.Accept(b)
	}
	return nil
}

func (b BaseVisitor) VisitUnaryExpr(n *UnaryExpr) interface{} {
	if n.Operand != nil {
		n.Operand.Accept(b)
	}
	return nil
}

func (b BaseVisitor) VisitPostfixExpr(n *PostfixExpr) interface{} {
	if n.Operand != nil {
		n.Operand.Accept(b)
	}
	return nil
}

func (b BaseVisitor) VisitAssignExpr(n *AssignExpr) interface{} {
	if n.Left != nil {
		n.Left.Accept(b)
	}
	if n.Right != nil {
		n.Right.Accept(b)
	}
	return nil
}

func (b BaseVisitor) VisitTernaryExpr(n *TernaryExpr) interface{} {
	if n.Cond != nil {
		n.Cond.Accept(b)
	}
	if n.Then != nil {
		n.Then.Accept(b)
	}
	if n.Else != nil {
		n.Else.Accept(b)
	}
	return nil
}

func (b BaseVisitor) VisitCallExpr(n *CallExpr) interface{} {
	for _, a := range n.Args {
		a.Accept(b)
	}
	return nil
}

func (b BaseVisitor) VisitIndirectCallExpr(n *IndirectCallExpr) interface{} {
	if n.Target != nil {
		n.Target.Accept(b)
	}
	for _, a := range n.Args {
		a.Accept(b)
	}
	return nil
}

func (b BaseVisitor) VisitSubscriptExpr(n *SubscriptExpr) interface{} {
	if n.Array != nil {
		n.Array.Accept(b)
	}
	if n.Index != nil {
		n.Index.Accept(b)
	}
	return nil
}

func (b BaseVisitor) VisitHashAccessExpr(n *HashAccessExpr) interface{} {
	if n.Hash != nil {
		n.Hash.Accept(b)
	}
	if n.Key != nil {
		n.Key.Accept(b)
	}
	return nil
}

func (b BaseVisitor) VisitMemberExpr(n *MemberExpr) interface{} {
	if n.Target != nil {
		n.Target.Accept(b)
	}
	for _, a := range n.Args {
		a.Accept(b)
	}
	return nil
}

func (b BaseVisitor) VisitCloneExpr(n *CloneExpr) interface{} {
	if n.Value != nil {
		n.Value.Accept(b)
	}
	return nil
}

func (b BaseVisitor) VisitFuncRefExpr(n *FuncRefExpr) interface{} { return nil }
func (b BaseVisitor) VisitVarExpr(n *VarExpr) interface{}         { return nil }
func (b BaseVisitor) VisitIntLit(n *IntLit) interface{}           { return nil }
func (b BaseVisitor) VisitNumLit(n *NumLit) interface{}           { return nil }
func (b BaseVisitor) VisitStrLit(n *StrLit) interface{}           { return nil }
func (b BaseVisitor) VisitBacktickLit(n *BacktickLit) interface{} { return nil }

func (b BaseVisitor) VisitArrayLit(n *ArrayLit) interface{} {
	for _, e := range n.Elements {
		e.Accept(b)
	}
	return nil
}

func (b BaseVisitor) VisitHashLit(n *HashLit) interface{} {
	for _, k := range n.Keys {
		k.Accept(b)
	}
	for _, v := range n.Values {
		v.Accept(b)
	}
	return nil
}

func (b BaseVisitor) VisitAnonArrayExpr(n *AnonArrayExpr) interface{} {
	for _, e := range n.Elements {
		e.Accept(b)
	}
	return nil
}

func (b BaseVisitor) VisitAnonHashExpr(n *AnonHashExpr) interface{} {
	for _, k := range n.Keys {
		k.Accept(b)
	}
	for _, v := range n.Values {
		v.Accept(b)
	}
	return nil
}

func (b BaseVisitor) VisitRefExpr(n *RefExpr) interface{} {
	if n.Target != nil {
		n.Target.Accept(b)
	}
	return nil
}

func (b BaseVisitor) VisitDerefScalarExpr(n *DerefScalarExpr) interface{} {
	if n.Ref != nil {
		n.Ref.Accept(b)
	}
	return nil
}

func (b BaseVisitor) VisitDerefArrayExpr(n *DerefArrayExpr) interface{} {
	if n.Ref != nil {
		n.Ref.Accept(b)
	}
	return nil
}

func (b BaseVisitor) VisitDerefHashExpr(n *DerefHashExpr) interface{} {
	if n.Ref != nil {
		n.Ref.Accept(b)
	}
	return nil
}

func (b BaseVisitor) VisitDerefToArrayExpr(n *DerefToArrayExpr) interface{} {
	if n.Ref != nil {
		n.Ref.Accept(b)
	}
	return nil
}

func (b BaseVisitor) VisitDerefToHashExpr(n *DerefToHashExpr) interface{} {
	if n.Ref != nil {
		n.Ref.Accept(b)
	}
	return nil
}

func (b BaseVisitor) VisitSpreadExpr(n *SpreadExpr) interface{} {
	if n.Array != nil {
		n.Array.Accept(b)
	}
	return nil
}

func (b BaseVisitor) VisitFuncLitExpr(n *FuncLitExpr) interface{} {
	for _, p := range n.Params {
		p.Accept(b)
	}
	if n.Body != nil {
		n.Body.Accept(b)
	}
	return nil
}

func (b BaseVisitor) VisitRangeExpr(n *RangeExpr) interface{} {
	if n.Low != nil {
		n.Low.Accept(b)
	}
	if n.High != nil {
		n.High.Accept(b)
	}
	return nil
}

func (b BaseVisitor) VisitRegexExpr(n *RegexExpr) interface{} {
	if n.Target != nil {
		n.Target.Accept(b)
	}
	return nil
}

func (b BaseVisitor) VisitRegexSubstExpr(n *RegexSubstExpr) interface{} {
	if n.Target != nil {
		n.Target.Accept(b)
	}
	return nil
}
