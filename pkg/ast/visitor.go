package ast

// Visitor defines one method per AST node kind. Passes (semantic, codegen)
// implement it and call node.Accept(v) to dispatch; BaseVisitor gives a
// no-op/traverse-children default so a pass only needs to override the
// node kinds it cares about (grounded on the teacher's pkg/ast/visitor.go).
type Visitor interface {
	VisitProgram(*Program) interface{}
	VisitPackageDecl(*PackageDecl) interface{}
	VisitUseStmt(*UseStmt) interface{}
	VisitUseLib(*UseLib) interface{}
	VisitStructDef(*StructDef) interface{}
	VisitStructField(*StructField) interface{}
	VisitFuncDef(*FuncDef) interface{}
	VisitParam(*Param) interface{}
	VisitType(*Type) interface{}

	VisitBlock(*Block) interface{}
	VisitStmt(*Stmt) interface{}
	VisitVarDecl(*VarDecl) interface{}
	VisitExprStmt(*ExprStmt) interface{}
	VisitIfStmt(*IfStmt) interface{}
	VisitUnlessStmt(*UnlessStmt) interface{}
	VisitWhileStmt(*WhileStmt) interface{}
	VisitUntilStmt(*UntilStmt) interface{}
	VisitForStmt(*ForStmt) interface{}
	VisitForeachStmt(*ForeachStmt) interface{}
	VisitReturnStmt(*ReturnStmt) interface{}
	VisitTryStmt(*TryStmt) interface{}
	VisitThrowStmt(*ThrowStmt) interface{}
	VisitLabelStmt(*LabelStmt) interface{}
	VisitGotoStmt(*GotoStmt) interface{}
	VisitLastStmt(*LastStmt) interface{}
	VisitNextStmt(*NextStmt) interface{}

	VisitExpr(*Expr) interface{}
	VisitBinaryExpr(*BinaryExpr) interface{}
	VisitUnaryExpr(*UnaryExpr) interface{}
	VisitPostfixExpr(*PostfixExpr) interface{}
	VisitAssignExpr(*AssignExpr) interface{}
	VisitTernaryExpr(*TernaryExpr) interface{}
	VisitCallExpr(*CallExpr) interface{}
	VisitIndirectCallExpr(*IndirectCallExpr) interface{}
	VisitSubscriptExpr(*SubscriptExpr) interface{}
	VisitHashAccessExpr(*HashAccessExpr) interface{}
	VisitMemberExpr(*MemberExpr) interface{}
	VisitCloneExpr(*CloneExpr) interface{}
	VisitFuncRefExpr(*FuncRefExpr) interface{}
	VisitVarExpr(*VarExpr) interface{}
	VisitIntLit(*IntLit) interface{}
	VisitNumLit(*NumLit) interface{}
	VisitStrLit(*StrLit) interface{}
	VisitBacktickLit(*BacktickLit) interface{}
	VisitArrayLit(*ArrayLit) interface{}
	VisitHashLit(*HashLit) interface{}
	VisitAnonArrayExpr(*AnonArrayExpr) interface{}
	VisitAnonHashExpr(*AnonHashExpr) interface{}
	VisitRefExpr(*RefExpr) interface{}
	VisitDerefScalarExpr(*DerefScalarExpr) interface{}
	VisitDerefArrayExpr(*DerefArrayExpr) interface{}
	VisitDerefHashExpr(*DerefHashExpr) interface{}
	VisitDerefToArrayExpr(*DerefToArrayExpr) interface{}
	VisitDerefToHashExpr(*DerefToHashExpr) interface{}
	VisitSpreadExpr(*SpreadExpr) interface{}
	VisitFuncLitExpr(*FuncLitExpr) interface{}
	VisitRangeExpr(*RangeExpr) interface{}
	VisitRegexExpr(*RegexExpr) interface{}
	VisitRegexSubstExpr(*RegexSubstExpr) interface{}
}

// Accept methods. Each simply dispatches to the matching Visitor method;
// the Visitor implementation decides whether/how to recurse into children.

func (n *Program) Accept(v Visitor) interface{}     { return v.VisitProgram(n) }
func (n *PackageDecl) Accept(v Visitor) interface{} { return v.VisitPackageDecl(n) }
func (n *UseStmt) Accept(v Visitor) interface{}     { return v.VisitUseStmt(n) }
func (n *UseLib) Accept(v Visitor) interface{}      { return v.VisitUseLib(n) }
func (n *StructDef) Accept(v Visitor) interface{}   { return v.VisitStructDef(n) }
func (n *StructField) Accept(v Visitor) interface{} { return v.VisitStructField(n) }
func (n *FuncDef) Accept(v Visitor) interface{}     { return v.VisitFuncDef(n) }
func (n *Param) Accept(v Visitor) interface{}       { return v.VisitParam(n) }
func (n *Type) Accept(v Visitor) interface{}        { return v.VisitType(n) }

func (n *Block) Accept(v Visitor) interface{}       { return v.VisitBlock(n) }
func (n *Stmt) Accept(v Visitor) interface{}        { return v.VisitStmt(n) }
func (n *VarDecl) Accept(v Visitor) interface{}     { return v.VisitVarDecl(n) }
func (n *ExprStmt) Accept(v Visitor) interface{}    { return v.VisitExprStmt(n) }
func (n *IfStmt) Accept(v Visitor) interface{}      { return v.VisitIfStmt(n) }
func (n *UnlessStmt) Accept(v Visitor) interface{}  { return v.VisitUnlessStmt(n) }
func (n *WhileStmt) Accept(v Visitor) interface{}   { return v.VisitWhileStmt(n) }
func (n *UntilStmt) Accept(v Visitor) interface{}   { return v.VisitUntilStmt(n) }
func (n *ForStmt) Accept(v Visitor) interface{}     { return v.VisitForStmt(n) }
func (n *ForeachStmt) Accept(v Visitor) interface{} { return v.VisitForeachStmt(n) }
func (n *ReturnStmt) Accept(v Visitor) interface{}  { return v.VisitReturnStmt(n) }
func (n *TryStmt) Accept(v Visitor) interface{}     { return v.VisitTryStmt(n) }
func (n *ThrowStmt) Accept(v Visitor) interface{}   { return v.VisitThrowStmt(n) }
func (n *LabelStmt) Accept(v Visitor) interface{}   { return v.VisitLabelStmt(n) }
func (n *GotoStmt) Accept(v Visitor) interface{}    { return v.VisitGotoStmt(n) }
func (n *LastStmt) Accept(v Visitor) interface{}    { return v.VisitLastStmt(n) }
func (n *NextStmt) Accept(v Visitor) interface{}    { return v.VisitNextStmt(n) }

func (n *Expr) Accept(v Visitor) interface{}             { return v.VisitExpr(n) }
func (n *BinaryExpr) Accept(v Visitor) interface{}       { return v.VisitBinaryExpr(n) }
func (n *UnaryExpr) Accept(v Visitor) interface{}        { return v.VisitUnaryExpr(n) }
func (n *PostfixExpr) Accept(v Visitor) interface{}      { return v.VisitPostfixExpr(n) }
func (n *AssignExpr) Accept(v Visitor) interface{}       { return v.VisitAssignExpr(n) }
func (n *TernaryExpr) Accept(v Visitor) interface{}      { return v.VisitTernaryExpr(n) }
func (n *CallExpr) Accept(v Visitor) interface{}         { return v.VisitCallExpr(n) }
func (n *IndirectCallExpr) Accept(v Visitor) interface{} { return v.VisitIndirectCallExpr(n) }
func (n *SubscriptExpr) Accept(v Visitor) interface{}    { return v.VisitSubscriptExpr(n) }
func (n *HashAccessExpr) Accept(v Visitor) interface{}   { return v.VisitHashAccessExpr(n) }
func (n *MemberExpr) Accept(v Visitor) interface{}       { return v.VisitMemberExpr(n) }
func (n *CloneExpr) Accept(v Visitor) interface{}        { return v.VisitCloneExpr(n) }
func (n *FuncRefExpr) Accept(v Visitor) interface{}      { return v.VisitFuncRefExpr(n) }
func (n *VarExpr) Accept(v Visitor) interface{}          { return v.VisitVarExpr(n) }
func (n *IntLit) Accept(v Visitor) interface{}           { return v.VisitIntLit(n) }
func (n *NumLit) Accept(v Visitor) interface{}           { return v.VisitNumLit(n) }
func (n *StrLit) Accept(v Visitor) interface{}           { return v.VisitStrLit(n) }
func (n *BacktickLit) Accept(v Visitor) interface{}      { return v.VisitBacktickLit(n) }
func (n *ArrayLit) Accept(v Visitor) interface{}         { return v.VisitArrayLit(n) }
func (n *HashLit) Accept(v Visitor) interface{}          { return v.VisitHashLit(n) }
func (n *AnonArrayExpr) Accept(v Visitor) interface{}    { return v.VisitAnonArrayExpr(n) }
func (n *AnonHashExpr) Accept(v Visitor) interface{}     { return v.VisitAnonHashExpr(n) }
func (n *RefExpr) Accept(v Visitor) interface{}          { return v.VisitRefExpr(n) }
func (n *DerefScalarExpr) Accept(v Visitor) interface{}  { return v.VisitDerefScalarExpr(n) }
func (n *DerefArrayExpr) Accept(v Visitor) interface{}   { return v.VisitDerefArrayExpr(n) }
func (n *DerefHashExpr) Accept(v Visitor) interface{}    { return v.VisitDerefHashExpr(n) }
func (n *DerefToArrayExpr) Accept(v Visitor) interface{} { return v.VisitDerefToArrayExpr(n) }
func (n *DerefToHashExpr) Accept(v Visitor) interface{}  { return v.VisitDerefToHashExpr(n) }
func (n *SpreadExpr) Accept(v Visitor) interface{}       { return v.VisitSpreadExpr(n) }
func (n *FuncLitExpr) Accept(v Visitor) interface{}      { return v.VisitFuncLitExpr(n) }
func (n *RangeExpr) Accept(v Visitor) interface{}        { return v.VisitRangeExpr(n) }
func (n *RegexExpr) Accept(v Visitor) interface{}        { return v.VisitRegexExpr(n) }
func (n *RegexSubstExpr) Accept(v Visitor) interface{}   { return v.VisitRegexSubstExpr(n) }
