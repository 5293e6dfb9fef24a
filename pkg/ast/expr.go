package ast

import "github.com/gaarutyunov/strada/internal/token"

// Expr is the expression sum type. Exactly one field is non-nil. It is
// folded, by pkg/parser, from the precedence-climbing concrete syntax tree
// into this flat tagged shape so that semantic and codegen need only switch
// on one type per expression instead of walking sixteen precedence levels.
type Expr struct {
	Pos token.Position

	Binary    *BinaryExpr
	Unary     *UnaryExpr
	Assign    *AssignExpr
	Ternary   *TernaryExpr
	Postfix   *PostfixExpr
	Call      *CallExpr
	Indirect  *IndirectCallExpr
	Subscript *SubscriptExpr
	HashIdx   *HashAccessExpr
	Member    *MemberExpr
	Clone     *CloneExpr
	FuncRef   *FuncRefExpr
	Var       *VarExpr
	Int       *IntLit
	Num       *NumLit
	Str       *StrLit
	Backtick  *BacktickLit
	ArrayLit  *ArrayLit
	HashLit   *HashLit
	Ref       *RefExpr
	AnonHash  *AnonHashExpr
	AnonArray *AnonArrayExpr
	DerefHash    *DerefHashExpr
	DerefArray   *DerefArrayExpr
	DerefScalar  *DerefScalarExpr
	DerefToArray *DerefToArrayExpr
	DerefToHash  *DerefToHashExpr
	Spread    *SpreadExpr
	FuncLit   *FuncLitExpr
	Range     *RangeExpr
	Regex     *RegexExpr
	RegexSubst *RegexSubstExpr
}

// BinaryExpr is a binary operation identified by its operator string (§3).
type BinaryExpr struct {
	Pos   token.Position
	Op    string
	Left  *Expr
	Right *Expr
}

// UnaryExpr is a prefix unary operation (! not - + ~ \ ++ --).
type UnaryExpr struct {
	Pos     token.Position
	Op      string
	Operand *Expr
}

// PostfixExpr is a postfix ++ / -- application.
type PostfixExpr struct {
	Pos     token.Position
	Op      string
	Operand *Expr
}

// AssignExpr is `lhs op rhs` for op in {"=", "+=", "-=", ".="}.
type AssignExpr struct {
	Pos   token.Position
	Op    string
	Left  *Expr
	Right *Expr
}

// TernaryExpr is `cond ? then : else`.
type TernaryExpr struct {
	Pos  token.Position
	Cond *Expr
	Then *Expr
	Else *Expr
}

// CallExpr is `f(args)` or, package-qualified, `Pkg::f(args)`.
type CallExpr struct {
	Pos     token.Position
	Package string // "" when unqualified
	Name    string
	Args    []*Expr
}

// IndirectCallExpr is `$var->(args)`, a call through a closure/function
// pointer held in a scalar.
type IndirectCallExpr struct {
	Pos    token.Position
	Target *Expr
	Args   []*Expr
}

// SubscriptExpr is `@a[i]` or `$a->[i]`.
type SubscriptExpr struct {
	Pos   token.Position
	Array *Expr
	Index *Expr
	Arrow bool // true for the "->[ ]" spelling
}

// HashAccessExpr is `%h{"k"}` or `$h->{"k"}`.
type HashAccessExpr struct {
	Pos  token.Position
	Hash *Expr
	Key  *Expr
	Arrow bool
}

// MemberExpr is `$obj->field` or `obj.field`; method calls
// (`$obj->method(args)`) are represented with IsCall set and Args populated,
// left unresolved until semantic rewrites them to a direct CallExpr (§4.3).
type MemberExpr struct {
	Pos    token.Position
	Target *Expr
	Field  string
	IsCall bool
	Args   []*Expr
}

// CloneExpr is `clone(expr)`.
type CloneExpr struct {
	Pos   token.Position
	Value *Expr
}

// FuncRefExpr is a bare function name used as a value (for assigning to a
// function-pointer struct field, or calling via `\&name`).
type FuncRefExpr struct {
	Pos     token.Position
	Package string
	Name    string
}

// VarExpr is a sigil-prefixed variable reference.
type VarExpr struct {
	Pos   token.Position
	Sigil string
	Name  string
}

type IntLit struct {
	Pos   token.Position
	Value int64
}

type NumLit struct {
	Pos   token.Position
	Value float64
}

// StrLit is a single- or double-quoted string literal. For double-quoted
// strings (Interpolated set) Value retains the original source text,
// interpolation markers intact; for single-quoted ones Value holds the
// already-unescaped text.
type StrLit struct {
	Pos          token.Position
	Value        string
	Interpolated bool
}

// BacktickLit is a command literal, lowered by codegen to a runtime shell
// call (§4.1, §9 glossary "FFI shim" is unrelated — this calls the runtime
// directly, not a shim).
type BacktickLit struct {
	Pos     token.Position
	Command string
}

// ArrayLit is `(1, 2, 3)` used in an array-valued initializer position.
type ArrayLit struct {
	Pos      token.Position
	Elements []*Expr
}

// HashLit is a hash initializer `(k1 => v1, k2 => v2)`.
type HashLit struct {
	Pos    token.Position
	Keys   []*Expr
	Values []*Expr
}

// AnonArrayExpr is the `[e, e, ...]` array-ref literal.
type AnonArrayExpr struct {
	Pos      token.Position
	Elements []*Expr
}

// AnonHashExpr is the `{k => v, ...}` hash-ref literal.
type AnonHashExpr struct {
	Pos    token.Position
	Keys   []*Expr
	Values []*Expr
}

// RefExpr is `\$v`, `\@a`, or `\%h`: a reference whose referent kind is
// taken from the operand's sigil (§4.2).
type RefExpr struct {
	Pos          token.Position
	ReferentSigil string
	Target       *Expr
}

// DerefScalarExpr is `$$r`.
type DerefScalarExpr struct {
	Pos token.Position
	Ref *Expr
}

// DerefArrayExpr is `@{$r}`.
type DerefArrayExpr struct {
	Pos token.Position
	Ref *Expr
}

// DerefHashExpr is `%{$r}`.
type DerefHashExpr struct {
	Pos token.Position
	Ref *Expr
}

// DerefToArrayExpr is `$r->[i]`'s target-side deref: dereferencing r to an
// array before subscripting (kept distinct from DerefArrayExpr, which has
// no trailing index, per the §3 invariant that dereference syntax picks
// the kind).
type DerefToArrayExpr struct {
	Pos token.Position
	Ref *Expr
}

// DerefToHashExpr is `$r->{k}`'s target-side deref.
type DerefToHashExpr struct {
	Pos token.Position
	Ref *Expr
}

// SpreadExpr is `...@a`, unpacking an array into positional arguments; only
// meaningful at the final argument slot of a call (§4.4).
type SpreadExpr struct {
	Pos   token.Position
	Array *Expr
}

// FuncLitExpr is an anonymous `func (...) { ... }` closure.
type FuncLitExpr struct {
	Pos    token.Position
	Params []*Param
	Return *Type
	Body   *Block

	// Captures lists enclosing-scope variable names that codegen reads
	// back from the closure's environment at the top of the lifted
	// function. No pass fills it: semantic does not compute captures, so
	// the list stays empty and a lifted closure reads no enclosing
	// variables.
	Captures []string
	// LiftedName is the top-level function name codegen assigns once the
	// closure is lifted out of its enclosing expression.
	LiftedName string
}

// RangeExpr is `lo..hi`, meaningful inside a for/foreach (inclusive integer
// iteration) and meaningless (array construction) elsewhere (§4.4).
type RangeExpr struct {
	Pos  token.Position
	Low  *Expr
	High *Expr
}

// RegexExpr is a `=~ /pattern/flags` (or bare `/pattern/flags`) match.
// pkg/parser builds only the bare form: its grammar has no `=~`/`!~`
// operator, so Target is left nil and Negate false.
type RegexExpr struct {
	Pos     token.Position
	Target  *Expr
	Negate  bool // true for `!~`
	Pattern string
	Flags   string
}

// RegexSubstExpr is `=~ s/pat/repl/flags`, an in-place substitution.
// pkg/parser builds it from a bare `s/pat/repl/flags` only, with Target
// left nil.
type RegexSubstExpr struct {
	Pos         token.Position
	Target      *Expr
	Pattern     string
	Replacement string
	Flags       string
}
