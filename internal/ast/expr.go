package ast

import "github.com/aslc/aslc/internal/token"

// IdentExpr is a bare identifier reference.
type IdentExpr struct {
	Name    string
	NamePos token.Position
}

func (e *IdentExpr) Pos() token.Position { return e.NamePos }
func (*IdentExpr) exprNode()             {}

// ArrayAccessExpr is `ident [ expr ]`.
type ArrayAccessExpr struct {
	Ident *IdentExpr
	Index Expr
	LBPos token.Position
}

func (e *ArrayAccessExpr) Pos() token.Position { return e.Ident.Pos() }
func (*ArrayAccessExpr) exprNode()             {}

// LeftExpr wraps an IdentExpr or ArrayAccessExpr used in an l-value
// position (assignment target, read target). It inherits the type and
// isLValue decoration of the wrapped expression.
type LeftExpr struct {
	Base Expr // *IdentExpr or *ArrayAccessExpr
}

func (e *LeftExpr) Pos() token.Position { return e.Base.Pos() }
func (*LeftExpr) exprNode()             {}

// UnaryExpr is `not e`, `+e` or `-e`.
type UnaryExpr struct {
	Op    token.Kind
	OpPos token.Position
	X     Expr
}

func (e *UnaryExpr) Pos() token.Position { return e.OpPos }
func (*UnaryExpr) exprNode()             {}

// BinaryExpr covers arithmetic, relational and logical binary operators.
type BinaryExpr struct {
	Op    token.Kind
	OpPos token.Position
	X, Y  Expr
}

func (e *BinaryExpr) Pos() token.Position { return e.X.Pos() }
func (*BinaryExpr) exprNode()             {}

// ParenExpr is `( expr )`; it passes through type and isLValue.
type ParenExpr struct {
	X      Expr
	LParen token.Position
}

func (e *ParenExpr) Pos() token.Position { return e.LParen }
func (*ParenExpr) exprNode()             {}

// IntLit is an INTVAL literal.
type IntLit struct {
	Text    string
	LitPos  token.Position
}

func (e *IntLit) Pos() token.Position { return e.LitPos }
func (*IntLit) exprNode()             {}

// FloatLit is a FLOATVAL literal.
type FloatLit struct {
	Text   string
	LitPos token.Position
}

func (e *FloatLit) Pos() token.Position { return e.LitPos }
func (*FloatLit) exprNode()             {}

// CharLit is a CHARVAL literal.
type CharLit struct {
	Value  rune
	LitPos token.Position
}

func (e *CharLit) Pos() token.Position { return e.LitPos }
func (*CharLit) exprNode()             {}

// BoolLit is `true` or `false`.
type BoolLit struct {
	Value  bool
	LitPos token.Position
}

func (e *BoolLit) Pos() token.Position { return e.LitPos }
func (*BoolLit) exprNode()             {}

// CallExpr is `ident ( exprs? )` used in expression position (Funcid);
// the same shape is reused as a statement via ProcCallStmt.
type CallExpr struct {
	Name    string
	NamePos token.Position
	Args    []Expr
}

func (e *CallExpr) Pos() token.Position { return e.NamePos }
func (*CallExpr) exprNode()             {}
