// Package ast defines the abstract syntax tree for ASL programs, as
// tagged-union node types rather than a listener/visitor class
// hierarchy: each grammar alternative from spec.md section 6 is its
// own Go struct implementing a small marker interface, and passes
// dispatch over it with an exhaustive type switch.
package ast

import "github.com/aslc/aslc/internal/token"

// Node is implemented by every AST node; it exposes the source
// position used for diagnostics.
type Node interface {
	Pos() token.Position
}

// Data is the type-annotation sub-tree of a declaration: either a
// primitive Type or an Array. Corresponds to the grammar's `data`.
type Data interface {
	Node
	dataNode()
}

// Stmt is implemented by every statement node.
type Stmt interface {
	Node
	stmtNode()
}

// Expr is implemented by every expression node.
type Expr interface {
	Node
	exprNode()
}

// Program is the root node: a sequence of function declarations.
type Program struct {
	Functions []*Function
}

func (p *Program) Pos() token.Position {
	if len(p.Functions) == 0 {
		return token.Position{}
	}
	return p.Functions[0].Pos()
}

// Function is a `func name(params) : rettype decls stmts endfunc` block.
type Function struct {
	Name       string
	NamePos    token.Position
	Parameters []*Parameter
	ReturnType Data // nil when the function declares no return type (Void)
	Locals     []*VariableDecl
	Body       []Stmt
	FuncPos    token.Position
}

func (f *Function) Pos() token.Position { return f.FuncPos }

// Parameter is a single `id : data` formal parameter.
type Parameter struct {
	Name    string
	NamePos token.Position
	Type    Data
}

func (p *Parameter) Pos() token.Position { return p.NamePos }

// VariableDecl is `var id_1,...,id_k : data`.
type VariableDecl struct {
	Names   []string
	NamePos []token.Position
	Type    Data
	VarPos  token.Position
}

func (v *VariableDecl) Pos() token.Position { return v.VarPos }

// PrimitiveType is one of int|float|bool|char.
type PrimitiveType struct {
	Kind    token.Kind // token.INT, token.FLOAT, token.BOOL, token.CHAR
	TypePos token.Position
}

func (t *PrimitiveType) Pos() token.Position { return t.TypePos }
func (*PrimitiveType) dataNode()             {}

// ArrayType is `array [ n ] of type`.
type ArrayType struct {
	Size     uint64
	SizeText string
	Elem     *PrimitiveType
	ArrPos   token.Position
}

func (t *ArrayType) Pos() token.Position { return t.ArrPos }
func (*ArrayType) dataNode()             {}
