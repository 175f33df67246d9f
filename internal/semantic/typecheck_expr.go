package semantic

import (
	"fmt"

	"github.com/aslc/aslc/internal/ast"
	"github.com/aslc/aslc/internal/semerr"
	"github.com/aslc/aslc/internal/symtab"
	"github.com/aslc/aslc/internal/token"
	"github.com/aslc/aslc/internal/types"
)

// checkExpr is a post-order dispatch over every concrete Expr type: it
// recurses into children first, then decorates the node itself with
// `type` and `isLValue`, exactly the shape spec.md section 4.4
// describes for TypeCheckPass.
func (tc TypeCheckPass) checkExpr(e ast.Expr, ctx *Context) {
	switch x := e.(type) {
	case *ast.IdentExpr:
		tc.checkIdent(x, ctx)
	case *ast.ArrayAccessExpr:
		tc.checkArrayAccess(x, ctx)
	case *ast.LeftExpr:
		tc.checkExpr(x.Base, ctx)
		ctx.Dec.SetType(x, ctx.Dec.Type(x.Base))
		ctx.Dec.SetIsLValue(x, ctx.Dec.IsLValue(x.Base))
	case *ast.UnaryExpr:
		tc.checkUnary(x, ctx)
	case *ast.BinaryExpr:
		tc.checkBinary(x, ctx)
	case *ast.ParenExpr:
		tc.checkExpr(x.X, ctx)
		ctx.Dec.SetType(x, ctx.Dec.Type(x.X))
		ctx.Dec.SetIsLValue(x, ctx.Dec.IsLValue(x.X))
	case *ast.IntLit:
		ctx.Dec.SetType(x, types.Integer)
		ctx.Dec.SetIsLValue(x, false)
	case *ast.FloatLit:
		ctx.Dec.SetType(x, types.Float)
		ctx.Dec.SetIsLValue(x, false)
	case *ast.CharLit:
		ctx.Dec.SetType(x, types.Character)
		ctx.Dec.SetIsLValue(x, false)
	case *ast.BoolLit:
		ctx.Dec.SetType(x, types.Boolean)
		ctx.Dec.SetIsLValue(x, false)
	case *ast.CallExpr:
		tc.checkCallExpr(x, ctx)
	}
}

func (tc TypeCheckPass) checkIdent(x *ast.IdentExpr, ctx *Context) {
	sym, ok := ctx.Syms.Resolve(x.Name)
	if !ok {
		ctx.Errors.Add(semerr.UndeclaredIdent, x.NamePos,
			fmt.Sprintf("'%s' is not declared", x.Name))
		ctx.Dec.SetType(x, types.ErrorType)
		ctx.Dec.SetIsLValue(x, true)
		return
	}
	ctx.Dec.SetType(x, sym.Type)
	ctx.Dec.SetIsLValue(x, sym.Kind != symtab.Function)
}

func (tc TypeCheckPass) checkArrayAccess(x *ast.ArrayAccessExpr, ctx *Context) {
	tc.checkIdent(x.Ident, ctx)
	tc.checkExpr(x.Index, ctx)

	arrTy := ctx.Dec.Type(x.Ident)
	idxTy := ctx.Dec.Type(x.Index)

	if !types.IsArray(arrTy) && !types.IsError(arrTy) {
		ctx.Errors.Add(semerr.NonArrayInArrayAccess, x.Ident.Pos(),
			fmt.Sprintf("'%s' is not an array", x.Ident.Name))
	}
	if !types.IsInteger(idxTy) && !types.IsError(idxTy) {
		ctx.Errors.Add(semerr.NonIntegerIndexInArrayAccess, x.Index.Pos(),
			fmt.Sprintf("array index must be Integer, got %s", idxTy))
	}

	if types.IsArray(arrTy) {
		ctx.Dec.SetType(x, types.ElemType(arrTy))
	} else {
		ctx.Dec.SetType(x, types.ErrorType)
	}
	ctx.Dec.SetIsLValue(x, ctx.Dec.IsLValue(x.Ident))
}

func (tc TypeCheckPass) checkUnary(x *ast.UnaryExpr, ctx *Context) {
	tc.checkExpr(x.X, ctx)
	xty := ctx.Dec.Type(x.X)

	if x.Op == token.NOT {
		if !types.IsBoolean(xty) && !types.IsError(xty) {
			ctx.Errors.Add(semerr.IncompatibleOperator, x.OpPos,
				fmt.Sprintf("'not' requires a Boolean operand, got %s", xty))
		}
	} else { // PLUS, MINUS
		if !types.IsNumeric(xty) && !types.IsError(xty) {
			ctx.Errors.Add(semerr.IncompatibleOperator, x.OpPos,
				fmt.Sprintf("unary %s requires a numeric operand, got %s", x.Op, xty))
		}
	}
	ctx.Dec.SetType(x, xty)
	ctx.Dec.SetIsLValue(x, false)
}

func (tc TypeCheckPass) checkBinary(x *ast.BinaryExpr, ctx *Context) {
	tc.checkExpr(x.X, ctx)
	tc.checkExpr(x.Y, ctx)
	xty := ctx.Dec.Type(x.X)
	yty := ctx.Dec.Type(x.Y)

	switch x.Op {
	case token.PLUS, token.MINUS, token.STAR, token.SLASH:
		tc.checkArithmetic(x, xty, yty, ctx)
	case token.PERCENT:
		tc.checkModulo(x, xty, yty, ctx)
	case token.EQ, token.NEQ, token.LT, token.LE, token.GT, token.GE:
		tc.checkRelational(x, xty, yty, ctx)
	case token.AND, token.OR:
		tc.checkLogical(x, xty, yty, ctx)
	default:
		ctx.Dec.SetType(x, types.ErrorType)
	}
	ctx.Dec.SetIsLValue(x, false)
}

func (tc TypeCheckPass) checkArithmetic(x *ast.BinaryExpr, xty, yty types.Type, ctx *Context) {
	if (!types.IsNumeric(xty) && !types.IsError(xty)) || (!types.IsNumeric(yty) && !types.IsError(yty)) {
		ctx.Errors.Add(semerr.IncompatibleOperator, x.OpPos,
			fmt.Sprintf("operator %s requires numeric operands, got %s and %s", x.Op, xty, yty))
	}
	if types.IsFloat(xty) || types.IsFloat(yty) {
		ctx.Dec.SetType(x, types.Float)
	} else {
		ctx.Dec.SetType(x, types.Integer)
	}
}

func (tc TypeCheckPass) checkModulo(x *ast.BinaryExpr, xty, yty types.Type, ctx *Context) {
	xok := types.IsInteger(xty) || types.IsError(xty)
	yok := types.IsInteger(yty) || types.IsError(yty)
	if !xok || !yok {
		ctx.Errors.Add(semerr.IncompatibleOperator, x.OpPos,
			fmt.Sprintf("operator %% requires Integer operands, got %s and %s", xty, yty))
	}
	ctx.Dec.SetType(x, types.Integer)
}

func (tc TypeCheckPass) checkRelational(x *ast.BinaryExpr, xty, yty types.Type, ctx *Context) {
	if !types.Comparable(xty, yty, relOpOf(x.Op)) {
		ctx.Errors.Add(semerr.IncompatibleOperator, x.OpPos,
			fmt.Sprintf("operator %s is not defined between %s and %s", x.Op, xty, yty))
	}
	ctx.Dec.SetType(x, types.Boolean)
}

func relOpOf(k token.Kind) types.RelOp {
	switch k {
	case token.EQ:
		return types.OpEQ
	case token.NEQ:
		return types.OpNEQ
	case token.LT:
		return types.OpLT
	case token.LE:
		return types.OpLE
	case token.GT:
		return types.OpGT
	default:
		return types.OpGE
	}
}

func (tc TypeCheckPass) checkLogical(x *ast.BinaryExpr, xty, yty types.Type, ctx *Context) {
	if (!types.IsBoolean(xty) && !types.IsError(xty)) || (!types.IsBoolean(yty) && !types.IsError(yty)) {
		ctx.Errors.Add(semerr.IncompatibleOperator, x.OpPos,
			fmt.Sprintf("operator %s requires Boolean operands, got %s and %s", x.Op, xty, yty))
	}
	ctx.Dec.SetType(x, types.Boolean)
}

// resolveCallee looks up name as a Function symbol, reporting
// isNotCallable if it is unbound or bound to something else.
func (tc TypeCheckPass) resolveCallee(name string, pos token.Position, ctx *Context) (*types.FunctionType, bool) {
	sym, ok := ctx.Syms.Resolve(name)
	if !ok || sym.Kind != symtab.Function {
		ctx.Errors.Add(semerr.IsNotCallable, pos, fmt.Sprintf("'%s' is not callable", name))
		return nil, false
	}
	ft, ok := sym.Type.(*types.FunctionType)
	if !ok {
		ctx.Errors.Add(semerr.IsNotCallable, pos, fmt.Sprintf("'%s' is not callable", name))
		return nil, false
	}
	return ft, true
}

// checkArgs type-checks every argument expression (so each still gets a
// decoration regardless of whether the callee resolved) and, when ft is
// non-nil, validates arity and per-argument copyability.
func (tc TypeCheckPass) checkArgs(args []ast.Expr, ft *types.FunctionType, pos token.Position, ctx *Context) {
	for _, a := range args {
		tc.checkExpr(a, ctx)
	}
	if ft == nil {
		return
	}
	if len(args) != len(ft.Params) {
		ctx.Errors.Add(semerr.NumberOfParameters, pos,
			fmt.Sprintf("expected %d argument(s), got %d", len(ft.Params), len(args)))
		return
	}
	for i, a := range args {
		argTy := ctx.Dec.Type(a)
		if !types.Copyable(ft.Params[i], argTy) {
			ctx.Errors.Add(semerr.IncompatibleParameter, a.Pos(),
				fmt.Sprintf("argument %d: cannot pass %s as %s", i+1, argTy, ft.Params[i]))
		}
	}
}

func (tc TypeCheckPass) checkProcCall(s *ast.ProcCallStmt, ctx *Context) {
	ft, ok := tc.resolveCallee(s.Name, s.NamePos, ctx)
	tc.checkArgs(s.Args, ft, s.NamePos, ctx)
	if !ok {
		return
	}
	_ = ft // ProcCallStmt discards the result; Void or not, both are legal as a statement.
}

func (tc TypeCheckPass) checkCallExpr(x *ast.CallExpr, ctx *Context) {
	ft, ok := tc.resolveCallee(x.Name, x.NamePos, ctx)
	tc.checkArgs(x.Args, ft, x.NamePos, ctx)
	if !ok {
		ctx.Dec.SetType(x, types.ErrorType)
		ctx.Dec.SetIsLValue(x, false)
		return
	}
	if types.IsVoid(ft.Ret) {
		ctx.Errors.Add(semerr.IsNotFunction, x.NamePos,
			fmt.Sprintf("'%s' does not return a value", x.Name))
		ctx.Dec.SetType(x, types.ErrorType)
		ctx.Dec.SetIsLValue(x, false)
		return
	}
	ctx.Dec.SetType(x, ft.Ret)
	ctx.Dec.SetIsLValue(x, false)
}
