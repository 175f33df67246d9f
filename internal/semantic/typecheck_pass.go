package semantic

import (
	"fmt"

	"github.com/aslc/aslc/internal/ast"
	"github.com/aslc/aslc/internal/semerr"
	"github.com/aslc/aslc/internal/token"
	"github.com/aslc/aslc/internal/types"
)

// TypeCheckPass is the second pass (spec.md section 4.4): a post-order
// walk computing `type` and `isLValue` decorations and emitting
// diagnostics without aborting. On error it decorates the offending
// node with Error to suppress cascading diagnostics in its parents.
type TypeCheckPass struct{}

func (TypeCheckPass) Name() string { return "TypeCheckPass" }

func (tc TypeCheckPass) Run(prog *ast.Program, ctx *Context) {
	global := ctx.Dec.Scope(prog)
	if global != nil {
		ctx.Syms.PushThisScope(global)
	}

	for _, fn := range prog.Functions {
		scope := ctx.Dec.Scope(fn)
		ctx.Syms.PushThisScope(scope)

		retTy := types.Type(types.Void)
		if ft, ok := ctx.Dec.Type(fn).(*types.FunctionType); ok {
			retTy = ft.Ret
		}
		ctx.Syms.SetCurrentFunctionTy(retTy)

		for _, stmt := range fn.Body {
			tc.checkStmt(stmt, ctx)
		}

		ctx.Syms.PopScope()
	}

	if global != nil {
		ctx.Syms.PopScope()
	}

	if ctx.Syms.NoMainProperlyDeclared(global) {
		ctx.Errors.Add(semerr.NoMainProperlyDeclared, token.Position{},
			"program does not properly declare a parameterless, void 'main' function")
	}
}

func (tc TypeCheckPass) checkStmt(stmt ast.Stmt, ctx *Context) {
	switch s := stmt.(type) {
	case *ast.AssignStmt:
		tc.checkAssign(s, ctx)
	case *ast.IfStmt:
		tc.checkIf(s, ctx)
	case *ast.WhileStmt:
		tc.checkWhile(s, ctx)
	case *ast.ProcCallStmt:
		tc.checkProcCall(s, ctx)
	case *ast.ReadStmt:
		tc.checkRead(s, ctx)
	case *ast.WriteExprStmt:
		tc.checkWriteExpr(s, ctx)
	case *ast.WriteStringStmt:
		// no type constraints
	case *ast.ReturnStmt:
		tc.checkReturn(s, ctx)
	}
}

func (tc TypeCheckPass) checkAssign(s *ast.AssignStmt, ctx *Context) {
	tc.checkExpr(s.Left, ctx)
	tc.checkExpr(s.Value, ctx)

	lty := ctx.Dec.Type(s.Left)
	ety := ctx.Dec.Type(s.Value)
	if !types.Copyable(lty, ety) {
		ctx.Errors.Add(semerr.IncompatibleAssignment, s.AssignAt,
			fmt.Sprintf("cannot assign %s to %s", ety, lty))
	}
	if !ctx.Dec.IsLValue(s.Left) {
		ctx.Errors.Add(semerr.NonReferenceableLeftExpr, s.AssignAt,
			"left side of assignment is not a referenceable l-value")
	}
}

func (tc TypeCheckPass) checkIf(s *ast.IfStmt, ctx *Context) {
	tc.checkExpr(s.Cond, ctx)
	tc.requireBoolean(s.Cond, ctx)
	for _, st := range s.Then {
		tc.checkStmt(st, ctx)
	}
	for _, st := range s.Else {
		tc.checkStmt(st, ctx)
	}
}

func (tc TypeCheckPass) checkWhile(s *ast.WhileStmt, ctx *Context) {
	tc.checkExpr(s.Cond, ctx)
	tc.requireBoolean(s.Cond, ctx)
	for _, st := range s.Body {
		tc.checkStmt(st, ctx)
	}
}

func (tc TypeCheckPass) requireBoolean(cond ast.Expr, ctx *Context) {
	ty := ctx.Dec.Type(cond)
	if !types.IsBoolean(ty) && !types.IsError(ty) {
		ctx.Errors.Add(semerr.BooleanRequired, cond.Pos(),
			fmt.Sprintf("condition must be Boolean, got %s", ty))
	}
}

func (tc TypeCheckPass) checkRead(s *ast.ReadStmt, ctx *Context) {
	tc.checkExpr(s.Target, ctx)
	ty := ctx.Dec.Type(s.Target)
	if !types.IsPrimitive(ty) && !types.IsError(ty) {
		ctx.Errors.Add(semerr.ReadWriteRequireBasic, s.ReadPos,
			fmt.Sprintf("read requires a primitive type, got %s", ty))
	}
	if !ctx.Dec.IsLValue(s.Target) {
		ctx.Errors.Add(semerr.NonReferenceableExpression, s.ReadPos,
			"read target is not a referenceable expression")
	}
}

func (tc TypeCheckPass) checkWriteExpr(s *ast.WriteExprStmt, ctx *Context) {
	tc.checkExpr(s.Value, ctx)
	ty := ctx.Dec.Type(s.Value)
	if !types.IsPrimitive(ty) && !types.IsError(ty) {
		ctx.Errors.Add(semerr.ReadWriteRequireBasic, s.WritePos,
			fmt.Sprintf("write requires a primitive type, got %s", ty))
	}
}

func (tc TypeCheckPass) checkReturn(s *ast.ReturnStmt, ctx *Context) {
	retTy := ctx.Syms.GetCurrentFunctionTy()
	isVoid := retTy == nil || types.IsVoid(retTy)

	if s.HasValue {
		tc.checkExpr(s.Value, ctx)
	}

	if isVoid != !s.HasValue {
		ctx.Errors.Add(semerr.IncompatibleReturn, s.ReturnPos,
			"return statement does not match the function's declared return type")
		return
	}
	if s.HasValue {
		exprTy := ctx.Dec.Type(s.Value)
		if !types.Copyable(retTy, exprTy) {
			ctx.Errors.Add(semerr.IncompatibleReturn, s.ReturnPos,
				fmt.Sprintf("cannot return %s from a function returning %s", exprTy, retTy))
		}
	}
}
