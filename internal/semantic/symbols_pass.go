package semantic

import (
	"fmt"

	"github.com/aslc/aslc/internal/ast"
	"github.com/aslc/aslc/internal/semerr"
	"github.com/aslc/aslc/internal/token"
	"github.com/aslc/aslc/internal/types"
)

// SymbolsPass is the first of the three cooperating passes (spec.md
// section 4.3): it opens scopes, registers declarations, derives
// declared types from the Data sub-tree, and reports duplicate
// identifiers. Grounded on the per-construct split of the teacher's
// internal/semantic/analyze_*.go files, here collapsed into one file
// because the pass itself is small relative to DWScript's.
type SymbolsPass struct{}

func (SymbolsPass) Name() string { return "SymbolsPass" }

func (sp SymbolsPass) Run(prog *ast.Program, ctx *Context) {
	global := ctx.Syms.PushNewScope("$global$")
	ctx.Dec.SetScope(prog, global)

	for _, fn := range prog.Functions {
		sp.visitFunction(fn, ctx)
	}

	ctx.Syms.PopScope() // depth invariant: balances the PushNewScope above
}

func (sp SymbolsPass) visitFunction(fn *ast.Function, ctx *Context) {
	scope := ctx.Syms.PushNewScope(fn.Name)
	ctx.Dec.SetScope(fn, scope)

	paramTypes := make([]types.Type, 0, len(fn.Parameters))
	for _, param := range fn.Parameters {
		paramTy := sp.resolveData(param.Type, ctx)
		if _, dup := ctx.Syms.FindInCurrentScope(param.Name); dup {
			sp.declaredIdent(ctx, param.NamePos, param.Name)
			ctx.Dec.SetType(param, types.ErrorType)
		} else {
			ctx.Syms.AddParameter(param.Name, paramTy)
			ctx.Dec.SetType(param, paramTy)
		}
		paramTypes = append(paramTypes, paramTy)
	}

	for _, decl := range fn.Locals {
		declTy := sp.resolveData(decl.Type, ctx)
		for i, name := range decl.Names {
			if _, dup := ctx.Syms.FindInCurrentScope(name); dup {
				sp.declaredIdent(ctx, decl.NamePos[i], name)
				continue
			}
			ctx.Syms.AddLocalVar(name, declTy)
		}
	}

	retTy := types.Type(types.Void)
	if fn.ReturnType != nil {
		retTy = sp.resolveData(fn.ReturnType, ctx)
	}
	funcTy := ctx.Types.CreateFunction(paramTypes, retTy)

	ctx.Syms.PopScope() // back in the enclosing scope to bind fn.Name

	// The function's computed signature is decorated unconditionally so
	// TypeCheckPass can still check its body even when the name itself
	// is rejected as a duplicate below.
	ctx.Dec.SetType(fn, funcTy)

	if _, dup := ctx.Syms.FindInCurrentScope(fn.Name); dup {
		sp.declaredIdent(ctx, fn.NamePos, fn.Name)
	} else {
		ctx.Syms.AddFunction(fn.Name, funcTy)
	}
}

// resolveData decorates data (a PrimitiveType or ArrayType) with its
// TypesMgr handle and returns that handle.
func (sp SymbolsPass) resolveData(data ast.Data, ctx *Context) types.Type {
	switch d := data.(type) {
	case *ast.PrimitiveType:
		ty := sp.primitiveType(d, ctx)
		ctx.Dec.SetType(d, ty)
		return ty
	case *ast.ArrayType:
		elemTy := sp.primitiveType(d.Elem, ctx)
		ctx.Dec.SetType(d.Elem, elemTy)
		arrTy := ctx.Types.CreateArray(d.Size, elemTy)
		ctx.Dec.SetType(d, arrTy)
		return arrTy
	default:
		return types.ErrorType
	}
}

func (sp SymbolsPass) primitiveType(t *ast.PrimitiveType, ctx *Context) types.Type {
	switch t.Kind {
	case token.INT:
		return ctx.Types.CreateInteger()
	case token.FLOAT:
		return ctx.Types.CreateFloat()
	case token.BOOL:
		return ctx.Types.CreateBoolean()
	case token.CHAR:
		return ctx.Types.CreateCharacter()
	default:
		return types.ErrorType
	}
}

func (sp SymbolsPass) declaredIdent(ctx *Context, pos token.Position, name string) {
	ctx.Errors.Add(semerr.DeclaredIdent, pos, fmt.Sprintf("'%s' is already declared", name))
}
