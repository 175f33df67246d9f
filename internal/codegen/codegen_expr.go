package codegen

import (
	"fmt"

	"github.com/aslc/aslc/internal/ast"
	"github.com/aslc/aslc/internal/decoration"
	"github.com/aslc/aslc/internal/token"
	"github.com/aslc/aslc/internal/types"
)

// genExpr lowers e, leaving its `code` and `addr` decorations set so
// callers can read them back via g.code(e)/g.addr(e). Mirrors
// TypeCheckPass's post-order dispatch shape, one case per concrete
// Expr type.
func (g *funcGen) genExpr(e ast.Expr) {
	switch x := e.(type) {
	case *ast.IdentExpr:
		g.genIdent(x)
	case *ast.ArrayAccessExpr:
		g.genArrayAccess(x)
	case *ast.LeftExpr:
		g.genExpr(x.Base)
		g.set(x, g.code(x.Base), g.addr(x.Base))
	case *ast.UnaryExpr:
		g.genUnary(x)
	case *ast.BinaryExpr:
		g.genBinary(x)
	case *ast.ParenExpr:
		g.genExpr(x.X)
		g.set(x, g.code(x.X), g.addr(x.X))
	case *ast.IntLit:
		t := g.freshTemp()
		g.set(x, decoration.InstructionList{}.Append(fmt.Sprintf("ILOAD %s, %s", t, x.Text)), t)
	case *ast.FloatLit:
		t := g.freshTemp()
		g.set(x, decoration.InstructionList{}.Append(fmt.Sprintf("FLOAD %s, %s", t, x.Text)), t)
	case *ast.CharLit:
		t := g.freshTemp()
		g.set(x, decoration.InstructionList{}.Append(fmt.Sprintf("CHLOAD %s, '%c'", t, x.Value)), t)
	case *ast.BoolLit:
		t := g.freshTemp()
		lit := "0"
		if x.Value {
			lit = "1"
		}
		g.set(x, decoration.InstructionList{}.Append(fmt.Sprintf("ILOAD %s, %s", t, lit)), t)
	case *ast.CallExpr:
		g.genCallExpr(x)
	}
}

func (g *funcGen) set(e ast.Expr, code decoration.InstructionList, addr string) {
	g.ctx.Dec.SetCode(e, code)
	g.ctx.Dec.SetAddr(e, addr)
}

// genIdent: addr is the name itself, except when it names an Array
// parameter of the enclosing function, in which case a LOAD materializes
// the handle into a fresh temporary first.
func (g *funcGen) genIdent(x *ast.IdentExpr) {
	if g.isArrayParam(x.Name) {
		t := g.freshTemp()
		g.set(x, decoration.InstructionList{}.Append(fmt.Sprintf("LOAD %s, %s", t, x.Name)), t)
		return
	}
	g.set(x, nil, x.Name)
}

func (g *funcGen) genArrayAccess(x *ast.ArrayAccessExpr) {
	g.genExpr(x.Ident)
	g.genExpr(x.Index)
	t := g.freshTemp()
	code := decoration.Concat(g.code(x.Ident), g.code(x.Index)).
		Append(fmt.Sprintf("LOADX %s, %s, %s", t, g.addr(x.Ident), g.addr(x.Index)))
	g.set(x, code, t)
}

func (g *funcGen) genUnary(x *ast.UnaryExpr) {
	g.genExpr(x.X)
	switch x.Op {
	case token.PLUS:
		g.set(x, g.code(x.X), g.addr(x.X))
	case token.MINUS:
		op := "NEG"
		if types.IsFloat(g.ctx.Dec.Type(x)) {
			op = "FNEG"
		}
		t := g.freshTemp()
		code := g.code(x.X).Append(fmt.Sprintf("%s %s, %s", op, t, g.addr(x.X)))
		g.set(x, code, t)
	case token.NOT:
		t := g.freshTemp()
		code := g.code(x.X).Append(fmt.Sprintf("NOT %s, %s", t, g.addr(x.X)))
		g.set(x, code, t)
	}
}

func (g *funcGen) genBinary(x *ast.BinaryExpr) {
	g.genExpr(x.X)
	g.genExpr(x.Y)
	switch x.Op {
	case token.PLUS, token.MINUS, token.STAR, token.SLASH:
		g.genArithmetic(x)
	case token.PERCENT:
		g.genModulo(x)
	case token.EQ, token.NEQ, token.LT, token.LE, token.GT, token.GE:
		g.genRelational(x)
	case token.AND, token.OR:
		g.genLogical(x)
	}
}

func arithOpName(k token.Kind, isFloat bool) string {
	switch k {
	case token.PLUS:
		if isFloat {
			return "FADD"
		}
		return "ADD"
	case token.MINUS:
		if isFloat {
			return "FSUB"
		}
		return "SUB"
	case token.STAR:
		if isFloat {
			return "FMUL"
		}
		return "MUL"
	default: // token.SLASH
		if isFloat {
			return "FDIV"
		}
		return "DIV"
	}
}

func (g *funcGen) coerceToFloat(code decoration.InstructionList, addr string, ty types.Type) (decoration.InstructionList, string) {
	if types.IsFloat(ty) {
		return code, addr
	}
	t := g.freshTemp()
	return code.Append(fmt.Sprintf("FLOAT %s, %s", t, addr)), t
}

func (g *funcGen) genArithmetic(x *ast.BinaryExpr) {
	resultTy := g.ctx.Dec.Type(x)
	code := decoration.Concat(g.code(x.X), g.code(x.Y))
	xAddr, yAddr := g.addr(x.X), g.addr(x.Y)

	isFloat := types.IsFloat(resultTy)
	if isFloat {
		code, xAddr = g.coerceToFloat(code, xAddr, g.ctx.Dec.Type(x.X))
		code, yAddr = g.coerceToFloat(code, yAddr, g.ctx.Dec.Type(x.Y))
	}

	t := g.freshTemp()
	code = code.Append(fmt.Sprintf("%s %s, %s, %s", arithOpName(x.Op, isFloat), t, xAddr, yAddr))
	g.set(x, code, t)
}

// genModulo implements Integer `%` as `DIV; MUL; SUB` per spec.md
// section 4.5, since there is no FMOD opcode (modulo is Integer-only).
func (g *funcGen) genModulo(x *ast.BinaryExpr) {
	code := decoration.Concat(g.code(x.X), g.code(x.Y))
	xAddr, yAddr := g.addr(x.X), g.addr(x.Y)

	t1 := g.freshTemp()
	code = code.Append(fmt.Sprintf("DIV %s, %s, %s", t1, xAddr, yAddr))
	t2 := g.freshTemp()
	code = code.Append(fmt.Sprintf("MUL %s, %s, %s", t2, t1, yAddr))
	t3 := g.freshTemp()
	code = code.Append(fmt.Sprintf("SUB %s, %s, %s", t3, xAddr, t2))
	g.set(x, code, t3)
}

func relBaseOp(k token.Kind, isFloat bool) (name string, swap, negate bool) {
	pick := func(i, f string) string {
		if isFloat {
			return f
		}
		return i
	}
	switch k {
	case token.EQ:
		return pick("EQ", "FEQ"), false, false
	case token.NEQ:
		return pick("EQ", "FEQ"), false, true
	case token.LT:
		return pick("LT", "FLT"), false, false
	case token.LE:
		return pick("LE", "FLE"), false, false
	case token.GT:
		return pick("LT", "FLT"), true, false
	default: // token.GE
		return pick("LE", "FLE"), true, false
	}
}

func (g *funcGen) genRelational(x *ast.BinaryExpr) {
	xty, yty := g.ctx.Dec.Type(x.X), g.ctx.Dec.Type(x.Y)
	useFloat := types.IsFloat(xty) || types.IsFloat(yty)

	code := decoration.Concat(g.code(x.X), g.code(x.Y))
	xAddr, yAddr := g.addr(x.X), g.addr(x.Y)
	if useFloat {
		code, xAddr = g.coerceToFloat(code, xAddr, xty)
		code, yAddr = g.coerceToFloat(code, yAddr, yty)
	}

	opName, swap, negate := relBaseOp(x.Op, useFloat)
	a, b := xAddr, yAddr
	if swap {
		a, b = yAddr, xAddr
	}

	t := g.freshTemp()
	code = code.Append(fmt.Sprintf("%s %s, %s, %s", opName, t, a, b))
	if negate {
		t2 := g.freshTemp()
		code = code.Append(fmt.Sprintf("NOT %s, %s", t2, t))
		t = t2
	}
	g.set(x, code, t)
}

func (g *funcGen) genLogical(x *ast.BinaryExpr) {
	opName := "AND"
	if x.Op == token.OR {
		opName = "OR"
	}
	t := g.freshTemp()
	code := decoration.Concat(g.code(x.X), g.code(x.Y)).
		Append(fmt.Sprintf("%s %s, %s, %s", opName, t, g.addr(x.X), g.addr(x.Y)))
	g.set(x, code, t)
}

// lowerCallArgs emits the shared PUSH/args/CALL/POPs sequence common to
// ProcCall and Funcid; the caller appends the final POP (discarded or
// captured into a fresh temporary) per spec.md section 4.5.
func (g *funcGen) lowerCallArgs(name string, args []ast.Expr) decoration.InstructionList {
	funcTy := g.lookupFunctionType(name)

	code := decoration.InstructionList{}.Append("PUSH")
	for i, a := range args {
		g.genExpr(a)
		code = decoration.Concat(code, g.code(a))
		addr := g.addr(a)
		argTy := g.ctx.Dec.Type(a)

		switch {
		case types.IsArray(argTy):
			t := g.freshTemp()
			code = code.Append(fmt.Sprintf("ALOAD %s, %s", t, addr))
			addr = t
		case funcTy != nil && i < len(funcTy.Params) && types.IsFloat(funcTy.Params[i]) && !types.IsFloat(argTy):
			t := g.freshTemp()
			code = code.Append(fmt.Sprintf("FLOAT %s, %s", t, addr))
			addr = t
		}
		code = code.Append(fmt.Sprintf("PUSH %s", addr))
	}
	code = code.Append(fmt.Sprintf("CALL %s", name))
	for range args {
		code = code.Append("POP")
	}
	return code
}

func (g *funcGen) genCallExpr(x *ast.CallExpr) {
	code := g.lowerCallArgs(x.Name, x.Args)
	t := g.freshTemp()
	code = code.Append(fmt.Sprintf("POP %s", t))
	g.set(x, code, t)
}
