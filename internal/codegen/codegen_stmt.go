package codegen

import (
	"fmt"

	"github.com/aslc/aslc/internal/ast"
	"github.com/aslc/aslc/internal/decoration"
	"github.com/aslc/aslc/internal/types"
)

func (g *funcGen) genStmt(stmt ast.Stmt) decoration.InstructionList {
	switch s := stmt.(type) {
	case *ast.AssignStmt:
		return g.genAssign(s)
	case *ast.IfStmt:
		return g.genIf(s)
	case *ast.WhileStmt:
		return g.genWhile(s)
	case *ast.ProcCallStmt:
		return g.genProcCall(s)
	case *ast.ReadStmt:
		return g.genRead(s)
	case *ast.WriteExprStmt:
		return g.genWriteExpr(s)
	case *ast.WriteStringStmt:
		return g.genWriteString(s)
	case *ast.ReturnStmt:
		return g.genReturn(s)
	}
	return nil
}

func (g *funcGen) genAssign(s *ast.AssignStmt) decoration.InstructionList {
	g.genExpr(s.Value)
	valueAddr := g.addr(s.Value)
	valueTy := g.ctx.Dec.Type(s.Value)

	switch base := s.Left.Base.(type) {
	case *ast.ArrayAccessExpr:
		g.genExpr(base.Ident)
		g.genExpr(base.Index)
		code := decoration.Concat(g.code(base.Ident), g.code(base.Index), g.code(s.Value))
		elemTy := g.ctx.Dec.Type(base)
		if types.IsFloat(elemTy) && !types.IsFloat(valueTy) {
			code, valueAddr = g.coerceToFloat(code, valueAddr, valueTy)
		}
		return code.Append(fmt.Sprintf("XLOAD %s, %s, %s", g.addr(base.Ident), g.addr(base.Index), valueAddr))
	default: // *ast.IdentExpr
		g.genExpr(base)
		code := decoration.Concat(g.code(base), g.code(s.Value))
		lty := g.ctx.Dec.Type(s.Left)
		if types.IsFloat(lty) && !types.IsFloat(valueTy) {
			code, valueAddr = g.coerceToFloat(code, valueAddr, valueTy)
		}
		return code.Append(fmt.Sprintf("LOAD %s, %s", g.addr(base), valueAddr))
	}
}

func (g *funcGen) genIf(s *ast.IfStmt) decoration.InstructionList {
	elseLabel, endifLabel := g.freshIfLabels()

	g.genExpr(s.Cond)
	target := endifLabel
	if s.HasElse {
		target = elseLabel
	}

	code := g.code(s.Cond).Append(fmt.Sprintf("FJUMP %s, %s", g.addr(s.Cond), target))
	for _, st := range s.Then {
		code = decoration.Concat(code, g.genStmt(st))
	}
	if s.HasElse {
		code = code.Append(fmt.Sprintf("UJUMP %s", endifLabel))
		code = code.Append(fmt.Sprintf("LABEL %s", elseLabel))
		for _, st := range s.Else {
			code = decoration.Concat(code, g.genStmt(st))
		}
	}
	code = code.Append(fmt.Sprintf("LABEL %s", endifLabel))
	return code
}

func (g *funcGen) genWhile(s *ast.WhileStmt) decoration.InstructionList {
	whileLabel, endwhileLabel := g.freshWhileLabels()

	code := decoration.InstructionList{}.Append(fmt.Sprintf("LABEL %s", whileLabel))
	g.genExpr(s.Cond)
	code = decoration.Concat(code, g.code(s.Cond)).
		Append(fmt.Sprintf("FJUMP %s, %s", g.addr(s.Cond), endwhileLabel))
	for _, st := range s.Body {
		code = decoration.Concat(code, g.genStmt(st))
	}
	code = code.Append(fmt.Sprintf("UJUMP %s", whileLabel))
	code = code.Append(fmt.Sprintf("LABEL %s", endwhileLabel))
	return code
}

func (g *funcGen) genProcCall(s *ast.ProcCallStmt) decoration.InstructionList {
	code := g.lowerCallArgs(s.Name, s.Args)
	return code.Append("POP")
}

func (g *funcGen) genRead(s *ast.ReadStmt) decoration.InstructionList {
	switch base := s.Target.Base.(type) {
	case *ast.ArrayAccessExpr:
		g.genExpr(base.Ident)
		g.genExpr(base.Index)
		elemTy := g.ctx.Dec.Type(base)
		t := g.freshTemp()
		code := decoration.Concat(g.code(base.Ident), g.code(base.Index)).
			Append(fmt.Sprintf("%s %s", readOpFor(elemTy), t)).
			Append(fmt.Sprintf("XLOAD %s, %s, %s", g.addr(base.Ident), g.addr(base.Index), t))
		return code
	default: // *ast.IdentExpr
		ident := base.(*ast.IdentExpr)
		ty := g.ctx.Dec.Type(ident)
		return decoration.InstructionList{}.Append(fmt.Sprintf("%s %s", readOpFor(ty), ident.Name))
	}
}

func (g *funcGen) genWriteExpr(s *ast.WriteExprStmt) decoration.InstructionList {
	g.genExpr(s.Value)
	ty := g.ctx.Dec.Type(s.Value)
	return g.code(s.Value).Append(fmt.Sprintf("%s %s", writeOpFor(ty), g.addr(s.Value)))
}

// genWriteString scans the literal between quotes, emitting one
// CHLOAD+WRITEC per character, per spec.md section 4.5: `\n` becomes a
// bare WRITELN, `\t`/`\"`/`\\` load the escaped character, and any other
// `\c` treats the backslash as a literal character of its own.
func (g *funcGen) genWriteString(s *ast.WriteStringStmt) decoration.InstructionList {
	var code decoration.InstructionList
	runes := []rune(s.Value)
	for i := 0; i < len(runes); i++ {
		c := runes[i]
		if c == '\\' && i+1 < len(runes) {
			switch runes[i+1] {
			case 'n':
				code = code.Append("WRITELN")
				i++
				continue
			case 't':
				code = g.emitChar(code, '\t')
				i++
				continue
			case '"':
				code = g.emitChar(code, '"')
				i++
				continue
			case '\\':
				code = g.emitChar(code, '\\')
				i++
				continue
			}
		}
		code = g.emitChar(code, c)
	}
	return code
}

func (g *funcGen) emitChar(code decoration.InstructionList, c rune) decoration.InstructionList {
	t := g.freshTemp()
	return code.Append(fmt.Sprintf("CHLOAD %s, '%c'", t, c)).Append(fmt.Sprintf("WRITEC %s", t))
}

func (g *funcGen) genReturn(s *ast.ReturnStmt) decoration.InstructionList {
	if !s.HasValue {
		return decoration.InstructionList{}.Append("RETURN")
	}
	g.genExpr(s.Value)
	valueAddr := g.addr(s.Value)
	vty := g.ctx.Dec.Type(s.Value)

	code := g.code(s.Value)
	if types.IsFloat(g.retTy) && !types.IsFloat(vty) {
		code, valueAddr = g.coerceToFloat(code, valueAddr, vty)
	}
	code = code.Append(fmt.Sprintf("LOAD _result, %s", valueAddr))
	return code.Append("RETURN")
}
