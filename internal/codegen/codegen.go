// Package codegen implements ASL's CodeGenPass: the third cooperating
// pass (spec.md section 4.5), lowering a type-checked AST into one
// three-address-code subroutine per function. Grounded in shape on the
// teacher's internal/bytecode opcode-table documentation and
// internal/bytecode/disasm.go's textual rendering of an instruction
// stream, adapted from a binary stack-machine encoding to the textual
// TAC form spec.md section 6 specifies.
package codegen

import (
	"fmt"
	"strings"

	"github.com/aslc/aslc/internal/ast"
	"github.com/aslc/aslc/internal/decoration"
	"github.com/aslc/aslc/internal/semantic"
	"github.com/aslc/aslc/internal/symtab"
	"github.com/aslc/aslc/internal/types"
)

// LocalDecl is one (name, size-in-words) local variable record owned by
// a Subroutine.
type LocalDecl struct {
	Name string
	Size uint64
}

// Subroutine is the code generated for one function declaration: its
// name, formal parameter names in source order (with a synthetic
// "_result" prepended for every function but main), its locals, and
// its body instruction list.
type Subroutine struct {
	Name   string
	Params []string
	Locals []LocalDecl
	Body   decoration.InstructionList
}

// Render formats every subroutine as a textual listing, one per
// subroutine, in the style of the teacher's bytecode disassembler.
func Render(subs []*Subroutine) string {
	var sb strings.Builder
	for _, s := range subs {
		fmt.Fprintf(&sb, "sub %s(%s)\n", s.Name, strings.Join(s.Params, ", "))
		for _, l := range s.Locals {
			fmt.Fprintf(&sb, "  local %s, %d\n", l.Name, l.Size)
		}
		for _, ins := range s.Body {
			fmt.Fprintf(&sb, "  %s\n", ins.Text)
		}
	}
	return sb.String()
}

// CodeGenPass is the third pass. Unlike SymbolsPass/TypeCheckPass it
// does not implement semantic.Pass: it produces a value (the list of
// subroutines) rather than only side-effecting the shared Context.
type CodeGenPass struct{}

// Run assumes ctx already carries the decorations TypeCheckPass
// produces; per spec.md section 4.5 it does not re-check the program
// and its behavior on an ill-typed program is unspecified but must not
// panic.
func (CodeGenPass) Run(prog *ast.Program, ctx *semantic.Context) []*Subroutine {
	globalScope := ctx.Dec.Scope(prog)
	subs := make([]*Subroutine, 0, len(prog.Functions))
	for _, fn := range prog.Functions {
		subs = append(subs, genFunction(fn, ctx, globalScope))
	}
	return subs
}

// funcGen holds the per-function state CodeGenPass resets on every
// function entry: temporary/label counters and the scopes needed to
// classify identifiers without re-walking the symbol table stack.
type funcGen struct {
	ctx         *semantic.Context
	fnScope     *symtab.Scope
	globalScope *symtab.Scope
	retTy       types.Type

	tempN   int
	ifN     int
	whileN  int
}

func genFunction(fn *ast.Function, ctx *semantic.Context, globalScope *symtab.Scope) *Subroutine {
	ft, _ := ctx.Dec.Type(fn).(*types.FunctionType)
	retTy := types.Type(types.Void)
	if ft != nil {
		retTy = ft.Ret
	}

	g := &funcGen{
		ctx:         ctx,
		fnScope:     ctx.Dec.Scope(fn),
		globalScope: globalScope,
		retTy:       retTy,
	}

	var params []string
	if fn.Name != "main" {
		params = append(params, "_result")
	}
	for _, p := range fn.Parameters {
		params = append(params, p.Name)
	}

	var locals []LocalDecl
	for _, decl := range fn.Locals {
		size := types.SizeOf(ctx.Dec.Type(decl.Type))
		for _, name := range decl.Names {
			locals = append(locals, LocalDecl{Name: name, Size: size})
		}
	}

	var body decoration.InstructionList
	for _, stmt := range fn.Body {
		body = decoration.Concat(body, g.genStmt(stmt))
	}
	body = body.Append("RETURN")

	return &Subroutine{Name: fn.Name, Params: params, Locals: locals, Body: body}
}

func (g *funcGen) freshTemp() string {
	t := fmt.Sprintf("%%t%d", g.tempN)
	g.tempN++
	return t
}

func (g *funcGen) freshIfLabels() (elseLabel, endifLabel string) {
	n := g.ifN
	g.ifN++
	return fmt.Sprintf("Lelse_%d", n), fmt.Sprintf("Lendif_%d", n)
}

func (g *funcGen) freshWhileLabels() (whileLabel, endwhileLabel string) {
	n := g.whileN
	g.whileN++
	return fmt.Sprintf("Lwhile_%d", n), fmt.Sprintf("Lendwhile_%d", n)
}

func (g *funcGen) code(e ast.Expr) decoration.InstructionList { return g.ctx.Dec.Code(e) }
func (g *funcGen) addr(e ast.Expr) string                     { return g.ctx.Dec.Addr(e) }

func readOpFor(ty types.Type) string {
	switch {
	case types.IsFloat(ty):
		return "READF"
	case types.IsCharacter(ty):
		return "READC"
	default:
		return "READI"
	}
}

func writeOpFor(ty types.Type) string {
	switch {
	case types.IsFloat(ty):
		return "WRITEF"
	case types.IsCharacter(ty):
		return "WRITEC"
	default:
		return "WRITEI"
	}
}

// lookupFunctionType resolves name's signature in the global scope, or
// nil if it is unbound (which should not happen for a program that has
// passed TypeCheckPass without isNotCallable diagnostics).
func (g *funcGen) lookupFunctionType(name string) *types.FunctionType {
	if g.globalScope == nil {
		return nil
	}
	sym, ok := g.globalScope.Find(name)
	if !ok {
		return nil
	}
	ft, _ := sym.Type.(*types.FunctionType)
	return ft
}

// isArrayParam reports whether name is bound, in this function's own
// scope, to an Array-typed parameter.
func (g *funcGen) isArrayParam(name string) bool {
	if g.fnScope == nil {
		return false
	}
	sym, ok := g.fnScope.Find(name)
	return ok && sym.Kind == symtab.Parameter && types.IsArray(sym.Type)
}
