package semantic

import (
	"testing"

	"github.com/aslc/aslc/internal/ast"
	"github.com/aslc/aslc/internal/lexer"
	"github.com/aslc/aslc/internal/parser"
	"github.com/aslc/aslc/internal/types"
)

func parseOK(t *testing.T, src string) *ast.Program {
	t.Helper()
	p := parser.New(lexer.New(src))
	prog := p.ParseProgram()
	if len(p.Errors()) != 0 {
		t.Fatalf("unexpected parse errors: %v", p.Errors())
	}
	return prog
}

func TestSymbolsPassRegistersMainAndLocals(t *testing.T) {
	prog := parseOK(t, `func main()
var x:int
x=3;
endfunc`)

	ctx := NewContext()
	SymbolsPass{}.Run(prog, ctx)

	if ctx.Errors.HasErrors() {
		t.Fatalf("unexpected errors: %v", ctx.Errors.All())
	}
	if ctx.Syms.NoMainProperlyDeclared(ctx.Dec.Scope(prog)) {
		t.Fatalf("expected main to be properly declared")
	}
}

func TestSymbolsPassDuplicateLocal(t *testing.T) {
	prog := parseOK(t, `func main()
var x:int
var x:float
endfunc`)

	ctx := NewContext()
	SymbolsPass{}.Run(prog, ctx)

	errs := ctx.Errors.All()
	if len(errs) != 1 {
		t.Fatalf("expected exactly 1 diagnostic, got %d: %v", len(errs), errs)
	}
	if errs[0].Kind != "declaredIdent" {
		t.Errorf("expected declaredIdent, got %s", errs[0].Kind)
	}
}

func TestSymbolsPassDuplicateFunction(t *testing.T) {
	prog := parseOK(t, `func f()
endfunc
func f()
endfunc
func main()
endfunc`)

	ctx := NewContext()
	SymbolsPass{}.Run(prog, ctx)

	errs := ctx.Errors.All()
	if len(errs) != 1 {
		t.Fatalf("expected exactly 1 diagnostic, got %d: %v", len(errs), errs)
	}
}

func TestSymbolsPassNoMain(t *testing.T) {
	prog := parseOK(t, `func foo()
endfunc`)

	ctx := NewContext()
	SymbolsPass{}.Run(prog, ctx)

	if !ctx.Syms.NoMainProperlyDeclared(ctx.Dec.Scope(prog)) {
		t.Fatal("expected noMainProperlyDeclared to be true")
	}
}

func TestSymbolsPassScopeStackBalanced(t *testing.T) {
	prog := parseOK(t, `func f(x:int):int
return x;
endfunc
func main()
var y:int
endfunc`)

	ctx := NewContext()
	SymbolsPass{}.Run(prog, ctx)

	if ctx.Syms.Depth() != 0 {
		t.Fatalf("expected scope stack to be balanced (depth 0), got %d", ctx.Syms.Depth())
	}
}

func TestSymbolsPassParameterAndArrayTypes(t *testing.T) {
	prog := parseOK(t, `func f(a:array[4] of int):int
return 1;
endfunc`)

	ctx := NewContext()
	SymbolsPass{}.Run(prog, ctx)

	fn := prog.Functions[0]
	paramTy := ctx.Dec.Type(fn.Parameters[0])
	if !types.IsArray(paramTy) {
		t.Fatalf("expected array type for parameter, got %s", paramTy)
	}
	if types.ElemType(paramTy) != types.Integer {
		t.Errorf("expected element type Integer, got %s", types.ElemType(paramTy))
	}
}
