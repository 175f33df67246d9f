package semantic

import (
	"testing"

	"github.com/aslc/aslc/internal/ast"
	"github.com/aslc/aslc/internal/types"
)

func runBoth(t *testing.T, src string) *Context {
	t.Helper()
	prog := parseOK(t, src)
	ctx := NewContext()
	SymbolsPass{}.Run(prog, ctx)
	TypeCheckPass{}.Run(prog, ctx)
	return ctx
}

func TestTypeCheckAssignIntegerToFloatWidens(t *testing.T) {
	ctx := runBoth(t, `func main()
var x:float
x=3;
endfunc`)
	if ctx.Errors.HasErrors() {
		t.Fatalf("unexpected errors: %v", ctx.Errors.All())
	}
}

func TestTypeCheckIncompatibleAssignment(t *testing.T) {
	ctx := runBoth(t, `func main()
var x:bool
x=3;
endfunc`)
	errs := ctx.Errors.All()
	if len(errs) != 1 || errs[0].Kind != "incompatibleAssignment" {
		t.Fatalf("expected a single incompatibleAssignment diagnostic, got %v", errs)
	}
}

func TestTypeCheckUndeclaredIdent(t *testing.T) {
	ctx := runBoth(t, `func main()
x=3;
endfunc`)
	errs := ctx.Errors.All()
	if len(errs) != 1 || errs[0].Kind != "undeclaredIdent" {
		t.Fatalf("expected a single undeclaredIdent diagnostic, got %v", errs)
	}
}

func TestTypeCheckArithmeticResultIsFloatWhenEitherOperandIs(t *testing.T) {
	prog := parseOK(t, `func main()
var x:float
var y:int
var z:float
z=y+x;
endfunc`)
	ctx := NewContext()
	SymbolsPass{}.Run(prog, ctx)
	TypeCheckPass{}.Run(prog, ctx)
	if ctx.Errors.HasErrors() {
		t.Fatalf("unexpected errors: %v", ctx.Errors.All())
	}

	fn := prog.Functions[0]
	assign := fn.Body[len(fn.Body)-1].(*ast.AssignStmt)
	if ctx.Dec.Type(assign.Value) != types.Float {
		t.Errorf("expected y+x to be Float, got %s", ctx.Dec.Type(assign.Value))
	}
}

func TestTypeCheckModuloRequiresIntegerOperands(t *testing.T) {
	ctx := runBoth(t, `func main()
var x:float
var y:int
y=x%y;
endfunc`)
	errs := ctx.Errors.All()
	if len(errs) != 1 || errs[0].Kind != "incompatibleOperator" {
		t.Fatalf("expected a single incompatibleOperator diagnostic, got %v", errs)
	}
}

func TestTypeCheckBooleanRequiredInIf(t *testing.T) {
	ctx := runBoth(t, `func main()
var x:int
if x then
x=1;
endif
endfunc`)
	errs := ctx.Errors.All()
	if len(errs) != 1 || errs[0].Kind != "booleanRequired" {
		t.Fatalf("expected a single booleanRequired diagnostic, got %v", errs)
	}
}

func TestTypeCheckArrayAccessOnNonArray(t *testing.T) {
	ctx := runBoth(t, `func main()
var x:int
var y:int
y=x[0];
endfunc`)
	errs := ctx.Errors.All()
	found := false
	for _, e := range errs {
		if e.Kind == "nonArrayInArrayAccess" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected nonArrayInArrayAccess, got %v", errs)
	}
}

func TestTypeCheckNonIntegerIndex(t *testing.T) {
	ctx := runBoth(t, `func main()
var a:array[4] of int
var b:bool
var x:int
x=a[b];
endfunc`)
	errs := ctx.Errors.All()
	found := false
	for _, e := range errs {
		if e.Kind == "nonIntegerIndexInArrayAccess" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected nonIntegerIndexInArrayAccess, got %v", errs)
	}
}

func TestTypeCheckCallNumberOfParameters(t *testing.T) {
	ctx := runBoth(t, `func f(a:int):int
return a;
endfunc
func main()
f();
endfunc`)
	errs := ctx.Errors.All()
	if len(errs) != 1 || errs[0].Kind != "numberOfParameters" {
		t.Fatalf("expected a single numberOfParameters diagnostic, got %v", errs)
	}
}

func TestTypeCheckCallIncompatibleParameter(t *testing.T) {
	ctx := runBoth(t, `func f(a:int):int
return a;
endfunc
func main()
var b:bool
f(b);
endfunc`)
	errs := ctx.Errors.All()
	if len(errs) != 1 || errs[0].Kind != "incompatibleParameter" {
		t.Fatalf("expected a single incompatibleParameter diagnostic, got %v", errs)
	}
}

func TestTypeCheckIsNotCallable(t *testing.T) {
	ctx := runBoth(t, `func main()
var f:int
f();
endfunc`)
	errs := ctx.Errors.All()
	found := false
	for _, e := range errs {
		if e.Kind == "isNotCallable" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected isNotCallable, got %v", errs)
	}
}

func TestTypeCheckIsNotFunctionOnVoidCallUsedAsValue(t *testing.T) {
	ctx := runBoth(t, `func f()
endfunc
func main()
var x:int
x=f();
endfunc`)
	errs := ctx.Errors.All()
	found := false
	for _, e := range errs {
		if e.Kind == "isNotFunction" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected isNotFunction, got %v", errs)
	}
}

func TestTypeCheckReturnMismatch(t *testing.T) {
	ctx := runBoth(t, `func f():int
return;
endfunc
func main()
endfunc`)
	errs := ctx.Errors.All()
	if len(errs) != 1 || errs[0].Kind != "incompatibleReturn" {
		t.Fatalf("expected a single incompatibleReturn diagnostic, got %v", errs)
	}
}

func TestTypeCheckReadIntoReferenceableVariableAccepted(t *testing.T) {
	ctx := runBoth(t, `func main()
var x:int
read x;
endfunc`)
	if ctx.Errors.HasErrors() {
		t.Fatalf("unexpected errors: %v", ctx.Errors.All())
	}
}

func TestTypeCheckNoErrorsOnWellTypedProgram(t *testing.T) {
	ctx := runBoth(t, `func add(a:int, b:int):int
return a+b;
endfunc
func main()
var x:int
var y:int
var z:int
x=1;
y=2;
z=add(x,y);
write z;
endfunc`)
	if ctx.Errors.HasErrors() {
		t.Fatalf("unexpected errors: %v", ctx.Errors.All())
	}
}
