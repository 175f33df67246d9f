package symtab

import (
	"testing"

	"github.com/aslc/aslc/internal/types"
)

func TestPushPopLifoInvariant(t *testing.T) {
	st := New()
	st.PushNewScope("$global$")
	if st.Depth() != 1 {
		t.Fatalf("expected depth 1, got %d", st.Depth())
	}
	st.PushNewScope("main")
	if st.Depth() != 2 {
		t.Fatalf("expected depth 2, got %d", st.Depth())
	}
	st.PopScope()
	if st.Depth() != 1 {
		t.Fatalf("expected depth 1 after pop, got %d", st.Depth())
	}
}

func TestDuplicateInCurrentScopeIgnored(t *testing.T) {
	st := New()
	st.PushNewScope("$global$")
	st.AddLocalVar("x", types.Integer)
	st.AddLocalVar("x", types.Float) // should be ignored

	sym, ok := st.FindInCurrentScope("x")
	if !ok {
		t.Fatal("expected x to be found")
	}
	if sym.Type != types.Integer {
		t.Errorf("expected first binding to win, got %s", sym.Type)
	}
}

func TestFindInStackSearchesOuterScopes(t *testing.T) {
	st := New()
	st.PushNewScope("$global$")
	st.AddFunction("f", &types.FunctionType{Params: nil, Ret: types.Void})
	st.PushNewScope("f")
	if depth := st.FindInStack("f"); depth != 1 {
		t.Errorf("expected f to be found one level out, got depth %d", depth)
	}
	if depth := st.FindInStack("nope"); depth != -1 {
		t.Errorf("expected -1 for unbound name, got %d", depth)
	}
}

func TestShadowingInNestedScope(t *testing.T) {
	st := New()
	st.PushNewScope("$global$")
	st.AddLocalVar("x", types.Integer)
	st.PushNewScope("inner")
	st.AddLocalVar("x", types.Boolean)

	sym, _ := st.Resolve("x")
	if sym.Type != types.Boolean {
		t.Errorf("expected inner scope to shadow outer, got %s", sym.Type)
	}
	st.PopScope()
	sym, _ = st.Resolve("x")
	if sym.Type != types.Integer {
		t.Errorf("expected outer binding after pop, got %s", sym.Type)
	}
}

func TestCurrentFunctionType(t *testing.T) {
	st := New()
	st.SetCurrentFunctionTy(types.Integer)
	if st.GetCurrentFunctionTy() != types.Integer {
		t.Errorf("expected Integer, got %s", st.GetCurrentFunctionTy())
	}
}

func TestNoMainProperlyDeclared(t *testing.T) {
	st := New()
	global := st.PushNewScope("$global$")
	if !st.NoMainProperlyDeclared(global) {
		t.Error("expected true when main is absent")
	}

	mainTy := &types.FunctionType{Params: nil, Ret: types.Void}
	st.AddFunction("main", mainTy)
	if st.NoMainProperlyDeclared(global) {
		t.Error("expected false once a zero-arg void main is declared")
	}
}

func TestNoMainWithWrongSignature(t *testing.T) {
	st := New()
	global := st.PushNewScope("$global$")
	badMain := &types.FunctionType{Params: []types.Type{types.Integer}, Ret: types.Void}
	st.AddFunction("main", badMain)
	if !st.NoMainProperlyDeclared(global) {
		t.Error("expected true: main must take zero parameters")
	}
}
