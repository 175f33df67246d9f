// Package symtab implements ASL's SymTable: a stack of lexical scopes
// mapping identifiers to symbols, grounded on the teacher's
// internal/semantic.SymbolTable (Define/Resolve walking an outer
// chain). ASL has no overloading (spec.md Non-goals), so the
// teacher's overload-set bookkeeping is not carried over.
package symtab

import (
	"github.com/aslc/aslc/internal/types"
)

// Kind classifies what a Symbol denotes.
type Kind int

const (
	LocalVar Kind = iota
	Parameter
	Function
)

// Symbol is one binding within a scope.
type Symbol struct {
	Name string
	Kind Kind
	Type types.Type
}

// Scope is one lexical scope: a flat name-to-symbol map plus a link to
// its enclosing scope (nil for $global$).
type Scope struct {
	Name    string
	symbols map[string]*Symbol
	outer   *Scope
}

// Table is the stack of scopes plus the current-function return type,
// per spec.md section 4.2.
type Table struct {
	top          *Scope
	currentFnRet types.Type
}

// New creates an empty SymTable; callers push the $global$ scope
// themselves via PushNewScope("$global$").
func New() *Table {
	return &Table{}
}

// PushNewScope opens a fresh scope on top of the stack and returns it.
func (t *Table) PushNewScope(name string) *Scope {
	s := &Scope{Name: name, symbols: make(map[string]*Symbol), outer: t.top}
	t.top = s
	return s
}

// PushThisScope re-enters a previously created scope (used when a
// function's parameter scope must be resumed after its name is bound
// in the enclosing scope).
func (t *Table) PushThisScope(s *Scope) {
	s.outer = t.top
	t.top = s
}

// PopScope discards the current top scope and returns to its outer
// scope; popping $global$ leaves the stack empty. Popping an empty
// stack is a no-op.
func (t *Table) PopScope() {
	if t.top == nil {
		return
	}
	t.top = t.top.outer
}

// Depth reports how many scopes are currently pushed; used by tests to
// verify the push/pop LIFO invariant of spec.md section 8, property 1.
func (t *Table) Depth() int {
	n := 0
	for s := t.top; s != nil; s = s.outer {
		n++
	}
	return n
}

// Find looks up name directly in s, without consulting its outer chain.
// Used by CodeGenPass to classify an identifier (e.g. "is this name an
// Array parameter of the enclosing function?") against a specific
// scope captured during an earlier pass, long after that scope may
// have been popped off the live Table stack.
func (s *Scope) Find(name string) (*Symbol, bool) {
	sym, ok := s.symbols[name]
	return sym, ok
}

// FindInCurrentScope looks up name only in the top scope.
func (t *Table) FindInCurrentScope(name string) (*Symbol, bool) {
	if t.top == nil {
		return nil, false
	}
	sym, ok := t.top.symbols[name]
	return sym, ok
}

// FindInStack searches from the top scope outward and returns the
// owning scope's depth from the top (0 = current scope), or -1 if not
// found anywhere.
func (t *Table) FindInStack(name string) int {
	depth := 0
	for s := t.top; s != nil; s = s.outer {
		if _, ok := s.symbols[name]; ok {
			return depth
		}
		depth++
	}
	return -1
}

// resolve walks the scope chain and returns the symbol if found.
func (t *Table) resolve(name string) (*Symbol, bool) {
	for s := t.top; s != nil; s = s.outer {
		if sym, ok := s.symbols[name]; ok {
			return sym, true
		}
	}
	return nil, false
}

// addSymbol inserts sym into the current scope unless name is already
// bound there, per spec.md's "duplicates are reported and the second
// binding is ignored" — the caller (SymbolsPass) is responsible for
// checking FindInCurrentScope first and reporting the diagnostic; this
// method enforces "ignored" by silently refusing the second write.
func (t *Table) addSymbol(name string, sym *Symbol) {
	if t.top == nil {
		return
	}
	if _, exists := t.top.symbols[name]; exists {
		return
	}
	t.top.symbols[name] = sym
}

// AddLocalVar, AddParameter, AddFunction bind name in the current
// scope with the given kind and type.
func (t *Table) AddLocalVar(name string, typ types.Type) {
	t.addSymbol(name, &Symbol{Name: name, Kind: LocalVar, Type: typ})
}

func (t *Table) AddParameter(name string, typ types.Type) {
	t.addSymbol(name, &Symbol{Name: name, Kind: Parameter, Type: typ})
}

func (t *Table) AddFunction(name string, typ types.Type) {
	t.addSymbol(name, &Symbol{Name: name, Kind: Function, Type: typ})
}

// GetType returns the type bound to name anywhere in the stack, or nil
// if unbound.
func (t *Table) GetType(name string) types.Type {
	if sym, ok := t.resolve(name); ok {
		return sym.Type
	}
	return nil
}

// Resolve returns the full Symbol for name, searching the whole stack.
func (t *Table) Resolve(name string) (*Symbol, bool) {
	return t.resolve(name)
}

// IsFunctionClass reports whether name resolves to a Function symbol.
func (t *Table) IsFunctionClass(name string) bool {
	sym, ok := t.resolve(name)
	return ok && sym.Kind == Function
}

// IsParameterClass reports whether name resolves to a Parameter symbol.
func (t *Table) IsParameterClass(name string) bool {
	sym, ok := t.resolve(name)
	return ok && sym.Kind == Parameter
}

// SetCurrentFunctionTy / GetCurrentFunctionTy expose the return type of
// the function currently being analysed, consulted by return-statement
// checks (spec.md section 3, "Current-function state").
func (t *Table) SetCurrentFunctionTy(ty types.Type) { t.currentFnRet = ty }
func (t *Table) GetCurrentFunctionTy() types.Type   { return t.currentFnRet }

// NoMainProperlyDeclared reports true unless the given scope (normally
// the $global$ scope, e.g. from decoration.Table.Scope(program)) binds
// "main" to a niladic Void function. Accepting the scope explicitly,
// rather than walking the live stack, lets callers check this after
// the global scope has already been popped.
func (t *Table) NoMainProperlyDeclared(global *Scope) bool {
	if global == nil {
		return true
	}
	sym, ok := global.symbols["main"]
	if !ok || sym.Kind != Function {
		return true
	}
	ft, ok := sym.Type.(*types.FunctionType)
	if !ok {
		return true
	}
	return len(ft.Params) != 0 || !types.IsVoid(ft.Ret)
}
