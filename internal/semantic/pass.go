// Package semantic implements ASL's SymbolsPass and TypeCheckPass: the
// two tree-walking passes of spec.md sections 4.3-4.4, grounded on the
// teacher's internal/semantic.Pass interface (Name/Run over a shared
// context) and its per-construct analyze_*.go file split.
package semantic

import (
	"github.com/aslc/aslc/internal/ast"
	"github.com/aslc/aslc/internal/decoration"
	"github.com/aslc/aslc/internal/semerr"
	"github.com/aslc/aslc/internal/symtab"
	"github.com/aslc/aslc/internal/types"
)

// Pass is one semantic analysis pass over a Program. Implementations
// read decorations set by earlier passes and write their own; they
// never abort on a semantic error, only record it in ctx.Errors.
type Pass interface {
	Name() string
	Run(prog *ast.Program, ctx *Context)
}

// Context is the shared state threaded through SymbolsPass and
// TypeCheckPass: the type manager, the symbol table, the decoration
// side table and the diagnostic accumulator. Passing it explicitly
// (rather than mutable globals on a symbol table) follows design note
// "Implicit walker state" in spec.md section 9.
type Context struct {
	Types  *types.Mgr
	Syms   *symtab.Table
	Dec    *decoration.Table
	Errors *semerr.List
}

// NewContext wires up a fresh, empty Context ready for a compilation.
func NewContext() *Context {
	return &Context{
		Types:  types.NewMgr(),
		Syms:   symtab.New(),
		Dec:    decoration.New(),
		Errors: semerr.New(),
	}
}

// Manager runs a fixed sequence of passes over a Program in order.
type Manager struct {
	passes []Pass
}

// NewManager creates a Manager that will run passes in the given order.
func NewManager(passes ...Pass) *Manager {
	return &Manager{passes: passes}
}

// RunAll runs every registered pass in order over prog.
func (m *Manager) RunAll(prog *ast.Program, ctx *Context) {
	for _, p := range m.passes {
		p.Run(prog, ctx)
	}
}
