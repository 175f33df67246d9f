// Package decoration implements ASL's TreeDecoration: a side table
// keyed by AST node identity holding the attributes the three passes
// attach to a node {scope, type, isLValue, addr, code}, per spec.md
// section 3 and design note "Side-table decoration vs. intrusive
// fields". Grounded in shape on the teacher's internal/semantic
// PassContext (a shared mutable context threaded through passes), but
// keyed by node pointer rather than folded into a single struct,
// because the spec mandates an explicit side table.
package decoration

import (
	"github.com/aslc/aslc/internal/ast"
	"github.com/aslc/aslc/internal/symtab"
	"github.com/aslc/aslc/internal/types"
)

// Attrs holds every attribute a pass may attach to one node. Not every
// field is meaningful for every node kind; see spec.md section 3.
type Attrs struct {
	Scope    *symtab.Scope
	Type     types.Type
	IsLValue bool
	Addr     string
	Code     InstructionList
}

// Instruction is one line of emitted TAC text: the opcode and its
// operands already rendered into a single string by the codegen package.
type Instruction struct {
	Text string
}

// InstructionList is an append-only ordered sequence of instructions
// with an associative concatenation. Append and Concat build a fresh
// slice holding copies of their inputs and never modify those inputs.
type InstructionList []Instruction

// Append returns a new list with instructions appended in order.
func (l InstructionList) Append(texts ...string) InstructionList {
	out := make(InstructionList, 0, len(l)+len(texts))
	out = append(out, l...)
	for _, t := range texts {
		out = append(out, Instruction{Text: t})
	}
	return out
}

// Concat concatenates any number of instruction lists in order.
func Concat(lists ...InstructionList) InstructionList {
	var total int
	for _, l := range lists {
		total += len(l)
	}
	out := make(InstructionList, 0, total)
	for _, l := range lists {
		out = append(out, l...)
	}
	return out
}

// Table is the node-identity-keyed side table. Each (node, attribute)
// is written at most once by the pass that owns that attribute;
// nothing is ever freed until the AST itself is discarded.
type Table struct {
	attrs map[ast.Node]*Attrs
}

// New creates an empty decoration table.
func New() *Table {
	return &Table{attrs: make(map[ast.Node]*Attrs)}
}

func (t *Table) entry(n ast.Node) *Attrs {
	a, ok := t.attrs[n]
	if !ok {
		a = &Attrs{}
		t.attrs[n] = a
	}
	return a
}

func (t *Table) SetScope(n ast.Node, s *symtab.Scope) { t.entry(n).Scope = s }
func (t *Table) Scope(n ast.Node) *symtab.Scope        { return t.entry(n).Scope }

func (t *Table) SetType(n ast.Node, ty types.Type) { t.entry(n).Type = ty }
func (t *Table) Type(n ast.Node) types.Type         { return t.entry(n).Type }

func (t *Table) SetIsLValue(n ast.Node, v bool) { t.entry(n).IsLValue = v }
func (t *Table) IsLValue(n ast.Node) bool        { return t.entry(n).IsLValue }

func (t *Table) SetAddr(n ast.Node, addr string) { t.entry(n).Addr = addr }
func (t *Table) Addr(n ast.Node) string           { return t.entry(n).Addr }

func (t *Table) SetCode(n ast.Node, code InstructionList) { t.entry(n).Code = code }
func (t *Table) Code(n ast.Node) InstructionList           { return t.entry(n).Code }
