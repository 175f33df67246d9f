// Package semerr implements ASL's SemErrors: accumulation and
// rendering of semantic diagnostics with source locations, grounded on
// the teacher's internal/semantic.SemanticError (a typed error struct
// with a Pos and canonical message) and internal/errors.CompilerError
// (header + source-line + caret rendering).
package semerr

import (
	"fmt"
	"sort"
	"strings"

	"github.com/aslc/aslc/internal/token"
)

// Kind names one of the diagnostic kinds spec.md section 6 lists.
type Kind string

const (
	DeclaredIdent               Kind = "declaredIdent"
	UndeclaredIdent             Kind = "undeclaredIdent"
	IncompatibleOperator        Kind = "incompatibleOperator"
	IncompatibleAssignment      Kind = "incompatibleAssignment"
	NonReferenceableLeftExpr    Kind = "nonReferenceableLeftExpr"
	NonReferenceableExpression  Kind = "nonReferenceableExpression"
	BooleanRequired             Kind = "booleanRequired"
	ReadWriteRequireBasic       Kind = "readWriteRequireBasic"
	IsNotCallable                Kind = "isNotCallable"
	IsNotFunction                Kind = "isNotFunction"
	NumberOfParameters           Kind = "numberOfParameters"
	IncompatibleParameter        Kind = "incompatibleParameter"
	IncompatibleReturn           Kind = "incompatibleReturn"
	NonArrayInArrayAccess        Kind = "nonArrayInArrayAccess"
	NonIntegerIndexInArrayAccess Kind = "nonIntegerIndexInArrayAccess"
	NoMainProperlyDeclared       Kind = "noMainProperlyDeclared"
)

// Error is one semantic diagnostic: a kind, a rendered message and the
// source token it is anchored to.
type Error struct {
	Kind    Kind
	Message string
	Pos     token.Position
}

func (e *Error) String() string {
	return fmt.Sprintf("%s: %s", e.Pos, e.Message)
}

// List accumulates diagnostics in insertion order. All returns them
// deduplicated by (line, column, message); Render and RenderWithSource
// print that deduplicated set ordered by source position.
type List struct {
	errors []*Error
}

// New creates an empty diagnostic list.
func New() *List { return &List{} }

// Add appends a diagnostic.
func (l *List) Add(kind Kind, pos token.Position, message string) {
	l.errors = append(l.errors, &Error{Kind: kind, Message: message, Pos: pos})
}

// HasErrors reports whether any diagnostic was recorded.
func (l *List) HasErrors() bool { return len(l.errors) > 0 }

// All returns every recorded diagnostic, deduplicated by
// (line, column, message) while preserving first-seen order.
func (l *List) All() []*Error {
	seen := make(map[string]bool, len(l.errors))
	out := make([]*Error, 0, len(l.errors))
	for _, e := range l.errors {
		key := fmt.Sprintf("%d:%d:%s", e.Pos.Line, e.Pos.Column, e.Message)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, e)
	}
	return out
}

// Sorted returns All() ordered by source position, for deterministic
// rendering regardless of AST visit order.
func (l *List) Sorted() []*Error {
	out := l.All()
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Pos.Line != out[j].Pos.Line {
			return out[i].Pos.Line < out[j].Pos.Line
		}
		return out[i].Pos.Column < out[j].Pos.Column
	})
	return out
}

// Render formats every diagnostic as "file:line:column: message",
// one per line, matching internal/errors.CompilerError's header format
// without requiring the source text (callers that have it can print a
// caret line themselves via RenderWithSource).
func (l *List) Render(filename string) string {
	var sb strings.Builder
	for _, e := range l.Sorted() {
		if filename != "" {
			fmt.Fprintf(&sb, "%s:%s: %s\n", filename, e.Pos, e.Message)
		} else {
			fmt.Fprintf(&sb, "%s: %s\n", e.Pos, e.Message)
		}
	}
	return sb.String()
}

// RenderWithSource additionally prints the offending source line and a
// caret under the error column, matching the teacher's
// CompilerError.Format(color=false).
func (l *List) RenderWithSource(filename, source string) string {
	lines := strings.Split(source, "\n")
	var sb strings.Builder
	for _, e := range l.Sorted() {
		if filename != "" {
			fmt.Fprintf(&sb, "Error in %s:%d:%d\n", filename, e.Pos.Line, e.Pos.Column)
		} else {
			fmt.Fprintf(&sb, "Error at %d:%d\n", e.Pos.Line, e.Pos.Column)
		}
		if e.Pos.Line >= 1 && e.Pos.Line <= len(lines) {
			src := lines[e.Pos.Line-1]
			sb.WriteString(src)
			sb.WriteString("\n")
			col := e.Pos.Column
			if col < 1 {
				col = 1
			}
			sb.WriteString(strings.Repeat(" ", col-1))
			sb.WriteString("^\n")
		}
		sb.WriteString(e.Message)
		sb.WriteString("\n\n")
	}
	return sb.String()
}
