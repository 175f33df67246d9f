package semerr

import (
	"strings"
	"testing"

	"github.com/aslc/aslc/internal/token"
)

func TestDedupPerLocation(t *testing.T) {
	l := New()
	pos := token.Position{Line: 3, Column: 5}
	l.Add(DeclaredIdent, pos, "'x' is already declared")
	l.Add(DeclaredIdent, pos, "'x' is already declared")
	l.Add(DeclaredIdent, pos, "'y' is already declared")

	all := l.All()
	if len(all) != 2 {
		t.Fatalf("expected 2 deduplicated errors, got %d", len(all))
	}
}

func TestSortedOrdersByPosition(t *testing.T) {
	l := New()
	l.Add(UndeclaredIdent, token.Position{Line: 5, Column: 1}, "later")
	l.Add(UndeclaredIdent, token.Position{Line: 2, Column: 1}, "earlier")

	sorted := l.Sorted()
	if sorted[0].Message != "earlier" {
		t.Fatalf("expected earlier error first, got %+v", sorted)
	}
}

func TestRenderIncludesFilenameAndMessage(t *testing.T) {
	l := New()
	l.Add(BooleanRequired, token.Position{Line: 1, Column: 1}, "condition must be boolean")
	out := l.Render("test.asl")
	if !strings.Contains(out, "test.asl") || !strings.Contains(out, "condition must be boolean") {
		t.Fatalf("unexpected render: %q", out)
	}
}

func TestRenderWithSourceShowsCaret(t *testing.T) {
	l := New()
	l.Add(BooleanRequired, token.Position{Line: 1, Column: 3}, "condition must be boolean")
	out := l.RenderWithSource("test.asl", "if x")
	if !strings.Contains(out, "if x") || !strings.Contains(out, "^") {
		t.Fatalf("expected source line and caret, got %q", out)
	}
}

func TestHasErrors(t *testing.T) {
	l := New()
	if l.HasErrors() {
		t.Fatal("expected no errors initially")
	}
	l.Add(NoMainProperlyDeclared, token.Position{}, "no main")
	if !l.HasErrors() {
		t.Fatal("expected HasErrors true after Add")
	}
}
