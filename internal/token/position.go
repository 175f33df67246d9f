// Package token defines the lexical tokens shared by the lexer, parser and
// AST: source positions and the token kinds of the ASL grammar.
package token

import "fmt"

// Position identifies a single point in a source file.
type Position struct {
	Line   int // 1-based
	Column int // 1-based, in runes
	Offset int // 0-based byte offset into the source
}

// String renders the position as "line:column".
func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// IsValid reports whether the position was ever set.
func (p Position) IsValid() bool {
	return p.Line > 0
}
