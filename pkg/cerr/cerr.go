// Package cerr renders stage errors (lexer/parser/eval) with source context:
// a file/position header, the offending source line, and a caret pointing
// at the column.
package cerr

import (
	"fmt"
	"strings"

	"github.com/barscript/barscript/pkg/token"
)

// Positioned is satisfied by every stage's error type.
type Positioned interface {
	error
	Position() token.Position
}

// Format renders err with the offending line of source underlined by a caret.
func Format(err Positioned, source string) string {
	pos := err.Position()
	var sb strings.Builder
	fmt.Fprintf(&sb, "error at %d:%d: %s\n", pos.Line, pos.Column, err.Error())

	lines := strings.Split(source, "\n")
	if pos.Line < 1 || pos.Line > len(lines) {
		return sb.String()
	}
	line := lines[pos.Line-1]
	prefix := fmt.Sprintf("%4d | ", pos.Line)
	sb.WriteString(prefix)
	sb.WriteString(line)
	sb.WriteString("\n")
	col := pos.Column - 1
	if col < 0 {
		col = 0
	}
	sb.WriteString(strings.Repeat(" ", len(prefix)+col))
	sb.WriteString("^\n")
	return sb.String()
}
