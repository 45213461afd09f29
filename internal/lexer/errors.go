package lexer

import (
	"fmt"

	"github.com/barscript/barscript/pkg/token"
)

// Kind identifies a lexical error category
type Kind string

const (
	UnterminatedString Kind = "E_LEX_UNTERMINATED_STRING"
	InvalidHexColor    Kind = "E_LEX_INVALID_HEX_COLOR"
	InvalidNumber      Kind = "E_LEX_INVALID_NUMBER"
	UnexpectedChar     Kind = "E_LEX_UNEXPECTED_CHARACTER"
	IndentationError   Kind = "E_LEX_INDENTATION_ERROR"
)

// Error is a lexical error carrying its kind, message, and source position.
type Error struct {
	Kind    Kind
	Message string
	Pos     token.Position
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Position returns the source location the error occurred at.
func (e *Error) Position() token.Position {
	return e.Pos
}

func newError(kind Kind, pos token.Position, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Pos: pos}
}
