package parser

import (
	"fmt"

	"github.com/barscript/barscript/pkg/token"
)

// Kind identifies a parse-error category
type Kind string

const (
	UnexpectedToken          Kind = "E_PARSE_UNEXPECTED_TOKEN"
	ExpectedToken            Kind = "E_PARSE_EXPECTED_TOKEN"
	ExpectedVariableName     Kind = "E_PARSE_EXPECTED_VARIABLE_NAME"
	ExpectedParameterName    Kind = "E_PARSE_EXPECTED_PARAMETER_NAME"
	InvalidCallTarget        Kind = "E_PARSE_INVALID_CALL_TARGET"
	ExpectedIdentifierAfterDot Kind = "E_PARSE_EXPECTED_IDENTIFIER_AFTER_DOT"
)

// Error is a parse error carrying its kind, message, and the line of the
// offending token.
type Error struct {
	Kind    Kind
	Message string
	Pos     token.Position
}

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
