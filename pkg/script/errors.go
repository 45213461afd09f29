package script

import (
	"fmt"
	"strings"

	"github.com/barscript/barscript/internal/lexer"
	"github.com/barscript/barscript/internal/parser"
)

// CompileError aggregates every lexical or syntax error found while
// compiling a script, each formatted with a caret pointing at its column.
type CompileError struct {
	Errors []FormattedError
}

// FormattedError is one positioned error plus the source text needed to
// render it.
type FormattedError struct {
	Message string
	Line    int
	Column  int
	source  string
	file    string
}

func (e *CompileError) Error() string {
	var b strings.Builder
	for i, fe := range e.Errors {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(fe.Format())
	}
	return b.String()
}

// Format renders one error as a header line naming the file (or just
// line:column when there is none),
// the offending source line prefixed with its line number, and a caret
// under the reported column.
func (fe FormattedError) Format() string {
	var b strings.Builder
	if fe.file != "" {
		fmt.Fprintf(&b, "Error in %s:%d:%d: %s\n", fe.file, fe.Line, fe.Column, fe.Message)
	} else {
		fmt.Fprintf(&b, "Error at %d:%d: %s\n", fe.Line, fe.Column, fe.Message)
	}
	lines := strings.Split(fe.source, "\n")
	if fe.Line >= 1 && fe.Line <= len(lines) {
		line := lines[fe.Line-1]
		fmt.Fprintf(&b, "%5d | %s\n", fe.Line, line)
		col := fe.Column
		if col < 1 {
			col = 1
		}
		b.WriteString(strings.Repeat(" ", 8+col-1))
		b.WriteString("^\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func lexCompileError(source, file string, errs []*lexer.Error) *CompileError {
	out := make([]FormattedError, len(errs))
	for i, e := range errs {
		out[i] = FormattedError{
			Message: fmt.Sprintf("%s: %s", e.Kind, e.Message),
			Line:    e.Pos.Line, Column: e.Pos.Column,
			source: source, file: file,
		}
	}
	return &CompileError{Errors: out}
}

func parseCompileError(source, file string, errs []*parser.Error) *CompileError {
	out := make([]FormattedError, len(errs))
	for i, e := range errs {
		out[i] = FormattedError{
			Message: fmt.Sprintf("%s: %s", e.Kind, e.Message),
			Line:    e.Pos.Line, Column: e.Pos.Column,
			source: source, file: file,
		}
	}
	return &CompileError{Errors: out}
}
