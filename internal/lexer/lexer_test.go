package lexer

import (
	"testing"

	"github.com/barscript/barscript/pkg/token"
)

func typesOf(toks []token.Token) []token.Type {
	out := make([]token.Type, len(toks))
	for i, t := range toks {
		out[i] = t.Type
	}
	return out
}

func TestTokenizeBasicOperators(t *testing.T) {
	toks, err := New("a := b + c * -d\n").Tokenize()
	if err != nil {
		t.Fatalf("Tokenize() error = %v", err)
	}
	want := []token.Type{
		token.IDENT, token.DEFINE, token.IDENT, token.PLUS, token.IDENT,
		token.STAR, token.MINUS, token.IDENT, token.NEWLINE, token.EOF,
	}
	got := typesOf(toks)
	if len(got) != len(want) {
		t.Fatalf("got %d tokens %v, want %d %v", len(got), got, len(want), want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestTokenizeKeywords(t *testing.T) {
	toks, err := New("var varip if else for while to in switch break continue int float type enum method na and or not\n").Tokenize()
	if err != nil {
		t.Fatalf("Tokenize() error = %v", err)
	}
	want := []token.Type{
		token.VAR, token.VARIP, token.IF, token.ELSE, token.FOR, token.WHILE,
		token.TO, token.IN, token.SWITCH, token.BREAK, token.CONTINUE,
		token.INT, token.FLOAT, token.TYPE, token.ENUM, token.METHOD,
		token.NA, token.AND, token.OR, token.NOT, token.NEWLINE, token.EOF,
	}
	got := typesOf(toks)
	if len(got) != len(want) {
		t.Fatalf("got %d tokens, want %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestIntAndFloatAsMemberNames(t *testing.T) {
	// : "int"/"float" double as type keywords and legal
	// member/function names, so the lexer itself keeps emitting them as
	// their keyword kind — it's the parser's postfix rule that must admit
	// them after '.'.
	toks, err := New("x.int()\n").Tokenize()
	if err != nil {
		t.Fatalf("Tokenize() error = %v", err)
	}
	want := []token.Type{token.IDENT, token.DOT, token.INT, token.LPAREN, token.RPAREN, token.NEWLINE, token.EOF}
	got := typesOf(toks)
	if len(got) != len(want) {
		t.Fatalf("got %d tokens, want %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestNumberLiterals(t *testing.T) {
	toks, err := New("1 1.5 .5\n").Tokenize()
	if err != nil {
		t.Fatalf("Tokenize() error = %v", err)
	}
	var nums []string
	for _, tk := range toks {
		if tk.Type == token.NUMBER {
			nums = append(nums, tk.Literal)
		}
	}
	want := []string{"1", "1.5", ".5"}
	if len(nums) != len(want) {
		t.Fatalf("got %v, want %v", nums, want)
	}
	for i := range want {
		if nums[i] != want[i] {
			t.Errorf("nums[%d] = %q, want %q", i, nums[i], want[i])
		}
	}
}

func TestMemberAccessDoesNotSwallowDot(t *testing.T) {
	// "a.b" on identifiers must stay a member access: the number scanner's
	// dot rule only fires when the following character is a digit.
	toks, err := New("a.b\n").Tokenize()
	if err != nil {
		t.Fatalf("Tokenize() error = %v", err)
	}
	want := []token.Type{token.IDENT, token.DOT, token.IDENT, token.NEWLINE, token.EOF}
	got := typesOf(toks)
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestStringEscapes(t *testing.T) {
	toks, err := New(`"a\nb\tc\"d\'e\\f\x"` + "\n").Tokenize()
	if err != nil {
		t.Fatalf("Tokenize() error = %v", err)
	}
	if toks[0].Type != token.STRING {
		t.Fatalf("toks[0].Type = %v, want STRING", toks[0].Type)
	}
	want := "a\nb\tc\"d'e\\fx"
	if toks[0].Literal != want {
		t.Errorf("Literal = %q, want %q", toks[0].Literal, want)
	}
}

func TestUnterminatedString(t *testing.T) {
	l := New("x = \"unterminated\n")
	_, err := l.Tokenize()
	if err == nil {
		t.Fatal("Tokenize() error = nil, want unterminated-string error")
	}
	lexErr, ok := err.(*Error)
	if !ok {
		t.Fatalf("error type = %T, want *Error", err)
	}
	if lexErr.Kind != UnterminatedString {
		t.Errorf("Kind = %v, want %v", lexErr.Kind, UnterminatedString)
	}
}

func TestHexColorLiterals(t *testing.T) {
	tests := []struct {
		name    string
		source  string
		wantErr Kind
	}{
		{name: "6 digit", source: "#ff0080\n"},
		{name: "8 digit with alpha", source: "#ff008042\n"},
		{name: "5 digit invalid", source: "#ff008\n", wantErr: InvalidHexColor},
		{name: "7 digit invalid", source: "#ff00804\n", wantErr: InvalidHexColor},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := New(tt.source)
			_, err := l.Tokenize()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Tokenize() error = %v, want nil", err)
				}
				return
			}
			lexErr, ok := err.(*Error)
			if !ok {
				t.Fatalf("error type = %T, want *Error", err)
			}
			if lexErr.Kind != tt.wantErr {
				t.Errorf("Kind = %v, want %v", lexErr.Kind, tt.wantErr)
			}
		})
	}
}

func TestUnexpectedCharacter(t *testing.T) {
	_, err := New("x = @\n").Tokenize()
	if err == nil {
		t.Fatal("Tokenize() error = nil, want unexpected-character error")
	}
	if err.(*Error).Kind != UnexpectedChar {
		t.Errorf("Kind = %v, want %v", err.(*Error).Kind, UnexpectedChar)
	}
}

func TestLineCommentsDoNotEmitTokens(t *testing.T) {
	toks, err := New("x = 1 // trailing comment\n// full line comment\ny = 2\n").Tokenize()
	if err != nil {
		t.Fatalf("Tokenize() error = %v", err)
	}
	for _, tk := range toks {
		if tk.Type == token.ILLEGAL {
			t.Fatalf("unexpected ILLEGAL token in stream: %+v", tk)
		}
	}
}

// TestOffsideIndentDedent exercises the off-side rule: INDENT on
// increased indentation, one DEDENT per popped level on decrease.
func TestOffsideIndentDedent(t *testing.T) {
	source := "if x\n    y := 1\n    if z\n        w := 2\nq := 3\n"
	toks, err := New(source).Tokenize()
	if err != nil {
		t.Fatalf("Tokenize() error = %v", err)
	}
	got := typesOf(toks)

	indents, dedents := 0, 0
	for _, tt := range got {
		if tt == token.INDENT {
			indents++
		}
		if tt == token.DEDENT {
			dedents++
		}
	}
	if indents != 2 {
		t.Errorf("INDENT count = %d, want 2", indents)
	}
	if dedents != 2 {
		t.Errorf("DEDENT count = %d, want 2 (balanced against INDENT)", dedents)
	}
}

func TestBlankAndCommentLinesDoNotAffectIndentStack(t *testing.T) {
	source := "if x\n    y := 1\n\n    // comment only\n    z := 2\nw := 3\n"
	toks, err := New(source).Tokenize()
	if err != nil {
		t.Fatalf("Tokenize() error = %v", err)
	}
	got := typesOf(toks)
	indents, dedents := 0, 0
	for _, tt := range got {
		if tt == token.INDENT {
			indents++
		}
		if tt == token.DEDENT {
			dedents++
		}
	}
	if indents != 1 || dedents != 1 {
		t.Errorf("got %d INDENT / %d DEDENT, want 1 / 1 (blank + comment-only lines are no-ops)", indents, dedents)
	}
}

func TestIndentationErrorOnMismatchedDedent(t *testing.T) {
	// A dedent that lands between two stack levels is an IndentationError.
	source := "if x > 0\n    y = 1\n   z = 2\n"
	_, err := New(source).Tokenize()
	if err == nil {
		t.Fatal("Tokenize() error = nil, want IndentationError")
	}
	lexErr, ok := err.(*Error)
	if !ok {
		t.Fatalf("error type = %T, want *Error", err)
	}
	if lexErr.Kind != IndentationError {
		t.Errorf("Kind = %v, want %v", lexErr.Kind, IndentationError)
	}
	if lexErr.Pos.Line != 3 {
		t.Errorf("Pos.Line = %d, want 3", lexErr.Pos.Line)
	}
}

func TestEOFEmitsRemainingDedents(t *testing.T) {
	source := "if x\n    if y\n        z := 1\n"
	toks, err := New(source).Tokenize()
	if err != nil {
		t.Fatalf("Tokenize() error = %v", err)
	}
	n := len(toks)
	if toks[n-1].Type != token.EOF {
		t.Fatalf("last token = %v, want EOF", toks[n-1].Type)
	}
	if toks[n-2].Type != token.DEDENT || toks[n-3].Type != token.DEDENT {
		t.Errorf("expected two DEDENTs before EOF, got %v %v", toks[n-3].Type, toks[n-2].Type)
	}
}

func TestCRLFTreatedAsHorizontalWhitespace(t *testing.T) {
	toks, err := New("x := 1\r\ny := 2\r\n").Tokenize()
	if err != nil {
		t.Fatalf("Tokenize() error = %v", err)
	}
	for _, tk := range toks {
		if tk.Type == token.ILLEGAL {
			t.Fatalf("unexpected ILLEGAL token: %+v", tk)
		}
	}
}
