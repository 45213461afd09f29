package eval

import (
	"testing"

	"github.com/barscript/barscript/internal/lexer"
	"github.com/barscript/barscript/internal/parser"
	"github.com/barscript/barscript/internal/value"
	"github.com/barscript/barscript/pkg/ast"
	"github.com/barscript/barscript/pkg/provider"
	"github.com/barscript/barscript/pkg/sink"
)

func mustParse(t *testing.T, source string) *ast.Program {
	t.Helper()
	toks, err := lexer.New(source).Tokenize()
	if err != nil {
		t.Fatalf("lexer error: %v", err)
	}
	p := parser.New(toks)
	prog, errs := p.Parse()
	if len(errs) > 0 {
		t.Fatalf("parse errors: %v", errs)
	}
	return prog
}

func newEvaluator() *Evaluator {
	return New(provider.NewRingBufferProvider(64), sink.NewDefaultSink())
}

func runOnce(t *testing.T, e *Evaluator, source string) {
	t.Helper()
	if err := e.Run(mustParse(t, source)); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
}

func lookup(t *testing.T, e *Evaluator, name string) value.Value {
	t.Helper()
	v, ok := e.Root.Get(name)
	if !ok {
		t.Fatalf("%s not bound in root environment", name)
	}
	return v
}

func TestVarDeclarationThenReassignment(t *testing.T) {
	e := newEvaluator()
	runOnce(t, e, "var x = 10\nx := x + 5\n")
	if got := lookup(t, e, "x"); got != value.Number(15) {
		t.Errorf("x = %v, want 15", got)
	}
}

func TestForRangeAccumulatesSum(t *testing.T) {
	e := newEvaluator()
	runOnce(t, e, "var sum = 0\nfor i = 1 to 5\n    sum := sum + i\n")
	if got := lookup(t, e, "sum"); got != value.Number(15) {
		t.Errorf("sum = %v, want 15", got)
	}
}

func TestForRangeLoBeyondHiIsInvalidForLoop(t *testing.T) {
	e := newEvaluator()
	err := e.Run(mustParse(t, "var product = 1\nfor i = 3 to 1\n    product := product * i\n"))
	if err == nil {
		t.Fatal("Run() error = nil, want InvalidForLoop")
	}
	if evalErr, ok := err.(*Error); !ok || evalErr.Kind != InvalidForLoop {
		t.Fatalf("error = %v, want Kind InvalidForLoop", err)
	}
}

func TestTernaryExpression(t *testing.T) {
	e := newEvaluator()
	runOnce(t, e, "var a = 5\nvar b = 3\nvar label = a > b ? \"greater\" : \"less\"\n")
	if got := lookup(t, e, "label"); got != value.String("greater") {
		t.Errorf("label = %v, want \"greater\"", got)
	}
}

func TestVaripPersistsAcrossRunsVarReinitializes(t *testing.T) {
	e := newEvaluator()
	prog := mustParse(t, "varip total = 0\nvar fresh = 0\ntotal := total + 1\nfresh := fresh + 1\n")
	for i := 0; i < 3; i++ {
		if err := e.Run(prog); err != nil {
			t.Fatalf("Run() error = %v", err)
		}
	}
	if got := lookup(t, e, "total"); got != value.Number(3) {
		t.Errorf("total = %v, want 3 (varip persists)", got)
	}
	if got := lookup(t, e, "fresh"); got != value.Number(1) {
		t.Errorf("fresh = %v, want 1 (var reinitializes every bar)", got)
	}
}

func TestNzFillsNaDefaultsToZero(t *testing.T) {
	e := newEvaluator()
	runOnce(t, e, "var a = nz(na, 7)\nvar b = nz(na)\nvar c = nz(5)\n")
	if got := lookup(t, e, "a"); got != value.Number(7) {
		t.Errorf("a = %v, want 7", got)
	}
	if got := lookup(t, e, "b"); got != value.Number(0) {
		t.Errorf("b = %v, want 0", got)
	}
	if got := lookup(t, e, "c"); got != value.Number(5) {
		t.Errorf("c = %v, want 5", got)
	}
}

func TestHistoricalLookbackCurrentBarBypassesProvider(t *testing.T) {
	e := newEvaluator()
	e.Publish("close", value.Series{ID: "close", Current: 42})
	runOnce(t, e, "var x = close[0]\n")
	if got := lookup(t, e, "x"); got != value.Number(42) {
		t.Errorf("x = %v, want 42", got)
	}
}

func TestHistoricalLookbackMatchesProvider(t *testing.T) {
	p := provider.NewRingBufferProvider(8)
	p.Push("close", 100)
	p.Push("close", 110)
	e := New(p, sink.NewDefaultSink())
	e.Publish("close", value.Series{ID: "close", Current: 120})
	runOnce(t, e, "var prev = close[1]\n")
	want, ok := p.Get("close", 1)
	if !ok {
		t.Fatal("provider.Get(close, 1) ok = false")
	}
	if got := lookup(t, e, "prev"); got != value.Number(want) {
		t.Errorf("prev = %v, want %v", got, want)
	}
}

func TestHistoricalLookbackOutOfRangeIsNa(t *testing.T) {
	e := newEvaluator()
	e.Publish("close", value.Series{ID: "close", Current: 1})
	runOnce(t, e, "var prev = close[5]\n")
	if got := lookup(t, e, "prev"); got != value.Na {
		t.Errorf("prev = %v, want Na", got)
	}
}

func TestMathMinMaxSkipNa(t *testing.T) {
	e := newEvaluator()
	runOnce(t, e, "var lo = math.min(na, 3, 1)\nvar hi = math.max(na, 3, 1)\n")
	if got := lookup(t, e, "lo"); got != value.Number(1) {
		t.Errorf("lo = %v, want 1", got)
	}
	if got := lookup(t, e, "hi"); got != value.Number(3) {
		t.Errorf("hi = %v, want 3", got)
	}
}

func TestMathMinAllNaIsNa(t *testing.T) {
	e := newEvaluator()
	runOnce(t, e, "var m = math.min(na, na)\n")
	if got := lookup(t, e, "m"); got != value.Na {
		t.Errorf("m = %v, want Na", got)
	}
}

func TestDivisionByZeroIsError(t *testing.T) {
	e := newEvaluator()
	err := e.Run(mustParse(t, "var x = 1 / 0\n"))
	if err == nil {
		t.Fatal("Run() error = nil, want DivisionByZero")
	}
	evalErr, ok := err.(*Error)
	if !ok || evalErr.Kind != DivisionByZero {
		t.Fatalf("error = %v, want Kind DivisionByZero", err)
	}
}

func TestModuloByZeroIsError(t *testing.T) {
	e := newEvaluator()
	err := e.Run(mustParse(t, "var x = 5 % 0\n"))
	if err == nil {
		t.Fatal("Run() error = nil, want DivisionByZero")
	}
	if evalErr, ok := err.(*Error); !ok || evalErr.Kind != DivisionByZero {
		t.Fatalf("error = %v, want Kind DivisionByZero", err)
	}
}

func TestDeterminismAcrossIdenticalBarsWithoutVarip(t *testing.T) {
	prog := mustParse(t, "var x = 2 + 2\n")
	e1 := newEvaluator()
	e2 := newEvaluator()
	for i := 0; i < 5; i++ {
		if err := e1.Run(prog); err != nil {
			t.Fatalf("e1.Run() error = %v", err)
		}
	}
	if err := e2.Run(prog); err != nil {
		t.Fatalf("e2.Run() error = %v", err)
	}
	if lookup(t, e1, "x") != lookup(t, e2, "x") {
		t.Error("repeated runs without varip produced different results")
	}
}

func TestBreakExitsForRange(t *testing.T) {
	e := newEvaluator()
	runOnce(t, e, "var sum = 0\nfor i = 1 to 10\n    if i > 3\n        break\n    sum := sum + i\n")
	if got := lookup(t, e, "sum"); got != value.Number(6) {
		t.Errorf("sum = %v, want 6", got)
	}
}

func TestContinueSkipsIteration(t *testing.T) {
	e := newEvaluator()
	runOnce(t, e, "var sum = 0\nfor i = 1 to 5\n    if i == 3\n        continue\n    sum := sum + i\n")
	if got := lookup(t, e, "sum"); got != value.Number(12) {
		t.Errorf("sum = %v, want 12", got)
	}
}

func TestWhileLoopWithBreak(t *testing.T) {
	e := newEvaluator()
	runOnce(t, e, "var i = 0\nwhile i < 100\n    i := i + 1\n    if i == 4\n        break\n")
	if got := lookup(t, e, "i"); got != value.Number(4) {
		t.Errorf("i = %v, want 4", got)
	}
}

func TestForEachOverArray(t *testing.T) {
	e := newEvaluator()
	runOnce(t, e, "var total = 0\nfor v in [1, 2, 3]\n    total := total + v\n")
	if got := lookup(t, e, "total"); got != value.Number(6) {
		t.Errorf("total = %v, want 6", got)
	}
}

func TestTupleAssignmentPadsMissingWithNa(t *testing.T) {
	e := newEvaluator()
	runOnce(t, e, "var a = 0\nvar b = 0\nvar c = 0\n[a, b, c] = [1, 2]\n")
	if got := lookup(t, e, "a"); got != value.Number(1) {
		t.Errorf("a = %v, want 1", got)
	}
	if got := lookup(t, e, "b"); got != value.Number(2) {
		t.Errorf("b = %v, want 2", got)
	}
	if got := lookup(t, e, "c"); got != value.Na {
		t.Errorf("c = %v, want Na", got)
	}
}

func TestTypeConstructionUsesFieldDefaults(t *testing.T) {
	e := newEvaluator()
	runOnce(t, e, "type Point\n    float x = 0\n    float y = 0\nvar p = Point(5)\n")
	p, ok := lookup(t, e, "p").(value.Object)
	if !ok {
		t.Fatalf("p is %T, want value.Object", lookup(t, e, "p"))
	}
	x, _ := p.Get("x")
	if x != value.Number(5) {
		t.Errorf("p.x = %v, want 5", x)
	}
	y, _ := p.Get("y")
	if y != value.Number(0) {
		t.Errorf("p.y = %v, want 0 (default)", y)
	}
}

func TestEnumVariantConstruction(t *testing.T) {
	e := newEvaluator()
	runOnce(t, e, "enum Side\n    Long = \"Long Position\"\n    Short\n")
	obj, ok := lookup(t, e, "Side").(value.Object)
	if !ok {
		t.Fatalf("Side is %T, want value.Object", lookup(t, e, "Side"))
	}
	long, found := obj.Get("Long")
	if !found {
		t.Fatal("Side.Long not found")
	}
	en, ok := long.(value.Enum)
	if !ok {
		t.Fatalf("Side.Long is %T, want value.Enum", long)
	}
	if en.Title != "Long Position" {
		t.Errorf("Side.Long.Title = %q, want %q", en.Title, "Long Position")
	}
	short, _ := obj.Get("Short")
	if en2, ok := short.(value.Enum); !ok || en2.Variant != "Short" {
		t.Errorf("Side.Short = %+v, want Variant Short", short)
	}
}

func TestMethodCallDesugarsToFunctionWithReceiver(t *testing.T) {
	e := newEvaluator()
	runOnce(t, e, "type Point\n    float x = 0\n    float y = 0\nmethod magnitudeSquared(self) =>\n    self.x * self.x + self.y * self.y\nvar p = Point(3, 4)\nvar m = p.magnitudeSquared()\n")
	if got := lookup(t, e, "m"); got != value.Number(25) {
		t.Errorf("m = %v, want 25", got)
	}
}

func TestLastExpressionStatementIsFunctionResult(t *testing.T) {
	e := newEvaluator()
	runOnce(t, e, "add(a, b) =>\n    a + b\nvar r = add(2, 3)\n")
	if got := lookup(t, e, "r"); got != value.Number(5) {
		t.Errorf("r = %v, want 5", got)
	}
}
