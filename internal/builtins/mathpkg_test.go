package builtins

import (
	"testing"

	"github.com/barscript/barscript/internal/value"
)

func callBuiltin(t *testing.T, fn value.BuiltinFunction, vs ...value.Value) value.Value {
	t.Helper()
	args := make([]value.Arg, len(vs))
	for i, v := range vs {
		args[i] = value.Arg{Value: v}
	}
	out, err := fn.Fn(nil, args)
	if err != nil {
		t.Fatalf("%s: %v", fn.Name, err)
	}
	return out
}

func nsFn(t *testing.T, ns value.Object, name string) value.BuiltinFunction {
	t.Helper()
	v, ok := ns.Get(name)
	if !ok {
		t.Fatalf("%s not registered", name)
	}
	return v.(value.BuiltinFunction)
}

func mathFn(t *testing.T, name string) value.BuiltinFunction {
	return nsFn(t, mathNamespace(), name)
}

func TestMathMinSkipsNaOperands(t *testing.T) {
	got := callBuiltin(t, mathFn(t, "min"), value.Na, value.Number(3), value.Number(1))
	if got != value.Number(1) {
		t.Errorf("math.min = %v, want 1", got)
	}
}

func TestMathMinAllNaYieldsNa(t *testing.T) {
	got := callBuiltin(t, mathFn(t, "min"), value.Na, value.Na)
	if got != value.Na {
		t.Errorf("math.min(na, na) = %v, want Na", got)
	}
}

func TestMathSumAndAvg(t *testing.T) {
	sum := callBuiltin(t, mathFn(t, "sum"), value.Number(1), value.Number(2), value.Number(3))
	if sum != value.Number(6) {
		t.Errorf("math.sum = %v, want 6", sum)
	}
	avg := callBuiltin(t, mathFn(t, "avg"), value.Number(1), value.Number(2), value.Number(3))
	if avg != value.Number(2) {
		t.Errorf("math.avg = %v, want 2", avg)
	}
}

func TestMathAbsPropagatesNa(t *testing.T) {
	got := callBuiltin(t, mathFn(t, "abs"), value.Na)
	if got != value.Na {
		t.Errorf("math.abs(na) = %v, want Na", got)
	}
}

func TestMathPow(t *testing.T) {
	got := callBuiltin(t, mathFn(t, "pow"), value.Number(2), value.Number(10))
	if got != value.Number(1024) {
		t.Errorf("math.pow(2,10) = %v, want 1024", got)
	}
}

func TestMathRoundFloorCeil(t *testing.T) {
	if got := callBuiltin(t, mathFn(t, "round"), value.Number(2.5)); got != value.Number(3) {
		t.Errorf("math.round(2.5) = %v, want 3", got)
	}
	if got := callBuiltin(t, mathFn(t, "floor"), value.Number(2.9)); got != value.Number(2) {
		t.Errorf("math.floor(2.9) = %v, want 2", got)
	}
	if got := callBuiltin(t, mathFn(t, "ceil"), value.Number(2.1)); got != value.Number(3) {
		t.Errorf("math.ceil(2.1) = %v, want 3", got)
	}
}
