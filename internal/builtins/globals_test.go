package builtins

import (
	"testing"

	"github.com/barscript/barscript/internal/value"
)

func globalFn(t *testing.T, name string) value.BuiltinFunction {
	fn, ok := Globals()[name]
	if !ok {
		t.Fatalf("global %s not registered", name)
	}
	return fn
}

func TestNzSubstitutesDefaultForNa(t *testing.T) {
	if got := callBuiltin(t, globalFn(t, "nz"), value.Na, value.Number(7)); got != value.Number(7) {
		t.Errorf("nz(na, 7) = %v, want 7", got)
	}
	if got := callBuiltin(t, globalFn(t, "nz"), value.Na); got != value.Number(0) {
		t.Errorf("nz(na) = %v, want 0", got)
	}
	if got := callBuiltin(t, globalFn(t, "nz"), value.Number(5)); got != value.Number(5) {
		t.Errorf("nz(5) = %v, want 5", got)
	}
}

func TestNaPredicate(t *testing.T) {
	if got := callBuiltin(t, globalFn(t, "na"), value.Na); got != value.Bool(true) {
		t.Errorf("na(na) = %v, want true", got)
	}
	if got := callBuiltin(t, globalFn(t, "na"), value.Number(1)); got != value.Bool(false) {
		t.Errorf("na(1) = %v, want false", got)
	}
}

func TestIntTruncatesTowardZero(t *testing.T) {
	if got := callBuiltin(t, globalFn(t, "int"), value.Number(3.9)); got != value.Number(3) {
		t.Errorf("int(3.9) = %v, want 3", got)
	}
	if got := callBuiltin(t, globalFn(t, "int"), value.Number(-3.9)); got != value.Number(-3) {
		t.Errorf("int(-3.9) = %v, want -3", got)
	}
}

func TestIntPassesThroughNa(t *testing.T) {
	if got := callBuiltin(t, globalFn(t, "int"), value.Na); got != value.Na {
		t.Errorf("int(na) = %v, want Na", got)
	}
}
