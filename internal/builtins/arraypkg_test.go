package builtins

import (
	"testing"

	"github.com/barscript/barscript/internal/value"
)

func arrFn(t *testing.T, name string) value.BuiltinFunction {
	return nsFn(t, arrayNamespace(), name)
}

func TestArrayNewFillsWithInitialValue(t *testing.T) {
	got := callBuiltin(t, arrFn(t, "new"), value.Number(3), value.Number(7))
	arr, ok := got.(value.Array)
	if !ok || arr.Len() != 3 {
		t.Fatalf("array.new = %v, want a 3-element array", got)
	}
	for i := 0; i < 3; i++ {
		v, _ := arr.Get(i)
		if v != value.Number(7) {
			t.Errorf("array.new[%d] = %v, want 7", i, v)
		}
	}
}

func TestArrayPushPopGetSet(t *testing.T) {
	arr := value.NewArray(value.Number(1), value.Number(2))
	callBuiltin(t, arrFn(t, "push"), arr, value.Number(3))
	if arr.Len() != 3 {
		t.Fatalf("after push, Len() = %d, want 3", arr.Len())
	}
	popped := callBuiltin(t, arrFn(t, "pop"), arr)
	if popped != value.Number(3) {
		t.Errorf("array.pop = %v, want 3", popped)
	}
	callBuiltin(t, arrFn(t, "set"), arr, value.Number(0), value.Number(99))
	got := callBuiltin(t, arrFn(t, "get"), arr, value.Number(0))
	if got != value.Number(99) {
		t.Errorf("array.get(0) = %v, want 99", got)
	}
}

func TestArraySizeAndClear(t *testing.T) {
	arr := value.NewArray(value.Number(1), value.Number(2), value.Number(3))
	if got := callBuiltin(t, arrFn(t, "size"), arr); got != value.Number(3) {
		t.Errorf("array.size = %v, want 3", got)
	}
	callBuiltin(t, arrFn(t, "clear"), arr)
	if arr.Len() != 0 {
		t.Errorf("after array.clear, Len() = %d, want 0", arr.Len())
	}
}

func TestArrayGetOutOfBoundsIsNa(t *testing.T) {
	arr := value.NewArray(value.Number(1))
	got := callBuiltin(t, arrFn(t, "get"), arr, value.Number(9))
	if got != value.Na {
		t.Errorf("array.get(9) = %v, want Na", got)
	}
}
