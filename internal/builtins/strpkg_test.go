package builtins

import (
	"testing"

	"github.com/barscript/barscript/internal/value"
)

func strFn(t *testing.T, name string) value.BuiltinFunction {
	return nsFn(t, strNamespace(), name)
}

func TestStrUpperLower(t *testing.T) {
	if got := callBuiltin(t, strFn(t, "upper"), value.String("abc")); got != value.String("ABC") {
		t.Errorf("str.upper = %v, want ABC", got)
	}
	if got := callBuiltin(t, strFn(t, "lower"), value.String("ABC")); got != value.String("abc") {
		t.Errorf("str.lower = %v, want abc", got)
	}
}

func TestStrLengthCountsRunes(t *testing.T) {
	got := callBuiltin(t, strFn(t, "length"), value.String("hello"))
	if got != value.Number(5) {
		t.Errorf("str.length = %v, want 5", got)
	}
}

func TestStrContains(t *testing.T) {
	got := callBuiltin(t, strFn(t, "contains"), value.String("hello world"), value.String("world"))
	if got != value.Bool(true) {
		t.Errorf("str.contains = %v, want true", got)
	}
}

func TestStrSubstringDefaultToEnd(t *testing.T) {
	got := callBuiltin(t, strFn(t, "substring"), value.String("hello"), value.Number(2))
	if got != value.String("llo") {
		t.Errorf("str.substring = %v, want llo", got)
	}
}

func TestStrSplit(t *testing.T) {
	got := callBuiltin(t, strFn(t, "split"), value.String("a,b,c"), value.String(","))
	arr, ok := got.(value.Array)
	if !ok || arr.Len() != 3 {
		t.Fatalf("str.split = %v, want a 3-element array", got)
	}
	first, _ := arr.Get(0)
	if first != value.String("a") {
		t.Errorf("str.split[0] = %v, want a", first)
	}
}

func TestStrFormatSubstitutesArguments(t *testing.T) {
	got := callBuiltin(t, strFn(t, "format"), value.String("%v and %v"), value.String("a"), value.String("b"))
	if got != value.String("a and b") {
		t.Errorf("str.format = %v, want \"a and b\"", got)
	}
}
