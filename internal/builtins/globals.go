package builtins

import (
	"fmt"

	"github.com/barscript/barscript/internal/registry"
	"github.com/barscript/barscript/internal/value"
)

// globalNz implements `nz(value, default)`: substitutes default (or 0 when
// default is omitted) whenever value is Na.
func globalNz() value.BuiltinFunction {
	sig := registry.Signature{Params: []registry.ParamSpec{
		{Name: "value", Shape: registry.ShapeAny},
		{Name: "default", Shape: registry.ShapeAny, Default: value.Number(0)},
	}}
	return bindFn("nz", sig, func(_ value.EvalContext, bound []value.Value, _ []value.Value) (value.Value, error) {
		if _, isNa := bound[0].(value.NA); isNa {
			return bound[1], nil
		}
		return bound[0], nil
	})
}

// globalNa implements `na(value)`: true iff value is the Na value.
func globalNa() value.BuiltinFunction {
	sig := registry.Signature{Params: []registry.ParamSpec{{Name: "value", Shape: registry.ShapeAny}}}
	return bindFn("na", sig, func(_ value.EvalContext, bound []value.Value, _ []value.Value) (value.Value, error) {
		_, isNa := bound[0].(value.NA)
		return value.Bool(isNa), nil
	})
}

// globalInt implements `int(value)`: truncates toward zero.
func globalInt() value.BuiltinFunction {
	sig := registry.Signature{Params: []registry.ParamSpec{{Name: "value", Shape: registry.ShapeNumber}}}
	return bindFn("int", sig, func(_ value.EvalContext, bound []value.Value, _ []value.Value) (value.Value, error) {
		if _, isNa := bound[0].(value.NA); isNa {
			return value.Na, nil
		}
		n, ok := bound[0].(value.Number)
		if !ok {
			return nil, fmt.Errorf("int() requires a number")
		}
		return value.Number(float64(int64(n))), nil
	})
}

// globalFloat implements `float(value)`: passthrough widening, present for
// symmetry with int() (the value universe has no separate integer type).
func globalFloat() value.BuiltinFunction {
	sig := registry.Signature{Params: []registry.ParamSpec{{Name: "value", Shape: registry.ShapeNumber}}}
	return bindFn("float", sig, func(_ value.EvalContext, bound []value.Value, _ []value.Value) (value.Value, error) {
		return bound[0], nil
	})
}
