// Package builtins assembles the concrete namespace catalogue bound into
// every Evaluator's root environment: math, str, ta, array, color, log,
// plot, label, box, currency, time namespaces plus the global conversion
// functions nz/na/int/float. Each namespace registers one BuiltinFunction
// per declared signature.
package builtins

import (
	"github.com/barscript/barscript/internal/registry"
	"github.com/barscript/barscript/internal/value"
)

// bindFn wraps a signature-checked implementation into the BuiltinFunc
// calling convention: registry.Bind runs the four-step protocol before fn
// ever sees its arguments.
func bindFn(name string, sig registry.Signature, fn func(ctx value.EvalContext, bound []value.Value, rest []value.Value) (value.Value, error)) value.BuiltinFunction {
	return value.BuiltinFunction{
		Name: name,
		Fn: func(ctx value.EvalContext, args []value.Arg) (value.Value, error) {
			bound, rest, err := registry.Bind(sig, args)
			if err != nil {
				return nil, err
			}
			return fn(ctx, bound, rest)
		},
	}
}

// asNumber extracts the float64 from a ShapeNumber-coerced slot. ok is
// false when the slot holds Na (ShapeNumber lets Na through unchanged so
// a builtin can decide whether Na propagates or is an error); callers
// short-circuit to Na in that case rather than asserting and panicking.
func asNumber(v value.Value) (float64, bool) {
	n, ok := v.(value.Number)
	if !ok {
		return 0, false
	}
	return float64(n), true
}

// asString extracts the string from a ShapeString-coerced slot, with the
// same Na short-circuit discipline as asNumber.
func asString(v value.Value) (string, bool) {
	s, ok := v.(value.String)
	if !ok {
		return "", false
	}
	return string(s), true
}

func namespace(name string, fns map[string]value.BuiltinFunction) value.Object {
	ns := value.NewObject(name)
	for fnName, fn := range fns {
		ns.Set(fnName, fn)
	}
	return ns
}

// Namespaces returns the dotted-namespace objects (math, str, ta, array,
// color, log, plot, label, box, currency, time) bound by name into the
// root environment.
func Namespaces() map[string]value.Object {
	return map[string]value.Object{
		"math":     mathNamespace(),
		"str":      strNamespace(),
		"ta":       taNamespace(),
		"array":    arrayNamespace(),
		"color":    colorNamespace(),
		"log":      logNamespace(),
		"plot":     plotNamespace(),
		"label":    labelNamespace(),
		"box":      boxNamespace(),
		"currency": currencyNamespace(),
		"time":     timeNamespace(),
	}
}

// Globals returns the non-namespaced conversion builtins: nz, na, int,
// float.
func Globals() map[string]value.BuiltinFunction {
	return map[string]value.BuiltinFunction{
		"nz":    globalNz(),
		"na":    globalNa(),
		"int":   globalInt(),
		"float": globalFloat(),
	}
}
