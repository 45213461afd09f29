package builtins

import (
	"fmt"
	"math"

	"github.com/barscript/barscript/internal/registry"
	"github.com/barscript/barscript/internal/value"
)

// numbers extracts the Number operands of vs, skipping any Na values,
// as math.min/max/avg/sum do.
func numbers(vs []value.Value) ([]float64, error) {
	out := make([]float64, 0, len(vs))
	for _, v := range vs {
		switch n := v.(type) {
		case value.Number:
			out = append(out, float64(n))
		case value.NA:
			continue
		default:
			return nil, fmt.Errorf("expected a number, got %s", v.Kind())
		}
	}
	return out, nil
}

func variadicSig() registry.Signature {
	return registry.Signature{Variadic: &registry.ParamSpec{Name: "values", Shape: registry.ShapeAny}}
}

func unarySig(name string) registry.Signature {
	return registry.Signature{Params: []registry.ParamSpec{{Name: name, Shape: registry.ShapeNumber}}}
}

func mathNamespace() value.Object {
	fns := map[string]value.BuiltinFunction{
		"min": bindFn("math.min", variadicSig(), func(_ value.EvalContext, _ []value.Value, rest []value.Value) (value.Value, error) {
			ns, err := numbers(rest)
			if err != nil {
				return nil, err
			}
			if len(ns) == 0 {
				return value.Na, nil
			}
			m := ns[0]
			for _, n := range ns[1:] {
				if n < m {
					m = n
				}
			}
			return value.Number(m), nil
		}),
		"max": bindFn("math.max", variadicSig(), func(_ value.EvalContext, _ []value.Value, rest []value.Value) (value.Value, error) {
			ns, err := numbers(rest)
			if err != nil {
				return nil, err
			}
			if len(ns) == 0 {
				return value.Na, nil
			}
			m := ns[0]
			for _, n := range ns[1:] {
				if n > m {
					m = n
				}
			}
			return value.Number(m), nil
		}),
		"avg": bindFn("math.avg", variadicSig(), func(_ value.EvalContext, _ []value.Value, rest []value.Value) (value.Value, error) {
			ns, err := numbers(rest)
			if err != nil {
				return nil, err
			}
			if len(ns) == 0 {
				return value.Na, nil
			}
			var sum float64
			for _, n := range ns {
				sum += n
			}
			return value.Number(sum / float64(len(ns))), nil
		}),
		"sum": bindFn("math.sum", variadicSig(), func(_ value.EvalContext, _ []value.Value, rest []value.Value) (value.Value, error) {
			ns, err := numbers(rest)
			if err != nil {
				return nil, err
			}
			var sum float64
			for _, n := range ns {
				sum += n
			}
			return value.Number(sum), nil
		}),
		"abs":   unaryMath("math.abs", math.Abs),
		"sqrt":  unaryMath("math.sqrt", math.Sqrt),
		"round": unaryMath("math.round", math.Round),
		"floor": unaryMath("math.floor", math.Floor),
		"ceil":  unaryMath("math.ceil", math.Ceil),
		"log":   unaryMath("math.log", math.Log),
		"exp":   unaryMath("math.exp", math.Exp),
		"pow": bindFn("math.pow", registry.Signature{Params: []registry.ParamSpec{
			{Name: "base", Shape: registry.ShapeNumber},
			{Name: "exponent", Shape: registry.ShapeNumber},
		}}, func(_ value.EvalContext, bound []value.Value, _ []value.Value) (value.Value, error) {
			if isNa(bound[0]) || isNa(bound[1]) {
				return value.Na, nil
			}
			return value.Number(math.Pow(float64(bound[0].(value.Number)), float64(bound[1].(value.Number)))), nil
		}),
	}
	return namespace("math", fns)
}

func unaryMath(name string, f func(float64) float64) value.BuiltinFunction {
	return bindFn(name, unarySig("value"), func(_ value.EvalContext, bound []value.Value, _ []value.Value) (value.Value, error) {
		if isNa(bound[0]) {
			return value.Na, nil
		}
		return value.Number(f(float64(bound[0].(value.Number)))), nil
	})
}

func isNa(v value.Value) bool {
	_, ok := v.(value.NA)
	return ok
}
