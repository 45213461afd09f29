package builtins

import (
	"fmt"

	"github.com/barscript/barscript/internal/registry"
	"github.com/barscript/barscript/internal/value"
)

func arrayNamespace() value.Object {
	fns := map[string]value.BuiltinFunction{
		"new": bindFn("array.new", registry.Signature{Params: []registry.ParamSpec{
			{Name: "size", Shape: registry.ShapeNumber, Default: value.Number(0)},
			{Name: "initial", Shape: registry.ShapeAny, Default: value.Na},
		}}, func(_ value.EvalContext, bound []value.Value, _ []value.Value) (value.Value, error) {
			sz, ok := asNumber(bound[0])
			if !ok {
				return nil, fmt.Errorf("array.new size must be a number")
			}
			n := int(sz)
			if n < 0 {
				return nil, fmt.Errorf("array.new size must be non-negative")
			}
			elems := make([]value.Value, n)
			for i := range elems {
				elems[i] = bound[1]
			}
			return value.NewArray(elems...), nil
		}),
		"push": bindFn("array.push", registry.Signature{Params: []registry.ParamSpec{
			{Name: "id", Shape: registry.ShapeArray},
			{Name: "value", Shape: registry.ShapeAny},
		}}, func(_ value.EvalContext, bound []value.Value, _ []value.Value) (value.Value, error) {
			bound[0].(value.Array).Push(bound[1])
			return value.Na, nil
		}),
		"pop": bindFn("array.pop", registry.Signature{Params: []registry.ParamSpec{
			{Name: "id", Shape: registry.ShapeArray},
		}}, func(_ value.EvalContext, bound []value.Value, _ []value.Value) (value.Value, error) {
			v, ok := bound[0].(value.Array).Pop()
			if !ok {
				return value.Na, nil
			}
			return v, nil
		}),
		"get": bindFn("array.get", registry.Signature{Params: []registry.ParamSpec{
			{Name: "id", Shape: registry.ShapeArray},
			{Name: "index", Shape: registry.ShapeNumber},
		}}, func(_ value.EvalContext, bound []value.Value, _ []value.Value) (value.Value, error) {
			idx, ok := asNumber(bound[1])
			if !ok {
				return value.Na, nil
			}
			v, ok := bound[0].(value.Array).Get(int(idx))
			if !ok {
				return value.Na, nil
			}
			return v, nil
		}),
		"set": bindFn("array.set", registry.Signature{Params: []registry.ParamSpec{
			{Name: "id", Shape: registry.ShapeArray},
			{Name: "index", Shape: registry.ShapeNumber},
			{Name: "value", Shape: registry.ShapeAny},
		}}, func(_ value.EvalContext, bound []value.Value, _ []value.Value) (value.Value, error) {
			idx, ok := asNumber(bound[1])
			if !ok {
				return nil, fmt.Errorf("array.set index must be a number")
			}
			if !bound[0].(value.Array).Set(int(idx), bound[2]) {
				return nil, fmt.Errorf("array.set index out of bounds")
			}
			return value.Na, nil
		}),
		"size": bindFn("array.size", registry.Signature{Params: []registry.ParamSpec{
			{Name: "id", Shape: registry.ShapeArray},
		}}, func(_ value.EvalContext, bound []value.Value, _ []value.Value) (value.Value, error) {
			return value.Number(bound[0].(value.Array).Len()), nil
		}),
		"clear": bindFn("array.clear", registry.Signature{Params: []registry.ParamSpec{
			{Name: "id", Shape: registry.ShapeArray},
		}}, func(_ value.EvalContext, bound []value.Value, _ []value.Value) (value.Value, error) {
			bound[0].(value.Array).Clear()
			return value.Na, nil
		}),
	}
	return namespace("array", fns)
}
