package builtins

import (
	"github.com/barscript/barscript/internal/registry"
	"github.com/barscript/barscript/internal/value"
)

var namedColors = map[string]value.Color{
	"red":    {R: 255, G: 0, B: 0},
	"green":  {R: 0, G: 128, B: 0},
	"blue":   {R: 0, G: 0, B: 255},
	"black":  {R: 0, G: 0, B: 0},
	"white":  {R: 255, G: 255, B: 255},
	"yellow": {R: 255, G: 255, B: 0},
	"orange": {R: 255, G: 165, B: 0},
	"purple": {R: 128, G: 0, B: 128},
	"gray":   {R: 128, G: 128, B: 128},
	"aqua":   {R: 0, G: 255, B: 255},
}

func clampChannel(n float64) int {
	if n < 0 {
		return 0
	}
	if n > 255 {
		return 255
	}
	return int(n)
}

func colorNamespace() value.Object {
	fns := map[string]value.BuiltinFunction{
		"new": bindFn("color.new", registry.Signature{Params: []registry.ParamSpec{
			{Name: "color", Shape: registry.ShapeAny},
			{Name: "transp", Shape: registry.ShapeNumber, Default: value.Number(0)},
		}}, func(_ value.EvalContext, bound []value.Value, _ []value.Value) (value.Value, error) {
			c, ok := bound[0].(value.Color)
			if !ok {
				return value.Na, nil
			}
			if t, ok := asNumber(bound[1]); ok {
				c.T = clampChannel(t)
			}
			return c, nil
		}),
		"rgb": bindFn("color.rgb", registry.Signature{Params: []registry.ParamSpec{
			{Name: "r", Shape: registry.ShapeNumber},
			{Name: "g", Shape: registry.ShapeNumber},
			{Name: "b", Shape: registry.ShapeNumber},
			{Name: "t", Shape: registry.ShapeNumber, Default: value.Number(0)},
		}}, func(_ value.EvalContext, bound []value.Value, _ []value.Value) (value.Value, error) {
			r, okR := asNumber(bound[0])
			g, okG := asNumber(bound[1])
			b, okB := asNumber(bound[2])
			t, _ := asNumber(bound[3])
			if !okR || !okG || !okB {
				return value.Na, nil
			}
			return value.Color{
				R: clampChannel(r),
				G: clampChannel(g),
				B: clampChannel(b),
				T: clampChannel(t),
			}, nil
		}),
	}
	ns := namespace("color", fns)
	for name, c := range namedColors {
		ns.Set(name, c)
	}
	return ns
}
