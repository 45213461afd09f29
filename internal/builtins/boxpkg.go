package builtins

import (
	"github.com/barscript/barscript/internal/registry"
	"github.com/barscript/barscript/internal/value"
	"github.com/barscript/barscript/pkg/sink"
)

func boxNamespace() value.Object {
	fns := map[string]value.BuiltinFunction{
		"new": bindFn("box.new", registry.Signature{Params: []registry.ParamSpec{
			{Name: "left", Shape: registry.ShapeNumber, Default: value.Number(0)},
			{Name: "top", Shape: registry.ShapeNumber, Default: value.Number(0)},
			{Name: "right", Shape: registry.ShapeNumber, Default: value.Number(0)},
			{Name: "bottom", Shape: registry.ShapeNumber, Default: value.Number(0)},
			{Name: "color", Shape: registry.ShapeAny, Default: value.Na},
		}}, func(ctx value.EvalContext, bound []value.Value, _ []value.Value) (value.Value, error) {
			if ctx.Sink() == nil {
				return value.Na, nil
			}
			left, _ := asNumber(bound[0])
			top, _ := asNumber(bound[1])
			right, _ := asNumber(bound[2])
			bottom, _ := asNumber(bound[3])
			id := ctx.Sink().AddBox(sink.Box{
				Left: left, Top: top, Right: right, Bottom: bottom,
				Color: colorHex(bound[4]),
			})
			return value.Number(id), nil
		}),
		"delete": bindFn("box.delete", idSig(), func(ctx value.EvalContext, bound []value.Value, _ []value.Value) (value.Value, error) {
			id, ok := asNumber(bound[0])
			if !ok || ctx.Sink() == nil {
				return value.Na, nil
			}
			ctx.Sink().DeleteBox(int(id))
			return value.Na, nil
		}),
		"set_left": mutateBox("box.set_left", func(b *sink.Box, v value.Value) {
			if n, ok := asNumber(v); ok {
				b.Left = n
			}
		}),
		"set_right": mutateBox("box.set_right", func(b *sink.Box, v value.Value) {
			if n, ok := asNumber(v); ok {
				b.Right = n
			}
		}),
		"set_top": mutateBox("box.set_top", func(b *sink.Box, v value.Value) {
			if n, ok := asNumber(v); ok {
				b.Top = n
			}
		}),
		"set_bottom": mutateBox("box.set_bottom", func(b *sink.Box, v value.Value) {
			if n, ok := asNumber(v); ok {
				b.Bottom = n
			}
		}),
	}
	return namespace("box", fns)
}

func mutateBox(name string, apply func(*sink.Box, value.Value)) value.BuiltinFunction {
	return bindFn(name, idSig(registry.ParamSpec{Name: "value", Shape: registry.ShapeNumber}),
		func(ctx value.EvalContext, bound []value.Value, _ []value.Value) (value.Value, error) {
			idv, ok := asNumber(bound[0])
			if !ok || ctx.Sink() == nil {
				return value.Na, nil
			}
			id := int(idv)
			b, ok := ctx.Sink().Box(id)
			if !ok {
				return value.Na, nil
			}
			apply(&b, bound[1])
			ctx.Sink().SetBox(id, b)
			return value.Na, nil
		})
}
