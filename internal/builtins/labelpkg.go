package builtins

import (
	"github.com/barscript/barscript/internal/registry"
	"github.com/barscript/barscript/internal/value"
	"github.com/barscript/barscript/pkg/sink"
)

func idSig(extra ...registry.ParamSpec) registry.Signature {
	params := append([]registry.ParamSpec{{Name: "id", Shape: registry.ShapeNumber}}, extra...)
	return registry.Signature{Params: params}
}

func labelNamespace() value.Object {
	fns := map[string]value.BuiltinFunction{
		"new": bindFn("label.new", registry.Signature{Params: []registry.ParamSpec{
			{Name: "x", Shape: registry.ShapeNumber, Default: value.Number(0)},
			{Name: "y", Shape: registry.ShapeNumber, Default: value.Number(0)},
			{Name: "text", Shape: registry.ShapeString, Default: value.String("")},
			{Name: "color", Shape: registry.ShapeAny, Default: value.Na},
		}}, func(ctx value.EvalContext, bound []value.Value, _ []value.Value) (value.Value, error) {
			if ctx.Sink() == nil {
				return value.Na, nil
			}
			x, _ := asNumber(bound[0])
			y, _ := asNumber(bound[1])
			text, _ := asString(bound[2])
			id := ctx.Sink().AddLabel(sink.Label{
				X: x, Y: y, Text: text,
				Color: colorHex(bound[3]),
			})
			return value.Number(id), nil
		}),
		"delete": bindFn("label.delete", idSig(), func(ctx value.EvalContext, bound []value.Value, _ []value.Value) (value.Value, error) {
			id, ok := asNumber(bound[0])
			if !ok || ctx.Sink() == nil {
				return value.Na, nil
			}
			ctx.Sink().DeleteLabel(int(id))
			return value.Na, nil
		}),
		"set_x": mutateLabel("label.set_x", registry.ShapeNumber, func(l *sink.Label, v value.Value) {
			if n, ok := asNumber(v); ok {
				l.X = n
			}
		}),
		"set_y": mutateLabel("label.set_y", registry.ShapeNumber, func(l *sink.Label, v value.Value) {
			if n, ok := asNumber(v); ok {
				l.Y = n
			}
		}),
		"set_text": mutateLabel("label.set_text", registry.ShapeString, func(l *sink.Label, v value.Value) {
			if s, ok := asString(v); ok {
				l.Text = s
			}
		}),
	}
	return namespace("label", fns)
}

func mutateLabel(name string, shape registry.Shape, apply func(*sink.Label, value.Value)) value.BuiltinFunction {
	return bindFn(name, idSig(registry.ParamSpec{Name: "value", Shape: shape}),
		func(ctx value.EvalContext, bound []value.Value, _ []value.Value) (value.Value, error) {
			idv, ok := asNumber(bound[0])
			if !ok || ctx.Sink() == nil {
				return value.Na, nil
			}
			id := int(idv)
			l, ok := ctx.Sink().Label(id)
			if !ok {
				return value.Na, nil
			}
			apply(&l, bound[1])
			ctx.Sink().SetLabel(id, l)
			return value.Na, nil
		})
}
