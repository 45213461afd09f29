package builtins

import (
	"fmt"

	"github.com/barscript/barscript/internal/registry"
	"github.com/barscript/barscript/internal/value"
	"github.com/barscript/barscript/pkg/sink"
)

func colorHex(v value.Value) string {
	c, ok := v.(value.Color)
	if !ok {
		return ""
	}
	if c.T == 0 {
		return fmt.Sprintf("%02x%02x%02x", c.R, c.G, c.B)
	}
	t := c.T
	if t > 100 {
		t = 100
	}
	return fmt.Sprintf("%02x%02x%02x%02x", c.R, c.G, c.B, (100-t)*255/100)
}

func plotNamespace() value.Object {
	fns := map[string]value.BuiltinFunction{
		"plot": bindFn("plot.plot", registry.Signature{Params: []registry.ParamSpec{
			{Name: "series", Shape: registry.ShapeNumber},
			{Name: "title", Shape: registry.ShapeString, Default: value.String("")},
			{Name: "color", Shape: registry.ShapeAny, Default: value.Na},
			{Name: "linewidth", Shape: registry.ShapeNumber, Default: value.Number(1)},
		}}, func(ctx value.EvalContext, bound []value.Value, _ []value.Value) (value.Value, error) {
			v, ok := asNumber(bound[0])
			if !ok || ctx.Sink() == nil {
				return value.Na, nil
			}
			title, _ := asString(bound[1])
			lw, _ := asNumber(bound[3])
			ctx.Sink().AppendPlot(sink.Plot{
				Title:     title,
				Value:     v,
				Color:     colorHex(bound[2]),
				LineWidth: int(lw),
			})
			return value.Na, nil
		}),
		"plotarrow": bindFn("plot.plotarrow", registry.Signature{Params: []registry.ParamSpec{
			{Name: "series", Shape: registry.ShapeNumber},
			{Name: "title", Shape: registry.ShapeString, Default: value.String("")},
			{Name: "colorup", Shape: registry.ShapeAny, Default: value.Na},
			{Name: "colordown", Shape: registry.ShapeAny, Default: value.Na},
		}}, func(ctx value.EvalContext, bound []value.Value, _ []value.Value) (value.Value, error) {
			v, ok := asNumber(bound[0])
			if !ok || ctx.Sink() == nil {
				return value.Na, nil
			}
			title, _ := asString(bound[1])
			ctx.Sink().AppendPlotArrow(sink.PlotArrow{
				Title:     title,
				Value:     v,
				ColorUp:   colorHex(bound[2]),
				ColorDown: colorHex(bound[3]),
			})
			return value.Na, nil
		}),
		"plotbar": bindFn("plot.plotbar", registry.Signature{Params: []registry.ParamSpec{
			{Name: "open", Shape: registry.ShapeNumber},
			{Name: "high", Shape: registry.ShapeNumber},
			{Name: "low", Shape: registry.ShapeNumber},
			{Name: "close", Shape: registry.ShapeNumber},
			{Name: "title", Shape: registry.ShapeString, Default: value.String("")},
			{Name: "color", Shape: registry.ShapeAny, Default: value.Na},
		}}, func(ctx value.EvalContext, bound []value.Value, _ []value.Value) (value.Value, error) {
			o, ok1 := asNumber(bound[0])
			h, ok2 := asNumber(bound[1])
			l, ok3 := asNumber(bound[2])
			c, ok4 := asNumber(bound[3])
			if !ok1 || !ok2 || !ok3 || !ok4 || ctx.Sink() == nil {
				return value.Na, nil
			}
			title, _ := asString(bound[4])
			ctx.Sink().AppendPlotBar(sink.PlotBar{
				Title: title,
				Open:  o, High: h, Low: l, Close: c,
				Color: colorHex(bound[5]),
			})
			return value.Na, nil
		}),
		"plotcandle": bindFn("plot.plotcandle", registry.Signature{Params: []registry.ParamSpec{
			{Name: "open", Shape: registry.ShapeNumber},
			{Name: "high", Shape: registry.ShapeNumber},
			{Name: "low", Shape: registry.ShapeNumber},
			{Name: "close", Shape: registry.ShapeNumber},
			{Name: "title", Shape: registry.ShapeString, Default: value.String("")},
			{Name: "colorup", Shape: registry.ShapeAny, Default: value.Na},
			{Name: "colordown", Shape: registry.ShapeAny, Default: value.Na},
		}}, func(ctx value.EvalContext, bound []value.Value, _ []value.Value) (value.Value, error) {
			o, ok1 := asNumber(bound[0])
			h, ok2 := asNumber(bound[1])
			l, ok3 := asNumber(bound[2])
			c, ok4 := asNumber(bound[3])
			if !ok1 || !ok2 || !ok3 || !ok4 || ctx.Sink() == nil {
				return value.Na, nil
			}
			title, _ := asString(bound[4])
			ctx.Sink().AppendPlotCandle(sink.PlotCandle{
				Title: title,
				Open:  o, High: h, Low: l, Close: c,
				ColorUp:   colorHex(bound[5]),
				ColorDown: colorHex(bound[6]),
			})
			return value.Na, nil
		}),
		"plotchar": bindFn("plot.plotchar", registry.Signature{Params: []registry.ParamSpec{
			{Name: "condition", Shape: registry.ShapeAny},
			{Name: "title", Shape: registry.ShapeString, Default: value.String("")},
			{Name: "char", Shape: registry.ShapeString, Default: value.String("•")},
			{Name: "color", Shape: registry.ShapeAny, Default: value.Na},
		}}, func(ctx value.EvalContext, bound []value.Value, _ []value.Value) (value.Value, error) {
			b, _ := bound[0].(value.Bool)
			if bool(b) && ctx.Sink() != nil {
				title, _ := asString(bound[1])
				char, _ := asString(bound[2])
				ctx.Sink().AppendPlotChar(sink.PlotChar{
					Title: title,
					Char:  char,
					Color: colorHex(bound[3]),
				})
			}
			return value.Na, nil
		}),
		"plotshape": bindFn("plot.plotshape", registry.Signature{Params: []registry.ParamSpec{
			{Name: "condition", Shape: registry.ShapeAny},
			{Name: "title", Shape: registry.ShapeString, Default: value.String("")},
			{Name: "shape", Shape: registry.ShapeString, Default: value.String("circle")},
			{Name: "color", Shape: registry.ShapeAny, Default: value.Na},
		}}, func(ctx value.EvalContext, bound []value.Value, _ []value.Value) (value.Value, error) {
			b, _ := bound[0].(value.Bool)
			if bool(b) && ctx.Sink() != nil {
				title, _ := asString(bound[1])
				shape, _ := asString(bound[2])
				ctx.Sink().AppendPlotShape(sink.PlotShape{
					Title: title,
					Shape: shape,
					Color: colorHex(bound[3]),
				})
			}
			return value.Na, nil
		}),
	}
	return namespace("plot", fns)
}
