package builtins

import (
	"time"

	"github.com/barscript/barscript/internal/registry"
	"github.com/barscript/barscript/internal/value"
)

// timeSig declares every time.* builtin's shared shape: a single epoch
// seconds source value.
func timeSig() registry.Signature {
	return registry.Signature{Params: []registry.ParamSpec{{Name: "timestamp", Shape: registry.ShapeNumber}}}
}

func timeOf(v value.Value) (time.Time, bool) {
	n, ok := v.(value.Number)
	if !ok {
		return time.Time{}, false
	}
	return time.Unix(int64(n), 0).UTC(), true
}

// timeNamespace is built against the standard library's time package for
// real Gregorian calendar arithmetic. No third-party calendar library
// covers this need, so it is the one namespace built on the standard
// library alone.
func timeNamespace() value.Object {
	fns := map[string]value.BuiltinFunction{
		"year":    timeField("time.year", func(t time.Time) float64 { return float64(t.Year()) }),
		"month":   timeField("time.month", func(t time.Time) float64 { return float64(t.Month()) }),
		"day":     timeField("time.day", func(t time.Time) float64 { return float64(t.Day()) }),
		"hour":    timeField("time.hour", func(t time.Time) float64 { return float64(t.Hour()) }),
		"weekday": timeField("time.weekday", func(t time.Time) float64 { return float64(t.Weekday()) }),
		"is_dst": bindFn("time.is_dst", timeSig(), func(_ value.EvalContext, bound []value.Value, _ []value.Value) (value.Value, error) {
			t, ok := timeOf(bound[0])
			if !ok {
				return value.Na, nil
			}
			_, offset := t.Zone()
			_, janOffset := time.Date(t.Year(), time.January, 1, 0, 0, 0, 0, t.Location()).Zone()
			return value.Bool(offset != janOffset), nil
		}),
	}
	return namespace("time", fns)
}

func timeField(name string, f func(time.Time) float64) value.BuiltinFunction {
	return bindFn(name, timeSig(), func(_ value.EvalContext, bound []value.Value, _ []value.Value) (value.Value, error) {
		t, ok := timeOf(bound[0])
		if !ok {
			return value.Na, nil
		}
		return value.Number(f(t)), nil
	})
}
