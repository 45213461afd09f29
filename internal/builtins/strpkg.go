package builtins

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/barscript/barscript/internal/registry"
	"github.com/barscript/barscript/internal/value"
)

var strPrinter = message.NewPrinter(language.English)

func strArg(name string) registry.ParamSpec {
	return registry.ParamSpec{Name: name, Shape: registry.ShapeString}
}

func strNamespace() value.Object {
	fns := map[string]value.BuiltinFunction{
		"tostring": bindFn("str.tostring", registry.Signature{Params: []registry.ParamSpec{
			{Name: "value", Shape: registry.ShapeAny},
		}}, func(_ value.EvalContext, bound []value.Value, _ []value.Value) (value.Value, error) {
			return value.String(tostring(bound[0])), nil
		}),
		"length": bindFn("str.length", registry.Signature{Params: []registry.ParamSpec{strArg("value")}},
			func(_ value.EvalContext, bound []value.Value, _ []value.Value) (value.Value, error) {
				s, ok := asString(bound[0])
				if !ok {
					return value.Na, nil
				}
				return value.Number(len([]rune(s))), nil
			}),
		"upper": bindFn("str.upper", registry.Signature{Params: []registry.ParamSpec{strArg("value")}},
			func(_ value.EvalContext, bound []value.Value, _ []value.Value) (value.Value, error) {
				s, ok := asString(bound[0])
				if !ok {
					return value.Na, nil
				}
				return value.String(strings.ToUpper(s)), nil
			}),
		"lower": bindFn("str.lower", registry.Signature{Params: []registry.ParamSpec{strArg("value")}},
			func(_ value.EvalContext, bound []value.Value, _ []value.Value) (value.Value, error) {
				s, ok := asString(bound[0])
				if !ok {
					return value.Na, nil
				}
				return value.String(strings.ToLower(s)), nil
			}),
		"contains": bindFn("str.contains", registry.Signature{Params: []registry.ParamSpec{
			strArg("value"), strArg("substring"),
		}}, func(_ value.EvalContext, bound []value.Value, _ []value.Value) (value.Value, error) {
			s, ok1 := asString(bound[0])
			sub, ok2 := asString(bound[1])
			if !ok1 || !ok2 {
				return value.Na, nil
			}
			return value.Bool(strings.Contains(s, sub)), nil
		}),
		"substring": bindFn("str.substring", registry.Signature{Params: []registry.ParamSpec{
			strArg("value"),
			{Name: "from", Shape: registry.ShapeNumber},
			{Name: "to", Shape: registry.ShapeNumber, Default: value.Number(-1)},
		}}, func(_ value.EvalContext, bound []value.Value, _ []value.Value) (value.Value, error) {
			str, ok := asString(bound[0])
			if !ok {
				return value.Na, nil
			}
			fromN, ok := asNumber(bound[1])
			if !ok {
				return value.Na, nil
			}
			s := []rune(str)
			from := int(fromN)
			to := len(s)
			if t, ok := asNumber(bound[2]); ok && t >= 0 {
				to = int(t)
			}
			if from < 0 {
				from = 0
			}
			if to > len(s) {
				to = len(s)
			}
			if from > to {
				return value.String(""), nil
			}
			return value.String(string(s[from:to])), nil
		}),
		"split": bindFn("str.split", registry.Signature{Params: []registry.ParamSpec{
			strArg("value"), strArg("separator"),
		}}, func(_ value.EvalContext, bound []value.Value, _ []value.Value) (value.Value, error) {
			s, ok1 := asString(bound[0])
			sep, ok2 := asString(bound[1])
			if !ok1 || !ok2 {
				return value.Na, nil
			}
			parts := strings.Split(s, sep)
			elems := make([]value.Value, len(parts))
			for i, p := range parts {
				elems[i] = value.String(p)
			}
			return value.NewArray(elems...), nil
		}),
		"format": bindFn("str.format", registry.Signature{Variadic: &registry.ParamSpec{Name: "args", Shape: registry.ShapeAny}},
			func(_ value.EvalContext, _ []value.Value, rest []value.Value) (value.Value, error) {
				if len(rest) == 0 {
					return value.String(""), nil
				}
				tmpl, ok := rest[0].(value.String)
				if !ok {
					return nil, fmt.Errorf("str.format requires a string template")
				}
				args := make([]interface{}, len(rest)-1)
				for i, a := range rest[1:] {
					args[i] = tostring(a)
				}
				return value.String(strPrinter.Sprintf(string(tmpl), args...)), nil
			}),
	}
	return namespace("str", fns)
}

// tostring renders v using locale-aware decimal formatting for Number
// (golang.org/x/text/number), matching the plain `+` string-concatenation
// rendering otherwise.
func tostring(v value.Value) string {
	switch t := v.(type) {
	case value.Number:
		return strPrinter.Sprintf("%v", number.Decimal(float64(t)))
	case value.String:
		return string(t)
	case value.NA:
		return "na"
	case value.Series:
		return value.Number(t.Current).String()
	default:
		return v.String()
	}
}
