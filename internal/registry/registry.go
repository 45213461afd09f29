// Package registry implements the builtin calling convention:
// positional-then-named argument binding against a declared parameter
// list, with defaults and per-slot shape coercion, dispatched by dotted
// namespace rather than class method.
package registry

import (
	"fmt"

	"github.com/barscript/barscript/internal/value"
)

// Shape is the declared value shape a parameter slot coerces to.
type Shape int

const (
	ShapeAny Shape = iota
	ShapeNumber
	ShapeString
	ShapeBool
	ShapeArray
	ShapeMatrix
	ShapeObject
)

// ParamSpec describes one declared parameter slot.
type ParamSpec struct {
	Name    string
	Shape   Shape
	Default value.Value // nil if required
}

// Signature is a builtin's full parameter declaration: named slots plus an
// optional variadic tail (e.g. math.min/max/avg/sum).
type Signature struct {
	Params   []ParamSpec
	Variadic *ParamSpec // nil if the builtin takes no rest args
}

// BindError is a type-error raised during argument binding.
type BindError struct {
	Message string
}

func (e *BindError) Error() string { return e.Message }

// Bind runs the four-step binding protocol against sig,
// returning one value.Value per declared parameter (in declaration order)
// plus the collected variadic tail.
func Bind(sig Signature, args []value.Arg) (bound []value.Value, rest []value.Value, err error) {
	slots := make([]value.Value, len(sig.Params))
	filled := make([]bool, len(sig.Params))

	// Step 1: positional arguments fill slots left-to-right; overflow goes
	// to the variadic tail if declared, else is an error.
	positionalIdx := 0
	for _, a := range args {
		if a.Name != "" {
			continue
		}
		if positionalIdx < len(sig.Params) {
			slots[positionalIdx] = a.Value
			filled[positionalIdx] = true
			positionalIdx++
			continue
		}
		if sig.Variadic != nil {
			rest = append(rest, a.Value)
			continue
		}
		return nil, nil, &BindError{Message: "too many positional arguments"}
	}

	// Step 2: named arguments match by slot name.
	for _, a := range args {
		if a.Name == "" {
			continue
		}
		idx := indexOf(sig.Params, a.Name)
		if idx < 0 {
			return nil, nil, &BindError{Message: fmt.Sprintf("unknown parameter %q", a.Name)}
		}
		slots[idx] = a.Value
		filled[idx] = true
	}

	// Step 3: unfilled slots adopt their declared default, or fail if
	// neither a value nor a default exists.
	for i, p := range sig.Params {
		if filled[i] {
			continue
		}
		if p.Default == nil {
			return nil, nil, &BindError{Message: fmt.Sprintf("missing required parameter %q", p.Name)}
		}
		slots[i] = p.Default
	}

	// Step 4: coerce each slot to its declared shape.
	for i, p := range sig.Params {
		coerced, ok := coerce(slots[i], p.Shape)
		if !ok {
			return nil, nil, &BindError{Message: fmt.Sprintf("parameter %q: cannot coerce %s to %s", p.Name, slots[i].Kind(), shapeName(p.Shape))}
		}
		slots[i] = coerced
	}

	return slots, rest, nil
}

func indexOf(params []ParamSpec, name string) int {
	for i, p := range params {
		if p.Name == name {
			return i
		}
	}
	return -1
}

func coerce(v value.Value, shape Shape) (value.Value, bool) {
	switch shape {
	case ShapeAny:
		return v, true
	case ShapeNumber:
		switch n := v.(type) {
		case value.Number:
			return n, true
		case value.Bool:
			if n {
				return value.Number(1), true
			}
			return value.Number(0), true
		case value.NA:
			return v, true
		case value.Series:
			return value.Number(n.Current), true
		}
		return nil, false
	case ShapeString:
		if _, ok := v.(value.String); ok {
			return v, true
		}
		if _, ok := v.(value.NA); ok {
			return v, true
		}
		return nil, false
	case ShapeBool:
		if _, ok := v.(value.Bool); ok {
			return v, true
		}
		return nil, false
	case ShapeArray:
		if _, ok := v.(value.Array); ok {
			return v, true
		}
		return nil, false
	case ShapeMatrix:
		if _, ok := v.(value.Matrix); ok {
			return v, true
		}
		return nil, false
	case ShapeObject:
		if _, ok := v.(value.Object); ok {
			return v, true
		}
		return nil, false
	default:
		return nil, false
	}
}

func shapeName(s Shape) string {
	switch s {
	case ShapeNumber:
		return "number"
	case ShapeString:
		return "string"
	case ShapeBool:
		return "bool"
	case ShapeArray:
		return "array"
	case ShapeMatrix:
		return "matrix"
	case ShapeObject:
		return "object"
	default:
		return "value"
	}
}
