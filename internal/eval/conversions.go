package eval

import (
	"math"
	"strconv"

	"github.com/barscript/barscript/internal/value"
)

const epsilon = 2.220446049250313e-16 // machine epsilon

// toNumber applies the conversion table: Bool -> 0.0/1.0, Na propagates
// (isNa=true with ok=true; the caller propagates Na), Number and Series
// pass through; ok=false means v has no numeric conversion.
func toNumber(v value.Value) (n float64, isNa bool, ok bool) {
	switch t := v.(type) {
	case value.Number:
		return float64(t), false, true
	case value.Bool:
		if t {
			return 1, false, true
		}
		return 0, false, true
	case value.NA:
		return 0, true, true
	case value.Series:
		return t.Current, false, true
	default:
		return 0, false, false
	}
}

func toBool(v value.Value) (bool, bool) {
	switch t := v.(type) {
	case value.Bool:
		return bool(t), true
	case value.Number:
		return t != 0, true
	case value.Series:
		return t.Current != 0, true
	default:
		return false, false
	}
}

// stringify renders v the way string concatenation (`+` with a String
// operand) does.
func stringify(v value.Value) string {
	switch t := v.(type) {
	case value.String:
		return string(t)
	case value.NA:
		return "na"
	case value.Number:
		return strconv.FormatFloat(float64(t), 'g', -1, 64)
	case value.Series:
		return strconv.FormatFloat(t.Current, 'g', -1, 64)
	default:
		return v.String()
	}
}

// numbersEqual uses |a-b| < epsilon after an exact-equality fast path.
func numbersEqual(a, b float64) bool {
	if a == b {
		return true
	}
	return math.Abs(a-b) < epsilon
}

// valuesEqual implements the `==` equality rule: numbers by
// epsilon-compensated comparison; strings/bools by value; Na == Na is true
// under `==` specifically (the one place Na compares equal to itself);
// Array by deep value equality; Object by handle identity, applied
// uniformly to `==` too since switch dispatches through this same rule.
func valuesEqual(a, b value.Value) bool {
	if _, aNa := a.(value.NA); aNa {
		_, bNa := b.(value.NA)
		return bNa
	}
	if _, bNa := b.(value.NA); bNa {
		return false
	}
	switch av := a.(type) {
	case value.Number:
		switch bv := b.(type) {
		case value.Number:
			return numbersEqual(float64(av), float64(bv))
		case value.Series:
			return numbersEqual(float64(av), bv.Current)
		default:
			return false
		}
	case value.Series:
		switch bv := b.(type) {
		case value.Number:
			return numbersEqual(av.Current, float64(bv))
		case value.Series:
			return numbersEqual(av.Current, bv.Current)
		default:
			return false
		}
	case value.String:
		bv, ok := b.(value.String)
		return ok && av == bv
	case value.Bool:
		bv, ok := b.(value.Bool)
		return ok && av == bv
	case value.Color:
		bv, ok := b.(value.Color)
		return ok && av == bv
	case value.Array:
		bv, ok := b.(value.Array)
		if !ok || av.Len() != bv.Len() {
			return false
		}
		for i := 0; i < av.Len(); i++ {
			ea, _ := av.Get(i)
			eb, _ := bv.Get(i)
			if !valuesEqual(ea, eb) {
				return false
			}
		}
		return true
	case value.Object:
		bv, ok := b.(value.Object)
		return ok && av.SameHandle(bv)
	case value.Enum:
		bv, ok := b.(value.Enum)
		return ok && av.EnumName == bv.EnumName && av.Variant == bv.Variant
	default:
		return false
	}
}
