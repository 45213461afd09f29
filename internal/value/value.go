// Package value defines the tagged value universe barscript expressions
// evaluate to: NA, Number, String, Bool, Color, Array, Matrix,
// Object, Function, BuiltinFunction, Type, Enum, Series. Array/Matrix/
// Object are reference-semantic shared handles — assignment duplicates the
// handle, not the data — implemented as one Go type per variant behind a
// closed interface.
package value

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/barscript/barscript/pkg/ast"
	"github.com/barscript/barscript/pkg/provider"
	"github.com/barscript/barscript/pkg/sink"
)

// Kind identifies which variant of the value universe a Value holds.
type Kind int

const (
	KindNA Kind = iota
	KindNumber
	KindString
	KindBool
	KindColor
	KindArray
	KindMatrix
	KindObject
	KindFunction
	KindBuiltinFunction
	KindType
	KindEnum
	KindSeries
)

var kindNames = [...]string{
	"na", "number", "string", "bool", "color", "array", "matrix",
	"object", "function", "builtin-function", "type", "enum", "series",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Value is the closed interface every variant implements.
type Value interface {
	Kind() Kind
	String() string
}

// NA is the distinct "not available" value. NA != NA under ordinary
// comparison, but the `==` operator treats NA == NA as true.
type NA struct{}

func (NA) Kind() Kind      { return KindNA }
func (NA) String() string { return "na" }

// Na is the shared NA instance.
var Na = NA{}

// Number is a double-precision float.
type Number float64

func (Number) Kind() Kind        { return KindNumber }
func (n Number) String() string  { return strconv.FormatFloat(float64(n), 'g', -1, 64) }

// String is a string value. Named String to match the Kind name; this
// shadows the builtin `string` only inside this package.
type String string

func (String) Kind() Kind       { return KindString }
func (s String) String() string { return string(s) }

// Bool is a boolean value.
type Bool bool

func (Bool) Kind() Kind      { return KindBool }
func (b Bool) String() string {
	if b {
		return "true"
	}
	return "false"
}

// Color is an RGBA color with t interpreted as transparency 0-100.
type Color struct {
	R, G, B, T int
}

func (Color) Kind() Kind { return KindColor }
func (c Color) String() string {
	return fmt.Sprintf("color(%d,%d,%d,%d)", c.R, c.G, c.B, c.T)
}

// ColorFromHex parses "RRGGBB" or "RRGGBBAA" (no leading '#') into a Color.
// Alpha (if present) is converted to the 0-100 transparency scale.
func ColorFromHex(hex string) (Color, bool) {
	if len(hex) != 6 && len(hex) != 8 {
		return Color{}, false
	}
	r, err1 := strconv.ParseInt(hex[0:2], 16, 32)
	g, err2 := strconv.ParseInt(hex[2:4], 16, 32)
	b, err3 := strconv.ParseInt(hex[4:6], 16, 32)
	if err1 != nil || err2 != nil || err3 != nil {
		return Color{}, false
	}
	t := 0
	if len(hex) == 8 {
		a, err := strconv.ParseInt(hex[6:8], 16, 32)
		if err != nil {
			return Color{}, false
		}
		t = 100 - (int(a)*100)/255
	}
	return Color{R: int(r), G: int(g), B: int(b), T: t}, true
}

// arrayHandle is the interior-mutable container an Array value points to;
// copying an Array copies the pointer, never the backing slice, giving
// multiple bindings aliased read/write access.
type arrayHandle struct {
	elems []Value
}

// Array is a shared handle to an ordered, mutable sequence of values.
type Array struct {
	h *arrayHandle
}

// NewArray creates a fresh array handle containing elems (copied).
func NewArray(elems ...Value) Array {
	e := make([]Value, len(elems))
	copy(e, elems)
	return Array{h: &arrayHandle{elems: e}}
}

func (Array) Kind() Kind { return KindArray }
func (a Array) String() string {
	parts := make([]string, len(a.h.elems))
	for i, e := range a.h.elems {
		parts[i] = e.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// Len returns the number of elements.
func (a Array) Len() int { return len(a.h.elems) }

// Get returns element i, or (Na, false) if out of bounds.
func (a Array) Get(i int) (Value, bool) {
	if i < 0 || i >= len(a.h.elems) {
		return Na, false
	}
	return a.h.elems[i], true
}

// Set writes element i through the shared handle, bounds-checked.
func (a Array) Set(i int, v Value) bool {
	if i < 0 || i >= len(a.h.elems) {
		return false
	}
	a.h.elems[i] = v
	return true
}

// Push appends v to the array, mutating the shared handle.
func (a Array) Push(v Value) { a.h.elems = append(a.h.elems, v) }

// Pop removes and returns the last element.
func (a Array) Pop() (Value, bool) {
	n := len(a.h.elems)
	if n == 0 {
		return Na, false
	}
	v := a.h.elems[n-1]
	a.h.elems = a.h.elems[:n-1]
	return v, true
}

// Clear empties the array through the shared handle.
func (a Array) Clear() { a.h.elems = a.h.elems[:0] }

// Elements returns a defensive copy of the backing slice.
func (a Array) Elements() []Value {
	out := make([]Value, len(a.h.elems))
	copy(out, a.h.elems)
	return out
}

// SameHandle reports whether a and other alias the same backing storage.
func (a Array) SameHandle(other Array) bool { return a.h == other.h }

// matrixHandle backs Matrix the same way arrayHandle backs Array, but
// row-major two-dimensional.
type matrixHandle struct {
	rows [][]Value
}

// Matrix is a shared handle to a row-major 2D sequence, tagged with its
// declared element type (e.g. "float", "string").
type Matrix struct {
	ElemType string
	h        *matrixHandle
}

// NewMatrix creates a rows x cols matrix of elemType, filled with Na.
func NewMatrix(elemType string, rows, cols int) Matrix {
	data := make([][]Value, rows)
	for i := range data {
		row := make([]Value, cols)
		for j := range row {
			row[j] = Na
		}
		data[i] = row
	}
	return Matrix{ElemType: elemType, h: &matrixHandle{rows: data}}
}

func (Matrix) Kind() Kind { return KindMatrix }
func (m Matrix) String() string {
	return fmt.Sprintf("matrix<%s>(%dx%d)", m.ElemType, m.Rows(), m.Cols())
}

func (m Matrix) Rows() int { return len(m.h.rows) }
func (m Matrix) Cols() int {
	if len(m.h.rows) == 0 {
		return 0
	}
	return len(m.h.rows[0])
}

func (m Matrix) Get(row, col int) (Value, bool) {
	if row < 0 || row >= len(m.h.rows) {
		return Na, false
	}
	r := m.h.rows[row]
	if col < 0 || col >= len(r) {
		return Na, false
	}
	return r[col], true
}

func (m Matrix) Set(row, col int, v Value) bool {
	if row < 0 || row >= len(m.h.rows) {
		return false
	}
	r := m.h.rows[row]
	if col < 0 || col >= len(r) {
		return false
	}
	r[col] = v
	return true
}

// objectHandle backs Object: an ordered map (insertion order preserved via
// a parallel key slice) used for namespaces, user type instances, and
// box/label records.
type objectHandle struct {
	keys   []string
	fields map[string]Value
}

// Object is a shared handle to an ordered string-to-Value map, tagged with
// its type name (empty for anonymous namespaces).
type Object struct {
	TypeName string
	h        *objectHandle
}

// NewObject creates an empty, named Object handle.
func NewObject(typeName string) Object {
	return Object{TypeName: typeName, h: &objectHandle{fields: make(map[string]Value)}}
}

func (Object) Kind() Kind { return KindObject }
func (o Object) String() string {
	parts := make([]string, 0, len(o.h.keys))
	for _, k := range o.h.keys {
		parts = append(parts, k+": "+o.h.fields[k].String())
	}
	name := o.TypeName
	if name == "" {
		name = "object"
	}
	return name + "{" + strings.Join(parts, ", ") + "}"
}

// Get reads field name.
func (o Object) Get(name string) (Value, bool) {
	v, ok := o.h.fields[name]
	return v, ok
}

// Set writes field name through the shared handle, appending it to the
// key order on first write.
func (o Object) Set(name string, v Value) {
	if _, exists := o.h.fields[name]; !exists {
		o.h.keys = append(o.h.keys, name)
	}
	o.h.fields[name] = v
}

// Keys returns field names in insertion order.
func (o Object) Keys() []string {
	out := make([]string, len(o.h.keys))
	copy(out, o.h.keys)
	return out
}

// SameHandle reports identity equality: whether o and other alias the same
// backing storage. Used for switch-equality over Object scrutinees.
func (o Object) SameHandle(other Object) bool { return o.h == other.h }

// Function is a closure: captured parameter names, body statements, and the
// defining environment, held by reference rather than copied, so bindings
// made or changed in that scope after construction are visible at call time.
type Function struct {
	Params    []string
	Body      []ast.Statement
	Closure   *Environment
}

func (Function) Kind() Kind { return KindFunction }
func (f Function) String() string {
	return "function(" + strings.Join(f.Params, ", ") + ")"
}

// Arg is one evaluated call argument, tagged positional or named.
type Arg struct {
	Name  string // empty when positional
	Value Value
}

// EvalContext is the capability surface a BuiltinFunc receives: access to
// the historical-data provider, the output sink, other current-bar
// bindings (e.g. `volume`), and the ability to invoke a user Function.
type EvalContext interface {
	Provider() provider.HistoricalProvider
	Sink() sink.OutputSink
	Lookup(name string) (Value, bool)
	CallFunction(fn Function, args []Arg) (Value, error)
	CurrentBar() int
}

// BuiltinFunc is the calling convention every builtin implements: an
// evaluator context plus the ordered, evaluated argument list.
type BuiltinFunc func(ctx EvalContext, args []Arg) (Value, error)

// BuiltinFunction wraps a BuiltinFunc with the dotted name used for
// diagnostics (dispatch itself is by value, not by name).
type BuiltinFunction struct {
	Name string
	Fn   BuiltinFunc
}

func (BuiltinFunction) Kind() Kind { return KindBuiltinFunction }
func (b BuiltinFunction) String() string { return "builtin:" + b.Name }

// Type is the constructor for a user-defined record, bound by a TypeDecl.
type Type struct {
	Name   string
	Fields []ast.TypeField
}

func (Type) Kind() Kind      { return KindType }
func (t Type) String() string { return "type " + t.Name }

// Enum is one variant of a user-defined enum, carrying its enum name,
// variant name, and optional display title.
type Enum struct {
	EnumName string
	Variant  string
	Title    string
}

func (Enum) Kind() Kind { return KindEnum }
func (e Enum) String() string {
	if e.Title != "" {
		return e.Title
	}
	return e.EnumName + "." + e.Variant
}

// Series is a time-indexed handle: a stable series identifier the
// historical-data provider recognises, plus the value at the current bar.
type Series struct {
	ID      string
	Current float64
}

func (Series) Kind() Kind { return KindSeries }
func (s Series) String() string {
	return fmt.Sprintf("series(%s)=%s", s.ID, Number(s.Current).String())
}
