package eval

import (
	"github.com/barscript/barscript/internal/value"
	"github.com/barscript/barscript/pkg/ast"
)

func (e *Evaluator) evalArgs(env *value.Environment, args []ast.Argument) ([]value.Arg, error) {
	out := make([]value.Arg, len(args))
	for i, a := range args {
		v, err := e.evalExpr(env, a.Value)
		if err != nil {
			return nil, err
		}
		out[i] = value.Arg{Name: a.Name, Value: v}
	}
	return out, nil
}

func (e *Evaluator) evalCall(env *value.Environment, node *ast.CallExpression) (value.Value, error) {
	// obj.method(...) desugars to the Function bound under that name in
	// scope, called with obj as the implicit receiver, when obj's Object has
	// no field of that name. The receiver's type is not checked.
	if member, ok := node.Callee.(*ast.MemberExpression); ok {
		obj, err := e.evalExpr(env, member.Object)
		if err != nil {
			return nil, err
		}
		if o, isObj := obj.(value.Object); isObj {
			if field, found := o.Get(member.Name); found {
				args, err := e.evalArgs(env, node.Args)
				if err != nil {
					return nil, err
				}
				return e.invoke(field, args, node)
			}
			if m, found := env.Get(member.Name); found {
				if fn, isFn := m.(value.Function); isFn {
					args, err := e.evalArgs(env, node.Args)
					if err != nil {
						return nil, err
					}
					args = append([]value.Arg{{Value: o}}, args...)
					return e.callFunction(fn, args)
				}
			}
			return nil, newError(UndefinedVariable, node.Pos(), "%s has no method %q", o.TypeName, member.Name)
		}
		callee, err := e.evalMember(env, member)
		if err != nil {
			return nil, err
		}
		args, err := e.evalArgs(env, node.Args)
		if err != nil {
			return nil, err
		}
		return e.invoke(callee, args, node)
	}

	callee, err := e.evalExpr(env, node.Callee)
	if err != nil {
		return nil, err
	}
	args, err := e.evalArgs(env, node.Args)
	if err != nil {
		return nil, err
	}
	return e.invoke(callee, args, node)
}

func (e *Evaluator) invoke(callee value.Value, args []value.Arg, node *ast.CallExpression) (value.Value, error) {
	switch c := callee.(type) {
	case value.Function:
		return e.callFunction(c, args)
	case value.BuiltinFunction:
		v, err := c.Fn(e, args)
		if err != nil {
			return nil, newError(TypeError, node.Pos(), "%s: %v", c.Name, err)
		}
		return v, nil
	case value.Type:
		return e.constructType(c, args, node)
	default:
		return nil, newError(TypeError, node.Pos(), "cannot call value of kind %s", callee.Kind())
	}
}

// callFunction binds parameters by position, then applies named overrides,
// defaulting to Na for missing parameters, and executes the body in a
// fresh child scope of the closure's captured environment.
func (e *Evaluator) callFunction(fn value.Function, args []value.Arg) (value.Value, error) {
	frame := fn.Closure.NewChild()
	for _, p := range fn.Params {
		frame.Define(p, value.Na)
	}
	pos := 0
	for _, a := range args {
		if a.Name != "" {
			continue
		}
		if pos < len(fn.Params) {
			frame.Define(fn.Params[pos], a.Value)
			pos++
		}
	}
	for _, a := range args {
		if a.Name == "" {
			continue
		}
		frame.Define(a.Name, a.Value)
	}

	var result value.Value = value.Na
	for _, stmt := range fn.Body {
		// An expression statement is evaluated once, here, so its value can
		// become the call's result when it is the body's last statement:
		// barscript has no `return` keyword.
		if es, ok := stmt.(*ast.ExpressionStatement); ok {
			if es.Expression == nil {
				continue
			}
			v, err := e.evalExpr(frame, es.Expression)
			if err != nil {
				return nil, err
			}
			result = v
			continue
		}
		if err := e.execStatement(frame, stmt); err != nil {
			if bs, ok := err.(returnValueCarrier); ok {
				return bs.Value(), nil
			}
			return nil, err
		}
	}
	return result, nil
}

// returnValueCarrier lets an error-shaped control signal carry a value;
// unused today (barscript has no `return` keyword, see signals.go) but
// kept as the extension point callFunction already checks.
type returnValueCarrier interface {
	error
	Value() value.Value
}

// constructType builds an Object from a Type's constructor call: fields
// bind by position first, then by name, falling back to each field's
// declared default expression (evaluated against the call-site
// environment) when unset.
func (e *Evaluator) constructType(t value.Type, args []value.Arg, node *ast.CallExpression) (value.Value, error) {
	obj := value.NewObject(t.Name)
	set := make(map[string]bool, len(t.Fields))

	pos := 0
	for _, a := range args {
		if a.Name != "" {
			continue
		}
		if pos < len(t.Fields) {
			obj.Set(t.Fields[pos].Name, a.Value)
			set[t.Fields[pos].Name] = true
			pos++
		}
	}
	for _, a := range args {
		if a.Name == "" {
			continue
		}
		found := false
		for _, f := range t.Fields {
			if f.Name == a.Name {
				found = true
				break
			}
		}
		if !found {
			return nil, newError(TypeError, node.Pos(), "%s has no field %q", t.Name, a.Name)
		}
		obj.Set(a.Name, a.Value)
		set[a.Name] = true
	}
	for _, f := range t.Fields {
		if set[f.Name] {
			continue
		}
		if f.Default != nil {
			v, err := e.evalExpr(e.Root, f.Default)
			if err != nil {
				return nil, err
			}
			obj.Set(f.Name, v)
		} else {
			obj.Set(f.Name, value.Na)
		}
	}
	return obj, nil
}
