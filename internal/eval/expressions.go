package eval

import (
	"github.com/barscript/barscript/internal/value"
	"github.com/barscript/barscript/pkg/ast"
)

func (e *Evaluator) evalExpr(env *value.Environment, expr ast.Expression) (value.Value, error) {
	switch node := expr.(type) {
	case *ast.NumberLiteral:
		return value.Number(node.Value), nil
	case *ast.StringLiteral:
		return value.String(node.Value), nil
	case *ast.BoolLiteral:
		return value.Bool(node.Value), nil
	case *ast.NaLiteral:
		return value.Na, nil
	case *ast.ColorLiteral:
		c, ok := value.ColorFromHex(node.Value)
		if !ok {
			return nil, newError(TypeError, node.Pos(), "invalid hex color literal %q", node.Value)
		}
		return c, nil
	case *ast.Identifier:
		v, ok := env.Get(node.Value)
		if !ok {
			return nil, newError(UndefinedVariable, node.Pos(), "undefined variable %q", node.Value)
		}
		return v, nil
	case *ast.ArrayLiteral:
		elems := make([]value.Value, len(node.Elements))
		for i, el := range node.Elements {
			v, err := e.evalExpr(env, el)
			if err != nil {
				return nil, err
			}
			elems[i] = v
		}
		return value.NewArray(elems...), nil
	case *ast.UnaryExpression:
		return e.evalUnary(env, node)
	case *ast.BinaryExpression:
		return e.evalBinary(env, node)
	case *ast.TernaryExpression:
		cond, err := e.evalExpr(env, node.Condition)
		if err != nil {
			return nil, err
		}
		b, ok := toBool(cond)
		if !ok {
			return nil, newError(TypeError, node.Pos(), "ternary condition must be boolean")
		}
		if b {
			return e.evalExpr(env, node.Then)
		}
		return e.evalExpr(env, node.Else)
	case *ast.IfExpression:
		return e.evalIfExpression(env, node)
	case *ast.SwitchExpression:
		return e.evalSwitchExpression(env, node)
	case *ast.IndexExpression:
		return e.evalIndex(env, node)
	case *ast.MemberExpression:
		return e.evalMember(env, node)
	case *ast.CallExpression:
		return e.evalCall(env, node)
	case *ast.FunctionLiteral:
		params := make([]string, len(node.Parameters))
		for i, p := range node.Parameters {
			params[i] = p.Value
		}
		return value.Function{Params: params, Body: node.Body, Closure: env}, nil
	default:
		return nil, newError(TypeError, expr.Pos(), "unsupported expression node %T", expr)
	}
}

func (e *Evaluator) evalUnary(env *value.Environment, node *ast.UnaryExpression) (value.Value, error) {
	v, err := e.evalExpr(env, node.Right)
	if err != nil {
		return nil, err
	}
	switch node.Operator {
	case "-":
		n, isNa, ok := toNumber(v)
		if !ok {
			return nil, newError(TypeError, node.Pos(), "unary '-' requires a number")
		}
		if isNa {
			return value.Na, nil
		}
		return value.Number(-n), nil
	case "not":
		b, ok := toBool(v)
		if !ok {
			return nil, newError(TypeError, node.Pos(), "unary 'not' requires a bool")
		}
		return value.Bool(!b), nil
	default:
		return nil, newError(TypeError, node.Pos(), "unknown unary operator %q", node.Operator)
	}
}

func (e *Evaluator) evalBinary(env *value.Environment, node *ast.BinaryExpression) (value.Value, error) {
	switch node.Operator {
	case "and":
		l, err := e.evalExpr(env, node.Left)
		if err != nil {
			return nil, err
		}
		lb, ok := toBool(l)
		if !ok {
			return nil, newError(TypeError, node.Pos(), "'and' requires bool operands")
		}
		if !lb {
			return value.Bool(false), nil
		}
		r, err := e.evalExpr(env, node.Right)
		if err != nil {
			return nil, err
		}
		rb, ok := toBool(r)
		if !ok {
			return nil, newError(TypeError, node.Pos(), "'and' requires bool operands")
		}
		return value.Bool(rb), nil
	case "or":
		l, err := e.evalExpr(env, node.Left)
		if err != nil {
			return nil, err
		}
		lb, ok := toBool(l)
		if !ok {
			return nil, newError(TypeError, node.Pos(), "'or' requires bool operands")
		}
		if lb {
			return value.Bool(true), nil
		}
		r, err := e.evalExpr(env, node.Right)
		if err != nil {
			return nil, err
		}
		rb, ok := toBool(r)
		if !ok {
			return nil, newError(TypeError, node.Pos(), "'or' requires bool operands")
		}
		return value.Bool(rb), nil
	}

	l, err := e.evalExpr(env, node.Left)
	if err != nil {
		return nil, err
	}
	r, err := e.evalExpr(env, node.Right)
	if err != nil {
		return nil, err
	}

	switch node.Operator {
	case "==":
		return value.Bool(valuesEqual(l, r)), nil
	case "!=":
		return value.Bool(!valuesEqual(l, r)), nil
	case "+":
		if _, lIsStr := l.(value.String); lIsStr {
			return value.String(stringify(l) + stringify(r)), nil
		}
		if _, rIsStr := r.(value.String); rIsStr {
			return value.String(stringify(l) + stringify(r)), nil
		}
		return e.arith(node, l, r, func(a, b float64) float64 { return a + b })
	case "-":
		return e.arith(node, l, r, func(a, b float64) float64 { return a - b })
	case "*":
		return e.arith(node, l, r, func(a, b float64) float64 { return a * b })
	case "/":
		rn, isNa, ok := toNumber(r)
		if !ok {
			return nil, newError(TypeError, node.Pos(), "'/' requires number operands")
		}
		if !isNa && rn == 0 {
			return nil, newError(DivisionByZero, node.Pos(), "division by zero")
		}
		return e.arith(node, l, r, func(a, b float64) float64 { return a / b })
	case "%":
		rn, isNa, ok := toNumber(r)
		if !ok {
			return nil, newError(TypeError, node.Pos(), "'%%' requires number operands")
		}
		if !isNa && rn == 0 {
			return nil, newError(DivisionByZero, node.Pos(), "modulo by zero")
		}
		return e.arith(node, l, r, mod)
	case "<", ">", "<=", ">=":
		ln, lNa, lok := toNumber(l)
		rn, rNa, rok := toNumber(r)
		if !lok || !rok {
			return nil, newError(TypeError, node.Pos(), "comparison requires number operands")
		}
		if lNa || rNa {
			return value.Na, nil
		}
		switch node.Operator {
		case "<":
			return value.Bool(ln < rn), nil
		case ">":
			return value.Bool(ln > rn), nil
		case "<=":
			return value.Bool(ln <= rn), nil
		default:
			return value.Bool(ln >= rn), nil
		}
	default:
		return nil, newError(TypeError, node.Pos(), "unknown binary operator %q", node.Operator)
	}
}

func mod(a, b float64) float64 {
	r := a - b*float64(int64(a/b))
	return r
}

func (e *Evaluator) arith(node *ast.BinaryExpression, l, r value.Value, op func(a, b float64) float64) (value.Value, error) {
	ln, lNa, lok := toNumber(l)
	rn, rNa, rok := toNumber(r)
	if !lok || !rok {
		return nil, newError(TypeError, node.Pos(), "operator %q requires number operands", node.Operator)
	}
	if lNa || rNa {
		return value.Na, nil
	}
	return value.Number(op(ln, rn)), nil
}

func (e *Evaluator) evalIfExpression(env *value.Environment, node *ast.IfExpression) (value.Value, error) {
	cond, err := e.evalExpr(env, node.Condition)
	if err != nil {
		return nil, err
	}
	b, ok := toBool(cond)
	if !ok {
		return nil, newError(TypeError, node.Pos(), "if condition must be boolean")
	}
	if b {
		return e.evalExpr(env, node.Then)
	}
	for _, ei := range node.ElseIfs {
		c, err := e.evalExpr(env, ei.Condition)
		if err != nil {
			return nil, err
		}
		cb, ok := toBool(c)
		if !ok {
			return nil, newError(TypeError, node.Pos(), "else-if condition must be boolean")
		}
		if cb {
			return e.evalExpr(env, ei.Then)
		}
	}
	if node.Else != nil {
		return e.evalExpr(env, node.Else)
	}
	return value.Na, nil
}

func (e *Evaluator) evalSwitchExpression(env *value.Environment, node *ast.SwitchExpression) (value.Value, error) {
	scrutinee, err := e.evalExpr(env, node.Scrutinee)
	if err != nil {
		return nil, err
	}
	for _, c := range node.Cases {
		if c.Pattern == nil {
			return e.evalExpr(env, c.Result)
		}
		pv, err := e.evalExpr(env, c.Pattern)
		if err != nil {
			return nil, err
		}
		if valuesEqual(scrutinee, pv) {
			return e.evalExpr(env, c.Result)
		}
	}
	return value.Na, nil
}

func (e *Evaluator) evalIndex(env *value.Environment, node *ast.IndexExpression) (value.Value, error) {
	base, err := e.evalExpr(env, node.Base)
	if err != nil {
		return nil, err
	}
	idxVal, err := e.evalExpr(env, node.Index)
	if err != nil {
		return nil, err
	}
	switch b := base.(type) {
	case value.Array:
		idx, isNa, ok := toNumber(idxVal)
		if !ok || isNa {
			return nil, newError(TypeError, node.Pos(), "array index must be a number")
		}
		v, ok := b.Get(int(idx))
		if !ok {
			return nil, newError(IndexOutOfBounds, node.Pos(), "array index %d out of bounds (len %d)", int(idx), b.Len())
		}
		return v, nil
	case value.Series:
		offset, isNa, ok := toNumber(idxVal)
		if !ok || isNa || offset < 0 {
			return nil, newError(TypeError, node.Pos(), "series offset must be a non-negative number")
		}
		if int(offset) == 0 {
			return value.Number(b.Current), nil
		}
		v, ok := e.provider.Get(b.ID, int(offset))
		if !ok {
			return value.Na, nil
		}
		return value.Number(v), nil
	default:
		return nil, newError(TypeError, node.Pos(), "cannot index %s", base.Kind())
	}
}

func (e *Evaluator) evalMember(env *value.Environment, node *ast.MemberExpression) (value.Value, error) {
	obj, err := e.evalExpr(env, node.Object)
	if err != nil {
		return nil, err
	}
	switch o := obj.(type) {
	case value.Object:
		v, ok := o.Get(node.Name)
		if !ok {
			return nil, newError(UndefinedVariable, node.Pos(), "%s has no field %q", o.TypeName, node.Name)
		}
		return v, nil
	default:
		return nil, newError(TypeError, node.Pos(), "cannot access member %q on %s", node.Name, obj.Kind())
	}
}
