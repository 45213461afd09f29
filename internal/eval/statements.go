package eval

import (
	"github.com/barscript/barscript/internal/value"
	"github.com/barscript/barscript/pkg/ast"
)

// execStatement executes one statement against env. Loop bodies call this
// per statement so break/continue signals can unwind to the nearest loop
// without an explicit control-flow return value.
func (e *Evaluator) execStatement(env *value.Environment, stmt ast.Statement) error {
	switch s := stmt.(type) {
	case *ast.VarDecl:
		return e.execVarDecl(env, s)
	case *ast.Assignment:
		return e.execAssignment(env, s)
	case *ast.TupleAssignment:
		return e.execTupleAssignment(env, s)
	case *ast.ExpressionStatement:
		if s.Expression == nil {
			return nil
		}
		_, err := e.evalExpr(env, s.Expression)
		return err
	case *ast.IfStatement:
		return e.execIfStatement(env, s)
	case *ast.ForRangeStatement:
		return e.execForRange(env, s)
	case *ast.ForEachStatement:
		return e.execForEach(env, s)
	case *ast.WhileStatement:
		return e.execWhile(env, s)
	case *ast.BreakStatement:
		return breakSignal{}
	case *ast.ContinueStatement:
		return continueSignal{}
	case *ast.TypeDecl:
		env.Define(s.Name, value.Type{Name: s.Name, Fields: s.Fields})
		return nil
	case *ast.EnumDecl:
		return e.execEnumDecl(env, s)
	case *ast.MethodDecl:
		params := make([]string, len(s.Parameters))
		for i, p := range s.Parameters {
			params[i] = p.Value
		}
		env.Define(s.Name, value.Function{Params: params, Body: s.Body, Closure: env})
		return nil
	case *ast.FunctionDecl:
		params := make([]string, len(s.Parameters))
		for i, p := range s.Parameters {
			params[i] = p.Value
		}
		env.Define(s.Name, value.Function{Params: params, Body: s.Body, Closure: env})
		return nil
	default:
		return newError(TypeError, stmt.Pos(), "unsupported statement node %T", stmt)
	}
}

// execVarDecl implements ordinary var re-evaluation every bar versus varip
// persistence across bars: varip only runs Init the first time it reaches
// this binding site.
func (e *Evaluator) execVarDecl(env *value.Environment, s *ast.VarDecl) error {
	if s.Persistent && env.Has(s.Name) {
		return nil
	}
	var v value.Value = value.Na
	if s.Init != nil {
		val, err := e.evalExpr(env, s.Init)
		if err != nil {
			return err
		}
		v = val
	}
	env.Define(s.Name, v)
	return nil
}

func (e *Evaluator) execAssignment(env *value.Environment, s *ast.Assignment) error {
	v, err := e.evalExpr(env, s.Value)
	if err != nil {
		return err
	}
	return e.assignTo(env, s.Target, v)
}

func (e *Evaluator) assignTo(env *value.Environment, target ast.Expression, v value.Value) error {
	switch t := target.(type) {
	case *ast.Identifier:
		env.Set(t.Value, v)
		return nil
	case *ast.IndexExpression:
		base, err := e.evalExpr(env, t.Base)
		if err != nil {
			return err
		}
		idxVal, err := e.evalExpr(env, t.Index)
		if err != nil {
			return err
		}
		idx, isNa, ok := toNumber(idxVal)
		if !ok || isNa {
			return newError(TypeError, t.Pos(), "array index must be a number")
		}
		arr, ok := base.(value.Array)
		if !ok {
			return newError(TypeError, t.Pos(), "cannot index-assign into %s", base.Kind())
		}
		if !arr.Set(int(idx), v) {
			return newError(IndexOutOfBounds, t.Pos(), "array index %d out of bounds (len %d)", int(idx), arr.Len())
		}
		return nil
	case *ast.MemberExpression:
		obj, err := e.evalExpr(env, t.Object)
		if err != nil {
			return err
		}
		o, ok := obj.(value.Object)
		if !ok {
			return newError(TypeError, t.Pos(), "cannot assign member %q on %s", t.Name, obj.Kind())
		}
		o.Set(t.Name, v)
		return nil
	default:
		return newError(TypeError, target.Pos(), "invalid assignment target")
	}
}

// execTupleAssignment destructures an Array-valued expression into Names,
// Na-padding any names beyond the array's length.
func (e *Evaluator) execTupleAssignment(env *value.Environment, s *ast.TupleAssignment) error {
	v, err := e.evalExpr(env, s.Value)
	if err != nil {
		return err
	}
	arr, ok := v.(value.Array)
	if !ok {
		return newError(TypeError, s.Pos(), "tuple assignment requires an array value")
	}
	for i, name := range s.Names {
		elem, ok := arr.Get(i)
		if !ok {
			elem = value.Na
		}
		env.Set(name, elem)
	}
	return nil
}

func (e *Evaluator) execBlock(env *value.Environment, body []ast.Statement) error {
	for _, stmt := range body {
		if err := e.execStatement(env, stmt); err != nil {
			return err
		}
	}
	return nil
}

func (e *Evaluator) execIfStatement(env *value.Environment, s *ast.IfStatement) error {
	cond, err := e.evalExpr(env, s.Condition)
	if err != nil {
		return err
	}
	b, ok := toBool(cond)
	if !ok {
		return newError(TypeError, s.Pos(), "if condition must be boolean")
	}
	if b {
		return e.execBlock(env.NewChild(), s.Then)
	}
	for _, ei := range s.ElseIfs {
		c, err := e.evalExpr(env, ei.Condition)
		if err != nil {
			return err
		}
		cb, ok := toBool(c)
		if !ok {
			return newError(TypeError, s.Pos(), "else-if condition must be boolean")
		}
		if cb {
			return e.execBlock(env.NewChild(), ei.Body)
		}
	}
	if s.Else != nil {
		return e.execBlock(env.NewChild(), s.Else)
	}
	return nil
}

// execForRange runs an inclusive `for v = lo to hi` loop, stepping +1.
// lo must not exceed hi.
func (e *Evaluator) execForRange(env *value.Environment, s *ast.ForRangeStatement) error {
	loVal, err := e.evalExpr(env, s.Lo)
	if err != nil {
		return err
	}
	hiVal, err := e.evalExpr(env, s.Hi)
	if err != nil {
		return err
	}
	lo, loNa, loOk := toNumber(loVal)
	hi, hiNa, hiOk := toNumber(hiVal)
	if !loOk || !hiOk || loNa || hiNa {
		return newError(InvalidForLoop, s.Pos(), "for-range bounds must be numbers")
	}
	if lo > hi {
		return newError(InvalidForLoop, s.Pos(), "for-range requires from <= to, got %v to %v", lo, hi)
	}
	for v := lo; v <= hi; v++ {
		frame := env.NewChild()
		frame.Define(s.Var, value.Number(v))
		if err := e.execBlock(frame, s.Body); err != nil {
			if _, ok := err.(breakSignal); ok {
				break
			}
			if _, ok := err.(continueSignal); ok {
				continue
			}
			return err
		}
	}
	return nil
}

// execForEach runs `for [i, v] in coll` / `for v in coll` over an Array.
func (e *Evaluator) execForEach(env *value.Environment, s *ast.ForEachStatement) error {
	collVal, err := e.evalExpr(env, s.Collection)
	if err != nil {
		return err
	}
	arr, ok := collVal.(value.Array)
	if !ok {
		return newError(TypeError, s.Pos(), "for-each requires an array collection")
	}
	for i, elem := range arr.Elements() {
		frame := env.NewChild()
		if s.IndexVar != "" {
			frame.Define(s.IndexVar, value.Number(i))
		}
		frame.Define(s.ItemVar, elem)
		if err := e.execBlock(frame, s.Body); err != nil {
			if _, ok := err.(breakSignal); ok {
				break
			}
			if _, ok := err.(continueSignal); ok {
				continue
			}
			return err
		}
	}
	return nil
}

func (e *Evaluator) execWhile(env *value.Environment, s *ast.WhileStatement) error {
	for {
		cond, err := e.evalExpr(env, s.Condition)
		if err != nil {
			return err
		}
		b, ok := toBool(cond)
		if !ok {
			return newError(TypeError, s.Pos(), "while condition must be boolean")
		}
		if !b {
			return nil
		}
		frame := env.NewChild()
		if err := e.execBlock(frame, s.Body); err != nil {
			if _, ok := err.(breakSignal); ok {
				return nil
			}
			if _, ok := err.(continueSignal); ok {
				continue
			}
			return err
		}
	}
}

// execEnumDecl binds Name to an Object whose fields are each variant.
func (e *Evaluator) execEnumDecl(env *value.Environment, s *ast.EnumDecl) error {
	obj := value.NewObject(s.Name)
	for _, f := range s.Fields {
		obj.Set(f.Name, value.Enum{EnumName: s.Name, Variant: f.Name, Title: f.Title})
	}
	env.Define(s.Name, obj)
	return nil
}
