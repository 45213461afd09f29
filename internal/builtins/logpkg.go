package builtins

import (
	"github.com/barscript/barscript/internal/registry"
	"github.com/barscript/barscript/internal/value"
	"github.com/barscript/barscript/pkg/sink"
)

func logSig() registry.Signature {
	return registry.Signature{Params: []registry.ParamSpec{{Name: "message", Shape: registry.ShapeAny}}}
}

func logNamespace() value.Object {
	fns := map[string]value.BuiltinFunction{
		"info":    logAt("log.info", sink.Info),
		"warning": logAt("log.warning", sink.Warning),
		"error":   logAt("log.error", sink.Error),
	}
	return namespace("log", fns)
}

func logAt(name string, level sink.LogLevel) value.BuiltinFunction {
	return bindFn(name, logSig(), func(ctx value.EvalContext, bound []value.Value, _ []value.Value) (value.Value, error) {
		if ctx.Sink() != nil {
			ctx.Sink().AppendLog(level, tostring(bound[0]))
		}
		return value.Na, nil
	})
}
