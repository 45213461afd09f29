package builtins

import (
	"math"

	"github.com/barscript/barscript/internal/registry"
	"github.com/barscript/barscript/internal/value"
)

// lookback collects up to length historical samples of seriesID from the
// evaluator's provider, current bar first, stopping at the first offset
// where the provider reports no value.
func lookback(ctx value.EvalContext, seriesID string, length int) []float64 {
	out := make([]float64, 0, length)
	for i := 0; i < length; i++ {
		v, ok := ctx.Provider().Get(seriesID, i)
		if !ok {
			break
		}
		out = append(out, v)
	}
	return out
}

func seriesArg(v value.Value) (string, bool) {
	s, ok := v.(value.Series)
	if !ok {
		return "", false
	}
	return s.ID, true
}

func taSig(lenDefault int) registry.Signature {
	return registry.Signature{Params: []registry.ParamSpec{
		{Name: "source", Shape: registry.ShapeAny},
		{Name: "length", Shape: registry.ShapeNumber, Default: value.Number(float64(lenDefault))},
	}}
}

func taNamespace() value.Object {
	fns := map[string]value.BuiltinFunction{
		"sma": bindFn("ta.sma", taSig(14), func(ctx value.EvalContext, bound []value.Value, _ []value.Value) (value.Value, error) {
			id, n, ok := seriesAndLength(bound)
			if !ok {
				return value.Na, nil
			}
			samples := lookback(ctx, id, n)
			if len(samples) == 0 {
				return value.Na, nil
			}
			var sum float64
			for _, s := range samples {
				sum += s
			}
			return value.Number(sum / float64(len(samples))), nil
		}),
		"ema": bindFn("ta.ema", taSig(14), func(ctx value.EvalContext, bound []value.Value, _ []value.Value) (value.Value, error) {
			id, n, ok := seriesAndLength(bound)
			if !ok {
				return value.Na, nil
			}
			samples := lookback(ctx, id, n)
			if len(samples) == 0 {
				return value.Na, nil
			}
			alpha := 2.0 / float64(n+1)
			ema := samples[len(samples)-1]
			for i := len(samples) - 2; i >= 0; i-- {
				ema = alpha*samples[i] + (1-alpha)*ema
			}
			return value.Number(ema), nil
		}),
		"rsi": bindFn("ta.rsi", taSig(14), func(ctx value.EvalContext, bound []value.Value, _ []value.Value) (value.Value, error) {
			id, n, ok := seriesAndLength(bound)
			if !ok {
				return value.Na, nil
			}
			samples := lookback(ctx, id, n+1)
			if len(samples) < 2 {
				return value.Na, nil
			}
			var gains, losses float64
			for i := 0; i < len(samples)-1; i++ {
				diff := samples[i] - samples[i+1]
				if diff > 0 {
					gains += diff
				} else {
					losses -= diff
				}
			}
			count := float64(len(samples) - 1)
			avgGain, avgLoss := gains/count, losses/count
			if avgLoss == 0 {
				return value.Number(100), nil
			}
			rs := avgGain / avgLoss
			return value.Number(100 - 100/(1+rs)), nil
		}),
		"highest": extremum("ta.highest", math.Inf(-1), func(a, b float64) bool { return b > a }),
		"lowest":  extremum("ta.lowest", math.Inf(1), func(a, b float64) bool { return b < a }),
		"change": bindFn("ta.change", registry.Signature{Params: []registry.ParamSpec{
			{Name: "source", Shape: registry.ShapeAny},
			{Name: "length", Shape: registry.ShapeNumber, Default: value.Number(1)},
		}}, func(ctx value.EvalContext, bound []value.Value, _ []value.Value) (value.Value, error) {
			s, ok := bound[0].(value.Series)
			n, lenOk := asNumber(bound[1])
			if !ok || !lenOk {
				return value.Na, nil
			}
			prev, ok := ctx.Provider().Get(s.ID, int(n))
			if !ok {
				return value.Na, nil
			}
			return value.Number(s.Current - prev), nil
		}),
		"stdev": bindFn("ta.stdev", taSig(14), func(ctx value.EvalContext, bound []value.Value, _ []value.Value) (value.Value, error) {
			id, n, ok := seriesAndLength(bound)
			if !ok {
				return value.Na, nil
			}
			samples := lookback(ctx, id, n)
			if len(samples) == 0 {
				return value.Na, nil
			}
			var sum float64
			for _, s := range samples {
				sum += s
			}
			mean := sum / float64(len(samples))
			var sq float64
			for _, s := range samples {
				sq += (s - mean) * (s - mean)
			}
			return value.Number(math.Sqrt(sq / float64(len(samples)))), nil
		}),
		"atr": bindFn("ta.atr", registry.Signature{Params: []registry.ParamSpec{
			{Name: "high", Shape: registry.ShapeAny},
			{Name: "low", Shape: registry.ShapeAny},
			{Name: "close", Shape: registry.ShapeAny},
			{Name: "length", Shape: registry.ShapeNumber, Default: value.Number(14)},
		}}, func(ctx value.EvalContext, bound []value.Value, _ []value.Value) (value.Value, error) {
			hID, ok1 := seriesArg(bound[0])
			lID, ok2 := seriesArg(bound[1])
			cID, ok3 := seriesArg(bound[2])
			ln, ok4 := asNumber(bound[3])
			if !ok1 || !ok2 || !ok3 || !ok4 {
				return value.Na, nil
			}
			n := int(ln)
			highs := lookback(ctx, hID, n+1)
			lows := lookback(ctx, lID, n+1)
			closes := lookback(ctx, cID, n+1)
			limit := len(highs)
			if len(lows) < limit {
				limit = len(lows)
			}
			if len(closes) < limit {
				limit = len(closes)
			}
			if limit < 2 {
				return value.Na, nil
			}
			var sum float64
			count := 0
			for i := 0; i < limit-1; i++ {
				tr := math.Max(highs[i]-lows[i], math.Max(math.Abs(highs[i]-closes[i+1]), math.Abs(lows[i]-closes[i+1])))
				sum += tr
				count++
			}
			if count == 0 {
				return value.Na, nil
			}
			return value.Number(sum / float64(count)), nil
		}),
	}
	return namespace("ta", fns)
}

func seriesAndLength(bound []value.Value) (id string, length int, ok bool) {
	id, ok = seriesArg(bound[0])
	if !ok {
		return "", 0, false
	}
	n, ok := asNumber(bound[1])
	if !ok {
		return "", 0, false
	}
	return id, int(n), true
}

func extremum(name string, seed float64, better func(cur, candidate float64) bool) value.BuiltinFunction {
	return bindFn(name, taSig(14), func(ctx value.EvalContext, bound []value.Value, _ []value.Value) (value.Value, error) {
		id, n, ok := seriesAndLength(bound)
		if !ok {
			return value.Na, nil
		}
		samples := lookback(ctx, id, n)
		if len(samples) == 0 {
			return value.Na, nil
		}
		best := seed
		for _, s := range samples {
			if better(best, s) {
				best = s
			}
		}
		return value.Number(best), nil
	})
}
