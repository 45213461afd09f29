package builtins

import (
	"testing"

	"github.com/barscript/barscript/internal/value"
	"github.com/barscript/barscript/pkg/provider"
	"github.com/barscript/barscript/pkg/sink"
)

// fakeCtx is a minimal value.EvalContext for exercising builtins that read
// through the historical-data provider, without pulling in internal/eval
// (which itself depends on this package).
type fakeCtx struct {
	p provider.HistoricalProvider
	s sink.OutputSink
}

func (c fakeCtx) Provider() provider.HistoricalProvider           { return c.p }
func (c fakeCtx) Sink() sink.OutputSink                           { return c.s }
func (c fakeCtx) Lookup(name string) (value.Value, bool)          { return nil, false }
func (c fakeCtx) CallFunction(fn value.Function, args []value.Arg) (value.Value, error) {
	return value.Na, nil
}
func (c fakeCtx) CurrentBar() int { return 0 }

func taFn(t *testing.T, name string) value.BuiltinFunction {
	return nsFn(t, taNamespace(), name)
}

func taContext(closes ...float64) value.EvalContext {
	p := provider.NewRingBufferProvider(64)
	for _, c := range closes {
		p.Push("close", c)
	}
	return fakeCtx{p: p, s: sink.NewDefaultSink()}
}

func TestTaSmaAveragesLookbackWindow(t *testing.T) {
	ctx := taContext(10, 20, 30)
	args := []value.Arg{
		{Value: value.Series{ID: "close", Current: 30}},
		{Value: value.Number(3)},
	}
	got, err := taFn(t, "sma").Fn(ctx, args)
	if err != nil {
		t.Fatalf("ta.sma: %v", err)
	}
	if got != value.Number(20) {
		t.Errorf("ta.sma = %v, want 20", got)
	}
}

func TestTaHighestAndLowest(t *testing.T) {
	ctx := taContext(5, 15, 3)
	args := []value.Arg{
		{Value: value.Series{ID: "close", Current: 3}},
		{Value: value.Number(3)},
	}
	hi, err := taFn(t, "highest").Fn(ctx, args)
	if err != nil {
		t.Fatalf("ta.highest: %v", err)
	}
	if hi != value.Number(15) {
		t.Errorf("ta.highest = %v, want 15", hi)
	}
	lo, err := taFn(t, "lowest").Fn(ctx, args)
	if err != nil {
		t.Fatalf("ta.lowest: %v", err)
	}
	if lo != value.Number(3) {
		t.Errorf("ta.lowest = %v, want 3", lo)
	}
}

func TestTaWithInsufficientHistoryIsNa(t *testing.T) {
	ctx := taContext()
	args := []value.Arg{
		{Value: value.Series{ID: "close", Current: 1}},
		{Value: value.Number(14)},
	}
	got, err := taFn(t, "sma").Fn(ctx, args)
	if err != nil {
		t.Fatalf("ta.sma: %v", err)
	}
	if got != value.Na {
		t.Errorf("ta.sma with no history = %v, want Na", got)
	}
}

func TestTaChangeComparesAgainstOffset(t *testing.T) {
	ctx := taContext(10, 15)
	args := []value.Arg{
		{Value: value.Series{ID: "close", Current: 20}},
		{Value: value.Number(1)},
	}
	got, err := taFn(t, "change").Fn(ctx, args)
	if err != nil {
		t.Fatalf("ta.change: %v", err)
	}
	if got != value.Number(10) {
		t.Errorf("ta.change = %v, want 10", got)
	}
}
