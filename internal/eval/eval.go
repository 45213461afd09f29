package eval

import (
	"github.com/barscript/barscript/internal/builtins"
	"github.com/barscript/barscript/internal/value"
	"github.com/barscript/barscript/pkg/ast"
	"github.com/barscript/barscript/pkg/provider"
	"github.com/barscript/barscript/pkg/sink"
)

// Evaluator executes a Program once per bar against a single, long-lived
// environment. Ordinary declarations re-initialise every bar; varip
// declarations persist.
type Evaluator struct {
	Root       *value.Environment
	provider   provider.HistoricalProvider
	sink       sink.OutputSink
	currentBar int
}

// New creates an Evaluator with the builtin namespace registry
// (math/str/ta/array/color/log/plot/box/label/currency/time) pre-populated
// into the root environment.
func New(p provider.HistoricalProvider, s sink.OutputSink) *Evaluator {
	root := value.NewEnvironment()
	for name, ns := range builtins.Namespaces() {
		root.Define(name, ns)
	}
	for name, fn := range builtins.Globals() {
		root.Define(name, fn)
	}
	return &Evaluator{Root: root, provider: p, sink: s}
}

// SetProvider swaps the historical-data provider used for the next Run.
func (e *Evaluator) SetProvider(p provider.HistoricalProvider) { e.provider = p }

// SetSink swaps the output sink used for the next Run.
func (e *Evaluator) SetSink(s sink.OutputSink) { e.sink = s }

// Sink returns the evaluator's current output sink.
func (e *Evaluator) Sink() sink.OutputSink { return e.sink }

// --- value.EvalContext ---

func (e *Evaluator) Provider() provider.HistoricalProvider { return e.provider }

func (e *Evaluator) Lookup(name string) (value.Value, bool) { return e.Root.Get(name) }

func (e *Evaluator) CurrentBar() int { return e.currentBar }

func (e *Evaluator) CallFunction(fn value.Function, args []value.Arg) (value.Value, error) {
	return e.callFunction(fn, args)
}

var _ value.EvalContext = (*Evaluator)(nil)

// Run executes every top-level statement of program in order against the
// root environment, incrementing the bar counter first. It returns the
// first run-time error, if any.
func (e *Evaluator) Run(program *ast.Program) error {
	e.currentBar++
	for _, stmt := range program.Statements {
		if err := e.execStatement(e.Root, stmt); err != nil {
			return err
		}
	}
	return nil
}

// Publish binds name to v in the root environment before Run, used by the
// façade to seed OHLCV inputs each bar.
func (e *Evaluator) Publish(name string, v value.Value) {
	e.Root.Define(name, v)
}
