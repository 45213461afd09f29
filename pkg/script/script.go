// Package script provides a compile-once, execute-per-bar façade: Compile
// parses source into a Program and wires a long-lived Evaluator around it;
// Execute publishes one bar's OHLCV bindings and re-runs the Program
// against that shared evaluator state.
package script

import (
	"github.com/barscript/barscript/internal/eval"
	"github.com/barscript/barscript/internal/value"
	"github.com/barscript/barscript/internal/lexer"
	"github.com/barscript/barscript/internal/parser"
	"github.com/barscript/barscript/pkg/ast"
	"github.com/barscript/barscript/pkg/provider"
	"github.com/barscript/barscript/pkg/sink"
)

// Reserved series identifiers published every bar.
const (
	SeriesOpen   = "open"
	SeriesHigh   = "high"
	SeriesLow    = "low"
	SeriesClose  = "close"
	SeriesVolume = "volume"
)

// defaultHistoryCapacity bounds how many past bars the built-in ring
// buffer provider retains per series when the caller doesn't supply its
// own HistoricalProvider.
const defaultHistoryCapacity = 512

// Bar is one OHLCV sample, the unit of evaluator re-execution (spec
// GLOSSARY, "Bar").
type Bar struct {
	Open, High, Low, Close, Volume float64
}

// Script holds a compiled Program and the long-lived Evaluator state that
// persists across Execute calls (varip bindings, the output sink).
type Script struct {
	program  *ast.Program
	eval     *eval.Evaluator
	provider *provider.RingBufferProvider
	sink     sink.OutputSink
}

// Option configures a Script at Compile time.
type Option func(*Script)

// WithSink overrides the default sink.DefaultSink.
func WithSink(s sink.OutputSink) Option {
	return func(scr *Script) { scr.sink = s }
}

// WithHistoryCapacity overrides how many bars of history the built-in
// ring-buffer provider retains per series.
func WithHistoryCapacity(n int) Option {
	return func(scr *Script) {
		scr.provider = provider.NewRingBufferProvider(n)
		scr.eval.SetProvider(scr.provider)
	}
}

// WithProvider replaces the historical-data provider entirely; the
// caller becomes responsible for pushing each bar's series values into it
// before Execute, since Script no longer owns the built-in ring buffer.
func WithProvider(p provider.HistoricalProvider) Option {
	return func(scr *Script) {
		scr.provider = nil
		scr.eval.SetProvider(p)
	}
}

// Compile lexes and parses source, returning a *CompileError wrapping
// every lexical or syntax error found. A
// successful compile always returns a ready-to-execute Script.
func Compile(source string, opts ...Option) (*Script, error) {
	l := lexer.New(source)
	tokens, lexErr := l.Tokenize()
	if lexErr != nil {
		if lexErrs := l.Errors(); len(lexErrs) > 0 {
			return nil, lexCompileError(source, "", lexErrs)
		}
		return nil, lexErr
	}

	p := parser.New(tokens)
	program, parseErrs := p.Parse()
	if len(parseErrs) > 0 {
		return nil, parseCompileError(source, "", parseErrs)
	}

	scr := &Script{
		program:  program,
		provider: provider.NewRingBufferProvider(defaultHistoryCapacity),
		sink:     sink.NewDefaultSink(),
	}
	scr.eval = eval.New(scr.provider, scr.sink)
	for _, opt := range opts {
		opt(scr)
	}
	if scr.sink != scr.eval.Sink() {
		scr.eval.SetSink(scr.sink)
	}
	return scr, nil
}

// Execute publishes bar's OHLCV bindings as Series values carrying their
// reserved series id (so `close[1]` resolves through the historical-data
// provider), pushes the same samples into the built-in ring
// buffer provider when one is in use, re-runs the Program once, and
// returns the populated output sink. It is re-enterable: Evaluator state
// (varip bindings, the sink unless the host clears it) carries forward to
// the next call.
func (s *Script) Execute(bar Bar) (sink.OutputSink, error) {
	if s.provider != nil {
		s.provider.Push(SeriesOpen, bar.Open)
		s.provider.Push(SeriesHigh, bar.High)
		s.provider.Push(SeriesLow, bar.Low)
		s.provider.Push(SeriesClose, bar.Close)
		s.provider.Push(SeriesVolume, bar.Volume)
	}
	s.eval.Publish(SeriesOpen, value.Series{ID: SeriesOpen, Current: bar.Open})
	s.eval.Publish(SeriesHigh, value.Series{ID: SeriesHigh, Current: bar.High})
	s.eval.Publish(SeriesLow, value.Series{ID: SeriesLow, Current: bar.Low})
	s.eval.Publish(SeriesClose, value.Series{ID: SeriesClose, Current: bar.Close})
	s.eval.Publish(SeriesVolume, value.Series{ID: SeriesVolume, Current: bar.Volume})

	if err := s.eval.Run(s.program); err != nil {
		return s.Sink(), err
	}
	return s.Sink(), nil
}

// ExecuteBars runs bars through Execute in order. It is not atomic: an
// error aborts the remainder, leaving already-produced sink output in
// place.
func (s *Script) ExecuteBars(bars []Bar) error {
	for _, bar := range bars {
		if _, err := s.Execute(bar); err != nil {
			return err
		}
	}
	return nil
}

// Sink returns the evaluator's current output sink.
func (s *Script) Sink() sink.OutputSink { return s.eval.Sink() }

// Program returns the compiled AST, e.g. for the CLI's `ast` subcommand.
func (s *Script) Program() *ast.Program { return s.program }
