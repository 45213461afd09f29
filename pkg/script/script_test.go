package script

import (
	"testing"
)

func TestCompileAndExecuteBars(t *testing.T) {
	source := "varip total = 0\n" +
		"total := total + close\n" +
		"plot.plot(total, \"running total\")\n"

	scr, err := Compile(source)
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}

	bars := []Bar{{Close: 1}, {Close: 2}, {Close: 3}}
	if err := scr.ExecuteBars(bars); err != nil {
		t.Fatalf("ExecuteBars() error = %v", err)
	}

	plots := scr.Sink().Plots()
	if len(plots) != len(bars) {
		t.Fatalf("got %d plots, want %d", len(plots), len(bars))
	}
	want := []float64{1, 3, 6}
	for i, p := range plots {
		if p.Value != want[i] {
			t.Errorf("plot[%d].Value = %v, want %v", i, p.Value, want[i])
		}
	}
}

func TestExecutePublishesOHLCV(t *testing.T) {
	source := "log.info(str.format(\"{0} {1} {2} {3} {4}\", open, high, low, close, volume))\n"

	scr, err := Compile(source)
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}

	sink, err := scr.Execute(Bar{Open: 1, High: 2, Low: 0.5, Close: 1.5, Volume: 100})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	logs := sink.Logs()
	if len(logs) != 1 {
		t.Fatalf("got %d log entries, want 1", len(logs))
	}
}

func TestExecuteBarsAbortsOnError(t *testing.T) {
	source := "x = 1 / 0\n"

	scr, err := Compile(source)
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}

	if err := scr.ExecuteBars([]Bar{{}, {}}); err == nil {
		t.Fatal("ExecuteBars() error = nil, want division-by-zero error")
	}
}

func TestCompileReportsLexAndParseErrors(t *testing.T) {
	tests := []struct {
		name   string
		source string
	}{
		{name: "unterminated string", source: "x = \"unterminated\n"},
		{name: "unexpected token", source: "x = )\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Compile(tt.source)
			if err == nil {
				t.Fatal("Compile() error = nil, want a CompileError")
			}
			if _, ok := err.(*CompileError); !ok {
				t.Fatalf("Compile() error type = %T, want *CompileError", err)
			}
		})
	}
}

func TestHistoricalLookback(t *testing.T) {
	source := "plot.plot(close[1], \"prev close\")\n"

	scr, err := Compile(source)
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}

	bars := []Bar{{Close: 10}, {Close: 20}, {Close: 30}}
	if err := scr.ExecuteBars(bars); err != nil {
		t.Fatalf("ExecuteBars() error = %v", err)
	}

	plots := scr.Sink().Plots()
	if len(plots) != 2 {
		t.Fatalf("got %d plots, want 2", len(plots))
	}
	// Bar 0 has no prior history: close[1] is Na there and plot.plot
	// records nothing, so the plots come from bars 1 and 2.
	if plots[0].Value != 10 {
		t.Errorf("plots[0].Value = %v, want 10", plots[0].Value)
	}
	if plots[1].Value != 20 {
		t.Errorf("plots[1].Value = %v, want 20", plots[1].Value)
	}
}
