package cmd

import (
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"

	"github.com/barscript/barscript/pkg/script"
)

// TestRunSnapshot exercises the compile/execute path cmd `run` drives and
// snapshots the sink's rendered contents with go-snaps for regression
// coverage.
func TestRunSnapshot(t *testing.T) {
	const source = `
var sum = 0
for i = 1 to 5
    sum := sum + i
log.info(str.tostring(sum))
plot.plot(close, title="close")
`
	scr, err := script.Compile(source)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}

	bars := []script.Bar{
		{Open: 100, High: 105, Low: 99, Close: 101, Volume: 1000},
		{Open: 101, High: 106, Low: 100, Close: 103, Volume: 1200},
	}

	for i, bar := range bars {
		if _, err := scr.Execute(bar); err != nil {
			t.Fatalf("Execute(bar %d): %v", i, err)
		}
	}

	s := scr.Sink()
	snaps.MatchSnapshot(t, "logs", s.Logs())
	snaps.MatchSnapshot(t, "plots", s.Plots())
}
