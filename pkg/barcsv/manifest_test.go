package barcsv

import (
	"strings"
	"testing"
)

func TestDecodeCSV(t *testing.T) {
	doc := "time,open,high,low,close,volume\n" +
		"2024-01-01,10,12,9,11,1000\n" +
		"2024-01-02,11,13,10,12.5,1500\n"
	m, err := DecodeCSV(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("DecodeCSV: %v", err)
	}
	if len(m.Bars) != 2 {
		t.Fatalf("got %d bars, want 2", len(m.Bars))
	}
	if m.Bars[1].Close != 12.5 {
		t.Fatalf("bar 1 close = %v, want 12.5", m.Bars[1].Close)
	}
	bars := m.ToBars()
	if bars[0].High != 12 {
		t.Fatalf("bar 0 high = %v, want 12", bars[0].High)
	}
}

func TestDecodeCSVMissingColumn(t *testing.T) {
	doc := "open,high,low,close\n1,2,0.5,1.5\n"
	if _, err := DecodeCSV(strings.NewReader(doc)); err == nil {
		t.Fatal("expected error for missing volume column")
	}
}

func TestDecodeYAML(t *testing.T) {
	doc := `
symbol: ES
bars:
  - open: 10
    high: 12
    low: 9
    close: 11
    volume: 1000
  - open: 11
    high: 13
    low: 10
    close: 12.5
    volume: 1500
`
	m, err := DecodeYAML([]byte(doc))
	if err != nil {
		t.Fatalf("DecodeYAML: %v", err)
	}
	if m.Symbol != "ES" {
		t.Fatalf("symbol = %q, want ES", m.Symbol)
	}
	if len(m.Bars) != 2 {
		t.Fatalf("got %d bars, want 2", len(m.Bars))
	}
}

func TestApplyOverrides(t *testing.T) {
	doc := `
symbol: ES
bars:
  - open: 10
    high: 12
    low: 9
    close: 11
    volume: 1000
`
	patched, err := ApplyOverrides([]byte(doc), []string{"bars.0.close=105.25", "symbol=NQ"})
	if err != nil {
		t.Fatalf("ApplyOverrides: %v", err)
	}
	m, err := DecodeYAML(patched)
	if err != nil {
		t.Fatalf("DecodeYAML(patched): %v", err)
	}
	if m.Symbol != "NQ" {
		t.Fatalf("symbol = %q, want NQ", m.Symbol)
	}
	if m.Bars[0].Close != 105.25 {
		t.Fatalf("close = %v, want 105.25", m.Bars[0].Close)
	}
}

func TestApplyOverridesRejectsUnknownBarField(t *testing.T) {
	doc := "bars:\n  - open: 1\n    high: 1\n    low: 1\n    close: 1\n    volume: 1\n"
	if _, err := ApplyOverrides([]byte(doc), []string{"bars.5.close=1"}); err == nil {
		t.Fatal("expected error for out-of-range bar index")
	}
}
