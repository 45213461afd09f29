// Package barcsv loads bar-data manifests for the CLI's run command.
//
// A manifest describes the sequence of bars a script is evaluated
// against. It can be authored as plain CSV (one row per bar) or as a
// YAML document (decoded with goccy/go-yaml) with an
// optional symbol/description header. The CLI's --set flag patches a
// YAML manifest in place before it is decoded, using tidwall/gjson and
// tidwall/sjson to favor structured text patches over bespoke flag
// parsing.
package barcsv

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/barscript/barscript/pkg/script"
)

// BarRecord is the on-disk shape of a single bar, shared by the CSV
// and YAML encodings.
type BarRecord struct {
	Time   string  `yaml:"time,omitempty" json:"time,omitempty"`
	Open   float64 `yaml:"open" json:"open"`
	High   float64 `yaml:"high" json:"high"`
	Low    float64 `yaml:"low" json:"low"`
	Close  float64 `yaml:"close" json:"close"`
	Volume float64 `yaml:"volume" json:"volume"`
}

// Manifest is the root YAML document shape: a symbol label plus the
// ordered list of bars to feed the script.
type Manifest struct {
	Symbol string      `yaml:"symbol,omitempty" json:"symbol,omitempty"`
	Bars   []BarRecord `yaml:"bars" json:"bars"`
}

// ToBars converts the manifest's records into script.Bar values in
// order.
func (m Manifest) ToBars() []script.Bar {
	bars := make([]script.Bar, len(m.Bars))
	for i, r := range m.Bars {
		bars[i] = script.Bar{Open: r.Open, High: r.High, Low: r.Low, Close: r.Close, Volume: r.Volume}
	}
	return bars
}

// LoadYAML reads a YAML bar manifest from path and decodes it.
func LoadYAML(path string) (Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Manifest{}, fmt.Errorf("barcsv: read %s: %w", path, err)
	}
	return DecodeYAML(data)
}

// DecodeYAML decodes a YAML bar manifest from raw bytes.
func DecodeYAML(data []byte) (Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return Manifest{}, fmt.Errorf("barcsv: decode yaml: %w", err)
	}
	return m, nil
}

// LoadCSV reads a CSV bar manifest from path. The first row must be a
// header naming the columns present; "open", "high", "low", "close"
// and "volume" are required, "time" is optional and ignored by
// ToBars.
func LoadCSV(path string) (Manifest, error) {
	f, err := os.Open(path)
	if err != nil {
		return Manifest{}, fmt.Errorf("barcsv: open %s: %w", path, err)
	}
	defer f.Close()
	return DecodeCSV(f)
}

// DecodeCSV decodes a CSV bar manifest from r.
func DecodeCSV(r io.Reader) (Manifest, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	header, err := cr.Read()
	if err != nil {
		return Manifest{}, fmt.Errorf("barcsv: read header: %w", err)
	}
	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, required := range []string{"open", "high", "low", "close", "volume"} {
		if _, ok := col[required]; !ok {
			return Manifest{}, fmt.Errorf("barcsv: csv manifest missing required column %q", required)
		}
	}
	var m Manifest
	timeCol, hasTime := col["time"]
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return Manifest{}, fmt.Errorf("barcsv: read row: %w", err)
		}
		rec := BarRecord{}
		if hasTime && timeCol < len(row) {
			rec.Time = row[timeCol]
		}
		rec.Open, err = parseCSVFloat(row, col, "open")
		if err != nil {
			return Manifest{}, err
		}
		rec.High, err = parseCSVFloat(row, col, "high")
		if err != nil {
			return Manifest{}, err
		}
		rec.Low, err = parseCSVFloat(row, col, "low")
		if err != nil {
			return Manifest{}, err
		}
		rec.Close, err = parseCSVFloat(row, col, "close")
		if err != nil {
			return Manifest{}, err
		}
		rec.Volume, err = parseCSVFloat(row, col, "volume")
		if err != nil {
			return Manifest{}, err
		}
		m.Bars = append(m.Bars, rec)
	}
	return m, nil
}

func parseCSVFloat(row []string, col map[string]int, name string) (float64, error) {
	idx := col[name]
	if idx >= len(row) {
		return 0, fmt.Errorf("barcsv: row missing column %q", name)
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(row[idx]), 64)
	if err != nil {
		return 0, fmt.Errorf("barcsv: column %q: %w", name, err)
	}
	return v, nil
}

// ApplyOverrides patches a YAML bar manifest with a list of "path=value"
// assignments (the CLI's --set flag, one per occurrence) before it is
// decoded. Paths follow gjson/sjson dotted-and-indexed syntax, e.g.
// "symbol" or "bars.0.close". Values are decoded as a number, then as a
// bool, when possible (so "105.25" becomes a number and "true" a bool);
// anything else is kept as a literal string.
func ApplyOverrides(yamlDoc []byte, sets []string) ([]byte, error) {
	if len(sets) == 0 {
		return yamlDoc, nil
	}
	var generic interface{}
	if err := yaml.Unmarshal(yamlDoc, &generic); err != nil {
		return nil, fmt.Errorf("barcsv: decode yaml for override: %w", err)
	}
	jsonDoc, err := json.Marshal(generic)
	if err != nil {
		return nil, fmt.Errorf("barcsv: convert manifest to json: %w", err)
	}
	for _, set := range sets {
		path, raw, ok := strings.Cut(set, "=")
		if !ok {
			return nil, fmt.Errorf("barcsv: --set %q must be path=value", set)
		}
		if strings.HasPrefix(path, "bars.") && !gjson.GetBytes(jsonDoc, path).Exists() {
			return nil, fmt.Errorf("barcsv: override path %q does not match any bar field", path)
		}
		jsonDoc, err = sjson.SetBytes(jsonDoc, path, overrideValue(raw))
		if err != nil {
			return nil, fmt.Errorf("barcsv: apply override %q: %w", set, err)
		}
	}
	var patchedGeneric interface{}
	if err := json.Unmarshal(jsonDoc, &patchedGeneric); err != nil {
		return nil, fmt.Errorf("barcsv: decode patched manifest json: %w", err)
	}
	patched, err := yaml.Marshal(patchedGeneric)
	if err != nil {
		return nil, fmt.Errorf("barcsv: convert patched manifest to yaml: %w", err)
	}
	return patched, nil
}

// overrideValue decodes raw as a number or bool when possible, falling
// back to the literal string so --set close=105.25 writes a number
// while --set symbol=ES writes a string.
func overrideValue(raw string) interface{} {
	if n, err := strconv.ParseFloat(raw, 64); err == nil {
		return n
	}
	if b, err := strconv.ParseBool(raw); err == nil {
		return b
	}
	return raw
}

// Load reads a bar manifest from path, dispatching on its extension
// (.csv for CSV, .yaml/.yml for YAML), applying any --set overrides
// first when the manifest is YAML.
func Load(path string, sets []string) (Manifest, error) {
	switch ext := strings.ToLower(extOf(path)); ext {
	case ".csv":
		if len(sets) > 0 {
			return Manifest{}, fmt.Errorf("barcsv: --set overrides are only supported for YAML manifests")
		}
		return LoadCSV(path)
	case ".yaml", ".yml":
		data, err := os.ReadFile(path)
		if err != nil {
			return Manifest{}, fmt.Errorf("barcsv: read %s: %w", path, err)
		}
		data, err = ApplyOverrides(data, sets)
		if err != nil {
			return Manifest{}, err
		}
		return DecodeYAML(data)
	default:
		return Manifest{}, fmt.Errorf("barcsv: unrecognized manifest extension %q", ext)
	}
}

func extOf(path string) string {
	i := strings.LastIndexByte(path, '.')
	if i < 0 {
		return ""
	}
	return path[i:]
}
