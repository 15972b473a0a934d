// Package source reads and writes messbook data dumps.
//
// A dump is one JSON object mapping storage keys to their values. Two shapes
// are accepted on import:
//   - native:       {"members": [...], "mealBudget": 3000}
//   - localStorage: {"members": "[...]", "mealBudget": "3000"}
//
// The second is what a browser localStorage export of the web dashboard
// produces, where every value is a JSON document encoded as a string.
package source

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/theirongolddev/messbook/internal/records"
)

// Dump maps storage keys to raw JSON values.
type Dump map[string]json.RawMessage

// Keys returns the dump's keys in sorted order.
func (d Dump) Keys() []string {
	keys := make([]string, 0, len(d))
	for k := range d {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Skipped records one key that was not imported.
type Skipped struct {
	Key    string
	Reason string
}

// ParseResult holds the output of parsing a single dump.
type ParseResult struct {
	Dump    Dump
	Skipped []Skipped
	Err     error
}

// ParseFile reads a dump file from disk.
func ParseFile(path string) ParseResult {
	f, err := os.Open(path)
	if err != nil {
		return ParseResult{Err: err}
	}
	defer func() { _ = f.Close() }()
	return Parse(f)
}

// Parse decodes a dump. Unknown keys and values of the wrong shape are
// reported in Skipped rather than failing the whole dump; only a document
// that is not a JSON object is an error.
func Parse(r io.Reader) ParseResult {
	var raw map[string]json.RawMessage
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return ParseResult{Err: fmt.Errorf("decoding dump: %w", err)}
	}

	res := ParseResult{Dump: make(Dump, len(raw))}
	for _, key := range Dump(raw).Keys() {
		if !knownKey(key) {
			res.Skipped = append(res.Skipped, Skipped{Key: key, Reason: "unknown key"})
			continue
		}
		val := unwrapString(raw[key])
		if reason := checkShape(key, val); reason != "" {
			res.Skipped = append(res.Skipped, Skipped{Key: key, Reason: reason})
			continue
		}
		res.Dump[key] = val
	}
	return res
}

// Write encodes d as indented JSON.
func Write(w io.Writer, d Dump) error {
	if d == nil {
		d = Dump{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(d)
}

// unwrapString turns a JSON string holding a JSON document into that
// document. Anything else is returned trimmed.
func unwrapString(v json.RawMessage) json.RawMessage {
	v = bytes.TrimSpace(v)
	if len(v) == 0 || v[0] != '"' {
		return v
	}
	var s string
	if err := json.Unmarshal(v, &s); err != nil {
		return v
	}
	inner := bytes.TrimSpace([]byte(s))
	if !json.Valid(inner) {
		return v
	}
	return inner
}

func checkShape(key string, v json.RawMessage) string {
	if !json.Valid(v) {
		return "invalid JSON"
	}
	if key == records.KeyMealBudget {
		var f float64
		if err := json.Unmarshal(v, &f); err != nil {
			return "budget is not a number"
		}
		return ""
	}
	if len(v) == 0 || v[0] != '[' {
		return "collection is not an array"
	}
	return ""
}

func knownKey(key string) bool {
	for _, k := range records.AllKeys {
		if k == key {
			return true
		}
	}
	return false
}
