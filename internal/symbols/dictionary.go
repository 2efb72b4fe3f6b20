// Package symbols loads the symbols dictionary used to resolve
// symbol ids to names when formatting reports (spec.md section 6).
// The matching core never imports this package: resolution is purely
// a report-formatting concern.
package symbols

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// Dictionary resolves a dense symbol id to its display name.
type Dictionary struct {
	names []string
}

// Load reads the symbols dictionary from path. The file is a JSON
// array of symbol names indexed by symbol id, matching the format
// written by the reference dataset transform.
func Load(path string) (Dictionary, error) {
	f, err := os.Open(path)
	if err != nil {
		return Dictionary{}, fmt.Errorf("symbols: open %s: %w", path, err)
	}
	defer f.Close()
	return Decode(f)
}

// Decode reads a symbols dictionary from r.
func Decode(r io.Reader) (Dictionary, error) {
	var names []string
	if err := json.NewDecoder(r).Decode(&names); err != nil {
		return Dictionary{}, fmt.Errorf("symbols: decode: %w", err)
	}
	return Dictionary{names: names}, nil
}

// Name returns the display name for symbol, or a placeholder of the
// form "symbol#<id>" if id is out of range. Report emission must
// never fail solely because a symbol id has no dictionary entry.
func (d Dictionary) Name(id int32) string {
	if id < 0 || int(id) >= len(d.names) {
		return fmt.Sprintf("symbol#%d", id)
	}
	return d.names[id]
}

// Len returns the number of entries in the dictionary.
func (d Dictionary) Len() int { return len(d.names) }
