package graphio

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// WriteCounts writes a title-to-integer map (heat or distance) as indented
// JSON to w. encoding/json sorts map keys, so output is deterministic.
func WriteCounts(w io.Writer, counts map[string]int) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(counts); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportCounts writes a title-to-integer map to a JSON file at path.
// The file is created with 0644 permissions, overwriting any existing file.
func ExportCounts(path string, counts map[string]int) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteCounts(f, counts)
}

// ReadCounts decodes a title-to-integer map from r. It is the inverse of
// [WriteCounts] and is used when round-tripping cached analysis results.
func ReadCounts(r io.Reader) (map[string]int, error) {
	var counts map[string]int
	if err := json.NewDecoder(r).Decode(&counts); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return counts, nil
}

// WriteTitles writes a list of titles (e.g. the terminal set) as indented
// JSON to w, preserving order.
func WriteTitles(w io.Writer, titles []string) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(titles); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportTitles writes a list of titles to a JSON file at path.
func ExportTitles(path string, titles []string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteTitles(f, titles)
}
