package library

import (
	"encoding/json"
	"fmt"
	"os"
)

// LoadExport reads a tracker export file containing a JSON array of
// source entries. Every entry is validated; the first invalid entry
// fails the whole load so a bad export is caught before any matching
// or syncing starts.
func LoadExport(path string) ([]SourceEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read export: %w", err)
	}

	var entries []SourceEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parse export: %w", err)
	}

	for i := range entries {
		if err := entries[i].Validate(); err != nil {
			return nil, fmt.Errorf("export entry %d: %w", i, err)
		}
	}
	return entries, nil
}
