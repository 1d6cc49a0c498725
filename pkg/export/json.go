// Package export serializes graph snapshots to JSON and Parquet and loads
// annotated corpora produced by upstream labeling tools.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	jsonrepair "github.com/kaptinlin/jsonrepair"

	"github.com/adrianreza/wayangkg/pkg/types"
)

// WriteJSON writes a snapshot to w in the canonical export shape.
func WriteJSON(w io.Writer, snap *types.Snapshot) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(snap); err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}
	return nil
}

// SaveJSON writes a snapshot to a file.
func SaveJSON(path string, snap *types.Snapshot) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()
	return WriteJSON(f, snap)
}

// ReadJSON decodes a snapshot. Labeling pipelines and manual edits produce
// slightly broken JSON often enough that a failed decode gets one repair
// attempt before the error is surfaced.
func ReadJSON(r io.Reader) (*types.Snapshot, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}

	var snap types.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		repaired, repairErr := jsonrepair.JSONRepair(string(data))
		if repairErr != nil {
			return nil, fmt.Errorf("failed to decode snapshot: %w", err)
		}
		if err := json.Unmarshal([]byte(repaired), &snap); err != nil {
			return nil, fmt.Errorf("failed to decode snapshot after repair: %w", err)
		}
	}
	return &snap, nil
}

// LoadJSON reads a snapshot from a file.
func LoadJSON(path string) (*types.Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()
	return ReadJSON(f)
}
