package export

import (
	"fmt"
	"strings"

	"github.com/parquet-go/parquet-go"

	"github.com/adrianreza/wayangkg/pkg/types"
)

// NodeRecord is the flat per-node row for Parquet storage.
type NodeRecord struct {
	ID             string `parquet:"id"`
	Type           string `parquet:"type"`
	MentionCount   int    `parquet:"mention_count"`
	SourceDatasets string `parquet:"source_datasets"` // comma-separated
}

// EdgeRecord is the flat per-edge row for Parquet storage.
type EdgeRecord struct {
	Source        string  `parquet:"source"`
	Target        string  `parquet:"target"`
	RelationTypes string  `parquet:"relation_types"` // comma-separated
	Count         int     `parquet:"count"`
	MaxConfidence float64 `parquet:"max_confidence"`
}

// SaveParquet writes the snapshot as two Parquet files, nodesPath and
// edgesPath, for downstream analytical tooling.
func SaveParquet(nodesPath, edgesPath string, snap *types.Snapshot) error {
	nodes := make([]NodeRecord, 0, len(snap.Nodes))
	for _, n := range snap.Nodes {
		nodes = append(nodes, NodeRecord{
			ID:             n.ID,
			Type:           string(n.Type),
			MentionCount:   n.MentionCount,
			SourceDatasets: strings.Join(n.SourceDatasets, ","),
		})
	}
	if err := parquet.WriteFile(nodesPath, nodes); err != nil {
		return fmt.Errorf("failed to write nodes parquet file: %w", err)
	}

	edges := make([]EdgeRecord, 0, len(snap.Edges))
	for _, e := range snap.Edges {
		edges = append(edges, EdgeRecord{
			Source:        e.Source,
			Target:        e.Target,
			RelationTypes: strings.Join(e.RelationTypes, ","),
			Count:         e.Count,
			MaxConfidence: e.MaxConfidence,
		})
	}
	if err := parquet.WriteFile(edgesPath, edges); err != nil {
		return fmt.Errorf("failed to write edges parquet file: %w", err)
	}
	return nil
}
