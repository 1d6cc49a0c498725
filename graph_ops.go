package wayangkg

import (
	"github.com/adrianreza/wayangkg/pkg/export"
	"github.com/adrianreza/wayangkg/pkg/graph"
	"github.com/adrianreza/wayangkg/pkg/types"
)

// Snapshot implements WayangKG.
func (c *Client) Snapshot() *types.Snapshot {
	return c.store.ToSnapshot(c.config.TopK)
}

// Subgraph implements WayangKG.
func (c *Client) Subgraph(id string, depth int) (*types.Snapshot, error) {
	return c.store.Subgraph(id, depth)
}

// GetEntity implements WayangKG.
func (c *Client) GetEntity(id string) (*graph.EntityInfo, error) {
	return c.store.GetEntityInfo(id)
}

// FindPaths implements WayangKG.
func (c *Client) FindPaths(source, target string, maxLength int) ([][]string, error) {
	return c.store.FindPaths(source, target, maxLength)
}

// Statistics implements WayangKG.
func (c *Client) Statistics() *types.Statistics {
	return c.store.Statistics(c.config.TopK)
}

// Communities implements WayangKG.
func (c *Client) Communities() [][]string {
	return c.store.Communities()
}

// ExportJSON writes the current graph snapshot to a JSON file.
func (c *Client) ExportJSON(path string) error {
	return export.SaveJSON(path, c.Snapshot())
}

// ImportJSON replaces the current graph with a previously exported
// snapshot.
func (c *Client) ImportJSON(path string) error {
	snap, err := export.LoadJSON(path)
	if err != nil {
		return err
	}
	c.store.Load(snap)
	return nil
}

// ExportParquet writes the current graph as node and edge Parquet files.
func (c *Client) ExportParquet(nodesPath, edgesPath string) error {
	return export.SaveParquet(nodesPath, edgesPath, c.Snapshot())
}
