package graph

import (
	"sort"

	"github.com/adrianreza/wayangkg/pkg/types"
)

// DefaultTopK is the default length of the top-entities ranking.
const DefaultTopK = 10

// Statistics computes the analytics block over the whole graph. An empty
// graph yields zero values, never an error.
func (s *Store) Statistics(topK int) *types.Statistics {
	s.mu.RLock()
	snap := s.snapshotLocked()
	s.mu.RUnlock()
	return computeStatistics(snap.Nodes, snap.Edges, topK)
}

func computeStatistics(nodes []types.SnapshotNode, edges []types.SnapshotEdge, topK int) *types.Statistics {
	if topK <= 0 {
		topK = DefaultTopK
	}
	stats := &types.Statistics{
		NodeCount:              len(nodes),
		EdgeCount:              len(edges),
		EntityTypeDistribution: make(map[types.EntityType]int),
		CategoryDistribution:   make(map[types.Category]int),
		RelationDistribution:   make(map[string]int),
	}

	// Directed density: E / (N * (N-1)).
	if len(nodes) > 1 {
		n := float64(len(nodes))
		stats.Density = float64(len(edges)) / (n * (n - 1))
	}

	for _, node := range nodes {
		stats.EntityTypeDistribution[node.Type]++
	}

	degree := make(map[string]int, len(nodes))
	undirected := make(map[string]map[string]bool, len(nodes))
	for _, e := range edges {
		sourceKey, targetKey := types.FoldKey(e.Source), types.FoldKey(e.Target)
		degree[sourceKey]++
		degree[targetKey]++
		if undirected[sourceKey] == nil {
			undirected[sourceKey] = make(map[string]bool)
		}
		if undirected[targetKey] == nil {
			undirected[targetKey] = make(map[string]bool)
		}
		undirected[sourceKey][targetKey] = true
		undirected[targetKey][sourceKey] = true
		for _, label := range e.RelationTypes {
			stats.RelationDistribution[label]++
			if cat, ok := e.Categories[label]; ok {
				stats.CategoryDistribution[cat]++
			}
		}
	}

	ranked := make([]types.EntityRank, 0, len(nodes))
	for _, node := range nodes {
		ranked = append(ranked, types.EntityRank{
			ID:     node.ID,
			Type:   node.Type,
			Degree: degree[types.FoldKey(node.ID)],
		})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Degree != ranked[j].Degree {
			return ranked[i].Degree > ranked[j].Degree
		}
		return ranked[i].ID < ranked[j].ID
	})
	if len(ranked) > topK {
		ranked = ranked[:topK]
	}
	stats.TopEntities = ranked

	stats.AverageClustering = averageClustering(undirected)
	stats.ComponentSizes = componentSizes(nodes, undirected)
	stats.ComponentCount = len(stats.ComponentSizes)
	return stats
}

// averageClustering is the mean local clustering coefficient over the
// undirected projection, taken across nodes with at least two neighbors.
// Nodes with fewer neighbors have an undefined coefficient and are skipped.
func averageClustering(undirected map[string]map[string]bool) float64 {
	var sum float64
	var counted int
	for _, neighbors := range undirected {
		if len(neighbors) < 2 {
			continue
		}
		keys := make([]string, 0, len(neighbors))
		for k := range neighbors {
			keys = append(keys, k)
		}
		links := 0
		for i := 0; i < len(keys); i++ {
			for j := i + 1; j < len(keys); j++ {
				if undirected[keys[i]][keys[j]] {
					links++
				}
			}
		}
		k := len(keys)
		sum += float64(2*links) / float64(k*(k-1))
		counted++
	}
	if counted == 0 {
		return 0
	}
	return sum / float64(counted)
}

// componentSizes returns the weakly connected component sizes, largest
// first. Isolated nodes count as size-1 components.
func componentSizes(nodes []types.SnapshotNode, undirected map[string]map[string]bool) []int {
	visited := make(map[string]bool, len(nodes))
	var sizes []int
	for _, node := range nodes {
		start := types.FoldKey(node.ID)
		if visited[start] {
			continue
		}
		size := 0
		queue := []string{start}
		visited[start] = true
		for len(queue) > 0 {
			key := queue[0]
			queue = queue[1:]
			size++
			for neighbor := range undirected[key] {
				if !visited[neighbor] {
					visited[neighbor] = true
					queue = append(queue, neighbor)
				}
			}
		}
		sizes = append(sizes, size)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(sizes)))
	return sizes
}
