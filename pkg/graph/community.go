package graph

import (
	"sort"
)

// neighbor is one entry in the undirected projection used for community
// detection: the adjacent node key and the combined evidence count of the
// edges between the pair.
type neighbor struct {
	key       string
	edgeCount int
}

// Communities runs label propagation over the undirected projection of the
// graph and returns the detected clusters as sorted lists of entity ids.
// Singleton clusters are dropped.
func (s *Store) Communities() [][]string {
	s.mu.RLock()
	projection := s.buildProjection()
	display := make(map[string]string, len(s.nodes))
	for key, node := range s.nodes {
		display[key] = node.ID
	}
	s.mu.RUnlock()

	clusters := labelPropagation(projection)

	out := make([][]string, 0, len(clusters))
	for _, cluster := range clusters {
		ids := make([]string, 0, len(cluster))
		for _, key := range cluster {
			ids = append(ids, display[key])
		}
		sort.Strings(ids)
		out = append(out, ids)
	}
	sort.Slice(out, func(i, j int) bool { return out[i][0] < out[j][0] })
	return out
}

// buildProjection collapses the directed multigraph into an undirected
// weighted projection, with edge counts as weights. Caller holds the lock.
func (s *Store) buildProjection() map[string][]neighbor {
	weights := make(map[string]map[string]int, len(s.nodes))
	for key := range s.nodes {
		weights[key] = make(map[string]int)
	}
	for ek, e := range s.edges {
		if ek.source == ek.target {
			continue
		}
		weights[ek.source][ek.target] += e.Count
		weights[ek.target][ek.source] += e.Count
	}

	projection := make(map[string][]neighbor, len(weights))
	for key, adj := range weights {
		neighbors := make([]neighbor, 0, len(adj))
		for other, count := range adj {
			neighbors = append(neighbors, neighbor{key: other, edgeCount: count})
		}
		projection[key] = neighbors
	}
	return projection
}

// labelPropagation implements the label propagation community detection
// algorithm over a weighted projection.
func labelPropagation(projection map[string][]neighbor) [][]string {
	if len(projection) == 0 {
		return nil
	}

	// Deterministic initial labels: nodes indexed in sorted key order.
	keys := make([]string, 0, len(projection))
	for key := range projection {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	communityMap := make(map[string]int, len(keys))
	for i, key := range keys {
		communityMap[key] = i
	}

	maxIterations := 100 // Prevent infinite loops
	for iteration := 0; iteration < maxIterations; iteration++ {
		noChange := true
		newCommunityMap := make(map[string]int, len(keys))

		for _, key := range keys {
			currentCommunity := communityMap[key]

			// Count community occurrences among neighbors, weighted by
			// edge count.
			candidates := make(map[int]int)
			for _, n := range projection[key] {
				if c, ok := communityMap[n.key]; ok {
					candidates[c] += n.edgeCount
				}
			}

			type communityScore struct {
				community int
				count     int
			}
			var scores []communityScore
			for community, count := range candidates {
				scores = append(scores, communityScore{community: community, count: count})
			}
			sort.Slice(scores, func(i, j int) bool {
				if scores[i].count != scores[j].count {
					return scores[i].count > scores[j].count
				}
				return scores[i].community > scores[j].community
			})

			newCommunity := currentCommunity
			if len(scores) > 0 {
				top := scores[0]
				if top.count > 1 { // Only change if there's significant support
					newCommunity = top.community
				} else if top.community > currentCommunity {
					newCommunity = top.community
				}
			}

			newCommunityMap[key] = newCommunity
			if newCommunity != currentCommunity {
				noChange = false
			}
		}

		if noChange {
			break
		}
		communityMap = newCommunityMap
	}

	clusterMap := make(map[int][]string)
	for key, community := range communityMap {
		clusterMap[community] = append(clusterMap[community], key)
	}

	var clusters [][]string
	for _, cluster := range clusterMap {
		if len(cluster) > 1 {
			clusters = append(clusters, cluster)
		}
	}
	return clusters
}
