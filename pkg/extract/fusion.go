package extract

import (
	"sort"

	"github.com/adrianreza/wayangkg/pkg/types"
)

// maxFusedContexts bounds the example excerpts carried on a fused edge.
const maxFusedContexts = 3

// Fuse merges relation candidates into graph edges, one per ordered
// (subject, object) pair. The tie-break policy is explicit rather than an
// implementation-order accident: a co-occurrence candidate is suppressed
// whenever any pattern- or syntax-sourced candidate exists for the same
// ordered pair, because explicit signal beats statistical inference.
// Distinct labels from the surviving tiers are all kept verbatim.
//
// Fuse is pure and stateless: Count reflects only the candidates of this
// invocation, and the graph store accumulates across the corpus pass.
func Fuse(candidates []types.RelationCandidate) []*types.GraphEdge {
	if len(candidates) == 0 {
		return nil
	}

	// Bidirectional candidates update both directions symmetrically.
	expanded := make([]types.RelationCandidate, 0, len(candidates))
	for _, c := range candidates {
		expanded = append(expanded, c)
		if c.Bidirectional {
			mirror := c
			mirror.SubjectID, mirror.ObjectID = c.ObjectID, c.SubjectID
			expanded = append(expanded, mirror)
		}
	}

	type pairKey struct{ source, target string }
	groups := make(map[pairKey][]types.RelationCandidate)
	display := make(map[pairKey][2]string)
	var order []pairKey
	for _, c := range expanded {
		key := pairKey{types.FoldKey(c.SubjectID), types.FoldKey(c.ObjectID)}
		if key.source == "" || key.target == "" || key.source == key.target {
			continue
		}
		if _, ok := groups[key]; !ok {
			order = append(order, key)
			display[key] = [2]string{c.SubjectID, c.ObjectID}
		}
		groups[key] = append(groups[key], c)
	}

	var edges []*types.GraphEdge
	for _, key := range order {
		group := groups[key]

		explicit := false
		for _, c := range group {
			if c.Method != types.MethodCooccurrence {
				explicit = true
				break
			}
		}

		edge := &types.GraphEdge{
			Source:     display[key][0],
			Target:     display[key][1],
			Categories: make(map[string]types.Category),
		}
		confidence := make(map[string]float64)
		for _, c := range group {
			if explicit && c.Method == types.MethodCooccurrence {
				continue
			}
			edge.Count++
			if c.Confidence > confidence[c.RelationType] {
				confidence[c.RelationType] = c.Confidence
			}
			if !edge.HasRelation(c.RelationType) {
				edge.RelationTypes = append(edge.RelationTypes, c.RelationType)
				edge.Categories[c.RelationType] = c.Category
			}
			if c.Context != "" && len(edge.Contexts) < maxFusedContexts {
				edge.Contexts = append(edge.Contexts, c.Context)
			}
		}
		if edge.Count == 0 {
			continue
		}
		for _, conf := range confidence {
			if conf > edge.MaxConfidence {
				edge.MaxConfidence = conf
			}
		}
		sort.Strings(edge.RelationTypes)
		edges = append(edges, edge)
	}
	return edges
}
