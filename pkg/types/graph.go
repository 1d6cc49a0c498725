package types

import "sort"

// EntityNode is the canonical graph vertex representing all mentions that
// normalize to the same identity. ID is the normalized display text of the
// first observation; identity comparison folds case, display does not.
type EntityNode struct {
	ID             string              `json:"id"`
	Type           EntityType          `json:"type"`
	MentionCount   int                 `json:"mentionCount"`
	SourceDatasets map[string]struct{} `json:"-"`

	// TypeVotes counts observed types per node. It only drives the type
	// promotion policy when that policy is enabled; the default is
	// first-type-wins.
	TypeVotes map[EntityType]int `json:"-"`
}

// Datasets returns the sorted set of origin dataset identifiers.
func (n *EntityNode) Datasets() []string {
	out := make([]string, 0, len(n.SourceDatasets))
	for d := range n.SourceDatasets {
		out = append(out, d)
	}
	sort.Strings(out)
	return out
}

// GraphEdge is the persisted, directed, possibly multi-labeled link between
// two nodes after fusion. Multiple relation labels between the same ordered
// pair coalesce into one edge rather than duplicate edges.
type GraphEdge struct {
	Source        string  `json:"source"`
	Target        string  `json:"target"`
	RelationTypes []string `json:"relationTypes"`
	// Categories maps each relation label to its category tag.
	Categories    map[string]Category `json:"categories,omitempty"`
	Count         int                 `json:"count"`
	MaxConfidence float64             `json:"maxConfidence"`
	// Contexts holds a bounded list of example excerpts for inspection.
	Contexts []string `json:"-"`
}

// HasRelation reports whether the edge already carries the given label.
func (e *GraphEdge) HasRelation(label string) bool {
	for _, r := range e.RelationTypes {
		if r == label {
			return true
		}
	}
	return false
}

// HasExplicitRelation reports whether any of the edge's labels came from a
// non-cooccurrence category assignment. Used only by callers that need to
// distinguish signal tiers after fusion.
func (e *GraphEdge) HasExplicitRelation(coocLabels map[string]bool) bool {
	for _, r := range e.RelationTypes {
		if !coocLabels[r] {
			return true
		}
	}
	return false
}

// SnapshotNode is the canonical serialized node shape.
type SnapshotNode struct {
	ID             string     `json:"id"`
	Type           EntityType `json:"type"`
	MentionCount   int        `json:"mentionCount"`
	SourceDatasets []string   `json:"sourceDatasets,omitempty"`
}

// SnapshotEdge is the canonical serialized edge shape.
type SnapshotEdge struct {
	Source        string              `json:"source"`
	Target        string              `json:"target"`
	RelationTypes []string            `json:"relationTypes"`
	Categories    map[string]Category `json:"categories,omitempty"`
	Count         int                 `json:"count"`
	MaxConfidence float64             `json:"maxConfidence"`
}

// EntityRank is one row of the degree centrality ranking.
type EntityRank struct {
	ID     string     `json:"id"`
	Type   EntityType `json:"type"`
	Degree int        `json:"degree"`
}

// Statistics are derived graph analytics, recomputed on demand and never
// mutating the graph.
type Statistics struct {
	NodeCount              int                `json:"nodeCount"`
	EdgeCount              int                `json:"edgeCount"`
	Density                float64            `json:"density"`
	EntityTypeDistribution map[EntityType]int `json:"entityTypeDistribution"`
	CategoryDistribution   map[Category]int   `json:"categoryDistribution"`
	RelationDistribution   map[string]int     `json:"relationDistribution"`
	TopEntities            []EntityRank       `json:"topEntities"`
	AverageClustering      float64            `json:"averageClustering"`
	ComponentCount         int                `json:"componentCount"`
	ComponentSizes         []int              `json:"componentSizes"`
}

// Snapshot is the serializable representation of one full corpus pass. The
// exact encoding is the renderer's concern; field names are canonical.
type Snapshot struct {
	Nodes      []SnapshotNode `json:"nodes"`
	Edges      []SnapshotEdge `json:"edges"`
	Statistics *Statistics    `json:"statistics,omitempty"`
}
