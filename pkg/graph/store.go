package graph

import (
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/adrianreza/wayangkg/pkg/types"
)

// DefaultMaxContexts bounds the example excerpts kept per edge.
const DefaultMaxContexts = 5

// Store is the directed knowledge graph over entity nodes: the mention
// registry plus the fused edge set. It is the only stateful accumulator
// across documents, so every read-modify-write (mention counts, edge
// counts, confidences) happens under the lock and parallel document
// processing stays safe.
//
// A Store is owned by one pipeline run. It is passed explicitly into every
// consumer rather than living as process-wide state, so concurrent runs
// never interfere.
type Store struct {
	mu     sync.RWMutex
	logger *slog.Logger

	nodes map[string]*types.EntityNode // folded key -> node
	edges map[edgeKey]*types.GraphEdge // folded pair -> edge
	adj   map[string]map[string]bool   // undirected adjacency on folded keys

	maxContexts   int
	typePromotion bool

	skippedMentions int
	skippedEdges    int
}

type edgeKey struct{ source, target string }

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the store logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) { s.logger = logger }
}

// WithMaxContexts bounds the example excerpts kept per edge.
func WithMaxContexts(n int) Option {
	return func(s *Store) {
		if n > 0 {
			s.maxContexts = n
		}
	}
}

// WithTypePromotion enables the majority-vote type promotion policy: a
// node's type is promoted when a strict majority of its observations
// disagree with the current type. The default policy is first-type-wins.
func WithTypePromotion() Option {
	return func(s *Store) { s.typePromotion = true }
}

// NewStore creates an empty graph store.
func NewStore(opts ...Option) *Store {
	s := &Store{
		logger:      slog.Default(),
		nodes:       make(map[string]*types.EntityNode),
		edges:       make(map[edgeKey]*types.GraphEdge),
		adj:         make(map[string]map[string]bool),
		maxContexts: DefaultMaxContexts,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register normalizes a mention and folds it into its canonical node,
// creating the node on first observation. It returns the node id. Malformed
// mentions (empty text) are skipped and counted, never raised as failures.
func (s *Store) Register(m types.EntityMention) (string, bool) {
	display := types.NormalizeText(m.Text)
	if display == "" {
		s.mu.Lock()
		s.skippedMentions++
		s.mu.Unlock()
		return "", false
	}
	key := types.FoldKey(display)

	s.mu.Lock()
	defer s.mu.Unlock()

	node, ok := s.nodes[key]
	if !ok {
		node = &types.EntityNode{
			ID:             display,
			Type:           m.Type,
			SourceDatasets: make(map[string]struct{}),
			TypeVotes:      make(map[types.EntityType]int),
		}
		s.nodes[key] = node
	}
	node.MentionCount++
	node.TypeVotes[m.Type]++
	if m.SourceDocID != "" {
		node.SourceDatasets[m.SourceDocID] = struct{}{}
	}
	if s.typePromotion {
		s.promoteType(node)
	}
	return node.ID, true
}

// promoteType applies the majority policy: the type flips only when a
// different type holds a strict majority of all observations.
func (s *Store) promoteType(node *types.EntityNode) {
	total := 0
	for _, n := range node.TypeVotes {
		total += n
	}
	for t, n := range node.TypeVotes {
		if t != node.Type && n*2 > total {
			s.logger.Debug("promoting entity type",
				"entity", node.ID, "from", node.Type, "to", t)
			node.Type = t
			return
		}
	}
}

// AddEdge merges a fused edge into the graph. Insertion is idempotent:
// re-adding a relation between the same ordered pair increments the count
// and raises the confidence instead of duplicating the edge. Edges whose
// endpoints were never registered are dropped and counted.
func (s *Store) AddEdge(e *types.GraphEdge) {
	sourceKey := types.FoldKey(e.Source)
	targetKey := types.FoldKey(e.Target)

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.nodes[sourceKey]; !ok {
		s.skippedEdges++
		return
	}
	if _, ok := s.nodes[targetKey]; !ok {
		s.skippedEdges++
		return
	}

	key := edgeKey{sourceKey, targetKey}
	existing, ok := s.edges[key]
	if !ok {
		existing = &types.GraphEdge{
			Source:     s.nodes[sourceKey].ID,
			Target:     s.nodes[targetKey].ID,
			Categories: make(map[string]types.Category),
		}
		s.edges[key] = existing
		s.link(sourceKey, targetKey)
	}

	existing.Count += e.Count
	if e.MaxConfidence > existing.MaxConfidence {
		existing.MaxConfidence = e.MaxConfidence
	}
	for _, label := range e.RelationTypes {
		if !existing.HasRelation(label) {
			existing.RelationTypes = append(existing.RelationTypes, label)
			existing.Categories[label] = e.Categories[label]
		}
	}
	sort.Strings(existing.RelationTypes)
	for _, ctx := range e.Contexts {
		if len(existing.Contexts) >= s.maxContexts {
			break
		}
		existing.Contexts = append(existing.Contexts, ctx)
	}
}

// AddCandidate converts one relation candidate into edges and merges them.
// Bidirectional candidates update both directions symmetrically.
func (s *Store) AddCandidate(c types.RelationCandidate) {
	edge := &types.GraphEdge{
		Source:        c.SubjectID,
		Target:        c.ObjectID,
		RelationTypes: []string{c.RelationType},
		Categories:    map[string]types.Category{c.RelationType: c.Category},
		Count:         1,
		MaxConfidence: c.Confidence,
	}
	if c.Context != "" {
		edge.Contexts = []string{c.Context}
	}
	s.AddEdge(edge)
	if c.Bidirectional {
		mirror := *edge
		mirror.Source, mirror.Target = edge.Target, edge.Source
		s.AddEdge(&mirror)
	}
}

func (s *Store) link(a, b string) {
	if s.adj[a] == nil {
		s.adj[a] = make(map[string]bool)
	}
	if s.adj[b] == nil {
		s.adj[b] = make(map[string]bool)
	}
	s.adj[a][b] = true
	s.adj[b][a] = true
}

// GetNode returns a copy of the node with the given id (matching is
// case-folded).
func (s *Store) GetNode(id string) (*types.EntityNode, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	node, ok := s.nodes[types.FoldKey(id)]
	if !ok {
		return nil, fmt.Errorf("entity %q: %w", id, types.ErrNodeNotFound)
	}
	copied := *node
	return &copied, nil
}

// NodeCount returns the number of nodes.
func (s *Store) NodeCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.nodes)
}

// EdgeCount returns the number of directed edges.
func (s *Store) EdgeCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.edges)
}

// SkippedMentions returns how many malformed mentions were dropped.
func (s *Store) SkippedMentions() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.skippedMentions
}

// SkippedEdges returns how many edges referencing unregistered entities
// were dropped.
func (s *Store) SkippedEdges() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.skippedEdges
}

// GetNeighbors performs a bounded breadth-first traversal up to depth hops
// from the focal entity, following edges in both directions. The visited
// set guarantees termination on cyclic graphs. The focal node itself is
// included in the result.
func (s *Store) GetNeighbors(id string, depth int) ([]*types.EntityNode, error) {
	if depth < 1 {
		return nil, types.ErrInvalidDepth
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	start := types.FoldKey(id)
	if _, ok := s.nodes[start]; !ok {
		return nil, fmt.Errorf("entity %q: %w", id, types.ErrNodeNotFound)
	}

	visited := map[string]bool{start: true}
	frontier := []string{start}
	for hop := 0; hop < depth && len(frontier) > 0; hop++ {
		var next []string
		for _, key := range frontier {
			for neighbor := range s.adj[key] {
				if visited[neighbor] {
					continue
				}
				visited[neighbor] = true
				next = append(next, neighbor)
			}
		}
		frontier = next
	}

	out := make([]*types.EntityNode, 0, len(visited))
	for key := range visited {
		copied := *s.nodes[key]
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// FindPaths enumerates the simple directed paths from source to target of
// at most maxLength edges. No node repeats within a path, so enumeration
// terminates on cyclic graphs. Paths list entity ids in traversal order and
// successors are visited in id order, so output is deterministic. When
// source and target fold to the same node the single trivial path is
// returned.
func (s *Store) FindPaths(source, target string, maxLength int) ([][]string, error) {
	if maxLength < 1 {
		return nil, types.ErrInvalidDepth
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	start := types.FoldKey(source)
	goal := types.FoldKey(target)
	if _, ok := s.nodes[start]; !ok {
		return nil, fmt.Errorf("entity %q: %w", source, types.ErrNodeNotFound)
	}
	if _, ok := s.nodes[goal]; !ok {
		return nil, fmt.Errorf("entity %q: %w", target, types.ErrNodeNotFound)
	}
	if start == goal {
		return [][]string{{s.nodes[start].ID}}, nil
	}

	succ := make(map[string][]string, len(s.nodes))
	for ek := range s.edges {
		succ[ek.source] = append(succ[ek.source], ek.target)
	}
	for _, targets := range succ {
		sort.Strings(targets)
	}

	var paths [][]string
	onPath := map[string]bool{start: true}
	trail := []string{start}

	var walk func(key string)
	walk = func(key string) {
		if len(trail)-1 >= maxLength {
			return
		}
		for _, next := range succ[key] {
			if onPath[next] {
				continue
			}
			if next == goal {
				path := make([]string, 0, len(trail)+1)
				for _, k := range trail {
					path = append(path, s.nodes[k].ID)
				}
				paths = append(paths, append(path, s.nodes[goal].ID))
				continue
			}
			onPath[next] = true
			trail = append(trail, next)
			walk(next)
			trail = trail[:len(trail)-1]
			delete(onPath, next)
		}
	}
	walk(start)
	return paths, nil
}

// nodeSnapshot converts a node to its canonical serialized shape.
func nodeSnapshot(n *types.EntityNode) types.SnapshotNode {
	return types.SnapshotNode{
		ID:             n.ID,
		Type:           n.Type,
		MentionCount:   n.MentionCount,
		SourceDatasets: n.Datasets(),
	}
}

// edgeSnapshot converts an edge to its canonical serialized shape.
func edgeSnapshot(e *types.GraphEdge) types.SnapshotEdge {
	labels := make([]string, len(e.RelationTypes))
	copy(labels, e.RelationTypes)
	categories := make(map[string]types.Category, len(e.Categories))
	for k, v := range e.Categories {
		categories[k] = v
	}
	return types.SnapshotEdge{
		Source:        e.Source,
		Target:        e.Target,
		RelationTypes: labels,
		Categories:    categories,
		Count:         e.Count,
		MaxConfidence: e.MaxConfidence,
	}
}

// ToSnapshot exports the whole graph in the canonical serializable shape,
// statistics included, with topK bounding the centrality ranking. Output
// ordering is deterministic.
func (s *Store) ToSnapshot(topK int) *types.Snapshot {
	s.mu.RLock()
	snap := s.snapshotLocked()
	s.mu.RUnlock()

	snap.Statistics = computeStatistics(snap.Nodes, snap.Edges, topK)
	return snap
}

func (s *Store) snapshotLocked() *types.Snapshot {
	snap := &types.Snapshot{
		Nodes: make([]types.SnapshotNode, 0, len(s.nodes)),
		Edges: make([]types.SnapshotEdge, 0, len(s.edges)),
	}
	for _, n := range s.nodes {
		snap.Nodes = append(snap.Nodes, nodeSnapshot(n))
	}
	for _, e := range s.edges {
		snap.Edges = append(snap.Edges, edgeSnapshot(e))
	}
	sort.Slice(snap.Nodes, func(i, j int) bool { return snap.Nodes[i].ID < snap.Nodes[j].ID })
	sort.Slice(snap.Edges, func(i, j int) bool {
		if snap.Edges[i].Source != snap.Edges[j].Source {
			return snap.Edges[i].Source < snap.Edges[j].Source
		}
		return snap.Edges[i].Target < snap.Edges[j].Target
	})
	return snap
}

// Subgraph extracts the neighborhood of a focal entity up to depth hops:
// the same snapshot shape restricted to the reachable set, with statistics
// recomputed over the restriction.
func (s *Store) Subgraph(id string, depth int) (*types.Snapshot, error) {
	nodes, err := s.GetNeighbors(id, depth)
	if err != nil {
		return nil, err
	}

	keep := make(map[string]bool, len(nodes))
	snap := &types.Snapshot{Nodes: make([]types.SnapshotNode, 0, len(nodes))}
	for _, n := range nodes {
		keep[types.FoldKey(n.ID)] = true
		snap.Nodes = append(snap.Nodes, nodeSnapshot(n))
	}

	s.mu.RLock()
	for key, e := range s.edges {
		if keep[key.source] && keep[key.target] {
			snap.Edges = append(snap.Edges, edgeSnapshot(e))
		}
	}
	s.mu.RUnlock()

	sort.Slice(snap.Edges, func(i, j int) bool {
		if snap.Edges[i].Source != snap.Edges[j].Source {
			return snap.Edges[i].Source < snap.Edges[j].Source
		}
		return snap.Edges[i].Target < snap.Edges[j].Target
	})
	snap.Statistics = computeStatistics(snap.Nodes, snap.Edges, DefaultTopK)
	return snap, nil
}

// Load rebuilds the store from an exported snapshot, replacing any current
// content. It is the inverse of ToSnapshot for one corpus pass.
func (s *Store) Load(snap *types.Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nodes = make(map[string]*types.EntityNode, len(snap.Nodes))
	s.edges = make(map[edgeKey]*types.GraphEdge, len(snap.Edges))
	s.adj = make(map[string]map[string]bool)

	for _, n := range snap.Nodes {
		node := &types.EntityNode{
			ID:             n.ID,
			Type:           n.Type,
			MentionCount:   n.MentionCount,
			SourceDatasets: make(map[string]struct{}),
			TypeVotes:      map[types.EntityType]int{n.Type: n.MentionCount},
		}
		for _, d := range n.SourceDatasets {
			node.SourceDatasets[d] = struct{}{}
		}
		s.nodes[types.FoldKey(n.ID)] = node
	}
	for _, e := range snap.Edges {
		sourceKey, targetKey := types.FoldKey(e.Source), types.FoldKey(e.Target)
		if _, ok := s.nodes[sourceKey]; !ok {
			continue
		}
		if _, ok := s.nodes[targetKey]; !ok {
			continue
		}
		categories := make(map[string]types.Category, len(e.Categories))
		for k, v := range e.Categories {
			categories[k] = v
		}
		labels := make([]string, len(e.RelationTypes))
		copy(labels, e.RelationTypes)
		s.edges[edgeKey{sourceKey, targetKey}] = &types.GraphEdge{
			Source:        e.Source,
			Target:        e.Target,
			RelationTypes: labels,
			Categories:    categories,
			Count:         e.Count,
			MaxConfidence: e.MaxConfidence,
		}
		s.link(sourceKey, targetKey)
	}
}

// RelationRef is one direction of an entity's relation listing.
type RelationRef struct {
	Entity        string   `json:"entity"`
	RelationTypes []string `json:"relationTypes"`
}

// EntityInfo is a detailed per-entity view for inspection.
type EntityInfo struct {
	ID           string           `json:"id"`
	Type         types.EntityType `json:"type"`
	MentionCount int              `json:"mentionCount"`
	Degree       int              `json:"degree"`
	Outgoing     []RelationRef    `json:"outgoing"`
	Incoming     []RelationRef    `json:"incoming"`
}

// GetEntityInfo returns the detailed view of one entity: its node
// attributes plus incoming and outgoing relation lists.
func (s *Store) GetEntityInfo(id string) (*EntityInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	key := types.FoldKey(id)
	node, ok := s.nodes[key]
	if !ok {
		return nil, fmt.Errorf("entity %q: %w", id, types.ErrNodeNotFound)
	}

	info := &EntityInfo{
		ID:           node.ID,
		Type:         node.Type,
		MentionCount: node.MentionCount,
	}
	for ek, e := range s.edges {
		labels := make([]string, len(e.RelationTypes))
		copy(labels, e.RelationTypes)
		if ek.source == key {
			info.Degree++
			info.Outgoing = append(info.Outgoing, RelationRef{Entity: e.Target, RelationTypes: labels})
		}
		if ek.target == key {
			info.Degree++
			info.Incoming = append(info.Incoming, RelationRef{Entity: e.Source, RelationTypes: labels})
		}
	}
	sort.Slice(info.Outgoing, func(i, j int) bool { return info.Outgoing[i].Entity < info.Outgoing[j].Entity })
	sort.Slice(info.Incoming, func(i, j int) bool { return info.Incoming[i].Entity < info.Incoming[j].Entity })
	return info, nil
}
