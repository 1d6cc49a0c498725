package wayangkg

import (
	"context"
	"log/slog"
	"sync"

	"github.com/adrianreza/wayangkg/pkg/extract"
	"github.com/adrianreza/wayangkg/pkg/graph"
	"github.com/adrianreza/wayangkg/pkg/parser"
	"github.com/adrianreza/wayangkg/pkg/types"
)

// WayangKG is the main interface for building and querying relation graphs
// from annotated narrative text.
type WayangKG interface {
	// ProcessDocument runs the extraction pipeline over one document and
	// folds the result into the graph.
	ProcessDocument(ctx context.Context, doc types.Document) (*DocumentResult, error)

	// ProcessCorpus processes a batch of documents. Invalid documents are
	// skipped and reported; the pass continues.
	ProcessCorpus(ctx context.Context, docs []types.Document) (*CorpusResult, error)

	// Snapshot exports the whole graph in the canonical serializable shape.
	Snapshot() *types.Snapshot

	// Subgraph extracts the neighborhood of an entity up to depth hops.
	Subgraph(id string, depth int) (*types.Snapshot, error)

	// GetEntity returns the detailed view of one entity.
	GetEntity(id string) (*graph.EntityInfo, error)

	// FindPaths enumerates the simple directed paths between two entities
	// of at most maxLength edges.
	FindPaths(source, target string, maxLength int) ([][]string, error)

	// Statistics computes graph analytics on demand.
	Statistics() *types.Statistics

	// Communities detects entity clusters via label propagation.
	Communities() [][]string

	// Metrics reports pipeline counters for the current run.
	Metrics() Metrics

	// Close releases the parser connection, if any.
	Close() error
}

// Config holds configuration for the client.
type Config struct {
	// Patterns overrides the built-in lexical catalog. Nil selects the
	// default Indonesian catalog.
	Patterns []extract.Pattern
	// Syntax sets the medium-tier confidence values. Zero fields select
	// the defaults.
	Syntax extract.SyntaxConfidence
	// Cooccurrence bounds the statistical tier window. Zero fields select
	// the 2..4 window at confidence 0.35.
	Cooccurrence extract.CooccurrenceConfig
	// MaxContexts bounds example excerpts kept per edge.
	MaxContexts int
	// TopK is the length of the top-entities ranking.
	TopK int
	// TypePromotion enables majority-vote entity type promotion. The
	// default policy is first-type-wins.
	TypePromotion bool
}

// Metrics are the pipeline counters accumulated over a run.
type Metrics struct {
	DocumentsProcessed int                  `json:"documentsProcessed"`
	DocumentsFailed    int                  `json:"documentsFailed"`
	SentencesProcessed int                  `json:"sentencesProcessed"`
	CandidatesByMethod map[types.Method]int `json:"candidatesByMethod"`
	ParseFailures      int                  `json:"parseFailures"`
	SkippedMentions    int                  `json:"skippedMentions"`
	SkippedEdges       int                  `json:"skippedEdges"`
}

// Client is the main implementation of the WayangKG interface.
type Client struct {
	store    *graph.Store
	patterns *extract.PatternExtractor
	syntax   *extract.SyntaxExtractor
	cooccur  *extract.CooccurrenceExtractor
	parser   parser.Client
	config   *Config
	logger   *slog.Logger

	mu      sync.Mutex
	metrics Metrics
}

// NewClient creates a new client. The parser client is optional: when nil,
// only parses supplied inline with the sentences feed the syntax tier. A
// nil config selects all defaults.
func NewClient(parserClient parser.Client, config *Config, logger *slog.Logger) (*Client, error) {
	if config == nil {
		config = &Config{}
	}
	if logger == nil {
		logger = slog.Default()
	}

	if config.TopK <= 0 {
		config.TopK = graph.DefaultTopK
	}

	storeOpts := []graph.Option{graph.WithLogger(logger)}
	if config.MaxContexts > 0 {
		storeOpts = append(storeOpts, graph.WithMaxContexts(config.MaxContexts))
	}
	if config.TypePromotion {
		storeOpts = append(storeOpts, graph.WithTypePromotion())
	}

	return &Client{
		store:    graph.NewStore(storeOpts...),
		patterns: extract.NewPatternExtractor(config.Patterns, logger),
		syntax:   extract.NewSyntaxExtractor(config.Syntax),
		cooccur:  extract.NewCooccurrenceExtractor(config.Cooccurrence),
		parser:   parserClient,
		config:   config,
		logger:   logger,
		metrics:  Metrics{CandidatesByMethod: make(map[types.Method]int)},
	}, nil
}

// Store returns the underlying graph store.
func (c *Client) Store() *graph.Store {
	return c.store
}

// Metrics implements WayangKG.
func (c *Client) Metrics() Metrics {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := c.metrics
	out.CandidatesByMethod = make(map[types.Method]int, len(c.metrics.CandidatesByMethod))
	for k, v := range c.metrics.CandidatesByMethod {
		out.CandidatesByMethod[k] = v
	}
	out.SkippedMentions = c.store.SkippedMentions()
	out.SkippedEdges = c.store.SkippedEdges()
	return out
}

// Close implements WayangKG.
func (c *Client) Close() error {
	if c.parser != nil {
		return c.parser.Close()
	}
	return nil
}
