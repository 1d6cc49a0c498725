package wayangkg

import (
	"context"
	"fmt"

	"github.com/adrianreza/wayangkg/pkg/extract"
	"github.com/adrianreza/wayangkg/pkg/types"
)

// DocumentResult summarizes one document pass.
type DocumentResult struct {
	DocumentID string `json:"documentId"`
	Sentences  int    `json:"sentences"`
	Candidates int    `json:"candidates"`
	Edges      int    `json:"edges"`
}

// DocumentFailure records a document that was skipped during a corpus pass.
type DocumentFailure struct {
	DocumentID string `json:"documentId"`
	Error      string `json:"error"`
}

// CorpusResult summarizes a corpus pass.
type CorpusResult struct {
	Processed int               `json:"processed"`
	Failed    []DocumentFailure `json:"failed,omitempty"`
}

// ProcessDocument implements WayangKG. A structurally invalid document
// (no sentences, inverted spans) fails as a unit; within a valid document,
// malformed mentions are skipped quietly and a missing parse degrades the
// syntax tier to zero candidates.
func (c *Client) ProcessDocument(ctx context.Context, doc types.Document) (*DocumentResult, error) {
	if doc.ID == "" {
		return nil, types.ErrEmptyID
	}
	if err := doc.Validate(); err != nil {
		return nil, fmt.Errorf("document %s: %w", doc.ID, err)
	}

	dataset := doc.Dataset
	if dataset == "" {
		dataset = doc.ID
	}

	result := &DocumentResult{DocumentID: doc.ID}
	for i := range doc.Sentences {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		candidates, edges := c.processSentence(ctx, dataset, &doc.Sentences[i])
		result.Sentences++
		result.Candidates += candidates
		result.Edges += edges
	}

	c.mu.Lock()
	c.metrics.DocumentsProcessed++
	c.metrics.SentencesProcessed += result.Sentences
	c.mu.Unlock()

	c.logger.Debug("processed document",
		"document", doc.ID,
		"sentences", result.Sentences,
		"candidates", result.Candidates,
		"edges", result.Edges)
	return result, nil
}

// processSentence runs the three extraction tiers over one sentence and
// merges the fused edges into the store.
func (c *Client) processSentence(ctx context.Context, dataset string, sentence *types.Sentence) (int, int) {
	// Register every mention first so edge endpoints always resolve.
	for _, m := range sentence.Mentions {
		m.SourceDocID = dataset
		c.store.Register(m)
	}

	candidates := c.patterns.Extract(sentence.Text, sentence.Mentions)

	parse := sentence.Parse
	if parse == nil && c.parser != nil {
		var err error
		parse, err = c.parser.ParseSentence(ctx, sentence.Text)
		if err != nil {
			c.mu.Lock()
			c.metrics.ParseFailures++
			c.mu.Unlock()
			c.logger.Warn("parse failed, continuing without syntax tier",
				"error", err)
		}
	}
	candidates = append(candidates, c.syntax.Extract(sentence.Text, parse, sentence.Mentions)...)

	candidates = append(candidates, c.cooccur.Extract(sentence.Text, sentence.Mentions, candidates)...)

	c.mu.Lock()
	for _, cand := range candidates {
		c.metrics.CandidatesByMethod[cand.Method]++
	}
	c.mu.Unlock()

	edges := extract.Fuse(candidates)
	for _, e := range edges {
		c.store.AddEdge(e)
	}
	return len(candidates), len(edges)
}

// ProcessCorpus implements WayangKG. Document failures are collected, not
// fatal: one malformed document never stops the pass. Context cancellation
// does stop it.
func (c *Client) ProcessCorpus(ctx context.Context, docs []types.Document) (*CorpusResult, error) {
	result := &CorpusResult{}
	for _, doc := range docs {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		if _, err := c.ProcessDocument(ctx, doc); err != nil {
			if ctx.Err() != nil {
				return result, err
			}
			c.mu.Lock()
			c.metrics.DocumentsFailed++
			c.mu.Unlock()
			c.logger.Warn("skipping document", "document", doc.ID, "error", err)
			result.Failed = append(result.Failed, DocumentFailure{
				DocumentID: doc.ID,
				Error:      err.Error(),
			})
			continue
		}
		result.Processed++
	}

	c.logger.Info("corpus pass complete",
		"processed", result.Processed,
		"failed", len(result.Failed),
		"nodes", c.store.NodeCount(),
		"edges", c.store.EdgeCount())
	return result, nil
}
