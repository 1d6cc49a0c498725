package wayangkg_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	wayangkg "github.com/adrianreza/wayangkg"
	"github.com/adrianreza/wayangkg/pkg/types"
)

func newClient(t *testing.T) *wayangkg.Client {
	t.Helper()
	c, err := wayangkg.NewClient(nil, nil, nil)
	require.NoError(t, err)
	return c
}

func doc(id, dataset string, sentences ...types.Sentence) types.Document {
	return types.Document{ID: id, Dataset: dataset, Sentences: sentences}
}

func personMention(text string, start int) types.EntityMention {
	return types.EntityMention{Text: text, Type: types.EntityPerson, Start: start, End: start + len(text)}
}

func locMention(text string, start int) types.EntityMention {
	return types.EntityMention{Text: text, Type: types.EntityLoc, Start: start, End: start + len(text)}
}

func findEdge(t *testing.T, snap *types.Snapshot, source, target string) types.SnapshotEdge {
	t.Helper()
	for _, e := range snap.Edges {
		if e.Source == source && e.Target == target {
			return e
		}
	}
	t.Fatalf("no edge %s -> %s in %v", source, target, snap.Edges)
	return types.SnapshotEdge{}
}

func TestProcessDocumentSiblingSentence(t *testing.T) {
	c := newClient(t)

	sentence := types.Sentence{
		Text: "Nakula dan Sadewa adalah saudara kembar",
		Mentions: []types.EntityMention{
			personMention("Nakula", 0),
			personMention("Sadewa", 11),
		},
	}
	res, err := c.ProcessDocument(context.Background(), doc("d1", "mahabharata", sentence))
	require.NoError(t, err)
	assert.Equal(t, 1, res.Sentences)

	snap := c.Snapshot()
	require.Len(t, snap.Nodes, 2)

	forward := findEdge(t, snap, "Nakula", "Sadewa")
	backward := findEdge(t, snap, "Sadewa", "Nakula")
	for _, e := range []types.SnapshotEdge{forward, backward} {
		assert.Contains(t, e.RelationTypes, "saudara_dari")
		assert.Equal(t, types.CategoryFamily, e.Categories["saudara_dari"])
		assert.InDelta(t, 0.85, e.MaxConfidence, 1e-9)
		assert.NotContains(t, e.RelationTypes, "berinteraksi_dengan",
			"explicit signal suppresses the statistical tier")
	}
}

func TestProcessDocumentCooccurrenceFallback(t *testing.T) {
	c := newClient(t)

	sentence := types.Sentence{
		Text: "Raden Arjuna berjalan bersama rombongan Kerajaan Dwarawati",
		Mentions: []types.EntityMention{
			personMention("Raden Arjuna", 0),
			locMention("Kerajaan Dwarawati", 40),
		},
	}
	_, err := c.ProcessDocument(context.Background(), doc("d1", "wayang", sentence))
	require.NoError(t, err)

	snap := c.Snapshot()
	e := findEdge(t, snap, "Raden Arjuna", "Kerajaan Dwarawati")
	assert.Equal(t, []string{"terkait_dengan_lokasi"}, e.RelationTypes)
	assert.Equal(t, types.CategoryLocation, e.Categories["terkait_dengan_lokasi"])
	assert.InDelta(t, 0.35, e.MaxConfidence, 1e-9)
}

func TestProcessDocumentMergesAcrossDocuments(t *testing.T) {
	c := newClient(t)
	ctx := context.Background()

	sentence := types.Sentence{
		Text: "Bima membantu Arjuna",
		Mentions: []types.EntityMention{
			personMention("Bima", 0),
			personMention("Arjuna", 14),
		},
	}
	_, err := c.ProcessDocument(ctx, doc("d1", "cerita-a", sentence))
	require.NoError(t, err)

	folded := types.Sentence{
		Text: "BIMA membantu arjuna",
		Mentions: []types.EntityMention{
			personMention("BIMA", 0),
			personMention("arjuna", 14),
		},
	}
	_, err = c.ProcessDocument(ctx, doc("d2", "cerita-b", folded))
	require.NoError(t, err)

	snap := c.Snapshot()
	require.Len(t, snap.Nodes, 2, "case variants fold to one node")

	var bima types.SnapshotNode
	for _, n := range snap.Nodes {
		if n.ID == "Bima" {
			bima = n
		}
	}
	assert.Equal(t, 2, bima.MentionCount)
	assert.Equal(t, []string{"cerita-a", "cerita-b"}, bima.SourceDatasets)

	e := findEdge(t, snap, "Bima", "Arjuna")
	assert.Equal(t, 2, e.Count, "repeated evidence accumulates on one edge")
}

func TestProcessDocumentValidation(t *testing.T) {
	c := newClient(t)
	ctx := context.Background()

	_, err := c.ProcessDocument(ctx, types.Document{Sentences: []types.Sentence{{Text: "x"}}})
	assert.ErrorIs(t, err, types.ErrEmptyID)

	_, err = c.ProcessDocument(ctx, types.Document{ID: "d1"})
	assert.ErrorIs(t, err, types.ErrNoSentences)

	bad := types.Document{ID: "d2", Sentences: []types.Sentence{{
		Text:     "Bima",
		Mentions: []types.EntityMention{{Text: "Bima", Type: types.EntityPerson, Start: 4, End: 1}},
	}}}
	_, err = c.ProcessDocument(ctx, bad)
	assert.ErrorIs(t, err, types.ErrInvalidSpan)
}

func TestProcessCorpusCollectsFailures(t *testing.T) {
	c := newClient(t)

	good := doc("d1", "wayang", types.Sentence{
		Text: "Arjuna melawan Karna",
		Mentions: []types.EntityMention{
			personMention("Arjuna", 0),
			personMention("Karna", 15),
		},
	})
	bad := types.Document{ID: "d2"}

	res, err := c.ProcessCorpus(context.Background(), []types.Document{good, bad})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Processed)
	require.Len(t, res.Failed, 1)
	assert.Equal(t, "d2", res.Failed[0].DocumentID)

	m := c.Metrics()
	assert.Equal(t, 1, m.DocumentsProcessed)
	assert.Equal(t, 1, m.DocumentsFailed)
	assert.Equal(t, 1, m.SentencesProcessed)
	assert.Positive(t, m.CandidatesByMethod[types.MethodPattern])
}

func TestProcessCorpusHonorsCancellation(t *testing.T) {
	c := newClient(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.ProcessCorpus(ctx, []types.Document{doc("d1", "", types.Sentence{Text: "x"})})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestInlineParseFeedsSyntaxTier(t *testing.T) {
	c := newClient(t)

	sentence := types.Sentence{
		Text: "Gatotkaca menewaskan raksasa Kala Pracona",
		Mentions: []types.EntityMention{
			personMention("Gatotkaca", 0),
			personMention("Kala Pracona", 29),
		},
		Parse: &types.SentenceParse{Tokens: []types.ParseToken{
			{Text: "Gatotkaca", POS: "PROPN", Head: 1, Dep: "nsubj", Start: 0, End: 9},
			{Text: "menewaskan", POS: "VERB", Head: 1, Dep: "root", Start: 10, End: 20},
			{Text: "Pracona", POS: "PROPN", Head: 1, Dep: "obj", Start: 34, End: 41},
		}},
	}
	_, err := c.ProcessDocument(context.Background(), doc("d1", "wayang", sentence))
	require.NoError(t, err)

	snap := c.Snapshot()
	e := findEdge(t, snap, "Gatotkaca", "Kala Pracona")
	assert.Contains(t, e.RelationTypes, "melawan")
	assert.Equal(t, 1, c.Metrics().CandidatesByMethod[types.MethodSyntax])
}

func TestStatisticsAndCommunitiesExposed(t *testing.T) {
	c := newClient(t)

	sentence := types.Sentence{
		Text: "Arjuna melawan Karna",
		Mentions: []types.EntityMention{
			personMention("Arjuna", 0),
			personMention("Karna", 15),
		},
	}
	_, err := c.ProcessDocument(context.Background(), doc("d1", "wayang", sentence))
	require.NoError(t, err)

	stats := c.Statistics()
	assert.Equal(t, 2, stats.NodeCount)
	assert.Equal(t, 2, stats.EdgeCount, "bidirectional relation yields both directions")
	assert.Equal(t, 1, stats.ComponentCount)

	info, err := c.GetEntity("arjuna")
	require.NoError(t, err)
	assert.Equal(t, "Arjuna", info.ID)

	sub, err := c.Subgraph("Arjuna", 1)
	require.NoError(t, err)
	assert.Len(t, sub.Nodes, 2)

	assert.NotNil(t, c.Snapshot().Statistics)
}

func TestExportImportRoundTrip(t *testing.T) {
	c := newClient(t)

	sentence := types.Sentence{
		Text: "Arjuna melawan Karna",
		Mentions: []types.EntityMention{
			personMention("Arjuna", 0),
			personMention("Karna", 15),
		},
	}
	_, err := c.ProcessDocument(context.Background(), doc("d1", "wayang", sentence))
	require.NoError(t, err)

	dir := t.TempDir()
	jsonPath := filepath.Join(dir, "graph.json")
	require.NoError(t, c.ExportJSON(jsonPath))
	require.NoError(t, c.ExportParquet(
		filepath.Join(dir, "nodes.parquet"),
		filepath.Join(dir, "edges.parquet")))

	restored := newClient(t)
	require.NoError(t, restored.ImportJSON(jsonPath))
	assert.Equal(t, c.Snapshot().Nodes, restored.Snapshot().Nodes)
	assert.Equal(t, c.Snapshot().Edges, restored.Snapshot().Edges)
}

type failingParser struct{}

func (failingParser) ParseSentence(context.Context, string) (*types.SentenceParse, error) {
	return nil, errors.New("boom")
}
func (failingParser) Close() error { return nil }

func TestParserFailureDegradesGracefully(t *testing.T) {
	c, err := wayangkg.NewClient(failingParser{}, nil, nil)
	require.NoError(t, err)

	sentence := types.Sentence{
		Text: "Arjuna melawan Karna",
		Mentions: []types.EntityMention{
			personMention("Arjuna", 0),
			personMention("Karna", 15),
		},
	}
	_, err = c.ProcessDocument(context.Background(), doc("d1", "wayang", sentence))
	require.NoError(t, err, "parse failure never fails the document")

	m := c.Metrics()
	assert.Equal(t, 1, m.ParseFailures)
	assert.Positive(t, m.CandidatesByMethod[types.MethodPattern],
		"the lexical tier still ran")
	require.NoError(t, c.Close())
}
