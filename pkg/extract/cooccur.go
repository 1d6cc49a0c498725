package extract

import (
	"github.com/adrianreza/wayangkg/pkg/types"
)

// Co-occurrence labels, keyed by the entity-type pairing that produces
// them. This tier is the catch-all: it dominates total relation volume.
const (
	LabelInteractsWith  = "berinteraksi_dengan"
	LabelRelatedToPlace = "terkait_dengan_lokasi"
	LabelInvolvedIn     = "terlibat_dalam"
)

// CooccurrenceLabels is the set of labels this extractor can emit, used by
// fusion to recognize the statistical tier.
func CooccurrenceLabels() map[string]bool {
	return map[string]bool{
		LabelInteractsWith:  true,
		LabelRelatedToPlace: true,
		LabelInvolvedIn:     true,
	}
}

// CooccurrenceConfig bounds the inference window and sets the low-tier
// confidence. Sentences with fewer than MinMentions offer no signal; more
// than MaxMentions makes pairwise association noisy and quadratic. The
// window is a guardrail, not a correctness boundary, and stays
// configurable.
type CooccurrenceConfig struct {
	MinMentions int
	MaxMentions int
	Confidence  float64
}

// DefaultCooccurrenceConfig returns the standard 2..4 window.
func DefaultCooccurrenceConfig() CooccurrenceConfig {
	return CooccurrenceConfig{MinMentions: 2, MaxMentions: 4, Confidence: 0.35}
}

// CooccurrenceExtractor emits weak typed associations for entity pairs that
// co-occur in one sentence with no stronger relation.
type CooccurrenceExtractor struct {
	cfg CooccurrenceConfig
}

// NewCooccurrenceExtractor creates a co-occurrence extractor. Zero config
// fields select the defaults.
func NewCooccurrenceExtractor(cfg CooccurrenceConfig) *CooccurrenceExtractor {
	def := DefaultCooccurrenceConfig()
	if cfg.MinMentions == 0 {
		cfg.MinMentions = def.MinMentions
	}
	if cfg.MaxMentions == 0 {
		cfg.MaxMentions = def.MaxMentions
	}
	if cfg.Confidence == 0 {
		cfg.Confidence = def.Confidence
	}
	return &CooccurrenceExtractor{cfg: cfg}
}

// Extract emits one weak candidate per unordered mention pair not already
// covered by a pattern or syntax candidate in either direction. The
// relation label is determined purely by the two entity types.
func (e *CooccurrenceExtractor) Extract(sentence string, mentions []types.EntityMention, existing []types.RelationCandidate) []types.RelationCandidate {
	distinct := distinctMentions(mentions)
	if len(distinct) < e.cfg.MinMentions || len(distinct) > e.cfg.MaxMentions {
		return nil
	}

	covered := make(map[[2]string]bool, len(existing)*2)
	for _, c := range existing {
		a, b := types.FoldKey(c.SubjectID), types.FoldKey(c.ObjectID)
		covered[[2]string{a, b}] = true
		covered[[2]string{b, a}] = true
	}

	var out []types.RelationCandidate
	for i := 0; i < len(distinct); i++ {
		for j := i + 1; j < len(distinct); j++ {
			m1, m2 := distinct[i], distinct[j]
			if covered[[2]string{types.FoldKey(m1.Text), types.FoldKey(m2.Text)}] {
				continue
			}
			if c, ok := e.pairCandidate(sentence, m1, m2); ok {
				out = append(out, c)
			}
		}
	}
	return out
}

// pairCandidate maps an unordered mention pair to its typed weak relation.
// Pairings outside the table (LOC-LOC, ORG-EVENT, anything with OBJECT)
// yield nothing.
func (e *CooccurrenceExtractor) pairCandidate(sentence string, m1, m2 types.EntityMention) (types.RelationCandidate, bool) {
	c := types.RelationCandidate{
		Confidence: e.cfg.Confidence,
		Context:    sentence,
		Method:     types.MethodCooccurrence,
	}

	switch {
	case m1.Type == types.EntityPerson && m2.Type == types.EntityPerson:
		c.SubjectID = types.NormalizeText(m1.Text)
		c.ObjectID = types.NormalizeText(m2.Text)
		c.RelationType = LabelInteractsWith
		c.Category = types.CategorySocial
		c.Bidirectional = true
	case m1.Type == types.EntityPerson && m2.Type == types.EntityLoc:
		c.SubjectID = types.NormalizeText(m1.Text)
		c.ObjectID = types.NormalizeText(m2.Text)
		c.RelationType = LabelRelatedToPlace
		c.Category = types.CategoryLocation
	case m1.Type == types.EntityLoc && m2.Type == types.EntityPerson:
		c.SubjectID = types.NormalizeText(m2.Text)
		c.ObjectID = types.NormalizeText(m1.Text)
		c.RelationType = LabelRelatedToPlace
		c.Category = types.CategoryLocation
	case m1.Type == types.EntityPerson && (m2.Type == types.EntityOrg || m2.Type == types.EntityEvent):
		c.SubjectID = types.NormalizeText(m1.Text)
		c.ObjectID = types.NormalizeText(m2.Text)
		c.RelationType = LabelInvolvedIn
		c.Category = types.CategoryParticipation
	case m2.Type == types.EntityPerson && (m1.Type == types.EntityOrg || m1.Type == types.EntityEvent):
		c.SubjectID = types.NormalizeText(m2.Text)
		c.ObjectID = types.NormalizeText(m1.Text)
		c.RelationType = LabelInvolvedIn
		c.Category = types.CategoryParticipation
	default:
		return types.RelationCandidate{}, false
	}
	return c, true
}

// distinctMentions collapses repeated mentions of the same identity so the
// window counts entities, not spans.
func distinctMentions(mentions []types.EntityMention) []types.EntityMention {
	seen := make(map[string]bool, len(mentions))
	var out []types.EntityMention
	for _, m := range mentions {
		key := types.FoldKey(m.Text)
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, m)
	}
	return out
}
