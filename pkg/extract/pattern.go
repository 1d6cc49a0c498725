package extract

import (
	"log/slog"
	"strings"

	"github.com/adrianreza/wayangkg/pkg/types"
)

// PatternExtractor applies an ordered list of labelled lexical rules to a
// sentence and aligns the captured spans to the tagged mentions. A hit
// whose captures do not align to known mentions is dropped: precision over
// recall.
type PatternExtractor struct {
	patterns []Pattern
	logger   *slog.Logger
}

// NewPatternExtractor creates a pattern extractor. A nil patterns slice
// selects the built-in catalog; a nil logger selects slog.Default().
// Every expression is compiled here, up front, so Extract never mutates
// shared state and one extractor can serve concurrent callers. Patterns
// that fail to compile are dropped with a warning.
func NewPatternExtractor(patterns []Pattern, logger *slog.Logger) *PatternExtractor {
	if patterns == nil {
		patterns = DefaultPatterns()
	}
	if logger == nil {
		logger = slog.Default()
	}
	compiled := make([]Pattern, 0, len(patterns))
	for _, p := range patterns {
		if _, err := p.Regexp(); err != nil {
			logger.Warn("dropping pattern with invalid expression",
				"label", p.Label, "error", err)
			continue
		}
		compiled = append(compiled, p)
	}
	return &PatternExtractor{patterns: compiled, logger: logger}
}

// Patterns returns the active catalog.
func (e *PatternExtractor) Patterns() []Pattern {
	return e.patterns
}

// Extract applies every pattern to the sentence text and emits one
// candidate per aligned hit. Multiple hits in one sentence all produce
// candidates; fusion merges them later.
func (e *PatternExtractor) Extract(sentence string, mentions []types.EntityMention) []types.RelationCandidate {
	if len(mentions) < 2 {
		return nil
	}

	var out []types.RelationCandidate
	for i := range e.patterns {
		p := &e.patterns[i]
		// Compiled at construction; read-only from here on.
		re := p.re

		for _, idx := range re.FindAllStringSubmatchIndex(sentence, -1) {
			// idx layout: [m0 m1 g1s g1e g2s g2e ...]
			if len(idx) < 6 || idx[2] < 0 || idx[4] < 0 {
				continue
			}
			subj := alignMention(sentence[idx[2]:idx[3]], idx[2], mentions)
			obj := alignMention(sentence[idx[4]:idx[5]], idx[4], mentions)
			if subj == nil || obj == nil {
				// Captured spans do not resolve to tagged mentions.
				continue
			}
			subjID := types.NormalizeText(subj.Text)
			objID := types.NormalizeText(obj.Text)
			if types.FoldKey(subjID) == types.FoldKey(objID) {
				continue
			}
			if p.Reverse {
				subjID, objID = objID, subjID
			}
			out = append(out, types.RelationCandidate{
				SubjectID:     subjID,
				RelationType:  p.Label,
				Category:      p.Category,
				ObjectID:      objID,
				Confidence:    p.Confidence,
				Context:       sentence[idx[0]:idx[1]],
				Method:        types.MethodPattern,
				Bidirectional: p.Bidirectional,
			})
		}
	}
	return out
}

// alignMention resolves a captured span to one of the tagged mentions.
// Exact case-folded equality wins; otherwise containment in either
// direction is accepted when the mention covers at least 70% of the
// captured length, and ties break to the mention whose span starts nearest
// the capture offset.
func alignMention(captured string, offset int, mentions []types.EntityMention) *types.EntityMention {
	capKey := types.FoldKey(captured)
	if capKey == "" {
		return nil
	}

	var best *types.EntityMention
	bestDist := -1
	exact := false
	for i := range mentions {
		m := &mentions[i]
		mKey := types.FoldKey(m.Text)
		if mKey == "" {
			continue
		}

		isExact := mKey == capKey
		contained := strings.Contains(capKey, mKey) || strings.Contains(mKey, capKey)
		if !isExact && (!contained || len(mKey)*10 < len(capKey)*7) {
			continue
		}

		dist := m.Start - offset
		if dist < 0 {
			dist = -dist
		}
		switch {
		case best == nil,
			isExact && !exact,
			isExact == exact && dist < bestDist:
			best = m
			bestDist = dist
			exact = isExact
		}
	}
	return best
}
