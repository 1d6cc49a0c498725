package types

import (
	"errors"
	"strings"
)

// Validation errors
var (
	ErrEmptyText       = errors.New("text cannot be empty")
	ErrEmptyID         = errors.New("id cannot be empty")
	ErrNoSentences     = errors.New("document has no sentences")
	ErrInvalidSpan     = errors.New("mention span is invalid")
	ErrNodeNotFound    = errors.New("node not found")
	ErrInvalidDepth    = errors.New("depth must be positive")
	ErrUnknownCategory = errors.New("unknown relation category")
)

// EntityType classifies an entity mention or node.
type EntityType string

const (
	EntityPerson EntityType = "PERSON"
	EntityLoc    EntityType = "LOC"
	EntityOrg    EntityType = "ORG"
	EntityEvent  EntityType = "EVENT"
	EntityObject EntityType = "OBJECT"
)

// Category is the coarse grouping of relation labels. Labels themselves are
// open strings; the category is the closed part of the tagged variant so
// analytics can group without a central label registry.
type Category string

const (
	CategoryFamily        Category = "keluarga"
	CategoryConflict      Category = "konflik"
	CategoryLocation      Category = "lokasi"
	CategoryParticipation Category = "partisipasi"
	CategorySocial        Category = "sosial"
	CategoryOther         Category = "asosiasi"
)

// Categories lists every known relation category.
func Categories() []Category {
	return []Category{
		CategoryFamily,
		CategoryConflict,
		CategoryLocation,
		CategoryParticipation,
		CategorySocial,
		CategoryOther,
	}
}

// ParseCategory maps a category string to a Category constant.
func ParseCategory(s string) (Category, error) {
	for _, c := range Categories() {
		if string(c) == s {
			return c, nil
		}
	}
	return "", ErrUnknownCategory
}

// Method identifies which extraction strategy produced a relation candidate.
type Method string

const (
	MethodPattern      Method = "pattern"
	MethodSyntax       Method = "syntax"
	MethodCooccurrence Method = "cooccurrence"
)

// EntityMention is one occurrence of an entity's text span within a
// sentence, as produced by the upstream tagger. It is ephemeral: the core
// consumes mentions and folds them into canonical nodes.
type EntityMention struct {
	Text        string     `json:"text"`
	Type        EntityType `json:"type"`
	Start       int        `json:"start"`
	End         int        `json:"end"`
	SourceDocID string     `json:"source_doc_id,omitempty"`
}

// Validate checks the mention for structural problems. An empty text is a
// soft condition handled by the registry; an inverted span is a document
// level failure.
func (m *EntityMention) Validate() error {
	if m.Start < 0 || m.End < m.Start {
		return ErrInvalidSpan
	}
	return nil
}

// Sentence is one pre-segmented sentence together with its tagged mentions
// and an optional dependency parse supplied by the external parser.
type Sentence struct {
	Text     string          `json:"text"`
	Mentions []EntityMention `json:"mentions"`
	Parse    *SentenceParse  `json:"parse,omitempty"`
}

// Document is a unit of corpus input: pre-segmented sentences with tagged
// mentions. Sentence segmentation and entity tagging happen upstream.
type Document struct {
	ID        string     `json:"id"`
	Dataset   string     `json:"dataset,omitempty"`
	Sentences []Sentence `json:"sentences"`
}

// Validate reports structurally invalid documents. These are escalated as
// document-level failures that skip the document without stopping the
// corpus pass.
func (d *Document) Validate() error {
	if len(d.Sentences) == 0 {
		return ErrNoSentences
	}
	for _, s := range d.Sentences {
		for i := range s.Mentions {
			if err := s.Mentions[i].Validate(); err != nil {
				return err
			}
		}
	}
	return nil
}

// RelationCandidate is an unconfirmed, extractor-produced typed link
// between two entities, pre-fusion. SubjectID and ObjectID carry the
// normalized display text of the participating mentions.
type RelationCandidate struct {
	SubjectID     string   `json:"subject_id"`
	RelationType  string   `json:"relation_type"`
	Category      Category `json:"category"`
	ObjectID      string   `json:"object_id"`
	Confidence    float64  `json:"confidence"`
	Context       string   `json:"context,omitempty"`
	Method        Method   `json:"method"`
	Bidirectional bool     `json:"bidirectional,omitempty"`
}

// NormalizeText trims and collapses internal whitespace while preserving
// case. The result is the display form of a node identity.
func NormalizeText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// FoldKey returns the case-folded identity key for a normalized text.
// Case is folded for identity comparison only, never for display.
func FoldKey(s string) string {
	return strings.ToLower(NormalizeText(s))
}
