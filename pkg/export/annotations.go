package export

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	jsonrepair "github.com/kaptinlin/jsonrepair"

	"github.com/adrianreza/wayangkg/pkg/types"
)

// The annotated corpus format is the one produced by span labeling tools:
// a JSON array of two-element entries, the sentence text followed by an
// object holding [start, end, label] triples.
//
//	[
//	  ["Bima adalah putra dari Pandu", {"entities": [[0, 4, "PERSON"], [23, 28, "PERSON"]]}],
//	  ...
//	]

// LoadAnnotations reads an annotated corpus file and converts it into one
// document per array entry, each holding a single annotated sentence.
// Broken JSON gets one repair attempt before failing.
func LoadAnnotations(path, dataset string) ([]types.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		repaired, repairErr := jsonrepair.JSONRepair(string(data))
		if repairErr != nil {
			return nil, fmt.Errorf("failed to decode annotations: %w", err)
		}
		if err := json.Unmarshal([]byte(repaired), &raw); err != nil {
			return nil, fmt.Errorf("failed to decode annotations after repair: %w", err)
		}
	}

	docs := make([]types.Document, 0, len(raw))
	for i, entry := range raw {
		sentence, err := decodeEntry(entry)
		if err != nil {
			return nil, fmt.Errorf("annotation entry %d: %w", i, err)
		}
		docs = append(docs, types.Document{
			ID:        uuid.New().String(),
			Dataset:   dataset,
			Sentences: []types.Sentence{sentence},
		})
	}
	return docs, nil
}

func decodeEntry(entry json.RawMessage) (types.Sentence, error) {
	var pair []json.RawMessage
	if err := json.Unmarshal(entry, &pair); err != nil {
		return types.Sentence{}, fmt.Errorf("entry is not an array: %w", err)
	}
	if len(pair) != 2 {
		return types.Sentence{}, fmt.Errorf("entry has %d elements, want 2", len(pair))
	}

	var text string
	if err := json.Unmarshal(pair[0], &text); err != nil {
		return types.Sentence{}, fmt.Errorf("entry text: %w", err)
	}

	var spans struct {
		Entities [][]json.RawMessage `json:"entities"`
	}
	if err := json.Unmarshal(pair[1], &spans); err != nil {
		return types.Sentence{}, fmt.Errorf("entry spans: %w", err)
	}

	sentence := types.Sentence{Text: text}
	for _, span := range spans.Entities {
		if len(span) != 3 {
			return types.Sentence{}, fmt.Errorf("span has %d elements, want 3", len(span))
		}
		var start, end int
		var label string
		if err := json.Unmarshal(span[0], &start); err != nil {
			return types.Sentence{}, fmt.Errorf("span start: %w", err)
		}
		if err := json.Unmarshal(span[1], &end); err != nil {
			return types.Sentence{}, fmt.Errorf("span end: %w", err)
		}
		if err := json.Unmarshal(span[2], &label); err != nil {
			return types.Sentence{}, fmt.Errorf("span label: %w", err)
		}
		if start < 0 || end > len(text) || start >= end {
			return types.Sentence{}, fmt.Errorf("span [%d,%d) out of range: %w", start, end, types.ErrInvalidSpan)
		}
		sentence.Mentions = append(sentence.Mentions, types.EntityMention{
			Text:  text[start:end],
			Type:  normalizeLabel(label),
			Start: start,
			End:   end,
		})
	}
	return sentence, nil
}

// normalizeLabel maps the label variants seen across labeling tools onto
// the canonical entity types.
func normalizeLabel(label string) types.EntityType {
	switch strings.ToUpper(strings.TrimSpace(label)) {
	case "PERSON", "PER":
		return types.EntityPerson
	case "LOC", "LOCATION", "GPE":
		return types.EntityLoc
	case "ORG", "ORGANIZATION":
		return types.EntityOrg
	case "EVENT", "EVT":
		return types.EntityEvent
	default:
		return types.EntityObject
	}
}
