package dto

import (
	"errors"
	"strings"

	"github.com/adrianreza/wayangkg/pkg/types"
)

// MaxSentencesPerDocument bounds a single ingest request.
const MaxSentencesPerDocument = 10000

// AddDocumentRequest is the body of POST /api/v1/documents.
type AddDocumentRequest struct {
	ID        string           `json:"id" binding:"required"`
	Dataset   string           `json:"dataset"`
	Sentences []types.Sentence `json:"sentences" binding:"required"`
}

// Validate performs request-level validation before the pipeline's own
// document validation runs.
func (r *AddDocumentRequest) Validate() error {
	if strings.TrimSpace(r.ID) == "" {
		return errors.New("id cannot be empty")
	}
	if len(r.Sentences) == 0 {
		return errors.New("sentences cannot be empty")
	}
	if len(r.Sentences) > MaxSentencesPerDocument {
		return errors.New("too many sentences in one document")
	}
	return nil
}

// Document converts the request into the pipeline input type.
func (r *AddDocumentRequest) Document() types.Document {
	return types.Document{
		ID:        r.ID,
		Dataset:   r.Dataset,
		Sentences: r.Sentences,
	}
}

// AddCorpusRequest is the body of POST /api/v1/corpus.
type AddCorpusRequest struct {
	Documents []AddDocumentRequest `json:"documents" binding:"required"`
}

// Validate checks the batch.
func (r *AddCorpusRequest) Validate() error {
	if len(r.Documents) == 0 {
		return errors.New("documents cannot be empty")
	}
	return nil
}
