package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	wayangkg "github.com/adrianreza/wayangkg"
	"github.com/adrianreza/wayangkg/pkg/server/dto"
	"github.com/adrianreza/wayangkg/pkg/types"
)

// IngestHandler handles document ingestion requests
type IngestHandler struct {
	kg wayangkg.WayangKG
}

// NewIngestHandler creates a new ingest handler
func NewIngestHandler(kg wayangkg.WayangKG) *IngestHandler {
	return &IngestHandler{kg: kg}
}

// AddDocument handles POST /api/v1/documents
func (h *IngestHandler) AddDocument(c *gin.Context) {
	var req dto.AddDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid_request", Message: err.Error()})
		return
	}
	if err := req.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid_request", Message: err.Error()})
		return
	}

	result, err := h.kg.ProcessDocument(c.Request.Context(), req.Document())
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, dto.ErrorResponse{Error: "document_rejected", Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, dto.Result{Success: true, Data: result})
}

// AddCorpus handles POST /api/v1/corpus
func (h *IngestHandler) AddCorpus(c *gin.Context) {
	var req dto.AddCorpusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid_request", Message: err.Error()})
		return
	}
	if err := req.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid_request", Message: err.Error()})
		return
	}

	docs := make([]types.Document, 0, len(req.Documents))
	for _, d := range req.Documents {
		docs = append(docs, d.Document())
	}

	result, err := h.kg.ProcessCorpus(c.Request.Context(), docs)
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "corpus_failed", Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, dto.Result{Success: true, Data: result})
}
