package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	wayangkg "github.com/adrianreza/wayangkg"
	"github.com/adrianreza/wayangkg/pkg/server/dto"
	"github.com/adrianreza/wayangkg/pkg/types"
)

// GraphHandler serves graph queries and analytics
type GraphHandler struct {
	kg wayangkg.WayangKG
}

// NewGraphHandler creates a new graph handler
func NewGraphHandler(kg wayangkg.WayangKG) *GraphHandler {
	return &GraphHandler{kg: kg}
}

// GetGraph handles GET /api/v1/graph
func (h *GraphHandler) GetGraph(c *gin.Context) {
	c.JSON(http.StatusOK, h.kg.Snapshot())
}

// GetStatistics handles GET /api/v1/graph/statistics
func (h *GraphHandler) GetStatistics(c *gin.Context) {
	c.JSON(http.StatusOK, h.kg.Statistics())
}

// GetCommunities handles GET /api/v1/graph/communities
func (h *GraphHandler) GetCommunities(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"communities": h.kg.Communities()})
}

// GetMetrics handles GET /api/v1/graph/metrics
func (h *GraphHandler) GetMetrics(c *gin.Context) {
	c.JSON(http.StatusOK, h.kg.Metrics())
}

// GetEntity handles GET /api/v1/entities/:id
func (h *GraphHandler) GetEntity(c *gin.Context) {
	info, err := h.kg.GetEntity(c.Param("id"))
	if err != nil {
		if errors.Is(err, types.ErrNodeNotFound) {
			c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "not_found", Message: err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "internal", Message: err.Error()})
		return
	}
	c.JSON(http.StatusOK, info)
}

// GetPaths handles GET /api/v1/entities/:id/paths?target=X&maxLength=5
func (h *GraphHandler) GetPaths(c *gin.Context) {
	target := c.Query("target")
	if target == "" {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid_request", Message: "target is required"})
		return
	}

	maxLength := 5
	if raw := c.Query("maxLength"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid_request", Message: "maxLength must be an integer"})
			return
		}
		maxLength = parsed
	}

	paths, err := h.kg.FindPaths(c.Param("id"), target, maxLength)
	if err != nil {
		switch {
		case errors.Is(err, types.ErrNodeNotFound):
			c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "not_found", Message: err.Error()})
		case errors.Is(err, types.ErrInvalidDepth):
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid_request", Message: err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "internal", Message: err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"paths": paths})
}

// GetSubgraph handles GET /api/v1/entities/:id/subgraph?depth=2
func (h *GraphHandler) GetSubgraph(c *gin.Context) {
	depth := 2
	if raw := c.Query("depth"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid_request", Message: "depth must be an integer"})
			return
		}
		depth = parsed
	}

	snap, err := h.kg.Subgraph(c.Param("id"), depth)
	if err != nil {
		switch {
		case errors.Is(err, types.ErrNodeNotFound):
			c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "not_found", Message: err.Error()})
		case errors.Is(err, types.ErrInvalidDepth):
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid_request", Message: err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "internal", Message: err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, snap)
}
