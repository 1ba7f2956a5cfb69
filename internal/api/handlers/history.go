package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"power-switch/internal/api/models"
	"power-switch/internal/store"
)

// HistoryHandler exposes the analysis audit log.
type HistoryHandler struct {
	store store.Store
}

// NewHistoryHandler creates a new history handler.
func NewHistoryHandler(st store.Store) *HistoryHandler {
	return &HistoryHandler{store: st}
}

// List handles GET /api/v1/history
func (h *HistoryHandler) List(c *gin.Context) {
	var req models.HistoryRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_REQUEST",
				Message: err.Error(),
			},
		})
		return
	}

	analyses, err := h.store.Recent(c.Request.Context(), req.Limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "STORE_ERROR",
				Message: err.Error(),
			},
		})
		return
	}
	stats, err := h.store.Stats(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "STORE_ERROR",
				Message: err.Error(),
			},
		})
		return
	}

	c.JSON(http.StatusOK, models.HistoryResponse{
		Analyses: analyses,
		Stats:    stats,
	})
}
