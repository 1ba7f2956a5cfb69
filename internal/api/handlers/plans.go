package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"power-switch/internal/api/models"
	"power-switch/internal/model"
)

// PlansHandler serves the loaded plan catalog.
type PlansHandler struct {
	plans []model.PlanDefinition
}

// NewPlansHandler creates a new plans handler.
func NewPlansHandler(plans []model.PlanDefinition) *PlansHandler {
	return &PlansHandler{plans: plans}
}

// List handles GET /api/v1/plans
func (h *PlansHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, models.PlansResponse{
		Plans: h.plans,
		Count: len(h.plans),
	})
}
