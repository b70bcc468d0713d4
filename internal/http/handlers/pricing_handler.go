// README: Pricing handlers for the five cost operations.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"towpricing/internal/modules/pricing"
)

type PricingHandler struct {
	pricing *pricing.Service
}

func NewPricingHandler(svc *pricing.Service) *PricingHandler {
	return &PricingHandler{pricing: svc}
}

func (h *PricingHandler) ClientEstimate(c *gin.Context) {
	var req pricing.ClientCostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	writeResult(c, h.pricing.ClientCostEstimate(c.Request.Context(), req))
}

func (h *PricingHandler) AspEstimate(c *gin.Context) {
	var req pricing.AspCostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	writeResult(c, h.pricing.AspCostEstimate(c.Request.Context(), req))
}

func (h *PricingHandler) TravelledKm(c *gin.Context) {
	var req pricing.TravelledKmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	writeResult(c, h.pricing.TravelledKmCost(c.Request.Context(), req))
}

func (h *PricingHandler) RouteDeviation(c *gin.Context) {
	var req pricing.RouteDeviationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	writeResult(c, h.pricing.RouteDeviationCost(c.Request.Context(), req))
}

func (h *PricingHandler) ActivityCosts(c *gin.Context) {
	var req pricing.ActivityCostsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	writeResult(c, h.pricing.ActivityCosts(c.Request.Context(), req))
}
