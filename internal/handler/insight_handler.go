package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/GTDGit/phone_price_api/internal/service"
	"github.com/GTDGit/phone_price_api/internal/utils"
)

type insightService interface {
	PriceRange(ctx context.Context, id int) (*service.PriceRange, error)
	Predict(ctx context.Context, id int) (*service.PricePrediction, error)
	ActiveComparison(ctx context.Context, id int) (*service.ActiveComparison, error)
}

// InsightHandler serves the /v1/ai price insight endpoints.
type InsightHandler struct {
	insightService insightService
}

// NewInsightHandler constructs an InsightHandler.
func NewInsightHandler(insightService insightService) *InsightHandler {
	return &InsightHandler{insightService: insightService}
}

// PriceRange handles GET /v1/ai/price-range/:phone_id
func (h *InsightHandler) PriceRange(c *gin.Context) {
	id, ok := parseID(c, "phone_id", "phone")
	if !ok {
		return
	}
	res, err := h.insightService.PriceRange(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "Failed to compute price range")
		return
	}
	utils.Success(c, 200, "Price range retrieved", res)
}

// Predict handles GET /v1/ai/predict/:phone_id
func (h *InsightHandler) Predict(c *gin.Context) {
	id, ok := parseID(c, "phone_id", "phone")
	if !ok {
		return
	}
	res, err := h.insightService.Predict(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "Failed to predict price")
		return
	}
	utils.Success(c, 200, "Price prediction retrieved", res)
}

// Comparison handles GET /v1/ai/comparison/:phone_id
func (h *InsightHandler) Comparison(c *gin.Context) {
	id, ok := parseID(c, "phone_id", "phone")
	if !ok {
		return
	}
	res, err := h.insightService.ActiveComparison(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "Failed to compare prices")
		return
	}
	utils.Success(c, 200, "Price comparison retrieved", res)
}
