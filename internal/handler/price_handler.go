package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/GTDGit/phone_price_api/internal/models"
	"github.com/GTDGit/phone_price_api/internal/service"
	"github.com/GTDGit/phone_price_api/internal/utils"
)

type priceService interface {
	List(ctx context.Context, phoneID, shopID *int, skip, limit int) ([]models.Offer, error)
	ByRange(ctx context.Context, minPrice, maxPrice int64, skip, limit int) ([]models.Offer, error)
	Get(ctx context.Context, id int) (*models.Offer, error)
	Create(ctx context.Context, req *service.CreatePriceRequest) (*models.Offer, error)
	Update(ctx context.Context, id int, req *service.UpdatePriceRequest) (*models.Offer, error)
	Delete(ctx context.Context, id int) error
}

// PriceHandler handles shop price endpoints.
type PriceHandler struct {
	priceService priceService
}

// NewPriceHandler constructs a PriceHandler.
func NewPriceHandler(priceService priceService) *PriceHandler {
	return &PriceHandler{priceService: priceService}
}

// ListPrices handles GET /v1/prices
func (h *PriceHandler) ListPrices(c *gin.Context) {
	skip, limit, ok := parsePage(c)
	if !ok {
		return
	}
	phoneID, ok := optionalInt(c, "phone_id")
	if !ok {
		return
	}
	shopID, ok := optionalInt(c, "shop_id")
	if !ok {
		return
	}

	prices, err := h.priceService.List(c.Request.Context(), phoneID, shopID, skip, limit)
	if err != nil {
		respondError(c, err, "Failed to retrieve prices")
		return
	}
	utils.SuccessWithPagination(c, 200, "Prices retrieved", prices, skip, limit, len(prices))
}

// PricesByRange handles GET /v1/prices/range
func (h *PriceHandler) PricesByRange(c *gin.Context) {
	skip, limit, ok := parsePage(c)
	if !ok {
		return
	}
	minPrice, ok := optionalInt64(c, "min_price")
	if !ok {
		return
	}
	maxPrice, ok := optionalInt64(c, "max_price")
	if !ok {
		return
	}
	if minPrice == nil || maxPrice == nil {
		utils.Error(c, 400, "INVALID_REQUEST", "min_price and max_price are required")
		return
	}

	prices, err := h.priceService.ByRange(c.Request.Context(), *minPrice, *maxPrice, skip, limit)
	if err != nil {
		respondError(c, err, "Failed to retrieve prices")
		return
	}
	utils.SuccessWithPagination(c, 200, "Prices retrieved", prices, skip, limit, len(prices))
}

// GetPrice handles GET /v1/prices/:id
func (h *PriceHandler) GetPrice(c *gin.Context) {
	id, ok := parseID(c, "id", "price")
	if !ok {
		return
	}
	price, err := h.priceService.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "Failed to retrieve price")
		return
	}
	utils.Success(c, 200, "Price retrieved", price)
}

// CreatePrice handles POST /v1/admin/prices
func (h *PriceHandler) CreatePrice(c *gin.Context) {
	var req service.CreatePriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid request body")
		return
	}
	price, err := h.priceService.Create(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err, "Failed to create price")
		return
	}
	utils.Success(c, 201, "Price created successfully", price)
}

// UpdatePrice handles PUT /v1/admin/prices/:id
func (h *PriceHandler) UpdatePrice(c *gin.Context) {
	id, ok := parseID(c, "id", "price")
	if !ok {
		return
	}
	var req service.UpdatePriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid request body")
		return
	}
	price, err := h.priceService.Update(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, err, "Failed to update price")
		return
	}
	utils.Success(c, 200, "Price updated successfully", price)
}

// DeletePrice handles DELETE /v1/admin/prices/:id
func (h *PriceHandler) DeletePrice(c *gin.Context) {
	id, ok := parseID(c, "id", "price")
	if !ok {
		return
	}
	if err := h.priceService.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err, "Failed to delete price")
		return
	}
	utils.Success(c, 200, "Price deleted successfully", nil)
}
