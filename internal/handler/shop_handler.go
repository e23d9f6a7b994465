package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/GTDGit/phone_price_api/internal/models"
	"github.com/GTDGit/phone_price_api/internal/service"
	"github.com/GTDGit/phone_price_api/internal/utils"
)

type shopService interface {
	List(ctx context.Context, skip, limit int) ([]models.Shop, error)
	Get(ctx context.Context, id int) (*models.Shop, error)
	Create(ctx context.Context, req *service.ShopRequest) (*models.Shop, error)
	Update(ctx context.Context, id int, req *service.ShopRequest) (*models.Shop, error)
	Delete(ctx context.Context, id int) error
}

// ShopHandler handles shop CRUD endpoints.
type ShopHandler struct {
	shopService shopService
}

// NewShopHandler constructs a ShopHandler.
func NewShopHandler(shopService shopService) *ShopHandler {
	return &ShopHandler{shopService: shopService}
}

// ListShops handles GET /v1/shops
func (h *ShopHandler) ListShops(c *gin.Context) {
	skip, limit, ok := parsePage(c)
	if !ok {
		return
	}
	shops, err := h.shopService.List(c.Request.Context(), skip, limit)
	if err != nil {
		respondError(c, err, "Failed to retrieve shops")
		return
	}
	utils.SuccessWithPagination(c, 200, "Shops retrieved", shops, skip, limit, len(shops))
}

// GetShop handles GET /v1/shops/:id
func (h *ShopHandler) GetShop(c *gin.Context) {
	id, ok := parseID(c, "id", "shop")
	if !ok {
		return
	}
	shop, err := h.shopService.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "Failed to retrieve shop")
		return
	}
	utils.Success(c, 200, "Shop retrieved", shop)
}

// CreateShop handles POST /v1/admin/shops
func (h *ShopHandler) CreateShop(c *gin.Context) {
	var req service.ShopRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid request body")
		return
	}
	shop, err := h.shopService.Create(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err, "Failed to create shop")
		return
	}
	utils.Success(c, 201, "Shop created successfully", shop)
}

// UpdateShop handles PUT /v1/admin/shops/:id
func (h *ShopHandler) UpdateShop(c *gin.Context) {
	id, ok := parseID(c, "id", "shop")
	if !ok {
		return
	}
	var req service.ShopRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid request body")
		return
	}
	shop, err := h.shopService.Update(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, err, "Failed to update shop")
		return
	}
	utils.Success(c, 200, "Shop updated successfully", shop)
}

// DeleteShop handles DELETE /v1/admin/shops/:id
func (h *ShopHandler) DeleteShop(c *gin.Context) {
	id, ok := parseID(c, "id", "shop")
	if !ok {
		return
	}
	if err := h.shopService.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err, "Failed to delete shop")
		return
	}
	utils.Success(c, 200, "Shop deleted successfully", nil)
}
