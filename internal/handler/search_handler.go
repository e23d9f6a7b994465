package handler

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/GTDGit/phone_price_api/internal/models"
	"github.com/GTDGit/phone_price_api/internal/utils"
)

type phoneSearcher interface {
	Search(ctx context.Context, query string, skip, limit int) ([]models.Phone, int, error)
	ByBrand(ctx context.Context, brand string) ([]models.Phone, error)
}

type shopSearcher interface {
	Search(ctx context.Context, query string, skip, limit int) ([]models.Shop, int, error)
}

// SearchHandler handles the text search endpoints.
type SearchHandler struct {
	phones phoneSearcher
	shops  shopSearcher
}

// NewSearchHandler constructs a SearchHandler.
func NewSearchHandler(phones phoneSearcher, shops shopSearcher) *SearchHandler {
	return &SearchHandler{phones: phones, shops: shops}
}

func requiredQuery(c *gin.Context, name string) (string, bool) {
	v := strings.TrimSpace(c.Query(name))
	if v == "" {
		utils.Error(c, 400, "INVALID_REQUEST", name+" is required")
		return "", false
	}
	return v, true
}

// SearchPhones handles GET /v1/search/phones?q=
func (h *SearchHandler) SearchPhones(c *gin.Context) {
	q, ok := requiredQuery(c, "q")
	if !ok {
		return
	}
	skip, limit, ok := parsePage(c)
	if !ok {
		return
	}
	phones, total, err := h.phones.Search(c.Request.Context(), q, skip, limit)
	if err != nil {
		respondError(c, err, "Failed to search phones")
		return
	}
	utils.SuccessWithPagination(c, 200, "Phones found", phones, skip, limit, total)
}

// SearchShops handles GET /v1/search/shops?q=
func (h *SearchHandler) SearchShops(c *gin.Context) {
	q, ok := requiredQuery(c, "q")
	if !ok {
		return
	}
	skip, limit, ok := parsePage(c)
	if !ok {
		return
	}
	shops, total, err := h.shops.Search(c.Request.Context(), q, skip, limit)
	if err != nil {
		respondError(c, err, "Failed to search shops")
		return
	}
	utils.SuccessWithPagination(c, 200, "Shops found", shops, skip, limit, total)
}

// PhonesByBrand handles GET /v1/search/by-brand?brand=
func (h *SearchHandler) PhonesByBrand(c *gin.Context) {
	brand, ok := requiredQuery(c, "brand")
	if !ok {
		return
	}
	phones, err := h.phones.ByBrand(c.Request.Context(), brand)
	if err != nil {
		respondError(c, err, "Failed to search phones")
		return
	}
	utils.Success(c, 200, "Phones found", phones)
}
