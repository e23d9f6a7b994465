package handler

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/GTDGit/phone_price_api/internal/catalog"
	"github.com/GTDGit/phone_price_api/internal/service"
	"github.com/GTDGit/phone_price_api/internal/utils"
)

type catalogService interface {
	Browse(ctx context.Context, q service.BrowseQuery) ([]catalog.PhoneAggregate, error)
	Pick(ctx context.Context, name string) (*service.PickResult, error)
	Details(ctx context.Context, id int) (*service.PhoneDetails, error)
	Compare(ctx context.Context, ids []int) ([]catalog.Comparison, error)
	Trending(ctx context.Context) (*catalog.Snapshot, error)
}

// CatalogHandler serves the aggregated catalog views.
type CatalogHandler struct {
	catalogService catalogService
}

// NewCatalogHandler constructs a CatalogHandler.
func NewCatalogHandler(catalogService catalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

// Browse handles GET /v1/catalog
func (h *CatalogHandler) Browse(c *gin.Context) {
	maxPrice, ok := optionalInt64(c, "max_price")
	if !ok {
		return
	}
	activeOnly, ok := optionalBool(c, "active_only")
	if !ok {
		return
	}

	phones, err := h.catalogService.Browse(c.Request.Context(), service.BrowseQuery{
		Category:   c.Query("category"),
		MaxPrice:   maxPrice,
		Sort:       c.Query("sort"),
		ActiveOnly: activeOnly,
	})
	if err != nil {
		respondError(c, err, "Failed to build catalog")
		return
	}
	utils.Success(c, 200, "Catalog retrieved", phones)
}

// ListPresets handles GET /v1/catalog/picks
func (h *CatalogHandler) ListPresets(c *gin.Context) {
	utils.Success(c, 200, "Presets retrieved", catalog.Presets())
}

// GetPicks handles GET /v1/catalog/picks/:preset
func (h *CatalogHandler) GetPicks(c *gin.Context) {
	res, err := h.catalogService.Pick(c.Request.Context(), c.Param("preset"))
	if err != nil {
		respondError(c, err, "Failed to build picks")
		return
	}
	utils.Success(c, 200, "Picks retrieved", res)
}

// GetDetails handles GET /v1/phones/:id/details
func (h *CatalogHandler) GetDetails(c *gin.Context) {
	id, ok := parseID(c, "id", "phone")
	if !ok {
		return
	}
	details, err := h.catalogService.Details(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "Failed to retrieve phone details")
		return
	}
	utils.Success(c, 200, "Phone details retrieved", details)
}

// Compare handles POST /v1/compare
func (h *CatalogHandler) Compare(c *gin.Context) {
	var req struct {
		PhoneIDs []int `json:"phone_ids" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid request body")
		return
	}
	columns, err := h.catalogService.Compare(c.Request.Context(), req.PhoneIDs)
	if err != nil {
		respondError(c, err, "Failed to compare phones")
		return
	}
	utils.Success(c, 200, "Comparison retrieved", columns)
}

// Trending handles GET /v1/catalog/trending
func (h *CatalogHandler) Trending(c *gin.Context) {
	snap, err := h.catalogService.Trending(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to retrieve trending phones")
		return
	}
	utils.Success(c, 200, "Trending phones retrieved", gin.H{
		"generation": snap.Generation,
		"builtAt":    snap.BuiltAt.UTC().Format(time.RFC3339),
		"phones":     snap.Phones,
	})
}
