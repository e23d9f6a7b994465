package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/GTDGit/phone_price_api/internal/catalog"
	"github.com/GTDGit/phone_price_api/internal/utils"
)

const (
	defaultLimit = 100
	maxLimit     = 100
)

// parsePage reads skip/limit. It writes the 400 response itself and
// returns false when either value is out of range.
func parsePage(c *gin.Context) (skip, limit int, ok bool) {
	skip, limit = 0, defaultLimit
	if v := c.Query("skip"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			utils.Error(c, 400, "INVALID_PAGINATION", "skip must be a non-negative integer")
			return 0, 0, false
		}
		skip = n
	}
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > maxLimit {
			utils.Error(c, 400, "INVALID_PAGINATION", "limit must be between 1 and 100")
			return 0, 0, false
		}
		limit = n
	}
	return skip, limit, true
}

// parseID reads an integer path parameter.
func parseID(c *gin.Context, param, label string) (int, bool) {
	id, err := strconv.Atoi(c.Param(param))
	if err != nil {
		utils.Error(c, 400, "INVALID_ID", "Invalid "+label+" ID")
		return 0, false
	}
	return id, true
}

// optionalInt reads an integer query parameter; absent means nil.
func optionalInt(c *gin.Context, name string) (*int, bool) {
	v := c.Query(name)
	if v == "" {
		return nil, true
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid "+name)
		return nil, false
	}
	return &n, true
}

// optionalInt64 is optionalInt for prices.
func optionalInt64(c *gin.Context, name string) (*int64, bool) {
	v := c.Query(name)
	if v == "" {
		return nil, true
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid "+name)
		return nil, false
	}
	return &n, true
}

// optionalBool reads a boolean query parameter; absent means nil.
func optionalBool(c *gin.Context, name string) (*bool, bool) {
	v := c.Query(name)
	if v == "" {
		return nil, true
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid "+name)
		return nil, false
	}
	return &b, true
}

type errorMapping struct {
	target  error
	status  int
	code    string
	message string
}

var errorMappings = []errorMapping{
	{utils.ErrPhoneNotFound, http.StatusNotFound, "PHONE_NOT_FOUND", "Phone not found"},
	{utils.ErrShopNotFound, http.StatusNotFound, "SHOP_NOT_FOUND", "Shop not found"},
	{utils.ErrPriceNotFound, http.StatusNotFound, "PRICE_NOT_FOUND", "Price not found"},
	{utils.ErrReviewNotFound, http.StatusNotFound, "REVIEW_NOT_FOUND", "Review not found"},
	{utils.ErrUnknownPreset, http.StatusNotFound, "PRESET_NOT_FOUND", "Unknown preset"},
	{utils.ErrInvalidCategory, http.StatusBadRequest, "INVALID_CATEGORY", "Category must be one of budget, midrange, flagship, gaming, foldable"},
	{utils.ErrInvalidCurrency, http.StatusBadRequest, "INVALID_CURRENCY", "Currency must be a 3-letter code"},
	{utils.ErrInvalidPrice, http.StatusBadRequest, "INVALID_PRICE", "Price must not be negative"},
	{utils.ErrInvalidPriceRange, http.StatusBadRequest, "INVALID_PRICE_RANGE", "Invalid price range"},
	{utils.ErrInvalidRating, http.StatusBadRequest, "INVALID_RATING", "Rating must be between 1 and 5"},
	{utils.ErrShopNameRequired, http.StatusBadRequest, "INVALID_REQUEST", "Shop name is required"},
	{utils.ErrNotReviewAuthor, http.StatusForbidden, "NOT_REVIEW_AUTHOR", "Only the author can edit this review"},
	{catalog.ErrCompareUnavailable, http.StatusUnprocessableEntity, "COMPARE_UNAVAILABLE", "Select at least two phones to compare"},
	{catalog.ErrBatchFetch, http.StatusServiceUnavailable, "CATALOG_UNAVAILABLE", "Catalog data is temporarily unavailable"},
}

// respondError maps service errors to API responses. Unmapped errors are
// logged and reported as 500 with fallback as the message.
func respondError(c *gin.Context, err error, fallback string) {
	for _, m := range errorMappings {
		if errors.Is(err, m.target) {
			utils.Error(c, m.status, m.code, m.message)
			return
		}
	}
	log.Error().Err(err).
		Str("request_id", c.GetString("request_id")).
		Str("path", c.FullPath()).
		Msg(fallback)
	utils.Error(c, 500, "INTERNAL_ERROR", fallback)
}
