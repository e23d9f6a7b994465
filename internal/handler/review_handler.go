package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/GTDGit/phone_price_api/internal/models"
	"github.com/GTDGit/phone_price_api/internal/repository"
	"github.com/GTDGit/phone_price_api/internal/service"
	"github.com/GTDGit/phone_price_api/internal/utils"
)

type reviewService interface {
	List(ctx context.Context, f repository.ReviewFilter) ([]models.ReviewWithPhone, error)
	Get(ctx context.Context, id int) (*models.ReviewWithPhone, error)
	Create(ctx context.Context, req *service.CreateReviewRequest) (*models.Review, error)
	Update(ctx context.Context, id int, req *service.UpdateReviewRequest) (*models.ReviewWithPhone, error)
	MarkHelpful(ctx context.Context, id int) (int, error)
	Delete(ctx context.Context, id int) error
	Stats(ctx context.Context) (*service.ReviewStats, error)
}

// ReviewHandler handles review endpoints.
type ReviewHandler struct {
	reviewService reviewService
}

// NewReviewHandler constructs a ReviewHandler.
func NewReviewHandler(reviewService reviewService) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService}
}

// ListReviews handles GET /v1/reviews
func (h *ReviewHandler) ListReviews(c *gin.Context) {
	skip, limit, ok := parsePage(c)
	if !ok {
		return
	}
	phoneID, ok := optionalInt(c, "phone_id")
	if !ok {
		return
	}
	rating, ok := optionalInt(c, "rating")
	if !ok {
		return
	}

	reviews, err := h.reviewService.List(c.Request.Context(), repository.ReviewFilter{
		PhoneID: phoneID,
		Rating:  rating,
		Skip:    skip,
		Limit:   limit,
	})
	if err != nil {
		respondError(c, err, "Failed to retrieve reviews")
		return
	}
	utils.SuccessWithPagination(c, 200, "Reviews retrieved", reviews, skip, limit, len(reviews))
}

// GetReview handles GET /v1/reviews/:id
func (h *ReviewHandler) GetReview(c *gin.Context) {
	id, ok := parseID(c, "id", "review")
	if !ok {
		return
	}
	review, err := h.reviewService.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "Failed to retrieve review")
		return
	}
	utils.Success(c, 200, "Review retrieved", review)
}

// CreateReview handles POST /v1/reviews
func (h *ReviewHandler) CreateReview(c *gin.Context) {
	var req service.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid request body")
		return
	}
	review, err := h.reviewService.Create(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err, "Failed to create review")
		return
	}
	utils.Success(c, 201, "Review created successfully", review)
}

// UpdateReview handles PUT /v1/reviews/:id
func (h *ReviewHandler) UpdateReview(c *gin.Context) {
	id, ok := parseID(c, "id", "review")
	if !ok {
		return
	}
	var req service.UpdateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid request body")
		return
	}
	review, err := h.reviewService.Update(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, err, "Failed to update review")
		return
	}
	utils.Success(c, 200, "Review updated successfully", review)
}

// MarkHelpful handles PUT /v1/reviews/:id/helpful
func (h *ReviewHandler) MarkHelpful(c *gin.Context) {
	id, ok := parseID(c, "id", "review")
	if !ok {
		return
	}
	helpful, err := h.reviewService.MarkHelpful(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "Failed to mark review helpful")
		return
	}
	utils.Success(c, 200, "Review marked as helpful", gin.H{"helpful": helpful})
}

// DeleteReview handles DELETE /v1/admin/reviews/:id
func (h *ReviewHandler) DeleteReview(c *gin.Context) {
	id, ok := parseID(c, "id", "review")
	if !ok {
		return
	}
	if err := h.reviewService.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err, "Failed to delete review")
		return
	}
	utils.Success(c, 200, "Review deleted successfully", nil)
}

// GetStats handles GET /v1/reviews/stats/summary
func (h *ReviewHandler) GetStats(c *gin.Context) {
	stats, err := h.reviewService.Stats(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to retrieve review stats")
		return
	}
	utils.Success(c, 200, "Review stats retrieved", stats)
}
