package service

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/GTDGit/phone_price_api/internal/models"
	"github.com/GTDGit/phone_price_api/internal/repository"
	"github.com/GTDGit/phone_price_api/internal/utils"
)

const (
	minRating = 1
	maxRating = 5
)

// ReviewService manages phone reviews.
type ReviewService struct {
	reviews ReviewStore
	phones  PhoneStore
}

// NewReviewService constructs a ReviewService.
func NewReviewService(reviews ReviewStore, phones PhoneStore) *ReviewService {
	return &ReviewService{reviews: reviews, phones: phones}
}

// CreateReviewRequest represents a new review.
type CreateReviewRequest struct {
	PhoneID  int    `json:"phone_id" binding:"required"`
	UserName string `json:"user_name" binding:"required"`
	Rating   int    `json:"rating" binding:"required"`
	Comment  string `json:"comment"`
}

// UpdateReviewRequest edits a review. UserName must match the author.
type UpdateReviewRequest struct {
	UserName string  `json:"user_name" binding:"required"`
	Rating   *int    `json:"rating"`
	Comment  *string `json:"comment"`
}

// List returns reviews, newest first.
func (s *ReviewService) List(ctx context.Context, f repository.ReviewFilter) ([]models.ReviewWithPhone, error) {
	return s.reviews.List(ctx, f)
}

// Get returns the review or ErrReviewNotFound.
func (s *ReviewService) Get(ctx context.Context, id int) (*models.ReviewWithPhone, error) {
	r, err := s.reviews.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, utils.ErrReviewNotFound
	}
	return r, nil
}

// Create stores a review for an existing phone.
func (s *ReviewService) Create(ctx context.Context, req *CreateReviewRequest) (*models.Review, error) {
	if err := checkRating(req.Rating); err != nil {
		return nil, err
	}
	phone, err := s.phones.GetByID(ctx, req.PhoneID)
	if err != nil {
		return nil, err
	}
	if phone == nil {
		return nil, utils.ErrPhoneNotFound
	}

	r := &models.Review{
		PhoneID:  req.PhoneID,
		UserName: strings.TrimSpace(req.UserName),
		Rating:   req.Rating,
		Comment:  req.Comment,
	}
	if err := s.reviews.Create(ctx, r); err != nil {
		return nil, fmt.Errorf("create review: %w", err)
	}
	return r, nil
}

// Update lets the author change rating and comment.
func (s *ReviewService) Update(ctx context.Context, id int, req *UpdateReviewRequest) (*models.ReviewWithPhone, error) {
	r, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.UserName != r.UserName {
		return nil, utils.ErrNotReviewAuthor
	}
	if req.Rating != nil {
		if err := checkRating(*req.Rating); err != nil {
			return nil, err
		}
		r.Rating = *req.Rating
	}
	if req.Comment != nil {
		r.Comment = *req.Comment
	}

	ok, err := s.reviews.Update(ctx, id, r.Rating, r.Comment)
	if err != nil {
		return nil, fmt.Errorf("update review %d: %w", id, err)
	}
	if !ok {
		return nil, utils.ErrReviewNotFound
	}
	return r, nil
}

// MarkHelpful increments the helpful counter and returns the new count.
func (s *ReviewService) MarkHelpful(ctx context.Context, id int) (int, error) {
	n, ok, err := s.reviews.IncrementHelpful(ctx, id)
	if err != nil {
		return 0, fmt.Errorf("mark review %d helpful: %w", id, err)
	}
	if !ok {
		return 0, utils.ErrReviewNotFound
	}
	return n, nil
}

// Delete removes review id.
func (s *ReviewService) Delete(ctx context.Context, id int) error {
	ok, err := s.reviews.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete review %d: %w", id, err)
	}
	if !ok {
		return utils.ErrReviewNotFound
	}
	return nil
}

func checkRating(r int) error {
	if r < minRating || r > maxRating {
		return fmt.Errorf("%w: must be between %d and %d", utils.ErrInvalidRating, minRating, maxRating)
	}
	return nil
}

// ReviewStats summarises every review.
type ReviewStats struct {
	TotalReviews       int         `json:"total_reviews"`
	AverageRating      float64     `json:"average_rating"`
	RatingDistribution map[int]int `json:"rating_distribution"`
}

// Stats returns the total, the mean rating rounded to two places and a
// distribution with every rating from 1 to 5 present.
func (s *ReviewService) Stats(ctx context.Context) (*ReviewStats, error) {
	total, avg, dist, err := s.reviews.Stats(ctx)
	if err != nil {
		return nil, fmt.Errorf("review stats: %w", err)
	}
	out := &ReviewStats{
		TotalReviews:       total,
		AverageRating:      math.Round(avg*100) / 100,
		RatingDistribution: make(map[int]int, maxRating),
	}
	for r := minRating; r <= maxRating; r++ {
		out.RatingDistribution[r] = 0
	}
	for _, d := range dist {
		out.RatingDistribution[d.Rating] = d.Count
	}
	return out, nil
}
