package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/GTDGit/phone_price_api/internal/models"
	"github.com/GTDGit/phone_price_api/internal/utils"
)

// PhoneService handles phone CRUD and search.
type PhoneService struct {
	phones PhoneStore
}

// NewPhoneService constructs a PhoneService.
func NewPhoneService(phones PhoneStore) *PhoneService {
	return &PhoneService{phones: phones}
}

// CreatePhoneRequest represents the request to create a phone.
type CreatePhoneRequest struct {
	Brand       string  `json:"brand" binding:"required"`
	Model       string  `json:"model" binding:"required"`
	Category    string  `json:"category" binding:"required"`
	ImageURL    *string `json:"image_url"`
	ReleaseYear *int    `json:"release_year"`
}

// UpdatePhoneRequest carries the fields to change; nil fields are kept.
type UpdatePhoneRequest struct {
	Brand       *string `json:"brand"`
	Model       *string `json:"model"`
	Category    *string `json:"category"`
	ImageURL    *string `json:"image_url"`
	ReleaseYear *int    `json:"release_year"`
}

// List returns a skip/limit page of phones.
func (s *PhoneService) List(ctx context.Context, skip, limit int) ([]models.Phone, error) {
	return s.phones.List(ctx, skip, limit)
}

// Get returns the phone or ErrPhoneNotFound.
func (s *PhoneService) Get(ctx context.Context, id int) (*models.Phone, error) {
	p, err := s.phones.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, utils.ErrPhoneNotFound
	}
	return p, nil
}

// Create validates and stores a new phone.
func (s *PhoneService) Create(ctx context.Context, req *CreatePhoneRequest) (*models.Phone, error) {
	category, err := parseCategory(req.Category)
	if err != nil {
		return nil, err
	}
	p := &models.Phone{
		Brand:       strings.TrimSpace(req.Brand),
		Model:       strings.TrimSpace(req.Model),
		Category:    category,
		ImageURL:    req.ImageURL,
		ReleaseYear: req.ReleaseYear,
	}
	if err := s.phones.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("create phone: %w", err)
	}
	return p, nil
}

// Update applies the non-nil fields of req to phone id.
func (s *PhoneService) Update(ctx context.Context, id int, req *UpdatePhoneRequest) (*models.Phone, error) {
	p, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Brand != nil {
		p.Brand = strings.TrimSpace(*req.Brand)
	}
	if req.Model != nil {
		p.Model = strings.TrimSpace(*req.Model)
	}
	if req.Category != nil {
		if p.Category, err = parseCategory(*req.Category); err != nil {
			return nil, err
		}
	}
	if req.ImageURL != nil {
		p.ImageURL = req.ImageURL
	}
	if req.ReleaseYear != nil {
		p.ReleaseYear = req.ReleaseYear
	}

	ok, err := s.phones.Update(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("update phone %d: %w", id, err)
	}
	if !ok {
		return nil, utils.ErrPhoneNotFound
	}
	return p, nil
}

// Delete removes phone id.
func (s *PhoneService) Delete(ctx context.Context, id int) error {
	ok, err := s.phones.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete phone %d: %w", id, err)
	}
	if !ok {
		return utils.ErrPhoneNotFound
	}
	return nil
}

// Search matches brand and model, returning the page and total matches.
func (s *PhoneService) Search(ctx context.Context, query string, skip, limit int) ([]models.Phone, int, error) {
	return s.phones.Search(ctx, strings.TrimSpace(query), skip, limit)
}

// ByBrand lists phones whose brand contains brand.
func (s *PhoneService) ByBrand(ctx context.Context, brand string) ([]models.Phone, error) {
	return s.phones.ListByBrand(ctx, strings.TrimSpace(brand))
}

func parseCategory(raw string) (models.Category, error) {
	c := models.Category(strings.ToLower(strings.TrimSpace(raw)))
	if !c.Valid() {
		return "", fmt.Errorf("%w: %q", utils.ErrInvalidCategory, raw)
	}
	return c, nil
}
