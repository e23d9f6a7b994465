package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/GTDGit/phone_price_api/internal/models"
	"github.com/GTDGit/phone_price_api/internal/utils"
)

// ShopService handles shop CRUD and search. Writes invalidate the catalog's
// shop cache.
type ShopService struct {
	shops ShopStore
	cache CacheInvalidator
}

// NewShopService constructs a ShopService. cache may be nil.
func NewShopService(shops ShopStore, cache CacheInvalidator) *ShopService {
	return &ShopService{shops: shops, cache: cache}
}

// ShopRequest is the create payload; on update nil fields are kept.
type ShopRequest struct {
	Name          *string `json:"name"`
	City          *string `json:"city"`
	Address       *string `json:"address"`
	ContactNumber *string `json:"phone"`
	WhatsApp      *string `json:"whatsapp"`
	Website       *string `json:"website"`
	IsVerified    *bool   `json:"verified"`
	IsFeatured    *bool   `json:"featured"`
}

func (r *ShopRequest) apply(s *models.Shop) {
	if r.Name != nil {
		s.Name = strings.TrimSpace(*r.Name)
	}
	if r.City != nil {
		s.City = r.City
	}
	if r.Address != nil {
		s.Address = r.Address
	}
	if r.ContactNumber != nil {
		s.ContactNumber = r.ContactNumber
	}
	if r.WhatsApp != nil {
		s.WhatsApp = r.WhatsApp
	}
	if r.Website != nil {
		s.Website = r.Website
	}
	if r.IsVerified != nil {
		s.IsVerified = *r.IsVerified
	}
	if r.IsFeatured != nil {
		s.IsFeatured = *r.IsFeatured
	}
}

// List returns a skip/limit page of shops.
func (s *ShopService) List(ctx context.Context, skip, limit int) ([]models.Shop, error) {
	return s.shops.List(ctx, skip, limit)
}

// Get returns the shop or ErrShopNotFound.
func (s *ShopService) Get(ctx context.Context, id int) (*models.Shop, error) {
	shop, err := s.shops.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if shop == nil {
		return nil, utils.ErrShopNotFound
	}
	return shop, nil
}

// Create stores a new shop. Name is required.
func (s *ShopService) Create(ctx context.Context, req *ShopRequest) (*models.Shop, error) {
	if req.Name == nil || strings.TrimSpace(*req.Name) == "" {
		return nil, utils.ErrShopNameRequired
	}
	shop := &models.Shop{}
	req.apply(shop)
	if err := s.shops.Create(ctx, shop); err != nil {
		return nil, fmt.Errorf("create shop: %w", err)
	}
	s.invalidate(ctx)
	return shop, nil
}

// Update applies the non-nil fields of req to shop id.
func (s *ShopService) Update(ctx context.Context, id int, req *ShopRequest) (*models.Shop, error) {
	shop, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	req.apply(shop)
	if shop.Name == "" {
		return nil, utils.ErrShopNameRequired
	}

	ok, err := s.shops.Update(ctx, shop)
	if err != nil {
		return nil, fmt.Errorf("update shop %d: %w", id, err)
	}
	if !ok {
		return nil, utils.ErrShopNotFound
	}
	s.invalidate(ctx)
	return shop, nil
}

// Delete removes shop id.
func (s *ShopService) Delete(ctx context.Context, id int) error {
	ok, err := s.shops.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete shop %d: %w", id, err)
	}
	if !ok {
		return utils.ErrShopNotFound
	}
	s.invalidate(ctx)
	return nil
}

// Search matches shop name and city.
func (s *ShopService) Search(ctx context.Context, query string, skip, limit int) ([]models.Shop, int, error) {
	return s.shops.Search(ctx, strings.TrimSpace(query), skip, limit)
}

func (s *ShopService) invalidate(ctx context.Context) {
	if s.cache != nil {
		s.cache.Invalidate(ctx)
	}
}
