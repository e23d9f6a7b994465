package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/GTDGit/phone_price_api/internal/models"
	"github.com/GTDGit/phone_price_api/internal/repository"
	"github.com/GTDGit/phone_price_api/internal/utils"
)

// PriceService manages shop prices and checks the phone and shop they
// reference exist.
type PriceService struct {
	prices PriceStore
	phones PhoneStore
	shops  ShopStore
}

// NewPriceService constructs a PriceService.
func NewPriceService(prices PriceStore, phones PhoneStore, shops ShopStore) *PriceService {
	return &PriceService{prices: prices, phones: phones, shops: shops}
}

// CreatePriceRequest represents the request to list a price.
type CreatePriceRequest struct {
	PhoneID  int    `json:"phone_id" binding:"required"`
	ShopID   int    `json:"shop_id" binding:"required"`
	Price    *int64 `json:"price" binding:"required"`
	Currency string `json:"currency"`
	IsActive *bool  `json:"is_active"`
}

// UpdatePriceRequest carries the fields to change; nil fields are kept.
type UpdatePriceRequest struct {
	PhoneID  *int    `json:"phone_id"`
	ShopID   *int    `json:"shop_id"`
	Price    *int64  `json:"price"`
	Currency *string `json:"currency"`
	IsActive *bool   `json:"is_active"`
}

// List returns prices, optionally for one phone and/or shop.
func (s *PriceService) List(ctx context.Context, phoneID, shopID *int, skip, limit int) ([]models.Offer, error) {
	return s.prices.List(ctx, repository.PriceFilter{PhoneID: phoneID, ShopID: shopID, Skip: skip, Limit: limit})
}

// ByRange returns active prices within [min, max].
func (s *PriceService) ByRange(ctx context.Context, minPrice, maxPrice int64, skip, limit int) ([]models.Offer, error) {
	if minPrice < 0 || minPrice > maxPrice {
		return nil, utils.ErrInvalidPriceRange
	}
	return s.prices.List(ctx, repository.PriceFilter{
		ActiveOnly: true,
		MinPrice:   &minPrice,
		MaxPrice:   &maxPrice,
		Skip:       skip,
		Limit:      limit,
	})
}

// Get returns the price or ErrPriceNotFound.
func (s *PriceService) Get(ctx context.Context, id int) (*models.Offer, error) {
	o, err := s.prices.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, utils.ErrPriceNotFound
	}
	return o, nil
}

// Create validates and stores a price. Currency defaults to LKR and the
// price is active unless stated otherwise.
func (s *PriceService) Create(ctx context.Context, req *CreatePriceRequest) (*models.Offer, error) {
	o := &models.Offer{
		PhoneID:  req.PhoneID,
		ShopID:   req.ShopID,
		Currency: req.Currency,
		IsActive: true,
	}
	if req.Price != nil {
		o.Price = *req.Price
	}
	if req.IsActive != nil {
		o.IsActive = *req.IsActive
	}
	if err := s.validate(ctx, o, true); err != nil {
		return nil, err
	}
	if err := s.prices.Create(ctx, o); err != nil {
		return nil, fmt.Errorf("create price: %w", err)
	}
	return o, nil
}

// Update applies the non-nil fields of req to price id.
func (s *PriceService) Update(ctx context.Context, id int, req *UpdatePriceRequest) (*models.Offer, error) {
	o, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	refsChanged := false
	if req.PhoneID != nil && *req.PhoneID != o.PhoneID {
		o.PhoneID = *req.PhoneID
		refsChanged = true
	}
	if req.ShopID != nil && *req.ShopID != o.ShopID {
		o.ShopID = *req.ShopID
		refsChanged = true
	}
	if req.Price != nil {
		o.Price = *req.Price
	}
	if req.Currency != nil {
		o.Currency = *req.Currency
	}
	if req.IsActive != nil {
		o.IsActive = *req.IsActive
	}
	if err := s.validate(ctx, o, refsChanged); err != nil {
		return nil, err
	}

	ok, err := s.prices.Update(ctx, o)
	if err != nil {
		return nil, fmt.Errorf("update price %d: %w", id, err)
	}
	if !ok {
		return nil, utils.ErrPriceNotFound
	}
	return o, nil
}

// Delete removes price id.
func (s *PriceService) Delete(ctx context.Context, id int) error {
	ok, err := s.prices.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete price %d: %w", id, err)
	}
	if !ok {
		return utils.ErrPriceNotFound
	}
	return nil
}

// validate normalises the currency and checks the price. With checkRefs it
// also requires the phone and shop to exist.
func (s *PriceService) validate(ctx context.Context, o *models.Offer, checkRefs bool) error {
	o.Currency = strings.ToUpper(strings.TrimSpace(o.Currency))
	if o.Currency == "" {
		o.Currency = models.DefaultCurrency
	}
	if len(o.Currency) != 3 {
		return fmt.Errorf("%w: %q", utils.ErrInvalidCurrency, o.Currency)
	}
	if o.Price < 0 {
		return utils.ErrInvalidPrice
	}
	if !checkRefs {
		return nil
	}

	phone, err := s.phones.GetByID(ctx, o.PhoneID)
	if err != nil {
		return err
	}
	if phone == nil {
		return utils.ErrPhoneNotFound
	}
	shop, err := s.shops.GetByID(ctx, o.ShopID)
	if err != nil {
		return err
	}
	if shop == nil {
		return utils.ErrShopNotFound
	}
	return nil
}
