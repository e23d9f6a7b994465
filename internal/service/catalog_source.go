package service

import (
	"context"

	"github.com/GTDGit/phone_price_api/internal/catalog"
	"github.com/GTDGit/phone_price_api/internal/models"
	"github.com/GTDGit/phone_price_api/internal/repository"
)

// RepositorySource serves the catalog engine straight from Postgres.
type RepositorySource struct {
	phones PhoneStore
	shops  ShopStore
	prices PriceStore
}

// NewRepositorySource constructs a RepositorySource.
func NewRepositorySource(phones PhoneStore, shops ShopStore, prices PriceStore) *RepositorySource {
	return &RepositorySource{phones: phones, shops: shops, prices: prices}
}

var (
	_ catalog.Source = (*RepositorySource)(nil)
	_ PhoneLookup    = (*RepositorySource)(nil)
)

func (s *RepositorySource) ListPhones(ctx context.Context, offset, limit int) ([]models.Phone, error) {
	return s.phones.List(ctx, offset, limit)
}

func (s *RepositorySource) ListShops(ctx context.Context) ([]models.Shop, error) {
	return s.shops.ListAll(ctx)
}

func (s *RepositorySource) ListOffers(ctx context.Context, phoneID *int) ([]models.Offer, error) {
	return s.prices.List(ctx, repository.PriceFilter{PhoneID: phoneID})
}

func (s *RepositorySource) GetPhone(ctx context.Context, id int) (*models.Phone, error) {
	return s.phones.GetByID(ctx, id)
}

func (s *RepositorySource) GetPhones(ctx context.Context, ids []int) ([]models.Phone, error) {
	return s.phones.GetByIDs(ctx, ids)
}
