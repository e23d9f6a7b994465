package service

import (
	"context"

	"github.com/GTDGit/phone_price_api/internal/models"
	"github.com/GTDGit/phone_price_api/internal/repository"
)

// PhoneStore is the persistence the phone services need.
type PhoneStore interface {
	List(ctx context.Context, skip, limit int) ([]models.Phone, error)
	GetByID(ctx context.Context, id int) (*models.Phone, error)
	GetByIDs(ctx context.Context, ids []int) ([]models.Phone, error)
	Create(ctx context.Context, p *models.Phone) error
	Update(ctx context.Context, p *models.Phone) (bool, error)
	Delete(ctx context.Context, id int) (bool, error)
	Search(ctx context.Context, query string, skip, limit int) ([]models.Phone, int, error)
	ListByBrand(ctx context.Context, brand string) ([]models.Phone, error)
}

// ShopStore is the persistence the shop services need.
type ShopStore interface {
	List(ctx context.Context, skip, limit int) ([]models.Shop, error)
	ListAll(ctx context.Context) ([]models.Shop, error)
	GetByID(ctx context.Context, id int) (*models.Shop, error)
	Create(ctx context.Context, s *models.Shop) error
	Update(ctx context.Context, s *models.Shop) (bool, error)
	Delete(ctx context.Context, id int) (bool, error)
	Search(ctx context.Context, query string, skip, limit int) ([]models.Shop, int, error)
}

// PriceStore is the persistence for shop prices.
type PriceStore interface {
	List(ctx context.Context, f repository.PriceFilter) ([]models.Offer, error)
	GetByID(ctx context.Context, id int) (*models.Offer, error)
	Create(ctx context.Context, o *models.Offer) error
	Update(ctx context.Context, o *models.Offer) (bool, error)
	Delete(ctx context.Context, id int) (bool, error)
}

// ReviewStore is the persistence for reviews.
type ReviewStore interface {
	List(ctx context.Context, f repository.ReviewFilter) ([]models.ReviewWithPhone, error)
	GetByID(ctx context.Context, id int) (*models.ReviewWithPhone, error)
	Create(ctx context.Context, r *models.Review) error
	Update(ctx context.Context, id, rating int, comment string) (bool, error)
	IncrementHelpful(ctx context.Context, id int) (int, bool, error)
	Delete(ctx context.Context, id int) (bool, error)
	Stats(ctx context.Context) (int, float64, []repository.RatingCount, error)
}

// AdminUserStore is the persistence for admin accounts.
type AdminUserStore interface {
	GetByEmail(ctx context.Context, email string) (*models.AdminUser, error)
	Create(ctx context.Context, user *models.AdminUser) error
	TouchLastLogin(ctx context.Context, id int) error
}

// CacheInvalidator drops cached data after a write.
type CacheInvalidator interface {
	Invalidate(ctx context.Context)
}

var (
	_ PhoneStore     = (*repository.PhoneRepository)(nil)
	_ ShopStore      = (*repository.ShopRepository)(nil)
	_ PriceStore     = (*repository.PriceRepository)(nil)
	_ ReviewStore    = (*repository.ReviewRepository)(nil)
	_ AdminUserStore = (*repository.AdminUserRepository)(nil)
)
