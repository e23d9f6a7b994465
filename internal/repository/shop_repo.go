package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/GTDGit/phone_price_api/internal/models"
)

const shopColumns = `id, name, city, address, phone, whatsapp, website, verified, featured, created_at`

// ShopRepository provides CRUD and search over shops.
type ShopRepository struct {
	db *sqlx.DB
}

// NewShopRepository creates a new ShopRepository.
func NewShopRepository(db *sqlx.DB) *ShopRepository {
	return &ShopRepository{db: db}
}

// List returns shops ordered by id within the skip/limit window.
func (r *ShopRepository) List(ctx context.Context, skip, limit int) ([]models.Shop, error) {
	const q = `SELECT ` + shopColumns + ` FROM shops ORDER BY id OFFSET $1 LIMIT $2`
	out := []models.Shop{}
	if err := r.db.SelectContext(ctx, &out, q, skip, limit); err != nil {
		return nil, err
	}
	return out, nil
}

// ListAll returns every shop. The catalog joins offers against this list.
func (r *ShopRepository) ListAll(ctx context.Context) ([]models.Shop, error) {
	const q = `SELECT ` + shopColumns + ` FROM shops ORDER BY id`
	out := []models.Shop{}
	if err := r.db.SelectContext(ctx, &out, q); err != nil {
		return nil, err
	}
	return out, nil
}

// GetByID returns the shop or nil when it does not exist.
func (r *ShopRepository) GetByID(ctx context.Context, id int) (*models.Shop, error) {
	const q = `SELECT ` + shopColumns + ` FROM shops WHERE id = $1`
	var s models.Shop
	if err := r.db.GetContext(ctx, &s, q, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

// Create inserts s and fills its id and created_at.
func (r *ShopRepository) Create(ctx context.Context, s *models.Shop) error {
	const q = `
		INSERT INTO shops (name, city, address, phone, whatsapp, website, verified, featured)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at
	`
	return r.db.QueryRowxContext(ctx, q,
		s.Name, s.City, s.Address, s.ContactNumber, s.WhatsApp, s.Website, s.IsVerified, s.IsFeatured,
	).Scan(&s.ID, &s.CreatedAt)
}

// Update overwrites every editable column of s.
func (r *ShopRepository) Update(ctx context.Context, s *models.Shop) (bool, error) {
	const q = `
		UPDATE shops
		SET name = $2, city = $3, address = $4, phone = $5, whatsapp = $6,
		    website = $7, verified = $8, featured = $9
		WHERE id = $1
	`
	res, err := r.db.ExecContext(ctx, q,
		s.ID, s.Name, s.City, s.Address, s.ContactNumber, s.WhatsApp, s.Website, s.IsVerified, s.IsFeatured,
	)
	if err != nil {
		return false, err
	}
	return affected(res)
}

// Delete removes the shop and its prices.
func (r *ShopRepository) Delete(ctx context.Context, id int) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM shops WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return affected(res)
}

// Search matches q against shop name and city.
func (r *ShopRepository) Search(ctx context.Context, query string, skip, limit int) ([]models.Shop, int, error) {
	const where = ` WHERE name ILIKE $1 OR city ILIKE $1`
	pattern := likePattern(query)

	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM shops`+where, pattern); err != nil {
		return nil, 0, err
	}

	out := []models.Shop{}
	q := `SELECT ` + shopColumns + ` FROM shops` + where + ` ORDER BY id OFFSET $2 LIMIT $3`
	if err := r.db.SelectContext(ctx, &out, q, pattern, skip, limit); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}
