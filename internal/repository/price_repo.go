package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/GTDGit/phone_price_api/internal/models"
)

const priceColumns = `id, phone_id, shop_id, price, currency, is_active, updated_at`

// PriceFilter narrows ListPrices. Nil fields are not filtered on.
type PriceFilter struct {
	PhoneID    *int
	ShopID     *int
	ActiveOnly bool
	MinPrice   *int64
	MaxPrice   *int64
	Skip       int
	Limit      int // 0 means no limit
}

// PriceRepository stores shop prices (offers).
type PriceRepository struct {
	db *sqlx.DB
}

// NewPriceRepository creates a new PriceRepository.
func NewPriceRepository(db *sqlx.DB) *PriceRepository {
	return &PriceRepository{db: db}
}

// List returns prices matching f ordered by id.
func (r *PriceRepository) List(ctx context.Context, f PriceFilter) ([]models.Offer, error) {
	var (
		conds []string
		args  []interface{}
	)
	add := func(cond string, v interface{}) {
		args = append(args, v)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}
	if f.PhoneID != nil {
		add("phone_id = $%d", *f.PhoneID)
	}
	if f.ShopID != nil {
		add("shop_id = $%d", *f.ShopID)
	}
	if f.MinPrice != nil {
		add("price >= $%d", *f.MinPrice)
	}
	if f.MaxPrice != nil {
		add("price <= $%d", *f.MaxPrice)
	}
	if f.ActiveOnly {
		conds = append(conds, "is_active = TRUE")
	}

	var b strings.Builder
	b.WriteString(`SELECT ` + priceColumns + ` FROM shop_prices`)
	if len(conds) > 0 {
		b.WriteString(" WHERE " + strings.Join(conds, " AND "))
	}
	b.WriteString(" ORDER BY id")
	if f.Skip > 0 {
		args = append(args, f.Skip)
		fmt.Fprintf(&b, " OFFSET $%d", len(args))
	}
	if f.Limit > 0 {
		args = append(args, f.Limit)
		fmt.Fprintf(&b, " LIMIT $%d", len(args))
	}

	out := []models.Offer{}
	if err := r.db.SelectContext(ctx, &out, b.String(), args...); err != nil {
		return nil, err
	}
	return out, nil
}

// GetByID returns the price or nil when it does not exist.
func (r *PriceRepository) GetByID(ctx context.Context, id int) (*models.Offer, error) {
	const q = `SELECT ` + priceColumns + ` FROM shop_prices WHERE id = $1`
	var o models.Offer
	if err := r.db.GetContext(ctx, &o, q, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &o, nil
}

// Create inserts o and fills its id and updated_at.
func (r *PriceRepository) Create(ctx context.Context, o *models.Offer) error {
	const q = `
		INSERT INTO shop_prices (phone_id, shop_id, price, currency, is_active, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		RETURNING id, updated_at
	`
	return r.db.QueryRowxContext(ctx, q, o.PhoneID, o.ShopID, o.Price, o.Currency, o.IsActive).
		Scan(&o.ID, &o.UpdatedAt)
}

// Update overwrites the price row and bumps updated_at.
func (r *PriceRepository) Update(ctx context.Context, o *models.Offer) (bool, error) {
	const q = `
		UPDATE shop_prices
		SET phone_id = $2, shop_id = $3, price = $4, currency = $5, is_active = $6, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`
	err := r.db.QueryRowxContext(ctx, q, o.ID, o.PhoneID, o.ShopID, o.Price, o.Currency, o.IsActive).
		Scan(&o.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Delete removes the price row.
func (r *PriceRepository) Delete(ctx context.Context, id int) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM shop_prices WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return affected(res)
}
