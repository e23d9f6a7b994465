package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/GTDGit/phone_price_api/internal/models"
)

const phoneColumns = `id, brand, model, category, image_url, release_year, created_at`

// PhoneRepository provides CRUD and search over phones.
type PhoneRepository struct {
	db *sqlx.DB
}

// NewPhoneRepository creates a new PhoneRepository.
func NewPhoneRepository(db *sqlx.DB) *PhoneRepository {
	return &PhoneRepository{db: db}
}

// List returns phones ordered by id within the skip/limit window.
func (r *PhoneRepository) List(ctx context.Context, skip, limit int) ([]models.Phone, error) {
	const q = `SELECT ` + phoneColumns + ` FROM phones ORDER BY id OFFSET $1 LIMIT $2`
	out := []models.Phone{}
	if err := r.db.SelectContext(ctx, &out, q, skip, limit); err != nil {
		return nil, err
	}
	return out, nil
}

// GetByID returns the phone or nil when it does not exist.
func (r *PhoneRepository) GetByID(ctx context.Context, id int) (*models.Phone, error) {
	const q = `SELECT ` + phoneColumns + ` FROM phones WHERE id = $1`
	var p models.Phone
	if err := r.db.GetContext(ctx, &p, q, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

// GetByIDs returns the phones among ids that exist, ordered by id.
func (r *PhoneRepository) GetByIDs(ctx context.Context, ids []int) ([]models.Phone, error) {
	out := []models.Phone{}
	if len(ids) == 0 {
		return out, nil
	}
	q, args, err := sqlx.In(`SELECT `+phoneColumns+` FROM phones WHERE id IN (?) ORDER BY id`, ids)
	if err != nil {
		return nil, err
	}
	if err := r.db.SelectContext(ctx, &out, r.db.Rebind(q), args...); err != nil {
		return nil, err
	}
	return out, nil
}

// Create inserts p and fills its id and created_at.
func (r *PhoneRepository) Create(ctx context.Context, p *models.Phone) error {
	const q = `
		INSERT INTO phones (brand, model, category, image_url, release_year)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`
	return r.db.QueryRowxContext(ctx, q, p.Brand, p.Model, p.Category, p.ImageURL, p.ReleaseYear).
		Scan(&p.ID, &p.CreatedAt)
}

// Update overwrites every editable column of p. It reports false when the
// phone does not exist.
func (r *PhoneRepository) Update(ctx context.Context, p *models.Phone) (bool, error) {
	const q = `
		UPDATE phones
		SET brand = $2, model = $3, category = $4, image_url = $5, release_year = $6
		WHERE id = $1
	`
	res, err := r.db.ExecContext(ctx, q, p.ID, p.Brand, p.Model, p.Category, p.ImageURL, p.ReleaseYear)
	if err != nil {
		return false, err
	}
	return affected(res)
}

// Delete removes the phone and, through cascades, its prices and reviews.
func (r *PhoneRepository) Delete(ctx context.Context, id int) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM phones WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return affected(res)
}

// Search matches q against brand, model and "brand model". It returns the
// page and the total match count.
func (r *PhoneRepository) Search(ctx context.Context, query string, skip, limit int) ([]models.Phone, int, error) {
	const where = ` WHERE brand ILIKE $1 OR model ILIKE $1 OR (brand || ' ' || model) ILIKE $1`
	pattern := likePattern(query)

	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM phones`+where, pattern); err != nil {
		return nil, 0, err
	}

	out := []models.Phone{}
	q := `SELECT ` + phoneColumns + ` FROM phones` + where + ` ORDER BY id OFFSET $2 LIMIT $3`
	if err := r.db.SelectContext(ctx, &out, q, pattern, skip, limit); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

// ListByBrand returns phones whose brand contains brand, case-insensitively.
func (r *PhoneRepository) ListByBrand(ctx context.Context, brand string) ([]models.Phone, error) {
	const q = `SELECT ` + phoneColumns + ` FROM phones WHERE brand ILIKE $1 ORDER BY id`
	out := []models.Phone{}
	if err := r.db.SelectContext(ctx, &out, q, likePattern(brand)); err != nil {
		return nil, err
	}
	return out, nil
}
