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

const reviewColumns = `r.id, r.phone_id, r.user_name, r.rating, r.comment, r.helpful, r.created_at`

// ReviewFilter narrows List. Nil fields are not filtered on.
type ReviewFilter struct {
	PhoneID *int
	Rating  *int
	Skip    int
	Limit   int
}

// ReviewRepository stores phone reviews.
type ReviewRepository struct {
	db *sqlx.DB
}

// NewReviewRepository creates a new ReviewRepository.
func NewReviewRepository(db *sqlx.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

// List returns reviews, newest first, with the reviewed phone's name.
func (r *ReviewRepository) List(ctx context.Context, f ReviewFilter) ([]models.ReviewWithPhone, error) {
	var (
		conds []string
		args  []interface{}
	)
	if f.PhoneID != nil {
		args = append(args, *f.PhoneID)
		conds = append(conds, fmt.Sprintf("r.phone_id = $%d", len(args)))
	}
	if f.Rating != nil {
		args = append(args, *f.Rating)
		conds = append(conds, fmt.Sprintf("r.rating = $%d", len(args)))
	}

	var b strings.Builder
	b.WriteString(`SELECT ` + reviewColumns + `, p.brand || ' ' || p.model AS phone_name
		FROM reviews r JOIN phones p ON p.id = r.phone_id`)
	if len(conds) > 0 {
		b.WriteString(" WHERE " + strings.Join(conds, " AND "))
	}
	args = append(args, f.Skip, f.Limit)
	fmt.Fprintf(&b, " ORDER BY r.created_at DESC, r.id DESC OFFSET $%d LIMIT $%d", len(args)-1, len(args))

	out := []models.ReviewWithPhone{}
	if err := r.db.SelectContext(ctx, &out, b.String(), args...); err != nil {
		return nil, err
	}
	return out, nil
}

// GetByID returns the review or nil when it does not exist.
func (r *ReviewRepository) GetByID(ctx context.Context, id int) (*models.ReviewWithPhone, error) {
	const q = `SELECT ` + reviewColumns + `, p.brand || ' ' || p.model AS phone_name
		FROM reviews r JOIN phones p ON p.id = r.phone_id WHERE r.id = $1`
	var rv models.ReviewWithPhone
	if err := r.db.GetContext(ctx, &rv, q, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &rv, nil
}

// Create inserts rv with a zero helpful count.
func (r *ReviewRepository) Create(ctx context.Context, rv *models.Review) error {
	const q = `
		INSERT INTO reviews (phone_id, user_name, rating, comment, helpful)
		VALUES ($1, $2, $3, $4, 0)
		RETURNING id, helpful, created_at
	`
	return r.db.QueryRowxContext(ctx, q, rv.PhoneID, rv.UserName, rv.Rating, rv.Comment).
		Scan(&rv.ID, &rv.Helpful, &rv.CreatedAt)
}

// Update rewrites the rating and comment.
func (r *ReviewRepository) Update(ctx context.Context, id, rating int, comment string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `UPDATE reviews SET rating = $2, comment = $3 WHERE id = $1`, id, rating, comment)
	if err != nil {
		return false, err
	}
	return affected(res)
}

// IncrementHelpful bumps the helpful counter and returns the new value.
func (r *ReviewRepository) IncrementHelpful(ctx context.Context, id int) (int, bool, error) {
	var n int
	err := r.db.GetContext(ctx, &n, `UPDATE reviews SET helpful = helpful + 1 WHERE id = $1 RETURNING helpful`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return n, true, nil
}

// Delete removes the review.
func (r *ReviewRepository) Delete(ctx context.Context, id int) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM reviews WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return affected(res)
}

// RatingCount is one bucket of the rating distribution.
type RatingCount struct {
	Rating int `db:"rating"`
	Count  int `db:"count"`
}

// Stats returns the review count, the mean rating (0 without reviews) and
// the per-rating counts.
func (r *ReviewRepository) Stats(ctx context.Context) (int, float64, []RatingCount, error) {
	var agg struct {
		Total int     `db:"total"`
		Avg   float64 `db:"avg"`
	}
	if err := r.db.GetContext(ctx, &agg, `SELECT COUNT(*) AS total, COALESCE(AVG(rating), 0)::float8 AS avg FROM reviews`); err != nil {
		return 0, 0, nil, err
	}
	dist := []RatingCount{}
	if err := r.db.SelectContext(ctx, &dist, `SELECT rating, COUNT(*) AS count FROM reviews GROUP BY rating ORDER BY rating`); err != nil {
		return 0, 0, nil, err
	}
	return agg.Total, agg.Avg, dist, nil
}
