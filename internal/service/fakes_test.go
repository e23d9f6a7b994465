package service

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"github.com/GTDGit/phone_price_api/internal/models"
	"github.com/GTDGit/phone_price_api/internal/repository"
)

type memPhones struct {
	mu     sync.Mutex
	rows   map[int]models.Phone
	nextID int
}

func newMemPhones(phones ...models.Phone) *memPhones {
	m := &memPhones{rows: map[int]models.Phone{}, nextID: 1}
	for _, p := range phones {
		m.rows[p.ID] = p
		if p.ID >= m.nextID {
			m.nextID = p.ID + 1
		}
	}
	return m
}

func (m *memPhones) sorted() []models.Phone {
	out := make([]models.Phone, 0, len(m.rows))
	for _, p := range m.rows {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func window[T any](rows []T, skip, limit int) []T {
	if skip >= len(rows) {
		return []T{}
	}
	rows = rows[skip:]
	if limit > 0 && limit < len(rows) {
		rows = rows[:limit]
	}
	return rows
}

func (m *memPhones) List(_ context.Context, skip, limit int) ([]models.Phone, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return window(m.sorted(), skip, limit), nil
}

func (m *memPhones) GetByID(_ context.Context, id int) (*models.Phone, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.rows[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (m *memPhones) GetByIDs(_ context.Context, ids []int) ([]models.Phone, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Phone{}
	for _, p := range m.sorted() {
		for _, id := range ids {
			if p.ID == id {
				out = append(out, p)
			}
		}
	}
	return out, nil
}

func (m *memPhones) Create(_ context.Context, p *models.Phone) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p.ID = m.nextID
	m.nextID++
	m.rows[p.ID] = *p
	return nil
}

func (m *memPhones) Update(_ context.Context, p *models.Phone) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rows[p.ID]; !ok {
		return false, nil
	}
	m.rows[p.ID] = *p
	return true, nil
}

func (m *memPhones) Delete(_ context.Context, id int) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.rows[id]
	delete(m.rows, id)
	return ok, nil
}

func (m *memPhones) Search(_ context.Context, q string, skip, limit int) ([]models.Phone, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var hits []models.Phone
	for _, p := range m.sorted() {
		if strings.Contains(strings.ToLower(p.DisplayName()), strings.ToLower(q)) {
			hits = append(hits, p)
		}
	}
	return window(hits, skip, limit), len(hits), nil
}

func (m *memPhones) ListByBrand(_ context.Context, brand string) ([]models.Phone, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Phone{}
	for _, p := range m.sorted() {
		if strings.Contains(strings.ToLower(p.Brand), strings.ToLower(brand)) {
			out = append(out, p)
		}
	}
	return out, nil
}

type memShops struct {
	rows   []models.Shop
	nextID int
	err    error
}

func (m *memShops) List(_ context.Context, skip, limit int) ([]models.Shop, error) {
	return window(m.rows, skip, limit), nil
}

func (m *memShops) ListAll(context.Context) ([]models.Shop, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.rows, nil
}

func (m *memShops) GetByID(_ context.Context, id int) (*models.Shop, error) {
	for _, s := range m.rows {
		if s.ID == id {
			return &s, nil
		}
	}
	return nil, nil
}

func (m *memShops) Create(_ context.Context, s *models.Shop) error {
	m.nextID++
	s.ID = 100 + m.nextID
	m.rows = append(m.rows, *s)
	return nil
}

func (m *memShops) Update(_ context.Context, s *models.Shop) (bool, error) {
	for i := range m.rows {
		if m.rows[i].ID == s.ID {
			m.rows[i] = *s
			return true, nil
		}
	}
	return false, nil
}

func (m *memShops) Delete(_ context.Context, id int) (bool, error) {
	for i := range m.rows {
		if m.rows[i].ID == id {
			m.rows = append(m.rows[:i], m.rows[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (m *memShops) Search(_ context.Context, q string, skip, limit int) ([]models.Shop, int, error) {
	var hits []models.Shop
	for _, s := range m.rows {
		if strings.Contains(strings.ToLower(s.Name), strings.ToLower(q)) {
			hits = append(hits, s)
		}
	}
	return window(hits, skip, limit), len(hits), nil
}

type memPrices struct {
	mu      sync.Mutex
	rows    []models.Offer
	failFor map[int]bool
}

var errPriceLookup = errors.New("price lookup failed")

func (m *memPrices) List(_ context.Context, f repository.PriceFilter) ([]models.Offer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if f.PhoneID != nil && m.failFor[*f.PhoneID] {
		return nil, errPriceLookup
	}
	out := []models.Offer{}
	for _, o := range m.rows {
		switch {
		case f.PhoneID != nil && o.PhoneID != *f.PhoneID,
			f.ShopID != nil && o.ShopID != *f.ShopID,
			f.ActiveOnly && !o.IsActive,
			f.MinPrice != nil && o.Price < *f.MinPrice,
			f.MaxPrice != nil && o.Price > *f.MaxPrice:
			continue
		}
		out = append(out, o)
	}
	return window(out, f.Skip, f.Limit), nil
}

func (m *memPrices) GetByID(_ context.Context, id int) (*models.Offer, error) {
	for _, o := range m.rows {
		if o.ID == id {
			return &o, nil
		}
	}
	return nil, nil
}

func (m *memPrices) Create(_ context.Context, o *models.Offer) error {
	o.ID = len(m.rows) + 1
	m.rows = append(m.rows, *o)
	return nil
}

func (m *memPrices) Update(_ context.Context, o *models.Offer) (bool, error) {
	for i := range m.rows {
		if m.rows[i].ID == o.ID {
			m.rows[i] = *o
			return true, nil
		}
	}
	return false, nil
}

func (m *memPrices) Delete(_ context.Context, id int) (bool, error) {
	for i := range m.rows {
		if m.rows[i].ID == id {
			m.rows = append(m.rows[:i], m.rows[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

type memReviews struct {
	rows []models.ReviewWithPhone
}

func (m *memReviews) List(_ context.Context, f repository.ReviewFilter) ([]models.ReviewWithPhone, error) {
	out := []models.ReviewWithPhone{}
	for i := len(m.rows) - 1; i >= 0; i-- {
		r := m.rows[i]
		if (f.PhoneID == nil || r.PhoneID == *f.PhoneID) && (f.Rating == nil || r.Rating == *f.Rating) {
			out = append(out, r)
		}
	}
	return window(out, f.Skip, f.Limit), nil
}

func (m *memReviews) GetByID(_ context.Context, id int) (*models.ReviewWithPhone, error) {
	for _, r := range m.rows {
		if r.ID == id {
			return &r, nil
		}
	}
	return nil, nil
}

func (m *memReviews) Create(_ context.Context, r *models.Review) error {
	r.ID = len(m.rows) + 1
	r.Helpful = 0
	m.rows = append(m.rows, models.ReviewWithPhone{Review: *r})
	return nil
}

func (m *memReviews) Update(_ context.Context, id, rating int, comment string) (bool, error) {
	for i := range m.rows {
		if m.rows[i].ID == id {
			m.rows[i].Rating = rating
			m.rows[i].Comment = comment
			return true, nil
		}
	}
	return false, nil
}

func (m *memReviews) IncrementHelpful(_ context.Context, id int) (int, bool, error) {
	for i := range m.rows {
		if m.rows[i].ID == id {
			m.rows[i].Helpful++
			return m.rows[i].Helpful, true, nil
		}
	}
	return 0, false, nil
}

func (m *memReviews) Delete(_ context.Context, id int) (bool, error) {
	for i := range m.rows {
		if m.rows[i].ID == id {
			m.rows = append(m.rows[:i], m.rows[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (m *memReviews) Stats(context.Context) (int, float64, []repository.RatingCount, error) {
	counts := map[int]int{}
	sum := 0
	for _, r := range m.rows {
		counts[r.Rating]++
		sum += r.Rating
	}
	if len(m.rows) == 0 {
		return 0, 0, nil, nil
	}
	var dist []repository.RatingCount
	for rating, n := range counts {
		dist = append(dist, repository.RatingCount{Rating: rating, Count: n})
	}
	return len(m.rows), float64(sum) / float64(len(m.rows)), dist, nil
}

type memAdmins struct {
	users   map[string]*models.AdminUser
	touched []int
}

func (m *memAdmins) GetByEmail(_ context.Context, email string) (*models.AdminUser, error) {
	u, ok := m.users[email]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (m *memAdmins) Create(_ context.Context, u *models.AdminUser) error {
	u.ID = len(m.users) + 1
	m.users[u.Email] = u
	return nil
}

func (m *memAdmins) TouchLastLogin(_ context.Context, id int) error {
	m.touched = append(m.touched, id)
	return nil
}

type countingInvalidator struct{ n int }

func (c *countingInvalidator) Invalidate(context.Context) { c.n++ }

func strPtr(s string) *string { return &s }
func intPtr(v int) *int       { return &v }
func i64Ptr(v int64) *int64   { return &v }
func boolPtr(v bool) *bool    { return &v }
