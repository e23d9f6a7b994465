package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"

	"github.com/GTDGit/phone_price_api/internal/catalog"
	"github.com/GTDGit/phone_price_api/internal/models"
)

type memBackend struct {
	phones []models.Phone
	shops  []models.Shop
	offers []models.Offer
}

func (b *memBackend) ListPhones(_ context.Context, offset, limit int) ([]models.Phone, error) {
	if offset >= len(b.phones) {
		return nil, nil
	}
	return b.phones[offset:min(offset+limit, len(b.phones))], nil
}

func (b *memBackend) ListShops(context.Context) ([]models.Shop, error) {
	return b.shops, nil
}

func (b *memBackend) ListOffers(_ context.Context, phoneID *int) ([]models.Offer, error) {
	var out []models.Offer
	for _, o := range b.offers {
		if phoneID == nil || o.PhoneID == *phoneID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (b *memBackend) GetPhone(_ context.Context, id int) (*models.Phone, error) {
	for _, p := range b.phones {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, nil
}

func (b *memBackend) GetPhones(ctx context.Context, ids []int) ([]models.Phone, error) {
	var out []models.Phone
	for _, id := range ids {
		if p, _ := b.GetPhone(ctx, id); p != nil {
			out = append(out, *p)
		}
	}
	return out, nil
}

func year(y int) *int { return &y }

func testBackend() *memBackend {
	city := "Colombo"
	return &memBackend{
		phones: []models.Phone{
			{ID: 1, Brand: "Samsung", Model: "Galaxy S26", Category: models.CategoryFlagship, ReleaseYear: year(2026)},
			{ID: 2, Brand: "Nokia", Model: "C12", Category: models.CategoryBudget, ReleaseYear: year(2020)},
			{ID: 3, Brand: "Google", Model: "Pixel 9a", Category: models.CategoryMidrange, ReleaseYear: year(2025)},
		},
		shops: []models.Shop{
			{ID: 10, Name: "Celltronics", City: &city, IsVerified: true},
			{ID: 11, Name: "Mobile Hub"},
		},
		offers: []models.Offer{
			{ID: 1, PhoneID: 1, ShopID: 10, Price: 349000, Currency: "LKR", IsActive: true},
			{ID: 2, PhoneID: 1, ShopID: 11, Price: 339500, Currency: "LKR", IsActive: false},
			{ID: 3, PhoneID: 2, ShopID: 10, Price: 24990, Currency: "LKR", IsActive: true},
		},
	}
}

var testNow = func() time.Time { return time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC) }

func runCmd(t *testing.T, backend Backend, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd(func(string) Backend { return backend }, testNow)
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestPicks_TableDefault(t *testing.T) {
	out, err := runCmd(t, testBackend(), "picks")
	require.NoError(t, err)

	assert.Contains(t, out, "Samsung Galaxy S26")
	assert.Contains(t, out, "LKR 339,500")
	assert.Contains(t, out, "n/a")
	assert.Less(t, strings.Index(out, "Galaxy S26"), strings.Index(out, "Pixel 9a"))
	assert.Less(t, strings.Index(out, "Pixel 9a"), strings.Index(out, "Nokia C12"))
}

func TestPicks_FiltersAndPolicies(t *testing.T) {
	out, err := runCmd(t, testBackend(), "picks", "--sort", "price-low", "--active-only", "-o", "yaml")
	require.NoError(t, err)

	var aggs []struct {
		Phone    struct{ ID int } `yaml:"phone"`
		Summary  struct {
			MinPrice *int64 `yaml:"min_price"`
		} `yaml:"summary"`
	}
	require.NoError(t, yaml.Unmarshal([]byte(out), &aggs))
	require.Len(t, aggs, 3)
	assert.Equal(t, 2, aggs[0].Phone.ID)
	require.NotNil(t, aggs[1].Summary.MinPrice)
	assert.Equal(t, int64(349000), *aggs[1].Summary.MinPrice, "inactive offer ignored")
	assert.Nil(t, aggs[2].Summary.MinPrice)

	out, err = runCmd(t, testBackend(), "picks", "--category", "budget", "--max-price", "30000")
	require.NoError(t, err)
	assert.Contains(t, out, "Nokia C12")
	assert.NotContains(t, out, "Galaxy S26")
}

func TestPicks_Preset(t *testing.T) {
	out, err := runCmd(t, testBackend(), "picks", "best-value", "-o", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"model": "Pixel 9a"`)
	assert.NotContains(t, out, "Galaxy S26")

	_, err = runCmd(t, testBackend(), "picks", "flagship-killers")
	assert.Error(t, err)
}

func TestPicks_RejectsBadInput(t *testing.T) {
	_, err := runCmd(t, testBackend(), "picks", "--category", "tablet")
	assert.Error(t, err)

	_, err = runCmd(t, testBackend(), "picks", "-o", "xml")
	assert.ErrorContains(t, err, "unknown output format")
}

func TestCompare(t *testing.T) {
	out, err := runCmd(t, testBackend(), "compare", "1", "3")
	require.NoError(t, err)

	assert.Contains(t, out, "Samsung Galaxy S26")
	assert.Contains(t, out, "★ best")
	assert.Contains(t, out, "Celltronics, Colombo ✓")
	assert.Contains(t, out, "no prices listed")
	best := strings.Index(out, "★ best")
	assert.Less(t, strings.Index(out, "339,500"), best)

	_, err = runCmd(t, testBackend(), "compare", "1", "x")
	assert.ErrorContains(t, err, "invalid phone id")

	_, err = runCmd(t, testBackend(), "compare", "1", "1")
	assert.ErrorIs(t, err, catalog.ErrCompareUnavailable)

	_, err = runCmd(t, testBackend(), "compare", "1")
	assert.Error(t, err)
}

func TestHashPassword(t *testing.T) {
	cmd := newRootCmd(openAPI, time.Now)
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetIn(strings.NewReader("s3cret\n"))
	cmd.SetArgs([]string{"hash-password"})
	require.NoError(t, cmd.Execute())

	hash := strings.TrimSpace(buf.String())
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("s3cret")))

	cmd = newRootCmd(openAPI, time.Now)
	cmd.SetIn(strings.NewReader("\n"))
	cmd.SetArgs([]string{"hash-password"})
	assert.Error(t, cmd.Execute())
}

func TestGenSecret(t *testing.T) {
	cmd := newRootCmd(openAPI, time.Now)
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"gen-secret", "--bytes", "16"})
	require.NoError(t, cmd.Execute())
	assert.Len(t, strings.TrimSpace(buf.String()), 32)
}
