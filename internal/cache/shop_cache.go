package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/GTDGit/phone_price_api/internal/catalog"
	"github.com/GTDGit/phone_price_api/internal/models"
)

const shopsKey = "catalog:shops"

// Store is the key/value subset of RedisClient the shop cache needs.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

// ShopCache decorates a catalog.Source with a read-through cache of the
// shop list. Phones and offers pass straight through. Cache failures are
// logged and fall back to the wrapped source, so a nil or broken store
// only costs latency.
type ShopCache struct {
	source catalog.Source
	store  Store
	ttl    time.Duration
}

// NewShopCache wraps source. A nil store disables caching.
func NewShopCache(source catalog.Source, store Store, ttl time.Duration) *ShopCache {
	return &ShopCache{source: source, store: store, ttl: ttl}
}

// ListPhones delegates to the wrapped source.
func (c *ShopCache) ListPhones(ctx context.Context, offset, limit int) ([]models.Phone, error) {
	return c.source.ListPhones(ctx, offset, limit)
}

// ListOffers delegates to the wrapped source.
func (c *ShopCache) ListOffers(ctx context.Context, phoneID *int) ([]models.Offer, error) {
	return c.source.ListOffers(ctx, phoneID)
}

// ListShops serves the cached shop list, loading it on a miss.
func (c *ShopCache) ListShops(ctx context.Context) ([]models.Shop, error) {
	if c.store == nil {
		return c.source.ListShops(ctx)
	}

	raw, err := c.store.Get(ctx, shopsKey)
	switch {
	case err == nil:
		var shops []models.Shop
		if err := json.Unmarshal([]byte(raw), &shops); err == nil {
			return shops, nil
		}
		log.Warn().Str("key", shopsKey).Msg("Discarding undecodable shop cache entry")
	case !errors.Is(err, ErrCacheMiss):
		log.Warn().Err(err).Str("key", shopsKey).Msg("Shop cache read failed")
	}

	return c.Warm(ctx)
}

// Warm loads shops from the wrapped source and stores them.
func (c *ShopCache) Warm(ctx context.Context) ([]models.Shop, error) {
	shops, err := c.source.ListShops(ctx)
	if err != nil {
		return nil, err
	}
	if c.store == nil {
		return shops, nil
	}

	payload, err := json.Marshal(shops)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal shops: %w", err)
	}
	if err := c.store.Set(ctx, shopsKey, string(payload), c.ttl); err != nil {
		log.Warn().Err(err).Str("key", shopsKey).Msg("Shop cache write failed")
	}
	return shops, nil
}

// Invalidate drops the cached shop list. Shop writes call it so the next
// read sees their change.
func (c *ShopCache) Invalidate(ctx context.Context) {
	if c.store == nil {
		return
	}
	if err := c.store.Delete(ctx, shopsKey); err != nil {
		log.Warn().Err(err).Str("key", shopsKey).Msg("Shop cache invalidation failed")
	}
}
