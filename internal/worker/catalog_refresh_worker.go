package worker

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/GTDGit/phone_price_api/internal/catalog"
	"github.com/GTDGit/phone_price_api/internal/models"
)

// ShopWarmer reloads the cached shop list.
type ShopWarmer interface {
	Warm(ctx context.Context) ([]models.Shop, error)
}

// TrendingRefresher rebuilds and publishes the trending snapshot.
type TrendingRefresher interface {
	RefreshTrending(ctx context.Context) (*catalog.Snapshot, error)
}

// CatalogRefreshWorker periodically re-warms the shop cache and rebuilds
// the trending ranking.
type CatalogRefreshWorker struct {
	shops    ShopWarmer
	catalog  TrendingRefresher
	interval time.Duration
}

// NewCatalogRefreshWorker constructs a CatalogRefreshWorker. shops may be
// nil when the cache is disabled.
func NewCatalogRefreshWorker(shops ShopWarmer, trending TrendingRefresher, interval time.Duration) *CatalogRefreshWorker {
	return &CatalogRefreshWorker{
		shops:    shops,
		catalog:  trending,
		interval: interval,
	}
}

// Start begins the periodic refresh loop and listens for context cancellation.
func (w *CatalogRefreshWorker) Start(ctx context.Context) {
	log.Info().Dur("interval", w.interval).Msg("Starting catalog refresh worker")

	// Run immediately on start
	w.run(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.run(ctx)
		case <-ctx.Done():
			log.Info().Msg("Catalog refresh worker stopped")
			return
		}
	}
}

func (w *CatalogRefreshWorker) run(ctx context.Context) {
	start := time.Now()

	if w.shops != nil {
		shops, err := w.shops.Warm(ctx)
		if err != nil {
			log.Error().Err(err).Msg("Failed to warm shop cache")
		} else {
			log.Debug().Int("shops", len(shops)).Msg("Shop cache warmed")
		}
	}

	snap, err := w.catalog.RefreshTrending(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Failed to refresh trending phones")
		return
	}

	log.Info().
		Uint64("generation", snap.Generation).
		Int("phones", len(snap.Phones)).
		Dur("duration", time.Since(start)).
		Msg("Trending phones refreshed")
}
