package worker

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/stockdeck/stockdeck/internal/store"
)

// RefreshWorker periodically re-fetches the product collection so long-lived
// dashboards do not sit on stale data. It is opt-in: the store is otherwise
// strictly event-driven.
type RefreshWorker struct {
	products *store.ProductStore
	interval time.Duration
}

// NewRefreshWorker constructs a RefreshWorker.
func NewRefreshWorker(products *store.ProductStore, interval time.Duration) *RefreshWorker {
	return &RefreshWorker{
		products: products,
		interval: interval,
	}
}

// Start begins the periodic refresh loop and listens for context cancellation.
func (w *RefreshWorker) Start(ctx context.Context) {
	log.Info().Dur("interval", w.interval).Msg("Starting refresh worker")

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.run(ctx)
		case <-ctx.Done():
			log.Info().Msg("Refresh worker stopped")
			return
		}
	}
}

func (w *RefreshWorker) run(ctx context.Context) {
	start := time.Now()
	if err := w.products.Fetch(ctx); err != nil {
		log.Error().Err(err).Msg("Failed to refresh products")
		return
	}
	log.Info().Dur("duration", time.Since(start)).Msg("Product refresh completed")
}
