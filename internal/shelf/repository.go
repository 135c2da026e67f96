package shelf

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/stockdeck/stockdeck/internal/api"
	"github.com/stockdeck/stockdeck/internal/config"
	"github.com/stockdeck/stockdeck/internal/localstore"
	"github.com/stockdeck/stockdeck/internal/models"
	"github.com/stockdeck/stockdeck/internal/session"
)

// Repository is the shelf persistence boundary. Both implementations return
// the same envelope shape, so callers are path-agnostic: the remote one talks
// to the backend, the local one simulates the contract in the local store.
type Repository interface {
	Shelves(ctx context.Context) *api.Envelope
	CreateShelf(ctx context.Context, in models.ShelfInput) *api.Envelope
	UpdateShelf(ctx context.Context, id string, in models.ShelfInput) *api.Envelope
	DeleteShelf(ctx context.Context, id string) *api.Envelope

	ShelfProducts(ctx context.Context, shelfID string) *api.Envelope
	AddProduct(ctx context.Context, shelfID string, in models.ShelfProductInput) *api.Envelope
	UpdateProductQuantity(ctx context.Context, shelfID, productID string, quantity int) *api.Envelope
	RemoveProduct(ctx context.Context, shelfID, productID string) *api.Envelope
}

// New selects the repository implementation from configuration. The decision
// is made once here, not scattered through call sites.
func New(cfg *config.UpstreamConfig, client *api.Client, store *localstore.Store, sessions *session.Store) Repository {
	if cfg.UseShelfAPI {
		log.Info().Msg("shelf repository: remote")
		return NewRemoteRepository(client)
	}
	log.Info().Msg("shelf repository: local")
	return NewLocalRepository(store, sessions)
}
