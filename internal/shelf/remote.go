package shelf

import (
	"context"

	"github.com/stockdeck/stockdeck/internal/api"
	"github.com/stockdeck/stockdeck/internal/models"
)

// RemoteRepository persists shelves through the backend REST API.
type RemoteRepository struct {
	client *api.Client
}

// NewRemoteRepository constructs a RemoteRepository.
func NewRemoteRepository(client *api.Client) *RemoteRepository {
	return &RemoteRepository{client: client}
}

func (r *RemoteRepository) Shelves(ctx context.Context) *api.Envelope {
	return r.client.ListShelves(ctx)
}

func (r *RemoteRepository) CreateShelf(ctx context.Context, in models.ShelfInput) *api.Envelope {
	return r.client.CreateShelf(ctx, in)
}

func (r *RemoteRepository) UpdateShelf(ctx context.Context, id string, in models.ShelfInput) *api.Envelope {
	return r.client.UpdateShelf(ctx, id, in)
}

func (r *RemoteRepository) DeleteShelf(ctx context.Context, id string) *api.Envelope {
	return r.client.DeleteShelf(ctx, id)
}

func (r *RemoteRepository) ShelfProducts(ctx context.Context, shelfID string) *api.Envelope {
	return r.client.ListShelfProducts(ctx, shelfID)
}

func (r *RemoteRepository) AddProduct(ctx context.Context, shelfID string, in models.ShelfProductInput) *api.Envelope {
	return r.client.AddShelfProduct(ctx, shelfID, in)
}

func (r *RemoteRepository) UpdateProductQuantity(ctx context.Context, shelfID, productID string, quantity int) *api.Envelope {
	return r.client.UpdateShelfProductQuantity(ctx, shelfID, productID, quantity)
}

func (r *RemoteRepository) RemoveProduct(ctx context.Context, shelfID, productID string) *api.Envelope {
	return r.client.RemoveShelfProduct(ctx, shelfID, productID)
}
