package api

import (
	"context"
	"fmt"

	"github.com/stockdeck/stockdeck/internal/models"
)

// ListShelves fetches the organization's shelves. A 404 envelope means no
// shelves exist yet.
func (c *Client) ListShelves(ctx context.Context) *Envelope {
	orgID, errEnv := c.requireOrg(ctx)
	if errEnv != nil {
		return errEnv
	}
	return c.get(ctx, orgPath(orgID, "shelves"))
}

// CreateShelf creates a shelf.
func (c *Client) CreateShelf(ctx context.Context, in models.ShelfInput) *Envelope {
	orgID, errEnv := c.requireOrg(ctx)
	if errEnv != nil {
		return errEnv
	}
	return c.post(ctx, orgPath(orgID, "shelves"), in)
}

// UpdateShelf patches a shelf.
func (c *Client) UpdateShelf(ctx context.Context, id string, in models.ShelfInput) *Envelope {
	orgID, errEnv := c.requireOrg(ctx)
	if errEnv != nil {
		return errEnv
	}
	return c.patch(ctx, orgPath(orgID, "shelves/"+id), in)
}

// DeleteShelf deletes a shelf.
func (c *Client) DeleteShelf(ctx context.Context, id string) *Envelope {
	orgID, errEnv := c.requireOrg(ctx)
	if errEnv != nil {
		return errEnv
	}
	return c.delete(ctx, orgPath(orgID, "shelves/"+id))
}

// ListShelfProducts fetches the products placed on a shelf.
func (c *Client) ListShelfProducts(ctx context.Context, shelfID string) *Envelope {
	orgID, errEnv := c.requireOrg(ctx)
	if errEnv != nil {
		return errEnv
	}
	return c.get(ctx, orgPath(orgID, fmt.Sprintf("shelves/%s/products", shelfID)))
}

// AddShelfProduct places a product on a shelf.
func (c *Client) AddShelfProduct(ctx context.Context, shelfID string, in models.ShelfProductInput) *Envelope {
	orgID, errEnv := c.requireOrg(ctx)
	if errEnv != nil {
		return errEnv
	}
	return c.post(ctx, orgPath(orgID, fmt.Sprintf("shelves/%s/products", shelfID)), in)
}

// UpdateShelfProductQuantity sets the quantity of a product on a shelf.
func (c *Client) UpdateShelfProductQuantity(ctx context.Context, shelfID, productID string, quantity int) *Envelope {
	orgID, errEnv := c.requireOrg(ctx)
	if errEnv != nil {
		return errEnv
	}
	return c.patch(ctx, orgPath(orgID, fmt.Sprintf("shelves/%s/products/%s", shelfID, productID)),
		models.QuantityInput{Quantity: quantity})
}

// RemoveShelfProduct takes a product off a shelf.
func (c *Client) RemoveShelfProduct(ctx context.Context, shelfID, productID string) *Envelope {
	orgID, errEnv := c.requireOrg(ctx)
	if errEnv != nil {
		return errEnv
	}
	return c.delete(ctx, orgPath(orgID, fmt.Sprintf("shelves/%s/products/%s", shelfID, productID)))
}
