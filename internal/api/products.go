package api

import (
	"context"
	"fmt"

	"github.com/stockdeck/stockdeck/internal/models"
)

// ProductListData is the data payload of a product list response.
type ProductListData struct {
	Products []models.ProductRecord `json:"products"`
	Total    int                    `json:"total"`
}

// ListProducts fetches one page of the organization's products.
func (c *Client) ListProducts(ctx context.Context, page, limit int) *Envelope {
	orgID, errEnv := c.requireOrg(ctx)
	if errEnv != nil {
		return errEnv
	}
	return c.get(ctx, orgPath(orgID, fmt.Sprintf("products?page=%d&limit=%d", page, limit)))
}

// CreateProduct creates a product. The response data is the created record.
func (c *Client) CreateProduct(ctx context.Context, in models.ProductInput) *Envelope {
	orgID, errEnv := c.requireOrg(ctx)
	if errEnv != nil {
		return errEnv
	}
	return c.post(ctx, orgPath(orgID, "products"), in)
}

// UpdateProduct patches a product. The response data is the updated record.
func (c *Client) UpdateProduct(ctx context.Context, id string, in models.ProductInput) *Envelope {
	orgID, errEnv := c.requireOrg(ctx)
	if errEnv != nil {
		return errEnv
	}
	return c.patch(ctx, orgPath(orgID, "products/"+id), in)
}

// DeleteProduct deletes a product.
func (c *Client) DeleteProduct(ctx context.Context, id string) *Envelope {
	orgID, errEnv := c.requireOrg(ctx)
	if errEnv != nil {
		return errEnv
	}
	return c.delete(ctx, orgPath(orgID, "products/"+id))
}

// productAction posts to a product quantity sub-resource. The server owns the
// quantity arithmetic; the response data is its post-mutation snapshot.
func (c *Client) productAction(ctx context.Context, id, action string, quantity int) *Envelope {
	orgID, errEnv := c.requireOrg(ctx)
	if errEnv != nil {
		return errEnv
	}
	return c.post(ctx, orgPath(orgID, fmt.Sprintf("products/%s/%s", id, action)),
		models.QuantityInput{Quantity: quantity})
}

// RestockProduct adds quantity to a product's available stock.
func (c *Client) RestockProduct(ctx context.Context, id string, quantity int) *Envelope {
	return c.productAction(ctx, id, "restock", quantity)
}

// ConsumeProduct removes quantity from a product's available stock.
func (c *Client) ConsumeProduct(ctx context.Context, id string, quantity int) *Envelope {
	return c.productAction(ctx, id, "consume", quantity)
}

// CheckOutProduct moves quantity from available to checked-out.
func (c *Client) CheckOutProduct(ctx context.Context, id string, quantity int) *Envelope {
	return c.productAction(ctx, id, "check-out", quantity)
}

// CheckInProduct returns checked-out quantity to available.
func (c *Client) CheckInProduct(ctx context.Context, id string, quantity int) *Envelope {
	return c.productAction(ctx, id, "check-in", quantity)
}
