package api

import "context"

// categoryPayload is the slice of a category input the backend accepts.
// Visual fields are client-only and never sent.
type categoryPayload struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// ListCategories fetches the organization's categories. A 404 envelope means
// the organization has no categories yet; callers treat it as an empty list.
func (c *Client) ListCategories(ctx context.Context) *Envelope {
	orgID, errEnv := c.requireOrg(ctx)
	if errEnv != nil {
		return errEnv
	}
	return c.get(ctx, orgPath(orgID, "categories"))
}

// CreateCategory creates a category from name and description only.
func (c *Client) CreateCategory(ctx context.Context, name, description string) *Envelope {
	orgID, errEnv := c.requireOrg(ctx)
	if errEnv != nil {
		return errEnv
	}
	return c.post(ctx, orgPath(orgID, "categories"), categoryPayload{Name: name, Description: description})
}

// UpdateCategory patches a category's name and description.
func (c *Client) UpdateCategory(ctx context.Context, id, name, description string) *Envelope {
	orgID, errEnv := c.requireOrg(ctx)
	if errEnv != nil {
		return errEnv
	}
	return c.patch(ctx, orgPath(orgID, "categories/"+id), categoryPayload{Name: name, Description: description})
}

// DeleteCategory deletes a category.
func (c *Client) DeleteCategory(ctx context.Context, id string) *Envelope {
	orgID, errEnv := c.requireOrg(ctx)
	if errEnv != nil {
		return errEnv
	}
	return c.delete(ctx, orgPath(orgID, "categories/"+id))
}
