package api

import "context"

// ListOrganizations fetches the organizations the caller belongs to. This is
// the only unscoped resource: it is how the active organization gets resolved
// in the first place.
func (c *Client) ListOrganizations(ctx context.Context) *Envelope {
	return c.get(ctx, "/api/v1/organizations")
}
