package api

import (
	"context"

	"github.com/stockdeck/stockdeck/internal/models"
)

// ListInvitations fetches pending invitations for the organization.
func (c *Client) ListInvitations(ctx context.Context) *Envelope {
	orgID, errEnv := c.requireOrg(ctx)
	if errEnv != nil {
		return errEnv
	}
	return c.get(ctx, orgPath(orgID, "invitations"))
}

// CreateInvitation invites a member to the organization.
func (c *Client) CreateInvitation(ctx context.Context, in models.InvitationInput) *Envelope {
	orgID, errEnv := c.requireOrg(ctx)
	if errEnv != nil {
		return errEnv
	}
	return c.post(ctx, orgPath(orgID, "invitations"), in)
}

// RevokeInvitation revokes a pending invitation.
func (c *Client) RevokeInvitation(ctx context.Context, id string) *Envelope {
	orgID, errEnv := c.requireOrg(ctx)
	if errEnv != nil {
		return errEnv
	}
	return c.delete(ctx, orgPath(orgID, "invitations/"+id))
}
