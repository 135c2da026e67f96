package gateway

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/stockdeck/stockdeck/internal/api"
	"github.com/stockdeck/stockdeck/internal/models"
	"github.com/stockdeck/stockdeck/internal/utils"
)

// InvitationHandler proxies organization invitations to the backend.
type InvitationHandler struct {
	client *api.Client
}

// NewInvitationHandler constructs an InvitationHandler.
func NewInvitationHandler(client *api.Client) *InvitationHandler {
	return &InvitationHandler{client: client}
}

// GetInvitations lists pending invitations.
func (h *InvitationHandler) GetInvitations(c *gin.Context) {
	env := h.client.ListInvitations(c.Request.Context())
	if env.NotFound() {
		utils.Success(c, http.StatusOK, "invitations retrieved", []models.Invitation{})
		return
	}
	utils.Forward(c, env.Status, env.Message, env.Data, env.StatusCode)
}

// CreateInvitation invites a member.
func (h *InvitationHandler) CreateInvitation(c *gin.Context) {
	var in models.InvitationInput
	if err := c.ShouldBindJSON(&in); err != nil || in.Email == "" {
		utils.Error(c, http.StatusBadRequest, "email is required")
		return
	}
	env := h.client.CreateInvitation(c.Request.Context(), in)
	utils.Forward(c, env.Status, env.Message, env.Data, env.StatusCode)
}

// RevokeInvitation revokes a pending invitation.
func (h *InvitationHandler) RevokeInvitation(c *gin.Context) {
	env := h.client.RevokeInvitation(c.Request.Context(), c.Param("id"))
	utils.Forward(c, env.Status, env.Message, env.Data, env.StatusCode)
}
