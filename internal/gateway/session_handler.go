package gateway

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/stockdeck/stockdeck/internal/api"
	"github.com/stockdeck/stockdeck/internal/models"
	"github.com/stockdeck/stockdeck/internal/session"
	"github.com/stockdeck/stockdeck/internal/utils"
)

// SessionHandler manages the daemon's session: login, logout, and the active
// organization.
type SessionHandler struct {
	sessions *session.Store
	client   *api.Client
}

// NewSessionHandler constructs a SessionHandler.
func NewSessionHandler(sessions *session.Store, client *api.Client) *SessionHandler {
	return &SessionHandler{sessions: sessions, client: client}
}

// loginPayload carries the token issued by the upstream auth flow. Remember
// selects durable persistence.
type loginPayload struct {
	Token    string `json:"token"`
	Remember bool   `json:"remember"`
}

// Login stores the bearer token and returns the identity parsed from it.
func (h *SessionHandler) Login(c *gin.Context) {
	var in loginPayload
	if err := c.ShouldBindJSON(&in); err != nil || in.Token == "" {
		utils.Error(c, http.StatusBadRequest, "token is required")
		return
	}
	persistence := session.PersistenceSession
	if in.Remember {
		persistence = session.PersistenceDurable
	}
	identity, err := h.sessions.Login(c.Request.Context(), in.Token, persistence)
	if err != nil {
		utils.Error(c, http.StatusInternalServerError, "failed to open session")
		return
	}
	utils.Success(c, http.StatusOK, "signed in", identity)
}

// Logout clears both session scopes.
func (h *SessionHandler) Logout(c *gin.Context) {
	if err := h.sessions.Logout(c.Request.Context()); err != nil {
		utils.Error(c, http.StatusInternalServerError, "failed to close session")
		return
	}
	utils.Success(c, http.StatusOK, "signed out", nil)
}

// GetSession returns the current identity and active organization.
func (h *SessionHandler) GetSession(c *gin.Context) {
	ctx := c.Request.Context()
	utils.Success(c, http.StatusOK, "session retrieved", gin.H{
		"identity":       h.sessions.Identity(ctx),
		"organizationId": h.sessions.OrganizationID(ctx),
		"signedIn":       h.sessions.Token(ctx) != "",
	})
}

// GetOrganizations proxies the caller's organizations from the backend.
func (h *SessionHandler) GetOrganizations(c *gin.Context) {
	env := h.client.ListOrganizations(c.Request.Context())
	utils.Forward(c, env.Status, env.Message, env.Data, env.StatusCode)
}

// selectOrganizationPayload names the organization to activate.
type selectOrganizationPayload struct {
	ID string `json:"id"`
}

// SelectOrganization caches the active organization id in both scopes.
func (h *SessionHandler) SelectOrganization(c *gin.Context) {
	var in selectOrganizationPayload
	if err := c.ShouldBindJSON(&in); err != nil || in.ID == "" {
		utils.Error(c, http.StatusBadRequest, "organization id is required")
		return
	}
	if err := h.sessions.SetOrganizationID(c.Request.Context(), in.ID); err != nil {
		utils.Error(c, http.StatusInternalServerError, "failed to store organization id")
		return
	}
	utils.Success(c, http.StatusOK, "organization selected", models.Organization{ID: in.ID})
}
