package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/stockdeck/stockdeck/internal/session"
	"github.com/stockdeck/stockdeck/internal/utils"
)

// SessionGuard rejects requests when no bearer token is stored in either
// session scope. It guards every dashboard route except login and health.
type SessionGuard struct {
	sessions *session.Store
}

// NewSessionGuard constructs a SessionGuard.
func NewSessionGuard(sessions *session.Store) *SessionGuard {
	return &SessionGuard{sessions: sessions}
}

// Handle returns a Gin middleware function that enforces a signed-in session.
func (m *SessionGuard) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		if m.sessions.Token(c.Request.Context()) == "" {
			utils.Error(c, http.StatusUnauthorized, "not signed in")
			c.Abort()
			return
		}
		c.Next()
	}
}
