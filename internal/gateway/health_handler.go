package gateway

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/stockdeck/stockdeck/internal/utils"
)

var startTime = time.Now()

// HealthHandler provides the health endpoint.
type HealthHandler struct{}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

// GetHealth responds with daemon status.
func (h *HealthHandler) GetHealth(c *gin.Context) {
	utils.Success(c, http.StatusOK, "service is healthy", gin.H{
		"status": "healthy",
		"uptime": int(time.Since(startTime).Seconds()),
	})
}
