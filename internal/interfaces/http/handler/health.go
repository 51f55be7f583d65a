package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kirana/pdf-invoice-api/internal/interfaces/http/dto"
)

// ServiceName is reported by the health endpoint
const ServiceName = "pdf-invoice-api"

// HealthHandler serves the liveness probe
type HealthHandler struct{}

// NewHealthHandler creates a new HealthHandler
func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

// Health always returns 200. It reports that the process is up and accepting
// requests, nothing more; a wedged Chrome does not flip it.
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, dto.HealthResponse{
		Status:  "ok",
		Service: ServiceName,
	})
}

// RegisterRoutes registers the health route
func (h *HealthHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/health", h.Health)
}
