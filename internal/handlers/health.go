package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"backoffice-service/internal/repository"
)

// HealthCheck returns service health status (basic)
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "backoffice-service",
	})
}

// HealthHandler exposes the extended readiness probe
type HealthHandler struct {
	products *repository.ProductRepository
}

func NewHealthHandler(products *repository.ProductRepository) *HealthHandler {
	return &HealthHandler{products: products}
}

// ReadyCheck returns detailed health status including Redis
func (h *HealthHandler) ReadyCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	health := gin.H{
		"status":  "healthy",
		"service": "backoffice-service",
		"checks":  gin.H{},
	}
	checks := health["checks"].(gin.H)

	if err := h.products.RedisHealth(ctx); err == repository.ErrCacheDisabled {
		checks["redis"] = gin.H{
			"status": "disabled",
		}
	} else if err != nil {
		checks["redis"] = gin.H{
			"status": "unhealthy",
			"error":  err.Error(),
		}
		health["status"] = "degraded"
	} else {
		checks["redis"] = gin.H{
			"status": "healthy",
		}
	}

	c.JSON(http.StatusOK, health)
}
