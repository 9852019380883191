package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	portssvc "github.com/SscSPs/familienkasse/internal/core/ports/services"
	"github.com/SscSPs/familienkasse/internal/dto"
	"github.com/SscSPs/familienkasse/internal/middleware"
	"github.com/gin-gonic/gin"
)

const healthCheckTimeout = 3 * time.Second

type healthHandler struct {
	healthService portssvc.HealthSvc
}

func registerHealthRoutes(r *gin.Engine, healthService portssvc.HealthSvc) {
	h := &healthHandler{healthService: healthService}
	r.GET("/health", h.health)
}

// health godoc
// @Summary Health check
// @Description Reports whether the server and its database are reachable.
// @Tags root
// @Produce json
// @Success 200 {object} dto.HealthResponse
// @Failure 503 {object} dto.HealthResponse
// @Router /health [get]
func (h *healthHandler) health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthCheckTimeout)
	defer cancel()

	resp := dto.HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
		Database:  "connected",
	}
	if err := h.healthService.CheckDatabase(ctx); err != nil {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Health check failed", slog.String("error", err.Error()))
		resp.Status = "unhealthy"
		resp.Database = "disconnected"
		resp.Error = err.Error()
		c.JSON(http.StatusServiceUnavailable, resp)
		return
	}
	c.JSON(http.StatusOK, resp)
}
