package handlers

import (
	"net/http"

	"github.com/SscSPs/familienkasse/internal/dto"
	"github.com/SscSPs/familienkasse/internal/platform/config"
	"github.com/gin-gonic/gin"
)

// registerConfigRoutes exposes the settings a client needs before login.
func registerConfigRoutes(group *gin.RouterGroup, cfg *config.Config) {
	group.GET("/config", getPublicConfig(cfg))
}

// getPublicConfig godoc
// @Summary Public server settings
// @Description Tells clients whether self-registration is open.
// @Tags root
// @Produce json
// @Success 200 {object} dto.PublicConfigResponse
// @Router /config [get]
func getPublicConfig(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, dto.PublicConfigResponse{RegistrationEnabled: cfg.AllowRegistration})
	}
}
