package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/familienkasse/internal/apperrors"
	portssvc "github.com/SscSPs/familienkasse/internal/core/ports/services"
	"github.com/SscSPs/familienkasse/internal/dto"
	"github.com/SscSPs/familienkasse/internal/middleware"
	"github.com/SscSPs/familienkasse/internal/platform/config"
	"github.com/gin-gonic/gin"
)

type migrationHandler struct {
	migrationService portssvc.MigrationSvc
	configured       bool
}

func registerMigrationRoutes(rg *gin.RouterGroup, cfg *config.Config, migrationService portssvc.MigrationSvc) {
	h := &migrationHandler{
		migrationService: migrationService,
		configured:       cfg.LegacyDatabaseURL != "",
	}

	migrate := rg.Group("/migrate")
	{
		migrate.POST("", h.runMigration)
		migrate.GET("/status", h.status)
		migrate.GET("/logs/:logID", h.getLog)
	}
}

// runMigration godoc
// @Summary Migrate the legacy database
// @Description Copies all legacy accounts and transactions to the calling user. Safe to repeat: existing rows are skipped.
// @Tags migration
// @Produce  json
// @Success 200 {object} domain.MigrationResult
// @Failure 400 {object} map[string]interface{} "Legacy database not configured"
// @Failure 401 {object} apperrors.AppError
// @Security BearerAuth
// @Router /migrate [post]
func (h *migrationHandler) runMigration(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	if !h.configured {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "LEGACY_DATABASE_URL is not configured",
		})
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Starting legacy migration", slog.String("target_user_id", userID))
	result := h.migrationService.RunMigration(c.Request.Context(), userID)
	c.JSON(http.StatusOK, result)
}

// status godoc
// @Summary Migration status
// @Description Reports whether a legacy database is configured and the most recent run
// @Tags migration
// @Produce  json
// @Success 200 {object} dto.MigrationStatusResponse
// @Failure 401 {object} apperrors.AppError
// @Security BearerAuth
// @Router /migrate/status [get]
func (h *migrationHandler) status(c *gin.Context) {
	if _, ok := requireUserID(c); !ok {
		return
	}

	resp := dto.MigrationStatusResponse{Configured: h.configured}
	latest, err := h.migrationService.GetLatestMigrationLog(c.Request.Context())
	switch {
	case err == nil:
		resp.LatestRun = latest
	case errors.Is(err, apperrors.ErrNotFound):
		// no runs yet
	default:
		respondError(c, err, "")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// getLog godoc
// @Summary Get a migration run
// @Tags migration
// @Produce  json
// @Param   logID path string true "Migration log ID"
// @Success 200 {object} domain.MigrationLog
// @Failure 401 {object} apperrors.AppError
// @Failure 404 {object} apperrors.AppError "Migration log not found"
// @Security BearerAuth
// @Router /migrate/logs/{logID} [get]
func (h *migrationHandler) getLog(c *gin.Context) {
	if _, ok := requireUserID(c); !ok {
		return
	}

	log, err := h.migrationService.GetMigrationLog(c.Request.Context(), c.Param("logID"))
	if err != nil {
		respondError(c, err, "Migration log not found")
		return
	}
	c.JSON(http.StatusOK, log)
}
