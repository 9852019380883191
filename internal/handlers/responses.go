package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/familienkasse/internal/apperrors"
	"github.com/SscSPs/familienkasse/internal/middleware"
	"github.com/gin-gonic/gin"
)

// respondError writes err as an AppError. notFoundMsg names the missing resource.
func respondError(c *gin.Context, err error, notFoundMsg string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	appErr := apperrors.FromError(err, notFoundMsg)
	if appErr.Code >= http.StatusInternalServerError {
		logger.Error("Request failed", slog.String("error", err.Error()))
	} else {
		logger.Warn("Request rejected", slog.Int("status", appErr.Code), slog.String("error", err.Error()))
	}
	c.JSON(appErr.Code, appErr)
}

func respondBindError(c *gin.Context, err error) {
	middleware.GetLoggerFromCtx(c.Request.Context()).Warn("Failed to bind request", slog.String("error", err.Error()))
	appErr := apperrors.NewBadRequestError("Invalid request format: " + err.Error())
	c.JSON(appErr.Code, appErr)
}

// requireUserID returns the authenticated user or writes a 401.
func requireUserID(c *gin.Context) (string, bool) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("User ID not found in context")
		appErr := apperrors.NewUnauthorizedError("Unauthorized")
		c.JSON(appErr.Code, appErr)
		return "", false
	}
	return userID, true
}
