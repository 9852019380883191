package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/SscSPs/familienkasse/internal/apperrors"
	"github.com/SscSPs/familienkasse/internal/core/domain"
	portssvc "github.com/SscSPs/familienkasse/internal/core/ports/services"
	"github.com/SscSPs/familienkasse/internal/dto"
	"github.com/SscSPs/familienkasse/internal/middleware"
	"github.com/gin-gonic/gin"
)

// GoogleOAuthHandler handles Google OAuth related requests.
// It depends on the Google OAuth service, user service, and token service.
type GoogleOAuthHandler struct {
	googleOAuthService portssvc.GoogleOAuthHandlerSvcFacade
	userService        portssvc.UserSvcFacade
	tokenService       portssvc.TokenSvcFacade
}

// NewGoogleOAuthHandler creates a new instance of GoogleOAuthHandler.
func NewGoogleOAuthHandler(
	googleOAuthService portssvc.GoogleOAuthHandlerSvcFacade,
	userService portssvc.UserSvcFacade,
	tokenService portssvc.TokenSvcFacade,
) *GoogleOAuthHandler {
	return &GoogleOAuthHandler{
		googleOAuthService: googleOAuthService,
		userService:        userService,
		tokenService:       tokenService,
	}
}

// registerGoogleOAuthRoutes registers the Google OAuth routes.
func registerGoogleOAuthRoutes(rg *gin.RouterGroup, services *portssvc.ServiceContainer) {
	h := NewGoogleOAuthHandler(services.GoogleOAuthHandler, services.User, services.TokenService)
	googleRoutes := rg.Group("/google")
	{
		googleRoutes.GET("/login", h.LoginURLGoogle)
		googleRoutes.POST("/exchange-code", h.ExchangeCodeGoogle)
	}
}

// LoginURLGoogle godoc
// @Summary Google consent URL
// @Description Returns the Google consent URL together with the CSRF state it embeds.
// @Tags oauth
// @Produce json
// @Success 200 {object} dto.GoogleLoginURLResponse
// @Failure 500 {object} apperrors.AppError
// @Router /auth/google/login [get]
func (h *GoogleOAuthHandler) LoginURLGoogle(c *gin.Context) {
	ctx := c.Request.Context()
	state, err := h.googleOAuthService.GenerateStateString(ctx)
	if err != nil {
		respondError(c, err, "")
		return
	}
	c.JSON(http.StatusOK, dto.GoogleLoginURLResponse{
		URL:   h.googleOAuthService.GetGoogleLoginURL(ctx, state),
		State: state,
	})
}

// ExchangeCodeGoogle handles the POST request from the frontend containing the authorization code from Google.
// It exchanges the code for Google tokens, validates the ID token, creates or retrieves the user,
// generates an application-specific JWT, and returns it.
// @Summary Exchange authorization code for access token
// @Description Exchange authorization code for access token
// @Tags oauth
// @Accept  json
// @Produce  json
// @Param   code body dto.ExchangeCodeRequest true "Authorization code"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} apperrors.AppError "Invalid authorization code"
// @Failure 401 {object} apperrors.AppError "Invalid Google ID token"
// @Failure 500 {object} apperrors.AppError
// @Router /auth/google/exchange-code [post]
func (h *GoogleOAuthHandler) ExchangeCodeGoogle(c *gin.Context) {
	ctx := c.Request.Context()
	logger := middleware.GetLoggerFromCtx(ctx)

	var req dto.ExchangeCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	// 1. Exchange authorization code for Google tokens
	oauth2Token, err := h.googleOAuthService.ExchangeCodeForToken(ctx, req.Code)
	if err != nil {
		logger.Error("Failed to exchange authorization code with Google", slog.String("error", err.Error()))
		appErr := apperrors.NewInternalServerError("Failed to communicate with Google OAuth service.")
		lower := strings.ToLower(err.Error())
		if strings.Contains(lower, "invalid_grant") || strings.Contains(lower, "bad request") {
			appErr = apperrors.NewBadRequestError("Invalid or expired authorization code provided by Google.")
		}
		c.JSON(appErr.Code, appErr)
		return
	}

	idTokenString, ok := oauth2Token.Extra("id_token").(string)
	if !ok || idTokenString == "" {
		logger.Error("ID token not found in Google's token response")
		appErr := apperrors.NewInternalServerError("Failed to retrieve ID token from Google.")
		c.JSON(appErr.Code, appErr)
		return
	}

	// 2. Validate Google's ID Token
	payload, err := h.googleOAuthService.ValidateGoogleIDToken(ctx, idTokenString)
	if err != nil {
		logger.Warn("Google ID token validation failed", slog.String("error", err.Error()))
		appErr := apperrors.NewUnauthorizedError("Invalid Google ID token")
		c.JSON(appErr.Code, appErr)
		return
	}

	// 3. Extract user information from the validated payload
	email, _ := payload.Claims["email"].(string)
	name, _ := payload.Claims["name"].(string)
	emailVerified, _ := payload.Claims["email_verified"].(bool)
	providerUserID := payload.Subject

	if email == "" || providerUserID == "" {
		logger.Error("Essential claims (email or sub) missing from Google ID token payload")
		appErr := apperrors.NewInternalServerError("Essential user information missing from Google token.")
		c.JSON(appErr.Code, appErr)
		return
	}

	// 4. User lookup or creation
	user, err := h.userService.CreateOAuthUser(ctx, name, email, string(domain.ProviderGoogle), providerUserID, emailVerified)
	if err != nil {
		respondError(c, err, "User not found")
		return
	}

	// 5. Issue the application's JWT
	token, expiresAt, err := h.tokenService.GenerateAccessToken(ctx, user)
	if err != nil {
		respondError(c, err, "")
		return
	}

	logger.Info("User logged in via Google", slog.String("user_id", user.UserID))
	c.JSON(http.StatusOK, dto.LoginResponse{Token: token, ExpiresAt: expiresAt})
}
