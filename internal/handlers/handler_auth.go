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

// AuthHandler handles authentication related requests.
type AuthHandler struct {
	userService       portssvc.UserSvcFacade
	tokenService      portssvc.TokenSvcFacade
	allowRegistration bool
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(us portssvc.UserSvcFacade, ts portssvc.TokenSvcFacade, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		userService:       us,
		tokenService:      ts,
		allowRegistration: cfg.AllowRegistration,
	}
}

// registerAuthRoutes sets up the public authentication routes.
func registerAuthRoutes(rg *gin.RouterGroup, cfg *config.Config, services *portssvc.ServiceContainer) error {
	h := NewAuthHandler(services.User, services.TokenService, cfg)

	ipLimiter, err := middleware.NewIPRateLimiter(cfg.LoginRateLimit)
	if err != nil {
		return err
	}

	auth := rg.Group("/auth")
	{
		auth.POST("/login", middleware.RateLimit(ipLimiter), h.Login)
		auth.POST("/register", h.Register)
	}
	registerGoogleOAuthRoutes(auth, services)
	return nil
}

// Login godoc
// @Summary User login
// @Description Authenticates a user and returns a JWT token.
// @Tags auth
// @Accept json
// @Produce json
// @Param login body dto.LoginRequest true "Login Credentials"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} apperrors.AppError
// @Failure 401 {object} apperrors.AppError
// @Failure 429 {object} apperrors.AppError
// @Failure 500 {object} apperrors.AppError
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	user, err := h.userService.AuthenticateUser(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, apperrors.ErrUnauthorized) {
			appErr := apperrors.NewUnauthorizedError("Invalid email or password")
			c.JSON(appErr.Code, appErr)
			return
		}
		respondError(c, err, "User not found")
		return
	}

	token, expiresAt, err := h.tokenService.GenerateAccessToken(c.Request.Context(), user)
	if err != nil {
		respondError(c, err, "")
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("User logged in", slog.String("user_id", user.UserID))
	c.JSON(http.StatusOK, dto.LoginResponse{Token: token, ExpiresAt: expiresAt})
}

// Register godoc
// @Summary Register new user
// @Description Creates a new user account with an email and password.
// @Tags auth
// @Accept json
// @Produce json
// @Param register body dto.CreateUserRequest true "User Registration Info"
// @Success 201 {object} dto.UserResponse
// @Failure 400 {object} apperrors.AppError
// @Failure 403 {object} apperrors.AppError "Registration disabled"
// @Failure 409 {object} apperrors.AppError "Email already registered"
// @Failure 500 {object} apperrors.AppError
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	if !h.allowRegistration {
		appErr := apperrors.NewForbiddenError("Registration is disabled")
		c.JSON(appErr.Code, appErr)
		return
	}

	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	newUser, err := h.userService.CreateUser(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "")
		return
	}

	c.JSON(http.StatusCreated, dto.ToUserResponse(newUser))
}
