package handlers

import (
	"fmt"

	portssvc "github.com/SscSPs/familienkasse/internal/core/ports/services"
	"github.com/SscSPs/familienkasse/internal/middleware"
	"github.com/SscSPs/familienkasse/internal/platform/config"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) error {
	if err := registerValidators(); err != nil {
		return fmt.Errorf("failed to register validators: %w", err)
	}

	registerHealthRoutes(r, services.Health)

	// Public API routes
	public := r.Group("/api/v1")
	registerConfigRoutes(public, cfg)
	if err := registerAuthRoutes(public, cfg, services); err != nil {
		return err
	}

	// Setup API v1 routes with Auth Middleware, passing service interfaces
	setupAPIV1Routes(r, cfg, services)

	setupSwaggerRoutes(r, cfg)
	return nil
}

// setupAPIV1Routes configures the authenticated /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	service *portssvc.ServiceContainer,
) {
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret))

	registerUserRoutes(v1, service.User)
	registerAccountRoutes(v1, service.Account, service.Transaction)
	registerAllowanceRoutes(v1, service.Allowance)
	registerMigrationRoutes(v1, cfg, service.Migration)
}

// setupSwaggerRoutes configures the swagger documentation routes.
// doc.json is only served by binaries built with the swagger tag (see cmd/familienkasse).
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
