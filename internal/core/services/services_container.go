package services

import (
	portsrepo "github.com/SscSPs/familienkasse/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/familienkasse/internal/core/ports/services"
	"github.com/SscSPs/familienkasse/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies.
// legacySource may be nil when no legacy database is configured.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, legacySource portsrepo.LegacySourceOpener, options ...ServiceOption) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Account = NewAccountService(repos.AccountRepo, options...)
	container.Transaction = NewTransactionService(repos.AccountRepo, repos.TransactionRepo, options...)
	container.Allowance = NewAllowanceService(repos.AccountRepo, repos.TransactionRepo, options...)
	container.Migration = NewMigrationService(repos.AccountRepo, repos.TransactionRepo, repos.MigrationLogRepo, legacySource, options...)

	container.User = NewUserService(repos.UserRepo, options...)
	container.TokenService = NewTokenService(cfg, options...)
	container.GoogleOAuthHandler = NewGoogleOAuthHandlerService(cfg)
	container.Health = NewHealthService(repos.Health)

	return container
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.TokenSvcFacade              = (*tokenService)(nil)
	_ portssvc.GoogleOAuthHandlerSvcFacade = (*googleOAuthHandlerService)(nil)
	_ portssvc.HealthSvc                   = (*healthService)(nil)
)
