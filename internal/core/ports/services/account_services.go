package services

import (
	"context"

	"github.com/SscSPs/familienkasse/internal/core/domain"
	"github.com/SscSPs/familienkasse/internal/dto"
)

// AccountReaderSvc defines read operations for account data
type AccountReaderSvc interface {
	// ListAccountsWithBalances returns the user's accounts ordered by name with their balances.
	ListAccountsWithBalances(ctx context.Context, userID string) ([]domain.AccountWithBalance, error)

	// GetAccountWithBalance returns one of the user's accounts with its balances.
	// Absent and foreign accounts both yield apperrors.ErrNotFound.
	GetAccountWithBalance(ctx context.Context, accountID string, userID string) (*domain.AccountWithBalance, error)
}

// AccountWriterSvc defines write operations for account data
type AccountWriterSvc interface {
	CreateAccount(ctx context.Context, req dto.CreateAccountRequest, userID string) (*domain.Account, error)

	// UpdateAccount applies a partial update. An empty request returns the unchanged account.
	UpdateAccount(ctx context.Context, accountID string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error)

	// UpdateAllowanceConfig replaces both allowance fields of the account.
	UpdateAllowanceConfig(ctx context.Context, accountID string, req dto.AllowanceConfigRequest, userID string) (*domain.Account, error)

	DeleteAccount(ctx context.Context, accountID string, userID string) error
}

// AccountSvcFacade combines all account-related service interfaces
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
}
