package repositories

import (
	"context"

	"github.com/SscSPs/familienkasse/internal/core/domain"
)

// AccountReader defines read operations for account data
type AccountReader interface {
	// FindAccountByID retrieves a specific account by its unique identifier.
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// FindAccountWithBalance retrieves one account together with its aggregated balances.
	FindAccountWithBalance(ctx context.Context, accountID string) (*domain.AccountWithBalance, error)

	// ListAccountsWithBalances retrieves every account of a user ordered by name.
	ListAccountsWithBalances(ctx context.Context, userID string) ([]domain.AccountWithBalance, error)

	// ListAllAccountBalances retrieves the balances of all accounts in the store.
	ListAllAccountBalances(ctx context.Context) ([]domain.AccountWithBalance, error)

	// ListAllowanceAccounts retrieves accounts with an enabled, positive weekly allowance.
	ListAllowanceAccounts(ctx context.Context) ([]domain.Account, error)
}

// AccountWriter defines write operations for account data
type AccountWriter interface {
	// SaveAccount persists a new account.
	SaveAccount(ctx context.Context, account domain.Account) error

	// UpdateAccount updates an existing account's mutable fields.
	UpdateAccount(ctx context.Context, account domain.Account) error

	// DeleteAccount removes an account and, by cascade, its transactions.
	DeleteAccount(ctx context.Context, accountID string) error

	// InsertAccountIfAbsent inserts the account unless its id already exists.
	// It reports whether a row was written.
	InsertAccountIfAbsent(ctx context.Context, account domain.Account) (bool, error)
}

// AccountRepositoryFacade combines all account-related repository interfaces
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
}
