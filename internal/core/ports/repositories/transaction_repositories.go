package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/familienkasse/internal/core/domain"
)

// TransactionReader defines read operations for transaction data
type TransactionReader interface {
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// ListTransactionsByAccount returns a page of the account's transactions, newest first.
	ListTransactionsByAccount(ctx context.Context, accountID string, limit, offset int) ([]domain.Transaction, error)

	CountTransactionsByAccount(ctx context.Context, accountID string) (int, error)

	// ExistsTransactionInWindow reports whether the account has a transaction of the
	// given origin created in [from, to).
	ExistsTransactionInWindow(ctx context.Context, accountID string, origin domain.TransactionOrigin, from, to time.Time) (bool, error)
}

// TransactionWriter defines write operations for transaction data
type TransactionWriter interface {
	SaveTransaction(ctx context.Context, txn domain.Transaction) error
	UpdateTransaction(ctx context.Context, txn domain.Transaction) error
	DeleteTransaction(ctx context.Context, transactionID string) error

	// InsertTransactionIfAbsent inserts the transaction unless its id already exists.
	// It reports whether a row was written.
	InsertTransactionIfAbsent(ctx context.Context, txn domain.Transaction) (bool, error)
}

// TransactionRepositoryFacade combines all transaction-related repository interfaces
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
}
