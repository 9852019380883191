package services

import (
	"context"

	"github.com/SscSPs/familienkasse/internal/core/domain"
	"github.com/SscSPs/familienkasse/internal/dto"
)

// TransactionReaderSvc defines read operations for transaction data.
// Every operation verifies that the parent account belongs to userID.
type TransactionReaderSvc interface {
	GetTransaction(ctx context.Context, accountID string, transactionID string, userID string) (*domain.Transaction, error)

	// ListTransactions returns a page of the account's transactions, newest first, with the total count.
	ListTransactions(ctx context.Context, accountID string, userID string, limit int, offset int) (*domain.TransactionPage, error)
}

// TransactionWriterSvc defines write operations for transaction data
type TransactionWriterSvc interface {
	CreateTransaction(ctx context.Context, accountID string, req dto.CreateTransactionRequest, userID string) (*domain.Transaction, error)

	// UpdateTransaction applies a partial update. An empty request returns the unchanged transaction.
	UpdateTransaction(ctx context.Context, accountID string, transactionID string, req dto.UpdateTransactionRequest, userID string) (*domain.Transaction, error)

	DeleteTransaction(ctx context.Context, accountID string, transactionID string, userID string) error
}

// TransactionSvcFacade combines all transaction-related service interfaces
type TransactionSvcFacade interface {
	TransactionReaderSvc
	TransactionWriterSvc
}
