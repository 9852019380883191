package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/SscSPs/familienkasse/internal/apperrors"
	"github.com/SscSPs/familienkasse/internal/core/domain"
	portsrepo "github.com/SscSPs/familienkasse/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/familienkasse/internal/core/ports/services"
	"github.com/SscSPs/familienkasse/internal/dto"
	"github.com/google/uuid"
)

// transactionService implements the TransactionSvcFacade interface
type transactionService struct {
	BaseService
	accountRepo     portsrepo.AccountReader
	transactionRepo portsrepo.TransactionRepositoryFacade
}

// NewTransactionService creates a new transaction service.
func NewTransactionService(accountRepo portsrepo.AccountReader, transactionRepo portsrepo.TransactionRepositoryFacade, options ...ServiceOption) portssvc.TransactionSvcFacade {
	return &transactionService{
		BaseService:     newBaseService(options...),
		accountRepo:     accountRepo,
		transactionRepo: transactionRepo,
	}
}

var _ portssvc.TransactionSvcFacade = (*transactionService)(nil)

func (s *transactionService) GetTransaction(ctx context.Context, accountID string, transactionID string, userID string) (*domain.Transaction, error) {
	return s.findOwnedTransaction(ctx, accountID, transactionID, userID)
}

func (s *transactionService) ListTransactions(ctx context.Context, accountID string, userID string, limit int, offset int) (*domain.TransactionPage, error) {
	if _, err := findOwnedAccount(ctx, &s.BaseService, s.accountRepo, accountID, userID); err != nil {
		return nil, err
	}

	txns, err := s.transactionRepo.ListTransactionsByAccount(ctx, accountID, limit, offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list transactions", slog.String("account_id", accountID))
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	total, err := s.transactionRepo.CountTransactionsByAccount(ctx, accountID)
	if err != nil {
		s.LogError(ctx, err, "Failed to count transactions", slog.String("account_id", accountID))
		return nil, fmt.Errorf("failed to count transactions: %w", err)
	}

	return &domain.TransactionPage{
		Transactions: txns,
		Total:        total,
		Limit:        limit,
		Offset:       offset,
	}, nil
}

func (s *transactionService) CreateTransaction(ctx context.Context, accountID string, req dto.CreateTransactionRequest, userID string) (*domain.Transaction, error) {
	if req.Amount == nil {
		return nil, fmt.Errorf("%w: amount is required", apperrors.ErrValidation)
	}
	if _, err := findOwnedAccount(ctx, &s.BaseService, s.accountRepo, accountID, userID); err != nil {
		return nil, err
	}

	txn := domain.Transaction{
		TransactionID: uuid.NewString(),
		AccountID:     accountID,
		Description:   domain.NormalizeDescription(req.Description),
		Amount:        *req.Amount,
		IsPaid:        req.IsPaid,
		Origin:        domain.OriginManual,
		CreatedAt:     s.Now(),
	}
	if err := txn.Validate(); err != nil {
		return nil, err
	}

	if err := s.transactionRepo.SaveTransaction(ctx, txn); err != nil {
		s.LogError(ctx, err, "Failed to save transaction", slog.String("account_id", accountID))
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}

	s.LogInfo(ctx, "Transaction created",
		slog.String("transaction_id", txn.TransactionID),
		slog.String("account_id", accountID))
	return &txn, nil
}

func (s *transactionService) UpdateTransaction(ctx context.Context, accountID string, transactionID string, req dto.UpdateTransactionRequest, userID string) (*domain.Transaction, error) {
	txn, err := s.findOwnedTransaction(ctx, accountID, transactionID, userID)
	if err != nil {
		return nil, err
	}

	patch := req.ToPatch()
	if patch.IsEmpty() {
		return txn, nil
	}

	txn.Apply(patch)
	if err := txn.Validate(); err != nil {
		return nil, err
	}

	if err := s.transactionRepo.UpdateTransaction(ctx, *txn); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrNotFound
		}
		s.LogError(ctx, err, "Failed to update transaction", slog.String("transaction_id", transactionID))
		return nil, fmt.Errorf("failed to update transaction: %w", err)
	}
	return txn, nil
}

func (s *transactionService) DeleteTransaction(ctx context.Context, accountID string, transactionID string, userID string) error {
	if _, err := s.findOwnedTransaction(ctx, accountID, transactionID, userID); err != nil {
		return err
	}
	if err := s.transactionRepo.DeleteTransaction(ctx, transactionID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.ErrNotFound
		}
		s.LogError(ctx, err, "Failed to delete transaction", slog.String("transaction_id", transactionID))
		return fmt.Errorf("failed to delete transaction: %w", err)
	}
	return nil
}

// findOwnedTransaction resolves a transaction through its parent account.
// A transaction addressed under the wrong account is reported as not found.
func (s *transactionService) findOwnedTransaction(ctx context.Context, accountID string, transactionID string, userID string) (*domain.Transaction, error) {
	txn, err := s.transactionRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrNotFound
		}
		s.LogError(ctx, err, "Failed to find transaction", slog.String("transaction_id", transactionID))
		return nil, fmt.Errorf("failed to find transaction: %w", err)
	}
	if txn.AccountID != accountID {
		return nil, apperrors.ErrNotFound
	}
	if _, err := findOwnedAccount(ctx, &s.BaseService, s.accountRepo, txn.AccountID, userID); err != nil {
		return nil, err
	}
	return txn, nil
}
