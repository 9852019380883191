package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SscSPs/familienkasse/internal/core/domain"
	portsrepo "github.com/SscSPs/familienkasse/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/familienkasse/internal/core/ports/services"
	"github.com/SscSPs/familienkasse/internal/utils"
	"github.com/SscSPs/familienkasse/internal/utils/calendar"
	"github.com/google/uuid"
)

// allowanceService implements the AllowanceSvc interface
type allowanceService struct {
	BaseService
	accountRepo     portsrepo.AccountReader
	transactionRepo portsrepo.TransactionRepositoryFacade
}

// NewAllowanceService creates the weekly allowance job.
func NewAllowanceService(accountRepo portsrepo.AccountReader, transactionRepo portsrepo.TransactionRepositoryFacade, options ...ServiceOption) portssvc.AllowanceSvc {
	return &allowanceService{
		BaseService:     newBaseService(options...),
		accountRepo:     accountRepo,
		transactionRepo: transactionRepo,
	}
}

var _ portssvc.AllowanceSvc = (*allowanceService)(nil)

func (s *allowanceService) ProcessWeeklyAllowances(ctx context.Context, dryRun bool) domain.AllowanceResult {
	result := domain.AllowanceResult{Errors: []string{}, DryRun: dryRun}
	logger := s.GetLogger(ctx).With(slog.Bool("dry_run", dryRun))
	logger.Info("Starting weekly allowance processing")

	accounts, err := s.accountRepo.ListAllowanceAccounts(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list allowance accounts")
		result.Errors = append(result.Errors, err.Error())
		return result
	}
	logger.Info("Found accounts with allowance enabled", slog.Int("count", len(accounts)))

	weekStart, weekEnd := calendar.ISOWeekWindow(s.Now())

	for _, account := range accounts {
		accLogger := logger.With(slog.String("account_id", account.AccountID), slog.String("name", account.Name))

		exists, err := s.transactionRepo.ExistsTransactionInWindow(ctx, account.AccountID, domain.OriginAllowance, weekStart, weekEnd)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("Account %s: %v", account.AccountID, err))
			accLogger.Error("Failed to check existing allowance", slog.String("error", err.Error()))
			continue
		}
		if exists {
			accLogger.Info("Skipping account, allowance already booked this week")
			result.AccountsSkipped++
			continue
		}

		amount := utils.FormatCents(account.RecurringAllowanceAmount)
		if dryRun {
			accLogger.Info("Would create allowance", slog.String("amount", amount))
			result.AccountsProcessed++
			continue
		}

		description := domain.AllowanceDescription
		txn := domain.Transaction{
			TransactionID: uuid.NewString(),
			AccountID:     account.AccountID,
			Description:   &description,
			Amount:        account.RecurringAllowanceAmount,
			IsPaid:        false,
			Origin:        domain.OriginAllowance,
			CreatedAt:     s.Now(),
		}
		if err := s.transactionRepo.SaveTransaction(ctx, txn); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("Account %s: %v", account.AccountID, err))
			accLogger.Error("Failed to create allowance", slog.String("error", err.Error()))
			continue
		}
		accLogger.Info("Created allowance", slog.String("amount", amount), slog.String("transaction_id", txn.TransactionID))
		result.AccountsProcessed++
	}

	result.Success = len(result.Errors) == 0
	logger.Info("Weekly allowance processing completed",
		slog.Int("processed", result.AccountsProcessed),
		slog.Int("skipped", result.AccountsSkipped),
		slog.Int("errors", len(result.Errors)))
	return result
}
