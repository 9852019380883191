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
	"github.com/SscSPs/familienkasse/internal/utils"
	"github.com/google/uuid"
)

// ErrLegacySourceNotConfigured is returned when no legacy connection string was configured.
var ErrLegacySourceNotConfigured = errors.New("LEGACY_DATABASE_URL is not configured")

// migrationService implements the MigrationSvc interface
type migrationService struct {
	BaseService
	accountRepo      portsrepo.AccountRepositoryFacade
	transactionRepo  portsrepo.TransactionWriter
	migrationLogRepo portsrepo.MigrationLogRepositoryFacade
	openSource       portsrepo.LegacySourceOpener
}

// NewMigrationService creates a new migration service. openSource may be nil
// when no legacy database is configured; runs then fail immediately.
func NewMigrationService(
	accountRepo portsrepo.AccountRepositoryFacade,
	transactionRepo portsrepo.TransactionWriter,
	migrationLogRepo portsrepo.MigrationLogRepositoryFacade,
	openSource portsrepo.LegacySourceOpener,
	options ...ServiceOption,
) portssvc.MigrationSvc {
	return &migrationService{
		BaseService:      newBaseService(options...),
		accountRepo:      accountRepo,
		transactionRepo:  transactionRepo,
		migrationLogRepo: migrationLogRepo,
		openSource:       openSource,
	}
}

var _ portssvc.MigrationSvc = (*migrationService)(nil)

// migrationProgress accumulates the counters of one run.
type migrationProgress struct {
	logID                string
	accountsMigrated     int
	accountsSkipped      int
	transactionsMigrated int
	transactionsSkipped  int
}

func (p *migrationProgress) result(success bool, errs []string) domain.MigrationResult {
	if errs == nil {
		errs = []string{}
	}
	return domain.MigrationResult{
		Success:              success,
		LogID:                p.logID,
		AccountsMigrated:     p.accountsMigrated,
		AccountsSkipped:      p.accountsSkipped,
		TransactionsMigrated: p.transactionsMigrated,
		TransactionsSkipped:  p.transactionsSkipped,
		Errors:               errs,
	}
}

func (s *migrationService) RunMigration(ctx context.Context, targetUserID string) domain.MigrationResult {
	progress := &migrationProgress{}

	if s.openSource == nil {
		return progress.result(false, []string{ErrLegacySourceNotConfigured.Error()})
	}
	if targetUserID == "" {
		return progress.result(false, []string{"target user ID is required"})
	}

	log := domain.MigrationLog{
		ID:        uuid.NewString(),
		StartedAt: s.Now(),
		Status:    domain.MigrationRunning,
	}
	if err := s.migrationLogRepo.SaveMigrationLog(ctx, log); err != nil {
		s.LogError(ctx, err, "Failed to create migration log")
		return progress.result(false, []string{fmt.Sprintf("failed to create migration log: %v", err)})
	}
	progress.logID = log.ID
	s.LogInfo(ctx, "Migration started", slog.String("log_id", log.ID), slog.String("target_user_id", targetUserID))

	if err := s.migrate(ctx, progress, targetUserID); err != nil {
		s.LogError(ctx, err, "Migration failed", slog.String("log_id", log.ID))
		s.markFailed(ctx, log.ID, err.Error())
		return progress.result(false, []string{err.Error()})
	}

	status := domain.MigrationCompleted
	completedAt := s.Now()
	if err := s.migrationLogRepo.UpdateMigrationLog(ctx, log.ID, domain.MigrationLogUpdate{Status: &status, CompletedAt: &completedAt}); err != nil {
		s.LogError(ctx, err, "Failed to mark migration log as completed", slog.String("log_id", log.ID))
		msg := fmt.Sprintf("failed to complete migration log: %v", err)
		s.markFailed(ctx, log.ID, msg)
		return progress.result(false, []string{msg})
	}

	s.LogInfo(ctx, "Migration completed",
		slog.String("log_id", log.ID),
		slog.Int("accounts_migrated", progress.accountsMigrated),
		slog.Int("accounts_skipped", progress.accountsSkipped),
		slog.Int("transactions_migrated", progress.transactionsMigrated),
		slog.Int("transactions_skipped", progress.transactionsSkipped))
	return progress.result(true, nil)
}

// markFailed records a failed run. The caller's context may already be
// cancelled; the failure is still written.
func (s *migrationService) markFailed(ctx context.Context, logID string, msg string) {
	status := domain.MigrationFailed
	completedAt := s.Now()
	update := domain.MigrationLogUpdate{
		Status:       &status,
		CompletedAt:  &completedAt,
		ErrorMessage: &msg,
	}
	if err := s.migrationLogRepo.UpdateMigrationLog(context.WithoutCancel(ctx), logID, update); err != nil {
		s.LogError(ctx, err, "Failed to mark migration log as failed", slog.String("log_id", logID))
	}
}

// migrate runs the copy phases in order and stops at the first error.
func (s *migrationService) migrate(ctx context.Context, progress *migrationProgress, targetUserID string) error {
	source, err := s.openSource(ctx)
	if err != nil {
		return fmt.Errorf("failed to connect to legacy database: %w", err)
	}
	defer func() {
		source.Close()
		s.LogDebug(ctx, "Closed legacy database connection")
	}()

	if err := s.migrateAccounts(ctx, source, progress, targetUserID); err != nil {
		return err
	}
	if err := s.migrateTransactions(ctx, source, progress); err != nil {
		return err
	}
	s.logBalances(ctx)
	return nil
}

func (s *migrationService) migrateAccounts(ctx context.Context, source portsrepo.LegacySourceReader, progress *migrationProgress, targetUserID string) error {
	accounts, err := source.FetchAccounts(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch legacy accounts: %w", err)
	}
	s.LogInfo(ctx, "Fetched legacy accounts", slog.Int("count", len(accounts)))

	for _, legacy := range accounts {
		now := s.Now()
		account := domain.Account{
			AccountID: legacy.ID,
			UserID:    targetUserID,
			Name:      legacy.Name,
			Timestamps: domain.Timestamps{
				CreatedAt: now,
				UpdatedAt: now,
			},
		}
		inserted, err := s.accountRepo.InsertAccountIfAbsent(ctx, account)
		if err != nil {
			return fmt.Errorf("failed to migrate account %s: %w", legacy.ID, err)
		}
		if inserted {
			progress.accountsMigrated++
			s.LogDebug(ctx, "Migrated account", slog.String("account_id", legacy.ID), slog.String("name", legacy.Name))
		} else {
			progress.accountsSkipped++
			s.LogDebug(ctx, "Skipped existing account", slog.String("account_id", legacy.ID))
		}
	}

	migrated, skipped := progress.accountsMigrated, progress.accountsSkipped
	return s.updateCounters(ctx, progress.logID, domain.MigrationLogUpdate{
		AccountsMigrated: &migrated,
		AccountsSkipped:  &skipped,
	})
}

func (s *migrationService) migrateTransactions(ctx context.Context, source portsrepo.LegacySourceReader, progress *migrationProgress) error {
	txns, err := source.FetchTransactions(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch legacy transactions: %w", err)
	}
	s.LogInfo(ctx, "Fetched legacy transactions", slog.Int("count", len(txns)))

	for _, legacy := range txns {
		txn := legacy.ToTransaction(s.Now())
		inserted, err := s.transactionRepo.InsertTransactionIfAbsent(ctx, txn)
		if err != nil {
			return fmt.Errorf("failed to migrate transaction %s: %w", legacy.ID, err)
		}
		if inserted {
			progress.transactionsMigrated++
		} else {
			progress.transactionsSkipped++
		}
	}

	migrated, skipped := progress.transactionsMigrated, progress.transactionsSkipped
	return s.updateCounters(ctx, progress.logID, domain.MigrationLogUpdate{
		TransactionsMigrated: &migrated,
		TransactionsSkipped:  &skipped,
	})
}

func (s *migrationService) updateCounters(ctx context.Context, logID string, update domain.MigrationLogUpdate) error {
	if err := s.migrationLogRepo.UpdateMigrationLog(ctx, logID, update); err != nil {
		return fmt.Errorf("failed to update migration log: %w", err)
	}
	return nil
}

// logBalances recomputes every account balance for the operator. It never fails the run.
func (s *migrationService) logBalances(ctx context.Context) {
	balances, err := s.accountRepo.ListAllAccountBalances(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to validate balances")
		return
	}
	for _, acc := range balances {
		s.LogInfo(ctx, "Account balance",
			slog.String("account_id", acc.AccountID),
			slog.String("name", acc.Name),
			slog.String("balance", utils.FormatCents(acc.Balance)))
	}
	s.LogInfo(ctx, "Validated balances", slog.Int("accounts", len(balances)))
}

func (s *migrationService) GetLatestMigrationLog(ctx context.Context) (*domain.MigrationLog, error) {
	log, err := s.migrationLogRepo.FindLatestMigrationLog(ctx)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrNotFound
		}
		s.LogError(ctx, err, "Failed to get latest migration log")
		return nil, fmt.Errorf("failed to get latest migration log: %w", err)
	}
	return log, nil
}

func (s *migrationService) GetMigrationLog(ctx context.Context, logID string) (*domain.MigrationLog, error) {
	log, err := s.migrationLogRepo.FindMigrationLogByID(ctx, logID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrNotFound
		}
		s.LogError(ctx, err, "Failed to get migration log", slog.String("log_id", logID))
		return nil, fmt.Errorf("failed to get migration log: %w", err)
	}
	return log, nil
}
