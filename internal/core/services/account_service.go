package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/SscSPs/familienkasse/internal/apperrors"
	"github.com/SscSPs/familienkasse/internal/core/domain"
	portsrepo "github.com/SscSPs/familienkasse/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/familienkasse/internal/core/ports/services"
	"github.com/SscSPs/familienkasse/internal/dto"
	"github.com/google/uuid"
)

// accountService implements the AccountSvcFacade interface
type accountService struct {
	BaseService
	accountRepo portsrepo.AccountRepositoryFacade
}

// NewAccountService creates a new account service with the provided options
func NewAccountService(repo portsrepo.AccountRepositoryFacade, options ...ServiceOption) portssvc.AccountSvcFacade {
	return &accountService{
		BaseService: newBaseService(options...),
		accountRepo: repo,
	}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

func (s *accountService) ListAccountsWithBalances(ctx context.Context, userID string) ([]domain.AccountWithBalance, error) {
	accounts, err := s.accountRepo.ListAccountsWithBalances(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts", slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	return accounts, nil
}

func (s *accountService) GetAccountWithBalance(ctx context.Context, accountID string, userID string) (*domain.AccountWithBalance, error) {
	account, err := s.accountRepo.FindAccountWithBalance(ctx, accountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrNotFound
		}
		s.LogError(ctx, err, "Failed to get account", slog.String("account_id", accountID))
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	if !account.OwnedBy(userID) {
		s.LogDebug(ctx, "Account requested by non-owner", slog.String("account_id", accountID))
		return nil, apperrors.ErrNotFound
	}
	return account, nil
}

func (s *accountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, userID string) (*domain.Account, error) {
	name, err := normalizeAccountName(req.Name)
	if err != nil {
		return nil, err
	}

	now := s.Now()
	account := domain.Account{
		AccountID: uuid.NewString(),
		UserID:    userID,
		Name:      name,
		Timestamps: domain.Timestamps{
			CreatedAt: now,
			UpdatedAt: now,
		},
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		s.LogError(ctx, err, "Failed to save account", slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	s.LogInfo(ctx, "Account created", slog.String("account_id", account.AccountID))
	return &account, nil
}

func (s *accountService) UpdateAccount(ctx context.Context, accountID string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error) {
	patch := req.ToPatch()
	if patch.Name != nil {
		name, err := normalizeAccountName(*patch.Name)
		if err != nil {
			return nil, err
		}
		patch.Name = &name
	}
	return s.applyPatch(ctx, accountID, patch, userID)
}

func (s *accountService) UpdateAllowanceConfig(ctx context.Context, accountID string, req dto.AllowanceConfigRequest, userID string) (*domain.Account, error) {
	if req.RecurringAllowanceEnabled == nil || req.RecurringAllowanceAmount == nil {
		return nil, fmt.Errorf("%w: both allowance fields are required", apperrors.ErrValidation)
	}
	return s.applyPatch(ctx, accountID, req.ToPatch(), userID)
}

// normalizeAccountName trims the name and applies the HTTP binding rules for callers outside gin.
func normalizeAccountName(raw string) (string, error) {
	name := strings.TrimSpace(raw)
	if name == "" {
		return "", fmt.Errorf("%w: name must not be blank", apperrors.ErrValidation)
	}
	if utf8.RuneCountInString(name) > domain.MaxAccountNameLength {
		return "", fmt.Errorf("%w: name must be at most %d characters", apperrors.ErrValidation, domain.MaxAccountNameLength)
	}
	return name, nil
}

// applyPatch verifies ownership before writing anything.
func (s *accountService) applyPatch(ctx context.Context, accountID string, patch domain.AccountPatch, userID string) (*domain.Account, error) {
	account, err := s.findOwnedAccount(ctx, accountID, userID)
	if err != nil {
		return nil, err
	}

	if patch.RecurringAllowanceAmount != nil {
		if amount := *patch.RecurringAllowanceAmount; amount < 0 || amount > domain.MaxAmount {
			return nil, fmt.Errorf("%w: allowance amount must be between 0 and %d", apperrors.ErrValidation, domain.MaxAmount)
		}
	}

	if patch.IsEmpty() {
		return account, nil
	}

	account.Apply(patch)
	account.UpdatedAt = s.Now()

	if err := s.accountRepo.UpdateAccount(ctx, *account); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrNotFound
		}
		s.LogError(ctx, err, "Failed to update account", slog.String("account_id", accountID))
		return nil, fmt.Errorf("failed to update account: %w", err)
	}
	return account, nil
}

func (s *accountService) DeleteAccount(ctx context.Context, accountID string, userID string) error {
	if _, err := s.findOwnedAccount(ctx, accountID, userID); err != nil {
		return err
	}
	if err := s.accountRepo.DeleteAccount(ctx, accountID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.ErrNotFound
		}
		s.LogError(ctx, err, "Failed to delete account", slog.String("account_id", accountID))
		return fmt.Errorf("failed to delete account: %w", err)
	}
	s.LogInfo(ctx, "Account deleted", slog.String("account_id", accountID))
	return nil
}

func (s *accountService) findOwnedAccount(ctx context.Context, accountID string, userID string) (*domain.Account, error) {
	return findOwnedAccount(ctx, &s.BaseService, s.accountRepo, accountID, userID)
}

// findOwnedAccount resolves an account and hides it from everyone but its owner.
func findOwnedAccount(ctx context.Context, base *BaseService, repo portsrepo.AccountReader, accountID string, userID string) (*domain.Account, error) {
	account, err := repo.FindAccountByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrNotFound
		}
		base.LogError(ctx, err, "Failed to find account", slog.String("account_id", accountID))
		return nil, fmt.Errorf("failed to find account: %w", err)
	}
	if !account.OwnedBy(userID) {
		base.LogDebug(ctx, "Account requested by non-owner", slog.String("account_id", accountID))
		return nil, apperrors.ErrNotFound
	}
	return account, nil
}
