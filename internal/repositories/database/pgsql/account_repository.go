package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/familienkasse/internal/apperrors"
	"github.com/SscSPs/familienkasse/internal/core/domain"
	portsrepo "github.com/SscSPs/familienkasse/internal/core/ports/repositories"
	"github.com/SscSPs/familienkasse/internal/models"
	"github.com/SscSPs/familienkasse/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const accountColumns = `id, user_id, name, recurring_allowance_enabled, recurring_allowance_amount, created_at, updated_at`

// balanceSelect aggregates both balances in one pass; accounts without
// transactions still appear through the LEFT JOIN with zero balances.
const balanceSelect = `
	SELECT a.id, a.user_id, a.name, a.recurring_allowance_enabled, a.recurring_allowance_amount,
	       a.created_at, a.updated_at,
	       COALESCE(SUM(t.amount), 0)::bigint AS balance,
	       COALESCE(SUM(t.amount) FILTER (WHERE t.is_paid), 0)::bigint AS paid_balance
	FROM familienkasse_account a
	LEFT JOIN familienkasse_transaction t ON t.account_id = a.id
`

type PgxAccountRepository struct {
	BaseRepository
}

// newPgxAccountRepository creates a new repository for account data.
func newPgxAccountRepository(pool *pgxpool.Pool) portsrepo.AccountRepositoryFacade {
	return &PgxAccountRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxAccountRepository implements portsrepo.AccountRepositoryFacade
var _ portsrepo.AccountRepositoryFacade = (*PgxAccountRepository)(nil)

// SaveAccount inserts a new account.
func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	m := mapping.ToModelAccount(account)
	query := `
		INSERT INTO familienkasse_account (` + accountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.ID, m.UserID, m.Name, m.RecurringAllowanceEnabled, m.RecurringAllowanceAmount, m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		return translateAccountWriteError(err, m)
	}
	return nil
}

// InsertAccountIfAbsent inserts the account unless its id is already taken.
func (r *PgxAccountRepository) InsertAccountIfAbsent(ctx context.Context, account domain.Account) (bool, error) {
	m := mapping.ToModelAccount(account)
	query := `
		INSERT INTO familienkasse_account (` + accountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO NOTHING;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		m.ID, m.UserID, m.Name, m.RecurringAllowanceEnabled, m.RecurringAllowanceAmount, m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		return false, translateAccountWriteError(err, m)
	}
	return cmdTag.RowsAffected() == 1, nil
}

func translateAccountWriteError(err error, m models.Account) error {
	switch {
	case isUniqueViolation(err):
		return fmt.Errorf("%w: account with ID %s already exists", apperrors.ErrDuplicate, m.ID)
	case isForeignKeyViolation(err):
		return fmt.Errorf("%w: user %s does not exist", apperrors.ErrValidation, m.UserID)
	default:
		return fmt.Errorf("failed to save account %s: %w", m.ID, err)
	}
}

// FindAccountByID retrieves an account by its ID.
func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM familienkasse_account WHERE id = $1;`

	rows, err := r.Pool.Query(ctx, query, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to query account %s: %w", accountID, err)
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.Account])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find account by ID %s: %w", accountID, err)
	}

	acc := mapping.ToDomainAccount(m)
	return &acc, nil
}

// FindAccountWithBalance retrieves one account with its aggregated balances.
func (r *PgxAccountRepository) FindAccountWithBalance(ctx context.Context, accountID string) (*domain.AccountWithBalance, error) {
	query := balanceSelect + ` WHERE a.id = $1 GROUP BY a.id;`

	rows, err := r.Pool.Query(ctx, query, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to query balance of account %s: %w", accountID, err)
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.AccountBalance])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find balance of account %s: %w", accountID, err)
	}

	acc := mapping.ToDomainAccountWithBalance(m)
	return &acc, nil
}

// ListAccountsWithBalances retrieves all accounts of a user ordered by name.
func (r *PgxAccountRepository) ListAccountsWithBalances(ctx context.Context, userID string) ([]domain.AccountWithBalance, error) {
	query := balanceSelect + ` WHERE a.user_id = $1 GROUP BY a.id ORDER BY a.name, a.id;`
	return r.listBalances(ctx, query, userID)
}

// ListAllAccountBalances retrieves the balances of every account.
func (r *PgxAccountRepository) ListAllAccountBalances(ctx context.Context) ([]domain.AccountWithBalance, error) {
	query := balanceSelect + ` GROUP BY a.id ORDER BY a.name, a.id;`
	return r.listBalances(ctx, query)
}

func (r *PgxAccountRepository) listBalances(ctx context.Context, query string, args ...any) ([]domain.AccountWithBalance, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query account balances: %w", err)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.AccountBalance])
	if err != nil {
		return nil, fmt.Errorf("failed to scan account balances: %w", err)
	}
	return mapping.ToDomainAccountWithBalanceSlice(ms), nil
}

// ListAllowanceAccounts retrieves accounts with an enabled, positive allowance.
func (r *PgxAccountRepository) ListAllowanceAccounts(ctx context.Context) ([]domain.Account, error) {
	query := `
		SELECT ` + accountColumns + `
		FROM familienkasse_account
		WHERE recurring_allowance_enabled = TRUE AND recurring_allowance_amount > 0
		ORDER BY created_at, id;
	`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query allowance accounts: %w", err)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Account])
	if err != nil {
		return nil, fmt.Errorf("failed to scan allowance accounts: %w", err)
	}
	return mapping.ToDomainAccountSlice(ms), nil
}

// UpdateAccount writes the mutable fields of an existing account.
func (r *PgxAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	m := mapping.ToModelAccount(account)
	query := `
		UPDATE familienkasse_account
		SET name = $2, recurring_allowance_enabled = $3, recurring_allowance_amount = $4, updated_at = $5
		WHERE id = $1;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, m.ID, m.Name, m.RecurringAllowanceEnabled, m.RecurringAllowanceAmount, m.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to update account %s: %w", m.ID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteAccount removes an account; its transactions go with it via ON DELETE CASCADE.
func (r *PgxAccountRepository) DeleteAccount(ctx context.Context, accountID string) error {
	cmdTag, err := r.Pool.Exec(ctx, `DELETE FROM familienkasse_account WHERE id = $1;`, accountID)
	if err != nil {
		return fmt.Errorf("failed to delete account %s: %w", accountID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
