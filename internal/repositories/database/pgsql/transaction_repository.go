package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SscSPs/familienkasse/internal/apperrors"
	"github.com/SscSPs/familienkasse/internal/core/domain"
	portsrepo "github.com/SscSPs/familienkasse/internal/core/ports/repositories"
	"github.com/SscSPs/familienkasse/internal/models"
	"github.com/SscSPs/familienkasse/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const transactionColumns = `id, account_id, description, amount, is_paid, origin, created_at`

type PgxTransactionRepository struct {
	BaseRepository
}

func newPgxTransactionRepository(pool *pgxpool.Pool) portsrepo.TransactionRepositoryFacade {
	return &PgxTransactionRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.TransactionRepositoryFacade = (*PgxTransactionRepository)(nil)

func (r *PgxTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction) error {
	m := mapping.ToModelTransaction(txn)
	query := `
		INSERT INTO familienkasse_transaction (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err := r.Pool.Exec(ctx, query, m.ID, m.AccountID, m.Description, m.Amount, m.IsPaid, m.Origin, m.CreatedAt)
	if err != nil {
		return translateTransactionWriteError(err, m)
	}
	return nil
}

// InsertTransactionIfAbsent inserts the transaction unless its id is already taken.
// The primary key arbitrates concurrent inserts of the same id.
func (r *PgxTransactionRepository) InsertTransactionIfAbsent(ctx context.Context, txn domain.Transaction) (bool, error) {
	m := mapping.ToModelTransaction(txn)
	query := `
		INSERT INTO familienkasse_transaction (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO NOTHING;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, m.ID, m.AccountID, m.Description, m.Amount, m.IsPaid, m.Origin, m.CreatedAt)
	if err != nil {
		return false, translateTransactionWriteError(err, m)
	}
	return cmdTag.RowsAffected() == 1, nil
}

func translateTransactionWriteError(err error, m models.Transaction) error {
	switch {
	case isUniqueViolation(err):
		return fmt.Errorf("%w: transaction with ID %s already exists", apperrors.ErrDuplicate, m.ID)
	case isForeignKeyViolation(err):
		return fmt.Errorf("%w: account %s does not exist", apperrors.ErrValidation, m.AccountID)
	default:
		return fmt.Errorf("failed to save transaction %s: %w", m.ID, err)
	}
}

func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM familienkasse_transaction WHERE id = $1;`

	rows, err := r.Pool.Query(ctx, query, transactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query transaction %s: %w", transactionID, err)
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.Transaction])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find transaction %s: %w", transactionID, err)
	}

	txn := mapping.ToDomainTransaction(m)
	return &txn, nil
}

// ListTransactionsByAccount returns the newest transactions first; id breaks ties.
func (r *PgxTransactionRepository) ListTransactionsByAccount(ctx context.Context, accountID string, limit, offset int) ([]domain.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM familienkasse_transaction
		WHERE account_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3;
	`
	rows, err := r.Pool.Query(ctx, query, accountID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions of account %s: %w", accountID, err)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Transaction])
	if err != nil {
		return nil, fmt.Errorf("failed to scan transactions of account %s: %w", accountID, err)
	}
	return mapping.ToDomainTransactionSlice(ms), nil
}

func (r *PgxTransactionRepository) CountTransactionsByAccount(ctx context.Context, accountID string) (int, error) {
	var count int
	err := r.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM familienkasse_transaction WHERE account_id = $1;`, accountID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count transactions of account %s: %w", accountID, err)
	}
	return count, nil
}

func (r *PgxTransactionRepository) ExistsTransactionInWindow(ctx context.Context, accountID string, origin domain.TransactionOrigin, from, to time.Time) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM familienkasse_transaction
			WHERE account_id = $1 AND origin = $2 AND created_at >= $3 AND created_at < $4
		);
	`
	var exists bool
	if err := r.Pool.QueryRow(ctx, query, accountID, string(origin), from, to).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check %s transactions of account %s: %w", origin, accountID, err)
	}
	return exists, nil
}

// UpdateTransaction writes the mutable fields; created_at and origin never change.
func (r *PgxTransactionRepository) UpdateTransaction(ctx context.Context, txn domain.Transaction) error {
	m := mapping.ToModelTransaction(txn)
	query := `
		UPDATE familienkasse_transaction
		SET description = $2, amount = $3, is_paid = $4
		WHERE id = $1;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, m.ID, m.Description, m.Amount, m.IsPaid)
	if err != nil {
		return fmt.Errorf("failed to update transaction %s: %w", m.ID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxTransactionRepository) DeleteTransaction(ctx context.Context, transactionID string) error {
	cmdTag, err := r.Pool.Exec(ctx, `DELETE FROM familienkasse_transaction WHERE id = $1;`, transactionID)
	if err != nil {
		return fmt.Errorf("failed to delete transaction %s: %w", transactionID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
