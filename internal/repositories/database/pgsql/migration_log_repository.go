package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/SscSPs/familienkasse/internal/apperrors"
	"github.com/SscSPs/familienkasse/internal/core/domain"
	portsrepo "github.com/SscSPs/familienkasse/internal/core/ports/repositories"
	"github.com/SscSPs/familienkasse/internal/models"
	"github.com/SscSPs/familienkasse/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const migrationLogColumns = `id, started_at, completed_at, status, accounts_migrated, accounts_skipped,
	transactions_migrated, transactions_skipped, error_message`

type PgxMigrationLogRepository struct {
	BaseRepository
}

func newPgxMigrationLogRepository(pool *pgxpool.Pool) portsrepo.MigrationLogRepositoryFacade {
	return &PgxMigrationLogRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.MigrationLogRepositoryFacade = (*PgxMigrationLogRepository)(nil)

func (r *PgxMigrationLogRepository) SaveMigrationLog(ctx context.Context, log domain.MigrationLog) error {
	m := mapping.ToModelMigrationLog(log)
	query := `
		INSERT INTO migration_log (` + migrationLogColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.ID, m.StartedAt, m.CompletedAt, m.Status,
		m.AccountsMigrated, m.AccountsSkipped, m.TransactionsMigrated, m.TransactionsSkipped,
		m.ErrorMessage,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: migration log %s already exists", apperrors.ErrDuplicate, m.ID)
		}
		return fmt.Errorf("failed to save migration log %s: %w", m.ID, err)
	}
	return nil
}

// UpdateMigrationLog sets only the fields present in update.
func (r *PgxMigrationLogRepository) UpdateMigrationLog(ctx context.Context, logID string, update domain.MigrationLogUpdate) error {
	sets := make([]string, 0, 7)
	args := []any{logID}
	add := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if update.Status != nil {
		add("status", string(*update.Status))
	}
	if update.CompletedAt != nil {
		add("completed_at", *update.CompletedAt)
	}
	if update.AccountsMigrated != nil {
		add("accounts_migrated", *update.AccountsMigrated)
	}
	if update.AccountsSkipped != nil {
		add("accounts_skipped", *update.AccountsSkipped)
	}
	if update.TransactionsMigrated != nil {
		add("transactions_migrated", *update.TransactionsMigrated)
	}
	if update.TransactionsSkipped != nil {
		add("transactions_skipped", *update.TransactionsSkipped)
	}
	if update.ErrorMessage != nil {
		add("error_message", *update.ErrorMessage)
	}
	if len(sets) == 0 {
		return nil
	}

	query := `UPDATE migration_log SET ` + strings.Join(sets, ", ") + ` WHERE id = $1;`
	cmdTag, err := r.Pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update migration log %s: %w", logID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxMigrationLogRepository) FindMigrationLogByID(ctx context.Context, logID string) (*domain.MigrationLog, error) {
	query := `SELECT ` + migrationLogColumns + ` FROM migration_log WHERE id = $1;`
	return r.findOne(ctx, query, logID)
}

func (r *PgxMigrationLogRepository) FindLatestMigrationLog(ctx context.Context) (*domain.MigrationLog, error) {
	query := `SELECT ` + migrationLogColumns + ` FROM migration_log ORDER BY started_at DESC, id DESC LIMIT 1;`
	return r.findOne(ctx, query)
}

func (r *PgxMigrationLogRepository) findOne(ctx context.Context, query string, args ...any) (*domain.MigrationLog, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query migration log: %w", err)
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.MigrationLog])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan migration log: %w", err)
	}
	log := mapping.ToDomainMigrationLog(m)
	return &log, nil
}
