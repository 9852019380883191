package pgsql

import (
	"context"
	"fmt"

	"github.com/SscSPs/familienkasse/internal/core/domain"
	portsrepo "github.com/SscSPs/familienkasse/internal/core/ports/repositories"
	"github.com/SscSPs/familienkasse/internal/models"
	"github.com/SscSPs/familienkasse/internal/platform/database"
	"github.com/SscSPs/familienkasse/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxLegacySource reads the legacy familienkasse tables over a dedicated pool.
type PgxLegacySource struct {
	pool *pgxpool.Pool
}

var _ portsrepo.LegacySourceReader = (*PgxLegacySource)(nil)

// NewLegacySourceOpener returns an opener that connects to databaseURL with a
// single-connection pool each time a migration runs.
func NewLegacySourceOpener(databaseURL string) portsrepo.LegacySourceOpener {
	return func(ctx context.Context) (portsrepo.LegacySourceReader, error) {
		pool, err := database.NewPgxPool(ctx, databaseURL, true, database.WithMaxConns(1))
		if err != nil {
			return nil, fmt.Errorf("failed to connect to legacy database: %w", err)
		}
		return &PgxLegacySource{pool: pool}, nil
	}
}

func (s *PgxLegacySource) FetchAccounts(ctx context.Context) ([]domain.LegacyAccount, error) {
	rows, err := s.pool.Query(ctx, `SELECT id::text AS id, name FROM familienkasse_accounts ORDER BY id;`)
	if err != nil {
		return nil, fmt.Errorf("failed to query legacy accounts: %w", err)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.LegacyAccount])
	if err != nil {
		return nil, fmt.Errorf("failed to scan legacy accounts: %w", err)
	}
	return mapping.ToDomainLegacyAccounts(ms), nil
}

func (s *PgxLegacySource) FetchTransactions(ctx context.Context) ([]domain.LegacyTransaction, error) {
	query := `
		SELECT id::text AS id, account_id::text AS account_id, description, amount::bigint AS amount, is_paid, created
		FROM familienkasse_transactions
		ORDER BY created NULLS LAST, id;
	`
	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query legacy transactions: %w", err)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.LegacyTransaction])
	if err != nil {
		return nil, fmt.Errorf("failed to scan legacy transactions: %w", err)
	}
	return mapping.ToDomainLegacyTransactions(ms), nil
}

// Close releases the legacy connection.
func (s *PgxLegacySource) Close() {
	s.pool.Close()
}
