package repositories

import (
	"context"

	"github.com/SscSPs/familienkasse/internal/core/domain"
)

// MigrationLogRepositoryFacade persists the audit trail of legacy migration runs.
type MigrationLogRepositoryFacade interface {
	SaveMigrationLog(ctx context.Context, log domain.MigrationLog) error
	UpdateMigrationLog(ctx context.Context, logID string, update domain.MigrationLogUpdate) error
	FindMigrationLogByID(ctx context.Context, logID string) (*domain.MigrationLog, error)
	// FindLatestMigrationLog returns the most recently started run.
	FindLatestMigrationLog(ctx context.Context) (*domain.MigrationLog, error)
}
