package services

import (
	"context"

	"github.com/SscSPs/familienkasse/internal/core/domain"
)

// MigrationSvc copies accounts and transactions from the legacy database.
type MigrationSvc interface {
	// RunMigration migrates every legacy account to targetUserID. Failures are
	// reported in the result, never returned.
	RunMigration(ctx context.Context, targetUserID string) domain.MigrationResult

	GetLatestMigrationLog(ctx context.Context) (*domain.MigrationLog, error)
	GetMigrationLog(ctx context.Context, logID string) (*domain.MigrationLog, error)
}
