package repositories

import (
	"context"

	"github.com/SscSPs/familienkasse/internal/core/domain"
)

// LegacySourceReader reads the two tables of the legacy database.
type LegacySourceReader interface {
	FetchAccounts(ctx context.Context) ([]domain.LegacyAccount, error)
	FetchTransactions(ctx context.Context) ([]domain.LegacyTransaction, error)
	Close()
}

// LegacySourceOpener connects to the legacy database for one migration run.
type LegacySourceOpener func(ctx context.Context) (LegacySourceReader, error)
