package mapping

import (
	"github.com/SscSPs/familienkasse/internal/core/domain"
	"github.com/SscSPs/familienkasse/internal/models"
)

// ToModelMigrationLog converts a domain MigrationLog to a model MigrationLog
func ToModelMigrationLog(d domain.MigrationLog) models.MigrationLog {
	return models.MigrationLog{
		ID:                   d.ID,
		StartedAt:            d.StartedAt,
		CompletedAt:          d.CompletedAt,
		Status:               string(d.Status),
		AccountsMigrated:     d.AccountsMigrated,
		AccountsSkipped:      d.AccountsSkipped,
		TransactionsMigrated: d.TransactionsMigrated,
		TransactionsSkipped:  d.TransactionsSkipped,
		ErrorMessage:         d.ErrorMessage,
	}
}

// ToDomainMigrationLog converts a model MigrationLog to a domain MigrationLog
func ToDomainMigrationLog(m models.MigrationLog) domain.MigrationLog {
	return domain.MigrationLog{
		ID:                   m.ID,
		StartedAt:            m.StartedAt,
		CompletedAt:          m.CompletedAt,
		Status:               domain.MigrationStatus(m.Status),
		AccountsMigrated:     m.AccountsMigrated,
		AccountsSkipped:      m.AccountsSkipped,
		TransactionsMigrated: m.TransactionsMigrated,
		TransactionsSkipped:  m.TransactionsSkipped,
		ErrorMessage:         m.ErrorMessage,
	}
}
