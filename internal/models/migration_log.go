package models

import "time"

// MigrationLog mirrors a row of migration_log.
type MigrationLog struct {
	ID                   string     `db:"id"`
	StartedAt            time.Time  `db:"started_at"`
	CompletedAt          *time.Time `db:"completed_at"`
	Status               string     `db:"status"`
	AccountsMigrated     int        `db:"accounts_migrated"`
	AccountsSkipped      int        `db:"accounts_skipped"`
	TransactionsMigrated int        `db:"transactions_migrated"`
	TransactionsSkipped  int        `db:"transactions_skipped"`
	ErrorMessage         *string    `db:"error_message"`
}
