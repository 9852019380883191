package domain

import "time"

// MigrationStatus is the lifecycle state of a legacy migration run.
type MigrationStatus string

const (
	MigrationRunning   MigrationStatus = "running"
	MigrationCompleted MigrationStatus = "completed"
	MigrationFailed    MigrationStatus = "failed"
)

// MigrationLog is the audit row written for every migration run.
type MigrationLog struct {
	ID                   string          `json:"id"`
	StartedAt            time.Time       `json:"startedAt"`
	CompletedAt          *time.Time      `json:"completedAt"`
	Status               MigrationStatus `json:"status"`
	AccountsMigrated     int             `json:"accountsMigrated"`
	AccountsSkipped      int             `json:"accountsSkipped"`
	TransactionsMigrated int             `json:"transactionsMigrated"`
	TransactionsSkipped  int             `json:"transactionsSkipped"`
	ErrorMessage         *string         `json:"errorMessage"`
}

// MigrationLogUpdate carries the fields changed on a migration log row. Nil means unchanged.
type MigrationLogUpdate struct {
	Status               *MigrationStatus
	CompletedAt          *time.Time
	AccountsMigrated     *int
	AccountsSkipped      *int
	TransactionsMigrated *int
	TransactionsSkipped  *int
	ErrorMessage         *string
}

// MigrationResult summarises one migration run.
type MigrationResult struct {
	Success              bool     `json:"success"`
	LogID                string   `json:"logId,omitempty"`
	AccountsMigrated     int      `json:"accountsMigrated"`
	AccountsSkipped      int      `json:"accountsSkipped"`
	TransactionsMigrated int      `json:"transactionsMigrated"`
	TransactionsSkipped  int      `json:"transactionsSkipped"`
	Errors               []string `json:"errors"`
}

// LegacyAccount is a row of the legacy familienkasse_accounts table.
type LegacyAccount struct {
	ID   string
	Name string
}

// LegacyTransaction is a row of the legacy familienkasse_transactions table.
type LegacyTransaction struct {
	ID          string
	AccountID   string
	Description *string
	Amount      int64
	IsPaid      *bool
	Created     *time.Time
}

// ToTransaction maps a legacy row onto the current model.
// A missing paid flag becomes false and a missing timestamp becomes now.
func (l LegacyTransaction) ToTransaction(now time.Time) Transaction {
	t := Transaction{
		TransactionID: l.ID,
		AccountID:     l.AccountID,
		Description:   l.Description,
		Amount:        l.Amount,
		Origin:        OriginMigration,
		CreatedAt:     now,
	}
	if l.IsPaid != nil {
		t.IsPaid = *l.IsPaid
	}
	if l.Created != nil {
		t.CreatedAt = *l.Created
	}
	return t
}
