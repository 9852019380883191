package models

import "time"

// Transaction mirrors a row of familienkasse_transaction.
type Transaction struct {
	ID          string    `db:"id"`
	AccountID   string    `db:"account_id"`
	Description *string   `db:"description"` // Nullable
	Amount      int64     `db:"amount"`
	IsPaid      bool      `db:"is_paid"`
	Origin      string    `db:"origin"`
	CreatedAt   time.Time `db:"created_at"`
}

// LegacyAccount mirrors a row of the legacy familienkasse_accounts table.
type LegacyAccount struct {
	ID   string `db:"id"`
	Name string `db:"name"`
}

// LegacyTransaction mirrors a row of the legacy familienkasse_transactions table.
type LegacyTransaction struct {
	ID          string     `db:"id"`
	AccountID   string     `db:"account_id"`
	Description *string    `db:"description"`
	Amount      int64      `db:"amount"`
	IsPaid      *bool      `db:"is_paid"`
	Created     *time.Time `db:"created"`
}
