package models

import "time"

// Account mirrors a row of familienkasse_account.
type Account struct {
	ID                        string    `db:"id"`
	UserID                    string    `db:"user_id"`
	Name                      string    `db:"name"`
	RecurringAllowanceEnabled bool      `db:"recurring_allowance_enabled"`
	RecurringAllowanceAmount  int64     `db:"recurring_allowance_amount"`
	CreatedAt                 time.Time `db:"created_at"`
	UpdatedAt                 time.Time `db:"updated_at"`
}

// AccountBalance is an account row joined with its aggregated balances.
type AccountBalance struct {
	ID                        string    `db:"id"`
	UserID                    string    `db:"user_id"`
	Name                      string    `db:"name"`
	RecurringAllowanceEnabled bool      `db:"recurring_allowance_enabled"`
	RecurringAllowanceAmount  int64     `db:"recurring_allowance_amount"`
	CreatedAt                 time.Time `db:"created_at"`
	UpdatedAt                 time.Time `db:"updated_at"`
	Balance                   int64     `db:"balance"`
	PaidBalance               int64     `db:"paid_balance"`
}
