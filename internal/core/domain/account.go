package domain

import "math"

// Amounts are integer cents stored in a 32-bit column.
const (
	MaxAmount int64 = math.MaxInt32
	MinAmount int64 = math.MinInt32
)

// MaxAccountNameLength is the longest display name an account may carry.
const MaxAccountNameLength = 100

// Account is a named ledger owned by exactly one user.
type Account struct {
	AccountID                 string `json:"accountID"`
	UserID                    string `json:"userID"`
	Name                      string `json:"name"`
	RecurringAllowanceEnabled bool   `json:"recurringAllowanceEnabled"`
	RecurringAllowanceAmount  int64  `json:"recurringAllowanceAmount"` // cents
	Timestamps
}

// OwnedBy reports whether the account belongs to userID.
func (a Account) OwnedBy(userID string) bool {
	return a.UserID == userID
}

// AllowanceDue reports whether the weekly allowance job should consider the account.
func (a Account) AllowanceDue() bool {
	return a.RecurringAllowanceEnabled && a.RecurringAllowanceAmount > 0
}

// AccountWithBalance is an account augmented with its derived balances.
// Balances are never stored.
type AccountWithBalance struct {
	Account
	Balance     int64 `json:"balance"`
	PaidBalance int64 `json:"paidBalance"`
}

// AccountPatch lists the mutable account fields. Nil means unchanged.
type AccountPatch struct {
	Name                      *string
	RecurringAllowanceEnabled *bool
	RecurringAllowanceAmount  *int64
}

// IsEmpty reports whether the patch changes nothing.
func (p AccountPatch) IsEmpty() bool {
	return p.Name == nil && p.RecurringAllowanceEnabled == nil && p.RecurringAllowanceAmount == nil
}

// Apply copies the set fields of p onto the account.
func (a *Account) Apply(p AccountPatch) {
	if p.Name != nil {
		a.Name = *p.Name
	}
	if p.RecurringAllowanceEnabled != nil {
		a.RecurringAllowanceEnabled = *p.RecurringAllowanceEnabled
	}
	if p.RecurringAllowanceAmount != nil {
		a.RecurringAllowanceAmount = *p.RecurringAllowanceAmount
	}
}
