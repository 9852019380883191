package domain

import (
	"fmt"
	"time"

	"github.com/SscSPs/familienkasse/internal/apperrors"
)

// TransactionOrigin records what created a transaction.
type TransactionOrigin string

const (
	OriginManual    TransactionOrigin = "manual"
	OriginAllowance TransactionOrigin = "allowance"
	OriginMigration TransactionOrigin = "migration"
)

// MaxDescriptionLength is the longest description a transaction may carry.
const MaxDescriptionLength = 500

// Transaction is a signed cent amount booked against an account.
// Positive amounts are credits, negative amounts debits.
type Transaction struct {
	TransactionID string            `json:"transactionID"`
	AccountID     string            `json:"accountID"`
	Description   *string           `json:"description"`
	Amount        int64             `json:"amount"`
	IsPaid        bool              `json:"isPaid"`
	Origin        TransactionOrigin `json:"origin"`
	CreatedAt     time.Time         `json:"createdAt"`
}

// TransactionPatch lists the mutable transaction fields. Nil means unchanged.
// An empty Description clears the stored description.
type TransactionPatch struct {
	Description *string
	Amount      *int64
	IsPaid      *bool
}

// IsEmpty reports whether the patch changes nothing.
func (p TransactionPatch) IsEmpty() bool {
	return p.Description == nil && p.Amount == nil && p.IsPaid == nil
}

// Apply copies the set fields of p onto the transaction. CreatedAt is never touched.
func (t *Transaction) Apply(p TransactionPatch) {
	if p.Description != nil {
		t.Description = NormalizeDescription(*p.Description)
	}
	if p.Amount != nil {
		t.Amount = *p.Amount
	}
	if p.IsPaid != nil {
		t.IsPaid = *p.IsPaid
	}
}

// Validate checks the amount range the store enforces and the description
// length accepted from clients. Migrated rows are not validated.
func (t Transaction) Validate() error {
	if err := ValidateAmount(t.Amount); err != nil {
		return err
	}
	if t.Description != nil && len([]rune(*t.Description)) > MaxDescriptionLength {
		return fmt.Errorf("%w: description must be at most %d characters", apperrors.ErrValidation, MaxDescriptionLength)
	}
	return nil
}

// ValidateAmount checks that a cent amount fits the 32-bit store column.
func ValidateAmount(amount int64) error {
	if amount < MinAmount || amount > MaxAmount {
		return fmt.Errorf("%w: amount %d is out of range", apperrors.ErrValidation, amount)
	}
	return nil
}

// NormalizeDescription maps an empty description to nil.
func NormalizeDescription(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// TransactionPage is one page of an account's transactions, newest first.
type TransactionPage struct {
	Transactions []Transaction
	Total        int
	Limit        int
	Offset       int
}
