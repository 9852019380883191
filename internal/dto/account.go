package dto

import (
	"time"

	"github.com/SscSPs/familienkasse/internal/core/domain"
)

// CreateAccountRequest defines the data needed to create a new account.
type CreateAccountRequest struct {
	Name string `json:"name" binding:"required,notblank,max=100"`
}

// UpdateAccountRequest defines the data allowed for updating an account.
// Using pointers to differentiate between omitted fields and zero-value fields.
type UpdateAccountRequest struct {
	Name                      *string `json:"name" binding:"omitnil,notblank,max=100"`
	RecurringAllowanceEnabled *bool   `json:"recurringAllowanceEnabled"`
	RecurringAllowanceAmount  *int64  `json:"recurringAllowanceAmount" binding:"omitnil,min=0,max=2147483647"`
}

// ToPatch converts the request into a domain patch.
func (r UpdateAccountRequest) ToPatch() domain.AccountPatch {
	return domain.AccountPatch{
		Name:                      r.Name,
		RecurringAllowanceEnabled: r.RecurringAllowanceEnabled,
		RecurringAllowanceAmount:  r.RecurringAllowanceAmount,
	}
}

// AllowanceConfigRequest replaces both allowance settings of an account.
type AllowanceConfigRequest struct {
	RecurringAllowanceEnabled *bool  `json:"recurringAllowanceEnabled" binding:"required"`
	RecurringAllowanceAmount  *int64 `json:"recurringAllowanceAmount" binding:"required,min=0,max=2147483647"`
}

// ToPatch converts the request into a domain patch that sets both fields.
func (r AllowanceConfigRequest) ToPatch() domain.AccountPatch {
	return domain.AccountPatch{
		RecurringAllowanceEnabled: r.RecurringAllowanceEnabled,
		RecurringAllowanceAmount:  r.RecurringAllowanceAmount,
	}
}

// AccountResponse defines the data returned for a single account.
type AccountResponse struct {
	ID                        string    `json:"id"`
	UserID                    string    `json:"userId"`
	Name                      string    `json:"name"`
	RecurringAllowanceEnabled bool      `json:"recurringAllowanceEnabled"`
	RecurringAllowanceAmount  int64     `json:"recurringAllowanceAmount"`
	CreatedAt                 time.Time `json:"createdAt"`
	UpdatedAt                 time.Time `json:"updatedAt"`
}

// AccountWithBalanceResponse is an account with its derived balances.
type AccountWithBalanceResponse struct {
	AccountResponse
	Balance     int64 `json:"balance"`
	PaidBalance int64 `json:"paidBalance"`
}

// ToAccountResponse converts a domain.Account to an AccountResponse DTO.
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		ID:                        acc.AccountID,
		UserID:                    acc.UserID,
		Name:                      acc.Name,
		RecurringAllowanceEnabled: acc.RecurringAllowanceEnabled,
		RecurringAllowanceAmount:  acc.RecurringAllowanceAmount,
		CreatedAt:                 acc.CreatedAt,
		UpdatedAt:                 acc.UpdatedAt,
	}
}

// ToAccountWithBalanceResponse converts a domain.AccountWithBalance to its DTO.
func ToAccountWithBalanceResponse(acc *domain.AccountWithBalance) AccountWithBalanceResponse {
	return AccountWithBalanceResponse{
		AccountResponse: ToAccountResponse(&acc.Account),
		Balance:         acc.Balance,
		PaidBalance:     acc.PaidBalance,
	}
}

// ToListAccountsResponse converts a slice of accounts with balances.
func ToListAccountsResponse(accounts []domain.AccountWithBalance) []AccountWithBalanceResponse {
	resp := make([]AccountWithBalanceResponse, len(accounts))
	for i := range accounts {
		resp[i] = ToAccountWithBalanceResponse(&accounts[i])
	}
	return resp
}
