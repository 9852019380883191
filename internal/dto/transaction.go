package dto

import (
	"time"

	"github.com/SscSPs/familienkasse/internal/core/domain"
)

// CreateTransactionRequest defines the data needed to book a transaction.
type CreateTransactionRequest struct {
	Description string `json:"description" binding:"max=500"`
	Amount      *int64 `json:"amount" binding:"required,min=-2147483648,max=2147483647"`
	IsPaid      bool   `json:"isPaid"`
}

// UpdateTransactionRequest defines the data allowed for updating a transaction.
type UpdateTransactionRequest struct {
	Description *string `json:"description" binding:"omitnil,max=500"`
	Amount      *int64  `json:"amount" binding:"omitnil,min=-2147483648,max=2147483647"`
	IsPaid      *bool   `json:"isPaid"`
}

// ToPatch converts the request into a domain patch.
func (r UpdateTransactionRequest) ToPatch() domain.TransactionPatch {
	return domain.TransactionPatch{
		Description: r.Description,
		Amount:      r.Amount,
		IsPaid:      r.IsPaid,
	}
}

// ListTransactionsParams defines query parameters for listing transactions.
type ListTransactionsParams struct {
	Limit  *int `form:"limit" binding:"omitnil,min=0"`
	Offset *int `form:"offset" binding:"omitnil,min=0"`
}

// TransactionResponse defines the data returned for a single transaction.
type TransactionResponse struct {
	ID          string    `json:"id"`
	AccountID   string    `json:"accountId"`
	Description *string   `json:"description"`
	Amount      int64     `json:"amount"`
	IsPaid      bool      `json:"isPaid"`
	Origin      string    `json:"origin"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ListTransactionsResponse wraps one page of transactions with the total count.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	Total        int                   `json:"total"`
	Limit        int                   `json:"limit"`
	Offset       int                   `json:"offset"`
}

// ToTransactionResponse converts a domain.Transaction to its DTO.
func ToTransactionResponse(t *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:          t.TransactionID,
		AccountID:   t.AccountID,
		Description: t.Description,
		Amount:      t.Amount,
		IsPaid:      t.IsPaid,
		Origin:      string(t.Origin),
		CreatedAt:   t.CreatedAt,
	}
}

// ToListTransactionsResponse converts a domain page to its DTO.
func ToListTransactionsResponse(page *domain.TransactionPage) ListTransactionsResponse {
	txns := make([]TransactionResponse, len(page.Transactions))
	for i := range page.Transactions {
		txns[i] = ToTransactionResponse(&page.Transactions[i])
	}
	return ListTransactionsResponse{
		Transactions: txns,
		Total:        page.Total,
		Limit:        page.Limit,
		Offset:       page.Offset,
	}
}
