package mapping

import (
	"github.com/SscSPs/familienkasse/internal/core/domain"
	"github.com/SscSPs/familienkasse/internal/models"
)

// ToModelTransaction converts a domain Transaction to a model Transaction
func ToModelTransaction(d domain.Transaction) models.Transaction {
	origin := d.Origin
	if origin == "" {
		origin = domain.OriginManual
	}
	return models.Transaction{
		ID:          d.TransactionID,
		AccountID:   d.AccountID,
		Description: d.Description,
		Amount:      d.Amount,
		IsPaid:      d.IsPaid,
		Origin:      string(origin),
		CreatedAt:   d.CreatedAt,
	}
}

// ToDomainTransaction converts a model Transaction to a domain Transaction
func ToDomainTransaction(m models.Transaction) domain.Transaction {
	return domain.Transaction{
		TransactionID: m.ID,
		AccountID:     m.AccountID,
		Description:   m.Description,
		Amount:        m.Amount,
		IsPaid:        m.IsPaid,
		Origin:        domain.TransactionOrigin(m.Origin),
		CreatedAt:     m.CreatedAt,
	}
}

// ToDomainTransactionSlice converts a slice of model Transactions to domain Transactions
func ToDomainTransactionSlice(ms []models.Transaction) []domain.Transaction {
	ds := make([]domain.Transaction, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainTransaction(m)
	}
	return ds
}

// ToDomainLegacyAccounts converts legacy account rows.
func ToDomainLegacyAccounts(ms []models.LegacyAccount) []domain.LegacyAccount {
	ds := make([]domain.LegacyAccount, len(ms))
	for i, m := range ms {
		ds[i] = domain.LegacyAccount{ID: m.ID, Name: m.Name}
	}
	return ds
}

// ToDomainLegacyTransactions converts legacy transaction rows.
func ToDomainLegacyTransactions(ms []models.LegacyTransaction) []domain.LegacyTransaction {
	ds := make([]domain.LegacyTransaction, len(ms))
	for i, m := range ms {
		ds[i] = domain.LegacyTransaction{
			ID:          m.ID,
			AccountID:   m.AccountID,
			Description: m.Description,
			Amount:      m.Amount,
			IsPaid:      m.IsPaid,
			Created:     m.Created,
		}
	}
	return ds
}
