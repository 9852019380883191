package mapping

import (
	"github.com/SscSPs/familienkasse/internal/core/domain"
	"github.com/SscSPs/familienkasse/internal/models"
)

// ToModelAccount converts a domain Account to a model Account
func ToModelAccount(d domain.Account) models.Account {
	return models.Account{
		ID:                        d.AccountID,
		UserID:                    d.UserID,
		Name:                      d.Name,
		RecurringAllowanceEnabled: d.RecurringAllowanceEnabled,
		RecurringAllowanceAmount:  d.RecurringAllowanceAmount,
		CreatedAt:                 d.CreatedAt,
		UpdatedAt:                 d.UpdatedAt,
	}
}

// ToDomainAccount converts a model Account to a domain Account
func ToDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		AccountID:                 m.ID,
		UserID:                    m.UserID,
		Name:                      m.Name,
		RecurringAllowanceEnabled: m.RecurringAllowanceEnabled,
		RecurringAllowanceAmount:  m.RecurringAllowanceAmount,
		Timestamps: domain.Timestamps{
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
	}
}

// ToDomainAccountSlice converts a slice of model Accounts to a slice of domain Accounts
func ToDomainAccountSlice(ms []models.Account) []domain.Account {
	ds := make([]domain.Account, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainAccount(m)
	}
	return ds
}

// ToDomainAccountWithBalance converts an aggregated balance row.
func ToDomainAccountWithBalance(m models.AccountBalance) domain.AccountWithBalance {
	return domain.AccountWithBalance{
		Account: domain.Account{
			AccountID:                 m.ID,
			UserID:                    m.UserID,
			Name:                      m.Name,
			RecurringAllowanceEnabled: m.RecurringAllowanceEnabled,
			RecurringAllowanceAmount:  m.RecurringAllowanceAmount,
			Timestamps: domain.Timestamps{
				CreatedAt: m.CreatedAt,
				UpdatedAt: m.UpdatedAt,
			},
		},
		Balance:     m.Balance,
		PaidBalance: m.PaidBalance,
	}
}

// ToDomainAccountWithBalanceSlice converts a slice of aggregated balance rows.
func ToDomainAccountWithBalanceSlice(ms []models.AccountBalance) []domain.AccountWithBalance {
	ds := make([]domain.AccountWithBalance, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainAccountWithBalance(m)
	}
	return ds
}
