package services_test

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/SscSPs/familienkasse/internal/apperrors"
	"github.com/SscSPs/familienkasse/internal/core/domain"
	portsrepo "github.com/SscSPs/familienkasse/internal/core/ports/repositories"
)

// memStore is an in-memory implementation of every repository port.
// It mirrors the constraints of the SQL schema that the services rely on.
type memStore struct {
	mu       sync.Mutex
	accounts map[string]domain.Account
	txns     map[string]domain.Transaction
	logs     map[string]domain.MigrationLog
	users    map[string]domain.User
}

func newMemStore() *memStore {
	return &memStore{
		accounts: map[string]domain.Account{},
		txns:     map[string]domain.Transaction{},
		logs:     map[string]domain.MigrationLog{},
		users:    map[string]domain.User{},
	}
}

var (
	_ portsrepo.AccountRepositoryFacade      = (*memStore)(nil)
	_ portsrepo.TransactionRepositoryFacade  = (*memStore)(nil)
	_ portsrepo.MigrationLogRepositoryFacade = (*memStore)(nil)
	_ portsrepo.UserRepositoryFacade         = (*memStore)(nil)
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

// --- accounts ---

func (m *memStore) SaveAccount(_ context.Context, a domain.Account) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.accounts[a.AccountID]; ok {
		return apperrors.ErrDuplicate
	}
	m.accounts[a.AccountID] = a
	return nil
}

func (m *memStore) InsertAccountIfAbsent(_ context.Context, a domain.Account) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.accounts[a.AccountID]; ok {
		return false, nil
	}
	m.accounts[a.AccountID] = a
	return true, nil
}

func (m *memStore) UpdateAccount(_ context.Context, a domain.Account) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.accounts[a.AccountID]; !ok {
		return apperrors.ErrNotFound
	}
	m.accounts[a.AccountID] = a
	return nil
}

func (m *memStore) DeleteAccount(_ context.Context, accountID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.accounts[accountID]; !ok {
		return apperrors.ErrNotFound
	}
	delete(m.accounts, accountID)
	for id, t := range m.txns {
		if t.AccountID == accountID {
			delete(m.txns, id)
		}
	}
	return nil
}

func (m *memStore) FindAccountByID(_ context.Context, accountID string) (*domain.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.accounts[accountID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &a, nil
}

func (m *memStore) withBalance(a domain.Account) domain.AccountWithBalance {
	res := domain.AccountWithBalance{Account: a}
	for _, t := range m.txns {
		if t.AccountID != a.AccountID {
			continue
		}
		res.Balance += t.Amount
		if t.IsPaid {
			res.PaidBalance += t.Amount
		}
	}
	return res
}

func (m *memStore) FindAccountWithBalance(_ context.Context, accountID string) (*domain.AccountWithBalance, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.accounts[accountID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	res := m.withBalance(a)
	return &res, nil
}

func (m *memStore) listBalances(keep func(domain.Account) bool) []domain.AccountWithBalance {
	m.mu.Lock()
	defer m.mu.Unlock()
	res := []domain.AccountWithBalance{}
	for _, a := range m.accounts {
		if keep(a) {
			res = append(res, m.withBalance(a))
		}
	}
	sort.Slice(res, func(i, j int) bool {
		if res[i].Name != res[j].Name {
			return res[i].Name < res[j].Name
		}
		return res[i].AccountID < res[j].AccountID
	})
	return res
}

func (m *memStore) ListAccountsWithBalances(_ context.Context, userID string) ([]domain.AccountWithBalance, error) {
	return m.listBalances(func(a domain.Account) bool { return a.UserID == userID }), nil
}

func (m *memStore) ListAllAccountBalances(_ context.Context) ([]domain.AccountWithBalance, error) {
	return m.listBalances(func(domain.Account) bool { return true }), nil
}

func (m *memStore) ListAllowanceAccounts(_ context.Context) ([]domain.Account, error) {
	res := []domain.Account{}
	for _, a := range m.listBalances(func(a domain.Account) bool { return a.AllowanceDue() }) {
		res = append(res, a.Account)
	}
	return res, nil
}

// --- transactions ---

func (m *memStore) SaveTransaction(_ context.Context, t domain.Transaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.txns[t.TransactionID]; ok {
		return apperrors.ErrDuplicate
	}
	if _, ok := m.accounts[t.AccountID]; !ok {
		return fmt.Errorf("%w: account %s does not exist", apperrors.ErrValidation, t.AccountID)
	}
	m.txns[t.TransactionID] = t
	return nil
}

func (m *memStore) InsertTransactionIfAbsent(_ context.Context, t domain.Transaction) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.txns[t.TransactionID]; ok {
		return false, nil
	}
	if _, ok := m.accounts[t.AccountID]; !ok {
		return false, fmt.Errorf("%w: account %s does not exist", apperrors.ErrValidation, t.AccountID)
	}
	m.txns[t.TransactionID] = t
	return true, nil
}

func (m *memStore) UpdateTransaction(_ context.Context, t domain.Transaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored, ok := m.txns[t.TransactionID]
	if !ok {
		return apperrors.ErrNotFound
	}
	stored.Description = t.Description
	stored.Amount = t.Amount
	stored.IsPaid = t.IsPaid
	m.txns[t.TransactionID] = stored
	return nil
}

func (m *memStore) DeleteTransaction(_ context.Context, transactionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.txns[transactionID]; !ok {
		return apperrors.ErrNotFound
	}
	delete(m.txns, transactionID)
	return nil
}

func (m *memStore) FindTransactionByID(_ context.Context, transactionID string) (*domain.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.txns[transactionID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &t, nil
}

func (m *memStore) accountTxns(accountID string) []domain.Transaction {
	res := []domain.Transaction{}
	for _, t := range m.txns {
		if t.AccountID == accountID {
			res = append(res, t)
		}
	}
	return res
}

func (m *memStore) ListTransactionsByAccount(_ context.Context, accountID string, limit, offset int) ([]domain.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	res := m.accountTxns(accountID)
	sort.Slice(res, func(i, j int) bool {
		if !res[i].CreatedAt.Equal(res[j].CreatedAt) {
			return res[i].CreatedAt.After(res[j].CreatedAt)
		}
		return res[i].TransactionID > res[j].TransactionID
	})
	if offset >= len(res) {
		return []domain.Transaction{}, nil
	}
	res = res[offset:]
	if limit < len(res) {
		res = res[:limit]
	}
	return res, nil
}

func (m *memStore) CountTransactionsByAccount(_ context.Context, accountID string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.accountTxns(accountID)), nil
}

func (m *memStore) ExistsTransactionInWindow(_ context.Context, accountID string, origin domain.TransactionOrigin, from, to time.Time) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, t := range m.accountTxns(accountID) {
		if t.Origin == origin && !t.CreatedAt.Before(from) && t.CreatedAt.Before(to) {
			return true, nil
		}
	}
	return false, nil
}

// --- migration logs ---

func (m *memStore) SaveMigrationLog(_ context.Context, l domain.MigrationLog) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.logs[l.ID] = l
	return nil
}

func (m *memStore) UpdateMigrationLog(_ context.Context, logID string, u domain.MigrationLogUpdate) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	l, ok := m.logs[logID]
	if !ok {
		return apperrors.ErrNotFound
	}
	if u.Status != nil {
		l.Status = *u.Status
	}
	if u.CompletedAt != nil {
		l.CompletedAt = u.CompletedAt
	}
	if u.AccountsMigrated != nil {
		l.AccountsMigrated = *u.AccountsMigrated
	}
	if u.AccountsSkipped != nil {
		l.AccountsSkipped = *u.AccountsSkipped
	}
	if u.TransactionsMigrated != nil {
		l.TransactionsMigrated = *u.TransactionsMigrated
	}
	if u.TransactionsSkipped != nil {
		l.TransactionsSkipped = *u.TransactionsSkipped
	}
	if u.ErrorMessage != nil {
		l.ErrorMessage = u.ErrorMessage
	}
	m.logs[logID] = l
	return nil
}

func (m *memStore) FindMigrationLogByID(_ context.Context, logID string) (*domain.MigrationLog, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	l, ok := m.logs[logID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &l, nil
}

func (m *memStore) FindLatestMigrationLog(_ context.Context) (*domain.MigrationLog, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var latest *domain.MigrationLog
	for _, l := range m.logs {
		if latest == nil || l.StartedAt.After(latest.StartedAt) {
			latest = &l
		}
	}
	if latest == nil {
		return nil, apperrors.ErrNotFound
	}
	return latest, nil
}

// --- users ---

func (m *memStore) SaveUser(_ context.Context, u domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.users {
		if existing.Email == u.Email {
			return apperrors.ErrDuplicate
		}
	}
	m.users[u.UserID] = u
	return nil
}

func (m *memStore) UpdateUser(_ context.Context, u domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[u.UserID]; !ok {
		return apperrors.ErrNotFound
	}
	m.users[u.UserID] = u
	return nil
}

func (m *memStore) FindUserByID(_ context.Context, userID string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[userID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &u, nil
}

func (m *memStore) FindUserByEmail(_ context.Context, email string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (m *memStore) FindUsers(_ context.Context, limit, offset int) ([]domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	res := make([]domain.User, 0, len(m.users))
	for _, u := range m.users {
		res = append(res, u)
	}
	sort.Slice(res, func(i, j int) bool { return res[i].CreatedAt.Before(res[j].CreatedAt) })
	if offset >= len(res) {
		return []domain.User{}, nil
	}
	res = res[offset:]
	if limit < len(res) {
		res = res[:limit]
	}
	return res, nil
}

func (m *memStore) CountUsers(_ context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.users), nil
}

// fakeLegacySource serves fixed legacy rows and records whether it was closed.
type fakeLegacySource struct {
	accounts   []domain.LegacyAccount
	txns       []domain.LegacyTransaction
	txnsErr    error
	closeCalls int
}

func (f *fakeLegacySource) FetchAccounts(context.Context) ([]domain.LegacyAccount, error) {
	return f.accounts, nil
}

func (f *fakeLegacySource) FetchTransactions(context.Context) ([]domain.LegacyTransaction, error) {
	if f.txnsErr != nil {
		return nil, f.txnsErr
	}
	return f.txns, nil
}

func (f *fakeLegacySource) Close() {
	f.closeCalls++
}

func (f *fakeLegacySource) opener() portsrepo.LegacySourceOpener {
	return func(context.Context) (portsrepo.LegacySourceReader, error) {
		return f, nil
	}
}

func ptr[T any](v T) *T {
	return &v
}
