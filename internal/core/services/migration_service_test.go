package services_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/SscSPs/familienkasse/internal/apperrors"
	"github.com/SscSPs/familienkasse/internal/core/domain"
	portsrepo "github.com/SscSPs/familienkasse/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/familienkasse/internal/core/ports/services"
	"github.com/SscSPs/familienkasse/internal/core/services"
	"github.com/stretchr/testify/suite"
)

type MigrationServiceTestSuite struct {
	suite.Suite
	ctx    context.Context
	now    time.Time
	store  *memStore
	source *fakeLegacySource
}

func (suite *MigrationServiceTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.now = time.Date(2026, 1, 5, 12, 0, 0, 0, time.UTC)
	suite.store = newMemStore()

	created := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)
	suite.source = &fakeLegacySource{
		accounts: []domain.LegacyAccount{
			{ID: "11111111-1111-1111-1111-111111111111", Name: "Lena"},
			{ID: "22222222-2222-2222-2222-222222222222", Name: "Max"},
		},
		txns: []domain.LegacyTransaction{
			{ID: "t1", AccountID: "11111111-1111-1111-1111-111111111111", Amount: 500, IsPaid: ptr(true), Created: &created},
			{ID: "t2", AccountID: "11111111-1111-1111-1111-111111111111", Amount: -150, Description: ptr("Eis")},
			{ID: "t3", AccountID: "22222222-2222-2222-2222-222222222222", Amount: 1000, IsPaid: ptr(false)},
		},
	}
}

func (suite *MigrationServiceTestSuite) service(opener portsrepo.LegacySourceOpener) portssvc.MigrationSvc {
	return services.NewMigrationService(suite.store, suite.store, suite.store, opener, services.WithClock(fixedClock(suite.now)))
}

func (suite *MigrationServiceTestSuite) TestRunMigration_CopiesEverything() {
	svc := suite.service(suite.source.opener())

	result := svc.RunMigration(suite.ctx, "user-1")

	suite.True(result.Success)
	suite.Empty(result.Errors)
	suite.NotEmpty(result.LogID)
	suite.Equal(2, result.AccountsMigrated)
	suite.Zero(result.AccountsSkipped)
	suite.Equal(3, result.TransactionsMigrated)
	suite.Zero(result.TransactionsSkipped)
	suite.Equal(1, suite.source.closeCalls)

	acc, err := suite.store.FindAccountByID(suite.ctx, "11111111-1111-1111-1111-111111111111")
	suite.Require().NoError(err)
	suite.Equal("user-1", acc.UserID)
	suite.Equal("Lena", acc.Name)
	suite.False(acc.RecurringAllowanceEnabled)

	log, err := svc.GetMigrationLog(suite.ctx, result.LogID)
	suite.Require().NoError(err)
	suite.Equal(domain.MigrationCompleted, log.Status)
	suite.NotNil(log.CompletedAt)
	suite.Equal(2, log.AccountsMigrated)
	suite.Equal(3, log.TransactionsMigrated)
	suite.Nil(log.ErrorMessage)
}

func (suite *MigrationServiceTestSuite) TestRunMigration_MapsNullableLegacyFields() {
	svc := suite.service(suite.source.opener())
	suite.Require().True(svc.RunMigration(suite.ctx, "user-1").Success)

	t1, err := suite.store.FindTransactionByID(suite.ctx, "t1")
	suite.Require().NoError(err)
	suite.True(t1.IsPaid)
	suite.Equal(time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC), t1.CreatedAt)
	suite.Equal(domain.OriginMigration, t1.Origin)

	t2, err := suite.store.FindTransactionByID(suite.ctx, "t2")
	suite.Require().NoError(err)
	suite.False(t2.IsPaid)
	suite.Equal(suite.now, t2.CreatedAt)
}

func (suite *MigrationServiceTestSuite) TestRunMigration_SecondRunSkipsEverything() {
	svc := suite.service(suite.source.opener())
	first := svc.RunMigration(suite.ctx, "user-1")
	suite.Require().True(first.Success)

	second := svc.RunMigration(suite.ctx, "user-1")
	suite.True(second.Success)
	suite.Zero(second.AccountsMigrated)
	suite.Equal(first.AccountsMigrated, second.AccountsSkipped)
	suite.Zero(second.TransactionsMigrated)
	suite.Equal(first.TransactionsMigrated, second.TransactionsSkipped)
	suite.NotEqual(first.LogID, second.LogID)

	balances, err := suite.store.ListAllAccountBalances(suite.ctx)
	suite.Require().NoError(err)
	suite.Require().Len(balances, 2)
	suite.Equal(int64(350), balances[0].Balance)
	suite.Equal(int64(500), balances[0].PaidBalance)
}

func (suite *MigrationServiceTestSuite) TestRunMigration_FailureIsRecorded() {
	suite.source.txnsErr = errors.New("connection reset")
	svc := suite.service(suite.source.opener())

	result := svc.RunMigration(suite.ctx, "user-1")

	suite.False(result.Success)
	suite.Require().Len(result.Errors, 1)
	suite.Contains(result.Errors[0], "connection reset")
	suite.Equal(2, result.AccountsMigrated)
	suite.Equal(1, suite.source.closeCalls)

	log, err := svc.GetLatestMigrationLog(suite.ctx)
	suite.Require().NoError(err)
	suite.Equal(result.LogID, log.ID)
	suite.Equal(domain.MigrationFailed, log.Status)
	suite.NotNil(log.CompletedAt)
	suite.Require().NotNil(log.ErrorMessage)
	suite.Contains(*log.ErrorMessage, "connection reset")
	suite.Equal(2, log.AccountsMigrated)

	// Committed accounts are kept.
	_, err = suite.store.FindAccountByID(suite.ctx, "22222222-2222-2222-2222-222222222222")
	suite.NoError(err)
}

func (suite *MigrationServiceTestSuite) TestRunMigration_KeepsOverlongLegacyText() {
	longName := strings.Repeat("n", domain.MaxAccountNameLength+20)
	longDescription := strings.Repeat("d", domain.MaxDescriptionLength+100)
	suite.source.accounts = append(suite.source.accounts, domain.LegacyAccount{ID: "33333333-3333-3333-3333-333333333333", Name: longName})
	suite.source.txns = append(suite.source.txns, domain.LegacyTransaction{
		ID: "t4", AccountID: "33333333-3333-3333-3333-333333333333", Amount: 200, Description: &longDescription,
	})
	svc := suite.service(suite.source.opener())

	result := svc.RunMigration(suite.ctx, "user-1")

	suite.True(result.Success)
	suite.Equal(3, result.AccountsMigrated)
	suite.Equal(4, result.TransactionsMigrated)

	acc, err := suite.store.FindAccountByID(suite.ctx, "33333333-3333-3333-3333-333333333333")
	suite.Require().NoError(err)
	suite.Equal(longName, acc.Name)
	t4, err := suite.store.FindTransactionByID(suite.ctx, "t4")
	suite.Require().NoError(err)
	suite.Require().NotNil(t4.Description)
	suite.Equal(longDescription, *t4.Description)
}

func (suite *MigrationServiceTestSuite) TestRunMigration_CompletionWriteFailureMarksFailed() {
	logs := completionFailingLogStore{memStore: suite.store}
	svc := services.NewMigrationService(suite.store, suite.store, logs, suite.source.opener(), services.WithClock(fixedClock(suite.now)))

	result := svc.RunMigration(suite.ctx, "user-1")

	suite.False(result.Success)
	suite.Require().Len(result.Errors, 1)
	suite.Contains(result.Errors[0], "disk full")

	log, err := svc.GetMigrationLog(suite.ctx, result.LogID)
	suite.Require().NoError(err)
	suite.Equal(domain.MigrationFailed, log.Status)
	suite.NotNil(log.CompletedAt)
	suite.Require().NotNil(log.ErrorMessage)
	suite.Contains(*log.ErrorMessage, "disk full")
	suite.Equal(3, log.TransactionsMigrated)
}

func (suite *MigrationServiceTestSuite) TestRunMigration_ConnectFailure() {
	opener := func(context.Context) (portsrepo.LegacySourceReader, error) {
		return nil, errors.New("dial tcp: refused")
	}
	result := suite.service(opener).RunMigration(suite.ctx, "user-1")

	suite.False(result.Success)
	suite.Contains(result.Errors[0], "refused")
	log, err := suite.store.FindMigrationLogByID(suite.ctx, result.LogID)
	suite.Require().NoError(err)
	suite.Equal(domain.MigrationFailed, log.Status)
}

func (suite *MigrationServiceTestSuite) TestRunMigration_NotConfigured() {
	result := suite.service(nil).RunMigration(suite.ctx, "user-1")

	suite.False(result.Success)
	suite.Equal([]string{services.ErrLegacySourceNotConfigured.Error()}, result.Errors)
	suite.Empty(result.LogID)
	_, err := suite.store.FindLatestMigrationLog(suite.ctx)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *MigrationServiceTestSuite) TestGetLatestMigrationLog_NoRuns() {
	_, err := suite.service(suite.source.opener()).GetLatestMigrationLog(suite.ctx)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func TestMigrationServiceTestSuite(t *testing.T) {
	suite.Run(t, new(MigrationServiceTestSuite))
}

// completionFailingLogStore rejects the write that marks a run completed.
type completionFailingLogStore struct {
	*memStore
}

func (s completionFailingLogStore) UpdateMigrationLog(ctx context.Context, logID string, u domain.MigrationLogUpdate) error {
	if u.Status != nil && *u.Status == domain.MigrationCompleted {
		return errors.New("disk full")
	}
	return s.memStore.UpdateMigrationLog(ctx, logID, u)
}
