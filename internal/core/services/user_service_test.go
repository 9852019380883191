package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/familienkasse/internal/apperrors"
	"github.com/SscSPs/familienkasse/internal/core/domain"
	portssvc "github.com/SscSPs/familienkasse/internal/core/ports/services"
	"github.com/SscSPs/familienkasse/internal/core/services"
	"github.com/SscSPs/familienkasse/internal/dto"
	"github.com/SscSPs/familienkasse/internal/platform/config"
	"github.com/SscSPs/familienkasse/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type UserServiceTestSuite struct {
	suite.Suite
	ctx     context.Context
	store   *memStore
	service portssvc.UserSvcFacade
}

func (suite *UserServiceTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.store = newMemStore()
	suite.service = services.NewUserService(suite.store, services.WithClock(fixedClock(time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC))))
}

func (suite *UserServiceTestSuite) register(email string) *domain.User {
	user, err := suite.service.CreateUser(suite.ctx, dto.CreateUserRequest{Name: "Mama", Email: email, Password: "geheim123"})
	suite.Require().NoError(err)
	return user
}

func (suite *UserServiceTestSuite) TestCreateUser_NormalizesAndHashes() {
	user := suite.register("  Mama@Example.COM ")

	suite.Equal("mama@example.com", user.Email)
	suite.Equal(domain.ProviderLocal, user.AuthProvider)
	suite.NotEqual("geheim123", user.PasswordHash)
	suite.True(utils.CheckPasswordHash("geheim123", user.PasswordHash))
}

func (suite *UserServiceTestSuite) TestCreateUser_DuplicateEmail() {
	suite.register("mama@example.com")

	_, err := suite.service.CreateUser(suite.ctx, dto.CreateUserRequest{Name: "Other", Email: "MAMA@example.com", Password: "geheim123"})
	suite.ErrorIs(err, apperrors.ErrDuplicate)
}

func (suite *UserServiceTestSuite) TestAuthenticateUser() {
	registered := suite.register("mama@example.com")

	user, err := suite.service.AuthenticateUser(suite.ctx, "Mama@example.com", "geheim123")
	suite.Require().NoError(err)
	suite.Equal(registered.UserID, user.UserID)

	_, err = suite.service.AuthenticateUser(suite.ctx, "mama@example.com", "wrong-password")
	suite.ErrorIs(err, apperrors.ErrUnauthorized)

	_, err = suite.service.AuthenticateUser(suite.ctx, "nobody@example.com", "geheim123")
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
}

func (suite *UserServiceTestSuite) TestCreateOAuthUser_CreatesThenReuses() {
	created, err := suite.service.CreateOAuthUser(suite.ctx, "Papa", "papa@example.com", string(domain.ProviderGoogle), "google-sub", true)
	suite.Require().NoError(err)
	suite.Equal(domain.ProviderGoogle, created.AuthProvider)
	suite.False(created.HasPassword())

	again, err := suite.service.CreateOAuthUser(suite.ctx, "Papa", "PAPA@example.com", string(domain.ProviderGoogle), "google-sub", true)
	suite.Require().NoError(err)
	suite.Equal(created.UserID, again.UserID)

	count, err := suite.service.CountUsers(suite.ctx)
	suite.Require().NoError(err)
	suite.Equal(1, count)
}

func (suite *UserServiceTestSuite) TestCreateOAuthUser_LinksExistingPasswordUser() {
	registered := suite.register("mama@example.com")

	linked, err := suite.service.CreateOAuthUser(suite.ctx, "Mama", "mama@example.com", string(domain.ProviderGoogle), "google-sub", true)
	suite.Require().NoError(err)
	suite.Equal(registered.UserID, linked.UserID)
	suite.Equal("google-sub", linked.ProviderUserID)
	suite.True(linked.EmailVerified)
	suite.True(linked.HasPassword())
}

func (suite *UserServiceTestSuite) TestGetUserByID_NotFound() {
	_, err := suite.service.GetUserByID(suite.ctx, "missing")
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func TestUserServiceTestSuite(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}

func TestTokenService_GenerateAccessToken(t *testing.T) {
	cfg := &config.Config{JWTSecret: "test-secret", JWTExpiryDuration: time.Hour, JWTIssuer: "familienkasse"}
	svc := services.NewTokenService(cfg)

	token, expiresAt, err := svc.GenerateAccessToken(context.Background(), &domain.User{UserID: "user-1"})
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	claims, err := utils.ParseAndValidateJWT(token, "test-secret")
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.Subject)
	assert.Equal(t, "familienkasse", claims.Issuer)
}

type stubPinger struct{ err error }

func (s stubPinger) Ping(context.Context) error { return s.err }

func TestHealthService_CheckDatabase(t *testing.T) {
	assert.NoError(t, services.NewHealthService(stubPinger{}).CheckDatabase(context.Background()))
	assert.ErrorIs(t, services.NewHealthService(stubPinger{err: assert.AnError}).CheckDatabase(context.Background()), assert.AnError)
	assert.Error(t, services.NewHealthService(nil).CheckDatabase(context.Background()))
}
