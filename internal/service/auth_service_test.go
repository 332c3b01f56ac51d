package service_test

import (
	"context"
	"testing"

	"github.com/Banchi-salim/PhoneStoreInventory/internal/config"
	"github.com/Banchi-salim/PhoneStoreInventory/internal/dto"
	"github.com/Banchi-salim/PhoneStoreInventory/internal/model"
	"github.com/Banchi-salim/PhoneStoreInventory/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newAuthFixture() (service.AuthService, *stubUserRepo) {
	repo := newStubUserRepo()
	cfg := &config.Config{
		JWTSecret:          "test-secret",
		JWTExpirationHours: 1,
		JWTRefreshHours:    24,
	}
	return service.NewAuthService(repo, cfg), repo
}

func seedUser(t *testing.T, repo *stubUserRepo, username, password, role string, active bool) *model.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	u := &model.User{
		Username:     username,
		FullName:     "Test User",
		PasswordHash: string(hash),
		Role:         role,
		Active:       active,
	}
	require.NoError(t, repo.Create(context.Background(), u))
	return u
}

func TestLogin_Success(t *testing.T) {
	svc, repo := newAuthFixture()
	seedUser(t, repo, "cashier", "s3cret99", model.RoleStaff, true)

	resp, err := svc.Login(context.Background(), dto.LoginRequest{Username: "cashier", Password: "s3cret99"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "bearer", resp.TokenType)
	assert.Equal(t, 3600, resp.ExpiresIn)
	assert.Equal(t, "cashier", resp.User.Username)
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, repo := newAuthFixture()
	seedUser(t, repo, "cashier", "s3cret99", model.RoleStaff, true)

	_, err := svc.Login(context.Background(), dto.LoginRequest{Username: "cashier", Password: "wrong"})
	assert.ErrorContains(t, err, "invalid credentials")
}

func TestLogin_InactiveUserRejected(t *testing.T) {
	svc, repo := newAuthFixture()
	seedUser(t, repo, "former.staff", "s3cret99", model.RoleStaff, false)

	// Same error as a bad password, so probing cannot tell accounts apart
	_, err := svc.Login(context.Background(), dto.LoginRequest{Username: "former.staff", Password: "s3cret99"})
	assert.ErrorContains(t, err, "invalid credentials")
}

func TestRefresh_RotatesTokens(t *testing.T) {
	svc, repo := newAuthFixture()
	seedUser(t, repo, "admin", "s3cret99", model.RoleAdmin, true)

	login, err := svc.Login(context.Background(), dto.LoginRequest{Username: "admin", Password: "s3cret99"})
	require.NoError(t, err)

	refreshed, err := svc.Refresh(context.Background(), login.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)
	assert.Equal(t, "admin", refreshed.User.Username)

	_, err = svc.Refresh(context.Background(), "not-a-token")
	assert.ErrorContains(t, err, "invalid or expired")
}

func TestRefresh_DeactivatedUserRejected(t *testing.T) {
	svc, repo := newAuthFixture()
	u := seedUser(t, repo, "cashier", "s3cret99", model.RoleStaff, true)

	login, err := svc.Login(context.Background(), dto.LoginRequest{Username: "cashier", Password: "s3cret99"})
	require.NoError(t, err)

	require.NoError(t, repo.SoftDelete(context.Background(), u.ID))
	_, err = svc.Refresh(context.Background(), login.RefreshToken)
	assert.ErrorContains(t, err, "inactive")
}

func TestCreateUser_DuplicateUsernameRejected(t *testing.T) {
	svc, repo := newAuthFixture()
	seedUser(t, repo, "cashier", "s3cret99", model.RoleStaff, true)

	_, err := svc.CreateUser(context.Background(), dto.CreateUserRequest{
		Username: "cashier",
		Password: "another1",
		FullName: "Second Cashier",
		Role:     model.RoleStaff,
	})
	require.Error(t, err)
}
