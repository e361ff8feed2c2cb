package service

import (
	"testing"

	"go-pos-backend/internal/model"
	"go-pos-backend/internal/repository"
	"go-pos-backend/pkg/jwt"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("test-secret")

func seedUser(t *testing.T, userRepo repository.UserRepository, username, password string, active bool) *model.User {
	t.Helper()
	user := &model.User{Name: "Jane", Username: username, Role: model.RoleCashier, IsActive: active}
	require.NoError(t, user.SetPassword(password))
	require.NoError(t, userRepo.Create(user))
	return user
}

func TestLogin(t *testing.T) {
	db := newTestDB(t)
	userRepo := repository.NewUserRepo(db)
	auth := NewAuthService(userRepo, testSecret)
	seedUser(t, userRepo, "jane", "secret1", true)

	resp, err := auth.Login("jane", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "jane", resp.User.Username)
	assert.NotNil(t, resp.User.LastLogin)

	claims, err := jwt.ValidateToken(testSecret, resp.Token)
	require.NoError(t, err)
	assert.Equal(t, model.RoleCashier, claims.Role)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	db := newTestDB(t)
	userRepo := repository.NewUserRepo(db)
	auth := NewAuthService(userRepo, testSecret)
	seedUser(t, userRepo, "jane", "secret1", true)

	_, err := auth.Login("jane", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = auth.Login("nobody", "secret1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestInactiveFlagSurvivesCreate(t *testing.T) {
	db := newTestDB(t)
	userRepo := repository.NewUserRepo(db)
	user := seedUser(t, userRepo, "jane", "secret1", false)

	stored, err := userRepo.FindByID(user.ID)
	require.NoError(t, err)
	assert.False(t, stored.IsActive)
}

func TestLoginRejectsInactiveAccount(t *testing.T) {
	db := newTestDB(t)
	userRepo := repository.NewUserRepo(db)
	auth := NewAuthService(userRepo, testSecret)
	seedUser(t, userRepo, "jane", "secret1", false)

	_, err := auth.Login("jane", "secret1")
	assert.ErrorIs(t, err, ErrUserInactive)
}

func TestLogoutInvalidatesIssuedToken(t *testing.T) {
	db := newTestDB(t)
	userRepo := repository.NewUserRepo(db)
	auth := NewAuthService(userRepo, testSecret)
	user := seedUser(t, userRepo, "jane", "secret1", true)

	resp, err := auth.Login("jane", "secret1")
	require.NoError(t, err)
	claims, err := jwt.ValidateToken(testSecret, resp.Token)
	require.NoError(t, err)

	require.NoError(t, auth.Logout(user.ID))

	// The token still parses but its version no longer matches the account.
	current, err := userRepo.FindByID(user.ID)
	require.NoError(t, err)
	assert.NotEqual(t, current.TokenVersion, claims.TokenVersion)
}

func TestChangePassword(t *testing.T) {
	db := newTestDB(t)
	userRepo := repository.NewUserRepo(db)
	auth := NewAuthService(userRepo, testSecret)
	user := seedUser(t, userRepo, "jane", "secret1", true)

	t.Run("confirmation must match", func(t *testing.T) {
		err := auth.ChangePassword(user.ID, "secret1", "newpass1", "different")
		assert.ErrorIs(t, err, ErrPasswordMismatch)
	})

	t.Run("current password must verify", func(t *testing.T) {
		err := auth.ChangePassword(user.ID, "wrong", "newpass1", "newpass1")
		assert.ErrorIs(t, err, ErrWrongPassword)

		// No write happened: the old password still works.
		current, err := userRepo.FindByID(user.ID)
		require.NoError(t, err)
		assert.True(t, current.CheckPassword("secret1"))
	})

	t.Run("success", func(t *testing.T) {
		require.NoError(t, auth.ChangePassword(user.ID, "secret1", "newpass1", "newpass1"))

		current, err := userRepo.FindByID(user.ID)
		require.NoError(t, err)
		assert.True(t, current.CheckPassword("newpass1"))
		assert.False(t, current.CheckPassword("secret1"))
	})
}
