package services

import (
	"testing"

	"libralend/internal/adapters/memstore"
	"libralend/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthFixture(t *testing.T) *AuthService {
	t.Helper()
	cfg := testConfig()
	cfg.JWT = config.JWTConfig{
		Secret:           "test_secret",
		RefreshSecret:    "test_refresh_secret",
		AccessTokenMins:  15,
		RefreshTokenDays: 7,
	}
	return NewAuthService(memstore.NewUserStore(), memstore.NewRefreshTokenStore(), cfg)
}

func TestCreateUserAndLogin(t *testing.T) {
	svc := newAuthFixture(t)

	user, err := svc.CreateUser(&CreateUserInput{Username: "librarian1", Password: "supersecret", Role: "LIBRARIAN"})
	require.NoError(t, err)
	assert.Equal(t, "LIBRARIAN", user.Role)

	_, err = svc.CreateUser(&CreateUserInput{Username: "Librarian1", Password: "supersecret", Role: "ADMIN"})
	assert.ErrorIs(t, err, ErrUserAlreadyExists, "usernames are unique case-insensitively")

	result, err := svc.Login(&LoginInput{Username: "librarian1", Password: "supersecret"})
	require.NoError(t, err)
	assert.NotEmpty(t, result.AccessToken)
	assert.NotEmpty(t, result.RefreshToken)
	assert.Equal(t, user.ID, result.User.ID)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc := newAuthFixture(t)
	_, err := svc.CreateUser(&CreateUserInput{Username: "librarian1", Password: "supersecret", Role: "LIBRARIAN"})
	require.NoError(t, err)

	_, err = svc.Login(&LoginInput{Username: "librarian1", Password: "wrongpassword"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(&LoginInput{Username: "nobody", Password: "supersecret"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRefreshRotatesToken(t *testing.T) {
	svc := newAuthFixture(t)
	_, err := svc.CreateUser(&CreateUserInput{Username: "librarian1", Password: "supersecret", Role: "LIBRARIAN"})
	require.NoError(t, err)
	login, err := svc.Login(&LoginInput{Username: "librarian1", Password: "supersecret"})
	require.NoError(t, err)

	refreshed, err := svc.Refresh(login.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)

	// The presented token was revoked by the rotation.
	_, err = svc.Refresh(login.RefreshToken)
	assert.ErrorIs(t, err, ErrTokenRevoked)

	// The new token still works.
	_, err = svc.Refresh(refreshed.RefreshToken)
	assert.NoError(t, err)
}

func TestRefreshRejectsGarbage(t *testing.T) {
	svc := newAuthFixture(t)
	_, err := svc.Refresh("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestLogoutRevokesAllTokens(t *testing.T) {
	svc := newAuthFixture(t)
	user, err := svc.CreateUser(&CreateUserInput{Username: "librarian1", Password: "supersecret", Role: "LIBRARIAN"})
	require.NoError(t, err)

	first, err := svc.Login(&LoginInput{Username: "librarian1", Password: "supersecret"})
	require.NoError(t, err)
	second, err := svc.Login(&LoginInput{Username: "librarian1", Password: "supersecret"})
	require.NoError(t, err)

	svc.Logout(user.ID)

	_, err = svc.Refresh(first.RefreshToken)
	assert.ErrorIs(t, err, ErrTokenRevoked)
	_, err = svc.Refresh(second.RefreshToken)
	assert.ErrorIs(t, err, ErrTokenRevoked)
}
