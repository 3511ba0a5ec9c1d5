package services

import (
	"MediSched/models"
	"MediSched/utils"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUserDirectory struct {
	users map[string]*models.User
}

func (d *fakeUserDirectory) GetByEmail(_ context.Context, email string) (*models.User, error) {
	user, ok := d.users[email]
	if !ok {
		return nil, models.ErrNotFound
	}
	return user, nil
}

func newAuthFixture(t *testing.T) *AuthService {
	t.Helper()
	t.Setenv("SYMMETRIC_KEY", "0123456789abcdef0123456789abcdef")

	hash, err := utils.HashPassword("correct horse battery")
	require.NoError(t, err)

	return NewAuthService(&fakeUserDirectory{users: map[string]*models.User{
		"ann@example.com": {
			ID:       "user-1",
			FullName: "Ann Walker",
			Email:    "ann@example.com",
			Password: hash,
			Role:     models.Role{Name: models.RoleUser},
		},
	}})
}

func TestLoginIssuesTokenPair(t *testing.T) {
	svc := newAuthFixture(t)

	result, err := svc.Login(context.Background(), "ann@example.com", "correct horse battery")
	require.NoError(t, err)
	assert.NotEmpty(t, result.AccessToken)
	assert.NotEmpty(t, result.RefreshToken)
	assert.Equal(t, "user-1", result.User.ID)

	claims, err := utils.ValidateToken(result.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, models.RoleUser, claims.Role)
}

func TestLoginHidesWhichCredentialFailed(t *testing.T) {
	svc := newAuthFixture(t)
	ctx := context.Background()

	_, err := svc.Login(ctx, "nobody@example.com", "correct horse battery")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, "ann@example.com", "wrong password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginValidatesInput(t *testing.T) {
	svc := newAuthFixture(t)

	_, err := svc.Login(context.Background(), "not-an-email", "pw")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidCredentials)
}

func TestRefreshRotatesTokens(t *testing.T) {
	svc := newAuthFixture(t)
	ctx := context.Background()

	login, err := svc.Login(ctx, "ann@example.com", "correct horse battery")
	require.NoError(t, err)

	refreshed, err := svc.Refresh(ctx, login.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)

	claims, err := utils.ValidateToken(refreshed.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
}

func TestRefreshRejectsGarbage(t *testing.T) {
	svc := newAuthFixture(t)

	_, err := svc.Refresh(context.Background(), "v2.local.garbage")
	assert.ErrorIs(t, err, models.ErrInvalidToken)
}
