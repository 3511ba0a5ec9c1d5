package services

import (
	"MediSched/models"
	"MediSched/utils"
	"context"
	"errors"
)

// ErrInvalidCredentials deliberately hides whether the email or the
// password was wrong.
var ErrInvalidCredentials = errors.New("invalid email or password")

// UserDirectory resolves accounts by email for login.
type UserDirectory interface {
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}

// LoginResult carries the issued token pair and the authenticated user.
type LoginResult struct {
	AccessToken  string       `json:"accessToken"`
	RefreshToken string       `json:"refreshToken"`
	User         *models.User `json:"user"`
}

type AuthService struct {
	users UserDirectory
}

func NewAuthService(users UserDirectory) *AuthService {
	return &AuthService{users: users}
}

// Login verifies the credentials and issues a paseto access/refresh pair
// carrying the user's ID and role.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	if err := utils.ValidateCredentials(email, password); err != nil {
		return nil, err
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !utils.CheckPassword(user.Password, password) {
		return nil, ErrInvalidCredentials
	}

	access, refresh, err := utils.GenerateTokens(user.ID, user.Role.Name)
	if err != nil {
		return nil, err
	}
	return &LoginResult{AccessToken: access, RefreshToken: refresh, User: user}, nil
}

// Refresh exchanges a valid refresh token for a fresh token pair.
func (s *AuthService) Refresh(_ context.Context, refreshToken string) (*LoginResult, error) {
	claims, err := utils.ValidateToken(refreshToken)
	if err != nil {
		return nil, models.ErrInvalidToken
	}
	access, refresh, err := utils.GenerateTokens(claims.UserID, claims.Role)
	if err != nil {
		return nil, err
	}
	return &LoginResult{AccessToken: access, RefreshToken: refresh}, nil
}
