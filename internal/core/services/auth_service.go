package services

import (
	"errors"
	"log"
	"time"

	"libralend/internal/adapters/memstore"
	"libralend/internal/config"
	"libralend/internal/core/domain"
	"libralend/internal/pkg/jwt"
	"libralend/internal/pkg/password"

	"github.com/google/uuid"
)

// Auth errors
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserAlreadyExists  = errors.New("user already exists")
	ErrInvalidToken       = errors.New("invalid token")
	ErrTokenRevoked       = errors.New("token revoked")
	ErrUserInactive       = errors.New("user account is inactive")
)

// AuthService handles staff authentication
type AuthService struct {
	users         *memstore.UserStore
	refreshTokens *memstore.RefreshTokenStore
	cfg           *config.Config
	now           func() time.Time
}

// NewAuthService creates a new auth service
func NewAuthService(users *memstore.UserStore, refreshTokens *memstore.RefreshTokenStore, cfg *config.Config) *AuthService {
	return &AuthService{
		users:         users,
		refreshTokens: refreshTokens,
		cfg:           cfg,
		now:           time.Now,
	}
}

// LoginInput represents login input
type LoginInput struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required,min=8"`
}

// CreateUserInput represents staff account creation input
type CreateUserInput struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role" validate:"required,oneof=LIBRARIAN ADMIN"`
}

// UserResponse is the outward view of a staff user
type UserResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// AuthResponse represents authentication response
type AuthResponse struct {
	User         UserResponse `json:"user"`
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
}

// CreateUser registers a staff account (admin operation).
func (s *AuthService) CreateUser(input *CreateUserInput) (*UserResponse, error) {
	hashed, err := password.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		ID:        uuid.NewString(),
		Username:  input.Username,
		Password:  hashed,
		Role:      domain.Role(input.Role),
		IsActive:  true,
		CreatedAt: s.now(),
	}
	if err := s.users.Create(user); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, ErrUserAlreadyExists
		}
		return nil, err
	}

	log.Printf("✅ Staff user created: %s (%s)", user.Username, user.Role)
	return &UserResponse{ID: user.ID, Username: user.Username, Role: string(user.Role)}, nil
}

// Login authenticates a staff user and issues a token pair.
func (s *AuthService) Login(input *LoginInput) (*AuthResponse, error) {
	user, err := s.users.GetByUsername(input.Username)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, ErrUserInactive
	}
	if !password.Verify(input.Password, user.Password) {
		return nil, ErrInvalidCredentials
	}

	return s.issueTokens(user)
}

// Refresh rotates a refresh token: the presented token is revoked and a fresh
// pair is issued.
func (s *AuthService) Refresh(refreshToken string) (*AuthResponse, error) {
	claims, err := jwt.ValidateRefreshToken(refreshToken, s.cfg.JWT.RefreshSecret)
	if err != nil {
		return nil, ErrInvalidToken
	}

	stored, err := s.refreshTokens.Get(claims.TokenID)
	if err != nil {
		return nil, ErrInvalidToken
	}
	if stored.RevokedAt != nil {
		return nil, ErrTokenRevoked
	}
	if stored.TokenHash != password.HashToken(refreshToken) {
		return nil, ErrInvalidToken
	}
	if s.now().After(stored.ExpiresAt) {
		return nil, ErrInvalidToken
	}

	user, err := s.users.GetByID(claims.UserID)
	if err != nil {
		return nil, ErrInvalidToken
	}
	if !user.IsActive {
		return nil, ErrUserInactive
	}

	s.refreshTokens.Revoke(claims.TokenID, s.now())
	return s.issueTokens(user)
}

// Logout revokes every live refresh token of the user.
func (s *AuthService) Logout(userID string) {
	s.refreshTokens.RevokeAllForUser(userID, s.now())
	log.Printf("👋 User logged out: %s", userID)
}

func (s *AuthService) issueTokens(user *domain.User) (*AuthResponse, error) {
	accessToken, err := jwt.GenerateAccessToken(user.ID, user.Username, string(user.Role), s.cfg.JWT.Secret, s.cfg.JWT.AccessTokenMins)
	if err != nil {
		return nil, err
	}

	tokenID := uuid.NewString()
	refreshToken, err := jwt.GenerateRefreshToken(user.ID, tokenID, s.cfg.JWT.RefreshSecret, s.cfg.JWT.RefreshTokenDays)
	if err != nil {
		return nil, err
	}

	s.refreshTokens.Store(&domain.RefreshToken{
		ID:        tokenID,
		UserID:    user.ID,
		TokenHash: password.HashToken(refreshToken),
		ExpiresAt: jwt.GetExpiryTime(s.cfg.JWT.RefreshTokenDays),
		CreatedAt: s.now(),
	})

	return &AuthResponse{
		User:         UserResponse{ID: user.ID, Username: user.Username, Role: string(user.Role)},
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}
