package memstore

import (
	"fmt"
	"sync"
	"time"

	"libralend/internal/core/domain"
)

// RefreshTokenStore tracks issued refresh tokens (hashed) so they can be
// rotated on use and revoked on logout.
type RefreshTokenStore struct {
	mu     sync.RWMutex
	tokens map[string]*domain.RefreshToken
}

// NewRefreshTokenStore creates an empty token store.
func NewRefreshTokenStore() *RefreshTokenStore {
	return &RefreshTokenStore{tokens: make(map[string]*domain.RefreshToken)}
}

// Store files a refresh token by its token id.
func (s *RefreshTokenStore) Store(token *domain.RefreshToken) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[token.ID] = token
}

// Get finds a refresh token by token id.
func (s *RefreshTokenStore) Get(id string) (*domain.RefreshToken, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	token, ok := s.tokens[id]
	if !ok {
		return nil, fmt.Errorf("%w: refresh token", domain.ErrNotFound)
	}
	return token, nil
}

// Revoke marks a token unusable. Revoking twice is a no-op.
func (s *RefreshTokenStore) Revoke(id string, now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	token, ok := s.tokens[id]
	if !ok || token.RevokedAt != nil {
		return
	}
	revokedAt := now
	token.RevokedAt = &revokedAt
}

// RevokeAllForUser revokes every live token belonging to the user.
func (s *RefreshTokenStore) RevokeAllForUser(userID string, now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, token := range s.tokens {
		if token.UserID == userID && token.RevokedAt == nil {
			revokedAt := now
			token.RevokedAt = &revokedAt
		}
	}
}

// PruneExpired drops tokens past their expiry.
func (s *RefreshTokenStore) PruneExpired(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	pruned := 0
	for id, token := range s.tokens {
		if now.After(token.ExpiresAt) {
			delete(s.tokens, id)
			pruned++
		}
	}
	return pruned
}
