package memstore

import (
	"fmt"
	"strings"
	"sync"

	"libralend/internal/core/domain"
)

// UserStore holds the staff accounts that operate the lending desk.
type UserStore struct {
	mu         sync.RWMutex
	users      map[string]*domain.User
	byUsername map[string]string
}

// NewUserStore creates an empty user store.
func NewUserStore() *UserStore {
	return &UserStore{
		users:      make(map[string]*domain.User),
		byUsername: make(map[string]string),
	}
}

// Create adds a staff user. Usernames are unique, case-insensitive.
func (s *UserStore) Create(user *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := strings.ToLower(user.Username)
	if _, ok := s.byUsername[key]; ok {
		return fmt.Errorf("%w: username %s", domain.ErrDuplicate, user.Username)
	}
	s.users[user.ID] = user
	s.byUsername[key] = user.ID
	return nil
}

// GetByID finds a user by id.
func (s *UserStore) GetByID(id string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[id]
	if !ok {
		return nil, fmt.Errorf("%w: user %s", domain.ErrNotFound, id)
	}
	return user, nil
}

// GetByUsername finds a user by username.
func (s *UserStore) GetByUsername(username string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byUsername[strings.ToLower(username)]
	if !ok {
		return nil, fmt.Errorf("%w: username %s", domain.ErrNotFound, username)
	}
	return s.users[id], nil
}

// CountByRole returns the number of users with the given role.
func (s *UserStore) CountByRole(role domain.Role) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, user := range s.users {
		if user.Role == role {
			count++
		}
	}
	return count
}
