package memstore

import (
	"fmt"
	"sync"

	"libralend/internal/core/domain"
)

// MemberStore holds every registered member, keyed by generated id.
type MemberStore struct {
	mu      sync.RWMutex
	members map[string]*domain.Member
}

// NewMemberStore creates an empty member store.
func NewMemberStore() *MemberStore {
	return &MemberStore{members: make(map[string]*domain.Member)}
}

// Add registers a member.
func (s *MemberStore) Add(member *domain.Member) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.members[member.ID()]; ok {
		return fmt.Errorf("%w: member %s", domain.ErrDuplicate, member.ID())
	}
	s.members[member.ID()] = member
	return nil
}

// GetByID finds a member.
func (s *MemberStore) GetByID(id string) (*domain.Member, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	member, ok := s.members[id]
	if !ok {
		return nil, fmt.Errorf("%w: member %s", domain.ErrNotFound, id)
	}
	return member, nil
}

// Remove deletes a member from the store. History records referencing the
// member are untouched; removal never rewrites the past.
func (s *MemberStore) Remove(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.members[id]; !ok {
		return fmt.Errorf("%w: member %s", domain.ErrNotFound, id)
	}
	delete(s.members, id)
	return nil
}

// All returns a snapshot of all members.
func (s *MemberStore) All() []*domain.Member {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*domain.Member, 0, len(s.members))
	for _, member := range s.members {
		out = append(out, member)
	}
	return out
}

// Count returns the number of registered members.
func (s *MemberStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.members)
}
