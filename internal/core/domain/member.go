package domain

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Member is a registered library patron. Identity is a generated UUID, stable
// for equality and never derived from mutable fields. The issued and reserved
// sets are the member-side half of every lending transaction.
//
// Like BookCopy, a member carries its own lock that the lending service holds
// for the duration of a transaction; mutating methods assume it is held.
type Member struct {
	mu sync.Mutex

	id         string
	name       string
	membership *Membership
	issued     map[CopyKey]struct{}
	reserved   map[CopyKey]struct{}
}

// NewMember registers a member with a fresh membership window starting now.
func NewMember(name string, now time.Time, validityDays int) (*Member, error) {
	if err := requireNotBlank(name, "member name"); err != nil {
		return nil, err
	}
	if err := requirePositive(validityDays, "membership validity days"); err != nil {
		return nil, err
	}
	return &Member{
		id:         uuid.NewString(),
		name:       name,
		membership: NewMembership(now, validityDays),
		issued:     make(map[CopyKey]struct{}),
		reserved:   make(map[CopyKey]struct{}),
	}, nil
}

// Lock acquires the member's critical section. The lending service always
// locks the target copy first, then the member, so lock order is uniform.
func (m *Member) Lock()   { m.mu.Lock() }
func (m *Member) Unlock() { m.mu.Unlock() }

func (m *Member) ID() string              { return m.id }
func (m *Member) Name() string            { return m.name }
func (m *Member) Membership() *Membership { return m.membership }

// IssuedCount returns the number of copies the member currently holds.
func (m *Member) IssuedCount() int { return len(m.issued) }

// HoldsCopy reports whether the copy is in the member's issued set.
func (m *Member) HoldsCopy(key CopyKey) bool {
	_, ok := m.issued[key]
	return ok
}

// HasReserved reports whether the copy is in the member's reserved set.
func (m *Member) HasReserved(key CopyKey) bool {
	_, ok := m.reserved[key]
	return ok
}

// AddIssued records the copy in the issued set. The set is keyed by copy, so
// a member can never appear twice for the same copy.
func (m *Member) AddIssued(key CopyKey) {
	m.issued[key] = struct{}{}
}

// RemoveIssued drops the copy from the issued set.
func (m *Member) RemoveIssued(key CopyKey) {
	delete(m.issued, key)
}

// AddReserved records the copy in the reserved set.
func (m *Member) AddReserved(key CopyKey) {
	m.reserved[key] = struct{}{}
}

// RemoveReserved drops the copy from the reserved set.
func (m *Member) RemoveReserved(key CopyKey) {
	delete(m.reserved, key)
}

// IssuedCopies returns a snapshot of the issued set.
func (m *Member) IssuedCopies() []CopyKey {
	out := make([]CopyKey, 0, len(m.issued))
	for key := range m.issued {
		out = append(out, key)
	}
	return out
}

// ReservedCopies returns a snapshot of the reserved set.
func (m *Member) ReservedCopies() []CopyKey {
	out := make([]CopyKey, 0, len(m.reserved))
	for key := range m.reserved {
		out = append(out, key)
	}
	return out
}
