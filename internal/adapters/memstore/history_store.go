package memstore

import (
	"sync"
	"time"

	"libralend/internal/core/domain"
)

// HistoryStore is the append-only record of every issuance and reservation
// for the lifetime of the process. Entries are never reordered or dropped;
// removing a member does not touch records that reference them.
type HistoryStore struct {
	mu           sync.RWMutex
	issuances    []*domain.Issuance
	reservations []domain.Reservation
}

// NewHistoryStore creates an empty history.
func NewHistoryStore() *HistoryStore {
	return &HistoryStore{}
}

// AppendIssuance files a new issuance record. The pointer is shared with the
// owning copy while the loan is open, so closing the loan closes the record.
func (s *HistoryStore) AppendIssuance(issuance *domain.Issuance) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.issuances = append(s.issuances, issuance)
}

// AppendReservation files a new reservation record.
func (s *HistoryStore) AppendReservation(reservation domain.Reservation) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reservations = append(s.reservations, reservation)
}

// Issuances returns the issuance history in append order as defensive
// snapshots; callers never see the live records.
func (s *HistoryStore) Issuances() []domain.IssuanceRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.IssuanceRecord, 0, len(s.issuances))
	for _, issuance := range s.issuances {
		out = append(out, issuance.Snapshot())
	}
	return out
}

// Reservations returns the reservation history in append order.
func (s *HistoryStore) Reservations() []domain.Reservation {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Reservation(nil), s.reservations...)
}

// OverdueIssuances returns snapshots of the open issuances past their due
// date at the given instant.
func (s *HistoryStore) OverdueIssuances(now time.Time) []domain.IssuanceRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []domain.IssuanceRecord
	for _, issuance := range s.issuances {
		if issuance.Overdue(now) {
			out = append(out, issuance.Snapshot())
		}
	}
	return out
}

// IssuanceCount returns the total number of issuance records.
func (s *HistoryStore) IssuanceCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.issuances)
}

// ReservationCount returns the total number of reservation records.
func (s *HistoryStore) ReservationCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.reservations)
}
