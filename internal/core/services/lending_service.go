package services

import (
	"log"
	"time"

	"libralend/internal/adapters/memstore"
	"libralend/internal/config"
	"libralend/internal/core/domain"
)

// LendingService is the single transaction boundary for issue / return /
// reserve. Every compound transaction locks the target copy first, then the
// target member, checks all preconditions, and only then mutates both sides
// and appends to history. A failed precondition performs zero mutations, so
// there is nothing to roll back. No transaction ever touches two copies, so
// the uniform copy-then-member lock order excludes deadlock.
type LendingService struct {
	books   *memstore.BookStore
	members *memstore.MemberStore
	history *memstore.HistoryStore
	cfg     *config.Config
	now     func() time.Time
}

// NewLendingService creates a new lending service
func NewLendingService(
	books *memstore.BookStore,
	members *memstore.MemberStore,
	history *memstore.HistoryStore,
	cfg *config.Config,
) *LendingService {
	return &LendingService{
		books:   books,
		members: members,
		history: history,
		cfg:     cfg,
		now:     time.Now,
	}
}

// IssueCopy lends a copy to a member: membership must be active, the member
// must be under the issuance cap, and the copy must be available. Granting
// the issuance consumes the member's queued reservation on the copy, if any.
func (s *LendingService) IssueCopy(key domain.CopyKey, memberID string) (domain.IssuanceRecord, error) {
	bookCopy, member, err := s.resolve(key, memberID)
	if err != nil {
		return domain.IssuanceRecord{}, err
	}

	bookCopy.Lock()
	defer bookCopy.Unlock()
	member.Lock()
	defer member.Unlock()

	now := s.now()

	// Preconditions, all checked before any mutation
	if err := member.Membership().EnsureActive(now); err != nil {
		return domain.IssuanceRecord{}, err
	}
	if member.IssuedCount() >= s.cfg.Lending.MaxIssuancesPerMember {
		return domain.IssuanceRecord{}, domain.ErrIssuanceLimit
	}

	issuance, err := bookCopy.Issue(memberID, now, s.cfg.Lending.LoanPeriodDays)
	if err != nil {
		return domain.IssuanceRecord{}, err
	}

	member.AddIssued(key)
	member.RemoveReserved(key)
	s.history.AppendIssuance(issuance)

	log.Printf("📗 Issued copy %s to member %s (due %s)", key, memberID, issuance.DueAt().Format("2006-01-02"))
	return issuance.Snapshot(), nil
}

// ReturnCopy takes a copy back from the member holding it, closes the open
// issuance with the return date, and computes the fine for a late return.
func (s *LendingService) ReturnCopy(key domain.CopyKey, memberID string) (domain.IssuanceRecord, error) {
	bookCopy, member, err := s.resolve(key, memberID)
	if err != nil {
		return domain.IssuanceRecord{}, err
	}

	bookCopy.Lock()
	defer bookCopy.Unlock()
	member.Lock()
	defer member.Unlock()

	now := s.now()

	if err := member.Membership().EnsureActive(now); err != nil {
		return domain.IssuanceRecord{}, err
	}
	if !member.HoldsCopy(key) {
		return domain.IssuanceRecord{}, domain.ErrNotIssuedByMember
	}

	issuance, err := bookCopy.Return(now, s.cfg.Lending.FinePerDay)
	if err != nil {
		return domain.IssuanceRecord{}, err
	}

	member.RemoveIssued(key)

	record := issuance.Snapshot()
	if record.Fine != nil {
		log.Printf("📕 Copy %s returned by member %s, %d day(s) late, fine %d", key, memberID, record.Fine.DaysLate, record.Fine.Amount)
	} else {
		log.Printf("📘 Copy %s returned by member %s on time", key, memberID)
	}
	return record, nil
}

// ReserveCopy queues a member's claim on a currently issued copy.
func (s *LendingService) ReserveCopy(key domain.CopyKey, memberID string) (domain.Reservation, error) {
	bookCopy, member, err := s.resolve(key, memberID)
	if err != nil {
		return domain.Reservation{}, err
	}

	bookCopy.Lock()
	defer bookCopy.Unlock()
	member.Lock()
	defer member.Unlock()

	now := s.now()

	if err := member.Membership().EnsureActive(now); err != nil {
		return domain.Reservation{}, err
	}

	reservation, err := bookCopy.Reserve(memberID, now, s.cfg.Lending.MaxReservationsPerCopy)
	if err != nil {
		return domain.Reservation{}, err
	}

	member.AddReserved(key)
	s.history.AppendReservation(*reservation)

	log.Printf("🔖 Member %s reserved copy %s (queue length %d)", memberID, key, bookCopy.QueueLength())
	return *reservation, nil
}

// CancelReservation removes the member's queued claim on the copy. Cancelling
// a reservation that does not exist is a no-op, not an error.
func (s *LendingService) CancelReservation(key domain.CopyKey, memberID string) error {
	bookCopy, member, err := s.resolve(key, memberID)
	if err != nil {
		return err
	}

	bookCopy.Lock()
	defer bookCopy.Unlock()
	member.Lock()
	defer member.Unlock()

	bookCopy.CancelReservation(memberID)
	member.RemoveReserved(key)
	return nil
}

// OfferToNext issues a just-returned copy to the reservation queue, walking
// it in FIFO order and granting the copy to the first member who still passes
// the membership and issuance-cap gates. Members who fail the gates keep
// their place in line; stale reservations of removed members are dropped.
// Returning a copy never triggers this automatically; the offer is its own
// transaction.
func (s *LendingService) OfferToNext(key domain.CopyKey) (domain.IssuanceRecord, error) {
	bookCopy, err := s.books.FindCopy(key)
	if err != nil {
		return domain.IssuanceRecord{}, err
	}

	bookCopy.Lock()
	defer bookCopy.Unlock()

	if !bookCopy.AvailableToIssue() {
		return domain.IssuanceRecord{}, domain.ErrCopyAlreadyIssued
	}

	now := s.now()

	for _, reservation := range bookCopy.Reservations() {
		member, err := s.members.GetByID(reservation.MemberID)
		if err != nil {
			// Member removed since reserving; their claim is void.
			bookCopy.CancelReservation(reservation.MemberID)
			continue
		}

		member.Lock()
		if !member.Membership().IsActive(now) || member.IssuedCount() >= s.cfg.Lending.MaxIssuancesPerMember {
			member.Unlock()
			continue
		}

		issuance, err := bookCopy.Issue(member.ID(), now, s.cfg.Lending.LoanPeriodDays)
		if err != nil {
			member.Unlock()
			return domain.IssuanceRecord{}, err
		}
		member.AddIssued(key)
		member.RemoveReserved(key)
		member.Unlock()

		s.history.AppendIssuance(issuance)
		log.Printf("📗 Offered copy %s to next reservation: member %s", key, member.ID())
		return issuance.Snapshot(), nil
	}

	return domain.IssuanceRecord{}, domain.ErrNotFound
}

// IssuanceHistory returns the append-only issuance log as snapshots.
func (s *LendingService) IssuanceHistory() []domain.IssuanceRecord {
	return s.history.Issuances()
}

// ReservationHistory returns the append-only reservation log.
func (s *LendingService) ReservationHistory() []domain.Reservation {
	return s.history.Reservations()
}

func (s *LendingService) resolve(key domain.CopyKey, memberID string) (*domain.BookCopy, *domain.Member, error) {
	bookCopy, err := s.books.FindCopy(key)
	if err != nil {
		return nil, nil, err
	}
	member, err := s.members.GetByID(memberID)
	if err != nil {
		return nil, nil, err
	}
	return bookCopy, member, nil
}
