package services

import (
	"log"
	"time"

	"libralend/internal/adapters/memstore"
	"libralend/internal/config"
	"libralend/internal/core/domain"
)

// MemberService handles member registration and the membership lifecycle.
type MemberService struct {
	members *memstore.MemberStore
	books   *memstore.BookStore
	cfg     *config.Config
	now     func() time.Time
}

// NewMemberService creates a new member service
func NewMemberService(members *memstore.MemberStore, books *memstore.BookStore, cfg *config.Config) *MemberService {
	return &MemberService{
		members: members,
		books:   books,
		cfg:     cfg,
		now:     time.Now,
	}
}

// RegisterMemberInput represents member registration input
type RegisterMemberInput struct {
	Name string `json:"name" validate:"required,min=1,max=100"`
}

// MemberResponse is the outward view of a member
type MemberResponse struct {
	ID              string           `json:"id"`
	Name            string           `json:"name"`
	MembershipStart time.Time        `json:"membership_start"`
	MembershipEnd   time.Time        `json:"membership_end"`
	Active          bool             `json:"active"`
	IssuedCopies    []domain.CopyKey `json:"issued_copies"`
	ReservedCopies  []domain.CopyKey `json:"reserved_copies"`
}

// RegisterMember creates a member with a fresh one-period membership.
func (s *MemberService) RegisterMember(input *RegisterMemberInput) (*MemberResponse, error) {
	member, err := domain.NewMember(input.Name, s.now(), s.cfg.Lending.MembershipDays)
	if err != nil {
		return nil, err
	}
	if err := s.members.Add(member); err != nil {
		return nil, err
	}

	log.Printf("🪪 Member registered: %s (%s)", member.Name(), member.ID())
	resp := s.toMemberResponse(member)
	return &resp, nil
}

// GetMember returns one member.
func (s *MemberService) GetMember(id string) (*MemberResponse, error) {
	member, err := s.members.GetByID(id)
	if err != nil {
		return nil, err
	}
	resp := s.toMemberResponse(member)
	return &resp, nil
}

// AllMembers returns all registered members.
func (s *MemberService) AllMembers() []MemberResponse {
	members := s.members.All()
	out := make([]MemberResponse, 0, len(members))
	for _, member := range members {
		out = append(out, s.toMemberResponse(member))
	}
	return out
}

// RenewMembership extends an active membership by one validity period, or
// restarts a lapsed one from now.
func (s *MemberService) RenewMembership(id string) (*MemberResponse, error) {
	member, err := s.members.GetByID(id)
	if err != nil {
		return nil, err
	}

	member.Lock()
	member.Membership().Renew(s.now(), s.cfg.Lending.MembershipDays)
	member.Unlock()

	log.Printf("🪪 Membership renewed for member %s", id)
	resp := s.toMemberResponse(member)
	return &resp, nil
}

// CancelMembership forces the membership to expire immediately.
func (s *MemberService) CancelMembership(id string) error {
	member, err := s.members.GetByID(id)
	if err != nil {
		return err
	}

	member.Lock()
	member.Membership().Cancel(s.now())
	member.Unlock()

	log.Printf("🪪 Membership cancelled for member %s", id)
	return nil
}

// RemoveMember cancels the membership and deletes the member. A member still
// holding issued copies cannot be removed; their queued reservations are
// cancelled on the way out. History records referencing the member survive.
func (s *MemberService) RemoveMember(id string) error {
	member, err := s.members.GetByID(id)
	if err != nil {
		return err
	}

	member.Lock()
	if member.IssuedCount() > 0 {
		member.Unlock()
		return domain.ErrMemberHasCopies
	}
	member.Membership().Cancel(s.now())
	reserved := member.ReservedCopies()
	member.Unlock()

	// Drop the member's queued claims. Copy lock first, then member, same
	// order as the lending transactions.
	for _, key := range reserved {
		bookCopy, err := s.books.FindCopy(key)
		if err != nil {
			continue
		}
		bookCopy.Lock()
		bookCopy.CancelReservation(id)
		bookCopy.Unlock()

		member.Lock()
		member.RemoveReserved(key)
		member.Unlock()
	}

	if err := s.members.Remove(id); err != nil {
		return err
	}
	log.Printf("🪪 Member removed: %s", id)
	return nil
}

func (s *MemberService) toMemberResponse(member *domain.Member) MemberResponse {
	member.Lock()
	defer member.Unlock()

	return MemberResponse{
		ID:              member.ID(),
		Name:            member.Name(),
		MembershipStart: member.Membership().StartAt(),
		MembershipEnd:   member.Membership().EndAt(),
		Active:          member.Membership().IsActive(s.now()),
		IssuedCopies:    member.IssuedCopies(),
		ReservedCopies:  member.ReservedCopies(),
	}
}
