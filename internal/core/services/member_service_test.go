package services

import (
	"testing"
	"time"

	"libralend/internal/adapters/memstore"
	"libralend/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMemberFixture(t *testing.T) (*MemberService, *lendingFixture) {
	t.Helper()
	f := newLendingFixture(t)
	return f.member, f
}

func TestRegisterMember(t *testing.T) {
	svc, _ := newMemberFixture(t)

	member, err := svc.RegisterMember(&RegisterMemberInput{Name: "Asha Rao"})
	require.NoError(t, err)
	assert.NotEmpty(t, member.ID)
	assert.Equal(t, day0, member.MembershipStart)
	assert.Equal(t, onDay(365), member.MembershipEnd)
	assert.True(t, member.Active)
	assert.Empty(t, member.IssuedCopies)

	_, err = svc.RegisterMember(&RegisterMemberInput{Name: "  "})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestRenewMembershipArithmetic(t *testing.T) {
	svc, f := newMemberFixture(t)
	member, err := svc.RegisterMember(&RegisterMemberInput{Name: "Asha Rao"})
	require.NoError(t, err)

	// Renewing on day 100 extends from the old end date.
	f.clock = onDay(100)
	renewed, err := svc.RenewMembership(member.ID)
	require.NoError(t, err)
	assert.Equal(t, day0, renewed.MembershipStart)
	assert.Equal(t, onDay(730), renewed.MembershipEnd)

	// A lapsed membership restarts from the renewal date instead.
	f.clock = onDay(800)
	restarted, err := svc.RenewMembership(member.ID)
	require.NoError(t, err)
	assert.Equal(t, onDay(800), restarted.MembershipStart)
	assert.Equal(t, onDay(1165), restarted.MembershipEnd)
}

func TestCancelMembershipBlocksLending(t *testing.T) {
	svc, f := newMemberFixture(t)
	keys := f.addBookWithCopies(t, "111", 1)
	member, err := svc.RegisterMember(&RegisterMemberInput{Name: "Asha Rao"})
	require.NoError(t, err)

	f.clock = onDay(1)
	require.NoError(t, svc.CancelMembership(member.ID))

	_, err = f.lending.IssueCopy(keys[0], member.ID)
	assert.ErrorIs(t, err, domain.ErrMembershipExpired)
}

func TestRemoveMemberRejectedWhileHoldingCopies(t *testing.T) {
	svc, f := newMemberFixture(t)
	keys := f.addBookWithCopies(t, "111", 1)
	member, err := svc.RegisterMember(&RegisterMemberInput{Name: "Asha Rao"})
	require.NoError(t, err)

	_, err = f.lending.IssueCopy(keys[0], member.ID)
	require.NoError(t, err)

	assert.ErrorIs(t, svc.RemoveMember(member.ID), domain.ErrMemberHasCopies)

	_, err = f.lending.ReturnCopy(keys[0], member.ID)
	require.NoError(t, err)
	require.NoError(t, svc.RemoveMember(member.ID))

	_, err = svc.GetMember(member.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRemoveMemberCancelsQueuedReservations(t *testing.T) {
	svc, f := newMemberFixture(t)
	keys := f.addBookWithCopies(t, "111", 1)
	holder := f.addMember(t, "Holder")
	member, err := svc.RegisterMember(&RegisterMemberInput{Name: "Asha Rao"})
	require.NoError(t, err)

	_, err = f.lending.IssueCopy(keys[0], holder)
	require.NoError(t, err)
	_, err = f.lending.ReserveCopy(keys[0], member.ID)
	require.NoError(t, err)

	require.NoError(t, svc.RemoveMember(member.ID))

	bookCopy, err := f.books.FindCopy(keys[0])
	require.NoError(t, err)
	bookCopy.Lock()
	defer bookCopy.Unlock()
	assert.Equal(t, 0, bookCopy.QueueLength())
}

func TestAllMembers(t *testing.T) {
	svc := NewMemberService(memstore.NewMemberStore(), memstore.NewBookStore(), testConfig())
	svc.now = func() time.Time { return day0 }

	assert.Empty(t, svc.AllMembers())
	_, err := svc.RegisterMember(&RegisterMemberInput{Name: "Asha Rao"})
	require.NoError(t, err)
	_, err = svc.RegisterMember(&RegisterMemberInput{Name: "Ben Carter"})
	require.NoError(t, err)
	assert.Len(t, svc.AllMembers(), 2)
}
