package memstore

import (
	"testing"
	"time"

	"libralend/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var day0 = time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)

func issuedCopy(t *testing.T, memberID string, now time.Time) (*domain.BookCopy, *domain.Issuance) {
	t.Helper()
	location, err := domain.NewShelfLocation(domain.SubjectFantasy, 1, 1)
	require.NoError(t, err)
	book, err := domain.NewBook("9780747532699", "Harry Potter and the Philosopher's Stone", "J.K. Rowling", 223, domain.SubjectFantasy, "Bloomsbury", day0.AddDate(-20, 0, 0))
	require.NoError(t, err)
	bookCopy, err := book.AddCopy(location)
	require.NoError(t, err)

	bookCopy.Lock()
	issuance, err := bookCopy.Issue(memberID, now, 10)
	bookCopy.Unlock()
	require.NoError(t, err)
	return bookCopy, issuance
}

func TestHistoryStoreAppendOrder(t *testing.T) {
	store := NewHistoryStore()
	_, first := issuedCopy(t, "m1", day0)
	_, second := issuedCopy(t, "m2", day0.AddDate(0, 0, 1))

	store.AppendIssuance(first)
	store.AppendIssuance(second)

	records := store.Issuances()
	require.Len(t, records, 2)
	assert.Equal(t, "m1", records[0].MemberID)
	assert.Equal(t, "m2", records[1].MemberID)
	assert.Equal(t, 2, store.IssuanceCount())
}

func TestHistoryStoreRecordsSurviveClose(t *testing.T) {
	store := NewHistoryStore()
	bookCopy, issuance := issuedCopy(t, "m1", day0)
	store.AppendIssuance(issuance)

	open := store.Issuances()[0]
	assert.Nil(t, open.ReturnedAt)

	// Returning the copy closes the shared record; the next snapshot sees it.
	bookCopy.Lock()
	_, err := bookCopy.Return(day0.AddDate(0, 0, 13), 5)
	bookCopy.Unlock()
	require.NoError(t, err)

	closed := store.Issuances()[0]
	require.NotNil(t, closed.ReturnedAt)
	require.NotNil(t, closed.Fine)
	assert.Equal(t, 15, closed.Fine.Amount)

	// The earlier snapshot is detached and unchanged.
	assert.Nil(t, open.ReturnedAt)
}

func TestHistoryStoreOverdueIssuances(t *testing.T) {
	store := NewHistoryStore()
	_, onTime := issuedCopy(t, "m1", day0)
	returnedCopy, returned := issuedCopy(t, "m2", day0)
	store.AppendIssuance(onTime)
	store.AppendIssuance(returned)

	returnedCopy.Lock()
	_, err := returnedCopy.Return(day0.AddDate(0, 0, 20), 5)
	returnedCopy.Unlock()
	require.NoError(t, err)

	// Day 15: m1's loan (due day 10) is open and late, m2's is closed.
	overdue := store.OverdueIssuances(day0.AddDate(0, 0, 15))
	require.Len(t, overdue, 1)
	assert.Equal(t, "m1", overdue[0].MemberID)
}

func TestHistoryStoreReservations(t *testing.T) {
	store := NewHistoryStore()
	key := domain.CopyKey{ISBN: "111", Number: 1}

	store.AppendReservation(domain.Reservation{Copy: key, MemberID: "m1", ReservedAt: day0})
	store.AppendReservation(domain.Reservation{Copy: key, MemberID: "m2", ReservedAt: day0})

	reservations := store.Reservations()
	require.Len(t, reservations, 2)
	assert.Equal(t, "m1", reservations[0].MemberID)
	assert.Equal(t, 2, store.ReservationCount())
}
