package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLocation(t *testing.T) ShelfLocation {
	t.Helper()
	location, err := NewShelfLocation(SubjectFantasy, 2, 4)
	require.NoError(t, err)
	return location
}

func testCopy(t *testing.T) *BookCopy {
	t.Helper()
	return newBookCopy("9780747532699", 1, testLocation(t))
}

func TestBookCopyIssueAndReturn(t *testing.T) {
	c := testCopy(t)
	assert.True(t, c.AvailableToIssue())

	issuance, err := c.Issue("m1", day0, 10)
	require.NoError(t, err)
	assert.False(t, c.AvailableToIssue())
	assert.Equal(t, "m1", issuance.MemberID())

	holder, ok := c.HeldBy()
	require.True(t, ok)
	assert.Equal(t, "m1", holder)

	done, err := c.Return(onDay(5), 5)
	require.NoError(t, err)
	assert.True(t, c.AvailableToIssue())
	assert.True(t, done.Closed())
	assert.Nil(t, done.Fine())
}

func TestBookCopyIssueWhileIssuedFails(t *testing.T) {
	c := testCopy(t)
	_, err := c.Issue("m1", day0, 10)
	require.NoError(t, err)

	_, err = c.Issue("m2", day0, 10)
	assert.ErrorIs(t, err, ErrCopyAlreadyIssued)

	// The failed issue changed nothing.
	holder, _ := c.HeldBy()
	assert.Equal(t, "m1", holder)
}

func TestBookCopyReturnWhileAvailableFails(t *testing.T) {
	c := testCopy(t)
	_, err := c.Return(day0, 5)
	assert.ErrorIs(t, err, ErrCopyNotIssued)
}

func TestBookCopyReserveRequiresIssuedCopy(t *testing.T) {
	c := testCopy(t)

	_, err := c.Reserve("m2", day0, 3)
	assert.ErrorIs(t, err, ErrCopyNotReservable)
}

func TestBookCopyReserveFIFOAndCap(t *testing.T) {
	c := testCopy(t)
	_, err := c.Issue("m1", day0, 10)
	require.NoError(t, err)

	for i, memberID := range []string{"m2", "m3", "m4"} {
		_, err := c.Reserve(memberID, onDay(i), 3)
		require.NoError(t, err)
	}
	assert.Equal(t, 3, c.QueueLength())

	// Queue is full at three.
	_, err = c.Reserve("m5", onDay(3), 3)
	assert.ErrorIs(t, err, ErrCopyNotReservable)

	queue := c.Reservations()
	require.Len(t, queue, 3)
	assert.Equal(t, "m2", queue[0].MemberID)
	assert.Equal(t, "m3", queue[1].MemberID)
	assert.Equal(t, "m4", queue[2].MemberID)
}

func TestBookCopyReserveRejectsHolderAndDuplicates(t *testing.T) {
	c := testCopy(t)
	_, err := c.Issue("m1", day0, 10)
	require.NoError(t, err)

	_, err = c.Reserve("m1", day0, 3)
	assert.ErrorIs(t, err, ErrCopyNotReservable, "holder cannot queue behind themselves")

	_, err = c.Reserve("m2", day0, 3)
	require.NoError(t, err)
	_, err = c.Reserve("m2", onDay(1), 3)
	assert.ErrorIs(t, err, ErrCopyNotReservable, "member never appears in the queue twice")
	assert.Equal(t, 1, c.QueueLength())
}

func TestBookCopyCancelReservationIsLenient(t *testing.T) {
	c := testCopy(t)
	_, err := c.Issue("m1", day0, 10)
	require.NoError(t, err)
	_, err = c.Reserve("m2", day0, 3)
	require.NoError(t, err)

	assert.True(t, c.CancelReservation("m2"))
	assert.False(t, c.CancelReservation("m2"), "cancelling an absent reservation is a no-op")
	assert.Equal(t, 0, c.QueueLength())
}

func TestBookCopyIssueConsumesReservation(t *testing.T) {
	c := testCopy(t)
	_, err := c.Issue("m1", day0, 10)
	require.NoError(t, err)
	_, err = c.Reserve("m2", day0, 3)
	require.NoError(t, err)
	_, err = c.Reserve("m3", day0, 3)
	require.NoError(t, err)

	_, err = c.Return(onDay(5), 5)
	require.NoError(t, err)

	// Issuing to a queued member removes exactly their entry.
	_, err = c.Issue("m2", onDay(5), 10)
	require.NoError(t, err)
	assert.False(t, c.HasReservationFor("m2"))
	assert.True(t, c.HasReservationFor("m3"))
	assert.Equal(t, 1, c.QueueLength())
}

func TestBookCopyRelocate(t *testing.T) {
	c := testCopy(t)
	location, err := NewShelfLocation(SubjectHistory, 7, 1)
	require.NoError(t, err)

	c.Relocate(location)
	assert.Equal(t, location, c.Location())
	assert.Equal(t, "HISTORY/shelf-7/pos-1", c.Location().String())
}
