package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssuanceDueDate(t *testing.T) {
	issuance := newIssuance(CopyKey{ISBN: "111", Number: 1}, "m1", day0, 10)

	assert.Equal(t, onDay(10), issuance.DueAt())
	assert.False(t, issuance.Closed())
	assert.Nil(t, issuance.Fine())
}

func TestIssuanceOverdue(t *testing.T) {
	issuance := newIssuance(CopyKey{ISBN: "111", Number: 1}, "m1", day0, 10)

	assert.False(t, issuance.Overdue(onDay(10)))
	assert.True(t, issuance.Overdue(onDay(11)))

	issuance.close(onDay(11), 5)
	assert.False(t, issuance.Overdue(onDay(11)), "a closed issuance is never overdue")
}

func TestIssuanceCloseOnTimeCarriesNoFine(t *testing.T) {
	issuance := newIssuance(CopyKey{ISBN: "111", Number: 1}, "m1", day0, 10)

	issuance.close(onDay(9), 5)

	assert.True(t, issuance.Closed())
	assert.Nil(t, issuance.Fine())
}

func TestIssuanceCloseLateComputesFine(t *testing.T) {
	issuance := newIssuance(CopyKey{ISBN: "111", Number: 1}, "m1", day0, 10)

	// Issued day 0, due day 10, returned day 13: 3 days late at 5 per day.
	issuance.close(onDay(13), 5)

	fine := issuance.Fine()
	require.NotNil(t, fine)
	assert.Equal(t, issuance.ID(), fine.IssuanceID)
	assert.Equal(t, 3, fine.DaysLate)
	assert.Equal(t, 15, fine.Amount)
}

func TestWholeDaysLateCountsFullDaysOnly(t *testing.T) {
	due := onDay(10)

	assert.Equal(t, 0, wholeDaysLate(due, due))
	assert.Equal(t, 0, wholeDaysLate(due, due.Add(23*time.Hour)))
	assert.Equal(t, 1, wholeDaysLate(due, due.Add(24*time.Hour)))
	assert.Equal(t, 1, wholeDaysLate(due, due.Add(47*time.Hour)))
	assert.Equal(t, 0, wholeDaysLate(due, due.Add(-time.Hour)))
}

func TestIssuanceSnapshotIsDetached(t *testing.T) {
	issuance := newIssuance(CopyKey{ISBN: "111", Number: 1}, "m1", day0, 10)

	before := issuance.Snapshot()
	issuance.close(onDay(15), 5)
	after := issuance.Snapshot()

	assert.Nil(t, before.ReturnedAt)
	assert.Nil(t, before.Fine)
	require.NotNil(t, after.ReturnedAt)
	assert.Equal(t, onDay(15), *after.ReturnedAt)
	require.NotNil(t, after.Fine)
	assert.Equal(t, 25, after.Fine.Amount)
}
