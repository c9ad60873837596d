package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var day0 = time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)

func onDay(n int) time.Time {
	return day0.AddDate(0, 0, n)
}

func TestMembershipActiveWindow(t *testing.T) {
	m := NewMembership(day0, 365)

	assert.True(t, m.IsActive(day0))
	assert.True(t, m.IsActive(onDay(364)))

	// The end date is exclusive.
	assert.False(t, m.IsActive(onDay(365)))
	assert.False(t, m.IsActive(onDay(400)))
}

func TestMembershipEnsureActive(t *testing.T) {
	m := NewMembership(day0, 365)

	require.NoError(t, m.EnsureActive(onDay(100)))
	assert.ErrorIs(t, m.EnsureActive(onDay(365)), ErrMembershipExpired)
}

func TestMembershipRenewWhileActiveExtends(t *testing.T) {
	m := NewMembership(day0, 365)

	m.Renew(onDay(100), 365)

	// Extension counts from the old end date, not from the renewal date.
	assert.Equal(t, day0, m.StartAt())
	assert.Equal(t, onDay(730), m.EndAt())
	assert.True(t, m.IsActive(onDay(729)))
	assert.False(t, m.IsActive(onDay(730)))
}

func TestMembershipRenewAfterLapseRestarts(t *testing.T) {
	m := NewMembership(day0, 365)

	m.Renew(onDay(400), 365)

	// No credit for the lapsed gap: a fresh window from the renewal date.
	assert.Equal(t, onDay(400), m.StartAt())
	assert.Equal(t, onDay(765), m.EndAt())
}

func TestMembershipCancel(t *testing.T) {
	m := NewMembership(day0, 365)

	m.Cancel(onDay(50))

	assert.False(t, m.IsActive(onDay(50)))
	assert.Equal(t, onDay(50), m.EndAt())
}

func TestMembershipCancelNeverMovesEndBeforeStart(t *testing.T) {
	m := NewMembership(day0, 365)

	m.Cancel(day0.AddDate(0, 0, -10))

	assert.Equal(t, day0, m.EndAt())
}
