package domain

import "time"

// Membership is a member's time-bounded authorization to transact.
// The end date is exclusive: the membership is active strictly before it.
// Membership is owned by a Member and guarded by the member's lock.
type Membership struct {
	startAt time.Time
	endAt   time.Time
}

// NewMembership opens a fresh membership window starting now.
func NewMembership(now time.Time, validityDays int) *Membership {
	return &Membership{
		startAt: now,
		endAt:   now.AddDate(0, 0, validityDays),
	}
}

func (m *Membership) StartAt() time.Time { return m.startAt }
func (m *Membership) EndAt() time.Time   { return m.endAt }

// IsActive reports whether the membership window covers the given instant.
func (m *Membership) IsActive(now time.Time) bool {
	return now.Before(m.endAt)
}

// EnsureActive fails with ErrMembershipExpired when the window has lapsed.
func (m *Membership) EnsureActive(now time.Time) error {
	if !m.IsActive(now) {
		return ErrMembershipExpired
	}
	return nil
}

// Renew extends an active membership by the validity period, counted from the
// current end date. A lapsed membership restarts with a fresh window from now;
// renewal is never additive past an expiry.
func (m *Membership) Renew(now time.Time, validityDays int) {
	if m.IsActive(now) {
		m.endAt = m.endAt.AddDate(0, 0, validityDays)
		return
	}
	m.startAt = now
	m.endAt = now.AddDate(0, 0, validityDays)
}

// Cancel forces immediate expiry. The end date never moves before the start.
func (m *Membership) Cancel(now time.Time) {
	if now.Before(m.startAt) {
		m.endAt = m.startAt
		return
	}
	m.endAt = now
}
