package domain

import (
	"fmt"
	"sync"
	"time"
)

// BookCopy is the physical unit that can be issued or reserved. It owns its
// active issuance (at most one) and a bounded FIFO queue of reservations.
//
// Each copy carries its own lock. The lending service takes it for the
// duration of a whole transaction, so every method below assumes the lock is
// already held; none of them lock internally.
type BookCopy struct {
	mu sync.Mutex

	isbn     string
	number   int
	location ShelfLocation

	active *Issuance
	queue  []*Reservation
}

func newBookCopy(isbn string, number int, location ShelfLocation) *BookCopy {
	return &BookCopy{
		isbn:     isbn,
		number:   number,
		location: location,
	}
}

// Lock acquires the copy's critical section. Held by the lending service for
// the full issue/return/reserve transaction, and briefly by aggregate queries.
func (c *BookCopy) Lock()   { c.mu.Lock() }
func (c *BookCopy) Unlock() { c.mu.Unlock() }

func (c *BookCopy) Key() CopyKey {
	return CopyKey{ISBN: c.isbn, Number: c.number}
}

func (c *BookCopy) Number() int             { return c.number }
func (c *BookCopy) Location() ShelfLocation { return c.location }

// Relocate moves the copy to a new shelf spot. No invariant to violate.
func (c *BookCopy) Relocate(location ShelfLocation) {
	c.location = location
}

// AvailableToIssue reports the Available state: no active issuance.
func (c *BookCopy) AvailableToIssue() bool {
	return c.active == nil
}

// AvailableToReserve reports whether a new reservation may join the queue:
// only a copy that is issued out and whose queue is below capacity.
func (c *BookCopy) AvailableToReserve(maxQueue int) bool {
	return c.active != nil && len(c.queue) < maxQueue
}

// ActiveIssuance returns the open issuance, or nil while the copy is available.
func (c *BookCopy) ActiveIssuance() *Issuance {
	return c.active
}

// HeldBy returns the member currently holding the copy.
func (c *BookCopy) HeldBy() (string, bool) {
	if c.active == nil {
		return "", false
	}
	return c.active.MemberID(), true
}

// Issue transitions Available -> Issued and returns the new open issuance.
// If the member had a queued reservation on this copy, granting the issuance
// consumes their place in line as part of the same transition. Recording the
// issuance in history is the orchestrator's job, not the copy's.
func (c *BookCopy) Issue(memberID string, now time.Time, loanDays int) (*Issuance, error) {
	if c.active != nil {
		return nil, fmt.Errorf("%w: copy %s held by member %s", ErrCopyAlreadyIssued, c.Key(), c.active.MemberID())
	}
	c.active = newIssuance(c.Key(), memberID, now, loanDays)
	c.removeReservation(memberID)
	return c.active, nil
}

// Return transitions Issued -> Available, closes the issuance with the return
// date and any late fine, and hands the completed record back for filing.
func (c *BookCopy) Return(now time.Time, finePerDay int) (*Issuance, error) {
	if c.active == nil {
		return nil, fmt.Errorf("%w: copy %s", ErrCopyNotIssued, c.Key())
	}
	done := c.active
	done.close(now, finePerDay)
	c.active = nil
	return done, nil
}

// Reserve appends a claim to the tail of the queue. Only an issued copy can be
// reserved (there is nothing to queue behind on an available one), the queue
// is bounded, and a member never appears in it twice.
func (c *BookCopy) Reserve(memberID string, now time.Time, maxQueue int) (*Reservation, error) {
	if c.active == nil {
		return nil, fmt.Errorf("%w: copy %s is available", ErrCopyNotReservable, c.Key())
	}
	if c.active.MemberID() == memberID {
		return nil, fmt.Errorf("%w: member already holds copy %s", ErrCopyNotReservable, c.Key())
	}
	if len(c.queue) >= maxQueue {
		return nil, fmt.Errorf("%w: reservation queue for copy %s is full", ErrCopyNotReservable, c.Key())
	}
	if c.hasReservationFor(memberID) {
		return nil, fmt.Errorf("%w: member already queued for copy %s", ErrCopyNotReservable, c.Key())
	}
	res := &Reservation{
		Copy:       c.Key(),
		MemberID:   memberID,
		ReservedAt: now,
	}
	c.queue = append(c.queue, res)
	return res, nil
}

// CancelReservation removes the member's queue entry if present. Cancelling a
// reservation that does not exist is a deliberate no-op, not an error.
func (c *BookCopy) CancelReservation(memberID string) bool {
	return c.removeReservation(memberID)
}

// HasReservationFor reports whether the member is queued on this copy.
func (c *BookCopy) HasReservationFor(memberID string) bool {
	return c.hasReservationFor(memberID)
}

// QueueLength returns the current number of queued reservations.
func (c *BookCopy) QueueLength() int {
	return len(c.queue)
}

// Reservations returns the queue in FIFO order as a defensive snapshot.
func (c *BookCopy) Reservations() []Reservation {
	out := make([]Reservation, 0, len(c.queue))
	for _, r := range c.queue {
		out = append(out, *r)
	}
	return out
}

func (c *BookCopy) hasReservationFor(memberID string) bool {
	for _, r := range c.queue {
		if r.MemberID == memberID {
			return true
		}
	}
	return false
}

func (c *BookCopy) removeReservation(memberID string) bool {
	for i, r := range c.queue {
		if r.MemberID == memberID {
			c.queue = append(c.queue[:i], c.queue[i+1:]...)
			return true
		}
	}
	return false
}
