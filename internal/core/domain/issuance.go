package domain

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// CopyKey identifies a physical copy: the book's ISBN plus the copy number
// unique within that book. It is the only reference lending records keep to a
// copy, never used for lifetime management.
type CopyKey struct {
	ISBN   string `json:"isbn"`
	Number int    `json:"number"`
}

func (k CopyKey) String() string {
	return fmt.Sprintf("%s#%d", k.ISBN, k.Number)
}

// Issuance is a loan record: who holds a copy, since when, due when, and the
// resulting fine if it came back late. While the loan is open the owning
// BookCopy references it as its active issuance; after close it lives on only
// in the history log, immutable from then on.
//
// The record is shared between the copy and the history store, so the mutable
// tail (return date, fine) is guarded by the record's own lock: the return
// transaction closes it while history readers may be snapshotting.
type Issuance struct {
	mu sync.Mutex

	id       string
	copy     CopyKey
	memberID string
	issuedAt time.Time
	dueAt    time.Time

	returnedAt *time.Time
	fine       *Fine
}

func newIssuance(copy CopyKey, memberID string, now time.Time, loanDays int) *Issuance {
	return &Issuance{
		id:       uuid.NewString(),
		copy:     copy,
		memberID: memberID,
		issuedAt: now,
		dueAt:    now.AddDate(0, 0, loanDays),
	}
}

func (i *Issuance) ID() string          { return i.id }
func (i *Issuance) Copy() CopyKey       { return i.copy }
func (i *Issuance) MemberID() string    { return i.memberID }
func (i *Issuance) IssuedAt() time.Time { return i.issuedAt }
func (i *Issuance) DueAt() time.Time    { return i.dueAt }

// Closed reports whether the copy has been returned.
func (i *Issuance) Closed() bool {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.returnedAt != nil
}

// Overdue reports whether an open issuance is past its due date.
func (i *Issuance) Overdue(now time.Time) bool {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.returnedAt == nil && now.After(i.dueAt)
}

// Fine returns the fine attached at close time, or nil for an open issuance
// or an on-time return.
func (i *Issuance) Fine() *Fine {
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.fine == nil {
		return nil
	}
	fine := *i.fine
	return &fine
}

// close stamps the return date and computes the fine. The return date is set
// exactly once; closing an already-closed issuance is a bug in the caller.
func (i *Issuance) close(now time.Time, finePerDay int) {
	i.mu.Lock()
	defer i.mu.Unlock()

	returnedAt := now
	i.returnedAt = &returnedAt

	daysLate := wholeDaysLate(i.dueAt, now)
	if daysLate > 0 {
		i.fine = &Fine{
			IssuanceID: i.id,
			DaysLate:   daysLate,
			Amount:     daysLate * finePerDay,
		}
	}
}

// wholeDaysLate counts full 24h days between due and return, never negative.
func wholeDaysLate(dueAt, returnedAt time.Time) int {
	if !returnedAt.After(dueAt) {
		return 0
	}
	return int(returnedAt.Sub(dueAt) / (24 * time.Hour))
}

// IssuanceRecord is the defensive snapshot of an issuance handed outside the
// transaction boundary.
type IssuanceRecord struct {
	ID         string     `json:"id"`
	Copy       CopyKey    `json:"copy"`
	MemberID   string     `json:"member_id"`
	IssuedAt   time.Time  `json:"issued_at"`
	DueAt      time.Time  `json:"due_at"`
	ReturnedAt *time.Time `json:"returned_at,omitempty"`
	Fine       *Fine      `json:"fine,omitempty"`
}

// Snapshot copies the record, cloning the mutable tail.
func (i *Issuance) Snapshot() IssuanceRecord {
	i.mu.Lock()
	defer i.mu.Unlock()

	out := IssuanceRecord{
		ID:       i.id,
		Copy:     i.copy,
		MemberID: i.memberID,
		IssuedAt: i.issuedAt,
		DueAt:    i.dueAt,
	}
	if i.returnedAt != nil {
		returnedAt := *i.returnedAt
		out.ReturnedAt = &returnedAt
	}
	if i.fine != nil {
		fine := *i.fine
		out.Fine = &fine
	}
	return out
}
