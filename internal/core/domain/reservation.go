package domain

import "time"

// Reservation is an immutable queued claim by a member on a currently issued
// copy. It lives in the copy's FIFO queue until the member is granted the
// issuance (the claim is consumed) or cancels it.
type Reservation struct {
	Copy       CopyKey   `json:"copy"`
	MemberID   string    `json:"member_id"`
	ReservedAt time.Time `json:"reserved_at"`
}
