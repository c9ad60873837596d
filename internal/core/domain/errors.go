package domain

import "errors"

// Construction and lookup errors
var (
	ErrValidation = errors.New("invalid input")
	ErrDuplicate  = errors.New("duplicate entry")
	ErrNotFound   = errors.New("resource not found")
)

// Membership errors
var (
	ErrMembershipExpired = errors.New("membership is not active")
	ErrMemberHasCopies   = errors.New("member still holds issued copies")
)

// Copy state machine errors
var (
	ErrCopyAlreadyIssued = errors.New("copy is already issued")
	ErrCopyNotIssued     = errors.New("copy is not issued")
	ErrCopyNotReservable = errors.New("copy cannot be reserved")
	ErrCopyInUse         = errors.New("copy is currently issued or reserved")
)

// Lending transaction errors
var (
	ErrIssuanceLimit     = errors.New("maximum active issuances reached for member")
	ErrNotIssuedByMember = errors.New("copy is not issued to this member")
)
