package domain

import "time"

// Role represents a staff user's role in the system
type Role string

const (
	RoleLibrarian Role = "LIBRARIAN"
	RoleAdmin     Role = "ADMIN"
)

// User represents a staff account operating the lending desk. Patrons are
// Members, not Users; every transaction is performed by staff on their behalf.
type User struct {
	ID        string
	Username  string
	Password  string // Hashed
	Role      Role
	IsActive  bool
	CreatedAt time.Time
}

// RefreshToken represents an issued refresh token, stored hashed
type RefreshToken struct {
	ID        string
	UserID    string
	TokenHash string
	ExpiresAt time.Time
	CreatedAt time.Time
	RevokedAt *time.Time
}
