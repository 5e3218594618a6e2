package domain

import "time"

// Role is an enumerated account role. Kept as a typed string rather than a
// boolean flag so adding roles later doesn't ripple through guard logic.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

func (r Role) Valid() bool { return r == RoleUser || r == RoleAdmin }

func (r Role) String() string { return string(r) }

// Status is the account lifecycle state. The only transition in scope is
// active -> disabled, and it is one-way.
type Status string

const (
	StatusActive   Status = "active"
	StatusDisabled Status = "disabled"
)

func (s Status) String() string { return string(s) }

type Account struct {
	ID           string
	Email        string // globally unique, case-sensitive
	PasswordHash string // argon2id PHC encoded
	Role         Role
	Status       Status
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
