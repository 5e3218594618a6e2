package domain

import "time"

// Invitation is a one-time registration code issued for a single email. Only
// the code's fingerprint is stored. At most one row may exist per email;
// rows are never deleted, only marked consumed.
type Invitation struct {
	ID        string
	Email     string
	CodeHash  string // sha256 fingerprint of the raw code
	Consumed  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
