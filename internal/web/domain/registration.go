package domain

import "time"

// RegistrationAttempt tracks one browser's progress through the registration
// workflow. It is keyed by the fingerprint of an opaque token held in the
// registrant's cookie, carries its own expiry, and counts failed code
// submissions so an attacker can't grind the code space.
type RegistrationAttempt struct {
	TokenHash string
	Email     string
	CodeHash  string
	Attempts  int
	Verified  bool
	ExpiresAt time.Time
	CreatedAt time.Time
}
