package domain

import "time"

// Session is a server-held login session keyed by the fingerprint of the
// opaque token the browser carries. Flash holds at most one pending notice,
// cleared when read.
type Session struct {
	TokenHash string
	AccountID string
	Email     string
	Role      Role
	Flash     string

	// EditTarget is the URL of the thread whose title the user is
	// currently editing, or empty. The two-step rename flow parks it
	// here between the edit and save posts.
	EditTarget string

	ExpiresAt time.Time
	CreatedAt time.Time
}
