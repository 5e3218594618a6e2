package domain

import "time"

// Thread is a monitored forum target owned by one account. The (AccountID,
// URL) pair is unique: a user cannot register the same target twice.
type Thread struct {
	ID           string
	AccountID    string
	Title        string
	URL          string
	ColorMessage string
	ColorQuote   string
	ColorSpoiler string
	Paused       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
