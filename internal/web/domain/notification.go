package domain

import "time"

// Notification records a successfully delivered outbound message. The
// content fingerprint doubles as an idempotency key: the notifier skips
// dispatch when an identical message was already sent.
type Notification struct {
	ID          string
	Recipient   string
	Subject     string
	MessageHash string
	SentAt      time.Time
}
