// Package session records recommendation sessions: their events in the JSONL
// log while they run, and their outcome in a SQLite history afterwards.
package session

import "time"

// Outcome values stored for a finished session.
const (
	OutcomeConfirmed = "confirmed"
	OutcomeFailed    = "failed"
)

// Session is a finished recommendation session.
type Session struct {
	ID        string
	Goal      string
	Outcome   string // confirmed, failed
	Strategy  string // empty for failed sessions
	Answers   []Answer
	Reasoning []string
	CreatedAt time.Time
}

// Answer is one recorded answer within a session, in answer order.
type Answer struct {
	Step  string
	Value string
}

// Summary provides a high-level view of a session for listing.
type Summary struct {
	ID        string
	Goal      string
	Outcome   string
	Strategy  string
	Answers   int
	CreatedAt time.Time
}
