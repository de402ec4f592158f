package domain

import "time"

// Session is one run of the planning pipeline for a user.
type Session struct {
	ID        string
	UserID    string
	CreatedAt time.Time
}

// StepRecord is one entry of a session's step log. Input and Output hold
// the payloads already encoded for storage, possibly sealed.
type StepRecord struct {
	ID        int64
	SessionID string
	Name      StepName
	Input     string
	Output    string
	StartedAt time.Time
	EndedAt   time.Time
}

// PlanSnapshot is the stored copy of the plan a session returned, with the
// signals it was built from. Both fields are encoded payloads.
type PlanSnapshot struct {
	SessionID string
	Plan      string
	Signals   string
	CreatedAt time.Time
}
