package domain

import "time"

// UserMetrics is the per-user longitudinal record updated once per session.
type UserMetrics struct {
	UserID                 string    `json:"user_id"`
	Streak                 int       `json:"streak"`
	TotalSessions          int       `json:"total_sessions"`
	LastSeen               time.Time `json:"last_seen"`
	LastReflectionScore    float64   `json:"last_reflection_score"`
	RollingReflectionScore float64   `json:"rolling_reflection_score"`
	UpdatedAt              time.Time `json:"updated_at"`
}

// LifeQualitySnapshot is one persisted point of the life quality history.
type LifeQualitySnapshot struct {
	Timestamp time.Time `json:"timestamp"`
	Score     float64   `json:"score"`
}

// LifeQualityEntry is a history row as stored, including the inputs that
// produced the score.
type LifeQualityEntry struct {
	SessionID string
	UserID    string
	Score     float64
	Details   LifeQualityDetails
	CreatedAt time.Time
}

// LifeQualityDetails records how a life quality score was derived.
type LifeQualityDetails struct {
	RawScore       float64  `json:"raw_score"`
	SentimentDelta float64  `json:"sentiment_delta"`
	Adherence      float64  `json:"adherence"`
	ThemePenalty   float64  `json:"theme_penalty"`
	PreviousScore  *float64 `json:"previous_score,omitempty"`
}

// LifeQualityReport is what a session returns about the life quality index.
type LifeQualityReport struct {
	Score     float64               `json:"score"`
	Trend     Trend                 `json:"trend"`
	Snapshots []LifeQualitySnapshot `json:"snapshots"`
	Details   LifeQualityDetails    `json:"details"`
}
