package lifequality

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/wellplan/internal/domain"
)

const rollingWeight = 0.7

const trendSensitivity = 0.05

// UpdateMetrics folds one session into the user's metrics. Day boundaries
// are taken in now's location; a same-day session keeps the streak, the next
// calendar day extends it, and any other gap restarts it at 1.
func UpdateMetrics(prev *domain.UserMetrics, userID string, reflection float64, now time.Time) domain.UserMetrics {
	m := domain.UserMetrics{
		UserID:                 userID,
		Streak:                 1,
		TotalSessions:          1,
		LastSeen:               now,
		LastReflectionScore:    reflection,
		RollingReflectionScore: reflection,
		UpdatedAt:              now,
	}
	if prev == nil {
		return m
	}

	m.TotalSessions = prev.TotalSessions + 1
	m.RollingReflectionScore = rollingWeight*prev.RollingReflectionScore + (1-rollingWeight)*reflection

	if !prev.LastSeen.IsZero() {
		switch dayDiff(prev.LastSeen, now) {
		case 0:
			m.Streak = prev.Streak
		case 1:
			m.Streak = prev.Streak + 1
		}
	}
	if m.Streak <= 0 {
		m.Streak = 1
	}
	return m
}

// dayDiff counts calendar days from a to b in b's location.
func dayDiff(a, b time.Time) int {
	loc := b.Location()
	ay, am, ad := a.In(loc).Date()
	by, bm, bd := b.Date()
	da := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	db := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int(db.Sub(da).Hours() / 24)
}

// Nudge builds the short personalised message shown with a plan. It combines
// a streak acknowledgement with a note on the rolling reflection trend.
func Nudge(prev *domain.UserMetrics, cur domain.UserMetrics, reflection float64) string {
	var parts []string
	switch {
	case cur.Streak >= 3:
		parts = append(parts, fmt.Sprintf("You're on a %d-day streak, great consistency.", cur.Streak))
	case cur.Streak == 2:
		parts = append(parts, "Two days in a row! Momentum matters.")
	case cur.Streak == 1:
		parts = append(parts, "Thanks for checking in today, every reflection counts.")
	}

	if prev != nil {
		delta := reflection - prev.RollingReflectionScore
		switch {
		case delta > trendSensitivity:
			parts = append(parts, "Reflection score is trending up. Keep leaning on what helps.")
		case delta < -trendSensitivity:
			parts = append(parts, "Noticed a dip, consider a lighter activity or support reach-out.")
		}
	} else {
		parts = append(parts, "We'll track how today's plan supports your wellbeing.")
	}
	return strings.Join(parts, " ")
}
