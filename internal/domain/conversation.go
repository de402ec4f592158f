package domain

import (
	"strings"
	"time"
)

// ConversationMessage is one turn of the conversation a plan is built from.
type ConversationMessage struct {
	Role    Role   `json:"role" validate:"required,oneof=user assistant system"`
	Content string `json:"content"`
}

// MergeConversation joins message contents with newlines so message
// boundaries survive into keyword and snippet matching.
func MergeConversation(msgs []ConversationMessage) string {
	parts := make([]string, 0, len(msgs))
	for _, m := range msgs {
		parts = append(parts, m.Content)
	}
	return strings.Join(parts, "\n")
}

// DefaultAvailableMinutes applies when a request leaves available minutes unset.
const DefaultAvailableMinutes = 15

// MaxAvailableMinutes bounds how much time a single plan may claim.
const MaxAvailableMinutes = 480

// UserContext is the per-request context supplied alongside a conversation.
type UserContext struct {
	UserID           string   `json:"user_id" validate:"required,nonblank"`
	Mood             string   `json:"mood,omitempty"`
	AvailableMinutes int      `json:"available_minutes" validate:"min=1,max=480"`
	FocusArea        string   `json:"focus_area,omitempty"`
	Preferences      []string `json:"preferences,omitempty"`
	Constraints      []string `json:"constraints,omitempty"`
	Timezone         string   `json:"timezone,omitempty" validate:"omitempty,timezone"`
}

// WithDefaults returns a copy of uc with unset fields filled in.
func (uc UserContext) WithDefaults() UserContext {
	if uc.AvailableMinutes == 0 {
		uc.AvailableMinutes = DefaultAvailableMinutes
	}
	return uc
}

// Location resolves the declared timezone, falling back to UTC.
func (uc UserContext) Location() *time.Location {
	if uc.Timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(uc.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
