package testutil

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/alexanderramin/wellplan/internal/domain"
	"github.com/alexanderramin/wellplan/internal/llm"
)

// Session options
type SessionOption func(*domain.Session)

func WithCreatedAt(t time.Time) SessionOption {
	return func(s *domain.Session) {
		s.CreatedAt = t
	}
}

func NewTestSession(userID string, opts ...SessionOption) *domain.Session {
	s := &domain.Session{
		ID:        uuid.New().String(),
		UserID:    userID,
		CreatedAt: time.Now().UTC(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Content options
type ContentOption func(*domain.ContentItem)

func WithSource(title, url string) ContentOption {
	return func(c *domain.ContentItem) {
		c.SourceTitle = title
		c.SourceURL = url
	}
}

func WithBody(body string) ContentOption {
	return func(c *domain.ContentItem) {
		c.Body = body
	}
}

func WithSummary(summary string) ContentOption {
	return func(c *domain.ContentItem) {
		c.Summary = summary
	}
}

func NewTestContent(id, title string, tags []string, opts ...ContentOption) domain.ContentItem {
	c := domain.ContentItem{
		ID:      id,
		Title:   title,
		Summary: title + " summary.",
		Body:    "Do the " + title + " activity. Notice how you feel afterwards.",
		Tags:    tags,
	}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// NewTestCorpus returns a small corpus covering the main themes.
func NewTestCorpus() []domain.ContentItem {
	return []domain.ContentItem{
		NewTestContent("ritual-breathing", "5-Minute Breathing Reset", []string{"stress", "breathing"},
			WithSummary("Slow breathing to calm stress."),
			WithBody("Inhale for four counts. Hold for four. Exhale slowly for six."),
			WithSource("Harvard Health", "https://www.health.harvard.edu/breathing")),
		NewTestContent("wind-down", "Evening Wind-Down", []string{"sleep"},
			WithSummary("A screen-free routine before bed to improve sleep."),
			WithBody("Dim the lights an hour before bed. Put your phone in another room. Read something light.")),
		NewTestContent("desk-stretch", "Desk Mobility Break", []string{"mobility", "energy"},
			WithSummary("Gentle stretches for a stiff back."),
			WithBody("Stand up and roll your shoulders. Reach overhead and lean to each side.")),
		NewTestContent("gratitude-three", "Three Good Things", []string{"gratitude", "mood"},
			WithSummary("Write down three things that went well."),
			WithBody("List three good things from today. Write why each happened.")),
	}
}

// NewTestConversation wraps texts as user messages.
func NewTestConversation(texts ...string) []domain.ConversationMessage {
	out := make([]domain.ConversationMessage, 0, len(texts))
	for _, t := range texts {
		out = append(out, domain.ConversationMessage{Role: domain.RoleUser, Content: t})
	}
	return out
}

// FakeLLM is a scripted llm.LLMClient. Responses are returned per task;
// a task with no scripted response returns Err or an empty string.
type FakeLLM struct {
	mu        sync.Mutex
	Responses map[llm.TaskType]string
	Err       error
	Requests  []llm.GenerateRequest
}

func NewFakeLLM(responses map[llm.TaskType]string) *FakeLLM {
	return &FakeLLM{Responses: responses}
}

func (f *FakeLLM) Generate(_ context.Context, req llm.GenerateRequest) (*llm.GenerateResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Requests = append(f.Requests, req)
	if f.Err != nil {
		return nil, f.Err
	}
	return &llm.GenerateResponse{Text: f.Responses[req.Task], Model: "fake"}, nil
}

func (f *FakeLLM) Available(context.Context) bool { return f.Err == nil }

// Calls returns how many requests were made for task.
func (f *FakeLLM) Calls(task llm.TaskType) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, r := range f.Requests {
		if r.Task == task {
			n++
		}
	}
	return n
}
