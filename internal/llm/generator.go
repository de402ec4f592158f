package llm

import (
	"context"
	"log/slog"
)

const systemPrompt = "You are a careful, warm wellbeing coach. Never give medical advice."

// Generator is the text/JSON boundary the planner talks to. It wraps an
// LLMClient chosen at startup.
type Generator struct {
	client LLMClient
	name   string
}

// NewGenerator wraps client; name is reported for provenance.
func NewGenerator(client LLMClient, name string) *Generator {
	return &Generator{client: client, name: name}
}

// Name reports which backend produces text.
func (g *Generator) Name() string { return g.name }

// GenerateText returns the model's free-text answer to prompt.
func (g *Generator) GenerateText(ctx context.Context, task TaskType, prompt string) (string, error) {
	resp, err := g.client.Generate(ctx, GenerateRequest{
		Task:         task,
		SystemPrompt: systemPrompt,
		UserPrompt:   prompt,
	})
	if err != nil {
		return "", err
	}
	return resp.Text, nil
}

// GenerateJSON asks for a JSON object and parses the answer with ParseObject,
// so a reachable backend always yields an object. The error is non-nil only
// when the backend itself failed.
func (g *Generator) GenerateJSON(ctx context.Context, task TaskType, prompt string) (map[string]any, error) {
	resp, err := g.client.Generate(ctx, GenerateRequest{
		Task:         task,
		SystemPrompt: systemPrompt,
		UserPrompt:   prompt,
		JSON:         true,
	})
	if err != nil {
		return nil, err
	}
	return ParseObject(resp.Text), nil
}

// NewClient builds the configured LLMClient. Remote providers are replaced
// by the rule-based client when localOnly is set, and an unreachable Ollama
// server falls back to it as well.
func NewClient(ctx context.Context, cfg LLMConfig, localOnly bool, observer Observer, logger *slog.Logger) (LLMClient, string) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if localOnly && cfg.IsRemote() {
		logger.Info("remote generator suppressed in privacy mode", "provider", string(cfg.Provider))
		return NewRuleBasedClient(observer), string(ProviderRuleBased)
	}

	switch cfg.Provider {
	case ProviderOpenAI:
		return NewOpenAIClient(cfg, observer), string(ProviderOpenAI)
	case ProviderOllama:
		c := NewOllamaClient(cfg, observer)
		if c.Available(ctx) {
			return c, string(ProviderOllama)
		}
		logger.Warn("ollama unreachable, using rule-based generator", "endpoint", cfg.Endpoint)
	}
	return NewRuleBasedClient(observer), string(ProviderRuleBased)
}
