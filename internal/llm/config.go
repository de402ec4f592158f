package llm

// TaskType identifies the kind of generation being performed.
type TaskType string

const (
	TaskPlan    TaskType = "plan"
	TaskEmpathy TaskType = "empathy"
)

// Provider names the generation backend.
type Provider string

const (
	ProviderRuleBased Provider = "rule"
	ProviderOllama    Provider = "ollama"
	ProviderOpenAI    Provider = "openai"
)

// TaskConfig holds per-task generation parameters.
type TaskConfig struct {
	Temperature float64
	MaxTokens   int
	TimeoutMs   int // overrides global if > 0
}

// LLMConfig holds all configuration for the generation subsystem.
type LLMConfig struct {
	Provider   Provider `validate:"oneof=rule ollama openai"`
	LogCalls   bool
	Endpoint   string `validate:"omitempty,url"`
	Model      string
	APIKey     string
	BaseURL    string `validate:"omitempty,url"`
	TimeoutMs  int    `validate:"min=1"`
	MaxRetries int    `validate:"min=0,max=5"`
	Tasks      map[TaskType]TaskConfig
}

// DefaultConfig returns an LLMConfig that runs fully offline with the
// rule-based generator.
func DefaultConfig() LLMConfig {
	return LLMConfig{
		Provider:   ProviderRuleBased,
		LogCalls:   false,
		Endpoint:   "http://localhost:11434",
		Model:      "llama3.2",
		TimeoutMs:  15000,
		MaxRetries: 1,
		Tasks: map[TaskType]TaskConfig{
			TaskPlan:    {Temperature: 0.2, MaxTokens: 1024, TimeoutMs: 20000},
			TaskEmpathy: {Temperature: 0.7, MaxTokens: 256, TimeoutMs: 10000},
		},
	}
}

// TaskTimeout returns the effective timeout for a given task type.
// Uses the task-specific timeout if set, otherwise the global timeout.
func (c LLMConfig) TaskTimeout(task TaskType) int {
	if tc, ok := c.Tasks[task]; ok && tc.TimeoutMs > 0 {
		return tc.TimeoutMs
	}
	return c.TimeoutMs
}

// IsRemote reports whether the provider sends prompts off the machine.
func (c LLMConfig) IsRemote() bool {
	return c.Provider == ProviderOpenAI
}
