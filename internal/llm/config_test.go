package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig_RunsOffline(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, ProviderRuleBased, cfg.Provider)
	assert.False(t, cfg.IsRemote())
}

func TestTaskTimeout(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, 20000, cfg.TaskTimeout(TaskPlan))
	assert.Equal(t, 10000, cfg.TaskTimeout(TaskEmpathy))

	cfg.Tasks[TaskPlan] = TaskConfig{Temperature: 0.2}
	assert.Equal(t, cfg.TimeoutMs, cfg.TaskTimeout(TaskPlan), "falls back to global")
	assert.Equal(t, cfg.TimeoutMs, cfg.TaskTimeout("unknown"))
}

func TestIsRemote(t *testing.T) {
	assert.True(t, LLMConfig{Provider: ProviderOpenAI}.IsRemote())
	assert.False(t, LLMConfig{Provider: ProviderOllama}.IsRemote())
}
