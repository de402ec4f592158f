package config

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/wellplan/internal/llm"
)

func envOf(vars map[string]string) func(string) string {
	return func(k string) string { return vars[k] }
}

func TestLoadFrom_Defaults(t *testing.T) {
	cfg, err := LoadFrom(envOf(nil))
	require.NoError(t, err)

	assert.NotEmpty(t, cfg.DSN)
	assert.Equal(t, 30, cfg.RetentionDays)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, llm.ProviderRuleBased, cfg.LLM.Provider)
	assert.False(t, cfg.Privacy.Enabled)
	assert.False(t, cfg.Embeddings.Enabled)
	assert.Equal(t, "auto", cfg.Sentiment.Mode)
}

func TestLoadFrom_Overrides(t *testing.T) {
	cfg, err := LoadFrom(envOf(map[string]string{
		"WELLPLAN_DB":                     "postgres://u:p@localhost/wellplan",
		"WELLPLAN_RETENTION_DAYS":         "7",
		"WELLPLAN_LOG_LEVEL":              "DEBUG",
		"WELLPLAN_LLM_PROVIDER":           "ollama",
		"WELLPLAN_LLM_MODEL":              "qwen2.5",
		"WELLPLAN_LLM_PLAN_TIMEOUT_MS":    "45000",
		"WELLPLAN_EMBEDDINGS":             "yes",
		"WELLPLAN_PRIVACY_MODE":           "on",
		"WELLPLAN_PRIVACY_LOGGING_OPTOUT": "1",
		"WELLPLAN_SENTIMENT_MODE":         "lexicon",
		"OPENAI_API_KEY":                  "sk-env",
	}))
	require.NoError(t, err)

	assert.Equal(t, "postgres://u:p@localhost/wellplan", cfg.DSN)
	assert.Equal(t, 7, cfg.RetentionDays)
	assert.Equal(t, slog.LevelDebug, cfg.SlogLevel())
	assert.Equal(t, llm.ProviderOllama, cfg.LLM.Provider)
	assert.Equal(t, "qwen2.5", cfg.LLM.Model)
	assert.Equal(t, 45000, cfg.LLM.TaskTimeout(llm.TaskPlan))
	assert.Equal(t, 10000, cfg.LLM.TaskTimeout(llm.TaskEmpathy))
	assert.Equal(t, "sk-env", cfg.LLM.APIKey)
	assert.True(t, cfg.Embeddings.Enabled)
	assert.True(t, cfg.Privacy.Enabled)
	assert.True(t, cfg.Privacy.LoggingOptOut)
	assert.Equal(t, "lexicon", cfg.Sentiment.Mode)
}

func TestLoadFrom_ExplicitAPIKeyWins(t *testing.T) {
	cfg, err := LoadFrom(envOf(map[string]string{
		"WELLPLAN_LLM_API_KEY": "sk-wellplan",
		"OPENAI_API_KEY":       "sk-env",
	}))
	require.NoError(t, err)
	assert.Equal(t, "sk-wellplan", cfg.LLM.APIKey)
}

func TestLoadFrom_Invalid(t *testing.T) {
	cases := map[string]map[string]string{
		"bad integer":   {"WELLPLAN_RETENTION_DAYS": "thirty"},
		"bad boolean":   {"WELLPLAN_PRIVACY_MODE": "maybe"},
		"bad provider":  {"WELLPLAN_LLM_PROVIDER": "claude"},
		"bad level":     {"WELLPLAN_LOG_LEVEL": "loud"},
		"negative days": {"WELLPLAN_RETENTION_DAYS": "-1"},
		"bad sentiment": {"WELLPLAN_SENTIMENT_MODE": "vibes"},
		"bad url":       {"WELLPLAN_CLASSIFIER_URL": "not a url"},
		"too many":      {"WELLPLAN_LLM_MAX_RETRIES": "9"},
	}
	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := LoadFrom(envOf(env))
			assert.ErrorIs(t, err, ErrInvalid)
		})
	}
}

func TestSlogLevel_UnknownIsInfo(t *testing.T) {
	assert.Equal(t, slog.LevelInfo, Config{LogLevel: "???"}.SlogLevel())
	assert.Equal(t, slog.LevelWarn, Config{LogLevel: "warn"}.SlogLevel())
}
