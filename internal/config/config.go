// Package config assembles the process configuration from WELLPLAN_*
// environment variables. Core packages receive their sub-config through
// constructors and never read the environment themselves.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/alexanderramin/wellplan/internal/llm"
	"github.com/alexanderramin/wellplan/internal/privacy"
	"github.com/alexanderramin/wellplan/internal/retrieval"
	"github.com/alexanderramin/wellplan/internal/signals"
)

// ErrInvalid marks configuration that could not be parsed or validated.
var ErrInvalid = errors.New("invalid configuration")

const envPrefix = "WELLPLAN_"

type Config struct {
	DSN           string `validate:"required"`
	ContentPath   string
	RetentionDays int    `validate:"min=0"`
	LogLevel      string `validate:"oneof=debug info warn error"`

	LLM        llm.LLMConfig
	Sentiment  signals.Config
	Embeddings retrieval.EmbeddingConfig
	Privacy    privacy.Config
}

// Default returns the offline configuration: SQLite under the home
// directory, the embedded corpus, rule-based generation.
func Default() Config {
	return Config{
		DSN:           defaultDSN(),
		RetentionDays: 30,
		LogLevel:      "info",
		LLM:           llm.DefaultConfig(),
		Sentiment:     signals.DefaultConfig(),
		Embeddings:    retrieval.DefaultEmbeddingConfig(),
		Privacy:       privacy.DefaultConfig(),
	}
}

func defaultDSN() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "wellplan.db"
	}
	return filepath.Join(home, ".wellplan", "wellplan.db")
}

// Load reads configuration from the process environment.
func Load() (Config, error) {
	return LoadFrom(os.Getenv)
}

// LoadFrom reads configuration through getenv, falling back to defaults
// for unset values.
func LoadFrom(getenv func(string) string) (Config, error) {
	cfg := Default()
	e := envReader{getenv: getenv}

	e.str("DB", &cfg.DSN)
	e.str("CONTENT_PATH", &cfg.ContentPath)
	e.integer("RETENTION_DAYS", &cfg.RetentionDays)
	e.str("LOG_LEVEL", &cfg.LogLevel)
	cfg.LogLevel = strings.ToLower(cfg.LogLevel)

	e.str("LLM_PROVIDER", (*string)(&cfg.LLM.Provider))
	e.boolean("LLM_LOG_CALLS", &cfg.LLM.LogCalls)
	e.str("LLM_ENDPOINT", &cfg.LLM.Endpoint)
	e.str("LLM_MODEL", &cfg.LLM.Model)
	e.str("LLM_BASE_URL", &cfg.LLM.BaseURL)
	e.integer("LLM_TIMEOUT_MS", &cfg.LLM.TimeoutMs)
	e.integer("LLM_MAX_RETRIES", &cfg.LLM.MaxRetries)
	e.taskTimeout("LLM_PLAN_TIMEOUT_MS", &cfg.LLM, llm.TaskPlan)
	e.taskTimeout("LLM_EMPATHY_TIMEOUT_MS", &cfg.LLM, llm.TaskEmpathy)
	cfg.LLM.APIKey = getenv(envPrefix + "LLM_API_KEY")
	if cfg.LLM.APIKey == "" {
		cfg.LLM.APIKey = getenv("OPENAI_API_KEY")
	}

	e.str("SENTIMENT_MODE", &cfg.Sentiment.Mode)
	e.str("CLASSIFIER_URL", &cfg.Sentiment.ClassifierURL)
	e.str("CLASSIFIER_TOKEN", &cfg.Sentiment.ClassifierToken)
	e.integer("CLASSIFIER_TIMEOUT_MS", &cfg.Sentiment.TimeoutMs)

	e.boolean("EMBEDDINGS", &cfg.Embeddings.Enabled)
	e.str("EMBEDDING_URL", &cfg.Embeddings.BaseURL)
	e.str("EMBEDDING_MODEL", &cfg.Embeddings.Model)
	e.integer("EMBEDDING_TIMEOUT_MS", &cfg.Embeddings.TimeoutMs)

	e.boolean("PRIVACY_MODE", &cfg.Privacy.Enabled)
	e.boolean("PRIVACY_LOGGING_OPTOUT", &cfg.Privacy.LoggingOptOut)
	e.str("PRIVACY_KEY", &cfg.Privacy.Key)
	e.str("PRIVACY_PASSPHRASE", &cfg.Privacy.Passphrase)
	e.str("PRIVACY_KEY_PATH", &cfg.Privacy.KeyPath)
	e.integer("PRIVACY_KEY_ROTATION_DAYS", &cfg.Privacy.KeyRotationDays)

	if len(e.errs) > 0 {
		return Config{}, fmt.Errorf("%w: %s", ErrInvalid, strings.Join(e.errs, "; "))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks field constraints on the config and its sub-configs.
func (c Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			parts := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				parts = append(parts, fmt.Sprintf("%s failed %q", fe.Namespace(), fe.Tag()))
			}
			return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(parts, "; "))
		}
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return nil
}

// SlogLevel maps LogLevel onto slog. Unknown values map to info.
func (c Config) SlogLevel() slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return lvl
}

// envReader collects parse errors instead of stopping at the first one.
type envReader struct {
	getenv func(string) string
	errs   []string
}

func (e *envReader) lookup(name string) (string, bool) {
	v := strings.TrimSpace(e.getenv(envPrefix + name))
	return v, v != ""
}

func (e *envReader) str(name string, dst *string) {
	if v, ok := e.lookup(name); ok {
		*dst = v
	}
}

func (e *envReader) integer(name string, dst *int) {
	v, ok := e.lookup(name)
	if !ok {
		return
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		e.errs = append(e.errs, fmt.Sprintf("%s%s: not an integer", envPrefix, name))
		return
	}
	*dst = n
}

func (e *envReader) boolean(name string, dst *bool) {
	v, ok := e.lookup(name)
	if !ok {
		return
	}
	switch strings.ToLower(v) {
	case "1", "true", "yes", "on":
		*dst = true
	case "0", "false", "no", "off":
		*dst = false
	default:
		e.errs = append(e.errs, fmt.Sprintf("%s%s: not a boolean", envPrefix, name))
	}
}

func (e *envReader) taskTimeout(name string, cfg *llm.LLMConfig, task llm.TaskType) {
	var n int
	e.integer(name, &n)
	if n <= 0 {
		return
	}
	tc := cfg.Tasks[task]
	tc.TimeoutMs = n
	cfg.Tasks[task] = tc
}
