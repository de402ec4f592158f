package privacy

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/alexanderramin/wellplan/internal/domain"
)

// Config controls privacy mode.
type Config struct {
	Enabled         bool
	LoggingOptOut   bool
	Key             string
	Passphrase      string
	KeyPath         string `validate:"required_with=Enabled"`
	KeyRotationDays int    `validate:"min=0"`
}

func DefaultConfig() Config {
	return Config{
		KeyPath:         "data/privacy_key.json",
		KeyRotationDays: 30,
	}
}

// Loggable is a step log entry that can describe itself in full or in
// its privacy-safe form.
type Loggable interface {
	Payloads() (input, output any)
	Sanitized() (input, output any)
}

// Policy applies privacy mode to everything that leaves the pipeline.
// A nil *Policy behaves as privacy mode off.
type Policy struct {
	cfg    Config
	sealer *Sealer
}

// NewPolicy resolves the sealing key when privacy mode is on.
func NewPolicy(cfg Config, now time.Time) (*Policy, error) {
	p := &Policy{cfg: cfg}
	if !cfg.Enabled {
		return p, nil
	}
	key, err := LoadKey(cfg, now)
	if err != nil {
		return nil, fmt.Errorf("loading privacy key: %w", err)
	}
	if p.sealer, err = NewSealer(key); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Policy) Enabled() bool { return p != nil && p.cfg.Enabled }

// ShouldLog is false only when privacy mode is on and logging was opted out.
func (p *Policy) ShouldLog() bool {
	return !(p.Enabled() && p.cfg.LoggingOptOut)
}

// LocalOnly forbids remote generators.
func (p *Policy) LocalOnly() bool { return p.Enabled() }

// Conversation redacts messages in privacy mode and returns them unchanged otherwise.
func (p *Policy) Conversation(msgs []domain.ConversationMessage) []domain.ConversationMessage {
	if !p.Enabled() {
		return msgs
	}
	return RedactConversation(msgs)
}

// Context redacts the free-text mood in privacy mode.
func (p *Policy) Context(uc domain.UserContext) domain.UserContext {
	if !p.Enabled() {
		return uc
	}
	uc.Mood = RedactText(uc.Mood)
	return uc
}

// Encode serialises full, or redacted in privacy mode, and seals the result.
func (p *Policy) Encode(full, redacted any) (string, error) {
	v := full
	if p.Enabled() {
		v = redacted
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return "", fmt.Errorf("encoding payload: %w", err)
	}
	data := bytes.TrimRight(buf.Bytes(), "\n")
	if p == nil || p.sealer == nil {
		return string(data), nil
	}
	return p.sealer.Seal(data)
}

// EncodeStep encodes both sides of a step log entry.
func (p *Policy) EncodeStep(e Loggable) (input, output string, err error) {
	in, out := e.Payloads()
	sin, sout := e.Sanitized()
	if input, err = p.Encode(in, sin); err != nil {
		return "", "", err
	}
	if output, err = p.Encode(out, sout); err != nil {
		return "", "", err
	}
	return input, output, nil
}

// Decode returns the JSON text of a stored payload, opening it when sealed.
func (p *Policy) Decode(payload string) (string, error) {
	if !IsSealed(payload) {
		return payload, nil
	}
	if p == nil || p.sealer == nil {
		return "", fmt.Errorf("%w: privacy mode is off", ErrOpen)
	}
	plain, err := p.sealer.Open(payload)
	if err != nil {
		return "", err
	}
	return string(plain), nil
}
