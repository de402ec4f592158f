package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogUseCaseObserver(t *testing.T) {
	var buf bytes.Buffer
	obs := NewLogUseCaseObserver(slog.New(slog.NewJSONHandler(&buf, nil)))

	observe(context.Background(), obs, "plan_session", time.Now(), nil, map[string]any{"items": 2})
	observe(context.Background(), obs, "retention", time.Now(), errors.New("disk full"), nil)

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 2)

	var ok, failed map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &ok))
	require.NoError(t, json.Unmarshal(lines[1], &failed))

	assert.Equal(t, "INFO", ok["level"])
	assert.Equal(t, "plan_session", ok["use_case"])
	assert.Equal(t, true, ok["success"])
	assert.Equal(t, float64(2), ok["items"])

	assert.Equal(t, "ERROR", failed["level"])
	assert.Equal(t, false, failed["success"])
	assert.Equal(t, "disk full", failed["error"])
}

func TestUseCaseObserverOrNoop(t *testing.T) {
	assert.IsType(t, NoopUseCaseObserver{}, useCaseObserverOrNoop(nil))
	assert.IsType(t, NoopUseCaseObserver{}, NewLogUseCaseObserver(nil))

	c := &captureObserver{}
	assert.Same(t, c, useCaseObserverOrNoop([]UseCaseObserver{nil, c}))
}
