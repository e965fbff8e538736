package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]interface{} {
	t.Helper()
	var out []map[string]interface{}
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var entry map[string]interface{}
		require.NoError(t, json.Unmarshal([]byte(line), &entry), line)
		out = append(out, entry)
	}
	return out
}

func TestLoggerWritesStructuredJSON(t *testing.T) {
	var buf bytes.Buffer
	log := NewLogger("INFO", &buf)

	log.WithFields(map[string]interface{}{
		"email": "aluno@escola.com",
		"id":    3,
	}).WithError(errors.New("user missing")).Warn("cascade delete skipped")

	entries := decodeLines(t, &buf)
	require.Len(t, entries, 1)
	e := entries[0]
	assert.Equal(t, "WARN", e["level"])
	assert.Equal(t, "cascade delete skipped", e["message"])
	assert.Equal(t, "aluno@escola.com", e["email"])
	assert.EqualValues(t, 3, e["id"])
	assert.Equal(t, "user missing", e["error"])
	assert.NotEmpty(t, e["timestamp"])
}

func TestLoggerRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	log := NewLogger("warn", &buf)

	log.Debug("hidden")
	log.Info("hidden too")
	log.WithField("k", "v").Error("shown")

	entries := decodeLines(t, &buf)
	require.Len(t, entries, 1)
	assert.Equal(t, "ERROR", entries[0]["level"])
}

func TestUnknownLevelDefaultsToInfo(t *testing.T) {
	var buf bytes.Buffer
	log := NewLogger("chatty", &buf)

	log.Debug("hidden")
	log.Info("shown")

	assert.Len(t, decodeLines(t, &buf), 1)
}

func TestNopLogger(t *testing.T) {
	assert.NotPanics(t, func() {
		NewNop().WithField("a", 1).Error("nothing")
	})
}
