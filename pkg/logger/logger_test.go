package logger

import (
	"bytes"
	"errors"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func capture(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	Init("production")
	SetOutput(&buf)
	SetLevel("debug")
	t.Cleanup(func() {
		SetLevel("info")
		Init("development")
	})
	return &buf
}

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &m))
	return m
}

func TestInfoWritesKeyValues(t *testing.T) {
	buf := capture(t)

	Info("Server starting", "address", ":8080", "replicas", 2)

	m := decodeLine(t, buf)
	assert.Equal(t, "info", m["level"])
	assert.Equal(t, "Server starting", m["message"])
	assert.Equal(t, ":8080", m["address"])
	assert.EqualValues(t, 2, m["replicas"])
}

func TestErrorAttachesBareError(t *testing.T) {
	buf := capture(t)

	Error("Failed to load model", errors.New("file not found"))

	m := decodeLine(t, buf)
	assert.Equal(t, "error", m["level"])
	assert.Equal(t, "file not found", m["error"])
}

func TestNamedErrorValue(t *testing.T) {
	buf := capture(t)

	Warn("redis unavailable", "cause", errors.New("dial tcp: refused"))

	m := decodeLine(t, buf)
	assert.Equal(t, "dial tcp: refused", m["cause"])
}

func TestLevelFiltering(t *testing.T) {
	buf := capture(t)
	SetLevel("warn")

	Debug("hidden")
	Info("hidden")
	assert.Zero(t, buf.Len())

	Warn("shown")
	assert.NotZero(t, buf.Len())
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, "debug", parseLevel("DEBUG").String())
	assert.Equal(t, "warn", parseLevel("warning").String())
	assert.Equal(t, "info", parseLevel("nonsense").String())
}
