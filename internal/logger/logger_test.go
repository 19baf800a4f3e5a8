package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ============================================================================
// Test Helper Functions
// ============================================================================

// captureOutput redirects logger output to a buffer for testing.
// Returns the buffer and a cleanup function to restore original output.
func captureOutput(t *testing.T) *bytes.Buffer {
	t.Helper()
	buf := new(bytes.Buffer)

	mu.Lock()
	originalOutput := output
	output = buf
	mu.Unlock()
	reconfigure()

	t.Cleanup(func() {
		mu.Lock()
		output = originalOutput
		mu.Unlock()
		SetLevel("INFO")
		SetFormat("text")
	})

	return buf
}

// ============================================================================
// Level Filtering Tests
// ============================================================================

func TestLevelFiltering(t *testing.T) {
	buf := captureOutput(t)

	SetLevel("WARN")

	Debug("debug message")
	Info("info message")
	Warn("warn message")
	Error("error message")

	out := buf.String()
	assert.NotContains(t, out, "debug message")
	assert.NotContains(t, out, "info message")
	assert.Contains(t, out, "warn message")
	assert.Contains(t, out, "error message")
}

func TestDebugLevelShowsEverything(t *testing.T) {
	buf := captureOutput(t)

	SetLevel("DEBUG")

	Debug("debug message", "principal", "alice@EXAMPLE.ORG")

	assert.Contains(t, buf.String(), "debug message")
	assert.Contains(t, buf.String(), "alice@EXAMPLE.ORG")
}

func TestInvalidLevelIsIgnored(t *testing.T) {
	buf := captureOutput(t)

	SetLevel("INFO")
	SetLevel("LOUD")

	Info("still info")
	assert.Contains(t, buf.String(), "still info")
}

// ============================================================================
// Format Tests
// ============================================================================

func TestJSONFormat(t *testing.T) {
	buf := captureOutput(t)

	SetFormat("json")
	Info("structured message", "policy", "default")

	line := strings.TrimSpace(buf.String())
	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(line), &entry))
	assert.Equal(t, "structured message", entry["msg"])
	assert.Equal(t, "default", entry["policy"])
}

func TestInvalidFormatIsIgnored(t *testing.T) {
	buf := captureOutput(t)

	SetFormat("xml")
	Info("text still works")

	assert.Contains(t, buf.String(), "text still works")
}

// ============================================================================
// Init Tests
// ============================================================================

func TestInitWithWriter(t *testing.T) {
	captureOutput(t) // restores the previous writer afterwards

	buf := new(bytes.Buffer)
	InitWithWriter(buf, "DEBUG", "text")

	Debug("writer message")
	assert.Contains(t, buf.String(), "writer message")
}
