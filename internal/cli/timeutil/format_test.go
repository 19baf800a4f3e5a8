package timeutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// ============================================================================
// Lifetime Formatting Tests
// ============================================================================

func TestFormatLifetime(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "unlimited", FormatLifetime(0))
	assert.Equal(t, "45s", FormatLifetime(45*time.Second))
	assert.Equal(t, "30m 15s", FormatLifetime(30*time.Minute+15*time.Second))
	assert.Equal(t, "8h 0m 0s", FormatLifetime(8*time.Hour))
	assert.Equal(t, "7d 0h 0m 0s", FormatLifetime(7*24*time.Hour))
}

// ============================================================================
// Time Formatting Tests
// ============================================================================

func TestFormatTime(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "never", FormatTime(time.Time{}))
	assert.NotEqual(t, "never", FormatTime(time.Unix(1735689600, 0)))
}
