package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_Valid(t *testing.T) {
	out, err := executeCommand(t, "validate", "testdata/sessions/focus.yaml", "--records", "testdata/records/focus.json")
	require.NoError(t, err)
	assert.Contains(t, out, "✓ Session focus is valid")
	assert.Contains(t, out, "Focus: 5 record(s)")
}

func TestValidate_EmptyThemeWarns(t *testing.T) {
	out, err := executeCommand(t, "validate", "testdata/sessions/focus.yaml", "--db", tempDB(t))
	require.NoError(t, err)
	assert.Contains(t, out, "Focus: no records (compiles to silence)")
}

func TestValidate_StrictEmptyTheme(t *testing.T) {
	out, err := executeCommand(t, "--format", "json", "validate", "testdata/sessions/focus.yaml", "--db", tempDB(t), "--strict")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	var result ValidationResult
	assert.Equal(t, "error", decodeData(t, out, &result))
	assert.False(t, result.Valid)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, ErrCodeEmptyTheme, result.Errors[0].Code)
	assert.Equal(t, []ThemeStatus{{Theme: "Focus", Records: 0}}, result.Themes)
}

func TestValidate_InvalidOptions(t *testing.T) {
	out, err := executeCommand(t, "validate", "testdata/sessions/evening.yaml", "--cycles", "-2", "--event-ms", "-1")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "✗ Validation failed")
	assert.Contains(t, out, "E201: cycles")
	assert.Contains(t, out, "E203: event_duration_ms")
}

func TestValidate_EffectiveOptions(t *testing.T) {
	out, err := executeCommand(t, "--format", "json", "validate", "testdata/sessions/evening.yaml", "--seed", "3")
	require.NoError(t, err)

	var result ValidationResult
	assert.Equal(t, "ok", decodeData(t, out, &result))
	assert.True(t, result.Valid)
	assert.Equal(t, 4, result.Options.Cycles)
	assert.Equal(t, 1000.0, result.Options.CycleDurationMs)
	assert.Equal(t, int64(3), result.Options.Seed)
	assert.Empty(t, result.Themes)
}

func TestValidate_BrokenSession(t *testing.T) {
	out, err := executeCommand(t, "validate", "testdata/sessions/broken.yaml")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, out, "Error [E010]")
	assert.Contains(t, out, "unknown operator")
}
