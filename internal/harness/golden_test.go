package harness

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGolden_TwoStep(t *testing.T) {
	s, err := LoadScenario("testdata/scenarios/two_step.yaml")
	require.NoError(t, err)

	result, err := RunWithGolden(t, s)
	require.NoError(t, err)
	assert.True(t, result.Pass, "errors: %v", result.Errors)
}

func TestGolden_FocusBasic(t *testing.T) {
	s, err := LoadScenario("testdata/scenarios/focus_basic.yaml")
	require.NoError(t, err)

	result, err := RunWithGolden(t, s)
	require.NoError(t, err)
	assert.True(t, result.Pass, "errors: %v", result.Errors)
}

func TestAssertGolden_ReusesResult(t *testing.T) {
	s, err := LoadScenario("testdata/scenarios/two_step.yaml")
	require.NoError(t, err)

	result, err := Run(s)
	require.NoError(t, err)
	require.NoError(t, AssertGolden(t, s.Name, result))
}
