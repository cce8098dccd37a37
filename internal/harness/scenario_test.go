package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeScenario(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadScenario_ResolvesPaths(t *testing.T) {
	s, err := LoadScenario("testdata/scenarios/focus_basic.yaml")
	require.NoError(t, err)

	assert.Equal(t, "focus_basic", s.Name)
	assert.Equal(t, filepath.Join("testdata", "records", "focus.json"), s.Records)
	assert.Empty(t, s.Session)
	assert.NotNil(t, s.Pattern)
	assert.Equal(t, 1, s.Options.Cycles)
	assert.Equal(t, 1000.0, s.Options.CycleMs)
	require.Len(t, s.Assertions, 2)
	assert.Equal(t, AssertStartsWith, s.Assertions[0].Type)
}

func TestLoadScenario_Session(t *testing.T) {
	s, err := LoadScenario("testdata/scenarios/evening.yaml")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("testdata", "sessions", "evening.yaml"), s.Session)
	assert.Nil(t, s.Pattern)
}

func TestLoadScenarios(t *testing.T) {
	scenarios, err := LoadScenarios("testdata/scenarios")
	require.NoError(t, err)

	names := make([]string, len(scenarios))
	for i, s := range scenarios {
		names[i] = s.Name
	}
	assert.Equal(t, []string{"evening", "focus_basic", "focus_random_light", "two_step"}, names)
}

func TestLoadScenario_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{
			name: "unknown field",
			body: "name: x\ndescription: d\npattern: a\nassertion: []\n",
			want: "failed to parse YAML",
		},
		{
			name: "missing name",
			body: "description: d\npattern: a\nassertions: [{type: contains, text: a}]\n",
			want: "name is required",
		},
		{
			name: "missing description",
			body: "name: x\npattern: a\nassertions: [{type: contains, text: a}]\n",
			want: "description is required",
		},
		{
			name: "no pattern",
			body: "name: x\ndescription: d\nassertions: [{type: contains, text: a}]\n",
			want: "one of session or pattern is required",
		},
		{
			name: "both session and pattern",
			body: "name: x\ndescription: d\nsession: s.yaml\npattern: a\nassertions: [{type: contains, text: a}]\n",
			want: "mutually exclusive",
		},
		{
			name: "missing session file",
			body: "name: x\ndescription: d\nsession: nowhere.yaml\nassertions: [{type: contains, text: a}]\n",
			want: "file not found",
		},
		{
			name: "no assertions",
			body: "name: x\ndescription: d\npattern: a\n",
			want: "assertions list is required",
		},
		{
			name: "negative cycles",
			body: "name: x\ndescription: d\npattern: a\noptions: {cycles: -1}\nassertions: [{type: contains, text: a}]\n",
			want: "non-negative",
		},
		{
			name: "event_count without count",
			body: "name: x\ndescription: d\npattern: a\nassertions: [{type: event_count}]\n",
			want: "count is required",
		},
		{
			name: "order without texts",
			body: "name: x\ndescription: d\npattern: a\nassertions: [{type: order}]\n",
			want: "texts list is required",
		},
		{
			name: "unknown difficulty",
			body: "name: x\ndescription: d\npattern: a\nassertions: [{type: max_difficulty, difficulty: extreme}]\n",
			want: "unknown difficulty",
		},
		{
			name: "total_duration without ms",
			body: "name: x\ndescription: d\npattern: a\nassertions: [{type: total_duration}]\n",
			want: "ms is required",
		},
		{
			name: "unknown assertion",
			body: "name: x\ndescription: d\npattern: a\nassertions: [{type: sometimes}]\n",
			want: "unknown assertion type",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadScenario(writeScenario(t, tt.body))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoadScenario_MissingFile(t *testing.T) {
	_, err := LoadScenario(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read scenario file")
}
