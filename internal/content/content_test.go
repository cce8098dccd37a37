package content

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/roach88/mantra/internal/logging"
	"github.com/roach88/mantra/internal/pattern"
)

func focusPool() []Record {
	return []Record{
		{Line: "I am here", Theme: "Focus", Difficulty: Basic},
		{Line: "One breath at a time", Theme: "Focus", Difficulty: Light},
		{Line: "Nothing else matters", Theme: "Focus", Difficulty: Deep},
		{Line: "Only this task", Theme: "Focus", Difficulty: Light},
		{Line: "I dissolve into the work", Theme: "Focus", Difficulty: Deep},
	}
}

func TestParseDifficulty(t *testing.T) {
	tests := []struct {
		in   string
		want Difficulty
	}{
		{"BASIC", Basic},
		{"light", Light},
		{"Moderate", Medium},
		{"  deep ", Deep},
		{"advanced", Deep},
		{"max", Extreme},
		{"", Basic},
		{"unheard-of", Basic},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseDifficulty(tt.in))
		})
	}

	_, ok := LookupDifficulty("unheard-of")
	assert.False(t, ok)
}

func TestDifficultyOrdering(t *testing.T) {
	assert.Less(t, Basic, Light)
	assert.Less(t, Light, Medium)
	assert.Less(t, Medium, Deep)
	assert.Less(t, Deep, Extreme)
	assert.Equal(t, Basic, Unset.Level())
	assert.Equal(t, "", Unset.String())
	assert.Equal(t, "EXTREME", Extreme.String())
}

func TestDifficultyEncoding(t *testing.T) {
	var r Record
	require.NoError(t, json.Unmarshal([]byte(`{"line":"x","theme":"t","difficulty":"intense"}`), &r))
	assert.Equal(t, Deep, r.Difficulty)

	out, err := json.Marshal(Medium)
	require.NoError(t, err)
	assert.JSONEq(t, `"MEDIUM"`, string(out))

	var y struct {
		D Difficulty `yaml:"d"`
	}
	require.NoError(t, yaml.Unmarshal([]byte("d: light\n"), &y))
	assert.Equal(t, Light, y.D)
}

func TestRecordNormalize(t *testing.T) {
	r := Record{Line: "  café  ", Theme: " Focus "}.Normalize()
	assert.Equal(t, "café", r.Line)
	assert.Equal(t, "Focus", r.Theme)
	assert.Equal(t, Basic, r.Difficulty)
}

func TestTagsMatches(t *testing.T) {
	tags := Tags{Subject: "she", Dominant: "goddess"}
	assert.True(t, tags.Matches(Record{}), "generic record survives")
	assert.True(t, tags.Matches(Record{Subject: "SHE"}))
	assert.False(t, tags.Matches(Record{Subject: "he"}))
	assert.False(t, tags.Matches(Record{Subject: "she", Dominant: "master"}))
	assert.True(t, Tags{}.Matches(Record{Subject: "he"}))
}

func TestExtract(t *testing.T) {
	rec := Record{Line: "breathe", Theme: "Focus", Difficulty: Light, Source: "focus.json"}

	tests := []struct {
		name     string
		in       any
		wantKind string
		wantText string
		wantMeta bool
	}{
		{"string", "hello", "text", "hello", false},
		{"text item", TextItem("hi"), "text", "hi", false},
		{"record item", RecordItem(rec), "mantra", "breathe", true},
		{"record", rec, "mantra", "breathe", true},
		{"record pointer", &rec, "mantra", "breathe", true},
		{"map text", map[string]any{"text": "m"}, "text", "m", false},
		{"map line", map[string]string{"line": "l"}, "text", "l", false},
		{"fallback", 42, "text", "42", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Extract(tt.in)
			assert.Equal(t, tt.wantKind, got.Kind)
			assert.Equal(t, tt.wantText, got.Text)
			if tt.wantMeta {
				require.NotNil(t, got.Meta)
				assert.Equal(t, "Focus", got.Meta.Theme)
				assert.Equal(t, "LIGHT", got.Meta.Difficulty)
				assert.Equal(t, "focus.json", got.Meta.Source)
			} else {
				assert.Nil(t, got.Meta)
			}
		})
	}
}

func TestSelect(t *testing.T) {
	pool := append(focusPool(), Record{Line: "Let go", Theme: "Calm"})

	all := Select(pool, "focus", ThemeOptions{})
	assert.Len(t, all, 5)

	light := Select(pool, "Focus", ThemeOptions{MaxDifficulty: Light})
	assert.Len(t, light, 3)

	deep := Select(pool, "Focus", ThemeOptions{MinDifficulty: Deep})
	assert.Len(t, deep, 2)

	assert.Empty(t, Select(pool, "Nope", ThemeOptions{}))
	assert.Len(t, Select(pool, "", ThemeOptions{}), 6)
}

func TestFromMantrasRespectsMaxDifficulty(t *testing.T) {
	for _, order := range []pattern.Order{pattern.Sequential, pattern.Shuffled, pattern.Random} {
		t.Run(order.String(), func(t *testing.T) {
			p := FromMantras(focusPool(), "Focus", ThemeOptions{MaxDifficulty: Light, Order: order}, 11)
			evs := p.QueryCycles(64)
			require.Len(t, evs, 64)
			for _, ev := range evs {
				assert.LessOrEqual(t, ev.Value.Difficulty, Light, "got %q", ev.Value.Line)
			}
		})
	}
}

func TestFromMantrasEmptyIsSilence(t *testing.T) {
	p := FromMantras(focusPool(), "Focus", ThemeOptions{MinDifficulty: Extreme}, 0)
	assert.Empty(t, p.QueryCycles(4))
}

func TestFromTheme(t *testing.T) {
	provider := NewMemoryProvider(focusPool()...)

	p := FromTheme(context.Background(), provider, "FOCUS", ThemeOptions{})
	evs := p.QueryCycles(5)
	require.Len(t, evs, 5)
	assert.Equal(t, "I am here", evs[0].Value.Line)
	assert.Equal(t, "I dissolve into the work", evs[4].Value.Line)

	assert.Empty(t, FromTheme(context.Background(), provider, "missing", ThemeOptions{}).QueryCycles(3))
	assert.Empty(t, FromTheme(context.Background(), nil, "Focus", ThemeOptions{}).QueryCycles(3))
}

type failingProvider struct{}

func (failingProvider) Records(context.Context, string) ([]Record, error) {
	return nil, errors.New("database is locked")
}

func TestLookupLogsProviderFailure(t *testing.T) {
	hook := logtest.NewLocal(logging.Logger())
	t.Cleanup(func() { logging.Logger().ReplaceHooks(make(logrus.LevelHooks)) })

	got := Lookup(context.Background(), failingProvider{}, "Focus")
	assert.Empty(t, got)

	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
	assert.Equal(t, "content", hook.LastEntry().Data["component"])
	assert.Equal(t, "Focus", hook.LastEntry().Data["theme"])
}

func TestFilterMantras(t *testing.T) {
	pool := []Record{
		{Line: "she rises", Theme: "T", Subject: "she"},
		{Line: "he rises", Theme: "T", Subject: "he"},
		{Line: "all rise", Theme: "T"},
	}
	p := FilterMantras(pattern.Seq(pool...), Tags{Subject: "she"})
	evs := p.QueryCycles(1)
	require.Len(t, evs, 2)
	assert.Equal(t, "she rises", evs[0].Value.Line)
	assert.Equal(t, "all rise", evs[1].Value.Line)

	items := FilterItems(pattern.Seq(TextItem("intro"), RecordItem(pool[1])), Tags{Subject: "she"})
	ievs := items.QueryCycles(1)
	require.Len(t, ievs, 1)
	assert.Equal(t, "intro", ievs[0].Value.String())
}

func TestParseRecordsArray(t *testing.T) {
	data := []byte(`[
		{"line": "I am here", "theme": "Focus", "difficulty": "light"},
		{"line": "Let go", "theme": "Calm", "source": "manual"}
	]`)
	records, err := ParseRecords(data, "pool.json")
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, Light, records[0].Difficulty)
	assert.Equal(t, "pool.json", records[0].Source)
	assert.Equal(t, Basic, records[1].Difficulty)
	assert.Equal(t, "manual", records[1].Source)
}

func TestParseRecordsThemeDocument(t *testing.T) {
	data := []byte(`{"theme": "Focus", "mantras": [{"line": "a"}, {"line": "b", "difficulty": "DEEP"}]}`)
	records, err := ParseRecords(data, "focus.json")
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "Focus", records[0].Theme)
	assert.Equal(t, Deep, records[1].Difficulty)
}

func TestParseRecordsRejectsInvalid(t *testing.T) {
	tests := map[string]string{
		"missing theme":  `[{"line": "a"}]`,
		"missing line":   `[{"theme": "T"}]`,
		"unknown field":  `[{"line": "a", "theme": "T", "mood": "x"}]`,
		"wrong top type": `"hello"`,
	}
	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ParseRecords([]byte(doc), "bad.json")
			require.Error(t, err)
			var verr *ValidationError
			assert.ErrorAs(t, err, &verr)
		})
	}
}

func TestLoadRecordsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "calm.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"theme": "Calm", "mantras": [{"line": "Let go"}]}`), 0o644))

	records, err := LoadRecordsFile(path)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "calm.json", records[0].Source)

	_, err = LoadRecordsFile(filepath.Join(t.TempDir(), "absent.json"))
	assert.Error(t, err)
}
