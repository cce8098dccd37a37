package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitJSON(t *testing.T) {
	t.Cleanup(func() { std = newDefault() })

	var buf bytes.Buffer
	Init(Options{Level: "info", Format: FormatJSON, Output: &buf})
	For("store").WithField("theme", "Focus").Info("imported")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "imported", entry["message"])
	assert.Equal(t, "store", entry["component"])
	assert.Equal(t, "Focus", entry["theme"])
	assert.Equal(t, "info", entry["level"])
}

func TestInitUnknownLevelFallsBackToWarn(t *testing.T) {
	t.Cleanup(func() { std = newDefault() })

	var buf bytes.Buffer
	Init(Options{Level: "chatty", Output: &buf})
	assert.Equal(t, logrus.WarnLevel, Logger().GetLevel())

	For("cli").Info("hidden")
	assert.Empty(t, buf.String())
	For("cli").Warn("shown")
	assert.Contains(t, buf.String(), "shown")
	assert.Contains(t, buf.String(), "component=cli")
}
