package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewJSONLoggerTagsApp(t *testing.T) {
	var buf bytes.Buffer

	l := newJSONLogger(&buf, "hotel")
	l.Info().Str("room", "101").Msg("availability updated")

	line := map[string]any{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))

	assert.Equal(t, "hotel", line["app"])
	assert.Equal(t, "101", line["room"])
	assert.Equal(t, "availability updated", line["message"])
}
