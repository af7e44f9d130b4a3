package output

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestNewFormatter(t *testing.T) {
	for _, format := range []string{"", "text", "json", "yaml", "JSON"} {
		f, err := NewFormatter(format)
		require.NoError(t, err, format)
		require.NotNil(t, f)
	}

	_, err := NewFormatter("xml")
	assert.Error(t, err)
}

func TestTextFormatter(t *testing.T) {
	f := &TextFormatter{}

	t.Run("areas", func(t *testing.T) {
		out, err := f.Format([]AreaRow{
			{Key: "tokyo", Name: "東京"},
			{Key: "osaka", Name: "大阪"},
		})

		require.NoError(t, err)
		assert.Contains(t, string(out), "tokyo")
		assert.Contains(t, string(out), "東京")
	})

	t.Run("programs", func(t *testing.T) {
		out, err := f.Format([]ProgramRow{
			{Channel: "r1", Station: "ラジオ第1", Title: "ニュース", StartTime: "午前7時00分"},
		})

		require.NoError(t, err)
		assert.Contains(t, string(out), "ラジオ第1 (r1)")
		assert.Contains(t, string(out), "ニュース")
		assert.Contains(t, string(out), "午前7時00分")
	})

	t.Run("unknown type", func(t *testing.T) {
		_, err := f.Format(42)

		assert.Error(t, err)
	})
}

func TestJSONFormatter(t *testing.T) {
	out, err := (&JSONFormatter{}).Format([]StreamRow{
		{Area: "tokyo", Channel: "fm", Station: "NHK-FM", URL: "https://example.com/fm.m3u8"},
	})

	require.NoError(t, err)
	var rows []StreamRow
	require.NoError(t, json.Unmarshal(out, &rows))
	require.Len(t, rows, 1)
	assert.Equal(t, "NHK-FM", rows[0].Station)
}

func TestYAMLFormatter(t *testing.T) {
	out, err := (&YAMLFormatter{}).Format([]AreaRow{{Key: "sendai", Name: "仙台"}})

	require.NoError(t, err)
	var rows []AreaRow
	require.NoError(t, yaml.Unmarshal(out, &rows))
	require.Len(t, rows, 1)
	assert.Equal(t, "sendai", rows[0].Key)
}
