package ux

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFormatter(t *testing.T) {
	tests := []struct {
		format  string
		want    any
		wantErr bool
	}{
		{"json", &JSONFormatter{}, false},
		{"yaml", &YAMLFormatter{}, false},
		{"text", &TextFormatter{}, false},
		{"", &TextFormatter{}, false},
		{"xml", nil, true},
	}

	for _, tt := range tests {
		t.Run("format "+tt.format, func(t *testing.T) {
			f, err := NewFormatter(tt.format, nil)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.IsType(t, tt.want, f)
		})
	}
}

func TestJSONFormatter(t *testing.T) {
	var buf bytes.Buffer
	f, err := NewFormatter("json", &FormatterOptions{Writer: &buf})
	require.NoError(t, err)

	require.NoError(t, f.Format(map[string]string{"name": "Alpha"}))
	assert.Contains(t, buf.String(), `"name": "Alpha"`)
}

func TestJSONFormatter_Compact(t *testing.T) {
	var buf bytes.Buffer
	f, err := NewFormatter("json", &FormatterOptions{Writer: &buf, Compact: true})
	require.NoError(t, err)

	require.NoError(t, f.Format(map[string]string{"name": "Alpha"}))
	assert.Equal(t, `{"name":"Alpha"}`, strings.TrimSpace(buf.String()))
}

func TestYAMLFormatter(t *testing.T) {
	var buf bytes.Buffer
	f, err := NewFormatter("yaml", &FormatterOptions{Writer: &buf})
	require.NoError(t, err)

	require.NoError(t, f.Format(map[string]string{"name": "Alpha"}))
	assert.Contains(t, buf.String(), "name: Alpha")
}

func TestTextFormatter(t *testing.T) {
	var buf bytes.Buffer
	f, err := NewFormatter("text", &FormatterOptions{Writer: &buf})
	require.NoError(t, err)

	require.NoError(t, f.Format("hello"))
	assert.Equal(t, "hello\n", buf.String())
}

func TestTextFormatter_FallsBackToYAML(t *testing.T) {
	var buf bytes.Buffer
	f, err := NewFormatter("text", &FormatterOptions{Writer: &buf})
	require.NoError(t, err)

	require.NoError(t, f.Format(struct {
		Name string `yaml:"name"`
	}{Name: "Alpha"}))
	assert.Contains(t, buf.String(), "name: Alpha")
}
