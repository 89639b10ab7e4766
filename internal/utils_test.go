package internal

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testData struct {
	Name     string
	Entities []string
}

func TestParsePrompt(t *testing.T) {
	testCases := []struct {
		name           string
		promptTemplate string
		data           interface{}
		expected       string
		expectedErr    error
	}{
		{
			name:           "Valid template and data",
			promptTemplate: "Hello, my name is {{.Name}}.",
			data:           testData{Name: "John"},
			expected:       "Hello, my name is John.",
			expectedErr:    nil,
		},
		{
			name:           "Sprig functions",
			promptTemplate: "Avoid: {{ .Entities | join \", \" | default \"None\" }}",
			data:           testData{Entities: []string{"Paris", "Obama"}},
			expected:       "Avoid: Paris, Obama",
		},
		{
			name:           "Sprig default on empty",
			promptTemplate: "Avoid: {{ .Entities | join \", \" | default \"None\" }}",
			data:           testData{},
			expected:       "Avoid: None",
		},
		{
			name:           "Surrounding whitespace trimmed",
			promptTemplate: "\n\n  Tags for {{.Name}}  \n",
			data:           testData{Name: "x"},
			expected:       "Tags for x",
		},
		{
			name:           "Invalid template",
			promptTemplate: "Hello, my name is {{.Name.",
			data:           testData{Name: "John"},
			expected:       "",
			expectedErr:    errors.New("template: prompt:1: unexpected \".\" in operand"),
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			result, err := ParsePrompt(tc.promptTemplate, tc.data)
			if result != tc.expected {
				t.Errorf("Expected: %s, Got: %s", tc.expected, result)
			}
			if (err == nil) != (tc.expectedErr == nil) {
				t.Errorf("Expected error: %v, Got error: %v", tc.expectedErr, err)
			}
		})
	}
}

func TestTruncateRunes(t *testing.T) {
	assert.Equal(t, "", TruncateRunes("abc", 0))
	assert.Equal(t, "abc", TruncateRunes("abc", 5))
	assert.Equal(t, "ab", TruncateRunes("abc", 2))
	assert.Equal(t, "Zü", TruncateRunes("Zürich", 2))
}

func TestLeveledLogrusFields(t *testing.T) {
	l := NewLeveledLogrus(GetLogger(), "test")
	fields := l.fields("url", "http://x", "attempt", 2, 3, "skipped", "dangling")
	assert.Equal(t, logrus.Fields{"url": "http://x", "attempt": 2}, fields)
}

func TestLeveledLogrus_JSON(t *testing.T) {
	var buf bytes.Buffer
	SetLogOutput(&buf)
	require.NoError(t, SetLogFormat(LogFormatJSON))
	t.Cleanup(func() {
		SetLogOutput(os.Stdout)
		_ = SetLogFormat(LogFormatText)
	})

	NewLeveledLogrus(GetLogger(), "completion-http").Warn("retrying", "attempt", 2)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "retrying", entry["message"])
	assert.Equal(t, "warning", entry["level"])
	assert.Equal(t, "completion-http", entry["component"])
	assert.Equal(t, float64(2), entry["attempt"])
}

func TestSetLogFormat(t *testing.T) {
	t.Cleanup(func() { _ = SetLogFormat(LogFormatText) })

	for _, format := range []string{"", "text", "JSON"} {
		assert.NoError(t, SetLogFormat(format), format)
	}
	assert.Error(t, SetLogFormat("xml"))
}
