package extractors

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/getzep/zep-extract/pkg/testutils"
)

func TestParseTags(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		maxTags   int
		maxTagLen int
		want      []string
	}{
		{"comma separated", "a, b, c", 5, 50, []string{"a", "b", "c"}},
		{"empty fragments", "a,, b,", 5, 50, []string{"a", "b"}},
		{"newlines", "Travel\nPolitics\n\nFrance", 5, 50, []string{"travel", "politics", "france"}},
		{"lowercase and dedupe", "Travel, travel, TRAVEL, Politics", 5, 50, []string{"travel", "politics"}},
		{"truncate to max tags", "a, b, c, d, e, f, g", 5, 50, []string{"a", "b", "c", "d", "e"}},
		{"smaller max tags", "a, b, c, d", 3, 50, []string{"a", "b", "c"}},
		{"max tags above limit", "a, b, c, d, e, f", 9, 50, []string{"a", "b", "c", "d", "e"}},
		{"json array", `["Business Trip", "Meeting", "Schedule"]`, 5, 50, []string{"business trip", "meeting", "schedule"}},
		{
			"fenced json array",
			"```json\n[\"product launch\", \"marketing\"]\n```",
			5, 50,
			[]string{"product launch", "marketing"},
		},
		{
			"json array after preamble",
			"Sure! Here you go: [\"diplomacy\", \"travel\"]",
			5, 50,
			[]string{"diplomacy", "travel"},
		},
		{
			"heading and numbered list",
			"Here are the tags:\n1. Diplomacy\n2. State Visit\n3) Europe",
			5, 50,
			[]string{"diplomacy", "state visit", "europe"},
		},
		{"bullets", "- foo\n* bar\n• baz", 5, 50, []string{"foo", "bar", "baz"}},
		{"tags prefix", "Tags: alpha, beta", 5, 50, []string{"alpha", "beta"}},
		{"inline heading", "Here are the tags: travel, politics, diplomacy", 5, 50, []string{"travel", "politics", "diplomacy"}},
		{"inline heading with newlines", "Sure! Tags: travel\npolitics", 5, 50, []string{"travel", "politics"}},
		{"quoted fragments", `"alpha", 'beta', ` + "`gamma`", 5, 50, []string{"alpha", "beta", "gamma"}},
		{"collapse whitespace", "machine    learning,  data\tscience", 5, 50, []string{"machine learning", "data science"}},
		{"drop long tags", "short, this tag is far too long", 5, 10, []string{"short"}},
		{"no length limit", "this tag is quite long", 5, 0, []string{"this tag is quite long"}},
		{"keeps numbers", "2011 olympics, 3.5 turbo", 5, 50, []string{"2011 olympics", "3.5 turbo"}},
		{"empty", "", 5, 50, []string{}},
		{"only delimiters", " ,,, \n\n , ", 5, 50, []string{}},
		{"only fences", "```\n```", 5, 50, []string{}},
		{"empty json array", "[]", 5, 50, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseTags(tt.raw, tt.maxTags, tt.maxTagLen))
		})
	}
}

func TestParseTags_RandomOutput(t *testing.T) {
	for i := 0; i < 200; i++ {
		raw := testutils.FakeTagOutput()
		tags := ParseTags(raw, 5, 50)

		assert.NotNil(t, tags)
		assert.LessOrEqual(t, len(tags), 5, raw)

		seen := map[string]bool{}
		for _, tag := range tags {
			assert.NotEmpty(t, tag, raw)
			assert.Equal(t, strings.ToLower(tag), tag, raw)
			assert.False(t, seen[tag], "duplicate tag %q in %q", tag, raw)
			seen[tag] = true
		}
	}
}
