package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/getzep/zep-extract/config"
	"github.com/getzep/zep-extract/pkg/extractors"
	"github.com/getzep/zep-extract/pkg/models"
	"github.com/getzep/zep-extract/pkg/testutils"
)

func TestReadInput(t *testing.T) {
	text, err := readInput([]string{"Barack", "Obama"}, strings.NewReader("ignored"))
	require.NoError(t, err)
	assert.Equal(t, "Barack Obama", text)

	text, err = readInput(nil, strings.NewReader("from stdin\n"))
	require.NoError(t, err)
	assert.Equal(t, "from stdin\n", text)

	_, err = readInput(nil, nil)
	assert.Error(t, err)
}

func TestExtractTo(t *testing.T) {
	cfg := testutils.NewTestConfig()
	extractor, err := extractors.NewEntityTagExtractor(
		&testutils.FakeRecognizer{Spans: testutils.ObamaSpans},
		&testutils.FakeLLM{Response: "travel, politics, diplomacy"},
		cfg,
	)
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, extractTo(context.Background(), extractor, testutils.ObamaText, &out))

	var resp models.ExtractResponse
	require.NoError(t, json.Unmarshal(out.Bytes(), &resp))
	assert.Len(t, resp.Entities, 3)
	assert.Equal(t, []string{"travel", "politics", "diplomacy"}, resp.Tags)

	err = extractTo(context.Background(), extractor, "  ", &out)
	assert.True(t, errors.Is(err, models.ErrInvalidInput))
}

func TestWriteConfigYAML(t *testing.T) {
	cfg := testutils.NewTestConfig()
	cfg.LLM.OpenAIAPIKey = "sk-secret"

	var out bytes.Buffer
	require.NoError(t, writeConfigYAML(&out, cfg))
	assert.NotContains(t, out.String(), "sk-secret")

	var dumped config.Config
	require.NoError(t, yaml.Unmarshal(out.Bytes(), &dumped))
	assert.Equal(t, "********", dumped.LLM.OpenAIAPIKey)
	assert.Equal(t, cfg.Server.Port, dumped.Server.Port)
	assert.Equal(t, cfg.LLM.Timeout, dumped.LLM.Timeout)
}

func TestJSONSchemaCommand(t *testing.T) {
	var out bytes.Buffer
	dumpJsonSchemaCmd.SetOut(&out)
	require.NoError(t, dumpJsonSchemaCmd.RunE(dumpJsonSchemaCmd, nil))

	var schema map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &schema))
	assert.Contains(t, schema, "properties")
}
