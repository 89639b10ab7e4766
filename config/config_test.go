package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))
	return path
}

// chdirTemp moves into an empty directory so no config.yaml or .env is picked up.
func chdirTemp(t *testing.T) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func TestLoadConfig_Defaults(t *testing.T) {
	chdirTemp(t)

	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, LLMServiceOpenAI, cfg.LLM.Service)
	assert.Equal(t, 15*time.Second, cfg.LLM.Timeout)
	assert.Equal(t, NLPBackendProse, cfg.NLP.Backend)
	assert.Equal(t, 10_000, cfg.Extract.MaxTextLength)
	assert.Equal(t, MaxTagsLimit, cfg.Extract.MaxTags)
	assert.Equal(t, TagFailurePolicyDegrade, cfg.Extract.TagFailurePolicy)
	assert.Equal(t, 8000, cfg.Server.Port)
	assert.False(t, cfg.Auth.Required)
	assert.Equal(t, "text", cfg.Log.Format)
}

func TestLoadConfig_FileAndEnv(t *testing.T) {
	path := writeConfigFile(t, `
llm:
  service: anthropic
  model: claude-2
  timeout: 3s
nlp:
  backend: server
  server_url: http://nlp:5557
  labels: [PERSON, LOCATION]
extract:
  max_tags: 3
  tag_failure_policy: fail
server:
  port: 9000
`)
	t.Setenv("ZEP_EXTRACT_SERVER_PORT", "9100")
	t.Setenv("ZEP_EXTRACT_LLM_ANTHROPIC_API_KEY", "anthropic-key")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, LLMServiceAnthropic, cfg.LLM.Service)
	assert.Equal(t, "claude-2", cfg.LLM.Model)
	assert.Equal(t, 3*time.Second, cfg.LLM.Timeout)
	assert.Equal(t, "anthropic-key", cfg.LLM.AnthropicAPIKey)
	assert.Equal(t, NLPBackendServer, cfg.NLP.Backend)
	assert.Equal(t, []string{"PERSON", "LOCATION"}, cfg.NLP.Labels)
	assert.Equal(t, 3, cfg.Extract.MaxTags)
	assert.Equal(t, TagFailurePolicyFail, cfg.Extract.TagFailurePolicy)
	assert.Equal(t, 9100, cfg.Server.Port, "env should override file")
}

func TestLoadConfig_GroqKeyAlias(t *testing.T) {
	chdirTemp(t)
	t.Setenv("GROQ_API_KEY", "gsk-test")

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "gsk-test", cfg.LLM.OpenAIAPIKey)
}

func TestLoadConfig_MissingExplicitFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadConfig_Invalid(t *testing.T) {
	path := writeConfigFile(t, `
extract:
  max_tags: 9
`)
	_, err := LoadConfig(path)
	assert.ErrorContains(t, err, "extract.max_tags")
}

func validConfig() *Config {
	return &Config{
		LLM: LLM{Service: LLMServiceOpenAI, Model: "m", Timeout: time.Second},
		NLP: NLP{Backend: NLPBackendProse},
		Extract: ExtractConfig{
			MaxTextLength:    100,
			MaxTags:          5,
			MaxTagLength:     50,
			TagMaxTokens:     120,
			TagFailurePolicy: TagFailurePolicyDegrade,
		},
		Server: ServerConfig{Port: 8000},
	}
}

func TestValidate(t *testing.T) {
	testCases := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{name: "bad service", mutate: func(c *Config) { c.LLM.Service = "cohere" }, wantErr: "llm.service"},
		{name: "no model", mutate: func(c *Config) { c.LLM.Model = "" }, wantErr: "llm.model"},
		{name: "zero timeout", mutate: func(c *Config) { c.LLM.Timeout = 0 }, wantErr: "llm.timeout"},
		{name: "bad backend", mutate: func(c *Config) { c.NLP.Backend = "spacy" }, wantErr: "nlp.backend"},
		{
			name:    "server backend without url",
			mutate:  func(c *Config) { c.NLP.Backend = NLPBackendServer },
			wantErr: "nlp.server_url",
		},
		{name: "zero max tags", mutate: func(c *Config) { c.Extract.MaxTags = 0 }, wantErr: "extract.max_tags"},
		{
			name:    "bad policy",
			mutate:  func(c *Config) { c.Extract.TagFailurePolicy = "retry" },
			wantErr: "tag_failure_policy",
		},
		{name: "json logs", mutate: func(c *Config) { c.Log.Format = "json" }},
		{name: "bad log format", mutate: func(c *Config) { c.Log.Format = "xml" }, wantErr: "log.format"},
		{
			name:    "auth without secret",
			mutate:  func(c *Config) { c.Auth.Required = true },
			wantErr: "auth.secret",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := validConfig()
			tc.mutate(cfg)
			err := Validate(cfg)
			if tc.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tc.wantErr)
		})
	}
}

func TestRedacted(t *testing.T) {
	cfg := validConfig()
	cfg.LLM.OpenAIAPIKey = "secret-key"
	cfg.Auth.Secret = "jwt-secret"

	r := Redacted(cfg)
	assert.Equal(t, "********", r.LLM.OpenAIAPIKey)
	assert.Equal(t, "********", r.Auth.Secret)
	assert.Equal(t, "", r.LLM.AnthropicAPIKey)
	assert.Equal(t, "secret-key", cfg.LLM.OpenAIAPIKey, "original must be untouched")
}
