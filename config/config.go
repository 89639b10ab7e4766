package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/getzep/zep-extract/internal"
)

// We're bootstrapping so avoid any imports from other packages
var log = logrus.New()

const (
	EnvPrefix = "ZEP_EXTRACT"

	LLMServiceOpenAI    = "openai"
	LLMServiceAnthropic = "anthropic"

	NLPBackendProse  = "prose"
	NLPBackendServer = "server"

	TagFailurePolicyDegrade = "degrade"
	TagFailurePolicyFail    = "fail"

	// MaxTagsLimit is the upper bound on tags returned for a single extraction.
	MaxTagsLimit = 5
)

var defaults = map[string]any{
	"llm.service":                           LLMServiceOpenAI,
	"llm.model":                             "llama3-8b-8192",
	"llm.temperature":                       0.4,
	"llm.timeout":                           15 * time.Second,
	"llm.max_retries":                       0,
	"llm.openai_api_key":                    "",
	"llm.openai_endpoint":                   "https://api.groq.com/openai/v1",
	"llm.openai_org_id":                     "",
	"llm.anthropic_api_key":                 "",
	"llm.circuit_breaker.enabled":           true,
	"llm.circuit_breaker.max_failures":      5,
	"llm.circuit_breaker.open_timeout":      30 * time.Second,
	"nlp.backend":                           NLPBackendProse,
	"nlp.model_path":                        "",
	"nlp.server_url":                        "http://localhost:5557",
	"nlp.labels":                            []string{},
	"extract.max_text_length":               10_000,
	"extract.max_tags":                      MaxTagsLimit,
	"extract.max_tag_length":                50,
	"extract.tag_max_tokens":                120,
	"extract.max_prompt_tokens":             0,
	"extract.tag_failure_policy":            TagFailurePolicyDegrade,
	"server.host":                           "",
	"server.port":                           8000,
	"server.max_request_size":               1 << 20,
	"server.request_timeout":                30 * time.Second,
	"server.rate_limit.requests_per_second": 0,
	"server.rate_limit.burst":               0,
	"log.level":                             "info",
	"log.format":                            internal.LogFormatText,
	"auth.secret":                           "",
	"auth.required":                         false,
	"otel.enabled":                          false,
	"otel.endpoint":                         "localhost:4318",
	"otel.insecure":                         true,
	"otel.service_name":                     "zep-extract",
}

// LoadConfig loads the config file and ENV variables into a Config struct.
// A missing config.yaml in the working directory is not an error; a missing
// file passed explicitly is.
func LoadConfig(configFile string) (*Config, error) {
	v := viper.New()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("config")
	}

	v.SetConfigType("yaml")

	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, err
		}
		log.Debug("config.yaml not found, using defaults and environment variables")
	}

	// Environment variables take precedence over config file
	loadDotEnv()

	if err := v.BindEnv("llm.openai_api_key", EnvPrefix+"_LLM_OPENAI_API_KEY", "GROQ_API_KEY"); err != nil {
		return nil, fmt.Errorf("error binding environment variable: %w", err)
	}
	if err := v.BindEnv("llm.anthropic_api_key", EnvPrefix+"_LLM_ANTHROPIC_API_KEY"); err != nil {
		return nil, fmt.Errorf("error binding environment variable: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate rejects configurations the server cannot run with.
func Validate(cfg *Config) error {
	switch cfg.LLM.Service {
	case LLMServiceOpenAI, LLMServiceAnthropic:
	default:
		return fmt.Errorf("invalid llm.service %q", cfg.LLM.Service)
	}
	if cfg.LLM.Model == "" {
		return errors.New("llm.model must be set")
	}
	if cfg.LLM.Timeout <= 0 {
		return errors.New("llm.timeout must be positive")
	}
	if cfg.LLM.MaxRetries < 0 {
		return errors.New("llm.max_retries must not be negative")
	}

	switch cfg.NLP.Backend {
	case NLPBackendProse:
	case NLPBackendServer:
		if cfg.NLP.ServerURL == "" {
			return errors.New("nlp.server_url must be set when nlp.backend is server")
		}
	default:
		return fmt.Errorf("invalid nlp.backend %q", cfg.NLP.Backend)
	}

	if cfg.Extract.MaxTextLength <= 0 {
		return errors.New("extract.max_text_length must be positive")
	}
	if cfg.Extract.MaxTags <= 0 || cfg.Extract.MaxTags > MaxTagsLimit {
		return fmt.Errorf("extract.max_tags must be between 1 and %d", MaxTagsLimit)
	}
	if cfg.Extract.MaxTagLength <= 0 {
		return errors.New("extract.max_tag_length must be positive")
	}
	if cfg.Extract.TagMaxTokens <= 0 {
		return errors.New("extract.tag_max_tokens must be positive")
	}
	switch cfg.Extract.TagFailurePolicy {
	case TagFailurePolicyDegrade, TagFailurePolicyFail:
	default:
		return fmt.Errorf("invalid extract.tag_failure_policy %q", cfg.Extract.TagFailurePolicy)
	}

	if cfg.Server.Port <= 0 {
		return errors.New("server.port must be positive")
	}

	switch strings.ToLower(cfg.Log.Format) {
	case "", internal.LogFormatText, internal.LogFormatJSON:
	default:
		return fmt.Errorf("invalid log.format %q", cfg.Log.Format)
	}

	if cfg.Auth.Required && cfg.Auth.Secret == "" {
		return errors.New("auth.secret must be set when auth.required is true")
	}

	return nil
}

// loadDotEnv loads environment variables from .env file
func loadDotEnv() {
	err := godotenv.Load()
	if err != nil {
		log.Debug(".env file not found or unable to load")
	}
}

// SetLogLevel sets the log level and format from the config. The level
// defaults to INFO if not set or invalid.
func SetLogLevel(cfg *Config) {
	level, err := logrus.ParseLevel(cfg.Log.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	internal.SetLogLevel(level)
	if err := internal.SetLogFormat(cfg.Log.Format); err != nil {
		log.Warn(err)
	}
	log.Info("Log level set to: ", level)
}

// Redacted returns a copy of the config with secrets masked, for printing.
func Redacted(cfg *Config) Config {
	c := *cfg
	mask := func(s string) string {
		if s == "" {
			return ""
		}
		return "********"
	}
	c.LLM.OpenAIAPIKey = mask(c.LLM.OpenAIAPIKey)
	c.LLM.AnthropicAPIKey = mask(c.LLM.AnthropicAPIKey)
	c.Auth.Secret = mask(c.Auth.Secret)
	return c
}
