package config

import "time"

// Config holds the configuration of the application
// Use config.LoadConfig to create a new instance
type Config struct {
	LLM     LLM           `mapstructure:"llm"     yaml:"llm"`
	NLP     NLP           `mapstructure:"nlp"     yaml:"nlp"`
	Extract ExtractConfig `mapstructure:"extract" yaml:"extract"`
	Server  ServerConfig  `mapstructure:"server"  yaml:"server"`
	Log     LogConfig     `mapstructure:"log"     yaml:"log"`
	Auth    AuthConfig    `mapstructure:"auth"    yaml:"auth"`
	OTel    OTelConfig    `mapstructure:"otel"    yaml:"otel"`
}

type LLM struct {
	// Service is one of "openai" or "anthropic". Groq and other OpenAI-compatible
	// providers use "openai" with OpenAIEndpoint set.
	Service     string        `mapstructure:"service"     yaml:"service"`
	Model       string        `mapstructure:"model"       yaml:"model"`
	Temperature float64       `mapstructure:"temperature" yaml:"temperature"`
	Timeout     time.Duration `mapstructure:"timeout"     yaml:"timeout"`
	MaxRetries  int           `mapstructure:"max_retries" yaml:"max_retries"`
	// OpenAIAPIKey is loaded from ENV not config file.
	OpenAIAPIKey   string `mapstructure:"openai_api_key"  yaml:"openai_api_key"`
	OpenAIEndpoint string `mapstructure:"openai_endpoint" yaml:"openai_endpoint"`
	OpenAIOrgID    string `mapstructure:"openai_org_id"   yaml:"openai_org_id"`
	// AnthropicAPIKey is loaded from ENV not config file.
	AnthropicAPIKey string               `mapstructure:"anthropic_api_key" yaml:"anthropic_api_key"`
	CircuitBreaker  CircuitBreakerConfig `mapstructure:"circuit_breaker"   yaml:"circuit_breaker"`
}

type CircuitBreakerConfig struct {
	Enabled     bool          `mapstructure:"enabled"      yaml:"enabled"`
	MaxFailures uint32        `mapstructure:"max_failures" yaml:"max_failures"`
	OpenTimeout time.Duration `mapstructure:"open_timeout" yaml:"open_timeout"`
}

type NLP struct {
	// Backend is "prose" (in-process model) or "server" (zep-nlp-server compatible HTTP API).
	Backend   string `mapstructure:"backend"    yaml:"backend"`
	ModelPath string `mapstructure:"model_path" yaml:"model_path"`
	ServerURL string `mapstructure:"server_url" yaml:"server_url"`
	// Labels restricts returned entities to these normalized labels. Empty means all.
	Labels []string `mapstructure:"labels" yaml:"labels"`
}

type ExtractConfig struct {
	MaxTextLength    int `mapstructure:"max_text_length"   yaml:"max_text_length"`
	MaxTags          int `mapstructure:"max_tags"          yaml:"max_tags"`
	MaxTagLength     int `mapstructure:"max_tag_length"    yaml:"max_tag_length"`
	TagMaxTokens     int `mapstructure:"tag_max_tokens"    yaml:"tag_max_tokens"`
	MaxPromptTokens  int `mapstructure:"max_prompt_tokens" yaml:"max_prompt_tokens"`
	// TagFailurePolicy is "degrade" (empty tags, HTTP 200) or "fail" (HTTP 502/504).
	TagFailurePolicy string `mapstructure:"tag_failure_policy" yaml:"tag_failure_policy"`
}

type ServerConfig struct {
	Host           string          `mapstructure:"host"             yaml:"host"`
	Port           int             `mapstructure:"port"             yaml:"port"`
	MaxRequestSize int64           `mapstructure:"max_request_size" yaml:"max_request_size"`
	RequestTimeout time.Duration   `mapstructure:"request_timeout"  yaml:"request_timeout"`
	RateLimit      RateLimitConfig `mapstructure:"rate_limit"       yaml:"rate_limit"`
}

type RateLimitConfig struct {
	RequestsPerSecond float64 `mapstructure:"requests_per_second" yaml:"requests_per_second"`
	Burst             int     `mapstructure:"burst"               yaml:"burst"`
}

type LogConfig struct {
	Level string `mapstructure:"level" yaml:"level"`
	// Format is "text" or "json".
	Format string `mapstructure:"format" yaml:"format"`
}

type AuthConfig struct {
	Secret   string `mapstructure:"secret"   yaml:"secret"`
	Required bool   `mapstructure:"required" yaml:"required"`
}

type OTelConfig struct {
	Enabled     bool   `mapstructure:"enabled"      yaml:"enabled"`
	Endpoint    string `mapstructure:"endpoint"     yaml:"endpoint"`
	Insecure    bool   `mapstructure:"insecure"     yaml:"insecure"`
	ServiceName string `mapstructure:"service_name" yaml:"service_name"`
}
