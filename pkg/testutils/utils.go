package testutils

import (
	"crypto/rand"
	"math/big"
	"time"

	"github.com/getzep/zep-extract/config"
)

// NewTestConfig returns a valid config built from defaults, with short
// timeouts and no network-dependent services.
func NewTestConfig() *config.Config {
	cfg, err := config.LoadConfig("")
	if err != nil {
		panic(err)
	}

	cfg.LLM.Service = config.LLMServiceOpenAI
	cfg.LLM.Model = "test-model"
	cfg.LLM.OpenAIAPIKey = "test-key"
	cfg.LLM.AnthropicAPIKey = "test-key"
	cfg.LLM.Timeout = 200 * time.Millisecond
	cfg.LLM.CircuitBreaker.Enabled = false
	cfg.NLP.Backend = config.NLPBackendProse
	cfg.NLP.Labels = nil
	cfg.Extract.TagFailurePolicy = config.TagFailurePolicyDegrade
	cfg.Auth.Required = false
	cfg.Auth.Secret = "test-secret"
	cfg.OTel.Enabled = false

	return cfg
}

const charset = "abcdefghijklmnopqrstuvwxyz" +
	"ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

func GenerateRandomString(length int) string {
	b := make([]byte, length)
	for i := range b {
		bigInt, _ := rand.Int(rand.Reader, big.NewInt(int64(len(charset))))
		b[i] = charset[bigInt.Int64()]
	}
	return string(b)
}
