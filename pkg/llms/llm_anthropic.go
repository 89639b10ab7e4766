package llms

import (
	"context"
	"errors"
	"time"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/anthropic"

	"github.com/getzep/zep-extract/config"
	"github.com/getzep/zep-extract/pkg/models"
)

const AnthropicAPIKeyNotSetError = "ZEP_EXTRACT_LLM_ANTHROPIC_API_KEY is not set" //nolint:gosec

var _ models.ZepLLM = &ZepAnthropicLLM{}

func NewAnthropicLLM(ctx context.Context, cfg *config.Config) (*ZepAnthropicLLM, error) {
	zllm := &ZepAnthropicLLM{}
	err := zllm.Init(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return zllm, nil
}

type ZepAnthropicLLM struct {
	client  *anthropic.LLM
	model   string
	timeout time.Duration
}

func (zllm *ZepAnthropicLLM) Init(_ context.Context, cfg *config.Config) error {
	options, err := zllm.configureClient(cfg)
	if err != nil {
		return err
	}

	// Create a new client instance with options
	llm, err := anthropic.New(options...)
	if err != nil {
		return err
	}
	zllm.client = llm
	zllm.model = cfg.LLM.Model
	zllm.timeout = cfg.LLM.Timeout

	return nil
}

func (zllm *ZepAnthropicLLM) Call(ctx context.Context,
	prompt string,
	options ...llms.CallOption,
) (string, error) {
	// If the LLM is not initialized, return an error
	if zllm.client == nil {
		return "", NewLLMError(InvalidLLMModelError, nil)
	}

	if len(options) == 0 {
		options = append(options, llms.WithTemperature(DefaultTemperature))
	}

	thisCtx, cancel := context.WithTimeout(ctx, zllm.timeout)
	defer cancel()

	prompt = "Human: " + prompt + "\nAssistant:"

	completion, err := zllm.client.Call(thisCtx, prompt, options...)
	if err != nil {
		return "", ClassifyCompletionError(thisCtx, zllm.timeout, err)
	}

	return completion, nil
}

// GetTokenCount returns the number of tokens in the text.
// Return 0 for now, since we don't have a token count function
func (zllm *ZepAnthropicLLM) GetTokenCount(_ string) (int, error) {
	return 0, nil
}

func (zllm *ZepAnthropicLLM) Model() string {
	return zllm.model
}

func (zllm *ZepAnthropicLLM) configureClient(cfg *config.Config) ([]anthropic.Option, error) {
	apiKey := cfg.LLM.AnthropicAPIKey
	if apiKey == "" {
		return nil, errors.New(AnthropicAPIKeyNotSetError)
	}

	options := make([]anthropic.Option, 0)
	options = append(
		options,
		anthropic.WithModel(cfg.LLM.Model),
		anthropic.WithToken(apiKey),
	)

	return options, nil
}
