package llms

import (
	"time"

	"github.com/tmc/langchaingo/llms/openai"

	"github.com/getzep/zep-extract/config"
)

const OpenAIAPIKeyNotSetError = "ZEP_EXTRACT_LLM_OPENAI_API_KEY (or GROQ_API_KEY) is not set" //nolint:gosec

func NewOpenAIChatClient(options ...openai.Option) (*openai.Chat, error) {
	client, err := openai.NewChat(options...)
	if err != nil {
		return nil, err
	}
	return client, nil
}

// GetBaseOpenAIClientOptions returns the options every OpenAI-compatible
// client needs. Each HTTP attempt is bounded by timeout.
func GetBaseOpenAIClientOptions(apiKey, model string, retryMax int, timeout time.Duration) []openai.Option {
	retryableHTTPClient := NewRetryableHTTPClient(retryMax, timeout)

	options := make([]openai.Option, 0)
	options = append(
		options,
		openai.WithHTTPClient(retryableHTTPClient.StandardClient()),
		openai.WithModel(model),
		openai.WithToken(apiKey),
	)

	return options
}

func ConfigureOpenAIClientOptions(options []openai.Option, cfg *config.Config) []openai.Option {
	applyOption := func(cond bool, opts ...openai.Option) []openai.Option {
		if cond {
			return append(options, opts...)
		}
		return options
	}

	options = applyOption(cfg.LLM.OpenAIEndpoint != "",
		openai.WithBaseURL(cfg.LLM.OpenAIEndpoint),
	)

	options = applyOption(cfg.LLM.OpenAIOrgID != "",
		openai.WithOrganization(cfg.LLM.OpenAIOrgID),
	)

	return options
}
