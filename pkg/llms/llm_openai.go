package llms

import (
	"context"
	"errors"
	"time"

	"github.com/pkoukk/tiktoken-go"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
	"github.com/tmc/langchaingo/schema"

	"github.com/getzep/zep-extract/config"
	"github.com/getzep/zep-extract/pkg/models"
)

var _ models.ZepLLM = &ZepOpenAILLM{}

func NewOpenAILLM(ctx context.Context, cfg *config.Config) (*ZepOpenAILLM, error) {
	zllm := &ZepOpenAILLM{}
	err := zllm.Init(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return zllm, nil
}

// ZepOpenAILLM talks to OpenAI or any OpenAI-compatible chat completions API.
type ZepOpenAILLM struct {
	llm     *openai.Chat
	tkm     *tiktoken.Tiktoken
	model   string
	timeout time.Duration
}

func (zllm *ZepOpenAILLM) Init(_ context.Context, cfg *config.Config) error {
	// Initialize the Tiktoken client
	encoding := "cl100k_base"
	tkm, err := tiktoken.GetEncoding(encoding)
	if err != nil {
		return err
	}
	zllm.tkm = tkm

	options, err := zllm.configureClient(cfg)
	if err != nil {
		return err
	}

	// Create a new client instance with options
	llm, err := NewOpenAIChatClient(options...)
	if err != nil {
		return err
	}
	zllm.llm = llm
	zllm.model = cfg.LLM.Model
	zllm.timeout = cfg.LLM.Timeout

	return nil
}

func (zllm *ZepOpenAILLM) Call(ctx context.Context,
	prompt string,
	options ...llms.CallOption,
) (string, error) {
	// If the LLM is not initialized, return an error
	if zllm.llm == nil {
		return "", NewLLMError(InvalidLLMModelError, nil)
	}

	if len(options) == 0 {
		options = append(options, llms.WithTemperature(DefaultTemperature))
	}

	thisCtx, cancel := context.WithTimeout(ctx, zllm.timeout)
	defer cancel()

	messages := []schema.ChatMessage{schema.SystemChatMessage{Content: prompt}}

	completion, err := zllm.llm.Call(thisCtx, messages, options...)
	if err != nil {
		return "", ClassifyCompletionError(thisCtx, zllm.timeout, err)
	}

	return completion.GetContent(), nil
}

// GetTokenCount returns the number of tokens in the text
func (zllm *ZepOpenAILLM) GetTokenCount(text string) (int, error) {
	if zllm.tkm == nil {
		return 0, errors.New("tokenizer not initialized")
	}
	return len(zllm.tkm.Encode(text, nil, nil)), nil
}

func (zllm *ZepOpenAILLM) Model() string {
	return zllm.model
}

func (zllm *ZepOpenAILLM) configureClient(cfg *config.Config) ([]openai.Option, error) {
	apiKey := cfg.LLM.OpenAIAPIKey
	if apiKey == "" {
		return nil, errors.New(OpenAIAPIKeyNotSetError)
	}

	options := GetBaseOpenAIClientOptions(apiKey, cfg.LLM.Model, cfg.LLM.MaxRetries, cfg.LLM.Timeout)

	options = ConfigureOpenAIClientOptions(options, cfg)

	return options, nil
}
