package models

import (
	"context"

	"github.com/tmc/langchaingo/llms"

	"github.com/getzep/zep-extract/config"
)

// ZepLLM is the completion capability used for tag generation.
type ZepLLM interface {
	// Call runs the LLM chat completion against the prompt
	// this version of Call uses the chat endpoint of an LLM, but
	// we pass in a simple string prompt
	Call(
		ctx context.Context,
		prompt string,
		options ...llms.CallOption,
	) (string, error)
	// GetTokenCount returns the number of tokens in the given text
	GetTokenCount(text string) (int, error)
	// Model returns the configured model name
	Model() string
	// Init initializes the LLM
	Init(ctx context.Context, cfg *config.Config) error
}
