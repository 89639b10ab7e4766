package testutils

import (
	"context"
	"sync"
	"time"

	"github.com/tmc/langchaingo/llms"

	"github.com/getzep/zep-extract/config"
	"github.com/getzep/zep-extract/pkg/models"
)

var _ models.Recognizer = &FakeRecognizer{}

// FakeRecognizer returns canned spans.
type FakeRecognizer struct {
	Spans []models.RecognizedSpan
	Err   error

	mu    sync.Mutex
	texts []string
}

func (f *FakeRecognizer) Recognize(_ context.Context, text string) ([]models.RecognizedSpan, error) {
	f.mu.Lock()
	f.texts = append(f.texts, text)
	f.mu.Unlock()

	if f.Err != nil {
		return nil, f.Err
	}
	spans := make([]models.RecognizedSpan, len(f.Spans))
	copy(spans, f.Spans)
	return spans, nil
}

func (f *FakeRecognizer) Name() string {
	return "fake"
}

// Texts returns every text passed to Recognize.
func (f *FakeRecognizer) Texts() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.texts...)
}

var _ models.ZepLLM = &FakeLLM{}

// FakeLLM returns Response after Delay, or Err. A Delay longer than the
// caller's deadline returns the context error.
type FakeLLM struct {
	Response string
	Err      error
	Delay    time.Duration
	// TokensPerRune scales GetTokenCount; zero means one token per rune.
	TokensPerRune int

	mu      sync.Mutex
	prompts []string
}

func (f *FakeLLM) Init(_ context.Context, _ *config.Config) error {
	return nil
}

func (f *FakeLLM) Call(ctx context.Context, prompt string, _ ...llms.CallOption) (string, error) {
	f.mu.Lock()
	f.prompts = append(f.prompts, prompt)
	f.mu.Unlock()

	if f.Delay > 0 {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(f.Delay):
		}
	}
	if f.Err != nil {
		return "", f.Err
	}
	return f.Response, nil
}

func (f *FakeLLM) GetTokenCount(text string) (int, error) {
	n := len([]rune(text))
	if f.TokensPerRune > 0 {
		n *= f.TokensPerRune
	}
	return n, nil
}

func (f *FakeLLM) Model() string {
	return "fake-model"
}

// Prompts returns every prompt passed to Call.
func (f *FakeLLM) Prompts() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.prompts...)
}

// CallCount is the number of Call invocations so far.
func (f *FakeLLM) CallCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.prompts)
}
