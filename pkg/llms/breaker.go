package llms

import (
	"context"
	"errors"

	"github.com/sony/gobreaker"
	"github.com/tmc/langchaingo/llms"

	"github.com/getzep/zep-extract/config"
	"github.com/getzep/zep-extract/pkg/models"
)

// ErrCircuitOpen is returned while the breaker rejects completion calls.
var ErrCircuitOpen = errors.New("circuit breaker is open")

var _ models.ZepLLM = &BreakerLLM{}

// BreakerLLM stops calling the completion service after repeated failures and
// fails fast until the open timeout elapses. Rejected calls surface as upstream
// errors so the tag failure policy applies to them.
type BreakerLLM struct {
	llm     models.ZepLLM
	breaker *gobreaker.CircuitBreaker
}

func NewBreakerLLM(llm models.ZepLLM, cfg config.CircuitBreakerConfig) *BreakerLLM {
	maxFailures := cfg.MaxFailures
	if maxFailures == 0 {
		maxFailures = 5
	}

	settings := gobreaker.Settings{
		Name:        "completion",
		MaxRequests: 1,
		Timeout:     cfg.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= maxFailures
		},
		// A caller that went away says nothing about the upstream's health.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			log.Warnf("%s circuit breaker changed from %s to %s", name, from, to)
		},
	}

	return &BreakerLLM{
		llm:     llm,
		breaker: gobreaker.NewCircuitBreaker(settings),
	}
}

func (b *BreakerLLM) Init(ctx context.Context, cfg *config.Config) error {
	return b.llm.Init(ctx, cfg)
}

func (b *BreakerLLM) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	result, err := b.breaker.Execute(func() (interface{}, error) {
		return b.llm.Call(ctx, prompt, options...)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return "", models.NewCompletionUpstreamError(0, ErrCircuitOpen)
		}
		return "", err
	}

	return result.(string), nil
}

func (b *BreakerLLM) GetTokenCount(text string) (int, error) {
	return b.llm.GetTokenCount(text)
}

func (b *BreakerLLM) Model() string {
	return b.llm.Model()
}

// State reports the breaker state: closed, half-open or open.
func (b *BreakerLLM) State() string {
	return b.breaker.State().String()
}
