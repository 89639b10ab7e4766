package llms

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/getzep/zep-extract/config"
	"github.com/getzep/zep-extract/pkg/models"
	"github.com/getzep/zep-extract/pkg/testutils"
)

func TestBreakerLLM(t *testing.T) {
	fake := &testutils.FakeLLM{Err: models.NewCompletionUpstreamError(500, errors.New("boom"))}
	b := NewBreakerLLM(fake, config.CircuitBreakerConfig{MaxFailures: 2, OpenTimeout: 50 * time.Millisecond})

	for i := 0; i < 2; i++ {
		_, err := b.Call(context.Background(), "p")
		require.ErrorIs(t, err, models.ErrCompletionUpstream)
	}
	assert.Equal(t, "open", b.State())

	// open: the wrapped client is not called
	_, err := b.Call(context.Background(), "p")
	assert.ErrorIs(t, err, models.ErrCompletionUpstream)
	assert.ErrorIs(t, err, ErrCircuitOpen)
	assert.Equal(t, 2, fake.CallCount())

	// half-open after the timeout; one success closes the breaker
	time.Sleep(60 * time.Millisecond)
	fake.Err = nil
	fake.Response = "a, b"
	result, err := b.Call(context.Background(), "p")
	require.NoError(t, err)
	assert.Equal(t, "a, b", result)
	assert.Equal(t, "closed", b.State())
}

func TestBreakerLLM_IgnoresCanceledCalls(t *testing.T) {
	fake := &testutils.FakeLLM{Err: models.NewCompletionUpstreamError(0, context.Canceled)}
	b := NewBreakerLLM(fake, config.CircuitBreakerConfig{MaxFailures: 2, OpenTimeout: time.Minute})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	for i := 0; i < 5; i++ {
		_, err := b.Call(ctx, "p")
		require.ErrorIs(t, err, context.Canceled)
	}
	assert.Equal(t, "closed", b.State())

	fake.Err = nil
	fake.Response = "a, b"
	result, err := b.Call(context.Background(), "p")
	require.NoError(t, err)
	assert.Equal(t, "a, b", result)

	// a client that goes away mid-call is not an upstream failure either
	slow := &testutils.FakeLLM{Delay: time.Second}
	sb := NewBreakerLLM(slow, config.CircuitBreakerConfig{MaxFailures: 1, OpenTimeout: time.Minute})
	_, err = sb.Call(ctx, "p")
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, "closed", sb.State())
}

func TestBreakerLLM_Delegates(t *testing.T) {
	fake := &testutils.FakeLLM{}
	b := NewBreakerLLM(fake, config.CircuitBreakerConfig{})

	assert.NoError(t, b.Init(context.Background(), nil))
	assert.Equal(t, "fake-model", b.Model())
	n, err := b.GetTokenCount("four")
	assert.NoError(t, err)
	assert.Equal(t, 4, n)
}
