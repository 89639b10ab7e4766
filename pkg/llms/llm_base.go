package llms

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/http/httptrace"
	"regexp"
	"strconv"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/httptrace/otelhttptrace"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/getzep/zep-extract/config"
	"github.com/getzep/zep-extract/internal"
	"github.com/getzep/zep-extract/pkg/models"
)

const DefaultTemperature = 0.0
const InvalidLLMModelError = "llm model is not set or is invalid"

var log = internal.GetLogger()

// NewLLMClient returns the completion client selected by llm.service, wrapped
// in a circuit breaker when one is configured.
func NewLLMClient(ctx context.Context, cfg *config.Config) (models.ZepLLM, error) {
	var (
		zllm models.ZepLLM
		err  error
	)
	switch cfg.LLM.Service {
	case config.LLMServiceOpenAI, "":
		// OpenAI-compatible endpoints (Groq and friends) serve arbitrary model
		// names, so the model is not validated against a list.
		zllm, err = NewOpenAILLM(ctx, cfg)
	case config.LLMServiceAnthropic:
		zllm, err = NewAnthropicLLM(ctx, cfg)
	default:
		return nil, fmt.Errorf("invalid LLM service: %s", cfg.LLM.Service)
	}
	if err != nil {
		return nil, err
	}

	if cfg.LLM.CircuitBreaker.Enabled {
		return NewBreakerLLM(zllm, cfg.LLM.CircuitBreaker), nil
	}
	return zllm, nil
}

type LLMError struct {
	message       string
	originalError error
}

func (e *LLMError) Error() string {
	return fmt.Sprintf("llm error: %s (original error: %v)", e.message, e.originalError)
}

func (e *LLMError) Unwrap() error {
	return e.originalError
}

func NewLLMError(message string, originalError error) *LLMError {
	return &LLMError{message: message, originalError: originalError}
}

func NewRetryableHTTPClient(retryMax int, timeout time.Duration) *retryablehttp.Client {
	retryableHTTPClient := retryablehttp.NewClient()
	retryableHTTPClient.RetryMax = retryMax
	retryableHTTPClient.HTTPClient.Timeout = timeout
	retryableHTTPClient.HTTPClient.Transport = otelhttp.NewTransport(
		retryableHTTPClient.HTTPClient.Transport,
		otelhttp.WithClientTrace(func(ctx context.Context) *httptrace.ClientTrace {
			return otelhttptrace.NewClientTrace(ctx)
		}),
	)
	retryableHTTPClient.Logger = internal.NewLeveledLogrus(log, "completion-http")
	retryableHTTPClient.Backoff = retryablehttp.DefaultBackoff
	retryableHTTPClient.CheckRetry = retryPolicy

	return retryableHTTPClient
}

// retryPolicy is a retryablehttp.CheckRetry function. It is used to determine
// whether a request should be retried or not.
func retryPolicy(ctx context.Context, resp *http.Response, err error) (bool, error) {
	// do not retry on context.Canceled or context.DeadlineExceeded
	if ctx.Err() != nil {
		return false, ctx.Err()
	}

	// Do not retry 400 errors as they're used by OpenAI to indicate maximum
	// context length exceeded
	if resp != nil && resp.StatusCode == http.StatusBadRequest {
		return false, err
	}

	shouldRetry, _ := retryablehttp.DefaultRetryPolicy(ctx, resp, err)
	return shouldRetry, nil
}

var statusCodePattern = regexp.MustCompile(`status code: (\d{3})`)

// ClassifyCompletionError maps a failed completion call onto the timeout and
// upstream error kinds. callCtx is the context the call ran under.
func ClassifyCompletionError(callCtx context.Context, timeout time.Duration, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, models.ErrCompletionTimeout) || errors.Is(err, models.ErrCompletionUpstream) {
		return err
	}

	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(callCtx.Err(), context.DeadlineExceeded) ||
		(errors.As(err, &netErr) && netErr.Timeout()) {
		return models.NewCompletionTimeoutError(timeout, err)
	}

	return models.NewCompletionUpstreamError(statusCodeFromError(err), err)
}

// statusCodeFromError recovers the HTTP status from langchaingo client errors,
// which only carry it in the message.
func statusCodeFromError(err error) int {
	m := statusCodePattern.FindStringSubmatch(err.Error())
	if m == nil {
		return 0
	}
	code, convErr := strconv.Atoi(m[1])
	if convErr != nil {
		return 0
	}
	return code
}
