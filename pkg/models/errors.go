package models

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrRecognition        = errors.New("entity recognition failed")
	ErrCompletionTimeout  = errors.New("tag completion timed out")
	ErrCompletionUpstream = errors.New("tag completion upstream error")
)

type InvalidInputError struct {
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid input: %s", e.Reason)
}

func (e *InvalidInputError) Unwrap() error {
	return ErrInvalidInput
}

func NewInvalidInputError(reason string) error {
	return &InvalidInputError{Reason: reason}
}

// RecognitionError is fatal to a request: there is no fallback entity source.
type RecognitionError struct {
	Backend string
	Err     error
}

func (e *RecognitionError) Error() string {
	return fmt.Sprintf("entity recognition failed (%s): %v", e.Backend, e.Err)
}

func (e *RecognitionError) Unwrap() []error {
	return []error{ErrRecognition, e.Err}
}

func NewRecognitionError(backend string, err error) error {
	return &RecognitionError{Backend: backend, Err: err}
}

type CompletionTimeoutError struct {
	Timeout time.Duration
	Err     error
}

func (e *CompletionTimeoutError) Error() string {
	return fmt.Sprintf("tag completion did not finish within %s: %v", e.Timeout, e.Err)
}

func (e *CompletionTimeoutError) Unwrap() []error {
	return []error{ErrCompletionTimeout, e.Err}
}

func NewCompletionTimeoutError(timeout time.Duration, err error) error {
	return &CompletionTimeoutError{Timeout: timeout, Err: err}
}

// CompletionUpstreamError covers non-success responses and transport failures
// from the completion service. StatusCode is 0 when no response was received.
type CompletionUpstreamError struct {
	StatusCode int
	Err        error
}

func (e *CompletionUpstreamError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("tag completion upstream error (status %d): %v", e.StatusCode, e.Err)
	}
	return fmt.Sprintf("tag completion upstream error: %v", e.Err)
}

func (e *CompletionUpstreamError) Unwrap() []error {
	return []error{ErrCompletionUpstream, e.Err}
}

func NewCompletionUpstreamError(statusCode int, err error) error {
	return &CompletionUpstreamError{StatusCode: statusCode, Err: err}
}
