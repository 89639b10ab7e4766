package models

import (
	"context"
)

// Extractor is an interface that defines the methods that must be implemented by an Extractor
type Extractor interface {
	// Extract runs entity recognition and tag generation over text.
	Extract(ctx context.Context, text string) (*ExtractResponse, error)
}

// Recognizer is the named-entity-recognition capability. Implementations are
// constructed once at startup and must be safe for concurrent use.
type Recognizer interface {
	Recognize(ctx context.Context, text string) ([]RecognizedSpan, error)
	// Name identifies the backend in logs.
	Name() string
}
