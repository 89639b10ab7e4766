// Package nlp provides the entity recognition backends: an in-process prose
// model and a client for a zep-nlp-server compatible HTTP service.
package nlp

import (
	"fmt"

	"github.com/getzep/zep-extract/config"
	"github.com/getzep/zep-extract/internal"
	"github.com/getzep/zep-extract/pkg/models"
)

var log = internal.GetLogger()

// NewRecognizer constructs the recognizer selected by nlp.backend.
func NewRecognizer(cfg *config.Config) (models.Recognizer, error) {
	switch cfg.NLP.Backend {
	case config.NLPBackendProse, "":
		return NewProseRecognizer(cfg.NLP.ModelPath)
	case config.NLPBackendServer:
		return NewServerRecognizer(cfg.NLP.ServerURL, DefaultServerTimeout), nil
	default:
		return nil, fmt.Errorf("invalid nlp backend: %s", cfg.NLP.Backend)
	}
}
