package nlp

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/jdkato/prose/v2"

	"github.com/getzep/zep-extract/pkg/models"
)

var _ models.Recognizer = &ProseRecognizer{}

// ProseRecognizer runs named-entity recognition in process with prose. The
// model is loaded once at construction and only read afterwards.
type ProseRecognizer struct {
	model *prose.Model
	dates bool
}

// NewProseRecognizer loads the model at modelPath, or prose's bundled model
// when modelPath is empty, and runs a warm-up document through it.
func NewProseRecognizer(modelPath string) (*ProseRecognizer, error) {
	r := &ProseRecognizer{dates: true}

	if modelPath != "" {
		if _, err := os.Stat(modelPath); err != nil {
			return nil, fmt.Errorf("prose model not found at %s: %w", modelPath, err)
		}
		r.model = prose.ModelFromDisk(modelPath)
	} else {
		// prose decodes its bundled model for every document that has none,
		// so build it once here and hand it to each document.
		doc, err := prose.NewDocument("", prose.WithSegmentation(false))
		if err != nil {
			return nil, fmt.Errorf("failed to load prose model: %w", err)
		}
		r.model = doc.Model
	}
	if r.model == nil {
		return nil, errors.New("prose model is not loaded")
	}

	if _, err := r.Recognize(context.Background(), "Warm up the model in Paris."); err != nil {
		return nil, fmt.Errorf("prose warm up failed: %w", err)
	}

	log.Infof("prose entity recognizer ready (custom model: %t)", modelPath != "")

	return r, nil
}

func (r *ProseRecognizer) Name() string {
	return "prose"
}

func (r *ProseRecognizer) Recognize(_ context.Context, text string) ([]models.RecognizedSpan, error) {
	doc, err := prose.NewDocument(
		text,
		prose.WithSegmentation(false),
		prose.UsingModel(r.model),
	)
	if err != nil {
		return nil, err
	}

	locator := newSpanLocator(text)
	ents := doc.Entities()
	spans := make([]models.RecognizedSpan, 0, len(ents))
	for _, ent := range ents {
		start, end := locator.locate(ent.Text)
		spans = append(spans, models.RecognizedSpan{
			Text:  ent.Text,
			Label: ent.Label,
			Start: start,
			End:   end,
		})
	}

	// prose's bundled model only tags PERSON and GPE.
	if r.dates {
		spans = mergeDates(spans, findDates(text))
	}

	return spans, nil
}
