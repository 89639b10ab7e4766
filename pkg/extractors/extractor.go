package extractors

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/tmc/langchaingo/llms"

	"github.com/getzep/zep-extract/config"
	"github.com/getzep/zep-extract/internal"
	zllms "github.com/getzep/zep-extract/pkg/llms"
	"github.com/getzep/zep-extract/pkg/models"
	"github.com/getzep/zep-extract/pkg/nlp"
)

var _ models.Extractor = &EntityTagExtractor{}

// EntityTagExtractor recognizes entities in a text and asks the completion
// service for topical tags. It holds no per-request state and is safe for
// concurrent use.
type EntityTagExtractor struct {
	recognizer models.Recognizer
	llm        models.ZepLLM

	maxTextLength   int
	maxTags         int
	maxTagLength    int
	tagMaxTokens    int
	maxPromptTokens int
	temperature     float64
	timeout         time.Duration
	failOnTagError  bool
	labels          map[models.EntityLabel]struct{}
}

func NewEntityTagExtractor(
	recognizer models.Recognizer,
	llm models.ZepLLM,
	cfg *config.Config,
) (*EntityTagExtractor, error) {
	// An unknown label would silently filter out entities, so refuse to start.
	labels, unknown := nlp.ParseLabels(cfg.NLP.Labels)
	if len(unknown) > 0 {
		return nil, fmt.Errorf("unknown entity labels in nlp.labels: %s", strings.Join(unknown, ", "))
	}

	return &EntityTagExtractor{
		recognizer:      recognizer,
		llm:             llm,
		maxTextLength:   cfg.Extract.MaxTextLength,
		maxTags:         cfg.Extract.MaxTags,
		maxTagLength:    cfg.Extract.MaxTagLength,
		tagMaxTokens:    cfg.Extract.TagMaxTokens,
		maxPromptTokens: cfg.Extract.MaxPromptTokens,
		temperature:     cfg.LLM.Temperature,
		timeout:         cfg.LLM.Timeout,
		failOnTagError:  cfg.Extract.TagFailurePolicy == config.TagFailurePolicyFail,
		labels:          labels,
	}, nil
}

func (ee *EntityTagExtractor) Extract(ctx context.Context, text string) (*models.ExtractResponse, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, models.NewInvalidInputError("text must be non-empty")
	}
	textLen := utf8.RuneCountInString(text)
	if ee.maxTextLength > 0 && textLen > ee.maxTextLength {
		return nil, models.NewInvalidInputError(
			fmt.Sprintf("text is %d characters, the maximum is %d", textLen, ee.maxTextLength),
		)
	}

	spans, err := ee.recognizer.Recognize(ctx, text)
	if err != nil {
		log.Errorf("entity recognition with %s failed: %s", ee.recognizer.Name(), err)
		return nil, models.NewRecognitionError(ee.recognizer.Name(), err)
	}
	entities := ee.toEntities(spans)

	resp := &models.ExtractResponse{
		Entities: entities,
		Meta: models.ExtractMeta{
			LenText: textLen,
			Model:   ee.llm.Model(),
		},
	}

	tags, err := ee.generateTags(ctx, text, entities)
	if err != nil {
		if ee.failOnTagError {
			log.Errorf("tag generation failed: %s", err)
			return nil, err
		}
		log.Warnf("tag generation failed, returning no tags: %s", err)
		tags = []string{}
		resp.Meta.TagsDegraded = true
	}
	resp.Tags = tags

	return resp, nil
}

// toEntities normalizes labels and applies the label filter. Order and
// duplicates are kept as recognized.
func (ee *EntityTagExtractor) toEntities(spans []models.RecognizedSpan) []models.EntitySpan {
	entities := make([]models.EntitySpan, 0, len(spans))
	for _, s := range spans {
		label := nlp.NormalizeLabel(s.Label)
		if ee.labels != nil {
			if _, ok := ee.labels[label]; !ok {
				continue
			}
		}

		entity := models.EntitySpan{Text: s.Text, Label: label}
		if s.HasOffsets() {
			start, end := s.Start, s.End
			entity.Start = &start
			entity.End = &end
		}
		entities = append(entities, entity)
	}
	return entities
}

func (ee *EntityTagExtractor) generateTags(
	ctx context.Context,
	text string,
	entities []models.EntitySpan,
) ([]string, error) {
	data := TagPromptTemplateData{
		MaxTags:  ee.maxTags,
		Entities: entityNames(entities),
		Text:     ee.fitTokenBudget(text),
	}

	prompt, err := internal.ParsePrompt(tagPromptTemplate, data)
	if err != nil {
		return nil, NewExtractorError("failed to render tag prompt", err)
	}

	callCtx, cancel := context.WithTimeout(ctx, ee.timeout)
	defer cancel()

	raw, err := ee.llm.Call(
		callCtx,
		prompt,
		llms.WithMaxTokens(ee.tagMaxTokens),
		llms.WithTemperature(ee.temperature),
	)
	if err != nil {
		return nil, zllms.ClassifyCompletionError(callCtx, ee.timeout, err)
	}

	tags := ParseTags(raw, ee.maxTags, ee.maxTagLength)
	log.Debugf("parsed %d tags from completion %q", len(tags), raw)

	return tags, nil
}

// fitTokenBudget returns the longest prefix of text that fits in
// maxPromptTokens, or text itself when no budget is set or token counts are
// unavailable.
func (ee *EntityTagExtractor) fitTokenBudget(text string) string {
	if ee.maxPromptTokens <= 0 {
		return text
	}

	count, err := ee.llm.GetTokenCount(text)
	if err != nil {
		log.Warnf("token count failed, sending full text: %s", err)
		return text
	}
	if count <= ee.maxPromptTokens {
		return text
	}

	lo, hi := 0, utf8.RuneCountInString(text)
	for lo < hi {
		mid := (lo + hi + 1) / 2
		n, err := ee.llm.GetTokenCount(internal.TruncateRunes(text, mid))
		if err != nil || n > ee.maxPromptTokens {
			hi = mid - 1
		} else {
			lo = mid
		}
	}

	log.Debugf("text truncated to %d runes to fit %d prompt tokens", lo, ee.maxPromptTokens)
	return internal.TruncateRunes(text, lo)
}

// entityNames returns the distinct entity texts, in order of first mention.
func entityNames(entities []models.EntitySpan) []string {
	names := make([]string, 0, len(entities))
	seen := make(map[string]struct{}, len(entities))
	for _, e := range entities {
		if _, ok := seen[e.Text]; ok {
			continue
		}
		seen[e.Text] = struct{}{}
		names = append(names, e.Text)
	}
	return names
}
