package nlp

import (
	"regexp"
	"unicode/utf8"

	"github.com/getzep/zep-extract/pkg/models"
)

const monthNames = `(?:Jan(?:uary)?|Feb(?:ruary)?|Mar(?:ch)?|Apr(?:il)?|May|June?|July?|Aug(?:ust)?|Sep(?:t(?:ember)?)?|Oct(?:ober)?|Nov(?:ember)?|Dec(?:ember)?)`

// datePattern alternatives are ordered longest first; Go's leftmost-first
// alternation then prefers the fullest date at a given position.
var datePattern = regexp.MustCompile(
	`\b(?:` +
		monthNames + `\.?\s+\d{1,2}(?:st|nd|rd|th)?(?:,?\s+\d{4})?` +
		`|\d{1,2}(?:st|nd|rd|th)?\s+` + monthNames + `(?:,?\s+\d{4})?` +
		`|` + monthNames + `\s+\d{4}` +
		`|\d{4}-\d{2}-\d{2}` +
		`|(?:1[5-9]|20)\d{2}s?` +
		`|(?:Monday|Tuesday|Wednesday|Thursday|Friday|Saturday|Sunday)` +
		`)\b`,
)

// findDates returns DATE spans with rune offsets in text order.
func findDates(text string) []models.RecognizedSpan {
	matches := datePattern.FindAllStringIndex(text, -1)
	spans := make([]models.RecognizedSpan, 0, len(matches))
	for _, m := range matches {
		start := utf8.RuneCountInString(text[:m[0]])
		spans = append(spans, models.RecognizedSpan{
			Text:  text[m[0]:m[1]],
			Label: string(models.LabelDate),
			Start: start,
			End:   start + utf8.RuneCountInString(text[m[0]:m[1]]),
		})
	}
	return spans
}

// mergeDates inserts date spans into spans by offset, skipping any date that
// overlaps an already located span. Spans without offsets keep their position.
func mergeDates(spans, dates []models.RecognizedSpan) []models.RecognizedSpan {
	for _, d := range dates {
		if overlapsAny(spans, d) {
			continue
		}
		at := len(spans)
		for i, s := range spans {
			if s.HasOffsets() && s.Start > d.Start {
				at = i
				break
			}
		}
		spans = append(spans, models.RecognizedSpan{})
		copy(spans[at+1:], spans[at:])
		spans[at] = d
	}
	return spans
}

func overlapsAny(spans []models.RecognizedSpan, d models.RecognizedSpan) bool {
	for _, s := range spans {
		if s.HasOffsets() && s.Start < d.End && d.Start < s.End {
			return true
		}
	}
	return false
}
