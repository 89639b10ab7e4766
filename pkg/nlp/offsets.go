package nlp

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// spanLocator finds successive entity mentions in a text and reports rune
// offsets. Mentions are searched from the end of the previous match so that
// repeated names map to successive occurrences.
type spanLocator struct {
	text   string
	cursor int // byte offset
}

func newSpanLocator(text string) *spanLocator {
	return &spanLocator{text: text}
}

// locate returns the rune offsets of mention, or -1, -1 when it cannot be found.
func (l *spanLocator) locate(mention string) (int, int) {
	mention = strings.TrimSpace(mention)
	if mention == "" {
		return -1, -1
	}

	start, end := -1, -1
	if i := strings.Index(l.text[l.cursor:], mention); i >= 0 {
		start = l.cursor + i
		end = start + len(mention)
	} else if re := fieldsPattern(mention); re != nil {
		// Tokenizers rejoin tokens with single spaces, so the original text
		// may differ in whitespace.
		if loc := re.FindStringIndex(l.text[l.cursor:]); loc != nil {
			start = l.cursor + loc[0]
			end = l.cursor + loc[1]
		}
	}
	if start < 0 {
		return -1, -1
	}

	l.cursor = end
	runeStart := utf8.RuneCountInString(l.text[:start])
	return runeStart, runeStart + utf8.RuneCountInString(l.text[start:end])
}

func fieldsPattern(mention string) *regexp.Regexp {
	fields := strings.Fields(mention)
	if len(fields) == 0 {
		return nil
	}
	for i, f := range fields {
		fields[i] = regexp.QuoteMeta(f)
	}
	re, err := regexp.Compile(strings.Join(fields, `\s*`))
	if err != nil {
		return nil
	}
	return re
}
