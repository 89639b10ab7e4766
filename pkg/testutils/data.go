package testutils

import (
	"strings"

	"github.com/brianvoe/gofakeit/v6"

	"github.com/getzep/zep-extract/pkg/models"
)

// ObamaText is the canonical single-sentence example with one PERSON, one
// LOCATION and one DATE.
const ObamaText = "Barack Obama visited Paris in 2011."

// ObamaSpans are recognizer spans for ObamaText.
var ObamaSpans = []models.RecognizedSpan{
	{Text: "Barack Obama", Label: "PERSON", Start: 0, End: 12},
	{Text: "Paris", Label: "GPE", Start: 21, End: 26},
	{Text: "2011", Label: "DATE", Start: 30, End: 34},
}

// FakeParagraph returns a random paragraph of roughly the given number of sentences.
func FakeParagraph(sentences int) string {
	parts := make([]string, 0, sentences)
	for i := 0; i < sentences; i++ {
		parts = append(parts, gofakeit.Sentence(gofakeit.Number(4, 16)))
	}
	return strings.Join(parts, " ")
}

// FakeTagOutput returns random completion output in one of the shapes models
// commonly produce: comma separated, bulleted, numbered, or a JSON array.
func FakeTagOutput() string {
	n := gofakeit.Number(0, 9)
	words := make([]string, n)
	for i := range words {
		words[i] = gofakeit.BuzzWord()
	}
	switch gofakeit.Number(0, 3) {
	case 0:
		return strings.Join(words, ", ")
	case 1:
		return "- " + strings.Join(words, "\n- ")
	case 2:
		var b strings.Builder
		for i, w := range words {
			b.WriteString(gofakeit.DigitN(1))
			b.WriteString(". ")
			b.WriteString(w)
			if i < len(words)-1 {
				b.WriteString("\n")
			}
		}
		return b.String()
	default:
		return `["` + strings.Join(words, `", "`) + `"]`
	}
}
