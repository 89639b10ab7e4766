package internal

import (
	"bytes"
	"strings"
	"text/template"
	"unicode/utf8"

	"github.com/Masterminds/sprig/v3"
)

// ParsePrompt renders a text/template prompt. Sprig's text functions (join, trim,
// lower, default, ...) are available to templates.
func ParsePrompt(promptTemplate string, data any) (string, error) {
	tmpl, err := template.New("prompt").Funcs(sprig.TxtFuncMap()).Parse(promptTemplate)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	err = tmpl.Execute(&buf, data)
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(buf.String()), nil
}

// TruncateRunes returns at most n runes of s.
func TruncateRunes(s string, n int) string {
	if n <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n])
}
