package extractors

import (
	"encoding/json"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/getzep/zep-extract/config"
)

var (
	bulletPattern     = regexp.MustCompile(`^(?:[-*•]+|\d+[.)])\s+`)
	tagsPrefixPattern = regexp.MustCompile(`(?i)^\s*(?:tags|keywords)\s*:\s*`)
)

const fragmentCutset = "\"'`[]{}."

// ParseTags turns free-form completion output into at most maxTags lowercase,
// deduplicated tags in the order generated. It never fails: output it cannot
// make sense of yields an empty list. Fragments longer than maxTagLen runes
// are dropped; maxTagLen <= 0 disables that check.
func ParseTags(raw string, maxTags, maxTagLen int) []string {
	if maxTags <= 0 || maxTags > config.MaxTagsLimit {
		maxTags = config.MaxTagsLimit
	}

	content := stripCodeFences(raw)

	fragments, ok := jsonArrayFragments(content)
	if !ok {
		fragments = splitFragments(content)
	}

	tags := make([]string, 0, maxTags)
	seen := make(map[string]struct{}, len(fragments))
	for _, f := range fragments {
		tag := cleanFragment(f)
		if tag == "" {
			continue
		}
		if maxTagLen > 0 && utf8.RuneCountInString(tag) > maxTagLen {
			continue
		}
		if _, dup := seen[tag]; dup {
			continue
		}
		seen[tag] = struct{}{}
		tags = append(tags, tag)
		if len(tags) == maxTags {
			break
		}
	}

	return tags
}

func stripCodeFences(s string) string {
	lines := strings.Split(s, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			continue
		}
		kept = append(kept, line)
	}
	return strings.TrimSpace(strings.Join(kept, "\n"))
}

// jsonArrayFragments returns the elements of the outermost JSON array of
// strings in s, if there is one.
func jsonArrayFragments(s string) ([]string, bool) {
	start := strings.Index(s, "[")
	end := strings.LastIndex(s, "]")
	if start < 0 || end <= start {
		return nil, false
	}

	var fragments []string
	if err := json.Unmarshal([]byte(s[start:end+1]), &fragments); err != nil {
		return nil, false
	}
	return fragments, true
}

func splitFragments(s string) []string {
	lines := strings.Split(s, "\n")

	// Drop a heading such as "Here are the tags:", whether it sits on its own
	// line or leads the first line of tags.
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if strings.HasSuffix(trimmed, ":") {
			lines = lines[i+1:]
		} else if idx := strings.LastIndex(trimmed, ":"); idx >= 0 {
			lines[i] = trimmed[idx+1:]
		}
		break
	}

	var fragments []string
	for _, line := range lines {
		line = tagsPrefixPattern.ReplaceAllString(line, "")
		fragments = append(fragments, strings.Split(line, ",")...)
	}
	return fragments
}

func cleanFragment(f string) string {
	f = strings.TrimSpace(f)
	f = bulletPattern.ReplaceAllString(f, "")
	f = strings.Trim(f, fragmentCutset)
	f = strings.Join(strings.Fields(f), " ")
	f = strings.Trim(f, fragmentCutset)
	return strings.ToLower(f)
}
