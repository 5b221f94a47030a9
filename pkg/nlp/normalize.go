package nlp

import (
	"regexp"
	"strings"
)

var (
	reNonWord = regexp.MustCompile(`[^\p{L}\p{N}]+`)
	reSpaces  = regexp.MustCompile(`\s+`)
)

// NormalizeText lowercases s, turns every non-alphanumeric run into a single
// space and trims the result.
func NormalizeText(s string) string {
	s = strings.ToLower(s)
	s = reNonWord.ReplaceAllString(s, " ")
	s = reSpaces.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// CleanTag trims a tag and collapses inner whitespace.
func CleanTag(tag string) string {
	return reSpaces.ReplaceAllString(strings.TrimSpace(tag), " ")
}

// CleanTags returns tags with whitespace cleaned, empties dropped and
// case-insensitive duplicates removed. First occurrence wins; order is kept.
// The result is never nil.
func CleanTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		t = CleanTag(t)
		if t == "" {
			continue
		}
		key := strings.ToLower(t)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, t)
	}
	return out
}
