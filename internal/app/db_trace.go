package app

import (
	"regexp"
	"strings"
)

const maxTracedQueryLength = 512

// Placeholder runs such as ($1, $2, $3) from status filters and insert rows collapse to one token.
var placeholderListRegex = regexp.MustCompile(`\(\s*\$\d+(\s*,\s*\$\d+)+\s*\)`)

// formatDBQueryForTrace keeps span statements short and groupable: whitespace is
// collapsed, placeholder lists are folded and upsert SET lists are elided.
func formatDBQueryForTrace(query string) string {
	normalized := strings.Join(strings.Fields(query), " ")
	if normalized == "" {
		return normalized
	}

	normalized = placeholderListRegex.ReplaceAllString(normalized, "($n...)")
	if head, _, ok := strings.Cut(normalized, " DO UPDATE SET "); ok {
		normalized = head + " DO UPDATE SET ..."
	}
	if len(normalized) <= maxTracedQueryLength {
		return normalized
	}
	return normalized[:maxTracedQueryLength] + "..."
}
