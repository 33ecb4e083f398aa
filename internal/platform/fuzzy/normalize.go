package fuzzy

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// clubAffixes are tokens that carry no identity in a club name ("FC Barcelona", "Real Madrid CF").
var clubAffixes = map[string]struct{}{
	"fc":   {},
	"cf":   {},
	"afc":  {},
	"sc":   {},
	"ac":   {},
	"fk":   {},
	"sk":   {},
	"cd":   {},
	"ud":   {},
	"sv":   {},
	"bk":   {},
	"if":   {},
	"club": {},
	"de":   {},
}

// NormalizeName folds a team name and drops common club affixes.
// When every token is an affix the folded tokens are kept as-is.
func NormalizeName(s string) string {
	tokens := strings.Fields(fold(s))
	if len(tokens) == 0 {
		return ""
	}

	kept := make([]string, 0, len(tokens))
	for _, token := range tokens {
		if _, ok := clubAffixes[token]; ok {
			continue
		}
		kept = append(kept, token)
	}
	if len(kept) == 0 {
		kept = tokens
	}

	return strings.Join(kept, " ")
}

// fold lowercases, strips diacritics, turns punctuation into spaces and
// collapses whitespace. Dots and apostrophes are dropped so "A.F.C." folds to "afc".
func fold(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range norm.NFD.String(s) {
		switch {
		case unicode.Is(unicode.Mn, r):
		case r == '.' || r == '\'' || r == '’':
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(unicode.ToLower(r))
		default:
			b.WriteRune(' ')
		}
	}

	return strings.Join(strings.Fields(b.String()), " ")
}
