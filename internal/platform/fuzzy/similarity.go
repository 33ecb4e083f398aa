// Package fuzzy scores how alike two free-text names are on a 0..100 scale.
package fuzzy

import (
	"math"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
	"github.com/valyala/bytebufferpool"
)

const (
	MaxScore = 100
	MinScore = 0
)

// Similarity returns the better of the plain edit-distance ratio and the
// token-sorted ratio of the folded inputs. Two empty inputs score 100, a
// single empty input scores 0.
func Similarity(a, b string) int {
	fa, fb := fold(a), fold(b)
	switch {
	case fa == "" && fb == "":
		return MaxScore
	case fa == "" || fb == "":
		return MinScore
	case fa == fb:
		return MaxScore
	}

	score := ratio(fa, fb)
	if sorted := ratio(tokenSort(fa), tokenSort(fb)); sorted > score {
		score = sorted
	}
	return score
}

func ratio(a, b string) int {
	longest := utf8.RuneCountInString(a)
	if n := utf8.RuneCountInString(b); n > longest {
		longest = n
	}
	if longest == 0 {
		return MaxScore
	}

	distance := levenshtein.ComputeDistance(a, b)
	value := math.Round(float64(MaxScore) * (1 - float64(distance)/float64(longest)))
	if value < MinScore {
		return MinScore
	}
	return int(value)
}

func tokenSort(s string) string {
	tokens := strings.Fields(s)
	if len(tokens) < 2 {
		return s
	}
	sort.Strings(tokens)

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)
	for i, token := range tokens {
		if i > 0 {
			_ = buf.WriteByte(' ')
		}
		_, _ = buf.WriteString(token)
	}

	return buf.String()
}
