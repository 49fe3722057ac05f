package rating

import (
	"math"
	"regexp"
	"strings"
)

var tokenPattern = regexp.MustCompile(`\w+`)

// Score rates text against keywords by keyword token density: the sum
// of whole-token occurrence counts for every keyword, divided by the
// total token count, scaled to [0, 5]. Keywords are compared
// case-insensitively as whole tokens, so a multi-word keyword phrase
// never matches. No IDF or length normalization is applied; repeated
// hits and text length both skew the score.
func Score(keywords []string, text string) float64 {
	tokens := tokenPattern.FindAllString(strings.ToLower(text), -1)
	if len(tokens) == 0 {
		return 0
	}

	counts := make(map[string]int, len(tokens))
	for _, token := range tokens {
		counts[token]++
	}

	hits := 0
	for _, keyword := range keywords {
		hits += counts[strings.ToLower(keyword)]
	}

	return float64(hits) / float64(len(tokens)) * 5
}

// Rate returns the externally reported rating: the score rounded to
// the nearest integer, ties away from zero (math.Round). An empty
// keyword list short-circuits to 0 without scoring.
func Rate(keywords []string, text string) int {
	if len(keywords) == 0 {
		return 0
	}
	return int(math.Round(Score(keywords, text)))
}
