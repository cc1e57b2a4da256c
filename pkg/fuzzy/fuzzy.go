package fuzzy

import (
	"strings"
	"unicode"

	"github.com/agext/levenshtein"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Field is one searchable value of a record. Weight scales its score.
type Field struct {
	Text   string
	Weight float64
}

// Distance is the edit distance between the normalized forms of s1 and s2
func Distance(s1, s2 string) int {
	return levenshtein.Distance(Normalize(s1), Normalize(s2), nil)
}

// Threshold is the typo tolerance for a query of this length
func Threshold(query string) int {
	n := len([]rune(Normalize(query)))
	switch {
	case n <= 3:
		return 1
	case n >= 8:
		return 3
	default:
		return 2
	}
}

// Match reports whether query fuzzy-matches text within threshold edits.
func Match(query, text string, threshold int) bool {
	query = Normalize(query)
	text = Normalize(text)
	if query == "" || text == "" {
		return false
	}

	if strings.Contains(text, query) {
		return true
	}

	for _, word := range strings.Fields(text) {
		if strings.HasPrefix(word, query) {
			return true
		}
		if levenshtein.Distance(query, word, nil) <= threshold {
			return true
		}
	}

	// Short values such as names are also compared whole
	if len(text) < 50 {
		if levenshtein.Distance(query, text, nil) <= threshold+len(query)/5 {
			return true
		}
	}
	return false
}

// MatchAny reports whether query matches any of the fields
func MatchAny(query string, fields ...Field) bool {
	threshold := Threshold(query)
	for _, f := range fields {
		if Match(query, f.Text, threshold) {
			return true
		}
	}
	return false
}

// Score ranks how well query matches the fields. Higher is better; 0 means
// no field came close.
func Score(query string, fields ...Field) float64 {
	query = Normalize(query)
	if query == "" {
		return 0
	}

	score := 0.0
	for _, f := range fields {
		text := Normalize(f.Text)
		if text == "" {
			continue
		}
		if strings.Contains(text, query) {
			s := 100.0
			if containsWord(text, query) {
				s += 50
			}
			score += s * f.Weight
			continue
		}
		for _, word := range strings.Fields(text) {
			if dist := levenshtein.Distance(query, word, nil); dist <= 2 {
				score += (50 - float64(dist)*15) * f.Weight
			}
			if strings.HasPrefix(word, query) {
				score += 40 * f.Weight
			}
		}
	}
	return score
}

// Normalize lowercases s, strips diacritics and collapses whitespace.
func Normalize(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	if stripped, _, err := transform.String(t, s); err == nil {
		s = stripped
	}
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

func containsWord(text, query string) bool {
	for _, word := range strings.Fields(text) {
		if word == query {
			return true
		}
	}
	return false
}
