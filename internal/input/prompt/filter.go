package prompt

import (
	"sort"
	"strings"
	"unicode"
)

// Match represents a candidate that matched a filter query.
type Match struct {
	// Value is the matched candidate.
	Value string

	// Score is the match score (higher is better).
	Score int

	// Indexes contains the indices of matched characters in the candidate.
	Indexes []int
}

// Filter handles fuzzy matching of prompt candidates against a typed query.
type Filter struct {
	// MinScore is the minimum score for a match to be included.
	// Default is 0 (include all matches).
	MinScore int
}

// NewFilter creates a new filter with default settings.
func NewFilter() *Filter {
	return &Filter{
		MinScore: 0,
	}
}

// Search finds candidates matching the query using fuzzy matching.
// Results are sorted by score, descending; ties keep the candidate order so
// repeated searches draw a stable list. An empty query returns all
// candidates in their original order.
func (f *Filter) Search(candidates []string, query string, limit int) []Match {
	if query == "" {
		results := make([]Match, 0, len(candidates))
		for _, c := range candidates {
			results = append(results, Match{Value: c})
		}
		if limit > 0 && len(results) > limit {
			results = results[:limit]
		}
		return results
	}

	query = strings.ToLower(query)
	results := make([]Match, 0, len(candidates))

	for _, c := range candidates {
		score, indexes := f.fuzzyMatch(query, c)
		if score > f.MinScore {
			results = append(results, Match{
				Value:   c,
				Score:   score,
				Indexes: indexes,
			})
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}

	return results
}

// fuzzyMatch performs fuzzy string matching and returns score and match indices.
func (f *Filter) fuzzyMatch(query, text string) (int, []int) {
	if text == "" {
		return 0, nil
	}

	textLower := strings.ToLower(text)
	matches := make([]int, 0, len(query))
	queryIdx := 0

	for i := 0; i < len(textLower) && queryIdx < len(query); i++ {
		if textLower[i] == query[queryIdx] {
			matches = append(matches, i)
			queryIdx++
		}
	}

	// All query characters must match
	if queryIdx != len(query) {
		return 0, nil
	}

	score := f.calculateScore(query, text, textLower, matches)
	return score, matches
}

// calculateScore computes a match score based on various factors.
func (f *Filter) calculateScore(query, text, textLower string, matches []int) int {
	if len(matches) == 0 {
		return 0
	}

	score := 100 // Base score for matching

	// Bonus for consecutive matches
	consecutiveBonus := 0
	for i := 1; i < len(matches); i++ {
		if matches[i] == matches[i-1]+1 {
			consecutiveBonus += 20
		}
	}
	score += consecutiveBonus

	// Bonus for matches at word boundaries
	wordBoundaryBonus := 0
	for _, idx := range matches {
		if f.isWordBoundary(text, idx) {
			wordBoundaryBonus += 15
		}
	}
	score += wordBoundaryBonus

	// Bonus for prefix match
	if matches[0] == 0 {
		score += 25
	}

	// Penalty for gaps between matches
	if len(matches) > 1 {
		totalGap := matches[len(matches)-1] - matches[0] - len(matches) + 1
		if totalGap > 0 {
			score -= totalGap * 2
		}
	}

	// Penalty for matches far from start
	if matches[0] > 0 {
		score -= matches[0]
	}

	// Bonus for shorter text (more specific match)
	if len(text) < 20 {
		score += 20 - len(text)
	}

	// Bonus for exact prefix match
	if strings.HasPrefix(textLower, query) {
		score += 50
	}

	// Ensure minimum score of 1 for any match
	if score < 1 {
		score = 1
	}

	return score
}

// isWordBoundary checks if the character at idx is at a word boundary.
func (f *Filter) isWordBoundary(text string, idx int) bool {
	if idx == 0 {
		return true
	}
	if idx >= len(text) {
		return false
	}

	prevChar := rune(text[idx-1])
	currChar := rune(text[idx])

	if prevChar == '/' || prevChar == '_' || prevChar == '-' ||
		prevChar == '.' || prevChar == ' ' || prevChar == ':' {
		return true
	}

	// CamelCase boundary (lowercase followed by uppercase)
	if unicode.IsLower(prevChar) && unicode.IsUpper(currChar) {
		return true
	}

	return false
}
