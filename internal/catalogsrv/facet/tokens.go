// Package facet derives filter-facet values and frequency-ranked statistics
// from the catalog's denormalized comma-joined columns. The store hands over
// raw column values; everything here is in-memory tokenization over a full
// scan.
package facet

import (
	"sort"
	"strings"
)

// Count is one label with its accumulated frequency.
type Count struct {
	Label string
	Count int
}

// SplitTokens splits a comma-joined field value into its trimmed tokens.
// Empty tokens are discarded; case is preserved.
func SplitTokens(s string) []string {
	parts := strings.Split(s, ",")
	tokens := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			tokens = append(tokens, t)
		}
	}
	return tokens
}

// UniqueTokens tokenizes every value and returns the union of tokens, sorted
// lexicographically. Uniqueness is token-level, not row-level.
func UniqueTokens(values []string) []string {
	seen := make(map[string]struct{})
	for _, v := range values {
		for _, t := range SplitTokens(v) {
			seen[t] = struct{}{}
		}
	}
	tokens := make([]string, 0, len(seen))
	for t := range seen {
		tokens = append(tokens, t)
	}
	sort.Strings(tokens)
	return tokens
}

// TokenCounts tokenizes every value and accumulates a frequency count per
// distinct token.
func TokenCounts(values []string) map[string]int {
	counts := make(map[string]int)
	for _, v := range values {
		for _, t := range SplitTokens(v) {
			counts[t]++
		}
	}
	return counts
}

// TopCounts ranks counts by frequency descending, label ascending on ties,
// and truncates to the top n. n <= 0 returns the full ranking.
func TopCounts(counts map[string]int, n int) []Count {
	ranked := make([]Count, 0, len(counts))
	for label, count := range counts {
		ranked = append(ranked, Count{Label: label, Count: count})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return ranked[i].Label < ranked[j].Label
	})
	if n > 0 && len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}
