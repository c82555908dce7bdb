// Package synth turns extracted page text into a structured research record.
// Three tiers, in preference order: LLM synthesis, keyword heuristics, and
// deterministic mock data. Every tier produces a complete record; failures
// degrade to the next tier and never reach the caller.
package synth

import (
	"strings"
	"unicode/utf8"
)

// maxEntryLen bounds each text entry in a Record.
const maxEntryLen = 250

// Record is the fixed-shape synthesis output. All five fields are non-empty
// on every code path and every text entry is at most 250 characters.
type Record struct {
	KeyPoints          []string `json:"key_points"`
	RecentDevelopments []string `json:"recent_developments"`
	Challenges         []string `json:"challenges"`
	FutureOutlook      []string `json:"future_outlook"`
	Sources            []string `json:"sources"`
}

// Content is one extracted page, consumed immediately by synthesis.
type Content struct {
	Text   string
	Source string
}

// truncate caps s at maxEntryLen bytes without splitting a rune.
func truncate(s string) string {
	return truncateRunes(s, maxEntryLen)
}

// truncateRunes cuts s at max bytes, backing up to the nearest rune
// boundary so the result stays valid UTF-8.
func truncateRunes(s string, max int) string {
	if len(s) <= max {
		return s
	}
	for max > 0 && !utf8.RuneStart(s[max]) {
		max--
	}
	return s[:max]
}

// truncateAll caps every entry in a list.
func truncateAll(list []string) []string {
	out := make([]string, 0, len(list))
	for _, s := range list {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, truncate(s))
		}
	}
	return out
}

// dedupe removes duplicates preserving first-seen order, capping the result
// at max entries (max <= 0 means no cap).
func dedupe(list []string, max int) []string {
	seen := make(map[string]struct{}, len(list))
	var out []string
	for _, s := range list {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
		if max > 0 && len(out) >= max {
			break
		}
	}
	return out
}

// sourceList collects each item's source URL, deduplicated, first-seen order.
func sourceList(items []Content) []string {
	urls := make([]string, 0, len(items))
	for _, it := range items {
		urls = append(urls, it.Source)
	}
	return dedupe(urls, 0)
}
