package synth

import "strings"

// Sentence length bounds for the keyword heuristic. Shorter fragments carry
// no finding; longer ones are usually run-together boilerplate.
const (
	minSentenceLen = 30
	maxSentenceLen = 300
)

// maxFieldEntries caps each heuristic field after deduplication.
const maxFieldEntries = 4

var (
	keyPointTerms  = []string{"breakthrough", "advance", "discovery", "innovation", "developed", "created", "achieved", "successful"}
	challengeTerms = []string{"challenge", "limitation", "problem", "issue", "difficult", "hard", "bottleneck", "constraint"}
	futureTerms    = []string{"future", "outlook", "prediction", "trend", "will", "expected", "potential", "prospect"}
)

// Placeholder sentences guarantee non-empty output when no sentence matched
// a category.
const (
	placeholderKeyPoints  = "Key findings extracted from research content"
	placeholderChallenges = "Various technical challenges identified"
	placeholderFuture     = "Promising future developments expected"
	placeholderRecent     = "Recent developments in the field"
)

// keywordAnalyze classifies sentences from each item against fixed keyword
// sets. A sentence may land in several categories. Lists are deduplicated in
// stable first-seen order and capped; recent developments are always derived
// from the leading key points.
func keywordAnalyze(items []Content) Record {
	var keyPoints, challenges, future []string

	for _, it := range items {
		for _, sentence := range strings.Split(it.Text, ".") {
			sentence = strings.TrimSpace(sentence)
			if len(sentence) <= minSentenceLen || len(sentence) >= maxSentenceLen {
				continue
			}
			lower := strings.ToLower(sentence)

			if matchesAny(lower, keyPointTerms) {
				keyPoints = append(keyPoints, truncate(sentence))
			}
			if matchesAny(lower, challengeTerms) {
				challenges = append(challenges, truncate(sentence))
			}
			if matchesAny(lower, futureTerms) {
				future = append(future, truncate(sentence))
			}
		}
	}

	rec := Record{
		KeyPoints:     dedupe(keyPoints, maxFieldEntries),
		Challenges:    dedupe(challenges, maxFieldEntries),
		FutureOutlook: dedupe(future, maxFieldEntries),
		Sources:       sourceList(items),
	}

	if len(rec.KeyPoints) >= 2 {
		rec.RecentDevelopments = rec.KeyPoints[:2]
	} else if len(rec.KeyPoints) == 1 {
		rec.RecentDevelopments = rec.KeyPoints[:1]
	} else {
		rec.RecentDevelopments = []string{placeholderRecent}
	}

	if len(rec.KeyPoints) == 0 {
		rec.KeyPoints = []string{placeholderKeyPoints}
	}
	if len(rec.Challenges) == 0 {
		rec.Challenges = []string{placeholderChallenges}
	}
	if len(rec.FutureOutlook) == 0 {
		rec.FutureOutlook = []string{placeholderFuture}
	}

	return rec
}

func matchesAny(sentence string, terms []string) bool {
	for _, term := range terms {
		if strings.Contains(sentence, term) {
			return true
		}
	}
	return false
}
