package synth

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"text/template"

	"github.com/topicscout/scout/internal/metrics"
)

// promptContentLen is how much of each page's text goes into the prompt.
const promptContentLen = 800

const systemPrompt = "You are a research analyst that extracts structured information from technical content. Always return valid JSON."

// userPromptTmpl instructs the model to answer with exactly the Record shape.
var userPromptTmpl = template.Must(template.New("synthesis").Parse(`Analyze the following research content about {{.Topic}} and extract structured information.

RESEARCH CONTENT:
{{.Content}}

Provide a JSON response with the following structure:
{
    "key_points": ["list 3-5 key findings"],
    "recent_developments": ["list 2-3 recent advancements"],
    "challenges": ["list 2-3 main challenges"],
    "future_outlook": ["list 2-3 future predictions"],
    "sources": ["the source URLs listed above"]
}

Be concise and factual. Focus on the most important information.
Return only valid JSON, no additional text.`))

// Synthesizer produces research records from extracted content. With a nil
// backend it goes straight to keyword analysis.
type Synthesizer struct {
	backend Backend
	logger  *slog.Logger
}

// NewSynthesizer creates a Synthesizer. backend may be nil when no LLM
// credential is configured.
func NewSynthesizer(backend Backend, logger *slog.Logger) *Synthesizer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Synthesizer{backend: backend, logger: logger}
}

// Synthesize turns content items into a Record. LLM failures of any kind
// degrade to keyword analysis; Synthesize never fails.
func (s *Synthesizer) Synthesize(ctx context.Context, items []Content, topic string) Record {
	if s.backend != nil {
		rec, err := s.llmSynthesize(ctx, items, topic)
		if err == nil {
			metrics.SynthesisTotal.WithLabelValues("llm").Inc()
			return rec
		}
		s.logger.Warn("llm synthesis failed, falling back to keyword analysis",
			"topic", topic, "error", err)
	}

	metrics.SynthesisTotal.WithLabelValues("keyword").Inc()
	return keywordAnalyze(items)
}

// llmSynthesize asks the backend for a structured record and validates the
// untrusted response against the Record shape.
func (s *Synthesizer) llmSynthesize(ctx context.Context, items []Content, topic string) (Record, error) {
	prompt, err := renderPrompt(items, topic)
	if err != nil {
		return Record{}, fmt.Errorf("rendering prompt: %w", err)
	}

	raw, err := s.backend.Complete(ctx, systemPrompt, prompt)
	if err != nil {
		return Record{}, err
	}

	var rec Record
	if err := json.Unmarshal([]byte(stripFences(raw)), &rec); err != nil {
		return Record{}, fmt.Errorf("parsing model output: %w", err)
	}

	return sanitizeRecord(rec, items)
}

// renderPrompt builds the user prompt from the first promptContentLen
// characters of each item, labeled by source.
func renderPrompt(items []Content, topic string) (string, error) {
	blocks := make([]string, 0, len(items))
	for _, it := range items {
		text := truncateRunes(it.Text, promptContentLen)
		blocks = append(blocks, fmt.Sprintf("Source: %s\nContent: %s", it.Source, text))
	}

	var sb strings.Builder
	err := userPromptTmpl.Execute(&sb, struct {
		Topic   string
		Content string
	}{Topic: topic, Content: strings.Join(blocks, "\n\n")})
	if err != nil {
		return "", err
	}
	return sb.String(), nil
}

// stripFences removes a Markdown code-fence wrapper (with optional json
// language tag) from a model response.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```json") {
		s = s[len("```json"):]
	} else if strings.HasPrefix(s, "```") {
		s = s[len("```"):]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

// sanitizeRecord validates a parsed model response. The four text lists must
// be non-empty; entries are truncated. Empty sources are replaced with the
// URLs actually fetched.
func sanitizeRecord(rec Record, items []Content) (Record, error) {
	rec.KeyPoints = truncateAll(rec.KeyPoints)
	rec.RecentDevelopments = truncateAll(rec.RecentDevelopments)
	rec.Challenges = truncateAll(rec.Challenges)
	rec.FutureOutlook = truncateAll(rec.FutureOutlook)
	rec.Sources = truncateAll(rec.Sources)

	if len(rec.KeyPoints) == 0 || len(rec.RecentDevelopments) == 0 ||
		len(rec.Challenges) == 0 || len(rec.FutureOutlook) == 0 {
		return Record{}, fmt.Errorf("model output missing required fields")
	}

	if len(rec.Sources) == 0 {
		rec.Sources = sourceList(items)
	}
	return rec, nil
}
