// Package pipeline orchestrates topic research: source discovery, content
// extraction, and synthesis. Every stage degrades on failure (real data,
// then keyword heuristics, then mock data), so Research always returns a
// complete record and never an error.
package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/topicscout/scout/internal/metrics"
	"github.com/topicscout/scout/internal/synth"
	"github.com/topicscout/scout/pkg/ratelimit"
)

// SourceFinder discovers source URLs for a topic (internal/discover.Finder).
type SourceFinder interface {
	Find(ctx context.Context, topic string, want int) []string
}

// ContentExtractor fetches a URL and returns its main text, or false when
// the page yielded no content (internal/scraper.Extractor).
type ContentExtractor interface {
	Extract(ctx context.Context, url string) (string, bool)
}

// Synthesizer produces a record from extracted content
// (internal/synth.Synthesizer).
type Synthesizer interface {
	Synthesize(ctx context.Context, items []synth.Content, topic string) synth.Record
}

// Stage identifies a pipeline phase, reported through the progress callback
// so callers can track a running job without the pipeline knowing about jobs.
type Stage string

const (
	StageSearching Stage = "searching"
	StageAnalyzing Stage = "analyzing"
)

// DefaultNumSources is how many source URLs a research run tries to use.
const DefaultNumSources = 3

// DefaultPolitenessDelay spaces consecutive page fetches.
const DefaultPolitenessDelay = time.Second

// Config parameterizes an Agent.
type Config struct {
	// NumSources is the number of source URLs to research (default 3).
	NumSources int
	// PolitenessDelay is the pause between consecutive fetches (default 1s).
	PolitenessDelay time.Duration
}

// Agent runs the research pipeline. It holds no per-run state; concurrent
// Research calls are independent.
type Agent struct {
	finder      SourceFinder
	extractor   ContentExtractor
	synthesizer Synthesizer
	cfg         Config
	logger      *slog.Logger
}

// NewAgent wires the pipeline stages together.
func NewAgent(finder SourceFinder, extractor ContentExtractor, synthesizer Synthesizer, cfg Config, logger *slog.Logger) *Agent {
	if cfg.NumSources <= 0 {
		cfg.NumSources = DefaultNumSources
	}
	if cfg.PolitenessDelay <= 0 {
		cfg.PolitenessDelay = DefaultPolitenessDelay
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Agent{
		finder:      finder,
		extractor:   extractor,
		synthesizer: synthesizer,
		cfg:         cfg,
		logger:      logger,
	}
}

// Research runs the full pipeline for a topic. progress may be nil. The
// returned record is always complete: discovery falls back to mock sources,
// extraction failures are skipped, and when nothing could be extracted the
// mock tier takes over.
func (a *Agent) Research(ctx context.Context, topic string, progress func(Stage)) synth.Record {
	report := func(s Stage) {
		if progress != nil {
			progress(s)
		}
	}

	report(StageSearching)
	urls := a.finder.Find(ctx, topic, a.cfg.NumSources)
	if len(urls) == 0 {
		// The finder always falls back to mock sources; this guards against
		// a misbehaving implementation.
		a.logger.Warn("discovery returned nothing, using mock data", "topic", topic)
		metrics.SynthesisTotal.WithLabelValues("mock").Inc()
		return synth.MockRecord(topic)
	}

	items := a.extractAll(ctx, urls)

	report(StageAnalyzing)
	if len(items) == 0 {
		a.logger.Warn("no content extracted from any source, using mock data", "topic", topic)
		metrics.SynthesisTotal.WithLabelValues("mock").Inc()
		return synth.MockRecord(topic)
	}

	return a.synthesizer.Synthesize(ctx, items, topic)
}

// extractAll fetches each URL in discovery order with a politeness delay
// between consecutive fetches, collecting the pages that yielded text.
func (a *Agent) extractAll(ctx context.Context, urls []string) []synth.Content {
	limiter := ratelimit.NewLimiter(a.cfg.PolitenessDelay, 0)
	defer limiter.Stop()

	var items []synth.Content
	for i, url := range urls {
		if i > 0 {
			if err := limiter.Wait(ctx); err != nil {
				a.logger.Warn("politeness wait interrupted", "error", err)
				break
			}
		}

		text, ok := a.extractor.Extract(ctx, url)
		if !ok {
			continue
		}
		items = append(items, synth.Content{Text: text, Source: url})
		a.logger.Info("content extracted", "url", url, "chars", len(text))
	}
	return items
}
