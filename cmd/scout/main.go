// Package main is the entry point for the scout CLI.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/topicscout/scout/internal/config"
	"github.com/topicscout/scout/internal/discover"
	"github.com/topicscout/scout/internal/pipeline"
	"github.com/topicscout/scout/internal/scraper"
	"github.com/topicscout/scout/internal/serp"
	"github.com/topicscout/scout/internal/synth"
)

// version is set at build time via ldflags.
var version = "dev"

var rootCmd = &cobra.Command{
	Use:   "scout",
	Short: "Automated topic research briefings",
	Long: `scout turns a topic into a research briefing: it searches the web,
scrapes a handful of trusted sources, synthesizes the content into key
points, developments, challenges, and outlook, and renders the result
as a downloadable markdown briefing.

Run "scout serve" to start the HTTP service, or "scout research" for a
one-shot briefing on the command line.`,
	Version: version,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newLogger(level string) *slog.Logger {
	var l slog.Level
	switch level {
	case "debug":
		l = slog.LevelDebug
	case "warn":
		l = slog.LevelWarn
	case "error":
		l = slog.LevelError
	default:
		l = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: l}))
}

// buildAgent assembles the research pipeline from configuration.
func buildAgent(cfg config.Config, logger *slog.Logger) (*pipeline.Agent, error) {
	provider, err := serp.NewDuckDuckGo()
	if err != nil {
		return nil, fmt.Errorf("setting up search: %w", err)
	}
	finder := discover.NewFinder(provider, discover.TrustedDomains, logger)

	fetcher, err := scraper.NewFetcher(scraper.FetchConfig{})
	if err != nil {
		return nil, fmt.Errorf("setting up fetcher: %w", err)
	}
	extractor := scraper.NewExtractor(fetcher, cfg.MaxContentLen, logger)

	var backend synth.Backend
	if cfg.OpenAIKey != "" {
		b := synth.NewOpenAIBackend(cfg.OpenAIKey, cfg.Model)
		b.BaseURL = cfg.OpenAIBaseURL
		backend = b
	} else {
		logger.Info("no OpenAI API key set, using keyword synthesis")
	}
	synthesizer := synth.NewSynthesizer(backend, logger)

	agent := pipeline.NewAgent(finder, extractor, synthesizer, pipeline.Config{
		NumSources: cfg.NumSources,
	}, logger)
	return agent, nil
}
