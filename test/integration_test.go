//go:build integration

package test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/topicscout/scout/internal/artifact"
	"github.com/topicscout/scout/internal/discover"
	"github.com/topicscout/scout/internal/fingerprint"
	"github.com/topicscout/scout/internal/jobs"
	"github.com/topicscout/scout/internal/pipeline"
	"github.com/topicscout/scout/internal/scraper"
	"github.com/topicscout/scout/internal/serp"
	"github.com/topicscout/scout/internal/server"
	"github.com/topicscout/scout/internal/synth"
)

// stubProvider returns a fixed result set, standing in for the live search
// engine so the test never leaves localhost.
type stubProvider struct {
	results []serp.Result
}

func (p *stubProvider) Search(ctx context.Context, query string, limit int) ([]serp.Result, error) {
	if limit >= 0 && limit < len(p.results) {
		return p.results[:limit], nil
	}
	return p.results, nil
}

func TestIntegration_SubmitToDownload(t *testing.T) {
	// 1. Mock target pages to scrape
	mux := http.NewServeMux()
	mux.HandleFunc("/quantum", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		fmt.Fprint(w, `<html><body><article>
			Quantum computing is a significant advancement in computation technology.
			Researchers face the difficult challenge of maintaining qubit coherence.
			The future of the field will likely bring fault tolerant machines.
		</article></body></html>`)
	})
	mux.HandleFunc("/blocked", func(w http.ResponseWriter, r *http.Request) {
		// Simulate a Cloudflare challenge page
		w.Header().Set("Server", "cloudflare")
		w.WriteHeader(http.StatusForbidden)
		fmt.Fprint(w, `<html><body>cf-browser-verification</body></html>`)
	})

	targetServer := httptest.NewServer(mux)
	defer targetServer.Close()

	// 2. Assemble the pipeline against the mock pages
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	provider := &stubProvider{results: []serp.Result{
		{URL: targetServer.URL + "/quantum", Title: "Quantum computing overview"},
		{URL: targetServer.URL + "/blocked", Title: "Protected page"},
	}}
	finder := discover.NewFinder(provider, []string{"127.0.0.1"}, logger)

	fetcher, err := scraper.NewFetcher(scraper.FetchConfig{
		Timeout:     5 * time.Second,
		Fingerprint: fingerprint.ProfileGo,
	})
	if err != nil {
		t.Fatalf("NewFetcher: %v", err)
	}
	extractor := scraper.NewExtractor(fetcher, 2500, logger)
	synthesizer := synth.NewSynthesizer(nil, logger)

	agent := pipeline.NewAgent(finder, extractor, synthesizer, pipeline.Config{
		NumSources:      2,
		PolitenessDelay: time.Millisecond,
	}, logger)

	artifacts, err := artifact.NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	store := jobs.NewStore()
	runner := jobs.NewRunner(store, agent, artifacts, 2, logger)

	api := httptest.NewServer(server.NewRouter(store, runner, logger))
	defer api.Close()

	// 3. Submit a topic
	body, _ := json.Marshal(map[string]string{"topic": "quantum computing"})
	resp, err := http.Post(api.URL+"/research", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("POST /research: %v", err)
	}
	var submitted struct {
		ResultID string `json:"result_id"`
		Status   string `json:"status"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&submitted); err != nil {
		t.Fatalf("decoding submit response: %v", err)
	}
	resp.Body.Close()
	if submitted.ResultID == "" {
		t.Fatal("empty result_id")
	}

	// 4. Poll until completion
	deadline := time.Now().Add(10 * time.Second)
	var status struct {
		Status   string `json:"status"`
		Filename string `json:"filename"`
	}
	for {
		resp, err := http.Get(api.URL + "/research/" + submitted.ResultID)
		if err != nil {
			t.Fatalf("GET /research/{id}: %v", err)
		}
		if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
			t.Fatalf("decoding status: %v", err)
		}
		resp.Body.Close()
		if status.Status == "completed" || status.Status == "error" {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("job did not finish, last status %q", status.Status)
		}
		time.Sleep(50 * time.Millisecond)
	}
	if status.Status != "completed" {
		t.Fatalf("status = %q, want completed", status.Status)
	}

	// 5. Download the briefing
	resp, err = http.Get(api.URL + "/download/" + submitted.ResultID)
	if err != nil {
		t.Fatalf("GET /download/{id}: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("download status = %d", resp.StatusCode)
	}
	briefing, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(briefing), "# Research Briefing: quantum computing") {
		t.Errorf("briefing missing title header:\n%s", briefing)
	}
	if !strings.Contains(string(briefing), targetServer.URL+"/quantum") {
		t.Errorf("briefing missing scraped source URL")
	}
}
