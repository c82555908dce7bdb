package scraper

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/topicscout/scout/internal/fingerprint"
	"github.com/topicscout/scout/internal/metrics"
	"github.com/topicscout/scout/pkg/httpclient"
	"github.com/topicscout/scout/pkg/useragent"
)

// maxBodyBytes caps how much of a page body is read. Research pages are
// text-heavy but the extractor only keeps a few KB, so 5 MiB is plenty.
const maxBodyBytes = 5 * 1024 * 1024

// FetchConfig configures a Fetcher.
type FetchConfig struct {
	Timeout      time.Duration
	MaxRedirects int
	UseCookieJar bool
	UAPool       *useragent.Pool
	Fingerprint  fingerprint.Profile
}

// FetchResult is the outcome of a single page fetch. Transport failures are
// recorded in Error rather than returned, so callers always get a result to
// inspect.
type FetchResult struct {
	ID           string
	URL          string
	StatusCode   int
	Headers      map[string][]string
	Body         []byte
	Duration     time.Duration
	CreatedAt    time.Time
	Challenge    bool   // a bot-protection page was served instead of content
	ChallengeSrc string // e.g. "Cloudflare"
	Error        string // non-empty if the fetch failed before a response
}

// OK reports whether the fetch produced a usable 2xx response.
func (r *FetchResult) OK() bool {
	return r.Error == "" && !r.Challenge && r.StatusCode >= 200 && r.StatusCode < 300
}

// Fetcher performs single URL fetches with a browser identity: rotating
// User-Agents and an optional uTLS fingerprint.
type Fetcher struct {
	config FetchConfig
	client *httpclient.Client
}

// NewFetcher initializes a Fetcher. Holding one client across requests lets
// cookie jars (if configured) persist for the Fetcher's lifetime.
func NewFetcher(cfg FetchConfig) (*Fetcher, error) {
	if cfg.Timeout == 0 {
		cfg.Timeout = 15 * time.Second
	}
	if cfg.UAPool == nil {
		cfg.UAPool = useragent.NewPool(nil)
	}
	if cfg.Fingerprint == "" {
		cfg.Fingerprint = fingerprint.ProfileChrome
	}

	transport, err := fingerprint.Transport(cfg.Fingerprint, http.ProxyFromEnvironment)
	if err != nil {
		return nil, fmt.Errorf("setting up transport: %w", err)
	}

	client, err := httpclient.New(httpclient.Config{
		Timeout:      cfg.Timeout,
		MaxRedirects: cfg.MaxRedirects,
		UseCookieJar: cfg.UseCookieJar,
		Transport:    transport,
	})
	if err != nil {
		return nil, fmt.Errorf("creating client: %w", err)
	}

	return &Fetcher{config: cfg, client: client}, nil
}

// Fetch executes a GET against targetURL, capturing the response (or the
// failure) into a FetchResult. The returned error is always nil; inspect
// result.Error and result.OK instead.
func (f *Fetcher) Fetch(ctx context.Context, targetURL string) (*FetchResult, error) {
	start := time.Now()
	result := &FetchResult{
		ID:        uuid.New().String(),
		URL:       targetURL,
		CreatedAt: start.UTC(),
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, targetURL, nil)
	if err != nil {
		result.Error = fmt.Sprintf("building request: %v", err)
		result.Duration = time.Since(start)
		metrics.RecordFetch(0, false, true, result.Duration)
		return result, nil
	}

	req.Header.Set("User-Agent", f.config.UAPool.Next())
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")

	resp, err := f.client.Do(ctx, req)
	if err != nil {
		result.Error = fmt.Sprintf("request failed: %v", err)
		result.Duration = time.Since(start)
		metrics.RecordFetch(0, false, true, result.Duration)
		return result, nil
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		result.Error = fmt.Sprintf("reading body: %v", err)
	}

	result.StatusCode = resp.StatusCode
	result.Headers = resp.Header
	result.Body = body
	result.Duration = time.Since(start)

	Analyze(result, DefaultDetectors())
	metrics.RecordFetch(result.StatusCode, result.Challenge, result.Error != "", result.Duration)

	return result, nil
}
