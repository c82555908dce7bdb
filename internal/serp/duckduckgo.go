package serp

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/topicscout/scout/pkg/httpclient"
	"github.com/topicscout/scout/pkg/useragent"
)

// duckduckgoURL is the HTML (no-JS) search endpoint. Package-level var for
// test substitution.
var duckduckgoURL = "https://html.duckduckgo.com/html/"

// DuckDuckGo scrapes the DuckDuckGo HTML endpoint. The endpoint serves a
// plain form-driven page, so a single GET with the query returns parseable
// results without a browser.
type DuckDuckGo struct {
	// Region passed as the kl form value. Defaults to "wt-wt" (no region).
	Region string

	client *httpclient.Client
	uas    *useragent.Pool
}

// NewDuckDuckGo creates a provider with a 10s request timeout and the
// default browser User-Agent pool.
func NewDuckDuckGo() (*DuckDuckGo, error) {
	client, err := httpclient.New(httpclient.Config{
		Timeout:      10 * time.Second,
		MaxRedirects: 3,
	})
	if err != nil {
		return nil, fmt.Errorf("creating search client: %w", err)
	}
	return &DuckDuckGo{
		Region: "wt-wt",
		client: client,
		uas:    useragent.NewPool(nil),
	}, nil
}

// Search queries DuckDuckGo and returns up to limit results in page order.
func (d *DuckDuckGo) Search(ctx context.Context, query string, limit int) ([]Result, error) {
	if limit < 0 {
		return nil, fmt.Errorf("limit cannot be negative: %d", limit)
	}
	if limit == 0 {
		return nil, nil
	}

	params := url.Values{}
	params.Set("q", query)
	if d.Region != "" {
		params.Set("kl", d.Region)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, duckduckgoURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("building search request: %w", err)
	}
	req.Header.Set("User-Agent", d.uas.Next())
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")

	resp, err := d.client.Do(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("search request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search returned HTTP %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parsing search results: %w", err)
	}

	var results []Result
	doc.Find("a.result__a").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		href, ok := s.Attr("href")
		if !ok {
			return true
		}
		target := resolveRedirect(href)
		if target == "" {
			return true
		}
		results = append(results, Result{
			URL:   target,
			Title: strings.TrimSpace(s.Text()),
		})
		return len(results) < limit
	})

	return results, nil
}

// resolveRedirect unwraps DuckDuckGo's /l/?uddg=<url> redirect links. Plain
// absolute links pass through unchanged; anything else is discarded.
func resolveRedirect(href string) string {
	u, err := url.Parse(href)
	if err != nil {
		return ""
	}
	if target := u.Query().Get("uddg"); target != "" {
		return target
	}
	if u.Scheme == "http" || u.Scheme == "https" {
		return href
	}
	return ""
}
