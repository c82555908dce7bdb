package scraper

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/topicscout/scout/internal/fingerprint"
)

func newTestExtractor(t *testing.T, maxLen int) *Extractor {
	t.Helper()
	fetcher, err := NewFetcher(FetchConfig{
		Timeout:     5 * time.Second,
		Fingerprint: fingerprint.ProfileGo,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return NewExtractor(fetcher, maxLen, nil)
}

func TestExtractText_PrefersArticleOverNav(t *testing.T) {
	html := `<html><body>
		<nav>Navigation menu items here</nav>
		<article>The actual story about quantum computing.</article>
		<footer>Footer boilerplate</footer>
	</body></html>`

	text, err := ExtractText([]byte(html), 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != "The actual story about quantum computing." {
		t.Errorf("unexpected text %q", text)
	}
	if strings.Contains(text, "Navigation") {
		t.Error("nav text leaked into extraction")
	}
}

func TestExtractText_SelectorPriority(t *testing.T) {
	// main outranks article and class selectors.
	html := `<html><body>
		<div class="content">class content</div>
		<article>article content</article>
		<main>main content</main>
	</body></html>`

	text, err := ExtractText([]byte(html), 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != "main content" {
		t.Errorf("expected main region to win, got %q", text)
	}
}

func TestExtractText_AriaMainRole(t *testing.T) {
	html := `<html><body>
		<div>outside</div>
		<div role="main">aria main region</div>
	</body></html>`

	text, err := ExtractText([]byte(html), 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != "aria main region" {
		t.Errorf("unexpected text %q", text)
	}
}

func TestExtractText_BodyFallback(t *testing.T) {
	html := `<html><body><p>plain paragraph</p><p>another one</p></body></html>`

	text, err := ExtractText([]byte(html), 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(text, "plain paragraph") {
		t.Errorf("expected body text, got %q", text)
	}
}

func TestExtractText_StripsScriptAndStyle(t *testing.T) {
	html := `<html><body><article>
		<script>var secret = 1;</script>
		<style>.x { color: red }</style>
		Visible text.
	</article></body></html>`

	text, err := ExtractText([]byte(html), 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(text, "secret") || strings.Contains(text, "color") {
		t.Errorf("non-content markup leaked: %q", text)
	}
	if text != "Visible text." {
		t.Errorf("unexpected text %q", text)
	}
}

func TestExtractText_Truncates(t *testing.T) {
	long := strings.Repeat("word ", 2000)
	html := fmt.Sprintf(`<html><body><article>%s</article></body></html>`, long)

	text, err := ExtractText([]byte(html), DefaultMaxContentLen)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(text) > DefaultMaxContentLen {
		t.Errorf("expected at most %d bytes, got %d", DefaultMaxContentLen, len(text))
	}
	if len(text) < DefaultMaxContentLen-10 {
		t.Errorf("truncation dropped too much: %d bytes", len(text))
	}
}

func TestExtractText_TruncatesOnRuneBoundary(t *testing.T) {
	// 40 three-byte runes (120 bytes); a cut at 100 bytes would land
	// mid-rune.
	long := strings.Repeat("研", 40)
	html := fmt.Sprintf(`<html><body><article>%s</article></body></html>`, long)

	text, err := ExtractText([]byte(html), 100)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(text) > 100 {
		t.Errorf("expected at most 100 bytes, got %d", len(text))
	}
	if !utf8.ValidString(text) {
		t.Errorf("truncated text is not valid UTF-8: %q", text)
	}
	if want := strings.Repeat("研", 33); text != want {
		t.Errorf("expected %d intact runes, got %q", 33, text)
	}
}

func TestNormalizeText(t *testing.T) {
	raw := "  first line  \n\n  second  chunk   here \n\t tabbed\n"
	got := normalizeText(raw)
	want := "first line second chunk here tabbed"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestExtract_HTTPErrorYieldsNoContent(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer ts.Close()

	e := newTestExtractor(t, 0)
	if _, ok := e.Extract(context.Background(), ts.URL); ok {
		t.Error("expected no content for HTTP 404")
	}
}

func TestExtract_NetworkErrorYieldsNoContent(t *testing.T) {
	e := newTestExtractor(t, 0)
	if _, ok := e.Extract(context.Background(), "http://127.0.0.1:1/nothing"); ok {
		t.Error("expected no content for connection failure")
	}
}

func TestExtract_EmptyPageYieldsNoContent(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><body><script>only();</script></body></html>`)
	}))
	defer ts.Close()

	e := newTestExtractor(t, 0)
	if _, ok := e.Extract(context.Background(), ts.URL); ok {
		t.Error("expected no content for empty page")
	}
}

func TestExtract_Success(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><body><main>Fusion research advanced this year.</main></body></html>`)
	}))
	defer ts.Close()

	e := newTestExtractor(t, 0)
	text, ok := e.Extract(context.Background(), ts.URL)
	if !ok {
		t.Fatal("expected content")
	}
	if text != "Fusion research advanced this year." {
		t.Errorf("unexpected text %q", text)
	}
}
