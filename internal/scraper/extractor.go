package scraper

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
)

// DefaultMaxContentLen bounds how much text Extract returns per page.
const DefaultMaxContentLen = 2500

// strippedElements never contain article text and are removed before
// extraction.
const strippedElements = "script, style, nav, header, footer, aside, noscript, iframe"

// ContentSelectors is the ordered list of selectors tried to locate a page's
// main content region. The first match wins; when none match, extraction
// falls back to the whole body.
var ContentSelectors = []string{
	"main",
	"article",
	`[role="main"]`,
	".content",
	".main",
	".article",
	".post-content",
	".entry-content",
	".story-content",
}

// Extractor fetches pages and distills their main textual content.
type Extractor struct {
	fetcher *Fetcher
	maxLen  int
	logger  *slog.Logger
}

// NewExtractor creates an Extractor around the given fetcher. maxLen <= 0
// uses DefaultMaxContentLen.
func NewExtractor(fetcher *Fetcher, maxLen int, logger *slog.Logger) *Extractor {
	if maxLen <= 0 {
		maxLen = DefaultMaxContentLen
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Extractor{fetcher: fetcher, maxLen: maxLen, logger: logger}
}

// Extract fetches url and returns its normalized main text. The second
// return value is false when the page yielded no usable content for any
// reason: transport error, non-2xx status, challenge page, or empty text.
// Failures never propagate as errors.
func (e *Extractor) Extract(ctx context.Context, url string) (string, bool) {
	res, _ := e.fetcher.Fetch(ctx, url)
	if !res.OK() {
		e.logger.Warn("fetch yielded no content",
			"url", url, "status", res.StatusCode, "challenge", res.ChallengeSrc, "error", res.Error)
		return "", false
	}

	text, err := ExtractText(res.Body, e.maxLen)
	if err != nil || text == "" {
		e.logger.Warn("extraction yielded no content", "url", url, "error", err)
		return "", false
	}
	return text, true
}

// ExtractText parses html, strips non-content markup, selects the main
// content region, and returns normalized text truncated to maxLen bytes.
func ExtractText(html []byte, maxLen int) (string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
	if err != nil {
		return "", err
	}

	doc.Find(strippedElements).Remove()

	text := normalizeText(selectContent(doc).Text())
	if maxLen > 0 && len(text) > maxLen {
		// Back up to a rune boundary so the cut never leaves a partial
		// UTF-8 sequence.
		cut := maxLen
		for cut > 0 && !utf8.RuneStart(text[cut]) {
			cut--
		}
		text = strings.TrimSpace(text[:cut])
	}
	return text, nil
}

// selectContent tries ContentSelectors in priority order and returns the
// first matching region, or the document body when none match.
func selectContent(doc *goquery.Document) *goquery.Selection {
	for _, selector := range ContentSelectors {
		if sel := doc.Find(selector); sel.Length() > 0 {
			return sel.First()
		}
	}
	return doc.Find("body")
}

// normalizeText flattens raw extracted text: lines are trimmed, runs of
// double spaces split into separate chunks, empty chunks dropped, and any
// remaining whitespace runs collapsed to single spaces.
func normalizeText(raw string) string {
	var chunks []string
	for _, line := range strings.Split(raw, "\n") {
		for _, phrase := range strings.Split(strings.TrimSpace(line), "  ") {
			if phrase = strings.TrimSpace(phrase); phrase != "" {
				chunks = append(chunks, phrase)
			}
		}
	}
	return strings.Join(strings.Fields(strings.Join(chunks, " ")), " ")
}
