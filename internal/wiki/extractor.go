// Package wiki extracts biography summaries from Wikipedia article pages.
package wiki

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"

	"leaderswiki/internal/config"
	"leaderswiki/internal/logger"
	"leaderswiki/pkg/utils"
)

// contentSelector targets paragraphs of the main article body. Wikipedia's
// markup is not a stable contract; when the convention is not met the
// extractor degrades to an empty result instead of failing.
const contentSelector = "#mw-content-text p"

// Extractor fetches Wikipedia pages over one shared HTTP client, so TCP
// connections are reused across the many page fetches of a run.
type Extractor struct {
	http   *resty.Client
	log    *logger.Logger
	minLen int
}

// NewExtractor creates an extractor with the configured timeout and paragraph
// selection threshold.
func NewExtractor(cfg config.WikiConfig, log *logger.Logger) *Extractor {
	client := resty.New()
	client.SetTimeout(cfg.GetTimeout())
	client.SetHeaders(utils.DefaultHeaders(cfg.UserAgent, map[string]string{
		"Accept": "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8",
	}))

	return &Extractor{
		http:   client,
		log:    log,
		minLen: cfg.MinParagraphChars,
	}
}

// FirstParagraph returns the first qualifying paragraph of the article at
// pageURL. No qualifying paragraph is not an error: the result is simply "".
// A transport or parse failure is returned as an error so the caller can
// decide to absorb it.
func (e *Extractor) FirstParagraph(ctx context.Context, pageURL string) (string, error) {
	res, err := e.http.R().
		SetContext(ctx).
		Get(pageURL)
	if err != nil {
		return "", fmt.Errorf("failed to fetch %s: %w", pageURL, err)
	}

	if res.StatusCode() != http.StatusOK {
		return "", fmt.Errorf("unexpected status %d for %s", res.StatusCode(), pageURL)
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(res.Body()))
	if err != nil {
		return "", fmt.Errorf("failed to parse %s: %w", pageURL, err)
	}

	paragraph := ""

	doc.Find(contentSelector).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		text := utils.NormalizeWhitespace(sel.Text())
		if e.qualifies(text) {
			paragraph = text

			return false
		}

		return true
	})

	if paragraph == "" {
		e.log.Debug("no qualifying paragraph", "url", pageURL)
	}

	return paragraph, nil
}

// qualifies applies the best-effort prose filter: long enough to be a real
// sentence, contains a period, and is not a coordinate/metadata or
// pronunciation-only line. These skip rules are heuristics against arbitrary
// third-party HTML, not a guaranteed-correct parser.
func (e *Extractor) qualifies(text string) bool {
	if len(text) <= e.minLen {
		return false
	}

	if !strings.Contains(text, ".") {
		return false
	}

	for _, prefix := range []string{"[", "(", "Coordinates"} {
		if strings.HasPrefix(text, prefix) {
			return false
		}
	}

	return true
}
