package wiki

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"leaderswiki/internal/config"
	"leaderswiki/internal/logger"
)

const leadParagraph = "Example Leader was a politician who served as head of state for a full decade and shaped policy."

func testExtractor() *Extractor {
	cfg := config.WikiConfig{
		TimeoutSec:        5,
		MinParagraphChars: 80,
		UserAgent:         "leaderswiki-test/1.0",
	}

	return NewExtractor(cfg, logger.NewLoggerWithWriter("error", io.Discard))
}

func servePage(t *testing.T, html string) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, html)
	}))
	t.Cleanup(srv.Close)

	return srv
}

func TestFirstParagraph_PicksFirstQualifying(t *testing.T) {
	html := fmt.Sprintf(`<html><body>
		<div id="mw-content-text">
			<p>  </p>
			<p>(/ˈɛɡzɑːmpəl/ EX-am-pul; pronunciation guidance only, nothing informative here at all)</p>
			<p>%s</p>
			<p>A later paragraph that should not be selected even though it also qualifies as real prose text.</p>
		</div>
	</body></html>`, leadParagraph)

	srv := servePage(t, html)

	got, err := testExtractor().FirstParagraph(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("FirstParagraph failed: %v", err)
	}

	if got != leadParagraph {
		t.Errorf("Expected lead paragraph, got %q", got)
	}
}

func TestFirstParagraph_SkipRules(t *testing.T) {
	tests := []struct {
		name string
		html string
	}{
		{
			name: "only short paragraphs",
			html: `<div id="mw-content-text"><p>Too short.</p><p>Also short.</p></div>`,
		},
		{
			name: "no period",
			html: `<div id="mw-content-text"><p>` + strings.Repeat("word ", 30) + `</p></div>`,
		},
		{
			name: "coordinates line",
			html: `<div id="mw-content-text"><p>Coordinates: 50°51′N 4°21′E. A metadata line that is long enough to pass the length check.</p></div>`,
		},
		{
			name: "bracket prefix",
			html: `<div id="mw-content-text"><p>[citation needed] A paragraph that opens with a bracket marker and is long enough to pass. Yes.</p></div>`,
		},
		{
			name: "no content container",
			html: `<div id="other"><p>` + leadParagraph + `</p></div>`,
		},
		{
			name: "infobox only stub",
			html: `<div id="mw-content-text"><table class="infobox"><tr><td>Born 1900</td></tr></table></div>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := servePage(t, "<html><body>"+tt.html+"</body></html>")

			got, err := testExtractor().FirstParagraph(context.Background(), srv.URL)
			if err != nil {
				t.Fatalf("FirstParagraph failed: %v", err)
			}

			if got != "" {
				t.Errorf("Expected empty result, got %q", got)
			}
		})
	}
}

func TestFirstParagraph_NormalizesWhitespace(t *testing.T) {
	html := `<div id="mw-content-text"><p>Example   Leader was a politician
		who served   as head of state for a full decade and shaped national policy.</p></div>`
	srv := servePage(t, html)

	got, err := testExtractor().FirstParagraph(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("FirstParagraph failed: %v", err)
	}

	if strings.Contains(got, "  ") || strings.Contains(got, "\n") {
		t.Errorf("Expected normalized whitespace, got %q", got)
	}
}

func TestFirstParagraph_ErrorOnHTTPFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	_, err := testExtractor().FirstParagraph(context.Background(), srv.URL)
	if err == nil {
		t.Fatal("Expected error for 404 response")
	}
}

func TestFirstParagraph_ErrorOnUnreachableHost(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()

	_, err := testExtractor().FirstParagraph(context.Background(), srv.URL)
	if err == nil {
		t.Fatal("Expected error for unreachable host")
	}
}
