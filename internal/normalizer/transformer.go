package normalizer

import (
	"regexp"
	"strings"
)

// Transformer cleans extracted biography text into plain prose.
type Transformer struct {
	referencePattern     *regexp.Regexp
	pronunciationPattern *regexp.Regexp
	shortParenPattern    *regexp.Regexp
	whitespacePattern    *regexp.Regexp
}

// NewTransformer creates a new transformer instance.
func NewTransformer() *Transformer {
	return &Transformer{
		// Footnote references like [1] or [note 2]
		referencePattern: regexp.MustCompile(`\[[^\]]*\]`),
		// Parenthesized pronunciations like (/ˈɪŋɡlænd/)
		pronunciationPattern: regexp.MustCompile(`\([^)]*[/ˈˌ][^)]*\)`),
		// Short parentheticals like (born 1960)
		shortParenPattern: regexp.MustCompile(`\(([^)]{1,25})\)`),
		whitespacePattern: regexp.MustCompile(`\s+`),
	}
}

// CleanBiography strips reference markers, pronunciation runs and short
// parentheticals from a raw paragraph, then collapses whitespace. An empty
// input stays empty.
func (t *Transformer) CleanBiography(text string) string {
	if text == "" {
		return ""
	}

	clean := t.referencePattern.ReplaceAllString(text, "")
	clean = t.pronunciationPattern.ReplaceAllString(clean, "")
	clean = t.shortParenPattern.ReplaceAllString(clean, "")
	clean = t.whitespacePattern.ReplaceAllString(clean, " ")

	return strings.TrimSpace(clean)
}
