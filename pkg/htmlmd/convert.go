// Package htmlmd converts help-center article HTML to markdown.
//
// Two implementations exist: a library-backed primary converter and a
// tag-stripping fallback that preserves paragraph and line breaks as blank
// lines. Select picks one at startup so the choice is not re-made per
// article. Both sanitize upstream HTML first; article bodies are authored
// content and must not smuggle script into the export.
package htmlmd

import (
	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"
)

// Converter turns an HTML fragment into markdown.
type Converter interface {
	Convert(htmlInput string) (string, error)
}

// Select returns the library-backed converter, or the fallback when the
// primary cannot handle a trivial document.
func Select(logger zerolog.Logger) Converter {
	primary := NewLibraryConverter()
	if _, err := primary.Convert("<p>probe</p>"); err != nil {
		logger.Warn().
			Err(err).
			Msg("Markdown converter unavailable, falling back to tag stripping")
		return NewFallbackConverter()
	}
	return primary
}

// LibraryConverter converts HTML to markdown via html-to-markdown.
type LibraryConverter struct {
	policy *bluemonday.Policy
}

// NewLibraryConverter creates the primary converter.
func NewLibraryConverter() *LibraryConverter {
	return &LibraryConverter{
		policy: bluemonday.UGCPolicy(),
	}
}

// Convert sanitizes and converts an HTML fragment to markdown.
func (c *LibraryConverter) Convert(htmlInput string) (string, error) {
	if htmlInput == "" {
		return "", nil
	}
	return htmltomarkdown.ConvertString(c.policy.Sanitize(htmlInput))
}
