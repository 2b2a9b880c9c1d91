package htmlmd

import (
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/net/html"
)

var excessNewlines = regexp.MustCompile(`\n{3,}`)

// blockElements end with a blank line when stripped to text.
var blockElements = map[string]bool{
	"p": true, "div": true, "li": true, "ul": true, "ol": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"blockquote": true, "pre": true, "table": true, "tr": true,
}

// FallbackConverter strips tags, preserving paragraph and line breaks as
// blank lines. It never fails.
type FallbackConverter struct {
	policy *bluemonday.Policy
}

// NewFallbackConverter creates the fallback converter.
func NewFallbackConverter() *FallbackConverter {
	return &FallbackConverter{
		policy: bluemonday.UGCPolicy(),
	}
}

// Convert sanitizes the fragment and strips the remaining tags.
func (c *FallbackConverter) Convert(htmlInput string) (string, error) {
	if htmlInput == "" {
		return "", nil
	}
	return StripTags(c.policy.Sanitize(htmlInput)), nil
}

// StripTags extracts the text content of an HTML fragment. <br> becomes a
// newline and block elements are followed by a blank line; runs of three
// or more newlines collapse to one blank line.
func StripTags(htmlInput string) string {
	doc, err := html.Parse(strings.NewReader(htmlInput))
	if err != nil {
		return strings.TrimSpace(htmlInput)
	}

	var b strings.Builder
	extractText(doc, &b)

	return strings.TrimSpace(excessNewlines.ReplaceAllString(b.String(), "\n\n"))
}

// extractText walks the node tree appending text content to b.
func extractText(n *html.Node, b *strings.Builder) {
	switch n.Type {
	case html.TextNode:
		b.WriteString(n.Data)
	case html.ElementNode:
		switch n.Data {
		case "br":
			b.WriteString("\n")
			return
		case "script", "style":
			return
		}
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		extractText(c, b)
	}

	if n.Type == html.ElementNode && blockElements[n.Data] {
		b.WriteString("\n\n")
	}
}
