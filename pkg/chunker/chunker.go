// Package chunker partitions markdown documents into bounded-size,
// semantically coherent chunks for retrieval indexing.
//
// Naive fixed-length splitting breaks headings and paragraphs
// mid-sentence, which hurts retrieval quality. The chunker instead splits
// the document into blocks at heading and blank-line boundaries, keeps
// each heading attached to the content that follows it, and greedily
// packs blocks into chunks near Target tokens without exceeding Max.
// Blocks that are individually larger than Max are hard-split at sentence
// boundaries. A single sentence above Max is passed through whole; that
// is the one case where a chunk can exceed the bound.
package chunker

import (
	"regexp"
	"strings"

	"github.com/helpcenter-tools/hc-export/pkg/tokens"
)

// Default chunk sizing in tokens.
const (
	DefaultTargetTokens = 800
	DefaultMaxTokens    = 1200
)

var (
	headingLine = regexp.MustCompile(`^#{1,6} `)
	sentenceEnd = regexp.MustCompile(`[.!?]\s+`)
)

// Chunker splits markdown into chunks. Chunk is a pure function of its
// input: the same document always yields the same chunk sequence.
type Chunker struct {
	// Target is the token count at which a chunk is considered full.
	Target int

	// Max is the hard token ceiling per chunk.
	Max int

	// Counter provides token counts per block.
	Counter tokens.Counter
}

// New creates a chunker with default sizing.
func New(counter tokens.Counter) *Chunker {
	return &Chunker{
		Target:  DefaultTargetTokens,
		Max:     DefaultMaxTokens,
		Counter: counter,
	}
}

// Chunk partitions markdown into an ordered sequence of chunks. Chunks
// appear in document order; concatenating them reproduces the document
// modulo whitespace at block boundaries. Empty chunks are discarded.
func (c *Chunker) Chunk(markdown string) []string {
	blocks := splitBlocks(markdown)

	var chunks []string
	var buffer []string
	bufferTokens := 0

	flush := func() {
		if len(buffer) == 0 {
			return
		}
		chunk := strings.TrimSpace(strings.Join(buffer, "\n\n"))
		if chunk != "" {
			chunks = append(chunks, chunk)
		}
		buffer = nil
		bufferTokens = 0
	}

	for _, block := range blocks {
		blockTokens := c.Counter.Count(block)

		// Oversized blocks are hard-split at sentence boundaries and
		// emitted on their own. The buffer is flushed first so that
		// chunk order follows document order.
		if blockTokens > c.Max {
			flush()
			chunks = append(chunks, c.splitOversized(block)...)
			continue
		}

		if bufferTokens+blockTokens > c.Max && len(buffer) > 0 {
			flush()
		}

		buffer = append(buffer, block)
		bufferTokens += blockTokens

		if bufferTokens >= c.Target {
			flush()
		}
	}

	flush()
	return chunks
}

// splitOversized packs the block's sentences into sub-chunks that stay
// within Max. A lone sentence above Max is emitted whole.
func (c *Chunker) splitOversized(block string) []string {
	var out []string
	var sub []string
	subTokens := 0

	for _, sentence := range splitSentences(block) {
		sentenceTokens := c.Counter.Count(sentence)
		if subTokens+sentenceTokens > c.Max && len(sub) > 0 {
			if chunk := strings.TrimSpace(strings.Join(sub, " ")); chunk != "" {
				out = append(out, chunk)
			}
			sub = nil
			subTokens = 0
		}
		sub = append(sub, sentence)
		subTokens += sentenceTokens
	}
	if len(sub) > 0 {
		if chunk := strings.TrimSpace(strings.Join(sub, " ")); chunk != "" {
			out = append(out, chunk)
		}
	}
	return out
}

// splitBlocks segments markdown at heading lines and blank-line paragraph
// boundaries. Each heading is re-attached to the content following it, so
// a heading never forms a block alone unless it ends the document.
// Consecutive headings stay together.
func splitBlocks(markdown string) []string {
	var blocks []string
	var heading string
	var para []string

	endParagraph := func() {
		if len(para) == 0 {
			return
		}
		text := strings.Join(para, "\n")
		para = nil
		if strings.TrimSpace(text) == "" {
			return
		}
		if heading != "" {
			blocks = append(blocks, heading+"\n\n"+text)
			heading = ""
			return
		}
		blocks = append(blocks, text)
	}

	for _, line := range strings.Split(markdown, "\n") {
		trimmed := strings.TrimSpace(line)
		switch {
		case headingLine.MatchString(trimmed):
			endParagraph()
			if heading != "" {
				heading += "\n\n" + trimmed
			} else {
				heading = trimmed
			}
		case trimmed == "":
			endParagraph()
		default:
			para = append(para, line)
		}
	}
	endParagraph()

	// A trailing heading with no content is the final block.
	if heading != "" {
		blocks = append(blocks, heading)
	}
	return blocks
}

// splitSentences splits text after sentence-ending punctuation followed
// by whitespace. Punctuation stays with its sentence; the separating
// whitespace is dropped (sub-chunks re-join with single spaces).
func splitSentences(text string) []string {
	var sentences []string
	last := 0
	for _, loc := range sentenceEnd.FindAllStringIndex(text, -1) {
		sentences = append(sentences, text[last:loc[0]+1])
		last = loc[1]
	}
	if last < len(text) {
		sentences = append(sentences, text[last:])
	}
	return sentences
}
