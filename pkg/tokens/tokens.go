// Package tokens provides token counting for chunk sizing.
//
// The primary implementation uses the cl100k_base BPE encoding via
// tiktoken-go. When the encoding cannot be loaded (e.g. no network access
// to fetch the vocabulary), a character-based heuristic of roughly four
// characters per token is used instead. The implementation is selected
// once at startup, not per call.
package tokens

import (
	"github.com/pkoukk/tiktoken-go"
	"github.com/rs/zerolog"
)

// Encoding is the BPE encoding used by the primary counter.
const Encoding = "cl100k_base"

// Counter counts tokens in a text.
type Counter interface {
	Count(text string) int
}

// NewCounter returns the tiktoken-backed counter, or the heuristic
// counter when the encoding is unavailable.
func NewCounter(logger zerolog.Logger) Counter {
	enc, err := tiktoken.GetEncoding(Encoding)
	if err != nil {
		logger.Warn().
			Err(err).
			Str("encoding", Encoding).
			Msg("Tokenizer unavailable, falling back to character heuristic")
		return HeuristicCounter{}
	}
	return &TiktokenCounter{enc: enc}
}

// TiktokenCounter counts tokens using a tiktoken BPE encoding.
type TiktokenCounter struct {
	enc *tiktoken.Tiktoken
}

// Count returns the number of BPE tokens in text.
func (c *TiktokenCounter) Count(text string) int {
	return len(c.enc.Encode(text, nil, nil))
}

// HeuristicCounter approximates token counts as ceil(len/4), floored at 1.
type HeuristicCounter struct{}

// Count returns the approximate token count of text.
func (HeuristicCounter) Count(text string) int {
	n := (len(text) + 3) / 4
	if n < 1 {
		n = 1
	}
	return n
}
