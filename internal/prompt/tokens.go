package prompt

import (
	"fmt"
	"strings"

	"github.com/pkoukk/tiktoken-go"
)

// Estimator measures assembled context against the token budget. It is an
// interface so a real tokenizer can replace the word-count heuristic
// without touching traversal or assembly.
type Estimator interface {
	Count(text string) int
}

// WordEstimator approximates tokens as whitespace-separated words.
type WordEstimator struct{}

func (WordEstimator) Count(text string) int {
	return len(strings.Fields(text))
}

// TiktokenEstimator counts real BPE tokens via tiktoken.
type TiktokenEstimator struct {
	enc *tiktoken.Tiktoken
}

// NewTiktokenEstimator loads the named encoding (e.g. "cl100k_base").
func NewTiktokenEstimator(encoding string) (*TiktokenEstimator, error) {
	enc, err := tiktoken.GetEncoding(encoding)
	if err != nil {
		return nil, fmt.Errorf("loading encoding %q: %w", encoding, err)
	}
	return &TiktokenEstimator{enc: enc}, nil
}

func (t *TiktokenEstimator) Count(text string) int {
	return len(t.enc.Encode(text, nil, nil))
}
