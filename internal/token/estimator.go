// Package token estimates the token cost of text blobs.
//
// An exact tiktoken encoding is used when it can be constructed; otherwise
// the estimator degrades silently to a fixed bytes-per-token heuristic and
// reports itself as approximate. The fallback ratio is fixed so that file
// selection stays deterministic for a given backend.
package token

import (
	tiktoken "github.com/pkoukk/tiktoken-go"
)

// Encoding is the tokenizer encoding used for exact counts. cl100k_base
// is a reasonable approximation across current model families.
const Encoding = "cl100k_base"

// BytesPerToken is the fallback approximation ratio (~4 bytes per token).
const BytesPerToken = 4

// Estimator estimates token counts for text.
type Estimator struct {
	enc *tiktoken.Tiktoken // nil means heuristic fallback
}

// NewEstimator returns an estimator backed by the exact tokenizer when
// available. Construction never fails; on tokenizer errors the heuristic
// fallback is used.
func NewEstimator() *Estimator {
	enc, err := tiktoken.GetEncoding(Encoding)
	if err != nil {
		return &Estimator{}
	}
	return &Estimator{enc: enc}
}

// NewHeuristicEstimator returns an estimator that always uses the
// bytes-per-token heuristic. Used in tests and when exact counting is
// not wanted.
func NewHeuristicEstimator() *Estimator {
	return &Estimator{}
}

// Estimate returns the estimated token count for text. Never fails.
func (e *Estimator) Estimate(text string) int {
	if text == "" {
		return 0
	}
	if e.enc != nil {
		return len(e.enc.Encode(text, nil, nil))
	}
	return (len(text) + BytesPerToken - 1) / BytesPerToken
}

// Approximate reports whether counts come from the heuristic fallback
// rather than an exact tokenizer.
func (e *Estimator) Approximate() bool {
	return e.enc == nil
}
