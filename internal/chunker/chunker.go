// Package chunker splits extracted document text into overlapping fixed-size windows.
package chunker

import (
	"fmt"
	"log/slog"
	"strings"

	app_errors "docuchat/backend/internal/errors"
)

// DefaultChunkSize is the default number of characters per chunk.
const DefaultChunkSize = 1000

// DefaultOverlap is the default number of overlapping characters.
const DefaultOverlap = 200

// iterationSlack is added to the expected number of windows to bound the loop.
const iterationSlack = 10

// Span is one emitted window. Offsets are rune offsets into the source text.
type Span struct {
	Index      int
	Text       string
	StartIndex int
	EndIndex   int
}

// ValidateParams reports whether chunkSize and overlap can be used by Chunk.
func ValidateParams(chunkSize, overlap int) error {
	if chunkSize <= 0 {
		return fmt.Errorf("%w: chunk size must be positive, got %d", app_errors.ErrValidation, chunkSize)
	}
	if overlap < 0 || overlap >= chunkSize {
		return fmt.Errorf("%w: overlap must be in [0, %d), got %d", app_errors.ErrValidation, chunkSize, overlap)
	}
	return nil
}

// Chunk splits text into windows of at most chunkSize runes, each starting
// chunkSize-overlap runes after the previous one. Whitespace-only windows are
// dropped and do not consume an index.
func Chunk(text string, chunkSize, overlap int) ([]Span, error) {
	if err := ValidateParams(chunkSize, overlap); err != nil {
		return nil, err
	}

	runes := []rune(text)
	n := len(runes)
	if n == 0 {
		return []Span{}, nil
	}

	step := chunkSize - overlap
	maxIterations := (n+step-1)/step + iterationSlack

	spans := make([]Span, 0, (n+step-1)/step)
	start := 0
	for iterations := 0; start < n; iterations++ {
		if iterations >= maxIterations {
			slog.Warn("Chunking exceeded its iteration bound, truncating output",
				"text_length", n, "chunk_size", chunkSize, "overlap", overlap, "chunks", len(spans))
			break
		}

		windowEnd := start + chunkSize
		end := min(windowEnd, n)

		if piece := strings.TrimSpace(string(runes[start:end])); piece != "" {
			spans = append(spans, Span{
				Index:      len(spans),
				Text:       piece,
				StartIndex: start,
				EndIndex:   end,
			})
		}

		next := windowEnd - overlap
		if next <= start {
			next = end
		}
		start = next
	}

	return spans, nil
}
