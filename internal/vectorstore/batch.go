package vectorstore

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"docuchat/backend/internal/chunker"
	app_errors "docuchat/backend/internal/errors"
	"docuchat/backend/internal/llm"
	"docuchat/backend/internal/model"
)

// chunkWriter is the persistence half of a backend used by replaceDocument.
type chunkWriter interface {
	deleteChunks(ctx context.Context, documentID string) (int, error)
	// insertChunks commits all chunks atomically.
	insertChunks(ctx context.Context, chunks []model.DocumentChunk) error
}

// dimensionGuard holds the index dimensionality once it is known.
type dimensionGuard struct {
	mu  sync.Mutex
	dim int
}

// check fixes the dimensionality on first use and rejects any vector that differs.
func (g *dimensionGuard) check(documentID string, vec []float32) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.dim == 0 {
		g.dim = len(vec)
		return nil
	}
	if len(vec) != g.dim {
		return fmt.Errorf("%w: document %s produced a %d-dimensional vector, index expects %d",
			app_errors.ErrCorruptedIndex, documentID, len(vec), g.dim)
	}
	return nil
}

func (g *dimensionGuard) get() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.dim
}

// replaceDocument deletes a document's chunks and writes the new ones batch by
// batch. Callers hold the document's write lock.
func replaceDocument(
	ctx context.Context,
	w chunkWriter,
	dims *dimensionGuard,
	opts Options,
	documentID, documentName string,
	spans []chunker.Span,
	embedder llm.Embedder,
) (*UpsertResult, error) {
	removed, err := w.deleteChunks(ctx, documentID)
	if err != nil {
		return nil, fmt.Errorf("could not remove previous chunks of document %s: %w", documentID, err)
	}
	result := &UpsertResult{Removed: removed}

	for start := 0; start < len(spans); start += opts.BatchSize {
		end := min(start+opts.BatchSize, len(spans))

		vectors, err := embedBatch(ctx, embedder, documentID, spans[start:end], opts.EmbedTimeout)
		if err != nil {
			return result, err
		}

		batch := make([]model.DocumentChunk, 0, end-start)
		for i, vec := range vectors {
			if vec == nil {
				result.Skipped++
				continue
			}
			if err := dims.check(documentID, vec); err != nil {
				if _, delErr := w.deleteChunks(ctx, documentID); delErr != nil {
					slog.Error("Failed to remove partial chunks of corrupted document", "document_id", documentID, "error", delErr)
				}
				result.Inserted = 0
				return result, err
			}
			span := spans[start+i]
			batch = append(batch, model.DocumentChunk{
				ID:           model.ChunkID(documentID, span.Index),
				DocumentID:   documentID,
				DocumentName: documentName,
				ChunkIndex:   span.Index,
				Text:         span.Text,
				StartIndex:   span.StartIndex,
				EndIndex:     span.EndIndex,
				Vector:       vec,
			})
		}
		if len(batch) == 0 {
			continue
		}

		if err := w.insertChunks(ctx, batch); err != nil {
			return result, fmt.Errorf("could not commit chunks %d-%d of document %s: %w", start, end, documentID, err)
		}
		result.Inserted += len(batch)
		slog.Debug("Committed chunk batch", "document_id", documentID, "from", start, "to", end, "total", len(spans))
	}

	return result, nil
}

// embedBatch embeds spans concurrently. A span that fails to embed yields a
// nil vector and is logged; only cancellation of ctx aborts the batch.
func embedBatch(ctx context.Context, embedder llm.Embedder, documentID string, spans []chunker.Span, timeout time.Duration) ([][]float32, error) {
	vectors := make([][]float32, len(spans))

	g, gctx := errgroup.WithContext(ctx)
	for i, span := range spans {
		g.Go(func() error {
			callCtx, cancel := withOptionalTimeout(gctx, timeout)
			defer cancel()

			vec, err := embedder.Embed(callCtx, span.Text)
			if err != nil {
				if ctxErr := ctx.Err(); ctxErr != nil {
					return ctxErr
				}
				slog.Warn("Skipping chunk that failed to embed",
					"document_id", documentID, "chunk_index", span.Index, "error", err)
				return nil
			}
			if len(vec) == 0 {
				slog.Warn("Skipping chunk with empty embedding", "document_id", documentID, "chunk_index", span.Index)
				return nil
			}
			vectors[i] = vec
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return vectors, nil
}

func withOptionalTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}
