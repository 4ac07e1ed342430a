// Package vectorstore persists document chunks with their embeddings and
// answers brute-force cosine similarity queries over them.
package vectorstore

import (
	"context"
	"time"

	"docuchat/backend/internal/chunker"
	"docuchat/backend/internal/llm"
	"docuchat/backend/internal/model"
)

// DefaultBatchSize is the number of chunks embedded concurrently and committed together.
const DefaultBatchSize = 5

// Store is the contract every vector store backend satisfies. Search is
// brute force today; an approximate index can implement the same interface.
type Store interface {
	// UpsertDocument replaces every chunk owned by documentID. Spans are
	// embedded in concurrent batches and each batch is committed on its own,
	// so an interrupted upsert leaves a valid partial index.
	UpsertDocument(ctx context.Context, documentID, documentName string, spans []chunker.Span, embedder llm.Embedder) (*UpsertResult, error)
	// DeleteDocument removes all chunks of a document and returns how many were removed.
	// Deleting an unknown document is a no-op.
	DeleteDocument(ctx context.Context, documentID string) (int, error)
	// Search returns at most k chunks by descending cosine similarity. An empty
	// documentIDs slice searches every document.
	Search(ctx context.Context, query []float32, k int, documentIDs []string) ([]model.SearchResult, error)
	// AllChunks returns chunks of the given documents ordered by (document id, chunk index).
	AllChunks(ctx context.Context, documentIDs []string, limit int) ([]model.DocumentChunk, error)
	Stats(ctx context.Context) (*model.IndexStats, error)
	Close() error
}

// UpsertResult reports what an UpsertDocument call changed.
type UpsertResult struct {
	Removed  int `json:"removed"`
	Inserted int `json:"inserted"`
	Skipped  int `json:"skipped"`
}

// Options configures batching and the expected vector dimensionality.
type Options struct {
	BatchSize int
	// Dimensions fixes the index dimensionality. Zero means it is taken from
	// the first vector written.
	Dimensions   int
	EmbedTimeout time.Duration
}

func (o Options) withDefaults() Options {
	if o.BatchSize <= 0 {
		o.BatchSize = DefaultBatchSize
	}
	return o
}
