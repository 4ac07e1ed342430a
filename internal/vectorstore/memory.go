package vectorstore

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"sync"

	"docuchat/backend/internal/chunker"
	app_errors "docuchat/backend/internal/errors"
	"docuchat/backend/internal/llm"
	"docuchat/backend/internal/model"
)

type memoryChunk struct {
	seq   uint64
	chunk model.DocumentChunk
}

// MemoryStore is a process-local Store, used by tests and by deployments
// configured with VECTOR_STORE=memory.
type MemoryStore struct {
	mu     sync.RWMutex
	chunks map[string][]memoryChunk
	seq    uint64

	opts  Options
	dims  *dimensionGuard
	locks *keyedMutex
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore(opts Options) *MemoryStore {
	opts = opts.withDefaults()
	return &MemoryStore{
		chunks: make(map[string][]memoryChunk),
		opts:   opts,
		dims:   &dimensionGuard{dim: opts.Dimensions},
		locks:  newKeyedMutex(),
	}
}

func (m *MemoryStore) UpsertDocument(ctx context.Context, documentID, documentName string, spans []chunker.Span, embedder llm.Embedder) (*UpsertResult, error) {
	unlock := m.locks.Lock(documentID)
	defer unlock()

	return replaceDocument(ctx, m, m.dims, m.opts, documentID, documentName, spans, embedder)
}

func (m *MemoryStore) DeleteDocument(ctx context.Context, documentID string) (int, error) {
	unlock := m.locks.Lock(documentID)
	defer unlock()

	return m.deleteChunks(ctx, documentID)
}

func (m *MemoryStore) deleteChunks(_ context.Context, documentID string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	n := len(m.chunks[documentID])
	delete(m.chunks, documentID)
	return n, nil
}

func (m *MemoryStore) insertChunks(_ context.Context, chunks []model.DocumentChunk) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, c := range chunks {
		for _, existing := range m.chunks[c.DocumentID] {
			if existing.chunk.ChunkIndex == c.ChunkIndex {
				return fmt.Errorf("%w: chunk %s already exists", app_errors.ErrConflict, c.ID)
			}
		}
	}
	for _, c := range chunks {
		m.seq++
		c.Vector = slices.Clone(c.Vector)
		m.chunks[c.DocumentID] = append(m.chunks[c.DocumentID], memoryChunk{seq: m.seq, chunk: c})
	}
	return nil
}

func (m *MemoryStore) Search(_ context.Context, query []float32, k int, documentIDs []string) ([]model.SearchResult, error) {
	if k <= 0 {
		return []model.SearchResult{}, nil
	}
	dim := m.dims.get()
	if dim == 0 {
		return []model.SearchResult{}, nil
	}
	if len(query) != dim {
		return nil, fmt.Errorf("%w: query has %d dimensions, index has %d", app_errors.ErrCorruptedIndex, len(query), dim)
	}

	m.mu.RLock()
	entries := m.collect(documentIDs)
	m.mu.RUnlock()

	sort.Slice(entries, func(i, j int) bool { return entries[i].seq < entries[j].seq })
	candidates := make([]model.DocumentChunk, 0, len(entries))
	corrupted := make(map[string]bool)
	for _, e := range entries {
		if len(e.chunk.Vector) != dim {
			corrupted[e.chunk.DocumentID] = true
			continue
		}
		candidates = append(candidates, e.chunk)
	}
	candidates, err := withoutCorrupted(candidates, corrupted)
	if err != nil {
		return nil, err
	}
	return rankTopK(query, candidates, k), nil
}

func (m *MemoryStore) AllChunks(_ context.Context, documentIDs []string, limit int) ([]model.DocumentChunk, error) {
	m.mu.RLock()
	entries := m.collect(documentIDs)
	m.mu.RUnlock()

	sort.Slice(entries, func(i, j int) bool {
		a, b := entries[i].chunk, entries[j].chunk
		if a.DocumentID != b.DocumentID {
			return a.DocumentID < b.DocumentID
		}
		return a.ChunkIndex < b.ChunkIndex
	})
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}

	chunks := make([]model.DocumentChunk, len(entries))
	for i, e := range entries {
		chunks[i] = e.chunk
		chunks[i].Vector = nil
	}
	return chunks, nil
}

func (m *MemoryStore) Stats(context.Context) (*model.IndexStats, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	stats := &model.IndexStats{PerDocumentChunkCounts: map[string]int{}}
	for id, chunks := range m.chunks {
		if len(chunks) == 0 {
			continue
		}
		stats.PerDocumentChunkCounts[id] = len(chunks)
		stats.TotalDocuments++
		stats.TotalChunks += len(chunks)
	}
	return stats, nil
}

func (m *MemoryStore) Close() error {
	return nil
}

// collect must be called with m.mu held.
func (m *MemoryStore) collect(documentIDs []string) []memoryChunk {
	var out []memoryChunk
	if len(documentIDs) == 0 {
		for _, chunks := range m.chunks {
			out = append(out, chunks...)
		}
		return out
	}
	seen := make(map[string]bool, len(documentIDs))
	for _, id := range documentIDs {
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, m.chunks[id]...)
	}
	return out
}
