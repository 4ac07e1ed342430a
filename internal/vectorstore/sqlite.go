package vectorstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"docuchat/backend/internal/chunker"
	app_errors "docuchat/backend/internal/errors"
	"docuchat/backend/internal/llm"
	"docuchat/backend/internal/model"
)

// SQLiteStore keeps chunks and their vectors in the chunks table and scans
// them in rowid order for every query.
type SQLiteStore struct {
	db    *sql.DB
	opts  Options
	dims  *dimensionGuard
	locks *keyedMutex
}

// NewSQLiteStore creates a store on an already migrated database. The index
// dimensionality is restored from the stored vectors when any exist.
func NewSQLiteStore(ctx context.Context, db *sql.DB, opts Options) (*SQLiteStore, error) {
	opts = opts.withDefaults()
	s := &SQLiteStore{
		db:    db,
		opts:  opts,
		dims:  &dimensionGuard{dim: opts.Dimensions},
		locks: newKeyedMutex(),
	}

	var stored int
	err := db.QueryRowContext(ctx, "SELECT length(vector) FROM chunks ORDER BY rowid LIMIT 1").Scan(&stored)
	switch {
	case errors.Is(err, sql.ErrNoRows):
	case err != nil:
		return nil, fmt.Errorf("failed to inspect stored vectors: %w", err)
	default:
		dim := stored / 4
		if opts.Dimensions != 0 && opts.Dimensions != dim {
			slog.Warn("Stored vectors do not match the configured embedding dimensions, keeping stored value",
				"stored", dim, "configured", opts.Dimensions)
		}
		s.dims.dim = dim
	}

	return s, nil
}

func (s *SQLiteStore) UpsertDocument(ctx context.Context, documentID, documentName string, spans []chunker.Span, embedder llm.Embedder) (*UpsertResult, error) {
	unlock := s.locks.Lock(documentID)
	defer unlock()

	return replaceDocument(ctx, s, s.dims, s.opts, documentID, documentName, spans, embedder)
}

func (s *SQLiteStore) DeleteDocument(ctx context.Context, documentID string) (int, error) {
	unlock := s.locks.Lock(documentID)
	defer unlock()

	return s.deleteChunks(ctx, documentID)
}

func (s *SQLiteStore) deleteChunks(ctx context.Context, documentID string) (int, error) {
	res, err := s.db.ExecContext(ctx, "DELETE FROM chunks WHERE document_id = ?", documentID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete chunks: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count deleted chunks: %w", err)
	}
	return int(n), nil
}

func (s *SQLiteStore) insertChunks(ctx context.Context, chunks []model.DocumentChunk) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO chunks
		(id, document_id, document_name, chunk_index, content, start_index, end_index, vector)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare chunk insert: %w", err)
	}
	defer stmt.Close()

	for _, c := range chunks {
		if _, err := stmt.ExecContext(ctx, c.ID, c.DocumentID, c.DocumentName, c.ChunkIndex,
			c.Text, c.StartIndex, c.EndIndex, encodeVector(c.Vector)); err != nil {
			return fmt.Errorf("failed to insert chunk %s: %w", c.ID, err)
		}
	}

	return tx.Commit()
}

func (s *SQLiteStore) Search(ctx context.Context, query []float32, k int, documentIDs []string) ([]model.SearchResult, error) {
	if k <= 0 {
		return []model.SearchResult{}, nil
	}
	dim := s.dims.get()
	if dim == 0 {
		return []model.SearchResult{}, nil
	}
	if len(query) != dim {
		return nil, fmt.Errorf("%w: query has %d dimensions, index has %d", app_errors.ErrCorruptedIndex, len(query), dim)
	}

	where, args := documentFilter(documentIDs)
	rows, err := s.db.QueryContext(ctx, `SELECT id, document_id, document_name, chunk_index, content, start_index, end_index, vector
		FROM chunks`+where+` ORDER BY rowid`, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query chunks: %w", err)
	}
	defer rows.Close()

	var candidates []model.DocumentChunk
	corrupted := make(map[string]bool)
	for rows.Next() {
		var c model.DocumentChunk
		var blob []byte
		if err := rows.Scan(&c.ID, &c.DocumentID, &c.DocumentName, &c.ChunkIndex, &c.Text, &c.StartIndex, &c.EndIndex, &blob); err != nil {
			return nil, fmt.Errorf("failed to scan chunk: %w", err)
		}
		vec, err := decodeVector(blob)
		if err != nil || len(vec) != dim {
			slog.Warn("Stored vector is unreadable", "chunk_id", c.ID, "document_id", c.DocumentID, "bytes", len(blob))
			corrupted[c.DocumentID] = true
			continue
		}
		c.Vector = vec
		candidates = append(candidates, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate chunks: %w", err)
	}

	candidates, err = withoutCorrupted(candidates, corrupted)
	if err != nil {
		return nil, err
	}
	return rankTopK(query, candidates, k), nil
}

func (s *SQLiteStore) AllChunks(ctx context.Context, documentIDs []string, limit int) ([]model.DocumentChunk, error) {
	where, args := documentFilter(documentIDs)
	q := `SELECT id, document_id, document_name, chunk_index, content, start_index, end_index
		FROM chunks` + where + ` ORDER BY document_id, chunk_index`
	if limit > 0 {
		q += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query chunks: %w", err)
	}
	defer rows.Close()

	chunks := []model.DocumentChunk{}
	for rows.Next() {
		var c model.DocumentChunk
		if err := rows.Scan(&c.ID, &c.DocumentID, &c.DocumentName, &c.ChunkIndex, &c.Text, &c.StartIndex, &c.EndIndex); err != nil {
			return nil, fmt.Errorf("failed to scan chunk: %w", err)
		}
		chunks = append(chunks, c)
	}
	return chunks, rows.Err()
}

func (s *SQLiteStore) Stats(ctx context.Context) (*model.IndexStats, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT document_id, COUNT(*) FROM chunks GROUP BY document_id")
	if err != nil {
		return nil, fmt.Errorf("failed to query chunk stats: %w", err)
	}
	defer rows.Close()

	stats := &model.IndexStats{PerDocumentChunkCounts: map[string]int{}}
	for rows.Next() {
		var id string
		var n int
		if err := rows.Scan(&id, &n); err != nil {
			return nil, fmt.Errorf("failed to scan chunk stats: %w", err)
		}
		stats.PerDocumentChunkCounts[id] = n
		stats.TotalDocuments++
		stats.TotalChunks += n
	}
	return stats, rows.Err()
}

// Close is a no-op; the database handle belongs to the caller.
func (s *SQLiteStore) Close() error {
	return nil
}

func documentFilter(documentIDs []string) (string, []any) {
	if len(documentIDs) == 0 {
		return "", nil
	}
	args := make([]any, len(documentIDs))
	for i, id := range documentIDs {
		args[i] = id
	}
	return " WHERE document_id IN (" + strings.TrimSuffix(strings.Repeat("?,", len(documentIDs)), ",") + ")", args
}
