package model

import (
	"fmt"
	"time"
)

// DocumentMetadata stores bookkeeping about an uploaded file.
type DocumentMetadata struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	FileName   string    `json:"file_name"`
	Size       int64     `json:"size"`
	Type       string    `json:"type"`
	UploadedAt time.Time `json:"uploaded_at"`
}

// DocumentChunk is one indexed window of a document's extracted text.
// Chunks are immutable once written.
type DocumentChunk struct {
	ID           string    `json:"id"`
	DocumentID   string    `json:"document_id"`
	DocumentName string    `json:"document_name"`
	ChunkIndex   int       `json:"chunk_index"`
	Text         string    `json:"text"`
	StartIndex   int       `json:"start_index"`
	EndIndex     int       `json:"end_index"`
	Vector       []float32 `json:"-"`
}

// ChunkID builds the deterministic chunk identifier for a document and chunk index.
func ChunkID(documentID string, chunkIndex int) string {
	return fmt.Sprintf("%s_chunk_%d", documentID, chunkIndex)
}

// SearchResult is a chunk paired with its cosine similarity to the query.
type SearchResult struct {
	Chunk DocumentChunk `json:"chunk"`
	Score float64       `json:"score"`
}

// IndexStats summarizes the vector store contents.
type IndexStats struct {
	TotalDocuments         int            `json:"total_documents"`
	TotalChunks            int            `json:"total_chunks"`
	PerDocumentChunkCounts map[string]int `json:"per_document_chunk_counts"`
}
