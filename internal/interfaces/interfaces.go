package interfaces

import (
	"context"

	"docuchat/backend/internal/model"
	"docuchat/backend/internal/service"
	"docuchat/backend/internal/stream"
	"docuchat/backend/internal/vectorstore"
)

// The API layer depends on these contracts rather than on the concrete services.

// ChatService answers questions over the indexed documents.
type ChatService interface {
	Ask(ctx context.Context, req *service.AskRequest, sink stream.Sink) error
}

// DocumentService manages uploads and the vector index.
type DocumentService interface {
	Upload(ctx context.Context, req *service.UploadRequest) (*model.DocumentMetadata, error)
	Ingest(ctx context.Context, req *service.UploadRequest) (*model.DocumentMetadata, *vectorstore.UpsertResult, error)
	List(ctx context.Context) ([]*model.DocumentMetadata, error)
	Get(ctx context.Context, documentID string) (*model.DocumentMetadata, error)
	Delete(ctx context.Context, documentID string) error
	Reindex(ctx context.Context, documentID string) (*vectorstore.UpsertResult, error)
	Search(ctx context.Context, req *service.SearchRequest) ([]model.SearchResult, error)
	Stats(ctx context.Context) (*model.IndexStats, error)
}

var (
	_ ChatService     = (*service.ChatService)(nil)
	_ DocumentService = (*service.DocumentService)(nil)
)
