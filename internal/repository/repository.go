package repository

import (
	"context"

	"docuchat/backend/internal/model"
)

// Repository defines the interface for document metadata storage.
// This interface makes it easy to switch database implementations.
type Repository interface {
	CreateDocument(ctx context.Context, doc *model.DocumentMetadata) error
	GetDocument(ctx context.Context, documentID string) (*model.DocumentMetadata, error)
	// ListDocuments returns all documents, newest first.
	ListDocuments(ctx context.Context) ([]*model.DocumentMetadata, error)
	DeleteDocument(ctx context.Context, documentID string) error
}
