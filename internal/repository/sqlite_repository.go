package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"docuchat/backend/internal/model"
)

type sqliteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(db *sql.DB) Repository {
	return &sqliteRepository{db: db}
}

func (r *sqliteRepository) CreateDocument(ctx context.Context, doc *model.DocumentMetadata) error {
	query := "INSERT INTO documents (id, name, file_name, size_bytes, mime_type, uploaded_at) VALUES (?, ?, ?, ?, ?, ?)"
	_, err := r.db.ExecContext(ctx, query, doc.ID, doc.Name, doc.FileName, doc.Size, doc.Type, doc.UploadedAt.UTC())
	if err != nil {
		return fmt.Errorf("could not insert document: %w", err)
	}
	return nil
}

func (r *sqliteRepository) GetDocument(ctx context.Context, documentID string) (*model.DocumentMetadata, error) {
	query := "SELECT id, name, file_name, size_bytes, mime_type, uploaded_at FROM documents WHERE id = ?"
	row := r.db.QueryRowContext(ctx, query, documentID)

	var doc model.DocumentMetadata
	err := row.Scan(&doc.ID, &doc.Name, &doc.FileName, &doc.Size, &doc.Type, &doc.UploadedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("could not get document: %w", err)
	}
	return &doc, nil
}

func (r *sqliteRepository) ListDocuments(ctx context.Context) ([]*model.DocumentMetadata, error) {
	query := "SELECT id, name, file_name, size_bytes, mime_type, uploaded_at FROM documents ORDER BY uploaded_at DESC, id"
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("could not list documents: %w", err)
	}
	defer rows.Close()

	docs := []*model.DocumentMetadata{}
	for rows.Next() {
		var doc model.DocumentMetadata
		if err := rows.Scan(&doc.ID, &doc.Name, &doc.FileName, &doc.Size, &doc.Type, &doc.UploadedAt); err != nil {
			return nil, fmt.Errorf("could not scan document: %w", err)
		}
		docs = append(docs, &doc)
	}
	return docs, rows.Err()
}

func (r *sqliteRepository) DeleteDocument(ctx context.Context, documentID string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM documents WHERE id = ?", documentID)
	if err != nil {
		return fmt.Errorf("could not delete document: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("could not check deleted rows: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
