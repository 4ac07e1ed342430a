package repository_test

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docuchat/backend/internal/model"
	"docuchat/backend/internal/repository"
)

var documentColumns = []string{"id", "name", "file_name", "size_bytes", "mime_type", "uploaded_at"}

func setupRepository(t *testing.T) (repository.Repository, sqlmock.Sqlmock) {
	db, mockDB, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mockDB.ExpectationsWereMet())
		_ = db.Close()
	})
	return repository.NewSQLiteRepository(db), mockDB
}

func TestSQLiteRepository_CreateDocument(t *testing.T) {
	ctx := context.Background()
	uploaded := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	doc := &model.DocumentMetadata{ID: "doc1", Name: "Report", FileName: "report.pdf", Size: 1024, Type: "application/pdf", UploadedAt: uploaded}

	t.Run("Success", func(t *testing.T) {
		repo, mockDB := setupRepository(t)
		mockDB.ExpectExec(regexp.QuoteMeta("INSERT INTO documents")).
			WithArgs("doc1", "Report", "report.pdf", int64(1024), "application/pdf", uploaded).
			WillReturnResult(sqlmock.NewResult(1, 1))

		assert.NoError(t, repo.CreateDocument(ctx, doc))
	})

	t.Run("Failure - database error", func(t *testing.T) {
		repo, mockDB := setupRepository(t)
		mockDB.ExpectExec(regexp.QuoteMeta("INSERT INTO documents")).
			WillReturnError(errors.New("UNIQUE constraint failed"))

		err := repo.CreateDocument(ctx, doc)
		assert.ErrorContains(t, err, "could not insert document")
	})
}

func TestSQLiteRepository_GetDocument(t *testing.T) {
	ctx := context.Background()
	uploaded := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("Success", func(t *testing.T) {
		repo, mockDB := setupRepository(t)
		mockDB.ExpectQuery(regexp.QuoteMeta("SELECT id, name, file_name, size_bytes, mime_type, uploaded_at FROM documents WHERE id = ?")).
			WithArgs("doc1").
			WillReturnRows(sqlmock.NewRows(documentColumns).AddRow("doc1", "Report", "report.pdf", 1024, "application/pdf", uploaded))

		doc, err := repo.GetDocument(ctx, "doc1")
		require.NoError(t, err)
		assert.Equal(t, &model.DocumentMetadata{ID: "doc1", Name: "Report", FileName: "report.pdf", Size: 1024, Type: "application/pdf", UploadedAt: uploaded}, doc)
	})

	t.Run("Failure - not found", func(t *testing.T) {
		repo, mockDB := setupRepository(t)
		mockDB.ExpectQuery(regexp.QuoteMeta("FROM documents WHERE id = ?")).
			WithArgs("missing").
			WillReturnRows(sqlmock.NewRows(documentColumns))

		_, err := repo.GetDocument(ctx, "missing")
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})
}

func TestSQLiteRepository_ListDocuments(t *testing.T) {
	ctx := context.Background()
	repo, mockDB := setupRepository(t)
	now := time.Now().UTC()

	mockDB.ExpectQuery(regexp.QuoteMeta("FROM documents ORDER BY uploaded_at DESC")).
		WillReturnRows(sqlmock.NewRows(documentColumns).
			AddRow("doc2", "B", "b.txt", 10, "text/plain", now).
			AddRow("doc1", "A", "a.txt", 20, "text/plain", now.Add(-time.Hour)))

	docs, err := repo.ListDocuments(ctx)
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "doc2", docs[0].ID)
	assert.Equal(t, int64(20), docs[1].Size)
}

func TestSQLiteRepository_ListDocuments_Empty(t *testing.T) {
	repo, mockDB := setupRepository(t)
	mockDB.ExpectQuery("SELECT (.+) FROM documents").WillReturnRows(sqlmock.NewRows(documentColumns))

	docs, err := repo.ListDocuments(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, docs)
	assert.Empty(t, docs)
}

func TestSQLiteRepository_DeleteDocument(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		repo, mockDB := setupRepository(t)
		mockDB.ExpectExec(regexp.QuoteMeta("DELETE FROM documents WHERE id = ?")).
			WithArgs("doc1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.DeleteDocument(ctx, "doc1"))
	})

	t.Run("Failure - not found", func(t *testing.T) {
		repo, mockDB := setupRepository(t)
		mockDB.ExpectExec(regexp.QuoteMeta("DELETE FROM documents WHERE id = ?")).
			WithArgs("missing").
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.DeleteDocument(ctx, "missing"), repository.ErrNotFound)
	})
}
