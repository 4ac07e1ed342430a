package service_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"docuchat/backend/internal/chunker"
	app_errors "docuchat/backend/internal/errors"
	"docuchat/backend/internal/llm"
	mock_llm "docuchat/backend/internal/llm/mocks"
	"docuchat/backend/internal/model"
	"docuchat/backend/internal/repository"
	mock_repo "docuchat/backend/internal/repository/mocks"
	"docuchat/backend/internal/retrieval"
	"docuchat/backend/internal/service"
	"docuchat/backend/internal/vectorstore"
)

type documentFixture struct {
	svc       *service.DocumentService
	repo      *mock_repo.MockRepository
	embedder  *mock_llm.MockEmbedder
	store     *vectorstore.MemoryStore
	uploadDir string
}

func setupDocumentService(t *testing.T) documentFixture {
	f := documentFixture{
		repo:      mock_repo.NewMockRepository(t),
		embedder:  mock_llm.NewMockEmbedder(t),
		store:     vectorstore.NewMemoryStore(vectorstore.Options{}),
		uploadDir: filepath.Join(t.TempDir(), "uploads"),
	}
	retriever := retrieval.NewOrchestrator(f.store, f.embedder, retrieval.Options{})
	f.svc = service.NewDocumentService(f.repo, f.store, f.embedder, retriever, service.DocumentOptions{
		UploadDir:      f.uploadDir,
		MaxUploadBytes: 1 << 20,
		ChunkSize:      100,
		ChunkOverlap:   20,
		SearchLimit:    5,
	})
	return f
}

func TestDocumentService_UploadIndexesInBackground(t *testing.T) {
	ctx := context.Background()
	f := setupDocumentService(t)

	var saved *model.DocumentMetadata
	f.repo.On("CreateDocument", ctx, mock.AnythingOfType("*model.DocumentMetadata")).
		Run(func(args mock.Arguments) { saved = args.Get(1).(*model.DocumentMetadata) }).
		Return(nil).Once()
	f.embedder.On("Embed", mock.Anything, mock.Anything).Return([]float32{1, 0, 0}, nil)

	text := strings.Repeat("Quarterly revenue grew steadily. ", 10)
	doc, err := f.svc.Upload(ctx, &service.UploadRequest{FileName: "report.txt", Data: []byte(text)})
	require.NoError(t, err)
	f.svc.Wait()

	assert.Equal(t, saved, doc)
	assert.Equal(t, "report.txt", doc.Name)
	assert.Equal(t, int64(len(text)), doc.Size)
	assert.Equal(t, "text/plain; charset=utf-8", doc.Type)
	assert.FileExists(t, filepath.Join(f.uploadDir, doc.ID+".txt"))

	stats, err := f.store.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.TotalDocuments)
	spans, err := chunker.Chunk(strings.TrimSpace(text), 100, 20)
	require.NoError(t, err)
	assert.Equal(t, len(spans), stats.PerDocumentChunkCounts[doc.ID])
}

func TestDocumentService_UploadSurvivesIndexingFailure(t *testing.T) {
	ctx := context.Background()
	f := setupDocumentService(t)

	f.repo.On("CreateDocument", ctx, mock.Anything).Return(nil).Once()
	f.embedder.On("Embed", mock.Anything, mock.Anything).Return([]float32{1}, nil).Once()
	f.embedder.On("Embed", mock.Anything, mock.Anything).Return([]float32{1, 2}, nil)

	doc, err := f.svc.Upload(ctx, &service.UploadRequest{FileName: "notes.md", Name: "Notes", Data: []byte(strings.Repeat("x", 300))})
	require.NoError(t, err)
	f.svc.Wait()

	assert.Equal(t, "Notes", doc.Name)
	stats, err := f.store.Stats(ctx)
	require.NoError(t, err)
	assert.Zero(t, stats.PerDocumentChunkCounts[doc.ID])
}

func TestDocumentService_UploadValidation(t *testing.T) {
	f := setupDocumentService(t)
	ctx := context.Background()

	cases := map[string]*service.UploadRequest{
		"missing name":     {Data: []byte("x")},
		"empty file":       {FileName: "a.txt"},
		"unsupported type": {FileName: "a.exe", Data: []byte("MZ")},
		"too large":        {FileName: "a.txt", Data: make([]byte, 2<<20)},
	}
	for name, req := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := f.svc.Upload(ctx, req)
			assert.ErrorIs(t, err, app_errors.ErrValidation)
		})
	}
}

func TestDocumentService_UploadMetadataFailureRemovesFile(t *testing.T) {
	ctx := context.Background()
	f := setupDocumentService(t)
	f.repo.On("CreateDocument", ctx, mock.Anything).Return(errors.New("disk full")).Once()

	_, err := f.svc.Upload(ctx, &service.UploadRequest{FileName: "a.txt", Data: []byte("hello")})
	require.Error(t, err)

	entries, err := os.ReadDir(f.uploadDir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestDocumentService_IngestAndReindex(t *testing.T) {
	ctx := context.Background()
	f := setupDocumentService(t)

	var saved *model.DocumentMetadata
	f.repo.On("CreateDocument", ctx, mock.Anything).
		Run(func(args mock.Arguments) { saved = args.Get(1).(*model.DocumentMetadata) }).
		Return(nil).Once()
	f.embedder.On("Embed", mock.Anything, mock.Anything).Return([]float32{0, 1}, nil)

	doc, res, err := f.svc.Ingest(ctx, &service.UploadRequest{FileName: "a.txt", Data: []byte(strings.Repeat("word ", 50))})
	require.NoError(t, err)
	assert.Equal(t, 0, res.Removed)
	inserted := res.Inserted
	assert.Positive(t, inserted)

	f.repo.On("GetDocument", ctx, doc.ID).Return(saved, nil).Once()
	res, err = f.svc.Reindex(ctx, doc.ID)
	require.NoError(t, err)
	assert.Equal(t, inserted, res.Removed)
	assert.Equal(t, inserted, res.Inserted)
}

func TestDocumentService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		f := setupDocumentService(t)
		doc := &model.DocumentMetadata{ID: "doc1", Name: "A", FileName: "a.txt"}
		require.NoError(t, os.MkdirAll(f.uploadDir, 0750))
		require.NoError(t, os.WriteFile(filepath.Join(f.uploadDir, "doc1.txt"), []byte("hello"), 0640))

		f.embedder.On("Embed", mock.Anything, mock.Anything).Return([]float32{1}, nil)
		_, err := f.svc.Index(ctx, "doc1", "A", "hello world")
		require.NoError(t, err)

		f.repo.On("GetDocument", ctx, "doc1").Return(doc, nil).Once()
		f.repo.On("DeleteDocument", ctx, "doc1").Return(nil).Once()

		require.NoError(t, f.svc.Delete(ctx, "doc1"))
		assert.NoFileExists(t, filepath.Join(f.uploadDir, "doc1.txt"))
		stats, err := f.store.Stats(ctx)
		require.NoError(t, err)
		assert.Zero(t, stats.TotalChunks)
	})

	t.Run("Failure - not found", func(t *testing.T) {
		f := setupDocumentService(t)
		f.repo.On("GetDocument", ctx, "missing").Return(nil, repository.ErrNotFound).Once()

		err := f.svc.Delete(ctx, "missing")
		assert.ErrorIs(t, err, app_errors.ErrNotFound)
	})
}

// gatedStore holds UpsertDocument until released or cancelled, standing in
// for a slow extraction or embedding step.
type gatedStore struct {
	vectorstore.Store
	entered chan struct{}
	release chan struct{}
}

func (g *gatedStore) UpsertDocument(ctx context.Context, documentID, documentName string, spans []chunker.Span, embedder llm.Embedder) (*vectorstore.UpsertResult, error) {
	close(g.entered)
	select {
	case <-g.release:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	return g.Store.UpsertDocument(ctx, documentID, documentName, spans, embedder)
}

func TestDocumentService_DeleteStopsBackgroundIndexing(t *testing.T) {
	ctx := context.Background()
	f := setupDocumentService(t)
	store := &gatedStore{Store: f.store, entered: make(chan struct{}), release: make(chan struct{})}
	retriever := retrieval.NewOrchestrator(store, f.embedder, retrieval.Options{})
	svc := service.NewDocumentService(f.repo, store, f.embedder, retriever, service.DocumentOptions{
		UploadDir:    f.uploadDir,
		ChunkSize:    100,
		ChunkOverlap: 20,
	})

	var saved *model.DocumentMetadata
	f.repo.On("CreateDocument", ctx, mock.Anything).
		Run(func(args mock.Arguments) { saved = args.Get(1).(*model.DocumentMetadata) }).
		Return(nil).Once()
	f.embedder.On("Embed", mock.Anything, mock.Anything).Return([]float32{1, 0}, nil).Maybe()

	doc, err := svc.Upload(ctx, &service.UploadRequest{FileName: "a.txt", Data: []byte("hello world")})
	require.NoError(t, err)
	<-store.entered

	f.repo.On("GetDocument", ctx, doc.ID).Return(saved, nil).Once()
	f.repo.On("DeleteDocument", ctx, doc.ID).Return(nil).Once()

	deleted := make(chan error, 1)
	go func() { deleted <- svc.Delete(ctx, doc.ID) }()
	select {
	case err := <-deleted:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Delete did not return while indexing was in flight")
	}

	close(store.release)
	svc.Wait()

	stats, err := f.store.Stats(ctx)
	require.NoError(t, err)
	assert.Zero(t, stats.PerDocumentChunkCounts[doc.ID])
	assert.Zero(t, stats.TotalChunks)
}

func TestDocumentService_IndexRejectsInvalidChunking(t *testing.T) {
	f := setupDocumentService(t)
	retriever := retrieval.NewOrchestrator(f.store, f.embedder, retrieval.Options{})
	svc := service.NewDocumentService(f.repo, f.store, f.embedder, retriever, service.DocumentOptions{ChunkSize: 10, ChunkOverlap: 10})

	_, err := svc.Index(context.Background(), "doc1", "A", "some text")
	assert.ErrorIs(t, err, app_errors.ErrValidation)
}

func TestDocumentService_DeleteIndexIsIdempotent(t *testing.T) {
	f := setupDocumentService(t)
	n, err := f.svc.DeleteIndex(context.Background(), "never-indexed")
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestDocumentService_Search(t *testing.T) {
	ctx := context.Background()
	f := setupDocumentService(t)

	f.embedder.On("Embed", mock.Anything, "alpha text").Return([]float32{1, 0}, nil).Once()
	f.embedder.On("Embed", mock.Anything, "beta text").Return([]float32{0, 1}, nil).Once()
	_, err := f.svc.Index(ctx, "a", "Alpha", "alpha text")
	require.NoError(t, err)
	_, err = f.svc.Index(ctx, "b", "Beta", "beta text")
	require.NoError(t, err)

	f.embedder.On("Embed", mock.Anything, "alpha").Return([]float32{1, 0.1}, nil).Once()
	results, err := f.svc.Search(ctx, &service.SearchRequest{Query: " alpha ", Limit: 1})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Alpha", results[0].Chunk.DocumentName)

	_, err = f.svc.Search(ctx, &service.SearchRequest{Query: ""})
	assert.ErrorIs(t, err, app_errors.ErrValidation)
}

func TestDocumentService_Get(t *testing.T) {
	ctx := context.Background()
	f := setupDocumentService(t)

	f.repo.On("GetDocument", ctx, "boom").Return(nil, errors.New("io error")).Once()
	_, err := f.svc.Get(ctx, "boom")
	require.Error(t, err)
	assert.NotErrorIs(t, err, app_errors.ErrNotFound)
}
