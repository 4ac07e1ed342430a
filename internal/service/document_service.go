package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"docuchat/backend/internal/chunker"
	app_errors "docuchat/backend/internal/errors"
	"docuchat/backend/internal/extract"
	"docuchat/backend/internal/llm"
	"docuchat/backend/internal/model"
	"docuchat/backend/internal/repository"
	"docuchat/backend/internal/retrieval"
	"docuchat/backend/internal/vectorstore"
)

// UploadRequest carries an uploaded file. Name defaults to the file name.
type UploadRequest struct {
	FileName string
	Name     string
	Data     []byte
}

// SearchRequest is the body of a direct semantic search.
type SearchRequest struct {
	Query       string   `json:"query" validate:"required,max=4000" example:"quarterly revenue"`
	Limit       int      `json:"limit,omitempty" validate:"omitempty,min=1,max=100" example:"5"`
	DocumentIDs []string `json:"document_ids,omitempty"`
}

// DocumentOptions configures uploads, chunking and search defaults.
type DocumentOptions struct {
	UploadDir      string
	MaxUploadBytes int64
	ChunkSize      int
	ChunkOverlap   int
	SearchLimit    int
}

// DocumentService owns uploads, their metadata and their place in the index.
type DocumentService struct {
	repo      repository.Repository
	store     vectorstore.Store
	embedder  llm.Embedder
	retriever *retrieval.Orchestrator
	opts      DocumentOptions

	// Background indexing jobs started by Upload, by document id.
	wg   sync.WaitGroup
	mu   sync.Mutex
	jobs map[string]*indexJob
}

type indexJob struct {
	cancel context.CancelFunc
	done   chan struct{}
}

// NewDocumentService creates a DocumentService. Invalid chunking options fall back to the defaults.
func NewDocumentService(
	repo repository.Repository,
	store vectorstore.Store,
	embedder llm.Embedder,
	retriever *retrieval.Orchestrator,
	opts DocumentOptions,
) *DocumentService {
	if opts.ChunkSize <= 0 {
		opts.ChunkSize = chunker.DefaultChunkSize
	}
	if opts.ChunkOverlap < 0 {
		opts.ChunkOverlap = chunker.DefaultOverlap
	}
	if opts.SearchLimit <= 0 {
		opts.SearchLimit = 5
	}
	return &DocumentService{
		repo:      repo,
		store:     store,
		embedder:  embedder,
		retriever: retriever,
		opts:      opts,
		jobs:      make(map[string]*indexJob),
	}
}

// Upload stores the file and its metadata and indexes it in the background.
// Indexing failures are logged and never fail the upload.
func (s *DocumentService) Upload(ctx context.Context, req *UploadRequest) (*model.DocumentMetadata, error) {
	doc, err := s.save(ctx, req)
	if err != nil {
		return nil, err
	}

	jobCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	job := &indexJob{cancel: cancel, done: make(chan struct{})}
	s.mu.Lock()
	s.jobs[doc.ID] = job
	s.mu.Unlock()

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer s.finishJob(doc.ID, job)
		if _, err := s.indexText(jobCtx, doc, req.Data); err != nil {
			if jobCtx.Err() != nil {
				slog.Info("Background indexing cancelled", "document_id", doc.ID)
				return
			}
			slog.Error("Background indexing failed; document is stored but not searchable until re-indexed",
				"document_id", doc.ID, "error", err)
		}
	}()

	return doc, nil
}

// Ingest stores and indexes a file synchronously.
func (s *DocumentService) Ingest(ctx context.Context, req *UploadRequest) (*model.DocumentMetadata, *vectorstore.UpsertResult, error) {
	doc, err := s.save(ctx, req)
	if err != nil {
		return nil, nil, err
	}
	res, err := s.indexText(ctx, doc, req.Data)
	if err != nil {
		return doc, nil, err
	}
	return doc, res, nil
}

// Wait blocks until background indexing jobs have finished.
func (s *DocumentService) Wait() {
	s.wg.Wait()
}

func (s *DocumentService) finishJob(documentID string, job *indexJob) {
	job.cancel()
	close(job.done)
	s.mu.Lock()
	if s.jobs[documentID] == job {
		delete(s.jobs, documentID)
	}
	s.mu.Unlock()
}

// cancelIndexing stops the document's background indexing job, if any, and
// waits until it can no longer write chunks.
func (s *DocumentService) cancelIndexing(ctx context.Context, documentID string) error {
	s.mu.Lock()
	job := s.jobs[documentID]
	s.mu.Unlock()
	if job == nil {
		return nil
	}

	job.cancel()
	select {
	case <-job.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *DocumentService) save(ctx context.Context, req *UploadRequest) (*model.DocumentMetadata, error) {
	if req == nil || strings.TrimSpace(req.FileName) == "" {
		return nil, fmt.Errorf("%w: file name is required", app_errors.ErrValidation)
	}
	if len(req.Data) == 0 {
		return nil, fmt.Errorf("%w: file is empty", app_errors.ErrValidation)
	}
	if s.opts.MaxUploadBytes > 0 && int64(len(req.Data)) > s.opts.MaxUploadBytes {
		return nil, fmt.Errorf("%w: file exceeds the %d byte limit", app_errors.ErrValidation, s.opts.MaxUploadBytes)
	}
	fileName := filepath.Base(req.FileName)
	if !extract.SupportedExtension(fileName) {
		return nil, fmt.Errorf("%w: unsupported file type %q", app_errors.ErrValidation, filepath.Ext(fileName))
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		name = fileName
	}
	doc := &model.DocumentMetadata{
		ID:         uuid.NewString(),
		Name:       name,
		FileName:   fileName,
		Size:       int64(len(req.Data)),
		Type:       extract.DetectType(req.Data),
		UploadedAt: time.Now().UTC(),
	}

	if err := os.MkdirAll(s.opts.UploadDir, 0750); err != nil {
		return nil, fmt.Errorf("could not create upload directory: %w", err)
	}
	if err := os.WriteFile(s.filePath(doc), req.Data, 0640); err != nil {
		return nil, fmt.Errorf("could not store uploaded file: %w", err)
	}
	if err := s.repo.CreateDocument(ctx, doc); err != nil {
		_ = os.Remove(s.filePath(doc))
		return nil, fmt.Errorf("could not save document metadata: %w", err)
	}

	slog.Info("Document uploaded", "document_id", doc.ID, "name", doc.Name, "size", doc.Size, "type", doc.Type)
	return doc, nil
}

func (s *DocumentService) filePath(doc *model.DocumentMetadata) string {
	return filepath.Join(s.opts.UploadDir, doc.ID+strings.ToLower(filepath.Ext(doc.FileName)))
}

func (s *DocumentService) indexText(ctx context.Context, doc *model.DocumentMetadata, data []byte) (*vectorstore.UpsertResult, error) {
	text, err := extract.Extract(ctx, doc.FileName, data)
	if err != nil {
		return nil, err
	}
	return s.Index(ctx, doc.ID, doc.Name, text)
}

// Index chunks text and replaces the document's chunks in the vector store.
func (s *DocumentService) Index(ctx context.Context, documentID, documentName, text string) (*vectorstore.UpsertResult, error) {
	start := time.Now()
	spans, err := chunker.Chunk(text, s.opts.ChunkSize, s.opts.ChunkOverlap)
	if err != nil {
		return nil, err
	}

	res, err := s.store.UpsertDocument(ctx, documentID, documentName, spans, s.embedder)
	if err != nil {
		return res, fmt.Errorf("could not index document %s: %w", documentID, err)
	}

	slog.Info("Document indexed",
		"document_id", documentID,
		"chunks", len(spans),
		"inserted", res.Inserted,
		"skipped", res.Skipped,
		"removed", res.Removed,
		"duration", time.Since(start))
	return res, nil
}

// DeleteIndex removes the document's chunks from the vector store.
func (s *DocumentService) DeleteIndex(ctx context.Context, documentID string) (int, error) {
	n, err := s.store.DeleteDocument(ctx, documentID)
	if err != nil {
		return 0, fmt.Errorf("could not delete index of document %s: %w", documentID, err)
	}
	return n, nil
}

// Reindex extracts the stored file again and rebuilds its chunks.
func (s *DocumentService) Reindex(ctx context.Context, documentID string) (*vectorstore.UpsertResult, error) {
	doc, err := s.Get(ctx, documentID)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.filePath(doc))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: stored file for document %s", app_errors.ErrNotFound, documentID)
		}
		return nil, fmt.Errorf("could not read stored file: %w", err)
	}
	return s.indexText(ctx, doc, data)
}

func (s *DocumentService) List(ctx context.Context) ([]*model.DocumentMetadata, error) {
	return s.repo.ListDocuments(ctx)
}

func (s *DocumentService) Get(ctx context.Context, documentID string) (*model.DocumentMetadata, error) {
	doc, err := s.repo.GetDocument(ctx, documentID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: document %s", app_errors.ErrNotFound, documentID)
		}
		return nil, fmt.Errorf("could not get document: %w", err)
	}
	return doc, nil
}

// Delete removes a document's index, stored file and metadata.
func (s *DocumentService) Delete(ctx context.Context, documentID string) error {
	doc, err := s.Get(ctx, documentID)
	if err != nil {
		return err
	}

	if err := s.cancelIndexing(ctx, documentID); err != nil {
		return fmt.Errorf("could not stop indexing of document %s: %w", documentID, err)
	}
	removed, err := s.DeleteIndex(ctx, documentID)
	if err != nil {
		return err
	}
	if err := os.Remove(s.filePath(doc)); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("Could not remove stored file", "document_id", documentID, "error", err)
	}
	if err := s.repo.DeleteDocument(ctx, documentID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("%w: document %s", app_errors.ErrNotFound, documentID)
		}
		return fmt.Errorf("could not delete document: %w", err)
	}

	slog.Info("Document deleted", "document_id", documentID, "chunks_removed", removed)
	return nil
}

// Search runs a semantic search independent of the chat flow.
func (s *DocumentService) Search(ctx context.Context, req *SearchRequest) ([]model.SearchResult, error) {
	if req == nil || strings.TrimSpace(req.Query) == "" {
		return nil, fmt.Errorf("%w: query is required", app_errors.ErrValidation)
	}
	limit := req.Limit
	if limit <= 0 {
		limit = s.opts.SearchLimit
	}

	results, err := s.retriever.Search(ctx, strings.TrimSpace(req.Query), limit, req.DocumentIDs)
	if err != nil {
		return nil, err
	}
	return results, nil
}

func (s *DocumentService) Stats(ctx context.Context) (*model.IndexStats, error) {
	return s.store.Stats(ctx)
}
