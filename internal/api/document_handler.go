package api

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	app_errors "docuchat/backend/internal/errors"
	"docuchat/backend/internal/interfaces"
	"docuchat/backend/internal/service"
)

// multipartOverhead is added to the upload limit for form boundaries and fields.
const multipartOverhead = 1 << 20

// DocumentHandler handles document management, search and index statistics.
type DocumentHandler struct {
	service        interfaces.DocumentService
	maxUploadBytes int64
}

func NewDocumentHandler(svc interfaces.DocumentService, maxUploadBytes int64) *DocumentHandler {
	return &DocumentHandler{service: svc, maxUploadBytes: maxUploadBytes}
}

// HandleUpload godoc
// @Summary      Upload a document
// @Description  Stores the file and its metadata. Indexing runs in the background unless sync=true.
// @Tags         Documents
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file    true   "Document (.txt, .md, .csv, .json, .pdf, .docx, .xlsx, .doc)"
// @Param        name  formData  string  false  "Display name"
// @Param        sync  query     bool    false  "Index before responding"
// @Success      201   {object}  model.DocumentMetadata
// @Failure      400   {object}  ErrorResponse
// @Failure      422   {object}  ErrorResponse
// @Router       /v1/documents [post]
func (h *DocumentHandler) HandleUpload(w http.ResponseWriter, r *http.Request) {
	if h.maxUploadBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes+multipartOverhead)
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respondWithError(w, fmt.Errorf("%w: file exceeds the %d byte limit", app_errors.ErrValidation, h.maxUploadBytes))
			return
		}
		respondWithError(w, fmt.Errorf("%w: a multipart 'file' field is required", app_errors.ErrValidation))
		return
	}
	defer func() {
		if cErr := file.Close(); cErr != nil {
			slog.Warn("Failed to close uploaded file", "error", cErr)
		}
	}()

	data, err := io.ReadAll(file)
	if err != nil {
		respondWithError(w, fmt.Errorf("%w: could not read uploaded file", app_errors.ErrValidation))
		return
	}

	req := &service.UploadRequest{
		FileName: header.Filename,
		Name:     r.FormValue("name"),
		Data:     data,
	}

	if sync, _ := strconv.ParseBool(r.URL.Query().Get("sync")); sync {
		doc, _, err := h.service.Ingest(r.Context(), req)
		if err != nil {
			respondWithError(w, err)
			return
		}
		respondWithJSON(w, http.StatusCreated, doc)
		return
	}

	doc, err := h.service.Upload(r.Context(), req)
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, doc)
}

// HandleListDocuments godoc
// @Summary      List documents
// @Tags         Documents
// @Produce      json
// @Success      200  {array}   model.DocumentMetadata
// @Failure      500  {object}  ErrorResponse
// @Router       /v1/documents [get]
func (h *DocumentHandler) HandleListDocuments(w http.ResponseWriter, r *http.Request) {
	docs, err := h.service.List(r.Context())
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, docs)
}

// HandleGetDocument godoc
// @Summary      Get document metadata
// @Tags         Documents
// @Produce      json
// @Param        documentID  path      string  true  "Document ID"
// @Success      200         {object}  model.DocumentMetadata
// @Failure      404         {object}  ErrorResponse
// @Router       /v1/documents/{documentID} [get]
func (h *DocumentHandler) HandleGetDocument(w http.ResponseWriter, r *http.Request) {
	doc, err := h.service.Get(r.Context(), chi.URLParam(r, "documentID"))
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, doc)
}

// HandleDeleteDocument godoc
// @Summary      Delete a document
// @Description  Removes the document's chunks, its stored file and its metadata.
// @Tags         Documents
// @Produce      json
// @Param        documentID  path      string  true  "Document ID"
// @Success      200         {object}  StatusResponse
// @Failure      404         {object}  ErrorResponse
// @Router       /v1/documents/{documentID} [delete]
func (h *DocumentHandler) HandleDeleteDocument(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "documentID")); err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, StatusResponse{Status: "ok"})
}

// HandleReindexDocument godoc
// @Summary      Re-index a document
// @Description  Extracts the stored file again and replaces all of its chunks.
// @Tags         Documents
// @Produce      json
// @Param        documentID  path      string  true  "Document ID"
// @Success      200         {object}  ReindexResponse
// @Failure      404         {object}  ErrorResponse
// @Failure      422         {object}  ErrorResponse
// @Failure      502         {object}  ErrorResponse
// @Router       /v1/documents/{documentID}/reindex [post]
func (h *DocumentHandler) HandleReindexDocument(w http.ResponseWriter, r *http.Request) {
	documentID := chi.URLParam(r, "documentID")
	res, err := h.service.Reindex(r.Context(), documentID)
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, ReindexResponse{
		DocumentID: documentID,
		Removed:    res.Removed,
		Inserted:   res.Inserted,
		Skipped:    res.Skipped,
	})
}

// HandleSearch godoc
// @Summary      Semantic search
// @Description  Returns the chunks most similar to the query, best first.
// @Tags         Search
// @Accept       json
// @Produce      json
// @Param        request  body      service.SearchRequest  true  "Query"
// @Success      200      {object}  SearchResponse
// @Failure      400      {object}  ErrorResponse
// @Failure      502      {object}  ErrorResponse
// @Router       /v1/search [post]
func (h *DocumentHandler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	var req service.SearchRequest
	if err := decodeRequest(w, r, &req); err != nil {
		respondWithError(w, err)
		return
	}
	results, err := h.service.Search(r.Context(), &req)
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, SearchResponse{Query: req.Query, Results: results})
}

// HandleStats godoc
// @Summary      Index statistics
// @Tags         Search
// @Produce      json
// @Success      200  {object}  model.IndexStats
// @Failure      500  {object}  ErrorResponse
// @Router       /v1/stats [get]
func (h *DocumentHandler) HandleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.Stats(r.Context())
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, stats)
}
