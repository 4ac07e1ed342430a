package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"docuchat/backend/internal/conversation"
	app_errors "docuchat/backend/internal/errors"
	"docuchat/backend/internal/model"
	"docuchat/backend/internal/repository"
	"docuchat/backend/internal/retrieval"
	"docuchat/backend/internal/stream"
)

const documentSearchTool = "search_documents"

// RoundLimitMessage is shown to the user when the model keeps calling tools
// without producing an answer.
const RoundLimitMessage = "I'm sorry, but I couldn't finish answering within the allowed number of steps. Please try rephrasing your question."

// AskRequest is the structure for a new question from the client.
type AskRequest struct {
	Question    string   `json:"question" validate:"required,max=4000" example:"What was the revenue in Q3?"`
	DocumentIDs []string `json:"document_ids,omitempty"`
	Limit       int      `json:"limit,omitempty" validate:"omitempty,min=1,max=50" example:"5"`
}

// ChatService answers questions over the uploaded documents as a stream of events.
type ChatService struct {
	repo      repository.Repository
	retriever *retrieval.Orchestrator
	engine    *conversation.Engine
}

// NewChatService creates a new ChatService.
func NewChatService(repo repository.Repository, retriever *retrieval.Orchestrator, engine *conversation.Engine) *ChatService {
	return &ChatService{repo: repo, retriever: retriever, engine: engine}
}

// Ask answers a question over the user's documents and streams the events to
// sink. Invalid requests are rejected before anything is sent. Otherwise
// exactly one done or error event is sent and the sink is closed.
func (s *ChatService) Ask(ctx context.Context, req *AskRequest, sink stream.Sink) error {
	if req == nil || strings.TrimSpace(req.Question) == "" {
		return fmt.Errorf("%w: question is required", app_errors.ErrValidation)
	}
	if req.Limit < 0 {
		return fmt.Errorf("%w: limit must not be negative", app_errors.ErrValidation)
	}
	defer sink.Close()

	start := time.Now()
	question := strings.TrimSpace(req.Question)

	// Step 1: Retrieve document context.
	send(sink, model.ToolStart(documentSearchTool, "Searching your documents..."))
	documentIDs, err := s.resolveDocuments(ctx, req.DocumentIDs)
	var retrieved *retrieval.Result
	if err != nil {
		slog.Error("Could not resolve documents for question", "error", err)
		retrieved = &retrieval.Result{Degraded: true}
	} else {
		retrieved = s.retriever.Retrieve(ctx, question, documentIDs, req.Limit)
	}
	send(sink, model.ToolEnd(documentSearchTool, documentSearchSummary(retrieved)))

	// Step 2: Run the conversation.
	send(sink, model.Thinking("Thinking..."))
	result, err := s.engine.Run(ctx, conversation.Input{
		Question:   question,
		Context:    retrieved.Context,
		HasContext: retrieved.HasContext(),
		IsGeneral:  retrieved.IsGeneral,
	}, sink)

	// Step 3: Terminate the stream.
	if err != nil {
		slog.Warn("Question failed", "error", err, "duration", time.Since(start))
		send(sink, model.Error(publicErrorMessage(err)))
		return nil
	}

	slog.Info("Question answered",
		"documents", len(documentIDs),
		"chunks_used", retrieved.ChunksUsed,
		"general", retrieved.IsGeneral,
		"used_web_search", result.UsedWebSearch,
		"rounds", result.Rounds,
		"duration", time.Since(start))
	send(sink, model.Done(retrieved.HasContext(), retrieved.ChunksUsed, result.UsedWebSearch))
	return nil
}

// resolveDocuments returns the requested documents that exist, or every
// known document when none were requested.
func (s *ChatService) resolveDocuments(ctx context.Context, requested []string) ([]string, error) {
	docs, err := s.repo.ListDocuments(ctx)
	if err != nil {
		return nil, fmt.Errorf("could not list documents: %w", err)
	}

	known := make(map[string]bool, len(docs))
	all := make([]string, 0, len(docs))
	for _, d := range docs {
		known[d.ID] = true
		all = append(all, d.ID)
	}
	if len(requested) == 0 {
		return all, nil
	}

	ids := make([]string, 0, len(requested))
	seen := make(map[string]bool, len(requested))
	for _, id := range requested {
		if !known[id] {
			slog.Debug("Ignoring unknown document id in question", "document_id", id)
			continue
		}
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func documentSearchSummary(r *retrieval.Result) string {
	switch {
	case r.Degraded:
		return "Document search failed, continuing without document context"
	case r.ChunksUsed == 0:
		return "No relevant chunks found"
	default:
		return fmt.Sprintf("Found %d relevant chunks", r.ChunksUsed)
	}
}

// publicErrorMessage maps an error to the text shown in the error event.
func publicErrorMessage(err error) string {
	switch {
	case errors.Is(err, app_errors.ErrRoundLimitExceeded):
		return RoundLimitMessage
	case errors.Is(err, context.Canceled):
		return "The request was cancelled."
	case errors.Is(err, context.DeadlineExceeded):
		return "The language model did not respond in time. Please try again."
	case errors.Is(err, app_errors.ErrExternalService):
		return "The language model is currently unavailable. Please try again later."
	default:
		return "An unexpected error occurred while answering your question."
	}
}

// send writes an event, logging instead of failing when the client is gone.
func send(sink stream.Sink, event model.StreamEvent) {
	if err := sink.Send(event); err != nil {
		slog.Debug("Dropped stream event", "event", event.Type, "error", err)
	}
}
