package api

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	app_errors "docuchat/backend/internal/errors"
	"docuchat/backend/internal/interfaces"
	"docuchat/backend/internal/service"
	"docuchat/backend/internal/stream"
)

// ChatHandler serves the streaming question endpoint.
type ChatHandler struct {
	service interfaces.ChatService
}

func NewChatHandler(svc interfaces.ChatService) *ChatHandler {
	return &ChatHandler{service: svc}
}

// HandleAsk godoc
// @Summary      Ask a question about your documents
// @Description  Retrieves relevant document chunks, lets the model optionally search the web and streams the answer as server-sent events (tool_start, tool_end, thinking, content, then exactly one done or error).
// @Tags         Chat
// @Accept       json
// @Produce      text/event-stream
// @Param        request  body      service.AskRequest  true  "Question"
// @Success      200      {object}  model.ContentEvent  "Stream of events"
// @Failure      400      {object}  ErrorResponse
// @Router       /v1/chat [post]
func (h *ChatHandler) HandleAsk(w http.ResponseWriter, r *http.Request) {
	var req service.AskRequest
	if err := decodeRequest(w, r, &req); err != nil {
		respondWithError(w, err)
		return
	}
	if strings.TrimSpace(req.Question) == "" {
		respondWithError(w, fmt.Errorf("%w: Field 'question' must not be blank", app_errors.ErrValidation))
		return
	}

	sink := stream.NewWriter(w)
	if err := h.service.Ask(r.Context(), &req, sink); err != nil {
		slog.Warn("Question rejected after stream start", "error", err)
		sendStreamError(sink, "The question could not be processed.")
		return
	}

	if r.Context().Err() != nil {
		slog.Info("Client disconnected before the answer finished.")
	}
}
