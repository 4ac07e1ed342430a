package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	app_errors "docuchat/backend/internal/errors"
)

// newTestOllama points an OllamaProvider at a mock Ollama server.
func newTestOllama(t *testing.T, handler http.HandlerFunc) *OllamaProvider {
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewOllamaProvider(OllamaConfig{
		URL:            server.URL + "/",
		ChatModel:      "llama3.2",
		EmbeddingModel: "nomic-embed-text",
		MaxInput:       5,
	})
}

func writeNDJSON(t *testing.T, w http.ResponseWriter, lines ...string) {
	w.Header().Set("Content-Type", "application/x-ndjson")
	w.WriteHeader(http.StatusOK)
	for _, l := range lines {
		_, err := fmt.Fprintln(w, l)
		assert.NoError(t, err)
	}
}

func TestOllamaProvider_ChatStream(t *testing.T) {
	t.Run("Content and whole tool calls", func(t *testing.T) {
		var captured ollamaChatRequest
		provider := newTestOllama(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/api/chat", r.URL.Path)
			require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))

			writeNDJSON(t, w,
				`{"message":{"role":"assistant","content":"Let me "},"done":false}`,
				`{"message":{"role":"assistant","content":"","tool_calls":[{"function":{"name":"search_web","arguments":{"query":"go 1.24"}}}]},"done":false}`,
				`{"message":{"role":"assistant","content":""},"done":true}`,
			)
		})

		ch := make(chan StreamResponse, 8)
		err := provider.ChatStream(context.Background(), &ChatRequest{
			Messages: []Message{
				{Role: RoleUser, Content: "hi"},
				{Role: RoleAssistant, ToolCalls: []ToolCall{{ID: "call_0", Name: "search_web", Arguments: `{"query":"x"}`}}},
				{Role: RoleTool, Name: "search_web", ToolCallID: "call_0", Content: "results"},
			},
			Tools: []Tool{{Name: "search_web", Description: "search"}},
		}, ch)
		require.NoError(t, err)

		chunks := collect(ch)
		require.Len(t, chunks, 3)
		assert.Equal(t, "Let me ", chunks[0].Content)
		require.Len(t, chunks[1].ToolCalls, 1)
		require.NotNil(t, chunks[1].ToolCalls[0].Index)
		assert.Equal(t, 0, *chunks[1].ToolCalls[0].Index)
		assert.Equal(t, "search_web", chunks[1].ToolCalls[0].Name)
		assert.JSONEq(t, `{"query":"go 1.24"}`, chunks[1].ToolCalls[0].Arguments)
		assert.True(t, chunks[2].Done)

		assert.Equal(t, "llama3.2", captured.Model)
		assert.True(t, captured.Stream)
		require.Len(t, captured.Tools, 1)
		assert.Equal(t, "function", captured.Tools[0].Type)
		require.Len(t, captured.Messages, 3)
		assert.JSONEq(t, `{"query":"x"}`, string(captured.Messages[1].ToolCalls[0].Function.Arguments))
		assert.Equal(t, "search_web", captured.Messages[2].ToolName)
	})

	t.Run("Error line", func(t *testing.T) {
		provider := newTestOllama(t, func(w http.ResponseWriter, r *http.Request) {
			writeNDJSON(t, w, `{"error":"model not found"}`)
		})

		ch := make(chan StreamResponse, 4)
		err := provider.ChatStream(context.Background(), &ChatRequest{}, ch)
		assert.ErrorIs(t, err, app_errors.ErrExternalService)
		assert.ErrorContains(t, err, "model not found")
		assert.Empty(t, collect(ch))
	})

	t.Run("Non-200 status", func(t *testing.T) {
		provider := newTestOllama(t, func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "busy", http.StatusServiceUnavailable)
		})

		ch := make(chan StreamResponse, 4)
		err := provider.ChatStream(context.Background(), &ChatRequest{}, ch)
		assert.ErrorIs(t, err, app_errors.ErrExternalService)
		assert.ErrorContains(t, err, "503")
	})
}

func TestOllamaProvider_Embed(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		var captured map[string]any
		provider := newTestOllama(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/embed", r.URL.Path)
			require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
			_, _ = w.Write([]byte(`{"model":"nomic-embed-text","embeddings":[[0.1,0.2,0.3]]}`))
		})

		vec, err := provider.Embed(context.Background(), "truncated input")
		require.NoError(t, err)
		assert.Equal(t, []float32{0.1, 0.2, 0.3}, vec)
		assert.Equal(t, "trunc", captured["input"])
		assert.Equal(t, "nomic-embed-text", captured["model"])
	})

	t.Run("Empty response", func(t *testing.T) {
		provider := newTestOllama(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"embeddings":[]}`))
		})

		_, err := provider.Embed(context.Background(), "x")
		assert.ErrorIs(t, err, app_errors.ErrExternalService)
	})
}

func TestOllamaProvider_Ping(t *testing.T) {
	provider := newTestOllama(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("Ollama is running"))
	})
	assert.NoError(t, provider.Ping(context.Background()))
}
