package llm

import (
	"context"

	"github.com/sashabaranov/go-openai/jsonschema"
)

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleTool      = "tool"
)

// Message is one entry of a conversation sent to the model.
type Message struct {
	Role       string
	Content    string
	ToolCalls  []ToolCall
	ToolCallID string
	Name       string
}

// ToolCall is a complete, model-issued request to invoke a tool.
type ToolCall struct {
	ID        string
	Name      string
	Arguments string
}

// ToolCallDelta is one streamed fragment of a tool call. Providers may split
// names and argument JSON across any number of deltas.
type ToolCallDelta struct {
	Index     *int
	ID        string
	Name      string
	Arguments string
}

// Tool declares a function the model may call.
type Tool struct {
	Name        string
	Description string
	Parameters  jsonschema.Definition
}

type ChatRequest struct {
	Model    string
	Messages []Message
	Tools    []Tool
}

// StreamResponse is a single chunk of a streamed chat completion.
type StreamResponse struct {
	Content   string
	ToolCalls []ToolCallDelta
	Done      bool
	Error     string
}

// ChatProvider streams chat completions. Implementations close ch before returning.
type ChatProvider interface {
	ChatStream(ctx context.Context, req *ChatRequest, ch chan<- StreamResponse) error
}

// Embedder maps text to a fixed-dimension vector.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}
