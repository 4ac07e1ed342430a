package model

// EventType names a server-sent event emitted while answering a question.
type EventType string

const (
	EventToolStart EventType = "tool_start"
	EventToolEnd   EventType = "tool_end"
	EventThinking  EventType = "thinking"
	EventContent   EventType = "content"
	EventDone      EventType = "done"
	EventError     EventType = "error"
)

// IsTerminal reports whether the event ends a stream.
func (t EventType) IsTerminal() bool {
	return t == EventDone || t == EventError
}

// StreamEvent is a single event in a question's event stream.
type StreamEvent struct {
	Type EventType
	Data any
}

type ToolEvent struct {
	Tool    string `json:"tool"`
	Message string `json:"message"`
}

type ThinkingEvent struct {
	Message string `json:"message"`
}

type ContentEvent struct {
	Chunk string `json:"chunk"`
}

type DoneEvent struct {
	HasContext    bool `json:"hasContext"`
	ChunksUsed    int  `json:"chunksUsed"`
	UsedWebSearch bool `json:"usedWebSearch"`
}

type ErrorEvent struct {
	Error string `json:"error"`
}

func ToolStart(tool, message string) StreamEvent {
	return StreamEvent{Type: EventToolStart, Data: ToolEvent{Tool: tool, Message: message}}
}

func ToolEnd(tool, message string) StreamEvent {
	return StreamEvent{Type: EventToolEnd, Data: ToolEvent{Tool: tool, Message: message}}
}

func Thinking(message string) StreamEvent {
	return StreamEvent{Type: EventThinking, Data: ThinkingEvent{Message: message}}
}

func Content(chunk string) StreamEvent {
	return StreamEvent{Type: EventContent, Data: ContentEvent{Chunk: chunk}}
}

func Done(hasContext bool, chunksUsed int, usedWebSearch bool) StreamEvent {
	return StreamEvent{Type: EventDone, Data: DoneEvent{HasContext: hasContext, ChunksUsed: chunksUsed, UsedWebSearch: usedWebSearch}}
}

func Error(message string) StreamEvent {
	return StreamEvent{Type: EventError, Data: ErrorEvent{Error: message}}
}
