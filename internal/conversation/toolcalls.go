package conversation

import (
	"fmt"
	"sort"
	"strings"

	"docuchat/backend/internal/llm"
)

// partialCall is a tool call still being assembled from stream deltas.
type partialCall struct {
	id        string
	name      strings.Builder
	arguments strings.Builder
}

// toolCallBuffer assembles streamed tool-call fragments for one round. Deltas
// carrying an index are grouped by it; deltas without one start a new call
// when they bring a new id and otherwise extend the most recent call.
type toolCallBuffer struct {
	calls map[int]*partialCall
	last  int
	next  int
}

func newToolCallBuffer() *toolCallBuffer {
	return &toolCallBuffer{calls: make(map[int]*partialCall), last: -1}
}

func (b *toolCallBuffer) add(d llm.ToolCallDelta) {
	key := b.keyFor(d)
	call, ok := b.calls[key]
	if !ok {
		call = &partialCall{}
		b.calls[key] = call
	}
	if call.id == "" && d.ID != "" {
		call.id = d.ID
	}
	call.name.WriteString(d.Name)
	call.arguments.WriteString(d.Arguments)

	b.last = key
	if key >= b.next {
		b.next = key + 1
	}
}

func (b *toolCallBuffer) keyFor(d llm.ToolCallDelta) int {
	if d.Index != nil {
		return *d.Index
	}
	if b.last < 0 {
		return b.next
	}
	if d.ID != "" && d.ID != b.calls[b.last].id && b.calls[b.last].id != "" {
		return b.next
	}
	return b.last
}

func (b *toolCallBuffer) empty() bool {
	return len(b.calls) == 0
}

// finalize returns the assembled calls ordered by index. Calls without an id
// get a generated one so tool results can reference them.
func (b *toolCallBuffer) finalize() []llm.ToolCall {
	keys := make([]int, 0, len(b.calls))
	for k := range b.calls {
		keys = append(keys, k)
	}
	sort.Ints(keys)

	out := make([]llm.ToolCall, 0, len(keys))
	for _, k := range keys {
		c := b.calls[k]
		id := c.id
		if id == "" {
			id = fmt.Sprintf("call_%d", k)
		}
		out = append(out, llm.ToolCall{
			ID:        id,
			Name:      strings.TrimSpace(c.name.String()),
			Arguments: c.arguments.String(),
		})
	}
	return out
}
