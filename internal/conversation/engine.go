// Package conversation drives the language model through bounded rounds of
// streaming completions and search_web tool calls.
package conversation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	app_errors "docuchat/backend/internal/errors"
	"docuchat/backend/internal/llm"
	"docuchat/backend/internal/model"
	"docuchat/backend/internal/websearch"
)

// DefaultMaxRounds bounds the number of model calls per question.
const DefaultMaxRounds = 5

// State is the engine's position in the tool-call loop.
type State int

const (
	StateThinking State = iota
	StateStreamingModel
	StateExecutingTool
	StateDone
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateThinking:
		return "thinking"
	case StateStreamingModel:
		return "streaming_model"
	case StateExecutingTool:
		return "executing_tool"
	case StateDone:
		return "done"
	case StateFailed:
		return "failed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Emitter receives the events produced while answering.
type Emitter interface {
	Send(event model.StreamEvent) error
}

// Input is everything the engine needs for one question.
type Input struct {
	Question   string
	Context    string
	HasContext bool
	IsGeneral  bool
}

// Result describes how a run ended.
type Result struct {
	Answer        string
	UsedWebSearch bool
	Rounds        int
	State         State
}

// Options configures the model, the round limit and the web search budget.
type Options struct {
	Model         string
	MaxRounds     int
	MaxWebResults int
	LLMTimeout    time.Duration
}

// Engine runs the bounded tool-calling conversation for one question at a time.
type Engine struct {
	provider llm.ChatProvider
	searcher websearch.Searcher
	opts     Options
}

// NewEngine creates an Engine. MaxRounds defaults to DefaultMaxRounds.
func NewEngine(provider llm.ChatProvider, searcher websearch.Searcher, opts Options) *Engine {
	if opts.MaxRounds <= 0 {
		opts.MaxRounds = DefaultMaxRounds
	}
	if opts.MaxWebResults <= 0 {
		opts.MaxWebResults = 5
	}
	return &Engine{provider: provider, searcher: searcher, opts: opts}
}

// run holds the per-request conversation state. Messages are only appended.
type run struct {
	state    State
	messages []llm.Message
	result   Result
	emitter  Emitter
}

func (r *run) transition(to State) {
	slog.Debug("Conversation state change", "from", r.state.String(), "to", to.String(), "round", r.result.Rounds)
	r.state = to
	r.result.State = to
}

// Run answers one question. Content deltas are emitted as they arrive; tool
// activity is emitted as tool_start/tool_end pairs. Terminal events are left
// to the caller. Exhausting the round limit returns ErrRoundLimitExceeded.
func (e *Engine) Run(ctx context.Context, in Input, emitter Emitter) (*Result, error) {
	r := &run{
		state: StateThinking,
		messages: []llm.Message{
			{Role: llm.RoleSystem, Content: systemPrompt(in)},
			{Role: llm.RoleUser, Content: in.Question},
		},
		emitter: emitter,
	}
	r.result.State = StateThinking

	for r.result.Rounds < e.opts.MaxRounds {
		r.result.Rounds++
		r.transition(StateStreamingModel)

		content, calls, err := e.streamRound(ctx, r)
		if err != nil {
			r.transition(StateFailed)
			return &r.result, err
		}

		if len(calls) == 0 {
			r.result.Answer = content
			r.transition(StateDone)
			return &r.result, nil
		}

		r.transition(StateExecutingTool)
		r.messages = append(r.messages, llm.Message{Role: llm.RoleAssistant, Content: content, ToolCalls: calls})
		for _, call := range calls {
			msg, err := e.executeTool(ctx, r, call)
			if err != nil {
				r.transition(StateFailed)
				return &r.result, err
			}
			r.messages = append(r.messages, msg)
		}
		r.transition(StateThinking)
	}

	r.transition(StateFailed)
	slog.Warn("Conversation reached the tool round limit", "rounds", r.result.Rounds)
	return &r.result, fmt.Errorf("%w: no final answer after %d rounds", app_errors.ErrRoundLimitExceeded, r.result.Rounds)
}

// streamRound issues one streaming completion and returns the round's content
// and finalized tool calls.
func (e *Engine) streamRound(ctx context.Context, r *run) (string, []llm.ToolCall, error) {
	roundCtx, cancel := e.roundContext(ctx)
	defer cancel()

	req := &llm.ChatRequest{
		Model:    e.opts.Model,
		Messages: r.messages,
		Tools:    []llm.Tool{searchWebTool},
	}

	streamChan := make(chan llm.StreamResponse)
	errChan := make(chan error, 1)
	go func() {
		errChan <- e.provider.ChatStream(roundCtx, req, streamChan)
	}()

	var content strings.Builder
	buffer := newToolCallBuffer()
	var roundErr error

	// The channel is always drained so the provider can finish and close it.
	for chunk := range streamChan {
		if roundErr != nil {
			continue
		}
		if chunk.Error != "" {
			roundErr = fmt.Errorf("%w: %s", app_errors.ErrExternalService, chunk.Error)
			cancel()
			continue
		}
		if chunk.Content != "" {
			if err := r.emitter.Send(model.Content(chunk.Content)); err != nil {
				roundErr = fmt.Errorf("failed to emit content: %w", err)
				cancel()
				continue
			}
			content.WriteString(chunk.Content)
		}
		for _, delta := range chunk.ToolCalls {
			buffer.add(delta)
		}
	}

	providerErr := <-errChan
	if roundErr != nil {
		return "", nil, roundErr
	}
	if providerErr != nil {
		return "", nil, e.classifyStreamError(ctx, roundCtx, providerErr)
	}

	if buffer.empty() {
		return content.String(), nil, nil
	}
	return content.String(), buffer.finalize(), nil
}

func (e *Engine) roundContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if e.opts.LLMTimeout > 0 {
		return context.WithTimeout(ctx, e.opts.LLMTimeout)
	}
	return context.WithCancel(ctx)
}

func (e *Engine) classifyStreamError(ctx, roundCtx context.Context, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	if errors.Is(roundCtx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("%w: the language model did not respond within %s: %w",
			app_errors.ErrExternalService, e.opts.LLMTimeout, context.DeadlineExceeded)
	}
	if errors.Is(err, app_errors.ErrExternalService) {
		return err
	}
	return fmt.Errorf("%w: %w", app_errors.ErrExternalService, err)
}

// executeTool runs one tool call and returns the tool message for it. Bad
// arguments and unknown tools become tool messages; only emitter and context
// failures are returned as errors.
func (e *Engine) executeTool(ctx context.Context, r *run, call llm.ToolCall) (llm.Message, error) {
	msg := llm.Message{Role: llm.RoleTool, ToolCallID: call.ID, Name: call.Name}

	if call.Name != searchWebToolName {
		slog.Warn("Model requested an unknown tool", "tool", call.Name)
		msg.Content = fmt.Sprintf("Error: unknown tool %q. The only available tool is %s.", call.Name, searchWebToolName)
		return msg, nil
	}

	args, err := parseSearchWebArgs(call.Arguments)
	if err != nil {
		slog.Warn("Invalid search_web arguments", "arguments", call.Arguments, "error", err)
		msg.Content = fmt.Sprintf("Error: could not run %s: %s", searchWebToolName, err.Error())
		return msg, nil
	}

	if err := r.emitter.Send(model.ToolStart(searchWebToolName, fmt.Sprintf("Searching the web for %q", args.Query))); err != nil {
		return msg, fmt.Errorf("failed to emit tool start: %w", err)
	}

	results := e.searcher.Search(ctx, args.Query, e.opts.MaxWebResults)
	if err := ctx.Err(); err != nil {
		return msg, err
	}
	r.result.UsedWebSearch = true

	useful := usefulResults(results)
	if len(useful) > e.opts.MaxWebResults {
		useful = useful[:e.opts.MaxWebResults]
	}
	summary := fmt.Sprintf("Found %d web results", len(useful))
	if len(useful) == 0 {
		summary = "No useful web results found"
	}
	if err := r.emitter.Send(model.ToolEnd(searchWebToolName, summary)); err != nil {
		return msg, fmt.Errorf("failed to emit tool end: %w", err)
	}

	slog.Debug("Executed search_web", "query", args.Query, "results", len(results), "useful", len(useful))
	msg.Content = formatResults(args.Query, useful, e.opts.MaxWebResults)
	return msg, nil
}
