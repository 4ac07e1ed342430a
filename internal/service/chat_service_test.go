package service_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"docuchat/backend/internal/conversation"
	app_errors "docuchat/backend/internal/errors"
	"docuchat/backend/internal/llm"
	mock_llm "docuchat/backend/internal/llm/mocks"
	"docuchat/backend/internal/model"
	mock_repo "docuchat/backend/internal/repository/mocks"
	"docuchat/backend/internal/retrieval"
	"docuchat/backend/internal/service"
	mock_store "docuchat/backend/internal/vectorstore/mocks"
	"docuchat/backend/internal/websearch"
	mock_search "docuchat/backend/internal/websearch/mocks"
)

type Mocks struct {
	repo     *mock_repo.MockRepository
	store    *mock_store.MockStore
	embedder *mock_llm.MockEmbedder
	provider *mock_llm.MockChatProvider
	searcher *mock_search.MockSearcher
}

func setupChatService(t *testing.T) (*service.ChatService, Mocks) {
	mocks := Mocks{
		repo:     mock_repo.NewMockRepository(t),
		store:    mock_store.NewMockStore(t),
		embedder: mock_llm.NewMockEmbedder(t),
		provider: mock_llm.NewMockChatProvider(t),
		searcher: mock_search.NewMockSearcher(t),
	}

	retriever := retrieval.NewOrchestrator(mocks.store, mocks.embedder, retrieval.Options{DefaultLimit: 5})
	engine := conversation.NewEngine(mocks.provider, mocks.searcher, conversation.Options{MaxRounds: 5, MaxWebResults: 5})
	return service.NewChatService(mocks.repo, retriever, engine), mocks
}

// recordingSink collects events the way an SSE writer would deliver them.
type recordingSink struct {
	mu     sync.Mutex
	events []model.StreamEvent
	closed int
}

func (s *recordingSink) Send(event model.StreamEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed > 0 {
		return errors.New("closed")
	}
	s.events = append(s.events, event)
	return nil
}

func (s *recordingSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed++
	return nil
}

func (s *recordingSink) types() []model.EventType {
	out := make([]model.EventType, len(s.events))
	for i, e := range s.events {
		out[i] = e.Type
	}
	return out
}

func (s *recordingSink) terminal() model.StreamEvent {
	return s.events[len(s.events)-1]
}

func (s *recordingSink) terminalCount() int {
	n := 0
	for _, e := range s.events {
		if e.Type.IsTerminal() {
			n++
		}
	}
	return n
}

func documents(ids ...string) []*model.DocumentMetadata {
	out := make([]*model.DocumentMetadata, len(ids))
	for i, id := range ids {
		out[i] = &model.DocumentMetadata{ID: id, Name: "Doc " + id}
	}
	return out
}

func answer(text string) func(mock.Arguments) {
	return func(args mock.Arguments) {
		ch := args.Get(2).(chan<- llm.StreamResponse)
		ch <- llm.StreamResponse{Content: text}
		ch <- llm.StreamResponse{Done: true}
		close(ch)
	}
}

func callSearchWeb(id, query string) func(mock.Arguments) {
	return func(args mock.Arguments) {
		ch := args.Get(2).(chan<- llm.StreamResponse)
		ch <- llm.StreamResponse{ToolCalls: []llm.ToolCallDelta{{ID: id, Name: "search_web", Arguments: `{"query":"` + query + `"}`}}}
		close(ch)
	}
}

func TestChatService_Ask_WithRelevantChunks(t *testing.T) {
	ctx := context.Background()
	chatService, mocks := setupChatService(t)
	sink := &recordingSink{}

	mocks.repo.On("ListDocuments", ctx).Return(documents("doc1"), nil).Once()
	mocks.embedder.On("Embed", mock.Anything, "What was the revenue in Q3?").Return([]float32{1, 0}, nil).Once()
	mocks.store.On("Search", mock.Anything, []float32{1, 0}, 5, []string{"doc1"}).Return([]model.SearchResult{
		{Chunk: model.DocumentChunk{DocumentID: "doc1", DocumentName: "Report", Text: "Q3 revenue was 4M."}, Score: 0.9},
		{Chunk: model.DocumentChunk{DocumentID: "doc1", DocumentName: "Report", Text: "Costs were 1M."}, Score: 0.5},
	}, nil).Once()
	mocks.provider.On("ChatStream", mock.Anything, mock.Anything, mock.Anything).Run(answer("4M.")).Return(nil).Once()

	err := chatService.Ask(ctx, &service.AskRequest{Question: "What was the revenue in Q3?"}, sink)
	require.NoError(t, err)

	assert.Equal(t, []model.StreamEvent{
		model.ToolStart("search_documents", "Searching your documents..."),
		model.ToolEnd("search_documents", "Found 2 relevant chunks"),
		model.Thinking("Thinking..."),
		model.Content("4M."),
		model.Done(true, 2, false),
	}, sink.events)
	assert.Equal(t, 1, sink.closed)

	req := mocks.provider.Calls[0].Arguments.Get(1).(*llm.ChatRequest)
	assert.Contains(t, req.Messages[0].Content, "[Document: Report]\nQ3 revenue was 4M.\n\nCosts were 1M.")
}

func TestChatService_Ask_NoMatchingChunks(t *testing.T) {
	ctx := context.Background()
	chatService, mocks := setupChatService(t)
	sink := &recordingSink{}

	mocks.repo.On("ListDocuments", ctx).Return(documents("doc1"), nil).Once()
	mocks.embedder.On("Embed", mock.Anything, mock.Anything).Return([]float32{1}, nil).Once()
	mocks.store.On("Search", mock.Anything, mock.Anything, 5, []string{"doc1"}).Return([]model.SearchResult{}, nil).Once()
	mocks.provider.On("ChatStream", mock.Anything, mock.Anything, mock.Anything).Run(answer("I don't know.")).Return(nil).Once()

	require.NoError(t, chatService.Ask(ctx, &service.AskRequest{Question: "What was the revenue in Q3?"}, sink))

	assert.Equal(t, model.ToolEnd("search_documents", "No relevant chunks found"), sink.events[1])
	assert.Equal(t, model.Done(false, 0, false), sink.terminal())

	req := mocks.provider.Calls[0].Arguments.Get(1).(*llm.ChatRequest)
	assert.Contains(t, req.Messages[0].Content, "No relevant document excerpts were found")
}

func TestChatService_Ask_UnknownDocumentsAreIgnored(t *testing.T) {
	ctx := context.Background()
	chatService, mocks := setupChatService(t)
	sink := &recordingSink{}

	mocks.repo.On("ListDocuments", ctx).Return(documents("doc1"), nil).Once()
	mocks.provider.On("ChatStream", mock.Anything, mock.Anything, mock.Anything).Run(answer("Hi.")).Return(nil).Once()

	require.NoError(t, chatService.Ask(ctx, &service.AskRequest{Question: "Hello?", DocumentIDs: []string{"ghost"}}, sink))

	assert.Equal(t, model.ToolEnd("search_documents", "No relevant chunks found"), sink.events[1])
	mocks.store.AssertNotCalled(t, "Search", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestChatService_Ask_TwoWebSearches(t *testing.T) {
	ctx := context.Background()
	chatService, mocks := setupChatService(t)
	sink := &recordingSink{}

	mocks.repo.On("ListDocuments", ctx).Return(documents("doc1"), nil).Once()
	mocks.embedder.On("Embed", mock.Anything, mock.Anything).Return([]float32{1}, nil).Once()
	mocks.store.On("Search", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return([]model.SearchResult{
		{Chunk: model.DocumentChunk{DocumentID: "doc1", DocumentName: "Report", Text: "Q3 revenue was 4M."}},
	}, nil).Once()
	mocks.provider.On("ChatStream", mock.Anything, mock.Anything, mock.Anything).Run(callSearchWeb("c1", "competitor revenue")).Return(nil).Once()
	mocks.provider.On("ChatStream", mock.Anything, mock.Anything, mock.Anything).Run(callSearchWeb("c2", "market size")).Return(nil).Once()
	mocks.provider.On("ChatStream", mock.Anything, mock.Anything, mock.Anything).Run(answer("Comparison done.")).Return(nil).Once()
	mocks.searcher.On("Search", mock.Anything, mock.Anything, 5).
		Return([]websearch.Result{{Title: "Market report", Snippet: "The market grew.", URL: "https://example.com"}}).Twice()

	require.NoError(t, chatService.Ask(ctx, &service.AskRequest{Question: "How does our revenue compare?"}, sink))

	assert.Equal(t, []model.EventType{
		model.EventToolStart, model.EventToolEnd, model.EventThinking,
		model.EventToolStart, model.EventToolEnd,
		model.EventToolStart, model.EventToolEnd,
		model.EventContent, model.EventDone,
	}, sink.types())
	assert.Equal(t, model.Done(true, 1, true), sink.terminal())
}

func TestChatService_Ask_RoundLimit(t *testing.T) {
	ctx := context.Background()
	chatService, mocks := setupChatService(t)
	sink := &recordingSink{}

	mocks.repo.On("ListDocuments", ctx).Return(documents(), nil).Once()
	mocks.provider.On("ChatStream", mock.Anything, mock.Anything, mock.Anything).Run(callSearchWeb("c", "again")).Return(nil).Times(5)
	mocks.searcher.On("Search", mock.Anything, "again", 5).
		Return([]websearch.Result{{Title: "Result", Snippet: "text", URL: "https://example.com"}}).Times(5)

	require.NoError(t, chatService.Ask(ctx, &service.AskRequest{Question: "Keep searching"}, sink))

	mocks.provider.AssertNumberOfCalls(t, "ChatStream", 5)
	assert.Equal(t, 1, sink.terminalCount())
	assert.Equal(t, model.Error(service.RoundLimitMessage), sink.terminal())
	assert.Equal(t, 1, sink.closed)
}

func TestChatService_Ask_DocumentSearchFailureDegrades(t *testing.T) {
	ctx := context.Background()
	chatService, mocks := setupChatService(t)
	sink := &recordingSink{}

	mocks.repo.On("ListDocuments", ctx).Return(documents("doc1"), nil).Once()
	mocks.embedder.On("Embed", mock.Anything, mock.Anything).Return(nil, errors.New("embedding API down")).Once()
	mocks.provider.On("ChatStream", mock.Anything, mock.Anything, mock.Anything).Run(answer("General answer.")).Return(nil).Once()

	require.NoError(t, chatService.Ask(ctx, &service.AskRequest{Question: "What was the revenue?"}, sink))

	assert.Equal(t, model.ToolEnd("search_documents", "Document search failed, continuing without document context"), sink.events[1])
	assert.Equal(t, model.Done(false, 0, false), sink.terminal())
}

func TestChatService_Ask_RepositoryFailureDegrades(t *testing.T) {
	ctx := context.Background()
	chatService, mocks := setupChatService(t)
	sink := &recordingSink{}

	mocks.repo.On("ListDocuments", ctx).Return(nil, errors.New("database is locked")).Once()
	mocks.provider.On("ChatStream", mock.Anything, mock.Anything, mock.Anything).Run(answer("ok")).Return(nil).Once()

	require.NoError(t, chatService.Ask(ctx, &service.AskRequest{Question: "q"}, sink))
	assert.Equal(t, model.ToolEnd("search_documents", "Document search failed, continuing without document context"), sink.events[1])
	assert.Equal(t, model.EventDone, sink.terminal().Type)
}

func TestChatService_Ask_ModelFailure(t *testing.T) {
	ctx := context.Background()
	chatService, mocks := setupChatService(t)
	sink := &recordingSink{}

	mocks.repo.On("ListDocuments", ctx).Return(documents(), nil).Once()
	mocks.provider.On("ChatStream", mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			ch := args.Get(2).(chan<- llm.StreamResponse)
			ch <- llm.StreamResponse{Content: "Partial "}
			close(ch)
		}).
		Return(errors.New("connection reset")).Once()

	require.NoError(t, chatService.Ask(ctx, &service.AskRequest{Question: "q"}, sink))

	assert.Equal(t, []model.EventType{
		model.EventToolStart, model.EventToolEnd, model.EventThinking, model.EventContent, model.EventError,
	}, sink.types())
	assert.Equal(t, model.Error("The language model is currently unavailable. Please try again later."), sink.terminal())
	assert.Equal(t, 1, sink.closed)
}

func TestChatService_Ask_Validation(t *testing.T) {
	chatService, _ := setupChatService(t)
	sink := &recordingSink{}

	err := chatService.Ask(context.Background(), &service.AskRequest{Question: "   "}, sink)
	assert.ErrorIs(t, err, app_errors.ErrValidation)

	err = chatService.Ask(context.Background(), &service.AskRequest{Question: "q", Limit: -1}, sink)
	assert.ErrorIs(t, err, app_errors.ErrValidation)

	assert.Empty(t, sink.events)
	assert.Zero(t, sink.closed)
}
