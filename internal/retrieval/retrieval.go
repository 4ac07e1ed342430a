// Package retrieval turns a question into the grouped document context handed
// to the conversation engine.
package retrieval

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"docuchat/backend/internal/classifier"
	app_errors "docuchat/backend/internal/errors"
	"docuchat/backend/internal/llm"
	"docuchat/backend/internal/model"
	"docuchat/backend/internal/vectorstore"
)

const groupSeparator = "\n\n---\n\n"

// Options tunes retrieval. Zero values fall back to the defaults.
type Options struct {
	DefaultLimit      int
	GeneralSearchK    int
	FallbackThreshold int
	FallbackCap       int
	EmbedTimeout      time.Duration
}

func (o Options) withDefaults() Options {
	if o.DefaultLimit <= 0 {
		o.DefaultLimit = 5
	}
	if o.GeneralSearchK <= 0 {
		o.GeneralSearchK = 25
	}
	if o.FallbackThreshold <= 0 {
		o.FallbackThreshold = 10
	}
	if o.FallbackCap <= 0 {
		o.FallbackCap = 50
	}
	return o
}

// Result is the outcome of one retrieval.
type Result struct {
	Context    string
	Chunks     []model.DocumentChunk
	ChunksUsed int
	IsGeneral  bool
	// Degraded is set when search failed and the result is empty for that reason.
	Degraded bool
}

// HasContext reports whether any document text was retrieved.
func (r *Result) HasContext() bool {
	return r.Context != ""
}

// Orchestrator picks a search strategy per question and assembles document context.
type Orchestrator struct {
	store    vectorstore.Store
	embedder llm.Embedder
	opts     Options
}

// NewOrchestrator creates an Orchestrator that searches store with vectors from embedder.
func NewOrchestrator(store vectorstore.Store, embedder llm.Embedder, opts Options) *Orchestrator {
	return &Orchestrator{store: store, embedder: embedder, opts: opts.withDefaults()}
}

// Retrieve classifies the question, searches the given documents and builds
// the context string. It never fails: search errors produce a degraded, empty result.
func (o *Orchestrator) Retrieve(ctx context.Context, question string, documentIDs []string, limit int) *Result {
	intent := classifier.Classify(question)
	result := &Result{IsGeneral: intent == classifier.General, Chunks: []model.DocumentChunk{}}

	if len(documentIDs) == 0 {
		return result
	}
	if limit <= 0 {
		limit = o.opts.DefaultLimit
	}

	chunks, err := o.search(ctx, question, documentIDs, limit, result.IsGeneral)
	if err != nil {
		slog.Warn("Document search failed, continuing without document context", "error", err)
		result.Degraded = true
		return result
	}

	result.Chunks = chunks
	result.ChunksUsed = len(chunks)
	result.Context = BuildContext(chunks)
	slog.Debug("Retrieved document context", "intent", intent.String(), "chunks", len(chunks), "documents", len(documentIDs))
	return result
}

func (o *Orchestrator) search(ctx context.Context, question string, documentIDs []string, limit int, general bool) ([]model.DocumentChunk, error) {
	k := limit
	if general {
		k = o.opts.GeneralSearchK
	}

	results, err := o.Search(ctx, question, k, documentIDs)
	if err != nil {
		return nil, err
	}

	chunks := make([]model.DocumentChunk, len(results))
	for i, r := range results {
		chunks[i] = r.Chunk
	}

	if general && len(chunks) < o.opts.FallbackThreshold {
		all, err := o.store.AllChunks(ctx, documentIDs, o.opts.FallbackCap)
		if err != nil {
			return nil, fmt.Errorf("failed to load all chunks: %w", err)
		}
		slog.Debug("Sparse matches for general question, using all chunks",
			"matches", len(chunks), "threshold", o.opts.FallbackThreshold, "chunks", len(all))
		return all, nil
	}
	return chunks, nil
}

// Search embeds query and runs a similarity search over the given documents.
func (o *Orchestrator) Search(ctx context.Context, query string, k int, documentIDs []string) ([]model.SearchResult, error) {
	embedCtx := ctx
	if o.opts.EmbedTimeout > 0 {
		var cancel context.CancelFunc
		embedCtx, cancel = context.WithTimeout(ctx, o.opts.EmbedTimeout)
		defer cancel()
	}

	vec, err := o.embedder.Embed(embedCtx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to embed query: %w", app_errors.ErrExternalService, err)
	}
	return o.store.Search(ctx, vec, k, documentIDs)
}

// BuildContext groups chunk texts under a header per document name, keeping
// the order in which documents first appear.
func BuildContext(chunks []model.DocumentChunk) string {
	if len(chunks) == 0 {
		return ""
	}

	var order []string
	groups := make(map[string][]string)
	for _, c := range chunks {
		if _, ok := groups[c.DocumentName]; !ok {
			order = append(order, c.DocumentName)
		}
		groups[c.DocumentName] = append(groups[c.DocumentName], c.Text)
	}

	sections := make([]string, len(order))
	for i, name := range order {
		sections[i] = fmt.Sprintf("[Document: %s]\n%s", name, strings.Join(groups[name], "\n\n"))
	}
	return strings.Join(sections, groupSeparator)
}
