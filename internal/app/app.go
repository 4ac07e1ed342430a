package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/m-mizutani/clog"
	"github.com/spf13/viper"

	"docuchat/backend/internal/api"
	"docuchat/backend/internal/chunker"
	"docuchat/backend/internal/config"
	"docuchat/backend/internal/conversation"
	"docuchat/backend/internal/database"
	"docuchat/backend/internal/llm"
	"docuchat/backend/internal/repository"
	"docuchat/backend/internal/retrieval"
	"docuchat/backend/internal/service"
	"docuchat/backend/internal/vectorstore"
	"docuchat/backend/internal/websearch"
)

const (
	shutdownTimeout     = 15 * time.Second
	ollamaReadyAttempts = 10
	ollamaRetryInterval = 3 * time.Second
)

// App holds the wired application. Providers are constructed once here and
// injected everywhere else.
type App struct {
	Config    *config.Config
	DB        *sql.DB
	Store     vectorstore.Store
	Documents *service.DocumentService
	Chat      *service.ChatService
	Server    *http.Server
}

// NewApp validates cfg and wires every component of the application.
func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	if err := chunker.ValidateParams(cfg.ChunkSize, cfg.ChunkOverlap); err != nil {
		return nil, fmt.Errorf("invalid CHUNK_SIZE/CHUNK_OVERLAP: %w", err)
	}

	db, err := database.InitDB(cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	slog.Debug("Connected to SQLite database", "path", cfg.DatabasePath)

	store, err := newVectorStore(ctx, cfg, db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	searcher, err := websearch.NewGoogleSearcher(ctx, websearch.GoogleConfig{
		APIKey:   cfg.GoogleAPIKey,
		EngineID: cfg.GoogleSearchEngineID,
		Timeout:  cfg.WebSearchTimeout,
	})
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	provider, err := newProvider(ctx, cfg)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	repo := repository.NewSQLiteRepository(db)
	retriever := retrieval.NewOrchestrator(store, provider, retrieval.Options{
		DefaultLimit:      cfg.SearchLimit,
		GeneralSearchK:    cfg.GeneralSearchK,
		FallbackThreshold: cfg.GeneralFallbackThreshold,
		FallbackCap:       cfg.GeneralFallbackCap,
		EmbedTimeout:      cfg.EmbedTimeout,
	})
	engine := conversation.NewEngine(provider, searcher, conversation.Options{
		Model:         cfg.ChatModel,
		MaxRounds:     cfg.MaxToolRounds,
		MaxWebResults: cfg.WebSearchMaxResults,
		LLMTimeout:    cfg.LLMTimeout,
	})

	documents := service.NewDocumentService(repo, store, provider, retriever, service.DocumentOptions{
		UploadDir:      cfg.UploadDir,
		MaxUploadBytes: cfg.MaxUploadBytes,
		ChunkSize:      cfg.ChunkSize,
		ChunkOverlap:   cfg.ChunkOverlap,
		SearchLimit:    cfg.SearchLimit,
	})
	chat := service.NewChatService(repo, retriever, engine)

	router := api.NewRouter(
		api.NewChatHandler(chat),
		api.NewDocumentHandler(documents, cfg.MaxUploadBytes),
	)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.AppPort),
		Handler:           router,
		ReadHeaderTimeout: 20 * time.Second,
		WriteTimeout:      0, // Disabled for streaming endpoints
		IdleTimeout:       120 * time.Second,
	}

	return &App{
		Config:    cfg,
		DB:        db,
		Store:     store,
		Documents: documents,
		Chat:      chat,
		Server:    server,
	}, nil
}

// modelProvider is what the application needs from a model backend.
type modelProvider interface {
	llm.ChatProvider
	llm.Embedder
}

func newProvider(ctx context.Context, cfg *config.Config) (modelProvider, error) {
	switch strings.ToLower(cfg.LLMProvider) {
	case "", "openai":
		if cfg.OpenAIAPIKey == "" {
			slog.Warn("OPENAI_API_KEY is not set; embedding and chat requests will fail unless the endpoint needs no key.")
		}
		return llm.NewOpenAIProvider(llm.OpenAIConfig{
			BaseURL:        cfg.OpenAIBaseURL,
			APIKey:         cfg.OpenAIAPIKey,
			ChatModel:      cfg.ChatModel,
			EmbeddingModel: cfg.EmbeddingModel,
			Dimensions:     cfg.EmbeddingDimensions,
			MaxInput:       cfg.EmbeddingMaxInput,
		}), nil
	case "ollama":
		provider := llm.NewOllamaProvider(llm.OllamaConfig{
			URL:            cfg.OllamaURL,
			ChatModel:      cfg.ChatModel,
			EmbeddingModel: cfg.EmbeddingModel,
			MaxInput:       cfg.EmbeddingMaxInput,
		})
		waitForOllama(ctx, provider, cfg.OllamaURL)
		return provider, nil
	default:
		return nil, fmt.Errorf("unknown LLM_PROVIDER %q (want openai or ollama)", cfg.LLMProvider)
	}
}

// waitForOllama polls the server for a short while so a freshly started
// container has time to come up. It only warns when Ollama stays unreachable.
func waitForOllama(ctx context.Context, provider *llm.OllamaProvider, url string) {
	slog.Info("Waiting for Ollama to be ready...", "url", url)
	for attempt := 1; attempt <= ollamaReadyAttempts; attempt++ {
		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		err := provider.Ping(pingCtx)
		cancel()
		if err == nil {
			slog.Info("Ollama is ready.")
			return
		}
		slog.Debug("Ollama not ready yet", "attempt", attempt, "error", err)

		select {
		case <-ctx.Done():
			return
		case <-time.After(ollamaRetryInterval):
		}
	}
	slog.Warn("Ollama did not become ready; requests will fail until it is reachable.", "url", url)
}

func newVectorStore(ctx context.Context, cfg *config.Config, db *sql.DB) (vectorstore.Store, error) {
	opts := vectorstore.Options{
		BatchSize:    cfg.EmbedBatchSize,
		Dimensions:   cfg.EmbeddingDimensions,
		EmbedTimeout: cfg.EmbedTimeout,
	}
	switch strings.ToLower(cfg.VectorStore) {
	case "", "sqlite":
		store, err := vectorstore.NewSQLiteStore(ctx, db, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to open vector store: %w", err)
		}
		return store, nil
	case "memory":
		slog.Warn("Using the in-memory vector store; the index is lost on restart.")
		return vectorstore.NewMemoryStore(opts), nil
	default:
		return nil, fmt.Errorf("unknown VECTOR_STORE %q (want sqlite or memory)", cfg.VectorStore)
	}
}

// Serve runs the HTTP server until ctx is cancelled, then shuts it down and
// waits for background indexing to finish.
func (a *App) Serve(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		slog.Info("Starting server", "addr", a.Server.Addr, "vector_store", a.Config.VectorStore)
		if err := a.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	slog.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := a.Server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Graceful shutdown failed", "error", err)
	}
	a.Documents.Wait()
	return nil
}

// Close waits for background indexing and releases the store and database.
func (a *App) Close() error {
	a.Documents.Wait()
	return errors.Join(a.Store.Close(), a.DB.Close())
}

func logConfigSource() {
	configFileUsed := viper.ConfigFileUsed()
	if configFileUsed != "" {
		slog.Info("Successfully loaded configuration from file.", "file", configFileUsed)
	} else {
		slog.Debug("Configuration file not found. Using environment variables and defaults.")
	}
}

func parseLevel(logLevel string) slog.Level {
	switch strings.ToUpper(logLevel) {
	case "DEBUG":
		return slog.LevelDebug
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// setupLogger installs the default logger: JSON lines for servers, or a
// colored console format for interactive use.
func setupLogger(w io.Writer, logLevel, format string) {
	if w == nil {
		w = os.Stdout
	}
	level := parseLevel(logLevel)

	var handler slog.Handler
	switch strings.ToLower(format) {
	case "console", "text":
		handler = clog.New(
			clog.WithWriter(w),
			clog.WithLevel(level),
			clog.WithTimeFmt("15:04:05"),
			clog.WithSource(false),
		)
	default:
		handler = slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	}
	slog.SetDefault(slog.New(handler))
}
