package app

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"docuchat/backend/internal/config"
	"docuchat/backend/internal/service"
	"docuchat/backend/internal/stream"
)

// Run executes the command line and returns the process exit code.
func Run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := NewRootCommand().ExecuteContext(ctx); err != nil {
		return 1
	}
	return 0
}

// NewRootCommand builds the docuchat command tree. Without a subcommand it
// runs the HTTP server.
func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "docuchat",
		Short:        "Ask questions about your documents",
		Long:         "docuchat indexes uploaded documents and answers questions about them, searching the web when the documents are not enough.",
		SilenceUsage: true,
		RunE:         runServe,
	}

	root.PersistentFlags().String("log-level", "", "log level (DEBUG, INFO, WARN, ERROR)")
	root.PersistentFlags().String("log-format", "", "log format (json or console)")
	_ = viper.BindPFlag("LOG_LEVEL", root.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("LOG_FORMAT", root.PersistentFlags().Lookup("log-format"))

	root.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Run the HTTP API server",
			Args:  cobra.NoArgs,
			RunE:  runServe,
		},
		newIndexCommand(),
		newDocumentsCommand(),
		newDeleteCommand(),
		newSearchCommand(),
		newAskCommand(),
		newStatsCommand(),
	)
	return root
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd, false)
	if err != nil {
		return err
	}
	a, err := NewApp(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := a.Close(); err != nil {
			fmt.Fprintln(os.Stderr, "Failed to close application:", err)
		}
	}()
	return a.Serve(cmd.Context())
}

// loadConfig reads the configuration and installs the logger. CLI commands
// log warnings to stderr in console format unless configured otherwise.
func loadConfig(cmd *cobra.Command, cli bool) (*config.Config, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	out := io.Writer(os.Stdout)
	if cli {
		out = os.Stderr
		if !explicitlySet(cmd, "log-format", "LOG_FORMAT") {
			cfg.LogFormat = "console"
		}
		if !explicitlySet(cmd, "log-level", "LOG_LEVEL") {
			cfg.LogLevel = "WARN"
		}
	}
	setupLogger(out, cfg.LogLevel, cfg.LogFormat)
	logConfigSource()
	return cfg, nil
}

func explicitlySet(cmd *cobra.Command, flag, key string) bool {
	if f := cmd.Flag(flag); f != nil && f.Changed {
		return true
	}
	if _, ok := os.LookupEnv(key); ok {
		return true
	}
	return viper.InConfig(key)
}

// withApp runs fn against a fully wired application.
func withApp(cmd *cobra.Command, fn func(ctx context.Context, a *App) error) error {
	cfg, err := loadConfig(cmd, true)
	if err != nil {
		return err
	}
	a, err := NewApp(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := a.Close(); err != nil {
			cmd.PrintErrln("Failed to close application:", err)
		}
	}()
	return fn(cmd.Context(), a)
}

func newIndexCommand() *cobra.Command {
	var name string
	cmd := &cobra.Command{
		Use:   "index <file>",
		Short: "Upload and index a document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("could not read %s: %w", args[0], err)
			}
			return withApp(cmd, func(ctx context.Context, a *App) error {
				doc, res, err := a.Documents.Ingest(ctx, &service.UploadRequest{
					FileName: filepath.Base(args[0]),
					Name:     name,
					Data:     data,
				})
				if err != nil {
					return err
				}
				cmd.Printf("Indexed %s as %s: %d chunks", doc.Name, doc.ID, res.Inserted)
				if res.Skipped > 0 {
					cmd.Printf(" (%d skipped)", res.Skipped)
				}
				cmd.Println()
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "display name (defaults to the file name)")
	return cmd
}

func newDocumentsCommand() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:     "documents",
		Aliases: []string{"ls"},
		Short:   "List uploaded documents",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, func(ctx context.Context, a *App) error {
				docs, err := a.Documents.List(ctx)
				if err != nil {
					return err
				}
				if asJSON {
					return printJSON(cmd, docs)
				}
				if len(docs) == 0 {
					cmd.Println("No documents.")
					return nil
				}
				for _, d := range docs {
					cmd.Printf("%s  %-30s  %8d  %s\n", d.ID, d.Name, d.Size, d.UploadedAt.Format("2006-01-02 15:04"))
				}
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "output as JSON")
	return cmd
}

func newDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <document-id>",
		Short: "Delete a document and its index",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *App) error {
				if err := a.Documents.Delete(ctx, args[0]); err != nil {
					return err
				}
				cmd.Printf("Deleted %s\n", args[0])
				return nil
			})
		},
	}
}

func newSearchCommand() *cobra.Command {
	var (
		limit  int
		docIDs []string
		asJSON bool
	)
	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Semantic search over indexed chunks",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := strings.Join(args, " ")
			return withApp(cmd, func(ctx context.Context, a *App) error {
				results, err := a.Documents.Search(ctx, &service.SearchRequest{Query: query, Limit: limit, DocumentIDs: docIDs})
				if err != nil {
					return fmt.Errorf("search failed: %w", err)
				}
				if asJSON {
					return printJSON(cmd, results)
				}
				if len(results) == 0 {
					cmd.Println("No results found.")
					return nil
				}
				for i, r := range results {
					cmd.Printf("  [%d] %s #%d (%.3f)\n", i+1, r.Chunk.DocumentName, r.Chunk.ChunkIndex, r.Score)
					cmd.Printf("      %s\n\n", snippet(r.Chunk.Text, 200))
				}
				return nil
			})
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "maximum number of results")
	cmd.Flags().StringSliceVar(&docIDs, "doc", nil, "restrict to these document ids")
	cmd.Flags().BoolVar(&asJSON, "json", false, "output results as JSON")
	return cmd
}

func newAskCommand() *cobra.Command {
	var (
		limit   int
		docIDs  []string
		verbose bool
	)
	cmd := &cobra.Command{
		Use:   "ask <question>",
		Short: "Ask a question about your documents",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			question := strings.Join(args, " ")
			return withApp(cmd, func(ctx context.Context, a *App) error {
				sink := stream.NewConsole(cmd.OutOrStdout(), verbose)
				return a.Chat.Ask(ctx, &service.AskRequest{Question: question, DocumentIDs: docIDs, Limit: limit}, sink)
			})
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "number of chunks to retrieve")
	cmd.Flags().StringSliceVar(&docIDs, "doc", nil, "restrict to these document ids")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "show tool activity")
	return cmd
}

func newStatsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show index statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, func(ctx context.Context, a *App) error {
				stats, err := a.Documents.Stats(ctx)
				if err != nil {
					return err
				}
				cmd.Printf("Documents: %d\nChunks:    %d\n", stats.TotalDocuments, stats.TotalChunks)
				ids := make([]string, 0, len(stats.PerDocumentChunkCounts))
				for id := range stats.PerDocumentChunkCounts {
					ids = append(ids, id)
				}
				sort.Strings(ids)
				for _, id := range ids {
					cmd.Printf("  %s  %d\n", id, stats.PerDocumentChunkCounts[id])
				}
				return nil
			})
		},
	}
}

func printJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func snippet(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
