package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/menurag"
	"github.com/fwojciec/menurag/fs"
	"github.com/fwojciec/menurag/gemini"
	"github.com/fwojciec/menurag/goquery"
	"github.com/fwojciec/menurag/htmltomarkdown"
	menuhttp "github.com/fwojciec/menurag/http"
	"github.com/fwojciec/menurag/openai"
	"github.com/fwojciec/menurag/scrape"
	menuslog "github.com/fwojciec/menurag/slog"
	"github.com/fwojciec/menurag/sqlite"
	"google.golang.org/genai"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", menurag.ErrorMessage(err))
		stop()
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// SQLite database, opened only when --store=sqlite.
	DB *sqlite.DB
}

// NewMain returns a new instance of Main.
func NewMain() *Main {
	return &Main{}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	cli := &CLI{}
	deps := &Dependencies{
		Ctx:    ctx,
		Stdin:  stdin,
		Stdout: stdout,
		Stderr: stderr,
	}

	parser, err := kong.New(cli,
		kong.Name("menurag"),
		kong.Description("Answer questions about restaurant menus."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return menurag.Errorf(menurag.EINVALID, "no command specified. Run 'menurag --help' to see available commands")
	}
	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	cmd := strings.Fields(kongCtx.Command())[0]

	deps.Logger = newLogger(stderr, cli.Verbose)
	deps.Files = NewFiles(cli.Dir)
	deps.Timeout = cli.Timeout

	switch cmd {
	case "sites":
		client := &http.Client{Timeout: cli.Timeout}
		deps.Sitemaps = menuslog.NewLoggingSitemapService(menuhttp.NewSitemapService(client), deps.Logger)
	case "scrape":
		deps.Scraper = &scrape.Scraper{
			Fetcher: menuslog.NewLoggingFetcher(menuhttp.NewFetcher(menuhttp.WithTimeout(cli.Timeout)), deps.Logger),
			Extractor: goquery.NewMenuExtractor(
				goquery.WithConverter(htmltomarkdown.NewConverter()),
			),
			RateLimiter: scrape.NewDomainLimiter(cli.RateLimit),
			Logger:      deps.Logger,
		}
	case "index", "search", "ask", "chat", "serve":
		if err := m.wireStore(cli, deps); err != nil {
			return err
		}
		defer m.Close()

		embedder, generator, err := newProvider(ctx, cli, cmd != "index" && cmd != "search")
		if err != nil {
			fmt.Fprintf(stderr, "Hint: %s\n", providerHint(cli.Provider))
			return err
		}
		deps.Embedder = menuslog.NewLoggingEmbedder(embedder, deps.Logger)
		if generator != nil {
			deps.Generator = menuslog.NewLoggingGenerator(generator, deps.Logger)
		}
	}

	return kongCtx.Run(deps)
}

// wireStore opens the artifact store selected by --store.
func (m *Main) wireStore(cli *CLI, deps *Dependencies) error {
	switch cli.Store {
	case StoreSQLite:
		if err := os.MkdirAll(cli.Dir, 0755); err != nil {
			return err
		}
		m.DB = sqlite.NewDB(deps.Files.Database())
		if err := m.DB.Open(); err != nil {
			return fmt.Errorf("failed to open database at %q: %w", deps.Files.Database(), err)
		}
		deps.Store = sqlite.NewArtifactStore(m.DB)
	default:
		deps.Store = fs.NewArtifactStore(deps.Files.IndexDir())
	}
	return nil
}

// newProvider builds the embedder and, when withGenerator is set, the
// generator for the selected provider.
func newProvider(ctx context.Context, cli *CLI, withGenerator bool) (menurag.Embedder, menurag.Generator, error) {
	switch cli.Provider {
	case ProviderOpenAI:
		if cli.OpenAIAPIKey == "" {
			return nil, nil, menurag.Errorf(menurag.EINVALID, "OPENAI_API_KEY not set")
		}
		cfg := openai.Config{APIKey: cli.OpenAIAPIKey, BaseURL: cli.OpenAIBaseURL}
		embedder := openai.NewEmbedder(openai.Config{APIKey: cfg.APIKey, BaseURL: cfg.BaseURL, Model: cli.EmbeddingModel})
		if !withGenerator {
			return embedder, nil, nil
		}
		cfg.Model = cli.Model
		return embedder, openai.NewGenerator(cfg), nil
	default:
		if cli.GeminiAPIKey == "" {
			return nil, nil, menurag.Errorf(menurag.EINVALID, "GEMINI_API_KEY not set")
		}
		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  cli.GeminiAPIKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to Gemini API: %w", err)
		}
		embedder := gemini.NewEmbedder(client, cli.EmbeddingModel)
		if !withGenerator {
			return embedder, nil, nil
		}
		return embedder, gemini.NewGenerator(client, cli.Model), nil
	}
}

func providerHint(provider string) string {
	if provider == ProviderOpenAI {
		return "Set OPENAI_API_KEY (and OPENAI_BASE_URL for compatible providers)"
	}
	return "Get a Gemini API key at https://aistudio.google.com/apikey and set GEMINI_API_KEY"
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// Files locates the pipeline's files inside the data directory.
type Files struct {
	Dir string
}

// NewFiles returns the file layout rooted at dir.
func NewFiles(dir string) Files {
	return Files{Dir: dir}
}

func (f Files) Sites() string         { return filepath.Join(f.Dir, "sites.yaml") }
func (f Files) Raw() string           { return filepath.Join(f.Dir, "raw_extracted_data.json") }
func (f Files) KnowledgeBase() string { return filepath.Join(f.Dir, "knowledge_base.json") }
func (f Files) Chunks() string        { return filepath.Join(f.Dir, "processed_chunks.json") }
func (f Files) IndexDir() string      { return filepath.Join(f.Dir, "index") }
func (f Files) Database() string      { return filepath.Join(f.Dir, "menurag.db") }
