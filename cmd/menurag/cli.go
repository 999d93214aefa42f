package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/menurag"
	"github.com/fwojciec/menurag/rag"
	"github.com/fwojciec/menurag/scrape"
)

// Store and provider names accepted on the command line.
const (
	StoreFS        = "fs"
	StoreSQLite    = "sqlite"
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx       context.Context
	Stdin     io.Reader
	Stdout    io.Writer
	Stderr    io.Writer
	Logger    *slog.Logger
	Files     Files
	Timeout   time.Duration
	Sitemaps  menurag.SitemapService
	Scraper   *scrape.Scraper
	Embedder  menurag.Embedder
	Generator menurag.Generator
	Store     menurag.ArtifactStore
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Dir            string        `short:"d" default:"data" env:"MENURAG_DIR" help:"Data directory for pipeline files and the index"`
	Store          string        `enum:"fs,sqlite" default:"fs" env:"MENURAG_STORE" help:"Index storage backend (fs, sqlite)"`
	Provider       string        `enum:"gemini,openai" default:"gemini" env:"MENURAG_PROVIDER" help:"Model provider (gemini, openai)"`
	Model          string        `env:"MENURAG_MODEL" help:"Generation model (provider default if empty)"`
	EmbeddingModel string        `env:"MENURAG_EMBEDDING_MODEL" help:"Embedding model (provider default if empty)"`
	GeminiAPIKey   string        `name:"gemini-api-key" env:"GEMINI_API_KEY" help:"Gemini API key"`
	OpenAIAPIKey   string        `name:"openai-api-key" env:"OPENAI_API_KEY" help:"OpenAI API key"`
	OpenAIBaseURL  string        `name:"openai-base-url" env:"OPENAI_BASE_URL" help:"OpenAI-compatible API base URL"`
	Timeout        time.Duration `default:"60s" help:"Timeout for each network or model call"`
	RateLimit      float64       `default:"1" help:"Requests per second per host when scraping (0 for no limit)"`
	Verbose        bool          `short:"v" help:"Enable debug logging"`

	Sites     SitesCmd     `cmd:"" help:"Discover restaurant sites from a sitemap"`
	Scrape    ScrapeCmd    `cmd:"" help:"Scrape menus from the site list"`
	Normalize NormalizeCmd `cmd:"" help:"Normalize scraped data into the knowledge base"`
	Index     IndexCmd     `cmd:"" help:"Embed the knowledge base and build the index"`
	Search    SearchCmd    `cmd:"" help:"Show the menu items most similar to a query"`
	Ask       AskCmd       `cmd:"" help:"Ask a question about the menus"`
	Chat      ChatCmd      `cmd:"" help:"Start an interactive chat session"`
	Serve     ServeCmd     `cmd:"" help:"Serve the chatbot over HTTP"`
}

// SitesCmd is the "sites" subcommand.
type SitesCmd struct {
	URL     string `default:"https://www.eatsure.com/sitemaps/brands.xml" help:"Brands sitemap URL"`
	Max     int    `short:"n" default:"10" help:"Maximum number of restaurants (0 for no limit)"`
	PerName int    `default:"2" help:"Maximum locations per restaurant (0 for no limit)"`

	Include []string `help:"Only keep URLs matching these regular expressions"`
	Exclude []string `help:"Drop URLs matching these regular expressions"`
}

// ScrapeCmd is the "scrape" subcommand.
type ScrapeCmd struct {
	Concurrency int `short:"c" default:"4" help:"Concurrent fetch limit"`
}

// NormalizeCmd is the "normalize" subcommand.
type NormalizeCmd struct{}

// IndexCmd is the "index" subcommand.
type IndexCmd struct {
	BatchSize int  `default:"100" help:"Texts per embedding request"`
	Chunks    bool `help:"Also write the embedded search texts to processed_chunks.json"`
}

// SearchCmd is the "search" subcommand.
type SearchCmd struct {
	Query string `arg:"" help:"Search query"`
	K     int    `short:"k" default:"5" help:"Number of results"`
}

// AskCmd is the "ask" subcommand.
type AskCmd struct {
	Question string `arg:"" help:"Question about the menus"`
	TopK     int    `default:"50" help:"Menu items retrieved as context"`
}

// ChatCmd is the "chat" subcommand.
type ChatCmd struct {
	TopK int `default:"50" help:"Menu items retrieved as context"`
}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct {
	Addr string `default:":8080" env:"MENURAG_ADDR" help:"Listen address"`
	TopK int    `default:"50" help:"Menu items retrieved as context"`
}

// loadKnowledge loads the current index build.
func (d *Dependencies) loadKnowledge() (*rag.Knowledge, error) {
	knowledge, err := rag.Load(d.Ctx, d.Store)
	if menurag.ErrorCode(err) == menurag.ENOTFOUND {
		return nil, menurag.Errorf(menurag.ENOTFOUND, "no index found. Run 'menurag index' first")
	}
	return knowledge, err
}

// newChatbot loads the index and assembles the question answering pipeline.
func (d *Dependencies) newChatbot(topK int) (*rag.Chatbot, *rag.Knowledge, error) {
	knowledge, err := d.loadKnowledge()
	if err != nil {
		return nil, nil, err
	}
	retriever := rag.NewRetriever(d.Embedder, knowledge, d.Logger)
	bot := rag.NewChatbot(retriever, rag.NewSynthesizer(d.Generator, d.Logger), d.Logger)
	if topK > 0 {
		bot.TopK = topK
	}
	return bot, knowledge, nil
}

// withTimeout derives a per-call context from the command context.
func (d *Dependencies) withTimeout() (context.Context, context.CancelFunc) {
	if d.Timeout <= 0 {
		return context.WithCancel(d.Ctx)
	}
	return context.WithTimeout(d.Ctx, d.Timeout)
}
