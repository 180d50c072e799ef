package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/marketway"
	"github.com/fwojciec/marketway/chat"
	"github.com/fwojciec/marketway/fs"
	"github.com/fwojciec/marketway/gemini"
	mwprom "github.com/fwojciec/marketway/prometheus"
	mwslog "github.com/fwojciec/marketway/slog"
	"github.com/fwojciec/marketway/sqlite"
	"github.com/fwojciec/marketway/tavily"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/time/rate"
	"google.golang.org/genai"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run(); --db overrides it.
	DBPath string

	// SQLite database, opened only by commands that need it.
	DB *sqlite.DB

	// Catalog is the in-memory index every lookup reads from.
	Catalog *marketway.Catalog

	// Getenv reads API keys and model settings.
	Getenv func(string) string
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
		Getenv: os.Getenv,
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("marketway"),
		kong.Description("Find your way around the market."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'marketway --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	cmd = strings.Fields(kongCtx.Command())[0]

	deps.Logger = newLogger(stderr, cli.Debug)

	if cli.DB != "" {
		m.DBPath = cli.DB
	}
	if cli.Source == SourceDB || cmd == "import" || cmd == "export" {
		if err := m.openStore(deps); err != nil {
			fmt.Fprintf(stderr, "Hint: Set MARKETWAY_DB to use a different database path\n")
			return err
		}
		defer m.Close()
	}

	m.wire(ctx, cli, cmd, deps)

	// Commands that read the catalog start from a fresh load. A failed load
	// is logged and leaves the catalog empty.
	if cmd != "import" && cmd != "export" {
		_, _ = deps.Reloader.Reload(ctx)
	}

	return kongCtx.Run(deps)
}

func newLogger(w io.Writer, debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// openStore opens the database at DBPath and exposes it as deps.Store.
func (m *Main) openStore(deps *Dependencies) error {
	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
	}
	deps.Store = sqlite.NewLineService(m.DB)
	return nil
}

// wire builds the catalog over the selected source and fills deps with its
// decorated services. serve additionally records Prometheus metrics.
func (m *Main) wire(ctx context.Context, cli *CLI, cmd string, deps *Dependencies) {
	logger := deps.Logger

	var src marketway.LineSource
	if cli.Source == SourceDB {
		src = deps.Store
	} else {
		src = fs.NewLineSource(cli.Data)
		deps.WatchPath = cli.Data
	}
	m.Catalog = marketway.NewCatalog(src)

	var locator marketway.Locator = m.Catalog
	var reloader marketway.Reloader = m.Catalog
	var assistant marketway.Assistant
	if cmd == "chat" || cmd == "serve" {
		assistant = m.newAssistant(ctx, logger)
	}

	if cmd == "serve" {
		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		metrics := mwprom.NewMetrics(reg)
		locator = mwprom.NewMetricsLocator(locator, metrics)
		reloader = mwprom.NewMetricsReloader(reloader, metrics)
		assistant = mwprom.NewMetricsAssistant(assistant, metrics)
		deps.Gatherer = reg
	}

	deps.Locator = mwslog.NewLoggingLocator(locator, logger)
	deps.Navigator = mwslog.NewLoggingNavigator(m.Catalog, logger)
	deps.Reloader = mwslog.NewLoggingReloader(reloader, logger)
	deps.Lines = m.Catalog
	if assistant != nil {
		deps.Assistant = mwslog.NewLoggingAssistant(assistant, logger)
	}
}

// geminiRate caps model calls across all Gemini collaborators.
const geminiRate = 5

// newAssistant wires the chat handler. Gemini and Tavily are optional: without
// their keys the assistant falls back to plain keyword search and a fixed
// info reply.
func (m *Main) newAssistant(ctx context.Context, logger *slog.Logger) marketway.Assistant {
	c := m.Catalog
	opts := []chat.Option{}

	apiKey := m.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		apiKey = m.Getenv("GOOGLE_API_KEY")
	}
	if apiKey != "" {
		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  apiKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			logger.Warn("gemini unavailable, using keyword search", "err", err)
		} else {
			limiter := rate.NewLimiter(rate.Limit(geminiRate), geminiRate)
			gopts := []gemini.Option{gemini.WithModel(m.Getenv("GEMINI_MODEL")), gemini.WithLimiter(limiter)}
			opts = append(opts,
				chat.WithRouter(mwslog.NewLoggingRouter(gemini.NewRouter(client.Models, gopts...), logger)),
				chat.WithKeywordExtractor(gemini.NewKeywordExtractor(client.Models, gopts...)),
				chat.WithNarrator(mwslog.NewLoggingNarrator(gemini.NewNarrator(client.Models, gopts...), logger)),
			)
		}
	} else {
		logger.Debug("GEMINI_API_KEY not set, using keyword search")
	}

	if key := m.Getenv("TAVILY_API_KEY"); key != "" {
		opts = append(opts, chat.WithInfoSearcher(mwslog.NewLoggingInfoSearcher(tavily.NewSearcher(key), logger)))
	}

	return chat.NewHandler(c, opts...)
}

func defaultDBPath() string {
	if path := os.Getenv("MARKETWAY_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "marketway.db"
	}
	dir := filepath.Join(home, ".marketway")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "marketway.db")
}
