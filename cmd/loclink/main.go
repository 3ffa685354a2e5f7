package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/loclink"
	"github.com/fwojciec/loclink/check"
	"github.com/fwojciec/loclink/fs"
	"github.com/fwojciec/loclink/goquery"
	lochttp "github.com/fwojciec/loclink/http"
	"github.com/fwojciec/loclink/pdf"
	locprom "github.com/fwojciec/loclink/prometheus"
	"github.com/fwojciec/loclink/rod"
	locslog "github.com/fwojciec/loclink/slog"
	"github.com/fwojciec/loclink/sqlite"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run().
	DBPath string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// RunService for end-to-end testing.
	RunService loclink.RunService
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
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
	// Initialize dependencies struct for Kong binding
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	// Create Kong parser with dependency binding
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("loclink"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	// Handle help flags using Kong
	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'loclink --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	// Parse arguments first to know which command and its flags
	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	// The serve command logs to stderr and a log file; the one-shot
	// commands log to stderr only, at warn level so the text report
	// stays clean.
	if cmd == "serve" {
		logger, closeLog, err := newFileLogger(stderr, cli.Serve.LogsDir, cli.Serve.LogLevel)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		defer closeLog()
		deps.Logger = logger
	} else {
		deps.Logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	}

	deps.Sitemaps = locslog.NewLoggingSitemapService(lochttp.NewSitemapService(nil), deps.Logger)

	// Open the database for the commands that persist or read runs
	if cmd == "serve" || cmd == "runs" {
		dbPath := m.DBPath
		switch {
		case cmd == "serve" && cli.Serve.DB != "":
			dbPath = cli.Serve.DB
		case cmd == "runs" && cli.Runs.DB != "":
			dbPath = cli.Runs.DB
		}

		m.DB = sqlite.NewDB(dbPath)
		if err := m.DB.Open(); err != nil {
			fmt.Fprintf(stderr, "Hint: Set LOCLINK_DB to use a different database path\n")
			return fmt.Errorf("failed to open database at %q: %w", dbPath, err)
		}
		defer m.Close()

		m.RunService = sqlite.NewRunService(m.DB)
		deps.DB = m.DB
		deps.Runs = m.RunService
	}

	// Wire the check engine for the commands that need it
	switch cmd {
	case "serve":
		checker := locslog.NewLoggingCheckService(newChecker(cli.Serve.EngineFlags, deps.Logger), deps.Logger)
		metrics := locprom.NewMetricsCheckService(checker)
		deps.Checks = metrics
		deps.Metrics = metrics.Handler()
		deps.Reports = fs.NewWriter(cli.Serve.ReportsDir)
		deps.Renderer = pdf.NewRenderer()
	case "check":
		deps.Checks = locslog.NewLoggingCheckService(newChecker(cli.Check.EngineFlags, deps.Logger), deps.Logger)
		deps.Reports = fs.NewWriter(cli.Check.ReportsDir)
	case "multi":
		deps.Checks = locslog.NewLoggingCheckService(newChecker(cli.Multi.EngineFlags, deps.Logger), deps.Logger)
		deps.Reports = fs.NewWriter(cli.Multi.ReportsDir)
	}

	return kongCtx.Run(deps)
}

// newChecker wires the check engine from command flags. The browser
// launcher only starts Chrome when a page actually needs rendering.
func newChecker(flags EngineFlags, logger *slog.Logger) *check.Checker {
	launcher := rod.NewLauncher(rod.WithUserAgent(flags.UserAgent))
	return &check.Checker{
		Fetcher: locslog.NewLoggingFetcher(
			lochttp.NewFetcher(lochttp.WithTimeout(flags.Timeout), lochttp.WithUserAgent(flags.UserAgent)),
			logger,
		),
		Prober: locslog.NewLoggingProber(
			lochttp.NewProber(lochttp.WithProbeTimeout(flags.Timeout), lochttp.WithProbeUserAgent(flags.UserAgent)),
			logger,
		),
		Browser: func() (loclink.Fetcher, error) {
			f, err := launcher.Open()
			if err != nil {
				return nil, err
			}
			return rod.NewLoggingFetcher(f, logger), nil
		},
		Extractor: locslog.NewLoggingExtractor(
			goquery.NewExtractor(goquery.WithMaxLinks(flags.MaxLinks)),
			logger,
		),
		Limiter:     check.NewDomainLimiter(flags.Rate),
		SiteDomains: flags.SiteDomain,
	}
}

// newFileLogger builds a text logger writing to stderr and to
// <dir>/loclink.log. The returned close function closes the log file.
func newFileLogger(stderr io.Writer, dir, level string) (*slog.Logger, func() error, error) {
	var lv slog.Level
	if err := lv.UnmarshalText([]byte(level)); err != nil {
		return nil, nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, nil, err
	}
	f, err := os.OpenFile(filepath.Join(dir, "loclink.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, nil, err
	}

	handler := slog.NewTextHandler(io.MultiWriter(stderr, f), &slog.HandlerOptions{Level: lv})
	return slog.New(handler), f.Close, nil
}

func defaultDBPath() string {
	if path := os.Getenv("LOCLINK_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "loclink.db"
	}
	dir := filepath.Join(home, ".loclink")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "loclink.db")
}
