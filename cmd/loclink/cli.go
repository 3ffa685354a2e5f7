package main

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/fwojciec/loclink"
	"github.com/fwojciec/loclink/fs"
	"github.com/fwojciec/loclink/sqlite"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx      context.Context
	Stdout   io.Writer
	Stderr   io.Writer
	DB       *sqlite.DB
	Runs     loclink.RunService
	Checks   loclink.CheckService
	Sitemaps loclink.SitemapService
	Reports  *fs.Writer
	Renderer loclink.ReportRenderer
	Metrics  http.Handler
	Logger   *slog.Logger
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Serve   ServeCmd   `cmd:"" help:"Run the web tool"`
	Check   CheckCmd   `cmd:"" help:"Check localized pages and print a text report"`
	Multi   MultiCmd   `cmd:"" help:"Check the locale variants of a base URL"`
	Runs    RunsCmd    `cmd:"" help:"List or purge stored runs"`
	Sitemap SitemapCmd `cmd:"" help:"Discover a site's URLs from its sitemap"`
}

// EngineFlags configures the shared check engine. Every command that
// checks pages embeds these.
type EngineFlags struct {
	Timeout    time.Duration `env:"LOCLINK_TIMEOUT" default:"10s" help:"HTTP timeout for fetches and probes"`
	UserAgent  string        `env:"LOCLINK_USER_AGENT" default:"LocalizationTester/1.0" help:"User-Agent header sent with requests"`
	MaxLinks   int           `env:"LOCLINK_MAX_LINKS" default:"200" help:"Maximum links checked per page"`
	SiteDomain []string      `env:"LOCLINK_SITE_DOMAIN" help:"Domain localization rules apply to (repeatable, defaults to each page's own host)"`
	Rate       float64       `env:"LOCLINK_RATE" default:"10" help:"Probe rate per domain in requests per second"`
}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct {
	Addr          string `env:"LOCLINK_ADDR" default:":8080" help:"Bind address for the web server"`
	DB            string `env:"LOCLINK_DB" help:"SQLite database path (defaults to ~/.loclink/loclink.db)"`
	ReportsDir    string `env:"LOCLINK_REPORTS_DIR" default:"reports" help:"Directory for CSV reports"`
	LogsDir       string `env:"LOCLINK_LOGS_DIR" default:"logs" help:"Directory for the server log file"`
	LogLevel      string `env:"LOCLINK_LOG_LEVEL" default:"info" help:"Log level (debug, info, warn, error)"`
	RetentionDays int    `env:"LOCLINK_RETENTION_DAYS" default:"30" help:"Days to keep stored runs and CSV reports (0 disables purging)"`

	EngineFlags `embed:""`
}

// CheckCmd is the "check" subcommand.
type CheckCmd struct {
	URLs       []string `arg:"" name:"url" help:"Localized page URLs to check"`
	CSV        bool     `help:"Write the CSV report file"`
	ReportsDir string   `env:"LOCLINK_REPORTS_DIR" default:"reports" help:"Directory for CSV reports"`

	EngineFlags `embed:""`
}

// MultiCmd is the "multi" subcommand.
type MultiCmd struct {
	BaseURL    string   `arg:"" name:"base-url" help:"Base page URL without a locale prefix"`
	Locales    []string `name:"locale" short:"l" default:"fr,es,de,it,ru" help:"Locales to check (repeatable)"`
	CSV        bool     `help:"Write the CSV report file"`
	ReportsDir string   `env:"LOCLINK_REPORTS_DIR" default:"reports" help:"Directory for CSV reports"`

	EngineFlags `embed:""`
}

// RunsCmd is the "runs" subcommand.
type RunsCmd struct {
	DB            string `env:"LOCLINK_DB" help:"SQLite database path (defaults to ~/.loclink/loclink.db)"`
	Mode          string `help:"Filter by run mode (single, bulk, multi)"`
	Limit         int    `short:"n" default:"20" help:"Number of runs to list"`
	Purge         bool   `help:"Delete runs older than the retention window instead of listing"`
	RetentionDays int    `env:"LOCLINK_RETENTION_DAYS" default:"30" help:"Retention window in days for --purge"`
}

// SitemapCmd is the "sitemap" subcommand.
type SitemapCmd struct {
	BaseURL string   `arg:"" name:"base-url" help:"Site to discover URLs for"`
	Locale  string   `help:"Keep only URLs under this locale prefix (e.g. de)"`
	Filter  []string `short:"F" name:"filter" help:"Keep URLs matching regex (repeatable)"`
	Exclude []string `short:"X" name:"exclude" help:"Drop URLs matching regex (repeatable)"`
}
