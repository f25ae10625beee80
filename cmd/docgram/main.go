package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/google/uuid"
	"github.com/mkowalik/docgram"
	"github.com/mkowalik/docgram/extract"
	"github.com/mkowalik/docgram/fitz"
	"github.com/mkowalik/docgram/fs"
	"github.com/mkowalik/docgram/gcs"
	"github.com/mkowalik/docgram/goquery"
	dochttp "github.com/mkowalik/docgram/http"
	"github.com/mkowalik/docgram/instagram"
	"github.com/mkowalik/docgram/pipeline"
	docslog "github.com/mkowalik/docgram/slog"
	"github.com/mkowalik/docgram/sqlite"
)

func main() {
	ctx := context.Background()

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

	// SQLite database backing the posted set.
	DB *sqlite.DB
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
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("docgram"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'docgram --help' to see available commands")
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

	level := slog.LevelInfo
	if cli.Verbose {
		level = slog.LevelDebug
	}
	deps.Logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level})).
		With("run_id", uuid.NewString())

	// Open the posted-set database.
	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set DOCGRAM_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
	}
	defer m.Close()

	deps.DB = m.DB
	deps.Store = sqlite.NewPostedService(m.DB)

	// Wire command-specific dependencies.
	switch cmd {
	case "scan":
		fetcher := docslog.NewLoggingFetcher(dochttp.NewFetcher(), deps.Logger)
		deps.Providers = buildProviders(fetcher, cli.Scan.SourceFlags, deps.Logger)

	case "run":
		fetcher := docslog.NewLoggingFetcher(dochttp.NewFetcher(), deps.Logger)
		deps.Providers = buildProviders(fetcher, cli.Run.SourceFlags, deps.Logger)

		assets, err := buildAssetHost(ctx, &cli.Run)
		if err != nil {
			return err
		}

		publisher, err := instagram.NewPublisher(docgram.Credentials{
			UserID:      cli.Run.UserID,
			AccessToken: cli.Run.AccessToken,
		})
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Set IG_USER_ID and IG_ACCESS_TOKEN")
			return err
		}

		deps.Pipeline = &pipeline.Pipeline{
			Fetcher:   fetcher,
			Resolver:  goquery.NewArtifactResolver(fetcher),
			Extractor: extract.NewExtractor(),
			Renderer:  fitz.NewRenderer(),
			Assets:    assets,
			Publisher: docslog.NewLoggingPublisher(publisher, deps.Logger),
			Store:     deps.Store,
			Limiter:   pipeline.NewDomainLimiter(cli.Run.RPS),
			Logger:    deps.Logger,
			Config: pipeline.Config{
				Providers:             deps.Providers,
				MaxCandidatesPerRun:   cli.Run.Max,
				StopAfterFirstSuccess: !cli.Run.All,
				CaptionSuffix:         cli.Run.Suffix,
			},
		}
	}

	return kongCtx.Run(deps)
}

// buildProviders assembles the ordered discovery fallback: one HTML listing
// source per URL, then a sitemap source when a base URL was given.
func buildProviders(fetcher docgram.Fetcher, flags SourceFlags, logger *slog.Logger) []pipeline.Provider {
	var providers []pipeline.Provider
	for _, u := range flags.Listings {
		source := goquery.NewListingSource(fetcher, goquery.WithMaxPages(flags.MaxPages))
		providers = append(providers, pipeline.Provider{
			Source: docslog.NewLoggingListingSource(source, logger),
			URL:    u,
		})
	}
	if flags.Sitemap != "" {
		providers = append(providers, pipeline.Provider{
			Source: docslog.NewLoggingListingSource(dochttp.NewSitemapSource(fetcher), logger),
			URL:    flags.Sitemap,
		})
	}
	return providers
}

// buildAssetHost picks the asset backend from the run flags.
func buildAssetHost(ctx context.Context, cmd *RunCmd) (docgram.AssetHost, error) {
	if cmd.Bucket != "" {
		return gcs.NewHost(ctx, cmd.Bucket)
	}
	if cmd.AssetDir == "" || cmd.AssetBaseURL == "" {
		return nil, docgram.Errorf(docgram.EINVALID,
			"an asset host is required: pass --bucket, or --asset-dir with --asset-base-url")
	}
	return fs.NewHost(cmd.AssetDir, cmd.AssetBaseURL), nil
}

func defaultDBPath() string {
	if path := os.Getenv("DOCGRAM_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "docgram.db"
	}
	dir := filepath.Join(home, ".docgram")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "docgram.db")
}
