package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/mkowalik/docgram"
	"github.com/mkowalik/docgram/pipeline"
	"github.com/mkowalik/docgram/sqlite"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx       context.Context
	Stdout    io.Writer
	Stderr    io.Writer
	Logger    *slog.Logger
	DB        *sqlite.DB
	Store     docgram.PostedStore
	Providers []pipeline.Provider
	Pipeline  *pipeline.Pipeline
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Run    RunCmd    `cmd:"" help:"Scan listings and publish new documents"`
	Scan   ScanCmd   `cmd:"" help:"Show discovered candidates without publishing"`
	Status StatusCmd `cmd:"" help:"Show posted-set statistics"`

	Verbose bool `short:"v" help:"Enable debug logging"`
}

// SourceFlags are the discovery options shared by run and scan.
type SourceFlags struct {
	Listings []string `arg:"" name:"listing-url" help:"Listing page URL (tried in order)"`
	Sitemap  string   `help:"Base URL for sitemap fallback discovery"`
	MaxPages int      `default:"3" help:"Pagination depth per listing"`
}

// RunCmd is the "run" subcommand.
type RunCmd struct {
	SourceFlags

	AssetDir     string  `help:"Directory for hosted assets (filesystem host)"`
	AssetBaseURL string  `help:"Public base URL the asset directory is served under"`
	Bucket       string  `help:"GCS bucket for hosted assets (overrides --asset-dir)"`
	UserID       string  `env:"IG_USER_ID" help:"Instagram business account ID"`
	AccessToken  string  `env:"IG_ACCESS_TOKEN" help:"Instagram Graph API access token"`
	Suffix       string  `name:"caption-suffix" help:"Trailer line appended to every caption"`
	Max          int     `name:"max-candidates" default:"25" help:"Candidate bound per run"`
	All          bool    `help:"Publish every new document instead of stopping after the first"`
	RPS          float64 `name:"rps" default:"1.0" help:"Per-domain request rate limit"`
}

// ScanCmd is the "scan" subcommand.
type ScanCmd struct {
	SourceFlags
}

// StatusCmd is the "status" subcommand.
type StatusCmd struct{}
