// Package pipeline sequences the document publish flow: scan listing
// sources, filter already-posted candidates, fetch, render and extract,
// host the image, publish, and commit state — in listing order, one
// candidate at a time. No per-candidate failure is fatal to the run.
package pipeline

import (
	"context"
	"log/slog"

	"github.com/mkowalik/docgram"
	"golang.org/x/sync/errgroup"
)

// defaultTextPages bounds text extraction for metadata recovery.
const defaultTextPages = 2

// Provider pairs a listing source with the URL it scans. Providers are
// tried in order; the first that yields at least one reference is used
// exclusively for the run.
type Provider struct {
	Source docgram.ListingSource
	URL    string
}

// Config carries the orchestrator's policy options.
type Config struct {
	// Providers is the ordered fallback sequence of listing sources.
	Providers []Provider

	// MaxCandidatesPerRun bounds how many candidates are processed in one
	// run. Zero means no bound.
	MaxCandidatesPerRun int

	// StopAfterFirstSuccess stops the run after one successful publish, to
	// rate-limit output. A policy knob, not a correctness property.
	StopAfterFirstSuccess bool

	// CaptionSuffix is an optional trailer line for every caption, e.g. a
	// source attribution.
	CaptionSuffix string

	// TextPages bounds text extraction for metadata recovery. Defaults to
	// defaultTextPages.
	TextPages int
}

// Validate returns an error if the configuration cannot run.
func (c *Config) Validate() error {
	if len(c.Providers) == 0 {
		return docgram.Errorf(docgram.EINVALID, "at least one listing provider required")
	}
	return nil
}

// Pipeline orchestrates one publish run. All collaborators are interfaces;
// the pipeline owns only sequencing and failure isolation.
type Pipeline struct {
	Fetcher   docgram.Fetcher
	Resolver  docgram.ArtifactResolver
	Extractor docgram.MetadataExtractor
	Renderer  docgram.Renderer
	Assets    docgram.AssetHost
	Publisher docgram.Publisher
	Store     docgram.PostedStore
	Limiter   docgram.DomainLimiter
	Logger    *slog.Logger

	Config Config
}

// Run executes one pass over the candidate list. It returns an error only
// for process-fatal conditions: invalid configuration or no source
// yielding any candidate. Per-candidate failures become Skipped results.
func (p *Pipeline) Run(ctx context.Context) (*Summary, error) {
	if err := p.Config.Validate(); err != nil {
		return nil, err
	}

	logger := p.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	sourceName, refs, err := p.discover(ctx, logger)
	if err != nil {
		return nil, err
	}

	posted, err := p.Store.Count(ctx)
	if err != nil {
		return nil, err
	}
	logger.Info("scan complete",
		"source", sourceName,
		"candidates", len(refs),
		"posted", posted,
	)

	summary := &Summary{Source: sourceName, Discovered: len(refs)}

	processed := 0
	for _, ref := range refs {
		if p.Config.MaxCandidatesPerRun > 0 && processed >= p.Config.MaxCandidatesPerRun {
			break
		}
		processed++

		result := p.process(ctx, ref, logger)
		summary.Results = append(summary.Results, result)

		if result.Committed() {
			summary.Published++
			if p.Config.StopAfterFirstSuccess {
				break
			}
		} else {
			summary.Skipped++
		}
	}

	logger.Info("run complete",
		"discovered", summary.Discovered,
		"published", summary.Published,
		"skipped", summary.Skipped,
	)
	return summary, nil
}

// discover tries each provider in order and returns the first non-empty
// reference list. Provider errors are logged and treated as empty: a later
// fallback may still succeed. Returns ENOTFOUND when every provider came
// up empty — a process-fatal condition.
func (p *Pipeline) discover(ctx context.Context, logger *slog.Logger) (string, []docgram.DocumentReference, error) {
	for _, provider := range p.Config.Providers {
		refs, err := provider.Source.Discover(ctx, provider.URL)
		if err != nil {
			logger.Warn("listing source failed",
				"source", provider.Source.Name(),
				"url", provider.URL,
				"code", docgram.ErrorCode(err),
				"error", docgram.ErrorMessage(err),
			)
			continue
		}
		if len(refs) > 0 {
			return provider.Source.Name(), refs, nil
		}
	}
	return "", nil, docgram.Errorf(docgram.ENOTFOUND, "no listing source yielded any candidates")
}

// process runs one candidate through the state machine. Any stage failure
// moves the candidate straight to Skipped and the run continues.
func (p *Pipeline) process(ctx context.Context, ref docgram.DocumentReference, logger *slog.Logger) Result {
	result := Result{Ref: ref, Stage: StageDiscovered}

	skip := func(at Stage, reason string, err error) Result {
		result.Stage = StageSkipped
		result.FailedAt = at
		result.Reason = reason
		logger.Warn("candidate skipped",
			"identity", result.Identity,
			"locator", ref.Locator,
			"stage", string(at),
			"reason", reason,
			"error", docgram.ErrorMessage(err),
		)
		return result
	}

	if err := ref.Validate(); err != nil {
		return skip(StageDiscovered, docgram.ErrorCode(err), err)
	}

	normalized, err := docgram.NormalizeLocator(ref.Locator)
	if err != nil {
		return skip(StageDiscovered, docgram.ErrorCode(err), err)
	}
	result.Identity = docgram.Identity(normalized)

	// Membership is re-checked here, not only at scan time: a previous run
	// may have partially advanced.
	already, err := p.Store.Contains(ctx, result.Identity)
	if err != nil {
		return skip(StageDiscovered, docgram.ErrorCode(err), err)
	}
	if already {
		result.Stage = StageSkipped
		result.FailedAt = StageDiscovered
		result.Reason = ReasonAlreadyPosted
		logger.Debug("candidate already posted", "identity", result.Identity, "locator", ref.Locator)
		return result
	}

	// Resolve the downloadable artifact when the listing linked a detail
	// page instead of the document itself.
	artifactURL := ref.Locator
	if !docgram.IsDocumentLocator(artifactURL) {
		artifactURL, err = p.Resolver.Resolve(ctx, ref.Locator)
		if err != nil {
			return skip(StageDiscovered, docgram.ErrorCode(err), err)
		}
	}

	if err := p.Limiter.Wait(ctx, artifactURL); err != nil {
		return skip(StageFetched, docgram.ErrorCode(err), err)
	}
	document, err := p.Fetcher.Fetch(ctx, artifactURL)
	if err != nil {
		return skip(StageFetched, docgram.ErrorCode(err), err)
	}
	result.Stage = StageFetched

	// Rendering and metadata extraction are parallel concerns over the
	// same fetched bytes. Publishing itself stays strictly sequential.
	textPages := p.Config.TextPages
	if textPages <= 0 {
		textPages = defaultTextPages
	}

	var asset *docgram.RenderedAsset
	var meta docgram.ExtractedMetadata

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		rendered, err := p.Renderer.Render(gctx, document)
		if err != nil {
			return err
		}
		asset = rendered
		return nil
	})
	g.Go(func() error {
		// Extraction is best-effort: a text failure just means the
		// fallback timestamp carries the date chain.
		text, err := p.Renderer.Text(document, textPages)
		if err != nil {
			text = ""
		}
		fallback, _ := p.Fetcher.LastModified(gctx, artifactURL)
		meta = p.Extractor.Extract(text, fallback)
		return nil
	})
	if err := g.Wait(); err != nil {
		return skip(StageRendered, docgram.ErrorCode(err), err)
	}
	result.Stage = StageRendered

	// The asset must be durably hosted at a stable address before any
	// publish attempt references it. The name is the identity, so a retry
	// on a later run reuses the same address.
	assetURL, err := p.Assets.Store(ctx, result.Identity+".jpg", asset.Bytes)
	if err != nil {
		return skip(StagePublished, docgram.ErrorCode(err), err)
	}

	caption := BuildCaption(ref, meta, p.Config.CaptionSuffix)
	published, err := p.Publisher.Publish(ctx, assetURL, caption)
	if err != nil {
		// The hosted asset stays in place: retrying from it next run is
		// safe because the posted set was not committed.
		return skip(StagePublished, docgram.ErrorCode(err), err)
	}
	result.Stage = StagePublished
	result.RemoteID = published.RemoteID

	// Durable commit before moving to the next candidate; a crash after
	// this point never re-publishes the document.
	if err := p.Store.Commit(ctx, result.Identity, normalized); err != nil {
		return skip(StageCommitted, docgram.ErrorCode(err), err)
	}
	result.Stage = StageCommitted

	logger.Info("document published",
		"identity", result.Identity,
		"locator", ref.Locator,
		"remote_id", result.RemoteID,
		"width", asset.Width,
		"height", asset.Height,
	)
	return result
}
