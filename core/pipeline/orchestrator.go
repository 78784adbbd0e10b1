// ABOUTME: Orchestrator drives one crawl-and-analyze run for a CrawlTarget
// ABOUTME: Resolves sitemaps, fetches articles, analyzes them on a worker pool and stores the batch

package pipeline

import (
	"context"
	"time"

	"github.com/google/uuid"

	"news-summarizer/core/domain"
	"news-summarizer/core/errors"
	"news-summarizer/core/interfaces"
	"news-summarizer/core/sitemap"
	"news-summarizer/core/workers"
)

// Default summary length bounds, in model tokens
const (
	DefaultMinLength = 96
	DefaultMaxLength = 256
)

// ArticleFetcher turns discovered URLs into RawArticles, one per URL
type ArticleFetcher interface {
	FetchAll(ctx context.Context, urls []string) []domain.RawArticle
}

// Config holds the run parameters fixed at startup
type Config struct {
	// Workers is the analysis pool size
	Workers int

	// MaxSitemapDepth bounds nested sitemap expansion
	MaxSitemapDepth int

	// Constraints bound each chunk's transform output
	Constraints interfaces.Constraints
}

// Report summarises a completed run
type Report struct {
	RunID      string
	Path       string
	Discovered int
	Fetched    int
	Summarized int
	Degraded   int
	Written    bool
	Duration   time.Duration
}

// Orchestrator wires the crawl components to the analysis pool
type Orchestrator struct {
	deps     interfaces.Dependencies
	resolver *sitemap.Resolver
	fetcher  ArticleFetcher
	analyzer interfaces.TextAnalyzer
	store    interfaces.ObjectStore
	pool     *workers.Pool
	cfg      Config
}

// NewOrchestrator creates an orchestrator. The analyzer is shared by every
// worker. store may be nil when only Run is used.
func NewOrchestrator(deps interfaces.Dependencies, fetcher ArticleFetcher, analyzer interfaces.TextAnalyzer, store interfaces.ObjectStore, cfg Config) *Orchestrator {
	if deps.Logger == nil {
		deps.Logger = interfaces.NopLogger{}
	}
	if cfg.Workers <= 0 {
		cfg.Workers = workers.DefaultSize
	}
	if cfg.Constraints.MinLength <= 0 {
		cfg.Constraints.MinLength = DefaultMinLength
	}
	if cfg.Constraints.MaxLength <= 0 {
		cfg.Constraints.MaxLength = DefaultMaxLength
	}

	return &Orchestrator{
		deps:     deps,
		resolver: sitemap.NewResolver(deps),
		fetcher:  fetcher,
		analyzer: analyzer,
		store:    store,
		pool:     workers.NewPool(cfg.Workers),
		cfg:      cfg,
	}
}

// Models returns the model names recorded on successful records
func (o *Orchestrator) Models() domain.Models {
	return domain.Models{
		Summarization: o.analyzer.TransformModel(),
		Sentiment:     o.analyzer.ClassifyModel(),
	}
}

// Run crawls target and returns one record per discovered article, in
// discovery order. Only a missing target is an error; every other failure
// degrades the affected records or yields fewer articles.
func (o *Orchestrator) Run(ctx context.Context, target *domain.CrawlTarget) ([]domain.ArticleRecord, error) {
	if target == nil {
		return nil, &errors.ValidationError{Field: "target", Message: "must not be nil"}
	}

	sitemaps := o.resolver.Resolve(ctx, target.Base())

	parser := sitemap.NewParser(o.deps, target, o.cfg.MaxSitemapDepth)
	links := parser.ParseAll(ctx, sitemaps)
	if len(links) == 0 {
		o.deps.Logger.Warn("No news items to fetch", map[string]interface{}{
			"base_url": target.Base(),
			"date":     target.DateString(),
		})
		return []domain.ArticleRecord{}, nil
	}

	raws := o.fetcher.FetchAll(ctx, links)
	return o.Process(ctx, raws), nil
}

// Process analyzes raws on the worker pool. It blocks until every item has
// been handled and returns records in the order of raws.
func (o *Orchestrator) Process(ctx context.Context, raws []domain.RawArticle) []domain.ArticleRecord {
	o.deps.Logger.Info("Running analysis", map[string]interface{}{
		"articles": len(raws),
		"workers":  o.pool.Size(),
	})

	analyses := workers.Map(ctx, o.pool, len(raws), func(ctx context.Context, i int) domain.Analysis {
		return o.analyze(ctx, raws[i])
	})

	models := o.Models()
	records := make([]domain.ArticleRecord, len(raws))
	for i, a := range analyses {
		records[i] = a.Record(raws[i], models)
	}
	return records
}

// Summarize runs the pipeline and writes the records under
// target.OutputPath(). A run with zero records writes nothing.
func (o *Orchestrator) Summarize(ctx context.Context, target *domain.CrawlTarget) (Report, error) {
	started := time.Now()
	report := Report{RunID: uuid.NewString()}

	records, err := o.Run(ctx, target)
	if err != nil {
		return report, err
	}

	report.Path = target.OutputPath()
	report.Discovered = len(records)
	for _, r := range records {
		if r.ArticleText != nil {
			report.Fetched++
		}
		if r.Degraded() {
			report.Degraded++
		} else {
			report.Summarized++
		}
	}

	if len(records) == 0 {
		report.Duration = time.Since(started)
		o.deps.Logger.Info("No records to write", map[string]interface{}{
			"run_id": report.RunID,
			"path":   report.Path,
		})
		return report, nil
	}

	if o.store == nil {
		return report, errors.WrapError(errors.ErrNoStore, "write batch")
	}
	if err := o.store.WriteBatch(ctx, report.Path, records); err != nil {
		return report, errors.WrapError(err, "write batch")
	}
	report.Written = true
	report.Duration = time.Since(started)

	o.deps.Logger.Info("Records written", map[string]interface{}{
		"run_id":     report.RunID,
		"path":       report.Path,
		"records":    len(records),
		"summarized": report.Summarized,
		"degraded":   report.Degraded,
		"duration":   report.Duration.String(),
	})
	return report, nil
}
