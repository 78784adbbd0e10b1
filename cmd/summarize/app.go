// ABOUTME: Builds the pipeline from configuration: logger, HTTP client, cache, analyzer and store
// ABOUTME: Keeps backend selection in one place so main stays a thin cobra wrapper

package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"news-summarizer/core/article"
	"news-summarizer/core/interfaces"
	"news-summarizer/core/pipeline"
	"news-summarizer/infrastructure/analysis/gemini"
	"news-summarizer/infrastructure/analysis/inference"
	"news-summarizer/infrastructure/cache/memory"
	"news-summarizer/infrastructure/cache/redis"
	"news-summarizer/infrastructure/cache/sqlite"
	"news-summarizer/infrastructure/extract"
	stdhttp "news-summarizer/infrastructure/http/standard"
	"news-summarizer/infrastructure/logger/structured"
	"news-summarizer/infrastructure/storage/elasticsearch"
	"news-summarizer/infrastructure/storage/filesystem"
	sqlitestore "news-summarizer/infrastructure/storage/sqlite"
	"news-summarizer/pkg/config"
)

// app holds the wired pipeline and everything that must be closed after a run
type app struct {
	logger       interfaces.Logger
	orchestrator *pipeline.Orchestrator
	closers      []io.Closer
}

// loadConfig reads the environment and applies flag overrides before validation
func loadConfig(cmd *cobra.Command, opts *options) (*config.Config, error) {
	cfg, err := config.LoadFromEnv()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	applyFlags(cmd, opts, cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func applyFlags(cmd *cobra.Command, opts *options, cfg *config.Config) {
	if opts.summarizerModel != "" {
		cfg.Analyzer.SummarizerModel = opts.summarizerModel
	}
	if opts.sentimentModel != "" {
		cfg.Analyzer.SentimentModel = opts.sentimentModel
	}
	if opts.device != "" {
		cfg.Analyzer.Device = opts.device
	}
	if cmd.Flags().Changed("workers") {
		cfg.Crawl.Workers = opts.workers
	}
}

func newApp(ctx context.Context, cfg *config.Config) (*app, error) {
	logger := structured.NewLogger(structured.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
	})
	a := &app{logger: logger}

	httpClient := stdhttp.NewStandardHTTPClient(cfg.Crawl.HTTPTimeout, cfg.Crawl.UserAgent)

	cache, err := a.buildCache(cfg.Cache)
	if err != nil {
		a.Close()
		return nil, err
	}

	deps := interfaces.Dependencies{
		Cache:      cache,
		HTTPClient: httpClient,
		Logger:     logger,
	}

	analyzer, err := a.buildAnalyzer(ctx, cfg.Analyzer, httpClient)
	if err != nil {
		a.Close()
		return nil, err
	}

	store, err := a.buildStore(cfg.Store)
	if err != nil {
		a.Close()
		return nil, err
	}

	extractor := extract.NewExtractor(extract.Config{
		UserAgent: cfg.Crawl.UserAgent,
		Timeout:   cfg.Crawl.HTTPTimeout,
	})
	fetcher := article.NewFetcher(deps, extractor, article.Config{
		Delay:    cfg.Crawl.FetchDelay,
		CacheTTL: cfg.Cache.TTL,
	})

	a.orchestrator = pipeline.NewOrchestrator(deps, fetcher, analyzer, store, pipeline.Config{
		Workers:         cfg.Crawl.Workers,
		MaxSitemapDepth: cfg.Crawl.MaxSitemapDepth,
		Constraints: interfaces.Constraints{
			MinLength: cfg.Crawl.SummaryMinLength,
			MaxLength: cfg.Crawl.SummaryMaxLength,
		},
	})
	return a, nil
}

func (a *app) buildCache(cfg config.CacheConfig) (interfaces.Cache, error) {
	switch cfg.Type {
	case config.CacheMemory:
		a.logger.Info("Using memory cache", nil)
		return memory.NewMemoryCache(), nil
	case config.CacheRedis:
		c, err := redis.NewRedisCache(redis.Config{
			Address:  cfg.Redis.Address,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			a.logger.Error("Failed to create Redis cache, falling back to memory", map[string]interface{}{
				"error": err.Error(),
			})
			return memory.NewMemoryCache(), nil
		}
		a.closers = append(a.closers, c)
		a.logger.Info("Using Redis cache", map[string]interface{}{
			"address": cfg.Redis.Address,
		})
		return c, nil
	case config.CacheSQLite:
		c, err := sqlite.NewSQLiteCache(cfg.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("failed to create SQLite cache: %w", err)
		}
		a.closers = append(a.closers, c)
		a.logger.Info("Using SQLite cache", map[string]interface{}{
			"path": cfg.SQLitePath,
		})
		return c, nil
	default:
		return nil, nil
	}
}

func (a *app) buildAnalyzer(ctx context.Context, cfg config.AnalyzerConfig, httpClient interfaces.HTTPClient) (interfaces.TextAnalyzer, error) {
	switch cfg.Type {
	case config.AnalyzerGemini:
		c, err := gemini.NewClient(ctx, a.logger, gemini.Config{
			APIKey:          cfg.GeminiAPIKey,
			SummarizerModel: cfg.SummarizerModel,
			SentimentModel:  cfg.SentimentModel,
		})
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, c)
		return c, nil
	default:
		return inference.NewClient(ctx, httpClient, a.logger, inference.Config{
			BaseURL:         cfg.InferenceURL,
			SummarizerModel: cfg.SummarizerModel,
			SentimentModel:  cfg.SentimentModel,
			Device:          cfg.Device,
		})
	}
}

func (a *app) buildStore(cfg config.StoreConfig) (interfaces.ObjectStore, error) {
	switch cfg.Type {
	case config.StoreSQLite:
		s, err := sqlitestore.NewStore(cfg.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("failed to create SQLite store: %w", err)
		}
		a.closers = append(a.closers, s)
		return s, nil
	case config.StoreElasticsearch:
		return elasticsearch.NewStore(elasticsearch.Config{
			Addresses: []string{cfg.Elasticsearch.URL},
			Username:  cfg.Elasticsearch.Username,
			Password:  cfg.Elasticsearch.Password,
			APIKey:    cfg.Elasticsearch.APIKey,
			Index:     cfg.Elasticsearch.Index,
		})
	default:
		return filesystem.NewStore(cfg.Root)
	}
}

// Close releases caches, stores and analyzer connections in reverse order
func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil {
			a.logger.Warn("Failed to close resource", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}
	a.closers = nil
}
