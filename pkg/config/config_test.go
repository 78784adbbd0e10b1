package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"news-summarizer/core/errors"
)

func missingEnvFile(t *testing.T) string {
	return filepath.Join(t.TempDir(), "missing.env")
}

func TestLoadFromEnv_Defaults(t *testing.T) {
	os.Clearenv()

	cfg, err := LoadFromEnv(missingEnvFile(t))
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, 5*time.Second, cfg.Crawl.FetchDelay)
	assert.Equal(t, 60*time.Second, cfg.Crawl.HTTPTimeout)
	assert.Equal(t, 2, cfg.Crawl.Workers)
	assert.Equal(t, 5, cfg.Crawl.MaxSitemapDepth)
	assert.Equal(t, 96, cfg.Crawl.SummaryMinLength)
	assert.Equal(t, 256, cfg.Crawl.SummaryMaxLength)
	assert.Equal(t, AnalyzerInference, cfg.Analyzer.Type)
	assert.Equal(t, "cpu", cfg.Analyzer.Device)
	assert.Equal(t, CacheNone, cfg.Cache.Type)
	assert.Equal(t, "localhost:6379", cfg.Cache.Redis.Address)
	assert.Equal(t, StoreFilesystem, cfg.Store.Type)
	assert.Equal(t, "output", cfg.Store.Root)
	assert.Equal(t, "news-articles", cfg.Store.Elasticsearch.Index)
}

func TestLoadFromEnv_Overrides(t *testing.T) {
	os.Clearenv()
	t.Setenv("FETCH_DELAY", "250ms")
	t.Setenv("WORKERS", "4")
	t.Setenv("CACHE_TYPE", "redis")
	t.Setenv("REDIS_ADDRESS", "redis:6380")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("STORE_TYPE", "elasticsearch")
	t.Setenv("ELASTICSEARCH_URL", "http://es:9200")

	cfg, err := LoadFromEnv(missingEnvFile(t))
	require.NoError(t, err)

	assert.Equal(t, 250*time.Millisecond, cfg.Crawl.FetchDelay)
	assert.Equal(t, 4, cfg.Crawl.Workers)
	assert.Equal(t, CacheRedis, cfg.Cache.Type)
	assert.Equal(t, "redis:6380", cfg.Cache.Redis.Address)
	assert.Equal(t, 3, cfg.Cache.Redis.DB)
	assert.Equal(t, "http://es:9200", cfg.Store.Elasticsearch.URL)
}

func TestLoadFromEnv_DotEnvFile(t *testing.T) {
	os.Clearenv()
	envFile := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("SUMMARIZER_MODEL=facebook/bart-large-cnn\nWORKERS=3\n"), 0o600))
	t.Setenv("WORKERS", "8")

	cfg, err := LoadFromEnv(envFile)
	require.NoError(t, err)

	assert.Equal(t, "facebook/bart-large-cnn", cfg.Analyzer.SummarizerModel)
	assert.Equal(t, 8, cfg.Crawl.Workers, "environment should win over .env")
}

func TestLoadFromEnv_InvalidValue(t *testing.T) {
	os.Clearenv()
	t.Setenv("WORKERS", "many")

	_, err := LoadFromEnv(missingEnvFile(t))

	assert.Error(t, err)
}

func validConfig(t *testing.T) *Config {
	t.Helper()
	os.Clearenv()
	cfg, err := LoadFromEnv(missingEnvFile(t))
	require.NoError(t, err)
	cfg.Analyzer.SummarizerModel = "facebook/bart-large-cnn"
	cfg.Analyzer.SentimentModel = "distilbert-base-uncased-finetuned-sst-2-english"
	return cfg
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*Config)
		wantField string
	}{
		{name: "defaults with models", mutate: func(*Config) {}},
		{name: "zero workers", mutate: func(c *Config) { c.Crawl.Workers = 0 }, wantField: "workers"},
		{name: "negative delay", mutate: func(c *Config) { c.Crawl.FetchDelay = -time.Second }, wantField: "fetch_delay"},
		{name: "zero timeout", mutate: func(c *Config) { c.Crawl.HTTPTimeout = 0 }, wantField: "http_timeout"},
		{name: "min above max", mutate: func(c *Config) { c.Crawl.SummaryMinLength = 300 }, wantField: "summary_length"},
		{name: "missing summarizer", mutate: func(c *Config) { c.Analyzer.SummarizerModel = "" }, wantField: "summarizer_model"},
		{name: "missing sentiment", mutate: func(c *Config) { c.Analyzer.SentimentModel = "" }, wantField: "sentiment_model"},
		{name: "unknown device", mutate: func(c *Config) { c.Analyzer.Device = "tpu" }, wantField: "device"},
		{name: "gemini without key", mutate: func(c *Config) { c.Analyzer.Type = AnalyzerGemini }, wantField: "gemini_api_key"},
		{name: "gemini with key", mutate: func(c *Config) {
			c.Analyzer.Type = AnalyzerGemini
			c.Analyzer.GeminiAPIKey = "key"
		}},
		{name: "unknown analyzer", mutate: func(c *Config) { c.Analyzer.Type = "local" }, wantField: "analyzer"},
		{name: "redis without address", mutate: func(c *Config) {
			c.Cache.Type = CacheRedis
			c.Cache.Redis.Address = ""
		}, wantField: "redis_address"},
		{name: "unknown cache", mutate: func(c *Config) { c.Cache.Type = "memcached" }, wantField: "cache_type"},
		{name: "filesystem without root", mutate: func(c *Config) { c.Store.Root = "" }, wantField: "store_root"},
		{name: "unknown store", mutate: func(c *Config) { c.Store.Type = "s3" }, wantField: "store_type"},
		{name: "sqlite store", mutate: func(c *Config) { c.Store.Type = StoreSQLite }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig(t)
			tt.mutate(cfg)

			err := cfg.Validate()

			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}
			var validationErr *errors.ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Equal(t, tt.wantField, validationErr.Field)
		})
	}
}
