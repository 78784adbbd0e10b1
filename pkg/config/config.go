// ABOUTME: Configuration management for the application with environment variable support
// ABOUTME: Loads .env files, decodes settings with envconfig and validates backend combinations

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"news-summarizer/core/errors"
)

// Backend names
const (
	AnalyzerInference = "inference"
	AnalyzerGemini    = "gemini"

	CacheNone   = "none"
	CacheMemory = "memory"
	CacheRedis  = "redis"
	CacheSQLite = "sqlite"

	StoreFilesystem    = "filesystem"
	StoreSQLite        = "sqlite"
	StoreElasticsearch = "elasticsearch"
)

// Devices accepted for model execution
var Devices = []string{"cpu", "cuda", "mps"}

// Config holds all application configuration
type Config struct {
	Log      LogConfig
	Crawl    CrawlConfig
	Analyzer AnalyzerConfig
	Cache    CacheConfig
	Store    StoreConfig
}

// LogConfig holds logger settings
type LogConfig struct {
	Level  string `envconfig:"LOG_LEVEL" default:"info"`
	Format string `envconfig:"LOG_FORMAT" default:"text"`
}

// CrawlConfig holds discovery, fetch and worker settings
type CrawlConfig struct {
	// FetchDelay is the minimum spacing between article downloads
	FetchDelay time.Duration `envconfig:"FETCH_DELAY" default:"5s"`

	// HTTPTimeout bounds robots.txt, sitemap and sidecar requests
	HTTPTimeout time.Duration `envconfig:"HTTP_TIMEOUT" default:"60s"`

	UserAgent        string `envconfig:"USER_AGENT"`
	Workers          int    `envconfig:"WORKERS" default:"2"`
	MaxSitemapDepth  int    `envconfig:"MAX_SITEMAP_DEPTH" default:"5"`
	SummaryMinLength int    `envconfig:"SUMMARY_MIN_LENGTH" default:"96"`
	SummaryMaxLength int    `envconfig:"SUMMARY_MAX_LENGTH" default:"256"`
}

// AnalyzerConfig selects the text analysis backend and its models
type AnalyzerConfig struct {
	Type            string `envconfig:"ANALYZER" default:"inference"`
	InferenceURL    string `envconfig:"INFERENCE_URL" default:"http://localhost:8000"`
	GeminiAPIKey    string `envconfig:"GEMINI_API_KEY"`
	SummarizerModel string `envconfig:"SUMMARIZER_MODEL"`
	SentimentModel  string `envconfig:"SENTIMENT_MODEL"`
	Device          string `envconfig:"DEVICE" default:"cpu"`
}

// CacheConfig holds article cache configuration
type CacheConfig struct {
	// Type specifies the cache backend (none/memory/redis/sqlite)
	Type string `envconfig:"CACHE_TYPE" default:"none"`

	// TTL is how long extracted text is kept
	TTL time.Duration `envconfig:"CACHE_TTL" default:"24h"`

	Redis RedisConfig

	SQLitePath string `envconfig:"SQLITE_CACHE_PATH" default:"cache.db"`
}

// RedisConfig holds Redis-specific configuration
type RedisConfig struct {
	Address  string `envconfig:"REDIS_ADDRESS" default:"localhost:6379"`
	Password string `envconfig:"REDIS_PASSWORD"`
	DB       int    `envconfig:"REDIS_DB" default:"0"`
}

// StoreConfig holds object store configuration
type StoreConfig struct {
	// Type specifies the store backend (filesystem/sqlite/elasticsearch)
	Type string `envconfig:"STORE_TYPE" default:"filesystem"`

	// Root is the directory batches are written under by the filesystem store
	Root string `envconfig:"STORE_ROOT" default:"output"`

	SQLitePath string `envconfig:"SQLITE_STORE_PATH" default:"articles.db"`

	Elasticsearch ElasticsearchConfig
}

// ElasticsearchConfig holds Elasticsearch connection settings
type ElasticsearchConfig struct {
	URL      string `envconfig:"ELASTICSEARCH_URL" default:"http://localhost:9200"`
	Index    string `envconfig:"ELASTICSEARCH_INDEX" default:"news-articles"`
	Username string `envconfig:"ELASTICSEARCH_USERNAME"`
	Password string `envconfig:"ELASTICSEARCH_PASSWORD"`
	APIKey   string `envconfig:"ELASTICSEARCH_API_KEY"`
}

// LoadFromEnv loads .env files (when present) and then the environment.
// Variables already set in the environment win over .env values.
func LoadFromEnv(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, file := range envFiles {
		if err := godotenv.Load(file); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("load %s: %w", file, err)
		}
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("process environment: %w", err)
	}
	return &cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Crawl.Workers < 1 {
		return &errors.ValidationError{Field: "workers", Message: "must be at least 1"}
	}
	if c.Crawl.FetchDelay < 0 {
		return &errors.ValidationError{Field: "fetch_delay", Message: "must not be negative"}
	}
	if c.Crawl.HTTPTimeout <= 0 {
		return &errors.ValidationError{Field: "http_timeout", Message: "must be positive"}
	}
	if c.Crawl.MaxSitemapDepth < 0 {
		return &errors.ValidationError{Field: "max_sitemap_depth", Message: "must not be negative"}
	}
	if c.Crawl.SummaryMinLength < 1 || c.Crawl.SummaryMaxLength < c.Crawl.SummaryMinLength {
		return &errors.ValidationError{Field: "summary_length", Message: "need 1 <= min <= max"}
	}

	if err := c.validateAnalyzer(); err != nil {
		return err
	}

	switch c.Cache.Type {
	case CacheNone, CacheMemory, CacheSQLite:
	case CacheRedis:
		if c.Cache.Redis.Address == "" {
			return &errors.ValidationError{Field: "redis_address", Message: "cannot be empty when using redis cache"}
		}
	default:
		return &errors.ValidationError{Field: "cache_type", Message: fmt.Sprintf("unknown cache type %q", c.Cache.Type)}
	}

	switch c.Store.Type {
	case StoreFilesystem:
		if c.Store.Root == "" {
			return &errors.ValidationError{Field: "store_root", Message: "cannot be empty when using filesystem store"}
		}
	case StoreSQLite:
	case StoreElasticsearch:
		if c.Store.Elasticsearch.URL == "" {
			return &errors.ValidationError{Field: "elasticsearch_url", Message: "cannot be empty when using elasticsearch store"}
		}
	default:
		return &errors.ValidationError{Field: "store_type", Message: fmt.Sprintf("unknown store type %q", c.Store.Type)}
	}

	return nil
}

func (c *Config) validateAnalyzer() error {
	if c.Analyzer.SummarizerModel == "" {
		return &errors.ValidationError{Field: "summarizer_model", Message: "must be set"}
	}
	if c.Analyzer.SentimentModel == "" {
		return &errors.ValidationError{Field: "sentiment_model", Message: "must be set"}
	}

	switch c.Analyzer.Type {
	case AnalyzerInference:
		if c.Analyzer.InferenceURL == "" {
			return &errors.ValidationError{Field: "inference_url", Message: "cannot be empty when using the inference analyzer"}
		}
		if !validDevice(c.Analyzer.Device) {
			return &errors.ValidationError{
				Field:   "device",
				Message: fmt.Sprintf("must be one of %s", strings.Join(Devices, ", ")),
			}
		}
	case AnalyzerGemini:
		if c.Analyzer.GeminiAPIKey == "" {
			return &errors.ValidationError{Field: "gemini_api_key", Message: "cannot be empty when using the gemini analyzer"}
		}
	default:
		return &errors.ValidationError{Field: "analyzer", Message: fmt.Sprintf("unknown analyzer %q", c.Analyzer.Type)}
	}
	return nil
}

func validDevice(device string) bool {
	for _, d := range Devices {
		if d == device {
			return true
		}
	}
	return false
}
