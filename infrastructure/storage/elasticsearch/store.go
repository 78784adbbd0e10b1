// ABOUTME: Elasticsearch object store indexes each record of a batch as one document
// ABOUTME: Uses the Bulk API with ids derived from the batch path and article link

package elasticsearch

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"

	es "github.com/elastic/go-elasticsearch/v8"

	"news-summarizer/core/domain"
	"news-summarizer/core/errors"
)

// DefaultIndex is used when no index name is configured
const DefaultIndex = "news-articles"

// Config holds Elasticsearch connection settings
type Config struct {
	Addresses []string
	Username  string
	Password  string
	APIKey    string
	Index     string
}

// Store implements interfaces.ObjectStore on an Elasticsearch index
type Store struct {
	client *es.Client
	index  string
}

// document is the indexed shape of an ArticleRecord
type document struct {
	domain.ArticleRecord
	Path string `json:"path"`
}

type bulkMeta struct {
	Index struct {
		Index string `json:"_index"`
		ID    string `json:"_id"`
	} `json:"index"`
}

type bulkResponse struct {
	Errors bool `json:"errors"`
	Items  []map[string]struct {
		ID     string `json:"_id"`
		Status int    `json:"status"`
		Error  *struct {
			Type   string `json:"type"`
			Reason string `json:"reason"`
		} `json:"error"`
	} `json:"items"`
}

// NewStore builds a store from connection settings
func NewStore(cfg Config) (*Store, error) {
	clientConfig := es.Config{Addresses: cfg.Addresses}
	if cfg.APIKey != "" {
		clientConfig.APIKey = cfg.APIKey
	} else if cfg.Username != "" && cfg.Password != "" {
		clientConfig.Username = cfg.Username
		clientConfig.Password = cfg.Password
	}

	client, err := es.NewClient(clientConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create Elasticsearch client: %w", err)
	}
	return NewStoreWithClient(client, cfg.Index), nil
}

// NewStoreWithClient wraps an existing client
func NewStoreWithClient(client *es.Client, index string) *Store {
	if index == "" {
		index = DefaultIndex
	}
	return &Store{client: client, index: index}
}

// DocumentID returns the stable id of a record within a batch path, so a
// rerun for the same target overwrites its earlier documents
func DocumentID(path, link string) string {
	sum := sha256.Sum256([]byte(path + "\n" + link))
	return hex.EncodeToString(sum[:])
}

// WriteBatch indexes every record in a single Bulk request
func (s *Store) WriteBatch(ctx context.Context, path string, records []domain.ArticleRecord) error {
	if len(records) == 0 {
		return errors.ErrEmptyBatch
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	for i := range records {
		var meta bulkMeta
		meta.Index.Index = s.index
		meta.Index.ID = DocumentID(path, records[i].Link)

		if err := enc.Encode(meta); err != nil {
			return fmt.Errorf("encode bulk meta: %w", err)
		}
		if err := enc.Encode(document{ArticleRecord: records[i], Path: path}); err != nil {
			return fmt.Errorf("encode record %d: %w", i, err)
		}
	}

	res, err := s.client.Bulk(
		bytes.NewReader(buf.Bytes()),
		s.client.Bulk.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("bulk request: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("bulk request failed: %s", res.String())
	}

	var parsed bulkResponse
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return fmt.Errorf("decode bulk response: %w", err)
	}
	if !parsed.Errors {
		return nil
	}

	var reasons []string
	for _, item := range parsed.Items {
		for _, result := range item {
			if result.Error != nil {
				reasons = append(reasons, fmt.Sprintf("%s: %s", result.Error.Type, result.Error.Reason))
			}
		}
	}
	return fmt.Errorf("bulk indexed with %d failures: %s", len(reasons), strings.Join(reasons, "; "))
}
