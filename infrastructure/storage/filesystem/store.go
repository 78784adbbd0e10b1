// ABOUTME: Filesystem object store writes each run's batch as a JSON Lines file
// ABOUTME: Lays files out as {root}/{date}/{suffix}/{domain}.jsonl and replaces them atomically

package filesystem

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"news-summarizer/core/domain"
	"news-summarizer/core/errors"
)

// Extension is appended to every batch path
const Extension = ".jsonl"

// Store implements interfaces.ObjectStore on the local filesystem
type Store struct {
	root string
}

// NewStore creates a store rooted at root, creating the directory if needed
func NewStore(root string) (*Store, error) {
	if root == "" {
		return nil, &errors.ValidationError{Field: "store_root", Message: "must not be empty"}
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create store root: %w", err)
	}
	return &Store{root: root}, nil
}

// Location returns the file a batch path is written to
func (s *Store) Location(path string) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(strings.TrimPrefix(path, "/")))
	if clean == "." || strings.HasPrefix(clean, "..") {
		return "", &errors.ValidationError{Field: "path", Message: fmt.Sprintf("invalid batch path %q", path)}
	}
	return filepath.Join(s.root, clean+Extension), nil
}

// WriteBatch writes one record per line. An existing file for the same path
// is replaced only once the new one is complete.
func (s *Store) WriteBatch(ctx context.Context, path string, records []domain.ArticleRecord) error {
	if len(records) == 0 {
		return errors.ErrEmptyBatch
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	location, err := s.Location(path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(location), 0o755); err != nil {
		return fmt.Errorf("create batch directory: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(location), ".batch-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	w := bufio.NewWriter(tmp)
	enc := json.NewEncoder(w)
	for i := range records {
		if err := enc.Encode(&records[i]); err != nil {
			tmp.Close()
			return fmt.Errorf("encode record %d: %w", i, err)
		}
	}
	if err := w.Flush(); err != nil {
		tmp.Close()
		return fmt.Errorf("flush batch: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close batch: %w", err)
	}

	if err := os.Rename(tmp.Name(), location); err != nil {
		return fmt.Errorf("publish batch: %w", err)
	}
	return nil
}

// ReadBatch reads a batch written by WriteBatch
func (s *Store) ReadBatch(path string) ([]domain.ArticleRecord, error) {
	location, err := s.Location(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(location)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	records := make([]domain.ArticleRecord, 0)
	dec := json.NewDecoder(f)
	for dec.More() {
		var r domain.ArticleRecord
		if err := dec.Decode(&r); err != nil {
			return nil, fmt.Errorf("decode record %d: %w", len(records), err)
		}
		records = append(records, r)
	}
	return records, nil
}
