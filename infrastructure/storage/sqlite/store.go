// ABOUTME: SQLite object store keeps every run's records in a single articles table
// ABOUTME: Rewriting a batch path replaces its previous rows inside one transaction

package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"news-summarizer/core/domain"
	"news-summarizer/core/errors"
)

// DefaultPath is used when no file path is configured
const DefaultPath = "articles.db"

// Store implements interfaces.ObjectStore using SQLite
type Store struct {
	db    *sql.DB
	newID func() string
}

// NewStore opens (or creates) the database file and its schema
func NewStore(filePath string) (*Store, error) {
	if filePath == "" {
		filePath = DefaultPath
	}

	db, err := sql.Open("sqlite3", filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to SQLite database: %w", err)
	}

	s := &Store{db: db, newID: uuid.NewString}
	if err := s.initSchema(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return s, nil
}

func (s *Store) initSchema() error {
	query := `
		CREATE TABLE IF NOT EXISTS articles (
			batch_id TEXT NOT NULL,
			path TEXT NOT NULL,
			position INTEGER NOT NULL,
			source TEXT NOT NULL,
			link TEXT NOT NULL,
			article_text TEXT,
			summary TEXT,
			sentiment_label TEXT,
			sentiment_score REAL,
			sentiment_model TEXT,
			summarization_model TEXT,
			PRIMARY KEY (path, position)
		);
		CREATE INDEX IF NOT EXISTS idx_articles_batch ON articles(batch_id);
	`

	_, err := s.db.Exec(query)
	return err
}

// WriteBatch replaces the rows stored under path with records
func (s *Store) WriteBatch(ctx context.Context, path string, records []domain.ArticleRecord) error {
	if len(records) == 0 {
		return errors.ErrEmptyBatch
	}
	if path == "" {
		return &errors.ValidationError{Field: "path", Message: "must not be empty"}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM articles WHERE path = ?`, path); err != nil {
		return fmt.Errorf("clear previous batch: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO articles (
			batch_id, path, position, source, link, article_text, summary,
			sentiment_label, sentiment_score, sentiment_model, summarization_model
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	batchID := s.newID()
	for i, r := range records {
		_, err := stmt.ExecContext(ctx,
			batchID, path, i, r.Source, r.Link,
			nullString(r.ArticleText), nullString(r.Summary),
			nullString(r.SentimentLabel), nullFloat(r.SentimentScore),
			nullString(r.SentimentModel), nullString(r.SummarizationModel),
		)
		if err != nil {
			return fmt.Errorf("insert record %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit batch: %w", err)
	}
	return nil
}

// ReadBatch returns the records stored under path in their written order
func (s *Store) ReadBatch(ctx context.Context, path string) ([]domain.ArticleRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT source, link, article_text, summary, sentiment_label,
			sentiment_score, sentiment_model, summarization_model
		FROM articles WHERE path = ? ORDER BY position
	`, path)
	if err != nil {
		return nil, fmt.Errorf("query batch: %w", err)
	}
	defer rows.Close()

	records := make([]domain.ArticleRecord, 0)
	for rows.Next() {
		var r domain.ArticleRecord
		var text, summary, label, sentModel, summaryModel sql.NullString
		var score sql.NullFloat64
		if err := rows.Scan(&r.Source, &r.Link, &text, &summary, &label, &score, &sentModel, &summaryModel); err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		r.ArticleText = stringPtr(text)
		r.Summary = stringPtr(summary)
		r.SentimentLabel = stringPtr(label)
		r.SentimentModel = stringPtr(sentModel)
		r.SummarizationModel = stringPtr(summaryModel)
		if score.Valid {
			v := score.Float64
			r.SentimentScore = &v
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// BatchID returns the id of the write that produced the rows under path
func (s *Store) BatchID(ctx context.Context, path string) (string, error) {
	var id string
	err := s.db.QueryRowContext(ctx, `SELECT batch_id FROM articles WHERE path = ? LIMIT 1`, path).Scan(&id)
	if err != nil {
		return "", err
	}
	return id, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func nullFloat(f *float64) sql.NullFloat64 {
	if f == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *f, Valid: true}
}

func stringPtr(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	v := s.String
	return &v
}
