// ABOUTME: Storage interfaces for persisting the records of a run
// ABOUTME: Defines the Object Store contract used after the analysis phase

package interfaces

import (
	"context"

	"news-summarizer/core/domain"
)

// ObjectStore persists one run's records as a single tabular batch.
// Callers never invoke WriteBatch with an empty slice.
type ObjectStore interface {
	// WriteBatch writes records under path, where path has the form
	// "{date}/{public suffix}/{domain}".
	WriteBatch(ctx context.Context, path string, records []domain.ArticleRecord) error
}
