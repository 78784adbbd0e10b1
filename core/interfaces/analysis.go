// ABOUTME: Service interfaces for the collaborators of the crawl pipeline
// ABOUTME: Defines contracts for text analysis models and page content extraction

package interfaces

import (
	"context"
)

// Constraints bounds the length of a transform output, in model tokens
type Constraints struct {
	MinLength int
	MaxLength int
}

// Classification is the output of the classification stage
type Classification struct {
	Label string
	Score float64
}

// TextAnalyzer is the text analysis capability. One instance is shared by
// every worker, so implementations must be safe for concurrent use.
// Failures that belong to the model/content class should be reported as
// *errors.ModelError.
type TextAnalyzer interface {
	// Transform reduces text (summarization) within the given constraints
	Transform(ctx context.Context, text string, constraints Constraints) (string, error)

	// Classify labels text and returns the label's score
	Classify(ctx context.Context, text string) (Classification, error)

	// CountTokens counts tokens using the transform model's own tokenizer
	CountTokens(ctx context.Context, text string) (int, error)

	// MaxInputTokens is the transform model's input limit
	MaxInputTokens() int

	// TransformModel names the model used by Transform
	TransformModel() string

	// ClassifyModel names the model used by Classify
	ClassifyModel() string
}

// ContentExtractor downloads a page and returns its main readable text.
// An empty string with a nil error means the page had no extractable content.
type ContentExtractor interface {
	Extract(ctx context.Context, pageURL string) (string, error)
}
