// ABOUTME: Text chunker fits article text to the analysis model's input limit
// ABOUTME: Splits oversized text once at the middle line and rejoins chunk outputs in order

package chunker

import (
	"context"
	"fmt"
	"strings"
)

// TokenCounter counts tokens with the model's own tokenizer
type TokenCounter func(ctx context.Context, text string) (int, error)

// Split returns [text] when it fits within maxTokens. Otherwise the lines
// are cut at len(lines)/2 into exactly two parts, the middle line starting
// the second part. The split is single level: a part that is still too
// long is returned as is.
func Split(ctx context.Context, text string, count TokenCounter, maxTokens int) ([]string, error) {
	tokens, err := count(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("count tokens: %w", err)
	}
	if tokens <= maxTokens {
		return []string{text}, nil
	}

	lines := strings.Split(text, "\n")
	if len(lines) < 2 {
		return []string{text}, nil
	}

	mid := len(lines) / 2
	return []string{
		strings.Join(lines[:mid], "\n"),
		strings.Join(lines[mid:], "\n"),
	}, nil
}

// Join concatenates chunk outputs in chunk order separated by newlines.
// A single output is returned unchanged.
func Join(outputs []string) string {
	if len(outputs) == 1 {
		return outputs[0]
	}
	return strings.Join(outputs, "\n")
}
