// ABOUTME: Per-article analysis chain run by each pool worker
// ABOUTME: Chunks, summarizes, rejoins and classifies one article, degrading on any failure

package pipeline

import (
	"context"
	"fmt"

	"news-summarizer/core/chunker"
	"news-summarizer/core/domain"
	"news-summarizer/core/errors"
)

// Stages named in degradation logs
const (
	stageText      = "text"
	stageChunk     = "chunk"
	stageTransform = "transform"
	stageClassify  = "classify"
	stagePanic     = "panic"
)

// analyze runs one article through the chain. It never panics and never
// returns an error: every failure becomes a degraded Analysis.
func (o *Orchestrator) analyze(ctx context.Context, raw domain.RawArticle) (result domain.Analysis) {
	defer func() {
		if r := recover(); r != nil {
			result = o.degrade(raw, stagePanic, fmt.Errorf("recovered panic: %v", r))
		}
	}()

	if !raw.HasText() {
		return o.degrade(raw, stageText, errors.NewModelError(errors.NoOutput, "extractor", fmt.Errorf("article text is absent")))
	}

	chunks, err := chunker.Split(ctx, *raw.Text, o.analyzer.CountTokens, o.analyzer.MaxInputTokens())
	if err != nil {
		return o.degrade(raw, stageChunk, err)
	}
	if len(chunks) > 1 {
		o.deps.Logger.Info("Maximum allowed tokens reached, text split", map[string]interface{}{
			"url":        raw.URL,
			"chunks":     len(chunks),
			"max_tokens": o.analyzer.MaxInputTokens(),
		})
	}

	outputs := make([]string, 0, len(chunks))
	var lastErr error
	for i, chunk := range chunks {
		out, err := o.analyzer.Transform(ctx, chunk, o.cfg.Constraints)
		if err != nil {
			if !errors.IsModelError(err) {
				return o.degrade(raw, stageTransform, err)
			}
			o.deps.Logger.Warn("Chunk transform failed", map[string]interface{}{
				"url":   raw.URL,
				"chunk": i,
				"error": err.Error(),
			})
			lastErr = err
			continue
		}
		if out == "" {
			continue
		}
		outputs = append(outputs, out)
	}
	if len(outputs) == 0 {
		if lastErr == nil {
			lastErr = errors.NewModelError(errors.NoOutput, o.analyzer.TransformModel(), nil)
		}
		return o.degrade(raw, stageTransform, lastErr)
	}

	summary := chunker.Join(outputs)

	classification, err := o.analyzer.Classify(ctx, summary)
	if err != nil {
		return o.degrade(raw, stageClassify, err)
	}

	return domain.Succeeded(summary, classification.Label, classification.Score)
}

// degrade logs the failure and returns a degraded Analysis. Recognised
// model/content errors log at warn, anything else at error.
func (o *Orchestrator) degrade(raw domain.RawArticle, stage string, err error) domain.Analysis {
	fields := map[string]interface{}{
		"url":   raw.URL,
		"stage": stage,
	}
	if err != nil {
		fields["error"] = err.Error()
	}

	if err == nil || errors.IsModelError(err) {
		o.deps.Logger.Warn("Analysis degraded", fields)
	} else {
		o.deps.Logger.Error("Analysis degraded by unexpected error", fields)
	}
	return domain.Degrade(stage, err)
}

