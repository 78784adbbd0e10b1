// ABOUTME: Text analyzer backed by the Gemini API
// ABOUTME: Summarizes and classifies through prompts and counts tokens with the model's tokenizer

package gemini

import (
	"context"
	stderrors "errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"news-summarizer/core/errors"
	"news-summarizer/core/interfaces"
)

// DefaultMaxInputTokens is used when the model info call fails
const DefaultMaxInputTokens = 32768

const (
	summarizePrompt = "Summarize the following news article in %d to %d words. Reply with the summary only.\n\n%s"
	classifyPrompt  = "Classify the sentiment of the following text as POSITIVE or NEGATIVE. " +
		"Reply with the label and a confidence between 0 and 1, for example: POSITIVE 0.93\n\n%s"
)

// Config selects the Gemini models
type Config struct {
	APIKey          string
	SummarizerModel string
	SentimentModel  string
}

// generator is the part of *genai.GenerativeModel used by the client
type generator interface {
	GenerateContent(ctx context.Context, parts ...genai.Part) (*genai.GenerateContentResponse, error)
	CountTokens(ctx context.Context, parts ...genai.Part) (*genai.CountTokensResponse, error)
}

// Client implements interfaces.TextAnalyzer. genai models are safe for
// concurrent use and the client keeps no other state.
type Client struct {
	client     *genai.Client
	summarizer generator
	classifier generator
	cfg        Config
	maxTokens  int
}

// NewClient connects to Gemini and reads the summarizer's input token limit.
// Extra options are passed to genai.NewClient.
func NewClient(ctx context.Context, logger interfaces.Logger, cfg Config, opts ...option.ClientOption) (*Client, error) {
	if logger == nil {
		logger = interfaces.NopLogger{}
	}
	if cfg.APIKey == "" {
		return nil, &errors.ValidationError{Field: "gemini_api_key", Message: "must be set for the gemini analyzer"}
	}
	if cfg.SummarizerModel == "" || cfg.SentimentModel == "" {
		return nil, &errors.ValidationError{Field: "model", Message: "summarizer and sentiment models must be set"}
	}

	opts = append(opts, option.WithAPIKey(cfg.APIKey))
	client, err := genai.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	summarizer := client.GenerativeModel(cfg.SummarizerModel)
	summarizer.SetTemperature(0)
	classifier := client.GenerativeModel(cfg.SentimentModel)
	classifier.SetTemperature(0)

	c := &Client{
		client:     client,
		summarizer: summarizer,
		classifier: classifier,
		cfg:        cfg,
		maxTokens:  DefaultMaxInputTokens,
	}

	info, err := summarizer.Info(ctx)
	if err != nil {
		logger.Warn("Could not read model input limit, using default", map[string]interface{}{
			"model":   cfg.SummarizerModel,
			"default": DefaultMaxInputTokens,
			"error":   err.Error(),
		})
	} else if info.InputTokenLimit > 0 {
		c.maxTokens = int(info.InputTokenLimit)
	}

	return c, nil
}

// Close releases the underlying connection
func (c *Client) Close() error {
	if c.client == nil {
		return nil
	}
	return c.client.Close()
}

// Transform summarizes text
func (c *Client) Transform(ctx context.Context, text string, constraints interfaces.Constraints) (string, error) {
	prompt := fmt.Sprintf(summarizePrompt, constraints.MinLength, constraints.MaxLength, text)

	resp, err := c.summarizer.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", mapError(c.cfg.SummarizerModel, err)
	}

	summary := responseText(resp)
	if summary == "" {
		return "", errors.NewModelError(errors.NoOutput, c.cfg.SummarizerModel, nil)
	}
	return summary, nil
}

// Classify asks the sentiment model for a label and confidence
func (c *Client) Classify(ctx context.Context, text string) (interfaces.Classification, error) {
	resp, err := c.classifier.GenerateContent(ctx, genai.Text(fmt.Sprintf(classifyPrompt, text)))
	if err != nil {
		return interfaces.Classification{}, mapError(c.cfg.SentimentModel, err)
	}

	cls, err := parseClassification(responseText(resp))
	if err != nil {
		return interfaces.Classification{}, errors.NewModelError(errors.NoOutput, c.cfg.SentimentModel, err)
	}
	return cls, nil
}

// CountTokens counts tokens with the summarizer's tokenizer
func (c *Client) CountTokens(ctx context.Context, text string) (int, error) {
	resp, err := c.summarizer.CountTokens(ctx, genai.Text(text))
	if err != nil {
		return 0, mapError(c.cfg.SummarizerModel, err)
	}
	return int(resp.TotalTokens), nil
}

// MaxInputTokens returns the summarizer's input limit
func (c *Client) MaxInputTokens() int {
	return c.maxTokens
}

// TransformModel returns the summarizer model name
func (c *Client) TransformModel() string {
	return c.cfg.SummarizerModel
}

// ClassifyModel returns the sentiment model name
func (c *Client) ClassifyModel() string {
	return c.cfg.SentimentModel
}

func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil {
		return ""
	}
	var b strings.Builder
	for _, cand := range resp.Candidates {
		if cand == nil || cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if t, ok := part.(genai.Text); ok {
				b.WriteString(string(t))
			}
		}
		break
	}
	return strings.TrimSpace(b.String())
}

// parseClassification reads "LABEL score" replies such as "POSITIVE 0.93"
func parseClassification(reply string) (interfaces.Classification, error) {
	fields := strings.Fields(strings.NewReplacer(",", " ", ":", " ").Replace(reply))
	if len(fields) == 0 {
		return interfaces.Classification{}, fmt.Errorf("empty classification reply")
	}

	label := strings.ToUpper(strings.Trim(fields[0], ".*"))
	if label != "POSITIVE" && label != "NEGATIVE" {
		return interfaces.Classification{}, fmt.Errorf("unexpected label %q", fields[0])
	}

	score := 1.0
	if len(fields) > 1 {
		parsed, err := strconv.ParseFloat(strings.Trim(fields[1], ".*"), 64)
		if err != nil {
			return interfaces.Classification{}, fmt.Errorf("unexpected score %q", fields[1])
		}
		score = parsed
	}
	if score < 0 {
		score = 0
	}
	if score > 1 {
		score = 1
	}

	return interfaces.Classification{Label: label, Score: score}, nil
}

// mapError converts API failures into model errors where the class is known
func mapError(model string, err error) error {
	var blocked *genai.BlockedError
	if stderrors.As(err, &blocked) {
		return errors.NewModelError(errors.MalformedInput, model, err)
	}

	var apiErr *googleapi.Error
	if stderrors.As(err, &apiErr) {
		switch apiErr.Code {
		case http.StatusBadRequest:
			return errors.NewModelError(errors.MalformedInput, model, err)
		case http.StatusTooManyRequests:
			return errors.NewModelError(errors.ResourceExhausted, model, err)
		}
	}
	return fmt.Errorf("gemini %s: %w", model, err)
}
