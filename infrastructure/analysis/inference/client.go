// ABOUTME: Text analyzer backed by an HTTP inference sidecar hosting the models
// ABOUTME: Maps tokenize, summarize and classify calls to JSON endpoints and model errors

package inference

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"news-summarizer/core/errors"
	"news-summarizer/core/interfaces"
)

// DefaultMaxInputTokens is used when the sidecar does not report a limit
const DefaultMaxInputTokens = 1024

// Devices accepted by the sidecar
var Devices = []string{"cpu", "cuda", "mps"}

// Config selects the sidecar and its models
type Config struct {
	BaseURL         string
	SummarizerModel string
	SentimentModel  string
	Device          string
}

type tokenizeRequest struct {
	Model string `json:"model"`
	Text  string `json:"text"`
}

type tokenizeResponse struct {
	Count int `json:"count"`
}

type modelResponse struct {
	MaxInputTokens int `json:"max_input_tokens"`
}

type summarizeRequest struct {
	Model     string `json:"model"`
	Text      string `json:"text"`
	MinLength int    `json:"min_length"`
	MaxLength int    `json:"max_length"`
	Device    string `json:"device"`
}

type summarizeResponse struct {
	SummaryText string `json:"summary_text"`
}

type classifyRequest struct {
	Model  string `json:"model"`
	Text   string `json:"text"`
	Device string `json:"device"`
}

type classifyResponse struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// Client implements interfaces.TextAnalyzer. It holds no mutable state
// after construction and is safe for concurrent use.
type Client struct {
	http      interfaces.HTTPClient
	logger    interfaces.Logger
	cfg       Config
	maxTokens int
}

// NewClient validates cfg and asks the sidecar for the summarizer's input
// limit. If the sidecar cannot answer, DefaultMaxInputTokens is used.
func NewClient(ctx context.Context, httpClient interfaces.HTTPClient, logger interfaces.Logger, cfg Config) (*Client, error) {
	if logger == nil {
		logger = interfaces.NopLogger{}
	}
	if httpClient == nil {
		return nil, errors.ErrNoHTTPClient
	}
	if _, err := url.ParseRequestURI(cfg.BaseURL); err != nil {
		return nil, &errors.ValidationError{Field: "inference_url", Message: err.Error()}
	}
	if cfg.SummarizerModel == "" {
		return nil, &errors.ValidationError{Field: "summarizer_model", Message: "must not be empty"}
	}
	if cfg.SentimentModel == "" {
		return nil, &errors.ValidationError{Field: "sentiment_model", Message: "must not be empty"}
	}
	if cfg.Device == "" {
		cfg.Device = "cpu"
	}
	if !validDevice(cfg.Device) {
		return nil, &errors.ValidationError{Field: "device", Message: fmt.Sprintf("must be one of %s", strings.Join(Devices, ", "))}
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")

	c := &Client{http: httpClient, logger: logger, cfg: cfg, maxTokens: DefaultMaxInputTokens}

	logger.Info("Fetching model", map[string]interface{}{
		"model":  cfg.SummarizerModel,
		"device": cfg.Device,
	})

	var info modelResponse
	if err := c.do(ctx, http.MethodGet, "/models/"+url.PathEscape(cfg.SummarizerModel), nil, cfg.SummarizerModel, &info); err != nil {
		logger.Warn("Could not read model input limit, using default", map[string]interface{}{
			"model":   cfg.SummarizerModel,
			"default": DefaultMaxInputTokens,
			"error":   err.Error(),
		})
	} else if info.MaxInputTokens > 0 {
		c.maxTokens = info.MaxInputTokens
	}

	return c, nil
}

func validDevice(device string) bool {
	for _, d := range Devices {
		if d == device {
			return true
		}
	}
	return false
}

// Transform summarizes text
func (c *Client) Transform(ctx context.Context, text string, constraints interfaces.Constraints) (string, error) {
	req := summarizeRequest{
		Model:     c.cfg.SummarizerModel,
		Text:      text,
		MinLength: constraints.MinLength,
		MaxLength: constraints.MaxLength,
		Device:    c.cfg.Device,
	}

	var resp summarizeResponse
	if err := c.do(ctx, http.MethodPost, "/summarize", req, c.cfg.SummarizerModel, &resp); err != nil {
		return "", err
	}
	summary := strings.TrimSpace(resp.SummaryText)
	if summary == "" {
		return "", errors.NewModelError(errors.NoOutput, c.cfg.SummarizerModel, nil)
	}
	return summary, nil
}

// Classify runs sentiment analysis on text
func (c *Client) Classify(ctx context.Context, text string) (interfaces.Classification, error) {
	req := classifyRequest{Model: c.cfg.SentimentModel, Text: text, Device: c.cfg.Device}

	var resp classifyResponse
	if err := c.do(ctx, http.MethodPost, "/classify", req, c.cfg.SentimentModel, &resp); err != nil {
		return interfaces.Classification{}, err
	}
	if resp.Label == "" {
		return interfaces.Classification{}, errors.NewModelError(errors.NoOutput, c.cfg.SentimentModel, nil)
	}
	return interfaces.Classification{Label: resp.Label, Score: resp.Score}, nil
}

// CountTokens counts tokens with the summarizer's tokenizer
func (c *Client) CountTokens(ctx context.Context, text string) (int, error) {
	var resp tokenizeResponse
	req := tokenizeRequest{Model: c.cfg.SummarizerModel, Text: text}
	if err := c.do(ctx, http.MethodPost, "/tokenize", req, c.cfg.SummarizerModel, &resp); err != nil {
		return 0, err
	}
	return resp.Count, nil
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

func (c *Client) do(ctx context.Context, method, path string, payload interface{}, model string, out interface{}) error {
	endpoint := c.cfg.BaseURL + path

	var resp interfaces.Response
	var err error
	if method == http.MethodGet {
		resp, err = c.http.Get(ctx, endpoint)
	} else {
		body, marshalErr := json.Marshal(payload)
		if marshalErr != nil {
			return errors.NewModelError(errors.MalformedInput, model, marshalErr)
		}
		resp, err = c.http.Post(ctx, endpoint, bytes.NewReader(body))
	}
	if err != nil {
		return fmt.Errorf("inference %s: %w", path, err)
	}
	defer resp.Body().Close()

	if resp.StatusCode() != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body(), 4096))
		return statusError(model, path, resp.StatusCode(), string(detail))
	}

	if err := json.NewDecoder(resp.Body()).Decode(out); err != nil {
		return errors.NewModelError(errors.NoOutput, model, fmt.Errorf("decode %s response: %w", path, err))
	}
	return nil
}

// statusError maps sidecar failures onto the model error kinds
func statusError(model, path string, status int, detail string) error {
	cause := fmt.Errorf("inference %s returned %d: %s", path, status, strings.TrimSpace(detail))

	switch {
	case status == http.StatusInsufficientStorage || strings.Contains(strings.ToLower(detail), "out of memory"):
		return errors.NewModelError(errors.ResourceExhausted, model, cause)
	case status == http.StatusBadRequest || status == http.StatusUnprocessableEntity:
		return errors.NewModelError(errors.MalformedInput, model, cause)
	default:
		return cause
	}
}
