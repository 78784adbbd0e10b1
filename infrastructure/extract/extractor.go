// ABOUTME: Content extractor downloads article pages and pulls out their readable text
// ABOUTME: Uses colly for download, go-readability for extraction and goquery as a fallback

package extract

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-shiori/go-readability"
	"github.com/gocolly/colly"

	htmlutil "news-summarizer/pkg/utils/html"
)

const (
	// maxBodySize caps a downloaded article page
	maxBodySize = 10 * 1024 * 1024

	// textSelector lists the block elements kept as separate lines
	textSelector = "p, h1, h2, h3, h4, blockquote, li"
)

// fallbackContainers are tried in order when readability finds nothing
var fallbackContainers = []string{"article", "main", "body"}

// Config controls page downloads
type Config struct {
	UserAgent string
	Timeout   time.Duration
}

// Extractor implements interfaces.ContentExtractor
type Extractor struct {
	cfg Config
}

// NewExtractor creates an extractor
func NewExtractor(cfg Config) *Extractor {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 60 * time.Second
	}
	return &Extractor{cfg: cfg}
}

// Extract downloads pageURL and returns its main text with one paragraph
// per line. An empty string means the page had no readable text.
func (e *Extractor) Extract(ctx context.Context, pageURL string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	body, finalURL, err := e.download(pageURL)
	if err != nil {
		return "", err
	}
	return ExtractHTML(body, finalURL)
}

// download fetches one page with a fresh collector. Collectors keep
// callbacks per instance, so sharing one across goroutines would mix results.
func (e *Extractor) download(pageURL string) ([]byte, string, error) {
	options := []func(*colly.Collector){
		colly.MaxBodySize(maxBodySize),
		colly.Async(false),
		colly.AllowURLRevisit(),
	}
	if e.cfg.UserAgent != "" {
		options = append(options, colly.UserAgent(e.cfg.UserAgent))
	}

	c := colly.NewCollector(options...)
	c.SetRequestTimeout(e.cfg.Timeout)

	var body []byte
	finalURL := pageURL
	var fetchErr error

	c.OnResponse(func(r *colly.Response) {
		body = r.Body
		finalURL = r.Request.URL.String()
	})
	c.OnError(func(r *colly.Response, err error) {
		if r != nil && r.StatusCode != 0 {
			fetchErr = fmt.Errorf("status %d: %w", r.StatusCode, err)
			return
		}
		fetchErr = err
	})

	if err := c.Visit(pageURL); err != nil {
		return nil, "", fmt.Errorf("visit %s: %w", pageURL, err)
	}
	if fetchErr != nil {
		return nil, "", fmt.Errorf("download %s: %w", pageURL, fetchErr)
	}
	return body, finalURL, nil
}

// ExtractHTML extracts readable text from an already downloaded page
func ExtractHTML(body []byte, pageURL string) (string, error) {
	u, err := url.Parse(pageURL)
	if err != nil {
		return "", fmt.Errorf("parse page url: %w", err)
	}

	if article, err := readability.FromReader(bytes.NewReader(body), u); err == nil {
		if text := htmlText(article.Content); text != "" {
			return text, nil
		}
		if text := htmlutil.NormalizeLines(article.TextContent); text != "" {
			return text, nil
		}
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("parse page html: %w", err)
	}
	doc.Find("script, style, noscript, nav, header, footer, aside").Remove()

	for _, container := range fallbackContainers {
		if text := blocksText(doc.Find(container).First()); text != "" {
			return text, nil
		}
	}
	return "", nil
}

func htmlText(fragment string) string {
	if strings.TrimSpace(fragment) == "" {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return ""
	}
	return blocksText(doc.Selection)
}

// blocksText joins the text of each block element on its own line
func blocksText(sel *goquery.Selection) string {
	if sel.Length() == 0 {
		return ""
	}

	lines := make([]string, 0)
	sel.Find(textSelector).Each(func(_ int, s *goquery.Selection) {
		// nested blocks are emitted by their own match
		if s.Find(textSelector).Length() > 0 {
			return
		}
		if line := htmlutil.CollapseWhitespace(s.Text()); line != "" {
			lines = append(lines, line)
		}
	})
	return strings.Join(lines, "\n")
}
