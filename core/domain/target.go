// ABOUTME: CrawlTarget domain model describes the site and calendar date of one run
// ABOUTME: Provides date components for URL matching and the output path for the batch

package domain

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"golang.org/x/net/publicsuffix"

	"news-summarizer/core/errors"
	timeutil "news-summarizer/pkg/utils/time"
)

// DefaultDateLayout is the layout used when no date format is supplied
const DefaultDateLayout = "2006-01-02"

// CrawlTarget is the immutable input of one run
type CrawlTarget struct {
	// BaseURL is the site root, without a trailing slash
	BaseURL *url.URL

	// Date is the publication date in UTC at midnight
	Date time.Time
}

// NewCrawlTarget validates the base URL and parses the date using layout.
// Layout may be a Go reference layout or a strftime pattern such as %Y-%m-%d.
func NewCrawlTarget(baseURL, date, layout string) (*CrawlTarget, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, &errors.ValidationError{Field: "base_url", Message: "must not be empty"}
	}

	parsed, err := url.Parse(strings.TrimRight(strings.TrimSpace(baseURL), "/"))
	if err != nil {
		return nil, &errors.ValidationError{Field: "base_url", Message: err.Error()}
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, &errors.ValidationError{Field: "base_url", Message: "scheme must be http or https"}
	}
	if parsed.Host == "" {
		return nil, &errors.ValidationError{Field: "base_url", Message: "host is missing"}
	}

	if layout == "" {
		layout = DefaultDateLayout
	}
	day, err := time.Parse(timeutil.LayoutFromStrftime(layout), strings.TrimSpace(date))
	if err != nil {
		return nil, &errors.ValidationError{Field: "date", Message: err.Error()}
	}

	return &CrawlTarget{
		BaseURL: parsed,
		Date:    time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC),
	}, nil
}

// Base returns the base URL as a string without a trailing slash
func (t *CrawlTarget) Base() string {
	return strings.TrimRight(t.BaseURL.String(), "/")
}

// Source returns the host of the base URL, as recorded on every article
func (t *CrawlTarget) Source() string {
	return t.BaseURL.Host
}

// Year returns the four digit year component
func (t *CrawlTarget) Year() string {
	return fmt.Sprintf("%04d", t.Date.Year())
}

// Month returns the zero padded month component
func (t *CrawlTarget) Month() string {
	return fmt.Sprintf("%02d", int(t.Date.Month()))
}

// Day returns the zero padded day component
func (t *CrawlTarget) Day() string {
	return fmt.Sprintf("%02d", t.Date.Day())
}

// Midnight returns the start of the target date in the given location.
// Lastmod values are compared against this so both sides share an offset.
func (t *CrawlTarget) Midnight(loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	return time.Date(t.Date.Year(), t.Date.Month(), t.Date.Day(), 0, 0, 0, 0, loc)
}

// DateString returns the target date as YYYY-MM-DD
func (t *CrawlTarget) DateString() string {
	return t.Date.Format(DefaultDateLayout)
}

// OutputPath returns "{date}/{public suffix}/{domain}" for the base URL host.
// For example https://www.example.co.uk on 2023-08-13 gives 2023-08-13/co.uk/example.
func (t *CrawlTarget) OutputPath() string {
	host := strings.ToLower(t.BaseURL.Hostname())
	suffix, _ := publicsuffix.PublicSuffix(host)

	domain := host
	if etld1, err := publicsuffix.EffectiveTLDPlusOne(host); err == nil {
		domain = strings.TrimSuffix(etld1, "."+suffix)
	}

	return fmt.Sprintf("%s/%s/%s", t.DateString(), suffix, domain)
}
