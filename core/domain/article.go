// ABOUTME: Article domain models carry a discovered URL from fetch through analysis
// ABOUTME: Defines RawArticle, ArticleRecord and the tagged Analysis result

package domain

import (
	"net/url"
)

// RawArticle is one discovered article URL and its extracted text.
// Text is nil when the page could not be fetched or yielded no content.
type RawArticle struct {
	URL  string
	Text *string
}

// HasText reports whether extraction produced non-empty text
func (a RawArticle) HasText() bool {
	return a.Text != nil && *a.Text != ""
}

// ArticleRecord is the terminal output unit, one per RawArticle.
// The analysis fields are either all set or all nil.
type ArticleRecord struct {
	Source             string   `json:"source"`
	Link               string   `json:"link"`
	ArticleText        *string  `json:"article_text"`
	Summary            *string  `json:"summary"`
	SentimentLabel     *string  `json:"sentiment_label"`
	SentimentScore     *float64 `json:"sentiment_score"`
	SentimentModel     *string  `json:"sentiment_model"`
	SummarizationModel *string  `json:"summarization_model"`
}

// Degraded reports whether the analysis fields are absent
func (r ArticleRecord) Degraded() bool {
	return r.Summary == nil
}

// NewDefaultRecord builds the record with every analysis field absent
func NewDefaultRecord(raw RawArticle) ArticleRecord {
	return ArticleRecord{
		Source:      SourceOf(raw.URL),
		Link:        raw.URL,
		ArticleText: raw.Text,
	}
}

// SourceOf returns the host (with port, if any) of an article link
func SourceOf(link string) string {
	u, err := url.Parse(link)
	if err != nil {
		return ""
	}
	return u.Host
}

// Models names the two analysis models recorded on successful records
type Models struct {
	Summarization string
	Sentiment     string
}

// AnalysisStatus tags an Analysis as a success or a degradation
type AnalysisStatus int

const (
	AnalysisSuccess AnalysisStatus = iota
	AnalysisDegraded
)

// String returns a log friendly name for the status
func (s AnalysisStatus) String() string {
	if s == AnalysisSuccess {
		return "success"
	}
	return "degraded"
}

// Analysis is the internal result of running one article through the
// analysis chain. It is collapsed to an ArticleRecord by Record.
type Analysis struct {
	Status AnalysisStatus

	// Set when Status is AnalysisSuccess
	Summary string
	Label   string
	Score   float64

	// Set when Status is AnalysisDegraded
	Reason string
	Err    error
}

// Succeeded builds a successful Analysis
func Succeeded(summary, label string, score float64) Analysis {
	return Analysis{Status: AnalysisSuccess, Summary: summary, Label: label, Score: score}
}

// Degrade builds a degraded Analysis
func Degrade(reason string, err error) Analysis {
	return Analysis{Status: AnalysisDegraded, Reason: reason, Err: err}
}

// Record collapses the analysis into the uniform record shape
func (a Analysis) Record(raw RawArticle, models Models) ArticleRecord {
	record := NewDefaultRecord(raw)
	if a.Status != AnalysisSuccess {
		return record
	}

	summary := a.Summary
	label := a.Label
	score := a.Score
	sentimentModel := models.Sentiment
	summarizationModel := models.Summarization

	record.Summary = &summary
	record.SentimentLabel = &label
	record.SentimentScore = &score
	record.SentimentModel = &sentimentModel
	record.SummarizationModel = &summarizationModel
	return record
}
