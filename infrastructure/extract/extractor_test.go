package extract

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const articlePage = `<!DOCTYPE html>
<html>
<head><title>Council approves new park</title></head>
<body>
  <nav><a href="/">Home</a><a href="/news">News</a></nav>
  <article>
    <h1>Council approves new park</h1>
    <p>The city council voted on Sunday to approve a new riverside park, ending a debate that lasted more than two years and drew hundreds of residents to public meetings.</p>
    <p>Construction is expected to begin next spring, with the first phase including walking paths, a playground and a small amphitheatre for community events along the water.</p>
    <p>Officials said the project would be funded through a combination of state grants and a local bond measure approved by voters last November, keeping costs off the general budget.</p>
  </article>
  <footer>Copyright Example News</footer>
</body>
</html>`

func TestExtractHTML_KeepsParagraphsAsLines(t *testing.T) {
	text, err := ExtractHTML([]byte(articlePage), "https://example.com/2023/08/13/park")

	require.NoError(t, err)
	assert.Contains(t, text, "The city council voted on Sunday")
	assert.Contains(t, text, "Construction is expected to begin next spring")
	assert.GreaterOrEqual(t, strings.Count(text, "\n"), 2)
	assert.NotContains(t, text, "Copyright Example News")
}

func TestExtractHTML_FallbackContainer(t *testing.T) {
	page := `<html><body><main><p>Short one.</p><p>Short two.</p></main></body></html>`

	text, err := ExtractHTML([]byte(page), "https://example.com/a")

	require.NoError(t, err)
	assert.Contains(t, text, "Short one.")
	assert.Contains(t, text, "Short two.")
}

func TestExtractHTML_NoContent(t *testing.T) {
	text, err := ExtractHTML([]byte(`<html><body><script>var x = 1;</script></body></html>`), "https://example.com/a")

	require.NoError(t, err)
	assert.Empty(t, text)
}

func TestExtractHTML_BadURL(t *testing.T) {
	_, err := ExtractHTML([]byte(articlePage), "://bad")

	assert.Error(t, err)
}

func TestExtractor_Extract(t *testing.T) {
	var gotAgent string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAgent = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(articlePage))
	}))
	defer server.Close()

	e := NewExtractor(Config{UserAgent: "news-summarizer-test", Timeout: 5 * time.Second})
	text, err := e.Extract(context.Background(), server.URL+"/2023/08/13/park")

	require.NoError(t, err)
	assert.Contains(t, text, "riverside park")
	assert.Equal(t, "news-summarizer-test", gotAgent)
}

func TestExtractor_Extract_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	e := NewExtractor(Config{})
	text, err := e.Extract(context.Background(), server.URL+"/missing")

	assert.Error(t, err)
	assert.Empty(t, text)
}

func TestExtractor_Extract_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewExtractor(Config{}).Extract(ctx, "https://example.com/a")

	assert.ErrorIs(t, err, context.Canceled)
}
