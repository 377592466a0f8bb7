package extract

import (
	"context"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
)

// WebExtractor fetches a page and reduces it to plain text for the bundle.
type WebExtractor struct {
	client *http.Client
}

// NewWebExtractor creates a WebExtractor with a default client.
func NewWebExtractor() *WebExtractor {
	return &WebExtractor{
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

var whitespaceRe = regexp.MustCompile(`\s+`)

// ExtractContent fetches targetURL, drops script and style elements, and
// returns the body text with whitespace collapsed. Extraction is best-effort:
// any fetch or parse error is logged and an empty string returned, never an
// error to the caller.
func (w *WebExtractor) ExtractContent(ctx context.Context, targetURL string) string {
	log := zap.L().With(zap.String("url", targetURL))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, targetURL, nil)
	if err != nil {
		log.Warn("extract: invalid URL", zap.Error(err))
		return ""
	}

	resp, err := w.client.Do(req)
	if err != nil {
		log.Warn("extract: fetch failed", zap.Error(err))
		return ""
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode >= 400 {
		log.Warn("extract: fetch returned error status", zap.Int("status", resp.StatusCode))
		return ""
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		log.Warn("extract: parse failed", zap.Error(err))
		return ""
	}

	doc.Find("script, style").Remove()
	content := doc.Find("body").Text()

	return strings.TrimSpace(whitespaceRe.ReplaceAllString(content, " "))
}
