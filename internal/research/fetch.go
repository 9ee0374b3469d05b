package research

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const (
	fetchTimeout = 30 * time.Second
	userAgent    = "Mozilla/5.0 (compatible; JobAgent/1.0)"

	// SiteText is prompt grounding, not an archive. Longer pages are cut.
	maxSiteTextLen = 8000
)

var whitespacePattern = regexp.MustCompile(`\s+`)

// SiteText fetches a company website and returns its visible text, with
// navigation and script noise stripped. The result is capped so it stays
// usable as prompt context.
func SiteText(ctx context.Context, siteURL string) (string, error) {
	parsed, err := url.Parse(siteURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return "", &FetchError{URL: siteURL, Message: "invalid URL", Cause: err}
	}

	client := &http.Client{Timeout: fetchTimeout}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, siteURL, nil)
	if err != nil {
		return "", &FetchError{URL: siteURL, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := client.Do(req)
	if err != nil {
		return "", &FetchError{URL: siteURL, Message: "HTTP request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", &FetchError{URL: siteURL, Message: fmt.Sprintf("HTTP status %d", resp.StatusCode)}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &FetchError{URL: siteURL, Message: "failed to read response body", Cause: err}
	}

	return ExtractText(string(body))
}

// ExtractText parses HTML and returns normalized visible text. Main content
// selectors are tried first; body is the fallback.
func ExtractText(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	doc.Find("nav, footer, header, script, style, noscript, .cookie-banner, .popup").Remove()

	var content *goquery.Selection
	for _, selector := range []string{"main", "article", ".content", "#content"} {
		if sel := doc.Find(selector); sel.Length() > 0 {
			content = sel.First()
			break
		}
	}
	if content == nil {
		content = doc.Find("body")
	}

	text := whitespacePattern.ReplaceAllString(content.Text(), " ")
	text = strings.TrimSpace(text)
	if len(text) > maxSiteTextLen {
		text = text[:maxSiteTextLen]
	}
	return text, nil
}
