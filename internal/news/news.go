// Package news supplies the text context consumed by the sentiment
// tier. The default provider scrapes recent Google News headlines for a
// symbol; callers treat it as a black box that either returns non-empty
// text or fails.
package news

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
)

const (
	googleNewsURL = "https://news.google.com/rss/search"
	maxHeadlines  = 10
)

// GoogleNewsProvider scrapes Google News for recent headlines.
type GoogleNewsProvider struct {
	client *resty.Client
}

// NewGoogleNewsProvider creates a provider with sane HTTP defaults.
func NewGoogleNewsProvider() *GoogleNewsProvider {
	client := resty.New()
	client.SetTimeout(30 * time.Second)
	client.SetHeader("User-Agent", "Mozilla/5.0 (compatible; paytrader/1.0)")

	return &GoogleNewsProvider{client: client}
}

// FetchContext returns recent headlines for the symbol joined into one
// text block.
func (p *GoogleNewsProvider) FetchContext(ctx context.Context, symbol string) (string, error) {
	if strings.TrimSpace(symbol) == "" {
		return "", fmt.Errorf("symbol cannot be empty")
	}

	query := url.Values{}
	query.Set("q", symbol+" stock")
	query.Set("hl", "en-US")
	query.Set("gl", "US")

	resp, err := p.client.R().SetContext(ctx).Get(googleNewsURL + "?" + query.Encode())
	if err != nil {
		return "", fmt.Errorf("failed to fetch news for %s: %w", symbol, err)
	}
	if resp.StatusCode() != 200 {
		return "", fmt.Errorf("HTTP error %d when fetching news for %s", resp.StatusCode(), symbol)
	}

	headlines, err := parseHeadlines(resp.String())
	if err != nil {
		return "", err
	}
	if len(headlines) == 0 {
		return "", fmt.Errorf("no news found for %s", symbol)
	}

	return strings.Join(headlines, ". "), nil
}

func parseHeadlines(body string) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to parse news feed: %w", err)
	}

	var headlines []string
	doc.Find("item title").EachWithBreak(func(i int, s *goquery.Selection) bool {
		title := strings.TrimSpace(s.Text())
		if title != "" {
			headlines = append(headlines, title)
		}
		return len(headlines) < maxHeadlines
	})

	return headlines, nil
}

// StaticProvider returns a fixed text for every symbol. Useful for
// offline runs and tests.
type StaticProvider struct {
	Text string
}

func (p *StaticProvider) FetchContext(ctx context.Context, symbol string) (string, error) {
	if p.Text == "" {
		return "", fmt.Errorf("no news context configured")
	}
	return p.Text, nil
}
