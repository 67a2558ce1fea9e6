package services

import (
	"context"
	"fmt"
	"time"

	"github.com/mendableai/firecrawl-go"
	"go.uber.org/zap"

	"speaker-event-finder/internal/config"
)

// FirecrawlClient fetches the readable content of a page through the
// Firecrawl scraping API.
type FirecrawlClient struct {
	app     *firecrawl.FirecrawlApp
	timeout time.Duration
	log     *zap.Logger
}

// NewFirecrawlClient creates a Firecrawl client from the service config
func NewFirecrawlClient(cfg *config.Config, log *zap.Logger) (*FirecrawlClient, error) {
	app, err := firecrawl.NewFirecrawlApp(cfg.FirecrawlAPIKey, "https://api.firecrawl.dev")
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Firecrawl client: %w", err)
	}

	return &FirecrawlClient{
		app:     app,
		timeout: cfg.FirecrawlTimeout(),
		log:     log,
	}, nil
}

// Scrape fetches a URL and returns its main content as markdown. The
// call is bounded by the configured per-URL timeout and aborts early if
// ctx is cancelled.
func (fc *FirecrawlClient) Scrape(ctx context.Context, url string) (string, error) {
	if url == "" {
		return "", fmt.Errorf("URL cannot be empty")
	}

	timeoutMS := int(fc.timeout.Milliseconds())
	onlyMain := true
	params := &firecrawl.ScrapeParams{
		Formats:         []string{"markdown"},
		OnlyMainContent: &onlyMain,
		ExcludeTags:     []string{"script", "style", "nav", "footer", "header"},
		Timeout:         &timeoutMS,
	}

	type scrapeResult struct {
		doc *firecrawl.FirecrawlDocument
		err error
	}

	// The SDK call is synchronous; run it aside so the configured
	// timeout and caller cancellation both still apply.
	resultCh := make(chan scrapeResult, 1)
	go func() {
		doc, err := fc.app.ScrapeURL(url, params)
		resultCh <- scrapeResult{doc: doc, err: err}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case <-time.After(fc.timeout + time.Second):
		return "", fmt.Errorf("firecrawl scrape timed out after %s for %s", fc.timeout, url)
	case res := <-resultCh:
		if res.err != nil {
			return "", fmt.Errorf("firecrawl scrape failed: %w", res.err)
		}
		if res.doc == nil || res.doc.Markdown == "" {
			return "", fmt.Errorf("no content extracted from %s", url)
		}
		fc.log.Debug("Scraped page",
			zap.String("url", url),
			zap.Int("markdown_chars", len(res.doc.Markdown)))
		return res.doc.Markdown, nil
	}
}
