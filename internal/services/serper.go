package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"speaker-event-finder/internal/config"
	"speaker-event-finder/internal/models"
)

const serperSearchURL = "https://google.serper.dev/search"

// SerperClient performs web searches through the Serper.dev API
type SerperClient struct {
	httpClient *http.Client
	apiKey     string
	searchURL  string
	topN       int
	now        func() time.Time
	log        *zap.Logger
}

// serperQuery is one entry of the batch search payload
type serperQuery struct {
	Q   string `json:"q"`
	Num int    `json:"num"`
}

// serperResponse is the per-query response shape we care about
type serperResponse struct {
	Organic []struct {
		Title   string `json:"title"`
		Link    string `json:"link"`
		Snippet string `json:"snippet"`
	} `json:"organic"`
}

// NewSerperClient creates a Serper search client
func NewSerperClient(cfg *config.Config, log *zap.Logger) *SerperClient {
	return &SerperClient{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		apiKey:     cfg.SerperAPIKey,
		searchURL:  serperSearchURL,
		topN:       cfg.TopN,
		now:        time.Now,
		log:        log,
	}
}

// WithClock replaces the client's reference clock, which scopes the
// year query. Tests use this; the returned client is the receiver.
func (s *SerperClient) WithClock(now func() time.Time) *SerperClient {
	s.now = now
	return s
}

// Search issues the speaker query templates as one batch request and
// returns the flattened organic results in provider relevance order,
// capped at TopN. Any transport, auth, or decode failure is returned as
// a *SearchProviderError; search is the one request-fatal dependency.
func (s *SerperClient) Search(ctx context.Context, name string) ([]models.SearchResult, error) {
	queries := buildSearchQueries(name, s.now())

	payload := make([]serperQuery, 0, len(queries))
	for _, q := range queries {
		payload = append(payload, serperQuery{Q: q, Num: s.topN})
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, &SearchProviderError{Provider: "serper", Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.searchURL, bytes.NewReader(body))
	if err != nil {
		return nil, &SearchProviderError{Provider: "serper", Err: err}
	}
	req.Header.Set("X-API-KEY", s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, &SearchProviderError{Provider: "serper", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, &SearchProviderError{
			Provider: "serper",
			Err:      fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(msg)),
		}
	}

	var batches []serperResponse
	if err := json.NewDecoder(resp.Body).Decode(&batches); err != nil {
		return nil, &SearchProviderError{Provider: "serper", Err: fmt.Errorf("failed to decode response: %w", err)}
	}

	var results []models.SearchResult
	for _, batch := range batches {
		for _, r := range batch.Organic {
			if r.Link == "" {
				continue
			}
			results = append(results, models.SearchResult{
				Title:   r.Title,
				URL:     r.Link,
				Snippet: r.Snippet,
				Source:  "serper",
			})
			if len(results) >= s.topN {
				break
			}
		}
		if len(results) >= s.topN {
			break
		}
	}

	s.log.Info("Search completed",
		zap.String("speaker", name),
		zap.Int("queries", len(queries)),
		zap.Int("results", len(results)))

	return results, nil
}

// buildSearchQueries expands the query templates for one speaker. The
// year-scoped query is built here so it tracks the current year.
func buildSearchQueries(name string, now time.Time) []string {
	queries := make([]string, 0, len(config.QueryTemplates)+1)
	queries = append(queries, fmt.Sprintf(`"%s" upcoming events %d`, name, now.Year()))
	for _, tpl := range config.QueryTemplates {
		queries = append(queries, fmt.Sprintf(tpl, name))
	}
	return queries
}
