package services

import (
	"context"

	"go.uber.org/zap"

	"speaker-event-finder/internal/models"
)

// Scraper fetches the readable content of a page
type Scraper interface {
	Scrape(ctx context.Context, url string) (string, error)
}

// EventParser extracts structured events from page content
type EventParser interface {
	ExtractEvents(ctx context.Context, content, speaker, sourceURL string) ([]models.RawEvent, error)
}

// EventExtractor is the scrape-then-extract pipeline for a single URL.
// It never fails a request: a bad URL yields zero records, logged and
// absorbed, because one dead page must not abort the whole batch.
type EventExtractor struct {
	scraper Scraper
	parser  EventParser
	log     *zap.Logger
}

// NewEventExtractor creates an extractor from a scraper and a parser
func NewEventExtractor(scraper Scraper, parser EventParser, log *zap.Logger) *EventExtractor {
	return &EventExtractor{
		scraper: scraper,
		parser:  parser,
		log:     log,
	}
}

// Extract returns the raw events found at url. A single attempt per
// stage; on any failure the URL contributes nothing.
func (e *EventExtractor) Extract(ctx context.Context, speaker, url string) []models.RawEvent {
	content, err := e.scraper.Scrape(ctx, url)
	if err != nil {
		e.log.Warn("Scrape failed, skipping URL",
			zap.String("url", url),
			zap.Error(err))
		return nil
	}

	events, err := e.parser.ExtractEvents(ctx, content, speaker, url)
	if err != nil {
		e.log.Warn("Event extraction failed, skipping URL",
			zap.String("url", url),
			zap.Error(err))
		return nil
	}

	return events
}
