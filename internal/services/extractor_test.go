package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"speaker-event-finder/internal/models"
)

type fakeScraper struct {
	content string
	err     error
}

func (f *fakeScraper) Scrape(_ context.Context, _ string) (string, error) {
	return f.content, f.err
}

type fakeParser struct {
	events []models.RawEvent
	err    error
}

func (f *fakeParser) ExtractEvents(_ context.Context, _, _, _ string) ([]models.RawEvent, error) {
	return f.events, f.err
}

func TestEventExtractor_Success(t *testing.T) {
	want := []models.RawEvent{{EventName: "GopherCon", Date: "2026-07-27"}}
	extractor := NewEventExtractor(
		&fakeScraper{content: "## GopherCon\nJane Doe keynotes."},
		&fakeParser{events: want},
		zap.NewNop(),
	)

	got := extractor.Extract(context.Background(), "Jane Doe", "https://gophercon.com")
	assert.Equal(t, want, got)
}

func TestEventExtractor_ScrapeFailureIsAbsorbed(t *testing.T) {
	extractor := NewEventExtractor(
		&fakeScraper{err: errors.New("status 503")},
		&fakeParser{events: []models.RawEvent{{EventName: "should not appear"}}},
		zap.NewNop(),
	)

	got := extractor.Extract(context.Background(), "Jane Doe", "https://down.example.com")
	assert.Nil(t, got, "a failed scrape must contribute zero records, not an error")
}

func TestEventExtractor_ParseFailureIsAbsorbed(t *testing.T) {
	extractor := NewEventExtractor(
		&fakeScraper{content: "some page"},
		&fakeParser{err: errors.New("invalid JSON in model response")},
		zap.NewNop(),
	)

	got := extractor.Extract(context.Background(), "Jane Doe", "https://example.com")
	assert.Nil(t, got)
}
