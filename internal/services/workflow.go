package services

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"speaker-event-finder/internal/config"
	"speaker-event-finder/internal/models"
)

// Searcher returns candidate result URLs for a speaker, in provider
// relevance order.
type Searcher interface {
	Search(ctx context.Context, name string) ([]models.SearchResult, error)
}

// Extractor returns the raw events found at a URL. Implementations must
// absorb per-URL failures and return nil instead of erroring.
type Extractor interface {
	Extract(ctx context.Context, speaker, url string) []models.RawEvent
}

// EventWorkflow drives one request end to end: search, bounded-fan-out
// extraction, date normalization, future filtering, dedup, sort. All
// state is per request; nothing survives between calls.
type EventWorkflow struct {
	searcher       Searcher
	extractor      Extractor
	topN           int
	maxConcurrency int
	now            func() time.Time
	log            *zap.Logger
}

// NewEventWorkflow creates a workflow with the production clock
func NewEventWorkflow(searcher Searcher, extractor Extractor, cfg *config.Config, log *zap.Logger) *EventWorkflow {
	return &EventWorkflow{
		searcher:       searcher,
		extractor:      extractor,
		topN:           cfg.TopN,
		maxConcurrency: cfg.MaxConcurrency,
		now:            time.Now,
		log:            log,
	}
}

// WithClock replaces the workflow's reference clock. Tests use this to
// pin "today"; the returned workflow is the receiver.
func (w *EventWorkflow) WithClock(now func() time.Time) *EventWorkflow {
	w.now = now
	return w
}

// FindUpcomingEvents resolves a speaker name to deduplicated, future
// events sorted by date. Only a search failure is fatal; every
// downstream problem shrinks the result set instead. An exhausted
// candidate list is a success with zero events.
func (w *EventWorkflow) FindUpcomingEvents(ctx context.Context, name string, filter models.EventType) ([]models.Event, error) {
	requestID := uuid.NewString()
	log := w.log.With(zap.String("request_id", requestID), zap.String("speaker", name))

	results, err := w.searcher.Search(ctx, name)
	if err != nil {
		log.Error("Search failed", zap.Error(err))
		return nil, err
	}

	urls := w.selectCandidates(results)
	log.Info("Selected candidate URLs",
		zap.Int("search_results", len(results)),
		zap.Int("candidates", len(urls)))

	if len(urls) == 0 {
		return []models.Event{}, nil
	}

	raw := w.extractAll(ctx, name, urls)
	log.Info("Extraction finished", zap.Int("raw_events", len(raw)))

	events := w.normalizeAndFilter(raw, filter)
	events = Deduplicate(events)
	sortEventsByDate(events)

	log.Info("Workflow done", zap.Int("events", len(events)))
	return events, nil
}

// selectCandidates normalizes result URLs, drops excluded domains, and
// keeps the first URL per domain in rank order, capped at topN.
func (w *EventWorkflow) selectCandidates(results []models.SearchResult) []string {
	seenDomains := make(map[string]struct{})
	var urls []string

	for _, r := range results {
		normalized := NormalizeURL(r.URL)
		if normalized == "" {
			continue
		}
		domain := DomainFromURL(normalized)
		if domain == "" {
			continue
		}
		if _, excluded := config.ExcludedDomains[domain]; excluded {
			continue
		}
		if _, dup := seenDomains[domain]; dup {
			continue
		}
		seenDomains[domain] = struct{}{}
		urls = append(urls, normalized)
		if len(urls) >= w.topN {
			break
		}
	}

	return urls
}

// extractAll fans out extraction over the candidate URLs with at most
// maxConcurrency calls in flight, then flattens results by candidate
// index. Completion order never leaks downstream, which keeps dedup's
// first-seen rule tied to search rank.
func (w *EventWorkflow) extractAll(ctx context.Context, speaker string, urls []string) []models.RawEvent {
	perURL := make([][]models.RawEvent, len(urls))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(w.maxConcurrency)

	for i, url := range urls {
		i, url := i, url
		g.Go(func() error {
			perURL[i] = w.extractor.Extract(gctx, speaker, url)
			return nil
		})
	}

	// Extract never returns an error, so Wait only observes ctx
	// cancellation through the extractor's own handling.
	_ = g.Wait()

	var merged []models.RawEvent
	for _, events := range perURL {
		merged = append(merged, events...)
	}
	return merged
}

// normalizeAndFilter attaches canonical dates and applies the type and
// future-only filters. Records with no name, an unparsable date, or a
// past date are dropped silently; that is degradation, not an error.
func (w *EventWorkflow) normalizeAndFilter(raw []models.RawEvent, filter models.EventType) []models.Event {
	now := w.now()
	events := make([]models.Event, 0, len(raw))

	for _, r := range raw {
		if r.EventName == "" {
			w.log.Warn("Skipping event with missing name", zap.String("url", r.URL))
			continue
		}

		// An absent event_type key bypasses the JSON-level mapping and
		// leaves the zero value; clamp anything out of enum to unknown.
		eventType := r.EventType
		if !models.ValidateEventType(eventType) {
			eventType = models.EventTypeUnknown
		}

		// Records of unknown type are excluded once a filter is given.
		if filter != "" && eventType != filter {
			continue
		}

		ts, ok := ParseEventDate(r.Date)
		if !ok {
			w.log.Warn("Skipping event with unparsable date",
				zap.String("event_name", r.EventName),
				zap.String("date", r.Date))
			continue
		}
		if !IsFutureOrToday(ts, now) {
			continue
		}

		speakers := r.Speakers
		if speakers == nil {
			speakers = []string{}
		}

		w.log.Debug("Accepted event",
			zap.String("event_id", models.GenerateEventID(r.EventName, ts, r.Location.City)),
			zap.String("event_name", r.EventName),
			zap.String("url", r.URL))

		events = append(events, models.Event{
			EventName: r.EventName,
			Date:      ts,
			Location:  r.Location,
			URL:       r.URL,
			Speakers:  speakers,
			EventType: eventType,
		})
	}

	return events
}

// sortEventsByDate orders events ascending by date, ties broken by
// case-insensitive event name for a deterministic response.
func sortEventsByDate(events []models.Event) {
	sort.SliceStable(events, func(i, j int) bool {
		if !events[i].Date.Equal(events[j].Date) {
			return events[i].Date.Before(events[j].Date)
		}
		return strings.ToLower(events[i].EventName) < strings.ToLower(events[j].EventName)
	})
}
