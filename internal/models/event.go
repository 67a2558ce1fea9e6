package models

import (
	"encoding/json"
	"strings"
	"time"
)

// EventType classifies how an event is attended
type EventType string

// Event type constants
const (
	EventTypeInPerson EventType = "in_person"
	EventTypeOnline   EventType = "online"
	EventTypeUnknown  EventType = "unknown"
)

// UnmarshalJSON maps the legacy "N/A" marker (and anything else
// unrecognized) to EventTypeUnknown so a sloppy LLM response cannot
// produce an invalid enum value.
func (et *EventType) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*et = ParseEventType(raw)
	return nil
}

// ParseEventType converts a raw string into a valid EventType
func ParseEventType(raw string) EventType {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case string(EventTypeInPerson):
		return EventTypeInPerson
	case string(EventTypeOnline):
		return EventTypeOnline
	default:
		return EventTypeUnknown
	}
}

// SearchResult represents a single web-search hit for a speaker query.
// Results are transient: consumed by the workflow and never persisted.
type SearchResult struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Snippet string `json:"snippet,omitempty"`
	Source  string `json:"source,omitempty"`
}

// Location provides venue information for an event. All fields are
// optional; an empty string means "unknown", not an error.
type Location struct {
	Name    string `json:"name,omitempty"`
	Address string `json:"address,omitempty"`
	City    string `json:"city,omitempty"`
	Country string `json:"country,omitempty"`
}

// RawEvent is an event record as extracted from a single page, before
// date normalization. A single URL may yield zero, one, or several.
type RawEvent struct {
	EventName string    `json:"event_name"`
	Date      string    `json:"date"` // ISO 8601, as reported by the page
	Location  Location  `json:"location"`
	URL       string    `json:"url"`
	Speakers  []string  `json:"speakers"`
	EventType EventType `json:"event_type"`
}

// Event is the canonical record returned to the caller. Date is always
// a valid timestamp on or after the start of today at request time.
type Event struct {
	EventName string    `json:"event_name"`
	Date      time.Time `json:"date"`
	Location  Location  `json:"location"`
	URL       string    `json:"url"`
	Speakers  []string  `json:"speakers"`
	EventType EventType `json:"event_type"`
}

// EventsResponse is the body of a successful GET /events call
type EventsResponse struct {
	Speaker string  `json:"speaker"`
	Count   int     `json:"count"`
	Events  []Event `json:"events"`
}
