package models

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"
)

// foldText lower-cases a string and collapses interior whitespace runs
// to a single space, so that "TEDx  Talk" and "tedx talk" compare equal.
func foldText(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// DedupKey derives the identity of a real-world event: folded event
// name, calendar day, and city (venue name when the city is unknown).
// Two events sharing this key are considered the same event.
func (e Event) DedupKey() string {
	place := e.Location.City
	if place == "" {
		place = e.Location.Name
	}
	return fmt.Sprintf("%s|%s|%s", foldText(e.EventName), e.Date.Format("2006-01-02"), foldText(place))
}

// GenerateEventID creates a stable short ID for an event from its dedup
// identity, used for log correlation.
func GenerateEventID(name string, date time.Time, city string) string {
	input := fmt.Sprintf("%s|%s|%s", foldText(name), date.Format("2006-01-02"), foldText(city))
	hash := sha256.Sum256([]byte(input))
	return "evt_" + hex.EncodeToString(hash[:])[:8]
}

// ValidateEventType checks if the event type is one of the known values
func ValidateEventType(eventType EventType) bool {
	switch eventType {
	case EventTypeInPerson, EventTypeOnline, EventTypeUnknown:
		return true
	}
	return false
}
