package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"speaker-event-finder/internal/models"
)

func makeEvent(name string, date time.Time, city, url string) models.Event {
	return models.Event{
		EventName: name,
		Date:      date,
		Location:  models.Location{City: city},
		URL:       url,
		Speakers:  []string{"Jane Doe"},
		EventType: models.EventTypeInPerson,
	}
}

func TestDeduplicate_FirstSeenWins(t *testing.T) {
	day := time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC)

	first := makeEvent("TEDx Talk", day, "Berlin", "https://a.example.com")
	// Same key: differs only by casing, whitespace, and time of day.
	second := makeEvent("  tedx   TALK ", day.Add(3*time.Hour), "berlin", "https://b.example.com")
	other := makeEvent("GopherCon", day, "Berlin", "https://c.example.com")

	out := Deduplicate([]models.Event{first, second, other})

	assert.Len(t, out, 2)
	assert.Equal(t, "https://a.example.com", out[0].URL, "first-seen representative must survive whole")
	assert.Equal(t, "GopherCon", out[1].EventName)
}

func TestDeduplicate_Idempotent(t *testing.T) {
	day := time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC)
	events := []models.Event{
		makeEvent("TEDx Talk", day, "Berlin", "https://a.example.com"),
		makeEvent("TEDx Talk", day, "Berlin", "https://b.example.com"),
		makeEvent("GopherCon", day.AddDate(0, 0, 1), "Denver", "https://c.example.com"),
	}

	once := Deduplicate(events)
	twice := Deduplicate(once)

	assert.Equal(t, once, twice)
}

func TestDeduplicate_DistinctKeysAllSurvive(t *testing.T) {
	day := time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC)
	events := []models.Event{
		makeEvent("TEDx Talk", day, "Berlin", "https://a.example.com"),
		makeEvent("TEDx Talk", day.AddDate(0, 0, 1), "Berlin", "https://a.example.com"),
		makeEvent("TEDx Talk", day, "Munich", "https://a.example.com"),
	}

	out := Deduplicate(events)
	assert.Len(t, out, 3)
}

func TestDeduplicate_Empty(t *testing.T) {
	assert.Empty(t, Deduplicate(nil))
	assert.Empty(t, Deduplicate([]models.Event{}))
}
