package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"speaker-event-finder/internal/models"
	"speaker-event-finder/internal/services"
)

type fakeFinder struct {
	events    []models.Event
	err       error
	gotName   string
	gotFilter models.EventType
	callCount int
}

func (f *fakeFinder) FindUpcomingEvents(_ context.Context, name string, filter models.EventType) ([]models.Event, error) {
	f.callCount++
	f.gotName = name
	f.gotFilter = filter
	return f.events, f.err
}

func doRequest(t *testing.T, finder *fakeFinder, target string) *httptest.ResponseRecorder {
	t.Helper()
	h := NewHandler(finder, zap.NewNop())
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestGetEvents_MissingNameIsClientError(t *testing.T) {
	finder := &fakeFinder{}

	for _, target := range []string{"/events", "/events?name=", "/events?name=%20%20"} {
		rec := doRequest(t, finder, target)
		assert.Equal(t, http.StatusBadRequest, rec.Code, "target %s", target)
	}
	assert.Zero(t, finder.callCount, "the workflow must never run without a name")
}

func TestGetEvents_InvalidEventTypeIsClientError(t *testing.T) {
	finder := &fakeFinder{}

	rec := doRequest(t, finder, "/events?name=Jane+Doe&event_type=hybrid")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Zero(t, finder.callCount)
}

func TestGetEvents_SearchProviderFailureIsServerError(t *testing.T) {
	finder := &fakeFinder{err: &services.SearchProviderError{Provider: "serper", Err: errors.New("timeout")}}

	rec := doRequest(t, finder, "/events?name=Jane+Doe")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "search_provider_error", body.Error)
}

func TestGetEvents_Success(t *testing.T) {
	date := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	finder := &fakeFinder{events: []models.Event{
		{
			EventName: "GopherCon 2026",
			Date:      date,
			Location:  models.Location{Name: "McCormick Place", City: "Chicago", Country: "USA"},
			URL:       "https://gophercon.com",
			Speakers:  []string{"Jane Doe"},
			EventType: models.EventTypeInPerson,
		},
	}}

	rec := doRequest(t, finder, "/events?name=Jane+Doe&event_type=in_person")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Jane Doe", finder.gotName)
	assert.Equal(t, models.EventTypeInPerson, finder.gotFilter)

	var body models.EventsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Jane Doe", body.Speaker)
	assert.Equal(t, 1, body.Count)
	require.Len(t, body.Events, 1)
	assert.Equal(t, "GopherCon 2026", body.Events[0].EventName)
	assert.True(t, body.Events[0].Date.Equal(date))
	assert.Equal(t, "Chicago", body.Events[0].Location.City)
}

func TestGetEvents_EmptyResultIsStillSuccess(t *testing.T) {
	finder := &fakeFinder{events: []models.Event{}}

	rec := doRequest(t, finder, "/events?name=Jane+Doe")

	require.Equal(t, http.StatusOK, rec.Code)

	var body models.EventsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 0, body.Count)
	assert.Empty(t, body.Events)
}

func TestHealthCheck(t *testing.T) {
	rec := doRequest(t, &fakeFinder{}, "/health")
	assert.Equal(t, http.StatusOK, rec.Code)
}
