package services

import (
	"speaker-event-finder/internal/models"
)

// Deduplicate collapses events referring to the same real-world event,
// keyed by folded name, calendar day, and city. For colliding keys the
// first record in input order wins whole; fields are never merged. The
// caller is responsible for feeding events in candidate rank order so
// that "first seen" is reproducible.
func Deduplicate(events []models.Event) []models.Event {
	seen := make(map[string]struct{}, len(events))
	out := make([]models.Event, 0, len(events))

	for _, ev := range events {
		key := ev.DedupKey()
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, ev)
	}

	return out
}
