package services

import (
	"net/url"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// trackingParams are query parameters that vary per visitor without
// changing the page, and would defeat URL-level deduplication.
var trackingParams = map[string]struct{}{
	"srsltid":      {},
	"fbclid":       {},
	"gclid":        {},
	"utm_source":   {},
	"utm_medium":   {},
	"utm_campaign": {},
	"utm_term":     {},
	"utm_content":  {},
}

// NormalizeURL canonicalizes a URL for comparison: lower-cased scheme
// and host, tracking parameters removed, remaining query sorted, no
// fragment, no trailing slash. Returns "" for unparsable input.
func NormalizeURL(raw string) string {
	if raw == "" {
		return ""
	}

	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return ""
	}

	u.Scheme = strings.ToLower(u.Scheme)
	u.Host = strings.ToLower(u.Host)
	u.Fragment = ""
	u.Path = strings.TrimRight(u.Path, "/")

	q := u.Query()
	for key := range q {
		if _, tracked := trackingParams[strings.ToLower(key)]; tracked {
			q.Del(key)
		}
	}
	if len(q) == 0 {
		u.RawQuery = ""
	} else {
		// url.Values.Encode sorts keys, giving a stable query string.
		u.RawQuery = q.Encode()
	}

	return u.String()
}

// DomainFromURL extracts the registrable-ish domain used for the
// excluded-domain filter and one-candidate-per-domain selection. The
// www prefix is stripped; failures yield "".
func DomainFromURL(raw string) string {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return ""
	}
	host := strings.ToLower(u.Hostname())
	return strings.TrimPrefix(host, "www.")
}

// isoLayouts are tried in order before falling back to fuzzy parsing.
// Date-only layouts yield midnight, per the date normalization contract.
var isoLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"2006-01",
}

// ParseEventDate parses a heterogeneous date string into a canonical
// timestamp. Missing time-of-day defaults to start of day. Returns
// false for empty or unparsable input; the caller drops such records
// rather than guessing.
func ParseEventDate(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}

	for _, layout := range isoLayouts {
		if ts, err := time.Parse(layout, raw); err == nil {
			return ts, true
		}
	}

	// Pages report dates in every format imaginable; dateparse handles
	// the long tail the strict layouts miss.
	ts, err := dateparse.ParseIn(raw, time.UTC)
	if err != nil {
		return time.Time{}, false
	}
	return ts, true
}

// IsFutureOrToday reports whether ts falls on or after now's calendar
// day. Days are compared as the wall-clock date each value carries;
// converting a date-only midnight across zones could shift it to the
// previous day and wrongly drop a same-day event.
func IsFutureOrToday(ts, now time.Time) bool {
	ty, tm, td := ts.Date()
	ny, nm, nd := now.Date()
	if ty != ny {
		return ty > ny
	}
	if tm != nm {
		return tm > nm
	}
	return td >= nd
}
