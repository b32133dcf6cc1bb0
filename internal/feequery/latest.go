// Package feequery reduces a fee dataset to the latest record per
// (symbol, source) and answers search / notional / sort queries over it.
// Every function here is pure; records are never mutated.
package feequery

import (
	"strings"
	"time"

	"github.com/navid-fn/feeboard/internal/models"
)

const keySeparator = "||"

// timestampLayouts are tried in order by ParseTimestamp.
// Layouts without an offset are read as UTC.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05Z0700",
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04Z0700",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05",
	"2006-01-02",
	time.RFC1123Z,
	time.RFC1123,
}

// Key returns the dedup key of a record.
func Key(r models.FeeRecord) string {
	return r.Symbol + keySeparator + r.Source
}

// ParseTimestamp parses an ISO-8601-like date/time string.
// Empty or unparsable input yields ok == false, never an error.
func ParseTimestamp(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

type stamp struct {
	at time.Time
	ok bool
}

// Latest keeps one record per (symbol, source).
// A record replaces the kept one only when it has a parsable timestamp and
// the kept one either has none or an earlier one. When neither parses the
// first record seen wins. Output is in first-seen order of each key.
func Latest(records []models.FeeRecord) []models.FeeRecord {
	index := make(map[string]int, len(records))
	out := make([]models.FeeRecord, 0, len(records))
	stamps := make([]stamp, 0, len(records))

	for _, r := range records {
		k := Key(r)
		at, ok := ParseTimestamp(r.Datetime)

		i, seen := index[k]
		if !seen {
			index[k] = len(out)
			out = append(out, r)
			stamps = append(stamps, stamp{at: at, ok: ok})
			continue
		}

		prev := stamps[i]
		if ok && (!prev.ok || at.After(prev.at)) {
			out[i] = r
			stamps[i] = stamp{at: at, ok: ok}
		}
	}

	return out
}
