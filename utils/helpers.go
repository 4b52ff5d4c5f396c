package utils

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the wire format for dates in query parameters and exports.
const DateLayout = "2006-01-02"

var dateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"1/2/2006",
	"01/02/2006",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02T15:04:05",
	time.RFC3339,
}

var clockLayouts = []string{
	"15:04:05",
	"15:04",
	"3:04 PM",
	"3:04:05 PM",
}

var timestampLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"1/2/2006 15:04",
	"1/2/2006 15:04:05",
	time.RFC3339,
}

// ParseDate parses a calendar date and truncates it to UTC midnight.
// Timestamps with an offset are moved to UTC first, as ParseTime does.
func ParseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			t = t.UTC()
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised date %q", value)
}

// ParseTime parses a time-of-day or a full timestamp.
// Time-of-day values come back on year 0 so that they all share one day.
func ParseTime(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range clockLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised time %q", value)
}

// FormatDate renders a date as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// IsClockOnly reports whether t came from a time-of-day value with no
// calendar date. Such values are anchored on year 0.
func IsClockOnly(t time.Time) bool {
	return t.Year() == 0
}

// FormatTime renders a Time column value the way ParseTime reads it back.
// Fractional seconds are kept when present.
func FormatTime(t time.Time) string {
	if IsClockOnly(t) {
		return t.Format("15:04:05.999999999")
	}
	return t.Format("2006-01-02 15:04:05.999999999")
}

// HourBucket truncates t to the start of its hour.
func HourBucket(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), 0, 0, 0, t.Location())
}

// BucketLabel renders an hourly bucket for chart axes.
func BucketLabel(t time.Time) string {
	if IsClockOnly(t) {
		return t.Format("15:04")
	}
	return t.Format("2006-01-02 15:04")
}
