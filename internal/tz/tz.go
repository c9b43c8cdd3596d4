// Package tz converts stored UTC timestamps to display strings in an IANA
// time zone. It holds no state.
package tz

import (
	"fmt"
	"time"
)

const (
	// StorageLayout is the fixed UTC format used in the datetime_utc column.
	StorageLayout = "2006-01-02 15:04:05"
	// DisplayLayout appends the zone abbreviation, e.g. "2024-01-01 11:30:00 IST".
	DisplayLayout = "2006-01-02 15:04:05 MST"

	DefaultZone = "Asia/Kolkata"
)

// ParseUTC parses a storage-format timestamp as UTC.
func ParseUTC(s string) (time.Time, error) {
	t, err := time.ParseInLocation(StorageLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse utc timestamp %q: %w", s, err)
	}
	return t, nil
}

// FormatUTC renders t in the storage format after converting it to UTC.
func FormatUTC(t time.Time) string {
	return t.UTC().Format(StorageLayout)
}

// Format renders the instant t in the named zone using DisplayLayout.
// An unknown zone name is an error.
func Format(t time.Time, zone string) (string, error) {
	loc, err := time.LoadLocation(zone)
	if err != nil {
		return "", fmt.Errorf("load timezone %q: %w", zone, err)
	}
	return t.In(loc).Format(DisplayLayout), nil
}

// ConvertUTC parses a storage-format UTC string and renders it in zone.
func ConvertUTC(s, zone string) (string, error) {
	t, err := ParseUTC(s)
	if err != nil {
		return "", err
	}
	return Format(t, zone)
}

// AtLocalClock returns the UTC instant for hour:00 on the calendar day of
// now, as seen in zone.
func AtLocalClock(now time.Time, zone string, hour int) (time.Time, error) {
	loc, err := time.LoadLocation(zone)
	if err != nil {
		return time.Time{}, fmt.Errorf("load timezone %q: %w", zone, err)
	}
	local := now.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), hour, 0, 0, 0, loc).UTC(), nil
}
