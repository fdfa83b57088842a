package appointment

import (
	"fmt"
	"time"
)

// TimestampLayout is the ISO-8601 representation used on the wire,
// e.g. 2025-01-01T13:00:00. No zone offset is carried.
const TimestampLayout = "2006-01-02T15:04:05"

// ParseTimestamp accepts the wire layout, with RFC3339 as a fallback for
// clients that send an explicit offset.
func ParseTimestamp(s string) (time.Time, error) {
	if t, err := time.Parse(TimestampLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse timestamp %q: %w", s, err)
	}
	return t, nil
}

func FormatTimestamp(t time.Time) string {
	return t.Format(TimestampLayout)
}
