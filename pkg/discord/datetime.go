package discord

import "time"

// FormatEventDateTime renders t in loc as JJ/MM/AAAA HH:MM, or "" for the
// zero time.
func FormatEventDateTime(t time.Time, loc *time.Location) string {
	if t.IsZero() {
		return ""
	}
	if loc == nil {
		loc = time.UTC
	}
	return t.In(loc).Format("02/01/2006 15:04")
}
