package entities

import "time"

// Event is a bookable occurrence. Events are read-only for the application:
// they are created by an administrative process.
type Event struct {
	ID          int64
	Name        string
	Organizer   string
	Location    string
	Date        time.Time // zero = not set
	Description string
	Capacity    int
	Category    string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// HasSeatFor reports whether an event currently holding count registrations
// can accept one more.
func (e *Event) HasSeatFor(count int) bool {
	return count < e.Capacity
}

// EventFilter narrows a catalog listing. Empty fields do not filter.
type EventFilter struct {
	Search   string
	Category string
	Location string
}

// FilterOptions lists the distinct non-empty values usable as filters.
type FilterOptions struct {
	Categories []string
	Locations  []string
}
