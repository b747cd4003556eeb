package entities

import "time"

// Registration links one user to one event.
type Registration struct {
	ID        int64
	UserID    int64
	EventID   int64
	CreatedAt time.Time
}
