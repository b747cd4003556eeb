package entities

import "time"

// User is an account able to register for events. PasswordHash never leaves
// the application layer.
type User struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
