package output

import (
	"context"

	"eventreg/internal/domain/entities"
)

type RegistrationRepository interface {
	// Delete removes the (user, event) registration. Deleting a missing row is not an error.
	Delete(ctx context.Context, userID, eventID int64) (bool, error)
	FindEventsByUserID(ctx context.Context, userID int64) ([]entities.Event, error)
	CountByEventID(ctx context.Context, eventID int64) (int, error)
}

// RegistrationTx is the view of the registrations table available while an
// event lock is held.
type RegistrationTx interface {
	CountByEventID(ctx context.Context, eventID int64) (int, error)
	Exists(ctx context.Context, userID, eventID int64) (bool, error)
	// Create fails with domain.ErrAlreadyRegistered on a (user, event)
	// conflict and with domain.ErrEventFull if the event has no seat left.
	Create(ctx context.Context, registration *entities.Registration) error
}
