package output

import (
	"context"

	"eventreg/internal/domain/entities"
)

// EventLockFunc runs while the datastore holds an exclusive lock scoped to event.
type EventLockFunc func(ctx context.Context, event *entities.Event, tx RegistrationTx) error

// Datastore is the single shared mutable resource of the service. It is opened
// at process start and closed at shutdown.
type Datastore interface {
	Events() EventRepository
	Users() UserRepository
	Registrations() RegistrationRepository

	// WithEventLock runs fn inside one transaction serialized with every other
	// WithEventLock call for the same event. The transaction commits when fn
	// returns nil and rolls back otherwise; an unknown event yields
	// domain.ErrEventNotFound without calling fn.
	WithEventLock(ctx context.Context, eventID int64, fn EventLockFunc) error

	Ping(ctx context.Context) error
	Close()
}
