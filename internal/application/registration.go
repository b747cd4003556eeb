package application

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"eventreg/internal/domain"
	"eventreg/internal/domain/entities"
	"eventreg/internal/ports/input"
	"eventreg/internal/ports/output"
)

var _ input.RegistrationUseCase = (*RegistrationService)(nil)

// RegistrationService enforces the capacity and uniqueness rules of event
// registrations.
type RegistrationService struct {
	store  output.Datastore
	logger zerolog.Logger
}

func NewRegistrationService(store output.Datastore, logger zerolog.Logger) *RegistrationService {
	return &RegistrationService{
		store:  store,
		logger: logger.With().Str("component", "registrations").Logger(),
	}
}

// Register books a seat for userID on eventID.
//
// The capacity check and the insert run under the datastore's event lock, so
// two concurrent calls competing for the last seat cannot both succeed.
func (s *RegistrationService) Register(ctx context.Context, userID, eventID int64) (*entities.Registration, error) {
	if eventID <= 0 {
		return nil, domain.ErrInvalidEventID
	}
	registration := &entities.Registration{UserID: userID, EventID: eventID}

	err := s.store.WithEventLock(ctx, eventID, func(ctx context.Context, event *entities.Event, tx output.RegistrationTx) error {
		count, err := tx.CountByEventID(ctx, eventID)
		if err != nil {
			return fmt.Errorf("count registrations: %w", err)
		}
		if !event.HasSeatFor(count) {
			return domain.ErrEventFull
		}
		exists, err := tx.Exists(ctx, userID, eventID)
		if err != nil {
			return fmt.Errorf("find registration: %w", err)
		}
		if exists {
			return domain.ErrAlreadyRegistered
		}
		return tx.Create(ctx, registration)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Debug().Int64("user_id", userID).Int64("event_id", eventID).Msg("registration created")
	return registration, nil
}

// Cancel removes the registration of userID on eventID. Cancelling a
// registration that does not exist succeeds.
func (s *RegistrationService) Cancel(ctx context.Context, userID, eventID int64) error {
	if eventID <= 0 {
		return domain.ErrInvalidEventID
	}
	removed, err := s.store.Registrations().Delete(ctx, userID, eventID)
	if err != nil {
		return fmt.Errorf("delete registration: %w", err)
	}
	if removed {
		s.logger.Debug().Int64("user_id", userID).Int64("event_id", eventID).Msg("registration cancelled")
	}
	return nil
}

func (s *RegistrationService) ListForUser(ctx context.Context, userID int64) ([]entities.Event, error) {
	events, err := s.store.Registrations().FindEventsByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list user registrations: %w", err)
	}
	return events, nil
}
