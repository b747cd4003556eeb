package metrics

import (
	"context"
	"errors"

	"eventreg/internal/domain"
	"eventreg/internal/domain/entities"
	"eventreg/internal/ports/input"
)

var _ input.RegistrationUseCase = (*InstrumentedRegistrations)(nil)

// InstrumentedRegistrations counts registration outcomes around another
// RegistrationUseCase.
type InstrumentedRegistrations struct {
	next input.RegistrationUseCase
}

func InstrumentRegistrations(next input.RegistrationUseCase) *InstrumentedRegistrations {
	return &InstrumentedRegistrations{next: next}
}

func (i *InstrumentedRegistrations) Register(ctx context.Context, userID, eventID int64) (*entities.Registration, error) {
	registration, err := i.next.Register(ctx, userID, eventID)
	RegistrationAttempts.WithLabelValues(outcome(err)).Inc()
	return registration, err
}

func (i *InstrumentedRegistrations) Cancel(ctx context.Context, userID, eventID int64) error {
	err := i.next.Cancel(ctx, userID, eventID)
	if err == nil {
		RegistrationCancellations.Inc()
	}
	return err
}

func (i *InstrumentedRegistrations) ListForUser(ctx context.Context, userID int64) ([]entities.Event, error) {
	return i.next.ListForUser(ctx, userID)
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, domain.ErrEventFull):
		return "event_full"
	case errors.Is(err, domain.ErrAlreadyRegistered):
		return "already_registered"
	case errors.Is(err, domain.ErrEventNotFound):
		return "event_not_found"
	default:
		return "error"
	}
}
