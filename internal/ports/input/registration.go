package input

import (
	"context"

	"eventreg/internal/domain/entities"
)

type RegistrationUseCase interface {
	Register(ctx context.Context, userID, eventID int64) (*entities.Registration, error)
	Cancel(ctx context.Context, userID, eventID int64) error
	ListForUser(ctx context.Context, userID int64) ([]entities.Event, error)
}
