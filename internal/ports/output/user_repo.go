package output

import (
	"context"

	"eventreg/internal/domain/entities"
)

type UserRepository interface {
	// Create fails with domain.ErrEmailTaken when the email is already used.
	Create(ctx context.Context, user *entities.User) error
	FindByID(ctx context.Context, id int64) (*entities.User, error)
	FindByEmail(ctx context.Context, email string) (*entities.User, error)
}
