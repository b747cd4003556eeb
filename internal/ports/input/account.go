package input

import (
	"context"

	"eventreg/internal/domain/entities"
)

type AccountUseCase interface {
	Signup(ctx context.Context, name, email, password string) (*entities.User, error)
	Login(ctx context.Context, email, password string) (string, *entities.User, error)
	Me(ctx context.Context, userID int64) (*entities.User, error)
	Authenticate(ctx context.Context, token string) (int64, error)
}
