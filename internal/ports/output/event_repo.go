package output

import (
	"context"

	"eventreg/internal/domain/entities"
)

type EventRepository interface {
	// Create is reserved to administrative tooling and tests.
	Create(ctx context.Context, event *entities.Event) error
	FindByID(ctx context.Context, id int64) (*entities.Event, error)
	List(ctx context.Context, filter entities.EventFilter) ([]entities.Event, error)
	FilterOptions(ctx context.Context) (*entities.FilterOptions, error)
}
