package input

import (
	"context"

	"eventreg/internal/domain/entities"
)

type EventCatalog interface {
	List(ctx context.Context, filter entities.EventFilter) ([]entities.Event, error)
	Get(ctx context.Context, id int64) (*entities.Event, error)
	FilterOptions(ctx context.Context) (*entities.FilterOptions, error)
}
