package output

import (
	"context"

	"eventreg/internal/domain/entities"
)

// CatalogCache stores read-only catalog lookups. A miss returns (nil, nil).
type CatalogCache interface {
	GetEvent(ctx context.Context, id int64) (*entities.Event, error)
	SetEvent(ctx context.Context, event *entities.Event) error
	GetFilterOptions(ctx context.Context) (*entities.FilterOptions, error)
	SetFilterOptions(ctx context.Context, options *entities.FilterOptions) error
}
