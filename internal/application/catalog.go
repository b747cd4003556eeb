package application

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"eventreg/internal/domain"
	"eventreg/internal/domain/entities"
	"eventreg/internal/ports/input"
	"eventreg/internal/ports/output"
)

var _ input.EventCatalog = (*CatalogService)(nil)

type CatalogService struct {
	events output.EventRepository
	cache  output.CatalogCache
	logger zerolog.Logger
}

// NewCatalogService builds the catalog. cache may be nil.
func NewCatalogService(events output.EventRepository, cache output.CatalogCache, logger zerolog.Logger) *CatalogService {
	return &CatalogService{
		events: events,
		cache:  cache,
		logger: logger.With().Str("component", "catalog").Logger(),
	}
}

// List returns every event matching filter. Search is a case-insensitive
// substring match on name or description; category and location match exactly.
func (s *CatalogService) List(ctx context.Context, filter entities.EventFilter) ([]entities.Event, error) {
	filter = entities.EventFilter{
		Search:   strings.TrimSpace(filter.Search),
		Category: strings.TrimSpace(filter.Category),
		Location: strings.TrimSpace(filter.Location),
	}
	events, err := s.events.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return events, nil
}

func (s *CatalogService) Get(ctx context.Context, id int64) (*entities.Event, error) {
	if id <= 0 {
		return nil, domain.ErrInvalidEventID
	}
	if s.cache != nil {
		cached, err := s.cache.GetEvent(ctx, id)
		if err != nil {
			s.logger.Warn().Err(err).Int64("event_id", id).Msg("catalog cache read failed")
		} else if cached != nil {
			return cached, nil
		}
	}

	event, err := s.events.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetEvent(ctx, event); err != nil {
			s.logger.Warn().Err(err).Int64("event_id", id).Msg("catalog cache write failed")
		}
	}
	return event, nil
}

func (s *CatalogService) FilterOptions(ctx context.Context) (*entities.FilterOptions, error) {
	if s.cache != nil {
		cached, err := s.cache.GetFilterOptions(ctx)
		if err != nil {
			s.logger.Warn().Err(err).Msg("catalog cache read failed")
		} else if cached != nil {
			return cached, nil
		}
	}

	options, err := s.events.FilterOptions(ctx)
	if err != nil {
		return nil, fmt.Errorf("filter options: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.SetFilterOptions(ctx, options); err != nil {
			s.logger.Warn().Err(err).Msg("catalog cache write failed")
		}
	}
	return options, nil
}
