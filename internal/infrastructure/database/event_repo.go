package database

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"eventreg/internal/domain"
	"eventreg/internal/domain/entities"
	"eventreg/internal/ports/output"
)

var _ output.EventRepository = (*EventRepository)(nil)

type EventRepository struct {
	db dbtx
}

func NewEventRepository(db dbtx) *EventRepository {
	return &EventRepository{db: db}
}

func (r *EventRepository) Create(ctx context.Context, event *entities.Event) error {
	row := r.db.QueryRow(ctx, `
		INSERT INTO events (name, organizer, location, date, description, capacity, category)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at`,
		event.Name, event.Organizer, event.Location, timeToPgtypeTimestamptz(event.Date),
		event.Description, event.Capacity, event.Category,
	)
	if err := row.Scan(&event.ID, &event.CreatedAt, &event.UpdatedAt); err != nil {
		return fmt.Errorf("create event: %w", err)
	}
	return nil
}

func (r *EventRepository) FindByID(ctx context.Context, id int64) (*entities.Event, error) {
	e, err := scanEvent(r.db.QueryRow(ctx, selectEventColumns+` FROM events WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrEventNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get event by id: %w", err)
	}
	return &e, nil
}

func (r *EventRepository) List(ctx context.Context, filter entities.EventFilter) ([]entities.Event, error) {
	var (
		conds []string
		args  []any
	)
	if filter.Search != "" {
		args = append(args, containsPattern(filter.Search))
		conds = append(conds, fmt.Sprintf("(name ILIKE $%[1]d OR description ILIKE $%[1]d)", len(args)))
	}
	if filter.Category != "" {
		args = append(args, filter.Category)
		conds = append(conds, fmt.Sprintf("category = $%d", len(args)))
	}
	if filter.Location != "" {
		args = append(args, filter.Location)
		conds = append(conds, fmt.Sprintf("location = $%d", len(args)))
	}

	query := selectEventColumns + ` FROM events`
	if len(conds) > 0 {
		query += ` WHERE ` + strings.Join(conds, " AND ")
	}
	query += ` ORDER BY date NULLS LAST, id`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	events, err := collectEvents(rows)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return events, nil
}

func (r *EventRepository) FilterOptions(ctx context.Context) (*entities.FilterOptions, error) {
	categories, err := r.distinct(ctx, `SELECT DISTINCT category FROM events WHERE category <> '' ORDER BY category`)
	if err != nil {
		return nil, fmt.Errorf("distinct categories: %w", err)
	}
	locations, err := r.distinct(ctx, `SELECT DISTINCT location FROM events WHERE location <> '' ORDER BY location`)
	if err != nil {
		return nil, fmt.Errorf("distinct locations: %w", err)
	}
	return &entities.FilterOptions{Categories: categories, Locations: locations}, nil
}

func (r *EventRepository) distinct(ctx context.Context, query string) ([]string, error) {
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	values, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, err
	}
	if values == nil {
		values = []string{}
	}
	return values, nil
}
