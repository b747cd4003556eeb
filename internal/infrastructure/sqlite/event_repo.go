package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"eventreg/internal/domain"
	"eventreg/internal/domain/entities"
	"eventreg/internal/ports/output"
)

var _ output.EventRepository = (*EventRepository)(nil)

type EventRepository struct {
	db  querier
	now func() time.Time
}

func (r *EventRepository) Create(ctx context.Context, event *entities.Event) error {
	now := r.now()
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO events (name, organizer, location, date, description, capacity, category, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		event.Name, event.Organizer, event.Location, nullTime(event.Date),
		event.Description, event.Capacity, event.Category, now, now,
	)
	if err != nil {
		return fmt.Errorf("create event: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("create event: %w", err)
	}
	event.ID = id
	event.CreatedAt = now
	event.UpdatedAt = now
	return nil
}

func (r *EventRepository) FindByID(ctx context.Context, id int64) (*entities.Event, error) {
	e, err := scanEvent(r.db.QueryRowContext(ctx, selectEventColumns+` FROM events WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
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
		pattern := containsPattern(strings.ToLower(filter.Search))
		conds = append(conds, `(lower(name) LIKE ? ESCAPE '\' OR lower(description) LIKE ? ESCAPE '\')`)
		args = append(args, pattern, pattern)
	}
	if filter.Category != "" {
		conds = append(conds, `category = ?`)
		args = append(args, filter.Category)
	}
	if filter.Location != "" {
		conds = append(conds, `location = ?`)
		args = append(args, filter.Location)
	}

	query := selectEventColumns + ` FROM events`
	if len(conds) > 0 {
		query += ` WHERE ` + strings.Join(conds, " AND ")
	}
	query += ` ORDER BY date IS NULL, date, id`

	rows, err := r.db.QueryContext(ctx, query, args...)
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
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	values := []string{}
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return values, rows.Err()
}
