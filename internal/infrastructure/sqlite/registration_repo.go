package sqlite

import (
	"context"
	"fmt"
	"time"

	"eventreg/internal/domain"
	"eventreg/internal/domain/entities"
	"eventreg/internal/ports/output"
)

var (
	_ output.RegistrationRepository = (*RegistrationRepository)(nil)
	_ output.RegistrationTx         = (*RegistrationRepository)(nil)
)

type RegistrationRepository struct {
	db  querier
	now func() time.Time
}

// Create is a conditional write: the row is inserted only while the event
// still has a free seat.
func (r *RegistrationRepository) Create(ctx context.Context, registration *entities.Registration) error {
	now := r.now()
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO registrations (user_id, event_id, created_at)
		SELECT ?, e.id, ? FROM events e
		WHERE e.id = ?
		  AND (SELECT COUNT(*) FROM registrations WHERE event_id = e.id) < e.capacity`,
		registration.UserID, now, registration.EventID,
	)
	switch {
	case err == nil:
	case isUniqueViolation(err):
		return domain.ErrAlreadyRegistered
	case isForeignKeyViolation(err):
		return domain.ErrUserNotFound
	default:
		return fmt.Errorf("create registration: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("create registration: %w", err)
	}
	if affected == 0 {
		return domain.ErrEventFull
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("create registration: %w", err)
	}
	registration.ID = id
	registration.CreatedAt = now
	return nil
}

func (r *RegistrationRepository) Exists(ctx context.Context, userID, eventID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM registrations WHERE user_id = ? AND event_id = ?)`,
		userID, eventID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("registration exists: %w", err)
	}
	return exists, nil
}

func (r *RegistrationRepository) CountByEventID(ctx context.Context, eventID int64) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM registrations WHERE event_id = ?`, eventID).Scan(&count); err != nil {
		return 0, fmt.Errorf("count registrations: %w", err)
	}
	return count, nil
}

func (r *RegistrationRepository) Delete(ctx context.Context, userID, eventID int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM registrations WHERE user_id = ? AND event_id = ?`, userID, eventID)
	if err != nil {
		return false, fmt.Errorf("delete registration: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete registration: %w", err)
	}
	return affected > 0, nil
}

func (r *RegistrationRepository) FindEventsByUserID(ctx context.Context, userID int64) ([]entities.Event, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT e.id, e.name, e.organizer, e.location, e.date, e.description, e.capacity, e.category, e.created_at, e.updated_at
		FROM registrations r
		JOIN events e ON e.id = r.event_id
		WHERE r.user_id = ?
		ORDER BY r.created_at, r.id`, userID)
	if err != nil {
		return nil, fmt.Errorf("get events by user id: %w", err)
	}
	events, err := collectEvents(rows)
	if err != nil {
		return nil, fmt.Errorf("get events by user id: %w", err)
	}
	return events, nil
}
