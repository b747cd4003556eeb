package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"eventreg/internal/domain"
	"eventreg/internal/domain/entities"
	"eventreg/internal/ports/output"
)

var (
	_ output.RegistrationRepository = (*RegistrationRepository)(nil)
	_ output.RegistrationTx         = (*RegistrationRepository)(nil)
)

// RegistrationRepository implements both the pooled repository and the
// transactional view handed out by Store.WithEventLock.
type RegistrationRepository struct {
	db dbtx
}

func NewRegistrationRepository(db dbtx) *RegistrationRepository {
	return &RegistrationRepository{db: db}
}

// Create inserts the row only while the event still has a free seat.
func (r *RegistrationRepository) Create(ctx context.Context, registration *entities.Registration) error {
	row := r.db.QueryRow(ctx, `
		INSERT INTO registrations (user_id, event_id)
		SELECT $1, e.id FROM events e
		WHERE e.id = $2
		  AND (SELECT COUNT(*) FROM registrations WHERE event_id = e.id) < e.capacity
		RETURNING id, created_at`,
		registration.UserID, registration.EventID,
	)
	err := row.Scan(&registration.ID, &registration.CreatedAt)
	switch code, constraint := pgErrorCode(err); {
	case err == nil:
		return nil
	case errors.Is(err, pgx.ErrNoRows):
		return domain.ErrEventFull
	case code == pgUniqueViolation:
		return domain.ErrAlreadyRegistered
	case code == pgForeignKeyViolation && constraint == "registrations_user_id_fkey":
		return domain.ErrUserNotFound
	default:
		return fmt.Errorf("create registration: %w", err)
	}
}

func (r *RegistrationRepository) Exists(ctx context.Context, userID, eventID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM registrations WHERE user_id = $1 AND event_id = $2)`,
		userID, eventID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("registration exists: %w", err)
	}
	return exists, nil
}

func (r *RegistrationRepository) CountByEventID(ctx context.Context, eventID int64) (int, error) {
	var count int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM registrations WHERE event_id = $1`, eventID).Scan(&count); err != nil {
		return 0, fmt.Errorf("count registrations: %w", err)
	}
	return count, nil
}

func (r *RegistrationRepository) Delete(ctx context.Context, userID, eventID int64) (bool, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM registrations WHERE user_id = $1 AND event_id = $2`, userID, eventID)
	if err != nil {
		return false, fmt.Errorf("delete registration: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *RegistrationRepository) FindEventsByUserID(ctx context.Context, userID int64) ([]entities.Event, error) {
	rows, err := r.db.Query(ctx, `
		SELECT e.id, e.name, e.organizer, e.location, e.date, e.description, e.capacity, e.category, e.created_at, e.updated_at
		FROM registrations r
		JOIN events e ON e.id = r.event_id
		WHERE r.user_id = $1
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
