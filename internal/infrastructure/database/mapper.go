package database

import (
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"eventreg/internal/domain/entities"
)

const selectEventColumns = `SELECT id, name, organizer, location, date, description, capacity, category, created_at, updated_at`

// pgtypeTimestamptzToTime returns t.Time when Valid, else zero time.
func pgtypeTimestamptzToTime(t pgtype.Timestamptz) time.Time {
	if !t.Valid {
		return time.Time{}
	}
	return t.Time
}

func timeToPgtypeTimestamptz(t time.Time) pgtype.Timestamptz {
	if t.IsZero() {
		return pgtype.Timestamptz{}
	}
	return pgtype.Timestamptz{Time: t, Valid: true}
}

func scanEvent(row pgx.Row) (entities.Event, error) {
	var (
		e    entities.Event
		date pgtype.Timestamptz
	)
	err := row.Scan(&e.ID, &e.Name, &e.Organizer, &e.Location, &date, &e.Description, &e.Capacity, &e.Category, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return entities.Event{}, err
	}
	e.Date = pgtypeTimestamptzToTime(date)
	return e, nil
}

func collectEvents(rows pgx.Rows) ([]entities.Event, error) {
	defer rows.Close()
	out := make([]entities.Event, 0)
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds a LIKE pattern matching s literally anywhere.
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}
