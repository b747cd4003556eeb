package sqlite

import (
	"database/sql"
	"strings"
	"time"

	"eventreg/internal/domain/entities"
)

const selectEventColumns = `SELECT id, name, organizer, location, date, description, capacity, category, created_at, updated_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanEvent(row scanner) (entities.Event, error) {
	var (
		e    entities.Event
		date sql.NullTime
	)
	err := row.Scan(&e.ID, &e.Name, &e.Organizer, &e.Location, &date, &e.Description, &e.Capacity, &e.Category, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return entities.Event{}, err
	}
	if date.Valid {
		e.Date = date.Time
	}
	return e, nil
}

func collectEvents(rows *sql.Rows) ([]entities.Event, error) {
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

func nullTime(t time.Time) sql.NullTime {
	return sql.NullTime{Time: t.UTC(), Valid: !t.IsZero()}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds a LIKE pattern (ESCAPE '\') matching s literally anywhere.
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}
