package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"eventreg/internal/domain"
	"eventreg/internal/ports/output"
)

var _ output.Datastore = (*Store)(nil)

// dbtx is satisfied by both *pgxpool.Pool and pgx.Tx.
type dbtx interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Store implements output.Datastore on PostgreSQL.
type Store struct {
	pool *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) (*Store, error) {
	if pool == nil {
		return nil, fmt.Errorf("postgres store: pool is nil")
	}
	return &Store{pool: pool}, nil
}

func (s *Store) Events() output.EventRepository {
	return NewEventRepository(s.pool)
}

func (s *Store) Users() output.UserRepository {
	return NewUserRepository(s.pool)
}

func (s *Store) Registrations() output.RegistrationRepository {
	return NewRegistrationRepository(s.pool)
}

// WithEventLock locks the event row (SELECT ... FOR UPDATE) for the lifetime of
// the transaction, which serializes registrations per event while leaving
// other events free to proceed.
func (s *Store) WithEventLock(ctx context.Context, eventID int64, fn output.EventLockFunc) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	event, err := scanEvent(tx.QueryRow(ctx, selectEventColumns+` FROM events WHERE id = $1 FOR UPDATE`, eventID))
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrEventNotFound
	}
	if err != nil {
		return fmt.Errorf("lock event: %w", err)
	}

	if err := fn(ctx, &event, NewRegistrationRepository(tx)); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	if err := s.pool.Ping(ctx); err != nil {
		return errors.Join(domain.ErrDatastoreUnavailable, err)
	}
	return nil
}

func (s *Store) Close() {
	s.pool.Close()
}

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

func pgErrorCode(err error) (code, constraint string) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code, pgErr.ConstraintName
	}
	return "", ""
}
