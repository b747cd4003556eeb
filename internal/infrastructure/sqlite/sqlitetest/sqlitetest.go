// Package sqlitetest opens throwaway migrated SQLite datastores for tests.
package sqlitetest

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"eventreg/internal/domain/entities"
	"eventreg/internal/infrastructure/sqlite"
)

// New returns a migrated store backed by a file in t.TempDir().
func New(t testing.TB) *sqlite.Store {
	t.Helper()

	path := filepath.Join(t.TempDir(), "eventreg.db")
	_, err := sqlite.RunMigrations(path)
	require.NoError(t, err)

	store, err := sqlite.Open(context.Background(), path)
	require.NoError(t, err)
	t.Cleanup(store.Close)
	return store
}

// CreateEvent inserts an event with the given capacity and returns it.
func CreateEvent(t testing.TB, store *sqlite.Store, name string, capacity int) *entities.Event {
	t.Helper()

	event := &entities.Event{
		Name:        name,
		Organizer:   "Test Organizer",
		Location:    "Boston, MA",
		Date:        time.Date(2026, 6, 10, 9, 0, 0, 0, time.UTC),
		Description: "Event created for tests",
		Capacity:    capacity,
		Category:    "Technology",
	}
	require.NoError(t, store.Events().Create(context.Background(), event))
	return event
}

// CreateUser inserts a user whose password hash is not a real hash.
func CreateUser(t testing.TB, store *sqlite.Store, email string) *entities.User {
	t.Helper()

	user := &entities.User{Name: "Test User", Email: email, PasswordHash: "not-a-hash"}
	require.NoError(t, store.Users().Create(context.Background(), user))
	return user
}
