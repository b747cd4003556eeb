package database

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"

	"eventreg/internal/domain"
	"eventreg/internal/domain/entities"
	"eventreg/internal/ports/output"
)

// setupStore starts a throwaway PostgreSQL container, migrates it and returns
// a Store on it.
func setupStore(t *testing.T) *Store {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping PostgreSQL tests in short mode")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	container, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("eventreg"),
		postgres.WithUsername("eventreg"),
		postgres.WithPassword("eventreg"),
		postgres.BasicWaitStrategies(),
	)
	testcontainers.CleanupContainer(t, container)
	require.NoError(t, err)

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	version, err := RunMigrations(dsn)
	require.NoError(t, err)
	require.Equal(t, uint(1), version)

	pool, err := NewPool(ctx, dsn, 20)
	require.NoError(t, err)
	store, err := NewStore(pool)
	require.NoError(t, err)
	t.Cleanup(store.Close)
	return store
}

func createEvent(t *testing.T, store *Store, e entities.Event) *entities.Event {
	t.Helper()
	require.NoError(t, store.Events().Create(context.Background(), &e))
	return &e
}

func createUser(t *testing.T, store *Store, email string) *entities.User {
	t.Helper()
	u := &entities.User{Name: "Test User", Email: email, PasswordHash: "not-a-hash"}
	require.NoError(t, store.Users().Create(context.Background(), u))
	return u
}

func register(ctx context.Context, store *Store, userID, eventID int64) error {
	return store.WithEventLock(ctx, eventID, func(ctx context.Context, event *entities.Event, tx output.RegistrationTx) error {
		count, err := tx.CountByEventID(ctx, event.ID)
		if err != nil {
			return err
		}
		if !event.HasSeatFor(count) {
			return domain.ErrEventFull
		}
		return tx.Create(ctx, &entities.Registration{UserID: userID, EventID: event.ID})
	})
}

func TestPostgresStore(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	t.Run("concurrent registrations never exceed capacity", func(t *testing.T) {
		const capacity, attempts = 5, 50
		event := createEvent(t, store, entities.Event{Name: "The Big GopherCon", Capacity: capacity, Category: "Technology"})

		var succeeded, full, failed atomic.Int32
		var wg sync.WaitGroup
		for i := 0; i < attempts; i++ {
			user := createUser(t, store, fmt.Sprintf("gopher%d@example.com", i))
			wg.Add(1)
			go func(userID int64) {
				defer wg.Done()
				err := register(ctx, store, userID, event.ID)
				switch {
				case err == nil:
					succeeded.Add(1)
				case errors.Is(err, domain.ErrEventFull):
					full.Add(1)
				default:
					t.Logf("unexpected error: %v", err)
					failed.Add(1)
				}
			}(user.ID)
		}
		wg.Wait()

		assert.EqualValues(t, capacity, succeeded.Load())
		assert.EqualValues(t, attempts-capacity, full.Load())
		assert.Zero(t, failed.Load())

		count, err := store.Registrations().CountByEventID(ctx, event.ID)
		require.NoError(t, err)
		assert.Equal(t, capacity, count)
	})

	t.Run("duplicate registration", func(t *testing.T) {
		event := createEvent(t, store, entities.Event{Name: "Workshop", Capacity: 10})
		user := createUser(t, store, "dup@example.com")

		require.NoError(t, register(ctx, store, user.ID, event.ID))
		assert.ErrorIs(t, register(ctx, store, user.ID, event.ID), domain.ErrAlreadyRegistered)
	})

	t.Run("unknown event", func(t *testing.T) {
		user := createUser(t, store, "lost@example.com")
		assert.ErrorIs(t, register(ctx, store, user.ID, 987654), domain.ErrEventNotFound)
	})

	t.Run("cancel is idempotent", func(t *testing.T) {
		event := createEvent(t, store, entities.Event{Name: "Breakfast", Capacity: 1})
		user := createUser(t, store, "cancel@example.com")
		require.NoError(t, register(ctx, store, user.ID, event.ID))

		removed, err := store.Registrations().Delete(ctx, user.ID, event.ID)
		require.NoError(t, err)
		assert.True(t, removed)
		removed, err = store.Registrations().Delete(ctx, user.ID, event.ID)
		require.NoError(t, err)
		assert.False(t, removed)
	})

	t.Run("email unique", func(t *testing.T) {
		createUser(t, store, "taken@example.com")
		err := store.Users().Create(ctx, &entities.User{Name: "Other", Email: "taken@example.com", PasswordHash: "x"})
		assert.ErrorIs(t, err, domain.ErrEmailTaken)
	})

	t.Run("catalog filters", func(t *testing.T) {
		createEvent(t, store, entities.Event{Name: "AI & Machine Learning Summit", Location: "Boston, MA", Description: "Exploring the future of AI", Capacity: 300, Category: "Technology"})
		createEvent(t, store, entities.Event{Name: "Design Thinking Workshop", Location: "Los Angeles, CA", Description: "User research", Capacity: 100, Category: "Design"})

		ai, err := store.Events().List(ctx, entities.EventFilter{Search: "ai"})
		require.NoError(t, err)
		names := make([]string, 0, len(ai))
		for _, e := range ai {
			names = append(names, e.Name)
		}
		assert.Contains(t, names, "AI & Machine Learning Summit")

		design, err := store.Events().List(ctx, entities.EventFilter{Category: "Design", Location: "Los Angeles, CA"})
		require.NoError(t, err)
		require.Len(t, design, 1)
		assert.Equal(t, "Design Thinking Workshop", design[0].Name)

		options, err := store.Events().FilterOptions(ctx)
		require.NoError(t, err)
		assert.Contains(t, options.Categories, "Design")
		assert.Contains(t, options.Locations, "Boston, MA")
		assert.NotContains(t, options.Locations, "")
	})
}

func TestContainsPatternEscapesWildcards(t *testing.T) {
	assert.Equal(t, `%ai%`, containsPattern("ai"))
	assert.Equal(t, `%100\%%`, containsPattern("100%"))
	assert.Equal(t, `%a\_b%`, containsPattern("a_b"))
	assert.Equal(t, `%c:\\temp%`, containsPattern(`c:\temp`))
}
