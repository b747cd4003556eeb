package sqlite_test

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

	"eventreg/internal/domain"
	"eventreg/internal/domain/entities"
	"eventreg/internal/infrastructure/sqlite"
	"eventreg/internal/infrastructure/sqlite/sqlitetest"
	"eventreg/internal/ports/output"
)

func register(ctx context.Context, store *sqlite.Store, userID, eventID int64) error {
	return store.WithEventLock(ctx, eventID, func(ctx context.Context, event *entities.Event, tx output.RegistrationTx) error {
		return tx.Create(ctx, &entities.Registration{UserID: userID, EventID: event.ID})
	})
}

func TestCreateRegistrationRespectsCapacity(t *testing.T) {
	ctx := context.Background()
	store := sqlitetest.New(t)
	event := sqlitetest.CreateEvent(t, store, "Small Workshop", 1)
	alice := sqlitetest.CreateUser(t, store, "alice@example.com")
	bob := sqlitetest.CreateUser(t, store, "bob@example.com")

	require.NoError(t, register(ctx, store, alice.ID, event.ID))
	assert.ErrorIs(t, register(ctx, store, bob.ID, event.ID), domain.ErrEventFull)

	count, err := store.Registrations().CountByEventID(ctx, event.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestCreateRegistrationDuplicate(t *testing.T) {
	ctx := context.Background()
	store := sqlitetest.New(t)
	event := sqlitetest.CreateEvent(t, store, "Big Conference", 10)
	alice := sqlitetest.CreateUser(t, store, "alice@example.com")

	require.NoError(t, register(ctx, store, alice.ID, event.ID))
	assert.ErrorIs(t, register(ctx, store, alice.ID, event.ID), domain.ErrAlreadyRegistered)
}

func TestCreateRegistrationUnknownUser(t *testing.T) {
	store := sqlitetest.New(t)
	event := sqlitetest.CreateEvent(t, store, "Big Conference", 10)

	err := register(context.Background(), store, 999, event.ID)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestWithEventLockUnknownEvent(t *testing.T) {
	store := sqlitetest.New(t)
	called := false
	err := store.WithEventLock(context.Background(), 404, func(context.Context, *entities.Event, output.RegistrationTx) error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, domain.ErrEventNotFound)
	assert.False(t, called)
}

func TestWithEventLockRollsBackOnError(t *testing.T) {
	ctx := context.Background()
	store := sqlitetest.New(t)
	event := sqlitetest.CreateEvent(t, store, "Big Conference", 10)
	alice := sqlitetest.CreateUser(t, store, "alice@example.com")

	boom := errors.New("boom")
	err := store.WithEventLock(ctx, event.ID, func(ctx context.Context, event *entities.Event, tx output.RegistrationTx) error {
		require.NoError(t, tx.Create(ctx, &entities.Registration{UserID: alice.ID, EventID: event.ID}))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	count, err := store.Registrations().CountByEventID(ctx, event.ID)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestConcurrentRegistrationsNeverExceedCapacity(t *testing.T) {
	ctx := context.Background()
	store := sqlitetest.New(t)
	const capacity, attempts = 5, 40
	event := sqlitetest.CreateEvent(t, store, "The Big GopherCon", capacity)

	users := make([]*entities.User, attempts)
	for i := range users {
		users[i] = sqlitetest.CreateUser(t, store, fmt.Sprintf("gopher%d@example.com", i))
	}

	var succeeded, full, failed atomic.Int32
	var wg sync.WaitGroup
	for _, u := range users {
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
		}(u.ID)
	}
	wg.Wait()

	assert.EqualValues(t, capacity, succeeded.Load())
	assert.EqualValues(t, attempts-capacity, full.Load())
	assert.Zero(t, failed.Load())

	count, err := store.Registrations().CountByEventID(ctx, event.ID)
	require.NoError(t, err)
	assert.Equal(t, capacity, count)
}

func TestDeleteRegistrationIsIdempotent(t *testing.T) {
	ctx := context.Background()
	store := sqlitetest.New(t)
	event := sqlitetest.CreateEvent(t, store, "Big Conference", 10)
	alice := sqlitetest.CreateUser(t, store, "alice@example.com")
	require.NoError(t, register(ctx, store, alice.ID, event.ID))

	removed, err := store.Registrations().Delete(ctx, alice.ID, event.ID)
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = store.Registrations().Delete(ctx, alice.ID, event.ID)
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestFindEventsByUserID(t *testing.T) {
	ctx := context.Background()
	store := sqlitetest.New(t)
	first := sqlitetest.CreateEvent(t, store, "First", 10)
	second := sqlitetest.CreateEvent(t, store, "Second", 10)
	sqlitetest.CreateEvent(t, store, "Not Mine", 10)
	alice := sqlitetest.CreateUser(t, store, "alice@example.com")

	require.NoError(t, register(ctx, store, alice.ID, second.ID))
	require.NoError(t, register(ctx, store, alice.ID, first.ID))

	events, err := store.Registrations().FindEventsByUserID(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, second.ID, events[0].ID)
	assert.Equal(t, first.ID, events[1].ID)
}

func TestUserEmailUnique(t *testing.T) {
	ctx := context.Background()
	store := sqlitetest.New(t)
	sqlitetest.CreateUser(t, store, "alice@example.com")

	err := store.Users().Create(ctx, &entities.User{Name: "Other", Email: "alice@example.com", PasswordHash: "x"})
	assert.ErrorIs(t, err, domain.ErrEmailTaken)

	u, err := store.Users().FindByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, "Test User", u.Name)

	_, err = store.Users().FindByID(ctx, 12345)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func seedCatalog(t *testing.T, store *sqlite.Store) {
	t.Helper()
	ctx := context.Background()
	for _, e := range []entities.Event{
		{Name: "AI & Machine Learning Summit", Location: "Boston, MA", Description: "Exploring the future of AI", Capacity: 300, Category: "Technology", Date: time.Date(2026, 6, 10, 0, 0, 0, 0, time.UTC)},
		{Name: "Design Thinking Workshop", Location: "Los Angeles, CA", Description: "Learn design thinking methodologies", Capacity: 100, Category: "Design", Date: time.Date(2026, 3, 25, 0, 0, 0, 0, time.UTC)},
		{Name: "Networking Breakfast", Location: "Chicago, IL", Description: "Connect with industry leaders", Capacity: 200, Category: "Networking"},
		{Name: "100% Remote Meetup", Location: "", Description: "Fully online", Capacity: 20, Category: ""},
	} {
		e := e
		require.NoError(t, store.Events().Create(ctx, &e))
	}
}

func TestListEventsFilters(t *testing.T) {
	ctx := context.Background()
	store := sqlitetest.New(t)
	seedCatalog(t, store)

	all, err := store.Events().List(ctx, entities.EventFilter{})
	require.NoError(t, err)
	require.Len(t, all, 4)
	assert.Equal(t, "Design Thinking Workshop", all[0].Name, "dated events come first, by date")

	tech, err := store.Events().List(ctx, entities.EventFilter{Category: "Technology"})
	require.NoError(t, err)
	require.Len(t, tech, 1)
	assert.Equal(t, "AI & Machine Learning Summit", tech[0].Name)

	ai, err := store.Events().List(ctx, entities.EventFilter{Search: "ai"})
	require.NoError(t, err)
	names := make([]string, 0, len(ai))
	for _, e := range ai {
		names = append(names, e.Name)
	}
	assert.Contains(t, names, "AI & Machine Learning Summit")

	byDescription, err := store.Events().List(ctx, entities.EventFilter{Search: "INDUSTRY"})
	require.NoError(t, err)
	require.Len(t, byDescription, 1)
	assert.Equal(t, "Networking Breakfast", byDescription[0].Name)

	combined, err := store.Events().List(ctx, entities.EventFilter{Search: "design", Location: "Chicago, IL"})
	require.NoError(t, err)
	assert.Empty(t, combined)

	literal, err := store.Events().List(ctx, entities.EventFilter{Search: "%"})
	require.NoError(t, err)
	require.Len(t, literal, 1)
	assert.Equal(t, "100% Remote Meetup", literal[0].Name)
}

func TestFilterOptions(t *testing.T) {
	store := sqlitetest.New(t)
	seedCatalog(t, store)

	options, err := store.Events().FilterOptions(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Design", "Networking", "Technology"}, options.Categories)
	assert.Equal(t, []string{"Boston, MA", "Chicago, IL", "Los Angeles, CA"}, options.Locations)
}

func TestFindEventByID(t *testing.T) {
	ctx := context.Background()
	store := sqlitetest.New(t)
	created := sqlitetest.CreateEvent(t, store, "Cloud Computing Essentials", 75)

	event, err := store.Events().FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Cloud Computing Essentials", event.Name)
	assert.Equal(t, 75, event.Capacity)
	assert.True(t, created.Date.Equal(event.Date))

	_, err = store.Events().FindByID(ctx, created.ID+100)
	assert.ErrorIs(t, err, domain.ErrEventNotFound)
}
