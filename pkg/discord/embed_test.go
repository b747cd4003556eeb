package discord

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventreg/internal/domain"
	"eventreg/internal/domain/entities"
	"eventreg/internal/infrastructure/i18n"
)

func newBuilder(t *testing.T) EmbedBuilder {
	t.Helper()
	paris, err := time.LoadLocation("Europe/Paris")
	require.NoError(t, err)
	return EmbedBuilder{Translator: i18n.NewTranslator("en", zerolog.Nop()), Location: paris}
}

func TestEventEmbed(t *testing.T) {
	b := newBuilder(t)
	event := &entities.Event{
		ID:        3,
		Name:      "Go Meetup",
		Organizer: "Gophers Paris",
		Date:      time.Date(2026, 7, 1, 17, 30, 0, 0, time.UTC),
		Capacity:  40,
		Category:  "Technology",
	}

	embed := b.EventEmbed("fr", event)
	assert.Equal(t, "Go Meetup", embed.Title)
	require.Len(t, embed.Fields, 5)
	assert.Equal(t, "Organisateur", embed.Fields[0].Name)
	assert.Equal(t, "Non précisé", embed.Fields[1].Value)
	assert.Equal(t, "01/07/2026 19:30", embed.Fields[2].Value)
	assert.Equal(t, "40", embed.Fields[4].Value)
	assert.Equal(t, "#3", embed.Footer.Text)
}

func TestEventListEmbed(t *testing.T) {
	b := newBuilder(t)

	empty := b.EventListEmbed("en", nil)
	assert.Equal(t, "No event matches these filters.", empty.Description)
	assert.Empty(t, empty.Fields)

	events := make([]entities.Event, MaxListedEvents+3)
	for i := range events {
		events[i] = entities.Event{ID: int64(i + 1), Name: fmt.Sprintf("Event %d", i+1), Location: "Lyon", Capacity: 10}
	}
	embed := b.EventListEmbed("en", events)
	require.Len(t, embed.Fields, MaxListedEvents)
	assert.Equal(t, "#1 · Event 1", embed.Fields[0].Name)
	assert.Equal(t, "Lyon • Capacity: 10", embed.Fields[0].Value)
	require.NotNil(t, embed.Footer)
	assert.Equal(t, "3 more events not shown", embed.Footer.Text)
}

func TestFormatEventDateTime(t *testing.T) {
	assert.Empty(t, FormatEventDateTime(time.Time{}, nil))
	assert.Equal(t, "02/01/2026 10:00", FormatEventDateTime(time.Date(2026, 1, 2, 10, 0, 0, 0, time.UTC), nil))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("  short ", 10))
	assert.Equal(t, "élé…", truncate("éléphant", 4))
}

func TestDomainErrorMessage(t *testing.T) {
	tr := i18n.NewTranslator("en", zerolog.Nop())

	assert.Empty(t, DomainErrorMessage(tr, "en", nil))
	assert.Equal(t, "Event not found", DomainErrorMessage(tr, "en", fmt.Errorf("get: %w", domain.ErrEventNotFound)))
	assert.Equal(t, "Événement introuvable", DomainErrorMessage(tr, "fr", domain.ErrEventNotFound))
	assert.Equal(t, "Internal server error", DomainErrorMessage(tr, "en", errors.New("boom")))
}
