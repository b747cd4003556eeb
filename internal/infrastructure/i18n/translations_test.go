package i18n

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestTranslator(t *testing.T) {
	tr := NewTranslator("en", zerolog.Nop())

	assert.Equal(t, "Event is full", tr.T("en", "error.event_full", nil))
	assert.Equal(t, "L'événement est complet", tr.T("fr", "error.event_full", nil))
	assert.Equal(t, "L'événement est complet", tr.T("fr-FR,fr;q=0.9,en;q=0.8", "error.event_full", nil))
	assert.Equal(t, "Event is full", tr.T("de", "error.event_full", nil))
	assert.Equal(t, "Event is full", tr.T("", "error.event_full", nil))
	assert.Equal(t, "3 more events not shown", tr.T("en", "discord.events.more", map[string]any{"Count": 3}))
	assert.Equal(t, "no.such.key", tr.T("fr", "no.such.key", nil))
	assert.Empty(t, tr.T("fr", "", nil))
}

func TestTranslatorDefaultLocale(t *testing.T) {
	tr := NewTranslator("fr", zerolog.Nop())
	assert.Equal(t, "Inscription annulée", tr.T("", "registration.cancelled", nil))

	fallback := NewTranslator("not a locale!", zerolog.Nop())
	assert.Equal(t, "Registration cancelled successfully", fallback.T("", "registration.cancelled", nil))
}

func TestEveryMessageIsTranslated(t *testing.T) {
	tr := NewTranslator("en", zerolog.Nop())
	assert.Len(t, tr.Languages(), 2)
}
