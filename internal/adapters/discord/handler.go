package discord

import (
	"github.com/rs/zerolog"

	"eventreg/internal/ports/input"
	"eventreg/internal/ports/output"
	pkgdiscord "eventreg/pkg/discord"
)

// Handler answers catalog slash commands using the EventCatalog use case.
type Handler struct {
	catalog    input.EventCatalog
	translator output.T
	embeds     pkgdiscord.EmbedBuilder
	logger     zerolog.Logger
}

func NewHandler(catalog input.EventCatalog, translator output.T, embeds pkgdiscord.EmbedBuilder, logger zerolog.Logger) *Handler {
	return &Handler{
		catalog:    catalog,
		translator: translator,
		embeds:     embeds,
		logger:     logger,
	}
}
