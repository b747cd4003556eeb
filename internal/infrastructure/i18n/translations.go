package i18n

import (
	"embed"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/pelletier/go-toml/v2"
	"github.com/rs/zerolog"
	"golang.org/x/text/language"

	"eventreg/internal/ports/output"
)

//go:embed active.*.toml
var localeFS embed.FS

var _ output.T = (*Translator)(nil)

// Translator is a thin wrapper around go-i18n's Bundle/Localizer.
type Translator struct {
	bundle          *i18n.Bundle
	defaultLanguage language.Tag
	logger          zerolog.Logger
}

// NewTranslator builds a Translator over the embedded active.*.toml files
// using defaultLocale (e.g. "en") as the fallback language.
func NewTranslator(defaultLocale string, logger zerolog.Logger) *Translator {
	logger = logger.With().Str("component", "i18n").Logger()

	tag, err := language.Parse(defaultLocale)
	if err != nil {
		logger.Warn().Str("locale", defaultLocale).Msg("unknown default locale, using en")
		tag = language.English
	}
	bundle := i18n.NewBundle(tag)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	for _, file := range []string{"active.en.toml", "active.fr.toml"} {
		if _, err := bundle.LoadMessageFileFS(localeFS, file); err != nil {
			logger.Error().Err(err).Str("file", file).Msg("failed to load messages")
		}
	}

	return &Translator{
		bundle:          bundle,
		defaultLanguage: tag,
		logger:          logger,
	}
}

// Languages lists the locales with a loaded message file.
func (t *Translator) Languages() []language.Tag {
	return t.bundle.LanguageTags()
}

// T renders the message identified by key for locale, which may be a raw
// Accept-Language header. Unknown keys fall back to the default locale, then
// to the key itself.
func (t *Translator) T(locale, key string, data map[string]any) string {
	if key == "" {
		return ""
	}

	languages := []string{}
	if locale != "" {
		languages = append(languages, locale)
	}
	languages = append(languages, t.defaultLanguage.String())

	localizer := i18n.NewLocalizer(t.bundle, languages...)
	msg, err := localizer.Localize(&i18n.LocalizeConfig{
		MessageID:    key,
		TemplateData: data,
	})
	if err != nil {
		t.logger.Debug().Err(err).Str("key", key).Strs("locales", languages).Msg("localize failed")
		return key
	}
	return msg
}
