package output

// T renders localized user-facing messages.
type T interface {
	// T renders key for locale, which may be a raw Accept-Language value.
	// data fills template placeholders and may be nil.
	T(locale, key string, data map[string]any) string
}
