package discord

import (
	"eventreg/internal/domain"
	"eventreg/internal/ports/output"
)

// DomainErrorMessage resolves err to a localized user-facing message. Errors
// without a domain code get the generic internal error message.
func DomainErrorMessage(translator output.T, locale string, err error) string {
	if err == nil {
		return ""
	}
	code := domain.Code(err)
	if code == "" {
		code = "internal_error"
	}
	return translator.T(locale, "error."+code, nil)
}
