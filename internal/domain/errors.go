package domain

import "errors"

// Domain errors.
var (
	ErrEventNotFound        = errors.New("événement non trouvé")
	ErrEventFull            = errors.New("événement complet")
	ErrAlreadyRegistered    = errors.New("utilisateur déjà inscrit à cet événement")
	ErrUserNotFound         = errors.New("utilisateur non trouvé")
	ErrEmailTaken           = errors.New("adresse e-mail déjà utilisée")
	ErrInvalidCredentials   = errors.New("identifiants invalides")
	ErrUnauthenticated      = errors.New("authentification requise")
	ErrValidation           = errors.New("données invalides")
	ErrInvalidEventID       = errors.New("identifiant d'événement invalide")
	ErrDatastoreUnavailable = errors.New("base de données indisponible")
)

// Error codes exposed to clients. They double as i18n message keys
// ("error.<code>").
const (
	CodeEventNotFound      = "event_not_found"
	CodeEventFull          = "event_full"
	CodeAlreadyRegistered  = "already_registered"
	CodeUserNotFound       = "user_not_found"
	CodeEmailTaken         = "email_taken"
	CodeInvalidCredentials = "invalid_credentials"
	CodeUnauthenticated    = "unauthenticated"
	CodeValidation         = "validation_failed"
	CodeInvalidEventID     = "invalid_event_id"
	CodeUnavailable        = "unavailable"
)

var codes = []struct {
	err  error
	code string
}{
	{ErrEventNotFound, CodeEventNotFound},
	{ErrEventFull, CodeEventFull},
	{ErrAlreadyRegistered, CodeAlreadyRegistered},
	{ErrUserNotFound, CodeUserNotFound},
	{ErrEmailTaken, CodeEmailTaken},
	{ErrInvalidCredentials, CodeInvalidCredentials},
	{ErrUnauthenticated, CodeUnauthenticated},
	{ErrValidation, CodeValidation},
	{ErrInvalidEventID, CodeInvalidEventID},
	{ErrDatastoreUnavailable, CodeUnavailable},
}

// Code returns the stable code of a domain error wrapped anywhere in err's
// chain, or "" when err carries no domain error.
func Code(err error) string {
	if err == nil {
		return ""
	}
	for _, c := range codes {
		if errors.Is(err, c.err) {
			return c.code
		}
	}
	return ""
}

// ValidationError carries per-field messages for malformed input.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return ErrValidation.Error()
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}
