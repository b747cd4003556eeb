package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"eventreg/internal/application"
	"eventreg/internal/domain"
	"eventreg/internal/ports/output"
)

const maxBodyBytes = 1 << 20

const (
	codeRateLimited = "rate_limited"
	codeInternal    = "internal_error"
)

type messageResponse struct {
	Message string `json:"message"`
}

type errorResponse struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func locale(r *http.Request) string {
	return r.Header.Get("Accept-Language")
}

func statusForCode(code string) int {
	switch code {
	case domain.CodeValidation, domain.CodeEmailTaken, domain.CodeInvalidEventID,
		domain.CodeEventFull, domain.CodeAlreadyRegistered:
		return http.StatusBadRequest
	case domain.CodeUnauthenticated, domain.CodeInvalidCredentials, domain.CodeUserNotFound:
		return http.StatusUnauthorized
	case domain.CodeEventNotFound:
		return http.StatusNotFound
	case domain.CodeUnavailable:
		return http.StatusServiceUnavailable
	case codeRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// writeError maps err to its status and localized body. Errors without a
// domain code are logged and answered with a generic 500.
func writeError(w http.ResponseWriter, r *http.Request, translator output.T, err error) {
	code := domain.Code(err)
	logger := zerolog.Ctx(r.Context())
	if code == "" {
		code = codeInternal
		logger.Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
	} else {
		logger.Debug().Err(err).Str("code", code).Msg("request rejected")
	}

	body := errorResponse{
		Code:    code,
		Message: translator.T(locale(r), "error."+code, nil),
	}
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		body.Fields = verr.Fields
	}
	writeJSON(w, statusForCode(code), body)
}

func writeMessage(w http.ResponseWriter, r *http.Request, translator output.T, key string) {
	writeJSON(w, http.StatusOK, messageResponse{Message: translator.T(locale(r), key, nil)})
}

var requestValidator = application.NewValidator()

// decodeJSON reads a single JSON object of at most 1 MiB into dst, rejecting
// unknown fields, then validates it. Every failure is a domain.ErrValidation.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	if ct := r.Header.Get("Content-Type"); ct != "" && !strings.HasPrefix(strings.ToLower(ct), "application/json") {
		return &domain.ValidationError{Fields: map[string]string{"body": "content_type"}}
	}

	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return decodeFailure(err)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return &domain.ValidationError{Fields: map[string]string{"body": "single_object"}}
	}

	if err := requestValidator.Struct(dst); err != nil {
		var invalid *validator.InvalidValidationError
		if errors.As(err, &invalid) {
			return fmt.Errorf("validate request: %w", err)
		}
		return application.ValidationFailure(err)
	}
	return nil
}

func decodeFailure(err error) error {
	var maxBytes *http.MaxBytesError
	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.As(err, &maxBytes):
		return &domain.ValidationError{Fields: map[string]string{"body": "too_large"}}
	case errors.As(err, &typeErr):
		field := typeErr.Field
		if field == "" {
			field = "body"
		}
		return &domain.ValidationError{Fields: map[string]string{field: "type"}}
	case errors.Is(err, io.EOF):
		return &domain.ValidationError{Fields: map[string]string{"body": "required"}}
	case strings.HasPrefix(err.Error(), "json: unknown field "):
		field := strings.Trim(strings.TrimPrefix(err.Error(), "json: unknown field "), `"`)
		return &domain.ValidationError{Fields: map[string]string{field: "unknown"}}
	default:
		return &domain.ValidationError{Fields: map[string]string{"body": "malformed"}}
	}
}
