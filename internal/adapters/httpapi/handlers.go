package httpapi

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"eventreg/internal/domain"
	"eventreg/internal/domain/entities"
	"eventreg/internal/ports/input"
	"eventreg/internal/ports/output"
)

// Pinger reports whether the datastore answers.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	Accounts      input.AccountUseCase
	Catalog       input.EventCatalog
	Registrations input.RegistrationUseCase
	Translator    output.T
	Datastore     Pinger
}

func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, h.Translator, err)
		return
	}
	if _, err := h.Accounts.Signup(r.Context(), req.Name, req.Email, req.Password); err != nil {
		writeError(w, r, h.Translator, err)
		return
	}
	writeMessage(w, r, h.Translator, "signup.created")
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, h.Translator, err)
		return
	}
	token, user, err := h.Accounts.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, r, h.Translator, err)
		return
	}
	writeJSON(w, http.StatusOK, loginResponse{
		Token: token,
		User:  userSummary{ID: user.ID, Name: user.Name},
	})
}

func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserID(r.Context())
	user, err := h.Accounts.Me(r.Context(), userID)
	if err != nil {
		writeError(w, r, h.Translator, err)
		return
	}
	writeJSON(w, http.StatusOK, meResponse{ID: user.ID, Name: user.Name, Email: user.Email})
}

func (h *Handler) ListEvents(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	events, err := h.Catalog.List(r.Context(), entities.EventFilter{
		Search:   query.Get("search"),
		Category: query.Get("category"),
		Location: query.Get("location"),
	})
	if err != nil {
		writeError(w, r, h.Translator, err)
		return
	}
	writeJSON(w, http.StatusOK, toEventResponses(events))
}

func (h *Handler) GetEvent(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		writeError(w, r, h.Translator, domain.ErrInvalidEventID)
		return
	}
	event, err := h.Catalog.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, h.Translator, err)
		return
	}
	writeJSON(w, http.StatusOK, toEventResponse(*event))
}

func (h *Handler) FilterOptions(w http.ResponseWriter, r *http.Request) {
	options, err := h.Catalog.FilterOptions(r.Context())
	if err != nil {
		writeError(w, r, h.Translator, err)
		return
	}
	writeJSON(w, http.StatusOK, toFilterOptionsResponse(options))
}

func (h *Handler) UserRegistrations(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserID(r.Context())
	events, err := h.Registrations.ListForUser(r.Context(), userID)
	if err != nil {
		writeError(w, r, h.Translator, err)
		return
	}
	writeJSON(w, http.StatusOK, toEventResponses(events))
}

func (h *Handler) RegisterEvent(w http.ResponseWriter, r *http.Request) {
	var req registrationRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, h.Translator, err)
		return
	}
	userID, _ := UserID(r.Context())
	if _, err := h.Registrations.Register(r.Context(), userID, int64(req.EventID)); err != nil {
		writeError(w, r, h.Translator, err)
		return
	}
	writeMessage(w, r, h.Translator, "registration.success")
}

func (h *Handler) CancelRegistration(w http.ResponseWriter, r *http.Request) {
	var req registrationRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, h.Translator, err)
		return
	}
	userID, _ := UserID(r.Context())
	if err := h.Registrations.Cancel(r.Context(), userID, int64(req.EventID)); err != nil {
		writeError(w, r, h.Translator, err)
		return
	}
	writeMessage(w, r, h.Translator, "registration.cancelled")
}

type healthResponse struct {
	Status string `json:"status"`
}

// Healthz is a liveness probe.
func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok"})
}

// Readyz answers 503 while the datastore does not respond.
func (h *Handler) Readyz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()
	if err := h.Datastore.Ping(ctx); err != nil {
		zerolog.Ctx(r.Context()).Warn().Err(err).Msg("readiness check failed")
		writeJSON(w, http.StatusServiceUnavailable, healthResponse{Status: "unavailable"})
		return
	}
	writeJSON(w, http.StatusOK, healthResponse{Status: "ready"})
}
