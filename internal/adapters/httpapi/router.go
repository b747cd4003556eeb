package httpapi

import (
	"net/http"

	"github.com/rs/zerolog"

	"eventreg/internal/infrastructure/metrics"
)

type RouterConfig struct {
	LoginPerMinute int
	MetricsEnabled bool
}

// NewRouter mounts the API under /api next to the probes and, when enabled,
// the Prometheus endpoint.
func NewRouter(h *Handler, cfg RouterConfig, logger zerolog.Logger) http.Handler {
	requireAuth := RequireAuth(h.Accounts, h.Translator)
	loginLimit := RateLimit(cfg.LoginPerMinute, h.Translator)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", h.Healthz)
	mux.HandleFunc("GET /readyz", h.Readyz)
	if cfg.MetricsEnabled {
		mux.Handle("GET /metrics", metrics.Handler())
	}

	mux.HandleFunc("POST /api/signup", h.Signup)
	mux.Handle("POST /api/login", loginLimit(http.HandlerFunc(h.Login)))
	mux.HandleFunc("GET /api/events", h.ListEvents)
	mux.HandleFunc("GET /api/events/{id}", h.GetEvent)
	mux.HandleFunc("GET /api/filter-options", h.FilterOptions)
	mux.Handle("GET /api/me", requireAuth(http.HandlerFunc(h.Me)))
	mux.Handle("GET /api/user-registrations", requireAuth(http.HandlerFunc(h.UserRegistrations)))
	mux.Handle("POST /api/register-event", requireAuth(http.HandlerFunc(h.RegisterEvent)))
	mux.Handle("POST /api/cancel-registration", requireAuth(http.HandlerFunc(h.CancelRegistration)))

	var handler http.Handler = CORS(mux)
	if cfg.MetricsEnabled {
		handler = metrics.HTTPMiddleware(handler)
	}
	handler = RequestLogging(handler)
	handler = Recover(h.Translator)(handler)
	return CorrelationID(logger)(handler)
}
