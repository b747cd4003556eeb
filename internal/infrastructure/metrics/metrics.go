// Package metrics exposes the Prometheus collectors of the service on a
// private registry.
package metrics

import (
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "eventreg"

// Registry holds every collector of the service.
var Registry = prometheus.NewRegistry()

// AppInfo exposes the build version as labels (value is always 1).
var AppInfo = promauto.With(Registry).NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "app_info",
		Help:      "Application version information (always set to 1, version info in labels)",
	},
	[]string{"version", "commit"},
)

// Registration metrics
var (
	// RegistrationAttempts counts register calls by outcome
	// (success|event_full|already_registered|event_not_found|error).
	RegistrationAttempts = promauto.With(Registry).NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "registration_attempts_total",
			Help:      "Total number of registration attempts by outcome",
		},
		[]string{"outcome"},
	)

	// RegistrationCancellations counts successful cancel calls.
	RegistrationCancellations = promauto.With(Registry).NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "registration_cancellations_total",
			Help:      "Total number of registration cancellations",
		},
	)
)

// Init registers the runtime collectors and sets version information.
func Init(version, commit string) {
	Registry.MustRegister(collectors.NewGoCollector())
	Registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	AppInfo.WithLabelValues(version, commit).Set(1)
}

// RegisterPoolStats exposes the PostgreSQL pool statistics.
func RegisterPoolStats(pool *pgxpool.Pool) {
	gauge := func(name, help string, value func(*pgxpool.Stat) float64) prometheus.Collector {
		return prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      name,
			Help:      help,
		}, func() float64 { return value(pool.Stat()) })
	}
	Registry.MustRegister(
		gauge("db_connections_total", "Total number of open database connections",
			func(s *pgxpool.Stat) float64 { return float64(s.TotalConns()) }),
		gauge("db_connections_in_use", "Number of database connections currently acquired",
			func(s *pgxpool.Stat) float64 { return float64(s.AcquiredConns()) }),
		gauge("db_connections_idle", "Number of idle database connections",
			func(s *pgxpool.Stat) float64 { return float64(s.IdleConns()) }),
		gauge("db_connections_max", "Maximum number of database connections allowed",
			func(s *pgxpool.Stat) float64 { return float64(s.MaxConns()) }),
	)
}

// Handler serves the registry in the Prometheus exposition format.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{Registry: Registry})
}
