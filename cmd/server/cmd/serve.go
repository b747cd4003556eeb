package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"eventreg/internal/adapters/discord"
	"eventreg/internal/adapters/httpapi"
	"eventreg/internal/application"
	"eventreg/internal/config"
	"eventreg/internal/infrastructure/auth"
	"eventreg/internal/infrastructure/cache"
	"eventreg/internal/infrastructure/database"
	"eventreg/internal/infrastructure/i18n"
	"eventreg/internal/infrastructure/metrics"
	"eventreg/internal/infrastructure/sqlite"
	"eventreg/internal/ports/input"
	"eventreg/internal/ports/output"
	pkgdiscord "eventreg/pkg/discord"
)

var (
	// Server flags (override config/env)
	serverHost string
	serverPort int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Long: `Start the HTTP API and, when DISCORD_TOKEN is set, the Discord catalog bot.

Examples:
  # Start with configuration from the environment / .env
  server serve

  # Start on a specific host and port with debug logging
  server serve --host 127.0.0.1 --port 9090 --log-level debug`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServer(cmd.Context())
	},
}

func init() {
	serveCmd.Flags().StringVar(&serverHost, "host", "", "server host address (default: 0.0.0.0)")
	serveCmd.Flags().IntVar(&serverPort, "port", 0, "server port (default: 8080)")
}

func runServer(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	if serverHost != "" {
		cfg.Server.Host = serverHost
	}
	if serverPort != 0 {
		cfg.Server.Port = serverPort
	}

	logger := config.NewLogger(cfg.Logging)
	logger.Info().Str("version", Version).Str("driver", cfg.Database.Driver).Msg("starting server")

	if cfg.MetricsEnabled {
		metrics.Init(Version, GitCommit)
	}

	store, err := openDatastore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer store.Close()

	translator := i18n.NewTranslator(cfg.DefaultLocale, logger)
	tokens := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTExpiry, cfg.Auth.JWTIssuer)

	var catalogCache output.CatalogCache
	if cfg.Cache.RedisURL != "" {
		rdb, err := cache.NewClient(ctx, cfg.Cache.RedisURL)
		if err != nil {
			logger.Warn().Err(err).Msg("redis unavailable, catalog cache disabled")
		} else {
			defer rdb.Close()
			catalogCache = cache.NewRedisCatalogCache(rdb, cache.WithTTL(cfg.Cache.TTL))
			logger.Info().Dur("ttl", cfg.Cache.TTL).Msg("catalog cache enabled")
		}
	}

	accounts := application.NewAccountService(store.Users(), auth.BcryptHasher{Cost: cfg.Auth.BcryptCost}, tokens, tokens, logger)
	catalog := application.NewCatalogService(store.Events(), catalogCache, logger)
	var registrations input.RegistrationUseCase = application.NewRegistrationService(store, logger)
	if cfg.MetricsEnabled {
		registrations = metrics.InstrumentRegistrations(registrations)
	}

	handler := httpapi.NewRouter(&httpapi.Handler{
		Accounts:      accounts,
		Catalog:       catalog,
		Registrations: registrations,
		Translator:    translator,
		Datastore:     store,
	}, httpapi.RouterConfig{
		LoginPerMinute: cfg.Auth.LoginPerMinute,
		MetricsEnabled: cfg.MetricsEnabled,
	}, logger)

	server := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           handler,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", server.Addr).Msg("listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	if cfg.Discord.Token != "" {
		loc, err := time.LoadLocation(cfg.Discord.Timezone)
		if err != nil {
			return fmt.Errorf("discord timezone: %w", err)
		}
		embeds := pkgdiscord.EmbedBuilder{Translator: translator, Location: loc}
		bot, err := discord.NewBot(cfg.Discord.Token, cfg.Discord.GuildID,
			discord.NewHandler(catalog, translator, embeds, logger), logger)
		if err != nil {
			return err
		}
		go func() {
			if err := bot.Start(ctx); err != nil {
				logger.Error().Err(err).Msg("discord bot stopped")
			}
		}()
	}

	select {
	case <-ctx.Done():
	case err := <-serverErr:
		return fmt.Errorf("http server: %w", err)
	}
	logger.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("shutdown error")
	}
	return nil
}

// openDatastore connects the configured datastore, migrating it first when
// MIGRATE_ON_START is set.
func openDatastore(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (output.Datastore, error) {
	switch cfg.Database.Driver {
	case config.DriverSQLite:
		if cfg.Database.MigrateOnStart {
			version, err := sqlite.RunMigrations(cfg.Database.URL)
			if err != nil {
				return nil, fmt.Errorf("migrate: %w", err)
			}
			logger.Info().Uint("version", version).Msg("migrations applied")
		}
		store, err := sqlite.Open(ctx, cfg.Database.URL)
		if err != nil {
			return nil, fmt.Errorf("open sqlite: %w", err)
		}
		return store, nil

	default:
		if cfg.Database.MigrateOnStart {
			version, err := database.RunMigrations(cfg.Database.URL)
			if err != nil {
				return nil, fmt.Errorf("migrate: %w", err)
			}
			logger.Info().Uint("version", version).Msg("migrations applied")
		}
		connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()
		pool, err := database.NewPool(connectCtx, cfg.Database.URL, cfg.Database.MaxConnections)
		if err != nil {
			return nil, fmt.Errorf("database connection failed: %w", err)
		}
		if cfg.MetricsEnabled {
			metrics.RegisterPoolStats(pool)
		}
		store, err := database.NewStore(pool)
		if err != nil {
			pool.Close()
			return nil, err
		}
		return store, nil
	}
}
