package config

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setBaseEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"DATABASE_DRIVER", "DATABASE_URL", "DATABASE_MAX_CONNECTIONS", "MIGRATE_ON_START",
		"SERVER_HOST", "SERVER_PORT", "JWT_EXPIRY_HOURS", "JWT_ISSUER", "BCRYPT_COST",
		"LOGIN_RATE_PER_MINUTE", "DEFAULT_LOCALE", "REDIS_URL", "CACHE_TTL_SECONDS",
		"METRICS_ENABLED", "DISCORD_TOKEN", "DISCORD_GUILD_ID", "DISCORD_TIMEZONE", "LOG_LEVEL", "LOG_FORMAT",
		"ENVIRONMENT",
	} {
		t.Setenv(key, "")
	}
	t.Setenv("JWT_SECRET", "test-secret")
}

func TestLoadDefaults(t *testing.T) {
	setBaseEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, DriverPostgres, cfg.Database.Driver)
	assert.Equal(t, "postgres://localhost:5432/eventreg?sslmode=disable", cfg.Database.URL)
	assert.True(t, cfg.Database.MigrateOnStart)
	assert.Equal(t, "0.0.0.0:8080", cfg.Server.Addr())
	assert.Equal(t, 24*time.Hour, cfg.Auth.JWTExpiry)
	assert.Equal(t, 10, cfg.Auth.BcryptCost)
	assert.Equal(t, 5*time.Minute, cfg.Cache.TTL)
	assert.Equal(t, "en", cfg.DefaultLocale)
	assert.True(t, cfg.MetricsEnabled)
	assert.False(t, cfg.IsProduction())
}

func TestLoadSQLite(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("DATABASE_DRIVER", "SQLite")
	t.Setenv("MIGRATE_ON_START", "false")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, DriverSQLite, cfg.Database.Driver)
	assert.Equal(t, "eventreg.db", cfg.Database.URL)
	assert.False(t, cfg.Database.MigrateOnStart)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	cases := []struct {
		name    string
		env     map[string]string
		mention string
	}{
		{"missing secret", map[string]string{"JWT_SECRET": ""}, "JWT_SECRET"},
		{"short secret in production", map[string]string{"ENVIRONMENT": "production"}, "JWT_SECRET"},
		{"unknown driver", map[string]string{"DATABASE_DRIVER": "mysql"}, "DATABASE_DRIVER"},
		{"postgres url without host", map[string]string{"DATABASE_URL": "eventreg"}, "DATABASE_URL"},
		{"port out of range", map[string]string{"SERVER_PORT": "70000"}, "SERVER_PORT"},
		{"bcrypt cost too low", map[string]string{"BCRYPT_COST": "2"}, "BCRYPT_COST"},
		{"negative login rate", map[string]string{"LOGIN_RATE_PER_MINUTE": "-1"}, "LOGIN_RATE_PER_MINUTE"},
		{"guild id not numeric", map[string]string{"DISCORD_GUILD_ID": "abc"}, "DISCORD_GUILD_ID"},
		{"unknown timezone", map[string]string{"DISCORD_TIMEZONE": "Mars/Olympus"}, "DISCORD_TIMEZONE"},
		{"bad locale", map[string]string{"DEFAULT_LOCALE": "??"}, "DEFAULT_LOCALE"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			setBaseEnv(t)
			for k, v := range tc.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.mention)
		})
	}
}

func TestNewLogger(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, NewLogger(LoggingConfig{Level: "DEBUG"}).GetLevel())
	assert.Equal(t, zerolog.InfoLevel, NewLogger(LoggingConfig{Level: "verbose"}).GetLevel())
	assert.Equal(t, zerolog.WarnLevel, NewLogger(LoggingConfig{Level: "warn", Format: "console"}).GetLevel())
}
