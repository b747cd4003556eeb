package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/text/language"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	Server         ServerConfig
	Database       DatabaseConfig
	Auth           AuthConfig
	Cache          CacheConfig
	Discord        DiscordConfig
	Logging        LoggingConfig
	DefaultLocale  string
	MetricsEnabled bool
	Environment    string
}

type ServerConfig struct {
	Host string
	Port int
}

// Addr is the listen address of the HTTP server.
func (s ServerConfig) Addr() string {
	return s.Host + ":" + strconv.Itoa(s.Port)
}

type DatabaseConfig struct {
	Driver         string
	URL            string
	MaxConnections int
	MigrateOnStart bool
}

type AuthConfig struct {
	JWTSecret      string
	JWTExpiry      time.Duration
	JWTIssuer      string
	BcryptCost     int
	LoginPerMinute int
}

type CacheConfig struct {
	RedisURL string
	TTL      time.Duration
}

type DiscordConfig struct {
	Token    string
	GuildID  string
	Timezone string
}

type LoggingConfig struct {
	Level  string
	Format string
}

// Load charge la configuration depuis .env puis les variables d'environnement et la valide.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		// .env est optionnel lorsque les variables sont fournies par l'environnement (Docker, CI, etc.).
	}

	driver := strings.ToLower(strings.TrimSpace(getEnv("DATABASE_DRIVER", DriverPostgres)))
	cfg := &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: getEnvInt("SERVER_PORT", 8080),
		},
		Database: DatabaseConfig{
			Driver:         driver,
			URL:            getEnv("DATABASE_URL", defaultDatabaseURL(driver)),
			MaxConnections: getEnvInt("DATABASE_MAX_CONNECTIONS", 25),
			MigrateOnStart: getEnvBool("MIGRATE_ON_START", true),
		},
		Auth: AuthConfig{
			JWTSecret:      os.Getenv("JWT_SECRET"),
			JWTExpiry:      time.Duration(getEnvInt("JWT_EXPIRY_HOURS", 24)) * time.Hour,
			JWTIssuer:      getEnv("JWT_ISSUER", "eventreg"),
			BcryptCost:     getEnvInt("BCRYPT_COST", 10),
			LoginPerMinute: getEnvInt("LOGIN_RATE_PER_MINUTE", 10),
		},
		Cache: CacheConfig{
			RedisURL: os.Getenv("REDIS_URL"),
			TTL:      time.Duration(getEnvInt("CACHE_TTL_SECONDS", 300)) * time.Second,
		},
		Discord: DiscordConfig{
			Token:    os.Getenv("DISCORD_TOKEN"),
			GuildID:  os.Getenv("DISCORD_GUILD_ID"),
			Timezone: getEnv("DISCORD_TIMEZONE", "UTC"),
		},
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		DefaultLocale:  getEnv("DEFAULT_LOCALE", "en"),
		MetricsEnabled: getEnvBool("METRICS_ENABLED", true),
		Environment:    getEnv("ENVIRONMENT", "development"),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// IsProduction reports whether ENVIRONMENT is production.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Environment, "production")
}

// validate applique toutes les règles sur la configuration chargée.
func (c *Config) validate() error {
	if strings.TrimSpace(c.Auth.JWTSecret) == "" {
		return fmt.Errorf("config: JWT_SECRET est requis et ne peut pas être vide")
	}
	if c.IsProduction() && len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("config: JWT_SECRET doit contenir au moins 32 caractères en production")
	}
	if c.Auth.JWTExpiry <= 0 {
		return fmt.Errorf("config: JWT_EXPIRY_HOURS doit être strictement positif")
	}
	if c.Auth.BcryptCost < 4 || c.Auth.BcryptCost > 31 {
		return fmt.Errorf("config: BCRYPT_COST doit être compris entre 4 et 31 (reçu %d)", c.Auth.BcryptCost)
	}
	if c.Auth.LoginPerMinute < 0 {
		return fmt.Errorf("config: LOGIN_RATE_PER_MINUTE ne peut pas être négatif")
	}

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("config: SERVER_PORT invalide (%d)", c.Server.Port)
	}

	switch c.Database.Driver {
	case DriverPostgres:
		parsed, err := url.Parse(c.Database.URL)
		if err != nil {
			return fmt.Errorf("config: DATABASE_URL invalide (%q): %w", c.Database.URL, err)
		}
		if parsed.Scheme == "" || parsed.Host == "" {
			return fmt.Errorf("config: DATABASE_URL invalide (%q): scheme ou host manquant", c.Database.URL)
		}
		if c.Database.MaxConnections <= 0 {
			return fmt.Errorf("config: DATABASE_MAX_CONNECTIONS doit être strictement positif")
		}
	case DriverSQLite:
		if strings.TrimSpace(c.Database.URL) == "" {
			return fmt.Errorf("config: DATABASE_URL doit indiquer le fichier SQLite")
		}
	default:
		return fmt.Errorf("config: DATABASE_DRIVER doit valoir %q ou %q (reçu %q)", DriverPostgres, DriverSQLite, c.Database.Driver)
	}

	if c.Cache.RedisURL != "" {
		if _, err := url.Parse(c.Cache.RedisURL); err != nil {
			return fmt.Errorf("config: REDIS_URL invalide (%q): %w", c.Cache.RedisURL, err)
		}
		if c.Cache.TTL <= 0 {
			return fmt.Errorf("config: CACHE_TTL_SECONDS doit être strictement positif")
		}
	}

	for _, r := range c.Discord.GuildID {
		if r < '0' || r > '9' {
			return fmt.Errorf("config: DISCORD_GUILD_ID doit être un ID de serveur Discord (chiffres uniquement)")
		}
	}

	if _, err := time.LoadLocation(c.Discord.Timezone); err != nil {
		return fmt.Errorf("config: DISCORD_TIMEZONE invalide (%q): %w", c.Discord.Timezone, err)
	}

	if _, err := language.Parse(c.DefaultLocale); err != nil {
		return fmt.Errorf("config: DEFAULT_LOCALE invalide (%q): %w", c.DefaultLocale, err)
	}

	return nil
}

func defaultDatabaseURL(driver string) string {
	if driver == DriverSQLite {
		return "eventreg.db"
	}
	// Valeur par défaut utile en local lorsque DATABASE_URL n'est pas fournie.
	return "postgres://localhost:5432/eventreg?sslmode=disable"
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}
