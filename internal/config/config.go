package config

import (
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server        ServerConfig
	Database      DatabaseConfig
	Session       SessionConfig
	Redis         RedisConfig
	Registrations RegistrationsConfig
	Resend        ResendConfig
	Metrics       MetricsConfig
	Admin         AdminConfig
}

type ServerConfig struct {
	Port string
	Host string
	Env  string
}

type DatabaseConfig struct {
	URL      string // Full database URL
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type SessionConfig struct {
	Secret string
	MaxAge int // seconds
}

type RedisConfig struct {
	URL     string
	CartTTL time.Duration
}

// RegistrationsConfig controls attendee provisioning
type RegistrationsConfig struct {
	Debug         bool
	GroupsEnabled bool
	SiteName      string
	LoginURL      string
}

type ResendConfig struct {
	APIKey     string
	FromEmail  string
	FromName   string
	AdminEmail string
}

type MetricsConfig struct {
	Enabled bool
}

// AdminConfig holds the basic auth credentials of the admin routes. An empty
// password leaves the routes unprotected.
type AdminConfig struct {
	User     string
	Password string
}

// IsProduction returns true when running with ENV=production
func (c *Config) IsProduction() bool {
	return c.Server.Env == "production"
}

// Address returns the host:port the server listens on
func (c *Config) Address() string {
	return c.Server.Host + ":" + c.Server.Port
}

func Load() (*Config, error) {
	// Load .env files if they exist (try .env.local first, then .env)
	_ = godotenv.Load(".env.local")
	_ = godotenv.Load(".env")

	config := &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "8080"),
			Host: getEnv("HOST", "localhost"),
			Env:  getEnv("ENV", "development"),
		},
		Database: parseDatabaseConfig(),
		Session: SessionConfig{
			Secret: getEnv("SESSION_SECRET", "your-secret-key-change-in-production"),
			MaxAge: getEnvAsInt("SESSION_MAX_AGE", 86400),
		},
		Redis: RedisConfig{
			URL:     getEnv("REDIS_URL", "redis://localhost:6379/0"),
			CartTTL: getEnvAsDuration("CART_TTL", 2*time.Hour),
		},
		Registrations: RegistrationsConfig{
			Debug:         getEnvAsBool("REGISTRATIONS_DEBUG", false),
			GroupsEnabled: getEnvAsBool("REGISTRATIONS_GROUPS_ENABLED", true),
			SiteName:      getEnv("SITE_NAME", "Event Registrations"),
			LoginURL:      getEnv("LOGIN_URL", "http://localhost:8080/login"),
		},
		Resend: ResendConfig{
			APIKey:     getEnv("RESEND_API_KEY", ""),
			FromEmail:  getEnv("RESEND_FROM_EMAIL", "noreply@example.com"),
			FromName:   getEnv("RESEND_FROM_NAME", "Event Registrations"),
			AdminEmail: getEnv("ADMIN_EMAIL", ""),
		},
		Metrics: MetricsConfig{
			Enabled: getEnvAsBool("METRICS_ENABLED", true),
		},
		Admin: AdminConfig{
			User:     getEnv("ADMIN_USER", "admin"),
			Password: getEnv("ADMIN_PASSWORD", ""),
		},
	}

	return config, nil
}

func parseDatabaseConfig() DatabaseConfig {
	// Check if DATABASE_URL is provided
	databaseURL := getEnv("DATABASE_URL", "")
	if databaseURL != "" {
		return parseDatabaseURL(databaseURL)
	}

	// Fall back to individual environment variables
	return DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     getEnvAsInt("DB_PORT", 5432),
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		DBName:   getEnv("DB_NAME", "event_registrations"),
		SSLMode:  getEnv("DB_SSLMODE", "disable"),
	}
}

func parseDatabaseURL(databaseURL string) DatabaseConfig {
	config := DatabaseConfig{
		URL: databaseURL,
	}

	u, err := url.Parse(databaseURL)
	if err != nil {
		// If parsing fails, return the URL as-is
		return config
	}

	config.Host = u.Hostname()
	config.Port = 5432
	if u.Port() != "" {
		if port, err := strconv.Atoi(u.Port()); err == nil {
			config.Port = port
		}
	}

	if u.User != nil {
		config.User = u.User.Username()
		config.Password, _ = u.User.Password()
	}

	config.DBName = strings.TrimPrefix(u.Path, "/")

	config.SSLMode = u.Query().Get("sslmode")
	if config.SSLMode == "" {
		config.SSLMode = "disable"
	}

	return config
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
