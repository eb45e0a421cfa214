// internal/config/config.go
package config

import (
	"net/url"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Log      LogConfig
	Metrics  MetricsConfig
	Facebook FacebookConfig
	Payments PaymentsConfig
	CopyGen  CopyGenConfig
}

type ServerConfig struct {
	Port            string
	Environment     string
	ShutdownTimeout time.Duration
}

// DatabaseConfig holds the postgres connection. When URL is empty the API
// falls back to the in-memory store.
type DatabaseConfig struct {
	URL string
}

type RedisConfig struct {
	Enabled  bool
	Addr     string
	Password string
	DB       int
}

type LogConfig struct {
	Level  string
	Format string
}

type MetricsConfig struct {
	Enabled   bool
	Namespace string
}

// FacebookConfig configures the ads-platform publishing client.
type FacebookConfig struct {
	BaseURL     string
	AccessToken string
	AdAccountID string
	Timeout     time.Duration
}

// PaymentsConfig configures the payment-processor client.
type PaymentsConfig struct {
	BaseURL   string
	SecretKey string
	Timeout   time.Duration
}

// CopyGenConfig configures the ad-copy generation client.
type CopyGenConfig struct {
	BaseURL string
	APIKey  string
	Model   string
	Timeout time.Duration
}

func Load() *Config {
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" && os.Getenv("PSQL_HOST") != "" {
		host := getEnv("PSQL_HOST", "localhost")
		port := getEnv("PSQL_PORT", "5432")
		user := getEnv("PSQL_USER", "postgres")
		password := getEnv("PSQL_PASSWORD", "postgres")
		dbName := getEnv("PSQL_DB_NAME", "adpulse")

		u := &url.URL{
			Scheme: "postgres",
			User:   url.UserPassword(user, password),
			Host:   host + ":" + port,
			Path:   dbName,
		}
		q := u.Query()
		q.Set("sslmode", getEnv("PSQL_SSLMODE", "disable"))
		u.RawQuery = q.Encode()
		databaseURL = u.String()
	}

	return &Config{
		Server: ServerConfig{
			Port:            getEnv("PORT", "8080"),
			Environment:     getEnv("ENVIRONMENT", "development"),
			ShutdownTimeout: getDurationEnv("SHUTDOWN_TIMEOUT", 5*time.Second),
		},
		Database: DatabaseConfig{URL: databaseURL},
		Redis: RedisConfig{
			Enabled:  getBoolEnv("REDIS_ENABLED", false),
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getIntEnv("REDIS_DB", 0),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		Metrics: MetricsConfig{
			Enabled:   getBoolEnv("METRICS_ENABLED", true),
			Namespace: getEnv("METRICS_NAMESPACE", "adpulse"),
		},
		Facebook: FacebookConfig{
			BaseURL:     getEnv("FACEBOOK_API_BASE_URL", "https://graph.facebook.com/v21.0"),
			AccessToken: getEnv("FACEBOOK_ACCESS_TOKEN", ""),
			AdAccountID: getEnv("FACEBOOK_AD_ACCOUNT_ID", ""),
			Timeout:     getDurationEnv("FACEBOOK_TIMEOUT", 15*time.Second),
		},
		Payments: PaymentsConfig{
			BaseURL:   getEnv("PAYMENTS_API_BASE_URL", "https://api.stripe.com"),
			SecretKey: getEnv("PAYMENTS_SECRET_KEY", ""),
			Timeout:   getDurationEnv("PAYMENTS_TIMEOUT", 15*time.Second),
		},
		CopyGen: CopyGenConfig{
			BaseURL: getEnv("COPYGEN_API_BASE_URL", "https://api.openai.com"),
			APIKey:  getEnv("COPYGEN_API_KEY", ""),
			Model:   getEnv("COPYGEN_MODEL", "gpt-4o"),
			Timeout: getDurationEnv("COPYGEN_TIMEOUT", 30*time.Second),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
