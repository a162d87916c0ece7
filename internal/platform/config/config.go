package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const defaultJWTSecret = "a-very-secret-key-should-be-longer-and-random"

// Config holds application configuration.
type Config struct {
	DatabaseURL    string
	Port           string
	IsProduction   bool
	EnableDBCheck  bool
	MigrationsPath string

	// Tokens are issued by the platform's identity service; the ledger only verifies them.
	JWTSecret string
	JWTIssuer string

	// Rate limits in ulule/limiter format, e.g. "100-M".
	RateLimit      string
	EventRateLimit string

	CORSAllowedOrigins []string

	AccountCacheTTL  time.Duration
	PostRetryMax     int
	PostRetryBackoff time.Duration

	MetricsEnabled            bool
	SoftCloseRequiresApprover bool
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("MIGRATIONS_PATH", "file://migrations")
	viper.SetDefault("JWT_SECRET", defaultJWTSecret)
	viper.SetDefault("JWT_ISSUER", "travel-platform")
	viper.SetDefault("RATE_LIMIT", "300-M")
	viper.SetDefault("EVENT_RATE_LIMIT", "1200-M")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	viper.SetDefault("ACCOUNT_CACHE_TTL", "5m")
	viper.SetDefault("POST_RETRY_MAX", 3)
	viper.SetDefault("POST_RETRY_BACKOFF", "50ms")
	viper.SetDefault("METRICS_ENABLED", true)
	viper.SetDefault("SOFT_CLOSE_REQUIRES_APPROVER", false)

	viper.AutomaticEnv()

	cfg := &Config{
		DatabaseURL:               viper.GetString("PGSQL_URL"),
		Port:                      viper.GetString("PORT"),
		IsProduction:              viper.GetBool("IS_PRODUCTION"),
		EnableDBCheck:             viper.GetBool("ENABLE_DB_CHECK"),
		MigrationsPath:            viper.GetString("MIGRATIONS_PATH"),
		JWTSecret:                 viper.GetString("JWT_SECRET"),
		JWTIssuer:                 viper.GetString("JWT_ISSUER"),
		RateLimit:                 viper.GetString("RATE_LIMIT"),
		EventRateLimit:            viper.GetString("EVENT_RATE_LIMIT"),
		PostRetryMax:              viper.GetInt("POST_RETRY_MAX"),
		MetricsEnabled:            viper.GetBool("METRICS_ENABLED"),
		SoftCloseRequiresApprover: viper.GetBool("SOFT_CLOSE_REQUIRES_APPROVER"),
	}

	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}
	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}
	if cfg.JWTSecret == "" || cfg.JWTSecret == defaultJWTSecret {
		cfg.JWTSecret = defaultJWTSecret // !! CHANGE IN PRODUCTION !!
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	cfg.AccountCacheTTL = durationOr("ACCOUNT_CACHE_TTL", 5*time.Minute)
	cfg.PostRetryBackoff = durationOr("POST_RETRY_BACKOFF", 50*time.Millisecond)
	if cfg.PostRetryMax < 0 {
		cfg.PostRetryMax = 0
	}

	for _, origin := range strings.Split(viper.GetString("CORS_ALLOWED_ORIGINS"), ",") {
		if o := strings.TrimSpace(origin); o != "" {
			cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, o)
		}
	}

	return cfg, nil
}

func durationOr(key string, fallback time.Duration) time.Duration {
	raw := viper.GetString(key)
	d, err := time.ParseDuration(raw)
	if err != nil {
		if raw != "" {
			log.Printf("Warning: Invalid value for %s ('%s'). Defaulting to %s.\n", key, raw, fallback.String())
		}
		return fallback
	}
	return d
}
