package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL    string
	Port           string
	IsProduction   bool
	EnableDBCheck  bool
	MigrationsPath string
	JWTSecret      string
	JWTIssuer      string

	// RedisAddr enables the queue, the distributed lock and the shared rate
	// limit store. Empty disables all three.
	RedisAddr          string
	RateLimit          string
	CORSAllowedOrigins []string

	OutboxPollInterval time.Duration
	OutboxBatchSize    int
	WorkerConcurrency  int
	DocumentLockTTL    time.Duration

	FinancialYearStartMonth time.Month
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
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_ISSUER", "ledger-backend")
	viper.SetDefault("REDIS_ADDR", "")
	viper.SetDefault("RATE_LIMIT", "300-M")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	viper.SetDefault("OUTBOX_POLL_INTERVAL", "2s")
	viper.SetDefault("OUTBOX_BATCH_SIZE", 100)
	viper.SetDefault("WORKER_CONCURRENCY", 5)
	viper.SetDefault("DOCUMENT_LOCK_TTL", "30s")
	viper.SetDefault("FINANCIAL_YEAR_START_MONTH", 7)

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080" // Default port
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = "a-very-secret-key-should-be-longer-and-random" // !! CHANGE IN PRODUCTION !!
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}
	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")

	cfg.RedisAddr = viper.GetString("REDIS_ADDR")
	if cfg.RedisAddr == "" {
		log.Println("Warning: REDIS_ADDR not set. Outbox publishing, document locks and shared rate limits are disabled.")
	}
	cfg.RateLimit = viper.GetString("RATE_LIMIT")
	cfg.CORSAllowedOrigins = splitList(viper.GetString("CORS_ALLOWED_ORIGINS"))

	cfg.OutboxPollInterval = durationOrDefault("OUTBOX_POLL_INTERVAL", 2*time.Second)
	cfg.DocumentLockTTL = durationOrDefault("DOCUMENT_LOCK_TTL", 30*time.Second)

	cfg.OutboxBatchSize = viper.GetInt("OUTBOX_BATCH_SIZE")
	if cfg.OutboxBatchSize <= 0 {
		cfg.OutboxBatchSize = 100
	}
	cfg.WorkerConcurrency = viper.GetInt("WORKER_CONCURRENCY")
	if cfg.WorkerConcurrency <= 0 {
		cfg.WorkerConcurrency = 5
	}

	month := viper.GetInt("FINANCIAL_YEAR_START_MONTH")
	if month < 1 || month > 12 {
		log.Printf("Warning: Invalid value for FINANCIAL_YEAR_START_MONTH (%d). Defaulting to July.\n", month)
		month = 7
	}
	cfg.FinancialYearStartMonth = time.Month(month)

	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")
	cfg.MigrationsPath = viper.GetString("MIGRATIONS_PATH")

	return cfg, nil
}

func durationOrDefault(key string, def time.Duration) time.Duration {
	raw := viper.GetString(key)
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		if raw != "" {
			log.Printf("Warning: Invalid value for %s ('%s'). Defaulting to %s.\n", key, raw, def)
		}
		return def
	}
	return d
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
