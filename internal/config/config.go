package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type (
	Config struct {
		HTTP
		Global
		Log
		Database
		Redis
		Pricing
		CORS
		RateLimit
		Tasks
		Audit
		Maintenance
		Metrics
	}

	HTTP struct {
		Port int32
		Host string
	}
	Global struct {
		ShutdownTimeoutInSeconds int
	}
	Log struct {
		Level  string // debug, info, warn, error
		Format string // json or console
	}
	Database struct {
		Driver string // sqlite, mysql, postgres
		Path   string // sqlite file path
		DSN    string // mysql/postgres connection string
		LogSQL bool
	}
	Redis struct {
		Addr     string // empty disables the cache
		Password string
		DB       int
		TTL      time.Duration
	}
	Pricing struct {
		AdjustFactor float64
	}
	CORS struct {
		AllowedOrigins []string
	}
	RateLimit struct {
		Enabled bool
		RPS     float64
		Burst   int
	}
	Tasks struct {
		Enabled           bool
		Workers           int
		MaxRetries        int
		RetryDelay        time.Duration
		TaskTimeout       time.Duration
		ReleaseAfter      time.Duration
		CleanupInterval   time.Duration
		RetentionDuration time.Duration
	}
	Audit struct {
		RetentionDays int    // Days to keep audit events (default: 30)
		Dir           string // Where price snapshots are written
	}
	Maintenance struct {
		Enabled  bool
		Schedule string // Cron format: "0 3 * * *" = daily at 03:00
	}
	Metrics struct {
		Enabled bool
	}
)

// splitList parses a comma-separated env value, dropping empty entries.
func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// NewConfig loads an optional .env file, then reads configuration from the environment.
func NewConfig() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}
	return newConfig(viper.New())
}

func newConfig(v *viper.Viper) *Config {
	v.AutomaticEnv()
	v.SetDefault("port", 8080)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("shutdown_timeout_in_seconds", 5)
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "json")

	v.SetDefault("database_driver", DriverSQLite)
	v.SetDefault("database_path", DefaultDatabasePath)
	v.SetDefault("database_dsn", "")
	v.SetDefault("database_log_sql", false)

	v.SetDefault("redis_addr", "")
	v.SetDefault("redis_password", "")
	v.SetDefault("redis_db", 0)
	v.SetDefault("cache_ttl", "10m")

	v.SetDefault("price_adjust_factor", DefaultPriceAdjustFactor)
	v.SetDefault("cors_allowed_origins", DefaultCORSOrigins)

	v.SetDefault("rate_limit_enabled", true)
	v.SetDefault("rate_limit_rps", 20)
	v.SetDefault("rate_limit_burst", 40)

	// Task queue defaults
	v.SetDefault("tasks_enabled", true)
	v.SetDefault("task_workers", 2)
	v.SetDefault("task_max_retries", 3)
	v.SetDefault("task_retry_delay", "1m")
	v.SetDefault("task_timeout", "5m")
	v.SetDefault("task_release_after", "15m")
	v.SetDefault("task_cleanup_interval", "1h")
	v.SetDefault("task_retention_duration", "24h")

	v.SetDefault("audit_retention_days", 30)
	v.SetDefault("audit_dir", DefaultAuditDir)
	v.SetDefault("maintenance_enabled", true)
	v.SetDefault("maintenance_schedule", "0 3 * * *")
	v.SetDefault("metrics_enabled", true)

	return &Config{
		HTTP: HTTP{
			Port: v.GetInt32("PORT"),
			Host: v.GetString("HOST"),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
		Log: Log{
			Level:  v.GetString("LOG_LEVEL"),
			Format: v.GetString("LOG_FORMAT"),
		},
		Database: Database{
			Driver: strings.ToLower(v.GetString("DATABASE_DRIVER")),
			Path:   v.GetString("DATABASE_PATH"),
			DSN:    v.GetString("DATABASE_DSN"),
			LogSQL: v.GetBool("DATABASE_LOG_SQL"),
		},
		Redis: Redis{
			Addr:     v.GetString("REDIS_ADDR"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
			TTL:      v.GetDuration("CACHE_TTL"),
		},
		Pricing: Pricing{
			AdjustFactor: v.GetFloat64("PRICE_ADJUST_FACTOR"),
		},
		CORS: CORS{
			AllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		},
		RateLimit: RateLimit{
			Enabled: v.GetBool("RATE_LIMIT_ENABLED"),
			RPS:     v.GetFloat64("RATE_LIMIT_RPS"),
			Burst:   v.GetInt("RATE_LIMIT_BURST"),
		},
		Tasks: Tasks{
			Enabled:           v.GetBool("TASKS_ENABLED"),
			Workers:           v.GetInt("TASK_WORKERS"),
			MaxRetries:        v.GetInt("TASK_MAX_RETRIES"),
			RetryDelay:        v.GetDuration("TASK_RETRY_DELAY"),
			TaskTimeout:       v.GetDuration("TASK_TIMEOUT"),
			ReleaseAfter:      v.GetDuration("TASK_RELEASE_AFTER"),
			CleanupInterval:   v.GetDuration("TASK_CLEANUP_INTERVAL"),
			RetentionDuration: v.GetDuration("TASK_RETENTION_DURATION"),
		},
		Audit: Audit{
			RetentionDays: v.GetInt("AUDIT_RETENTION_DAYS"),
			Dir:           v.GetString("AUDIT_DIR"),
		},
		Maintenance: Maintenance{
			Enabled:  v.GetBool("MAINTENANCE_ENABLED"),
			Schedule: v.GetString("MAINTENANCE_SCHEDULE"),
		},
		Metrics: Metrics{
			Enabled: v.GetBool("METRICS_ENABLED"),
		},
	}
}
