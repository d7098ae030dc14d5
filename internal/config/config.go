package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/mohamedazab224/uberfix-maintenance-service/internal/domain"
)

// Config aggregates runtime configuration for the service.
type Config struct {
	App          AppConfig
	Postgres     PostgresConfig
	Redis        RedisConfig
	Logger       LoggerConfig
	SLA          SLAConfig
	Notification NotificationConfig
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Name                  string
	Env                   string
	Host                  string
	Port                  string
	Version               string
	RequestTimeoutSeconds int
}

// PostgresConfig holds DB connection values.
type PostgresConfig struct {
	DSN            string
	MaxConns       int32
	MinConns       int32
	RunMigrations  bool
	ConnMaxIdleSec int32
	ConnMaxLifeSec int32
}

// RedisConfig holds Redis connection values.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
}

// SLATargets defines the per-stage deadline windows for one priority.
type SLATargets struct {
	Accept   time.Duration
	Arrive   time.Duration
	Complete time.Duration
}

// SLAConfig defines sweep cadence and per-priority deadline targets.
type SLAConfig struct {
	SweepIntervalSeconds int
	Targets              map[domain.RequestPriority]SLATargets
}

// NotificationConfig holds dispatch channel settings.
type NotificationConfig struct {
	EmailFrom        string
	SMSWebhookURL    string
	RateLimitPerHour int
}

// Load reads configuration from environment variables, applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	maxConns := int32(getEnvAsInt("POSTGRES_MAX_CONNS", 10))
	minConns := int32(getEnvAsInt("POSTGRES_MIN_CONNS", 2))
	runMigrations := getEnvAsBool("POSTGRES_RUN_MIGRATIONS", true)
	connMaxIdle := int32(getEnvAsInt("POSTGRES_CONN_MAX_IDLE_SECONDS", 30))
	connMaxLife := int32(getEnvAsInt("POSTGRES_CONN_MAX_LIFE_SECONDS", 300))

	cfg := &Config{
		App: AppConfig{
			Name:                  getEnv("APP_NAME", "maintenance-sla-service"),
			Env:                   getEnv("APP_ENV", "development"),
			Host:                  getEnv("APP_HOST", "0.0.0.0"),
			Port:                  getEnv("APP_PORT", "8080"),
			Version:               getEnv("APP_VERSION", "dev"),
			RequestTimeoutSeconds: getEnvAsInt("HTTP_REQUEST_TIMEOUT_SECONDS", 30),
		},
		Postgres: PostgresConfig{
			DSN:            os.Getenv("POSTGRES_DSN"),
			MaxConns:       maxConns,
			MinConns:       minConns,
			RunMigrations:  runMigrations,
			ConnMaxIdleSec: connMaxIdle,
			ConnMaxLifeSec: connMaxLife,
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "127.0.0.1:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		SLA: SLAConfig{
			SweepIntervalSeconds: getEnvAsInt("SLA_SWEEP_INTERVAL_SECONDS", 60),
			Targets:              loadSLATargets(),
		},
		Notification: NotificationConfig{
			EmailFrom:        getEnv("NOTIFY_EMAIL_FROM", "noreply@example.com"),
			SMSWebhookURL:    getEnv("NOTIFY_SMS_WEBHOOK_URL", ""),
			RateLimitPerHour: getEnvAsInt("NOTIFY_RATE_LIMIT_PER_HOUR", 4),
		},
	}

	return cfg, nil
}

func loadSLATargets() map[domain.RequestPriority]SLATargets {
	return map[domain.RequestPriority]SLATargets{
		domain.PriorityHigh: {
			Accept:   envMinutes("SLA_HIGH_ACCEPT_MINUTES", 30),
			Arrive:   envMinutes("SLA_HIGH_ARRIVE_MINUTES", 120),
			Complete: envMinutes("SLA_HIGH_COMPLETE_MINUTES", 24*60),
		},
		domain.PriorityMedium: {
			Accept:   envMinutes("SLA_MEDIUM_ACCEPT_MINUTES", 60),
			Arrive:   envMinutes("SLA_MEDIUM_ARRIVE_MINUTES", 240),
			Complete: envMinutes("SLA_MEDIUM_COMPLETE_MINUTES", 48*60),
		},
		domain.PriorityLow: {
			Accept:   envMinutes("SLA_LOW_ACCEPT_MINUTES", 120),
			Arrive:   envMinutes("SLA_LOW_ARRIVE_MINUTES", 480),
			Complete: envMinutes("SLA_LOW_COMPLETE_MINUTES", 72*60),
		},
	}
}

// TargetsFor resolves targets for a priority, falling back to medium for
// free-text values the data layer lets through.
func (s SLAConfig) TargetsFor(priority domain.RequestPriority) SLATargets {
	if targets, ok := s.Targets[domain.NormalizePriority(priority)]; ok {
		return targets
	}
	return s.Targets[domain.PriorityMedium]
}

// SweepInterval returns the backend sweep cadence.
func (s SLAConfig) SweepInterval() time.Duration {
	if s.SweepIntervalSeconds <= 0 {
		return time.Minute
	}
	return time.Duration(s.SweepIntervalSeconds) * time.Second
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

// RequestTimeout returns the configured request timeout duration.
func (a AppConfig) RequestTimeout() time.Duration {
	if a.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(a.RequestTimeoutSeconds) * time.Second
}

func envMinutes(key string, fallback int) time.Duration {
	return time.Duration(getEnvAsInt(key, fallback)) * time.Minute
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsBool(key string, fallback bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return parsed
}
