package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
)

const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

type Config struct {
	TelegramToken  string `mapstructure:"TELEGRAM_TOKEN"`
	DBDSN          string `mapstructure:"DB_DSN"`
	Environment    string `mapstructure:"ENV"`
	Storage        string `mapstructure:"STORAGE"`
	MigrationsPath string `mapstructure:"MIGRATIONS_PATH"`

	// Location часовой пояс, в котором пользователи вводят время слотов
	Location *time.Location

	ReminderSchedule  string        `mapstructure:"REMINDER_SCHEDULE"`
	StaleRequestAfter time.Duration `mapstructure:"STALE_REQUEST_AFTER"`

	RateLimitRPS   float64 `mapstructure:"RATE_LIMIT_RPS"`
	RateLimitBurst int     `mapstructure:"RATE_LIMIT_BURST"`
}

func Load() (*Config, error) {
	// Пытаемся загрузить .env файл (игнорируем ошибку, если файла нет)
	if err := godotenv.Load(".env"); err != nil {
		log.Println("⚠️  No .env file found, using environment variables")
	} else {
		log.Println("✅ Loaded configuration from .env file")
	}

	return FromEnv()
}

// FromEnv читает конфигурацию из переменных окружения
func FromEnv() (*Config, error) {
	cfg := &Config{
		DBDSN:            os.Getenv("DB_DSN"),
		TelegramToken:    os.Getenv("TELEGRAM_TOKEN"),
		Environment:      getEnv("ENV", "development"),
		Storage:          getEnv("STORAGE", StoragePostgres),
		MigrationsPath:   getEnv("MIGRATIONS_PATH", "migrations"),
		ReminderSchedule: getEnv("REMINDER_SCHEDULE", "@every 6h"),
	}

	// Проверяем обязательные поля
	if cfg.TelegramToken == "" {
		return nil, fmt.Errorf("TELEGRAM_TOKEN is required but not set")
	}

	switch cfg.Storage {
	case StoragePostgres:
		if cfg.DBDSN == "" {
			return nil, fmt.Errorf("DB_DSN is required but not set")
		}
	case StorageMemory:
	default:
		return nil, fmt.Errorf("STORAGE must be %q or %q, got %q", StoragePostgres, StorageMemory, cfg.Storage)
	}

	var err error

	cfg.Location, err = time.LoadLocation(getEnv("TIMEZONE", "Europe/Moscow"))
	if err != nil {
		return nil, fmt.Errorf("parse TIMEZONE: %w", err)
	}

	if _, err := cron.ParseStandard(cfg.ReminderSchedule); err != nil {
		return nil, fmt.Errorf("parse REMINDER_SCHEDULE: %w", err)
	}

	cfg.StaleRequestAfter, err = time.ParseDuration(getEnv("STALE_REQUEST_AFTER", "24h"))
	if err != nil {
		return nil, fmt.Errorf("parse STALE_REQUEST_AFTER: %w", err)
	}
	if cfg.StaleRequestAfter <= 0 {
		return nil, fmt.Errorf("STALE_REQUEST_AFTER must be positive")
	}

	cfg.RateLimitRPS, err = strconv.ParseFloat(getEnv("RATE_LIMIT_RPS", "1"), 64)
	if err != nil {
		return nil, fmt.Errorf("parse RATE_LIMIT_RPS: %w", err)
	}

	cfg.RateLimitBurst, err = strconv.Atoi(getEnv("RATE_LIMIT_BURST", "5"))
	if err != nil {
		return nil, fmt.Errorf("parse RATE_LIMIT_BURST: %w", err)
	}
	if cfg.RateLimitRPS <= 0 || cfg.RateLimitBurst <= 0 {
		return nil, fmt.Errorf("RATE_LIMIT_RPS and RATE_LIMIT_BURST must be positive")
	}

	return cfg, nil
}

func (c *Config) GetDBDSN() string {
	return c.DBDSN
}

// IsProduction проверяет что бот запущен в продакшн окружении
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}
