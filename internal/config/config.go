package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Сервер
	HTTPAddr    string
	Environment string
	CORSOrigins []string
	Timezone    *time.Location

	// База данных
	DBDriver    string // postgres | sqlite
	DBHost      string
	DBPort      string
	DBUser      string
	DBPassword  string
	DBName      string
	DBSSLMode   string
	SQLitePath  string
	AutoMigrate bool

	// Redis
	RedisURL     string
	RedisEnabled bool

	// Логирование
	LogLevel string

	// Фоновые задачи
	GaugeRefreshSpec        string
	LongAttendanceSpec      string
	LongAttendanceThreshold time.Duration
}

// LoadEnv подключает .env, если не задана переменная ENV_CHEK.
// Отсутствие файла не считается ошибкой: переменные могут прийти из окружения.
func LoadEnv(files ...string) {
	if os.Getenv("ENV_CHEK") != "" {
		return
	}
	if err := godotenv.Load(files...); err != nil {
		slog.Warn("Файл .env не найден, используются переменные окружения", "error", err)
	}
}

// LoadConfig читает конфигурацию из переменных окружения.
func LoadConfig() (*Config, error) {
	tz := getEnv("TIMEZONE", "UTC")
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", tz, err)
	}

	cfg := &Config{
		HTTPAddr:    getEnv("HTTP_ADDR", ":8080"),
		Environment: getEnv("ENVIRONMENT", "development"),
		CORSOrigins: getEnvAsList("CORS_ORIGINS", "*"),
		Timezone:    loc,

		DBDriver:    strings.ToLower(getEnv("DB_DRIVER", "postgres")),
		DBHost:      getEnv("DB_HOST", "localhost"),
		DBPort:      getEnv("DB_PORT", "5432"),
		DBUser:      getEnv("DB_USER", "postgres"),
		DBPassword:  getEnv("DB_PASSWORD", ""),
		DBName:      getEnv("DB_NAME", "lineup"),
		DBSSLMode:   getEnv("DB_SSLMODE", "disable"),
		SQLitePath:  getEnv("SQLITE_PATH", "data/lineup.db"),
		AutoMigrate: getEnvAsBool("AUTO_MIGRATE", true),

		RedisURL:     getEnv("REDIS_URL", "redis://localhost:6379/0"),
		RedisEnabled: getEnvAsBool("REDIS_ENABLED", true),

		LogLevel: getEnv("LOG_LEVEL", "info"),

		GaugeRefreshSpec:        getEnv("GAUGE_REFRESH_SPEC", "*/30 * * * * *"),
		LongAttendanceSpec:      getEnv("LONG_ATTENDANCE_SPEC", "0 */5 * * * *"),
		LongAttendanceThreshold: getEnvAsDuration("LONG_ATTENDANCE_THRESHOLD", "45m"),
	}

	switch cfg.DBDriver {
	case "postgres", "sqlite":
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}
	return cfg, nil
}

// PostgresDSN собирает строку подключения к PostgreSQL.
func (c *Config) PostgresDSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s TimeZone=UTC",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode)
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := getEnv(key, defaultValue)
	if duration, err := time.ParseDuration(valueStr); err == nil {
		return duration
	}
	duration, _ := time.ParseDuration(defaultValue)
	return duration
}

func getEnvAsList(key, defaultValue string) []string {
	var out []string
	for _, part := range strings.Split(getEnv(key, defaultValue), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
