package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config собирает все настройки сервиса из переменных окружения.
type Config struct {
	HTTPAddr string

	DB    DBConfig
	Redis RedisConfig

	JWTAccessSecret  []byte
	JWTRefreshSecret []byte
	AccessTTL        time.Duration
	RefreshTTL       time.Duration

	LogLevel  string
	LogFormat string

	// SingleActiveEntry запрещает пациенту стоять сразу в нескольких отделениях.
	SingleActiveEntry bool
	// AutoCompleteAfter - через сколько после вызова приём закрывается автоматически. 0 отключает.
	AutoCompleteAfter  time.Duration
	DepartmentCacheTTL time.Duration

	AuthRateLimit float64
	AuthRateBurst int

	CORSOrigins []string
}

type DBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

// DSN возвращает строку подключения к Postgres.
func (c DBConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode)
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// Enabled сообщает, настроен ли Redis. Без него кэш справочника отключается.
func (c RedisConfig) Enabled() bool {
	return c.Addr != ""
}

// LoadEnvFile подгружает .env, если не выставлен ENV_CHEK (переменные уже заданы окружением).
// Отсутствующий файл не считается ошибкой.
func LoadEnvFile(path string) error {
	if os.Getenv("ENV_CHEK") != "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("ошибка чтения %s: %w", path, err)
	}
	return nil
}

// FromEnv читает конфигурацию из окружения, подставляя значения по умолчанию.
func FromEnv() (*Config, error) {
	p := parser{}
	cfg := &Config{
		HTTPAddr: getEnv("HTTP_ADDR", ":8080"),
		DB: DBConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: os.Getenv("DB_PASSWORD"),
			Name:     getEnv("DB_NAME", "hospital_queue"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			Addr:     os.Getenv("REDIS_ADDR"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       p.int("REDIS_DB", 0),
		},
		JWTAccessSecret:    []byte(os.Getenv("JWT_ACCESS_SECRET")),
		JWTRefreshSecret:   []byte(os.Getenv("JWT_REFRESH_SECRET")),
		AccessTTL:          p.duration("JWT_ACCESS_TTL", 15*time.Minute),
		RefreshTTL:         p.duration("JWT_REFRESH_TTL", 7*24*time.Hour),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		LogFormat:          getEnv("LOG_FORMAT", "console"),
		SingleActiveEntry:  p.bool("QUEUE_SINGLE_ACTIVE_ENTRY", false),
		AutoCompleteAfter:  p.duration("QUEUE_AUTO_COMPLETE_AFTER", 2*time.Hour),
		DepartmentCacheTTL: p.duration("DEPARTMENT_CACHE_TTL", time.Hour),
		AuthRateLimit:      p.float("AUTH_RATE_LIMIT", 5),
		AuthRateBurst:      p.int("AUTH_RATE_BURST", 10),
		CORSOrigins:        splitList(getEnv("CORS_ORIGINS", "*")),
	}

	if len(p.errs) > 0 {
		return nil, errors.Join(p.errs...)
	}
	if len(cfg.JWTAccessSecret) == 0 || len(cfg.JWTRefreshSecret) == 0 {
		return nil, errors.New("JWT_ACCESS_SECRET и JWT_REFRESH_SECRET обязательны")
	}
	if cfg.AutoCompleteAfter < 0 {
		return nil, errors.New("QUEUE_AUTO_COMPLETE_AFTER не может быть отрицательным")
	}
	if cfg.AuthRateLimit <= 0 || cfg.AuthRateBurst <= 0 {
		return nil, errors.New("AUTH_RATE_LIMIT и AUTH_RATE_BURST должны быть положительными")
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// parser копит ошибки разбора, чтобы сообщить обо всех неверных переменных сразу.
type parser struct {
	errs []error
}

func (p *parser) int(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		p.errs = append(p.errs, fmt.Errorf("%s: %w", key, err))
		return fallback
	}
	return n
}

func (p *parser) float(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		p.errs = append(p.errs, fmt.Errorf("%s: %w", key, err))
		return fallback
	}
	return f
}

func (p *parser) bool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		p.errs = append(p.errs, fmt.Errorf("%s: %w", key, err))
		return fallback
	}
	return b
}

func (p *parser) duration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		p.errs = append(p.errs, fmt.Errorf("%s: %w", key, err))
		return fallback
	}
	return d
}
