package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/m04kA/salon-booking-service/internal/domain"
)

// Поддерживаемые драйверы БД
const (
	DriverPQ  = "postgres"
	DriverPGX = "pgx"
)

// ErrInvalidConfig возвращается при некорректной конфигурации
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config корневая конфигурация сервиса
type Config struct {
	Server    ServerConfig    `toml:"server"`
	Database  DatabaseConfig  `toml:"database"`
	Logs      LogsConfig      `toml:"logs"`
	Metrics   MetricsConfig   `toml:"metrics"`
	Salon     SalonConfig     `toml:"salon"`
	Auth      AuthConfig      `toml:"auth"`
	RateLimit RateLimitConfig `toml:"rate_limit"`
	Redis     RedisConfig     `toml:"redis"`
	Kafka     KafkaConfig     `toml:"kafka"`
	Tracing   TracingConfig   `toml:"tracing"`
}

// ServerConfig настройки HTTP сервера (таймауты в секундах)
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// DatabaseConfig настройки подключения к PostgreSQL
type DatabaseConfig struct {
	Driver          string `toml:"driver"`
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"`
}

// DSN строка подключения, понятная и lib/pq, и pgx
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// LogsConfig настройки логирования
type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// MetricsConfig настройки prometheus метрик
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// SalonConfig значения по умолчанию, которые использует только команда provision
type SalonConfig struct {
	Name              string `toml:"name"`
	Timezone          string `toml:"timezone"`
	SlotMinutes       int    `toml:"slot_minutes"`
	BufferMinutes     int    `toml:"buffer_minutes"`
	MinAdvanceMinutes int    `toml:"min_advance_minutes"`
}

// AuthConfig проверка JWT для админских маршрутов
type AuthConfig struct {
	JWTSecret string `toml:"jwt_secret"`
	AdminRole string `toml:"admin_role"`
}

// RateLimitConfig ограничение частоты создания записей
// Backend: "memory" (x/time/rate) или "redis"
// TrustedProxies: IP/CIDR балансировщиков, от которых принимается X-Forwarded-For
type RateLimitConfig struct {
	Enabled           bool     `toml:"enabled"`
	Backend           string   `toml:"backend"`
	RequestsPerMinute int      `toml:"requests_per_minute"`
	Burst             int      `toml:"burst"`
	TrustedProxies    []string `toml:"trusted_proxies"`
	RPS               float64  `toml:"-"`
}

// RedisConfig подключение к Redis
type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

// KafkaConfig публикация событий записей
type KafkaConfig struct {
	Enabled bool     `toml:"enabled"`
	Brokers []string `toml:"brokers"`
	Topic   string   `toml:"topic"`
}

// TracingConfig экспорт трейсов по OTLP
type TracingConfig struct {
	Enabled     bool    `toml:"enabled"`
	Endpoint    string  `toml:"endpoint"`
	SampleRatio float64 `toml:"sample_ratio"`
}

// Load читает .env (если есть), затем toml файл и применяет переопределения из окружения
func Load(path string) (*Config, error) {
	// .env опционален
	_ = godotenv.Load()

	cfg := defaults()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config %s: %w", path, err)
	}

	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	cfg.RateLimit.RPS = float64(cfg.RateLimit.RequestsPerMinute) / 60
	return cfg, nil
}

func defaults() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     10,
			WriteTimeout:    10,
			IdleTimeout:     60,
			ShutdownTimeout: 15,
		},
		Database: DatabaseConfig{
			Driver:          DriverPQ,
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Logs:    LogsConfig{Level: "info"},
		Metrics: MetricsConfig{Path: "/metrics", ServiceName: "salon-booking-service"},
		Salon: SalonConfig{
			Name:              "Salon",
			Timezone:          "America/Belem",
			SlotMinutes:       30,
			BufferMinutes:     15,
			MinAdvanceMinutes: 120,
		},
		Auth:      AuthConfig{AdminRole: "ADMIN"},
		RateLimit: RateLimitConfig{Backend: "memory", RequestsPerMinute: 30, Burst: 5},
		Kafka:     KafkaConfig{Topic: "salon.appointments"},
		Tracing:   TracingConfig{SampleRatio: 1},
	}
}

func applyEnv(cfg *Config) {
	if v, ok := os.LookupEnv("DB_PASSWORD"); ok {
		cfg.Database.Password = v
	}
	if v, ok := os.LookupEnv("JWT_SECRET"); ok {
		cfg.Auth.JWTSecret = v
	}
	if v, ok := os.LookupEnv("REDIS_PASSWORD"); ok {
		cfg.Redis.Password = v
	}
}

// Validate проверяет обязательные поля
// jwt_secret проверяется отдельно в RequireServeSecrets, т.к. provision он не нужен
func (c *Config) Validate() error {
	if c.Database.Driver != DriverPQ && c.Database.Driver != DriverPGX {
		return fmt.Errorf("%w: unknown database.driver %q", ErrInvalidConfig, c.Database.Driver)
	}
	if c.Database.Host == "" || c.Database.DBName == "" {
		return fmt.Errorf("%w: database.host and database.dbname are required", ErrInvalidConfig)
	}
	if c.Server.HTTPPort <= 0 {
		return fmt.Errorf("%w: server.http_port must be positive", ErrInvalidConfig)
	}
	if c.Salon.SlotMinutes <= 0 || c.Salon.BufferMinutes < 0 || c.Salon.MinAdvanceMinutes < 0 {
		return fmt.Errorf("%w: salon slot/buffer/advance minutes out of range", ErrInvalidConfig)
	}
	if _, err := domain.LoadSalonLocation(c.Salon.Timezone); err != nil {
		return fmt.Errorf("%w: salon.timezone: %v", ErrInvalidConfig, err)
	}
	if c.RateLimit.Enabled {
		if c.RateLimit.Backend != "memory" && c.RateLimit.Backend != "redis" {
			return fmt.Errorf("%w: unknown rate_limit.backend %q", ErrInvalidConfig, c.RateLimit.Backend)
		}
		if c.RateLimit.RequestsPerMinute <= 0 {
			return fmt.Errorf("%w: rate_limit.requests_per_minute must be positive", ErrInvalidConfig)
		}
		if c.RateLimit.Backend == "redis" && c.Redis.Addr == "" {
			return fmt.Errorf("%w: redis.addr is required for redis rate limiter", ErrInvalidConfig)
		}
	}
	if c.Kafka.Enabled && (len(c.Kafka.Brokers) == 0 || c.Kafka.Topic == "") {
		return fmt.Errorf("%w: kafka.brokers and kafka.topic are required", ErrInvalidConfig)
	}
	return nil
}

// RequireServeSecrets проверяет секреты, без которых нельзя поднимать HTTP сервер
func (c *Config) RequireServeSecrets() error {
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("%w: auth.jwt_secret (or JWT_SECRET) is required", ErrInvalidConfig)
	}
	return nil
}
