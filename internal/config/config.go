package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/m04kA/SMC-SalonBookingService/pkg/types"
)

// Режимы хранилища
const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

// ErrInvalidConfig возвращается при некорректной конфигурации
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config конфигурация сервиса
type Config struct {
	Server      ServerConfig      `toml:"server"`
	Database    DatabaseConfig    `toml:"database"`
	Storage     StorageConfig     `toml:"storage"`
	Logs        LogsConfig        `toml:"logs"`
	Metrics     MetricsConfig     `toml:"metrics"`
	UserService UserServiceConfig `toml:"user_service"`
	Booking     BookingConfig     `toml:"booking"`
	Catalog     CatalogConfig     `toml:"catalog"`
	Redis       RedisConfig       `toml:"redis"`
	RateLimit   RateLimitConfig   `toml:"rate_limit"`
}

// ServerConfig HTTP сервер, таймауты в секундах
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// DatabaseConfig подключение к postgres
type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // секунды
}

// DSN строка подключения lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// StorageConfig выбор хранилища: postgres или memory
type StorageConfig struct {
	Mode string `toml:"mode"`
}

type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// UserServiceConfig клиент UserService, таймауты в секундах
type UserServiceConfig struct {
	URL      string `toml:"url"`
	Timeout  int    `toml:"timeout"`
	CacheTTL int    `toml:"cache_ttl"` // 0 - без кэша
}

// BookingConfig параметры записи
type BookingConfig struct {
	WorkHourStart string `toml:"work_hour_start"`
	WorkHourEnd   string `toml:"work_hour_end"`
	// Разрешить ставить новую процедуру в собственный TRANSIT клиента
	SkipOwnTransit bool `toml:"skip_own_transit"`
}

// CatalogConfig каталог процедур; пустой File - встроенный каталог
type CatalogConfig struct {
	File string `toml:"file"`
}

// RedisConfig блокировки дней через redis для нескольких инстансов
type RedisConfig struct {
	Enabled  bool   `toml:"enabled"`
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
	LockTTL  int    `toml:"lock_ttl"` // секунды
}

type RateLimitConfig struct {
	Enabled bool    `toml:"enabled"`
	RPS     float64 `toml:"rps"`
	Burst   int     `toml:"burst"`
	IdleTTL int     `toml:"idle_ttl"` // секунды
}

// Load читает .env (если есть), подставляет ${VAR} в файл конфигурации и парсит его
func Load(path string) (*Config, error) {
	// .env необязателен
	_ = godotenv.Load()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	return Parse(os.ExpandEnv(string(data)))
}

// Parse парсит конфигурацию из TOML, заполняет значения по умолчанию и валидирует
func Parse(data string) (*Config, error) {
	cfg := Default()
	if _, err := toml.Decode(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Default конфигурация по умолчанию
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     10,
			WriteTimeout:    10,
			IdleTimeout:     60,
			ShutdownTimeout: 15,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Storage: StorageConfig{Mode: StoragePostgres},
		Logs:    LogsConfig{Level: "info"},
		Metrics: MetricsConfig{
			Path:        "/metrics",
			ServiceName: "salon_booking_service",
		},
		UserService: UserServiceConfig{
			Timeout:  5,
			CacheTTL: 30,
		},
		Booking: BookingConfig{
			WorkHourStart: "09:00",
			WorkHourEnd:   "18:00",
		},
		Redis: RedisConfig{
			Addr:    "localhost:6379",
			LockTTL: 10,
		},
		RateLimit: RateLimitConfig{
			RPS:     5,
			Burst:   10,
			IdleTTL: 600,
		},
	}
}

// Validate проверяет согласованность конфигурации
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port %d", ErrInvalidConfig, c.Server.HTTPPort)
	}

	switch c.Storage.Mode {
	case StoragePostgres:
		if c.Database.Host == "" || c.Database.DBName == "" {
			return fmt.Errorf("%w: database.host and database.dbname are required for postgres storage", ErrInvalidConfig)
		}
	case StorageMemory:
	default:
		return fmt.Errorf("%w: storage.mode must be %q or %q", ErrInvalidConfig, StoragePostgres, StorageMemory)
	}

	if c.UserService.URL == "" {
		return fmt.Errorf("%w: user_service.url is required", ErrInvalidConfig)
	}

	start, err := types.NewTimeStringFromString(c.Booking.WorkHourStart)
	if err != nil {
		return fmt.Errorf("%w: booking.work_hour_start: %v", ErrInvalidConfig, err)
	}
	end, err := types.NewTimeStringFromString(c.Booking.WorkHourEnd)
	if err != nil {
		return fmt.Errorf("%w: booking.work_hour_end: %v", ErrInvalidConfig, err)
	}
	if !start.IsBefore(end) {
		return fmt.Errorf("%w: booking work hours %s-%s are empty", ErrInvalidConfig, start, end)
	}

	if c.Redis.Enabled && c.Redis.Addr == "" {
		return fmt.Errorf("%w: redis.addr is required when redis is enabled", ErrInvalidConfig)
	}

	if c.RateLimit.Enabled && (c.RateLimit.RPS <= 0 || c.RateLimit.Burst <= 0) {
		return fmt.Errorf("%w: rate_limit.rps and rate_limit.burst must be positive", ErrInvalidConfig)
	}

	return nil
}

// WorkHours рабочие часы по умолчанию для новых дней (после Validate)
func (c *Config) WorkHours() (types.TimeString, types.TimeString) {
	start, _ := types.NewTimeStringFromString(c.Booking.WorkHourStart)
	end, _ := types.NewTimeStringFromString(c.Booking.WorkHourEnd)
	return start, end
}

// Seconds переводит секунды конфигурации в time.Duration
func Seconds(n int) time.Duration {
	return time.Duration(n) * time.Second
}
