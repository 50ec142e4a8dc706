package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const EnvPrefix = ""

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	StorageBackendRedis    = "redis"
	StorageBackendPostgres = "postgres"
	StorageBackendSQLite   = "sqlite"
)

type Config struct {
	App     AppConfig
	Storage StorageConfig
	Redis   RedisConfig
	DB      DBConfig
	Catalog CatalogConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Storage.validate(); err != nil {
		return nil, err
	}
	if cfg.Storage.usesDB() && cfg.DB.DSN == "" {
		return nil, fmt.Errorf("TOKOKITA_DB_DSN is required for %s storage", cfg.Storage.Backend)
	}
	if cfg.Storage.Backend == StorageBackendRedis && cfg.Redis.URL == "" && cfg.Redis.Address == "" {
		return nil, fmt.Errorf("TOKOKITA_REDIS_URL or TOKOKITA_REDIS_ADDR is required for redis storage")
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"TOKOKITA_APP_ENV" default:"dev"`
	Port         string `envconfig:"TOKOKITA_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"TOKOKITA_LOG_LEVEL" default:"info"`
	LogFormat    string `envconfig:"TOKOKITA_LOG_FORMAT" default:"json"`
	LogWarnStack bool   `envconfig:"TOKOKITA_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// StorageConfig selects the durable key-value backend holding the
// transaction log blob.
type StorageConfig struct {
	Backend string `envconfig:"TOKOKITA_STORAGE_BACKEND" default:"redis"`
	LogKey  string `envconfig:"TOKOKITA_STORAGE_LOG_KEY" default:"transactions"`
}

func (s StorageConfig) validate() error {
	switch s.Backend {
	case StorageBackendRedis, StorageBackendPostgres, StorageBackendSQLite:
		return nil
	}
	return fmt.Errorf("unknown storage backend %q", s.Backend)
}

func (s StorageConfig) usesDB() bool {
	return s.Backend == StorageBackendPostgres || s.Backend == StorageBackendSQLite
}

type RedisConfig struct {
	URL          string        `envconfig:"TOKOKITA_REDIS_URL"`
	Address      string        `envconfig:"TOKOKITA_REDIS_ADDR"`
	Password     string        `envconfig:"TOKOKITA_REDIS_PASSWORD"`
	DB           int           `envconfig:"TOKOKITA_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"TOKOKITA_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"TOKOKITA_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"TOKOKITA_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"TOKOKITA_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"TOKOKITA_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type DBConfig struct {
	DSN             string        `envconfig:"TOKOKITA_DB_DSN"`
	MaxOpenConns    int           `envconfig:"TOKOKITA_DB_MAX_OPEN_CONNS" default:"10"`
	MaxIdleConns    int           `envconfig:"TOKOKITA_DB_MAX_IDLE_CONNS" default:"5"`
	ConnMaxLifetime time.Duration `envconfig:"TOKOKITA_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"TOKOKITA_DB_CONN_MAX_IDLE_TIME" default:"10m"`
	AutoMigrate     bool          `envconfig:"TOKOKITA_DB_AUTO_MIGRATE" default:"true"`
}

type CatalogConfig struct {
	BaseURL  string        `envconfig:"TOKOKITA_CATALOG_BASE_URL" default:"https://dummyjson.com/products"`
	Timeout  time.Duration `envconfig:"TOKOKITA_CATALOG_TIMEOUT" default:"10s"`
	CacheTTL time.Duration `envconfig:"TOKOKITA_CATALOG_CACHE_TTL" default:"5m"`
}
