package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config aggregates runtime configuration for the client and the development backend.
type Config struct {
	App      AppConfig
	API      APIConfig
	Store    StoreConfig
	Postgres PostgresConfig
	Redis    RedisConfig
	Logger   LoggerConfig
	Mock     MockConfig
}

// AppConfig identifies the running binary.
type AppConfig struct {
	Name    string
	Env     string
	Version string
}

// APIConfig controls the gateway client.
type APIConfig struct {
	BaseURL               string
	RequestTimeoutSeconds int
	Debug                 bool
}

// Store backends.
const (
	StoreFile     = "file"
	StoreRedis    = "redis"
	StorePostgres = "postgres"
	StoreMemory   = "memory"
)

// StoreConfig selects and configures the credential store.
type StoreConfig struct {
	Backend     string
	Path        string
	Passphrase  string
	Profile     string
	RedisPrefix string
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
	Level  string
	Output string
	Format string
}

// MockConfig configures the development backend.
type MockConfig struct {
	Host                  string
	Port                  string
	JWTSecret             string
	AccessTokenTTLMinutes int
	BcryptCost            int
	SeedFile              string
	RequestTimeoutSeconds int
}

// Load reads configuration from environment variables, applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	backend := strings.ToLower(getEnv("SOJUS_STORE_BACKEND", StoreFile))
	switch backend {
	case StoreFile, StoreRedis, StorePostgres, StoreMemory:
	default:
		return nil, fmt.Errorf("invalid SOJUS_STORE_BACKEND %q", backend)
	}

	cfg := &Config{
		App: AppConfig{
			Name:    getEnv("APP_NAME", "sojus"),
			Env:     getEnv("APP_ENV", "development"),
			Version: getEnv("APP_VERSION", "dev"),
		},
		API: APIConfig{
			BaseURL:               strings.TrimRight(getEnv("SOJUS_API_BASE_URL", "http://localhost:8080"), "/"),
			RequestTimeoutSeconds: getEnvAsInt("SOJUS_API_TIMEOUT_SECONDS", 15),
			Debug:                 getEnvAsBool("SOJUS_API_DEBUG", false),
		},
		Store: StoreConfig{
			Backend:     backend,
			Path:        getEnv("SOJUS_STORE_PATH", defaultStorePath()),
			Passphrase:  os.Getenv("SOJUS_STORE_PASSPHRASE"),
			Profile:     getEnv("SOJUS_PROFILE", "default"),
			RedisPrefix: getEnv("SOJUS_STORE_REDIS_PREFIX", "sojus:session:"),
		},
		Postgres: PostgresConfig{
			DSN:            os.Getenv("POSTGRES_DSN"),
			MaxConns:       int32(getEnvAsInt("POSTGRES_MAX_CONNS", 4)),
			MinConns:       int32(getEnvAsInt("POSTGRES_MIN_CONNS", 0)),
			RunMigrations:  getEnvAsBool("POSTGRES_RUN_MIGRATIONS", true),
			ConnMaxIdleSec: int32(getEnvAsInt("POSTGRES_CONN_MAX_IDLE_SECONDS", 30)),
			ConnMaxLifeSec: int32(getEnvAsInt("POSTGRES_CONN_MAX_LIFE_SECONDS", 300)),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "127.0.0.1:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
		},
		Logger: LoggerConfig{
			Level:  getEnv("LOG_LEVEL", "warn"),
			Output: getEnv("LOG_OUTPUT", "stderr"),
			Format: strings.ToLower(getEnv("LOG_FORMAT", "json")),
		},
		Mock: MockConfig{
			Host:                  getEnv("SOJUS_MOCK_HOST", "0.0.0.0"),
			Port:                  getEnv("SOJUS_MOCK_PORT", "8080"),
			JWTSecret:             getEnv("SOJUS_MOCK_JWT_SECRET", "dev-secret"),
			AccessTokenTTLMinutes: getEnvAsInt("SOJUS_MOCK_TOKEN_TTL_MINUTES", 480),
			BcryptCost:            getEnvAsInt("SOJUS_MOCK_BCRYPT_COST", 10),
			SeedFile:              os.Getenv("SOJUS_MOCK_SEED_FILE"),
			RequestTimeoutSeconds: getEnvAsInt("SOJUS_MOCK_REQUEST_TIMEOUT_SECONDS", 30),
		},
	}

	return cfg, nil
}

// RequestTimeout returns the gateway timeout; 15s when unset.
func (a APIConfig) RequestTimeout() time.Duration {
	if a.RequestTimeoutSeconds <= 0 {
		return 15 * time.Second
	}
	return time.Duration(a.RequestTimeoutSeconds) * time.Second
}

// Addr returns the HTTP bind address.
func (m MockConfig) Addr() string {
	return fmt.Sprintf("%s:%s", m.Host, m.Port)
}

// RequestTimeout returns the per-request timeout of the development backend.
func (m MockConfig) RequestTimeout() time.Duration {
	if m.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(m.RequestTimeoutSeconds) * time.Second
}

func defaultStorePath() string {
	dir, err := os.UserConfigDir()
	if err != nil || dir == "" {
		return ".sojus-session.json"
	}
	return filepath.Join(dir, "sojus", "session.json")
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
