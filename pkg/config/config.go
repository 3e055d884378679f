package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix namespaces every environment variable read by this service.
const EnvPrefix = "openhouse"

const (
	AppEnvDev  = "development"
	AppEnvProd = "production"
)

type Config struct {
	App           AppConfig
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Password      PasswordConfig
	AuthRateLimit AuthRateLimitConfig
	CORS          CORSConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"OPENHOUSE_APP_ENV" default:"development"`
	Port         string `envconfig:"OPENHOUSE_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"OPENHOUSE_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"OPENHOUSE_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN string `envconfig:"OPENHOUSE_DB_DSN" required:"true"`

	MaxOpenConns    int           `envconfig:"OPENHOUSE_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"OPENHOUSE_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"OPENHOUSE_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"OPENHOUSE_DB_CONN_MAX_IDLE_TIME" default:"10m"`

	AutoMigrate bool `envconfig:"OPENHOUSE_DB_AUTO_MIGRATE" default:"false"`
}

type RedisConfig struct {
	// URL is optional; auth rate limiting is disabled when neither URL nor
	// Address is set.
	URL          string        `envconfig:"OPENHOUSE_REDIS_URL"`
	Address      string        `envconfig:"OPENHOUSE_REDIS_ADDR"`
	Password     string        `envconfig:"OPENHOUSE_REDIS_PASSWORD"`
	DB           int           `envconfig:"OPENHOUSE_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"OPENHOUSE_REDIS_POOL_SIZE" default:"10"`
	DialTimeout  time.Duration `envconfig:"OPENHOUSE_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"OPENHOUSE_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"OPENHOUSE_REDIS_WRITE_TIMEOUT" default:"5s"`
}

func (r RedisConfig) Enabled() bool {
	return r.URL != "" || r.Address != ""
}

type JWTConfig struct {
	Secret string `envconfig:"OPENHOUSE_JWT_SECRET" required:"true"`
	Issuer string `envconfig:"OPENHOUSE_JWT_ISSUER" default:"openhouse-api"`
	// Tokens default to a 7 day lifetime.
	ExpirationMinutes int `envconfig:"OPENHOUSE_JWT_EXPIRATION_MINUTES" default:"10080"`
}

func (j JWTConfig) Expiration() time.Duration {
	return time.Duration(j.ExpirationMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"OPENHOUSE_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"OPENHOUSE_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"OPENHOUSE_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"OPENHOUSE_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"OPENHOUSE_ARGON_KEY_LEN" default:"32"`
}

type AuthRateLimitConfig struct {
	LoginWindow        time.Duration `envconfig:"OPENHOUSE_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginEmailLimit    int           `envconfig:"OPENHOUSE_AUTH_RATE_LIMIT_LOGIN_EMAIL_LIMIT" default:"5"`
	LoginIPLimit       int           `envconfig:"OPENHOUSE_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
	RegisterWindow     time.Duration `envconfig:"OPENHOUSE_AUTH_RATE_LIMIT_REGISTER_WINDOW" default:"5m"`
	RegisterEmailLimit int           `envconfig:"OPENHOUSE_AUTH_RATE_LIMIT_REGISTER_EMAIL_LIMIT" default:"3"`
	RegisterIPLimit    int           `envconfig:"OPENHOUSE_AUTH_RATE_LIMIT_REGISTER_IP_LIMIT" default:"20"`
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"OPENHOUSE_CORS_ALLOWED_ORIGINS" default:"http://localhost:5173"`
}
