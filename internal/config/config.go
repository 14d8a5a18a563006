package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

type Config struct {
	Env      string `env:"APP_ENV" env-default:"local"`
	LogLevel string `env:"LOG_LEVEL" env-default:"info"`

	HTTP       HTTP
	Database   Database
	Session    Session
	Redis      Redis
	LoginLimit LoginLimit
}

type HTTP struct {
	Port            string        `env:"APP_PORT" env-default:"8080"`
	RequestTimeout  time.Duration `env:"HTTP_REQUEST_TIMEOUT" env-default:"15s"`
	ShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

type Database struct {
	URL             string        `env:"DATABASE_URL" env-required:"true"`
	MaxOpenConns    int           `env:"DB_MAX_OPEN_CONNS" env-default:"10"`
	MaxIdleConns    int           `env:"DB_MAX_IDLE_CONNS" env-default:"2"`
	ConnMaxLifetime time.Duration `env:"DB_CONN_MAX_LIFETIME" env-default:"1h"`
}

type Session struct {
	Secret       string        `env:"SESSION_SECRET" env-required:"true"`
	TTL          time.Duration `env:"SESSION_TTL" env-default:"24h"`
	CookieName   string        `env:"SESSION_COOKIE_NAME" env-default:"kuma_session"`
	CookieSecure bool          `env:"SESSION_COOKIE_SECURE" env-default:"false"`
}

// Redis backs the login rate limiter. An empty Addr disables limiting.
type Redis struct {
	Addr     string `env:"REDIS_ADDR"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB" env-default:"0"`
}

type LoginLimit struct {
	Attempts int64         `env:"LOGIN_LIMIT_ATTEMPTS" env-default:"5"`
	Window   time.Duration `env:"LOGIN_LIMIT_WINDOW" env-default:"1m"`
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(cfg.Session.Secret) < 16 {
		return nil, fmt.Errorf("SESSION_SECRET must be at least 16 characters")
	}
	return &cfg, nil
}
