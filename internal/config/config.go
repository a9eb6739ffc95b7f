package config // package config loads application configuration from environment variables

import (
	"errors"  // sentinel for missing variables
	"fmt"     // wrapping errors with the offending key
	"os"      // os provides access to environment variables
	"strconv" // strconv converts strings to other types
	"time"    // durations for token TTL and rate limit windows

	"github.com/joho/godotenv" // optional .env loading for local development
)

// ErrMissingEnv is wrapped by Load when a required variable is unset or empty.
var ErrMissingEnv = errors.New("missing required env var")

// Config holds all runtime configuration values.  Each field corresponds to
// an environment variable.  It is built once at startup and treated as
// read-only afterwards; handlers and middleware receive copies of the values
// they need.
type Config struct {
	Env         string        // application environment (e.g. "dev", "prod")
	Port        string        // HTTP port to listen on
	DBDSN       string        // MySQL DSN in go-sql-driver format
	DBMigrate   bool          // apply embedded migrations on startup
	JWTSecret   string        // secret used to sign and verify auth tokens
	TokenTTL    time.Duration // auth token lifetime; zero means tokens never expire
	BcryptCost  int           // bcrypt cost for password hashing
	LogLevel    string        // logrus level name
	RabbitMQURL string        // broker for catalog events; empty disables publishing
	EventsQueue string        // queue catalog events are routed to
	RateLimit   RateLimitConfig
	Redis       RedisConfig
}

// Load reads an optional .env file and then the process environment.
// JWT_SECRET and DB_DSN are required; a missing one yields an error wrapping
// ErrMissingEnv and the caller is expected to abort startup.
func Load() (Config, error) {
	_ = godotenv.Load() // .env is optional outside of local development

	secret, err := must("JWT_SECRET")
	if err != nil {
		return Config{}, err
	}
	dsn, err := must("DB_DSN")
	if err != nil {
		return Config{}, err
	}
	ttl := envDur("AUTH_TOKEN_TTL", 0)
	if ttl < 0 {
		return Config{}, fmt.Errorf("invalid AUTH_TOKEN_TTL: %s", ttl)
	}

	return Config{
		Env:         envStr("APP_ENV", "dev"),                 // environment (dev/test/prod)
		Port:        envStr("APP_PORT", "3000"),               // port to bind the HTTP server
		DBDSN:       dsn,                                      // MySQL connection string
		DBMigrate:   envBool("DB_MIGRATE", true),              // run embedded migrations on boot
		JWTSecret:   secret,                                   // secret used for signing tokens
		TokenTTL:    ttl,                                      // zero keeps tokens valid forever
		BcryptCost:  envInt("BCRYPT_COST", 10),                // bcrypt cost factor
		LogLevel:    envStr("LOG_LEVEL", "info"),              // logrus level name
		RabbitMQURL: os.Getenv("RABBITMQ_URL"),                // empty disables event publishing
		EventsQueue: envStr("EVENTS_QUEUE", "catalog.events"), // queue for catalog events
		RateLimit:   LoadRateLimitConfig(),                    // RATE_LIMIT_* variables
		Redis:       LoadRedisConfig(),                        // REDIS_* variables
	}, nil
}

// must retrieves the value of a required environment variable.
func must(key string) (string, error) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return "", fmt.Errorf("%w: %s", ErrMissingEnv, key)
	}
	return v, nil
}

// envStr returns the variable k or the default d when it is unset or empty.
func envStr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

// envBool accepts the usual spellings of true and false; anything else falls
// back to d.
func envBool(k string, d bool) bool {
	v := os.Getenv(k)
	if v == "" {
		return d
	}
	switch v {
	case "1", "true", "TRUE", "True", "yes", "YES", "on", "ON":
		return true
	case "0", "false", "FALSE", "False", "no", "NO", "off", "OFF":
		return false
	}
	return d
}

// envInt falls back to d when the value is not an integer.
func envInt(k string, d int) int {
	v := os.Getenv(k)
	if v == "" {
		return d
	}
	if n, err := strconv.Atoi(v); err == nil {
		return n
	}
	return d
}

func envDur(k string, d time.Duration) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		return d
	}
	if dur, err := time.ParseDuration(v); err == nil {
		return dur
	}
	return d
}
