package config // package config loads application configuration from the environment

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds all runtime configuration values.  Each field corresponds to
// an environment variable; nested structs are prefixed (REDIS_*,
// RATE_LIMIT_*, QUEUE_*).
type Config struct {
	Env            string        `envconfig:"APP_ENV" default:"dev"`          // application environment (dev/test/prod)
	Port           string        `envconfig:"APP_PORT" default:"8080"`        // HTTP port to listen on
	LogLevel       string        `envconfig:"LOG_LEVEL" default:"info"`       // logrus level name
	DBUser         string        `envconfig:"DB_USER" required:"true"`        // database username
	DBPass         string        `envconfig:"DB_PASS"`                        // database password (empty allowed)
	DBHost         string        `envconfig:"DB_HOST" default:"localhost"`    // database host address
	DBPort         string        `envconfig:"DB_PORT" default:"3306"`         // database port number
	DBName         string        `envconfig:"DB_NAME" required:"true"`        // database name
	AutoMigrate    bool          `envconfig:"DB_AUTO_MIGRATE" default:"false"` // apply the embedded schema at startup
	JWTSecret      string        `envconfig:"JWT_SECRET" required:"true"`     // secret used to verify session tokens
	RequestTimeout time.Duration `envconfig:"REQUEST_TIMEOUT" default:"5s"`   // upper bound for store calls per request

	Redis     RedisConfig     `envconfig:"REDIS"`
	RateLimit RateLimitConfig `envconfig:"RATE_LIMIT"`
	Queue     QueueConfig     `envconfig:"QUEUE"`
}

// QueueConfig controls booking event publishing and the audit consumer.
// An empty URL disables both.
type QueueConfig struct {
	URL             string `envconfig:"URL"`
	Name            string `envconfig:"NAME" default:"booking.events"`
	ConsumerEnabled bool   `envconfig:"CONSUMER_ENABLED" default:"false"`
	AuditLogPath    string `envconfig:"AUDIT_LOG" default:"logs/booking.log"`
}

// Load reads an optional .env file and then the process environment.
// Missing required variables are reported as an error.
func Load() (Config, error) {
	// .env is a convenience for local runs; its absence is not an error.
	_ = godotenv.Load()

	var c Config
	if err := envconfig.Process("", &c); err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}
	c.RateLimit.normalize()
	return c, nil
}
