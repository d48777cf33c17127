// Package config loads application configuration from environment variables.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"
)

// Config holds all runtime configuration values.  Each field corresponds to
// an environment variable.
type Config struct {
	Env          string // application environment (e.g. "dev", "prod")
	Port         string // HTTP port to listen on
	DBUser       string // MySQL username
	DBPass       string // MySQL password (optional)
	DBHost       string // MySQL host address
	DBPort       string // MySQL port number
	DBName       string // MySQL database name
	MongoURI     string // MongoDB connection string
	MongoDB      string // MongoDB database name
	JWTSecret    string // secret used to sign JWTs
	AccessTTLMin int    // access token time-to-live in minutes
	BcryptCost   int    // bcrypt cost for password hashing
	CookieSecure bool   // mark the session cookie Secure
	LogLevel     string // logrus level name
	AMQPURL      string // RabbitMQ URL; empty disables partial-write events
	AuditLogDir  string // directory the audit consumer writes to

	// Bootstrap admin, created at startup when all three are set.
	AdminUsername string
	AdminEmail    string
	AdminPassword string
}

// Load reads configuration values from environment variables and returns a
// Config.  Required variables are enforced by must() and missing values
// cause the program to exit with a fatal log message.
func Load() Config {
	amqpURL := os.Getenv("RABBITMQ_URL")
	if amqpURL == "" {
		amqpURL = os.Getenv("AMQP_URL")
	}
	return Config{
		Env:           must("APP_ENV"),
		Port:          must("APP_PORT"),
		DBUser:        must("DB_USER"),
		DBPass:        os.Getenv("DB_PASS"), // empty allowed
		DBHost:        must("DB_HOST"),
		DBPort:        must("DB_PORT"),
		DBName:        must("DB_NAME"),
		MongoURI:      envStr("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:       envStr("MONGO_DB", "glassview-db"),
		JWTSecret:     must("JWT_SECRET"),
		AccessTTLMin:  envInt("ACCESS_TOKEN_TTL_MIN", 30),
		BcryptCost:    envInt("BCRYPT_COST", 12),
		CookieSecure:  envBool("COOKIE_SECURE", true),
		LogLevel:      envStr("LOG_LEVEL", "info"),
		AMQPURL:       amqpURL,
		AuditLogDir:   envStr("AUDIT_LOG_DIR", "logs"),
		AdminUsername: os.Getenv("ADMIN_USERNAME"),
		AdminEmail:    os.Getenv("ADMIN_EMAIL"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),
	}
}

// AccessTTL is the access token lifetime as a duration.
func (c Config) AccessTTL() time.Duration {
	return time.Duration(c.AccessTTLMin) * time.Minute
}

// HasAdmin reports whether a bootstrap admin is configured.
func (c Config) HasAdmin() bool {
	return c.AdminUsername != "" && c.AdminEmail != "" && c.AdminPassword != ""
}

// must retrieves the value of a required environment variable.  If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		logrus.Fatalf("missing required env var: %s", key)
	}
	return v
}

func envStr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func envBool(k string, d bool) bool {
	switch os.Getenv(k) {
	case "1", "true", "TRUE", "True", "yes", "YES", "on", "ON":
		return true
	case "0", "false", "FALSE", "False", "no", "NO", "off", "OFF":
		return false
	}
	return d
}

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
