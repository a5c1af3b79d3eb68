// Package config reads the configuration of the backend from the environment.
package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/finanzas-app/backend/internal/models"
	"github.com/joho/godotenv"
	"golang.org/x/exp/slices"
)

type Config struct {
	// HTTP Server
	Port             string
	APIURL           string
	GinMode          string
	LogFormat        string
	CORSAllowOrigins []string
	EnablePprof      bool

	// Database
	DBDriver     string
	SQLiteDBPath string
	DBHost       string
	DBPort       string
	DBUser       string
	DBPassword   string
	DBName       string

	// Sessions
	JWTSecret  string
	SessionTTL time.Duration

	// AMQP, publishing session events is disabled without URL
	AMQPURL      string
	AMQPExchange string

	// Display of amounts
	Currency string
	Locale   string
}

// LoadDotenv loads environment variables from the files, ".env" if none
// are given. Variables that are already set are not overwritten and
// missing files are ignored.
func LoadDotenv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}

	for _, f := range files {
		if _, err := os.Stat(f); os.IsNotExist(err) {
			continue
		}

		if err := godotenv.Load(f); err != nil {
			return fmt.Errorf("loading %s: %w", f, err)
		}
	}

	return nil
}

func Load() *Config {
	cfg := &Config{
		Port:             getEnv("PORT", "8080"),
		APIURL:           getEnv("API_URL", "http://localhost:8080"),
		GinMode:          getEnv("GIN_MODE", "release"),
		LogFormat:        getEnv("LOG_FORMAT", "json"),
		CORSAllowOrigins: strings.Fields(os.Getenv("CORS_ALLOW_ORIGINS")),
		EnablePprof:      getEnvBool("ENABLE_PPROF", false),

		DBDriver:     getEnv("DB_DRIVER", models.DriverSQLite),
		SQLiteDBPath: getEnv("SQLITE_DB_PATH", "./data/finanzas.db"),
		DBHost:       getEnv("DB_HOST", "localhost"),
		DBPort:       getEnv("DB_PORT", "5432"),
		DBUser:       getEnv("DB_USER", "finanzas"),
		DBPassword:   getEnv("DB_PASSWORD", ""),
		DBName:       getEnv("DB_NAME", "finanzas"),

		JWTSecret:  getEnv("JWT_SECRET", ""),
		SessionTTL: getEnvDuration("SESSION_TTL", 24*time.Hour),

		AMQPURL:      getEnv("AMQP_URL", ""),
		AMQPExchange: getEnv("AMQP_EXCHANGE", "finanzas"),

		Currency: getEnv("CURRENCY", "CLP"),
		Locale:   getEnv("LOCALE", "es-CL"),
	}

	return cfg
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var problems []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		problems = append(problems, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		problems = append(problems, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	if u, err := url.Parse(c.APIURL); err != nil || u.Scheme == "" || u.Host == "" {
		problems = append(problems, fmt.Sprintf("invalid API URL '%s': must be an absolute URL", c.APIURL))
	}

	validModes := []string{"debug", "release", "test"}
	if !slices.Contains(validModes, c.GinMode) {
		problems = append(problems, fmt.Sprintf("invalid gin mode '%s': must be one of %v", c.GinMode, validModes))
	}

	validDrivers := []string{models.DriverSQLite, models.DriverPostgres}
	if !slices.Contains(validDrivers, c.DBDriver) {
		problems = append(problems, fmt.Sprintf("invalid database driver '%s': must be one of %v", c.DBDriver, validDrivers))
	}

	if c.DBDriver == models.DriverSQLite {
		if c.SQLiteDBPath == "" {
			problems = append(problems, "SQLite database path cannot be empty when using the sqlite driver")
		}
	}

	if c.DBDriver == models.DriverPostgres && (c.DBHost == "" || c.DBName == "") {
		problems = append(problems, "DB_HOST and DB_NAME are required when using the postgres driver")
	}

	if len(c.JWTSecret) < 32 {
		problems = append(problems, "JWT_SECRET must be set to at least 32 characters")
	}

	if c.SessionTTL < time.Minute {
		problems = append(problems, fmt.Sprintf("invalid session TTL %v: must be at least one minute", c.SessionTTL))
	}

	if c.AMQPURL != "" {
		if parsedURL, err := url.Parse(c.AMQPURL); err != nil {
			problems = append(problems, fmt.Sprintf("invalid AMQP URL '%s': %v", c.AMQPURL, err))
		} else if parsedURL.Scheme != "amqp" && parsedURL.Scheme != "amqps" {
			problems = append(problems, fmt.Sprintf("invalid AMQP URL scheme '%s': must be 'amqp' or 'amqps'", parsedURL.Scheme))
		}

		if c.AMQPExchange == "" {
			problems = append(problems, "AMQP exchange name cannot be empty when AMQP URL is provided")
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(problems, "\n- "))
	}

	return nil
}

// DSN returns the data source name for the configured database driver.
func (c *Config) DSN() string {
	if c.DBDriver == models.DriverPostgres {
		return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable TimeZone=UTC", c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName)
	}

	return c.SQLiteDBPath
}

// URL returns the parsed API URL.
func (c *Config) URL() (*url.URL, error) {
	return url.Parse(c.APIURL)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
