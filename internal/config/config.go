package config

import (
	"crypto/rand"  // Generated development secret
	"encoding/hex" // Generated development secret
	"errors"       // Validation errors
	"fmt"          // DSN formatting
	"os"           // For environment variables
	"strconv"      // For string to int conversion
	"time"         // Session lifetime

	"github.com/joho/godotenv"   // For loading .env files
	"github.com/sirupsen/logrus" // Warnings for unusable values
	"golang.org/x/crypto/bcrypt"
)

// Supported database drivers and session backends.
const (
	DriverSQLite = "sqlite"
	DriverMySQL  = "mysql"

	SessionBackendDB    = "db"
	SessionBackendRedis = "redis"
)

// Config holds the application configuration
type Config struct {
	AppPort        string        // Application port
	DBDriver       string        // sqlite or mysql
	DBPath         string        // SQLite database file
	DBUser         string        // Database user
	DBPassword     string        // Database password
	DBHost         string        // Database host
	DBPort         string        // Database port
	DBName         string        // Database name
	SessionSecret  string        // Key used to sign session tokens
	SessionBackend string        // db or redis
	SessionTTL     time.Duration // Session lifetime
	RedisAddr      string        // Redis server address
	RedisPass      string        // Redis password
	RedisDB        int           // Redis database number
	BcryptCost     int           // Password hashing cost
	LogLevel       string        // Logrus level name
	IsProd         bool          // Is production environment
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	_ = godotenv.Load() // Load .env file if present
	redisDB := getenvInt("REDIS_DB", 0)
	cost := getenvInt("BCRYPT_COST", bcrypt.DefaultCost)
	ttl := getenvDuration("SESSION_TTL", 30*24*time.Hour)
	return &Config{
		AppPort:        getenv("APP_PORT", "8080"),                   // Application port
		DBDriver:       getenv("DB_DRIVER", DriverSQLite),            // Database driver
		DBPath:         getenv("DB_PATH", "budget_tracker.db"),       // SQLite file
		DBUser:         os.Getenv("DB_USER"),                         // Database user
		DBPassword:     os.Getenv("DB_PASSWORD"),                     // Database password
		DBHost:         os.Getenv("DB_HOST"),                         // Database host
		DBPort:         getenv("DB_PORT", "3306"),                    // Database port
		DBName:         os.Getenv("DB_NAME"),                         // Database name
		SessionSecret:  os.Getenv("SESSION_SECRET"),                  // Session signing key
		SessionBackend: getenv("SESSION_BACKEND", SessionBackendDB),  // Session backend
		SessionTTL:     ttl,                                          // Session lifetime
		RedisAddr:      os.Getenv("REDIS_ADDR"),                      // Redis server address
		RedisPass:      os.Getenv("REDIS_PASS"),                      // Redis password
		RedisDB:        redisDB,                                      // Redis database number
		BcryptCost:     cost,                                         // Password hashing cost
		LogLevel:       getenv("LOG_LEVEL", "info"),                  // Log level
		IsProd:         os.Getenv("IS_PROD") == "true",               // Is production environment
	}
}

// Validate checks that the configuration can be used to start the server
func (c *Config) Validate() error {
	switch c.DBDriver {
	case DriverSQLite:
		if c.DBPath == "" {
			return errors.New("DB_PATH is required for the sqlite driver")
		}
	case DriverMySQL:
		if c.DBHost == "" || c.DBName == "" {
			return errors.New("DB_HOST and DB_NAME are required for the mysql driver")
		}
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}
	switch c.SessionBackend {
	case SessionBackendDB:
	case SessionBackendRedis:
		if c.RedisAddr == "" {
			return errors.New("REDIS_ADDR is required for the redis session backend")
		}
	default:
		return fmt.Errorf("unsupported SESSION_BACKEND %q", c.SessionBackend)
	}
	if c.IsProd && c.SessionSecret == "" {
		return errors.New("SESSION_SECRET is required in production")
	}
	if c.BcryptCost < bcrypt.MinCost || c.BcryptCost > bcrypt.MaxCost {
		return fmt.Errorf("BCRYPT_COST must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost)
	}
	return nil
}

// DSN returns the data source name for the configured driver
func (c *Config) DSN() string {
	if c.DBDriver == DriverMySQL {
		return c.DBUser + ":" + c.DBPassword + "@tcp(" + c.DBHost + ":" + c.DBPort + ")/" + c.DBName + "?parseTime=true"
	}
	return c.DBPath + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// getenvInt parses key as an integer; an unset key yields fallback silently
func getenvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		warnInvalid(key, v, fallback)
		return fallback
	}
	return n
}

// getenvDuration parses key as a positive Go duration
func getenvDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		warnInvalid(key, v, fallback)
		return fallback
	}
	return d
}

func warnInvalid(key, value string, fallback any) {
	logrus.WithFields(logrus.Fields{
		"key":      key,      // Variable name
		"value":    value,    // Rejected value
		"fallback": fallback, // Value used instead
	}).Warn("Invalid configuration value, using default")
}

// EnsureSessionSecret fills an empty secret with random bytes and reports
// whether it did. Generated secrets do not survive a restart.
func (c *Config) EnsureSessionSecret() (bool, error) {
	if c.SessionSecret != "" {
		return false, nil
	}
	if c.IsProd {
		return false, errors.New("SESSION_SECRET is required in production")
	}
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return false, err
	}
	c.SessionSecret = hex.EncodeToString(b)
	return true, nil
}
