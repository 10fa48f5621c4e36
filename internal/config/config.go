package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"painel/internal/database"
)

// Config holds application configuration
type Config struct {
	// Server
	Port     string
	Env      string
	LogLevel string

	// Storage
	StorageBackend string
	LocalStorePath string

	// Database (remote backend)
	DBHost         string
	DBPort         string
	DBUser         string
	DBPassword     string
	DBName         string
	DBSSLMode      string
	MigrationsPath string
	AutoMigrate    bool

	// Dashboard
	Timezone string
	Location *time.Location

	// Access
	APIKey string

	// Celebration
	CelebrationInterval time.Duration
	CelebrationDuration time.Duration
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if not already loaded
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	config := &Config{
		// Server
		Port:     getEnv("PORT", "8080"),
		Env:      getEnv("ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", ""),

		// Storage
		StorageBackend: strings.ToLower(getEnv("STORAGE_BACKEND", "local")),
		LocalStorePath: getEnv("LOCAL_STORE_PATH", "./data/painel.db"),

		// Database
		DBHost:         getEnv("DB_HOST", "localhost"),
		DBPort:         getEnv("DB_PORT", "5432"),
		DBUser:         getEnv("DB_USER", "painel"),
		DBPassword:     getEnv("DB_PASSWORD", "painel"),
		DBName:         getEnv("DB_NAME", "painel"),
		DBSSLMode:      getEnv("DB_SSLMODE", "disable"),
		MigrationsPath: getEnv("MIGRATIONS_PATH", "migrations"),
		AutoMigrate:    getEnvBool("AUTO_MIGRATE", true),

		// Dashboard
		Timezone: getEnv("TIMEZONE", "America/Sao_Paulo"),

		// Access
		APIKey: getEnv("API_KEY", ""),

		// Celebration
		CelebrationInterval: getEnvDuration("CELEBRATION_INTERVAL", 250*time.Millisecond),
		CelebrationDuration: getEnvDuration("CELEBRATION_DURATION", 3*time.Second),
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate checks the configuration, reporting every problem at once. It
// also resolves Timezone into Location.
func (c *Config) Validate() error {
	var problems []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		problems = append(problems, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		problems = append(problems, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	switch c.StorageBackend {
	case "local", "memory":
	case "remote":
		if c.DBHost == "" || c.DBName == "" || c.DBUser == "" {
			problems = append(problems, "DB_HOST, DB_NAME and DB_USER are required for the remote backend")
		}
	default:
		problems = append(problems, fmt.Sprintf("invalid storage backend '%s': must be one of [local remote memory]", c.StorageBackend))
	}

	if (c.StorageBackend == "local" || c.StorageBackend == "remote") && c.LocalStorePath == "" {
		problems = append(problems, "LOCAL_STORE_PATH cannot be empty")
	}

	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		problems = append(problems, fmt.Sprintf("invalid timezone '%s': %v", c.Timezone, err))
	} else {
		c.Location = loc
	}

	if c.CelebrationInterval <= 0 {
		problems = append(problems, "CELEBRATION_INTERVAL must be positive")
	}
	if c.CelebrationDuration < c.CelebrationInterval {
		problems = append(problems, "CELEBRATION_DURATION must not be shorter than CELEBRATION_INTERVAL")
	}

	if len(problems) > 0 {
		return fmt.Errorf("configuration validation failed:\n  - %s", strings.Join(problems, "\n  - "))
	}
	return nil
}

// Database returns the connection settings for the remote backend.
func (c *Config) Database() *database.Config {
	return &database.Config{
		Host:           c.DBHost,
		Port:           c.DBPort,
		User:           c.DBUser,
		Password:       c.DBPassword,
		DBName:         c.DBName,
		SSLMode:        c.DBSSLMode,
		MigrationsPath: c.MigrationsPath,
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		log.Printf("Warning: invalid %s value '%s', falling back to %v\n", key, value, defaultValue)
		return defaultValue
	}
	return b
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		log.Printf("Warning: invalid %s value '%s', falling back to %s\n", key, value, defaultValue)
		return defaultValue
	}
	return d
}
