package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Storage backends
const (
	StorageFile     = "file"
	StoragePostgres = "postgres"
)

// Config holds all application configuration
type Config struct {
	DataDir  string
	Storage  string
	LogLevel string
	LogFile  string
	WebAddr  string
	Bot      BotConfig
	Database DatabaseConfig
}

// BotConfig holds Telegram bot settings
type BotConfig struct {
	Token    string
	OwnerIDs []int64
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file (ignore error if not exists)
	_ = godotenv.Load()

	owners, err := parseOwnerIDs(os.Getenv("BOT_OWNER_IDS"))
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		DataDir:  getEnv("DATA_DIR", "data"),
		Storage:  strings.ToLower(getEnv("STORAGE", StorageFile)),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		LogFile:  os.Getenv("LOG_FILE"),
		WebAddr:  getEnv("WEB_ADDR", ":8080"),
		Bot: BotConfig{
			Token:    os.Getenv("BOT_TOKEN"),
			OwnerIDs: owners,
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			Name:     getEnv("DB_NAME", "palabra"),
			User:     getEnv("DB_USER", "palabra"),
			Password: os.Getenv("DB_PASSWORD"),
		},
	}

	// Validate required fields
	switch cfg.Storage {
	case StorageFile:
	case StoragePostgres:
		if cfg.Database.Password == "" {
			return nil, fmt.Errorf("DB_PASSWORD is required")
		}
	default:
		return nil, fmt.Errorf("STORAGE must be %q or %q, got %q", StorageFile, StoragePostgres, cfg.Storage)
	}

	return cfg, nil
}

// ValidateBot checks the settings only the Telegram bot needs
func (c *Config) ValidateBot() error {
	if c.Bot.Token == "" {
		return fmt.Errorf("BOT_TOKEN is required")
	}
	return nil
}

// DSN returns PostgreSQL connection string
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
	)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseOwnerIDs(value string) ([]int64, error) {
	var ids []int64
	for _, part := range strings.Split(value, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("BOT_OWNER_IDS: invalid user id %q", part)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
