package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	PostgreSQL PostgreSQLConfig
	Server     ServerConfig
	Chat       ChatConfig
	Redis      RedisConfig
	Logging    LoggingConfig
	OpenAI     OpenAIConfig
}

// PostgreSQLConfig holds PostgreSQL database configuration
type PostgreSQLConfig struct {
	DSN                string // full connection string, takes precedence when set
	Host               string
	Port               int
	User               string
	Password           string
	Database           string
	SSLMode            string
	Table              string
	MaxConnections     int
	MaxIdleConnections int
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port           int
	Host           string
	GinMode        string
	AllowedOrigins string
}

// ChatConfig holds chat pipeline configuration
type ChatConfig struct {
	DefaultLimit  int // candidates per tier when the caller sends no limit
	MaxLimit      int // hard cap on the caller-supplied limit
	MaxMessageLen int // messages are clipped before parsing
	PreviewCount  int // candidates handed to the generation call
	PickCount     int // candidates returned to the caller
}

// RedisConfig holds the optional reply cache configuration
type RedisConfig struct {
	Addr       string
	Password   string
	DB         int
	TTLSeconds int
	Enabled    bool
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string
	Format string
}

// OpenAIConfig holds OpenAI-compatible API configuration
type OpenAIConfig struct {
	APIKey    string
	APIBase   string
	ChatModel string
	MaxTokens int
	Timeout   int
	Enabled   bool
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file (optional)
	_ = godotenv.Load()

	cfg := &Config{
		PostgreSQL: PostgreSQLConfig{
			DSN:                getEnv("DATABASE_URL", getEnv("PG_DSN", "")),
			Host:               getEnv("PG_HOST", "localhost"),
			Port:               getEnvAsInt("PG_PORT", 5432),
			User:               getEnv("PG_USER", "postgres"),
			Password:           getEnv("PG_PASSWORD", ""),
			Database:           getEnv("PG_DATABASE", "bevy"),
			SSLMode:            getEnv("PG_SSLMODE", "disable"),
			Table:              getEnv("TABLE_NAME", "recipes"),
			MaxConnections:     getEnvAsInt("PG_MAX_CONNECTIONS", 25),
			MaxIdleConnections: getEnvAsInt("PG_MAX_IDLE_CONNECTIONS", 5),
		},
		Server: ServerConfig{
			Port:           getEnvAsInt("SERVER_PORT", 3000),
			Host:           getEnv("SERVER_HOST", "0.0.0.0"),
			GinMode:        getEnv("GIN_MODE", "release"),
			AllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "*"),
		},
		Chat: ChatConfig{
			DefaultLimit:  getEnvAsInt("CHAT_DEFAULT_LIMIT", 10),
			MaxLimit:      getEnvAsInt("CHAT_MAX_LIMIT", 20),
			MaxMessageLen: getEnvAsInt("CHAT_MAX_MESSAGE_LEN", 400),
			PreviewCount:  getEnvAsInt("CHAT_PREVIEW_COUNT", 8),
			PickCount:     getEnvAsInt("CHAT_PICK_COUNT", 3),
		},
		Redis: RedisConfig{
			Addr:       getEnv("REDIS_ADDR", ""),
			Password:   getEnv("REDIS_PASSWORD", ""),
			DB:         getEnvAsInt("REDIS_DB", 0),
			TTLSeconds: getEnvAsInt("REDIS_REPLY_TTL", 300),
			Enabled:    getEnv("REDIS_ADDR", "") != "",
		},
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		OpenAI: OpenAIConfig{
			APIKey:    getEnv("OPENAI_API_KEY", ""),
			APIBase:   getEnv("OPENAI_API_BASE", "https://api.openai.com/v1"),
			ChatModel: getEnv("OPENAI_MODEL", "gpt-4o-mini"),
			MaxTokens: getEnvAsInt("OPENAI_MAX_TOKENS", 512),
			Timeout:   getEnvAsInt("OPENAI_TIMEOUT", 30),
			Enabled:   getEnv("OPENAI_API_KEY", "") != "",
		},
	}

	return cfg, nil
}

// GetPostgreSQLDSN returns PostgreSQL connection string
func (c *Config) GetPostgreSQLDSN() string {
	if c.PostgreSQL.DSN != "" {
		return c.PostgreSQL.DSN
	}

	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.PostgreSQL.Host,
		c.PostgreSQL.Port,
		c.PostgreSQL.User,
		c.PostgreSQL.Password,
		c.PostgreSQL.Database,
		c.PostgreSQL.SSLMode,
	)
}

// Helper functions

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid integer value for %s, using default %d", key, defaultValue)
		return defaultValue
	}
	return value
}
