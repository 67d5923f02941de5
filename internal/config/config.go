package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Server ServerConfig `json:"server"`

	// Database Configuration
	Database DatabaseConfig `json:"database"`

	// MongoDB Configuration (media storage)
	MongoDB MongoDBConfig `json:"mongodb"`

	// Redis Configuration (presence registry)
	Redis RedisConfig `json:"redis"`

	// Push pipeline Configuration
	Push PushConfig `json:"push"`

	// Presence Configuration
	Presence PresenceConfig `json:"presence"`
}

// ServerConfig contains server-related configuration
type ServerConfig struct {
	ChatServicePort  string `json:"chat_service_port"`
	MediaServicePort string `json:"media_service_port"`
	MediaBaseURL     string `json:"media_base_url"`
	ReadTimeout      int    `json:"read_timeout"`
	WriteTimeout     int    `json:"write_timeout"`
	Environment      string `json:"environment"` // development, staging, production
}

// DatabaseConfig contains MySQL connection configuration
type DatabaseConfig struct {
	Host         string `json:"host"`
	Port         string `json:"port"`
	Username     string `json:"username"`
	Password     string `json:"password"`
	DatabaseName string `json:"database_name"`
	MaxOpenConns int    `json:"max_open_conns"`
	MaxIdleConns int    `json:"max_idle_conns"`
}

// MongoDBConfig contains GridFS media storage configuration
type MongoDBConfig struct {
	Host     string `json:"host"`
	Port     string `json:"port"`
	Username string `json:"username"`
	Password string `json:"password"`
	Database string `json:"database"`
}

// RedisConfig contains the presence store configuration
type RedisConfig struct {
	Host     string `json:"host"`
	Port     string `json:"port"`
	Password string `json:"password"`
	DB       int    `json:"db"`
}

// PushConfig contains async push pipeline configuration
type PushConfig struct {
	Workers           int `json:"workers"`            // Number of worker goroutines
	ChannelBufferSize int `json:"channel_buffer_size"`
}

// PresenceConfig contains presence key lifetime configuration
type PresenceConfig struct {
	TTLSeconds int `json:"ttl_seconds"`
}

// LoadConfig reads .env when present and falls back to environment
// variables with development defaults.
func LoadConfig() *Config {
	_ = godotenv.Load()

	return &Config{
		Server: ServerConfig{
			ChatServicePort:  getEnvOrDefault("CHAT_SERVICE_PORT", "7003"),
			MediaServicePort: getEnvOrDefault("MEDIA_SERVICE_PORT", "8080"),
			MediaBaseURL:     getEnvOrDefault("MEDIA_BASE_URL", "http://localhost:8080/media/"),
			ReadTimeout:      getEnvIntOrDefault("SERVER_READ_TIMEOUT", 15),
			WriteTimeout:     getEnvIntOrDefault("SERVER_WRITE_TIMEOUT", 15),
			Environment:      getEnvOrDefault("ENVIRONMENT", "development"),
		},
		Database: DatabaseConfig{
			Host:         getEnvOrDefault("DB_HOST", "localhost"),
			Port:         getEnvOrDefault("DB_PORT", "3306"),
			Username:     getEnvOrDefault("DB_USER", "chatapp"),
			Password:     getEnvOrDefault("DB_PASSWORD", "chatapp123"),
			DatabaseName: getEnvOrDefault("DB_NAME", "chatapp"),
			MaxOpenConns: getEnvIntOrDefault("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns: getEnvIntOrDefault("DB_MAX_IDLE_CONNS", 5),
		},
		MongoDB: MongoDBConfig{
			Host:     getEnvOrDefault("MONGO_HOST", "localhost"),
			Port:     getEnvOrDefault("MONGO_PORT", "27017"),
			Username: getEnvOrDefault("MONGO_USERNAME", "admin"),
			Password: getEnvOrDefault("MONGO_PASSWORD", "admin123"),
			Database: getEnvOrDefault("MONGO_DATABASE", "chatapp"),
		},
		Redis: RedisConfig{
			Host:     getEnvOrDefault("REDIS_HOST", "localhost"),
			Port:     getEnvOrDefault("REDIS_PORT", "6379"),
			Password: getEnvOrDefault("REDIS_PASSWORD", ""),
			DB:       getEnvIntOrDefault("REDIS_DB", 0),
		},
		Push: PushConfig{
			Workers:           getEnvIntOrDefault("PUSH_WORKERS", 5),
			ChannelBufferSize: getEnvIntOrDefault("PUSH_CHANNEL_BUFFER", 1000),
		},
		Presence: PresenceConfig{
			TTLSeconds: getEnvIntOrDefault("PRESENCE_TTL_SECONDS", 60),
		},
	}
}

// DSN builds the MySQL connection string.
func (cfg *Config) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		cfg.Database.Username,
		cfg.Database.Password,
		cfg.Database.Host,
		cfg.Database.Port,
		cfg.Database.DatabaseName,
	)
}

// GetMongoURI builds the MongoDB connection string.
func (cfg *Config) GetMongoURI() string {
	return fmt.Sprintf("mongodb://%s:%s@%s:%s",
		cfg.MongoDB.Username,
		cfg.MongoDB.Password,
		cfg.MongoDB.Host,
		cfg.MongoDB.Port,
	)
}

// RedisAddr builds the host:port address for the presence store.
func (cfg *Config) RedisAddr() string {
	return fmt.Sprintf("%s:%s", cfg.Redis.Host, cfg.Redis.Port)
}

func getEnvOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvIntOrDefault(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return fallback
}
