package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Auth     AuthConfig
	Logger   LoggerConfig
}

type LoggerConfig struct {
	Level string
}

type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	StaticDir    string
}

type DatabaseConfig struct {
	Path         string
	MaxOpenConns int
	BusyTimeout  time.Duration
}

type AuthConfig struct {
	// TokenSecret signs session tokens. When empty a random secret is
	// generated at startup and tokens do not survive a restart.
	TokenSecret string
	TokenTTL    time.Duration
}

func Load() (*Config, error) {
	// Try to load .env file from current directory or project root
	envFiles := []string{".env", "../.env", "../../.env"}
	for _, envFile := range envFiles {
		if err := godotenv.Load(envFile); err == nil {
			break
		}
	}

	readTimeout, err := getEnvInt("SERVER_READ_TIMEOUT", 30)
	if err != nil {
		return nil, err
	}
	writeTimeout, err := getEnvInt("SERVER_WRITE_TIMEOUT", 30)
	if err != nil {
		return nil, err
	}
	maxOpenConns, err := getEnvInt("DB_MAX_OPEN_CONNS", 8)
	if err != nil {
		return nil, err
	}
	busyTimeout, err := getEnvInt("DB_BUSY_TIMEOUT_MS", 5000)
	if err != nil {
		return nil, err
	}
	tokenTTL, err := getEnvInt("AUTH_TOKEN_TTL_HOURS", 24)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:         getEnv("SERVER_PORT", "8000"),
			ReadTimeout:  time.Duration(readTimeout) * time.Second,
			WriteTimeout: time.Duration(writeTimeout) * time.Second,
			StaticDir:    getEnv("STATIC_DIR", "../frontend"),
		},
		Database: DatabaseConfig{
			Path:         getEnv("DB_PATH", "./data/finance.db"),
			MaxOpenConns: maxOpenConns,
			BusyTimeout:  time.Duration(busyTimeout) * time.Millisecond,
		},
		Auth: AuthConfig{
			TokenSecret: os.Getenv("AUTH_TOKEN_SECRET"),
			TokenTTL:    time.Duration(tokenTTL) * time.Hour,
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var problems []string

	if port, err := strconv.Atoi(c.Server.Port); err != nil {
		problems = append(problems, fmt.Sprintf("invalid port '%s': must be a number", c.Server.Port))
	} else if port < 1 || port > 65535 {
		problems = append(problems, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}
	if c.Server.ReadTimeout <= 0 || c.Server.WriteTimeout <= 0 {
		problems = append(problems, "server timeouts must be positive")
	}
	if strings.TrimSpace(c.Database.Path) == "" {
		problems = append(problems, "database path cannot be empty")
	}
	if c.Database.MaxOpenConns < 1 {
		problems = append(problems, fmt.Sprintf("invalid max open connections %d: must be at least 1", c.Database.MaxOpenConns))
	}
	if c.Database.BusyTimeout < 0 {
		problems = append(problems, "database busy timeout cannot be negative")
	}
	if c.Auth.TokenTTL <= 0 {
		problems = append(problems, "token lifetime must be positive")
	}
	if c.Auth.TokenSecret != "" && len(c.Auth.TokenSecret) < 16 {
		problems = append(problems, "AUTH_TOKEN_SECRET must be at least 16 characters")
	}

	if len(problems) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(problems, "\n- "))
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	i, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: must be an integer", key, value)
	}
	return i, nil
}
