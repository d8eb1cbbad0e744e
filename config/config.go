package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort    string
	Environment   string
	DemoAPIURL    string
	StorageDriver string
	StoragePath   string
	RedisAddr     string
	PaymentDelay  time.Duration
}

func Load() (*Config, error) {
	// Load .env file if it exists; it is optional
	_ = godotenv.Load()

	delay, err := time.ParseDuration(getEnv("PAYMENT_DELAY", "1500ms"))
	if err != nil {
		return nil, fmt.Errorf("invalid PAYMENT_DELAY: %w", err)
	}

	cfg := &Config{
		ServerPort:    getEnv("PORT", "8080"),
		Environment:   getEnv("ENVIRONMENT", "development"),
		DemoAPIURL:    getEnv("DEMO_API_URL", "https://dummyjson.com"),
		StorageDriver: getEnv("STORAGE_DRIVER", "file"),
		StoragePath:   getEnv("STORAGE_PATH", "./data"),
		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		PaymentDelay:  delay,
	}

	if cfg.StorageDriver != "file" && cfg.StorageDriver != "redis" {
		return nil, fmt.Errorf("unknown STORAGE_DRIVER %q", cfg.StorageDriver)
	}
	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
