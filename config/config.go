// Package config loads the checkout core's settings from the environment,
// with an optional .env file for local development.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	APIBaseURL string
	APITimeout time.Duration

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	NATSURL string

	ShippingDebounce time.Duration
}

// Load reads the environment. A missing .env file is not an error; explicit
// environment variables always win over file values.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		APIBaseURL:       getEnv("MARKETPLACE_API_URL", "http://localhost:8080/api"),
		APITimeout:       getDuration("MARKETPLACE_API_TIMEOUT", 10*time.Second),
		RedisAddr:        getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:    getEnv("REDIS_PASSWORD", ""),
		RedisDB:          getInt("REDIS_DB", 0),
		NATSURL:          getEnv("NATS_URL", ""),
		ShippingDebounce: getDuration("SHIPPING_DEBOUNCE", 800*time.Millisecond),
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
