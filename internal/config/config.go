package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Env      string
	Services ServicesConfig
	Client   ClientConfig
	Sync     SyncConfig
	Storage  StorageConfig
	Sentry   SentryConfig
}

type ServicesConfig struct {
	UserServiceURL         string
	NotificationServiceURL string
	PushServiceURL         string
}

type ClientConfig struct {
	// RequestTimeout of 0 disables client-side timeouts; a hung request
	// then blocks only its initiating view.
	RequestTimeout time.Duration
}

type SyncConfig struct {
	PollInterval time.Duration
	PageSize     int
}

type StorageConfig struct {
	StatePath string
}

type SentryConfig struct {
	DSN string
}

func Load() *Config {
	return &Config{
		Env: getEnv("CONSOLE_ENV", "dev"),
		Services: ServicesConfig{
			UserServiceURL:         getEnv("USER_SERVICE_URL", "http://localhost:8081"),
			NotificationServiceURL: getEnv("NOTIFICATION_SERVICE_URL", "http://localhost:9000"),
			PushServiceURL:         getEnv("PUSH_SERVICE_URL", "http://localhost:8081"),
		},
		Client: ClientConfig{
			RequestTimeout: time.Duration(getEnvAsInt("REQUEST_TIMEOUT_SECONDS", 0)) * time.Second,
		},
		Sync: SyncConfig{
			PollInterval: time.Duration(getEnvAsInt("POLL_INTERVAL_SECONDS", 10)) * time.Second,
			PageSize:     getEnvAsInt("NOTIFICATION_PAGE_SIZE", 20),
		},
		Storage: StorageConfig{
			StatePath: getEnv("STATE_FILE", "console-state.json"),
		},
		Sentry: SentryConfig{
			DSN: getEnv("SENTRY_DSN", ""),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
