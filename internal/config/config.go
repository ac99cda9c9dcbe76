package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// PlaceholderAPIKey is the value shipped in .env.example
const PlaceholderAPIKey = "your_api_key_here"

// Session store backends
const (
	SessionStoreMemory = "memory"
	SessionStoreRedis  = "redis"
)

type Config struct {
	Port          string
	Environment   string
	LogLevel      string
	PublicBaseURL string
	StreamPay     StreamPayConfig
	Session       SessionConfig
}

type StreamPayConfig struct {
	APIURL    string
	APIKey    string
	SecretKey string
	Timeout   time.Duration
	MockDelay time.Duration
}

// MockMode reports whether the gateway must be replaced by the demo client
func (c StreamPayConfig) MockMode() bool {
	return c.APIKey == "" || c.SecretKey == "" || c.APIKey == PlaceholderAPIKey
}

type SessionConfig struct {
	Store         string
	TTL           time.Duration
	RedisAddr     string
	RedisPassword string
	RedisDB       int
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigType("env")
	v.SetConfigName(".env")
	v.AddConfigPath(".")
	v.AddConfigPath("..")
	v.AddConfigPath("../..")

	// Read from environment variables
	v.AutomaticEnv()

	// .env is optional
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	timeout, err := getDuration(v, "STREAM_PAY_TIMEOUT", 30*time.Second)
	if err != nil {
		return nil, err
	}
	mockDelay, err := getDuration(v, "STREAM_PAY_MOCK_DELAY", 1500*time.Millisecond)
	if err != nil {
		return nil, err
	}
	sessionTTL, err := getDuration(v, "SESSION_TTL", 30*time.Minute)
	if err != nil {
		return nil, err
	}
	redisDB, err := strconv.Atoi(getEnvOrViper(v, "REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("REDIS_DB must be an integer: %w", err)
	}

	cfg := &Config{
		Port:          getEnvOrViper(v, "PORT", "8080"),
		Environment:   getEnvOrViper(v, "ENVIRONMENT", "development"),
		LogLevel:      getEnvOrViper(v, "LOG_LEVEL", "info"),
		PublicBaseURL: strings.TrimSuffix(getEnvOrViper(v, "PUBLIC_BASE_URL", ""), "/"),
		StreamPay: StreamPayConfig{
			APIURL:    strings.TrimSuffix(getEnvOrViper(v, "STREAM_PAY_API_URL", "https://stream-app-service.streampay.sa/api/v2"), "/"),
			APIKey:    getEnvOrViper(v, "STREAM_PAY_API_KEY", ""),
			SecretKey: getEnvOrViper(v, "STREAM_PAY_SECRET_KEY", ""),
			Timeout:   timeout,
			MockDelay: mockDelay,
		},
		Session: SessionConfig{
			Store:         strings.ToLower(getEnvOrViper(v, "SESSION_STORE", SessionStoreMemory)),
			TTL:           sessionTTL,
			RedisAddr:     getEnvOrViper(v, "REDIS_ADDR", "localhost:6379"),
			RedisPassword: getEnvOrViper(v, "REDIS_PASSWORD", ""),
			RedisDB:       redisDB,
		},
	}

	// Validate
	if cfg.StreamPay.APIURL == "" {
		return nil, fmt.Errorf("STREAM_PAY_API_URL must not be empty")
	}
	if cfg.Session.Store != SessionStoreMemory && cfg.Session.Store != SessionStoreRedis {
		return nil, fmt.Errorf("SESSION_STORE must be memory or redis, got %q", cfg.Session.Store)
	}

	return cfg, nil
}

func getEnvOrViper(v *viper.Viper, key, defaultValue string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return defaultValue
}

func getDuration(v *viper.Viper, key string, defaultValue time.Duration) (time.Duration, error) {
	raw := getEnvOrViper(v, key, "")
	if raw == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be a duration: %w", key, err)
	}
	return d, nil
}
