package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config aggregates all runtime settings required by the client.
type Config struct {
	AppName     string
	Environment string
	Identity    IdentityConfig
	Callback    CallbackConfig
	OAuth       OAuthConfig
	Storage     StorageConfig
	Session     SessionConfig
	Context     ContextConfig
	Logger      LoggerConfig
}

type IdentityConfig struct {
	BaseURL string
	Timeout time.Duration
}

// CallbackConfig describes the loopback listener that serves the OAuth
// redirect target and the local UI endpoints.
type CallbackConfig struct {
	Host         string
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

type OAuthConfig struct {
	Google   ProviderConfig
	Facebook ProviderConfig
}

type ProviderConfig struct {
	ClientID     string
	ClientSecret string
}

type StorageConfig struct {
	Backend    string
	BoltPath   string
	BoltBucket string
	Redis      RedisConfig
	RecordTTL  time.Duration
}

type RedisConfig struct {
	URL      string
	Password string
	DB       int
}

type SessionConfig struct {
	ExpiryCheckInterval time.Duration
}

type ContextConfig struct {
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
}

type LoggerConfig struct {
	Level    string
	Encoding string
}

// Load reads configuration from environment variables (optionally .env)
// and applies sane defaults so the client can boot in any environment.
func Load() (*Config, error) {
	_ = godotenv.Load(".env")

	cfg := &Config{
		AppName:     getString("APP_NAME", "portfolio-client"),
		Environment: getString("APP_ENV", "development"),
		Identity: IdentityConfig{
			BaseURL: getString("IDENTITY_URL", "http://localhost:8080/api/v1"),
			Timeout: getDuration("IDENTITY_TIMEOUT", 10*time.Second),
		},
		Callback: CallbackConfig{
			Host:         getString("CALLBACK_HOST", "127.0.0.1"),
			Port:         getString("CALLBACK_PORT", "7842"),
			ReadTimeout:  getDuration("CALLBACK_READ_TIMEOUT", 10*time.Second),
			WriteTimeout: getDuration("CALLBACK_WRITE_TIMEOUT", 10*time.Second),
			IdleTimeout:  getDuration("CALLBACK_IDLE_TIMEOUT", 120*time.Second),
		},
		OAuth: OAuthConfig{
			Google: ProviderConfig{
				ClientID:     os.Getenv("GOOGLE_CLIENT_ID"),
				ClientSecret: os.Getenv("GOOGLE_CLIENT_SECRET"),
			},
			Facebook: ProviderConfig{
				ClientID:     os.Getenv("FACEBOOK_CLIENT_ID"),
				ClientSecret: os.Getenv("FACEBOOK_CLIENT_SECRET"),
			},
		},
		Storage: StorageConfig{
			Backend:    getString("STORAGE_BACKEND", "bolt"),
			BoltPath:   getString("BOLTDB_PATH", "./data/session.db"),
			BoltBucket: getString("BOLTDB_BUCKET", "session"),
			Redis: RedisConfig{
				URL:      getString("REDIS_URL", "redis://localhost:6379"),
				Password: os.Getenv("REDIS_PASSWORD"),
				DB:       getInt("REDIS_DB", 0),
			},
			RecordTTL: getDuration("SESSION_RECORD_TTL", 24*time.Hour),
		},
		Session: SessionConfig{
			ExpiryCheckInterval: getDuration("SESSION_EXPIRY_CHECK_INTERVAL", 30*time.Second),
		},
		Context: ContextConfig{
			RequestTimeout:  getDuration("REQUEST_TIMEOUT_SECONDS", 5*time.Second),
			ShutdownTimeout: getDuration("SHUTDOWN_TIMEOUT_SECONDS", 15*time.Second),
		},
		Logger: LoggerConfig{
			Level:    getString("LOG_LEVEL", "info"),
			Encoding: getString("LOG_ENCODING", "json"),
		},
	}

	return cfg, nil
}

// MustLoad panics if configuration cannot be loaded.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}

func getString(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			return parsed
		}
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if parsed, err := time.ParseDuration(val); err == nil {
			return parsed
		}
		if seconds, err := strconv.Atoi(val); err == nil {
			return time.Duration(seconds) * time.Second
		}
	}
	return fallback
}

// Address returns the loopback listen address for the callback server.
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%s", c.Callback.Host, c.Callback.Port)
}

// RedirectURL returns the registered redirect target for the given provider.
func (c *Config) RedirectURL(provider string) string {
	return fmt.Sprintf("http://%s/oauth/%s/callback", c.Address(), provider)
}
