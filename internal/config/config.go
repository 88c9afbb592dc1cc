package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

var (
	dbUserEmptyError        = errors.New("DB User is Empty")
	dbNameEmptyError        = errors.New("DB Name is Empty")
	sessionSecretEmptyError = errors.New("Session secret is Empty")
)

type AppConfig struct {
	Env  string
	Port string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	Password string
	User     string
	URL      string
}

type SessionConfig struct {
	Secret string
	TTL    time.Duration
}

type OpenAIConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

type OAuthConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
}

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Session  SessionConfig
	OpenAI   OpenAIConfig
	OAuth    OAuthConfig
}

func LoadConfig() (*Config, error) {
	// .env опционален, в проде конфигурация приходит из окружения
	_ = godotenv.Load()

	c := &Config{
		App: AppConfig{
			Env:  getEnv("APP_ENV", "dev"),
			Port: getEnv("APP_PORT", "8080"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DATABASE_HOST", "localhost"),
			Port:     getEnv("DATABASE_PORT", "5432"),
			Name:     getEnv("DATABASE_NAME", "postgres"),
			Password: getEnv("DATABASE_PASSWORD", "postgres"),
			User:     getEnv("DATABASE_USER", "postgres"),
			URL:      os.Getenv("DATABASE_URL"),
		},
		Session: SessionConfig{
			Secret: os.Getenv("SESSION_SECRET"),
			TTL:    getEnvDuration("SESSION_TTL_HOURS", 24) * time.Hour,
		},
		OpenAI: OpenAIConfig{
			APIKey:  os.Getenv("OPENAI_API_KEY"),
			Model:   getEnv("OPENAI_MODEL", "gpt-3.5-turbo"),
			BaseURL: getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
		},
		OAuth: OAuthConfig{
			ClientID:     os.Getenv("OAUTH_GOOGLE_CLIENT_ID"),
			ClientSecret: os.Getenv("OAUTH_GOOGLE_CLIENT_SECRET"),
			RedirectURL:  os.Getenv("OAUTH_GOOGLE_REDIRECT_URL"),
		},
	}

	if c.Session.Secret == "" {
		return nil, sessionSecretEmptyError
	}

	err := makeDbUrl(c)
	if err != nil {
		return nil, err
	}

	return c, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvDuration(key string, fallback int) time.Duration {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return time.Duration(n)
		}
	}
	return time.Duration(fallback)
}

func makeDbUrl(cfg *Config) error {
	if cfg.Database.URL == "" {
		if cfg.Database.User == "" {
			return dbUserEmptyError
		}
		if cfg.Database.Name == "" {
			return dbNameEmptyError
		}
		cfg.Database.URL = fmt.Sprintf("postgresql://%s:%s@%s:%s/%s?sslmode=disable",
			cfg.Database.User,
			cfg.Database.Password,
			cfg.Database.Host,
			cfg.Database.Port,
			cfg.Database.Name,
		)
	}
	return nil
}
