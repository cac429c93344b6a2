package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

var validEnvs = map[string]bool{
	"local": true,
	"alpha": true,
	"beta":  true,
	"prod":  true,
}

type Config struct {
	ServerPort     string
	AppEnv         string
	AuthDevMode    bool
	LogLevel       string
	MigrateOnStart bool
	DB             DBConfig
	Cognito        CognitoConfig
	Redis          RedisConfig
	Focus          FocusConfig
}

func (c Config) ParseLogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func (c Config) Validate() error {
	if _, err := strconv.Atoi(c.ServerPort); err != nil {
		return fmt.Errorf("invalid SERVER_PORT %q: %w", c.ServerPort, err)
	}
	if !validEnvs[c.AppEnv] {
		return fmt.Errorf("invalid APP_ENV %q: must be one of local, alpha, beta, prod", c.AppEnv)
	}
	if c.AuthDevMode && c.AppEnv != "local" {
		return fmt.Errorf("AUTH_DEV_MODE must not be enabled in %s environment", c.AppEnv)
	}
	if !c.AuthDevMode {
		if c.Cognito.UserPoolID == "" {
			return fmt.Errorf("COGNITO_USER_POOL_ID is required when AUTH_DEV_MODE is disabled")
		}
		if c.Cognito.AppClientID == "" {
			return fmt.Errorf("COGNITO_APP_CLIENT_ID is required when AUTH_DEV_MODE is disabled")
		}
	}
	if _, err := c.Focus.ParseIdleTimeout(); err != nil {
		return err
	}
	return nil
}

type DBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

func (d DBConfig) DSN() string {
	u := &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(d.User, d.Password),
		Host:     net.JoinHostPort(d.Host, d.Port),
		Path:     d.Name,
		RawQuery: fmt.Sprintf("sslmode=%s", url.QueryEscape(d.SSLMode)),
	}
	return u.String()
}

type CognitoConfig struct {
	Region      string
	UserPoolID  string
	AppClientID string
}

// RedisConfig is optional; an empty URL disables the stats cache.
type RedisConfig struct {
	URL string
}

func (r RedisConfig) Enabled() bool {
	return r.URL != ""
}

type FocusConfig struct {
	IdleTimeout   string
	SpeechEnabled bool
}

func (f FocusConfig) ParseIdleTimeout() (time.Duration, error) {
	d, err := time.ParseDuration(f.IdleTimeout)
	if err != nil {
		return 0, fmt.Errorf("invalid FOCUS_IDLE_TIMEOUT %q: %w", f.IdleTimeout, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("invalid FOCUS_IDLE_TIMEOUT %q: must be positive", f.IdleTimeout)
	}
	return d, nil
}

// LoadDotEnv reads KEY=VALUE pairs from path into the process environment
// without overriding variables that are already set. A missing file is not
// an error.
func LoadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

func Load() Config {
	return Config{
		ServerPort:     envOrDefault("SERVER_PORT", "8080"),
		AppEnv:         envOrDefault("APP_ENV", "local"),
		AuthDevMode:    envBool("AUTH_DEV_MODE", false),
		LogLevel:       envOrDefault("LOG_LEVEL", "info"),
		MigrateOnStart: envBool("MIGRATE_ON_START", true),
		DB: DBConfig{
			Host:     envOrDefault("DB_HOST", "localhost"),
			Port:     envOrDefault("DB_PORT", "5432"),
			User:     envOrDefault("DB_USER", "dailytasker"),
			Password: envOrDefault("DB_PASSWORD", "dailytasker"),
			Name:     envOrDefault("DB_NAME", "dailytasker"),
			SSLMode:  envOrDefault("DB_SSLMODE", "disable"),
		},
		Cognito: CognitoConfig{
			Region:      envOrDefault("COGNITO_REGION", "ap-northeast-1"),
			UserPoolID:  os.Getenv("COGNITO_USER_POOL_ID"),
			AppClientID: os.Getenv("COGNITO_APP_CLIENT_ID"),
		},
		Redis: RedisConfig{
			URL: os.Getenv("REDIS_URL"),
		},
		Focus: FocusConfig{
			IdleTimeout:   envOrDefault("FOCUS_IDLE_TIMEOUT", "1h"),
			SpeechEnabled: envBool("SPEECH_ENABLED", false),
		},
	}
}

func envOrDefault(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func envBool(key string, defaultVal bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	return strings.EqualFold(v, "true")
}
