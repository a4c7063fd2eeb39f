package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	defaultHTTPAddr          = ":8080"
	defaultDatabaseURL       = "carrental.db"
	defaultJWTSecret         = "change-me-jwt-secret"
	defaultJWTTTL            = "12h"
	defaultPendingPaymentTTL = "24h"
	defaultLogLevel          = "info"
	defaultLogFormat         = "text"
)

type Config struct {
	AppEnv             string        `yaml:"app_env"`
	HTTPAddr           string        `yaml:"http_addr"`
	DatabaseURL        string        `yaml:"database_url"`
	JWTSecret          string        `yaml:"jwt_secret"`
	JWTTTL             time.Duration `yaml:"jwt_ttl"`
	CORSAllowedOrigins []string      `yaml:"cors_allowed_origins"`
	LogLevel           string        `yaml:"log_level"`
	LogFormat          string        `yaml:"log_format"`
	// DefaultStaffID is assigned to rentals created through the public booking flow. Zero leaves them unassigned.
	DefaultStaffID    int64         `yaml:"default_staff_id"`
	PendingPaymentTTL time.Duration `yaml:"pending_payment_ttl"`
}

// Load builds the config from, in order of precedence: environment, the YAML
// file named by CONFIG_FILE, built-in defaults. A .env file in the working
// directory is loaded into the environment first when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg, err := defaults()
	if err != nil {
		return nil, err
	}

	if path := strings.TrimSpace(os.Getenv("CONFIG_FILE")); path != "" {
		if err := cfg.mergeFile(path); err != nil {
			return nil, err
		}
	}

	if err := cfg.overrideWithEnv(); err != nil {
		return nil, err
	}

	if err := validateConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func defaults() (*Config, error) {
	jwtTTL, err := time.ParseDuration(defaultJWTTTL)
	if err != nil {
		return nil, err
	}
	pendingTTL, err := time.ParseDuration(defaultPendingPaymentTTL)
	if err != nil {
		return nil, err
	}
	return &Config{
		AppEnv:            "dev",
		HTTPAddr:          defaultHTTPAddr,
		DatabaseURL:       defaultDatabaseURL,
		JWTSecret:         defaultJWTSecret,
		JWTTTL:            jwtTTL,
		LogLevel:          defaultLogLevel,
		LogFormat:         defaultLogFormat,
		PendingPaymentTTL: pendingTTL,
		CORSAllowedOrigins: []string{
			"http://localhost:3000",
			"http://localhost:5173",
			"http://127.0.0.1:3000",
			"http://127.0.0.1:5173",
		},
	}, nil
}

// fileConfig mirrors Config with durations as strings so YAML can say "12h".
type fileConfig struct {
	AppEnv             string   `yaml:"app_env"`
	HTTPAddr           string   `yaml:"http_addr"`
	DatabaseURL        string   `yaml:"database_url"`
	JWTSecret          string   `yaml:"jwt_secret"`
	JWTTTL             string   `yaml:"jwt_ttl"`
	CORSAllowedOrigins []string `yaml:"cors_allowed_origins"`
	LogLevel           string   `yaml:"log_level"`
	LogFormat          string   `yaml:"log_format"`
	DefaultStaffID     int64    `yaml:"default_staff_id"`
	PendingPaymentTTL  string   `yaml:"pending_payment_ttl"`
}

func (c *Config) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	return c.mergeYAML(data)
}

func (c *Config) mergeYAML(data []byte) error {
	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	setString(&c.AppEnv, fc.AppEnv)
	setString(&c.HTTPAddr, fc.HTTPAddr)
	setString(&c.DatabaseURL, fc.DatabaseURL)
	setString(&c.JWTSecret, fc.JWTSecret)
	setString(&c.LogLevel, fc.LogLevel)
	setString(&c.LogFormat, fc.LogFormat)
	if len(fc.CORSAllowedOrigins) > 0 {
		c.CORSAllowedOrigins = fc.CORSAllowedOrigins
	}
	if fc.DefaultStaffID > 0 {
		c.DefaultStaffID = fc.DefaultStaffID
	}

	var err error
	if fc.JWTTTL != "" {
		if c.JWTTTL, err = parseDuration("jwt_ttl", fc.JWTTTL); err != nil {
			return err
		}
	}
	if fc.PendingPaymentTTL != "" {
		if c.PendingPaymentTTL, err = parseDuration("pending_payment_ttl", fc.PendingPaymentTTL); err != nil {
			return err
		}
	}
	return nil
}

func (c *Config) overrideWithEnv() error {
	appEnv := strings.TrimSpace(os.Getenv("APP_ENV"))
	if appEnv == "" {
		appEnv = strings.TrimSpace(os.Getenv("ENV"))
	}
	setString(&c.AppEnv, appEnv)
	c.AppEnv = strings.ToLower(c.AppEnv)

	setString(&c.HTTPAddr, os.Getenv("HTTP_ADDR"))
	if port := strings.TrimSpace(os.Getenv("PORT")); port != "" && os.Getenv("HTTP_ADDR") == "" {
		c.HTTPAddr = ":" + port
	}
	setString(&c.DatabaseURL, os.Getenv("DATABASE_URL"))
	setString(&c.JWTSecret, os.Getenv("JWT_SECRET"))
	setString(&c.LogLevel, os.Getenv("LOG_LEVEL"))
	setString(&c.LogFormat, os.Getenv("LOG_FORMAT"))

	if extra := os.Getenv("CORS_ALLOWED_ORIGINS"); extra != "" {
		origins := make([]string, 0)
		for _, o := range strings.Split(extra, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
		c.CORSAllowedOrigins = origins
	}

	if v := strings.TrimSpace(os.Getenv("DEFAULT_STAFF_ID")); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid DEFAULT_STAFF_ID value %q: %w", v, err)
		}
		c.DefaultStaffID = id
	}

	var err error
	if v := os.Getenv("JWT_TTL"); v != "" {
		if c.JWTTTL, err = parseDuration("JWT_TTL", v); err != nil {
			return err
		}
	}
	if v := os.Getenv("PENDING_PAYMENT_TTL"); v != "" {
		if c.PendingPaymentTTL, err = parseDuration("PENDING_PAYMENT_TTL", v); err != nil {
			return err
		}
	}
	return nil
}

func validateConfig(cfg *Config) error {
	if cfg.JWTTTL <= 0 {
		return fmt.Errorf("JWT_TTL must be > 0")
	}
	if cfg.PendingPaymentTTL <= 0 {
		return fmt.Errorf("PENDING_PAYMENT_TTL must be > 0")
	}
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		return fmt.Errorf("DATABASE_URL must not be empty")
	}
	if len(cfg.CORSAllowedOrigins) == 0 {
		return fmt.Errorf("CORS_ALLOWED_ORIGINS must list at least one origin")
	}
	for _, o := range cfg.CORSAllowedOrigins {
		if !strings.HasPrefix(o, "http://") && !strings.HasPrefix(o, "https://") {
			return fmt.Errorf("CORS origin %q must start with http:// or https://", o)
		}
	}
	if cfg.DefaultStaffID < 0 {
		return fmt.Errorf("DEFAULT_STAFF_ID must be >= 0")
	}

	if IsProdLike(cfg.AppEnv) {
		if isEmptyOrDefault(cfg.JWTSecret, defaultJWTSecret) {
			return fmt.Errorf("in prod/release JWT_SECRET must be set and not default")
		}
		if len(cfg.JWTSecret) < 32 {
			return fmt.Errorf("in prod/release JWT_SECRET must be at least 32 characters")
		}
	}

	return nil
}

func IsProdLike(env string) bool {
	env = strings.ToLower(strings.TrimSpace(env))
	return env == "prod" || env == "production" || env == "release"
}

func isEmptyOrDefault(v, def string) bool {
	trimmed := strings.TrimSpace(v)
	return trimmed == "" || trimmed == def
}

func parseDuration(name, value string) (time.Duration, error) {
	value = strings.TrimSpace(value)
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	return d, nil
}

func setString(dst *string, v string) {
	if v = strings.TrimSpace(v); v != "" {
		*dst = v
	}
}
