package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v2"
)

const (
	DefaultPath = "config/config.yaml"

	defaultAddress         = ":4000"
	defaultRedisAddr       = "localhost:6379"
	defaultAccessTokenTTL  = 15 * time.Minute
	defaultRefreshTokenTTL = 7 * 24 * time.Hour
	defaultEnv             = "development"
)

type Config struct {
	Env    string `yaml:"env"`
	Server struct {
		Address     string   `yaml:"address"`
		CORSOrigins []string `yaml:"cors_origins"`
	} `yaml:"server"`
	Database struct {
		URL string `yaml:"url"`
	} `yaml:"database"`
	Redis struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
	} `yaml:"redis"`
	Auth struct {
		JWTSecret             string `yaml:"jwt_secret"`
		AccessTokenTTLMinutes int    `yaml:"access_token_ttl_minutes"`
		RefreshTokenTTLHours  int    `yaml:"refresh_token_ttl_hours"`
	} `yaml:"auth"`
}

// Load reads the YAML file at path, if present, then applies environment
// overrides and defaults.
func Load(path string) (Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return Config{}, fmt.Errorf("read %s: %w", path, err)
	}

	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}
	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("APP_ENV"); v != "" {
		c.Env = v
	}
	if v := os.Getenv("PORT"); v != "" {
		c.Server.Address = ":" + strings.TrimPrefix(v, ":")
	}
	if v := os.Getenv("CORS_ORIGINS"); v != "" {
		c.Server.CORSOrigins = splitList(v)
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		c.Database.URL = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		c.Redis.Addr = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		c.Redis.Password = v
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		c.Auth.JWTSecret = v
	}

	if v, err := readIntEnv("REDIS_DB"); err != nil {
		return fmt.Errorf("parse REDIS_DB: %w", err)
	} else if v != nil {
		c.Redis.DB = *v
	}
	if v, err := readIntEnv("ACCESS_TOKEN_TTL_MINUTES"); err != nil {
		return fmt.Errorf("parse ACCESS_TOKEN_TTL_MINUTES: %w", err)
	} else if v != nil {
		c.Auth.AccessTokenTTLMinutes = *v
	}
	if v, err := readIntEnv("REFRESH_TOKEN_TTL_HOURS"); err != nil {
		return fmt.Errorf("parse REFRESH_TOKEN_TTL_HOURS: %w", err)
	} else if v != nil {
		c.Auth.RefreshTokenTTLHours = *v
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.Env == "" {
		c.Env = defaultEnv
	}
	if c.Server.Address == "" {
		c.Server.Address = defaultAddress
	}
	if c.Redis.Addr == "" {
		c.Redis.Addr = defaultRedisAddr
	}
}

// Validate reports missing or nonsensical settings.
func (c Config) Validate() error {
	if c.Database.URL == "" {
		return errors.New("database url is required")
	}
	if c.Auth.JWTSecret == "" {
		return errors.New("jwt secret is required")
	}
	if c.Auth.AccessTokenTTLMinutes < 0 || c.Auth.RefreshTokenTTLHours < 0 {
		return errors.New("token ttl must not be negative")
	}
	return nil
}

func (c Config) AccessTokenTTL() time.Duration {
	if c.Auth.AccessTokenTTLMinutes == 0 {
		return defaultAccessTokenTTL
	}
	return time.Duration(c.Auth.AccessTokenTTLMinutes) * time.Minute
}

func (c Config) RefreshTokenTTL() time.Duration {
	if c.Auth.RefreshTokenTTLHours == 0 {
		return defaultRefreshTokenTTL
	}
	return time.Duration(c.Auth.RefreshTokenTTLHours) * time.Hour
}

func readIntEnv(key string) (*int, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
