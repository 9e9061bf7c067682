// Package config loads server configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// devSecret is only accepted when DEV_MODE is set.
const devSecret = "bithub-dev-secret-change-me"

// Config holds everything the server needs at startup.
type Config struct {
	Port            int
	DBPath          string
	JWTSecret       string
	TokenTTL        time.Duration
	AdminEmails     []string
	RateLimitPerMin int
	RateLimitBurst  int
	LogLevel        string
	// StaticPath is the frontend build directory. Empty disables static serving.
	StaticPath string
	DevMode    bool
}

// Load reads configuration from the environment, applying defaults.
func Load() (Config, error) {
	return load(os.Getenv)
}

func load(getenv func(string) string) (Config, error) {
	get := func(key, fallback string) string {
		if value := getenv(key); value != "" {
			return value
		}
		return fallback
	}

	cfg := Config{
		DBPath:     get("DB_PATH", "./data/bithub.db"),
		LogLevel:   get("LOG_LEVEL", "info"),
		StaticPath: getenv("STATIC_PATH"),
		DevMode:    get("DEV_MODE", "") != "",
	}

	var err error
	if cfg.Port, err = strconv.Atoi(get("PORT", "8080")); err != nil {
		return Config{}, fmt.Errorf("invalid PORT: %w", err)
	}
	if cfg.TokenTTL, err = time.ParseDuration(get("TOKEN_TTL", "24h")); err != nil {
		return Config{}, fmt.Errorf("invalid TOKEN_TTL: %w", err)
	}
	if cfg.RateLimitPerMin, err = strconv.Atoi(get("RATE_LIMIT_PER_MIN", "60")); err != nil {
		return Config{}, fmt.Errorf("invalid RATE_LIMIT_PER_MIN: %w", err)
	}
	if cfg.RateLimitBurst, err = strconv.Atoi(get("RATE_LIMIT_BURST", "10")); err != nil {
		return Config{}, fmt.Errorf("invalid RATE_LIMIT_BURST: %w", err)
	}

	for _, email := range strings.Split(getenv("ADMIN_EMAILS"), ",") {
		if email = strings.TrimSpace(email); email != "" {
			cfg.AdminEmails = append(cfg.AdminEmails, email)
		}
	}

	cfg.JWTSecret = getenv("JWT_SECRET")
	if cfg.JWTSecret == "" {
		if !cfg.DevMode {
			return Config{}, errors.New("JWT_SECRET required (or set DEV_MODE=1)")
		}
		cfg.JWTSecret = devSecret
	}

	return cfg, nil
}
