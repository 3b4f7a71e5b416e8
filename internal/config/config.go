// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
)

// Config holds the application configuration loaded from environment variables.
type Config struct {
	DBPath     string `env:"WEDSITE_DB_PATH" envDefault:"./data/wedsite.db"`
	ServerHost string `env:"WEDSITE_SERVER_HOST" envDefault:"localhost"`
	ServerPort int    `env:"WEDSITE_SERVER_PORT" envDefault:"8080"`
	Env        string `env:"WEDSITE_ENV" envDefault:"development"`
	LogLevel   string `env:"WEDSITE_LOG_LEVEL" envDefault:"info"`
	SiteURL    string `env:"WEDSITE_SITE_URL" envDefault:"http://localhost:8080"`
	UploadsDir string `env:"WEDSITE_UPLOADS_DIR" envDefault:"./uploads"`

	// Image delivery configuration
	StorageBaseURL string `env:"WEDSITE_STORAGE_BASE_URL" envDefault:"http://localhost:8080/uploads"` // Object storage public root
	ImageProxyURL  string `env:"WEDSITE_IMAGE_PROXY_URL"`                                             // Resizing proxy template with {url}, {width}, {height}

	// Cache configuration
	RedisURL     string `env:"WEDSITE_REDIS_URL"`                          // Optional Redis URL for distributed caching
	CachePrefix  string `env:"WEDSITE_CACHE_PREFIX" envDefault:"wedsite:"` // Redis key prefix
	CacheTTL     int    `env:"WEDSITE_CACHE_TTL" envDefault:"3600"`        // Default cache TTL in seconds
	CacheMaxSize int    `env:"WEDSITE_CACHE_MAX_SIZE" envDefault:"10000"`  // Max memory cache entries

	// Seeding configuration
	DoSeed bool `env:"WEDSITE_DO_SEED" envDefault:"false"` // Enable demo content seeding
}

// IsDevelopment returns true if the application is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// ServerAddr returns the full server address in host:port format.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// UseRedisCache returns true if Redis caching is configured.
func (c Config) UseRedisCache() bool {
	return c.RedisURL != ""
}

// Load parses environment variables and returns a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if cfg.ServerPort < 1 || cfg.ServerPort > 65535 {
		return nil, fmt.Errorf("WEDSITE_SERVER_PORT out of range: %d", cfg.ServerPort)
	}

	cfg.SiteURL = strings.TrimRight(cfg.SiteURL, "/")
	cfg.StorageBaseURL = strings.TrimRight(cfg.StorageBaseURL, "/")

	if cfg.ImageProxyURL != "" && !strings.Contains(cfg.ImageProxyURL, "{url}") {
		return nil, fmt.Errorf("WEDSITE_IMAGE_PROXY_URL must contain a {url} placeholder")
	}

	return cfg, nil
}
