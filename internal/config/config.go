package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	// Image materialization
	FilesDir      string
	FetchTimeout  time.Duration
	MaxImageBytes int64

	// TLS verification for image fetches. Off by default: the editor backend
	// this converter targets serves images from hosts with self-signed certs.
	TLSVerify bool
}

func Load() Config {
	cfg := Config{
		FilesDir:      envOr("HTMLDOCX_FILES_DIR", "files"),
		FetchTimeout:  envDuration("HTMLDOCX_FETCH_TIMEOUT", 30*time.Second),
		MaxImageBytes: envInt64("HTMLDOCX_MAX_IMAGE_BYTES", 20971520), // 20MB
		TLSVerify:     envBool("HTMLDOCX_TLS_VERIFY", false),
	}

	if cfg.FetchTimeout <= 0 {
		cfg.FetchTimeout = 30 * time.Second
	}
	if cfg.MaxImageBytes <= 0 {
		cfg.MaxImageBytes = 20971520
	}

	return cfg
}

func (c Config) Validate() error {
	if c.FilesDir == "" {
		return fmt.Errorf("HTMLDOCX_FILES_DIR cannot be empty")
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
