package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()
	if cfg.FilesDir != "files" {
		t.Errorf("FilesDir = %q, want files", cfg.FilesDir)
	}
	if cfg.FetchTimeout != 30*time.Second {
		t.Errorf("FetchTimeout = %v, want 30s", cfg.FetchTimeout)
	}
	if cfg.MaxImageBytes != 20971520 {
		t.Errorf("MaxImageBytes = %d, want 20971520", cfg.MaxImageBytes)
	}
	if cfg.TLSVerify {
		t.Error("TLSVerify should default to false")
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("HTMLDOCX_FILES_DIR", "/tmp/assets")
	t.Setenv("HTMLDOCX_FETCH_TIMEOUT", "5s")
	t.Setenv("HTMLDOCX_MAX_IMAGE_BYTES", "1024")
	t.Setenv("HTMLDOCX_TLS_VERIFY", "true")

	cfg := Load()
	if cfg.FilesDir != "/tmp/assets" {
		t.Errorf("FilesDir = %q, want /tmp/assets", cfg.FilesDir)
	}
	if cfg.FetchTimeout != 5*time.Second {
		t.Errorf("FetchTimeout = %v, want 5s", cfg.FetchTimeout)
	}
	if cfg.MaxImageBytes != 1024 {
		t.Errorf("MaxImageBytes = %d, want 1024", cfg.MaxImageBytes)
	}
	if !cfg.TLSVerify {
		t.Error("TLSVerify should be true")
	}
}

func TestLoadIgnoresGarbage(t *testing.T) {
	t.Setenv("HTMLDOCX_FETCH_TIMEOUT", "not-a-duration")
	t.Setenv("HTMLDOCX_MAX_IMAGE_BYTES", "-5")

	cfg := Load()
	if cfg.FetchTimeout != 30*time.Second {
		t.Errorf("FetchTimeout = %v, want 30s fallback", cfg.FetchTimeout)
	}
	if cfg.MaxImageBytes != 20971520 {
		t.Errorf("MaxImageBytes = %d, want default fallback", cfg.MaxImageBytes)
	}
}

func TestValidate(t *testing.T) {
	cfg := Load()
	if err := cfg.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	cfg.FilesDir = ""
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for empty FilesDir")
	}
}
