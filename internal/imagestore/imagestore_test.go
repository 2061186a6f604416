package imagestore

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const pngPayload = "iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAYAAAAfFcSJAAAADUlEQVR42mP8z8BQDwAEhQGAhKmMIQAAAABJRU5ErkJggg=="

func TestResolveDataURI(t *testing.T) {
	dir := t.TempDir()
	m := New(dir)

	got, err := m.Resolve(context.Background(), "data:image/png;base64,"+pngPayload)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if filepath.Dir(got) != dir {
		t.Errorf("file landed in %s, want %s", filepath.Dir(got), dir)
	}
	if filepath.Ext(got) != ".png" {
		t.Errorf("extension = %q, want .png", filepath.Ext(got))
	}
	// Filename stem is the first 7 payload characters.
	wantStem := strings.ReplaceAll(pngPayload[:7], "/", "_")
	if base := filepath.Base(got); base != wantStem+".png" {
		t.Errorf("filename = %q, want %q", base, wantStem+".png")
	}

	data, err := os.ReadFile(got)
	if err != nil {
		t.Fatalf("read materialized file: %v", err)
	}
	want, _ := base64.StdEncoding.DecodeString(pngPayload)
	if len(data) != len(want) {
		t.Errorf("materialized %d bytes, want %d", len(data), len(want))
	}
}

func TestResolveDataURIErrors(t *testing.T) {
	m := New(t.TempDir())
	tests := []struct {
		name string
		src  string
		want error
	}{
		{"empty source", "", ErrEmptySource},
		{"no base64 marker", "data:image/png,plain", ErrBadDataURI},
		{"empty payload", "data:image/png;base64,", ErrBadDataURI},
		{"invalid base64", "data:image/png;base64,!!!", ErrBadDataURI},
		{"payload is not an image", "data:image/png;base64,QUFBQQ==", ErrNotImage},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := m.Resolve(context.Background(), tt.src)
			if !errors.Is(err, tt.want) {
				t.Errorf("error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestResolveURL(t *testing.T) {
	png, _ := base64.StdEncoding.DecodeString(pngPayload)
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/assets/logo.png" {
			http.NotFound(w, r)
			return
		}
		w.Write(png)
	}))
	defer srv.Close()

	dir := t.TempDir()
	m := New(dir) // TLS verification off by default, so the test cert is accepted

	got, err := m.Resolve(context.Background(), srv.URL+"/assets/logo.png?v=2#frag")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if base := filepath.Base(got); base != "logo.png" {
		t.Errorf("filename = %q, want logo.png (query and fragment stripped)", base)
	}
	data, err := os.ReadFile(got)
	if err != nil {
		t.Fatalf("read materialized file: %v", err)
	}
	if len(data) != len(png) {
		t.Errorf("materialized %d bytes, want %d", len(data), len(png))
	}
}

func TestResolveURLErrors(t *testing.T) {
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	m := New(t.TempDir())
	if _, err := m.Resolve(context.Background(), srv.URL+"/missing.png"); !errors.Is(err, ErrFetch) {
		t.Errorf("404 error = %v, want ErrFetch", err)
	}
	if _, err := m.Resolve(context.Background(), srv.URL+"/"); !errors.Is(err, ErrFetch) {
		t.Errorf("no-filename error = %v, want ErrFetch", err)
	}
}

func TestResolveURLSizeCap(t *testing.T) {
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(bytes.Repeat([]byte("x"), 1024))
	}))
	defer srv.Close()

	dir := t.TempDir()
	m := NewWithOptions(dir, Options{MaxBytes: 512})
	if _, err := m.Resolve(context.Background(), srv.URL+"/big.png"); !errors.Is(err, ErrFetch) {
		t.Errorf("oversize error = %v, want ErrFetch", err)
	}

	// The truncated file must not be left behind.
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("destination directory not cleaned up, found %d entries", len(entries))
	}
}

func TestResolveCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "files")
	m := New(dir)
	if _, err := m.Resolve(context.Background(), "data:image/png;base64,"+pngPayload); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := os.Stat(dir); err != nil {
		t.Errorf("destination directory was not created: %v", err)
	}
}

func TestDefaultDir(t *testing.T) {
	if m := New(""); m.Dir() != DefaultDir {
		t.Errorf("Dir() = %q, want %q", m.Dir(), DefaultDir)
	}
}
