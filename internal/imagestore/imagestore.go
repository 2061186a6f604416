// Package imagestore materializes image references — remote URLs or inline
// base64 payloads — into files on disk so they can be embedded in a document.
package imagestore

import (
	"context"
	"crypto/tls"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/fumiama/imgsz"
)

// Sentinel errors for image materialization.
var (
	ErrEmptySource = errors.New("image source is empty")
	ErrBadDataURI  = errors.New("malformed data URI")
	ErrFetch       = errors.New("image fetch failed")
	ErrWrite       = errors.New("image write failed")
	ErrNotImage    = errors.New("payload is not a decodable image")
)

const (
	// DefaultDir receives materialized files when no directory is given.
	DefaultDir = "files"

	defaultTimeout  = 30 * time.Second
	defaultMaxBytes = 20 << 20
)

// Options tunes fetching behavior.
type Options struct {
	// Timeout bounds one fetch. Zero means 30s.
	Timeout time.Duration

	// TLSVerify enables certificate validation. The zero value keeps
	// validation off, matching the editor backend this converter was built
	// against; opt in via config where that matters.
	TLSVerify bool

	// MaxBytes caps one downloaded image. Zero means 20MB.
	MaxBytes int64
}

// Materializer resolves image sources into files under a fixed directory.
type Materializer struct {
	dir      string
	client   *http.Client
	maxBytes int64
}

// New returns a Materializer writing under dir (DefaultDir when empty).
func New(dir string) *Materializer {
	return NewWithOptions(dir, Options{})
}

// NewWithOptions returns a Materializer with explicit fetch options.
func NewWithOptions(dir string, o Options) *Materializer {
	if dir == "" {
		dir = DefaultDir
	}
	if o.Timeout <= 0 {
		o.Timeout = defaultTimeout
	}
	if o.MaxBytes <= 0 {
		o.MaxBytes = defaultMaxBytes
	}
	return &Materializer{
		dir: dir,
		client: &http.Client{
			Timeout: o.Timeout,
			Transport: &http.Transport{
				TLSClientConfig: &tls.Config{InsecureSkipVerify: !o.TLSVerify}, // #nosec G402 -- see Options.TLSVerify
			},
		},
		maxBytes: o.MaxBytes,
	}
}

// Dir returns the destination directory.
func (m *Materializer) Dir() string { return m.dir }

// Resolve materializes src to a file and returns its path. Data URIs are
// decoded in place; anything else is fetched over HTTPS. The destination
// directory is created if missing.
func (m *Materializer) Resolve(ctx context.Context, src string) (string, error) {
	if src == "" {
		return "", ErrEmptySource
	}
	if err := os.MkdirAll(m.dir, 0o750); err != nil {
		return "", fmt.Errorf("%w: create %s: %v", ErrWrite, m.dir, err)
	}
	if strings.HasPrefix(src, "data") {
		return m.resolveData(src)
	}
	return m.resolveURL(ctx, src)
}

// resolveData decodes a data URI. The filename is derived from the first 7
// payload characters (slashes replaced) plus the extension from the MIME
// segment, so identical payloads land on the same file.
func (m *Materializer) resolveData(src string) (string, error) {
	marker := strings.Index(src, ";base64,")
	if marker < 0 {
		return "", fmt.Errorf("%w: no base64 payload", ErrBadDataURI)
	}
	payload := src[marker+len(";base64,"):]
	if payload == "" {
		return "", fmt.Errorf("%w: empty payload", ErrBadDataURI)
	}

	mime := strings.TrimPrefix(src[:marker], "data:")
	ext := mime
	if i := strings.LastIndex(mime, "/"); i >= 0 {
		ext = mime[i+1:]
	}
	if ext == "" {
		return "", fmt.Errorf("%w: no media type", ErrBadDataURI)
	}

	stem := payload
	if len(stem) > 7 {
		stem = stem[:7]
	}
	stem = strings.ReplaceAll(stem, "/", "_")

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrBadDataURI, err)
	}

	dest := filepath.Join(m.dir, stem+"."+ext)
	if err := os.WriteFile(dest, data, 0o600); err != nil {
		os.Remove(dest) // drop any partial file
		return "", fmt.Errorf("%w: %v", ErrWrite, err)
	}
	return m.verify(dest)
}

// resolveURL downloads src, forcing the scheme to https, and streams the
// body to a file named after the final path segment. A body over the
// configured byte cap fails the fetch rather than embedding a truncated file.
func (m *Materializer) resolveURL(ctx context.Context, src string) (string, error) {
	u, err := url.Parse(src)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrFetch, err)
	}
	u.Scheme = "https"

	name := path.Base(u.Path)
	if name == "." || name == "/" || name == "" {
		return "", fmt.Errorf("%w: no filename in %s", ErrFetch, src)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrFetch, err)
	}
	resp, err := m.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrFetch, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: %s: status %d", ErrFetch, u.String(), resp.StatusCode)
	}

	dest := filepath.Join(m.dir, name)
	f, err := os.Create(dest) // #nosec G304 -- name is derived from the image URL within m.dir
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrWrite, err)
	}
	n, err := io.Copy(f, io.LimitReader(resp.Body, m.maxBytes+1))
	if err != nil {
		f.Close()
		os.Remove(dest)
		return "", fmt.Errorf("%w: %v", ErrWrite, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(dest)
		return "", fmt.Errorf("%w: %v", ErrWrite, err)
	}
	if n > m.maxBytes {
		os.Remove(dest)
		return "", fmt.Errorf("%w: %s: exceeds %d bytes", ErrFetch, u.String(), m.maxBytes)
	}
	return m.verify(dest)
}

// verify probes the written file so broken payloads fail the conversion here
// instead of at embed time.
func (m *Materializer) verify(dest string) (string, error) {
	f, err := os.Open(dest) // #nosec G304 -- path was just written by us
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrWrite, err)
	}
	defer f.Close()
	if _, _, err := imgsz.DecodeSize(f); err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrNotImage, dest, err)
	}
	return dest, nil
}
