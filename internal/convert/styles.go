package convert

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/goccy/go-yaml"
)

// Sentinel errors for style config loading.
var (
	ErrStyleConfigNotFound = errors.New("style config file not found")
	ErrStyleConfigParse    = errors.New("failed to parse style config")
)

// StyleConfig holds the tunable parts of document styling: the mapping from
// editor color words to hex values, and the code-block font.
type StyleConfig struct {
	Colors map[string]string `yaml:"colors"`
	Code   CodeStyle         `yaml:"code"`
}

// CodeStyle configures the "code" paragraph style.
type CodeStyle struct {
	Font string `yaml:"font"`
	Size int    `yaml:"size"` // points
}

// defaultColors is the editor's color palette.
var defaultColors = map[string]string{
	"black":   "000000",
	"blue":    "0000FF",
	"brown":   "A52A2A",
	"cyan":    "00FFFF",
	"gray":    "808080",
	"green":   "008000",
	"grey":    "808080",
	"magenta": "FF00FF",
	"orange":  "FFA500",
	"pink":    "FFC0CB",
	"purple":  "800080",
	"red":     "FF0000",
	"white":   "FFFFFF",
	"yellow":  "FFFF00",
}

// DefaultStyles returns the built-in palette and code style.
func DefaultStyles() *StyleConfig {
	colors := make(map[string]string, len(defaultColors))
	for k, v := range defaultColors {
		colors[k] = v
	}
	return &StyleConfig{
		Colors: colors,
		Code:   CodeStyle{Font: "Courier New", Size: 12},
	}
}

// LoadStyles reads a YAML style config and merges it over the defaults.
// Unknown fields are rejected.
func LoadStyles(path string) (*StyleConfig, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- path is operator-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrStyleConfigNotFound, path)
		}
		return nil, fmt.Errorf("read style config: %w", err)
	}

	var loaded StyleConfig
	if err := yaml.UnmarshalWithOptions(data, &loaded, yaml.Strict()); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStyleConfigParse, err)
	}

	cfg := DefaultStyles()
	for name, hex := range loaded.Colors {
		cfg.Colors[strings.ToLower(name)] = strings.ToUpper(strings.TrimPrefix(hex, "#"))
	}
	if loaded.Code.Font != "" {
		cfg.Code.Font = loaded.Code.Font
	}
	if loaded.Code.Size > 0 {
		cfg.Code.Size = loaded.Code.Size
	}
	return cfg, nil
}

var hexColorRe = regexp.MustCompile(`^[0-9A-Fa-f]{6}$`)

// ColorHex resolves an editor color word to a hex value. Unknown words that
// are already hex pass through; anything else reports no match.
func (s *StyleConfig) ColorHex(word string) (string, bool) {
	if hex, ok := s.Colors[strings.ToLower(word)]; ok {
		return hex, true
	}
	if hexColorRe.MatchString(word) {
		return strings.ToUpper(word), true
	}
	return "", false
}
