package runtimeconfig

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// ErrConfigFormatUnknown is returned for config files that are neither TOML
// nor JSON.
var ErrConfigFormatUnknown = errors.New("mdraft config: file format is not supported")

// Load reads a TOML or JSON config file over DefaultConfig and validates the
// result. The format follows the file extension.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("mdraft config: read %s: %w", path, err)
	}
	return Decode(filepath.Ext(path), data)
}

// Decode parses data in the format named by ext (".toml" or ".json").
func Decode(ext string, data []byte) (Config, error) {
	cfg := DefaultConfig()

	switch strings.ToLower(strings.TrimPrefix(ext, ".")) {
	case "toml":
		if err := toml.NewDecoder(bytes.NewReader(data)).DisallowUnknownFields().Decode(&cfg); err != nil {
			return Config{}, fmt.Errorf("mdraft config: decode toml: %w", err)
		}
	case "json":
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&cfg); err != nil {
			return Config{}, fmt.Errorf("mdraft config: decode json: %w", err)
		}
	default:
		return Config{}, fmt.Errorf("%w: %q", ErrConfigFormatUnknown, ext)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
