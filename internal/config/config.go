// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Defaults live in New; Load layers a file and the environment on top.
// - External errors are wrapped with ErrLoadConfig, validation errors with ErrInvalidConfig.
package config

import (
	"github.com/okian/wordstat/internal/domain/upload"
)

// Default values.
const (
	defaultAddr           = ":9080"
	defaultMaxUploadBytes = 10 << 20
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the record format: text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// Encoding is the single-byte code page uploads are decoded with.
	Encoding string `koanf:"encoding"`

	// AllowedExtension is the only accepted upload file extension.
	AllowedExtension string `koanf:"allowed_extension"`

	// MaxUploadBytes bounds the size of one uploaded document.
	MaxUploadBytes int64 `koanf:"max_upload_bytes"`

	// ResultLimit caps the number of rendered words; 0 renders all of them.
	ResultLimit int `koanf:"result_limit"`
}

// New returns a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:         "info",
		LogFormat:        "text",
		Addr:             defaultAddr,
		Encoding:         upload.DefaultCharset,
		AllowedExtension: upload.DefaultExtension,
		MaxUploadBytes:   defaultMaxUploadBytes,
		ResultLimit:      0,
	}
}
