package docfill

import (
	"errors"
	"os"
	"strings"
)

// Config contains the engine-level options shared by the renderer and the
// amount formatter.
type Config struct {
	// LogLevel controls the verbosity of logging (debug, info, warn, error, off)
	LogLevel string
	// Language selects the number speller, e.g. "ru" or "en"
	Language string
	// IntermediateMarker is inserted between the template name and the
	// per-render suffix of the intermediate copy
	IntermediateMarker string
	// SofficeBinary is the LibreOffice executable used for PDF conversion
	SofficeBinary string
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		LogLevel:           "info",
		Language:           "ru",
		IntermediateMarker: ".mdf",
		SofficeBinary:      "soffice",
	}
}

// ConfigFromEnvironment creates a configuration from environment variables
func ConfigFromEnvironment() *Config {
	config := DefaultConfig()

	// DOCFILL_LOG_LEVEL
	if val := os.Getenv("DOCFILL_LOG_LEVEL"); val != "" {
		config.LogLevel = strings.ToLower(val)
	}

	// DOCFILL_LANGUAGE
	if val := os.Getenv("DOCFILL_LANGUAGE"); val != "" {
		config.Language = val
	}

	// DOCFILL_INTERMEDIATE_MARKER
	if val := os.Getenv("DOCFILL_INTERMEDIATE_MARKER"); val != "" {
		config.IntermediateMarker = val
	}

	// DOCFILL_SOFFICE
	if val := os.Getenv("DOCFILL_SOFFICE"); val != "" {
		config.SofficeBinary = val
	}

	return config
}

// NewConfigWithDefaults creates a new configuration with defaults applied to unset fields
func NewConfigWithDefaults(overrides *Config) *Config {
	defaults := DefaultConfig()

	if overrides == nil {
		return defaults
	}

	config := *overrides

	if config.LogLevel == "" {
		config.LogLevel = defaults.LogLevel
	}
	if config.Language == "" {
		config.Language = defaults.Language
	}
	if config.IntermediateMarker == "" {
		config.IntermediateMarker = defaults.IntermediateMarker
	}
	if config.SofficeBinary == "" {
		config.SofficeBinary = defaults.SofficeBinary
	}

	return &config
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
		"off":   true,
	}

	if !validLogLevels[c.LogLevel] {
		return errors.New("invalid log level: " + c.LogLevel)
	}

	if _, err := SpellerFor(c.Language); err != nil {
		return err
	}

	if strings.ContainsAny(c.IntermediateMarker, `/\`) {
		return errors.New("intermediate marker must not contain path separators")
	}

	return nil
}
