// Package config loads CLI configuration from YAML files.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Hiba550/newsletter/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
)

// Field length limits for multi-tenant safety.
const (
	MaxPathLength      = 2048 // file paths
	MaxSessionLength   = 100  // session directory name
	MaxImageKeyLength  = 100  // logical image key
	MaxTimeoutSeconds  = 600  // PDF print timeout ceiling
	MaxImageEntryCount = 50   // uploaded images per run
)

// Config holds all configuration for newsletter generation.
type Config struct {
	Workbook string            `yaml:"workbook"` // Excel workbook path
	Session  string            `yaml:"session"`  // output subdirectory name
	Output   OutputConfig      `yaml:"output"`
	Assets   AssetsConfig      `yaml:"assets"`
	Images   map[string]string `yaml:"images"` // logical key -> file path
	PDF      PDFConfig         `yaml:"pdf"`
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	Root string `yaml:"root"` // Per-session directories are created under it (default "generated")
}

// AssetsConfig defines asset loading options.
type AssetsConfig struct {
	BasePath string `yaml:"basePath"` // Holds static/images plus template/style overrides (empty = embedded only)
}

// PDFConfig defines PDF printing options.
type PDFConfig struct {
	Enabled        bool `yaml:"enabled"`
	TimeoutSeconds int  `yaml:"timeoutSeconds"` // 0 = library default
}

// Validate checks field lengths to prevent abuse in multi-tenant scenarios.
// Called automatically by LoadConfig, but available for consumers who
// construct Config manually.
func (c *Config) Validate() error {
	if err := validateFieldLength("workbook", c.Workbook, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("session", c.Session, MaxSessionLength); err != nil {
		return err
	}
	if err := validateFieldLength("output.root", c.Output.Root, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("assets.basePath", c.Assets.BasePath, MaxPathLength); err != nil {
		return err
	}

	if len(c.Images) > MaxImageEntryCount {
		return fmt.Errorf("images: too many entries (%d, max %d)", len(c.Images), MaxImageEntryCount)
	}
	for key, path := range c.Images {
		if err := validateFieldLength("images key", key, MaxImageKeyLength); err != nil {
			return err
		}
		if err := validateFieldLength(fmt.Sprintf("images[%s]", key), path, MaxPathLength); err != nil {
			return err
		}
	}

	if c.PDF.TimeoutSeconds < 0 || c.PDF.TimeoutSeconds > MaxTimeoutSeconds {
		return fmt.Errorf("pdf.timeoutSeconds: must be between 0 and %d, got %d", MaxTimeoutSeconds, c.PDF.TimeoutSeconds)
	}

	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// DefaultConfig returns a neutral configuration.
func DefaultConfig() *Config {
	return &Config{
		Output: OutputConfig{Root: "generated"},
	}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if isFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yamlutil.UnmarshalStrict(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// isFilePath returns true if the string looks like a file path.
func isFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}

// resolveConfigPath searches for a config file by name in standard locations.
// Tries extensions in order: .yaml, .yml
// Tries locations in order: current directory, ~/.config/newsletter/
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	triedPaths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		localPath := name + ext
		if fileExists(localPath) {
			return localPath, nil
		}
		triedPaths = append(triedPaths, localPath)
	}

	userConfigDir, err := os.UserConfigDir()
	if err == nil {
		for _, ext := range extensions {
			userPath := filepath.Join(userConfigDir, "newsletter", name+ext)
			if fileExists(userPath) {
				return userPath, nil
			}
			triedPaths = append(triedPaths, userPath)
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(triedPaths, ", "))
}

// fileExists returns true if the path exists and is a regular file.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
