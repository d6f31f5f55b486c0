// Package assets holds the embedded newsletter page template and stylesheet.
//
// Assets ship inside the binary via go:embed. An optional base directory can
// override individual assets; lookups fall back to the embedded copies so a
// partial override directory is fine.
package assets

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Sentinel errors for asset loading.
var (
	ErrTemplateNotFound = errors.New("template not found")
	ErrStyleNotFound    = errors.New("style not found")
	ErrInvalidAssetName = errors.New("invalid asset name")
)

// ValidateAssetName rejects names that could escape the asset directories.
func ValidateAssetName(name string) error {
	if name == "" ||
		strings.Contains(name, "..") ||
		strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("%w: %q", ErrInvalidAssetName, name)
	}
	return nil
}

// LoadTemplate returns the named HTML template, preferring basePath
// overrides when basePath is non-empty. The name carries no extension.
func LoadTemplate(basePath, name string) (string, error) {
	if err := ValidateAssetName(name); err != nil {
		return "", err
	}
	if basePath != "" {
		if content, ok := readOverride(filepath.Join(basePath, "templates", name+".html")); ok {
			return content, nil
		}
	}
	content, err := templates.ReadFile("templates/" + name + ".html")
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrTemplateNotFound, name)
	}
	return string(content), nil
}

// LoadStyle returns the named CSS stylesheet, preferring basePath overrides
// when basePath is non-empty. The name carries no extension.
func LoadStyle(basePath, name string) (string, error) {
	if err := ValidateAssetName(name); err != nil {
		return "", err
	}
	if basePath != "" {
		if content, ok := readOverride(filepath.Join(basePath, "styles", name+".css")); ok {
			return content, nil
		}
	}
	content, err := styles.ReadFile("styles/" + name + ".css")
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrStyleNotFound, name)
	}
	return string(content), nil
}

// readOverride reads an override file, reporting whether it was usable.
func readOverride(path string) (string, bool) {
	content, err := os.ReadFile(path) // #nosec G304 -- override base path is operator-controlled
	if err != nil {
		return "", false
	}
	return string(content), true
}
