package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "newsletter.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	t.Parallel()

	t.Run("full config", func(t *testing.T) {
		t.Parallel()
		path := writeConfig(t, `
workbook: data/newsletter.xlsx
session: aug-2025
output:
  root: out
assets:
  basePath: ./site
images:
  college_logo: uploads/logo.png
  "1": uploads/cover.jpg
pdf:
  enabled: true
  timeoutSeconds: 60
`)
		cfg, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if cfg.Workbook != "data/newsletter.xlsx" {
			t.Errorf("Workbook = %q", cfg.Workbook)
		}
		if cfg.Output.Root != "out" {
			t.Errorf("Output.Root = %q", cfg.Output.Root)
		}
		if cfg.Images["college_logo"] != "uploads/logo.png" {
			t.Errorf("Images = %v", cfg.Images)
		}
		if !cfg.PDF.Enabled || cfg.PDF.TimeoutSeconds != 60 {
			t.Errorf("PDF = %+v", cfg.PDF)
		}
	})

	t.Run("empty name", func(t *testing.T) {
		t.Parallel()
		_, err := LoadConfig("")
		if !errors.Is(err, ErrEmptyConfigName) {
			t.Errorf("error = %v, want ErrEmptyConfigName", err)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()
		_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
		if !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("error = %v, want ErrConfigNotFound", err)
		}
	})

	t.Run("unknown field rejected", func(t *testing.T) {
		t.Parallel()
		path := writeConfig(t, "workbok: typo.xlsx\n")
		_, err := LoadConfig(path)
		if !errors.Is(err, ErrConfigParse) {
			t.Errorf("error = %v, want ErrConfigParse", err)
		}
	})

	t.Run("invalid yaml", func(t *testing.T) {
		t.Parallel()
		path := writeConfig(t, "workbook: [unclosed\n")
		_, err := LoadConfig(path)
		if !errors.Is(err, ErrConfigParse) {
			t.Errorf("error = %v, want ErrConfigParse", err)
		}
	})
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	t.Run("defaults valid", func(t *testing.T) {
		t.Parallel()
		if err := DefaultConfig().Validate(); err != nil {
			t.Errorf("DefaultConfig().Validate() = %v", err)
		}
	})

	t.Run("session too long", func(t *testing.T) {
		t.Parallel()
		cfg := DefaultConfig()
		cfg.Session = strings.Repeat("x", MaxSessionLength+1)
		if err := cfg.Validate(); !errors.Is(err, ErrFieldTooLong) {
			t.Errorf("error = %v, want ErrFieldTooLong", err)
		}
	})

	t.Run("timeout out of range", func(t *testing.T) {
		t.Parallel()
		cfg := DefaultConfig()
		cfg.PDF.TimeoutSeconds = MaxTimeoutSeconds + 1
		if err := cfg.Validate(); err == nil {
			t.Error("expected error for oversized timeout")
		}
	})

	t.Run("image path too long", func(t *testing.T) {
		t.Parallel()
		cfg := DefaultConfig()
		cfg.Images = map[string]string{"logo": strings.Repeat("p", MaxPathLength+1)}
		if err := cfg.Validate(); !errors.Is(err, ErrFieldTooLong) {
			t.Errorf("error = %v, want ErrFieldTooLong", err)
		}
	})
}

func TestIsFilePath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  bool
	}{
		{"configs/prod.yaml", true},
		{`configs\prod.yaml`, true},
		{"prod", false},
		{"newsletter", false},
	}
	for _, tt := range tests {
		if got := isFilePath(tt.input); got != tt.want {
			t.Errorf("isFilePath(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}
