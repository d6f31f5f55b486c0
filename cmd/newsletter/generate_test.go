package main

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/Hiba550/newsletter/internal/config"
)

func TestRun_Version(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	if err := run(&generateFlags{version: true}, &out); err != nil {
		t.Fatalf("run() error = %v", err)
	}
	if !strings.Contains(out.String(), "newsletter") {
		t.Errorf("version output = %q", out.String())
	}
}

func TestRun_NoWorkbook(t *testing.T) {
	t.Parallel()

	err := run(&generateFlags{}, &bytes.Buffer{})
	if !errors.Is(err, ErrNoWorkbook) {
		t.Errorf("run() error = %v, want ErrNoWorkbook", err)
	}
}

func TestBuildInput(t *testing.T) {
	t.Parallel()

	t.Run("flags over config", func(t *testing.T) {
		t.Parallel()
		cfg := config.DefaultConfig()
		cfg.Workbook = "config.xlsx"
		cfg.Session = "config-session"

		flags := &generateFlags{workbook: "flag.xlsx", session: "flag-session"}
		input, _, err := buildInput(flags, cfg)
		if err != nil {
			t.Fatalf("buildInput() error = %v", err)
		}
		if input.WorkbookPath != "flag.xlsx" {
			t.Errorf("WorkbookPath = %q, want flag value", input.WorkbookPath)
		}
		if input.SessionID != "flag-session" {
			t.Errorf("SessionID = %q, want flag value", input.SessionID)
		}
	})

	t.Run("config fallback", func(t *testing.T) {
		t.Parallel()
		cfg := config.DefaultConfig()
		cfg.Workbook = "config.xlsx"
		cfg.PDF.Enabled = true

		input, _, err := buildInput(&generateFlags{}, cfg)
		if err != nil {
			t.Fatalf("buildInput() error = %v", err)
		}
		if input.WorkbookPath != "config.xlsx" {
			t.Errorf("WorkbookPath = %q", input.WorkbookPath)
		}
		if !input.PrintPDF {
			t.Error("PrintPDF not taken from config")
		}
	})

	t.Run("image pairs merged, flags win", func(t *testing.T) {
		t.Parallel()
		cfg := config.DefaultConfig()
		cfg.Workbook = "wb.xlsx"
		cfg.Images = map[string]string{"college_logo": "config.png", "vision": "v.png"}

		flags := &generateFlags{images: []string{"college_logo=flag.png", "1=cover.jpg"}}
		input, _, err := buildInput(flags, cfg)
		if err != nil {
			t.Fatalf("buildInput() error = %v", err)
		}
		if input.ImagePaths["college_logo"] != "flag.png" {
			t.Errorf("college_logo = %q, want flag override", input.ImagePaths["college_logo"])
		}
		if input.ImagePaths["vision"] != "v.png" || input.ImagePaths["1"] != "cover.jpg" {
			t.Errorf("ImagePaths = %v", input.ImagePaths)
		}
	})

	t.Run("malformed image pair", func(t *testing.T) {
		t.Parallel()
		cfg := config.DefaultConfig()
		cfg.Workbook = "wb.xlsx"

		for _, pair := range []string{"noequals", "=path", "key="} {
			_, _, err := buildInput(&generateFlags{images: []string{pair}}, cfg)
			if !errors.Is(err, ErrInvalidImage) {
				t.Errorf("buildInput(%q) error = %v, want ErrInvalidImage", pair, err)
			}
		}
	})
}

func TestResolveTimeout(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		flagValue  string
		cfgSeconds int
		want       time.Duration
		wantErr    bool
	}{
		{name: "flag duration", flagValue: "45s", want: 45 * time.Second},
		{name: "flag minutes", flagValue: "2m", want: 2 * time.Minute},
		{name: "flag wins over config", flagValue: "10s", cfgSeconds: 99, want: 10 * time.Second},
		{name: "config seconds", cfgSeconds: 60, want: time.Minute},
		{name: "neither set", want: 0},
		{name: "garbage flag", flagValue: "soon", wantErr: true},
		{name: "negative flag", flagValue: "-5s", wantErr: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := resolveTimeout(tt.flagValue, tt.cfgSeconds)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidTime) {
					t.Errorf("error = %v, want ErrInvalidTime", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("resolveTimeout() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("resolveTimeout() = %v, want %v", got, tt.want)
			}
		})
	}
}
