package main

import (
	"errors"
	"fmt"
	"os"
	"testing"

	newsletter "github.com/Hiba550/newsletter"
	"github.com/Hiba550/newsletter/internal/config"
)

func TestExitCodeFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "nil", err: nil, want: ExitSuccess},
		{name: "browser connect", err: newsletter.ErrBrowserConnect, want: ExitBrowser},
		{name: "page load", err: newsletter.ErrPageLoad, want: ExitBrowser},
		{name: "pdf generation wrapped", err: fmt.Errorf("print: %w", newsletter.ErrPDFGeneration), want: ExitBrowser},
		{name: "workbook load", err: newsletter.ErrWorkbookLoad, want: ExitIO},
		{name: "write output", err: newsletter.ErrWriteOutput, want: ExitIO},
		{name: "file not exist", err: os.ErrNotExist, want: ExitIO},
		{name: "no workbook flag", err: ErrNoWorkbook, want: ExitUsage},
		{name: "invalid image pair", err: ErrInvalidImage, want: ExitUsage},
		{name: "config not found", err: config.ErrConfigNotFound, want: ExitUsage},
		{name: "empty workbook path", err: newsletter.ErrEmptyWorkbookPath, want: ExitUsage},
		{name: "unknown error", err: errors.New("boom"), want: ExitGeneral},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := exitCodeFor(tt.err); got != tt.want {
				t.Errorf("exitCodeFor(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}
