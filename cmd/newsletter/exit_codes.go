package main

import (
	"errors"
	"os"

	newsletter "github.com/Hiba550/newsletter"
	"github.com/Hiba550/newsletter/internal/config"
)

// Exit codes for the newsletter CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Successful generation
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or workbook contents
	ExitIO      = 3 // File not found, permission denied
	ExitBrowser = 4 // Browser/Chrome errors
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Browser errors (exit 4)
	if errors.Is(err, newsletter.ErrBrowserConnect) ||
		errors.Is(err, newsletter.ErrPageCreate) ||
		errors.Is(err, newsletter.ErrPageLoad) ||
		errors.Is(err, newsletter.ErrPDFGeneration) {
		return ExitBrowser
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, newsletter.ErrWorkbookLoad) ||
		errors.Is(err, newsletter.ErrWriteOutput) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, ErrNoWorkbook) ||
		errors.Is(err, ErrInvalidImage) ||
		errors.Is(err, ErrInvalidTime) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, newsletter.ErrEmptyWorkbookPath) {
		return ExitUsage
	}

	return ExitGeneral
}
