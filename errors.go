package newsletter

import "errors"

// Sentinel errors for library operations.
var (
	ErrEmptyWorkbookPath = errors.New("workbook path cannot be empty")
	ErrWorkbookLoad      = errors.New("workbook load failed")
	ErrSheetMissing      = errors.New("required sheet missing")
	ErrColumnMissing     = errors.New("required column missing")
	ErrRender            = errors.New("template binding failed")
	ErrWriteOutput       = errors.New("failed to write output document")

	// PDF printing errors (headless Chrome).
	ErrPDFGeneration  = errors.New("PDF generation failed")
	ErrBrowserConnect = errors.New("failed to connect to browser")
	ErrPageCreate     = errors.New("failed to create browser page")
	ErrPageLoad       = errors.New("failed to load page")

	// PDF overlay editor errors.
	ErrPDFOpen      = errors.New("failed to open PDF")
	ErrPageIndex    = errors.New("page index out of range")
	ErrInvalidColor = errors.New("invalid hex color")
	ErrPDFEdit      = errors.New("PDF edit operation failed")
	ErrPDFSave      = errors.New("failed to save PDF")
)
