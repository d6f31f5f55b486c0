package newsletter

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Service orchestrates the workbook-to-newsletter pipeline.
type Service struct {
	cfg      serviceConfig
	loader   workbookLoader
	resolver imageResolver
	renderer templateRenderer
	pdf      pdfConverter
}

// New creates a Service with default configuration.
// Use options to customize behavior (e.g., WithOutputRoot).
func New(opts ...Option) *Service {
	s := &Service{
		cfg: serviceConfig{
			outputRoot: defaultOutputRoot,
			timeout:    defaultTimeout,
		},
		loader:   &excelLoader{},
		resolver: newImageResolver(),
	}

	for _, opt := range opts {
		opt(s)
	}

	// Create late-bound stages if not injected (e.g., by tests)
	if s.renderer == nil {
		s.renderer = newTemplateRenderer(s.cfg.assetDir, newRichTextRenderer())
	}
	if s.pdf == nil {
		s.pdf = newRodConverter(s.cfg.timeout)
	}

	return s
}

// Generate runs the full pipeline: load the workbook, strip repeated
// sentences from event descriptions, resolve images, render the HTML
// newsletter, and write it under outputRoot/sessionID.
// When input.PrintPDF is set, the HTML is additionally printed to PDF
// through headless Chrome. The context is used for cancellation and timeout.
func (s *Service) Generate(ctx context.Context, input Input) (*Result, error) {
	if input.WorkbookPath == "" {
		return nil, ErrEmptyWorkbookPath
	}
	session := input.SessionID
	if session == "" {
		session = time.Now().Format("20060102-150405")
	}

	data, err := s.loader.Load(input.WorkbookPath)
	if err != nil {
		return nil, err
	}
	for i := range data.Events {
		data.Events[i].Description = CleanRepeatedSentences(data.Events[i].Description)
	}
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	images := s.resolver.Resolve(s.cfg.assetDir, input.ImagePaths)

	htmlContent, err := s.renderer.Render(data, images)
	if err != nil {
		return nil, err
	}
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	outDir := filepath.Join(s.cfg.outputRoot, session)
	if err := os.MkdirAll(outDir, 0o750); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrWriteOutput, err)
	}

	result := &Result{HTMLPath: filepath.Join(outDir, "newsletter.html")}
	if err := os.WriteFile(result.HTMLPath, htmlContent, 0o600); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrWriteOutput, err)
	}

	if input.PrintPDF {
		pdfBytes, err := s.pdf.ToPDF(ctx, string(htmlContent))
		if err != nil {
			return nil, err
		}
		result.PDFPath = filepath.Join(outDir, "newsletter.pdf")
		if err := os.WriteFile(result.PDFPath, pdfBytes, 0o600); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrWriteOutput, err)
		}
	}

	return result, nil
}

// Close releases resources (headless Chrome browser).
func (s *Service) Close() error {
	if s.pdf != nil {
		return s.pdf.Close()
	}
	return nil
}
