package newsletter

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/jung-kurt/gofpdf"
	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

// Overlay canvas dimensions in points (A4).
const (
	overlayPageWidth  = 595.28
	overlayPageHeight = 841.89
)

// Drawing defaults, matching common desktop PDF annotators.
const (
	defaultFontName    = "Helvetica"
	defaultFontSize    = 12.0
	defaultStrokeWidth = 1.0
	blackHex           = "#000000"
	whiteHex           = "#ffffff"
)

// Editor performs page-level edits on a PDF document. The document is held
// in memory; every operation applies to the current state and a failed
// operation leaves the document unchanged. Page indices are zero-based.
// Drawing coordinates are in points with the origin at the bottom-left
// corner of the page, the PDF convention.
//
// An Editor is not safe for concurrent use.
type Editor struct {
	doc   []byte
	pages int
	conf  *model.Configuration
}

// OpenPDF loads and validates a PDF file for editing.
func OpenPDF(path string) (*Editor, error) {
	buf, err := os.ReadFile(path) // #nosec G304 -- user-supplied document path
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPDFOpen, err)
	}
	e := &Editor{doc: buf, conf: model.NewDefaultConfiguration()}
	if err := e.refreshPageCount(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPDFOpen, err)
	}
	return e, nil
}

// PageCount returns the current number of pages.
func (e *Editor) PageCount() int {
	return e.pages
}

// TextOptions control AddText. Zero values fall back to Helvetica 12pt black.
type TextOptions struct {
	Font     string
	FontSize float64
	Color    string
}

// AddText draws a string onto the page at baseline position (x, y).
func (e *Editor) AddText(pageIndex int, text string, x, y float64, opts TextOptions) error {
	if opts.Font == "" {
		opts.Font = defaultFontName
	}
	if opts.FontSize <= 0 {
		opts.FontSize = defaultFontSize
	}
	if opts.Color == "" {
		opts.Color = blackHex
	}
	r, g, b, err := parseHexColor(opts.Color)
	if err != nil {
		return err
	}
	return e.applyOverlay(pageIndex, func(canvas *gofpdf.Fpdf) {
		canvas.SetFont(opts.Font, "", opts.FontSize)
		canvas.SetTextColor(r, g, b)
		canvas.Text(x, overlayPageHeight-y, text)
	})
}

// AddImage draws the image file onto the page. (x, y) is the bottom-left
// corner of the placed image, w and h its size in points.
func (e *Editor) AddImage(pageIndex int, imagePath string, x, y, w, h float64) error {
	if _, err := os.Stat(imagePath); err != nil {
		return fmt.Errorf("%w: image %q: %v", ErrPDFEdit, imagePath, err)
	}
	return e.applyOverlay(pageIndex, func(canvas *gofpdf.Fpdf) {
		canvas.ImageOptions(imagePath, x, overlayPageHeight-y-h, w, h, false,
			gofpdf.ImageOptions{ReadDpi: true}, 0, "")
	})
}

// AddRect draws a filled and stroked rectangle with bottom-left corner at
// (x, y). Empty colors default to a white fill with a black stroke.
func (e *Editor) AddRect(pageIndex int, x, y, w, h float64, fillColor, strokeColor string, strokeWidth float64) error {
	if fillColor == "" {
		fillColor = whiteHex
	}
	if strokeColor == "" {
		strokeColor = blackHex
	}
	if strokeWidth <= 0 {
		strokeWidth = defaultStrokeWidth
	}
	fr, fg, fb, err := parseHexColor(fillColor)
	if err != nil {
		return err
	}
	sr, sg, sb, err := parseHexColor(strokeColor)
	if err != nil {
		return err
	}
	return e.applyOverlay(pageIndex, func(canvas *gofpdf.Fpdf) {
		canvas.SetFillColor(fr, fg, fb)
		canvas.SetDrawColor(sr, sg, sb)
		canvas.SetLineWidth(strokeWidth)
		canvas.Rect(x, overlayPageHeight-y-h, w, h, "FD")
	})
}

// AddLine draws a straight line between two points.
func (e *Editor) AddLine(pageIndex int, x1, y1, x2, y2 float64, color string, width float64) error {
	if color == "" {
		color = blackHex
	}
	if width <= 0 {
		width = defaultStrokeWidth
	}
	r, g, b, err := parseHexColor(color)
	if err != nil {
		return err
	}
	return e.applyOverlay(pageIndex, func(canvas *gofpdf.Fpdf) {
		canvas.SetDrawColor(r, g, b)
		canvas.SetLineWidth(width)
		canvas.Line(x1, overlayPageHeight-y1, x2, overlayPageHeight-y2)
	})
}

// RotatePage rotates one page by the given angle, which must be a multiple
// of 90 degrees.
func (e *Editor) RotatePage(pageIndex, angle int) error {
	if err := e.checkPage(pageIndex); err != nil {
		return err
	}
	if angle%90 != 0 {
		return fmt.Errorf("%w: rotation %d not a multiple of 90", ErrPDFEdit, angle)
	}
	var out bytes.Buffer
	if err := api.Rotate(bytes.NewReader(e.doc), &out, angle, e.pageSelection(pageIndex), e.conf); err != nil {
		return fmt.Errorf("%w: rotate: %v", ErrPDFEdit, err)
	}
	e.doc = out.Bytes()
	return nil
}

// DeletePage removes one page from the document. Deleting the last
// remaining page is rejected, a PDF must keep at least one page.
func (e *Editor) DeletePage(pageIndex int) error {
	if err := e.checkPage(pageIndex); err != nil {
		return err
	}
	if e.pages == 1 {
		return fmt.Errorf("%w: cannot delete the only page", ErrPDFEdit)
	}
	var out bytes.Buffer
	if err := api.RemovePages(bytes.NewReader(e.doc), &out, e.pageSelection(pageIndex), e.conf); err != nil {
		return fmt.Errorf("%w: delete page: %v", ErrPDFEdit, err)
	}
	e.doc = out.Bytes()
	e.pages--
	return nil
}

// ExtractText returns the plain text content of one page.
func (e *Editor) ExtractText(pageIndex int) (string, error) {
	if err := e.checkPage(pageIndex); err != nil {
		return "", err
	}
	r, err := pdf.NewReader(bytes.NewReader(e.doc), int64(len(e.doc)))
	if err != nil {
		return "", fmt.Errorf("%w: extract text: %v", ErrPDFEdit, err)
	}
	page := r.Page(pageIndex + 1)
	if page.V.IsNull() {
		return "", fmt.Errorf("%w: page %d", ErrPageIndex, pageIndex)
	}
	text, err := page.GetPlainText(nil)
	if err != nil {
		return "", fmt.Errorf("%w: extract text: %v", ErrPDFEdit, err)
	}
	return text, nil
}

// Merge appends every page of the given PDF files, in order, after the
// current document's pages.
func (e *Editor) Merge(paths ...string) error {
	if len(paths) == 0 {
		return nil
	}
	readers := make([]io.ReadSeeker, 0, len(paths)+1)
	readers = append(readers, bytes.NewReader(e.doc))
	for _, p := range paths {
		buf, err := os.ReadFile(p) // #nosec G304 -- user-supplied document path
		if err != nil {
			return fmt.Errorf("%w: %v", ErrPDFOpen, err)
		}
		readers = append(readers, bytes.NewReader(buf))
	}
	var out bytes.Buffer
	if err := api.MergeRaw(readers, &out, false, e.conf); err != nil {
		return fmt.Errorf("%w: merge: %v", ErrPDFEdit, err)
	}
	e.doc = out.Bytes()
	return e.refreshPageCount()
}

// Save writes the current document state to path. The Editor remains
// usable afterwards.
func (e *Editor) Save(path string) error {
	if err := os.WriteFile(path, e.doc, 0o600); err != nil {
		return fmt.Errorf("%w: %v", ErrPDFSave, err)
	}
	return nil
}

// applyOverlay renders draw onto a blank A4 canvas and stamps the result
// on top of the selected page. The document is only replaced when every
// step succeeds.
func (e *Editor) applyOverlay(pageIndex int, draw func(canvas *gofpdf.Fpdf)) error {
	if err := e.checkPage(pageIndex); err != nil {
		return err
	}

	canvas := gofpdf.New("P", "pt", "A4", "")
	canvas.SetMargins(0, 0, 0)
	canvas.SetAutoPageBreak(false, 0)
	canvas.AddPage()
	draw(canvas)

	var overlay bytes.Buffer
	if err := canvas.Output(&overlay); err != nil {
		return fmt.Errorf("%w: overlay: %v", ErrPDFEdit, err)
	}

	// pdfcpu reads stamp PDFs from a file path.
	tmp, err := os.CreateTemp("", "overlay-*.pdf")
	if err != nil {
		return fmt.Errorf("%w: overlay: %v", ErrPDFEdit, err)
	}
	tmpPath := tmp.Name()
	defer func() { _ = os.Remove(tmpPath) }()
	if _, err := tmp.Write(overlay.Bytes()); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("%w: overlay: %v", ErrPDFEdit, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: overlay: %v", ErrPDFEdit, err)
	}

	wm, err := api.PDFWatermark(tmpPath, "pos:bl, off:0 0, scale:1 abs, rot:0", true, false, types.POINTS)
	if err != nil {
		return fmt.Errorf("%w: overlay: %v", ErrPDFEdit, err)
	}
	var out bytes.Buffer
	if err := api.AddWatermarks(bytes.NewReader(e.doc), &out, e.pageSelection(pageIndex), wm, e.conf); err != nil {
		return fmt.Errorf("%w: overlay: %v", ErrPDFEdit, err)
	}
	e.doc = out.Bytes()
	return nil
}

func (e *Editor) checkPage(pageIndex int) error {
	if pageIndex < 0 || pageIndex >= e.pages {
		return fmt.Errorf("%w: page %d of %d", ErrPageIndex, pageIndex, e.pages)
	}
	return nil
}

// pageSelection converts a zero-based index to pdfcpu's one-based form.
func (e *Editor) pageSelection(pageIndex int) []string {
	return []string{strconv.Itoa(pageIndex + 1)}
}

func (e *Editor) refreshPageCount() error {
	ctx, err := api.ReadValidateAndOptimize(bytes.NewReader(e.doc), e.conf)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPDFEdit, err)
	}
	e.pages = ctx.PageCount
	return nil
}

// parseHexColor parses "#rrggbb" into 8-bit color components.
func parseHexColor(s string) (r, g, b int, err error) {
	hex := strings.TrimSpace(s)
	if len(hex) != 7 || hex[0] != '#' {
		return 0, 0, 0, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	v, parseErr := strconv.ParseUint(hex[1:], 16, 32)
	if parseErr != nil {
		return 0, 0, 0, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	return int(v >> 16 & 0xff), int(v >> 8 & 0xff), int(v & 0xff), nil
}
